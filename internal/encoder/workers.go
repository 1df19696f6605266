package encoder

import "sync"

// run calls fn(i) for i in [0, jobs) on up to workers goroutines and
// waits for all of them.
func run(workers, jobs int, fn func(i int)) {
	if workers <= 1 || jobs <= 1 {
		for i := 0; i < jobs; i++ {
			fn(i)
		}
		return
	}
	next := make(chan int)
	var wg sync.WaitGroup
	for range min(workers, jobs) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range next {
				fn(i)
			}
		}()
	}
	for i := 0; i < jobs; i++ {
		next <- i
	}
	close(next)
	wg.Wait()
}
