package lpc

import "math"

// Analyzer estimates PARCOR coefficients for blocks of integer samples.
// It caches window shapes and scratch buffers between calls and is not
// safe for concurrent use.
type Analyzer struct {
	win     Window
	windows map[int][]float64

	xw  []float64 // windowed block
	r   []float64 // autocorrelation
	par []float64 // reflection coefficients
	e   []float64 // prediction error energy per order
	c   []float64 // direct-form scratch
	tmp []float64

	variance float64 // mean square of the unwindowed block
}

// NewAnalyzer returns an Analyzer using window w.
func NewAnalyzer(w Window) *Analyzer {
	return &Analyzer{win: w, windows: make(map[int][]float64)}
}

// Analyze computes order PARCOR coefficients of x. The returned slice is
// owned by the Analyzer and valid until the next call.
//
// The coefficients follow the error-filter convention
// A(z) = 1 + sum a_k z^-k, so a strongly correlated signal gives
// par[0] close to -1.
func (a *Analyzer) Analyze(x []int32, order int) []float64 {
	n := len(x)
	a.xw = grow(a.xw, n)
	a.r = grow(a.r, order+1)
	a.par = grow(a.par, order)
	a.e = grow(a.e, order+1)

	kind := a.win.resolve(n)
	var sq float64
	if kind == WindowRect {
		for i, v := range x {
			f := float64(v)
			a.xw[i] = f
			sq += f * f
		}
	} else {
		w := a.window(kind, n)
		for i, v := range x {
			f := float64(v)
			a.xw[i] = f * w[i]
			sq += f * f
		}
	}
	if n > 0 {
		a.variance = sq / float64(n)
	} else {
		a.variance = 0
	}

	Autocorr(a.xw, a.r)
	a.c = grow(a.c, order+1)
	a.tmp = grow(a.tmp, order+1)
	levinson(a.r, a.par, a.e, a.c, a.tmp)
	return a.par
}

func (a *Analyzer) window(kind Window, n int) []float64 {
	w, ok := a.windows[n]
	if !ok {
		w = makeWindow(kind, n)
		a.windows[n] = w
	}
	return w
}

// levinson runs the Levinson-Durbin recursion on r and writes len(par)
// reflection coefficients. e[m] receives the error energy after order m.
// The recursion stops when the energy vanishes; the remaining
// coefficients are zero.
func levinson(r, par, e, c, tmp []float64) {
	order := len(par)
	clear(par)
	clear(c)
	// Slight lag-0 conditioning keeps |par| < 1 under rounding.
	r0 := r[0] * (1 + 1e-9)
	e[0] = r0
	for m := 1; m <= order; m++ {
		e[m] = e[m-1]
	}
	if r0 <= 0 {
		return
	}
	energy := r0
	for m := 1; m <= order; m++ {
		acc := r[m]
		for i := 1; i < m; i++ {
			acc += c[i] * r[m-i]
		}
		k := -acc / energy
		if math.IsNaN(k) || k >= 1 || k <= -1 {
			return
		}
		copy(tmp[1:m], c[1:m])
		for i := 1; i < m; i++ {
			c[i] = tmp[i] + k*tmp[m-i]
		}
		c[m] = k
		par[m-1] = k
		energy *= 1 - k*k
		e[m] = energy
		for j := m + 1; j <= order; j++ {
			e[j] = energy
		}
		if energy <= 0 {
			return
		}
	}
}

func grow(s []float64, n int) []float64 {
	if cap(s) < n {
		return make([]float64, n)
	}
	return s[:n]
}
