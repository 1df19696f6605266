package rlslms

import "math"

const (
	weightQ   = 16
	maxWeight = 1 << 20
	maxSignal = math.MaxInt32
)

// delayLine keeps the last n values of a signal, newest first.
type delayLine struct {
	buf []int64
	pos int
	n   int
}

func newDelayLine(n int) delayLine {
	return delayLine{buf: make([]int64, 2*n), pos: n, n: n}
}

func (d *delayLine) taps() []int64 {
	return d.buf[d.pos : d.pos+d.n]
}

func (d *delayLine) push(v int64) {
	if d.n == 0 {
		return
	}
	if d.pos == 0 {
		copy(d.buf[d.n:], d.buf[:d.n])
		d.pos = d.n
	}
	d.pos--
	d.buf[d.pos] = v
}

// longStage is a sign-sign LMS stage.
type longStage struct {
	in delayLine
	w  []int64
	mu int64
}

// Cascade is the predictor state of one channel. The zero value is not
// usable; call Reset first.
type Cascade struct {
	prev int64 // Last sample, the DPCM prediction

	own       delayLine // DPCM residuals of this channel
	w         []int64   // Weights of own
	cross     []int64   // Weights of the other channel's DPCM residuals
	ownNorm   int64     // Smoothed magnitude of own input
	crossNorm int64     // Smoothed magnitude of cross input
	step      int64
	lambda    [2]int64

	long []longStage

	joint bool
	p     [MaxStages]int64 // Stage predictions of the pending sample
}

// Reset clears the state and sizes the cascade for t. joint enables the
// cross-channel taps of the short stage.
func (c *Cascade) Reset(t *Table, joint bool) {
	l := t.Lengths[1]
	c.prev = 0
	c.own = newDelayLine(l)
	c.w = make([]int64, l)
	c.cross = nil
	if joint {
		c.cross = make([]int64, l)
	}
	c.ownNorm, c.crossNorm = 0, 0
	c.step = int64(t.Step) * StepUnit >> (24 - weightQ)
	c.lambda = [2]int64{int64(t.Lambda[0]), int64(t.Lambda[1])}
	c.long = c.long[:0]
	for i := 2; i < t.Stages; i++ {
		c.long = append(c.long, longStage{
			in: newDelayLine(t.Lengths[i]),
			w:  make([]int64, t.Lengths[i]),
			mu: int64(t.Mu[i]),
		})
	}
	c.joint = joint
}

func clampSignal(v int64) int64 {
	return min(max(v, -maxSignal), maxSignal)
}

func sign(v int64) int64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func dot(w, h []int64) int64 {
	var acc int64
	for i, v := range w {
		acc += v * h[i]
	}
	return acc
}

func rounded(acc int64) int64 {
	return (acc + 1<<(weightQ-1)) >> weightQ
}

// predict returns the prediction of the next sample. other is the pair
// partner in joint mode; its DPCM residual history is read as is.
func (c *Cascade) predict(other *Cascade) int32 {
	c.p[0] = c.prev
	total := c.prev
	if len(c.w) > 0 {
		acc := dot(c.w, c.own.taps())
		if c.joint && other != nil {
			acc += dot(c.cross, other.own.taps())
		}
		c.p[1] = clampSignal(rounded(acc))
		total += c.p[1]
	}
	for i := range c.long {
		s := &c.long[i]
		c.p[i+2] = clampSignal(rounded(dot(s.w, s.in.taps())))
		total += c.p[i+2]
	}
	return int32(clampSignal(total))
}

// update adapts the cascade to the sample x that followed the last
// prediction.
func (c *Cascade) update(x int32, other *Cascade) {
	e := clampSignal(int64(x) - c.p[0])
	e0 := e

	if len(c.w) > 0 {
		e1 := clampSignal(e - c.p[1])
		if sg := sign(e1); sg != 0 {
			adapt(c.w, c.own.taps(), sg*c.step, c.ownNorm)
			if c.joint && other != nil {
				adapt(c.cross, other.own.taps(), sg*c.step, c.crossNorm)
			}
		}
		e = e1
	}

	for i := range c.long {
		s := &c.long[i]
		ei := clampSignal(e - c.p[i+2])
		if sg := sign(ei); sg != 0 && s.mu != 0 {
			h := s.in.taps()
			for k := range s.w {
				s.w[k] = clampWeight(s.w[k] + sg*sign(h[k])*s.mu)
			}
		}
		s.in.push(e)
		e = ei
	}

	if len(c.w) > 0 {
		c.own.push(e0)
		c.ownNorm = smooth(c.ownNorm, e0, c.lambda[0])
		if c.joint && other != nil {
			c.crossNorm = smooth(c.crossNorm, lastOf(&other.own), c.lambda[1])
		}
	}
	c.prev = int64(x)
}

// lastOf returns the newest value of d.
func lastOf(d *delayLine) int64 {
	if d.n == 0 {
		return 0
	}
	return d.buf[d.pos]
}

// adapt moves each weight by step*h/norm in the direction of the error.
func adapt(w, h []int64, step, norm int64) {
	norm++
	for k := range w {
		w[k] = clampWeight(w[k] + step*h[k]/norm)
	}
}

func clampWeight(v int64) int64 {
	return min(max(v, -maxWeight), maxWeight)
}

// smooth updates a Q10 exponentially smoothed magnitude.
func smooth(avg, v int64, lambda int64) int64 {
	if v < 0 {
		v = -v
	}
	return (avg*lambda + v*(1024-lambda)) >> 10
}
