package rlslms

// Source says how the samples of a channel are obtained during synthesis.
type Source uint8

const (
	Predicted Source = iota // Residual plus cascade prediction
	Literal                 // Already known, as for zero and constant blocks
	Mono                    // Residual plus the first channel of the pair
)

// Analyze writes the prediction residual of x to d and adapts c. d may be
// nil to only adapt.
func Analyze(c *Cascade, x, d []int32) {
	for i, v := range x {
		p := c.predict(nil)
		if d != nil {
			d[i] = v - p
		}
		c.update(v, nil)
	}
}

// Synthesize reconstructs x from the residual d and adapts c. For a Literal
// source x already holds the samples and d is ignored.
func Synthesize(c *Cascade, src Source, d, x []int32) {
	for i := range x {
		p := c.predict(nil)
		if src != Literal {
			x[i] = d[i] + p
		}
		c.update(x[i], nil)
	}
}

// AnalyzeJoint is Analyze for the two channels of a joint pair, which see
// each other's DPCM residuals. Either residual slice may be nil.
func AnalyzeJoint(c0, c1 *Cascade, x0, x1, d0, d1 []int32) {
	for i := range x0 {
		p := c0.predict(c1)
		if d0 != nil {
			d0[i] = x0[i] - p
		}
		c0.update(x0[i], c1)

		p = c1.predict(c0)
		if d1 != nil {
			d1[i] = x1[i] - p
		}
		c1.update(x1[i], c0)
	}
}

// SynthesizeJoint is Synthesize for a joint pair. src1 may be Mono, in
// which case x1 = x0 + d1.
func SynthesizeJoint(c0, c1 *Cascade, src0, src1 Source, d0, d1, x0, x1 []int32) {
	for i := range x0 {
		p := c0.predict(c1)
		if src0 != Literal {
			x0[i] = d0[i] + p
		}
		c0.update(x0[i], c1)

		p = c1.predict(c0)
		switch src1 {
		case Predicted:
			x1[i] = d1[i] + p
		case Mono:
			x1[i] = x0[i] + d1[i]
		}
		c1.update(x1[i], c0)
	}
}
