// Package lpc implements the short-term linear prediction stage of ALS:
// PARCOR estimation from windowed autocorrelation, the companded
// quantizer and its entropy code, conversion to direct-form coefficients
// at Q20 and the residual filters used by the block codec.
//
// All prediction arithmetic is integer and shared by the encoder and the
// decoder. Sums are accumulated in int64 and every sample operation wraps
// in int32, so decode(encode(x)) == x even when the predictor overflows.
package lpc

// Q is the fixed-point precision of direct-form coefficients.
const Q = 20

// MaxOrder is the largest predictor order the bitstream can signal.
const MaxOrder = 1023

// MaxOrderFor returns the largest order usable in a block of n samples
// when the order is chosen adaptively: min(p, n/8-1), at least 1.
func MaxOrderFor(p, n int) int {
	pmax := p
	if p >= n>>3 {
		pmax = n>>3 - 1
	}
	if pmax < 1 {
		pmax = 1
	}
	return pmax
}

// OrderBits returns the width of the adaptive order field for pmax:
// floor(log2 pmax) + 1.
func OrderBits(pmax int) uint {
	h := 9
	for h > 0 && pmax < 1<<h {
		h--
	}
	return uint(h + 1)
}
