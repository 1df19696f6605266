// Package entropy implements the residual entropy coding layer of ALS:
// Golomb-Rice coding of whole sub-blocks and the two-pass BGMC block code
// built on internal/rangecoding, plus parameter estimation for both.
package entropy

import (
	"math/bits"

	"github.com/thesyncim/goals/internal/bitio"
)

// EncodeRice writes every value of d with Rice parameter s.
func EncodeRice(w *bitio.Writer, d []int32, s uint) {
	for _, v := range d {
		w.WriteRice(v, s)
	}
}

// DecodeRice fills d with values coded with Rice parameter s.
func DecodeRice(r *bitio.Reader, d []int32, s uint) {
	for i := range d {
		d[i] = r.ReadRice(s)
	}
}

// RiceCost returns the number of bits EncodeRice(d, s) produces.
func RiceCost(d []int32, s uint) int {
	total := 0
	if s == 0 {
		for _, v := range d {
			total += bitio.RiceBits(v, 0)
		}
		return total
	}
	for _, v := range d {
		i := uint32(v)
		if v < 0 {
			i = ^i
		}
		total += int(i >> (s - 1))
	}
	return total + len(d)*int(1+s)
}

// RiceParam returns the parameter in [0, maxS] that minimizes RiceCost.
// The search starts from an estimate derived from the mean magnitude.
func RiceParam(d []int32, maxS uint) uint {
	if len(d) == 0 {
		return 0
	}
	var sum uint64
	for _, v := range d {
		if v < 0 {
			sum += uint64(^uint32(v))
		} else {
			sum += uint64(v)
		}
	}
	mean := sum / uint64(len(d))
	guess := uint(bits.Len64(mean)) + 1
	lo := uint(0)
	if guess > 2 {
		lo = guess - 2
	}
	hi := guess + 2
	if hi > maxS {
		hi = maxS
	}
	if lo > hi {
		lo = hi
	}
	best, bestCost := lo, RiceCost(d, lo)
	for s := lo + 1; s <= hi; s++ {
		if c := RiceCost(d, s); c < bestCost {
			best, bestCost = s, c
		}
	}
	return best
}
