package mcc

import "math"

// CostFunc returns the coded size in bits of channel c when its residual
// is d.
type CostFunc func(c int, d []int32) int

// Searcher chooses the correlation entries of the channels of a block.
// It is not safe for concurrent use.
type Searcher struct {
	RefBits uint // Width of a channel index
	LagBits uint // Width of a lag magnitude

	tmp []int32
}

type candidate struct {
	side Side
	gain int
}

// Search returns one entry list per channel for the residuals res.
// Only channels marked in eligible take part, as dependents or as
// references. A reference never has a reference of its own, so the
// decoder restores every channel in one pass. The residuals of dependent
// channels are replaced by their correlation-reduced versions.
func (s *Searcher) Search(res [][]int32, eligible []bool, cost CostFunc) [][]Side {
	nch := len(res)
	sides := make([][]Side, nch)
	for c := range sides {
		sides[c] = []Side{Self(c)}
	}
	if nch < 2 {
		return sides
	}

	base := make([]int, nch)
	for c := range res {
		if eligible[c] {
			base[c] = cost(c, res[c]) + Bits(sides[c], c, s.RefBits, s.LagBits)
		}
	}

	cands := make([][]candidate, nch)
	for c := range res {
		if !eligible[c] {
			continue
		}
		for m := range res {
			if m == c || !eligible[m] {
				continue
			}
			if cd, ok := s.try(res, c, m, base[c], cost); ok {
				cands[c] = append(cands[c], cd)
			}
		}
	}

	dependent := make([]bool, nch)
	reference := make([]bool, nch)
	for {
		bc, bi := -1, -1
		for c := range cands {
			if dependent[c] || reference[c] {
				continue
			}
			for i, cd := range cands[c] {
				if dependent[cd.side.Ref] {
					continue
				}
				if bc < 0 || cd.gain > cands[bc][bi].gain {
					bc, bi = c, i
				}
			}
		}
		if bc < 0 {
			break
		}
		side := cands[bc][bi].side
		sides[bc][0] = side
		dependent[bc] = true
		reference[side.Ref] = true
	}

	for c := range res {
		if dependent[c] {
			Subtract(res[c], res[sides[c][0].Ref], &sides[c][0])
		}
	}
	return sides
}

// try returns the better of the three and six tap entries of channel c
// against reference m, if it saves bits.
func (s *Searcher) try(res [][]int32, c, m, base int, cost CostFunc) (candidate, bool) {
	d, ref := res[c], res[m]
	n := len(d)
	var out candidate
	found := false

	eval := func(side Side) {
		s.tmp = append(s.tmp[:0], d...)
		Subtract(s.tmp, ref, &side)
		gain := base - cost(c, s.tmp) - Bits([]Side{side}, c, s.RefBits, s.LagBits)
		if gain > 0 && (!found || gain > out.gain) {
			out = candidate{side: side, gain: gain}
			found = true
		}
	}

	if n < 3 {
		return out, false
	}
	three := Side{Ref: m, Mode: ThreeTap}
	if fit(d, ref, &three) {
		eval(three)
	}

	if lag, ok := s.bestLag(d, ref); ok {
		six := Side{Ref: m, Mode: SixTap, Lag: lag}
		if fit(d, ref, &six) {
			eval(six)
		}
	}
	return out, found
}

// bestLag returns the lag whose shifted reference correlates best with d.
func (s *Searcher) bestLag(d, ref []int32) (int, bool) {
	n := len(d)
	maxLag := MinLag + 1<<s.LagBits - 1
	bestLag, bestScore := 0, 0.0
	for mag := MinLag; mag <= maxLag; mag++ {
		for _, lag := range [2]int{mag, -mag} {
			side := Side{Mode: SixTap, Lag: lag}
			begin, end := span(&side, n)
			if end-begin < 8 {
				continue
			}
			var cr, e float64
			for i := begin; i < end; i++ {
				r := float64(ref[i+lag])
				cr += float64(d[i]) * r
				e += r * r
			}
			if e == 0 {
				continue
			}
			if score := cr * cr / e; score > bestScore {
				bestLag, bestScore = lag, score
			}
		}
	}
	return bestLag, bestLag != 0
}

// fit sets the weight indices of side to the quantized least-squares
// weights. It reports false when the system is singular.
func fit(d, ref []int32, side *Side) bool {
	k := side.taps()
	begin, end := span(side, len(d))
	if end-begin < 2*k {
		return false
	}
	offsets := [Taps]int{-1, 0, 1}
	if side.Mode == SixTap {
		offsets[3], offsets[4], offsets[5] = side.Lag-1, side.Lag, side.Lag+1
	}

	var a [Taps][Taps + 1]float64
	var f [Taps]float64
	for i := begin; i < end; i++ {
		for p := 0; p < k; p++ {
			f[p] = float64(ref[i+offsets[p]])
		}
		t := float64(d[i])
		for p := 0; p < k; p++ {
			for q := p; q < k; q++ {
				a[p][q] += f[p] * f[q]
			}
			a[p][k] += f[p] * t
		}
	}
	for p := 0; p < k; p++ {
		for q := 0; q < p; q++ {
			a[p][q] = a[q][p]
		}
		a[p][p] *= 1 + 1e-9
	}

	var w [Taps]float64
	if !solve(a[:k], w[:k], k) {
		return false
	}
	for p := 0; p < k; p++ {
		side.Weight[p] = quantize(w[p])
	}
	return true
}

// solve runs Gaussian elimination with partial pivoting on the augmented
// k x (k+1) system a.
func solve(a [][Taps + 1]float64, w []float64, k int) bool {
	for col := 0; col < k; col++ {
		piv := col
		for r := col + 1; r < k; r++ {
			if math.Abs(a[r][col]) > math.Abs(a[piv][col]) {
				piv = r
			}
		}
		if a[piv][col] == 0 {
			return false
		}
		a[col], a[piv] = a[piv], a[col]
		for r := col + 1; r < k; r++ {
			f := a[r][col] / a[col][col]
			for q := col; q <= k; q++ {
				a[r][q] -= f * a[col][q]
			}
		}
	}
	for r := k - 1; r >= 0; r-- {
		v := a[r][k]
		for q := r + 1; q < k; q++ {
			v -= a[r][q] * w[q]
		}
		w[r] = v / a[r][r]
	}
	return true
}

// quantize returns the index of the table weight nearest to w.
func quantize(w float64) int {
	target := w * 128
	best := 0
	for i := range weights {
		if math.Abs(float64(weights[i])-target) < math.Abs(float64(weights[best])-target) {
			best = i
		}
	}
	return best
}
