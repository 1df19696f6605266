package lpc

import "math"

// BestOrder picks the predictor order in [0, pmax] with the lowest
// estimated block cost after Analyze was called with an order of at least
// pmax. asi must hold the quantized indices of the analyzed coefficients.
//
// The residual cost is modelled from the Levinson error energies as
// n/2*log2 of the per-sample variance, floored at one bit per sample; the
// coefficient cost is exact.
func (a *Analyzer) BestOrder(n, pmax int, asi []int32, table int) int {
	if pmax > len(a.par) {
		pmax = len(a.par)
	}
	if pmax > len(asi) {
		pmax = len(asi)
	}
	e0 := a.e[0]
	if e0 <= 0 || a.variance <= 0 {
		return 0
	}
	half := float64(n) / 2
	best, bestCost := 0, half*math.Log2(math.Max(a.variance, 1))
	coefBits := 0
	for p := 1; p <= pmax; p++ {
		coefBits += CoefficientBits(p-1, asi[p-1], table)
		v := a.variance * a.e[p] / e0
		cost := half*math.Log2(math.Max(v, 1)) + float64(coefBits)
		if cost < bestCost {
			best, bestCost = p, cost
		}
	}
	return best
}
