package lpc

import "math"

// Autocorr computes r[k] = sum x[i]*x[i-k] for k in [0, len(r)).
// Lags at or beyond len(x) are zero.
func Autocorr(x []float64, r []float64) {
	lags := len(r)
	if lags > len(x) {
		clear(r[len(x):])
		lags = len(x)
	}
	autocorrImpl(x, r[:lags])
}

// autocorrLags4 evaluates four lags per sweep over x. Every lag still sums
// its products in ascending i, so each lag is summed
// exactly as a plain loop over i would.
func autocorrLags4(x []float64, r []float64) {
	n := len(x)
	lags := len(r)
	k := 0
	for ; k+4 <= lags; k += 4 {
		var s0, s1, s2, s3 float64
		// Head: indices where only the shorter lags have a partner.
		for i := k; i < k+3 && i < n; i++ {
			s0 += x[i] * x[i-k]
			if i >= k+1 {
				s1 += x[i] * x[i-k-1]
			}
			if i >= k+2 {
				s2 += x[i] * x[i-k-2]
			}
		}
		for i := k + 3; i < n; i++ {
			xi := x[i]
			s0 += xi * x[i-k]
			s1 += xi * x[i-k-1]
			s2 += xi * x[i-k-2]
			s3 += xi * x[i-k-3]
		}
		r[k], r[k+1], r[k+2], r[k+3] = s0, s1, s2, s3
	}
	if k < lags {
		autocorrTail(x, r, k)
	}
}

// autocorrLags4FMA is autocorrLags4 with fused multiply-adds. Each product
// is rounded once together with its sum, so lags may differ from
// autocorrLags4 in the last bits.
func autocorrLags4FMA(x []float64, r []float64) {
	n := len(x)
	lags := len(r)
	k := 0
	for ; k+4 <= lags; k += 4 {
		var s0, s1, s2, s3 float64
		for i := k; i < k+3 && i < n; i++ {
			s0 = math.FMA(x[i], x[i-k], s0)
			if i >= k+1 {
				s1 = math.FMA(x[i], x[i-k-1], s1)
			}
			if i >= k+2 {
				s2 = math.FMA(x[i], x[i-k-2], s2)
			}
		}
		for i := k + 3; i < n; i++ {
			xi := x[i]
			s0 = math.FMA(xi, x[i-k], s0)
			s1 = math.FMA(xi, x[i-k-1], s1)
			s2 = math.FMA(xi, x[i-k-2], s2)
			s3 = math.FMA(xi, x[i-k-3], s3)
		}
		r[k], r[k+1], r[k+2], r[k+3] = s0, s1, s2, s3
	}
	for ; k < lags; k++ {
		var s float64
		for i := k; i < n; i++ {
			s = math.FMA(x[i], x[i-k], s)
		}
		r[k] = s
	}
}

func autocorrTail(x []float64, r []float64, from int) {
	n := len(x)
	for k := from; k < len(r); k++ {
		var s float64
		for i := k; i < n; i++ {
			s += x[i] * x[i-k]
		}
		r[k] = s
	}
}
