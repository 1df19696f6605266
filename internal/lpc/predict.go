package lpc

import "math"

// Par2Cof converts quantized PARCOR values (Q20) to direct-form
// coefficients. cof[k] weights the sample k+1 positions back. It reports
// false when an intermediate coefficient does not fit in int32.
func Par2Cof(parq []int32, cof []int32) bool {
	for k, p := range parq {
		if !stepUp(cof, k, p) {
			return false
		}
	}
	return true
}

// stepUp extends cof[:k] to order k+1 with reflection coefficient p.
func stepUp(cof []int32, k int, p int32) bool {
	i, j := 0, k-1
	for ; i < j; i, j = i+1, j-1 {
		a, b := int64(cof[i]), int64(cof[j])
		ti := a + (int64(p)*b+1<<(Q-1))>>Q
		tj := b + (int64(p)*a+1<<(Q-1))>>Q
		if !fits(ti) || !fits(tj) {
			return false
		}
		cof[i], cof[j] = int32(ti), int32(tj)
	}
	if i == j {
		a := int64(cof[i])
		t := a + (int64(p)*a+1<<(Q-1))>>Q
		if !fits(t) {
			return false
		}
		cof[i] = int32(t)
	}
	cof[k] = p
	return true
}

func fits(v int64) bool {
	return v >= math.MinInt32 && v <= math.MaxInt32
}

func predict(x []int32, cof []int32) int32 {
	y := int64(1) << (Q - 1)
	n := len(x)
	for k, c := range cof {
		y += int64(c) * int64(x[n-1-k])
	}
	return int32(y >> Q)
}

// Residual computes d[n] = x[n] + ((sum cof[k]*x[n-1-k] + 2^19) >> 20)
// for the block buf[hist:]. buf[:hist] is the preceding history and must
// hold at least len(cof) samples.
func Residual(buf []int32, hist int, cof []int32, d []int32) {
	p := len(cof)
	for n := range d {
		at := hist + n
		d[n] = buf[at] + predict(buf[at-p:at], cof)
	}
}

// Synthesize inverts Residual in place: buf[hist+n] = d[n] - prediction.
// d may alias buf[hist:].
func Synthesize(buf []int32, hist int, cof []int32, d []int32) {
	p := len(cof)
	for n := range d {
		at := hist + n
		buf[at] = d[n] - predict(buf[at-p:at], cof)
	}
}

// ResidualRA computes the residual of a block that starts a random access
// unit. Sample n < len(parq) is predicted with order n from samples of the
// block only. cof is scratch of at least len(parq) values and ends up
// holding the full-order coefficients. It reports false when the
// coefficient conversion overflows.
func ResidualRA(x []int32, parq []int32, cof []int32, d []int32) bool {
	p := len(parq)
	ramp := min(p, len(x))
	for n := 0; n < ramp; n++ {
		d[n] = x[n] + predict(x[:n], cof[:n])
		if !stepUp(cof, n, parq[n]) {
			return false
		}
	}
	for k := ramp; k < p; k++ {
		if !stepUp(cof, k, parq[k]) {
			return false
		}
	}
	cof = cof[:p]
	for n := p; n < len(x); n++ {
		d[n] = x[n] + predict(x[n-p:n], cof)
	}
	return true
}

// SynthesizeRA inverts ResidualRA in place on x, which holds the residual
// on entry. It reports false when the coefficient conversion overflows.
func SynthesizeRA(x []int32, parq []int32, cof []int32) bool {
	p := len(parq)
	ramp := min(p, len(x))
	for n := 0; n < ramp; n++ {
		x[n] -= predict(x[:n], cof[:n])
		if !stepUp(cof, n, parq[n]) {
			return false
		}
	}
	for k := ramp; k < p; k++ {
		if !stepUp(cof, k, parq[k]) {
			return false
		}
	}
	cof = cof[:p]
	for n := p; n < len(x); n++ {
		x[n] -= predict(x[n-p:n], cof)
	}
	return true
}
