// Package ltp implements long-term prediction: a five-tap predictor that
// removes periodic structure left in the short-term residual of a block.
//
// Gains are Q7. Prediction only reads residual samples of the same block,
// so a block decodes without state from its predecessors.
package ltp

import (
	"errors"
	"math"

	"github.com/thesyncim/goals/internal/bitio"
)

// ErrInvalidGain is returned when the central gain code is out of range.
var ErrInvalidGain = errors.New("ltp: invalid central gain code")

// Taps is the number of predictor taps centred on the lag.
const Taps = 5

// centerGains are the allowed values of the central tap, indexed by a
// unary row and a 2-bit column.
var centerGains = [4][4]int32{
	{0, 8, 16, 24},
	{32, 40, 48, 56},
	{64, 70, 76, 82},
	{88, 92, 96, 100},
}

// Params is the side information of a block using long-term prediction.
type Params struct {
	Gain [Taps]int32 // Q7 weights of samples lag-2 .. lag+2 back
	Lag  int
}

// LagBits returns the width of the coded lag for a sample rate.
func LagBits(sampleRate int) uint {
	n := uint(8)
	if sampleRate >= 96000 {
		n++
	}
	if sampleRate >= 192000 {
		n++
	}
	return n
}

// MinLag returns the smallest lag allowed with a short-term predictor of
// the given order.
func MinLag(order int) int {
	return max(4, order+1)
}

// Encode writes p. order is the block's short-term predictor order.
func Encode(w *bitio.Writer, p *Params, order, sampleRate int) {
	w.WriteRice(p.Gain[0]>>3, 1)
	w.WriteRice(p.Gain[1]>>3, 2)
	r, c := centerIndex(p.Gain[2])
	for i := 0; i < r; i++ {
		w.WriteBit(1)
	}
	w.WriteBit(0)
	w.WriteBits(uint32(c), 2)
	w.WriteRice(p.Gain[3]>>3, 2)
	w.WriteRice(p.Gain[4]>>3, 1)
	w.WriteBits(uint32(p.Lag-MinLag(order)), LagBits(sampleRate))
}

// Decode reads the parameters written by Encode.
func Decode(r *bitio.Reader, order, sampleRate int) (Params, error) {
	var p Params
	p.Gain[0] = r.ReadRice(1) * 8
	p.Gain[1] = r.ReadRice(2) * 8
	row := 0
	for row < 4 && r.ReadBit() == 1 {
		row++
	}
	if row == 4 {
		return p, ErrInvalidGain
	}
	p.Gain[2] = centerGains[row][r.ReadBits(2)]
	p.Gain[3] = r.ReadRice(2) * 8
	p.Gain[4] = r.ReadRice(1) * 8
	p.Lag = int(r.ReadBits(LagBits(sampleRate))) + MinLag(order)
	return p, r.Err()
}

// Bits returns the number of bits Encode writes for p.
func Bits(p *Params, sampleRate int) int {
	r, _ := centerIndex(p.Gain[2])
	return bitio.RiceBits(p.Gain[0]>>3, 1) +
		bitio.RiceBits(p.Gain[1]>>3, 2) +
		r + 1 + 2 +
		bitio.RiceBits(p.Gain[3]>>3, 2) +
		bitio.RiceBits(p.Gain[4]>>3, 1) +
		int(LagBits(sampleRate))
}

func centerIndex(g int32) (int, int) {
	for i := 0; i < 16; i++ {
		if centerGains[i>>2][i&3] == g {
			return i >> 2, i & 3
		}
	}
	return 0, 0
}

func predict(d []int32, p *Params, n int) int32 {
	center := n - p.Lag
	begin := max(0, center-2)
	tab := Taps - (center + 3 - begin)
	y := int64(64)
	for base := begin; base < center+3; base++ {
		y += int64(p.Gain[tab]) * int64(d[base])
		tab++
	}
	return int32(y >> 7)
}

// Subtract writes the long-term prediction error of d to e.
func Subtract(d []int32, p *Params, e []int32) {
	start := max(p.Lag-2, 0)
	copy(e[:min(start, len(d))], d)
	for n := start; n < len(d); n++ {
		e[n] = d[n] - predict(d, p, n)
	}
}

// Reconstruct inverts Subtract in place.
func Reconstruct(d []int32, p *Params) {
	for n := max(p.Lag-2, 0); n < len(d); n++ {
		d[n] += predict(d, p, n)
	}
}

// Analyze searches a lag and gains for the residual d of a block whose
// short-term predictor has the given order. It reports false when no
// periodic component is worth coding.
func Analyze(d []int32, order, sampleRate int) (Params, bool) {
	var p Params
	lo := MinLag(order)
	hi := min(lo+1<<LagBits(sampleRate)-1, len(d)-8)
	if hi < lo {
		return p, false
	}

	f := make([]float64, len(d))
	var total float64
	for i, v := range d {
		f[i] = float64(v)
		total += f[i] * f[i]
	}
	if total == 0 {
		return p, false
	}

	bestLag, bestScore := 0, 0.0
	for lag := lo; lag <= hi; lag++ {
		var c, e float64
		for n := lag; n < len(f); n++ {
			c += f[n] * f[n-lag]
			e += f[n-lag] * f[n-lag]
		}
		if c <= 0 || e == 0 {
			continue
		}
		if s := c * c / e; s > bestScore {
			bestLag, bestScore = lag, s
		}
	}
	// Require the lag to explain a useful share of the energy.
	if bestLag == 0 || bestScore < 0.05*total {
		return p, false
	}
	p.Lag = bestLag

	g := solveGains(f, bestLag)
	for i, v := range g {
		if i == 2 {
			p.Gain[i] = nearestCenter(v * 128)
			continue
		}
		q := math.Round(v * 128 / 8)
		q = math.Max(-16, math.Min(15, q))
		p.Gain[i] = int32(q) * 8
	}
	if p.Gain == [Taps]int32{} {
		return p, false
	}
	return p, true
}

func nearestCenter(g float64) int32 {
	best := centerGains[0][0]
	bestDist := math.Inf(1)
	for _, row := range centerGains {
		for _, v := range row {
			if dist := math.Abs(float64(v) - g); dist < bestDist {
				best, bestDist = v, dist
			}
		}
	}
	return best
}

// solveGains fits the five taps around lag by least squares over the
// samples where all taps are available. A singular system falls back to
// the single central tap.
func solveGains(f []float64, lag int) [Taps]float64 {
	var a [Taps][Taps + 1]float64
	for n := lag + 2; n < len(f); n++ {
		c := n - lag
		for i := 0; i < Taps; i++ {
			ui := f[c-2+i]
			for j := 0; j < Taps; j++ {
				a[i][j] += ui * f[c-2+j]
			}
			a[i][Taps] += ui * f[n]
		}
	}
	var g [Taps]float64
	if a[2][2] == 0 {
		return g
	}
	center := a[2][Taps] / a[2][2]

	for i := 0; i < Taps; i++ {
		a[i][i] *= 1 + 1e-9
	}
	for col := 0; col < Taps; col++ {
		piv := col
		for r := col + 1; r < Taps; r++ {
			if math.Abs(a[r][col]) > math.Abs(a[piv][col]) {
				piv = r
			}
		}
		if math.Abs(a[piv][col]) < 1e-12*math.Abs(a[2][2]) {
			g[2] = center
			return g
		}
		a[col], a[piv] = a[piv], a[col]
		for r := col + 1; r < Taps; r++ {
			m := a[r][col] / a[col][col]
			for k := col; k <= Taps; k++ {
				a[r][k] -= m * a[col][k]
			}
		}
	}
	for i := Taps - 1; i >= 0; i-- {
		s := a[i][Taps]
		for k := i + 1; k < Taps; k++ {
			s -= a[i][k] * g[k]
		}
		g[i] = s / a[i][i]
	}
	return g
}
