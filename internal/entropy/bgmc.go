package entropy

import (
	"math"

	"github.com/thesyncim/goals/internal/bitio"
	"github.com/thesyncim/goals/internal/rangecoding"
)

// MaxBGMCSub is the largest number of BGMC sub-blocks in a block.
const MaxBGMCSub = 8

// bgmcLayout holds the per sub-block split between arithmetic-coded MSBs
// and literal LSBs.
type bgmcLayout struct {
	k     uint   // LSBs sent as literal bits
	delta uint   // Distribution thinning step
	maxX  uint32 // Tail threshold for the folded prefix
}

// Balance returns the bit balance b for a block of nn samples:
// clamp((ceil(log2 nn) - 3) >> 1, 0, 5).
func Balance(nn int) uint {
	i := 1
	for nn > 1<<i {
		i++
	}
	b := (i - 3) >> 1
	if b < 0 {
		b = 0
	} else if b > 5 {
		b = 5
	}
	return uint(b)
}

func layout(s uint, sx int, b uint) bgmcLayout {
	var k uint
	if s >= b {
		k = s - b
	}
	delta := 5 - (s - k)
	return bgmcLayout{k: k, delta: delta, maxX: rangecoding.MaxX(sx, delta)}
}

// subBlocks returns the sample ranges of sub-blocks for a block of nn
// samples whose first start samples are coded elsewhere.
func subBlocks(nn, start, sub int) (lo, hi []int) {
	x := nn / sub
	lo = make([]int, sub)
	hi = make([]int, sub)
	pos := start
	for j := 0; j < sub; j++ {
		end := (j + 1) * x
		lo[j], hi[j] = pos, end
		pos = end
	}
	return lo, hi
}

// prefix folds the MSBs of v into a BGMC symbol, escaping tails.
func prefix(v int32, l bgmcLayout, tail uint32) uint32 {
	m := int64(v>>l.k) << 1
	if m < 0 {
		m = -m - 1
	}
	x := uint64(m)
	switch {
	case x >= uint64(l.maxX):
		return tail
	case x >= uint64(tail):
		return uint32(x) + 1
	}
	return uint32(x)
}

// EncodeBGMC writes d[start:] as len(s) BGMC sub-blocks with parameters s
// and sx. The sub-block length is len(d)/len(s); the first sub-block is
// shortened by start.
func EncodeBGMC(w *bitio.Writer, d []int32, start int, s []uint, sx []int) {
	nn := len(d)
	sub := len(s)
	b := Balance(nn)
	lo, hi := subBlocks(nn, start, sub)
	lay := make([]bgmcLayout, sub)
	for j := range lay {
		lay[j] = layout(s[j], sx[j], b)
	}

	var enc rangecoding.Encoder
	enc.Init(w)
	for j := 0; j < sub; j++ {
		tail := rangecoding.TailCode(sx[j], lay[j].delta)
		for _, v := range d[lo[j]:hi[j]] {
			enc.Encode(prefix(v, lay[j], tail), lay[j].delta, sx[j])
		}
	}
	enc.Done()

	for j := 0; j < sub; j++ {
		l := lay[j]
		absMax := int64(l.maxX+1) >> 1
		mask := uint32(1)<<l.k - 1
		for _, v := range d[lo[j]:hi[j]] {
			m := int64(v >> l.k)
			switch {
			case m >= absMax:
				w.WriteRice(int32(int64(v)-absMax<<l.k), s[j])
			case m <= -absMax:
				w.WriteRice(int32(int64(v)+(absMax-1)<<l.k), s[j])
			case l.k > 0:
				w.WriteBits(uint32(v)&mask, l.k)
			}
		}
	}
}

// DecodeBGMC reads values written by EncodeBGMC into d[start:].
func DecodeBGMC(r *bitio.Reader, d []int32, start int, s []uint, sx []int) {
	nn := len(d)
	sub := len(s)
	b := Balance(nn)
	lo, hi := subBlocks(nn, start, sub)
	lay := make([]bgmcLayout, sub)
	for j := range lay {
		lay[j] = layout(s[j], sx[j], b)
	}

	var dec rangecoding.Decoder
	dec.Init(r)
	for j := 0; j < sub; j++ {
		for i := lo[j]; i < hi[j]; i++ {
			d[i] = int32(dec.Decode(lay[j].delta, sx[j]))
		}
	}
	dec.Done()

	for j := 0; j < sub; j++ {
		l := lay[j]
		tail := rangecoding.TailCode(sx[j], l.delta)
		absMax := int64(l.maxX+1) >> 1
		for i := lo[j]; i < hi[j]; i++ {
			x := uint32(d[i])
			if x == tail {
				v := int64(r.ReadRice(s[j]))
				if v >= 0 {
					v += absMax << l.k
				} else {
					v -= (absMax - 1) << l.k
				}
				d[i] = int32(v)
				continue
			}
			if x > tail {
				x--
			}
			m := int64(x >> 1)
			if x&1 != 0 {
				m = -m - 1
			}
			if l.k > 0 {
				m = m<<l.k | int64(r.ReadBits(l.k))
			}
			d[i] = int32(m)
		}
	}
}

// symbolCost[sx][delta][x] is -log2 of the probability of symbol x.
var symbolCost [16][6][]float32

func init() {
	for sx := 0; sx < 16; sx++ {
		for delta := uint(0); delta < 6; delta++ {
			n := rangecoding.Symbols(sx, delta)
			c := make([]float32, n)
			for x := 0; x < n; x++ {
				p := rangecoding.Freq(sx, delta, uint32(x)) - rangecoding.Freq(sx, delta, uint32(x+1))
				c[x] = float32(rangecoding.FreqBits - math.Log2(float64(p)))
			}
			symbolCost[sx][delta] = c
		}
	}
}

// BGMCCost estimates the bits needed to code d (a sub-block of a block of
// nn samples) with parameters s and sx.
func BGMCCost(d []int32, nn int, s uint, sx int) float64 {
	l := layout(s, sx, Balance(nn))
	tail := rangecoding.TailCode(sx, l.delta)
	costs := symbolCost[sx][l.delta]
	absMax := int64(l.maxX+1) >> 1
	var total float64
	literal := 0
	for _, v := range d {
		x := prefix(v, l, tail)
		total += float64(costs[x])
		if x == tail {
			m := int64(v >> l.k)
			if m >= absMax {
				literal += bitio.RiceBits(int32(int64(v)-absMax<<l.k), s)
			} else {
				literal += bitio.RiceBits(int32(int64(v)+(absMax-1)<<l.k), s)
			}
			continue
		}
		literal += int(l.k)
	}
	return total + float64(literal)
}

// BGMCParam returns the (s, sx) pair with the lowest estimated cost for d,
// a sub-block of a block of nn samples. s is limited to maxS.
func BGMCParam(d []int32, nn int, maxS uint) (uint, int) {
	if len(d) == 0 {
		return 0, 0
	}
	center := RiceParam(d, maxS)
	bestS, bestSX := center, 0
	best := math.Inf(1)
	lo := uint(0)
	if center > 2 {
		lo = center - 2
	}
	hi := center + 1
	if hi > maxS {
		hi = maxS
	}
	for s := lo; s <= hi; s++ {
		if c := BGMCCost(d, nn, s, 8); c < best {
			best, bestS = c, s
		}
	}
	best = math.Inf(1)
	for sx := 0; sx < 16; sx++ {
		if c := BGMCCost(d, nn, bestS, sx); c < best {
			best, bestSX = c, sx
		}
	}
	return bestS, bestSX
}
