package block

import (
	"math/bits"

	"github.com/thesyncim/goals/internal/lpc"
	"github.com/thesyncim/goals/internal/ltp"
)

// maxShift is the largest LSB shift the 4-bit field can signal.
const maxShift = 16

// Classify sets the kind of b from the samples x. Normal blocks still need
// Analyze or SetResidual.
func Classify(b *Block, x []int32) {
	b.N = len(x)
	b.Kind = Normal
	if len(x) == 0 {
		b.Kind = Zero
		return
	}
	first := x[0]
	for _, v := range x[1:] {
		if v != first {
			return
		}
	}
	if first == 0 {
		b.Kind = Zero
		return
	}
	b.Kind = Constant
	b.Const = first
}

// lsbShift returns the number of trailing zero bits common to all of x.
func lsbShift(x []int32) uint {
	var or uint32
	for _, v := range x {
		or |= uint32(v)
		if or&1 != 0 {
			return 0
		}
	}
	if or == 0 {
		return 0
	}
	return min(uint(bits.TrailingZeros32(or)), maxShift)
}

// Analyze classifies the block buf[hist:hist+n] and, for a normal block,
// computes its predictor and residual. buf[:hist] is the channel history
// and must hold at least the stream's maximum order. buf is left
// unchanged. ra selects progressive prediction.
func (c *Coder) Analyze(b *Block, buf []int32, hist, n int, ra bool) {
	x := buf[hist : hist+n]
	b.RA = ra
	b.UseLTP = false
	Classify(b, x)
	if b.Kind != Normal {
		return
	}

	pmax := c.maxOrder(n)
	b.Shift = lsbShift(x)
	saved := c.saved[:pmax]
	copy(saved, buf[hist-pmax:hist])
	if b.Shift > 0 {
		for i := hist - pmax; i < hist+n; i++ {
			buf[i] >>= b.Shift
		}
	}

	c.predict(b, buf, hist, n, pmax)

	if b.Shift > 0 {
		for i := hist; i < hist+n; i++ {
			buf[i] <<= b.Shift
		}
	}
	copy(buf[hist-pmax:hist], saved)

	if c.cfg.LTP {
		c.tryLTP(b)
	}
}

// predict runs the short-term analysis on the (shifted) samples.
func (c *Coder) predict(b *Block, buf []int32, hist, n, pmax int) {
	x := buf[hist : hist+n]
	b.Residual = growInt32(b.Residual, n)
	d := b.Residual

	asi := c.asi[:pmax]
	lpc.Quantize(c.an.Analyze(x, pmax), asi)
	order := pmax
	if c.cfg.AdaptiveOrder {
		order = c.an.BestOrder(n, pmax, asi, c.cfg.CoefTable)
	}

	for attempt := 0; ; attempt++ {
		parq := c.parq[:order]
		cof := c.cof[:order]
		lpc.Dequantize(asi[:order], parq)
		var ok bool
		if b.RA {
			ok = lpc.ResidualRA(x, parq, cof, d)
		} else if ok = lpc.Par2Cof(parq, cof); ok {
			lpc.Residual(buf[:hist+n], hist, cof, d)
		}
		if ok || attempt > 0 {
			break
		}
		order = lpc.Fallback(asi[:order], c.cfg.AdaptiveOrder)
	}

	b.Order = order
	b.Asi = append(b.Asi[:0], asi[:order]...)
}

// tryLTP adds long-term prediction when it makes the block smaller.
func (c *Coder) tryLTP(b *Block) {
	p, ok := ltp.Analyze(b.Residual, c.order(b), int(c.cfg.SampleRate))
	if !ok {
		return
	}
	base := c.Bits(b)
	c.alt = growInt32(c.alt, b.N)
	ltp.Subtract(b.Residual, &p, c.alt)
	b.Residual, c.alt = c.alt, b.Residual
	b.UseLTP, b.LTP = true, p
	if c.Bits(b) < base {
		return
	}
	b.Residual, c.alt = c.alt, b.Residual
	b.UseLTP = false
}

// SetResidual prepares a normal block whose residual was computed outside
// the short-term predictor, as in RLS-LMS streams.
func (c *Coder) SetResidual(b *Block, d []int32, ra bool) {
	b.N = len(d)
	b.Kind = Normal
	b.RA = ra
	b.Shift = 0
	b.Order = 0
	b.Asi = b.Asi[:0]
	b.UseLTP = false
	b.Residual = append(b.Residual[:0], d...)
	if c.cfg.LTP {
		c.tryLTP(b)
	}
}
