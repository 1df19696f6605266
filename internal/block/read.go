package block

import (
	"github.com/thesyncim/goals/internal/bitio"
	"github.com/thesyncim/goals/internal/entropy"
	"github.com/thesyncim/goals/internal/lpc"
	"github.com/thesyncim/goals/internal/ltp"
)

// PeekJoint reports whether the block starting at the next byte boundary
// of r carries a difference signal, without consuming it.
func PeekJoint(r *bitio.Reader) bool {
	h := r.PeekByte()
	typ := h >> 6
	return typ == 3 || (typ < 2 && h&0x20 != 0)
}

// Read parses a block of n samples from r into b. The residual of a normal
// block is left in b.Residual for Reconstruct.
func (c *Coder) Read(r *bitio.Reader, b *Block, n int, ra bool) error {
	cfg := c.cfg
	b.N = n
	b.RA = ra
	b.UseLTP = false
	b.Shift = 0

	if r.ReadBit() == 0 {
		if r.ReadBit() == 1 {
			b.Kind = Constant
		} else {
			b.Kind = Zero
		}
		b.Joint = r.ReadBit() == 1
		r.ReadBits(5)
		if b.Kind == Constant {
			b.Const = c.readConst(r)
		}
		return r.Err()
	}

	b.Kind = Normal
	b.Joint = r.ReadBit() == 1

	sub := 1
	switch {
	case cfg.BGMC && cfg.SBPart:
		sub = 1 << r.ReadBits(2)
	case cfg.BGMC || cfg.SBPart:
		if r.ReadBit() == 1 {
			sub = 4
		}
	}
	if n%sub != 0 {
		return ErrInvalidBlock
	}
	b.sub = sub

	if cfg.BGMC {
		packed := int32(r.ReadBits(c.sBits + 4))
		maxPacked := int32(c.maxS<<4 | 15)
		for i := 0; i < sub; i++ {
			if i > 0 {
				packed += r.ReadRice(2)
			}
			if packed < 0 || packed > maxPacked {
				return ErrInvalidBlock
			}
			b.s[i], b.sx[i] = uint(packed>>4), int(packed&15)
		}
	} else {
		s := int32(r.ReadBits(c.sBits))
		for i := 0; i < sub; i++ {
			if i > 0 {
				s += r.ReadRice(0)
			}
			if s < 0 || s > int32(c.maxS) {
				return ErrInvalidBlock
			}
			b.s[i], b.sx[i] = uint(s), 0
		}
	}

	if r.ReadBit() == 1 {
		b.Shift = uint(r.ReadBits(4)) + 1
	}

	if c.rls() {
		b.Order = 0
		b.Asi = b.Asi[:0]
	} else {
		order := cfg.MaxOrder
		if cfg.AdaptiveOrder {
			pmax := c.maxOrder(n)
			order = int(r.ReadBits(lpc.OrderBits(pmax)))
			if order > pmax {
				return ErrInvalidBlock
			}
		}
		b.Order = order
		b.Asi = growInt32(b.Asi, order)
		lpc.DecodeCoefficients(r, b.Asi, cfg.CoefTable)
	}
	order := c.order(b)

	if cfg.LTP && r.ReadBit() == 1 {
		p, err := ltp.Decode(r, order, int(cfg.SampleRate))
		if err != nil {
			return err
		}
		b.UseLTP, b.LTP = true, p
	}

	b.Residual = growInt32(b.Residual, n)
	d := b.Residual
	num := progressive(b, order)
	ps := c.progressiveParams(b.s[0])
	for i := 0; i < num; i++ {
		d[i] = r.ReadRice(ps[i])
	}
	if cfg.BGMC {
		entropy.DecodeBGMC(r, d, num, b.s[:sub], b.sx[:sub])
	} else {
		ns := n / sub
		entropy.DecodeRice(r, d[num:ns], b.s[0])
		for i := 1; i < sub; i++ {
			entropy.DecodeRice(r, d[i*ns:(i+1)*ns], b.s[i])
		}
	}
	return r.Err()
}

func (c *Coder) readConst(r *bitio.Reader) int32 {
	res := uint(c.cfg.IntRes())
	if res == 8 {
		return int32(r.ReadBits(8)) - 128
	}
	return r.ReadSigned(res)
}

// Reconstruct writes the samples of b to buf[hist:hist+b.N]. buf[:hist]
// is the channel history and must hold at least the stream's maximum
// order; it is left unchanged.
func (c *Coder) Reconstruct(b *Block, buf []int32, hist int) error {
	x := buf[hist : hist+b.N]
	switch b.Kind {
	case Zero:
		clear(x)
		return nil
	case Constant:
		for i := range x {
			x[i] = b.Const
		}
		return nil
	}

	d := b.Residual[:b.N]
	if b.UseLTP {
		ltp.Reconstruct(d, &b.LTP)
	}

	order := b.Order
	if order > hist {
		return ErrInvalidBlock
	}
	saved := c.saved[:order]
	copy(saved, buf[hist-order:hist])
	if b.Shift > 0 {
		for i := hist - order; i < hist; i++ {
			buf[i] >>= b.Shift
		}
	}

	parq := c.parq[:order]
	cof := c.cof[:order]
	lpc.Dequantize(b.Asi[:order], parq)
	ok := true
	if b.RA {
		copy(x, d)
		ok = lpc.SynthesizeRA(x, parq, cof)
	} else if ok = lpc.Par2Cof(parq, cof); ok {
		lpc.Synthesize(buf[:hist+b.N], hist, cof, d)
	}

	copy(buf[hist-order:hist], saved)
	if !ok {
		return ErrInvalidBlock
	}
	if b.Shift > 0 {
		for i := range x {
			x[i] <<= b.Shift
		}
	}
	return nil
}

// ReconstructResidual writes the residual of an RLS-LMS block (after long
// term prediction) to out, without short-term synthesis or shift.
func ReconstructResidual(b *Block, out []int32) {
	d := b.Residual[:b.N]
	if b.UseLTP {
		ltp.Reconstruct(d, &b.LTP)
	}
	copy(out, d)
}
