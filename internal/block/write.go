package block

import (
	"github.com/thesyncim/goals/internal/bitio"
	"github.com/thesyncim/goals/internal/entropy"
	"github.com/thesyncim/goals/internal/lpc"
	"github.com/thesyncim/goals/internal/ltp"
	"github.com/thesyncim/goals/util"
)

// Bits returns the size of b in bits as Write would code it.
func (c *Coder) Bits(b *Block) int {
	var w bitio.Writer
	c.Write(&w, b)
	return w.Len()
}

// Write appends b to w, which must be byte aligned. Entropy parameters are
// chosen from the current residual.
func (c *Coder) Write(w *bitio.Writer, b *Block) {
	var j uint32
	if b.Joint {
		j = 1
	}
	switch b.Kind {
	case Zero:
		w.WriteBits(j<<5, 8)
		return
	case Constant:
		w.WriteBits(0x40|j<<5, 8)
		c.writeConst(w, b.Const)
		return
	}

	c.fitEntropy(b)
	order := c.order(b)
	cfg := c.cfg

	w.WriteBits(2|j, 2)
	switch {
	case cfg.BGMC && cfg.SBPart:
		w.WriteBits(uint32(util.Log2(b.sub)), 2)
	case cfg.BGMC || cfg.SBPart:
		w.WriteBit(uint32(b.sub >> 2))
	}

	if cfg.BGMC {
		w.WriteBits(uint32(b.s[0]<<4)|uint32(b.sx[0]), c.sBits+4)
		for i := 1; i < b.sub; i++ {
			prev := int32(b.s[i-1]<<4) | int32(b.sx[i-1])
			cur := int32(b.s[i]<<4) | int32(b.sx[i])
			w.WriteRice(cur-prev, 2)
		}
	} else {
		w.WriteBits(uint32(b.s[0]), c.sBits)
		for i := 1; i < b.sub; i++ {
			w.WriteRice(int32(b.s[i])-int32(b.s[i-1]), 0)
		}
	}

	if b.Shift > 0 {
		w.WriteBit(1)
		w.WriteBits(uint32(b.Shift-1), 4)
	} else {
		w.WriteBit(0)
	}

	if !c.rls() {
		if cfg.AdaptiveOrder {
			w.WriteBits(uint32(b.Order), lpc.OrderBits(c.maxOrder(b.N)))
		}
		lpc.EncodeCoefficients(w, b.Asi[:b.Order], cfg.CoefTable)
	}

	if cfg.LTP {
		if b.UseLTP {
			w.WriteBit(1)
			ltp.Encode(w, &b.LTP, order, int(cfg.SampleRate))
		} else {
			w.WriteBit(0)
		}
	}

	d := b.Residual[:b.N]
	num := progressive(b, order)
	c.writeProgressive(w, d[:num], b.s[0])
	if cfg.BGMC {
		entropy.EncodeBGMC(w, d, num, b.s[:b.sub], b.sx[:b.sub])
		return
	}
	ns := b.N / b.sub
	entropy.EncodeRice(w, d[num:ns], b.s[0])
	for i := 1; i < b.sub; i++ {
		entropy.EncodeRice(w, d[i*ns:(i+1)*ns], b.s[i])
	}
}

// progressiveParams returns the Rice parameters of the first three
// residual samples of a random access block.
func (c *Coder) progressiveParams(s0 uint) [3]uint {
	return [3]uint{uint(c.cfg.Resolution - 4), min(s0+3, 31), min(s0+1, 31)}
}

func (c *Coder) writeProgressive(w *bitio.Writer, d []int32, s0 uint) {
	ps := c.progressiveParams(s0)
	for i, v := range d {
		w.WriteRice(v, ps[i])
	}
}

func (c *Coder) writeConst(w *bitio.Writer, v int32) {
	res := uint(c.cfg.IntRes())
	if res == 8 {
		w.WriteBits(uint32(v+128), 8)
		return
	}
	w.WriteSigned(v, res)
}

// fitEntropy chooses the sub-block count and the entropy parameters of b
// from its residual.
func (c *Coder) fitEntropy(b *Block) {
	cfg := c.cfg
	n := b.N
	sub := 1
	if n >= 512 && n%8 == 0 {
		switch {
		case cfg.BGMC && cfg.SBPart:
			sub = 8
		case cfg.BGMC || cfg.SBPart:
			sub = 4
		}
	}
	num := progressive(b, c.order(b))
	c.fitParams(b, sub, num)
	if sub == 1 {
		return
	}

	if !cfg.BGMC {
		for i := 1; i < sub; i++ {
			if b.s[i] != b.s[0] {
				return
			}
		}
		c.fitParams(b, 1, num)
		return
	}

	var packed [entropy.MaxBGMCSub]int
	for i := 0; i < sub; i++ {
		packed[i] = int(b.s[i]<<4) | b.sx[i]
	}
	merged := sub
	for merged > 1 {
		delta := 0
		for i := 0; i < merged; i += 2 {
			delta += util.Abs(packed[i] - packed[i+1])
		}
		if delta > 3*(merged/2-1) {
			break
		}
		merged >>= 1
		for i := 0; i < merged; i++ {
			packed[i] = (packed[2*i] + packed[2*i+1] + 1) / 2
		}
	}
	if !cfg.SBPart && merged != 1 {
		// Only one or four sub-blocks can be signalled.
		return
	}
	if merged != sub {
		c.fitParams(b, merged, num)
	}
}

func (c *Coder) fitParams(b *Block, sub, num int) {
	d := b.Residual[:b.N]
	ns := b.N / sub
	b.sub = sub
	for i := 0; i < sub; i++ {
		lo, hi := i*ns, (i+1)*ns
		if i == 0 {
			lo = num
		}
		if c.cfg.BGMC {
			b.s[i], b.sx[i] = entropy.BGMCParam(d[lo:hi], b.N, c.maxS)
		} else {
			b.s[i], b.sx[i] = entropy.RiceParam(d[lo:hi], c.maxS), 0
		}
	}
}
