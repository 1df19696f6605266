package decoder

import (
	"github.com/thesyncim/goals/internal/bitio"
	"github.com/thesyncim/goals/internal/block"
	"github.com/thesyncim/goals/internal/rlslms"
	"github.com/thesyncim/goals/internal/types"
)

// rlsState is the RLS-LMS side of the decoder.
type rlsState struct {
	table    rlslms.Table
	cascades []rlslms.Cascade
	res      [][]int32
	mono     []bool
	joint    []bool
}

func newRLSState(nch, frameLen int) *rlsState {
	s := &rlsState{
		cascades: make([]rlslms.Cascade, nch),
		res:      make([][]int32, nch),
		mono:     make([]bool, nch),
		joint:    make([]bool, nch),
	}
	for c := range s.res {
		s.res[c] = make([]int32, frameLen)
	}
	return s
}

// init restores the state of a stream start.
func (s *rlsState) init(cfg *types.StreamConfig) {
	s.table = rlslms.Safe
	nch := len(s.cascades)
	for c := range s.joint {
		s.joint[c] = cfg.Joint && c < nch&^1
	}
	s.restart()
}

func (s *rlsState) restart() {
	for c := range s.cascades {
		s.cascades[c].Reset(&s.table, s.joint[c])
	}
}

// readRLS parses the block and side information of channel c. The
// cascades restart after the first channel of a random access frame or of
// a frame carrying a complete table.
func (d *Decoder) readRLS(r *bitio.Reader, c, n int, ra bool) error {
	s := d.rls
	ch := d.chans[c]
	if err := ch.coder.Read(r, &ch.blk, n, ra); err != nil {
		return err
	}
	mono, ext, err := rlslms.ReadSide(r, &s.table)
	if err != nil {
		return err
	}
	r.Align()
	if err := s.table.Validate(); err != nil {
		return err
	}
	if c == 0 && (ra || ext == rlslms.ExtAll) {
		s.restart()
	}
	s.mono[c] = mono

	b := &ch.blk
	if b.Kind == block.Normal {
		block.ReconstructResidual(b, s.res[c][:n])
		return nil
	}
	return ch.coder.Reconstruct(b, ch.hist.Buffer(d.span), ch.hist.Len())
}

// source returns how the samples of channel c are rebuilt.
func (d *Decoder) source(c int) rlslms.Source {
	switch {
	case d.chans[c].blk.Kind != block.Normal:
		return rlslms.Literal
	case d.rls.mono[c]:
		return rlslms.Mono
	}
	return rlslms.Predicted
}

// decodeRLS decodes a frame predicted by the RLS-LMS cascade. Channel
// pairs of a joint stream are synthesized together after both are read.
func (d *Decoder) decodeRLS(r *bitio.Reader, n int, ra bool) error {
	s := d.rls
	nch := len(d.chans)
	for c := 0; c < nch; {
		if !d.cfg.Joint || c+1 >= nch {
			if err := d.readRLS(r, c, n, ra); err != nil {
				return err
			}
			src := d.source(c)
			if src == rlslms.Mono {
				return ErrInvalidFrame
			}
			rlslms.Synthesize(&s.cascades[c], src, s.res[c][:n], d.chans[c].hist.Frame(n))
			c++
			continue
		}

		if err := d.readRLS(r, c, n, ra); err != nil {
			return err
		}
		if err := d.readRLS(r, c+1, n, ra); err != nil {
			return err
		}
		src0 := d.source(c)
		if src0 == rlslms.Mono {
			return ErrInvalidFrame
		}
		rlslms.SynthesizeJoint(&s.cascades[c], &s.cascades[c+1], src0, d.source(c+1),
			s.res[c][:n], s.res[c+1][:n], d.chans[c].hist.Frame(n), d.chans[c+1].hist.Frame(n))
		c += 2
	}
	return nil
}
