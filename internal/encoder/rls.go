package encoder

import (
	"github.com/thesyncim/goals/internal/bitio"
	"github.com/thesyncim/goals/internal/block"
	"github.com/thesyncim/goals/internal/entropy"
	"github.com/thesyncim/goals/internal/rlslms"
)

// rlsState is the RLS-LMS side of the encoder.
type rlsState struct {
	table    rlslms.Table
	preset   rlslms.Table
	cascades []rlslms.Cascade
	blocks   []block.Block
	res      [][]int32 // Cascade residual per channel
	mono     []int32   // x1 - x0 of a joint pair
}

func newRLSState(nch, frameLen, mode int) *rlsState {
	s := &rlsState{
		preset:   rlslms.Preset(mode),
		cascades: make([]rlslms.Cascade, nch),
		blocks:   make([]block.Block, nch),
		res:      make([][]int32, nch),
		mono:     make([]int32, frameLen),
	}
	for c := range s.res {
		s.res[c] = make([]int32, frameLen)
	}
	return s
}

// resetRLS restarts every cascade with the current table.
func (e *Encoder) resetRLS() {
	s := e.rls
	nch := len(s.cascades)
	for c := range s.cascades {
		joint := e.cfg.Joint && c < nch&^1
		s.cascades[c].Reset(&s.table, joint)
	}
}

// writeRLS emits a frame predicted by the RLS-LMS cascade into the empty
// writer w. The first frame
// and every random access frame send the preferred table and restart the
// cascades; a frame that expands is coded again with the safe table.
func (e *Encoder) writeRLS(w *bitio.Writer, n int, ra bool) {
	s := e.rls
	var ext uint8
	if e.frame == 0 || ra {
		s.table, ext = s.preset, rlslms.ExtAll
	}
	if ext == rlslms.ExtAll {
		e.resetRLS()
	}

	if e.encodeRLS(w, n, ra, ext) {
		return
	}
	w.Reset()
	s.table, ext = rlslms.Safe, rlslms.ExtAll
	e.resetRLS()
	e.encodeRLS(w, n, ra, ext)
}

// encodeRLS codes all channels and reports whether every channel stayed
// within the size of its PCM.
func (e *Encoder) encodeRLS(w *bitio.Writer, n int, ra bool, ext uint8) bool {
	s := e.rls
	nch := len(s.cascades)
	limit := n * e.cfg.IntRes()
	ok := true

	code := func(c int, literal, mono bool) {
		ch := e.chans[c]
		b := &s.blocks[c]
		if !literal {
			ch.coder.SetResidual(b, s.res[c][:n], ra)
		}
		b.Joint = false
		start := w.Len()
		ch.coder.Write(w, b)
		chExt := uint8(0)
		if c == 0 {
			chExt = ext
		}
		rlslms.WriteSide(w, mono, chExt, &s.table)
		w.Align()
		if w.Len()-start > limit {
			ok = false
		}
	}

	for c := 0; c < nch; {
		x0 := e.chans[c].hist.Frame(n)
		if !e.cfg.Joint || c+1 >= nch {
			lit := classify(&s.blocks[c], x0)
			rlslms.Analyze(&s.cascades[c], x0, s.res[c][:n])
			code(c, lit, false)
			c++
			continue
		}

		x1 := e.chans[c+1].hist.Frame(n)
		lit0 := classify(&s.blocks[c], x0)
		lit1 := classify(&s.blocks[c+1], x1)
		rlslms.AnalyzeJoint(&s.cascades[c], &s.cascades[c+1], x0, x1, s.res[c][:n], s.res[c+1][:n])
		mono := false
		if !lit1 {
			dm := s.mono[:n]
			for i := range dm {
				dm[i] = x1[i] - x0[i]
			}
			d1 := s.res[c+1][:n]
			if residualBits(dm) < residualBits(d1) {
				copy(d1, dm)
				mono = true
			}
		}
		code(c, lit0, false)
		code(c+1, lit1, mono)
		c += 2
	}
	return ok
}

// classify sets the kind of b from x and reports whether the samples are
// sent literally as a zero or constant block.
func classify(b *block.Block, x []int32) bool {
	block.Classify(b, x)
	return b.Kind != block.Normal
}

// residualBits estimates the Rice coded size of d.
func residualBits(d []int32) int {
	return entropy.RiceCost(d, entropy.RiceParam(d, 31))
}
