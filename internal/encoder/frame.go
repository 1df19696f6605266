package encoder

import (
	"github.com/thesyncim/goals/internal/bitio"
	"github.com/thesyncim/goals/internal/partition"
)

// pairMode says which two of x0, x1 and their difference code a block of a
// coupled pair, in stream order.
type pairMode uint8

const (
	pairBoth      pairMode = iota // x0, x1
	pairLeftDiff                  // x0, x1-x0
	pairDiffRight                 // x1-x0, x1
)

// minDiffBits is the size both plain blocks must exceed before the
// difference signal is tried.
const minDiffBits = 3 * 8

// group is a single channel or a pair of channels coded together.
type group struct {
	c    int // First coded channel
	pair bool

	coupled bool
	tree    *partition.Node // Channel c, or the pair when coupled
	tree1   *partition.Node // Channel c+1 when not coupled
	modes   []pairMode      // Per node when coupled
}

func (e *Encoder) buildGroups() {
	nch := e.cfg.Channels
	for c := 0; c < nch; {
		g := &group{c: c}
		if e.cfg.Joint && c+1 < nch {
			g.pair = true
			g.modes = make([]pairMode, len(e.chans[c].bits))
			c += 2
		} else {
			c++
		}
		e.groups = append(e.groups, g)
	}
}

// plan chooses the partition and, for a pair, the coupling of the group.
func (e *Encoder) plan(g *group, n int, ra bool) {
	cfg := e.cfg
	flagBits := 8 * cfg.FlagBytes()
	a := e.chans[g.c]

	g.tree = partition.Build(cfg.FrameLength, n, cfg.Levels)
	if !g.pair {
		g.tree.Optimize(func(t *partition.Node) int { return a.analyze(t, ra) })
		return
	}

	b, d := e.chans[g.c+1], e.diffs[g.c/2]
	coupled := g.tree.Optimize(func(t *partition.Node) int {
		c0, c1 := a.analyze(t, ra), b.analyze(t, ra)
		best, mode := c0+c1, pairBoth
		if c0 > minDiffBits && c1 > minDiffBits {
			cs := d.analyze(t, ra)
			if c0+cs < best {
				best, mode = c0+cs, pairLeftDiff
			}
			if cs+c1 < best {
				best, mode = cs+c1, pairDiffRight
			}
		}
		g.modes[nodeID(t)] = mode
		return best
	}) + flagBits
	g.coupled = true
	if flagBits == 0 {
		return
	}

	t0 := partition.Build(cfg.FrameLength, n, cfg.Levels)
	t1 := partition.Build(cfg.FrameLength, n, cfg.Levels)
	split := t0.Optimize(func(t *partition.Node) int { return a.analyze(t, ra) }) +
		t1.Optimize(func(t *partition.Node) int { return b.analyze(t, ra) }) +
		2*flagBits
	if split < coupled {
		g.coupled = false
		g.tree, g.tree1 = t0, t1
	}
}

// write emits the planned group.
func (e *Encoder) writeGroup(w *bitio.Writer, g *group) {
	nbytes := e.cfg.FlagBytes()
	a := e.chans[g.c]

	if !g.pair || !g.coupled {
		flags := partition.Encode(g.tree)
		if g.pair {
			flags |= partition.Independent
		}
		partition.WriteFlags(w, flags, nbytes)
		for _, t := range g.tree.Leaves() {
			a.write(w, t)
		}
		if g.pair {
			b := e.chans[g.c+1]
			partition.WriteFlags(w, partition.Encode(g.tree1), nbytes)
			for _, t := range g.tree1.Leaves() {
				b.write(w, t)
			}
		}
		return
	}

	b, d := e.chans[g.c+1], e.diffs[g.c/2]
	partition.WriteFlags(w, partition.Encode(g.tree), nbytes)
	for _, t := range g.tree.Leaves() {
		switch g.modes[nodeID(t)] {
		case pairBoth:
			a.write(w, t)
			b.write(w, t)
		case pairLeftDiff:
			a.write(w, t)
			d.write(w, t)
		case pairDiffRight:
			d.write(w, t)
			b.write(w, t)
		}
	}
}

// writePlain emits a frame without multi-channel correlation.
func (e *Encoder) writePlain(w *bitio.Writer, n int, ra bool) {
	run(e.opts.Workers, len(e.groups), func(i int) {
		e.plan(e.groups[i], n, ra)
	})
	for _, g := range e.groups {
		e.writeGroup(w, g)
	}
}
