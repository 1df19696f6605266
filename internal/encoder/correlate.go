package encoder

import (
	"github.com/thesyncim/goals/internal/bitio"
	"github.com/thesyncim/goals/internal/block"
	"github.com/thesyncim/goals/internal/mcc"
	"github.com/thesyncim/goals/internal/partition"
)

// mccNode is the correlation choice for one partition node of an MCC frame.
type mccNode struct {
	sides    [][]mcc.Side
	res      [][]int32 // Reduced residual of each eligible channel
	eligible []bool
}

// coded returns the block of channel c at node id as an MCC frame codes it.
func (m *mccNode) coded(ch *channel, c, id int) block.Block {
	b := ch.nodes[id]
	if m.eligible[c] {
		b.Residual = m.res[c]
	}
	return b
}

// writeMCC emits a frame coded with multi-channel correlation: one
// partition shared by all channels, and per block the correlation entries
// of every channel after its block. The entries are chosen for every node
// of the partition tree, so a split is kept when it is cheaper with its
// own correlation.
func (e *Encoder) writeMCC(w *bitio.Writer, n int, ra bool) {
	cfg := e.cfg
	tree := partition.Build(cfg.FrameLength, n, cfg.Levels)
	run(e.opts.Workers, len(e.chans), func(c int) {
		e.chans[c].analyzeAll(tree, ra)
	})
	if e.corrs == nil {
		e.corrs = make([]mccNode, len(e.chans[0].nodes))
	}
	tree.Optimize(func(t *partition.Node) int {
		return e.correlate(t, ra)
	})
	partition.WriteFlags(w, partition.Encode(tree), cfg.FlagBytes())

	refBits, lagBits := cfg.ChannelBits(), cfg.LagBits()
	for _, t := range tree.Leaves() {
		id := nodeID(t)
		m := &e.corrs[id]
		for c, ch := range e.chans {
			b := m.coded(ch, c, id)
			ch.coder.Write(w, &b)
			mcc.Write(w, m.sides[c], c, refBits, lagBits)
			w.Align()
		}
	}
}

// correlate chooses the correlation entries of node t and returns the size
// of its blocks with their entries, each channel rounded up to whole bytes.
// The analysis of the channels is left untouched.
func (e *Encoder) correlate(t *partition.Node, ra bool) int {
	id := nodeID(t)
	m := &e.corrs[id]
	nch := len(e.chans)
	if m.res == nil {
		m.res = make([][]int32, nch)
		m.eligible = make([]bool, nch)
	}
	for c, ch := range e.chans {
		ch.analyze(t, ra)
		b := &ch.nodes[id]
		m.eligible[c] = b.Kind == block.Normal
		m.res[c] = m.res[c][:0]
		if m.eligible[c] {
			m.res[c] = append(m.res[c], b.Residual[:b.N]...)
		}
	}

	m.sides = e.corr.Search(m.res, m.eligible, func(c int, d []int32) int {
		ch := e.chans[c]
		b := ch.nodes[id]
		b.Residual = d
		return ch.coder.Bits(&b)
	})

	refBits, lagBits := e.cfg.ChannelBits(), e.cfg.LagBits()
	sum := 0
	for c, ch := range e.chans {
		b := m.coded(ch, c, id)
		bits := ch.coder.Bits(&b) + mcc.Bits(m.sides[c], c, refBits, lagBits)
		sum += (bits + 7) &^ 7
	}
	return sum
}
