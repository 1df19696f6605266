package encoder

import (
	"github.com/thesyncim/goals/internal/bitio"
	"github.com/thesyncim/goals/internal/block"
	"github.com/thesyncim/goals/internal/lpc"
	"github.com/thesyncim/goals/internal/partition"
	"github.com/thesyncim/goals/internal/types"
)

// unknown marks a partition node that has not been analyzed in the
// current frame.
const unknown = -1

// channel is the analysis state of one coded channel or of the difference
// signal of a pair.
type channel struct {
	cfg   *types.StreamConfig
	hist  *types.History
	coder *block.Coder
	diff  bool // Carries x[c+1] - x[c]

	nodes []block.Block // Analysis of each partition node
	bits  []int         // Coded size of each node, byte aligned
}

func newChannel(cfg *types.StreamConfig, win lpc.Window, hist int, diff bool) *channel {
	levels := min(cfg.Levels, partition.MaxLevels)
	count := 1<<(levels+1) - 1
	ch := &channel{
		cfg:   cfg,
		hist:  types.NewHistory(hist, cfg.FrameLength),
		coder: block.NewCoder(cfg, win),
		diff:  diff,
		nodes: make([]block.Block, count),
		bits:  make([]int, count),
	}
	ch.invalidate()
	return ch
}

// nodeID numbers the nodes of a partition tree breadth first.
func nodeID(t *partition.Node) int {
	return 1<<t.Level - 1 + t.Index
}

// invalidate forgets the analysis of the previous frame.
func (ch *channel) invalidate() {
	for i := range ch.bits {
		ch.bits[i] = unknown
	}
}

// analyze codes the block of node t and returns its size in bits, rounded
// up to whole bytes. Only the first block of a random access frame uses
// progressive prediction.
func (ch *channel) analyze(t *partition.Node, ra bool) int {
	id := nodeID(t)
	if ch.bits[id] != unknown {
		return ch.bits[id]
	}
	b := &ch.nodes[id]
	b.Joint = ch.diff
	buf := ch.hist.Buffer(ch.cfg.FrameLength)
	ch.coder.Analyze(b, buf, ch.hist.Len()+t.Offset, t.Length, ra && t.Offset == 0)
	bits := ch.coder.Bits(b)
	if ch.diff && !constFits(b, ch.cfg.IntRes()) {
		bits = impossible
	}
	ch.bits[id] = (bits + 7) &^ 7
	return ch.bits[id]
}

// write appends the block of node t and aligns w.
func (ch *channel) write(w *bitio.Writer, t *partition.Node) {
	ch.coder.Write(w, &ch.nodes[nodeID(t)])
	w.Align()
}

// impossible is the cost of a block that cannot be coded.
const impossible = 1 << 30

// constFits reports whether the value of a constant block fits the
// res-bit field that carries it. Difference signals can exceed it.
func constFits(b *block.Block, res int) bool {
	if b.Kind != block.Constant || res >= 32 {
		return true
	}
	lim := int32(1) << (res - 1)
	return b.Const >= -lim && b.Const < lim
}

// analyzeAll analyzes every node of t.
func (ch *channel) analyzeAll(t *partition.Node, ra bool) {
	if t == nil || t.Length == 0 {
		return
	}
	ch.analyze(t, ra)
	ch.analyzeAll(t.Children[0], ra)
	ch.analyzeAll(t.Children[1], ra)
}
