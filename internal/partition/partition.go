// Package partition implements block switching: the binary tree that
// splits a frame into blocks of N>>level samples, its bottom-up cost
// optimization and the 32-bit block switching flags of the bitstream.
package partition

import "github.com/thesyncim/goals/internal/bitio"

// MaxLevels is the deepest supported split.
const MaxLevels = 5

// Independent is the flag bit that marks a channel pair whose channels
// carry their own block switching flags.
const Independent = 0x80000000

// Node is a node of the partition tree.
type Node struct {
	Level    int
	Index    int // Position among the nodes of the same level
	Offset   int
	Length   int // Samples covered, shortened in the last frame
	Cost     int
	Split    bool
	Children [2]*Node
}

// Build returns the full tree of depth levels over a frame of frameLen
// samples of which only the first n are present (n < frameLen in the last
// frame).
func Build(frameLen, n, levels int) *Node {
	return build(0, 0, 0, frameLen, n, min(levels, MaxLevels))
}

func build(level, index, offset, length, n, levels int) *Node {
	node := &Node{
		Level:  level,
		Index:  index,
		Offset: offset,
		Length: max(0, min(length, n-offset)),
	}
	if level < levels {
		half := length >> 1
		node.Children[0] = build(level+1, 2*index, offset, half, n, levels)
		node.Children[1] = build(level+1, 2*index+1, offset+half, length-half, n, levels)
	}
	return node
}

// Optimize evaluates cost(node) for every non-empty node and keeps a split
// only where the children are strictly cheaper than their parent.
// It returns the cost of the best partition.
func (t *Node) Optimize(cost func(*Node) int) int {
	if t.Length == 0 {
		t.Cost, t.Split = 0, false
		return 0
	}
	t.Cost = cost(t)
	t.Split = false
	if t.Children[0] == nil {
		return t.Cost
	}
	sum := t.Children[0].Optimize(cost) + t.Children[1].Optimize(cost)
	if t.Cost > sum {
		t.Cost, t.Split = sum, true
	}
	return t.Cost
}

// Leaves returns the blocks of the chosen partition in order, skipping
// empty ones.
func (t *Node) Leaves() []*Node {
	return t.appendLeaves(nil)
}

func (t *Node) appendLeaves(out []*Node) []*Node {
	if t.Length == 0 {
		return out
	}
	if !t.Split {
		return append(out, t)
	}
	out = t.Children[0].appendLeaves(out)
	return t.Children[1].appendLeaves(out)
}

// Encode returns the block switching flags of the partition chosen in t:
// bit 0x40000000>>(2^level-1+index) is set for every split node.
func Encode(t *Node) uint32 {
	var flags uint32
	t.walk(func(n *Node) {
		if n.Split {
			flags |= 0x40000000 >> uint(1<<n.Level-1+n.Index)
		}
	})
	return flags
}

func (t *Node) walk(fn func(*Node)) {
	fn(t)
	if t.Split {
		t.Children[0].walk(fn)
		t.Children[1].walk(fn)
	}
}

// Decode turns block switching flags into block lengths for a frame of
// frameLen samples holding n samples, splitting at most levels deep. The
// block that crosses n is shortened and later blocks are dropped.
func Decode(flags uint32, frameLen, n, levels int) []int {
	var out []int
	var walk func(bit, level, length int)
	walk = func(bit, level, length int) {
		if level < min(levels, MaxLevels) && bit < 31 && flags&(0x40000000>>uint(bit)) != 0 {
			half := length >> 1
			walk(2*bit+1, level+1, half)
			walk(2*bit+2, level+1, length-half)
			return
		}
		out = append(out, length)
	}
	walk(0, 0, frameLen)

	sum := 0
	for i, l := range out {
		if sum+l >= n {
			out[i] = n - sum
			return out[:i+1]
		}
		sum += l
	}
	return out
}

// WriteFlags writes the top nbytes bytes of flags to w.
func WriteFlags(w *bitio.Writer, flags uint32, nbytes int) {
	if nbytes > 0 {
		w.WriteBits(flags>>(32-8*uint(nbytes)), 8*uint(nbytes))
	}
}

// ReadFlags reads nbytes bytes of flags into the top of a uint32.
func ReadFlags(r *bitio.Reader, nbytes int) uint32 {
	if nbytes == 0 {
		return 0
	}
	return r.ReadBits(8*uint(nbytes)) << (32 - 8*uint(nbytes))
}
