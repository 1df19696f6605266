// Package block codes one block of one channel: classification into zero,
// constant and normal blocks, short- and long-term prediction, and the
// normal block syntax with its residual entropy code.
//
// A coded block starts on a byte boundary. Write leaves the final partial
// byte open so that RLS-LMS and MCC side information can follow before
// the caller aligns.
package block

import (
	"errors"

	"github.com/thesyncim/goals/internal/entropy"
	"github.com/thesyncim/goals/internal/lpc"
	"github.com/thesyncim/goals/internal/ltp"
	"github.com/thesyncim/goals/internal/types"
)

// ErrInvalidBlock is returned for a block whose fields are inconsistent
// with the stream configuration.
var ErrInvalidBlock = errors.New("block: invalid block")

// Kind classifies a block.
type Kind uint8

const (
	Zero     Kind = iota // All samples zero
	Constant             // All samples equal
	Normal               // Predicted and entropy coded
)

func (k Kind) String() string {
	switch k {
	case Zero:
		return "zero"
	case Constant:
		return "constant"
	case Normal:
		return "normal"
	}
	return "unknown"
}

// rlsOrder is the order assumed for the random access and LTP fields of
// blocks whose residual comes from the RLS-LMS cascade.
const rlsOrder = 10

// Block is the coded description of one block of one channel.
type Block struct {
	Kind  Kind
	N     int
	Joint bool // Carries a difference signal
	RA    bool // Progressive prediction from the block's own samples
	Const int32

	Order int
	Asi   []int32 // Quantized PARCOR indices, len Order
	Shift uint    // Common zero LSBs removed before prediction

	UseLTP bool
	LTP    ltp.Params

	Residual []int32

	sub int
	s   [entropy.MaxBGMCSub]uint
	sx  [entropy.MaxBGMCSub]int
}

// Coder holds the stream settings and scratch state of the block codec.
// It is not safe for concurrent use.
type Coder struct {
	cfg *types.StreamConfig
	an  *lpc.Analyzer

	asi   []int32
	parq  []int32
	cof   []int32
	saved []int32
	alt   []int32

	maxS  uint
	sBits uint
}

// NewCoder returns a Coder for blocks of the stream cfg. win selects the
// LPC analysis window and only matters when encoding.
func NewCoder(cfg *types.StreamConfig, win lpc.Window) *Coder {
	p := max(cfg.MaxOrder, rlsOrder)
	c := &Coder{
		cfg:   cfg,
		an:    lpc.NewAnalyzer(win),
		asi:   make([]int32, p),
		parq:  make([]int32, p),
		cof:   make([]int32, p),
		saved: make([]int32, p),
		maxS:  15,
		sBits: 4,
	}
	if cfg.Resolution > 16 {
		c.maxS = 31
		c.sBits = 5
	}
	return c
}

func (c *Coder) rls() bool {
	return c.cfg.Predictor == types.PredictorRLSLMS
}

// order returns the order that governs the random access and LTP fields.
func (c *Coder) order(b *Block) int {
	if c.rls() {
		return rlsOrder
	}
	return b.Order
}

// maxOrder returns the largest order a block of n samples may use.
func (c *Coder) maxOrder(n int) int {
	if c.cfg.AdaptiveOrder {
		return lpc.MaxOrderFor(c.cfg.MaxOrder, n)
	}
	return c.cfg.MaxOrder
}

// progressive returns the number of leading residual samples coded with
// their own Rice parameters in a random access block.
func progressive(b *Block, order int) int {
	if !b.RA {
		return 0
	}
	return min(order, 3, b.N)
}

func growInt32(s []int32, n int) []int32 {
	if cap(s) < n {
		return make([]int32, n)
	}
	return s[:n]
}
