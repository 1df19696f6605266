// Package rlslms implements the backward-adaptive cascade predictor used in
// place of LPC by RLS-LMS streams. Each channel runs a DPCM stage, a short
// sign-error normalized LMS stage that also sees the other channel of a
// joint pair, and one or more long sign-sign LMS stages, each predicting
// the residual of the stage before it. All arithmetic is integer so the
// encoder and decoder adapt identically.
package rlslms

import (
	"errors"

	"github.com/thesyncim/goals/internal/bitio"
)

// ErrInvalidTable is returned for a mode table that cannot be coded.
var ErrInvalidTable = errors.New("rlslms: invalid mode table")

const (
	// MaxStages bounds the cascade length including the DPCM stage.
	MaxStages = 9

	// MaxShortTaps bounds the own taps of the normalized LMS stage.
	MaxShortTaps = 30

	// StepUnit is the step size unit of the normalized LMS stage, 0.001 in
	// Q24.
	StepUnit = 16777
)

// Extension bits of the side information.
const (
	ExtLengths = 1 << iota // Stage lengths follow
	ExtLambda              // Normalizer smoothing factors follow
	ExtMu                  // Step sizes follow
	ExtAll     = ExtLengths | ExtLambda | ExtMu
)

// orderTable lists the lengths a long stage may take.
var orderTable = [32]int{
	4, 8, 12, 16, 20, 24, 28, 32,
	40, 48, 56, 64, 80, 96, 112, 128,
	160, 192, 224, 256, 320, 384, 448, 512,
	576, 640, 704, 768, 832, 896, 960, 1024,
}

// muTable lists the Q16 step sizes of the long stages.
var muTable = [32]int{
	1, 2, 3, 4, 5, 6, 7, 8,
	10, 12, 14, 16, 20, 24, 28, 32,
	40, 48, 56, 64, 80, 96, 112, 128,
	160, 192, 224, 256, 320, 384, 448, 512,
}

// Table is the mode table shared by all channels of a stream.
type Table struct {
	Stages  int            // Number of stages, 2..MaxStages
	Lengths [MaxStages]int // [1] short stage taps (even), [2:] long stage taps
	Mu      [MaxStages]int // [2:] long stage step sizes
	Lambda  [2]int         // Q10 normalizer smoothing, own and cross taps
	Step    int            // Short stage step size in StepUnit, 0..7
}

// Safe is the conservative table the encoder falls back to when a frame
// does not compress.
var Safe = Table{
	Stages:  3,
	Lengths: [MaxStages]int{1, 4, 16},
	Mu:      [MaxStages]int{0, 0, 4},
	Lambda:  [2]int{1000, 1000},
	Step:    1,
}

var presets = [...]Table{
	{
		Stages:  3,
		Lengths: [MaxStages]int{1, 16, 256},
		Mu:      [MaxStages]int{0, 0, 8},
		Lambda:  [2]int{999, 999},
		Step:    2,
	},
	{
		Stages:  4,
		Lengths: [MaxStages]int{1, 16, 256, 32},
		Mu:      [MaxStages]int{0, 0, 8, 16},
		Lambda:  [2]int{999, 999},
		Step:    2,
	},
	{
		Stages:  4,
		Lengths: [MaxStages]int{1, 20, 1024, 16},
		Mu:      [MaxStages]int{0, 0, 4, 16},
		Lambda:  [2]int{1010, 1000},
		Step:    3,
	},
}

// Modes is the number of preset tables.
const Modes = len(presets)

// Preset returns preset table mode, clamped to the valid range.
func Preset(mode int) Table {
	return presets[min(max(mode, 0), Modes-1)]
}

func lookup(table *[32]int, v int) (int, bool) {
	for i, t := range table {
		if t == v {
			return i, true
		}
	}
	return 0, false
}

// Validate reports whether t can be written as side information.
func (t *Table) Validate() error {
	if t.Stages < 2 || t.Stages > MaxStages {
		return ErrInvalidTable
	}
	if l := t.Lengths[1]; l < 0 || l > MaxShortTaps || l&1 != 0 {
		return ErrInvalidTable
	}
	for i := 2; i < t.Stages; i++ {
		if _, ok := lookup(&orderTable, t.Lengths[i]); !ok {
			return ErrInvalidTable
		}
		if _, ok := lookup(&muTable, t.Mu[i]); !ok {
			return ErrInvalidTable
		}
	}
	for _, l := range t.Lambda {
		if l < 0 || l > 1023 {
			return ErrInvalidTable
		}
	}
	if t.Step < 0 || t.Step > 7 {
		return ErrInvalidTable
	}
	return nil
}

// WriteSide writes the side information that follows a channel's block:
// the mono flag and, when ext is non-zero, the parts of t selected by ext.
// t must be valid.
func WriteSide(w *bitio.Writer, mono bool, ext uint8, t *Table) {
	if mono {
		w.WriteBit(1)
	} else {
		w.WriteBit(0)
	}
	if ext == 0 {
		w.WriteBit(0)
		return
	}
	w.WriteBit(1)
	w.WriteBits(uint32(ext), 3)
	if ext&ExtLengths != 0 {
		w.WriteBits(uint32(t.Lengths[1]>>1), 4)
		w.WriteBits(uint32(t.Stages-2), 3)
		for i := 2; i < t.Stages; i++ {
			idx, _ := lookup(&orderTable, t.Lengths[i])
			w.WriteBits(uint32(idx), 5)
		}
	}
	if ext&ExtLambda != 0 && t.Lengths[1] > 0 {
		w.WriteBits(uint32(t.Lambda[0]), 10)
		w.WriteBits(uint32(t.Lambda[1]), 10)
	}
	if ext&ExtMu != 0 {
		for i := 2; i < t.Stages; i++ {
			idx, _ := lookup(&muTable, t.Mu[i])
			w.WriteBits(uint32(idx), 5)
		}
		w.WriteBits(uint32(t.Step), 3)
	}
}

// ReadSide reads the side information of a channel, updating t with the
// parts the extension carries. It returns the mono flag and the extension.
func ReadSide(r *bitio.Reader, t *Table) (mono bool, ext uint8, err error) {
	mono = r.ReadBit() == 1
	if r.ReadBit() == 0 {
		return mono, 0, r.Err()
	}
	ext = uint8(r.ReadBits(3))
	if ext&ExtLengths != 0 {
		t.Lengths[0] = 1
		t.Lengths[1] = int(r.ReadBits(4)) << 1
		t.Stages = int(r.ReadBits(3)) + 2
		for i := 2; i < t.Stages; i++ {
			t.Lengths[i] = orderTable[r.ReadBits(5)]
		}
	}
	if ext&ExtLambda != 0 && t.Lengths[1] > 0 {
		t.Lambda[0] = int(r.ReadBits(10))
		t.Lambda[1] = int(r.ReadBits(10))
	}
	if ext&ExtMu != 0 {
		for i := 2; i < t.Stages; i++ {
			t.Mu[i] = muTable[r.ReadBits(5)]
		}
		t.Step = int(r.ReadBits(3))
	}
	return mono, ext, r.Err()
}

// SideBits returns the size in bits WriteSide produces.
func SideBits(ext uint8, t *Table) int {
	n := 2
	if ext == 0 {
		return n
	}
	n += 3
	long := t.Stages - 2
	if ext&ExtLengths != 0 {
		n += 4 + 3 + 5*long
	}
	if ext&ExtLambda != 0 && t.Lengths[1] > 0 {
		n += 20
	}
	if ext&ExtMu != 0 {
		n += 5*long + 3
	}
	return n
}
