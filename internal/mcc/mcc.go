// Package mcc implements multi-channel correlation: the residual of a
// dependent channel is reduced by a weighted, optionally time-shifted copy
// of a reference channel's residual.
package mcc

import (
	"errors"

	"github.com/thesyncim/goals/internal/bitio"
)

// ErrInvalidSide is returned for correlation side information that cannot
// be applied.
var ErrInvalidSide = errors.New("mcc: invalid correlation side information")

// Taps is the number of weights of a six tap entry.
const Taps = 6

// MinLag is the smallest magnitude of a time lag.
const MinLag = 3

// weights holds the Q7 weighting factors addressed by a weight index.
var weights = [32]int32{
	204, 192, 179, 166, 153, 140, 128, 115,
	102, 89, 76, 64, 51, 38, 25, 12,
	0, -12, -25, -38, -51, -64, -76, -89,
	-102, -115, -128, -140, -153, -166, -179, -192,
}

// Mode is the kind of an entry.
type Mode uint8

const (
	None     Mode = iota // Reference is the channel itself
	ThreeTap             // Taps around the same position
	SixTap               // Three more taps around a time lag
)

// Side is one correlation entry of a channel.
type Side struct {
	Ref    int
	Mode   Mode
	Weight [Taps]int // Indices into the weight table
	Lag    int       // Signed, SixTap only
}

// Self returns the entry that marks channel c as uncorrelated.
func Self(c int) Side {
	return Side{Ref: c}
}

// riceParams are the Rice parameters and offsets of the weight indices.
var riceParams = [Taps]struct {
	s   uint
	off int
}{{1, 16}, {2, 14}, {1, 16}, {1, 16}, {1, 16}, {1, 16}}

func (s *Side) taps() int {
	switch s.Mode {
	case ThreeTap:
		return 3
	case SixTap:
		return Taps
	}
	return 0
}

// Write appends the entries of one channel followed by the end flag.
// refBits is the width of a channel index and lagBits the width of a lag.
func Write(w *bitio.Writer, sides []Side, c int, refBits, lagBits uint) {
	for i := range sides {
		s := &sides[i]
		w.WriteBit(0)
		w.WriteBits(uint32(s.Ref), refBits)
		if s.Ref == c {
			continue
		}
		w.WriteBit(uint32(s.Mode - ThreeTap))
		for k := 0; k < s.taps(); k++ {
			w.WriteRice(int32(s.Weight[k]-riceParams[k].off), riceParams[k].s)
		}
		if s.Mode == SixTap {
			lag := s.Lag
			if lag < 0 {
				w.WriteBit(1)
				lag = -lag
			} else {
				w.WriteBit(0)
			}
			w.WriteBits(uint32(lag-MinLag), lagBits)
		}
	}
	w.WriteBit(1)
}

// Bits returns the size in bits Write produces for sides.
func Bits(sides []Side, c int, refBits, lagBits uint) int {
	n := 1
	for i := range sides {
		s := &sides[i]
		n += 1 + int(refBits)
		if s.Ref == c {
			continue
		}
		n++
		for k := 0; k < s.taps(); k++ {
			n += bitio.RiceBits(int32(s.Weight[k]-riceParams[k].off), riceParams[k].s)
		}
		if s.Mode == SixTap {
			n += 1 + int(lagBits)
		}
	}
	return n
}

// Read parses the entries of channel c of a stream with channels channels
// into dst[:0].
func Read(r *bitio.Reader, dst []Side, c, channels int, refBits, lagBits uint) ([]Side, error) {
	dst = dst[:0]
	for r.ReadBit() == 0 {
		if len(dst) == channels {
			return dst, ErrInvalidSide
		}
		s := Side{Ref: int(r.ReadBits(refBits))}
		if s.Ref >= channels {
			return dst, ErrInvalidSide
		}
		if s.Ref != c {
			s.Mode = ThreeTap + Mode(r.ReadBit())
			for k := 0; k < s.taps(); k++ {
				s.Weight[k] = int(r.ReadRice(riceParams[k].s)) + riceParams[k].off
				if s.Weight[k] < 0 || s.Weight[k] >= len(weights) {
					return dst, ErrInvalidSide
				}
			}
			if s.Mode == SixTap {
				neg := r.ReadBit() == 1
				s.Lag = int(r.ReadBits(lagBits)) + MinLag
				if neg {
					s.Lag = -s.Lag
				}
			}
		}
		if err := r.Err(); err != nil {
			return dst, err
		}
		dst = append(dst, s)
	}
	return dst, r.Err()
}
