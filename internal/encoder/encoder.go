// Package encoder turns frames of PCM into ALS frame data. It drives block
// switching, joint stereo coding, multi-channel correlation and the
// RLS-LMS cascade on top of the block codec.
package encoder

import (
	"errors"
	"fmt"

	"github.com/thesyncim/goals/internal/bitio"
	"github.com/thesyncim/goals/internal/floatpcm"
	"github.com/thesyncim/goals/internal/lpc"
	"github.com/thesyncim/goals/internal/mcc"
	"github.com/thesyncim/goals/internal/types"
)

// Errors for the encoder.
var (
	// ErrInvalidFrame indicates a frame whose channel count or length does
	// not match the stream, or a frame after a short final frame.
	ErrInvalidFrame = errors.New("encoder: invalid frame")

	// ErrInvalidConfig indicates a stream description the encoder cannot
	// code.
	ErrInvalidConfig = errors.New("encoder: invalid configuration")
)

// Options are the encoder choices that the stream header does not carry.
type Options struct {
	Window  lpc.Window // LPC analysis window
	Workers int        // Goroutines analyzing channels, <= 1 for serial
	RLSMode int        // RLS-LMS preset table
}

// Encoder codes the frames of one stream.
//
// An Encoder is NOT safe for concurrent use.
type Encoder struct {
	cfg  *types.StreamConfig
	opts Options

	frame int  // Index of the next frame
	done  bool // A short frame was coded

	chans  []*channel // Coded channels
	diffs  []*channel // Difference signal of each pair, with joint coding
	groups []*group
	corr   mcc.Searcher
	corrs  []mccNode // Correlation choice of each partition node
	rls    *rlsState

	w   bitio.Writer
	alt bitio.Writer

	xi    [][]int32  // Integer part of float frames
	diffb [][]uint32 // Mantissa differences of float frames
}

// New returns an Encoder for the stream cfg. cfg must stay unchanged while
// the Encoder is in use.
func New(cfg *types.StreamConfig, opts Options) (*Encoder, error) {
	if cfg.Channels < 1 || cfg.FrameLength < 1 {
		return nil, ErrInvalidConfig
	}
	if cfg.MCC && cfg.Predictor == types.PredictorRLSLMS {
		return nil, fmt.Errorf("%w: MCC with RLS-LMS prediction", ErrInvalidConfig)
	}
	if cfg.ChanSort && len(cfg.ChanPos) != cfg.Channels {
		return nil, fmt.Errorf("%w: channel positions", ErrInvalidConfig)
	}

	e := &Encoder{
		cfg:  cfg,
		opts: opts,
		corr: mcc.Searcher{RefBits: cfg.ChannelBits(), LagBits: cfg.LagBits()},
	}
	hist := max(cfg.MaxOrder, 1)
	for range cfg.Channels {
		e.chans = append(e.chans, newChannel(cfg, opts.Window, hist, false))
	}
	if cfg.Joint {
		for range cfg.Channels / 2 {
			e.diffs = append(e.diffs, newChannel(cfg, opts.Window, hist, true))
		}
	}
	e.buildGroups()
	if cfg.Predictor == types.PredictorRLSLMS {
		e.rls = newRLSState(cfg.Channels, cfg.FrameLength, opts.RLSMode)
	}
	if cfg.SampleType == types.SampleFloat {
		e.xi = make([][]int32, cfg.Channels)
		e.diffb = make([][]uint32, cfg.Channels)
		for c := range e.xi {
			e.xi[c] = make([]int32, cfg.FrameLength)
			e.diffb[c] = make([]uint32, cfg.FrameLength)
		}
	}
	return e, nil
}

// Frame returns the index of the next frame.
func (e *Encoder) Frame() int {
	return e.frame
}

// frameLen validates the shape of a frame and returns its length.
func (e *Encoder) frameLen(channels, n int) (int, error) {
	if e.done || channels != e.cfg.Channels || n < 1 || n > e.cfg.FrameLength {
		return 0, ErrInvalidFrame
	}
	return n, nil
}

// Encode codes one frame of integer samples, x[c] holding input channel c.
// All channels must have the same length, at most the frame length; only
// the last frame of a stream may be shorter. The returned slice is valid
// until the next call.
func (e *Encoder) Encode(x [][]int32) ([]byte, error) {
	if len(x) == 0 {
		return nil, ErrInvalidFrame
	}
	n, err := e.frameLen(len(x), len(x[0]))
	if err != nil {
		return nil, err
	}
	for _, ch := range x {
		if len(ch) != n {
			return nil, ErrInvalidFrame
		}
	}
	if e.cfg.SampleType == types.SampleFloat {
		return nil, fmt.Errorf("%w: integer samples for a float stream", ErrInvalidFrame)
	}
	e.load(x, n)
	e.encode(n)
	return e.w.Bytes(), nil
}

// EncodeFloat codes one frame of a floating point stream. The integer part
// of every sample goes through the normal pipeline and the exact bit
// differences follow the frame as a compressed payload.
func (e *Encoder) EncodeFloat(f [][]float32) ([]byte, error) {
	if len(f) == 0 {
		return nil, ErrInvalidFrame
	}
	n, err := e.frameLen(len(f), len(f[0]))
	if err != nil {
		return nil, err
	}
	if e.cfg.SampleType != types.SampleFloat {
		return nil, fmt.Errorf("%w: float samples for an integer stream", ErrInvalidFrame)
	}
	diffs := make([][]uint32, len(f))
	for c, ch := range f {
		if len(ch) != n {
			return nil, ErrInvalidFrame
		}
		floatpcm.Split(ch, e.xi[c][:n], e.diffb[c][:n])
	}
	xi := make([][]int32, len(f))
	for c := range xi {
		xi[c] = e.xi[c][:n]
	}
	// diffs are packed in coded channel order, as the decoder sees them.
	for c := range diffs {
		diffs[c] = e.diffb[e.input(c)][:n]
	}
	payload, err := floatpcm.Pack(diffs)
	if err != nil {
		return nil, err
	}

	e.load(xi, n)
	e.encode(n)
	e.w.WriteBits(uint32(len(payload)), 32)
	e.w.AppendBytes(payload)
	return e.w.Bytes(), nil
}

// input returns the input channel carried by coded channel c.
func (e *Encoder) input(c int) int {
	if e.cfg.ChanSort {
		return e.cfg.ChanPos[c]
	}
	return c
}

// load copies a frame into the channel histories in coded order, restarting
// the histories at random access frames.
func (e *Encoder) load(x [][]int32, n int) {
	ra := e.cfg.IsRA(e.frame)
	for c, ch := range e.chans {
		if ra {
			ch.hist.Reset()
		}
		copy(ch.hist.Frame(n), x[e.input(c)])
		ch.invalidate()
	}
	for p, d := range e.diffs {
		if ra {
			d.hist.Reset()
		}
		x0 := e.chans[2*p].hist.Frame(n)
		x1 := e.chans[2*p+1].hist.Frame(n)
		xs := d.hist.Frame(n)
		for i := range xs {
			xs[i] = x1[i] - x0[i]
		}
		d.invalidate()
	}
}

// encode codes the loaded frame into e.w and moves the histories on.
func (e *Encoder) encode(n int) {
	cfg := e.cfg
	ra := cfg.IsRA(e.frame)
	e.w.Reset()

	switch {
	case cfg.Predictor == types.PredictorRLSLMS:
		e.writeRLS(&e.w, n, ra)
	case cfg.MCC && cfg.Joint:
		e.alt.Reset()
		e.alt.WriteBits(0, 8)
		e.writePlain(&e.alt, n, ra)
		e.w.WriteBits(1, 8)
		e.writeMCC(&e.w, n, ra)
		if e.alt.Len() < e.w.Len() {
			e.w, e.alt = e.alt, e.w
		}
	case cfg.MCC:
		e.writeMCC(&e.w, n, ra)
	default:
		e.writePlain(&e.w, n, ra)
	}

	for _, ch := range e.chans {
		ch.hist.Advance(n)
	}
	for _, d := range e.diffs {
		d.hist.Advance(n)
	}
	e.frame++
	e.done = n < cfg.FrameLength
}
