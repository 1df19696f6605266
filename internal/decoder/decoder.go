// Package decoder reconstructs PCM from ALS frame data. It mirrors the
// encoder: block switching, joint stereo coding, multi-channel correlation,
// the RLS-LMS cascade and the floating point difference payload.
package decoder

import (
	"errors"
	"fmt"

	"github.com/thesyncim/goals/internal/bitio"
	"github.com/thesyncim/goals/internal/block"
	"github.com/thesyncim/goals/internal/floatpcm"
	"github.com/thesyncim/goals/internal/lpc"
	"github.com/thesyncim/goals/internal/mcc"
	"github.com/thesyncim/goals/internal/types"
)

// Errors for the decoder.
var (
	// ErrInvalidFrame indicates frame data that does not parse.
	ErrInvalidFrame = errors.New("decoder: invalid frame")

	// ErrEndOfStream indicates a frame past the last sample of the stream.
	ErrEndOfStream = errors.New("decoder: end of stream")

	// ErrNotRandomAccess indicates a seek to a frame that does not start a
	// random access unit.
	ErrNotRandomAccess = errors.New("decoder: frame is not a random access point")
)

// channel is the reconstruction state of one coded channel or of the
// difference signal of a pair.
type channel struct {
	hist  *types.History
	coder *block.Coder
	blk   block.Block
	sides []mcc.Side
}

// Decoder decodes the frames of one stream.
//
// A Decoder is NOT safe for concurrent use.
type Decoder struct {
	cfg   *types.StreamConfig
	frame int
	span  int // Longest frame of the stream

	chans []*channel
	diffs []*channel
	rls   *rlsState

	out    [][]int32 // Views of the last frame in input order
	floats [][]float32
	diffb  [][]uint32
	res    [][]int32
	sides  [][]mcc.Side
	coded  []bool
}

// New returns a Decoder for the stream cfg. cfg must stay unchanged while
// the Decoder is in use.
func New(cfg *types.StreamConfig) (*Decoder, error) {
	if cfg.Channels < 1 || cfg.FrameLength < 1 {
		return nil, ErrInvalidFrame
	}
	if cfg.ChanSort && len(cfg.ChanPos) != cfg.Channels {
		return nil, ErrInvalidFrame
	}
	d := &Decoder{cfg: cfg, span: cfg.FrameLength}
	if cfg.Samples != types.UnknownSamples && uint64(cfg.Samples) < uint64(d.span) {
		d.span = max(1, int(cfg.Samples))
	}
	hist := max(cfg.MaxOrder, 1)
	newChannel := func() *channel {
		return &channel{
			hist:  types.NewHistory(hist, d.span),
			coder: block.NewCoder(cfg, lpc.WindowAuto),
		}
	}
	for range cfg.Channels {
		d.chans = append(d.chans, newChannel())
	}
	if cfg.Joint {
		for range cfg.Channels / 2 {
			d.diffs = append(d.diffs, newChannel())
		}
	}
	if cfg.Predictor == types.PredictorRLSLMS {
		d.rls = newRLSState(cfg.Channels, d.span)
	}
	d.out = make([][]int32, cfg.Channels)
	d.res = make([][]int32, cfg.Channels)
	d.sides = make([][]mcc.Side, cfg.Channels)
	d.coded = make([]bool, cfg.Channels)
	if cfg.SampleType == types.SampleFloat {
		d.floats = make([][]float32, cfg.Channels)
		d.diffb = make([][]uint32, cfg.Channels)
		for c := range d.floats {
			d.floats[c] = make([]float32, d.span)
			d.diffb[c] = make([]uint32, d.span)
		}
	}
	d.reset()
	return d, nil
}

// FrameLen returns the number of samples per channel of frame f of the
// stream cfg, or 0 if the stream ends before it. Streams of unknown length
// have full frames only.
func FrameLen(cfg *types.StreamConfig, f int) int {
	if cfg.Samples == types.UnknownSamples {
		return cfg.FrameLength
	}
	start := uint64(f) * uint64(cfg.FrameLength)
	if start >= uint64(cfg.Samples) {
		return 0
	}
	return int(min(uint64(cfg.FrameLength), uint64(cfg.Samples)-start))
}

// Frame returns the index of the next frame.
func (d *Decoder) Frame() int {
	return d.frame
}

// Seek prepares the decoder to decode frame f next. f must be 0 or start
// a random access unit.
func (d *Decoder) Seek(f int) error {
	if f != 0 && !d.cfg.IsRA(f) {
		return ErrNotRandomAccess
	}
	d.frame = f
	d.reset()
	return nil
}

func (d *Decoder) reset() {
	for _, ch := range d.chans {
		ch.hist.Reset()
	}
	for _, ch := range d.diffs {
		ch.hist.Reset()
	}
	if d.rls != nil {
		d.rls.init(d.cfg)
	}
}

// input returns the input channel carried by coded channel c.
func (d *Decoder) input(c int) int {
	if d.cfg.ChanSort {
		return d.cfg.ChanPos[c]
	}
	return c
}

// Decode decodes the next frame from r, which must be at the start of the
// frame. It returns the number of samples per channel. The samples are
// available from Samples or Floats until the next call.
func (d *Decoder) Decode(r *bitio.Reader) (int, error) {
	cfg := d.cfg
	n := FrameLen(cfg, d.frame)
	if n == 0 {
		return 0, ErrEndOfStream
	}
	ra := cfg.IsRA(d.frame)
	if ra {
		for _, ch := range d.chans {
			ch.hist.Reset()
		}
		for _, ch := range d.diffs {
			ch.hist.Reset()
		}
	}

	var err error
	switch {
	case cfg.Predictor == types.PredictorRLSLMS:
		err = d.decodeRLS(r, n, ra)
	case cfg.MCC && (!cfg.Joint || r.ReadBits(8) != 0):
		err = d.decodeMCC(r, n, ra)
	default:
		err = d.decodePlain(r, n, ra)
	}
	if err == nil {
		err = r.Err()
	}
	if err == nil && cfg.SampleType == types.SampleFloat {
		err = d.decodeFloat(r, n)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: frame %d: %w", ErrInvalidFrame, d.frame, err)
	}

	for p, ch := range d.diffs {
		x0 := d.chans[2*p].hist.Frame(n)
		x1 := d.chans[2*p+1].hist.Frame(n)
		xs := ch.hist.Frame(n)
		for i := range xs {
			xs[i] = x1[i] - x0[i]
		}
	}
	for c, ch := range d.chans {
		d.out[d.input(c)] = append(d.out[d.input(c)][:0], ch.hist.Frame(n)...)
		ch.hist.Advance(n)
	}
	for _, ch := range d.diffs {
		ch.hist.Advance(n)
	}
	d.frame++
	return n, nil
}

// Samples returns the integer samples of the last frame in input channel
// order. For floating point streams these are the integer parts.
func (d *Decoder) Samples() [][]int32 {
	return d.out
}

// Floats returns the samples of the last frame of a floating point stream
// in input channel order.
func (d *Decoder) Floats() [][]float32 {
	return d.floats
}

// decodeFloat reads the difference payload that follows the frame and
// rebuilds the floating point samples.
func (d *Decoder) decodeFloat(r *bitio.Reader, n int) error {
	size := int(r.ReadBits(32))
	if size > r.Remaining()/8 {
		return bitio.ErrShortRead
	}
	payload := make([]byte, size)
	for i := range payload {
		payload[i] = byte(r.ReadBits(8))
	}
	diffs := make([][]uint32, len(d.chans))
	for c := range diffs {
		diffs[c] = d.diffb[c][:n]
	}
	if err := floatpcm.Unpack(payload, diffs); err != nil {
		return err
	}
	for c, ch := range d.chans {
		in := d.input(c)
		d.floats[in] = d.floats[in][:n]
		floatpcm.Join(ch.hist.Frame(n), diffs[c], d.floats[in])
	}
	return nil
}
