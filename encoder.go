// encoder.go implements the public Encoder API for ALS encoding.

package goals

import (
	"fmt"
	"io"

	"github.com/thesyncim/goals/container/als"
	"github.com/thesyncim/goals/internal/encoder"
	"github.com/thesyncim/goals/internal/types"
)

// Encoder compresses PCM into an ALS stream.
//
// Samples are collected into frames as they are written. The stream is
// written to the underlying writer by Close, once the sample count, the
// checksum and the random access unit sizes are known.
//
// An Encoder instance maintains internal state and is NOT safe for concurrent use.
// Each goroutine should create its own Encoder instance.
type Encoder struct {
	w      io.Writer
	cfg    EncoderConfig
	stream StreamConfig

	enc    *encoder.Encoder
	out    *als.Writer
	layout pcmLayout

	x       [][]int32   // Pending samples of the current frame
	f       [][]float32 // Pending float samples of the current frame
	pending int
	pcm     []byte // Scratch for the checksum
	crc     uint32
	unit    int // Bytes of the current random access unit

	started bool
	closed  bool
}

// NewEncoder creates an encoder writing the stream to w.
//
// Returns an error if the configuration cannot be encoded.
func NewEncoder(w io.Writer, cfg EncoderConfig) (*Encoder, error) {
	e := &Encoder{w: w}
	if err := e.configure(cfg); err != nil {
		return nil, err
	}
	return e, nil
}

// configure validates cfg and sets up the encoder for it.
func (e *Encoder) configure(cfg EncoderConfig) error {
	if e.started || e.closed {
		return fmt.Errorf("%w: encoder already started", ErrInvalidConfig)
	}
	stream, err := cfg.stream()
	if err != nil {
		return err
	}
	out, err := als.NewWriter(e.w, stream)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	enc, err := encoder.New(out.Config(), encoder.Options{
		Window:  cfg.Window.window(),
		Workers: cfg.Parallel,
		RLSMode: cfg.RLSMode,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	e.cfg = cfg
	e.stream = stream
	e.out = out
	e.enc = enc
	e.layout = layoutOf(&stream)
	n := stream.FrameLength
	e.x, e.f = nil, nil
	if stream.SampleType == types.SampleFloat {
		e.f = make([][]float32, stream.Channels)
		for c := range e.f {
			e.f[c] = make([]float32, n)
		}
	} else {
		e.x = make([][]int32, stream.Channels)
		for c := range e.x {
			e.x[c] = make([]int32, n)
		}
	}
	return nil
}

// update applies fn to a copy of the configuration before the first Write.
func (e *Encoder) update(fn func(c *EncoderConfig)) error {
	cfg := e.cfg
	fn(&cfg)
	return e.configure(cfg)
}

// SetFrameLength sets the number of samples per channel and frame. Zero
// picks a default from the sample rate.
func (e *Encoder) SetFrameLength(n int) error {
	return e.update(func(c *EncoderConfig) { c.FrameLength = n })
}

// SetBlockSwitching sets the depth of the block partition search, 0 to 5.
func (e *Encoder) SetBlockSwitching(levels int) error {
	return e.update(func(c *EncoderConfig) { c.BlockSwitching = levels })
}

// SetMaxOrder sets the highest predictor order and whether the order is
// chosen per block.
func (e *Encoder) SetMaxOrder(order int, adaptive bool) error {
	return e.update(func(c *EncoderConfig) {
		c.MaxOrder = order
		c.AdaptiveOrder = adaptive
	})
}

// SetRandomAccess sets the number of frames per random access unit and
// where the unit sizes are stored.
func (e *Encoder) SetRandomAccess(distance int, info RAInfo) error {
	return e.update(func(c *EncoderConfig) {
		c.RADistance = distance
		c.RAInfo = info
	})
}

// SetBGMC selects BGMC instead of Rice codes for the residual.
func (e *Encoder) SetBGMC(enabled bool) error {
	return e.update(func(c *EncoderConfig) { c.BGMC = enabled })
}

// SetLTP enables long-term prediction.
func (e *Encoder) SetLTP(enabled bool) error {
	return e.update(func(c *EncoderConfig) { c.LTP = enabled })
}

// SetMCC enables multi-channel correlation.
func (e *Encoder) SetMCC(enabled bool) error {
	return e.update(func(c *EncoderConfig) { c.MCC = enabled })
}

// SetRLSLMS selects the RLS-LMS predictor with the given preset. Block
// switching is turned off.
func (e *Encoder) SetRLSLMS(enabled bool, mode int) error {
	return e.update(func(c *EncoderConfig) {
		c.RLSLMS = enabled
		c.RLSMode = mode
		if enabled {
			c.BlockSwitching = 0
		}
	})
}

// SetParallel sets the number of goroutines analyzing a frame.
func (e *Encoder) SetParallel(workers int) error {
	return e.update(func(c *EncoderConfig) { c.Parallel = workers })
}

// Config returns the encoder configuration.
func (e *Encoder) Config() EncoderConfig {
	return e.cfg
}

// StreamConfig returns the description the header will carry. The sample
// count is set by Close.
func (e *Encoder) StreamConfig() StreamConfig {
	return *e.out.Config()
}

// SampleRate returns the sample rate in Hz.
func (e *Encoder) SampleRate() int {
	return e.cfg.SampleRate
}

// Channels returns the number of channels.
func (e *Encoder) Channels() int {
	return e.stream.Channels
}

// FrameLength returns the number of samples per channel and frame.
func (e *Encoder) FrameLength() int {
	return e.stream.FrameLength
}

// checkShape validates the channel count and lengths of a Write.
func (e *Encoder) checkShape(channels int, length func(c int) int) (int, error) {
	if e.closed {
		return 0, ErrClosed
	}
	if channels != e.stream.Channels {
		return 0, ErrInvalidChannels
	}
	n := length(0)
	for c := 1; c < channels; c++ {
		if length(c) != n {
			return 0, ErrInvalidSampleCount
		}
	}
	return n, nil
}

// Write encodes integer samples, samples[c] holding channel c. Channels
// must have equal lengths; any length is accepted and buffered into
// frames. Samples must fit the configured resolution.
func (e *Encoder) Write(samples [][]int32) error {
	n, err := e.checkShape(len(samples), func(c int) int { return len(samples[c]) })
	if err != nil {
		return err
	}
	if e.x == nil {
		return fmt.Errorf("%w: integer samples for a float stream", ErrInvalidConfig)
	}
	if res := e.stream.Resolution; res < 32 {
		lo, hi := int32(-1)<<(res-1), int32(1)<<(res-1)-1
		for c, ch := range samples {
			for i, v := range ch {
				if v < lo || v > hi {
					return fmt.Errorf("%w: channel %d sample %d is %d", ErrInvalidResolution, c, i, v)
				}
			}
		}
	}
	e.started = true
	for off := 0; off < n; {
		k := min(n-off, e.stream.FrameLength-e.pending)
		for c, ch := range samples {
			copy(e.x[c][e.pending:], ch[off:off+k])
		}
		e.pending += k
		off += k
		if e.pending == e.stream.FrameLength {
			if err := e.flush(); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteFloat encodes float samples of a stream configured with Float.
func (e *Encoder) WriteFloat(samples [][]float32) error {
	n, err := e.checkShape(len(samples), func(c int) int { return len(samples[c]) })
	if err != nil {
		return err
	}
	if e.f == nil {
		return fmt.Errorf("%w: float samples for an integer stream", ErrInvalidConfig)
	}
	e.started = true
	for off := 0; off < n; {
		k := min(n-off, e.stream.FrameLength-e.pending)
		for c, ch := range samples {
			copy(e.f[c][e.pending:], ch[off:off+k])
		}
		e.pending += k
		off += k
		if e.pending == e.stream.FrameLength {
			if err := e.flush(); err != nil {
				return err
			}
		}
	}
	return nil
}

// flush codes the pending samples as one frame.
func (e *Encoder) flush() error {
	n := e.pending
	e.pending = 0
	frame := e.enc.Frame()

	var data []byte
	var err error
	if e.f != nil {
		in := make([][]float32, len(e.f))
		for c := range in {
			in[c] = e.f[c][:n]
		}
		data, err = e.enc.EncodeFloat(in)
		if err == nil && e.stream.CRC {
			e.pcm = e.layout.appendFloat(e.pcm[:0], in, n)
		}
	} else {
		in := make([][]int32, len(e.x))
		for c := range in {
			in[c] = e.x[c][:n]
		}
		data, err = e.enc.Encode(in)
		if err == nil && e.stream.CRC {
			e.pcm = e.layout.appendInt(e.pcm[:0], in, n)
		}
	}
	if err != nil {
		return err
	}
	if e.stream.CRC {
		e.crc = als.UpdateCRC(e.crc, e.pcm)
	}

	if e.stream.IsRA(frame) {
		e.unit = 0
	}
	e.unit += len(data)
	if e.cfg.Strict && e.unit > StrictMaxUnitSize {
		return fmt.Errorf("%w: random access unit above %d bytes", ErrUnsupported, StrictMaxUnitSize)
	}
	return e.out.WriteFrame(data, n)
}

// Close codes the buffered samples and writes the stream. It does not
// close the underlying writer.
func (e *Encoder) Close() error {
	if e.closed {
		return ErrClosed
	}
	if e.pending > 0 {
		if err := e.flush(); err != nil {
			e.closed = true
			return err
		}
	}
	e.closed = true
	if err := e.out.Close(e.crc); err != nil {
		return fmt.Errorf("goals: write stream: %w", err)
	}
	return nil
}

// Records returns the random access units of the written stream, the
// samples of an MP4 track. It is valid after Close.
func (e *Encoder) Records() []als.FrameRecord {
	return e.out.Records()
}

// SpecificConfig returns the AudioSpecificConfig of the written stream
// for an MP4 sample description. It is valid after Close.
func (e *Encoder) SpecificConfig() ([]byte, error) {
	if !e.closed {
		return nil, fmt.Errorf("%w: encoder not closed", ErrInvalidConfig)
	}
	return als.SpecificConfig(e.out.Header())
}
