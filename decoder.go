// decoder.go implements the public Decoder API for ALS decoding.

package goals

import (
	"errors"
	"fmt"
	"io"

	"github.com/thesyncim/goals/container/als"
	"github.com/thesyncim/goals/internal/bitio"
	"github.com/thesyncim/goals/internal/decoder"
	"github.com/thesyncim/goals/internal/types"
)

// Decoder decompresses an ALS stream frame by frame.
//
// The checksum of a stream decoded from its start is compared once the
// last frame has been returned; Verify and Close report ErrCRCMismatch.
//
// A Decoder instance maintains internal state and is NOT safe for concurrent use.
// Each goroutine should create its own Decoder instance.
type Decoder struct {
	r      *als.Reader
	cfg    *StreamConfig
	dec    *decoder.Decoder
	layout pcmLayout

	br   bitio.Reader // Over the current random access unit
	have bool         // br holds a unit

	pcm     []byte
	crc     uint32
	whole   bool // Decoded from the first frame without seeking
	checked error
	done    bool
	closed  bool
}

// NewDecoder reads the header of the stream in r. If r implements
// io.Seeker, SeekRAU can also move backwards.
func NewDecoder(r io.Reader) (*Decoder, error) {
	ar, err := als.NewReader(r)
	if err != nil {
		return nil, containerError(err)
	}
	cfg := ar.Config()
	dec, err := decoder.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidHeader, err)
	}
	return &Decoder{
		r:      ar,
		cfg:    cfg,
		dec:    dec,
		layout: layoutOf(cfg),
		whole:  true,
	}, nil
}

// containerError maps errors of the container layer to package errors.
func containerError(err error) error {
	switch {
	case errors.Is(err, als.ErrUnexpectedEOS):
		return fmt.Errorf("%w: %w", ErrShortRead, err)
	case errors.Is(err, als.ErrUnsupported), errors.Is(err, als.ErrNotSeekable), errors.Is(err, als.ErrUnitRange):
		return fmt.Errorf("%w: %w", ErrUnsupported, err)
	case errors.Is(err, als.ErrInvalidHeader):
		return fmt.Errorf("%w: %w", ErrInvalidHeader, err)
	}
	return err
}

// Config returns the stream description read from the header.
func (d *Decoder) Config() StreamConfig {
	return *d.cfg
}

// Header returns the parsed header, including the stored checksum, the
// original file's header and trailer bytes and the AUX data.
func (d *Decoder) Header() *als.Header {
	return d.r.Header()
}

// SampleRate returns the sample rate in Hz.
func (d *Decoder) SampleRate() int {
	return int(d.cfg.SampleRate)
}

// Channels returns the number of channels.
func (d *Decoder) Channels() int {
	return d.cfg.Channels
}

// Samples returns the number of samples per channel, or -1 if the header
// does not record it.
func (d *Decoder) Samples() int64 {
	if d.cfg.Samples == types.UnknownSamples {
		return -1
	}
	return int64(d.cfg.Samples)
}

// Position returns the index of the next sample per channel.
func (d *Decoder) Position() int64 {
	return int64(d.dec.Frame()) * int64(d.cfg.FrameLength)
}

// sized reports whether every unit is delimited by the container.
func (d *Decoder) sized() bool {
	return d.cfg.RADistance > 0 && d.cfg.RAInfo != types.RAInfoNone
}

// next decodes one frame and returns its length.
func (d *Decoder) next() (int, error) {
	if d.closed {
		return 0, ErrClosed
	}
	if d.done {
		return 0, io.EOF
	}
	frame := d.dec.Frame()
	if decoder.FrameLen(d.cfg, frame) == 0 {
		d.finish()
		return 0, io.EOF
	}

	if !d.have || (d.sized() && d.cfg.IsRA(frame)) {
		unit, err := d.r.NextUnit()
		if err == io.EOF {
			if d.cfg.Samples == types.UnknownSamples {
				d.finish()
				return 0, io.EOF
			}
			return 0, ErrShortRead
		}
		if err != nil {
			return 0, containerError(err)
		}
		d.br.Init(unit)
		d.have = true
	}
	// Streams of unknown length end with their data.
	if d.cfg.Samples == types.UnknownSamples && d.br.Remaining() < 8 {
		d.finish()
		return 0, io.EOF
	}

	n, err := d.dec.Decode(&d.br)
	if err != nil {
		if errors.Is(err, bitio.ErrShortRead) {
			return 0, fmt.Errorf("%w: %w", ErrShortRead, err)
		}
		return 0, fmt.Errorf("%w: %w", ErrInvalidFrame, err)
	}
	if d.cfg.CRC && d.whole {
		if d.cfg.SampleType == types.SampleFloat {
			d.pcm = d.layout.appendFloat(d.pcm[:0], d.dec.Floats(), n)
		} else {
			d.pcm = d.layout.appendInt(d.pcm[:0], d.dec.Samples(), n)
		}
		d.crc = als.UpdateCRC(d.crc, d.pcm)
	}
	return n, nil
}

// finish compares the checksum after the last frame.
func (d *Decoder) finish() {
	if d.done {
		return
	}
	d.done = true
	if d.cfg.CRC && d.whole && d.crc != d.r.Header().CRC {
		d.checked = ErrCRCMismatch
	}
}

// ReadFrame decodes the next frame of an integer stream. The result holds
// one slice per channel and stays valid until the next call. At the end
// of the stream it returns io.EOF.
func (d *Decoder) ReadFrame() ([][]int32, error) {
	if d.cfg.SampleType == types.SampleFloat {
		return nil, fmt.Errorf("%w: float stream, use ReadFloatFrame", ErrUnsupported)
	}
	n, err := d.next()
	if err != nil {
		return nil, err
	}
	out := d.dec.Samples()
	for c := range out {
		out[c] = out[c][:n]
	}
	return out, nil
}

// ReadFloatFrame decodes the next frame of a float stream.
func (d *Decoder) ReadFloatFrame() ([][]float32, error) {
	if d.cfg.SampleType != types.SampleFloat {
		return nil, fmt.Errorf("%w: integer stream, use ReadFrame", ErrUnsupported)
	}
	n, err := d.next()
	if err != nil {
		return nil, err
	}
	out := d.dec.Floats()
	for c := range out {
		out[c] = out[c][:n]
	}
	return out, nil
}

// SeekRAU moves to the start of random access unit k. The checksum is not
// verified after a seek.
func (d *Decoder) SeekRAU(k int) error {
	if d.closed {
		return ErrClosed
	}
	if d.cfg.RADistance == 0 {
		return fmt.Errorf("%w: stream has no random access units", ErrUnsupported)
	}
	frame := k * d.cfg.RADistance
	if k < 0 || (d.cfg.Samples != types.UnknownSamples && decoder.FrameLen(d.cfg, frame) == 0) {
		return fmt.Errorf("%w: unit %d", ErrUnsupported, k)
	}
	if !d.sized() {
		return fmt.Errorf("%w: stream stores no unit sizes", ErrUnsupported)
	}
	if err := d.r.SeekUnit(k); err != nil {
		return containerError(err)
	}
	if err := d.dec.Seek(frame); err != nil {
		return err
	}
	d.have = false
	d.done = false
	d.whole = false
	d.checked = nil
	return nil
}

// Verify decodes the rest of the stream and reports ErrCRCMismatch if the
// samples do not match the stored checksum. It returns ErrUnsupported if
// the decoder has seeked, as the checksum covers the whole stream.
func (d *Decoder) Verify() error {
	for {
		if _, err := d.next(); err != nil {
			if err != io.EOF {
				return err
			}
			break
		}
	}
	if !d.whole && d.cfg.CRC {
		return fmt.Errorf("%w: checksum after a seek", ErrUnsupported)
	}
	return d.checked
}

// Close releases the decoder. It returns ErrCRCMismatch if the whole
// stream was decoded and did not match its checksum.
func (d *Decoder) Close() error {
	if d.closed {
		return ErrClosed
	}
	d.closed = true
	return d.checked
}
