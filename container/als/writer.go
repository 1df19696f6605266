package als

import (
	"encoding/binary"
	"io"

	"github.com/thesyncim/goals/internal/types"
)

// FrameRecord describes one random access unit of the frame data, the
// unit an MP4 muxer stores as a sample.
type FrameRecord struct {
	Offset  int64 // Start of the unit's frames after the header
	Size    int   // Bytes of frame data, without a size prefix
	Samples int   // Samples per channel
	Sync    bool  // Decodable without earlier units
}

// unit is a random access unit being collected.
type unit struct {
	data    []byte
	samples int
}

// Writer collects the coded frames of a stream and writes the header and
// the frame data on Close, once the sample count, the checksum and the
// unit sizes are known.
type Writer struct {
	w       io.Writer
	header  Header
	units   []unit
	frames  int
	samples uint64
	short   bool // Last frame was shorter than the frame length
	records []FrameRecord
	closed  bool
}

// NewWriter returns a Writer for a stream described by cfg. The sample
// count in cfg is replaced by the number of samples written.
func NewWriter(w io.Writer, cfg types.StreamConfig) (*Writer, error) {
	check := cfg
	check.Samples = 0
	if err := Validate(&check); err != nil {
		return nil, err
	}
	return &Writer{w: w, header: Header{Config: cfg}}, nil
}

// Config returns the stream description the header will carry.
func (w *Writer) Config() *types.StreamConfig {
	return &w.header.Config
}

// WriteFrame appends one coded frame holding samples samples per channel.
// Frames of a random access stream are grouped into units of RADistance
// frames.
func (w *Writer) WriteFrame(frame []byte, samples int) error {
	if w.closed {
		return ErrClosed
	}
	cfg := &w.header.Config
	if samples < 1 || samples > cfg.FrameLength || w.short {
		return ErrInvalidFrame
	}
	if len(w.units) == 0 || cfg.IsRA(w.frames) {
		w.units = append(w.units, unit{})
	}
	u := &w.units[len(w.units)-1]
	u.data = append(u.data, frame...)
	u.samples += samples
	w.frames++
	w.samples += uint64(samples)
	w.short = samples < cfg.FrameLength
	return nil
}

// Frames returns the number of frames written.
func (w *Writer) Frames() int {
	return w.frames
}

// Close writes the header with the final sample count and checksum
// followed by the frame data. It does not close the underlying writer.
func (w *Writer) Close(crc uint32) error {
	if w.closed {
		return ErrClosed
	}
	w.closed = true

	cfg := &w.header.Config
	if w.samples >= types.UnknownSamples {
		return ErrUnsupported
	}
	cfg.Samples = uint32(w.samples)
	w.header.CRC = crc

	ra := cfg.RADistance > 0
	w.header.RAUSizes = nil
	if ra && cfg.RAInfo == types.RAInfoHeader {
		w.header.RAUSizes = make([]uint32, len(w.units))
		for i, u := range w.units {
			w.header.RAUSizes[i] = uint32(len(u.data))
		}
	}
	head, err := w.header.Encode()
	if err != nil {
		return err
	}
	if _, err := w.w.Write(head); err != nil {
		return err
	}

	var offset int64
	w.records = w.records[:0]
	for _, u := range w.units {
		if ra && cfg.RAInfo == types.RAInfoFrames {
			var size [4]byte
			binary.BigEndian.PutUint32(size[:], uint32(len(u.data)))
			if _, err := w.w.Write(size[:]); err != nil {
				return err
			}
			offset += 4
		}
		if _, err := w.w.Write(u.data); err != nil {
			return err
		}
		w.records = append(w.records, FrameRecord{
			Offset:  offset,
			Size:    len(u.data),
			Samples: u.samples,
			Sync:    true,
		})
		offset += int64(len(u.data))
	}
	w.units = nil
	return nil
}

// Header returns the header as written by Close.
func (w *Writer) Header() *Header {
	return &w.header
}

// Records returns one record per random access unit, or one record for
// the whole stream when random access is off. It is valid after Close.
func (w *Writer) Records() []FrameRecord {
	return w.records
}
