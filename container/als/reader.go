package als

import (
	"encoding/binary"
	"errors"
	"io"

	"github.com/thesyncim/goals/internal/types"
)

// maxUnit bounds the size of a random access unit accepted when reading.
const maxUnit = 1 << 28

// Reader reads the header of an ALS stream and splits the frame data into
// random access units.
//
// When the stream carries no unit sizes (random access off, or RA info 0)
// the whole frame data is returned as a single unit.
type Reader struct {
	r      io.Reader
	header *Header
	raw    []byte // Header bytes as read

	seeker io.Seeker // Non-nil if r can seek
	base   int64     // Absolute offset of the frame data, if seeker != nil

	unit    int     // Index of the next unit
	pos     int64   // Offset of the next unit after the header
	offsets []int64 // Known unit offsets, offsets[k] for k <= unit
	done    bool
}

// NewReader reads the header from r. If r implements io.Seeker, SeekUnit
// can move backwards.
func NewReader(r io.Reader) (*Reader, error) {
	h, raw, err := ReadHeader(r)
	if err != nil {
		return nil, err
	}
	rd := &Reader{r: r, header: h, raw: raw, offsets: []int64{0}}
	if s, ok := r.(io.Seeker); ok {
		if off, err := s.Seek(0, io.SeekCurrent); err == nil {
			rd.seeker = s
			rd.base = off
		}
	}
	return rd, nil
}

// Header returns the parsed header.
func (r *Reader) Header() *Header {
	return r.header
}

// Config returns the stream description.
func (r *Reader) Config() *types.StreamConfig {
	return &r.header.Config
}

// HeaderBytes returns the header exactly as read.
func (r *Reader) HeaderBytes() []byte {
	return r.raw
}

// Unit returns the index of the unit NextUnit returns next.
func (r *Reader) Unit() int {
	return r.unit
}

// sized reports whether units are delimited in the container.
func (r *Reader) sized() bool {
	cfg := &r.header.Config
	return cfg.RADistance > 0 && cfg.RAInfo != types.RAInfoNone
}

// NextUnit returns the frame data of the next random access unit. It
// returns io.EOF after the last unit.
func (r *Reader) NextUnit() ([]byte, error) {
	if r.done {
		return nil, io.EOF
	}
	cfg := &r.header.Config

	if !r.sized() {
		data, err := io.ReadAll(r.r)
		if err != nil {
			return nil, err
		}
		r.done = true
		if len(data) == 0 {
			return nil, io.EOF
		}
		r.advance(int64(len(data)), 0)
		return data, nil
	}

	var size uint32
	prefix := int64(0)
	if cfg.RAInfo == types.RAInfoHeader {
		if r.unit >= len(r.header.RAUSizes) {
			r.done = true
			return nil, io.EOF
		}
		size = r.header.RAUSizes[r.unit]
	} else {
		var b [4]byte
		if _, err := io.ReadFull(r.r, b[:]); err != nil {
			if err == io.EOF {
				r.done = true
				return nil, io.EOF
			}
			return nil, unexpected(err)
		}
		size = binary.BigEndian.Uint32(b[:])
		prefix = 4
	}
	if size > maxUnit {
		return nil, ErrInvalidHeader
	}
	data := make([]byte, size)
	if _, err := io.ReadFull(r.r, data); err != nil {
		return nil, unexpected(err)
	}
	r.advance(int64(size), prefix)
	return data, nil
}

// advance records that a unit of n bytes after a prefix was consumed.
func (r *Reader) advance(n, prefix int64) {
	r.pos += prefix + n
	r.unit++
	if r.unit == len(r.offsets) {
		r.offsets = append(r.offsets, r.pos)
	}
}

// SeekUnit positions the reader so that NextUnit returns unit k. Seeking
// forward skips data; seeking backward needs an io.Seeker.
func (r *Reader) SeekUnit(k int) error {
	if k < 0 {
		return ErrUnitRange
	}
	if k == r.unit && !r.done {
		return nil
	}
	if !r.sized() && k > 0 {
		return ErrNotSeekable
	}
	if n := len(r.header.RAUSizes); r.header.Config.RAInfo == types.RAInfoHeader && r.sized() && k >= n {
		return ErrUnitRange
	}

	if k < len(r.offsets) {
		if r.seeker == nil {
			return ErrNotSeekable
		}
		if _, err := r.seeker.Seek(r.base+r.offsets[k], io.SeekStart); err != nil {
			return err
		}
		r.unit, r.pos, r.done = k, r.offsets[k], false
		return nil
	}

	// Forward, past the furthest known unit.
	if err := r.SeekUnit(len(r.offsets) - 1); err != nil {
		return err
	}
	for r.unit < k {
		if err := r.skipUnit(); err != nil {
			if errors.Is(err, io.EOF) {
				return ErrUnitRange
			}
			return err
		}
	}
	return nil
}

// skipUnit moves past the next unit without returning its data.
func (r *Reader) skipUnit() error {
	var size, prefix int64
	if r.header.Config.RAInfo == types.RAInfoHeader {
		if r.unit >= len(r.header.RAUSizes) {
			return io.EOF
		}
		size = int64(r.header.RAUSizes[r.unit])
	} else {
		var b [4]byte
		if _, err := io.ReadFull(r.r, b[:]); err != nil {
			if err == io.EOF {
				return io.EOF
			}
			return unexpected(err)
		}
		size = int64(binary.BigEndian.Uint32(b[:]))
		prefix = 4
	}
	if r.seeker != nil {
		if _, err := r.seeker.Seek(size, io.SeekCurrent); err != nil {
			return err
		}
	} else if _, err := io.CopyN(io.Discard, r.r, size); err != nil {
		return unexpected(err)
	}
	r.advance(size, prefix)
	return nil
}

func unexpected(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return ErrUnexpectedEOS
	}
	return err
}
