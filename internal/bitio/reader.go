package bitio

import "errors"

// ErrShortRead indicates that more bits were consumed than the buffer holds.
var ErrShortRead = errors.New("bitio: read past end of buffer")

// Reader reads bits MSB first from a byte slice.
//
// Reads past the end of the buffer return zero bits; the overrun is
// reported by Err. The BGMC decoder relies on this because it looks
// ahead 16 bits and rewinds them when a block ends.
type Reader struct {
	buf []byte // Input buffer
	pos int    // Current bit position
}

// NewReader returns a Reader positioned at the first bit of buf.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Init resets the reader to the start of buf.
func (r *Reader) Init(buf []byte) {
	r.buf = buf
	r.pos = 0
}

// ReadBits reads n bits (n in [0, 32]) as an unsigned value.
func (r *Reader) ReadBits(n uint) uint32 {
	if n == 0 {
		return 0
	}
	idx := r.pos >> 3
	var v uint64
	for i := 0; i < 5; i++ {
		if idx+i < len(r.buf) {
			v |= uint64(r.buf[idx+i]) << (32 - 8*uint(i))
		}
	}
	shift := 40 - uint(r.pos&7) - n
	r.pos += int(n)
	return uint32(v>>shift) & uint32(1<<n-1)
}

// ReadBit reads a single bit.
func (r *Reader) ReadBit() uint32 {
	return r.ReadBits(1)
}

// ReadSigned reads an n-bit two's complement value.
func (r *Reader) ReadSigned(n uint) int32 {
	v := r.ReadBits(n)
	if n < 32 && v&(1<<(n-1)) != 0 {
		v |= ^uint32(0) << n
	}
	return int32(v)
}

// ReadUnary counts one bits up to the terminating zero.
func (r *Reader) ReadUnary() uint64 {
	var k uint64
	for r.ReadBit() == 1 {
		k++
	}
	return k
}

// ReadRice reads a value written by Writer.WriteRice with parameter s.
func (r *Reader) ReadRice(s uint) int32 {
	k := r.ReadUnary()
	if s == 0 {
		if k&1 != 0 {
			return int32(-int64(k+1) >> 1)
		}
		return int32(k >> 1)
	}
	j := r.ReadBits(s)
	half := uint32(1) << (s - 1)
	mag := int64(k)<<(s-1) | int64(j&(half-1))
	if j&half != 0 {
		return int32(mag)
	}
	return int32(-mag - 1)
}

// Align skips to the next byte boundary.
func (r *Reader) Align() {
	r.pos = (r.pos + 7) &^ 7
}

// Pos returns the current bit position.
func (r *Reader) Pos() int {
	return r.pos
}

// SetPos moves the reader to an absolute bit position.
func (r *Reader) SetPos(pos int) {
	r.pos = pos
}

// Rewind moves the reader back n bits.
func (r *Reader) Rewind(n int) {
	r.pos -= n
	if r.pos < 0 {
		r.pos = 0
	}
}

// BytePos returns the byte offset of the current position, rounded up.
func (r *Reader) BytePos() int {
	return (r.pos + 7) >> 3
}

// PeekByte returns the byte at the current aligned position without
// consuming it. It returns 0 at the end of the buffer.
func (r *Reader) PeekByte() byte {
	idx := r.BytePos()
	if idx < len(r.buf) {
		return r.buf[idx]
	}
	return 0
}

// Remaining returns the number of unread bits (negative after an overrun).
func (r *Reader) Remaining() int {
	return len(r.buf)*8 - r.pos
}

// Err reports ErrShortRead if the reader has moved beyond its buffer.
func (r *Reader) Err() error {
	if r.pos > len(r.buf)*8 {
		return ErrShortRead
	}
	return nil
}
