// Package bitio provides the MSB-first bit writer and reader used by every
// layer of the ALS bitstream.
//
// Bit order contract: the first bit written into a byte is its most
// significant bit, and multi-bit fields are stored most significant bit
// first. Readers and writers never reorder bytes.
package bitio

// Writer accumulates bits MSB first into a growable byte slice.
// The zero value is ready to use.
type Writer struct {
	buf   []byte // Completed bytes
	cur   uint64 // Pending bits, right aligned
	nbits uint   // Number of pending bits in cur (< 8 between calls)
}

// Reset discards all written bits and reuses the underlying storage.
func (w *Writer) Reset() {
	w.buf = w.buf[:0]
	w.cur = 0
	w.nbits = 0
}

// WriteBits writes the low n bits of v, most significant first.
// n must be in [0, 32].
func (w *Writer) WriteBits(v uint32, n uint) {
	if n == 0 {
		return
	}
	w.cur = w.cur<<n | uint64(v)&(1<<n-1)
	w.nbits += n
	for w.nbits >= 8 {
		w.nbits -= 8
		w.buf = append(w.buf, byte(w.cur>>w.nbits))
	}
	w.cur &= 1<<w.nbits - 1
}

// WriteBit writes a single bit (any non-zero b writes 1).
func (w *Writer) WriteBit(b uint32) {
	if b != 0 {
		b = 1
	}
	w.WriteBits(b, 1)
}

// WriteSigned writes v as an n-bit two's complement field.
func (w *Writer) WriteSigned(v int32, n uint) {
	w.WriteBits(uint32(v), n)
}

// WriteUnary writes k one bits followed by a terminating zero.
func (w *Writer) WriteUnary(k uint64) {
	for k >= 32 {
		w.WriteBits(0xFFFFFFFF, 32)
		k -= 32
	}
	w.WriteBits((1<<k-1)<<1, uint(k)+1)
}

// WriteRice writes v with Rice parameter s.
//
// For s > 0 the magnitude class k = i>>(s-1) is sent in unary, where
// i = v for v >= 0 and i = -v-1 otherwise, followed by s bits holding the
// sign flag (set for v >= 0) above the s-1 low bits of i. For s == 0 the
// folded value 2v (v >= 0) or -2v-1 is sent in unary.
func (w *Writer) WriteRice(v int32, s uint) {
	if s == 0 {
		w.WriteUnary(foldSigned(v))
		return
	}
	i, sign := magnitude(v)
	k := uint64(i) >> (s - 1)
	j := uint32(i) & (1<<(s-1) - 1)
	if sign {
		j |= 1 << (s - 1)
	}
	w.WriteUnary(k)
	w.WriteBits(j, s)
}

// Align pads the pending byte with zero bits.
func (w *Writer) Align() {
	if w.nbits > 0 {
		w.WriteBits(0, 8-w.nbits)
	}
}

// Len returns the number of bits written so far.
func (w *Writer) Len() int {
	return len(w.buf)*8 + int(w.nbits)
}

// Bytes aligns the writer and returns the written bytes.
// The slice aliases the writer's storage until the next Reset.
func (w *Writer) Bytes() []byte {
	w.Align()
	return w.buf
}

// AppendBytes writes whole bytes. The writer must be byte aligned.
func (w *Writer) AppendBytes(p []byte) {
	if w.nbits != 0 {
		for _, b := range p {
			w.WriteBits(uint32(b), 8)
		}
		return
	}
	w.buf = append(w.buf, p...)
}

// RiceBits returns the number of bits WriteRice(v, s) produces.
func RiceBits(v int32, s uint) int {
	if s == 0 {
		return int(foldSigned(v)) + 1
	}
	i, _ := magnitude(v)
	return int(uint64(i)>>(s-1)) + 1 + int(s)
}

// magnitude returns v or -v-1 and whether v is non-negative.
func magnitude(v int32) (uint32, bool) {
	if v >= 0 {
		return uint32(v), true
	}
	return uint32(-(int64(v) + 1)), false
}

// foldSigned maps v to 2v (v >= 0) or -2v-1.
func foldSigned(v int32) uint64 {
	if v >= 0 {
		return uint64(v) << 1
	}
	return uint64(-int64(v))<<1 - 1
}
