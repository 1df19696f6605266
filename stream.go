// stream.go implements streaming io.Reader and io.Writer wrappers for ALS encoding/decoding.

package goals

import (
	"io"
)

// Streaming API
//
// The Reader and Writer types move interleaved PCM bytes through the codec
// with Go's standard io patterns. The bytes use the layout of the original
// file: 8-bit samples are unsigned, wider samples are little-endian unless
// MSBFirst is set, and float samples are IEEE binary32.
//
// # Streaming Encode
//
//	cfg := goals.DefaultEncoderConfig(44100, 2, 16)
//	w, err := goals.NewWriter(out, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if _, err := io.Copy(w, pcm); err != nil {
//	    log.Fatal(err)
//	}
//	if err := w.Close(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Streaming Decode
//
//	r, err := goals.NewReader(in)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if _, err := io.Copy(pcmOut, r); err != nil {
//	    log.Fatal(err) // includes ErrCRCMismatch
//	}

// Writer encodes interleaved PCM bytes written to it.
type Writer struct {
	enc    *Encoder
	layout pcmLayout

	partial []byte // Bytes of an incomplete sample frame
	x       [][]int32
	f       [][]float32
}

// NewWriter creates a streaming encoder writing the stream to w on Close.
func NewWriter(w io.Writer, cfg EncoderConfig) (*Writer, error) {
	enc, err := NewEncoder(w, cfg)
	if err != nil {
		return nil, err
	}
	stream := enc.StreamConfig()
	return &Writer{
		enc:    enc,
		layout: layoutOf(&stream),
	}, nil
}

// Write implements io.Writer, consuming interleaved PCM bytes. Bytes of
// an incomplete sample frame are kept for the next call.
func (w *Writer) Write(p []byte) (int, error) {
	channels := w.enc.Channels()
	size := w.layout.frameBytes(channels, 1)
	chunk := w.layout.frameBytes(channels, w.enc.FrameLength())
	total := len(p)

	if len(w.partial) > 0 {
		k := min(size-len(w.partial), len(p))
		w.partial = append(w.partial, p[:k]...)
		p = p[k:]
		if len(w.partial) < size {
			return total, nil
		}
		if err := w.encode(w.partial); err != nil {
			return 0, err
		}
		w.partial = w.partial[:0]
	}
	for len(p) >= size {
		k := min(len(p)/size*size, chunk)
		if err := w.encode(p[:k]); err != nil {
			return total - len(p), err
		}
		p = p[k:]
	}
	w.partial = append(w.partial, p...)
	return total, nil
}

// encode passes whole sample frames to the encoder.
func (w *Writer) encode(p []byte) error {
	channels := w.enc.Channels()
	n := len(p) / w.layout.frameBytes(channels, 1)
	if w.layout.float {
		if w.f == nil {
			w.f = make([][]float32, channels)
		}
		for c := range w.f {
			w.f[c] = resize(w.f[c], n)
		}
		w.layout.readFloat(w.f, p, n)
		return w.enc.WriteFloat(w.f)
	}
	if w.x == nil {
		w.x = make([][]int32, channels)
	}
	for c := range w.x {
		w.x[c] = resize(w.x[c], n)
	}
	w.layout.readInt(w.x, p, n)
	return w.enc.Write(w.x)
}

func resize[T any](s []T, n int) []T {
	if cap(s) < n {
		return make([]T, n)
	}
	return s[:n]
}

// Close encodes the buffered samples and writes the stream. It returns
// ErrInvalidSampleCount if an incomplete sample frame is left.
func (w *Writer) Close() error {
	if len(w.partial) > 0 {
		return ErrInvalidSampleCount
	}
	return w.enc.Close()
}

// Encoder returns the underlying encoder, for its setters before the
// first Write and its records after Close.
func (w *Writer) Encoder() *Encoder {
	return w.enc
}

// Reader decodes an ALS stream into interleaved PCM bytes.
type Reader struct {
	dec    *Decoder
	layout pcmLayout

	buf []byte // Decoded PCM bytes
	off int    // Read position in buf
	err error  // Sticky error
}

// NewReader reads the header of the stream in r.
func NewReader(r io.Reader) (*Reader, error) {
	dec, err := NewDecoder(r)
	if err != nil {
		return nil, err
	}
	cfg := dec.Config()
	return &Reader{dec: dec, layout: layoutOf(&cfg)}, nil
}

// Read implements io.Reader, returning decoded PCM bytes. After the last
// frame it returns ErrCRCMismatch instead of io.EOF if the checksum fails.
func (r *Reader) Read(p []byte) (int, error) {
	for r.off >= len(r.buf) {
		if r.err != nil {
			return 0, r.err
		}
		r.fill()
	}
	n := copy(p, r.buf[r.off:])
	r.off += n
	return n, nil
}

// fill decodes the next frame into buf.
func (r *Reader) fill() {
	r.buf, r.off = r.buf[:0], 0
	if r.layout.float {
		f, err := r.dec.ReadFloatFrame()
		if err != nil {
			r.err = r.end(err)
			return
		}
		r.buf = r.layout.appendFloat(r.buf, f, len(f[0]))
		return
	}
	x, err := r.dec.ReadFrame()
	if err != nil {
		r.err = r.end(err)
		return
	}
	r.buf = r.layout.appendInt(r.buf, x, len(x[0]))
}

// end turns io.EOF into the checksum result.
func (r *Reader) end(err error) error {
	if err != io.EOF {
		return err
	}
	if err := r.dec.Verify(); err != nil {
		return err
	}
	return io.EOF
}

// Decoder returns the underlying decoder.
func (r *Reader) Decoder() *Decoder {
	return r.dec
}

// SampleRate returns the sample rate in Hz.
func (r *Reader) SampleRate() int {
	return r.dec.SampleRate()
}

// Channels returns the number of channels.
func (r *Reader) Channels() int {
	return r.dec.Channels()
}
