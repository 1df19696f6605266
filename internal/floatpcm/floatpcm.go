// Package floatpcm splits IEEE 754 binary32 samples into a 24-bit integer
// part, coded by the regular predictor pipeline, and a per-frame payload
// of XOR differences that restores the exact bit patterns.
package floatpcm

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// ErrCorrupt is returned when a difference payload does not match the
// frame it belongs to.
var ErrCorrupt = errors.New("floatpcm: corrupt difference payload")

// Scale maps full scale floating point to the 24-bit integer range.
const Scale = 1 << 23

const (
	minInt = -1 << 23
	maxInt = 1<<23 - 1
)

// ToInt returns the integer part coded for f.
func ToInt(f float32) int32 {
	v := float64(f) * Scale
	switch {
	case math.IsNaN(v):
		return 0
	case v <= minInt:
		return minInt
	case v >= maxInt:
		return maxInt
	}
	return int32(math.RoundToEven(v))
}

// FromInt returns the floating point value an integer part stands for.
func FromInt(v int32) float32 {
	return float32(v) / Scale
}

// Split fills xi with the integer parts of f and diff with the XOR of each
// sample's bits against the value its integer part stands for.
func Split(f []float32, xi []int32, diff []uint32) {
	for i, v := range f {
		xi[i] = ToInt(v)
		diff[i] = math.Float32bits(v) ^ math.Float32bits(FromInt(xi[i]))
	}
}

// Join restores f from integer parts and differences.
func Join(xi []int32, diff []uint32, f []float32) {
	for i, v := range xi {
		f[i] = math.Float32frombits(math.Float32bits(FromInt(v)) ^ diff[i])
	}
}

var zstdEncPool = sync.Pool{
	New: func() any {
		enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
		return enc
	},
}

var zstdDecPool = sync.Pool{
	New: func() any {
		dec, _ := zstd.NewReader(nil)
		return dec
	},
}

// Pack returns the compressed payload of the differences of one frame,
// one slice per channel. A frame without differences has an empty
// payload.
func Pack(diffs [][]uint32) ([]byte, error) {
	total := 0
	nonzero := false
	for _, d := range diffs {
		total += len(d)
		for _, v := range d {
			nonzero = nonzero || v != 0
		}
	}
	if !nonzero {
		return nil, nil
	}

	// Byte planes, most significant first, keep the mostly zero high
	// bytes together.
	planes := make([]byte, 4*total)
	pos := 0
	for _, d := range diffs {
		for _, v := range d {
			planes[pos] = byte(v >> 24)
			planes[total+pos] = byte(v >> 16)
			planes[2*total+pos] = byte(v >> 8)
			planes[3*total+pos] = byte(v)
			pos++
		}
	}

	var buf bytes.Buffer
	enc := zstdEncPool.Get().(*zstd.Encoder)
	enc.Reset(&buf)
	if _, err := enc.Write(planes); err != nil {
		_ = enc.Close()
		zstdEncPool.Put(enc)
		return nil, fmt.Errorf("floatpcm: zstd encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		zstdEncPool.Put(enc)
		return nil, fmt.Errorf("floatpcm: zstd encode: %w", err)
	}
	zstdEncPool.Put(enc)
	return buf.Bytes(), nil
}

// Unpack decodes a payload produced by Pack into diffs, whose lengths must
// match the packed frame.
func Unpack(payload []byte, diffs [][]uint32) error {
	total := 0
	for _, d := range diffs {
		total += len(d)
	}
	if len(payload) == 0 {
		for _, d := range diffs {
			clear(d)
		}
		return nil
	}

	dec := zstdDecPool.Get().(*zstd.Decoder)
	if err := dec.Reset(bytes.NewReader(payload)); err != nil {
		zstdDecPool.Put(dec)
		return fmt.Errorf("floatpcm: zstd decode: %w", err)
	}
	var out bytes.Buffer
	out.Grow(4 * total)
	// One byte more than a valid payload holds detects oversized ones.
	if _, err := out.ReadFrom(io.LimitReader(dec, int64(4*total)+1)); err != nil {
		zstdDecPool.Put(dec)
		return fmt.Errorf("floatpcm: zstd decode: %w", err)
	}
	zstdDecPool.Put(dec)

	planes := out.Bytes()
	if len(planes) != 4*total {
		return ErrCorrupt
	}
	pos := 0
	for _, d := range diffs {
		for i := range d {
			d[i] = uint32(planes[pos])<<24 | uint32(planes[total+pos])<<16 |
				uint32(planes[2*total+pos])<<8 | uint32(planes[3*total+pos])
			pos++
		}
	}
	return nil
}
