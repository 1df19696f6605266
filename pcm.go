// pcm.go converts between per-channel samples and interleaved PCM bytes in
// the byte order of the original file.

package goals

import (
	"math"
	"slices"

	"github.com/thesyncim/goals/internal/types"
)

// pcmLayout describes interleaved PCM bytes.
type pcmLayout struct {
	width int  // Bytes per sample
	msb   bool // Big-endian
	float bool
}

func layoutOf(cfg *StreamConfig) pcmLayout {
	return pcmLayout{
		width: cfg.Resolution / 8,
		msb:   cfg.MSBFirst,
		float: cfg.SampleType == types.SampleFloat,
	}
}

// frameBytes returns the size of n interleaved sample frames.
func (l pcmLayout) frameBytes(channels, n int) int {
	return l.width * channels * n
}

// put stores v in dst. 8-bit PCM is unsigned with an offset of 128.
func (l pcmLayout) put(dst []byte, v uint32) {
	if l.width == 1 {
		dst[0] = byte(v + 128)
		return
	}
	if l.msb {
		for i := l.width - 1; i >= 0; i-- {
			dst[i] = byte(v)
			v >>= 8
		}
		return
	}
	for i := 0; i < l.width; i++ {
		dst[i] = byte(v)
		v >>= 8
	}
}

// get loads a sample from src, sign extended for integer PCM.
func (l pcmLayout) get(src []byte) uint32 {
	if l.width == 1 {
		return uint32(int32(src[0]) - 128)
	}
	var v uint32
	if l.msb {
		for i := 0; i < l.width; i++ {
			v = v<<8 | uint32(src[i])
		}
	} else {
		for i := l.width - 1; i >= 0; i-- {
			v = v<<8 | uint32(src[i])
		}
	}
	if shift := 32 - 8*l.width; !l.float && shift > 0 {
		v = uint32(int32(v<<shift) >> shift)
	}
	return v
}

// appendInt appends the first n samples of x interleaved.
func (l pcmLayout) appendInt(dst []byte, x [][]int32, n int) []byte {
	start := len(dst)
	dst = grow(dst, l.frameBytes(len(x), n))
	p := dst[start:]
	for i := 0; i < n; i++ {
		for _, ch := range x {
			l.put(p, uint32(ch[i]))
			p = p[l.width:]
		}
	}
	return dst
}

// appendFloat appends the first n samples of f interleaved.
func (l pcmLayout) appendFloat(dst []byte, f [][]float32, n int) []byte {
	start := len(dst)
	dst = grow(dst, l.frameBytes(len(f), n))
	p := dst[start:]
	for i := 0; i < n; i++ {
		for _, ch := range f {
			l.put(p, math.Float32bits(ch[i]))
			p = p[l.width:]
		}
	}
	return dst
}

// readInt fills x[c][:n] from interleaved bytes.
func (l pcmLayout) readInt(x [][]int32, src []byte, n int) {
	for i := 0; i < n; i++ {
		for _, ch := range x {
			ch[i] = int32(l.get(src))
			src = src[l.width:]
		}
	}
}

// readFloat fills f[c][:n] from interleaved bytes.
func (l pcmLayout) readFloat(f [][]float32, src []byte, n int) {
	for i := 0; i < n; i++ {
		for _, ch := range f {
			ch[i] = math.Float32frombits(l.get(src))
			src = src[l.width:]
		}
	}
}

func grow(b []byte, n int) []byte {
	return slices.Grow(b, n)[:len(b)+n]
}
