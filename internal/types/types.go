// Package types defines the stream description and per-channel sample
// history shared by the encoder, the decoder and the container layer.
// This package exists to break import cycles between the root goals
// package and internal packages.
package types

// SampleType is the PCM sample format of a stream.
type SampleType uint8

const (
	SampleInt   SampleType = iota // Two's complement integers
	SampleFloat                   // IEEE 754 binary32
)

// FileType records the container the PCM was taken from.
type FileType uint8

const (
	FileRaw  FileType = iota // Headerless PCM
	FileWave                 // RIFF/WAVE
	FileAIFF                 // AIFF
	FileBWF                  // Broadcast WAVE
)

// RAInfo says where the sizes of random access units are stored.
type RAInfo uint8

const (
	RAInfoNone   RAInfo = iota // Not stored
	RAInfoFrames               // u32 in front of the first frame of each unit
	RAInfoHeader               // Table in the header
)

// PredictorMode selects the predictor used for every block of a stream.
type PredictorMode uint8

const (
	PredictorLPC    PredictorMode = iota // Forward-adaptive PARCOR prediction
	PredictorRLSLMS                      // Backward-adaptive RLS-LMS cascade
)

// UnknownSamples is the sample count written when the length is unknown.
const UnknownSamples = 0xFFFFFFFF

// StreamConfig describes a coded stream. It is written once to the header
// and must not change afterwards.
type StreamConfig struct {
	SampleRate  uint32
	Samples     uint32 // Per channel, UnknownSamples if not known
	Channels    int
	Resolution  int // 8, 16, 24 or 32 bits
	SampleType  SampleType
	MSBFirst    bool // Byte order of the original PCM
	FileType    FileType
	FrameLength int // Samples per channel and frame (N)

	RADistance int // Frames per random access unit, 0 disables
	RAInfo     RAInfo

	AdaptiveOrder bool
	CoefTable     int
	LTP           bool
	MaxOrder      int // P
	Levels        int // Block switching depth 0..5

	BGMC      bool
	SBPart    bool // Sub-block partition of the entropy parameters
	Joint     bool
	MCC       bool
	CRC       bool
	Predictor PredictorMode

	ChanConfig     bool
	ChanConfigWord uint16
	ChanSort       bool
	ChanPos        []int // Coded channel c carries input channel ChanPos[c]

	Header  []byte
	Trailer []byte
	AUX     []byte
	HasAUX  bool
}

// IntRes returns the width of the integer samples fed to the predictor.
func (c *StreamConfig) IntRes() int {
	if c.SampleType == SampleFloat {
		return 24
	}
	return c.Resolution
}

// Frames returns the number of frames in the stream, or -1 when the sample
// count is unknown.
func (c *StreamConfig) Frames() int {
	if c.Samples == UnknownSamples {
		return -1
	}
	if c.FrameLength <= 0 {
		return 0
	}
	return int((uint64(c.Samples) + uint64(c.FrameLength) - 1) / uint64(c.FrameLength))
}

// IsRA reports whether frame starts a random access unit.
func (c *StreamConfig) IsRA(frame int) bool {
	return c.RADistance > 0 && frame%c.RADistance == 0
}

// SwitchHeader returns the 2-bit block switching field for Levels.
func (c *StreamConfig) SwitchHeader() uint8 {
	switch {
	case c.Levels <= 0:
		return 0
	case c.Levels <= 3:
		return 1
	case c.Levels == 4:
		return 2
	}
	return 3
}

// LevelsFromHeader maps the block switching field back to a depth.
func LevelsFromHeader(v uint8) int {
	if v == 0 {
		return 0
	}
	return int(v) + 2
}

// FlagBytes returns the number of block switching bytes in front of each
// channel's data: 0, 1, 2 or 4.
func (c *StreamConfig) FlagBytes() int {
	if h := c.SwitchHeader(); h > 0 {
		return 1 << (h - 1)
	}
	return 0
}

// ChannelBits returns the width of a coded channel index:
// max(1, ceil(log2 Channels)).
func (c *StreamConfig) ChannelBits() uint {
	i := c.Channels - 1
	if i < 1 {
		i = 1
	}
	n := uint(0)
	for ; i > 0; i >>= 1 {
		n++
	}
	return n
}

// LagBits returns the width of the MCC lag field for the sample rate.
func (c *StreamConfig) LagBits() uint {
	switch {
	case c.SampleRate > 96000:
		return 7
	case c.SampleRate > 48000:
		return 6
	}
	return 5
}

// History is a sliding window over one channel: the last Len samples of
// earlier frames followed by the samples of the current frame. Predictors
// read past samples through it so history stays continuous across blocks
// and frames.
type History struct {
	buf []int32
	n   int // history length
}

// NewHistory returns a zeroed window keeping n samples of history in front
// of frames of up to frame samples.
func NewHistory(n, frame int) *History {
	return &History{buf: make([]int32, n+frame), n: n}
}

// Len returns the history length.
func (h *History) Len() int { return h.n }

// Buffer returns the history followed by the first frame samples of the
// current frame.
func (h *History) Buffer(frame int) []int32 { return h.buf[:h.n+frame] }

// Frame returns the first n samples of the current frame.
func (h *History) Frame(n int) []int32 { return h.buf[h.n : h.n+n] }

// Past returns the sample k positions before the start of the frame
// (k >= 1).
func (h *History) Past(k int) int32 { return h.buf[h.n-k] }

// Current returns sample i of the current frame.
func (h *History) Current(i int) int32 { return h.buf[h.n+i] }

// Advance moves the last Len samples of a frame of n samples in front of
// the next frame.
func (h *History) Advance(n int) {
	copy(h.buf[:h.n], h.buf[n:n+h.n])
}

// Reset clears the history.
func (h *History) Reset() {
	clear(h.buf[:h.n])
}
