// config.go defines the encoder configuration and its defaults.

package goals

import (
	"fmt"

	"github.com/thesyncim/goals/container/als"
	"github.com/thesyncim/goals/internal/lpc"
	"github.com/thesyncim/goals/internal/rlslms"
	"github.com/thesyncim/goals/internal/types"
)

// StreamConfig describes a coded stream as stored in its header.
type StreamConfig = types.StreamConfig

// RAInfo says where the sizes of random access units are stored.
type RAInfo = types.RAInfo

// FileType records the container the PCM was taken from.
type FileType = types.FileType

const (
	// RAInfoNone stores no unit sizes. Such streams cannot be seeked.
	RAInfoNone = types.RAInfoNone
	// RAInfoFrames writes a 32-bit size in front of every unit.
	RAInfoFrames = types.RAInfoFrames
	// RAInfoHeader stores all unit sizes in a table in the header.
	RAInfoHeader = types.RAInfoHeader
)

const (
	FileRaw  = types.FileRaw
	FileWave = types.FileWave
	FileAIFF = types.FileAIFF
	FileBWF  = types.FileBWF
)

// Window selects the analysis window of the linear predictor.
type Window int

const (
	// WindowAuto uses a Hann window, or none for very short blocks.
	WindowAuto Window = iota
	// WindowHann always applies a Hann window.
	WindowHann
	// WindowRect analyzes the samples unweighted.
	WindowRect
	// WindowBlackman applies a Blackman window.
	WindowBlackman
)

// Limits applied when EncoderConfig.Strict is set. They are the widths of
// the sample rate and buffer size fields of an MP4 sample entry.
const (
	StrictMaxSampleRate = 1<<16 - 1
	StrictMaxUnitSize   = 1<<24 - 1
)

// RLSModes is the number of RLS-LMS parameter presets.
const RLSModes = rlslms.Modes

// EncoderConfig holds the parameters of an encoded stream and of the
// encoder's search.
type EncoderConfig struct {
	SampleRate int  // Hz
	Channels   int  // 1 to 65536
	Resolution int  // 8, 16, 24 or 32 bits
	Float      bool // Samples are IEEE float32, Resolution must be 32
	MSBFirst   bool // Byte order of the original PCM, used for the checksum
	FileType   FileType

	// FrameLength is the number of samples per channel and frame. Zero
	// picks a length from the sample rate and the block switching depth.
	FrameLength int

	// BlockSwitching is the depth of the block partition search, 0 to 5.
	// A frame is split into up to 1<<BlockSwitching blocks.
	BlockSwitching int

	// RADistance is the number of frames per random access unit, 0 to 255.
	// Zero disables random access.
	RADistance int
	RAInfo     RAInfo

	AdaptiveOrder bool // Choose the predictor order per block
	MaxOrder      int  // Highest predictor order, 0 to 1023
	CoefTable     int  // Rice parameter table for the coefficients, 0 to 2, or -1 for auto
	Window        Window

	LTP    bool // Long-term prediction
	BGMC   bool // Block Gilbert-Moore codes instead of Rice codes
	SBPart bool // Entropy parameters per sub-block
	Joint  bool // Difference coding of channel pairs
	MCC    bool // Multi-channel correlation, not with RLSLMS

	// RLSLMS selects the RLS-LMS cascade predictor. Block switching is
	// not available with it.
	RLSLMS  bool
	RLSMode int // Preset, 0 to RLSModes-1

	CRC bool // Store a CRC-32 of the PCM

	ChanConfig     bool
	ChanConfigWord uint16

	// ChanPos reorders the channels for coding: coded channel c carries
	// input channel ChanPos[c]. Nil keeps the input order.
	ChanPos []int

	Header  []byte // Bytes of the original file before the PCM, at most 65535
	Trailer []byte // Bytes of the original file after the PCM, at most 65535
	AUX     []byte // Auxiliary data, stored when non-nil, at most 65535 bytes

	// Parallel is the number of goroutines analyzing the channels of a
	// frame. Values below 2 analyze serially.
	Parallel int

	// Strict rejects streams an MP4 sample entry cannot describe: sample
	// rates above StrictMaxSampleRate and units larger than
	// StrictMaxUnitSize bytes.
	Strict bool
}

// DefaultEncoderConfig returns a configuration that suits most material:
// adaptive prediction up to order 10, Rice codes, joint stereo for two or
// more channels and a CRC.
func DefaultEncoderConfig(sampleRate, channels, resolution int) EncoderConfig {
	return EncoderConfig{
		SampleRate:    sampleRate,
		Channels:      channels,
		Resolution:    resolution,
		AdaptiveOrder: true,
		MaxOrder:      10,
		CoefTable:     -1,
		Joint:         channels >= 2,
		CRC:           true,
	}
}

// defaultFrameLength returns the frame length used when none is set.
func defaultFrameLength(sampleRate, levels int, rls bool) int {
	n := 2048
	switch {
	case sampleRate > 96000:
		n = 8192
	case sampleRate > 48000:
		n = 4096
	}
	if rls {
		return n
	}
	return min(n<<(levels/2), als.MaxFrameLength)
}

// defaultCoefTable returns the coefficient table for a sample rate.
func defaultCoefTable(sampleRate int) int {
	return min((sampleRate/48000)>>1&3, 2)
}

// Validate reports whether the configuration can be encoded.
func (c *EncoderConfig) Validate() error {
	_, err := c.stream()
	return err
}

// stream converts c into the description stored in the header.
func (c *EncoderConfig) stream() (StreamConfig, error) {
	if c.Channels < 1 || c.Channels > als.MaxChannels {
		return StreamConfig{}, ErrInvalidChannels
	}
	switch c.Resolution {
	case 8, 16, 24, 32:
	default:
		return StreamConfig{}, ErrInvalidResolution
	}
	if c.Float && c.Resolution != 32 {
		return StreamConfig{}, ErrInvalidResolution
	}
	if c.SampleRate < 1 || int64(c.SampleRate) > 0xFFFFFFFF {
		return StreamConfig{}, fmt.Errorf("%w: sample rate %d", ErrInvalidConfig, c.SampleRate)
	}
	if c.Strict && c.SampleRate > StrictMaxSampleRate {
		return StreamConfig{}, fmt.Errorf("%w: sample rate %d above %d", ErrInvalidConfig, c.SampleRate, StrictMaxSampleRate)
	}
	if c.MCC && c.RLSLMS {
		return StreamConfig{}, fmt.Errorf("%w: MCC with RLS-LMS", ErrInvalidConfig)
	}
	if c.RLSLMS && c.BlockSwitching != 0 {
		return StreamConfig{}, fmt.Errorf("%w: block switching with RLS-LMS", ErrInvalidConfig)
	}
	if c.RLSMode < 0 || c.RLSMode >= RLSModes {
		return StreamConfig{}, fmt.Errorf("%w: RLS-LMS mode %d", ErrInvalidConfig, c.RLSMode)
	}
	if c.Window < WindowAuto || c.Window > WindowBlackman {
		return StreamConfig{}, fmt.Errorf("%w: window %d", ErrInvalidConfig, c.Window)
	}

	s := StreamConfig{
		SampleRate:     uint32(c.SampleRate),
		Samples:        types.UnknownSamples,
		Channels:       c.Channels,
		Resolution:     c.Resolution,
		MSBFirst:       c.MSBFirst,
		FileType:       c.FileType,
		FrameLength:    c.FrameLength,
		RADistance:     c.RADistance,
		RAInfo:         c.RAInfo,
		AdaptiveOrder:  c.AdaptiveOrder,
		CoefTable:      c.CoefTable,
		LTP:            c.LTP,
		MaxOrder:       c.MaxOrder,
		Levels:         c.BlockSwitching,
		BGMC:           c.BGMC,
		SBPart:         c.SBPart,
		Joint:          c.Joint && c.Channels > 1,
		MCC:            c.MCC && c.Channels > 1,
		CRC:            c.CRC,
		ChanConfig:     c.ChanConfig,
		ChanConfigWord: c.ChanConfigWord,
		Header:         c.Header,
		Trailer:        c.Trailer,
		AUX:            c.AUX,
		HasAUX:         c.AUX != nil,
	}
	if c.Float {
		s.SampleType = types.SampleFloat
	}
	if c.RLSLMS {
		s.Predictor = types.PredictorRLSLMS
	}
	if s.FrameLength == 0 {
		s.FrameLength = defaultFrameLength(c.SampleRate, c.BlockSwitching, c.RLSLMS)
	}
	if s.CoefTable < 0 {
		s.CoefTable = defaultCoefTable(c.SampleRate)
	}
	if c.ChanPos != nil {
		s.ChanSort = true
		s.ChanPos = append([]int(nil), c.ChanPos...)
	}

	check := s
	check.Samples = 0
	if err := als.Validate(&check); err != nil {
		return StreamConfig{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return s, nil
}

// window maps w to the analysis window of the predictor.
func (w Window) window() lpc.Window {
	switch w {
	case WindowHann:
		return lpc.WindowHann
	case WindowRect:
		return lpc.WindowRect
	case WindowBlackman:
		return lpc.WindowBlackman
	}
	return lpc.WindowAuto
}
