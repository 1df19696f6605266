package als

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/thesyncim/goals/internal/bitio"
	"github.com/thesyncim/goals/internal/types"
)

const (
	// Identifier is the first word of an ALSSpecificConfig, "ALS\0".
	Identifier = 0x414C5300

	// rawFixed is the size of a raw header up to the optional fields.
	rawFixed = 18

	// MaxChannels is the largest channel count the header can carry.
	MaxChannels = 1 << 16

	// MaxFrameLength is the largest frame length the header can carry.
	MaxFrameLength = 1 << 16

	// MaxOrder is the largest predictor order the header can carry.
	MaxOrder = 1023

	// MaxBlobSize is the largest header, trailer or AUX size.
	MaxBlobSize = 0xFFFF
)

// Form selects the syntax of a serialized header.
type Form uint8

const (
	// Raw is the header of a raw ALS stream. It starts with the sampling
	// frequency and carries 16-bit header, trailer and AUX sizes.
	Raw Form = iota

	// Specific is the ALSSpecificConfig of an MP4 sample entry. It starts
	// with Identifier and carries 32-bit sizes.
	Specific
)

// Header is the ALS header of a stream.
type Header struct {
	Config types.StreamConfig

	// CRC is the CRC-32 of the PCM bytes, meaningful if Config.CRC is set.
	CRC uint32

	// RAUSizes holds the byte size of every random access unit when
	// Config.RAInfo is RAInfoHeader.
	RAUSizes []uint32
}

// Units returns the number of random access units of the stream, or -1
// when the sample count is unknown.
func Units(cfg *types.StreamConfig) int {
	frames := cfg.Frames()
	if frames < 0 {
		return -1
	}
	if cfg.RADistance == 0 {
		return min(frames, 1)
	}
	if frames == 0 {
		return 0
	}
	return (frames-1)/cfg.RADistance + 1
}

// Validate reports whether cfg can be written to a header.
func Validate(cfg *types.StreamConfig) error {
	switch {
	case cfg.Channels < 1 || cfg.Channels > MaxChannels:
		return ErrInvalidHeader
	case cfg.Resolution != 8 && cfg.Resolution != 16 && cfg.Resolution != 24 && cfg.Resolution != 32:
		return ErrInvalidHeader
	case cfg.SampleType == types.SampleFloat && cfg.Resolution != 32:
		return ErrInvalidHeader
	case cfg.FrameLength < 1 || cfg.FrameLength > MaxFrameLength:
		return ErrInvalidHeader
	case cfg.RADistance < 0 || cfg.RADistance > 255:
		return ErrInvalidHeader
	case cfg.RAInfo > types.RAInfoHeader:
		return ErrInvalidHeader
	case cfg.MaxOrder < 0 || cfg.MaxOrder > MaxOrder:
		return ErrInvalidHeader
	case cfg.CoefTable < 0 || cfg.CoefTable > 3:
		return ErrInvalidHeader
	case cfg.Levels < 0 || cfg.Levels > 5:
		return ErrInvalidHeader
	case cfg.FileType > 7:
		return ErrInvalidHeader
	case len(cfg.Header) > MaxBlobSize || len(cfg.Trailer) > MaxBlobSize || len(cfg.AUX) > MaxBlobSize:
		return ErrInvalidHeader
	}
	if cfg.ChanSort {
		if len(cfg.ChanPos) != cfg.Channels {
			return ErrInvalidHeader
		}
		seen := make([]bool, cfg.Channels)
		for _, p := range cfg.ChanPos {
			if p < 0 || p >= cfg.Channels || seen[p] {
				return ErrInvalidHeader
			}
			seen[p] = true
		}
	}
	if cfg.RAInfo == types.RAInfoHeader && cfg.RADistance > 0 && Units(cfg) < 0 {
		return ErrUnsupported
	}
	return nil
}

// Encode serializes the header of a raw stream.
func (h *Header) Encode() ([]byte, error) {
	return h.EncodeForm(Raw)
}

// EncodeForm serializes the header in form f.
func (h *Header) EncodeForm(f Form) ([]byte, error) {
	cfg := &h.Config
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	tableSize := 0
	if cfg.RAInfo == types.RAInfoHeader && cfg.RADistance > 0 {
		tableSize = Units(cfg)
		if len(h.RAUSizes) != tableSize {
			return nil, ErrInvalidHeader
		}
	}

	data := make([]byte, 0, rawFixed+72+len(cfg.Header)+len(cfg.Trailer)+4*tableSize+len(cfg.AUX))
	size := func(n int) {
		if f == Specific {
			data = binary.BigEndian.AppendUint32(data, uint32(n))
		} else {
			data = binary.BigEndian.AppendUint16(data, uint16(n))
		}
	}

	if f == Specific {
		data = binary.BigEndian.AppendUint32(data, Identifier)
	}
	data = binary.BigEndian.AppendUint32(data, cfg.SampleRate)
	data = binary.BigEndian.AppendUint32(data, cfg.Samples)
	data = binary.BigEndian.AppendUint16(data, uint16(cfg.Channels-1))
	format := byte(cfg.FileType)<<5 | byte(cfg.Resolution/8-1)<<2 |
		flag(cfg.SampleType == types.SampleFloat, 0x02) | flag(cfg.MSBFirst, 0x01)
	data = append(data, format)
	data = binary.BigEndian.AppendUint16(data, uint16(cfg.FrameLength-1))
	data = append(data,
		byte(cfg.RADistance),
		byte(cfg.RAInfo)<<6|flag(cfg.AdaptiveOrder, 0x20)|byte(cfg.CoefTable)<<3|
			flag(cfg.LTP, 0x04)|byte(cfg.MaxOrder>>8)&0x03,
		byte(cfg.MaxOrder),
		cfg.SwitchHeader()<<6|
			flag(cfg.BGMC, 0x20)|flag(cfg.SBPart, 0x10)|flag(cfg.Joint, 0x08)|
			flag(cfg.MCC, 0x04)|flag(cfg.ChanConfig, 0x02)|flag(cfg.ChanSort, 0x01),
		flag(cfg.CRC, 0x80)|flag(cfg.Predictor == types.PredictorRLSLMS, 0x40)|flag(cfg.HasAUX, 0x01),
	)

	if cfg.ChanConfig {
		data = binary.BigEndian.AppendUint16(data, cfg.ChanConfigWord)
	}
	if cfg.ChanSort {
		var w bitio.Writer
		bits := cfg.ChannelBits()
		for _, p := range cfg.ChanPos {
			w.WriteBits(uint32(p), bits)
		}
		data = append(data, w.Bytes()...)
	}
	size(len(cfg.Header))
	size(len(cfg.Trailer))
	data = append(data, cfg.Header...)
	data = append(data, cfg.Trailer...)
	if cfg.CRC {
		data = binary.BigEndian.AppendUint32(data, h.CRC)
	}
	for _, s := range h.RAUSizes[:tableSize] {
		data = binary.BigEndian.AppendUint32(data, s)
	}
	if cfg.HasAUX {
		size(len(cfg.AUX))
		data = append(data, cfg.AUX...)
	}
	return data, nil
}

func flag(v bool, bit byte) byte {
	if v {
		return bit
	}
	return 0
}

// headerReader reads header fields and keeps the raw bytes.
type headerReader struct {
	r   io.Reader
	raw []byte
	err error
}

func (hr *headerReader) next(n int) []byte {
	if hr.err != nil {
		return nil
	}
	start := len(hr.raw)
	hr.raw = append(hr.raw, make([]byte, n)...)
	if _, err := io.ReadFull(hr.r, hr.raw[start:]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			err = ErrUnexpectedEOS
		}
		hr.err = err
		return nil
	}
	return hr.raw[start:]
}

func (hr *headerReader) u16() uint16 {
	if p := hr.next(2); p != nil {
		return binary.BigEndian.Uint16(p)
	}
	return 0
}

func (hr *headerReader) u32() uint32 {
	if p := hr.next(4); p != nil {
		return binary.BigEndian.Uint32(p)
	}
	return 0
}

// size reads a header, trailer or AUX size in form f.
func (hr *headerReader) size(f Form) int {
	if f == Raw {
		return int(hr.u16())
	}
	n := hr.u32()
	if n == 0xFFFFFFFF {
		return 0
	}
	if hr.err == nil && n > MaxBlobSize {
		hr.err = ErrInvalidHeader
		return 0
	}
	return int(n)
}

func (hr *headerReader) blob(n int) []byte {
	return bytes.Clone(hr.next(n))
}

// ReadHeader reads the header of a raw stream from r. It returns the
// header and its raw bytes.
func ReadHeader(r io.Reader) (*Header, []byte, error) {
	return ReadHeaderForm(r, Raw)
}

// ReadHeaderForm reads a header in form f from r.
func ReadHeaderForm(r io.Reader, f Form) (*Header, []byte, error) {
	hr := &headerReader{r: r}
	if f == Specific {
		if id := hr.u32(); hr.err == nil && id != Identifier {
			return nil, nil, ErrInvalidHeader
		}
	}
	p := hr.next(rawFixed)
	if hr.err != nil {
		return nil, nil, hr.err
	}

	h := &Header{}
	cfg := &h.Config
	cfg.SampleRate = binary.BigEndian.Uint32(p[0:4])
	cfg.Samples = binary.BigEndian.Uint32(p[4:8])
	cfg.Channels = int(binary.BigEndian.Uint16(p[8:10])) + 1
	cfg.FileType = types.FileType(p[10] >> 5)
	cfg.Resolution = int(p[10]>>2&0x07+1) * 8
	if p[10]&0x02 != 0 {
		cfg.SampleType = types.SampleFloat
	}
	cfg.MSBFirst = p[10]&0x01 != 0
	cfg.FrameLength = int(binary.BigEndian.Uint16(p[11:13])) + 1
	cfg.RADistance = int(p[13])
	cfg.RAInfo = types.RAInfo(p[14] >> 6)
	cfg.AdaptiveOrder = p[14]&0x20 != 0
	cfg.CoefTable = int(p[14] >> 3 & 0x03)
	cfg.LTP = p[14]&0x04 != 0
	cfg.MaxOrder = int(p[14]&0x03)<<8 | int(p[15])
	cfg.Levels = types.LevelsFromHeader(p[16] >> 6)
	cfg.BGMC = p[16]&0x20 != 0
	cfg.SBPart = p[16]&0x10 != 0
	cfg.Joint = p[16]&0x08 != 0
	cfg.MCC = p[16]&0x04 != 0
	cfg.ChanConfig = p[16]&0x02 != 0
	cfg.ChanSort = p[16]&0x01 != 0
	cfg.CRC = p[17]&0x80 != 0
	if p[17]&0x40 != 0 {
		cfg.Predictor = types.PredictorRLSLMS
	}
	cfg.HasAUX = p[17]&0x01 != 0

	if cfg.Resolution > 32 || cfg.RAInfo > types.RAInfoHeader {
		return nil, nil, ErrInvalidHeader
	}

	if cfg.ChanConfig {
		cfg.ChanConfigWord = hr.u16()
	}
	if cfg.ChanSort {
		bits := cfg.ChannelBits()
		q := hr.next(int((uint(cfg.Channels)*bits + 7) / 8))
		if q != nil {
			br := bitio.NewReader(q)
			cfg.ChanPos = make([]int, cfg.Channels)
			for i := range cfg.ChanPos {
				cfg.ChanPos[i] = int(br.ReadBits(bits))
			}
		}
	}
	hsize := hr.size(f)
	tsize := hr.size(f)
	cfg.Header = hr.blob(hsize)
	cfg.Trailer = hr.blob(tsize)
	if cfg.CRC {
		h.CRC = hr.u32()
	}
	if hr.err != nil {
		return nil, nil, hr.err
	}
	if cfg.RAInfo == types.RAInfoHeader && cfg.RADistance > 0 {
		units := Units(cfg)
		if units < 0 {
			return nil, nil, ErrUnsupported
		}
		h.RAUSizes = make([]uint32, 0, min(units, 1024))
		for range units {
			size := hr.u32()
			if hr.err != nil {
				return nil, nil, hr.err
			}
			h.RAUSizes = append(h.RAUSizes, size)
		}
	}
	if cfg.HasAUX {
		cfg.AUX = hr.blob(hr.size(f))
	}
	if hr.err != nil {
		return nil, nil, hr.err
	}
	if err := Validate(cfg); err != nil {
		return nil, nil, err
	}
	return h, hr.raw, nil
}

// ParseHeader parses the header of a raw stream from the start of data and
// returns it with its size in bytes.
func ParseHeader(data []byte) (*Header, int, error) {
	h, raw, err := ReadHeader(bytes.NewReader(data))
	if err != nil {
		return nil, 0, err
	}
	return h, len(raw), nil
}

// SpecificConfig returns the MP4 decoder specific info of the stream: an
// AudioSpecificConfig with audio object type 36 followed by the header in
// Specific form.
func SpecificConfig(h *Header) ([]byte, error) {
	data, err := h.EncodeForm(Specific)
	if err != nil {
		return nil, err
	}
	var w bitio.Writer
	w.WriteBits(31, 5) // Escape
	w.WriteBits(36-32, 6)
	w.WriteBits(0xF, 4) // Explicit frequency
	w.WriteBits(h.Config.SampleRate, 24)
	w.WriteBits(0, 4) // Channel configuration
	w.WriteBits(0, 5) // Fill bits
	return append(w.Bytes(), data...), nil
}
