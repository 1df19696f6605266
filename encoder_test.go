package goals

import (
	"bytes"
	"errors"
	"io"
	"reflect"
	"testing"

	"github.com/thesyncim/goals/container/als"
	"github.com/thesyncim/goals/internal/testsignal"
)

func testSignal(t testing.TB, variant string, samples, channels, res int) [][]int32 {
	t.Helper()
	x, err := testsignal.Generate(variant, 44100, samples, channels, res)
	if err != nil {
		t.Fatal(err)
	}
	return x
}

// encodeStream encodes x in chunks of the given size and returns the
// stream bytes.
func encodeStream(t testing.TB, cfg EncoderConfig, x [][]int32, chunk int) []byte {
	t.Helper()
	var buf bytes.Buffer
	enc, err := NewEncoder(&buf, cfg)
	if err != nil {
		t.Fatalf("NewEncoder: %v", err)
	}
	for off := 0; off < len(x[0]); off += chunk {
		end := min(off+chunk, len(x[0]))
		part := make([][]int32, len(x))
		for c := range x {
			part[c] = x[c][off:end]
		}
		if err := enc.Write(part); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	return buf.Bytes()
}

// decodeStream decodes a whole integer stream and checks the checksum.
func decodeStream(t testing.TB, data []byte) [][]int32 {
	t.Helper()
	dec, err := NewDecoder(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}
	out := make([][]int32, dec.Channels())
	for {
		x, err := dec.ReadFrame()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("ReadFrame: %v", err)
		}
		for c := range out {
			out[c] = append(out[c], x[c]...)
		}
	}
	if err := dec.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	return out
}

func equalSamples(t testing.TB, got, want [][]int32) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d channels, want %d", len(got), len(want))
	}
	for c := range want {
		if len(got[c]) != len(want[c]) {
			t.Fatalf("channel %d: got %d samples, want %d", c, len(got[c]), len(want[c]))
		}
		for i := range want[c] {
			if got[c][i] != want[c][i] {
				t.Fatalf("channel %d sample %d: got %d, want %d", c, i, got[c][i], want[c][i])
			}
		}
	}
}

func TestDefaultEncoderConfig(t *testing.T) {
	tests := []struct {
		rate, levels int
		rls          bool
		wantN        int
		wantTable    int
	}{
		{44100, 0, false, 2048, 0},
		{48000, 2, false, 4096, 0},
		{96000, 0, false, 4096, 1},
		{192000, 5, false, 32768, 2},
		{44100, 0, true, 2048, 0},
	}
	for _, tt := range tests {
		cfg := DefaultEncoderConfig(tt.rate, 2, 16)
		cfg.BlockSwitching = tt.levels
		cfg.RLSLMS = tt.rls
		if tt.rls {
			cfg.BlockSwitching = 0
		}
		s, err := cfg.stream()
		if err != nil {
			t.Fatalf("%d Hz: %v", tt.rate, err)
		}
		if s.FrameLength != tt.wantN {
			t.Errorf("%d Hz, %d levels: frame length %d, want %d", tt.rate, tt.levels, s.FrameLength, tt.wantN)
		}
		if s.CoefTable != tt.wantTable {
			t.Errorf("%d Hz: coefficient table %d, want %d", tt.rate, s.CoefTable, tt.wantTable)
		}
		if !s.Joint || !s.CRC || !s.AdaptiveOrder || s.MaxOrder != 10 {
			t.Errorf("%d Hz: unexpected defaults %+v", tt.rate, s)
		}
	}
	mono := DefaultEncoderConfig(44100, 1, 16)
	if s, _ := mono.stream(); s.Joint {
		t.Error("joint coding enabled for a mono stream")
	}
}

func TestEncoderConfig_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*EncoderConfig)
		want   error
	}{
		{"no channels", func(c *EncoderConfig) { c.Channels = 0 }, ErrInvalidChannels},
		{"resolution", func(c *EncoderConfig) { c.Resolution = 20 }, ErrInvalidResolution},
		{"float resolution", func(c *EncoderConfig) { c.Float = true }, ErrInvalidResolution},
		{"sample rate", func(c *EncoderConfig) { c.SampleRate = 0 }, ErrInvalidConfig},
		{"strict sample rate", func(c *EncoderConfig) { c.SampleRate = 96000; c.Strict = true }, ErrInvalidConfig},
		{"mcc and rls", func(c *EncoderConfig) { c.MCC = true; c.RLSLMS = true }, ErrInvalidConfig},
		{"rls block switching", func(c *EncoderConfig) { c.RLSLMS = true; c.BlockSwitching = 2 }, ErrInvalidConfig},
		{"rls mode", func(c *EncoderConfig) { c.RLSMode = RLSModes }, ErrInvalidConfig},
		{"order", func(c *EncoderConfig) { c.MaxOrder = 1024 }, ErrInvalidConfig},
		{"levels", func(c *EncoderConfig) { c.BlockSwitching = 6 }, ErrInvalidConfig},
		{"ra distance", func(c *EncoderConfig) { c.RADistance = 256 }, ErrInvalidConfig},
		{"channel positions", func(c *EncoderConfig) { c.ChanPos = []int{0, 0} }, ErrInvalidConfig},
		{"window", func(c *EncoderConfig) { c.Window = 9 }, ErrInvalidConfig},
		{"header size", func(c *EncoderConfig) { c.Header = make([]byte, 1<<16) }, ErrInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultEncoderConfig(44100, 2, 16)
			tt.modify(&cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
			if _, err := NewEncoder(io.Discard, cfg); !errors.Is(err, tt.want) {
				t.Errorf("NewEncoder error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestEncoder_Write_Errors(t *testing.T) {
	enc, err := NewEncoder(io.Discard, DefaultEncoderConfig(44100, 2, 16))
	if err != nil {
		t.Fatal(err)
	}
	if err := enc.Write([][]int32{{1}}); !errors.Is(err, ErrInvalidChannels) {
		t.Errorf("one channel: %v, want ErrInvalidChannels", err)
	}
	if err := enc.Write([][]int32{{1, 2}, {1}}); !errors.Is(err, ErrInvalidSampleCount) {
		t.Errorf("unequal lengths: %v, want ErrInvalidSampleCount", err)
	}
	if err := enc.Write([][]int32{{1 << 15}, {0}}); !errors.Is(err, ErrInvalidResolution) {
		t.Errorf("sample out of range: %v, want ErrInvalidResolution", err)
	}
	if err := enc.WriteFloat([][]float32{{0}, {0}}); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("float samples: %v, want ErrInvalidConfig", err)
	}
	if err := enc.SetFrameLength(1000); err != nil {
		t.Errorf("SetFrameLength before Write: %v", err)
	}
	if enc.FrameLength() != 1000 {
		t.Errorf("FrameLength() = %d, want 1000", enc.FrameLength())
	}
	if err := enc.Write([][]int32{{1, 2}, {3, 4}}); err != nil {
		t.Fatal(err)
	}
	if err := enc.SetBGMC(true); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("setter after Write: %v, want ErrInvalidConfig", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
	if err := enc.Close(); !errors.Is(err, ErrClosed) {
		t.Errorf("second Close: %v, want ErrClosed", err)
	}
	if err := enc.Write([][]int32{{1}, {1}}); !errors.Is(err, ErrClosed) {
		t.Errorf("Write after Close: %v, want ErrClosed", err)
	}
}

func TestEncoder_Setters(t *testing.T) {
	enc, err := NewEncoder(io.Discard, DefaultEncoderConfig(48000, 2, 24))
	if err != nil {
		t.Fatal(err)
	}
	steps := []error{
		enc.SetBlockSwitching(3),
		enc.SetMaxOrder(32, false),
		enc.SetRandomAccess(5, RAInfoHeader),
		enc.SetBGMC(true),
		enc.SetLTP(true),
		enc.SetMCC(true),
		enc.SetParallel(2),
	}
	for i, err := range steps {
		if err != nil {
			t.Errorf("setter %d: %v", i, err)
		}
	}
	s := enc.StreamConfig()
	if s.Levels != 3 || s.MaxOrder != 32 || s.AdaptiveOrder || s.RADistance != 5 ||
		s.RAInfo != RAInfoHeader || !s.BGMC || !s.LTP || !s.MCC {
		t.Errorf("stream config after setters: %+v", s)
	}
	if err := enc.SetRLSLMS(true, 0); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("RLS-LMS with MCC: %v, want ErrInvalidConfig", err)
	}
	if err := enc.SetMCC(false); err != nil {
		t.Fatal(err)
	}
	if err := enc.SetRLSLMS(true, 1); err != nil {
		t.Fatalf("SetRLSLMS: %v", err)
	}
	if s := enc.StreamConfig(); s.Levels != 0 {
		t.Errorf("block switching %d with RLS-LMS", s.Levels)
	}
}

func TestEncoder_Records(t *testing.T) {
	cfg := DefaultEncoderConfig(44100, 2, 16)
	cfg.FrameLength = 1024
	cfg.RADistance = 3
	cfg.RAInfo = RAInfoHeader
	x := testSignal(t, testsignal.VariantChirpSweep, 10*1024+17, 2, 16)

	var buf bytes.Buffer
	enc, err := NewEncoder(&buf, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := enc.SpecificConfig(); err == nil {
		t.Error("SpecificConfig before Close succeeded")
	}
	if err := enc.Write(x); err != nil {
		t.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}

	recs := enc.Records()
	wantSamples := []int{3072, 3072, 3072, 1024 + 17}
	if len(recs) != len(wantSamples) {
		t.Fatalf("got %d records, want %d", len(recs), len(wantSamples))
	}
	h, headLen, err := als.ParseHeader(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	for i, r := range recs {
		if r.Samples != wantSamples[i] || !r.Sync {
			t.Errorf("record %d: %+v", i, r)
		}
		if int(h.RAUSizes[i]) != r.Size {
			t.Errorf("record %d: size %d, header table %d", i, r.Size, h.RAUSizes[i])
		}
	}
	last := recs[len(recs)-1]
	if got := headLen + int(last.Offset) + last.Size; got != buf.Len() {
		t.Errorf("records end at %d, stream is %d bytes", got, buf.Len())
	}

	asc, err := enc.SpecificConfig()
	if err != nil {
		t.Fatal(err)
	}
	spec, _, err := als.ReadHeaderForm(bytes.NewReader(asc[6:]), als.Specific)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(spec, h) {
		t.Error("AudioSpecificConfig does not carry the stream header")
	}
}

func TestEncoder_Strict(t *testing.T) {
	cfg := DefaultEncoderConfig(44100, 1, 16)
	cfg.Strict = true
	cfg.FrameLength = 4096
	enc, err := NewEncoder(io.Discard, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if err := enc.Write([][]int32{make([]int32, 4096)}); err != nil {
		t.Errorf("small unit rejected: %v", err)
	}
}

func BenchmarkEncoder_Write(b *testing.B) {
	x := testSignal(b, testsignal.VariantSpeechLike, 44100, 2, 16)
	cfg := DefaultEncoderConfig(44100, 2, 16)
	b.SetBytes(int64(len(x[0]) * 4))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		enc, _ := NewEncoder(io.Discard, cfg)
		enc.Write(x)
		enc.Close()
	}
}
