package decoder_test

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"testing"

	"github.com/thesyncim/goals/internal/bitio"
	"github.com/thesyncim/goals/internal/decoder"
	"github.com/thesyncim/goals/internal/encoder"
	"github.com/thesyncim/goals/internal/testsignal"
	"github.com/thesyncim/goals/internal/types"
)

func baseConfig(channels, res int) types.StreamConfig {
	return types.StreamConfig{
		SampleRate:    48000,
		Samples:       types.UnknownSamples,
		Channels:      channels,
		Resolution:    res,
		FrameLength:   1024,
		AdaptiveOrder: true,
		MaxOrder:      20,
		CRC:           true,
	}
}

// encodeAll codes x frame by frame and returns the frame data and the
// frame boundaries.
func encodeAll(t testing.TB, cfg *types.StreamConfig, opts encoder.Options, x [][]int32) ([]byte, []int) {
	t.Helper()
	enc, err := encoder.New(cfg, opts)
	if err != nil {
		t.Fatalf("encoder.New: %v", err)
	}
	var data []byte
	var ends []int
	total := len(x[0])
	for off := 0; off < total; off += cfg.FrameLength {
		n := min(cfg.FrameLength, total-off)
		frame := make([][]int32, len(x))
		for c := range x {
			frame[c] = x[c][off : off+n]
		}
		out, err := enc.Encode(frame)
		if err != nil {
			t.Fatalf("Encode frame at %d: %v", off, err)
		}
		data = append(data, out...)
		ends = append(ends, len(data))
	}
	return data, ends
}

// decodeAll decodes data and compares it with x.
func decodeAll(t *testing.T, cfg *types.StreamConfig, data []byte, x [][]int32) {
	t.Helper()
	dec, err := decoder.New(cfg)
	if err != nil {
		t.Fatalf("decoder.New: %v", err)
	}
	r := bitio.NewReader(data)
	off := 0
	for off < len(x[0]) {
		n, err := dec.Decode(r)
		if err != nil {
			t.Fatalf("Decode at sample %d: %v", off, err)
		}
		for c, got := range dec.Samples() {
			for i := 0; i < n; i++ {
				if got[i] != x[c][off+i] {
					t.Fatalf("channel %d sample %d: got %d, want %d", c, off+i, got[i], x[c][off+i])
				}
			}
		}
		off += n
	}
	if _, err := dec.Decode(r); !errors.Is(err, decoder.ErrEndOfStream) {
		t.Errorf("decode past end: %v, want ErrEndOfStream", err)
	}
	if rest := r.Remaining(); rest != 0 {
		t.Errorf("%d bits left after the last frame", rest)
	}
}

func signal(t testing.TB, variant string, samples, channels, res int) [][]int32 {
	t.Helper()
	x, err := testsignal.Generate(variant, 48000, samples, channels, res)
	if err != nil {
		t.Fatal(err)
	}
	return x
}

// correlated returns channels that share a common component, with a delay
// on every other channel.
func correlated(samples, channels int, seed int64) [][]int32 {
	rng := rand.New(rand.NewSource(seed))
	common := make([]int32, samples+8)
	var acc float64
	for i := range common {
		acc = 0.95*acc + rng.NormFloat64()*800
		common[i] = int32(acc)
	}
	x := make([][]int32, channels)
	for c := range x {
		x[c] = make([]int32, samples)
		delay := 0
		if c%2 == 1 {
			delay = 5
		}
		for i := range x[c] {
			x[c][i] = common[i+8-delay]*int32(c+2)/3 + int32(rng.Intn(33)-16)
		}
	}
	return x
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*types.StreamConfig)
		opts    encoder.Options
		variant string
		ch      int
		res     int
	}{
		{name: "mono16", variant: testsignal.VariantAMMultisine, ch: 1, res: 16},
		{name: "stereo joint", variant: testsignal.VariantSpeechLike, ch: 2, res: 16,
			modify: func(c *types.StreamConfig) { c.Joint = true }},
		{name: "joint levels", variant: testsignal.VariantChirpSweep, ch: 2, res: 16,
			modify: func(c *types.StreamConfig) { c.Joint = true; c.Levels = 3 }},
		{name: "five channels all levels", variant: testsignal.VariantImpulseTrain, ch: 5, res: 24,
			modify: func(c *types.StreamConfig) { c.Joint = true; c.Levels = 5; c.FrameLength = 2048 }},
		{name: "random access", variant: testsignal.VariantAMMultisine, ch: 2, res: 16,
			modify: func(c *types.StreamConfig) { c.Joint = true; c.Levels = 2; c.RADistance = 2 }},
		{name: "bgmc", variant: testsignal.VariantNoise, ch: 2, res: 16,
			modify: func(c *types.StreamConfig) { c.BGMC = true; c.Levels = 3 }},
		{name: "bgmc sbpart", variant: testsignal.VariantSpeechLike, ch: 1, res: 24,
			modify: func(c *types.StreamConfig) { c.BGMC = true; c.SBPart = true; c.RADistance = 1 }},
		{name: "sbpart rice", variant: testsignal.VariantChirpSweep, ch: 1, res: 16,
			modify: func(c *types.StreamConfig) { c.SBPart = true }},
		{name: "ltp", variant: testsignal.VariantImpulseTrain, ch: 1, res: 16,
			modify: func(c *types.StreamConfig) { c.LTP = true; c.Levels = 1 }},
		{name: "fixed order", variant: testsignal.VariantAMMultisine, ch: 1, res: 16,
			modify: func(c *types.StreamConfig) { c.AdaptiveOrder = false; c.MaxOrder = 12 }},
		{name: "high order", variant: testsignal.VariantSpeechLike, ch: 1, res: 16,
			modify: func(c *types.StreamConfig) { c.MaxOrder = 100; c.CoefTable = 2; c.RADistance = 3 }},
		{name: "eight bit", variant: testsignal.VariantDC, ch: 2, res: 8,
			modify: func(c *types.StreamConfig) { c.Joint = true }},
		{name: "thirty two bit", variant: testsignal.VariantNoise, ch: 2, res: 32,
			modify: func(c *types.StreamConfig) { c.Joint = true; c.Levels = 2 }},
		{name: "lsb padded", variant: testsignal.VariantLSBPadded, ch: 1, res: 24},
		{name: "silence", variant: testsignal.VariantSilence, ch: 3, res: 16,
			modify: func(c *types.StreamConfig) { c.Joint = true; c.MCC = true }},
		{name: "channel sort", variant: testsignal.VariantChirpSweep, ch: 3, res: 16,
			modify: func(c *types.StreamConfig) { c.Joint = true; c.ChanSort = true; c.ChanPos = []int{2, 0, 1} }},
		{name: "rls mono", variant: testsignal.VariantSpeechLike, ch: 1, res: 16,
			modify: func(c *types.StreamConfig) { c.Predictor = types.PredictorRLSLMS }},
		{name: "rls joint", variant: testsignal.VariantAMMultisine, ch: 3, res: 16,
			modify: func(c *types.StreamConfig) { c.Predictor = types.PredictorRLSLMS; c.Joint = true; c.RADistance = 2 }},
		{name: "rls ltp", variant: testsignal.VariantImpulseTrain, ch: 2, res: 24,
			modify: func(c *types.StreamConfig) { c.Predictor = types.PredictorRLSLMS; c.LTP = true },
			opts: encoder.Options{RLSMode: 2}},
		{name: "rls noise", variant: testsignal.VariantNoise, ch: 2, res: 16,
			modify: func(c *types.StreamConfig) { c.Predictor = types.PredictorRLSLMS; c.Joint = true; c.BGMC = true }},
		{name: "parallel", variant: testsignal.VariantSpeechLike, ch: 6, res: 16,
			modify: func(c *types.StreamConfig) { c.Joint = true; c.Levels = 3 },
			opts: encoder.Options{Workers: 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseConfig(tt.ch, tt.res)
			if tt.modify != nil {
				tt.modify(&cfg)
			}
			x := signal(t, tt.variant, 5*cfg.FrameLength+333, tt.ch, tt.res)
			if tt.res == 8 {
				x[1][100] = -128
				x[0][200] = 127
			}
			data, _ := encodeAll(t, &cfg, tt.opts, x)
			cfg.Samples = uint32(len(x[0]))
			decodeAll(t, &cfg, data, x)
		})
	}
}

// An adaptive order bound below one still allows order one blocks.
func TestRoundTripLowOrder(t *testing.T) {
	for _, order := range []int{0, 1} {
		for _, res := range []int{8, 16, 24, 32} {
			for _, ra := range []int{0, 2} {
				t.Run(fmt.Sprintf("order=%d/res=%d/ra=%d", order, res, ra), func(t *testing.T) {
					cfg := baseConfig(2, res)
					cfg.MaxOrder = order
					cfg.RADistance = ra
					cfg.Levels = 2
					x := signal(t, testsignal.VariantSpeechLike, 3*cfg.FrameLength+77, 2, res)
					data, _ := encodeAll(t, &cfg, encoder.Options{}, x)
					cfg.Samples = uint32(len(x[0]))
					decodeAll(t, &cfg, data, x)
				})
			}
		}
	}
}

func TestRoundTripMCC(t *testing.T) {
	for _, joint := range []bool{false, true} {
		for _, levels := range []int{0, 3} {
			t.Run(fmt.Sprintf("joint=%v/levels=%d", joint, levels), func(t *testing.T) {
				cfg := baseConfig(4, 16)
				cfg.MCC = true
				cfg.Joint = joint
				cfg.Levels = levels
				cfg.RADistance = 2
				x := correlated(4*cfg.FrameLength+100, 4, int64(levels))
				data, _ := encodeAll(t, &cfg, encoder.Options{}, x)
				cfg.Samples = uint32(len(x[0]))
				decodeAll(t, &cfg, data, x)
			})
		}
	}
}

func TestMCCCompresses(t *testing.T) {
	x := correlated(8192, 3, 7)
	plain := baseConfig(3, 16)
	withMCC := plain
	withMCC.MCC = true
	a, _ := encodeAll(t, &plain, encoder.Options{}, x)
	b, _ := encodeAll(t, &withMCC, encoder.Options{}, x)
	if len(b) >= len(a) {
		t.Errorf("MCC stream %d bytes, plain stream %d", len(b), len(a))
	}
}

func TestJointCompresses(t *testing.T) {
	x := correlated(8192, 2, 3)
	copy(x[1], x[0])
	for i := range x[1] {
		x[1][i] += int32(i % 3)
	}
	plain := baseConfig(2, 16)
	joint := plain
	joint.Joint = true
	a, _ := encodeAll(t, &plain, encoder.Options{}, x)
	b, _ := encodeAll(t, &joint, encoder.Options{}, x)
	if len(b) >= len(a) {
		t.Errorf("joint stream %d bytes, independent stream %d", len(b), len(a))
	}
}

func TestRLSFallsBackOnNoise(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	x := [][]int32{make([]int32, 3000)}
	for i := range x[0] {
		x[0][i] = int32(rng.Uint32()) >> 16
	}
	cfg := baseConfig(1, 16)
	cfg.Predictor = types.PredictorRLSLMS
	data, ends := encodeAll(t, &cfg, encoder.Options{}, x)
	prev := 0
	for i, end := range ends {
		n := min(cfg.FrameLength, len(x[0])-i*cfg.FrameLength)
		if size := end - prev; size > n*3 {
			t.Errorf("frame %d: %d bytes for %d samples", i, size, n)
		}
		prev = end
	}
	cfg.Samples = uint32(len(x[0]))
	decodeAll(t, &cfg, data, x)
}

func TestSeek(t *testing.T) {
	cfg := baseConfig(2, 16)
	cfg.Joint = true
	cfg.Levels = 3
	cfg.RADistance = 2
	x := signal(t, testsignal.VariantSpeechLike, 6*cfg.FrameLength, 2, 16)
	data, ends := encodeAll(t, &cfg, encoder.Options{}, x)
	cfg.Samples = uint32(len(x[0]))

	dec, err := decoder.New(&cfg)
	if err != nil {
		t.Fatal(err)
	}
	if err := dec.Seek(3); !errors.Is(err, decoder.ErrNotRandomAccess) {
		t.Errorf("Seek(3) error = %v, want ErrNotRandomAccess", err)
	}
	if err := dec.Seek(4); err != nil {
		t.Fatalf("Seek(4): %v", err)
	}
	r := bitio.NewReader(data[ends[3]:])
	n, err := dec.Decode(r)
	if err != nil {
		t.Fatalf("Decode after seek: %v", err)
	}
	for c, got := range dec.Samples() {
		for i := 0; i < n; i++ {
			if got[i] != x[c][4*cfg.FrameLength+i] {
				t.Fatalf("channel %d sample %d differs after seek", c, i)
			}
		}
	}
}

func TestFloatRoundTrip(t *testing.T) {
	f, err := testsignal.GenerateFloat(testsignal.VariantAMMultisine, 48000, 2500, 2)
	if err != nil {
		t.Fatal(err)
	}
	rng := rand.New(rand.NewSource(5))
	for i := 0; i < 200; i++ {
		f[1][rng.Intn(2500)] = math.Float32frombits(rng.Uint32() &^ 0x7F800000 | 0x3F000000)
	}
	f[0][10] = 3.5
	f[0][11] = float32(math.Inf(-1))
	f[0][12] = -1e-30

	cfg := baseConfig(2, 32)
	cfg.SampleType = types.SampleFloat
	cfg.Joint = true
	enc, err := encoder.New(&cfg, encoder.Options{})
	if err != nil {
		t.Fatal(err)
	}
	var data []byte
	for off := 0; off < 2500; off += cfg.FrameLength {
		n := min(cfg.FrameLength, 2500-off)
		out, err := enc.EncodeFloat([][]float32{f[0][off : off+n], f[1][off : off+n]})
		if err != nil {
			t.Fatalf("EncodeFloat: %v", err)
		}
		data = append(data, out...)
	}
	if _, err := enc.Encode([][]int32{{1}, {1}}); !errors.Is(err, encoder.ErrInvalidFrame) {
		t.Errorf("Encode after the short frame: %v, want ErrInvalidFrame", err)
	}

	cfg.Samples = 2500
	dec, err := decoder.New(&cfg)
	if err != nil {
		t.Fatal(err)
	}
	r := bitio.NewReader(data)
	for off := 0; off < 2500; {
		n, err := dec.Decode(r)
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		for c, got := range dec.Floats() {
			for i := 0; i < n; i++ {
				if math.Float32bits(got[i]) != math.Float32bits(f[c][off+i]) {
					t.Fatalf("channel %d sample %d: got %v, want %v", c, off+i, got[i], f[c][off+i])
				}
			}
		}
		off += n
	}
}

func TestDecodeCorrupt(t *testing.T) {
	cfg := baseConfig(2, 16)
	cfg.Joint = true
	cfg.Levels = 3
	x := signal(t, testsignal.VariantChirpSweep, 2048, 2, 16)
	data, ends := encodeAll(t, &cfg, encoder.Options{}, x)
	cfg.Samples = 2048

	for _, cut := range []int{ends[0] / 2, ends[0] - 1} {
		dec, err := decoder.New(&cfg)
		if err != nil {
			t.Fatal(err)
		}
		_, err = dec.Decode(bitio.NewReader(data[:cut]))
		if !errors.Is(err, decoder.ErrInvalidFrame) || !errors.Is(err, bitio.ErrShortRead) {
			t.Errorf("frame cut at %d of %d bytes: error = %v, want ErrInvalidFrame with ErrShortRead", cut, ends[0], err)
		}
	}
}

// A short stream with a long declared frame allocates for its samples only.
func TestNewShortStream(t *testing.T) {
	cfg := baseConfig(4096, 16)
	cfg.FrameLength = 1 << 16
	cfg.Joint = true
	cfg.Samples = 3

	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	if _, err := decoder.New(&cfg); err != nil {
		t.Fatal(err)
	}
	runtime.ReadMemStats(&after)
	if got := after.TotalAlloc - before.TotalAlloc; got > 64<<20 {
		t.Errorf("New allocated %d bytes for a 3 sample stream", got)
	}

	small := baseConfig(2, 16)
	small.FrameLength = cfg.FrameLength
	small.Joint = true
	x := [][]int32{{5, -1, 7}, {4, 0, 9}}
	data, _ := encodeAll(t, &small, encoder.Options{}, x)
	small.Samples = 3
	decodeAll(t, &small, data, x)
}

func FuzzDecode(f *testing.F) {
	cfg := baseConfig(2, 16)
	cfg.Joint = true
	cfg.Levels = 3
	cfg.LTP = true
	cfg.MCC = true
	x := signal(f, testsignal.VariantSpeechLike, 1500, 2, 16)
	data, _ := encodeAll(f, &cfg, encoder.Options{}, x)
	cfg.Samples = 1500
	f.Add(data)
	f.Add([]byte{0xFF, 0x00, 0x80})
	f.Fuzz(func(t *testing.T, data []byte) {
		c := cfg
		dec, err := decoder.New(&c)
		if err != nil {
			t.Fatal(err)
		}
		r := bitio.NewReader(data)
		for {
			if _, err := dec.Decode(r); err != nil {
				return
			}
		}
	})
}

func BenchmarkDecode(b *testing.B) {
	cfg := baseConfig(2, 16)
	cfg.Joint = true
	cfg.Levels = 3
	x := signal(b, testsignal.VariantSpeechLike, 48000, 2, 16)
	data, _ := encodeAll(b, &cfg, encoder.Options{}, x)
	cfg.Samples = 48000
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		dec, _ := decoder.New(&cfg)
		r := bitio.NewReader(data)
		for {
			if _, err := dec.Decode(r); err != nil {
				break
			}
		}
	}
}
