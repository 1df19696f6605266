package encoder

import (
	"bytes"
	"errors"
	"math/rand"
	"slices"
	"sync/atomic"
	"testing"

	"github.com/thesyncim/goals/internal/bitio"
	"github.com/thesyncim/goals/internal/decoder"
	"github.com/thesyncim/goals/internal/partition"
	"github.com/thesyncim/goals/internal/testsignal"
	"github.com/thesyncim/goals/internal/types"
)

func testConfig(channels int) types.StreamConfig {
	return types.StreamConfig{
		SampleRate:    44100,
		Samples:       types.UnknownSamples,
		Channels:      channels,
		Resolution:    16,
		FrameLength:   512,
		AdaptiveOrder: true,
		MaxOrder:      16,
		Joint:         true,
		Levels:        3,
	}
}

func frames(t *testing.T, cfg *types.StreamConfig, count int) [][][]int32 {
	t.Helper()
	x, err := testsignal.Generate(testsignal.VariantSpeechLike, int(cfg.SampleRate), count*cfg.FrameLength, cfg.Channels, cfg.Resolution)
	if err != nil {
		t.Fatal(err)
	}
	out := make([][][]int32, count)
	for f := range out {
		out[f] = make([][]int32, cfg.Channels)
		for c := range x {
			out[f][c] = x[c][f*cfg.FrameLength : (f+1)*cfg.FrameLength]
		}
	}
	return out
}

func encodeFrames(t *testing.T, cfg *types.StreamConfig, opts Options, in [][][]int32) []byte {
	t.Helper()
	e, err := New(cfg, opts)
	if err != nil {
		t.Fatal(err)
	}
	var out []byte
	for i, x := range in {
		data, err := e.Encode(x)
		if err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
		out = append(out, data...)
	}
	return out
}

func TestNew_InvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*types.StreamConfig)
	}{
		{"no channels", func(c *types.StreamConfig) { c.Channels = 0 }},
		{"no frame length", func(c *types.StreamConfig) { c.FrameLength = 0 }},
		{"mcc with rls", func(c *types.StreamConfig) { c.MCC = true; c.Predictor = types.PredictorRLSLMS }},
		{"short channel positions", func(c *types.StreamConfig) { c.ChanSort = true; c.ChanPos = []int{0} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(2)
			tt.modify(&cfg)
			if _, err := New(&cfg, Options{}); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("New error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestEncode_InvalidFrame(t *testing.T) {
	cfg := testConfig(2)
	e, err := New(&cfg, Options{})
	if err != nil {
		t.Fatal(err)
	}
	bad := [][][]int32{
		nil,
		{make([]int32, 10)},
		{make([]int32, 10), make([]int32, 9)},
		{make([]int32, 513), make([]int32, 513)},
		{{}, {}},
	}
	for i, x := range bad {
		if _, err := e.Encode(x); !errors.Is(err, ErrInvalidFrame) {
			t.Errorf("case %d: error = %v, want ErrInvalidFrame", i, err)
		}
	}
	if _, err := e.EncodeFloat([][]float32{{0}, {0}}); !errors.Is(err, ErrInvalidFrame) {
		t.Errorf("EncodeFloat on an integer stream: %v", err)
	}
	if e.Frame() != 0 {
		t.Errorf("Frame() = %d after rejected frames", e.Frame())
	}

	if _, err := e.Encode([][]int32{make([]int32, 100), make([]int32, 100)}); err != nil {
		t.Fatal(err)
	}
	if _, err := e.Encode([][]int32{make([]int32, 100), make([]int32, 100)}); !errors.Is(err, ErrInvalidFrame) {
		t.Errorf("frame after a short frame: %v, want ErrInvalidFrame", err)
	}
}

func TestEncode_WorkersDeterministic(t *testing.T) {
	cfg := testConfig(6)
	cfg.RADistance = 2
	in := frames(t, &cfg, 4)
	serial := encodeFrames(t, &cfg, Options{}, in)
	parallel := encodeFrames(t, &cfg, Options{Workers: 8}, in)
	if !bytes.Equal(serial, parallel) {
		t.Error("parallel encoding differs from serial encoding")
	}
}

func TestEncode_MCCFrameFlag(t *testing.T) {
	cfg := testConfig(2)
	cfg.MCC = true
	in := frames(t, &cfg, 1)
	e, err := New(&cfg, Options{})
	if err != nil {
		t.Fatal(err)
	}
	data, err := e.Encode(in[0])
	if err != nil {
		t.Fatal(err)
	}
	if data[0] > 1 {
		t.Errorf("frame flag byte = %d, want 0 or 1", data[0])
	}
}

func TestEncode_Silence(t *testing.T) {
	cfg := testConfig(2)
	e, err := New(&cfg, Options{})
	if err != nil {
		t.Fatal(err)
	}
	data, err := e.Encode([][]int32{make([]int32, 512), make([]int32, 512)})
	if err != nil {
		t.Fatal(err)
	}
	// Flag byte and one zero block per channel.
	if len(data) != 3 {
		t.Errorf("silent frame coded in %d bytes, want 3", len(data))
	}
}

func TestRun(t *testing.T) {
	for _, workers := range []int{0, 1, 3, 16} {
		var sum atomic.Int64
		seen := make([]atomic.Bool, 10)
		run(workers, len(seen), func(i int) {
			if seen[i].Swap(true) {
				t.Errorf("workers=%d: job %d ran twice", workers, i)
			}
			sum.Add(int64(i))
		})
		if got := sum.Load(); got != 45 {
			t.Errorf("workers=%d: sum = %d, want 45", workers, got)
		}
	}
}

func BenchmarkEncode(b *testing.B) {
	cfg := testConfig(2)
	x, _ := testsignal.Generate(testsignal.VariantSpeechLike, 44100, cfg.FrameLength*20, 2, 16)
	b.SetBytes(int64(len(x[0]) * 4))
	for i := 0; i < b.N; i++ {
		e, _ := New(&cfg, Options{})
		for off := 0; off < len(x[0]); off += cfg.FrameLength {
			e.Encode([][]int32{x[0][off : off+cfg.FrameLength], x[1][off : off+cfg.FrameLength]})
		}
	}
}

// The second channel repeats the first only in the second half of the
// frame. Only a split lets the correlation remove that half.
func TestEncode_MCCPartition(t *testing.T) {
	cfg := types.StreamConfig{
		SampleRate:  48000,
		Samples:     types.UnknownSamples,
		Channels:    2,
		Resolution:  16,
		FrameLength: 2048,
		MaxOrder:    1,
		Levels:      1,
		MCC:         true,
	}
	n := cfg.FrameLength
	rng := rand.New(rand.NewSource(7))
	x := [][]int32{make([]int32, n), make([]int32, n)}
	for i := range n {
		x[0][i] = int32(rng.Intn(8001) - 4000)
		x[1][i] = int32(rng.Intn(8001) - 4000)
	}
	copy(x[1][n/2:], x[0][n/2:])

	e, err := New(&cfg, Options{})
	if err != nil {
		t.Fatal(err)
	}
	e.load(x, n)
	tree := partition.Build(cfg.FrameLength, n, cfg.Levels)
	for _, ch := range e.chans {
		ch.analyzeAll(tree, false)
	}
	tree.Optimize(func(node *partition.Node) int {
		sum := 0
		for _, ch := range e.chans {
			sum += ch.analyze(node, false)
		}
		return sum
	})
	if tree.Split {
		t.Fatal("frame split without correlation")
	}

	data, err := e.Encode(x)
	if err != nil {
		t.Fatal(err)
	}
	var r bitio.Reader
	r.Init(data)
	if flags := partition.ReadFlags(&r, cfg.FlagBytes()); flags&0x40000000 == 0 {
		t.Fatalf("flags = %#x, want the frame split", flags)
	}

	d, err := decoder.New(&cfg)
	if err != nil {
		t.Fatal(err)
	}
	r.Init(data)
	if _, err := d.Decode(&r); err != nil {
		t.Fatal(err)
	}
	for c, got := range d.Samples() {
		if !slices.Equal(got, x[c]) {
			t.Fatalf("channel %d differs after decoding", c)
		}
	}
}
