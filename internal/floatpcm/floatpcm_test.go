package floatpcm

import (
	"errors"
	"math"
	"math/rand"
	"slices"
	"testing"

	"github.com/klauspost/compress/zstd"
)

func TestSplitJoinExact(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	f := []float32{
		0, float32(math.Copysign(0, -1)), 1, -1, 0.5, -0.999999, 1e-30, -1e-30,
		123.25, float32(math.Inf(1)), float32(math.Inf(-1)), float32(math.NaN()),
		math.MaxFloat32, math.SmallestNonzeroFloat32,
	}
	for i := 0; i < 1000; i++ {
		f = append(f, math.Float32frombits(rng.Uint32()))
		f = append(f, float32(rng.NormFloat64()*0.3))
	}
	xi := make([]int32, len(f))
	diff := make([]uint32, len(f))
	Split(f, xi, diff)
	for _, v := range xi {
		if v < minInt || v > maxInt {
			t.Fatalf("integer part %d outside 24 bits", v)
		}
	}
	got := make([]float32, len(f))
	Join(xi, diff, got)
	for i := range f {
		if math.Float32bits(got[i]) != math.Float32bits(f[i]) {
			t.Fatalf("sample %d: got %#x, want %#x", i, math.Float32bits(got[i]), math.Float32bits(f[i]))
		}
	}
}

func TestIntegerSamplesNeedNoPayload(t *testing.T) {
	f := make([]float32, 4096)
	for i := range f {
		f[i] = FromInt(int32(i*97%(1<<20)) - 1<<19)
	}
	xi := make([]int32, len(f))
	diff := make([]uint32, len(f))
	Split(f, xi, diff)
	payload, err := Pack([][]uint32{diff})
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}
	if len(payload) != 0 {
		t.Fatalf("payload = %d bytes, want 0", len(payload))
	}
	diff[10] = 12345
	if err := Unpack(payload, [][]uint32{diff}); err != nil {
		t.Fatalf("Unpack: %v", err)
	}
	if diff[10] != 0 {
		t.Fatalf("empty payload did not clear differences")
	}
}

func TestPackUnpack(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	diffs := [][]uint32{make([]uint32, 1000), make([]uint32, 777), make([]uint32, 3)}
	for _, d := range diffs {
		for i := range d {
			if rng.Intn(4) == 0 {
				d[i] = rng.Uint32() & 0xFF
			}
		}
	}
	payload, err := Pack(diffs)
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}
	if len(payload) >= 4*1780 {
		t.Fatalf("payload not compressed: %d bytes", len(payload))
	}
	got := [][]uint32{make([]uint32, 1000), make([]uint32, 777), make([]uint32, 3)}
	if err := Unpack(payload, got); err != nil {
		t.Fatalf("Unpack: %v", err)
	}
	for c := range diffs {
		if !slices.Equal(got[c], diffs[c]) {
			t.Fatalf("channel %d differs", c)
		}
	}

	short := [][]uint32{make([]uint32, 1000)}
	if err := Unpack(payload, short); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("size mismatch: err = %v, want ErrCorrupt", err)
	}
	if err := Unpack([]byte{1, 2, 3, 4, 5}, short); err == nil {
		t.Fatalf("garbage payload accepted")
	}
}

func TestUnpackOversized(t *testing.T) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatal(err)
	}
	payload := enc.EncodeAll(make([]byte, 32<<20), nil)
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
	diffs := [][]uint32{make([]uint32, 10), make([]uint32, 6)}
	if err := Unpack(payload, diffs); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("Unpack of %d byte payload: err = %v, want ErrCorrupt", len(payload), err)
	}
}

func BenchmarkSplit(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	f := make([]float32, 4096)
	for i := range f {
		f[i] = float32(rng.NormFloat64() * 0.25)
	}
	xi := make([]int32, len(f))
	diff := make([]uint32, len(f))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Split(f, xi, diff)
	}
}
