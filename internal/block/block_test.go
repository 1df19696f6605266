package block

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/thesyncim/goals/internal/bitio"
	"github.com/thesyncim/goals/internal/lpc"
	"github.com/thesyncim/goals/internal/testsignal"
	"github.com/thesyncim/goals/internal/types"
)

func streamConfig(res int) *types.StreamConfig {
	return &types.StreamConfig{
		SampleRate:    48000,
		Channels:      1,
		Resolution:    res,
		FrameLength:   4096,
		AdaptiveOrder: true,
		MaxOrder:      20,
		CRC:           true,
	}
}

// roundTrip codes buf[hist:hist+n] and checks that it decodes exactly.
func roundTrip(t *testing.T, cfg *types.StreamConfig, buf []int32, hist, n int, ra bool) *Block {
	t.Helper()
	orig := append([]int32(nil), buf...)

	enc := NewCoder(cfg, lpc.WindowAuto)
	var b Block
	enc.Analyze(&b, buf, hist, n, ra)
	for i := range buf {
		if buf[i] != orig[i] {
			t.Fatalf("Analyze modified sample %d", i)
		}
	}

	var w bitio.Writer
	enc.Write(&w, &b)
	bits := w.Len()
	if got := enc.Bits(&b); got != bits {
		t.Fatalf("Bits = %d, Write produced %d", got, bits)
	}
	data := append([]byte(nil), w.Bytes()...)

	dec := NewCoder(cfg, lpc.WindowAuto)
	var got Block
	r := bitio.NewReader(data)
	if err := dec.Read(r, &got, n, ra); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if r.Pos() != bits {
		t.Fatalf("Read consumed %d bits, block has %d", r.Pos(), bits)
	}
	if got.Kind != b.Kind || got.Order != b.Order || got.Shift != b.Shift || got.UseLTP != b.UseLTP {
		t.Fatalf("decoded kind=%v order=%d shift=%d ltp=%v, want kind=%v order=%d shift=%d ltp=%v",
			got.Kind, got.Order, got.Shift, got.UseLTP, b.Kind, b.Order, b.Shift, b.UseLTP)
	}

	out := make([]int32, len(buf))
	copy(out[:hist], orig[:hist])
	if err := dec.Reconstruct(&got, out, hist); err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}
	for i := 0; i < hist+n; i++ {
		if out[i] != orig[i] {
			t.Fatalf("sample %d = %d, want %d", i-hist, out[i], orig[i])
		}
	}
	return &b
}

func signal(t *testing.T, variant string, n, res int) []int32 {
	t.Helper()
	pcm, err := testsignal.Generate(variant, 48000, n, 1, res)
	if err != nil {
		t.Fatal(err)
	}
	return pcm[0]
}

func TestRoundTripConfigs(t *testing.T) {
	type variant struct {
		name  string
		apply func(*types.StreamConfig)
	}
	variants := []variant{
		{"rice", func(*types.StreamConfig) {}},
		{"rice-sbpart", func(c *types.StreamConfig) { c.SBPart = true }},
		{"bgmc", func(c *types.StreamConfig) { c.BGMC = true }},
		{"bgmc-sbpart", func(c *types.StreamConfig) { c.BGMC, c.SBPart = true, true }},
		{"fixed-order", func(c *types.StreamConfig) { c.AdaptiveOrder = false }},
		{"coef-table-1", func(c *types.StreamConfig) { c.CoefTable = 1 }},
		{"coef-table-raw", func(c *types.StreamConfig) { c.CoefTable = lpc.RawCoefTable }},
		{"ltp", func(c *types.StreamConfig) { c.LTP = true }},
		{"high-order", func(c *types.StreamConfig) { c.MaxOrder = 100 }},
	}
	for _, v := range variants {
		for _, res := range []int{8, 16, 24, 32} {
			for _, ra := range []bool{false, true} {
				for _, n := range []int{4096, 1024, 256, 37} {
					name := fmt.Sprintf("%s/res%d/ra=%v/n=%d", v.name, res, ra, n)
					t.Run(name, func(t *testing.T) {
						cfg := streamConfig(res)
						v.apply(cfg)
						x := signal(t, testsignal.VariantSpeechLike, cfg.MaxOrder+n, res)
						roundTrip(t, cfg, x, cfg.MaxOrder, n, ra)
					})
				}
			}
		}
	}
}

func TestRoundTripSignals(t *testing.T) {
	for _, variant := range testsignal.Variants() {
		t.Run(variant, func(t *testing.T) {
			cfg := streamConfig(16)
			cfg.BGMC = true
			cfg.SBPart = true
			x := signal(t, variant, cfg.MaxOrder+2048, 16)
			roundTrip(t, cfg, x, cfg.MaxOrder, 2048, false)
		})
	}
}

func TestRoundTripRandomExtremes(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, bgmc := range []bool{false, true} {
		cfg := streamConfig(32)
		cfg.BGMC = bgmc
		cfg.SBPart = true
		x := make([]int32, cfg.MaxOrder+1024)
		for i := range x {
			x[i] = int32(rng.Uint32())
		}
		roundTrip(t, cfg, x, cfg.MaxOrder, 1024, false)
		roundTrip(t, cfg, x, cfg.MaxOrder, 1024, true)
	}
}

func TestClassify(t *testing.T) {
	cfg := streamConfig(16)
	hist := cfg.MaxOrder

	zero := make([]int32, hist+512)
	if b := roundTrip(t, cfg, zero, hist, 512, false); b.Kind != Zero {
		t.Errorf("silent block coded as %v", b.Kind)
	}

	dc := make([]int32, hist+512)
	for i := range dc {
		dc[i] = 1000
	}
	b := roundTrip(t, cfg, dc, hist, 512, false)
	if b.Kind != Constant || b.Const != 1000 {
		t.Errorf("DC block coded as %v value %d", b.Kind, b.Const)
	}
	var w bitio.Writer
	NewCoder(cfg, lpc.WindowAuto).Write(&w, b)
	if got := w.Bytes(); len(got) != 3 || got[0] != 0x40 || got[1] != 0x03 || got[2] != 0xE8 {
		t.Errorf("constant block bytes = %x", got)
	}
}

func TestConstantEightBit(t *testing.T) {
	cfg := streamConfig(8)
	x := make([]int32, cfg.MaxOrder+64)
	for i := range x {
		x[i] = -100
	}
	b := roundTrip(t, cfg, x, cfg.MaxOrder, 64, false)
	var w bitio.Writer
	NewCoder(cfg, lpc.WindowAuto).Write(&w, b)
	if got := w.Bytes(); len(got) != 2 || got[1] != 28 {
		t.Errorf("8-bit constant bytes = %x, want 40 1c", got)
	}
}

func TestShiftDetection(t *testing.T) {
	cfg := streamConfig(24)
	x := signal(t, testsignal.VariantLSBPadded, cfg.MaxOrder+2048, 24)
	b := roundTrip(t, cfg, x, cfg.MaxOrder, 2048, false)
	if b.Shift < 4 {
		t.Errorf("shift = %d, want at least 4", b.Shift)
	}
	if got := lsbShift([]int32{8, 16, -24}); got != 3 {
		t.Errorf("lsbShift = %d, want 3", got)
	}
	if got := lsbShift([]int32{1 << 30}); got != maxShift {
		t.Errorf("lsbShift = %d, want %d", got, maxShift)
	}
}

func TestPeekJoint(t *testing.T) {
	cfg := streamConfig(16)
	c := NewCoder(cfg, lpc.WindowAuto)
	x := signal(t, testsignal.VariantAMMultisine, cfg.MaxOrder+1024, 16)
	dc := make([]int32, cfg.MaxOrder+1024)
	for i := range dc {
		dc[i] = 7
	}
	for _, src := range [][]int32{x, dc, make([]int32, len(dc))} {
		for _, joint := range []bool{false, true} {
			var b Block
			c.Analyze(&b, src, cfg.MaxOrder, 1024, false)
			b.Joint = joint
			var w bitio.Writer
			c.Write(&w, &b)
			if got := PeekJoint(bitio.NewReader(w.Bytes())); got != joint {
				t.Errorf("%v block: PeekJoint = %v, want %v", b.Kind, got, joint)
			}
		}
	}
}

func TestPredictionCompresses(t *testing.T) {
	cfg := streamConfig(16)
	x := signal(t, testsignal.VariantAMMultisine, cfg.MaxOrder+4096, 16)
	b := roundTrip(t, cfg, x, cfg.MaxOrder, 4096, false)
	bits := NewCoder(cfg, lpc.WindowAuto).Bits(b)
	if bits > 4096*8 {
		t.Errorf("block uses %d bits for 4096 16-bit samples", bits)
	}
	if b.Order < 2 {
		t.Errorf("order = %d on a tonal signal", b.Order)
	}
}

func TestLTPChosenForPeriodicResidual(t *testing.T) {
	cfg := streamConfig(16)
	cfg.LTP = true
	rng := rand.New(rand.NewSource(2))
	n := 4096
	x := make([]int32, cfg.MaxOrder+n)
	for i := range x {
		x[i] = int32(rng.Intn(41) - 20)
		if i%150 == 0 {
			x[i] += 8000
		}
	}
	b := roundTrip(t, cfg, x, cfg.MaxOrder, n, false)
	if !b.UseLTP {
		t.Error("long-term prediction not used on a pulse train")
	}
}

func TestReadRejectsBadParameter(t *testing.T) {
	cfg := streamConfig(16)
	cfg.SBPart = true
	var w bitio.Writer
	w.WriteBits(2, 2)  // normal block
	w.WriteBit(1)      // four sub-blocks
	w.WriteBits(0, 4)  // s0
	w.WriteRice(-1, 0) // s1 = -1
	w.WriteBits(0, 32)
	var b Block
	err := NewCoder(cfg, lpc.WindowAuto).Read(bitio.NewReader(w.Bytes()), &b, 1024, false)
	if err != ErrInvalidBlock {
		t.Fatalf("err = %v, want ErrInvalidBlock", err)
	}
	if err := NewCoder(cfg, lpc.WindowAuto).Read(bitio.NewReader(w.Bytes()), &b, 1022, false); err != ErrInvalidBlock {
		t.Fatalf("block length not divisible by sub-blocks: err = %v", err)
	}
}

func BenchmarkAnalyzeWrite(b *testing.B) {
	cfg := streamConfig(16)
	pcm, _ := testsignal.Generate(testsignal.VariantSpeechLike, 48000, cfg.MaxOrder+4096, 1, 16)
	c := NewCoder(cfg, lpc.WindowAuto)
	var blk Block
	var w bitio.Writer
	b.SetBytes(4096 * 2)
	for i := 0; i < b.N; i++ {
		c.Analyze(&blk, pcm[0], cfg.MaxOrder, 4096, false)
		w.Reset()
		c.Write(&w, &blk)
	}
}
