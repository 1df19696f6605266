// stream_test.go contains tests for the streaming io.Reader/io.Writer API.

package goals

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"testing/iotest"

	"github.com/thesyncim/goals/container/als"
	"github.com/thesyncim/goals/internal/testsignal"
)

// pcmBytes interleaves x in the layout of cfg.
func pcmBytes(t *testing.T, cfg EncoderConfig, x [][]int32) []byte {
	t.Helper()
	s, err := cfg.stream()
	if err != nil {
		t.Fatal(err)
	}
	return layoutOf(&s).appendInt(nil, x, len(x[0]))
}

func TestStream_RoundTrip(t *testing.T) {
	for _, res := range []int{8, 16, 24} {
		cfg := DefaultEncoderConfig(22050, 2, res)
		cfg.FrameLength = 1000
		cfg.MSBFirst = res == 24
		pcm := pcmBytes(t, cfg, testSignal(t, testsignal.VariantAMMultisine, 4321, 2, res))

		var out bytes.Buffer
		w, err := NewWriter(&out, cfg)
		if err != nil {
			t.Fatal(err)
		}
		// Odd write sizes split sample frames across calls.
		if _, err := io.CopyBuffer(w, struct{ io.Reader }{bytes.NewReader(pcm)}, make([]byte, 777)); err != nil {
			t.Fatalf("%d bit: copy: %v", res, err)
		}
		if err := w.Close(); err != nil {
			t.Fatalf("%d bit: Close: %v", res, err)
		}

		r, err := NewReader(&out)
		if err != nil {
			t.Fatal(err)
		}
		if r.SampleRate() != 22050 || r.Channels() != 2 {
			t.Errorf("%d bit: reader reports %d Hz, %d channels", res, r.SampleRate(), r.Channels())
		}
		got, err := io.ReadAll(iotest.OneByteReader(r))
		if err != nil {
			t.Fatalf("%d bit: read: %v", res, err)
		}
		if !bytes.Equal(got, pcm) {
			t.Errorf("%d bit: decoded PCM differs (%d bytes, want %d)", res, len(got), len(pcm))
		}
	}
}

func TestStream_Float(t *testing.T) {
	f, err := testsignal.GenerateFloat(testsignal.VariantChirpSweep, 48000, 3000, 1)
	if err != nil {
		t.Fatal(err)
	}
	cfg := DefaultEncoderConfig(48000, 1, 32)
	cfg.Float = true
	pcm := pcmLayout{width: 4, float: true}.appendFloat(nil, f, 3000)

	var out bytes.Buffer
	w, err := NewWriter(&out, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write(pcm); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	r, err := NewReader(&out)
	if err != nil {
		t.Fatal(err)
	}
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, pcm) {
		t.Error("decoded float PCM differs")
	}
}

func TestWriter_PartialFrame(t *testing.T) {
	w, err := NewWriter(io.Discard, DefaultEncoderConfig(44100, 2, 16))
	if err != nil {
		t.Fatal(err)
	}
	if n, err := w.Write([]byte{1, 2, 3}); err != nil || n != 3 {
		t.Fatalf("Write = %d, %v", n, err)
	}
	if err := w.Close(); !errors.Is(err, ErrInvalidSampleCount) {
		t.Errorf("Close with a partial sample frame: %v, want ErrInvalidSampleCount", err)
	}
}

func TestReader_CRCMismatch(t *testing.T) {
	cfg := DefaultEncoderConfig(44100, 1, 16)
	x := testSignal(t, testsignal.VariantSpeechLike, 2000, 1, 16)
	data := encodeStream(t, cfg, x, 2000)
	h, n, err := als.ParseHeader(data)
	if err != nil {
		t.Fatal(err)
	}
	h.CRC++
	head, err := h.Encode()
	if err != nil {
		t.Fatal(err)
	}
	r, err := NewReader(bytes.NewReader(append(head, data[n:]...)))
	if err != nil {
		t.Fatal(err)
	}
	got, err := io.ReadAll(r)
	if !errors.Is(err, ErrCRCMismatch) {
		t.Errorf("ReadAll error = %v, want ErrCRCMismatch", err)
	}
	if len(got) != 4000 {
		t.Errorf("read %d bytes before the error, want 4000", len(got))
	}
}
