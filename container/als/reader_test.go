package als

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/thesyncim/goals/internal/types"
)

// onlyReader hides io.Seeker.
type onlyReader struct{ io.Reader }

func TestReader_SeekUnit(t *testing.T) {
	for _, info := range []types.RAInfo{types.RAInfoFrames, types.RAInfoHeader} {
		data, _ := writeStream(t, streamConfig(2, info), 5)
		r, err := NewReader(bytes.NewReader(data))
		if err != nil {
			t.Fatalf("NewReader failed: %v", err)
		}

		if err := r.SeekUnit(2); err != nil {
			t.Fatalf("RA info %d: forward seek failed: %v", info, err)
		}
		got, err := r.NextUnit()
		if err != nil || !bytes.Equal(got, unitBytes(4, 5)) {
			t.Errorf("RA info %d: unit 2 after seek = %v, %v", info, got, err)
		}

		if err := r.SeekUnit(1); err != nil {
			t.Fatalf("RA info %d: backward seek failed: %v", info, err)
		}
		if r.Unit() != 1 {
			t.Errorf("Unit = %d, want 1", r.Unit())
		}
		got, err = r.NextUnit()
		if err != nil || !bytes.Equal(got, unitBytes(2, 4)) {
			t.Errorf("RA info %d: unit 1 after seek = %v, %v", info, got, err)
		}

		if err := r.SeekUnit(4); !errors.Is(err, ErrUnitRange) {
			t.Errorf("RA info %d: seek past end error = %v, want ErrUnitRange", info, err)
		}
		if err := r.SeekUnit(-1); !errors.Is(err, ErrUnitRange) {
			t.Errorf("RA info %d: negative seek error = %v, want ErrUnitRange", info, err)
		}
	}
}

func TestReader_SeekWithoutSeeker(t *testing.T) {
	data, _ := writeStream(t, streamConfig(1, types.RAInfoFrames), 5)
	r, err := NewReader(onlyReader{bytes.NewReader(data)})
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	if err := r.SeekUnit(3); err != nil {
		t.Fatalf("forward seek failed: %v", err)
	}
	got, err := r.NextUnit()
	if err != nil || !bytes.Equal(got, unitBytes(3, 4)) {
		t.Errorf("unit 3 = %v, %v", got, err)
	}
	if err := r.SeekUnit(0); !errors.Is(err, ErrNotSeekable) {
		t.Errorf("backward seek error = %v, want ErrNotSeekable", err)
	}
}

func TestReader_UnsizedStream(t *testing.T) {
	data, _ := writeStream(t, streamConfig(0, types.RAInfoNone), 3)
	r, err := NewReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	if err := r.SeekUnit(1); !errors.Is(err, ErrNotSeekable) {
		t.Errorf("seek error = %v, want ErrNotSeekable", err)
	}
	first, err := r.NextUnit()
	if err != nil {
		t.Fatal(err)
	}
	if err := r.SeekUnit(0); err != nil {
		t.Fatalf("rewind failed: %v", err)
	}
	again, err := r.NextUnit()
	if err != nil || !bytes.Equal(first, again) {
		t.Errorf("rewound unit differs: %v", err)
	}
}

func TestReader_Truncated(t *testing.T) {
	data, _ := writeStream(t, streamConfig(2, types.RAInfoFrames), 5)
	r, err := NewReader(bytes.NewReader(data[:len(data)-3]))
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	for {
		_, err = r.NextUnit()
		if err != nil {
			break
		}
	}
	if !errors.Is(err, ErrUnexpectedEOS) {
		t.Errorf("error = %v, want ErrUnexpectedEOS", err)
	}
}
