package als_test

import (
	"bytes"
	"fmt"
	"log"

	"github.com/thesyncim/goals/container/als"
	"github.com/thesyncim/goals/internal/types"
)

func ExampleNewWriter() {
	cfg := types.StreamConfig{
		SampleRate:  44100,
		Channels:    2,
		Resolution:  16,
		FrameLength: 2048,
		RADistance:  10,
		RAInfo:      types.RAInfoHeader,
		MaxOrder:    10,
	}

	var buf bytes.Buffer
	w, err := als.NewWriter(&buf, cfg)
	if err != nil {
		log.Fatal(err)
	}
	for i := 0; i < 25; i++ {
		if err := w.WriteFrame([]byte{0, 0, 0, 0}, 2048); err != nil {
			log.Fatal(err)
		}
	}
	if err := w.Close(0); err != nil {
		log.Fatal(err)
	}

	for _, rec := range w.Records() {
		fmt.Printf("unit: %d bytes, %d samples\n", rec.Size, rec.Samples)
	}
	// Output:
	// unit: 40 bytes, 20480 samples
	// unit: 40 bytes, 20480 samples
	// unit: 20 bytes, 10240 samples
}

func ExampleNewReader() {
	cfg := types.StreamConfig{
		SampleRate:  48000,
		Channels:    1,
		Resolution:  24,
		FrameLength: 4096,
		MaxOrder:    20,
	}
	var buf bytes.Buffer
	w, _ := als.NewWriter(&buf, cfg)
	w.WriteFrame([]byte{1, 2, 3}, 4096)
	w.WriteFrame([]byte{4, 5}, 1000)
	w.Close(0)

	r, err := als.NewReader(&buf)
	if err != nil {
		log.Fatal(err)
	}
	c := r.Config()
	fmt.Printf("%d Hz, %d bit, %d samples\n", c.SampleRate, c.Resolution, c.Samples)
	// Output: 48000 Hz, 24 bit, 5096 samples
}
