package lpc

import "math"

// Window selects the analysis window applied before autocorrelation.
type Window uint8

const (
	// WindowAuto uses a Hann window, or no window for very short blocks.
	WindowAuto Window = iota
	// WindowHann is the raised cosine window.
	WindowHann
	// WindowRect leaves the samples unweighted.
	WindowRect
	// WindowBlackman trades resolution for lower side lobes.
	WindowBlackman
)

// shortBlock is the length below which WindowAuto skips windowing.
const shortBlock = 64

func (w Window) String() string {
	switch w {
	case WindowAuto:
		return "auto"
	case WindowHann:
		return "hann"
	case WindowRect:
		return "rect"
	case WindowBlackman:
		return "blackman"
	}
	return "unknown"
}

func (w Window) resolve(n int) Window {
	if w == WindowAuto {
		if n < shortBlock {
			return WindowRect
		}
		return WindowHann
	}
	return w
}

// makeWindow returns the n window weights for kind (which must be resolved).
// The end points are kept non-zero so every sample contributes.
func makeWindow(kind Window, n int) []float64 {
	w := make([]float64, n)
	den := float64(n + 1)
	for i := range w {
		t := 2 * math.Pi * float64(i+1) / den
		switch kind {
		case WindowHann:
			w[i] = 0.5 - 0.5*math.Cos(t)
		case WindowBlackman:
			w[i] = 0.42 - 0.5*math.Cos(t) + 0.08*math.Cos(2*t)
		default:
			w[i] = 1
		}
	}
	return w
}
