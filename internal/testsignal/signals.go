// Package testsignal generates deterministic multichannel PCM used by the
// codec tests and benchmarks.
package testsignal

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
)

const (
	VariantAMMultisine  = "am_multisine"
	VariantChirpSweep   = "chirp_sweep"
	VariantImpulseTrain = "impulse_train"
	VariantSpeechLike   = "speech_like"
	VariantNoise        = "noise"
	VariantSilence      = "silence"
	VariantDC           = "dc"
	VariantLSBPadded    = "lsb_padded"
)

var variants = []string{
	VariantAMMultisine,
	VariantChirpSweep,
	VariantImpulseTrain,
	VariantSpeechLike,
	VariantNoise,
	VariantSilence,
	VariantDC,
	VariantLSBPadded,
}

// Variants returns the names accepted by Generate.
func Variants() []string {
	out := make([]string, len(variants))
	copy(out, variants)
	return out
}

// Generate returns channels slices of samples integer PCM values at the
// given resolution (8..32 bits).
func Generate(variant string, sampleRate, samples, channels, resolution int) ([][]int32, error) {
	f, err := GenerateFloat(variant, sampleRate, samples, channels)
	if err != nil {
		return nil, err
	}
	if resolution < 8 || resolution > 32 {
		return nil, fmt.Errorf("invalid resolution: %d", resolution)
	}
	scale := math.Ldexp(1, resolution-1) - 1
	out := make([][]int32, channels)
	for ch := range out {
		out[ch] = make([]int32, samples)
		for i, v := range f[ch] {
			out[ch][i] = int32(math.Round(float64(v) * scale))
		}
	}
	if variant == VariantLSBPadded && resolution > 12 {
		for ch := range out {
			for i := range out[ch] {
				out[ch][i] &^= 0xF
			}
		}
	}
	return out, nil
}

// GenerateFloat returns the variant as per-channel samples in [-1, 1].
func GenerateFloat(variant string, sampleRate, samples, channels int) ([][]float32, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate: %d", sampleRate)
	}
	if channels <= 0 {
		return nil, fmt.Errorf("invalid channel count: %d", channels)
	}
	if samples < 0 {
		return nil, fmt.Errorf("invalid sample count: %d", samples)
	}
	out := make([][]float32, channels)
	for ch := range out {
		out[ch] = make([]float32, samples)
	}
	switch variant {
	case VariantAMMultisine, VariantLSBPadded:
		generateAMMultisine(out, sampleRate)
	case VariantChirpSweep:
		generateChirpSweep(out, sampleRate)
	case VariantImpulseTrain:
		generateImpulseTrain(out, sampleRate)
	case VariantSpeechLike:
		generateSpeechLike(out, sampleRate)
	case VariantNoise:
		for ch := range out {
			for i := range out[ch] {
				out[ch][i] = float32(0.5 * deterministicNoise(i, ch, 3))
			}
		}
	case VariantSilence:
	case VariantDC:
		for ch := range out {
			for i := range out[ch] {
				out[ch][i] = float32(0.25 / float64(ch+1))
			}
		}
	default:
		return nil, fmt.Errorf("unknown signal variant %q", variant)
	}
	return out, nil
}

// Hash returns the SHA-256 of the samples as little-endian int32 values,
// channel after channel.
func Hash(pcm [][]int32) string {
	h := sha256.New()
	var b [4]byte
	for _, ch := range pcm {
		for _, s := range ch {
			binary.LittleEndian.PutUint32(b[:], uint32(s))
			_, _ = h.Write(b[:])
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}

func generateAMMultisine(out [][]float32, sampleRate int) {
	freqs := []float64{440, 1000, 2000}
	amp := 0.3
	modFreqs := []float64{1.3, 2.7, 0.9}
	onsetSamples := int(0.010 * float64(sampleRate))
	for ch := range out {
		for i := range out[ch] {
			t := float64(i) / float64(sampleRate)
			var val float64
			for fi, freq := range freqs {
				f := freq * (1 + 0.01*float64(ch))
				modDepth := 0.5 + 0.5*math.Sin(2*math.Pi*modFreqs[fi]*t)
				val += amp * modDepth * math.Sin(2*math.Pi*f*t)
			}
			if i < onsetSamples {
				frac := float64(i) / float64(onsetSamples)
				val *= frac * frac * frac
			}
			out[ch][i] = float32(clipSample(val))
		}
	}
}

func generateChirpSweep(out [][]float32, sampleRate int) {
	duration := float64(len(out[0])) / float64(sampleRate)
	if duration <= 0 {
		return
	}
	f0 := 60.0
	f1 := math.Min(12000, 0.45*float64(sampleRate))
	k := math.Log(f1/f0) / duration
	fade := 0.005 * float64(sampleRate)
	for ch := range out {
		channelScale := 1.0 + 0.006*float64(ch)
		for i := range out[ch] {
			t := float64(i) / float64(sampleRate)
			phase := 2 * math.Pi * f0 * (math.Exp(k*t) - 1) / k
			env := 0.2 + 0.8*(0.5+0.5*math.Sin(2*math.Pi*0.41*t+0.3*float64(ch)))
			val := 0.85 * env * math.Sin(channelScale*phase)
			if float64(i) < fade {
				val *= float64(i) / fade
			}
			out[ch][i] = float32(clipSample(val))
		}
	}
}

func generateImpulseTrain(out [][]float32, sampleRate int) {
	period := int(0.035 * float64(sampleRate))
	if period < 4 {
		period = 4
	}
	decayT := 0.0035 * float64(sampleRate)
	ringLen := int(0.015 * float64(sampleRate))
	for ch := range out {
		for i := range out[ch] {
			t := float64(i) / float64(sampleRate)
			pos := i % period
			val := 0.0
			if pos == 0 {
				val = 0.92
			}
			if pos < ringLen {
				ring := math.Exp(-float64(pos)/decayT) * math.Sin(2*math.Pi*(540+80*float64(ch))*float64(pos)/float64(sampleRate))
				val += 0.75 * ring
			}
			val += 0.02 * deterministicNoise(i, ch, 17)
			env := 0.6 + 0.4*math.Sin(2*math.Pi*0.19*t+0.4*float64(ch))
			out[ch][i] = float32(clipSample(val * env))
		}
	}
}

func generateSpeechLike(out [][]float32, sampleRate int) {
	for ch := range out {
		var phase, prevNoise float64
		for i := range out[ch] {
			t := float64(i) / float64(sampleRate)

			pitchHz := 95.0 + 28.0*math.Sin(2*math.Pi*0.63*t) + 16.0*math.Sin(2*math.Pi*0.17*t)
			pitchHz *= 1.0 + 0.01*float64(ch)
			phase += 2 * math.Pi * pitchHz / float64(sampleRate)
			if phase > 2*math.Pi {
				phase -= 2 * math.Pi
			}
			voiced := math.Sin(phase) + 0.35*math.Sin(2*phase) + 0.2*math.Sin(3*phase)

			voicing := 0.5 + 0.5*math.Sin(2*math.Pi*0.78*t+0.25)
			syllable := 0.25 + 0.75*math.Pow(0.5+0.5*math.Sin(2*math.Pi*3.2*t), 2)

			noise := deterministicNoise(i, ch, 71)
			high := noise - 0.86*prevNoise
			prevNoise = noise
			mix := voicing*voiced + (1.0-voicing)*(0.38*high+0.22*math.Sin(2*math.Pi*3200*t))

			out[ch][i] = float32(clipSample(0.82 * syllable * mix))
		}
	}
}

func deterministicNoise(sampleIdx, channel, salt int) float64 {
	x := uint32(sampleIdx*1664525 + channel*1013904223 + salt*2246822519)
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	return float64(int32(x)) / 2147483647.0
}

func clipSample(v float64) float64 {
	if v > 0.98 {
		return 0.98
	}
	if v < -0.98 {
		return -0.98
	}
	return v
}
