package rangecoding

import "github.com/thesyncim/goals/internal/bitio"

// Decoder implements the BGMC arithmetic decoder, the mirror of Encoder.
type Decoder struct {
	r     *bitio.Reader // Input bit source
	low   uint32        // Low end of the code interval
	high  uint32        // High end of the code interval
	value uint32        // Code value window (ValueBits wide)
}

// Init starts decoding an arithmetic-coded segment at the reader position.
// It consumes ValueBits bits of lookahead.
func (d *Decoder) Init(r *bitio.Reader) {
	d.r = r
	d.low = 0
	d.high = TopValue
	d.value = r.ReadBits(ValueBits)
}

// Decode returns the next symbol coded against distribution sx thinned by
// delta.
func (d *Decoder) Decode(delta uint, sx int) uint32 {
	freq := freqTables[sx]
	rng := uint64(d.high-d.low) + 1
	target := ((uint64(d.value-d.low)+1)<<FreqBits - 1) / rng

	step := uint32(1) << delta
	s := step
	for uint64(freq[s]) > target {
		s += step
	}

	high := d.low + uint32((rng*uint64(freq[s-step])-freqOne)>>FreqBits)
	low := d.low + uint32((rng*uint64(freq[s]))>>FreqBits)
	value := d.value

	for {
		switch {
		case high < Half:
		case low >= Half:
			value -= Half
			low -= Half
			high -= Half
		case low >= FirstQtr && high < ThirdQtr:
			value -= FirstQtr
			low -= FirstQtr
			high -= FirstQtr
		default:
			d.low, d.high, d.value = low, high, value
			return s>>delta - 1
		}
		low <<= 1
		high = high<<1 | 1
		value = value<<1 | d.r.ReadBit()
	}
}

// Done returns the unused lookahead bits to the reader so that the
// following literal fields start where the encoder placed them.
func (d *Decoder) Done() {
	d.r.Rewind(lookahead)
}
