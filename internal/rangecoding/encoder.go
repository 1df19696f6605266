package rangecoding

import "github.com/thesyncim/goals/internal/bitio"

// Encoder implements the BGMC arithmetic encoder.
// Bits are emitted through a bitio.Writer shared with the surrounding
// block syntax, so arithmetic-coded and literal fields interleave freely.
type Encoder struct {
	w            *bitio.Writer // Output bit sink
	low          uint32        // Low end of the code interval
	high         uint32        // High end of the code interval
	bitsToFollow uint32        // Pending opposite bits after the next output bit
}

// Init starts a new arithmetic-coded segment on w.
func (e *Encoder) Init(w *bitio.Writer) {
	e.w = w
	e.low = 0
	e.high = TopValue
	e.bitsToFollow = 0
}

// putBitPlusFollow writes bit followed by the pending opposite bits.
func (e *Encoder) putBitPlusFollow(bit uint32) {
	e.w.WriteBits(bit, 1)
	for ; e.bitsToFollow > 0; e.bitsToFollow-- {
		e.w.WriteBits(bit^1, 1)
	}
}

// Encode codes symbol against distribution sx thinned by delta.
func (e *Encoder) Encode(symbol uint32, delta uint, sx int) {
	freq := freqTables[sx]
	rng := uint64(e.high-e.low) + 1
	high := e.low + uint32((rng*uint64(freq[symbol<<delta])-freqOne)>>FreqBits)
	low := e.low + uint32((rng*uint64(freq[(symbol+1)<<delta]))>>FreqBits)

	for {
		switch {
		case high < Half:
			e.putBitPlusFollow(0)
		case low >= Half:
			e.putBitPlusFollow(1)
			low -= Half
			high -= Half
		case low >= FirstQtr && high < ThirdQtr:
			e.bitsToFollow++
			low -= FirstQtr
			high -= FirstQtr
		default:
			e.low, e.high = low, high
			return
		}
		low <<= 1
		high = high<<1 | 1
	}
}

// Done flushes the two bits that identify the final interval quarter.
func (e *Encoder) Done() {
	e.bitsToFollow++
	if e.low < FirstQtr {
		e.putBitPlusFollow(0)
	} else {
		e.putBitPlusFollow(1)
	}
}
