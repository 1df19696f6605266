// Package rangecoding implements the block Gilbert-Moore arithmetic coder
// (BGMC) used for ALS residuals.
//
// The coder keeps 18-bit low/high registers and narrows the interval with
// 14-bit cumulative frequencies. Symbols are coded against one of 16 fixed
// distributions selected by the sub-parameter sx; delta thins a distribution
// by taking every 2^delta-th entry. Encoder and decoder are symmetric and
// bit exact.
package rangecoding

// Register and frequency precision.
const (
	FreqBits  = 14                  // Bits per cumulative frequency
	ValueBits = 18                  // Bits per code register
	TopValue  = 1<<ValueBits - 1    // Largest code value
	FirstQtr  = TopValue/4 + 1      // First quarter of the code range
	Half      = 2 * FirstQtr        // First half
	ThirdQtr  = 3 * FirstQtr        // Third quarter
	lookahead = ValueBits - 2       // Bits the decoder returns on Done
	freqOne   = uint64(1) << FreqBits
)

// MaxX returns the tail threshold for sx at the given delta. Prefix values
// at or above it are escaped through TailCode.
func MaxX(sx int, delta uint) uint32 {
	return maxX0[sx] >> delta
}

// TailCode returns the escape symbol for sx and delta.
func TailCode(sx int, delta uint) uint32 {
	return tailCodes[sx][delta]
}

// Freq returns the cumulative frequency of symbol under sx and delta, i.e.
// the probability mass (out of 1<<FreqBits) of all symbols >= symbol.
func Freq(sx int, delta uint, symbol uint32) uint32 {
	return uint32(freqTables[sx][symbol<<delta])
}

// Symbols returns the alphabet size for sx at the given delta.
func Symbols(sx int, delta uint) int {
	return (len(freqTables[sx]) - 1) >> delta
}
