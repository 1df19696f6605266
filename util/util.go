// Package util provides small integer helpers shared by the goals codec.
package util

import "math/bits"

// Signed is a constraint for signed integer and float types.
type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~float32 | ~float64
}

// Abs returns the absolute value of x.
func Abs[T Signed](x T) T {
	if x < 0 {
		return -x
	}
	return x
}

// Log2 returns the floor of the base 2 logarithm of n, and 0 for n < 2.
func Log2(n int) int {
	if n < 2 {
		return 0
	}
	return bits.Len(uint(n)) - 1
}
