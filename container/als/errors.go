package als

import "errors"

// Package-level errors for ALS stream parsing and writing.
var (
	// ErrInvalidHeader indicates the ALS header is malformed.
	// This includes a missing "ALS\0" identifier, out of range fields or
	// truncated data.
	ErrInvalidHeader = errors.New("als: invalid header")

	// ErrUnsupported indicates a header that is well formed but uses a
	// combination of features this package cannot carry, such as a random
	// access table for a stream of unknown length.
	ErrUnsupported = errors.New("als: unsupported stream configuration")

	// ErrUnexpectedEOS indicates the stream ended in the middle of a header
	// or random access unit.
	ErrUnexpectedEOS = errors.New("als: unexpected end of stream")

	// ErrNotSeekable indicates a backward seek on a reader that does not
	// implement io.Seeker, or a seek in a stream without unit sizes.
	ErrNotSeekable = errors.New("als: stream is not seekable")

	// ErrInvalidFrame indicates a frame with no samples, more samples than
	// the frame length, or a frame written after a short frame.
	ErrInvalidFrame = errors.New("als: invalid frame")

	// ErrUnitRange indicates a random access unit index beyond the stream.
	ErrUnitRange = errors.New("als: random access unit out of range")

	// ErrClosed indicates a write after Close.
	ErrClosed = errors.New("als: writer closed")
)
