// errors.go defines public error types for the goals package.

package goals

import "errors"

// Public error types for encoding and decoding operations.
var (
	// ErrInvalidHeader indicates the stream does not start with a valid
	// ALS header.
	ErrInvalidHeader = errors.New("goals: invalid header")

	// ErrUnsupported indicates a valid stream using a feature this package
	// cannot handle.
	ErrUnsupported = errors.New("goals: unsupported stream")

	// ErrInvalidSampleCount indicates the samples passed to Write do not
	// have the same length in every channel.
	ErrInvalidSampleCount = errors.New("goals: invalid sample count")

	// ErrCRCMismatch indicates the decoded samples do not match the
	// checksum stored in the header. The samples have still been returned.
	ErrCRCMismatch = errors.New("goals: CRC mismatch")

	// ErrShortRead indicates the stream ended inside a frame.
	ErrShortRead = errors.New("goals: unexpected end of stream")

	// ErrInvalidConfig indicates an encoder configuration that cannot be
	// coded, or a change after the first Write.
	ErrInvalidConfig = errors.New("goals: invalid configuration")

	// ErrInvalidFrame indicates a frame that could not be decoded.
	ErrInvalidFrame = errors.New("goals: invalid frame")

	// ErrInvalidChannels indicates an unsupported channel count.
	// Valid channel counts are 1 to 65536.
	ErrInvalidChannels = errors.New("goals: invalid channels (must be 1-65536)")

	// ErrInvalidResolution indicates an unsupported sample resolution.
	// Integer samples use 8, 16, 24 or 32 bits, float samples 32 bits.
	ErrInvalidResolution = errors.New("goals: invalid resolution (must be 8, 16, 24 or 32)")

	// ErrClosed indicates a call on a closed Encoder or Decoder.
	ErrClosed = errors.New("goals: closed")
)
