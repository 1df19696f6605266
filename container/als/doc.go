// Package als implements the ALS stream container: the stream header, the random access unit framing of the frame data, the stream
// checksum and the records an MP4 muxer needs.
//
// # Stream Layout
//
// A raw ALS stream is the header followed by the frame data:
//
//	u32  Sampling frequency
//	u32  Samples per channel (0xFFFFFFFF if unknown)
//	u16  Channels - 1
//	u8   File type (3 bits), resolution (3), floating point (1), MSB first (1)
//	u16  Frame length - 1
//	u8   Random access distance in frames
//	u8   RA info (2), adaptive order (1), coef table (2), LTP (1), max order >> 8 (2)
//	u8   Max order & 0xFF
//	u8   Block switching (2), BGMC (1), sub-block partition (1), joint (1),
//	     MCC (1), channel config (1), channel sort (1)
//	u8   CRC (1), RLS-LMS (1), reserved (5), AUX (1)
//	u16  Channel configuration word (if channel config)
//	     Channel positions, ceil(log2 channels) bits each, byte aligned
//	     (if channel sort)
//	u16  Header size, u16 trailer size, then the header and trailer bytes
//	u32  CRC-32 of the PCM bytes (if CRC)
//	u32  Size of each random access unit (if RA info is 2)
//	u16  AUX size and AUX bytes (if AUX)
//
// All fields are big-endian. With RA info 1 every random access unit of
// the frame data is preceded by its size as a u32 that does not count
// itself.
//
// # MP4
//
// SpecificConfig returns the decoder specific info of an MP4 sample entry:
// an AudioSpecificConfig with object type 36 whose payload is the
// ALSSpecificConfig. That is the header above in the Specific form: it
// starts with the u32 "ALS\0" identifier and its header, trailer and AUX
// sizes are u32. Writer.Records lists one sample per random access unit.
package als
