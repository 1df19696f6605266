// Package goals implements MPEG-4 Audio Lossless Coding (ALS) in pure Go.
//
// ALS is a lossless audio codec standardized in ISO/IEC 14496-3. It
// compresses integer PCM of 8 to 32 bits and IEEE float PCM with any
// number of channels, and restores the exact input on decoding. A CRC-32
// over the PCM bytes is stored in the header and checked by the decoder.
//
// # Coding Tools
//
// Every frame is predicted and entropy coded per block:
//   - Forward-adaptive linear prediction with quantized PARCOR
//     coefficients of up to order 1023, or the backward-adaptive RLS-LMS
//     cascade
//   - Rice codes or Block Gilbert-Moore codes (BGMC) for the residual
//   - Block switching, splitting a frame into up to 32 blocks
//   - Joint stereo difference coding and multi-channel correlation (MCC)
//   - Long-term prediction (LTP) for periodic signals
//   - Random access units that decode without earlier frames
//
// # Stream Structure
//
// An ALS stream is a header followed by frames. With
// random access enabled the frames are grouped into units whose sizes are
// stored either in the header or in front of every unit, which lets the
// Decoder seek with SeekRAU.
//
// Use NewEncoder with an EncoderConfig to compress and NewDecoder to
// decompress. The container/als package exposes the header, the unit
// reader and writer and the AudioSpecificConfig for MP4 muxing.
package goals
