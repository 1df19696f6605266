package als

import "hash/crc32"

// The stream checksum is the reflected CRC-32 with polynomial 0xEDB88320,
// all-ones initial value and final XOR. That is the IEEE CRC of
// hash/crc32.

// UpdateCRC adds PCM bytes in file order to a running checksum. The
// checksum of an empty stream is 0.
func UpdateCRC(crc uint32, pcm []byte) uint32 {
	return crc32.Update(crc, crc32.IEEETable, pcm)
}
