package sdl2

import "encoding/binary"

// encodeS16LE packs samples as signed 16-bit little-endian PCM.
func encodeS16LE(samples []int16, dst []byte) []byte {
	dst = dst[:0]
	for _, s := range samples {
		dst = binary.LittleEndian.AppendUint16(dst, uint16(s))
	}
	return dst
}
