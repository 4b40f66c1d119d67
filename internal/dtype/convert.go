package dtype

import (
	"encoding/binary"
	"math"
)

// Value decodes the single pixel at the start of buf as d, widened to
// float64. It returns 0 for an unrecognized datatype or when buf is shorter
// than one pixel.
func Value(d Datatype, buf []byte) float64 {
	if len(buf) < d.Size() {
		return 0
	}
	switch d {
	case Float32:
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(buf)))
	case Int32:
		return float64(int32(binary.LittleEndian.Uint32(buf)))
	case Int16:
		return float64(int16(binary.LittleEndian.Uint16(buf)))
	case Uint16:
		return float64(binary.LittleEndian.Uint16(buf))
	default:
		return 0
	}
}

// Decode converts consecutive pixels in buf into dst and returns the number
// of pixels decoded from buf. Elements of dst that buf does not cover are set
// to 0, as is all of dst for an unrecognized datatype.
func Decode(d Datatype, buf []byte, dst []float64) int {
	size := d.Size()
	if size == 0 {
		clear(dst)
		return 0
	}

	n := len(buf) / size
	if n > len(dst) {
		n = len(dst)
	}
	for i := 0; i < n; i++ {
		dst[i] = Value(d, buf[i*size:])
	}
	clear(dst[n:])
	return n
}
