package common

import (
	"encoding/binary"
	"math"
)

// Or returns value, or fallback when value is the zero value of its type.
func Or[T comparable](value, fallback T) T {
	var zero T
	if value == zero {
		return fallback
	}
	return value
}

// AppendFloats appends each value to buf as a little-endian IEEE 754 float32, the layout
// WGSL expects for f32 scalars, vectors and matrices.
//
// Parameters:
//   - buf: the buffer to extend, may be nil
//   - values: the floats to append in order
//
// Returns:
//   - []byte: the extended buffer
func AppendFloats(buf []byte, values ...float32) []byte {
	for _, v := range values {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(v))
	}
	return buf
}
