package omega

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Vectorize converts a byte message into a Dimension-long vector. The input
// is zero-padded to a multiple of Dimension and only the first Dimension
// bytes of the padded buffer are represented; longer messages lose their
// tail. Each byte b maps to (b-128)/128 in [-1, 1).
//
// An empty input fails with ErrVectorization.
func Vectorize(data []byte) (Vector, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: cannot vectorize empty data", ErrVectorization)
	}

	targetLen := (len(data) + Dimension - 1) / Dimension * Dimension
	padded := make([]byte, targetLen)
	copy(padded, data)

	v := NewVector(Dimension)
	for i := 0; i < Dimension && i < len(padded); i++ {
		v[i] = (float64(padded[i]) - 128.0) / 128.0
	}
	return v, nil
}

// Devectorize converts a vector back to bytes, one byte per component, using
// the inverse mapping clamp(round(x*128+128), 0, 255). The round trip
// Devectorize(Vectorize(m)) reproduces m exactly when len(m) == Dimension;
// values outside [-1, 1) are clamped, so arbitrary vectors quantize lossily.
func Devectorize(v Vector) []byte {
	out := make([]byte, len(v))
	for i, x := range v {
		b := math.Round(x*128.0 + 128.0)
		if b < 0 {
			b = 0
		} else if b > 255 {
			b = 255
		}
		out[i] = byte(b)
	}
	return out
}

// MarshalBinary encodes the vector as little-endian float64 words, 8 bytes
// per component (40 bytes for the reference dimension). This is the wire
// format for transports that cross a process boundary without JSON.
func (v Vector) MarshalBinary() ([]byte, error) {
	out := make([]byte, 8*len(v))
	for i, x := range v {
		binary.LittleEndian.PutUint64(out[i*8:], math.Float64bits(x))
	}
	return out, nil
}

// UnmarshalBinary decodes a little-endian float64 encoding produced by
// MarshalBinary.
func (v *Vector) UnmarshalBinary(data []byte) error {
	if len(data)%8 != 0 {
		return fmt.Errorf("%w: vector encoding length %d is not a multiple of 8", ErrParameter, len(data))
	}
	out := make(Vector, len(data)/8)
	for i := range out {
		out[i] = math.Float64frombits(binary.LittleEndian.Uint64(data[i*8:]))
	}
	*v = out
	return nil
}
