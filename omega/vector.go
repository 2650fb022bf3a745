package omega

import (
	"math"
)

// Dimension is the size of the OMEGA vector space. All pipeline vectors are
// exactly this long; the value is fixed at construction of the protocol, not
// negotiated per message.
const Dimension = 5

// Vector is a fixed-dimension real vector carrying a message or any
// intermediate pipeline state. Vectors are value-semantic: operators return
// new vectors and never mutate their input.
type Vector []float64

// NewVector returns a zero vector of the given dimension.
func NewVector(dim int) Vector {
	return make(Vector, dim)
}

// Clone returns an independent copy of the vector.
func (v Vector) Clone() Vector {
	out := make(Vector, len(v))
	copy(out, v)
	return out
}

// Add returns the elementwise sum v + w. Panics if dimensions differ.
func (v Vector) Add(w Vector) Vector {
	out := make(Vector, len(v))
	for i := range v {
		out[i] = v[i] + w[i]
	}
	return out
}

// Sub returns the elementwise difference v - w.
func (v Vector) Sub(w Vector) Vector {
	out := make(Vector, len(v))
	for i := range v {
		out[i] = v[i] - w[i]
	}
	return out
}

// Scale returns v multiplied elementwise by s.
func (v Vector) Scale(s float64) Vector {
	out := make(Vector, len(v))
	for i := range v {
		out[i] = v[i] * s
	}
	return out
}

// Dot returns the inner product of v and w.
func (v Vector) Dot(w Vector) float64 {
	var sum float64
	for i := range v {
		sum += v[i] * w[i]
	}
	return sum
}

// Norm returns the Euclidean norm of v.
func (v Vector) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

// Mean returns the arithmetic mean of the components, 0 for an empty vector.
func (v Vector) Mean() float64 {
	if len(v) == 0 {
		return 0
	}
	var sum float64
	for _, x := range v {
		sum += x
	}
	return sum / float64(len(v))
}

// MaxAbs returns the largest absolute component value.
func (v Vector) MaxAbs() float64 {
	var m float64
	for _, x := range v {
		if a := math.Abs(x); a > m {
			m = a
		}
	}
	return m
}

// StampFrequency adds a sinusoid at the given frequency (amplitude 0.1) to
// the vector, marking it for receivers tuned to that frequency. The stamp is
// purely additive and not invertible.
func StampFrequency(v Vector, freq float64) Vector {
	if len(v) == 0 {
		return v
	}
	out := make(Vector, len(v))
	for i := range v {
		out[i] = v[i] + math.Sin(freq*float64(i))*0.1
	}
	return out
}
