package operators

import (
	"math"
	"math/cmplx"

	"github.com/LashSesh/omega-protocol/omega"
)

// Resonance is the spectral gate behind address-free dispatch. It passes a
// vector through unchanged when the vector's dominant discrete Fourier
// frequency lies within epsilon of the target frequency omega, and zeroes it
// otherwise. Partial delivery does not exist: the gate is all-or-nothing.
type Resonance struct {
	omega   float64
	epsilon float64
}

// NewResonance creates a resonance gate tuned to the given target frequency
// with the default bandwidth.
func NewResonance(targetFreq float64) *Resonance {
	return &Resonance{omega: targetFreq, epsilon: omega.DefaultEpsilon}
}

// NewResonanceWithEpsilon creates a resonance gate with an explicit bandwidth.
func NewResonanceWithEpsilon(targetFreq, epsilon float64) *Resonance {
	return &Resonance{omega: targetFreq, epsilon: epsilon}
}

// Apply gates the vector on its dominant frequency. A resonant vector is
// returned as a copy; a non-resonant one becomes the zero vector of the same
// length.
func (r *Resonance) Apply(v omega.Vector) omega.Vector {
	if r.IsResonant(v) {
		return v.Clone()
	}
	return make(omega.Vector, len(v))
}

// IsResonant reports whether the vector's dominant frequency falls within the
// epsilon band around the target.
func (r *Resonance) IsResonant(v omega.Vector) bool {
	return math.Abs(r.ComputeDominantFrequency(v)-r.omega) < r.epsilon
}

// binTolerance is the relative magnitude margin a bin must exceed to take
// over as dominant. Real vectors have conjugate-equal magnitudes at bins k
// and n-k up to rounding; the margin keeps such ties on the lower bin
// instead of letting rounding noise alias the result to 2*pi - f.
const binTolerance = 1e-9

// ComputeDominantFrequency returns the normalized frequency, in [0, 2*pi), of
// the strongest non-DC bin of the vector's discrete Fourier transform. Bins
// are scanned in ascending order and a later bin wins only when its magnitude
// exceeds the current maximum by more than a relative tolerance, so ties
// resolve to the lower bin. The empty vector has dominant frequency 0.
//
// The transform is evaluated directly rather than with an FFT: pipeline
// vectors are a handful of elements long, and the direct sum keeps bin
// ordering and tie-breaking explicit.
func (r *Resonance) ComputeDominantFrequency(v omega.Vector) float64 {
	n := len(v)
	if n == 0 {
		return 0.0
	}

	maxMagnitude := 0.0
	maxIndex := 0
	for k := 1; k < n; k++ {
		var bin complex128
		for t := 0; t < n; t++ {
			angle := -2.0 * math.Pi * float64(k) * float64(t) / float64(n)
			bin += complex(v[t], 0) * cmplx.Exp(complex(0, angle))
		}
		magnitude := cmplx.Abs(bin)
		if magnitude > maxMagnitude*(1.0+binTolerance) {
			maxMagnitude = magnitude
			maxIndex = k
		}
	}

	return float64(maxIndex) / float64(n) * 2.0 * math.Pi
}

// TargetFrequency returns the frequency the gate is tuned to.
func (r *Resonance) TargetFrequency() float64 { return r.omega }

// Epsilon returns the gate's bandwidth.
func (r *Resonance) Epsilon() float64 { return r.epsilon }

// Name implements omega.Operator.
func (r *Resonance) Name() string { return "Resonance" }

// LipschitzBound implements omega.Operator. The gate either passes a vector
// through or zeroes it, so it never expands.
func (r *Resonance) LipschitzBound() float64 { return 1.0 }
