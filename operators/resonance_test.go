package operators

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/LashSesh/omega-protocol/omega"
)

// pureBin returns an n-element sinusoid whose dominant frequency is exactly
// the DFT bin k, i.e. 2*pi*k/n.
func pureBin(n, k int) omega.Vector {
	v := make(omega.Vector, n)
	for t := range v {
		v[t] = math.Sin(2.0 * math.Pi * float64(k) * float64(t) / float64(n))
	}
	return v
}

func TestDominantFrequencyOfPureTone(t *testing.T) {
	r := NewResonance(1.0)

	v := pureBin(64, 1)
	freq := r.ComputeDominantFrequency(v)
	require.InDelta(t, 2.0*math.Pi/64.0, freq, 1e-9)
}

func TestDominantFrequencyPrefersLowerConjugateBin(t *testing.T) {
	r := NewResonance(1.0)

	// A real sinusoid at bin k has the same magnitude at bin n-k up to
	// rounding; the lower bin must win or the result aliases to 2*pi - f.
	for _, tc := range []struct{ n, k int }{
		{64, 1}, {64, 2}, {64, 5}, {64, 31}, {5, 1}, {5, 2},
	} {
		v := pureBin(tc.n, tc.k)
		want := 2.0 * math.Pi * float64(tc.k) / float64(tc.n)
		require.InDelta(t, want, r.ComputeDominantFrequency(v), 1e-9)
	}
}

func TestDominantFrequencyShortVector(t *testing.T) {
	r := NewResonance(1.0)

	// With dimension 5 the representable frequencies are 2*pi*k/5.
	v := pureBin(5, 1)
	freq := r.ComputeDominantFrequency(v)
	require.InDelta(t, 2.0*math.Pi/5.0, freq, 1e-9)
}

func TestDominantFrequencyEmptyVector(t *testing.T) {
	r := NewResonance(1.0)
	require.Zero(t, r.ComputeDominantFrequency(omega.Vector{}))
}

func TestResonancePass(t *testing.T) {
	target := 2.0 * math.Pi / 5.0
	r := NewResonanceWithEpsilon(target, 0.1)

	v := pureBin(5, 1)
	require.True(t, r.IsResonant(v))

	out := r.Apply(v)
	require.Equal(t, v, out)
}

func TestResonanceReject(t *testing.T) {
	r := NewResonanceWithEpsilon(1.0, 0.01)

	// Dominant frequency of this vector is far from 1.0.
	v := pureBin(5, 2)
	require.False(t, r.IsResonant(v))

	out := r.Apply(v)
	require.Len(t, out, len(v))
	for _, x := range out {
		require.Zero(t, x)
	}
}

func TestResonanceAllOrNothing(t *testing.T) {
	r := NewResonanceWithEpsilon(2.0*math.Pi/5.0, 0.1)

	v := pureBin(5, 1)
	out := r.Apply(v)

	// Either the full vector or the zero vector, never a partial copy.
	if out.Norm() > 0 {
		require.Equal(t, v, out)
	} else {
		require.Zero(t, out.MaxAbs())
	}
}

func TestResonanceApplyDoesNotAliasInput(t *testing.T) {
	r := NewResonanceWithEpsilon(2.0*math.Pi/5.0, 0.1)

	v := pureBin(5, 1)
	out := r.Apply(v)
	out[0] = 99.0
	require.NotEqual(t, 99.0, v[0])
}

func TestResonanceNonExpansive(t *testing.T) {
	r := NewResonanceWithEpsilon(1.5, 0.3)

	for k := 0; k < 4; k++ {
		v := pureBin(5, k)
		out := r.Apply(v)
		require.LessOrEqual(t, out.Norm(), v.Norm()+1e-12)
	}
}
