package crypto

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEphemeralParamsDeterministic(t *testing.T) {
	a := EphemeralParams(1.5, 42)
	b := EphemeralParams(1.5, 42)
	require.Equal(t, a, b)
}

func TestEphemeralParamsThetaRange(t *testing.T) {
	for _, freq := range []float64{0, 0.001, 1.5, 2.5, 100.0, -3.7} {
		for _, epoch := range []uint64{0, 1, 7, math.MaxUint64} {
			p := EphemeralParams(freq, epoch)
			require.GreaterOrEqual(t, p.Theta, 0.0)
			require.Less(t, p.Theta, 2.0*math.Pi+1e-9)
		}
	}
}

func TestEphemeralParamsEpochRotation(t *testing.T) {
	before := EphemeralParams(1.5, 1)
	after := EphemeralParams(1.5, 2)
	require.NotEqual(t, before.Sigma, after.Sigma)
}

func TestEphemeralParamsFrequencySeparation(t *testing.T) {
	a := EphemeralParams(1.5, 42)
	b := EphemeralParams(2.5, 42)
	require.NotEqual(t, a.Sigma, b.Sigma)
}

func TestKeystreamDeterministic(t *testing.T) {
	p := EphemeralParams(2.5, 9)

	s1, err := Keystream(p, 256)
	require.NoError(t, err)
	s2, err := Keystream(p, 256)
	require.NoError(t, err)
	require.Equal(t, s1, s2)
	require.Len(t, s1, 256)
}

func TestKeystreamPrefixStable(t *testing.T) {
	// A longer draw from the same parameters extends the shorter one.
	p := EphemeralParams(0.7, 3)

	short, err := Keystream(p, 16)
	require.NoError(t, err)
	long, err := Keystream(p, 64)
	require.NoError(t, err)
	require.Equal(t, short, long[:16])
}

func TestKeystreamLongDraw(t *testing.T) {
	// Streams must not be capped: masking can cover arbitrarily long messages.
	p := EphemeralParams(1.0, 0)

	s, err := Keystream(p, 1<<16)
	require.NoError(t, err)
	require.Len(t, s, 1<<16)
}
