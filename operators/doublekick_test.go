package operators

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/LashSesh/omega-protocol/omega"
)

func TestDoubleKickPerturbationBound(t *testing.T) {
	dk := NewDoubleKickWithRand(0.1, -0.05, rand.New(rand.NewSource(1)))
	v := omega.Vector{1.0, 2.0, 3.0, 4.0, 5.0}

	out := dk.Apply(v)
	require.NotEqual(t, v, out)

	// With orthonormal kick directions the displacement norm is exactly
	// sqrt(alpha1^2 + alpha2^2), which is at most Eta.
	diff := out.Sub(v).Norm()
	require.InDelta(t, math.Sqrt(0.1*0.1+0.05*0.05), diff, 1e-9)
	require.LessOrEqual(t, diff, dk.Eta)
}

func TestDoubleKickEta(t *testing.T) {
	dk := NewDoubleKick(0.05, -0.03)
	require.InDelta(t, 0.08, dk.Eta, 1e-12)
	require.InDelta(t, 1.08, dk.LipschitzBound(), 1e-12)
}

func TestDoubleKickOrthonormalPair(t *testing.T) {
	dk := NewDoubleKickWithRand(0.05, -0.03, rand.New(rand.NewSource(7)))

	for i := 0; i < 20; i++ {
		u1, u2 := dk.orthonormalPair(5)
		require.InDelta(t, 1.0, u1.Norm(), 1e-9)
		require.InDelta(t, 1.0, u2.Norm(), 1e-9)
		require.InDelta(t, 0.0, u1.Dot(u2), 1e-9)
	}
}

func TestDoubleKickEmptyVector(t *testing.T) {
	dk := NewDoubleKick(0.05, -0.03)
	out := dk.Apply(omega.Vector{})
	require.Empty(t, out)
}

func TestDoubleKickDoesNotMutateInput(t *testing.T) {
	dk := NewDoubleKickWithRand(0.5, 0.5, rand.New(rand.NewSource(3)))
	v := omega.Vector{1.0, 2.0, 3.0, 4.0, 5.0}
	original := v.Clone()

	dk.Apply(v)
	require.Equal(t, original, v)
}

func TestDoubleKickSeededDeterminism(t *testing.T) {
	v := omega.Vector{1.0, 2.0, 3.0, 4.0, 5.0}

	a := NewDoubleKickWithRand(0.05, -0.03, rand.New(rand.NewSource(42))).Apply(v)
	b := NewDoubleKickWithRand(0.05, -0.03, rand.New(rand.NewSource(42))).Apply(v)
	require.Equal(t, a, b)
}
