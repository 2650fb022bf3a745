package operators

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/LashSesh/omega-protocol/omega"
)

func TestSweepGating(t *testing.T) {
	sweep := NewSweep(0.5, 0.1, "cosine")

	// A vector with mean well above the threshold passes mostly intact.
	high := omega.Vector{1.0, 1.0, 1.0, 1.0, 1.0}
	outHigh := sweep.Transform(high)
	require.Greater(t, outHigh.Mean(), 0.5)

	// A vector with mean well below the threshold is attenuated.
	low := omega.Vector{0.1, 0.1, 0.1, 0.1, 0.1}
	outLow := sweep.Transform(low)
	require.Less(t, outLow.Mean(), low.Mean())
}

func TestSweepThresholdSchedule(t *testing.T) {
	sweep := NewSweep(0.5, 0.1, "cosine")

	tau0 := sweep.CurrentThreshold()
	v := omega.Vector{0.5, 0.5, 0.5, 0.5, 0.5}
	for i := 0; i < 50; i++ {
		sweep.Transform(v)
	}
	tau50 := sweep.CurrentThreshold()
	require.NotEqual(t, tau0, tau50)
}

func TestSweepCosineScheduleShape(t *testing.T) {
	sweep := NewSweep(0.5, 0.1, "cosine")

	// At t=0 the cosine term is maximal: tau = tau0 + delta_tau.
	require.InDelta(t, 0.7, sweep.CurrentThreshold(), 1e-12)

	// Half a period later the cosine term vanishes: tau = tau0.
	v := make(omega.Vector, 5)
	for i := 0; i < 50; i++ {
		sweep.Transform(v)
	}
	require.InDelta(t, 0.6, sweep.CurrentThreshold(), 1e-12)
}

func TestSweepLinearSchedule(t *testing.T) {
	sweep := NewSweep(0.5, 0.1, "linear")

	require.InDelta(t, 0.5, sweep.CurrentThreshold(), 1e-12)

	v := make(omega.Vector, 5)
	for i := 0; i < 25; i++ {
		sweep.Transform(v)
	}
	// A quarter of the way through the period the ramp adds delta_tau/4.
	require.InDelta(t, 0.55, sweep.CurrentThreshold(), 1e-12)

	// The ramp wraps at the period boundary.
	for i := 0; i < 75; i++ {
		sweep.Transform(v)
	}
	require.InDelta(t, 0.5, sweep.CurrentThreshold(), 1e-12)
}

func TestSweepUnknownScheduleHoldsBase(t *testing.T) {
	sweep := NewSweep(0.4, 0.1, "sawtooth")

	v := make(omega.Vector, 5)
	for i := 0; i < 30; i++ {
		require.InDelta(t, 0.4, sweep.CurrentThreshold(), 1e-12)
		sweep.Transform(v)
	}
}

func TestSweepReset(t *testing.T) {
	sweep := NewSweep(0.5, 0.1, "cosine")

	v := make(omega.Vector, 5)
	for i := 0; i < 17; i++ {
		sweep.Transform(v)
	}
	sweep.Reset()
	require.InDelta(t, 0.7, sweep.CurrentThreshold(), 1e-12)
}

func TestSweepNonExpansive(t *testing.T) {
	sweep := NewSweep(0.5, 0.1, "cosine")
	v := omega.Vector{1.0, 2.0, 3.0, 4.0, 5.0}

	out := sweep.Transform(v)
	for i := range out {
		require.LessOrEqual(t, math.Abs(out[i]), math.Abs(v[i]))
	}
}
