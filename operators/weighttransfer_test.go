package operators

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/LashSesh/omega-protocol/omega"
)

func defaultWeightTransfer() *WeightTransfer {
	return NewWeightTransfer(0.3, map[ScaleLevel]float64{
		ScaleMicro: 0.2,
		ScaleMeso:  0.5,
		ScaleMacro: 0.3,
	})
}

func TestWeightTransferShape(t *testing.T) {
	wt := defaultWeightTransfer()
	v := omega.Vector{1.0, 2.0, 3.0, 4.0, 5.0}

	out := wt.Transform(v)
	require.Len(t, out, len(v))
	require.Greater(t, out.MaxAbs(), 1e-10)
}

func TestWeightTransferAdaptation(t *testing.T) {
	wt := defaultWeightTransfer()
	initialMicro := wt.Weights()[ScaleMicro]

	wt.SetTargetWeights(map[ScaleLevel]float64{
		ScaleMicro: 0.8,
		ScaleMeso:  0.1,
		ScaleMacro: 0.1,
	})

	v := omega.Vector{1.0, 2.0, 3.0, 4.0, 5.0}
	for i := 0; i < 10; i++ {
		wt.Transform(v)
	}

	finalMicro := wt.Weights()[ScaleMicro]
	require.NotEqual(t, initialMicro, finalMicro)
	require.Greater(t, finalMicro, initialMicro)
	// Ten EMA steps at rate 0.3 close nearly all of the gap to 0.8.
	require.InDelta(t, 0.8, finalMicro, 0.02)
}

func TestWeightTransferWeightSumStable(t *testing.T) {
	wt := defaultWeightTransfer()

	v := omega.Vector{0.5, -1.0, 2.0, 0.0, 1.5}
	for i := 0; i < 100; i++ {
		wt.Transform(v)

		var sum float64
		for _, w := range wt.Weights() {
			sum += w
		}
		require.InDelta(t, 1.0, sum, 0.01)
	}
}

func TestWeightTransferStationaryWithoutNewTargets(t *testing.T) {
	// With targets equal to the initial weights the EMA is a fixed point.
	wt := defaultWeightTransfer()
	before := wt.Weights()

	v := omega.Vector{1.0, 2.0, 3.0, 4.0, 5.0}
	for i := 0; i < 5; i++ {
		wt.Transform(v)
	}

	after := wt.Weights()
	for level, w := range before {
		require.InDelta(t, w, after[level], 1e-12)
	}
}

func TestWeightTransferDeterministic(t *testing.T) {
	v := omega.Vector{1.0, -2.0, 3.0, -4.0, 5.0}

	a := defaultWeightTransfer().Transform(v)
	b := defaultWeightTransfer().Transform(v)
	require.Equal(t, a, b)
}

func TestWeightTransferWeightsCopy(t *testing.T) {
	wt := defaultWeightTransfer()
	weights := wt.Weights()
	weights[ScaleMicro] = 99.0

	require.InDelta(t, 0.2, wt.Weights()[ScaleMicro], 1e-12)
}

func TestScaleLevelString(t *testing.T) {
	require.Equal(t, "micro", ScaleMicro.String())
	require.Equal(t, "meso", ScaleMeso.String())
	require.Equal(t, "macro", ScaleMacro.String())
}
