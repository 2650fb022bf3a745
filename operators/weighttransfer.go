package operators

import (
	"github.com/LashSesh/omega-protocol/omega"
)

// ScaleLevel names one band of the multi-scale decomposition.
type ScaleLevel int

const (
	// ScaleMicro is the high-frequency detail band.
	ScaleMicro ScaleLevel = iota
	// ScaleMeso is the mid-frequency structure band.
	ScaleMeso
	// ScaleMacro is the low-frequency trend band.
	ScaleMacro
)

// scaleOrder fixes the accumulation order so transforms stay deterministic.
var scaleOrder = []ScaleLevel{ScaleMicro, ScaleMeso, ScaleMacro}

// String returns the band name.
func (s ScaleLevel) String() string {
	switch s {
	case ScaleMicro:
		return "micro"
	case ScaleMeso:
		return "meso"
	case ScaleMacro:
		return "macro"
	default:
		return "unknown"
	}
}

// WeightTransfer recombines a vector from per-scale components with weights
// that drift toward target weights on every call: w' = (1-gamma)*w +
// gamma*target. Weights are not renormalized after the update; keeping the
// initial weights summing to 1 keeps the recombination convex.
//
// WeightTransfer mutates its weights on every Transform call and is not safe
// for concurrent use.
type WeightTransfer struct {
	gamma   float64
	weights map[ScaleLevel]float64
	targets map[ScaleLevel]float64
}

// NewWeightTransfer creates the operator with a transfer rate and initial
// weights. The initial weights double as the initial targets.
func NewWeightTransfer(gamma float64, weights map[ScaleLevel]float64) *WeightTransfer {
	w := make(map[ScaleLevel]float64, len(weights))
	t := make(map[ScaleLevel]float64, len(weights))
	for level, weight := range weights {
		w[level] = weight
		t[level] = weight
	}
	return &WeightTransfer{gamma: gamma, weights: w, targets: t}
}

// NewWeightTransferFromParams creates the operator from node parameters.
func NewWeightTransferFromParams(p omega.WeightTransferParams) *WeightTransfer {
	return NewWeightTransfer(p.Gamma, map[ScaleLevel]float64{
		ScaleMicro: p.Micro,
		ScaleMeso:  p.Meso,
		ScaleMacro: p.Macro,
	})
}

// Transform updates the weights one EMA step toward their targets, then
// recombines the vector from its weighted scale components.
func (w *WeightTransfer) Transform(v omega.Vector) omega.Vector {
	w.updateWeights()

	result := make(omega.Vector, len(v))
	for _, level := range scaleOrder {
		weight, ok := w.weights[level]
		if !ok {
			continue
		}
		component := w.projectToScale(v, level)
		for i, x := range component {
			result[i] += weight * x
		}
	}
	return result
}

// SetTargetWeights replaces the adaptation targets. Subsequent Transform
// calls drift the live weights toward the new targets at rate gamma.
func (w *WeightTransfer) SetTargetWeights(targets map[ScaleLevel]float64) {
	w.targets = make(map[ScaleLevel]float64, len(targets))
	for level, weight := range targets {
		w.targets[level] = weight
	}
}

// Weights returns a copy of the current live weights.
func (w *WeightTransfer) Weights() map[ScaleLevel]float64 {
	out := make(map[ScaleLevel]float64, len(w.weights))
	for level, weight := range w.weights {
		out[level] = weight
	}
	return out
}

func (w *WeightTransfer) updateWeights() {
	for _, level := range scaleOrder {
		weight, ok := w.weights[level]
		if !ok {
			continue
		}
		w.weights[level] = (1.0-w.gamma)*weight + w.gamma*w.targets[level]
	}
}

func (w *WeightTransfer) projectToScale(v omega.Vector, level ScaleLevel) omega.Vector {
	switch level {
	case ScaleMicro:
		return highpass(v)
	case ScaleMeso:
		return bandpass(v)
	default:
		return lowpass(v)
	}
}

// lowpass is a radius-1 moving average with shrinking windows at the edges.
func lowpass(v omega.Vector) omega.Vector {
	result := make(omega.Vector, len(v))
	for i := range v {
		sum := v[i]
		count := 1
		if i > 0 {
			sum += v[i-1]
			count++
		}
		if i < len(v)-1 {
			sum += v[i+1]
			count++
		}
		result[i] = sum / float64(count)
	}
	return result
}

// highpass is the residual of the lowpass component.
func highpass(v omega.Vector) omega.Vector {
	low := lowpass(v)
	result := make(omega.Vector, len(v))
	for i := range v {
		result[i] = v[i] - low[i]
	}
	return result
}

// bandpass is the midpoint of the lowpass and highpass components.
func bandpass(v omega.Vector) omega.Vector {
	low := lowpass(v)
	high := highpass(v)
	result := make(omega.Vector, len(v))
	for i := range result {
		result[i] = (low[i] + high[i]) * 0.5
	}
	return result
}

// Name implements omega.Operator.
func (w *WeightTransfer) Name() string { return "WeightTransfer" }

// LipschitzBound implements omega.Operator. With weights summing to 1 the
// recombination is a convex blend of non-expansive components.
func (w *WeightTransfer) LipschitzBound() float64 { return 1.0 }
