package operators

import (
	"math"

	"github.com/LashSesh/omega-protocol/omega"
)

const (
	sweepPeriod   = 100.0
	sweepDeltaTau = 0.2
)

// Sweep is the adaptive threshold gate. Every Transform call compares the
// vector's mean against a scheduled, time-varying threshold and scales the
// whole vector by a sigmoid of the difference: vectors with means well above
// the threshold pass nearly untouched, vectors well below are attenuated
// toward zero. The gate value is always in (0, 1), so Sweep never expands.
//
// Sweep is stateful: the internal clock t advances by one on every Transform
// call, moving the threshold along its schedule. It is not safe for
// concurrent use.
type Sweep struct {
	tau0     float64
	beta     float64
	schedule string
	t        float64
}

// NewSweep creates a sweep gate with the given base threshold, gate width and
// schedule name. Schedules "cosine" and "linear" vary the threshold over a
// fixed period; any other name holds it constant at tau0.
func NewSweep(tau0, beta float64, schedule string) *Sweep {
	return &Sweep{tau0: tau0, beta: beta, schedule: schedule}
}

// NewSweepFromParams creates a sweep gate from node parameters.
func NewSweepFromParams(p omega.SweepParams) *Sweep {
	return NewSweep(p.Tau0, p.Beta, p.Schedule)
}

// Transform gates the vector against the current threshold and advances the
// clock.
func (s *Sweep) Transform(v omega.Vector) omega.Vector {
	mu := v.Mean()
	tau := s.threshold(s.t)
	gate := sigmoid((mu - tau) / s.beta)

	s.t++

	result := make(omega.Vector, len(v))
	for i, x := range v {
		result[i] = gate * x
	}
	return result
}

// CurrentThreshold returns the threshold the next Transform call will gate
// against.
func (s *Sweep) CurrentThreshold() float64 {
	return s.threshold(s.t)
}

// Reset rewinds the schedule clock to zero.
func (s *Sweep) Reset() {
	s.t = 0
}

func (s *Sweep) threshold(t float64) float64 {
	switch s.schedule {
	case "cosine":
		phase := math.Pi * t / sweepPeriod
		return s.tau0 + 0.5*(1.0+math.Cos(phase))*sweepDeltaTau
	case "linear":
		cycle := math.Mod(t, sweepPeriod) / sweepPeriod
		return s.tau0 + cycle*sweepDeltaTau
	default:
		return s.tau0
	}
}

func sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}

// Name implements omega.Operator.
func (s *Sweep) Name() string { return "Sweep" }

// LipschitzBound implements omega.Operator. The gate factor lies in (0, 1).
func (s *Sweep) LipschitzBound() float64 { return 1.0 }
