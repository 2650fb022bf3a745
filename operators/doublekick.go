package operators

import (
	"math"
	"math/rand"

	"github.com/LashSesh/omega-protocol/omega"
)

// DoubleKick applies a pair of bounded impulses along two freshly drawn
// orthonormal directions: v' = v + alpha1*u1 + alpha2*u2. The kick nudges a
// vector off any fixed point the contractive stages settle into while keeping
// the perturbation norm at exactly sqrt(alpha1^2 + alpha2^2), below the bound
// Eta = |alpha1| + |alpha2|.
type DoubleKick struct {
	alpha1 float64
	alpha2 float64

	// Eta bounds the perturbation magnitude per application.
	Eta float64

	rnd *rand.Rand
}

// NewDoubleKick creates the operator with the given impulse amplitudes and a
// randomly seeded direction source.
func NewDoubleKick(alpha1, alpha2 float64) *DoubleKick {
	return NewDoubleKickWithRand(alpha1, alpha2, rand.New(rand.NewSource(rand.Int63())))
}

// NewDoubleKickWithRand creates the operator with an explicit direction
// source, which pins down the kick directions for reproducible runs.
func NewDoubleKickWithRand(alpha1, alpha2 float64, rnd *rand.Rand) *DoubleKick {
	return &DoubleKick{
		alpha1: alpha1,
		alpha2: alpha2,
		Eta:    math.Abs(alpha1) + math.Abs(alpha2),
		rnd:    rnd,
	}
}

// NewDoubleKickFromParams creates the operator from node parameters.
func NewDoubleKickFromParams(p omega.DoubleKickParams) *DoubleKick {
	return NewDoubleKick(p.Alpha1, p.Alpha2)
}

// Apply perturbs the vector along two random orthonormal directions. The
// empty vector passes through unchanged.
func (d *DoubleKick) Apply(v omega.Vector) omega.Vector {
	dim := len(v)
	if dim == 0 {
		return v.Clone()
	}

	u1, u2 := d.orthonormalPair(dim)

	result := v.Clone()
	for i := range result {
		result[i] += d.alpha1*u1[i] + d.alpha2*u2[i]
	}
	return result
}

// orthonormalPair draws two random directions and orthonormalizes them with
// one Gram-Schmidt step. Degenerate draws (norm below 1e-10) are left
// unnormalized, matching the reference guard.
func (d *DoubleKick) orthonormalPair(dim int) (omega.Vector, omega.Vector) {
	u1 := d.randomVector(dim)
	if n := u1.Norm(); n > 1e-10 {
		u1 = u1.Scale(1.0 / n)
	}

	u2 := d.randomVector(dim)
	dot := u1.Dot(u2)
	for i := range u2 {
		u2[i] -= dot * u1[i]
	}
	if n := u2.Norm(); n > 1e-10 {
		u2 = u2.Scale(1.0 / n)
	}

	return u1, u2
}

func (d *DoubleKick) randomVector(dim int) omega.Vector {
	v := make(omega.Vector, dim)
	for i := range v {
		v[i] = d.rnd.Float64()*2.0 - 1.0
	}
	return v
}

// Name implements omega.Operator.
func (d *DoubleKick) Name() string { return "DoubleKick" }

// LipschitzBound implements omega.Operator. The kick adds at most Eta to any
// displacement.
func (d *DoubleKick) LipschitzBound() float64 { return 1.0 + d.Eta }
