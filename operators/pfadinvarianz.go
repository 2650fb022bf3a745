package operators

import (
	"github.com/LashSesh/omega-protocol/omega"
)

// Pfadinvarianz is the path-invariant projection. One application averages
// the vector over a fixed set of index permutations: the identity, every
// cyclic shift, one full reversal, every adjacent swap, and one 3-cycle of
// the first three indices. Averaging damps the order in which earlier
// pipeline stages touched the components while preserving the component
// mean and the dominant spectral bin.
//
// The permutation set is not closed under composition, so a single pass is a
// contraction toward the mean rather than an exact projection: repeated
// application converges geometrically to the constant mean vector, and two
// vectors on the same permutation orbit converge to the same limit.
type Pfadinvarianz struct {
	dimension int
	perms     [][]int
}

// NewPfadinvarianz builds the projection for a fixed vector dimension.
func NewPfadinvarianz(dimension int) *Pfadinvarianz {
	return &Pfadinvarianz{
		dimension: dimension,
		perms:     generatePermutations(dimension),
	}
}

// NewDefaultPfadinvarianz builds the projection for the pipeline dimension.
func NewDefaultPfadinvarianz() *Pfadinvarianz {
	return NewPfadinvarianz(omega.Dimension)
}

// Apply averages the vector over the permutation set. Vectors of a different
// length than the construction dimension pass through unchanged.
func (p *Pfadinvarianz) Apply(v omega.Vector) omega.Vector {
	if len(v) != p.dimension || len(p.perms) == 0 {
		return v.Clone()
	}

	result := make(omega.Vector, p.dimension)
	for _, perm := range p.perms {
		for i, j := range perm {
			result[i] += v[j]
		}
	}
	share := 1.0 / float64(len(p.perms))
	for i := range result {
		result[i] *= share
	}
	return result
}

// PermutationCount returns the size of the permutation set for the
// construction dimension.
func (p *Pfadinvarianz) PermutationCount() int {
	return len(p.perms)
}

// generatePermutations returns the fixed permutation set for one dimension:
// identity, dimension-1 cyclic shifts, one reversal, dimension-1 adjacent
// swaps, and for dimension >= 3 one 3-cycle rotating the first three indices.
func generatePermutations(dimension int) [][]int {
	if dimension == 0 {
		return nil
	}

	var perms [][]int

	identity := make([]int, dimension)
	for i := range identity {
		identity[i] = i
	}
	perms = append(perms, identity)

	for shift := 1; shift < dimension; shift++ {
		perm := make([]int, dimension)
		for i := range perm {
			perm[i] = (i + shift) % dimension
		}
		perms = append(perms, perm)
	}

	reversal := make([]int, dimension)
	for i := range reversal {
		reversal[i] = dimension - 1 - i
	}
	perms = append(perms, reversal)

	for i := 0; i < dimension-1; i++ {
		perm := make([]int, dimension)
		copy(perm, identity)
		perm[i], perm[i+1] = perm[i+1], perm[i]
		perms = append(perms, perm)
	}

	if dimension >= 3 {
		perm := make([]int, dimension)
		copy(perm, identity)
		perm[0], perm[1], perm[2] = 1, 2, 0
		perms = append(perms, perm)
	}

	return perms
}

// Name implements omega.Operator.
func (p *Pfadinvarianz) Name() string { return "Pfadinvarianz" }

// LipschitzBound implements omega.Operator. Averaging over permutations never
// increases the norm.
func (p *Pfadinvarianz) LipschitzBound() float64 { return 1.0 }
