// Package operators implements the six transforms of the OMEGA pipeline.
//
// Each operator is a deterministic vector or byte transform with a published
// numeric guarantee, and the guarantees compose into a bounded end-to-end
// pipeline:
//
//   - Masking: self-inverse XOR obscuring of raw message bytes (isometric,
//     Lipschitz 1)
//   - Resonance: spectral gate that passes a vector only when its dominant
//     discrete Fourier frequency falls within an epsilon band of the target
//     (non-expansive)
//   - Sweep: adaptive threshold filter with a scheduled, time-varying
//     threshold and a sigmoid gate (non-expansive, stateful)
//   - Pfadinvarianz: path-invariant averaging over a fixed permutation set,
//     contracting toward the component mean (non-expansive)
//   - WeightTransfer: convex multi-scale recombination with exponentially
//     adapting weights (non-expansive for weights summing to at most 1)
//   - DoubleKick: bounded dual orthogonal perturbation (Lipschitz 1 + eta)
//
// Operators that carry state (Sweep, WeightTransfer) mutate it on every
// transform call and are not safe for concurrent use; callers serialize
// access, as the node does.
//
// # Composition Contract
//
// The send pipeline applies Sweep, Pfadinvarianz, WeightTransfer and
// DoubleKick after frequency stamping; the receive pipeline applies
// Pfadinvarianz and the Resonance gate before unmasking. Every operator
// except DoubleKick has Lipschitz bound 1, so the pipeline's distortion is
// bounded by the kick magnitude eta, small enough that the stamped dominant
// frequency survives to the receiver's spectral test.
package operators
