// Package omega defines the core types and interfaces of the OMEGA protocol,
// an address-free messaging scheme in which senders stamp messages with a
// target frequency instead of a destination identifier.
//
// # OMEGA Architecture and Workflow
//
// OMEGA has no routing layer. A sender runs its message through a fixed
// pipeline of six deterministic operators and hands the resulting vector to a
// broadcast transport; every receiver polls the same transport and keeps only
// vectors whose dominant spectral component resonates with its own frequency:
//
//  1. Masking: a self-inverse byte transform (XOR permutation plus a
//     theta-seeded keystream) obscures the message content. Masking parameters
//     are rederived from (frequency, epoch) on both ends, so no key exchange
//     takes place.
//
//  2. Vectorization: the masked bytes are projected into a fixed-dimension
//     real vector and stamped with a sinusoid at the target frequency.
//
//  3. Resilience operators: a time-varying sigmoid gate (Sweep), a
//     permutation-average projection (Pfadinvarianz), a multi-scale convex
//     recombination (WeightTransfer) and a dual orthogonal random perturbation
//     (DoubleKick) condition the vector for broadcast.
//
// On reception the receiver reapplies the projection, tests resonance against
// its local frequency within an epsilon band, and unmasks. Non-resonant
// vectors are dropped silently: frequency filtering is the normal outcome,
// not an error.
//
// Each operator carries a declared Lipschitz bound so the composed pipeline
// stays bounded; only DoubleKick exceeds 1.0, by the sum of its impulse
// magnitudes.
//
// The transport is abstracted behind the Transport interface. The reference
// transport is an in-memory LIFO buffer; the relay packages provide an HTTP
// broadcast medium with the same contract.
//
// Epoch synchronization between sender and receiver is assumed, never
// negotiated. Rotating the epoch invalidates masks derived under the previous
// one.
package omega
