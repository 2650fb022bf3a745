// Package crypto provides the cryptographic primitives of the OMEGA protocol.
//
// This package implements:
//
//   - Ephemeral masking-parameter derivation from (frequency, epoch) pairs
//   - The theta-seeded XOR keystream used by the masking operator
//   - Digital signatures (Ed25519) for authenticating relay envelopes
//   - Key encapsulation (X25519 + HKDF) for relay submission tokens
//
// The masking keystream is a symmetric, self-inverse obscuring step, not a
// hardening primitive: OMEGA is explicitly not a cryptographically secure
// protocol, and the derivation here reproduces the designed contract
// (determinism plus involution) without claiming real security strength.
//
// # Ephemeral Parameters
//
// Masking parameters are never stored or exchanged. Any party holding the
// same (frequency, epoch) pair rederives identical parameters, which is what
// lets a receiver unmask without a key-exchange step. Rotating the epoch
// changes sigma with overwhelming probability and so invalidates prior masks.
package crypto
