package crypto

import (
	"crypto/sha256"
	"encoding/binary"
	"math"
)

// SigmaSize is the length of the masking permutation seed in bytes.
const SigmaSize = 32

// MaskingParams carries the parameters of one masking application: a phase
// angle in [0, 2*pi) and a 256-bit permutation seed. Identical parameters on
// sender and receiver are required for correct unmasking; both derive them
// from the same (frequency, epoch) pair instead of exchanging them.
type MaskingParams struct {
	// Theta is the phase rotation parameter in [0, 2*pi). It seeds the
	// pseudo-random XOR stream.
	Theta float64

	// Sigma is the permutation seed XORed bytewise over the message.
	Sigma [SigmaSize]byte
}

// EphemeralParams derives masking parameters from a frequency and an epoch.
//
// The derivation hashes the little-endian bit patterns of both inputs with
// SHA-256; the full digest becomes sigma and the first 8 digest bytes,
// read as an unsigned integer and scaled to [0, 2*pi), become theta. Equal
// inputs always produce equal parameters; a different epoch at the same
// frequency produces a different sigma with overwhelming probability.
func EphemeralParams(freq float64, epoch uint64) MaskingParams {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[0:8], math.Float64bits(freq))
	binary.LittleEndian.PutUint64(buf[8:16], epoch)
	digest := sha256.Sum256(buf[:])

	var p MaskingParams
	p.Sigma = digest

	thetaBits := binary.LittleEndian.Uint64(digest[:8])
	p.Theta = float64(thetaBits) / float64(math.MaxUint64) * 2.0 * math.Pi
	return p
}
