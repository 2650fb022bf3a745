package operators

import (
	"fmt"

	"github.com/LashSesh/omega-protocol/crypto"
	"github.com/LashSesh/omega-protocol/omega"
)

// Masking obscures raw message bytes before vectorization. It composes two
// self-inverse XOR layers: a bytewise XOR with the sigma seed (applied
// cyclically) and an XOR with the theta-seeded keystream. Both layers are
// involutions, so Unmask is the same operation as Mask.
type Masking struct{}

// NewMasking creates the masking operator. The operator itself is stateless;
// all variability lives in the per-message parameters.
func NewMasking() *Masking {
	return &Masking{}
}

// Mask obscures message bytes under the given parameters. Masking an already
// masked message with the same parameters restores the original.
func (m *Masking) Mask(message []byte, params crypto.MaskingParams) ([]byte, error) {
	result := make([]byte, len(message))
	copy(result, message)

	// Layer 1: cyclic sigma XOR
	for i := range result {
		result[i] ^= params.Sigma[i%crypto.SigmaSize]
	}

	// Layer 2: theta-seeded keystream XOR
	stream, err := crypto.Keystream(params, len(result))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", omega.ErrMasking, err)
	}
	for i := range result {
		result[i] ^= stream[i]
	}

	return result, nil
}

// Unmask recovers the original message. Identical to Mask by the involution
// property.
func (m *Masking) Unmask(masked []byte, params crypto.MaskingParams) ([]byte, error) {
	return m.Mask(masked, params)
}

// Name implements omega.Operator.
func (m *Masking) Name() string { return "Masking" }

// LipschitzBound implements omega.Operator. XOR masking is isometric.
func (m *Masking) LipschitzBound() float64 { return 1.0 }
