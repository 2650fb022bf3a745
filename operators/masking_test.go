package operators

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/LashSesh/omega-protocol/crypto"
)

func TestMaskingInvolution(t *testing.T) {
	op := NewMasking()
	message := []byte("Hello, OMEGA Protocol!")
	params := crypto.MaskingParams{Theta: 1.234}
	for i := range params.Sigma {
		params.Sigma[i] = 42
	}

	masked, err := op.Mask(message, params)
	require.NoError(t, err)
	require.NotEqual(t, message, masked)

	unmasked, err := op.Unmask(masked, params)
	require.NoError(t, err)
	require.Equal(t, message, unmasked)
}

func TestMaskingParameterSensitivity(t *testing.T) {
	op := NewMasking()
	message := []byte("same plaintext, different keys")

	a, err := op.Mask(message, crypto.EphemeralParams(1.5, 1))
	require.NoError(t, err)
	b, err := op.Mask(message, crypto.EphemeralParams(1.5, 2))
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestMaskingWrongEpochFailsToRecover(t *testing.T) {
	op := NewMasking()
	message := []byte("epoch-bound secret")

	masked, err := op.Mask(message, crypto.EphemeralParams(2.5, 10))
	require.NoError(t, err)

	garbled, err := op.Unmask(masked, crypto.EphemeralParams(2.5, 11))
	require.NoError(t, err)
	require.NotEqual(t, message, garbled)
}

func TestMaskingEmptyMessage(t *testing.T) {
	op := NewMasking()

	masked, err := op.Mask([]byte{}, crypto.EphemeralParams(1.0, 0))
	require.NoError(t, err)
	require.Empty(t, masked)
}

func TestMaskingDoesNotMutateInput(t *testing.T) {
	op := NewMasking()
	message := []byte{1, 2, 3, 4}
	original := append([]byte(nil), message...)

	_, err := op.Mask(message, crypto.EphemeralParams(0.5, 0))
	require.NoError(t, err)
	require.Equal(t, original, message)
}

func TestMaskingLongMessage(t *testing.T) {
	op := NewMasking()
	message := make([]byte, 1<<15)
	for i := range message {
		message[i] = byte(i)
	}
	params := crypto.EphemeralParams(3.3, 7)

	masked, err := op.Mask(message, params)
	require.NoError(t, err)
	unmasked, err := op.Unmask(masked, params)
	require.NoError(t, err)
	require.Equal(t, message, unmasked)
}
