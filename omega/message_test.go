package omega

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/LashSesh/omega-protocol/crypto"
)

func TestSignedRoundTrip(t *testing.T) {
	_, privKey, err := crypto.GenerateKeyPair()
	require.NoError(t, err)

	env := NewEnvelope(Vector{0.1, 0.2, 0.3, 0.4, 0.5}, 7)
	signed, err := NewSigned(privKey, env)
	require.NoError(t, err)

	// Serialize and deserialize as a relay would.
	data, err := SerializeMessage(signed)
	require.NoError(t, err)
	decoded, err := UnmarshalMessage[Signed[Envelope]](data)
	require.NoError(t, err)

	recovered, signer, err := decoded.Recover()
	require.NoError(t, err)
	require.Equal(t, env.ID, recovered.ID)
	require.Equal(t, env.Vector, recovered.Vector)
	require.Equal(t, env.Epoch, recovered.Epoch)

	expectedSigner, err := privKey.PublicKey()
	require.NoError(t, err)
	require.True(t, signer.Equal(expectedSigner))
}

func TestSignedTamperedObjectFails(t *testing.T) {
	_, privKey, err := crypto.GenerateKeyPair()
	require.NoError(t, err)

	env := NewEnvelope(Vector{0.1, 0.2, 0.3, 0.4, 0.5}, 0)
	signed, err := NewSigned(privKey, env)
	require.NoError(t, err)

	signed.Object.Epoch = 99
	_, _, err = signed.Recover()
	require.Error(t, err)
}

func TestSignedSubstitutedKeyFails(t *testing.T) {
	_, privKey, err := crypto.GenerateKeyPair()
	require.NoError(t, err)
	otherPub, _, err := crypto.GenerateKeyPair()
	require.NoError(t, err)

	env := NewEnvelope(Vector{0.1, 0.2, 0.3, 0.4, 0.5}, 0)
	signed, err := NewSigned(privKey, env)
	require.NoError(t, err)

	signed.PublicKey = otherPub
	_, _, err = signed.Recover()
	require.Error(t, err)
}

func TestNewEnvelopeClonesVector(t *testing.T) {
	v := Vector{1.0, 2.0, 3.0, 4.0, 5.0}
	env := NewEnvelope(v, 0)

	v[0] = 99.0
	require.InDelta(t, 1.0, env.Vector[0], 1e-12)
	require.NotEqual(t, "00000000-0000-0000-0000-000000000000", env.ID.String())
}
