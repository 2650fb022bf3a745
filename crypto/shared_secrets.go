package crypto

import (
	"crypto/rand"
	"crypto/sha256"

	"golang.org/x/crypto/curve25519"
	"golang.org/x/crypto/hkdf"
)

// ExchangePublicKey represents a public key for relay token exchange
type ExchangePublicKey [32]byte

// ExchangePrivateKey represents a private key for relay token exchange
type ExchangePrivateKey [32]byte

// GenerateExchangeKeyPair generates a new X25519 key pair for deriving
// per-node relay tokens
func GenerateExchangeKeyPair() (ExchangePublicKey, ExchangePrivateKey, error) {
	var privKey ExchangePrivateKey
	var pubKey ExchangePublicKey

	if _, err := rand.Read(privKey[:]); err != nil {
		return pubKey, privKey, err
	}

	curve25519.ScalarBaseMult((*[32]byte)(&pubKey), (*[32]byte)(&privKey))
	return pubKey, privKey, nil
}

// pollTokenInfo is the HKDF info string for relay poll tokens.
var pollTokenInfo = []byte("omega/relay/poll-token/v1")

// DerivePollToken derives the token a node presents when polling a relay.
// The relay calls this with its private key and the node's public key, the
// node with its private key and the relay's public key; both sides arrive at
// the same token and the relay accepts polls only when the presented token
// matches.
func DerivePollToken(privateKey ExchangePrivateKey, publicKey ExchangePublicKey) (SharedKey, error) {
	return DeriveSharedSecret(privateKey, publicKey, pollTokenInfo)
}

// PublicKey derives the X25519 public key for this private key.
func (sk ExchangePrivateKey) PublicKey() ExchangePublicKey {
	var pubKey ExchangePublicKey
	curve25519.ScalarBaseMult((*[32]byte)(&pubKey), (*[32]byte)(&sk))
	return pubKey
}

// DeriveSharedSecret performs ECDH key agreement and derives a shared secret.
// A relay and a node each call this with their own private key and the other
// party's public key; both arrive at the same token material.
func DeriveSharedSecret(privateKey ExchangePrivateKey, publicKey ExchangePublicKey, info []byte) (SharedKey, error) {
	// Perform X25519 key agreement
	var sharedPoint [32]byte
	curve25519.ScalarMult(&sharedPoint, (*[32]byte)(&privateKey), (*[32]byte)(&publicKey))

	// Derive key using HKDF
	hkdf := hkdf.New(sha256.New, sharedPoint[:], nil, info)
	secret := make([]byte, 32)
	if _, err := hkdf.Read(secret); err != nil {
		return nil, err
	}

	return SharedKey(secret), nil
}
