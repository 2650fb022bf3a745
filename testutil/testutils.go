// Package testutil provides generators for tests across the repository.
package testutil

import (
	"crypto/rand"
	"io"
	"log/slog"
	"math"

	"github.com/LashSesh/omega-protocol/crypto"
	"github.com/LashSesh/omega-protocol/omega"
)

// =====================================
// Configuration Generators
// =====================================

// TestConfigOption is a function that modifies a NodeConfig
type TestConfigOption func(*omega.NodeConfig)

// WithFrequency sets the node's local resonance frequency
func WithFrequency(freq float64) TestConfigOption {
	return func(cfg *omega.NodeConfig) {
		cfg.Omega = freq
	}
}

// WithEpsilon sets the resonance bandwidth
func WithEpsilon(epsilon float64) TestConfigOption {
	return func(cfg *omega.NodeConfig) {
		cfg.Params.Resonance.Epsilon = epsilon
	}
}

// WithSchedule sets the sweep threshold schedule
func WithSchedule(schedule string) TestConfigOption {
	return func(cfg *omega.NodeConfig) {
		cfg.Params.Sweep.Schedule = schedule
	}
}

// WithGamma sets the weight transfer rate
func WithGamma(gamma float64) TestConfigOption {
	return func(cfg *omega.NodeConfig) {
		cfg.Params.WeightTransfer.Gamma = gamma
	}
}

// WithKickAmplitudes sets the double kick impulse amplitudes
func WithKickAmplitudes(alpha1, alpha2 float64) TestConfigOption {
	return func(cfg *omega.NodeConfig) {
		cfg.Params.DoubleKick.Alpha1 = alpha1
		cfg.Params.DoubleKick.Alpha2 = alpha2
	}
}

// NewTestConfig creates a node configuration with the reference defaults
// that can be customized using options
func NewTestConfig(options ...TestConfigOption) omega.NodeConfig {
	cfg := omega.DefaultNodeConfig()
	for _, option := range options {
		option(&cfg)
	}
	return cfg
}

// =====================================
// Crypto Generators
// =====================================

// GenerateRandomBytes generates a slice of random bytes with the specified length
func GenerateRandomBytes(length int) ([]byte, error) {
	bytes := make([]byte, length)
	_, err := rand.Read(bytes)
	if err != nil {
		return nil, err
	}
	return bytes, nil
}

// GenerateTestKeyPair generates a test key pair for testing
func GenerateTestKeyPair() (crypto.PublicKey, crypto.PrivateKey, error) {
	return crypto.GenerateKeyPair()
}

// =====================================
// Vector Generators
// =====================================

// GenerateToneVector returns a vector carrying a pure sinusoid at the given
// DFT bin, so its dominant frequency is exactly 2*pi*bin/Dimension.
func GenerateToneVector(bin int) omega.Vector {
	v := omega.NewVector(omega.Dimension)
	for t := range v {
		v[t] = math.Sin(2.0 * math.Pi * float64(bin) * float64(t) / float64(omega.Dimension))
	}
	return v
}

// GenerateTestEnvelope wraps a tone vector in a signed envelope.
func GenerateTestEnvelope(bin int, epoch uint64) (*omega.Signed[omega.Envelope], crypto.PublicKey) {
	pubKey, privKey, _ := GenerateTestKeyPair()
	env := omega.NewEnvelope(GenerateToneVector(bin), epoch)
	signed, _ := omega.NewSigned(privKey, env)
	return signed, pubKey
}

// DiscardLogger returns a logger that drops all records.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
