// Package common provides shared utilities for OMEGA CLI commands.
//
// This package contains helper functions used across the standalone service
// binaries (relay, node, demo-cli) to reduce code duplication:
//
//   - Key loading and generation for Ed25519 signing and X25519 exchange keys
//   - YAML configuration loading with reference defaults
//   - Logger construction
package common

import (
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/LashSesh/omega-protocol/crypto"
	"github.com/LashSesh/omega-protocol/omega"
)

// Config is the YAML configuration shared by the node binaries.
type Config struct {
	// Node holds the local frequency and operator parameters.
	Node omega.NodeConfig `yaml:"node"`

	// RelayURL is the base URL of the relay service. Empty means the binary
	// runs with an in-process memory buffer instead.
	RelayURL string `yaml:"relay_url"`

	// PollInterval is how often a listening node polls the relay.
	PollInterval time.Duration `yaml:"poll_interval"`
}

// DefaultConfig returns a configuration with the reference operator
// parameters and a one second poll interval.
func DefaultConfig() Config {
	return Config{
		Node:         omega.DefaultNodeConfig(),
		PollInterval: time.Second,
	}
}

// LoadConfig reads a YAML configuration file, layering it over the defaults.
// An empty path returns the defaults unchanged.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config file: %w", err)
	}
	if err := cfg.Node.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// LoadOrGenerateSigningKey loads an Ed25519 private key from a hex string,
// or generates a new key pair if hexKey is empty.
func LoadOrGenerateSigningKey(hexKey string) (crypto.PrivateKey, error) {
	if hexKey != "" {
		keyBytes, err := hex.DecodeString(hexKey)
		if err != nil {
			return nil, fmt.Errorf("invalid hex: %w", err)
		}
		return crypto.NewPrivateKeyFromBytes(keyBytes), nil
	}
	_, privKey, err := crypto.GenerateKeyPair()
	return privKey, err
}

// LoadOrGenerateExchangeKey loads an X25519 private key from a hex string,
// or generates a new key pair if hexKey is empty.
func LoadOrGenerateExchangeKey(hexKey string) (crypto.ExchangePrivateKey, error) {
	if hexKey != "" {
		keyBytes, err := hex.DecodeString(hexKey)
		if err != nil {
			return crypto.ExchangePrivateKey{}, fmt.Errorf("invalid hex: %w", err)
		}
		if len(keyBytes) != 32 {
			return crypto.ExchangePrivateKey{}, fmt.Errorf("exchange key must be 32 bytes, got %d", len(keyBytes))
		}
		var key crypto.ExchangePrivateKey
		copy(key[:], keyBytes)
		return key, nil
	}
	_, privKey, err := crypto.GenerateExchangeKeyPair()
	return privKey, err
}

// NewLogger creates a structured logger writing to stderr.
func NewLogger(json, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if json {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
