package common

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	require.InDelta(t, 1.0, cfg.Node.Omega, 1e-12)
	require.Equal(t, time.Second, cfg.PollInterval)
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
node:
  omega: 2.5
  params:
    resonance:
      omega: 2.5
      epsilon: 0.3
    sweep:
      tau0: 0.5
      beta: 0.1
      schedule: linear
    weight_transfer:
      gamma: 0.3
      micro: 0.2
      meso: 0.5
      macro: 0.3
    double_kick:
      alpha1: 0.05
      alpha2: -0.03
relay_url: http://localhost:8080
poll_interval: 250ms
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.InDelta(t, 2.5, cfg.Node.Omega, 1e-12)
	require.InDelta(t, 0.3, cfg.Node.Params.Resonance.Epsilon, 1e-12)
	require.Equal(t, "linear", cfg.Node.Params.Sweep.Schedule)
	require.Equal(t, "http://localhost:8080", cfg.RelayURL)
	require.Equal(t, 250*time.Millisecond, cfg.PollInterval)
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("node:\n  omega: -1.0\n"), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadOrGenerateSigningKey(t *testing.T) {
	// Empty input generates a fresh key.
	generated, err := LoadOrGenerateSigningKey("")
	require.NoError(t, err)
	require.Len(t, generated.Bytes(), 64)

	// Round-trips through hex.
	loaded, err := LoadOrGenerateSigningKey(hex.EncodeToString(generated.Bytes()))
	require.NoError(t, err)
	require.Equal(t, generated.Bytes(), loaded.Bytes())

	_, err = LoadOrGenerateSigningKey("not hex")
	require.Error(t, err)
}

func TestLoadOrGenerateExchangeKey(t *testing.T) {
	generated, err := LoadOrGenerateExchangeKey("")
	require.NoError(t, err)

	loaded, err := LoadOrGenerateExchangeKey(hex.EncodeToString(generated[:]))
	require.NoError(t, err)
	require.Equal(t, generated, loaded)
	require.Equal(t, generated.PublicKey(), loaded.PublicKey())

	_, err = LoadOrGenerateExchangeKey("abcd")
	require.Error(t, err)
}
