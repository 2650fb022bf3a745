package omega

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaultNodeConfigValid(t *testing.T) {
	cfg := DefaultNodeConfig()
	require.NoError(t, cfg.Validate())
	require.InDelta(t, 1.0, cfg.Omega, 1e-12)
	require.Equal(t, "cosine", cfg.Params.Sweep.Schedule)
}

func TestValidateRejectsBadConfigs(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*NodeConfig)
	}{
		{"zero frequency", func(c *NodeConfig) { c.Omega = 0 }},
		{"negative frequency", func(c *NodeConfig) { c.Omega = -1.5 }},
		{"zero epsilon", func(c *NodeConfig) { c.Params.Resonance.Epsilon = 0 }},
		{"negative epsilon", func(c *NodeConfig) { c.Params.Resonance.Epsilon = -0.1 }},
		{"gamma above one", func(c *NodeConfig) { c.Params.WeightTransfer.Gamma = 1.5 }},
		{"negative gamma", func(c *NodeConfig) { c.Params.WeightTransfer.Gamma = -0.1 }},
		{"zero beta", func(c *NodeConfig) { c.Params.Sweep.Beta = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultNodeConfig()
			tc.mutate(&cfg)
			require.ErrorIs(t, cfg.Validate(), ErrParameter)
		})
	}
}

func TestNodeConfigYAMLRoundTrip(t *testing.T) {
	cfg := DefaultNodeConfig()
	cfg.Omega = 2.5

	data, err := yaml.Marshal(&cfg)
	require.NoError(t, err)

	var decoded NodeConfig
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	require.Equal(t, cfg, decoded)
}
