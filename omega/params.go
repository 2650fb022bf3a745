package omega

// DefaultEpsilon is the reference resonance bandwidth.
const DefaultEpsilon = 0.1

// ResonanceParams controls the spectral matching band.
type ResonanceParams struct {
	// Omega is the target frequency.
	Omega float64 `json:"omega" yaml:"omega"`

	// Epsilon is the matching tolerance; must be positive. For short vectors
	// the frequency resolution is coarse (2*pi/Dimension steps), so Epsilon
	// is tuned relative to that resolution rather than to exact matches.
	Epsilon float64 `json:"epsilon" yaml:"epsilon"`
}

// SweepParams configures the time-varying threshold gate.
type SweepParams struct {
	// Tau0 is the base threshold.
	Tau0 float64 `json:"tau0" yaml:"tau0"`

	// Beta is the sigmoid gate width.
	Beta float64 `json:"beta" yaml:"beta"`

	// Schedule selects the threshold schedule, "cosine" or "linear". An
	// unknown name falls back to the constant base threshold.
	Schedule string `json:"schedule" yaml:"schedule"`
}

// WeightTransferParams configures the multi-scale recombination.
type WeightTransferParams struct {
	// Gamma is the transfer rate in [0, 1]: how fast weights drift toward
	// their targets per call.
	Gamma float64 `json:"gamma" yaml:"gamma"`

	// Micro, Meso and Macro are the initial weights per scale level. They
	// are intended to sum to 1 but the sum is not enforced.
	Micro float64 `json:"micro" yaml:"micro"`
	Meso  float64 `json:"meso" yaml:"meso"`
	Macro float64 `json:"macro" yaml:"macro"`
}

// DoubleKickParams configures the dual orthogonal perturbation. The
// perturbation magnitude is bounded by |Alpha1| + |Alpha2|.
type DoubleKickParams struct {
	Alpha1 float64 `json:"alpha1" yaml:"alpha1"`
	Alpha2 float64 `json:"alpha2" yaml:"alpha2"`
}

// OmegaParams aggregates the per-operator parameters of one node.
type OmegaParams struct {
	Resonance      ResonanceParams      `json:"resonance" yaml:"resonance"`
	Sweep          SweepParams          `json:"sweep" yaml:"sweep"`
	WeightTransfer WeightTransferParams `json:"weight_transfer" yaml:"weight_transfer"`
	DoubleKick     DoubleKickParams     `json:"double_kick" yaml:"double_kick"`
}

// NodeConfig configures one OMEGA node.
type NodeConfig struct {
	// Omega is the node's local resonance frequency; must be positive.
	Omega float64 `json:"omega" yaml:"omega"`

	// Params are the operator parameters.
	Params OmegaParams `json:"params" yaml:"params"`
}

// DefaultParams returns the reference operator parameters.
func DefaultParams() OmegaParams {
	return OmegaParams{
		Resonance: ResonanceParams{
			Omega:   1.0,
			Epsilon: DefaultEpsilon,
		},
		Sweep: SweepParams{
			Tau0:     0.5,
			Beta:     0.1,
			Schedule: "cosine",
		},
		WeightTransfer: WeightTransferParams{
			Gamma: 0.3,
			Micro: 0.2,
			Meso:  0.5,
			Macro: 0.3,
		},
		DoubleKick: DoubleKickParams{
			Alpha1: 0.05,
			Alpha2: -0.03,
		},
	}
}

// DefaultNodeConfig returns a node configuration with the reference defaults
// and local frequency 1.0.
func DefaultNodeConfig() NodeConfig {
	return NodeConfig{
		Omega:  1.0,
		Params: DefaultParams(),
	}
}

// Validate checks the configuration invariants.
func (c *NodeConfig) Validate() error {
	if c.Omega <= 0 {
		return errParam("node frequency must be positive, got %v", c.Omega)
	}
	if c.Params.Resonance.Epsilon <= 0 {
		return errParam("resonance epsilon must be positive, got %v", c.Params.Resonance.Epsilon)
	}
	if c.Params.WeightTransfer.Gamma < 0 || c.Params.WeightTransfer.Gamma > 1 {
		return errParam("weight transfer gamma must be in [0, 1], got %v", c.Params.WeightTransfer.Gamma)
	}
	if c.Params.Sweep.Beta == 0 {
		return errParam("sweep beta must be non-zero")
	}
	return nil
}
