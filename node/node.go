package node

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/LashSesh/omega-protocol/crypto"
	"github.com/LashSesh/omega-protocol/omega"
	"github.com/LashSesh/omega-protocol/operators"
	"github.com/LashSesh/omega-protocol/transport"
)

// epochSetter is implemented by transports that stamp epochs on outgoing
// envelopes, such as the relay client.
type epochSetter interface {
	SetEpoch(epoch uint64)
}

// OmegaNode is one participant of the OMEGA network. All pipeline state
// (stateful operators, epoch, frequency) sits behind one mutex; Send and
// Receive serialize against each other.
type OmegaNode struct {
	log *slog.Logger

	mu sync.Mutex

	masking        *operators.Masking
	resonance      *operators.Resonance
	sweep          *operators.Sweep
	pfadinvarianz  *operators.Pfadinvarianz
	weightTransfer *operators.WeightTransfer
	doubleKick     *operators.DoubleKick

	localFrequency float64
	epsilon        float64
	epoch          uint64

	transport omega.Transport
}

// New creates a node from a validated configuration. A nil transport gets an
// in-process memory buffer, which is enough for single-process topologies and
// tests.
func New(log *slog.Logger, cfg omega.NodeConfig, tr omega.Transport) (*OmegaNode, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid node config: %w", err)
	}
	if tr == nil {
		tr = transport.NewMemoryBuffer()
	}

	return &OmegaNode{
		log:            log,
		masking:        operators.NewMasking(),
		resonance:      operators.NewResonanceWithEpsilon(cfg.Omega, cfg.Params.Resonance.Epsilon),
		sweep:          operators.NewSweepFromParams(cfg.Params.Sweep),
		pfadinvarianz:  operators.NewDefaultPfadinvarianz(),
		weightTransfer: operators.NewWeightTransferFromParams(cfg.Params.WeightTransfer),
		doubleKick:     operators.NewDoubleKickFromParams(cfg.Params.DoubleKick),
		localFrequency: cfg.Omega,
		epsilon:        cfg.Params.Resonance.Epsilon,
		transport:      tr,
	}, nil
}

// SendMessage pushes a message through the forward pipeline toward the
// target frequency and hands the result to the transport.
func (n *OmegaNode) SendMessage(ctx context.Context, message []byte, targetFreq float64) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	// Layer 0: mask raw bytes under the ephemeral key for (freq, epoch)
	params := crypto.EphemeralParams(targetFreq, n.epoch)
	masked, err := n.masking.Mask(message, params)
	if err != nil {
		return fmt.Errorf("masking message: %w", err)
	}

	// Project into the vector space
	v, err := omega.Vectorize(masked)
	if err != nil {
		return fmt.Errorf("vectorizing message: %w", err)
	}

	// Layer 1: stamp the target frequency
	v = omega.StampFrequency(v, targetFreq)

	// Layers 2..5: sweep gate, path projection, multi-scale recombination,
	// equilibrium kick
	v = n.sweep.Transform(v)
	v = n.pfadinvarianz.Apply(v)
	v = n.weightTransfer.Transform(v)
	v = n.doubleKick.Apply(v)

	if err := n.transport.Send(ctx, v); err != nil {
		return fmt.Errorf("%w: %v", omega.ErrNetwork, err)
	}

	n.log.Debug("message sent", "targetFreq", targetFreq, "epoch", n.epoch)
	return nil
}

// ReceiveMessage polls the transport once. It returns (nil, nil) both when no
// vector is queued and when the queued vector does not resonate with the
// local frequency; only transport and codec failures surface as errors.
func (n *OmegaNode) ReceiveMessage(ctx context.Context) ([]byte, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	v, ok, err := n.transport.Poll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", omega.ErrNetwork, err)
	}
	if !ok {
		return nil, nil
	}
	if len(v) != omega.Dimension {
		return nil, fmt.Errorf("%w: polled vector has dimension %d, want %d",
			omega.ErrResonance, len(v), omega.Dimension)
	}

	// Re-project onto the path-invariant subspace; the forward kick and
	// recombination need no explicit inverse.
	v = n.pfadinvarianz.Apply(v)

	// Resonance gate against the local frequency
	if !n.resonance.IsResonant(v) {
		n.log.Debug("vector not resonant, dropped", "localFreq", n.localFrequency)
		return nil, nil
	}

	masked := omega.Devectorize(v)

	params := crypto.EphemeralParams(n.localFrequency, n.epoch)
	message, err := n.masking.Unmask(masked, params)
	if err != nil {
		return nil, fmt.Errorf("unmasking message: %w", err)
	}

	n.log.Debug("message received", "localFreq", n.localFrequency, "epoch", n.epoch)
	return message, nil
}

// OmegaTransformation applies the composite vector operator: kick,
// recombination, projection, sweep gate and resonance gate in sequence.
// Masking operates on bytes and is not part of the vector composition.
func (n *OmegaNode) OmegaTransformation(v omega.Vector) omega.Vector {
	n.mu.Lock()
	defer n.mu.Unlock()

	v1 := n.doubleKick.Apply(v)
	v1 = n.weightTransfer.Transform(v1)
	v2 := n.pfadinvarianz.Apply(v1)
	v3 := n.sweep.Transform(v2)
	return n.resonance.Apply(v3)
}

// AdvanceEpoch rotates the masking key epoch. Sender and receiver must
// advance in lockstep; the protocol assumes synchronized epochs and never
// transmits them.
func (n *OmegaNode) AdvanceEpoch() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.epoch++
	if setter, ok := n.transport.(epochSetter); ok {
		setter.SetEpoch(n.epoch)
	}
}

// Epoch returns the current masking epoch.
func (n *OmegaNode) Epoch() uint64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.epoch
}

// SetFrequency retunes the node's local resonance frequency.
func (n *OmegaNode) SetFrequency(freq float64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.localFrequency = freq
	n.resonance = operators.NewResonanceWithEpsilon(freq, n.epsilon)
}

// Frequency returns the local resonance frequency.
func (n *OmegaNode) Frequency() float64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.localFrequency
}

// Transport returns the node's transport.
func (n *OmegaNode) Transport() omega.Transport {
	return n.transport
}

// TransferMessageTo moves the most recent vector from this node's buffer to
// another node's buffer. Both nodes must use memory-buffer transports; the
// helper simulates one network hop in tests and demos.
func (n *OmegaNode) TransferMessageTo(other *OmegaNode) error {
	src, ok := n.transport.(*transport.MemoryBuffer)
	if !ok {
		return fmt.Errorf("%w: source transport is not a memory buffer", omega.ErrParameter)
	}
	dst, ok := other.transport.(*transport.MemoryBuffer)
	if !ok {
		return fmt.Errorf("%w: destination transport is not a memory buffer", omega.ErrParameter)
	}
	src.TransferTo(dst)
	return nil
}
