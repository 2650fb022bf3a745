package relay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/LashSesh/omega-protocol/crypto"
	"github.com/LashSesh/omega-protocol/omega"
)

// maxQueuePerNode caps the per-node delivery backlog. Nodes that stop polling
// lose their oldest envelopes first.
const maxQueuePerNode = 1024

// nodeState tracks one registered node: its key material, pending delivery
// queue and any live websocket subscriptions.
type nodeState struct {
	exchangeKey crypto.ExchangePublicKey
	token       crypto.SharedKey
	queue       []*omega.Envelope
	subscribers []chan *omega.Envelope
}

// Relay is the store-and-forward core. Every submitted envelope is archived
// and appended to the delivery queue of every registered node; the relay
// never inspects vector content beyond signature verification.
type Relay struct {
	log   *slog.Logger
	store EnvelopeStore

	signingKey  crypto.PrivateKey
	publicKey   crypto.PublicKey
	exchangeKey crypto.ExchangePrivateKey
	exchangePub crypto.ExchangePublicKey

	mu    sync.Mutex
	nodes map[string]*nodeState
	seen  map[uuid.UUID]struct{}
}

// New creates a relay with fresh key material.
func New(log *slog.Logger, store EnvelopeStore) (*Relay, error) {
	publicKey, signingKey, err := crypto.GenerateKeyPair()
	if err != nil {
		return nil, fmt.Errorf("generating signing keypair: %w", err)
	}
	exchangePub, exchangeKey, err := crypto.GenerateExchangeKeyPair()
	if err != nil {
		return nil, fmt.Errorf("generating exchange keypair: %w", err)
	}

	return &Relay{
		log:         log,
		store:       store,
		signingKey:  signingKey,
		publicKey:   publicKey,
		exchangeKey: exchangeKey,
		exchangePub: exchangePub,
		nodes:       make(map[string]*nodeState),
		seen:        make(map[uuid.UUID]struct{}),
	}, nil
}

// PublicKey returns the relay's signing public key.
func (rl *Relay) PublicKey() crypto.PublicKey {
	return rl.publicKey
}

// ExchangePublicKey returns the relay's X25519 public key; registered nodes
// combine it with their own exchange key to derive the shared poll token.
func (rl *Relay) ExchangePublicKey() crypto.ExchangePublicKey {
	return rl.exchangePub
}

// Register adds a node after verifying the registration signature. It returns
// the relay's exchange public key so the node can derive the same poll token.
// Re-registering replaces the node's key material but keeps its queue.
func (rl *Relay) Register(ctx context.Context, signed *omega.Signed[omega.RegistrationRequest]) (crypto.ExchangePublicKey, error) {
	req, signer, err := signed.Recover()
	if err != nil {
		return crypto.ExchangePublicKey{}, fmt.Errorf("invalid registration signature: %w", err)
	}

	token, err := crypto.DerivePollToken(rl.exchangeKey, req.ExchangePublicKey)
	if err != nil {
		return crypto.ExchangePublicKey{}, fmt.Errorf("deriving poll token: %w", err)
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	key := signer.String()
	state, ok := rl.nodes[key]
	if !ok {
		state = &nodeState{}
		rl.nodes[key] = state
	}
	state.exchangeKey = req.ExchangePublicKey
	state.token = token

	rl.log.Info("node registered", "node", key)
	return rl.exchangePub, nil
}

// Submit verifies and archives an envelope, then fans it out to every
// registered node. Duplicate envelope IDs are dropped silently.
func (rl *Relay) Submit(ctx context.Context, signed *omega.Signed[omega.Envelope]) error {
	env, signer, err := signed.Recover()
	if err != nil {
		return fmt.Errorf("invalid envelope signature: %w", err)
	}
	if len(env.Vector) != omega.Dimension {
		return fmt.Errorf("%w: envelope vector has dimension %d, want %d",
			omega.ErrParameter, len(env.Vector), omega.Dimension)
	}

	rl.mu.Lock()
	if _, dup := rl.seen[env.ID]; dup {
		rl.mu.Unlock()
		return nil
	}
	rl.seen[env.ID] = struct{}{}

	var fanout int
	for _, state := range rl.nodes {
		state.queue = append(state.queue, env)
		if len(state.queue) > maxQueuePerNode {
			state.queue = state.queue[len(state.queue)-maxQueuePerNode:]
		}
		for _, sub := range state.subscribers {
			select {
			case sub <- env:
			default:
			}
		}
		fanout++
	}
	rl.mu.Unlock()

	if err := rl.store.SaveEnvelope(signed); err != nil {
		rl.log.Error("archiving envelope failed", "err", err, "id", env.ID)
	}

	rl.log.Debug("envelope accepted", "id", env.ID, "sender", signer.String(), "fanout", fanout)
	return nil
}

// Poll returns the oldest queued envelope for the node, if any. The caller
// must present the poll token derived at registration; knowing a node's
// public key alone is not enough to drain its queue. The second return value
// reports whether an envelope was available.
func (rl *Relay) Poll(ctx context.Context, node crypto.PublicKey, token crypto.SharedKey) (*omega.Envelope, bool, error) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	state, ok := rl.nodes[node.String()]
	if !ok {
		return nil, false, errors.New("node not registered")
	}
	if !state.token.Equal(token) {
		return nil, false, errors.New("invalid poll token")
	}
	if len(state.queue) == 0 {
		return nil, false, nil
	}

	env := state.queue[0]
	state.queue = state.queue[1:]
	return env, true, nil
}

// Subscribe attaches a push channel for the node, subject to the same poll
// token check as Poll. Envelopes submitted after the subscription are
// delivered to the channel as well as the poll queue; slow subscribers miss
// envelopes rather than block the relay.
func (rl *Relay) Subscribe(node crypto.PublicKey, token crypto.SharedKey) (<-chan *omega.Envelope, func(), error) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	state, ok := rl.nodes[node.String()]
	if !ok {
		return nil, nil, errors.New("node not registered")
	}
	if !state.token.Equal(token) {
		return nil, nil, errors.New("invalid poll token")
	}

	ch := make(chan *omega.Envelope, 64)
	state.subscribers = append(state.subscribers, ch)

	cancel := func() {
		rl.mu.Lock()
		defer rl.mu.Unlock()
		for i, sub := range state.subscribers {
			if sub == ch {
				state.subscribers = append(state.subscribers[:i], state.subscribers[i+1:]...)
				close(ch)
				return
			}
		}
	}
	return ch, cancel, nil
}

// QueueLen reports the backlog for a node, 0 for unknown nodes.
func (rl *Relay) QueueLen(node crypto.PublicKey) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	state, ok := rl.nodes[node.String()]
	if !ok {
		return 0
	}
	return len(state.queue)
}
