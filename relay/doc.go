// Package relay implements the OMEGA relay service: a store-and-forward hub
// that accepts signed envelopes from senders and fans them out to every
// registered node.
//
// The relay is deliberately blind. Envelopes carry no destination and the
// relay never learns which frequencies a node listens on; it delivers every
// envelope to every node and leaves the resonance test to the receivers.
// This makes the relay a broadcast medium with authentication, not a router.
//
// # Endpoints
//
//   - POST /relay/register: announce a node (signed registration request)
//   - POST /relay/submit: submit a signed envelope for broadcast
//   - GET  /relay/poll:    fetch the next queued envelope for a node
//   - GET  /relay/ws:      websocket push of envelopes as they arrive
//
// Submitted envelopes are archived through an EnvelopeStore (PostgreSQL in
// production, in-memory for tests) in addition to the per-node delivery
// queues.
package relay
