package omega

import (
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/LashSesh/omega-protocol/crypto"
)

// Signed provides authentication for relay messages.
// Security: Uses Ed25519 signatures. Assumes private keys are secure.
// Note: Signature covers serialized object + public key to prevent substitution.
type Signed[T any] struct {
	PublicKey crypto.PublicKey `json:"public_key"`
	Signature crypto.Signature `json:"signature"`
	Object    *T               `json:"object"`
}

// NewSigned creates a signed message.
func NewSigned[T any](privkey crypto.PrivateKey, obj *T) (*Signed[T], error) {
	pubkey, err := privkey.PublicKey()
	if err != nil {
		return nil, err
	}

	serializedData, err := SerializeMessage(obj)
	if err != nil {
		return nil, err
	}

	signature, err := crypto.Sign(privkey, append(serializedData, pubkey...))
	if err != nil {
		return nil, err
	}

	return &Signed[T]{
		PublicKey: pubkey,
		Signature: signature,
		Object:    obj,
	}, nil
}

// UnsafeObject returns the object without signature verification.
func (s *Signed[T]) UnsafeObject() *T {
	return s.Object
}

// Recover verifies the signature and returns the object and signer's public key.
func (s *Signed[T]) Recover() (*T, crypto.PublicKey, error) {
	serializedData, err := SerializeMessage(s.Object)
	if err != nil {
		return nil, nil, err
	}

	ok := s.Signature.Verify(s.PublicKey, append(serializedData, s.PublicKey...))
	if !ok {
		return nil, nil, errors.New("signature not valid")
	}

	return s.Object, s.PublicKey, nil
}

// Envelope is the unit a relay stores and forwards: one pipeline vector plus
// delivery metadata. The envelope deliberately carries no destination; the
// vector's spectral content is the only addressing there is.
type Envelope struct {
	// ID is assigned by the sender and used for relay-side deduplication.
	ID uuid.UUID `json:"id"`

	// Vector is the fully transformed pipeline output.
	Vector Vector `json:"vector"`

	// Epoch is the masking epoch the sender stamped the message under.
	Epoch uint64 `json:"epoch"`

	// SentAt is the sender's submission timestamp.
	SentAt time.Time `json:"sent_at"`
}

// NewEnvelope wraps a pipeline vector for relay submission.
func NewEnvelope(v Vector, epoch uint64) *Envelope {
	return &Envelope{
		ID:     uuid.New(),
		Vector: v.Clone(),
		Epoch:  epoch,
		SentAt: time.Now().UTC(),
	}
}

// RegistrationRequest announces a node to a relay. Registration is
// authenticated but carries no frequency: relays must stay unable to tell
// which frequencies a node listens on.
type RegistrationRequest struct {
	// ExchangePublicKey is the node's X25519 key for deriving the poll token.
	ExchangePublicKey crypto.ExchangePublicKey `json:"exchange_public_key"`
}

// UnmarshalMessage deserializes a message from JSON bytes.
func UnmarshalMessage[T any](data []byte) (*T, error) {
	var msg T
	err := json.Unmarshal(data, &msg)
	return &msg, err
}

// DecodeMessage deserializes a message from a JSON reader.
func DecodeMessage[T any](reader io.Reader) (*T, error) {
	var msg T
	err := json.NewDecoder(reader).Decode(&msg)
	return &msg, err
}

// SerializeMessage serializes a message to JSON bytes.
func SerializeMessage[T any](msg *T) ([]byte, error) {
	return json.Marshal(msg)
}
