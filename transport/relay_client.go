package transport

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/atomic"

	"github.com/LashSesh/omega-protocol/crypto"
	"github.com/LashSesh/omega-protocol/omega"
	"github.com/LashSesh/omega-protocol/relay"
)

// RelayClient is an omega.Transport backed by a relay service. Send wraps the
// vector in a signed envelope and submits it; Poll fetches the next envelope
// queued for this node.
type RelayClient struct {
	baseURL    string
	httpClient *http.Client

	signingKey crypto.PrivateKey
	publicKey  crypto.PublicKey

	exchangeKey crypto.ExchangePrivateKey
	exchangePub crypto.ExchangePublicKey

	// token is the poll token shared with the relay, derived at registration.
	token crypto.SharedKey

	epoch atomic.Uint64
}

// NewRelayClient creates a client for the relay at baseURL, authenticating as
// the given signing key. Register must be called before Send or Poll.
func NewRelayClient(baseURL string, signingKey crypto.PrivateKey) (*RelayClient, error) {
	publicKey, err := signingKey.PublicKey()
	if err != nil {
		return nil, fmt.Errorf("deriving public key: %w", err)
	}
	exchangePub, exchangeKey, err := crypto.GenerateExchangeKeyPair()
	if err != nil {
		return nil, fmt.Errorf("generating exchange keypair: %w", err)
	}

	return &RelayClient{
		baseURL:     baseURL,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		signingKey:  signingKey,
		publicKey:   publicKey,
		exchangeKey: exchangeKey,
		exchangePub: exchangePub,
	}, nil
}

// Register announces this node to the relay and derives the shared poll
// token from the relay's exchange key.
func (c *RelayClient) Register(ctx context.Context) error {
	req := &omega.RegistrationRequest{ExchangePublicKey: c.exchangePub}
	signed, err := omega.NewSigned(c.signingKey, req)
	if err != nil {
		return fmt.Errorf("signing registration: %w", err)
	}

	body, err := omega.SerializeMessage(signed)
	if err != nil {
		return fmt.Errorf("serializing registration: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/relay/register", bytes.NewReader(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%w: %v", omega.ErrIO, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: registration rejected with status %d", omega.ErrNetwork, resp.StatusCode)
	}

	regResp, err := omega.DecodeMessage[relay.RegistrationResponse](resp.Body)
	if err != nil {
		return fmt.Errorf("decoding registration response: %w", err)
	}

	token, err := crypto.DerivePollToken(c.exchangeKey, regResp.ExchangePublicKey)
	if err != nil {
		return fmt.Errorf("deriving poll token: %w", err)
	}
	c.token = token
	return nil
}

// Token returns the poll token derived at registration, empty before
// Register succeeds. Websocket consumers present it the same way Poll does.
func (c *RelayClient) Token() crypto.SharedKey {
	return crypto.SharedKey(c.token.Bytes())
}

// SetEpoch updates the epoch stamped on outgoing envelopes.
func (c *RelayClient) SetEpoch(epoch uint64) {
	c.epoch.Store(epoch)
}

// Send implements omega.Transport.
func (c *RelayClient) Send(ctx context.Context, v omega.Vector) error {
	env := omega.NewEnvelope(v, c.epoch.Load())
	signed, err := omega.NewSigned(c.signingKey, env)
	if err != nil {
		return fmt.Errorf("signing envelope: %w", err)
	}

	body, err := omega.SerializeMessage(signed)
	if err != nil {
		return fmt.Errorf("serializing envelope: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/relay/submit", bytes.NewReader(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%w: %v", omega.ErrIO, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: submit rejected with status %d", omega.ErrNetwork, resp.StatusCode)
	}
	return nil
}

// Poll implements omega.Transport.
func (c *RelayClient) Poll(ctx context.Context) (omega.Vector, bool, error) {
	pollURL := c.baseURL + "/relay/poll?node=" + url.QueryEscape(c.publicKey.String())
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, pollURL, nil)
	if err != nil {
		return nil, false, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+hex.EncodeToString(c.token.Bytes()))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", omega.ErrIO, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusNoContent:
		return nil, false, nil
	case http.StatusOK:
		env, err := omega.DecodeMessage[omega.Envelope](resp.Body)
		if err != nil {
			return nil, false, fmt.Errorf("decoding envelope: %w", err)
		}
		return env.Vector, true, nil
	default:
		return nil, false, fmt.Errorf("%w: poll rejected with status %d", omega.ErrNetwork, resp.StatusCode)
	}
}
