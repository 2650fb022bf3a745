package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/LashSesh/omega-protocol/omega"
	"github.com/LashSesh/omega-protocol/testutil"
)

func TestRelayClientUnreachableRelayWrapsErrIO(t *testing.T) {
	ctx := context.Background()

	_, signingKey, err := testutil.GenerateTestKeyPair()
	require.NoError(t, err)

	// Point the client at a freshly closed listener, so every request fails
	// at the connection level rather than with an HTTP status.
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	client, err := NewRelayClient(srv.URL, signingKey)
	require.NoError(t, err)

	err = client.Register(ctx)
	require.ErrorIs(t, err, omega.ErrIO)

	err = client.Send(ctx, omega.Vector{0.1, 0.2, 0.3, 0.4, 0.5})
	require.ErrorIs(t, err, omega.ErrIO)

	_, _, err = client.Poll(ctx)
	require.ErrorIs(t, err, omega.ErrIO)
}
