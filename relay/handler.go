package relay

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/LashSesh/omega-protocol/crypto"
	"github.com/LashSesh/omega-protocol/metrics"
	"github.com/LashSesh/omega-protocol/omega"
)

// Handler exposes the relay over HTTP. It satisfies httpserver.RouteRegistrar
// and is mounted on a BaseServer next to the standard health endpoints.
type Handler struct {
	relay *Relay
	log   *slog.Logger

	upgrader websocket.Upgrader
}

// NewHandler creates the HTTP handler for one relay.
func NewHandler(relay *Relay, log *slog.Logger) *Handler {
	return &Handler{
		relay: relay,
		log:   log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes registers the relay endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/relay/register", h.handleRegister)
	r.Post("/relay/submit", h.handleSubmit)
	r.Get("/relay/poll", h.handlePoll)
	r.Get("/relay/ws", h.handleWebsocket)
	r.Get("/relay/archive", h.handleArchive)
}

// RegistrationResponse carries the relay's keys back to a registering node.
type RegistrationResponse struct {
	RelayPublicKey    crypto.PublicKey         `json:"relay_public_key"`
	ExchangePublicKey crypto.ExchangePublicKey `json:"exchange_public_key"`
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	req, err := omega.DecodeMessage[omega.Signed[omega.RegistrationRequest]](r.Body)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to parse request: %v", err), http.StatusBadRequest)
		return
	}

	exchangePub, err := h.relay.Register(r.Context(), req)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to register node: %v", err), http.StatusUnauthorized)
		return
	}

	metrics.Counter("relay_registrations_total").Inc()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(RegistrationResponse{
		RelayPublicKey:    h.relay.PublicKey(),
		ExchangePublicKey: exchangePub,
	})
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	signed, err := omega.DecodeMessage[omega.Signed[omega.Envelope]](r.Body)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to parse envelope: %v", err), http.StatusBadRequest)
		return
	}

	if err := h.relay.Submit(r.Context(), signed); err != nil {
		metrics.Counter("relay_envelopes_rejected_total").Inc()
		http.Error(w, fmt.Sprintf("Failed to submit envelope: %v", err), http.StatusBadRequest)
		return
	}

	metrics.Counter("relay_envelopes_submitted_total").Inc()

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "accepted"})
}

// nodeFromQuery parses the node public key from the request query.
func nodeFromQuery(r *http.Request) (crypto.PublicKey, error) {
	nodeHex := r.URL.Query().Get("node")
	if nodeHex == "" {
		return nil, fmt.Errorf("missing node parameter")
	}
	return crypto.NewPublicKeyFromString(nodeHex)
}

// tokenFromRequest parses the poll token from the Authorization header.
// A missing or malformed header yields an empty token, which never matches.
func tokenFromRequest(r *http.Request) crypto.SharedKey {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) {
		return nil
	}
	token, err := hex.DecodeString(strings.TrimPrefix(auth, prefix))
	if err != nil {
		return nil
	}
	return crypto.SharedKey(token)
}

func (h *Handler) handlePoll(w http.ResponseWriter, r *http.Request) {
	node, err := nodeFromQuery(r)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid node key: %v", err), http.StatusBadRequest)
		return
	}

	env, ok, err := h.relay.Poll(r.Context(), node, tokenFromRequest(r))
	if err != nil {
		http.Error(w, fmt.Sprintf("Poll failed: %v", err), http.StatusUnauthorized)
		return
	}
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	metrics.Counter("relay_envelopes_delivered_total").Inc()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(env)
}

func (h *Handler) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	node, err := nodeFromQuery(r)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid node key: %v", err), http.StatusBadRequest)
		return
	}

	ch, cancel, err := h.relay.Subscribe(node, tokenFromRequest(r))
	if err != nil {
		http.Error(w, fmt.Sprintf("Subscribe failed: %v", err), http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		cancel()
		h.log.Error("websocket upgrade failed", "err", err)
		return
	}

	go func() {
		defer cancel()
		defer conn.Close()

		// Drain the read side so close frames are processed.
		go func() {
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for env := range ch {
			if err := conn.WriteJSON(env); err != nil {
				return
			}
			metrics.Counter("relay_envelopes_delivered_total").Inc()
		}
	}()
}

func (h *Handler) handleArchive(w http.ResponseWriter, r *http.Request) {
	envelopes, err := h.relay.store.LoadRecentEnvelopes(100)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to load archive: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(envelopes)
}
