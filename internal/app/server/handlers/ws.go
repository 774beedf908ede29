package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/NelloGamerz/Meme-Vault/internal/app/server/ws"
	"github.com/NelloGamerz/Meme-Vault/internal/core/contracts"
	"github.com/NelloGamerz/Meme-Vault/internal/core/services"
	"github.com/NelloGamerz/Meme-Vault/pkg/middleware"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type WSHandler struct {
	hub      contracts.SessionRegistry
	router   *services.EventRouter
	identity contracts.IdentityProvider
}

func NewWSHandler(hub contracts.SessionRegistry, router *services.EventRouter, identity contracts.IdentityProvider) *WSHandler {
	return &WSHandler{
		hub:      hub,
		router:   router,
		identity: identity,
	}
}

// sessionToken pulls the auth token for a websocket handshake. Browsers
// cannot set an Authorization header on ws upgrades, so the cookie comes
// first with a query parameter as the fallback.
func sessionToken(r *http.Request) string {
	if cookie, err := r.Cookie("token"); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return r.URL.Query().Get("token")
}

func (s *WSHandler) Handler(w http.ResponseWriter, r *http.Request) {
	log, _ := r.Context().Value(middleware.LoggerKey).(*slog.Logger)
	span := trace.SpanFromContext(r.Context())

	token := sessionToken(r)
	if token == "" {
		log.ErrorContext(r.Context(), "ws handler - unauthorised missing token")
		http.Error(w, "Unauthorized: token missing", http.StatusUnauthorized)
		return
	}
	principal, err := s.identity.Verify(r.Context(), token)
	if err != nil {
		log.ErrorContext(r.Context(), "ws handler - verify - token rejected", "err", err)
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	span.SetAttributes(attribute.String("user.id", principal.UserID))

	sessionCtx := context.WithoutCancel(r.Context())
	ctx, cancel := context.WithCancel(sessionCtx)
	var upgrader = websocket.Upgrader{
		ReadBufferSize:  32,
		WriteBufferSize: 32,
		CheckOrigin: func(r *http.Request) bool {
			return true // tighten later
		},
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.ErrorContext(r.Context(), "ws handler - upgrade - ws upgrade failed", "err", err)
		cancel()
		return
	}
	defer conn.Close()
	conn.SetCloseHandler(func(code int, text string) error {
		log.Info("ws handler - ws closed", "user_id", principal.UserID)
		cancel()
		return nil
	})
	websocket := ws.NewWebSocket(ctx, conn, log)

	client := ws.NewClient(ctx, websocket, principal.UserID, principal.Username)
	s.hub.RegisterUser(principal.UserID, client)
	defer s.hub.RemoveConnection(client)
	defer client.Close()
	log.InfoContext(r.Context(), "ws handler - register - ws connection established", "user_id", principal.UserID, "conn_id", client.ID())

	// Read loop. Frames are handled one at a time so actions from the
	// same connection apply in the order they arrived.
	websocket.ReadLoop(func(data []byte) {
		s.router.HandleFrame(ctx, client, data)
	})
}
