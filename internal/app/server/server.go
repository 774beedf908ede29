package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/NelloGamerz/Meme-Vault/internal/app/server/handlers"
	"github.com/NelloGamerz/Meme-Vault/internal/core/contracts"
	"github.com/NelloGamerz/Meme-Vault/internal/core/services"
	"github.com/NelloGamerz/Meme-Vault/pkg/middleware"
)

type Server struct {
	mux                *http.ServeMux
	port               string
	app                string
	log                *slog.Logger
	interactionHandler *handlers.InteractionHandler
	wsHandler          *handlers.WSHandler
	identity           contracts.IdentityProvider
}

func NewServer(
	port string,
	app string,
	log *slog.Logger,
	identity contracts.IdentityProvider,
	interactionSvc *services.InteractionService,
	feedSvc *services.FeedService,
	router *services.EventRouter,
	hub contracts.SessionRegistry,
) *Server {
	s := &Server{
		mux:                http.NewServeMux(),
		port:               port,
		app:                app,
		log:                log,
		interactionHandler: handlers.NewInteractionHandler(interactionSvc, feedSvc),
		wsHandler:          handlers.NewWSHandler(hub, router, identity),
		identity:           identity,
	}

	s.routes()
	return s
}

func (s *Server) routes() {
	// 1. Initialize Middleware
	auth := middleware.AuthMiddleware(s.identity)
	logging := middleware.RequestLogger(s.log)
	tracing := middleware.TracerMiddleware(s.app)

	chain := func(h http.Handler) http.Handler {
		return logging(tracing(auth(h)))
	}

	// 2. Protected REST Routes
	s.mux.Handle("GET /memes", chain(http.HandlerFunc(s.interactionHandler.Feed)))
	s.mux.Handle("GET /memes/{id}/comments", chain(http.HandlerFunc(s.interactionHandler.Comments)))
	s.mux.Handle("POST /memes/{id}/like", chain(http.HandlerFunc(s.interactionHandler.Like)))
	s.mux.Handle("POST /memes/{id}/save", chain(http.HandlerFunc(s.interactionHandler.Save)))
	s.mux.Handle("POST /memes/{id}/comments", chain(http.HandlerFunc(s.interactionHandler.CreateComment)))

	// 3. WebSocket Route
	// Auth happens inside the handler: browsers cannot attach a Bearer
	// header to the upgrade request.
	s.mux.Handle("/ws", logging(tracing(http.HandlerFunc(s.wsHandler.Handler))))
}

func (s *Server) Start() error {
	server := &http.Server{
		Addr:        ":" + s.port,
		Handler:     s.mux,
		ReadTimeout: 15 * time.Second,
		// No WriteTimeout: it would sever long-lived ws connections.
	}

	s.log.Info("Server starting", "port", s.port)
	return server.ListenAndServe()
}
