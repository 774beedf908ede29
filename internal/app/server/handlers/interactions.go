package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/NelloGamerz/Meme-Vault/internal/core/domain"
	"github.com/NelloGamerz/Meme-Vault/internal/core/services"
	"github.com/NelloGamerz/Meme-Vault/pkg/middleware"
)

type InteractionHandler struct {
	interactions *services.InteractionService
	feed         *services.FeedService
}

func NewInteractionHandler(i *services.InteractionService, f *services.FeedService) *InteractionHandler {
	return &InteractionHandler{interactions: i, feed: f}
}

func principalFrom(r *http.Request) (*domain.Principal, bool) {
	p, ok := r.Context().Value(middleware.PrincipalKey).(*domain.Principal)
	return p, ok
}

func writeStatus(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrMemeNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrEmptyComment):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *InteractionHandler) Feed(w http.ResponseWriter, r *http.Request) {
	log, _ := r.Context().Value(middleware.LoggerKey).(*slog.Logger)
	memes, err := h.feed.Feed(r.Context())
	if err != nil {
		log.ErrorContext(r.Context(), "interaction handler - feed failed", "err", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(memes)
}

func (h *InteractionHandler) Comments(w http.ResponseWriter, r *http.Request) {
	log, _ := r.Context().Value(middleware.LoggerKey).(*slog.Logger)
	itemID := r.PathValue("id")
	comments, err := h.feed.MemeComments(r.Context(), itemID)
	if err != nil {
		log.ErrorContext(r.Context(), "interaction handler - comments failed", "meme_id", itemID, "err", err)
		writeStatus(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(comments)
}

// Like applies or removes a like on behalf of the authenticated user. The
// response mirrors the reaction frame broadcast to live subscribers.
func (h *InteractionHandler) Like(w http.ResponseWriter, r *http.Request) {
	h.react(w, r, h.interactions.Like)
}

func (h *InteractionHandler) Save(w http.ResponseWriter, r *http.Request) {
	h.react(w, r, h.interactions.Save)
}

func (h *InteractionHandler) react(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, username, itemID string, apply bool) (*domain.ReactionPayload, error),
) {
	log, _ := r.Context().Value(middleware.LoggerKey).(*slog.Logger)
	principal, ok := principalFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	var req struct {
		Apply bool `json:"apply"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.ErrorContext(r.Context(), "interaction handler - bad request", "err", err)
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	itemID := r.PathValue("id")
	payload, err := op(r.Context(), principal.Username, itemID, req.Apply)
	if err != nil {
		log.ErrorContext(r.Context(), "interaction handler - reaction failed", "meme_id", itemID, "username", principal.Username, "err", err)
		writeStatus(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payload)
}

func (h *InteractionHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	log, _ := r.Context().Value(middleware.LoggerKey).(*slog.Logger)
	principal, ok := principalFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	var req struct {
		Text      string `json:"text"`
		AvatarURL string `json:"avatarUrl"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.ErrorContext(r.Context(), "interaction handler - bad request", "err", err)
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	itemID := r.PathValue("id")
	payload, err := h.interactions.Comment(r.Context(), *principal, itemID, req.Text, req.AvatarURL)
	if err != nil {
		log.ErrorContext(r.Context(), "interaction handler - comment failed", "meme_id", itemID, "username", principal.Username, "err", err)
		writeStatus(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(payload)
}
