package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/NelloGamerz/Meme-Vault/internal/core/contracts"
	"github.com/NelloGamerz/Meme-Vault/internal/core/domain"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("interaction-service")

// feedTTL bounds how stale the cached feed may grow between a store
// mutation and the next refresh or expiry.
const feedTTL = 10 * time.Minute

type reactionKind struct {
	frameType  string
	applyWord  string
	undoWord   string
	appliedMsg string
	alreadyMsg string
	undoneMsg  string
	neverMsg   string
}

var likeKind = reactionKind{
	frameType:  domain.TypeLike,
	applyWord:  "LIKE",
	undoWord:   "UNLIKE",
	appliedMsg: "Meme liked successfully",
	alreadyMsg: "Meme already liked",
	undoneMsg:  "Meme unliked successfully",
	neverMsg:   "Meme was not previously liked",
}

var saveKind = reactionKind{
	frameType:  domain.TypeSave,
	applyWord:  "SAVE",
	undoWord:   "UNSAVE",
	appliedMsg: "Meme saved successfully",
	alreadyMsg: "Meme already saved",
	undoneMsg:  "Meme unsaved successfully",
	neverMsg:   "Meme was not previously saved",
}

// InteractionService owns the like/save/comment flows: store mutation first,
// then cache refresh, broadcast and notification. The store commit always
// precedes any visible effect; nothing is broadcast speculatively.
type InteractionService struct {
	users    domain.UserRepository
	memes    domain.MemeRepository
	comments domain.CommentRepository
	cache    contracts.FeedCache
	engine   contracts.Broadcaster
	notifier contracts.NotificationDispatcher
	log      *slog.Logger
}

func NewInteractionService(
	log *slog.Logger,
	users domain.UserRepository,
	memes domain.MemeRepository,
	comments domain.CommentRepository,
	cache contracts.FeedCache,
	engine contracts.Broadcaster,
	notifier contracts.NotificationDispatcher,
) *InteractionService {
	return &InteractionService{
		log:      log,
		users:    users,
		memes:    memes,
		comments: comments,
		cache:    cache,
		engine:   engine,
		notifier: notifier,
	}
}

func (s *InteractionService) Like(ctx context.Context, username, itemID string, apply bool) (*domain.ReactionPayload, error) {
	return s.react(ctx, likeKind, username, itemID, apply)
}

func (s *InteractionService) Save(ctx context.Context, username, itemID string, apply bool) (*domain.ReactionPayload, error) {
	return s.react(ctx, saveKind, username, itemID, apply)
}

func (s *InteractionService) react(ctx context.Context, kind reactionKind, username, itemID string, apply bool) (*domain.ReactionPayload, error) {
	ctx, span := tracer.Start(ctx, "InteractionService.React", trace.WithAttributes(
		attribute.String("reaction", kind.frameType),
		attribute.String("username", username),
		attribute.String("item_id", itemID),
		attribute.Bool("apply", apply),
	))
	defer span.End()

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		span.RecordError(err)
		s.log.ErrorContext(ctx, "interactions - react - user lookup failed", "username", username, "item_id", itemID, "err", err)
		return nil, err
	}
	meme, err := s.memes.GetByID(ctx, itemID)
	if err != nil {
		span.RecordError(err)
		s.log.ErrorContext(ctx, "interactions - react - meme lookup failed", "username", username, "item_id", itemID, "err", err)
		return nil, err
	}

	// The user's id-set is the source of truth for whether this toggle is a
	// genuine state change. The set update is a single atomic document
	// write, so concurrent duplicates resolve to exactly one winner and the
	// counter moves at most once.
	var changed bool
	if kind.frameType == domain.TypeLike {
		if apply {
			changed, err = s.users.AddLikedMeme(ctx, user.ID, meme.ID)
		} else {
			changed, err = s.users.RemoveLikedMeme(ctx, user.ID, meme.ID)
		}
	} else {
		if apply {
			changed, err = s.users.AddSavedMeme(ctx, user.ID, meme.ID)
		} else {
			changed, err = s.users.RemoveSavedMeme(ctx, user.ID, meme.ID)
		}
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "reaction set update failed")
		s.log.ErrorContext(ctx, "interactions - react - set update failed", "username", username, "item_id", itemID, "err", err)
		return nil, err
	}

	count := meme.LikeCount
	if kind.frameType == domain.TypeSave {
		count = meme.SaveCount
	}
	var message string
	switch {
	case changed && apply:
		message = kind.appliedMsg
	case changed && !apply:
		message = kind.undoneMsg
	case apply:
		message = kind.alreadyMsg
	default:
		message = kind.neverMsg
	}
	if changed {
		delta := 1
		if !apply {
			delta = -1
		}
		if kind.frameType == domain.TypeLike {
			count, err = s.memes.AdjustLikeCount(ctx, meme.ID, delta)
		} else {
			count, err = s.memes.AdjustSaveCount(ctx, meme.ID, delta)
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "counter update failed")
			s.log.ErrorContext(ctx, "interactions - react - counter update failed", "username", username, "item_id", itemID, "err", err)
			return nil, err
		}
	}

	action := kind.applyWord
	if !apply {
		action = kind.undoWord
	}
	payload := &domain.ReactionPayload{
		Type:     kind.frameType,
		ItemID:   meme.ID,
		Username: username,
		Action:   action,
		Status:   http.StatusOK,
		Message:  message,
	}
	if kind.frameType == domain.TypeLike {
		payload.LikeCount = &count
	} else {
		payload.SaveCount = &count
	}

	// Post-commit effects only on a genuine state change; a no-op toggle
	// just reports back to the caller.
	if changed {
		if kind.frameType == domain.TypeLike {
			meme.LikeCount = count
		} else {
			meme.SaveCount = count
		}
		s.refreshFeedEntry(ctx, meme)
		s.engine.BroadcastToItem(ctx, meme.ID, payload)
		if apply && username != meme.Uploader {
			s.dispatchNotification(ctx, domain.Notification{
				Sender:            username,
				Recipient:         meme.Uploader,
				RecipientID:       meme.UserID,
				Kind:              kind.frameType,
				Message:           fmt.Sprintf("%s %sd your meme", username, strings.ToLower(kind.applyWord)),
				ProfilePictureURL: user.ProfilePictureURL,
				MemeID:            meme.ID,
			})
		}
	}

	span.SetStatus(codes.Ok, "reaction processed")
	s.log.InfoContext(ctx, "interactions - react - processed", "reaction", kind.frameType, "username", username, "item_id", itemID, "changed", changed, "count", count)
	return payload, nil
}

func (s *InteractionService) Comment(ctx context.Context, actor domain.Principal, itemID, text, avatarURL string) (*domain.CommentPayload, error) {
	ctx, span := tracer.Start(ctx, "InteractionService.Comment", trace.WithAttributes(
		attribute.String("username", actor.Username),
		attribute.String("item_id", itemID),
	))
	defer span.End()

	if text == "" {
		return nil, domain.ErrEmptyComment
	}
	meme, err := s.memes.GetByID(ctx, itemID)
	if err != nil {
		span.RecordError(err)
		s.log.ErrorContext(ctx, "interactions - comment - meme lookup failed", "username", actor.Username, "item_id", itemID, "err", err)
		return nil, err
	}

	comment := &domain.Comment{
		MemeID:            meme.ID,
		UserID:            actor.UserID,
		Username:          actor.Username,
		Text:              text,
		ProfilePictureURL: avatarURL,
		CreatedAt:         time.Now(),
	}
	if err := s.comments.Insert(ctx, comment); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "comment insert failed")
		s.log.ErrorContext(ctx, "interactions - comment - insert failed", "username", actor.Username, "item_id", itemID, "err", err)
		return nil, err
	}
	count, err := s.memes.IncrementCommentsCount(ctx, meme.ID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "comment counter update failed")
		s.log.ErrorContext(ctx, "interactions - comment - counter update failed", "username", actor.Username, "item_id", itemID, "err", err)
		return nil, err
	}
	meme.CommentsCount = count

	payload := &domain.CommentPayload{Type: domain.TypeComment, Comment: *comment}

	s.refreshFeedEntry(ctx, meme)
	s.engine.BroadcastToItem(ctx, meme.ID, payload)
	// The owner also gets the comment on their user connection, whether or
	// not they are currently viewing the item.
	_ = s.engine.SendToUser(ctx, meme.UserID, payload)
	if actor.Username != meme.Uploader {
		s.dispatchNotification(ctx, domain.Notification{
			Sender:            actor.Username,
			Recipient:         meme.Uploader,
			RecipientID:       meme.UserID,
			Kind:              domain.TypeComment,
			Message:           fmt.Sprintf("%s commented on your meme: %s", actor.Username, meme.Caption),
			ProfilePictureURL: avatarURL,
			MemeID:            meme.ID,
		})
	}

	span.SetStatus(codes.Ok, "comment processed")
	s.log.InfoContext(ctx, "interactions - comment - processed", "username", actor.Username, "item_id", itemID, "comments_count", count)
	return payload, nil
}

// MarkSeen records the item in the user's seen list when they join it.
// Best-effort: a store error is logged and the join still succeeds.
func (s *InteractionService) MarkSeen(ctx context.Context, userID, itemID string) {
	if err := s.users.AddSeenMeme(ctx, userID, itemID); err != nil {
		s.log.WarnContext(ctx, "interactions - mark seen failed", "user_id", userID, "item_id", itemID, "err", err)
	}
}

// refreshFeedEntry read-modify-writes the cached feed snapshot with the
// updated item and resets the TTL. A cold cache is left alone; the next
// read-through repopulates it. Failures are logged, never silent.
func (s *InteractionService) refreshFeedEntry(ctx context.Context, updated *domain.Meme) {
	memes, err := s.cache.GetFeed(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "interactions - feed cache read failed", "item_id", updated.ID, "err", err)
		return
	}
	if memes == nil {
		return
	}
	for i := range memes {
		if memes[i].ID == updated.ID {
			memes[i] = *updated
			break
		}
	}
	if err := s.cache.SetFeed(ctx, memes, feedTTL); err != nil {
		s.log.ErrorContext(ctx, "interactions - feed cache refresh failed", "item_id", updated.ID, "err", err)
	}
}

func (s *InteractionService) dispatchNotification(ctx context.Context, n domain.Notification) {
	if err := s.notifier.Notify(ctx, n); err != nil {
		s.log.ErrorContext(ctx, "interactions - notification dispatch failed", "recipient", n.Recipient, "item_id", n.MemeID, "err", err)
	}
}
