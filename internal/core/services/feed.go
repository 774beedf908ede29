package services

import (
	"context"
	"log/slog"

	"github.com/NelloGamerz/Meme-Vault/internal/core/contracts"
	"github.com/NelloGamerz/Meme-Vault/internal/core/domain"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// FeedService serves the feed listing through the TTL cache: hits return the
// cached snapshot, misses load from the store and repopulate.
type FeedService struct {
	memes    domain.MemeRepository
	comments domain.CommentRepository
	cache    contracts.FeedCache
	log      *slog.Logger
}

func NewFeedService(
	log *slog.Logger,
	memes domain.MemeRepository,
	comments domain.CommentRepository,
	cache contracts.FeedCache,
) *FeedService {
	return &FeedService{log: log, memes: memes, comments: comments, cache: cache}
}

func (s *FeedService) Feed(ctx context.Context) ([]domain.Meme, error) {
	ctx, span := tracer.Start(ctx, "FeedService.Feed")
	defer span.End()

	cached, err := s.cache.GetFeed(ctx)
	if err != nil {
		// A broken cache degrades to a store read, it does not fail the feed.
		span.RecordError(err)
		s.log.WarnContext(ctx, "feed - cache read failed", "err", err)
	}
	if cached != nil {
		span.SetAttributes(attribute.Bool("cache.hit", true), attribute.Int("feed.size", len(cached)))
		return cached, nil
	}

	memes, err := s.memes.ListAll(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "store read failed")
		s.log.ErrorContext(ctx, "feed - store read failed", "err", err)
		return nil, err
	}
	if len(memes) > 0 {
		if err := s.cache.SetFeed(ctx, memes, feedTTL); err != nil {
			span.RecordError(err)
			s.log.ErrorContext(ctx, "feed - cache populate failed", "err", err)
		}
	}
	span.SetAttributes(attribute.Bool("cache.hit", false), attribute.Int("feed.size", len(memes)))
	return memes, nil
}

func (s *FeedService) MemeComments(ctx context.Context, itemID string) ([]domain.Comment, error) {
	ctx, span := tracer.Start(ctx, "FeedService.MemeComments")
	defer span.End()
	comments, err := s.comments.ListByMeme(ctx, itemID)
	if err != nil {
		span.RecordError(err)
		s.log.ErrorContext(ctx, "feed - comments read failed", "item_id", itemID, "err", err)
		return nil, err
	}
	return comments, nil
}
