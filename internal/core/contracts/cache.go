package contracts

import (
	"context"
	"time"

	"github.com/NelloGamerz/Meme-Vault/internal/core/domain"
)

// FeedCache is the TTL read-through cache of the feed listing. Between a
// store mutation and its refresh the entry is stale, never wrong; staleness
// is bounded by the TTL.
type FeedCache interface {
	// GetFeed returns (nil, nil) on a cache miss.
	GetFeed(ctx context.Context) ([]domain.Meme, error)
	SetFeed(ctx context.Context, memes []domain.Meme, ttl time.Duration) error
}
