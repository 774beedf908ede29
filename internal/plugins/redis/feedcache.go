package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/NelloGamerz/Meme-Vault/internal/core/domain"

	"github.com/redis/go-redis/v9"
)

const feedKey = "feed:all"

// RedisFeedCache stores the feed snapshot as one JSON blob under a fixed
// key. An entry is stale at worst, never wrong; the TTL bounds the window.
type RedisFeedCache struct {
	rdb *redis.Client
}

func NewRedisFeedCache(rdb *redis.Client) *RedisFeedCache {
	return &RedisFeedCache{rdb: rdb}
}

// GetFeed returns (nil, nil) on a cache miss so callers can distinguish
// "cold" from "broken".
func (c *RedisFeedCache) GetFeed(ctx context.Context) ([]domain.Meme, error) {
	raw, err := c.rdb.Get(ctx, feedKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var memes []domain.Meme
	if err := json.Unmarshal([]byte(raw), &memes); err != nil {
		return nil, err
	}
	if memes == nil {
		memes = []domain.Meme{}
	}
	return memes, nil
}

func (c *RedisFeedCache) SetFeed(ctx context.Context, memes []domain.Meme, ttl time.Duration) error {
	raw, err := json.Marshal(memes)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, feedKey, raw, ttl).Err()
}
