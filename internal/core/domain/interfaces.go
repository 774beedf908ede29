package domain

import (
	"context"
)

// UserRepository handles account lookup and the liked/saved id-sets.
// The Add/Remove pairs are set operations: the bool reports whether the
// document actually changed, which is what makes the like/save toggles
// idempotent under concurrent duplicates.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	AddLikedMeme(ctx context.Context, userID, memeID string) (bool, error)
	RemoveLikedMeme(ctx context.Context, userID, memeID string) (bool, error)
	AddSavedMeme(ctx context.Context, userID, memeID string) (bool, error)
	RemoveSavedMeme(ctx context.Context, userID, memeID string) (bool, error)
	AddSeenMeme(ctx context.Context, userID, memeID string) error
}

// MemeRepository handles content items and their counters.
type MemeRepository interface {
	GetByID(ctx context.Context, id string) (*Meme, error)
	ListAll(ctx context.Context) ([]Meme, error)
	// AdjustLikeCount / AdjustSaveCount atomically apply delta (+1 or -1),
	// never below zero, and return the resulting counter.
	AdjustLikeCount(ctx context.Context, memeID string, delta int) (int, error)
	AdjustSaveCount(ctx context.Context, memeID string, delta int) (int, error)
	IncrementCommentsCount(ctx context.Context, memeID string) (int, error)
}

type CommentRepository interface {
	Insert(ctx context.Context, c *Comment) error
	ListByMeme(ctx context.Context, memeID string) ([]Comment, error)
}

type NotificationRepository interface {
	Insert(ctx context.Context, n *Notification) error
}
