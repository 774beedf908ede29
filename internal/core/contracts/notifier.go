package contracts

import (
	"context"

	"github.com/NelloGamerz/Meme-Vault/internal/core/domain"
)

// NotificationDispatcher hands a notification off for durable, best-effort
// async delivery. Fire-and-forget from the caller's point of view: the
// dispatcher only guarantees the notification is enqueued.
type NotificationDispatcher interface {
	Notify(ctx context.Context, n domain.Notification) error
}
