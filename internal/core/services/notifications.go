package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/NelloGamerz/Meme-Vault/internal/core/contracts"
	"github.com/NelloGamerz/Meme-Vault/internal/core/domain"
)

// NotificationTopic is the stream the dispatcher produces to and the worker
// consumes from.
const NotificationTopic = "notifications"

// NotificationService is the producer half of the dispatcher: it makes the
// notification durable by enqueueing it. Persistence and live push happen in
// the worker.
type NotificationService struct {
	queue contracts.MessageQueue
	log   *slog.Logger
}

func NewNotificationService(log *slog.Logger, queue contracts.MessageQueue) *NotificationService {
	return &NotificationService{log: log, queue: queue}
}

func (s *NotificationService) Notify(ctx context.Context, n domain.Notification) error {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	raw, err := json.Marshal(n)
	if err != nil {
		return err
	}
	if err := s.queue.PublishToStream(ctx, NotificationTopic, raw); err != nil {
		s.log.ErrorContext(ctx, "notifications - enqueue failed", "recipient", n.Recipient, "kind", n.Kind, "err", err)
		return err
	}
	s.log.InfoContext(ctx, "notifications - enqueued", "recipient", n.Recipient, "kind", n.Kind, "item_id", n.MemeID)
	return nil
}
