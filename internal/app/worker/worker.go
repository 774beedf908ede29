package worker

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/NelloGamerz/Meme-Vault/internal/core/contracts"
	"github.com/NelloGamerz/Meme-Vault/internal/core/domain"
	"github.com/NelloGamerz/Meme-Vault/internal/core/services"
)

// NotificationWorker drains the notification stream: persist the record,
// attempt a live push, then acknowledge and trim. A failed persist leaves
// the message pending for redelivery; a failed live push does not, since the
// durable record already exists.
type NotificationWorker struct {
	queue    contracts.MessageQueue
	repo     domain.NotificationRepository
	engine   contracts.Broadcaster
	conGroup string
	log      *slog.Logger
}

func NewNotificationWorker(
	log *slog.Logger,
	queue contracts.MessageQueue,
	repo domain.NotificationRepository,
	engine contracts.Broadcaster,
	conGroup string,
) contracts.AsyncWorker {
	return &NotificationWorker{
		log:      log,
		queue:    queue,
		repo:     repo,
		engine:   engine,
		conGroup: conGroup,
	}
}

func (w *NotificationWorker) Run(ctx context.Context) error {
	if err := w.queue.SubscribeToStream(ctx, services.NotificationTopic, w.conGroup, w.ProcessMessage); err != nil {
		return err
	}
	w.log.InfoContext(ctx, "worker - subscribed to notification stream", "group", w.conGroup)
	return nil
}

func (w *NotificationWorker) ProcessMessage(ctx context.Context, messageID string, raw []byte) error {
	var n domain.Notification
	if err := json.Unmarshal(raw, &n); err != nil {
		w.log.Error("worker - process message - wrong payload", "message_id", messageID)
		// Poison message: acknowledge so it does not loop forever.
		_ = w.queue.AcknowledgeMessage(ctx, services.NotificationTopic, w.conGroup, messageID)
		return err
	}
	if err := w.repo.Insert(ctx, &n); err != nil {
		w.log.ErrorContext(ctx, "worker - process message - persist failed", "message_id", messageID, "recipient", n.Recipient, "err", err)
		return err
	}
	// Live push is best-effort; the recipient may simply be offline. The
	// registry is keyed by user id, not username.
	if err := w.engine.SendToUser(ctx, n.RecipientID, n); err != nil {
		w.log.WarnContext(ctx, "worker - process message - live push failed", "message_id", messageID, "recipient", n.Recipient, "err", err)
	}
	if err := w.queue.AcknowledgeMessage(ctx, services.NotificationTopic, w.conGroup, messageID); err != nil {
		w.log.ErrorContext(ctx, "worker - process message - acknowledge failed", "message_id", messageID, "err", err)
		return err
	}
	if err := w.queue.DeleteMessage(ctx, services.NotificationTopic, messageID); err != nil {
		// Already processed and ACKed; trimming is housekeeping.
		w.log.ErrorContext(ctx, "worker - process message - delete failed", "message_id", messageID, "err", err)
	}
	return nil
}
