package broadcast

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/NelloGamerz/Meme-Vault/internal/core/contracts"
)

// Engine fans outbound payloads out over the registry's current view.
// Delivery is best-effort: a failed send is recorded and logged, never
// retried, and never triggers registry cleanup here — that belongs to the
// transport-close callback alone.
type Engine struct {
	reg contracts.SessionRegistry
	log *slog.Logger
}

func NewEngine(log *slog.Logger, reg contracts.SessionRegistry) *Engine {
	return &Engine{reg: reg, log: log}
}

// BroadcastToItem delivers to every subscriber of the item at call time and
// returns the per-recipient outcomes. Zero subscribers means zero sends and
// no error.
func (e *Engine) BroadcastToItem(ctx context.Context, itemID string, payload any) []contracts.Delivery {
	subs := e.reg.Subscribers(itemID)
	if len(subs) == 0 {
		return nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		e.log.ErrorContext(ctx, "broadcast - marshal payload failed", "item_id", itemID, "err", err)
		return nil
	}
	results := make([]contracts.Delivery, 0, len(subs))
	for _, c := range subs {
		err := c.Send(ctx, data)
		results = append(results, contracts.Delivery{ConnID: c.ID(), UserID: c.UserID(), Err: err})
		if err != nil {
			e.log.WarnContext(ctx, "broadcast - send to subscriber failed", "item_id", itemID, "conn_id", c.ID(), "user_id", c.UserID(), "err", err)
		}
	}
	return results
}

// SendToUser delivers directly to the user's registered connection, if any.
// Offline users are silently skipped; durable delivery is the notification
// dispatcher's job, not this engine's.
func (e *Engine) SendToUser(ctx context.Context, userID string, payload any) error {
	c, ok := e.reg.UserConnection(userID)
	if !ok {
		return nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if err := c.Send(ctx, data); err != nil {
		e.log.WarnContext(ctx, "broadcast - send to user failed", "user_id", userID, "conn_id", c.ID(), "err", err)
		return err
	}
	return nil
}
