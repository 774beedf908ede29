package contracts

import "context"

// Delivery is the per-recipient outcome of one fan-out. Failures stay
// observable instead of being swallowed inside the loop.
type Delivery struct {
	ConnID string
	UserID string
	Err    error
}

// Broadcaster fans an outbound payload out to the current subscribers of an
// item, or directly to one user. Best-effort: no acknowledgement, no retry,
// no cross-subscriber ordering.
type Broadcaster interface {
	// BroadcastToItem delivers to every connection in the item's subscriber
	// set at call time. A failed recipient never aborts the rest.
	BroadcastToItem(ctx context.Context, itemID string, payload any) []Delivery
	// SendToUser delivers only if the user is currently registered;
	// otherwise the payload is silently dropped.
	SendToUser(ctx context.Context, userID string, payload any) error
}
