package contracts

import (
	"context"
)

// SessionRegistry holds the live-connection indices: user → connection and
// item → subscriber set. Every method is safe under unbounded concurrent
// callers; synchronization is per key, never one lock over the whole thing.
type SessionRegistry interface {
	// RegisterUser upserts the user mapping. A displaced previous connection
	// is explicitly closed (close-and-replace).
	RegisterUser(userID string, c Client)
	// RegisterItem adds the connection to the item's subscriber set.
	// Idempotent under repeated calls.
	RegisterItem(itemID string, c Client)
	// LeaveItem removes the connection from the set and drops the key
	// entirely once the set is empty.
	LeaveItem(itemID string, c Client)
	// RemoveConnection purges the connection from every index. Safe to call
	// more than once for the same connection.
	RemoveConnection(c Client)
	// Subscribers returns a point-in-time snapshot of the item's set.
	Subscribers(itemID string) []Client
	// UserConnection returns the currently registered connection, if any.
	UserConnection(userID string) (Client, bool)
}

// Client is the minimal surface the registry and broadcaster need from an
// individual websocket connection.
type Client interface {
	ID() string
	UserID() string
	Username() string
	Send(ctx context.Context, data []byte) error
	Close()
}
