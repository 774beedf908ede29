package contracts

import (
	"context"
)

// MessageQueue is the durable stream carrying notifications from the
// interaction path to the async worker.
type MessageQueue interface {
	// Producer side
	PublishToStream(ctx context.Context, topic string, payload []byte) error
	// Consumer side: reliable consumer-group reads from the stream.
	SubscribeToStream(ctx context.Context, topic string, conGroup string, handler func(ctx context.Context, messageID string, data []byte) error) error
	// AcknowledgeMessage marks the message as processed for the group.
	AcknowledgeMessage(ctx context.Context, topic, conGroup, mesgID string) error
	// DeleteMessage trims the processed message from the stream.
	DeleteMessage(ctx context.Context, topic, mesgID string) error
}
