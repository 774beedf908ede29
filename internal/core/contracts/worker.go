package contracts

import "context"

// AsyncWorker consumes the notification stream: persist, best-effort live
// push, then acknowledge and trim.
type AsyncWorker interface {
	Run(ctx context.Context) error
	ProcessMessage(ctx context.Context, messageID string, raw []byte) error
}
