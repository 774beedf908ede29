package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisMessageQueue carries the notification stream on Redis Streams with a
// consumer group, so a notification survives process restarts until it is
// acknowledged.
type RedisMessageQueue struct {
	rdb *redis.Client
	log *slog.Logger
}

func NewRedisMessageQueue(log *slog.Logger, rdb *redis.Client) *RedisMessageQueue {
	return &RedisMessageQueue{rdb: rdb, log: log}
}

func (q *RedisMessageQueue) streamKey(topic string) string {
	return "stream:" + topic
}

func (q *RedisMessageQueue) PublishToStream(ctx context.Context, topic string, payload []byte) error {
	return q.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: q.streamKey(topic),
		MaxLen: 10000,
		Approx: true,
		ID:     "*",
		Values: map[string]interface{}{"data": payload},
	}).Err()
}

func (q *RedisMessageQueue) SubscribeToStream(
	ctx context.Context,
	topic string,
	conGroup string,
	handler func(ctx context.Context, messageID string, data []byte) error,
) error {
	stream := q.streamKey(topic)
	// Create group if not exists
	err := q.rdb.XGroupCreateMkStream(ctx, stream, conGroup, "0").Err()
	if err != nil && err.Error() != "BUSYGROUP Consumer Group name already exists" {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}
	consumerName := uuid.NewString()
	// Run in a goroutine
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			default:
				// Read new messages (">")
				res, err := q.rdb.XReadGroup(ctx, &redis.XReadGroupArgs{
					Group:    conGroup,
					Consumer: consumerName,
					Streams:  []string{stream, ">"},
					Count:    8,
					Block:    2 * time.Second,
				}).Result()
				if err != nil {
					if err != redis.Nil && ctx.Err() == nil {
						q.log.WarnContext(ctx, "queue - stream read failed", "stream", stream, "err", err)
					}
					continue
				}
				for _, s := range res {
					for _, msg := range s.Messages {
						raw, ok := msg.Values["data"].(string)
						if !ok {
							continue
						}
						if err := handler(ctx, msg.ID, []byte(raw)); err != nil {
							q.log.WarnContext(ctx, "queue - handler failed", "message_id", msg.ID, "err", err)
						}
					}
				}
			}
		}
	}()
	return nil
}

func (q *RedisMessageQueue) AcknowledgeMessage(ctx context.Context, topic, conGroup, mesgID string) error {
	return q.rdb.XAck(ctx, q.streamKey(topic), conGroup, mesgID).Err()
}

func (q *RedisMessageQueue) DeleteMessage(ctx context.Context, topic, mesgID string) error {
	return q.rdb.XDel(ctx, q.streamKey(topic), mesgID).Err()
}
