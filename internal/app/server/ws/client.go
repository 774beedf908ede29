package ws

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
)

// RuntimeClient binds an authenticated principal to a live transport. One
// writer goroutine drains the outbound buffer; inbound frames are read
// elsewhere, one at a time.
type RuntimeClient struct {
	ctx      context.Context
	cancel   context.CancelFunc
	ws       *WebSocket
	id       string
	userID   string
	username string
	out      chan []byte
	once     sync.Once
}

func NewClient(
	parent context.Context,
	ws *WebSocket,
	userID, username string,
) *RuntimeClient {
	ctx, cancel := context.WithCancel(parent)
	c := &RuntimeClient{
		ctx:      ctx,
		cancel:   cancel,
		ws:       ws,
		id:       uuid.NewString(),
		userID:   userID,
		username: username,
		out:      make(chan []byte, 256),
	}
	go c.writeLoop()
	return c
}

func (c *RuntimeClient) ID() string       { return c.id }
func (c *RuntimeClient) UserID() string   { return c.userID }
func (c *RuntimeClient) Username() string { return c.username }

func (c *RuntimeClient) Send(ctx context.Context, data []byte) error {
	select {
	case <-c.ctx.Done():
		return errors.New("client closed")
	case <-ctx.Done():
		return ctx.Err()
	case c.out <- data:
		return nil
	}
}

func (c *RuntimeClient) Close() {
	c.once.Do(func() {
		c.cancel()
		c.ws.Close()
	})
}

func (c *RuntimeClient) writeLoop() {
	defer c.Close()
	for {
		select {
		case <-c.ctx.Done():
			return
		case data := <-c.out:
			if err := c.ws.WriteMessage(data); err != nil {
				return
			}
		}
	}
}
