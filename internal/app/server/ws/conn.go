package ws

import (
	"context"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeTimeout = 10 * time.Second
	maxFrameSize = 64 * 1024
)

// WebSocket wraps a gorilla connection with the write deadline and inbound
// frame limit every session uses.
type WebSocket struct {
	*websocket.Conn
	ctx    context.Context
	cancel context.CancelFunc
	log    *slog.Logger
}

func NewWebSocket(parent context.Context, conn *websocket.Conn, log *slog.Logger) *WebSocket {
	ctx, cancel := context.WithCancel(parent)
	return &WebSocket{Conn: conn, ctx: ctx, cancel: cancel, log: log}
}

func (w *WebSocket) WriteMessage(data []byte) error {
	w.Conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return w.Conn.WriteMessage(websocket.TextMessage, data)
}

// ReadLoop hands inbound frames to onMsg one at a time and returns when the
// transport drops. Empty frames are skipped.
func (w *WebSocket) ReadLoop(onMsg func([]byte)) {
	defer w.Close()

	w.Conn.SetReadLimit(maxFrameSize)
	for {
		_, data, err := w.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				w.log.Warn("ws - read loop - unexpected close", "err", err)
			}
			return
		}
		if len(data) == 0 {
			continue
		}
		onMsg(data)
	}
}

func (w *WebSocket) Close() {
	w.cancel()
	_ = w.Conn.Close()
}
