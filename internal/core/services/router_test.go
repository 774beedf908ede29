package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/NelloGamerz/Meme-Vault/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouterFixture(t *testing.T) (*EventRouter, *fakeHub, *interactionFixture) {
	t.Helper()
	f := defaultFixture()
	hub := newFakeHub()
	return NewEventRouter(slog.Default(), hub, f.svc), hub, f
}

func TestEventRouter_Decode(t *testing.T) {
	r := &EventRouter{log: slog.Default()}

	tests := []struct {
		name    string
		raw     string
		kind    domain.EventKind
		wantErr error
	}{
		{
			name: "join",
			raw:  `{"type":"JOIN_ITEM","itemId":"m1"}`,
			kind: domain.EventJoin,
		},
		{
			name: "leave",
			raw:  `{"type":"LEAVE_ITEM","itemId":"m1"}`,
			kind: domain.EventLeave,
		},
		{
			name: "like apply",
			raw:  `{"type":"LIKE","itemId":"m1","apply":true}`,
			kind: domain.EventLike,
		},
		{
			name: "save undo",
			raw:  `{"type":"SAVE","itemId":"m1","apply":false}`,
			kind: domain.EventSave,
		},
		{
			name: "comment",
			raw:  `{"type":"COMMENT","itemId":"m1","text":"hello"}`,
			kind: domain.EventComment,
		},
		{
			name:    "invalid json",
			raw:     `{"type":`,
			wantErr: domain.ErrMalformedEvent,
		},
		{
			name:    "unknown type",
			raw:     `{"type":"DANCE","itemId":"m1"}`,
			wantErr: domain.ErrUnknownEventType,
		},
		{
			name:    "missing item id",
			raw:     `{"type":"LIKE","apply":true}`,
			wantErr: domain.ErrMalformedEvent,
		},
		{
			name:    "like without apply",
			raw:     `{"type":"LIKE","itemId":"m1"}`,
			wantErr: domain.ErrMalformedEvent,
		},
		{
			name:    "comment without text",
			raw:     `{"type":"COMMENT","itemId":"m1"}`,
			wantErr: domain.ErrMalformedEvent,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := r.Decode([]byte(tt.raw))
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, domain.EventUnrecognized, ev.Kind)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.kind, ev.Kind)
			assert.Equal(t, "m1", ev.ItemID)
		})
	}
}

func TestEventRouter_Decode_ApplyFlag(t *testing.T) {
	r := &EventRouter{log: slog.Default()}

	ev, err := r.Decode([]byte(`{"type":"LIKE","itemId":"m1","apply":false}`))
	require.NoError(t, err)
	assert.False(t, ev.Apply)

	ev, err = r.Decode([]byte(`{"type":"LIKE","itemId":"m1","apply":true}`))
	require.NoError(t, err)
	assert.True(t, ev.Apply)
}

func TestEventRouter_HandleFrame_JoinRegistersAndMarksSeen(t *testing.T) {
	router, hub, f := newRouterFixture(t)
	conn := &fakeConn{id: "conn-1", userID: "u1", username: "alice"}

	router.HandleFrame(context.Background(), conn, []byte(`{"type":"JOIN_ITEM","itemId":"m1"}`))

	assert.Equal(t, []string{"conn-1"}, hub.joined["m1"])
	assert.Equal(t, []string{"m1"}, f.users.seen["u1"])
	assert.Empty(t, conn.sentFrames())
}

func TestEventRouter_HandleFrame_Leave(t *testing.T) {
	router, hub, _ := newRouterFixture(t)
	conn := &fakeConn{id: "conn-1", userID: "u1", username: "alice"}

	router.HandleFrame(context.Background(), conn, []byte(`{"type":"JOIN_ITEM","itemId":"m1"}`))
	router.HandleFrame(context.Background(), conn, []byte(`{"type":"LEAVE_ITEM","itemId":"m1"}`))

	assert.Empty(t, hub.joined["m1"])
}

func TestEventRouter_HandleFrame_BadFrameRepliesLocally(t *testing.T) {
	router, _, _ := newRouterFixture(t)
	conn := &fakeConn{id: "conn-1", userID: "u1", username: "alice"}

	router.HandleFrame(context.Background(), conn, []byte(`{"type":"DANCE","itemId":"m1"}`))

	frames := conn.sentFrames()
	require.Len(t, frames, 1)
	var msg domain.ErrorMessage
	require.NoError(t, json.Unmarshal(frames[0], &msg))
	assert.Equal(t, domain.TypeError, msg.Type)
	assert.Equal(t, "BAD_EVENT", msg.Code)
}

func TestEventRouter_HandleFrame_UnknownMemeRepliesNotFound(t *testing.T) {
	router, _, _ := newRouterFixture(t)
	conn := &fakeConn{id: "conn-1", userID: "u1", username: "alice"}

	router.HandleFrame(context.Background(), conn, []byte(`{"type":"LIKE","itemId":"nope","apply":true}`))

	frames := conn.sentFrames()
	require.Len(t, frames, 1)
	var msg domain.ErrorMessage
	require.NoError(t, json.Unmarshal(frames[0], &msg))
	assert.Equal(t, "NOT_FOUND", msg.Code)
}

func TestEventRouter_HandleFrame_LikeFlows(t *testing.T) {
	router, _, f := newRouterFixture(t)
	conn := &fakeConn{id: "conn-1", userID: "u1", username: "alice"}

	router.HandleFrame(context.Background(), conn, []byte(`{"type":"LIKE","itemId":"m1","apply":true}`))

	assert.Empty(t, conn.sentFrames())
	require.Len(t, f.engine.broadcasts, 1)
	assert.Equal(t, "m1", f.engine.broadcasts[0].itemID)
}

func TestEventRouter_HandleFrame_CommentUsesConnectionIdentity(t *testing.T) {
	router, _, f := newRouterFixture(t)
	conn := &fakeConn{id: "conn-1", userID: "u1", username: "alice"}

	router.HandleFrame(context.Background(), conn, []byte(`{"type":"COMMENT","itemId":"m1","text":"hello"}`))

	require.Len(t, f.comments.comments, 1)
	assert.Equal(t, "u1", f.comments.comments[0].UserID)
	assert.Equal(t, "alice", f.comments.comments[0].Username)
}
