package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/NelloGamerz/Meme-Vault/internal/core/contracts"
	"github.com/NelloGamerz/Meme-Vault/internal/core/domain"
)

// EventRouter decodes inbound frames into the closed event union and
// dispatches them. Decode failures produce a single error reply to the
// originating connection only; the connection stays open either way.
type EventRouter struct {
	reg          contracts.SessionRegistry
	interactions *InteractionService
	log          *slog.Logger
}

func NewEventRouter(
	log *slog.Logger,
	reg contracts.SessionRegistry,
	interactions *InteractionService,
) *EventRouter {
	return &EventRouter{log: log, reg: reg, interactions: interactions}
}

// Decode turns one raw frame into exactly one event variant. The type
// discriminator is inspected here and nowhere else.
func (r *EventRouter) Decode(raw []byte) (domain.Event, error) {
	var in struct {
		Type           string `json:"type"`
		ItemID         string `json:"itemId"`
		Apply          *bool  `json:"apply"`
		Text           string `json:"text"`
		ActorID        string `json:"actorId"`
		ActorAvatarURL string `json:"actorAvatarUrl"`
	}
	if err := json.Unmarshal(raw, &in); err != nil {
		return domain.Event{Kind: domain.EventUnrecognized}, fmt.Errorf("%w: %v", domain.ErrMalformedEvent, err)
	}

	ev := domain.Event{
		ItemID:         in.ItemID,
		Text:           in.Text,
		ActorID:        in.ActorID,
		ActorAvatarURL: in.ActorAvatarURL,
	}
	switch in.Type {
	case domain.TypeJoinItem:
		ev.Kind = domain.EventJoin
	case domain.TypeLeaveItem:
		ev.Kind = domain.EventLeave
	case domain.TypeLike:
		ev.Kind = domain.EventLike
	case domain.TypeSave:
		ev.Kind = domain.EventSave
	case domain.TypeComment:
		ev.Kind = domain.EventComment
	default:
		return domain.Event{Kind: domain.EventUnrecognized}, fmt.Errorf("%w: %q", domain.ErrUnknownEventType, in.Type)
	}

	if ev.ItemID == "" {
		return domain.Event{Kind: domain.EventUnrecognized}, fmt.Errorf("%w: missing itemId", domain.ErrMalformedEvent)
	}
	switch ev.Kind {
	case domain.EventLike, domain.EventSave:
		if in.Apply == nil {
			return domain.Event{Kind: domain.EventUnrecognized}, fmt.Errorf("%w: missing apply", domain.ErrMalformedEvent)
		}
		ev.Apply = *in.Apply
	case domain.EventComment:
		if in.Text == "" {
			return domain.Event{Kind: domain.EventUnrecognized}, fmt.Errorf("%w: missing text", domain.ErrMalformedEvent)
		}
	}
	return ev, nil
}

// HandleFrame processes one inbound frame from a connection. The caller
// invokes it sequentially per connection; arbitrarily many connections run
// concurrently.
func (r *EventRouter) HandleFrame(ctx context.Context, c contracts.Client, raw []byte) {
	ev, err := r.Decode(raw)
	if err != nil {
		r.log.WarnContext(ctx, "router - frame rejected", "conn_id", c.ID(), "username", c.Username(), "err", err)
		r.replyError(ctx, c, "BAD_EVENT", err)
		return
	}

	switch ev.Kind {
	case domain.EventJoin:
		r.reg.RegisterItem(ev.ItemID, c)
		r.interactions.MarkSeen(ctx, c.UserID(), ev.ItemID)
	case domain.EventLeave:
		r.reg.LeaveItem(ev.ItemID, c)
	case domain.EventLike:
		if _, err := r.interactions.Like(ctx, c.Username(), ev.ItemID, ev.Apply); err != nil {
			r.replyError(ctx, c, errorCode(err), err)
		}
	case domain.EventSave:
		if _, err := r.interactions.Save(ctx, c.Username(), ev.ItemID, ev.Apply); err != nil {
			r.replyError(ctx, c, errorCode(err), err)
		}
	case domain.EventComment:
		actor := domain.Principal{UserID: c.UserID(), Username: c.Username()}
		if ev.ActorID != "" {
			actor.UserID = ev.ActorID
		}
		if _, err := r.interactions.Comment(ctx, actor, ev.ItemID, ev.Text, ev.ActorAvatarURL); err != nil {
			r.replyError(ctx, c, errorCode(err), err)
		}
	}
}

// replyError sends a local-only error frame to the originating connection.
// Never broadcast.
func (r *EventRouter) replyError(ctx context.Context, c contracts.Client, code string, cause error) {
	msg := domain.ErrorMessage{
		Type:    domain.TypeError,
		Code:    code,
		Message: cause.Error(),
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	if err := c.Send(ctx, data); err != nil {
		r.log.WarnContext(ctx, "router - error reply failed", "conn_id", c.ID(), "err", err)
	}
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrMemeNotFound):
		return "NOT_FOUND"
	case errors.Is(err, domain.ErrEmptyComment):
		return "BAD_EVENT"
	default:
		return "INTERNAL"
	}
}
