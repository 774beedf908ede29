package domain

const (
	TypeJoinItem  = "JOIN_ITEM"
	TypeLeaveItem = "LEAVE_ITEM"
	TypeLike      = "LIKE"
	TypeSave      = "SAVE"
	TypeComment   = "COMMENT"
	TypeError     = "ERROR"
)

// EventKind is the closed set of inbound event variants. Frames are decoded
// exactly once at the protocol boundary; everything downstream switches on
// the kind, never on the raw type string.
type EventKind int

const (
	EventUnrecognized EventKind = iota
	EventJoin
	EventLeave
	EventLike
	EventSave
	EventComment
)

func (k EventKind) String() string {
	switch k {
	case EventJoin:
		return TypeJoinItem
	case EventLeave:
		return TypeLeaveItem
	case EventLike:
		return TypeLike
	case EventSave:
		return TypeSave
	case EventComment:
		return TypeComment
	}
	return "UNRECOGNIZED"
}

// Event is one decoded inbound frame. Only the fields of the matching
// variant are populated.
type Event struct {
	Kind           EventKind
	ItemID         string
	Apply          bool   // LIKE / SAVE: apply or undo
	Text           string // COMMENT
	ActorID        string
	ActorAvatarURL string
}

// ReactionPayload is broadcast to an item's subscribers after a LIKE or SAVE
// reaches the store. Exactly one of LikeCount/SaveCount is set.
type ReactionPayload struct {
	Type      string `json:"type"`
	ItemID    string `json:"itemId"`
	Username  string `json:"username"`
	Action    string `json:"action"`
	Status    int    `json:"status"`
	Message   string `json:"message"`
	LikeCount *int   `json:"likeCount,omitempty"`
	SaveCount *int   `json:"saveCount,omitempty"`
}

// CommentPayload is the full comment entity plus the frame type tag.
type CommentPayload struct {
	Type string `json:"type"`
	Comment
}

// ErrorMessage is the local-only reply for malformed or unrecognized frames.
type ErrorMessage struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
