package domain

import "errors"

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrMemeNotFound     = errors.New("meme not found")
	ErrInvalidToken     = errors.New("invalid token")
	ErrMissingToken     = errors.New("missing token")
	ErrEmptyComment     = errors.New("comment text is empty")
	ErrMalformedEvent   = errors.New("malformed event")
	ErrUnknownEventType = errors.New("unknown event type")
)
