package domain

import (
	"time"
)

// User is the persistent account document. LikedMemes and SavedMemes are
// id-sets: membership drives the idempotent like/save toggles.
type User struct {
	ID                string    `bson:"_id,omitempty" json:"userId"`
	Username          string    `bson:"username" json:"username"`
	Email             string    `bson:"email" json:"email"`
	ProfilePictureURL string    `bson:"profilePictureUrl,omitempty" json:"profilePictureUrl,omitempty"`
	LikedMemes        []string  `bson:"likedMemes,omitempty" json:"likedMemes,omitempty"`
	SavedMemes        []string  `bson:"savedMemes,omitempty" json:"savedMemes,omitempty"`
	SeenMemes         []string  `bson:"seenMemes,omitempty" json:"seenMemes,omitempty"`
	CreatedAt         time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Meme is the content item that likes, saves and comments attach to.
type Meme struct {
	ID                string    `bson:"_id,omitempty" json:"id"`
	UserID            string    `bson:"userId" json:"userId"`
	MediaURL          string    `bson:"mediaUrl" json:"mediaUrl"`
	MediaType         string    `bson:"mediaType" json:"mediaType"`
	Caption           string    `bson:"caption" json:"caption"`
	Uploader          string    `bson:"uploader" json:"uploader"`
	LikeCount         int       `bson:"likeCount" json:"likeCount"`
	SaveCount         int       `bson:"saveCount" json:"saveCount"`
	CommentsCount     int       `bson:"commentsCount" json:"commentsCount"`
	Tags              []string  `bson:"tags,omitempty" json:"tags,omitempty"`
	ProfilePictureURL string    `bson:"profilePictureUrl,omitempty" json:"profilePictureUrl,omitempty"`
	CreatedAt         time.Time `bson:"createdAt" json:"createdAt"`
}

type Comment struct {
	ID                string    `bson:"_id,omitempty" json:"id"`
	MemeID            string    `bson:"memeId" json:"memeId"`
	UserID            string    `bson:"userId" json:"userId"`
	Username          string    `bson:"username" json:"username"`
	Text              string    `bson:"text" json:"text"`
	ProfilePictureURL string    `bson:"profilePictureUrl,omitempty" json:"profilePictureUrl,omitempty"`
	CreatedAt         time.Time `bson:"createdAt" json:"createdAt"`
}

// Notification is the durable record handed to the dispatcher when someone
// interacts with another user's meme. Recipient is the display username;
// RecipientID keys the live-connection lookup.
type Notification struct {
	ID                string    `bson:"_id,omitempty" json:"id"`
	Sender            string    `bson:"sender" json:"sender"`
	Recipient         string    `bson:"recipient" json:"recipient"`
	RecipientID       string    `bson:"recipientId" json:"recipientId"`
	Kind              string    `bson:"kind" json:"kind"`
	Message           string    `bson:"message" json:"message"`
	ProfilePictureURL string    `bson:"profilePictureUrl,omitempty" json:"profilePictureUrl,omitempty"`
	MemeID            string    `bson:"memeId" json:"memeId"`
	Read              bool      `bson:"read" json:"read"`
	CreatedAt         time.Time `bson:"createdAt" json:"createdAt"`
}

// Principal is the authenticated identity bound to a connection during the
// websocket handshake.
type Principal struct {
	UserID   string
	Username string
}
