package model

import (
	"time"

	"github.com/google/uuid"
)

// Log is a single movie review/rating event with a reply thread.
type Log struct {
	ID             uuid.UUID `json:"_id"`
	UserID         uuid.UUID `json:"userId"`
	TmdbID         int       `json:"movie"`
	Title          string    `json:"title,omitempty"`
	Poster         string    `json:"poster,omitempty"`
	Review         string    `json:"review"`
	Rating         float64   `json:"rating"`
	Rewatch        bool      `json:"rewatch"`
	WatchedAt      time.Time `json:"watchedAt"`
	Gif            string    `json:"gif,omitempty"`
	Image          string    `json:"image,omitempty"`
	CustomBackdrop string    `json:"customBackdrop,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`

	// Populated on reads.
	Username   string  `json:"username,omitempty"`
	UserAvatar string  `json:"avatar,omitempty"`
	LikeCount  int     `json:"likesCount"`
	ReplyCount int     `json:"repliesCount"`
	Replies    []Reply `json:"replies,omitempty"`
}

// Reply is one entry in a log's reply thread. At least one of
// Text/Gif/Image must be present.
type Reply struct {
	ID            uuid.UUID  `json:"_id"`
	LogID         uuid.UUID  `json:"logId"`
	UserID        uuid.UUID  `json:"userId"`
	ParentReplyID *uuid.UUID `json:"parentReplyId,omitempty"`
	Text          string     `json:"text,omitempty"`
	Gif           string     `json:"gif,omitempty"`
	Image         string     `json:"image,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`

	Username   string `json:"username,omitempty"`
	UserAvatar string `json:"avatar,omitempty"`
	LikeCount  int    `json:"likesCount"`
}

// HasContent reports whether the reply carries any content at all.
func (r *Reply) HasContent() bool {
	return r.Text != "" || r.Gif != "" || r.Image != ""
}

// CreateLogRequest is the body of POST /api/logs.
type CreateLogRequest struct {
	TmdbID         int     `json:"movieId"`
	Title          string  `json:"title"`
	Poster         string  `json:"poster"`
	Review         string  `json:"review"`
	Rating         float64 `json:"rating"`
	Rewatch        bool    `json:"rewatch"`
	WatchedAt      string  `json:"watchedAt"`
	Gif            string  `json:"gif"`
	Image          string  `json:"image"`
	CustomBackdrop string  `json:"customBackdrop"`
}

// UpdateLogRequest is the body of PATCH /api/logs/:logId.
type UpdateLogRequest struct {
	Review         *string  `json:"review"`
	Rating         *float64 `json:"rating"`
	Rewatch        *bool    `json:"rewatch"`
	Gif            *string  `json:"gif"`
	Image          *string  `json:"image"`
	CustomBackdrop *string  `json:"customBackdrop"`
}

// ReplyRequest is the body of POST /api/logs/:id/reply.
type ReplyRequest struct {
	Text          string `json:"text"`
	Gif           string `json:"gif"`
	Image         string `json:"image"`
	ParentReplyID string `json:"parentReplyId"`
}

// ToggleResponse reports the authoritative state after a like/save/
// follow toggle. Callers must not assume monotonic growth.
type ToggleResponse struct {
	Active bool `json:"active"`
	Count  int  `json:"count"`
}
