package model

import (
	"time"

	"github.com/google/uuid"
)

// Notification kinds produced by the fan-out service.
const (
	NotificationFollow     = "follow"
	NotificationReply      = "reply"
	NotificationLike       = "like"
	NotificationSuggestion = "suggestion"
	NotificationShare      = "share"
)

// Notification is one entry in a user's inbox, newest first.
type Notification struct {
	ID          uuid.UUID  `json:"_id"`
	RecipientID uuid.UUID  `json:"to"`
	Kind        string     `json:"type"`
	Message     string     `json:"message"`
	FromUserID  *uuid.UUID `json:"fromUser,omitempty"`
	RelatedID   string     `json:"relatedId,omitempty"`
	MovieTitle  string     `json:"movieTitle,omitempty"`
	MoviePoster string     `json:"moviePoster,omitempty"`
	Read        bool       `json:"read"`
	CreatedAt   time.Time  `json:"createdAt"`

	// Sender display fields, populated on reads.
	FromUsername string `json:"fromUsername,omitempty"`
	FromAvatar   string `json:"fromAvatar,omitempty"`
}

// NotificationEvent is the payload published on the notification_events
// channel and pushed to connected clients.
type NotificationEvent struct {
	RecipientID  uuid.UUID    `json:"recipientId"`
	Notification Notification `json:"notification"`
}
