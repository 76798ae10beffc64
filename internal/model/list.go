package model

import (
	"time"

	"github.com/google/uuid"
)

// List is an ordered, ownable collection of movie references.
type List struct {
	ID          uuid.UUID   `json:"_id"`
	UserID      uuid.UUID   `json:"userId"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	CoverImage  string      `json:"coverImage,omitempty"`
	IsPrivate   bool        `json:"isPrivate"`
	IsRanked    bool        `json:"isRanked"`
	Movies      []ListEntry `json:"movies"`
	CreatedAt   time.Time   `json:"createdAt"`

	Username   string `json:"username,omitempty"`
	UserAvatar string `json:"avatar,omitempty"`
	LikeCount  int    `json:"likesCount"`
	SaveCount  int    `json:"savesCount"`
}

// ListEntry is one movie in a list, in list order.
type ListEntry struct {
	TmdbID int    `json:"id"`
	Title  string `json:"title"`
	Poster string `json:"poster,omitempty"`
}

// CreateListRequest is the body of POST /api/lists.
type CreateListRequest struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	CoverImage  string      `json:"coverImage"`
	IsPrivate   bool        `json:"isPrivate"`
	IsRanked    bool        `json:"isRanked"`
	Movies      []ListEntry `json:"movies"`
}

// UpdateListRequest is the body of PATCH /api/lists/:id.
type UpdateListRequest struct {
	Title       *string      `json:"title"`
	Description *string      `json:"description"`
	CoverImage  *string      `json:"coverImage"`
	IsPrivate   *bool        `json:"isPrivate"`
	IsRanked    *bool        `json:"isRanked"`
	Movies      *[]ListEntry `json:"movies"`
}
