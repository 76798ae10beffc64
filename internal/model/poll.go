package model

import (
	"time"

	"github.com/google/uuid"
)

// Poll is a question with a fixed option set. Votes are an append
// sequence: repeat voting by the same user is structurally possible.
type Poll struct {
	ID        uuid.UUID   `json:"_id"`
	Question  string      `json:"question"`
	Options   []string    `json:"options"`
	CreatedBy *uuid.UUID  `json:"createdBy,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
	Votes     []PollVote  `json:"votes"`
	Replies   []PollReply `json:"replies"`
}

// PollVote records one cast vote.
type PollVote struct {
	UserID      uuid.UUID `json:"userId"`
	OptionIndex int       `json:"optionIndex"`
}

// PollReply is a text reply on a poll.
type PollReply struct {
	ID        uuid.UUID `json:"_id"`
	UserID    uuid.UUID `json:"userId"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`

	// Author display fields, populated on reads.
	Username string `json:"username,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
}

// CreatePollRequest is the body of POST /api/polls.
type CreatePollRequest struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// PollVoteRequest is the body of POST /api/polls/:id/vote.
type PollVoteRequest struct {
	OptionIndex int `json:"optionIndex"`
}
