package service

import (
	"testing"

	"github.com/google/uuid"

	"github.com/PrintSaud/scene-backend/internal/model"
)

func TestRandomPoll(t *testing.T) {
	if got := randomPoll(nil); got != nil {
		t.Fatalf("no polls should give nil, got %+v", got)
	}

	polls := []model.Poll{
		{ID: uuid.New(), Question: "best heist movie?"},
		{ID: uuid.New(), Question: "best needle drop?"},
		{ID: uuid.New(), Question: "most rewatchable?"},
	}
	known := map[uuid.UUID]bool{}
	for _, p := range polls {
		known[p.ID] = true
	}

	// Every draw comes from the candidate set.
	for i := 0; i < 50; i++ {
		got := randomPoll(polls)
		if got == nil {
			t.Fatal("non-empty set should always yield a poll")
		}
		if !known[got.ID] {
			t.Fatalf("drew a poll outside the candidate set: %+v", got)
		}
	}

	only := polls[:1]
	if got := randomPoll(only); got == nil || got.ID != only[0].ID {
		t.Fatal("single candidate should always be drawn")
	}
}
