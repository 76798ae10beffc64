package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/PrintSaud/scene-backend/internal/model"
)

func TestAddReply_RequiresContent(t *testing.T) {
	svc := &LogService{}

	_, err := svc.AddReply(context.Background(), model.PublicUser{ID: uuid.New()}, uuid.New(), model.ReplyRequest{})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("empty reply should be rejected, got %v", err)
	}
}

func TestAddReply_BadParentID(t *testing.T) {
	svc := &LogService{}

	// The parent id is parsed before any storage access.
	_, err := svc.AddReply(context.Background(), model.PublicUser{ID: uuid.New()}, uuid.New(), model.ReplyRequest{
		Text:          "agreed",
		ParentReplyID: "not-a-uuid",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("bad parent id should be rejected, got %v", err)
	}
}

// fakeLogStore serves a single stored log; the embedded interface
// panics on anything else, which is the point: ownership checks must
// stop before any other storage access.
type fakeLogStore struct {
	logStore
	entry *model.Log
}

func (f *fakeLogStore) FindByID(ctx context.Context, id uuid.UUID) (*model.Log, error) {
	if f.entry == nil || f.entry.ID != id {
		return nil, pgx.ErrNoRows
	}
	return f.entry, nil
}

func TestLogOwnership(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()
	entry := &model.Log{ID: uuid.New(), UserID: owner, Title: "Heat"}
	svc := &LogService{logs: &fakeLogStore{entry: entry}}
	ctx := context.Background()

	review := "not mine to edit"
	if _, err := svc.Update(ctx, stranger, entry.ID, model.UpdateLogRequest{Review: &review}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("update by non-owner should be forbidden, got %v", err)
	}
	if err := svc.Delete(ctx, stranger, entry.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("delete by non-owner should be forbidden, got %v", err)
	}
	if err := svc.Delete(ctx, stranger, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing log should be not-found, got %v", err)
	}
}

func TestParseWatchedAt(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"rfc3339", "2026-02-14T20:30:00Z", time.Date(2026, 2, 14, 20, 30, 0, 0, time.UTC)},
		{"bare date", "2026-02-14", time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseWatchedAt(tt.input); !got.Equal(tt.want) {
				t.Errorf("parseWatchedAt(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}

	// Empty and garbage both mean "now".
	for _, raw := range []string{"", "yesterday"} {
		got := parseWatchedAt(raw)
		if time.Since(got) > time.Minute {
			t.Errorf("parseWatchedAt(%q) should be close to now, got %v", raw, got)
		}
	}
}
