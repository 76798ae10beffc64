package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/PrintSaud/scene-backend/internal/model"
)

// fakeInboxStore holds notifications in insertion order so tests can
// hand back unsorted storage results.
type fakeInboxStore struct {
	items []model.Notification
}

func (f *fakeInboxStore) Append(ctx context.Context, n *model.Notification) error {
	f.items = append(f.items, *n)
	return nil
}

func (f *fakeInboxStore) List(ctx context.Context, userID uuid.UUID, limit int) ([]model.Notification, error) {
	out := make([]model.Notification, 0, limit)
	for _, n := range f.items {
		if n.RecipientID != userID {
			continue
		}
		out = append(out, n)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeInboxStore) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	for i := range f.items {
		if f.items[i].RecipientID == userID {
			f.items[i].Read = true
		}
	}
	return nil
}

func (f *fakeInboxStore) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	count := 0
	for _, n := range f.items {
		if n.RecipientID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (f *fakeInboxStore) Delete(ctx context.Context, id, userID uuid.UUID) error {
	for i, n := range f.items {
		if n.ID == id && n.RecipientID == userID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return nil
}

func TestNotificationList_MostRecentFirst(t *testing.T) {
	user := uuid.New()
	base := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

	// Stored out of order on purpose.
	inbox := &fakeInboxStore{items: []model.Notification{
		{ID: uuid.New(), RecipientID: user, Message: "middle", CreatedAt: base.Add(time.Hour)},
		{ID: uuid.New(), RecipientID: user, Message: "oldest", CreatedAt: base},
		{ID: uuid.New(), RecipientID: user, Message: "newest", CreatedAt: base.Add(2 * time.Hour)},
	}}
	svc := NewNotificationService(inbox)

	got, err := svc.List(context.Background(), user, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"newest", "middle", "oldest"}
	if len(got) != len(want) {
		t.Fatalf("got %d notifications, want %d", len(got), len(want))
	}
	for i, msg := range want {
		if got[i].Message != msg {
			t.Errorf("position %d = %q, want %q", i, got[i].Message, msg)
		}
	}
}

func TestNotificationList_ClampsLimit(t *testing.T) {
	user := uuid.New()
	inbox := &fakeInboxStore{}
	for i := 0; i < 60; i++ {
		inbox.items = append(inbox.items, model.Notification{
			ID:          uuid.New(),
			RecipientID: user,
			CreatedAt:   time.Date(2026, 4, 1, 9, i, 0, 0, time.UTC),
		})
	}
	svc := NewNotificationService(inbox)

	for _, limit := range []int{0, -5, 1000} {
		got, err := svc.List(context.Background(), user, limit)
		if err != nil {
			t.Fatalf("List(limit=%d): %v", limit, err)
		}
		if len(got) != 50 {
			t.Errorf("limit %d should clamp to 50, got %d", limit, len(got))
		}
	}
}

func TestSendTest_SelfAddressed(t *testing.T) {
	user := uuid.New()
	inbox := &fakeInboxStore{}
	svc := NewNotificationService(inbox)

	n, err := svc.SendTest(context.Background(), user)
	if err != nil {
		t.Fatalf("SendTest: %v", err)
	}
	if n.RecipientID != user {
		t.Error("test notification should address the caller")
	}
	if n.FromUserID == nil || *n.FromUserID != user {
		t.Error("test notification should come from the caller")
	}
	if len(inbox.items) != 1 {
		t.Fatalf("expected 1 stored notification, got %d", len(inbox.items))
	}
}
