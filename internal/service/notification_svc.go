package service

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/PrintSaud/scene-backend/internal/model"
)

// inboxStore is the notification storage surface the read side uses.
// *repository.NotificationRepo satisfies it.
type inboxStore interface {
	Append(ctx context.Context, n *model.Notification) error
	List(ctx context.Context, userID uuid.UUID, limit int) ([]model.Notification, error)
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
	UnreadCount(ctx context.Context, userID uuid.UUID) (int, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

// NotificationService is the read side of the inbox. Writes go
// through the fan-out.
type NotificationService struct {
	inbox inboxStore
}

func NewNotificationService(inbox inboxStore) *NotificationService {
	return &NotificationService{inbox: inbox}
}

// SendTest appends a notification addressed to the caller, for
// checking inbox and websocket delivery end to end.
func (s *NotificationService) SendTest(ctx context.Context, userID uuid.UUID) (*model.Notification, error) {
	n := &model.Notification{
		RecipientID: userID,
		Kind:        model.NotificationShare,
		Message:     "Test notification",
		FromUserID:  &userID,
	}
	if err := s.inbox.Append(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// List returns the user's notifications, most recent first.
func (s *NotificationService) List(ctx context.Context, userID uuid.UUID, limit int) ([]model.Notification, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	items, err := s.inbox.List(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return s.inbox.MarkAllRead(ctx, userID)
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.inbox.UnreadCount(ctx, userID)
}

func (s *NotificationService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.inbox.Delete(ctx, id, userID)
}
