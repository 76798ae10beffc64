package repository

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/PrintSaud/scene-backend/internal/model"
)

// NotifyChannel is the Postgres NOTIFY channel carrying freshly
// appended notifications to whichever process holds the websocket hub.
const NotifyChannel = "notification_events"

type NotificationRepo struct {
	pool *pgxpool.Pool
}

func NewNotificationRepo(pool *pgxpool.Pool) *NotificationRepo {
	return &NotificationRepo{pool: pool}
}

// Append stores the notification and publishes it on the NOTIFY
// channel inside the same transaction so a delivered event always has
// a persisted row behind it.
func (r *NotificationRepo) Append(ctx context.Context, n *model.Notification) error {
	n.ID = uuid.New()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO notifications
			(id, recipient_id, kind, message, from_user_id, related_id, movie_title, movie_poster)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`,
		n.ID, n.RecipientID, n.Kind, n.Message, n.FromUserID,
		n.RelatedID, n.MovieTitle, n.MoviePoster,
	).Scan(&n.CreatedAt)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(model.NotificationEvent{
		RecipientID:  n.RecipientID,
		Notification: *n,
	})
	if err != nil {
		return err
	}
	if _, err = tx.Exec(ctx, `SELECT pg_notify($1, $2)`, NotifyChannel, string(payload)); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// List returns the recipient's notifications newest first, with the
// sender's current username and avatar joined in.
func (r *NotificationRepo) List(ctx context.Context, recipientID uuid.UUID, limit int) ([]model.Notification, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT n.id, n.recipient_id, n.kind, n.message, n.from_user_id,
		       n.related_id, n.movie_title, n.movie_poster, n.read, n.created_at,
		       COALESCE(u.username, ''), COALESCE(u.avatar, '')
		FROM notifications n
		LEFT JOIN users u ON u.id = n.from_user_id
		WHERE n.recipient_id = $1
		ORDER BY n.created_at DESC
		LIMIT $2`, recipientID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []model.Notification{}
	for rows.Next() {
		var n model.Notification
		err := rows.Scan(
			&n.ID, &n.RecipientID, &n.Kind, &n.Message, &n.FromUserID,
			&n.RelatedID, &n.MovieTitle, &n.MoviePoster, &n.Read, &n.CreatedAt,
			&n.FromUsername, &n.FromAvatar,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	return items, rows.Err()
}

func (r *NotificationRepo) MarkAllRead(ctx context.Context, recipientID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE notifications SET read = TRUE
		WHERE recipient_id = $1 AND read = FALSE`, recipientID)
	return err
}

func (r *NotificationRepo) UnreadCount(ctx context.Context, recipientID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM notifications
		WHERE recipient_id = $1 AND read = FALSE`, recipientID).Scan(&count)
	return count, err
}

// Delete removes one notification, but only from its own inbox.
func (r *NotificationRepo) Delete(ctx context.Context, id, recipientID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `
		DELETE FROM notifications WHERE id = $1 AND recipient_id = $2`, id, recipientID)
	return err
}
