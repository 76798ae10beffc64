package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UsageRepo tracks per-user daily SceneBot message counts.
type UsageRepo struct {
	pool *pgxpool.Pool
}

func NewUsageRepo(pool *pgxpool.Pool) *UsageRepo {
	return &UsageRepo{pool: pool}
}

// Increment bumps the user's count for the given day and returns the
// new total.
func (r *UsageRepo) Increment(ctx context.Context, userID uuid.UUID, day time.Time) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		INSERT INTO scenebot_usage (user_id, day, count)
		VALUES ($1, $2, 1)
		ON CONFLICT (user_id, day) DO UPDATE SET count = scenebot_usage.count + 1
		RETURNING count`,
		userID, day.Format("2006-01-02")).Scan(&count)
	return count, err
}

// Count returns the user's message count for the day, zero when the
// user has not chatted yet.
func (r *UsageRepo) Count(ctx context.Context, userID uuid.UUID, day time.Time) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(
			(SELECT count FROM scenebot_usage WHERE user_id = $1 AND day = $2), 0)`,
		userID, day.Format("2006-01-02")).Scan(&count)
	return count, err
}
