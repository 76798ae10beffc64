package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/PrintSaud/scene-backend/internal/model"
)

// FollowRepo stores the social graph as a single-sourced edge table.
// A user's followers are derived by query, so the following/followers
// mirror cannot diverge and the toggle is idempotent under races.
type FollowRepo struct {
	pool *pgxpool.Pool
}

func NewFollowRepo(pool *pgxpool.Pool) *FollowRepo {
	return &FollowRepo{pool: pool}
}

// Toggle flips the follower->followee edge and reports the new state.
// A delete that removes a row means "was following, now not"; otherwise
// an insert (ON CONFLICT DO NOTHING absorbs concurrent duplicates).
func (r *FollowRepo) Toggle(ctx context.Context, followerID, followeeID uuid.UUID) (following bool, err error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		DELETE FROM follows WHERE follower_id = $1 AND followee_id = $2`,
		followerID, followeeID)
	if err != nil {
		return false, err
	}

	if tag.RowsAffected() == 0 {
		_, err = tx.Exec(ctx, `
			INSERT INTO follows (follower_id, followee_id) VALUES ($1, $2)
			ON CONFLICT (follower_id, followee_id) DO NOTHING`,
			followerID, followeeID)
		if err != nil {
			return false, err
		}
		following = true
	}

	return following, tx.Commit(ctx)
}

// IsFollowing reports whether the edge exists.
func (r *FollowRepo) IsFollowing(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	var ok bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM follows WHERE follower_id = $1 AND followee_id = $2)`,
		followerID, followeeID).Scan(&ok)
	return ok, err
}

// Following returns the users the given user follows.
func (r *FollowRepo) Following(ctx context.Context, userID uuid.UUID) ([]model.PublicUser, error) {
	return r.edgeUsers(ctx, `
		SELECT u.id, u.username, u.avatar
		FROM follows f JOIN users u ON u.id = f.followee_id
		WHERE f.follower_id = $1
		ORDER BY f.created_at DESC`, userID)
}

// Followers returns the users following the given user, derived from
// the same edge table.
func (r *FollowRepo) Followers(ctx context.Context, userID uuid.UUID) ([]model.PublicUser, error) {
	return r.edgeUsers(ctx, `
		SELECT u.id, u.username, u.avatar
		FROM follows f JOIN users u ON u.id = f.follower_id
		WHERE f.followee_id = $1
		ORDER BY f.created_at DESC`, userID)
}

// FollowingIDs returns just the followee ids (feed queries).
func (r *FollowRepo) FollowingIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT followee_id FROM follows WHERE follower_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []uuid.UUID{}
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *FollowRepo) edgeUsers(ctx context.Context, query string, userID uuid.UUID) ([]model.PublicUser, error) {
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []model.PublicUser{}
	for rows.Next() {
		var u model.PublicUser
		if err := rows.Scan(&u.ID, &u.Username, &u.Avatar); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
