package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PrefsRepo stores per-user movie preference sets: watchlist,
// favorites and per-user poster overrides. Composite primary keys give
// the sets true set semantics, so add/remove/toggle are idempotent.
type PrefsRepo struct {
	pool *pgxpool.Pool
}

func NewPrefsRepo(pool *pgxpool.Pool) *PrefsRepo {
	return &PrefsRepo{pool: pool}
}

// AddToWatchlist is a set add; re-adding is a no-op.
func (r *PrefsRepo) AddToWatchlist(ctx context.Context, userID uuid.UUID, tmdbID int) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO watchlist_items (user_id, tmdb_id) VALUES ($1, $2)
		ON CONFLICT (user_id, tmdb_id) DO NOTHING`, userID, tmdbID)
	return err
}

// RemoveFromWatchlist is a set remove; removing a missing item is a no-op.
func (r *PrefsRepo) RemoveFromWatchlist(ctx context.Context, userID uuid.UUID, tmdbID int) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM watchlist_items WHERE user_id = $1 AND tmdb_id = $2`, userID, tmdbID)
	return err
}

// ToggleWatchlist flips membership and reports the new state.
func (r *PrefsRepo) ToggleWatchlist(ctx context.Context, userID uuid.UUID, tmdbID int) (inWatchlist bool, err error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM watchlist_items WHERE user_id = $1 AND tmdb_id = $2`, userID, tmdbID)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() > 0 {
		return false, nil
	}
	return true, r.AddToWatchlist(ctx, userID, tmdbID)
}

// Watchlist returns the raw movie ids, most recently added first.
func (r *PrefsRepo) Watchlist(ctx context.Context, userID uuid.UUID) ([]int, error) {
	return r.movieIDs(ctx, `
		SELECT tmdb_id FROM watchlist_items
		WHERE user_id = $1 ORDER BY added_at DESC`, userID)
}

// InWatchlist reports membership for a single movie.
func (r *PrefsRepo) InWatchlist(ctx context.Context, userID uuid.UUID, tmdbID int) (bool, error) {
	var ok bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM watchlist_items WHERE user_id = $1 AND tmdb_id = $2)`,
		userID, tmdbID).Scan(&ok)
	return ok, err
}

// AddFavorite is a set add.
func (r *PrefsRepo) AddFavorite(ctx context.Context, userID uuid.UUID, tmdbID int) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO favorite_movies (user_id, tmdb_id) VALUES ($1, $2)
		ON CONFLICT (user_id, tmdb_id) DO NOTHING`, userID, tmdbID)
	return err
}

// RemoveFavorite is a set remove.
func (r *PrefsRepo) RemoveFavorite(ctx context.Context, userID uuid.UUID, tmdbID int) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM favorite_movies WHERE user_id = $1 AND tmdb_id = $2`, userID, tmdbID)
	return err
}

// Favorites returns the raw favorite movie ids.
func (r *PrefsRepo) Favorites(ctx context.Context, userID uuid.UUID) ([]int, error) {
	return r.movieIDs(ctx, `
		SELECT tmdb_id FROM favorite_movies
		WHERE user_id = $1 ORDER BY added_at DESC`, userID)
}

// SetUserPoster upserts the user's personal poster override for a movie.
func (r *PrefsRepo) SetUserPoster(ctx context.Context, userID uuid.UUID, tmdbID int, posterURL string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO user_posters (user_id, tmdb_id, poster_url) VALUES ($1, $2, $3)
		ON CONFLICT (user_id, tmdb_id) DO UPDATE SET poster_url = EXCLUDED.poster_url`,
		userID, tmdbID, posterURL)
	return err
}

// UserPoster returns the override, or "" when none is set.
func (r *PrefsRepo) UserPoster(ctx context.Context, userID uuid.UUID, tmdbID int) (string, error) {
	var url string
	err := r.pool.QueryRow(ctx,
		`SELECT poster_url FROM user_posters WHERE user_id = $1 AND tmdb_id = $2`,
		userID, tmdbID).Scan(&url)
	if err == pgx.ErrNoRows {
		return "", nil
	}
	return url, err
}

func (r *PrefsRepo) movieIDs(ctx context.Context, query string, userID uuid.UUID) ([]int, error) {
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []int{}
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
