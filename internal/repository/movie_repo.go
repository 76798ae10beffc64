package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/PrintSaud/scene-backend/internal/model"
)

type MovieRepo struct {
	pool *pgxpool.Pool
}

func NewMovieRepo(pool *pgxpool.Pool) *MovieRepo {
	return &MovieRepo{pool: pool}
}

// Upsert refreshes the local copy of a movie's display fields.
func (r *MovieRepo) Upsert(ctx context.Context, m *model.Movie) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO movies (tmdb_id, title, overview, poster_path, release_date, genres, runtime)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (tmdb_id) DO UPDATE SET
			title = EXCLUDED.title,
			overview = EXCLUDED.overview,
			poster_path = EXCLUDED.poster_path,
			release_date = EXCLUDED.release_date,
			genres = EXCLUDED.genres,
			runtime = EXCLUDED.runtime`,
		m.TmdbID, m.Title, m.Overview, m.PosterPath, m.ReleaseDate, m.Genres, m.Runtime)
	return err
}

func (r *MovieRepo) Get(ctx context.Context, tmdbID int) (*model.Movie, error) {
	var m model.Movie
	err := r.pool.QueryRow(ctx, `
		SELECT tmdb_id, title, overview, poster_path, release_date, genres, runtime, created_at
		FROM movies WHERE tmdb_id = $1`, tmdbID).Scan(
		&m.TmdbID, &m.Title, &m.Overview, &m.PosterPath, &m.ReleaseDate,
		&m.Genres, &m.Runtime, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SetGlobalPoster replaces the community poster override for a movie.
func (r *MovieRepo) SetGlobalPoster(ctx context.Context, p *model.CustomPoster) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO custom_posters (tmdb_id, poster_url, updated_by, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (tmdb_id) DO UPDATE SET
			poster_url = EXCLUDED.poster_url,
			updated_by = EXCLUDED.updated_by,
			updated_at = now()
		RETURNING updated_at`,
		p.TmdbID, p.PosterURL, p.UpdatedBy,
	).Scan(&p.UpdatedAt)
}

// GlobalPoster returns the override URL, or "" when none is set.
func (r *MovieRepo) GlobalPoster(ctx context.Context, tmdbID int) (string, error) {
	var url string
	err := r.pool.QueryRow(ctx, `
		SELECT poster_url FROM custom_posters WHERE tmdb_id = $1`, tmdbID).Scan(&url)
	if err == pgx.ErrNoRows {
		return "", nil
	}
	return url, err
}
