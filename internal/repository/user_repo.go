package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/PrintSaud/scene-backend/internal/model"
)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

const userColumns = `id, COALESCE(google_id, ''), username, email, COALESCE(password_hash, ''),
       bio, avatar, profile_backdrop, favorite_character, favorite_actor,
       top_movies, reset_code, reset_code_expires, created_at, updated_at`

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(
		&u.ID, &u.GoogleID, &u.Username, &u.Email, &u.PasswordHash,
		&u.Bio, &u.Avatar, &u.ProfileBackdrop, &u.FavoriteCharacter, &u.FavoriteActor,
		&u.TopMovies, &u.ResetCode, &u.ResetCodeExpires, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user and returns it. Uniqueness of email and
// username is enforced by the schema's case-insensitive indexes.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	u.ID = uuid.New()
	return r.pool.QueryRow(ctx, `
		INSERT INTO users (id, google_id, username, email, password_hash, avatar)
		VALUES ($1, NULLIF($2, ''), $3, $4, NULLIF($5, ''), $6)
		RETURNING created_at, updated_at`,
		u.ID, u.GoogleID, u.Username, u.Email, u.PasswordHash, u.Avatar,
	).Scan(&u.CreatedAt, &u.UpdatedAt)
}

// FindByID returns a single user by id.
func (r *UserRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

// FindByEmail matches case-insensitively.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1)`, email))
}

// FindByUsername matches case-insensitively.
func (r *UserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE LOWER(username) = LOWER($1)`, username))
}

// EmailTaken reports whether any user already holds the address.
func (r *UserRepo) EmailTaken(ctx context.Context, email string) (bool, error) {
	var taken bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE LOWER(email) = LOWER($1))`, email).Scan(&taken)
	return taken, err
}

// UsernameTaken reports whether any user already holds the handle.
func (r *UserRepo) UsernameTaken(ctx context.Context, username string) (bool, error) {
	var taken bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE LOWER(username) = LOWER($1))`, username).Scan(&taken)
	return taken, err
}

// ListPublic returns the public fields of every user.
func (r *UserRepo) ListPublic(ctx context.Context) ([]model.PublicUser, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, username, avatar FROM users ORDER BY username`)
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

// Save persists the mutable profile fields of an already-loaded user.
func (r *UserRepo) Save(ctx context.Context, u *model.User) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE users
		SET username = $2, email = $3, password_hash = NULLIF($4, ''),
		    bio = $5, avatar = $6, profile_backdrop = $7,
		    favorite_character = $8, favorite_actor = $9, top_movies = $10,
		    reset_code = $11, reset_code_expires = $12, updated_at = NOW()
		WHERE id = $1`,
		u.ID, u.Username, u.Email, u.PasswordHash,
		u.Bio, u.Avatar, u.ProfileBackdrop,
		u.FavoriteCharacter, u.FavoriteActor, u.TopMovies,
		u.ResetCode, u.ResetCodeExpires,
	)
	return err
}

// SetAvatar updates just the avatar URL (upload flow).
func (r *UserRepo) SetAvatar(ctx context.Context, id uuid.UUID, url string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET avatar = $2, updated_at = NOW() WHERE id = $1`, id, url)
	return err
}

// SetBackdrop updates the profile backdrop image reference.
func (r *UserRepo) SetBackdrop(ctx context.Context, id uuid.UUID, path string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET profile_backdrop = $2, updated_at = NOW() WHERE id = $1`, id, path)
	return err
}

// SetTopMovies replaces the ordered top-movies list (max 4, enforced
// by the service layer).
func (r *UserRepo) SetTopMovies(ctx context.Context, id uuid.UUID, movies []string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET top_movies = $2, updated_at = NOW() WHERE id = $1`, id, movies)
	return err
}

// PushRecentGif moves a gif to the front of the user's recents and
// trims the set to the 20 most recent.
func (r *UserRepo) PushRecentGif(ctx context.Context, id uuid.UUID, gifURL string) ([]string, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO recent_gifs (user_id, gif_url) VALUES ($1, $2)
		ON CONFLICT (user_id, gif_url) DO UPDATE SET added_at = NOW()`,
		id, gifURL)
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx, `
		DELETE FROM recent_gifs
		WHERE user_id = $1 AND gif_url NOT IN (
			SELECT gif_url FROM recent_gifs
			WHERE user_id = $1 ORDER BY added_at DESC LIMIT 20
		)`, id)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.RecentGifs(ctx, id)
}

// RecentGifs returns the user's recent gifs, newest first.
func (r *UserRepo) RecentGifs(ctx context.Context, id uuid.UUID) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT gif_url FROM recent_gifs
		WHERE user_id = $1 ORDER BY added_at DESC`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	gifs := []string{}
	for rows.Next() {
		var g string
		if err := rows.Scan(&g); err != nil {
			return nil, err
		}
		gifs = append(gifs, g)
	}
	return gifs, rows.Err()
}

// GetStats returns aggregate platform statistics. A user counts as
// active when they logged a movie in the last 24 hours.
func (r *UserRepo) GetStats(ctx context.Context) (*model.StatsResponse, error) {
	var stats model.StatsResponse
	err := r.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM users) AS total_users,
			(SELECT COUNT(*) FROM logs) AS total_logs,
			(SELECT COUNT(*) FROM lists) AS total_lists,
			(SELECT COUNT(*) FROM polls) AS total_polls,
			(SELECT COUNT(*) FROM follows) AS total_follows,
			(SELECT COUNT(DISTINCT user_id) FROM logs
			 WHERE created_at > NOW() - INTERVAL '24 hours') AS active_users_24h`,
	).Scan(
		&stats.TotalUsers, &stats.TotalLogs, &stats.TotalLists,
		&stats.TotalPolls, &stats.TotalFollows, &stats.ActiveUsers24h,
	)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
