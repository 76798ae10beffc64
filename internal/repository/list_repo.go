package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/PrintSaud/scene-backend/internal/model"
)

type ListRepo struct {
	pool *pgxpool.Pool
}

func NewListRepo(pool *pgxpool.Pool) *ListRepo {
	return &ListRepo{pool: pool}
}

const listSelect = `
	SELECT ls.id, ls.user_id, ls.title, ls.description, ls.cover_image,
	       ls.is_private, ls.is_ranked, ls.created_at,
	       u.username, u.avatar,
	       (SELECT COUNT(*) FROM list_likes ll WHERE ll.list_id = ls.id),
	       (SELECT COUNT(*) FROM list_saves sv WHERE sv.list_id = ls.id)
	FROM lists ls JOIN users u ON u.id = ls.user_id`

func (r *ListRepo) scanLists(rows pgx.Rows) ([]model.List, error) {
	defer rows.Close()
	lists := []model.List{}
	for rows.Next() {
		var l model.List
		err := rows.Scan(
			&l.ID, &l.UserID, &l.Title, &l.Description, &l.CoverImage,
			&l.IsPrivate, &l.IsRanked, &l.CreatedAt,
			&l.Username, &l.UserAvatar, &l.LikeCount, &l.SaveCount,
		)
		if err != nil {
			return nil, err
		}
		lists = append(lists, l)
	}
	return lists, rows.Err()
}

// Create inserts the list and its entries in one transaction.
func (r *ListRepo) Create(ctx context.Context, l *model.List) error {
	l.ID = uuid.New()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO lists (id, user_id, title, description, cover_image, is_private, is_ranked)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`,
		l.ID, l.UserID, l.Title, l.Description, l.CoverImage, l.IsPrivate, l.IsRanked,
	).Scan(&l.CreatedAt)
	if err != nil {
		return err
	}

	if err := insertEntries(ctx, tx, l.ID, l.Movies); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func insertEntries(ctx context.Context, tx pgx.Tx, listID uuid.UUID, movies []model.ListEntry) error {
	for i, m := range movies {
		_, err := tx.Exec(ctx, `
			INSERT INTO list_entries (list_id, position, tmdb_id, title, poster)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (list_id, tmdb_id) DO NOTHING`,
			listID, i, m.TmdbID, m.Title, m.Poster)
		if err != nil {
			return err
		}
	}
	return nil
}

// FindByID returns one list with its entries in list order.
func (r *ListRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.List, error) {
	rows, err := r.pool.Query(ctx, listSelect+` WHERE ls.id = $1`, id)
	if err != nil {
		return nil, err
	}
	lists, err := r.scanLists(rows)
	if err != nil {
		return nil, err
	}
	if len(lists) == 0 {
		return nil, pgx.ErrNoRows
	}

	l := &lists[0]
	l.Movies, err = r.entries(ctx, l.ID)
	return l, err
}

func (r *ListRepo) entries(ctx context.Context, listID uuid.UUID) ([]model.ListEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT tmdb_id, title, poster FROM list_entries
		WHERE list_id = $1 ORDER BY position`, listID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []model.ListEntry{}
	for rows.Next() {
		var e model.ListEntry
		if err := rows.Scan(&e.TmdbID, &e.Title, &e.Poster); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ByUser returns a user's lists; includePrivate is true for the owner.
func (r *ListRepo) ByUser(ctx context.Context, userID uuid.UUID, includePrivate bool) ([]model.List, error) {
	query := listSelect + ` WHERE ls.user_id = $1`
	if !includePrivate {
		query += ` AND ls.is_private = FALSE`
	}
	rows, err := r.pool.Query(ctx, query+` ORDER BY ls.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	return r.scanLists(rows)
}

// Popular returns public lists ranked by like count.
func (r *ListRepo) Popular(ctx context.Context, limit int) ([]model.List, error) {
	rows, err := r.pool.Query(ctx, listSelect+`
		WHERE ls.is_private = FALSE
		ORDER BY (SELECT COUNT(*) FROM list_likes ll WHERE ll.list_id = ls.id) DESC,
		         ls.created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	return r.scanLists(rows)
}

// ByUsers returns public lists owned by any of the given users.
func (r *ListRepo) ByUsers(ctx context.Context, userIDs []uuid.UUID) ([]model.List, error) {
	rows, err := r.pool.Query(ctx, listSelect+`
		WHERE ls.user_id = ANY($1) AND ls.is_private = FALSE
		ORDER BY ls.created_at DESC`, userIDs)
	if err != nil {
		return nil, err
	}
	return r.scanLists(rows)
}

// SavedBy returns the lists a user has saved.
func (r *ListRepo) SavedBy(ctx context.Context, userID uuid.UUID) ([]model.List, error) {
	rows, err := r.pool.Query(ctx, listSelect+`
		JOIN list_saves sv2 ON sv2.list_id = ls.id AND sv2.user_id = $1
		ORDER BY ls.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	return r.scanLists(rows)
}

// SearchPublic matches public lists by title substring.
func (r *ListRepo) SearchPublic(ctx context.Context, query string, limit int) ([]model.List, error) {
	rows, err := r.pool.Query(ctx, listSelect+`
		WHERE ls.is_private = FALSE AND ls.title ILIKE '%' || $1 || '%'
		ORDER BY ls.created_at DESC LIMIT $2`, query, limit)
	if err != nil {
		return nil, err
	}
	return r.scanLists(rows)
}

// Update rewrites the list's fields; when movies is non-nil the entry
// set is replaced wholesale.
func (r *ListRepo) Update(ctx context.Context, l *model.List, movies *[]model.ListEntry) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		UPDATE lists
		SET title = $2, description = $3, cover_image = $4, is_private = $5, is_ranked = $6
		WHERE id = $1`,
		l.ID, l.Title, l.Description, l.CoverImage, l.IsPrivate, l.IsRanked)
	if err != nil {
		return err
	}

	if movies != nil {
		if _, err = tx.Exec(ctx, `DELETE FROM list_entries WHERE list_id = $1`, l.ID); err != nil {
			return err
		}
		if err = insertEntries(ctx, tx, l.ID, *movies); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// Delete removes the list; entries, likes and saves cascade.
func (r *ListRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM lists WHERE id = $1`, id)
	return err
}

// AddMovie appends one entry; returns false when the movie is already
// in the list.
func (r *ListRepo) AddMovie(ctx context.Context, listID uuid.UUID, entry model.ListEntry) (added bool, err error) {
	tag, err := r.pool.Exec(ctx, `
		INSERT INTO list_entries (list_id, position, tmdb_id, title, poster)
		VALUES ($1,
		        (SELECT COALESCE(MAX(position), -1) + 1 FROM list_entries WHERE list_id = $1),
		        $2, $3, $4)
		ON CONFLICT (list_id, tmdb_id) DO NOTHING`,
		listID, entry.TmdbID, entry.Title, entry.Poster)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// ToggleLike flips the actor's like on the list.
func (r *ListRepo) ToggleLike(ctx context.Context, listID, userID uuid.UUID) (liked bool, count int, err error) {
	return r.toggleSet(ctx, `list_likes`, listID, userID)
}

// ToggleSave flips the actor's save on the list.
func (r *ListRepo) ToggleSave(ctx context.Context, listID, userID uuid.UUID) (saved bool, count int, err error) {
	return r.toggleSet(ctx, `list_saves`, listID, userID)
}

func (r *ListRepo) toggleSet(ctx context.Context, table string, listID, userID uuid.UUID) (active bool, count int, err error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, 0, err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`DELETE FROM `+table+` WHERE list_id = $1 AND user_id = $2`, listID, userID)
	if err != nil {
		return false, 0, err
	}
	if tag.RowsAffected() == 0 {
		if _, err = tx.Exec(ctx, `
			INSERT INTO `+table+` (list_id, user_id) VALUES ($1, $2)
			ON CONFLICT (list_id, user_id) DO NOTHING`, listID, userID); err != nil {
			return false, 0, err
		}
		active = true
	}

	if err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM `+table+` WHERE list_id = $1`, listID).Scan(&count); err != nil {
		return false, 0, err
	}

	return active, count, tx.Commit(ctx)
}
