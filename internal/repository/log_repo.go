package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/PrintSaud/scene-backend/internal/model"
)

type LogRepo struct {
	pool *pgxpool.Pool
}

func NewLogRepo(pool *pgxpool.Pool) *LogRepo {
	return &LogRepo{pool: pool}
}

const logSelect = `
	SELECT l.id, l.user_id, l.tmdb_id, l.title, l.poster, l.review, l.rating,
	       l.rewatch, l.watched_at, l.gif, l.image, l.custom_backdrop, l.created_at,
	       u.username, u.avatar,
	       (SELECT COUNT(*) FROM log_likes ll WHERE ll.log_id = l.id),
	       (SELECT COUNT(*) FROM replies rp WHERE rp.log_id = l.id)
	FROM logs l JOIN users u ON u.id = l.user_id`

func scanLogRows(rows pgx.Rows) ([]model.Log, error) {
	defer rows.Close()
	logs := []model.Log{}
	for rows.Next() {
		var l model.Log
		err := rows.Scan(
			&l.ID, &l.UserID, &l.TmdbID, &l.Title, &l.Poster, &l.Review, &l.Rating,
			&l.Rewatch, &l.WatchedAt, &l.Gif, &l.Image, &l.CustomBackdrop, &l.CreatedAt,
			&l.Username, &l.UserAvatar, &l.LikeCount, &l.ReplyCount,
		)
		if err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// Create inserts a log and fills in its generated fields.
func (r *LogRepo) Create(ctx context.Context, l *model.Log) error {
	l.ID = uuid.New()
	return r.pool.QueryRow(ctx, `
		INSERT INTO logs (id, user_id, tmdb_id, title, poster, review, rating,
		                  rewatch, watched_at, gif, image, custom_backdrop)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at`,
		l.ID, l.UserID, l.TmdbID, l.Title, l.Poster, l.Review, l.Rating,
		l.Rewatch, l.WatchedAt, l.Gif, l.Image, l.CustomBackdrop,
	).Scan(&l.CreatedAt)
}

// FindByID returns one log without its reply thread.
func (r *LogRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Log, error) {
	rows, err := r.pool.Query(ctx, logSelect+` WHERE l.id = $1`, id)
	if err != nil {
		return nil, err
	}
	logs, err := scanLogRows(rows)
	if err != nil {
		return nil, err
	}
	if len(logs) == 0 {
		return nil, pgx.ErrNoRows
	}
	return &logs[0], nil
}

// ByUser returns a user's logs, newest first.
func (r *LogRepo) ByUser(ctx context.Context, userID uuid.UUID) ([]model.Log, error) {
	rows, err := r.pool.Query(ctx,
		logSelect+` WHERE l.user_id = $1 ORDER BY l.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	return scanLogRows(rows)
}

// Feed returns logs by any of the given users, newest first.
func (r *LogRepo) Feed(ctx context.Context, userIDs []uuid.UUID, limit int) ([]model.Log, error) {
	rows, err := r.pool.Query(ctx,
		logSelect+` WHERE l.user_id = ANY($1) ORDER BY l.created_at DESC LIMIT $2`,
		userIDs, limit)
	if err != nil {
		return nil, err
	}
	return scanLogRows(rows)
}

// ByMoviePopular returns reviewed logs for a movie, newest first.
func (r *LogRepo) ByMoviePopular(ctx context.Context, tmdbID, limit int) ([]model.Log, error) {
	rows, err := r.pool.Query(ctx,
		logSelect+` WHERE l.tmdb_id = $1 AND l.review <> ''
		ORDER BY l.created_at DESC LIMIT $2`, tmdbID, limit)
	if err != nil {
		return nil, err
	}
	return scanLogRows(rows)
}

// ByMovieFromUsers returns a movie's logs restricted to the given
// authors (friend feeds).
func (r *LogRepo) ByMovieFromUsers(ctx context.Context, tmdbID int, userIDs []uuid.UUID) ([]model.Log, error) {
	rows, err := r.pool.Query(ctx,
		logSelect+` WHERE l.tmdb_id = $1 AND l.user_id = ANY($2)
		ORDER BY l.created_at DESC`, tmdbID, userIDs)
	if err != nil {
		return nil, err
	}
	return scanLogRows(rows)
}

// FeedSince returns logs from the given users created after the cutoff.
func (r *LogRepo) FeedSince(ctx context.Context, userIDs []uuid.UUID, since time.Time) ([]model.Log, error) {
	rows, err := r.pool.Query(ctx,
		logSelect+` WHERE l.user_id = ANY($1) AND l.created_at >= $2
		ORDER BY l.created_at DESC`, userIDs, since)
	if err != nil {
		return nil, err
	}
	return scanLogRows(rows)
}

// Update persists the editable fields.
func (r *LogRepo) Update(ctx context.Context, l *model.Log) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE logs
		SET review = $2, rating = $3, rewatch = $4, gif = $5, image = $6, custom_backdrop = $7
		WHERE id = $1`,
		l.ID, l.Review, l.Rating, l.Rewatch, l.Gif, l.Image, l.CustomBackdrop)
	return err
}

// Delete removes the log; likes and replies cascade.
func (r *LogRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM logs WHERE id = $1`, id)
	return err
}

// ToggleLike flips the actor's membership in the log's like set and
// returns the new state with the updated count.
func (r *LogRepo) ToggleLike(ctx context.Context, logID, userID uuid.UUID) (liked bool, count int, err error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, 0, err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`DELETE FROM log_likes WHERE log_id = $1 AND user_id = $2`, logID, userID)
	if err != nil {
		return false, 0, err
	}
	if tag.RowsAffected() == 0 {
		if _, err = tx.Exec(ctx, `
			INSERT INTO log_likes (log_id, user_id) VALUES ($1, $2)
			ON CONFLICT (log_id, user_id) DO NOTHING`, logID, userID); err != nil {
			return false, 0, err
		}
		liked = true
	}

	if err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM log_likes WHERE log_id = $1`, logID).Scan(&count); err != nil {
		return false, 0, err
	}

	return liked, count, tx.Commit(ctx)
}

// AddReply appends a reply to the log's thread.
func (r *LogRepo) AddReply(ctx context.Context, reply *model.Reply) error {
	reply.ID = uuid.New()
	return r.pool.QueryRow(ctx, `
		INSERT INTO replies (id, log_id, user_id, parent_reply_id, text, gif, image)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`,
		reply.ID, reply.LogID, reply.UserID, reply.ParentReplyID,
		reply.Text, reply.Gif, reply.Image,
	).Scan(&reply.CreatedAt)
}

// Replies returns the log's thread oldest-first with author fields.
func (r *LogRepo) Replies(ctx context.Context, logID uuid.UUID) ([]model.Reply, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT rp.id, rp.log_id, rp.user_id, rp.parent_reply_id,
		       rp.text, rp.gif, rp.image, rp.created_at,
		       u.username, u.avatar,
		       (SELECT COUNT(*) FROM reply_likes rl WHERE rl.reply_id = rp.id)
		FROM replies rp JOIN users u ON u.id = rp.user_id
		WHERE rp.log_id = $1
		ORDER BY rp.created_at`, logID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	replies := []model.Reply{}
	for rows.Next() {
		var rep model.Reply
		err := rows.Scan(
			&rep.ID, &rep.LogID, &rep.UserID, &rep.ParentReplyID,
			&rep.Text, &rep.Gif, &rep.Image, &rep.CreatedAt,
			&rep.Username, &rep.UserAvatar, &rep.LikeCount,
		)
		if err != nil {
			return nil, err
		}
		replies = append(replies, rep)
	}
	return replies, rows.Err()
}

// FindReply returns one reply by id.
func (r *LogRepo) FindReply(ctx context.Context, replyID uuid.UUID) (*model.Reply, error) {
	var rep model.Reply
	err := r.pool.QueryRow(ctx, `
		SELECT id, log_id, user_id, parent_reply_id, text, gif, image, created_at
		FROM replies WHERE id = $1`, replyID).Scan(
		&rep.ID, &rep.LogID, &rep.UserID, &rep.ParentReplyID,
		&rep.Text, &rep.Gif, &rep.Image, &rep.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rep, nil
}

// DeleteReply hard-deletes a reply from the thread.
func (r *LogRepo) DeleteReply(ctx context.Context, replyID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM replies WHERE id = $1`, replyID)
	return err
}

// ToggleReplyLike flips the actor's like on a reply.
func (r *LogRepo) ToggleReplyLike(ctx context.Context, replyID, userID uuid.UUID) (liked bool, count int, err error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, 0, err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`DELETE FROM reply_likes WHERE reply_id = $1 AND user_id = $2`, replyID, userID)
	if err != nil {
		return false, 0, err
	}
	if tag.RowsAffected() == 0 {
		if _, err = tx.Exec(ctx, `
			INSERT INTO reply_likes (reply_id, user_id) VALUES ($1, $2)
			ON CONFLICT (reply_id, user_id) DO NOTHING`, replyID, userID); err != nil {
			return false, 0, err
		}
		liked = true
	}

	if err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM reply_likes WHERE reply_id = $1`, replyID).Scan(&count); err != nil {
		return false, 0, err
	}

	return liked, count, tx.Commit(ctx)
}
