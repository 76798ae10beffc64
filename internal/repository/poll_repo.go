package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/PrintSaud/scene-backend/internal/model"
)

type PollRepo struct {
	pool *pgxpool.Pool
}

func NewPollRepo(pool *pgxpool.Pool) *PollRepo {
	return &PollRepo{pool: pool}
}

func (r *PollRepo) Create(ctx context.Context, p *model.Poll) error {
	p.ID = uuid.New()
	return r.pool.QueryRow(ctx, `
		INSERT INTO polls (id, question, options, created_by)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`,
		p.ID, p.Question, p.Options, p.CreatedBy,
	).Scan(&p.CreatedAt)
}

// FindByID returns one poll with its votes and replies.
func (r *PollRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Poll, error) {
	var p model.Poll
	err := r.pool.QueryRow(ctx, `
		SELECT id, question, options, created_by, created_at
		FROM polls WHERE id = $1`, id).Scan(
		&p.ID, &p.Question, &p.Options, &p.CreatedBy, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	if p.Votes, err = r.votes(ctx, id); err != nil {
		return nil, err
	}
	p.Replies, err = r.Replies(ctx, id)
	return &p, err
}

// List returns polls newest first, each with its votes. Replies are
// only loaded on the single-poll view.
func (r *PollRepo) List(ctx context.Context, limit int) ([]model.Poll, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, question, options, created_by, created_at
		FROM polls ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	polls := []model.Poll{}
	for rows.Next() {
		var p model.Poll
		if err := rows.Scan(&p.ID, &p.Question, &p.Options, &p.CreatedBy, &p.CreatedAt); err != nil {
			return nil, err
		}
		polls = append(polls, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range polls {
		if polls[i].Votes, err = r.votes(ctx, polls[i].ID); err != nil {
			return nil, err
		}
	}
	return polls, nil
}

func (r *PollRepo) votes(ctx context.Context, pollID uuid.UUID) ([]model.PollVote, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT user_id, option_index FROM poll_votes
		WHERE poll_id = $1 ORDER BY id`, pollID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	votes := []model.PollVote{}
	for rows.Next() {
		var v model.PollVote
		if err := rows.Scan(&v.UserID, &v.OptionIndex); err != nil {
			return nil, err
		}
		votes = append(votes, v)
	}
	return votes, rows.Err()
}

// AddVote appends a vote. There is no uniqueness check: every tap
// counts, matching how poll totals are tallied.
func (r *PollRepo) AddVote(ctx context.Context, pollID, userID uuid.UUID, optionIndex int) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO poll_votes (poll_id, user_id, option_index)
		VALUES ($1, $2, $3)`, pollID, userID, optionIndex)
	return err
}

func (r *PollRepo) AddReply(ctx context.Context, pollID uuid.UUID, rep *model.PollReply) error {
	rep.ID = uuid.New()
	return r.pool.QueryRow(ctx, `
		INSERT INTO poll_replies (id, poll_id, user_id, text)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`,
		rep.ID, pollID, rep.UserID, rep.Text,
	).Scan(&rep.CreatedAt)
}

func (r *PollRepo) Replies(ctx context.Context, pollID uuid.UUID) ([]model.PollReply, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT pr.id, pr.user_id, pr.text, pr.created_at, u.username, u.avatar
		FROM poll_replies pr JOIN users u ON u.id = pr.user_id
		WHERE pr.poll_id = $1
		ORDER BY pr.created_at`, pollID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	replies := []model.PollReply{}
	for rows.Next() {
		var rep model.PollReply
		err := rows.Scan(&rep.ID, &rep.UserID, &rep.Text, &rep.CreatedAt,
			&rep.Username, &rep.Avatar)
		if err != nil {
			return nil, err
		}
		replies = append(replies, rep)
	}
	return replies, rows.Err()
}

func (r *PollRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM polls WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// CreatorID returns the poll owner for permission checks.
func (r *PollRepo) CreatorID(ctx context.Context, id uuid.UUID) (*uuid.UUID, error) {
	var createdBy *uuid.UUID
	err := r.pool.QueryRow(ctx, `SELECT created_by FROM polls WHERE id = $1`, id).Scan(&createdBy)
	if err != nil {
		return nil, err
	}
	return createdBy, nil
}
