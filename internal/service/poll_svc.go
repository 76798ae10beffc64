package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/PrintSaud/scene-backend/internal/model"
	"github.com/PrintSaud/scene-backend/internal/repository"
)

// PollService handles community polls. Votes are an append log, so
// totals count taps rather than people.
type PollService struct {
	polls *repository.PollRepo
}

func NewPollService(polls *repository.PollRepo) *PollService {
	return &PollService{polls: polls}
}

func (s *PollService) Create(ctx context.Context, userID uuid.UUID, req model.CreatePollRequest) (*model.Poll, error) {
	if req.Question == "" {
		return nil, fmt.Errorf("%w: poll needs a question", ErrInvalidInput)
	}
	if len(req.Options) < 2 {
		return nil, fmt.Errorf("%w: poll needs at least two options", ErrInvalidInput)
	}

	poll := &model.Poll{
		Question:  req.Question,
		Options:   req.Options,
		CreatedBy: &userID,
	}
	if err := s.polls.Create(ctx, poll); err != nil {
		return nil, err
	}
	poll.Votes = []model.PollVote{}
	poll.Replies = []model.PollReply{}
	return poll, nil
}

func (s *PollService) Get(ctx context.Context, id uuid.UUID) (*model.Poll, error) {
	poll, err := s.polls.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return poll, nil
}

func (s *PollService) List(ctx context.Context, limit int) ([]model.Poll, error) {
	return s.polls.List(ctx, limit)
}

// Vote appends the caller's vote. The option index must point inside
// the poll's option set.
func (s *PollService) Vote(ctx context.Context, userID, pollID uuid.UUID, optionIndex int) (*model.Poll, error) {
	poll, err := s.Get(ctx, pollID)
	if err != nil {
		return nil, err
	}
	if optionIndex < 0 || optionIndex >= len(poll.Options) {
		return nil, fmt.Errorf("%w: option index out of range", ErrInvalidInput)
	}

	if err := s.polls.AddVote(ctx, pollID, userID, optionIndex); err != nil {
		return nil, err
	}
	return s.Get(ctx, pollID)
}

func (s *PollService) Reply(ctx context.Context, userID, pollID uuid.UUID, text string) (*model.PollReply, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: reply needs text", ErrInvalidInput)
	}
	if _, err := s.Get(ctx, pollID); err != nil {
		return nil, err
	}

	reply := &model.PollReply{UserID: userID, Text: text}
	if err := s.polls.AddReply(ctx, pollID, reply); err != nil {
		return nil, err
	}
	return reply, nil
}

// Delete removes the caller's own poll.
func (s *PollService) Delete(ctx context.Context, actorID, pollID uuid.UUID) error {
	createdBy, err := s.polls.CreatorID(ctx, pollID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if createdBy == nil || *createdBy != actorID {
		return ErrForbidden
	}
	return s.polls.Delete(ctx, pollID)
}
