package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/PrintSaud/scene-backend/internal/model"
	"github.com/PrintSaud/scene-backend/internal/repository"
)

// logStore is the diary storage surface the service uses.
// *repository.LogRepo satisfies it.
type logStore interface {
	Create(ctx context.Context, l *model.Log) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Log, error)
	ByUser(ctx context.Context, userID uuid.UUID) ([]model.Log, error)
	Feed(ctx context.Context, userIDs []uuid.UUID, limit int) ([]model.Log, error)
	FeedSince(ctx context.Context, userIDs []uuid.UUID, since time.Time) ([]model.Log, error)
	ByMoviePopular(ctx context.Context, tmdbID, limit int) ([]model.Log, error)
	ByMovieFromUsers(ctx context.Context, tmdbID int, userIDs []uuid.UUID) ([]model.Log, error)
	Update(ctx context.Context, l *model.Log) error
	Delete(ctx context.Context, id uuid.UUID) error
	ToggleLike(ctx context.Context, logID, userID uuid.UUID) (liked bool, count int, err error)
	AddReply(ctx context.Context, reply *model.Reply) error
	Replies(ctx context.Context, logID uuid.UUID) ([]model.Reply, error)
	FindReply(ctx context.Context, replyID uuid.UUID) (*model.Reply, error)
	DeleteReply(ctx context.Context, replyID uuid.UUID) error
	ToggleReplyLike(ctx context.Context, replyID, userID uuid.UUID) (liked bool, count int, err error)
}

// LogService owns the diary: film logs, their likes, and the reply
// threads underneath them.
type LogService struct {
	logs    logStore
	follows *repository.FollowRepo
	users   *repository.UserRepo
	fanout  *FanoutService
}

func NewLogService(logs *repository.LogRepo, follows *repository.FollowRepo, users *repository.UserRepo, fanout *FanoutService) *LogService {
	return &LogService{logs: logs, follows: follows, users: users, fanout: fanout}
}

func (s *LogService) Create(ctx context.Context, userID uuid.UUID, req model.CreateLogRequest) (*model.Log, error) {
	entry := &model.Log{
		UserID:         userID,
		TmdbID:         req.TmdbID,
		Title:          req.Title,
		Poster:         req.Poster,
		Review:         req.Review,
		Rating:         req.Rating,
		Rewatch:        req.Rewatch,
		WatchedAt:      parseWatchedAt(req.WatchedAt),
		Gif:            req.Gif,
		Image:          req.Image,
		CustomBackdrop: req.CustomBackdrop,
	}
	if err := s.logs.Create(ctx, entry); err != nil {
		return nil, err
	}
	s.rememberGif(ctx, userID, req.Gif)
	return entry, nil
}

func (s *LogService) Get(ctx context.Context, id uuid.UUID) (*model.Log, error) {
	entry, err := s.logs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	entry.Replies, err = s.logs.Replies(ctx, id)
	return entry, err
}

func (s *LogService) ByUser(ctx context.Context, userID uuid.UUID) ([]model.Log, error) {
	return s.logs.ByUser(ctx, userID)
}

// FriendsFeed returns logs from the users the viewer follows plus
// their own, newest first.
func (s *LogService) FriendsFeed(ctx context.Context, viewerID uuid.UUID, limit int) ([]model.Log, error) {
	ids, err := s.follows.FollowingIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	return s.logs.Feed(ctx, append(ids, viewerID), limit)
}

// FriendsFeedSince is FriendsFeed restricted to a recent window.
func (s *LogService) FriendsFeedSince(ctx context.Context, viewerID uuid.UUID, since time.Time) ([]model.Log, error) {
	ids, err := s.follows.FollowingIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	return s.logs.FeedSince(ctx, append(ids, viewerID), since)
}

// ByMoviePopular returns reviewed logs for a movie ranked by likes.
func (s *LogService) ByMoviePopular(ctx context.Context, tmdbID, limit int) ([]model.Log, error) {
	return s.logs.ByMoviePopular(ctx, tmdbID, limit)
}

// ByMovieFromFriends returns the viewer's circle's logs for a movie.
func (s *LogService) ByMovieFromFriends(ctx context.Context, viewerID uuid.UUID, tmdbID int) ([]model.Log, error) {
	ids, err := s.follows.FollowingIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	return s.logs.ByMovieFromUsers(ctx, tmdbID, append(ids, viewerID))
}

// Update applies the request to the caller's own log.
func (s *LogService) Update(ctx context.Context, actorID, logID uuid.UUID, req model.UpdateLogRequest) (*model.Log, error) {
	entry, err := s.owned(ctx, actorID, logID)
	if err != nil {
		return nil, err
	}

	if req.Review != nil {
		entry.Review = *req.Review
	}
	if req.Rating != nil {
		entry.Rating = *req.Rating
	}
	if req.Rewatch != nil {
		entry.Rewatch = *req.Rewatch
	}
	if req.Gif != nil {
		entry.Gif = *req.Gif
		s.rememberGif(ctx, actorID, *req.Gif)
	}
	if req.Image != nil {
		entry.Image = *req.Image
	}
	if req.CustomBackdrop != nil {
		entry.CustomBackdrop = *req.CustomBackdrop
	}

	if err := s.logs.Update(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Delete removes the caller's own log.
func (s *LogService) Delete(ctx context.Context, actorID, logID uuid.UUID) error {
	if _, err := s.owned(ctx, actorID, logID); err != nil {
		return err
	}
	return s.logs.Delete(ctx, logID)
}

// ToggleLike flips the actor's like and reports the authoritative
// state. The log owner hears about the like half only.
func (s *LogService) ToggleLike(ctx context.Context, actor model.PublicUser, logID uuid.UUID) (*model.ToggleResponse, error) {
	entry, err := s.logs.FindByID(ctx, logID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	liked, count, err := s.logs.ToggleLike(ctx, logID, actor.ID)
	if err != nil {
		return nil, err
	}
	if liked {
		s.fanout.LogLiked(ctx, actor, entry.UserID, entry)
	}
	return &model.ToggleResponse{Active: liked, Count: count}, nil
}

// AddReply posts a reply under a log. A reply must carry text, a gif,
// or an image.
func (s *LogService) AddReply(ctx context.Context, actor model.PublicUser, logID uuid.UUID, req model.ReplyRequest) (*model.Reply, error) {
	reply := &model.Reply{
		LogID:  logID,
		UserID: actor.ID,
		Text:   req.Text,
		Gif:    req.Gif,
		Image:  req.Image,
	}
	if !reply.HasContent() {
		return nil, fmt.Errorf("%w: reply needs text, a gif, or an image", ErrInvalidInput)
	}
	if req.ParentReplyID != "" {
		parentID, err := uuid.Parse(req.ParentReplyID)
		if err != nil {
			return nil, fmt.Errorf("%w: bad parent reply id", ErrInvalidInput)
		}
		reply.ParentReplyID = &parentID
	}

	entry, err := s.logs.FindByID(ctx, logID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := s.logs.AddReply(ctx, reply); err != nil {
		return nil, err
	}

	s.rememberGif(ctx, actor.ID, req.Gif)
	s.fanout.ReplyPosted(ctx, actor, entry.UserID, entry)
	return reply, nil
}

func (s *LogService) Replies(ctx context.Context, logID uuid.UUID) ([]model.Reply, error) {
	return s.logs.Replies(ctx, logID)
}

// DeleteReply removes a reply. The reply author and the log owner may
// both delete it.
func (s *LogService) DeleteReply(ctx context.Context, actorID, replyID uuid.UUID) error {
	reply, err := s.logs.FindReply(ctx, replyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	if reply.UserID != actorID {
		entry, err := s.logs.FindByID(ctx, reply.LogID)
		if err != nil {
			return err
		}
		if entry.UserID != actorID {
			return ErrForbidden
		}
	}
	return s.logs.DeleteReply(ctx, replyID)
}

func (s *LogService) ToggleReplyLike(ctx context.Context, actorID, replyID uuid.UUID) (*model.ToggleResponse, error) {
	if _, err := s.logs.FindReply(ctx, replyID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	liked, count, err := s.logs.ToggleReplyLike(ctx, replyID, actorID)
	if err != nil {
		return nil, err
	}
	return &model.ToggleResponse{Active: liked, Count: count}, nil
}

func (s *LogService) owned(ctx context.Context, actorID, logID uuid.UUID) (*model.Log, error) {
	entry, err := s.logs.FindByID(ctx, logID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if entry.UserID != actorID {
		return nil, ErrForbidden
	}
	return entry, nil
}

// parseWatchedAt accepts RFC3339 or a bare date; anything else means
// "watched just now".
func parseWatchedAt(raw string) time.Time {
	if raw == "" {
		return time.Now()
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t
	}
	return time.Now()
}

// rememberGif records a used gif in the author's recent palette.
func (s *LogService) rememberGif(ctx context.Context, userID uuid.UUID, gifURL string) {
	if gifURL == "" {
		return
	}
	if _, err := s.users.PushRecentGif(ctx, userID, gifURL); err != nil {
		log.Printf("logs: recent gif push failed: %v", err)
	}
}
