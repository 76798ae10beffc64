package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/PrintSaud/scene-backend/internal/model"
)

// FollowEdges is the follow-graph surface the fan-out needs.
type FollowEdges interface {
	Toggle(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error)
}

// NotificationSink receives composed notifications.
type NotificationSink interface {
	Append(ctx context.Context, n *model.Notification) error
}

// FanoutService turns social actions into follow-graph writes and
// inbox notifications. An action on your own content never notifies
// you, and a failed notification never fails the action.
type FanoutService struct {
	follows FollowEdges
	inbox   NotificationSink
}

func NewFanoutService(follows FollowEdges, inbox NotificationSink) *FanoutService {
	return &FanoutService{follows: follows, inbox: inbox}
}

// ToggleFollow flips the actor's follow edge to the target and
// notifies the target on the follow half of the toggle.
func (s *FanoutService) ToggleFollow(ctx context.Context, actor model.PublicUser, targetID uuid.UUID) (bool, error) {
	following, err := s.follows.Toggle(ctx, actor.ID, targetID)
	if err != nil {
		return false, err
	}

	if following {
		s.notify(ctx, targetID, actor, &model.Notification{
			Kind:    model.NotificationFollow,
			Message: fmt.Sprintf("%s started following you", actor.Username),
		})
	}
	return following, nil
}

// ReplyPosted notifies the log owner about a new reply.
func (s *FanoutService) ReplyPosted(ctx context.Context, actor model.PublicUser, ownerID uuid.UUID, logMeta *model.Log) {
	s.notify(ctx, ownerID, actor, &model.Notification{
		Kind:        model.NotificationReply,
		Message:     fmt.Sprintf("%s replied to your log", actor.Username),
		RelatedID:   logMeta.ID.String(),
		MovieTitle:  logMeta.Title,
		MoviePoster: logMeta.Poster,
	})
}

// LogLiked notifies the log owner when a like toggle lands on the
// liked state. The unlike half stays silent.
func (s *FanoutService) LogLiked(ctx context.Context, actor model.PublicUser, ownerID uuid.UUID, logMeta *model.Log) {
	s.notify(ctx, ownerID, actor, &model.Notification{
		Kind:        model.NotificationLike,
		Message:     fmt.Sprintf("%s liked your log", actor.Username),
		RelatedID:   logMeta.ID.String(),
		MovieTitle:  logMeta.Title,
		MoviePoster: logMeta.Poster,
	})
}

// ListLiked notifies the list owner when their list gets liked.
func (s *FanoutService) ListLiked(ctx context.Context, actor model.PublicUser, ownerID uuid.UUID, list *model.List) {
	s.notify(ctx, ownerID, actor, &model.Notification{
		Kind:      model.NotificationLike,
		Message:   fmt.Sprintf("%s liked your list %q", actor.Username, list.Title),
		RelatedID: list.ID.String(),
	})
}

// SuggestMovie sends a movie recommendation to another user.
func (s *FanoutService) SuggestMovie(ctx context.Context, actor model.PublicUser, targetID uuid.UUID, movie model.MovieSummary) {
	s.notify(ctx, targetID, actor, &model.Notification{
		Kind:        model.NotificationSuggestion,
		Message:     fmt.Sprintf("%s thinks you should watch %s", actor.Username, movie.Title),
		RelatedID:   fmt.Sprintf("%d", movie.TmdbID),
		MovieTitle:  movie.Title,
		MoviePoster: movie.Poster,
	})
}

// ShareContent sends a "check this out" pointer at a log or list.
func (s *FanoutService) ShareContent(ctx context.Context, actor model.PublicUser, targetID uuid.UUID, relatedID, movieTitle, moviePoster string) {
	s.notify(ctx, targetID, actor, &model.Notification{
		Kind:        model.NotificationShare,
		Message:     fmt.Sprintf("%s shared something with you", actor.Username),
		RelatedID:   relatedID,
		MovieTitle:  movieTitle,
		MoviePoster: moviePoster,
	})
}

// notify appends to the recipient's inbox unless the actor is acting
// on their own content. Append failures are logged and swallowed so
// the primary write still succeeds.
func (s *FanoutService) notify(ctx context.Context, recipientID uuid.UUID, actor model.PublicUser, n *model.Notification) {
	if recipientID == actor.ID {
		return
	}
	n.RecipientID = recipientID
	fromID := actor.ID
	n.FromUserID = &fromID

	if err := s.inbox.Append(ctx, n); err != nil {
		log.Printf("fanout: notification append failed for %s: %v", recipientID, err)
	}
}
