package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/PrintSaud/scene-backend/internal/model"
)

type fakeFollows struct {
	following bool
	err       error
}

func (f *fakeFollows) Toggle(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	f.following = !f.following
	return f.following, nil
}

type fakeInbox struct {
	appended []*model.Notification
	err      error
}

func (f *fakeInbox) Append(ctx context.Context, n *model.Notification) error {
	if f.err != nil {
		return f.err
	}
	f.appended = append(f.appended, n)
	return nil
}

func actorWith(name string) model.PublicUser {
	return model.PublicUser{ID: uuid.New(), Username: name}
}

func TestToggleFollow_NotifiesOnFollowOnly(t *testing.T) {
	follows := &fakeFollows{}
	inbox := &fakeInbox{}
	svc := NewFanoutService(follows, inbox)

	actor := actorWith("saud")
	target := uuid.New()

	following, err := svc.ToggleFollow(context.Background(), actor, target)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !following {
		t.Fatal("first toggle should follow")
	}
	if len(inbox.appended) != 1 {
		t.Fatalf("follow should notify once, got %d", len(inbox.appended))
	}
	n := inbox.appended[0]
	if n.Kind != model.NotificationFollow {
		t.Errorf("kind = %q, want %q", n.Kind, model.NotificationFollow)
	}
	if n.RecipientID != target {
		t.Error("notification should go to the target")
	}
	if n.FromUserID == nil || *n.FromUserID != actor.ID {
		t.Error("notification should carry the actor id")
	}

	// Second toggle unfollows and stays silent.
	following, err = svc.ToggleFollow(context.Background(), actor, target)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if following {
		t.Fatal("second toggle should unfollow")
	}
	if len(inbox.appended) != 1 {
		t.Fatalf("unfollow must not notify, got %d notifications", len(inbox.appended))
	}
}

func TestToggleFollow_GraphErrorPropagates(t *testing.T) {
	follows := &fakeFollows{err: errors.New("db down")}
	inbox := &fakeInbox{}
	svc := NewFanoutService(follows, inbox)

	if _, err := svc.ToggleFollow(context.Background(), actorWith("saud"), uuid.New()); err == nil {
		t.Fatal("expected error from follow graph")
	}
	if len(inbox.appended) != 0 {
		t.Fatal("failed toggle must not notify")
	}
}

func TestNotify_SelfActionSuppressed(t *testing.T) {
	inbox := &fakeInbox{}
	svc := NewFanoutService(&fakeFollows{}, inbox)

	actor := actorWith("saud")
	logMeta := &model.Log{ID: uuid.New(), Title: "Whiplash"}

	// Liking your own log stays silent.
	svc.LogLiked(context.Background(), actor, actor.ID, logMeta)
	if len(inbox.appended) != 0 {
		t.Fatal("self-like must not notify")
	}

	// Liking someone else's log notifies.
	other := uuid.New()
	svc.LogLiked(context.Background(), actor, other, logMeta)
	if len(inbox.appended) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(inbox.appended))
	}
	if inbox.appended[0].MovieTitle != "Whiplash" {
		t.Errorf("movie title missing from notification")
	}
}

func TestNotify_AppendFailureSwallowed(t *testing.T) {
	inbox := &fakeInbox{err: errors.New("inbox unavailable")}
	svc := NewFanoutService(&fakeFollows{}, inbox)

	actor := actorWith("saud")

	// The primary action must not fail when the inbox does.
	following, err := svc.ToggleFollow(context.Background(), actor, uuid.New())
	if err != nil {
		t.Fatalf("append failure leaked into the toggle: %v", err)
	}
	if !following {
		t.Fatal("toggle should still land on the followed state")
	}
}

func TestSuggestMovie_CarriesMovieCard(t *testing.T) {
	inbox := &fakeInbox{}
	svc := NewFanoutService(&fakeFollows{}, inbox)

	actor := actorWith("saud")
	target := uuid.New()
	svc.SuggestMovie(context.Background(), actor, target, model.MovieSummary{
		TmdbID: 550,
		Title:  "Fight Club",
		Poster: "https://image.tmdb.org/t/p/w500/x.jpg",
	})

	if len(inbox.appended) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(inbox.appended))
	}
	n := inbox.appended[0]
	if n.Kind != model.NotificationSuggestion {
		t.Errorf("kind = %q, want %q", n.Kind, model.NotificationSuggestion)
	}
	if n.RelatedID != "550" {
		t.Errorf("related id = %q, want %q", n.RelatedID, "550")
	}
	if n.MovieTitle != "Fight Club" || n.MoviePoster == "" {
		t.Error("movie card fields should be populated")
	}
}
