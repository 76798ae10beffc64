package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/PrintSaud/scene-backend/internal/model"
)

// fakeListStore serves a single stored list; the embedded interface
// panics on anything else, so visibility and ownership checks must
// settle first.
type fakeListStore struct {
	listStore
	list *model.List
}

func (f *fakeListStore) FindByID(ctx context.Context, id uuid.UUID) (*model.List, error) {
	if f.list == nil || f.list.ID != id {
		return nil, pgx.ErrNoRows
	}
	return f.list, nil
}

func TestListGet_PrivateHiddenFromOthers(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()
	list := &model.List{ID: uuid.New(), UserID: owner, Title: "guilty pleasures", IsPrivate: true}
	svc := &ListService{lists: &fakeListStore{list: list}}
	ctx := context.Background()

	// Anonymous and non-owner viewers both get a 404, not a 403: the
	// list's existence stays hidden.
	if _, err := svc.Get(ctx, list.ID, nil); !errors.Is(err, ErrNotFound) {
		t.Fatalf("anonymous viewer should get not-found, got %v", err)
	}
	if _, err := svc.Get(ctx, list.ID, &stranger); !errors.Is(err, ErrNotFound) {
		t.Fatalf("other viewer should get not-found, got %v", err)
	}

	got, err := svc.Get(ctx, list.ID, &owner)
	if err != nil {
		t.Fatalf("owner should see their private list: %v", err)
	}
	if got.Title != "guilty pleasures" {
		t.Errorf("title = %q", got.Title)
	}
}

func TestListOwnership(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()
	list := &model.List{ID: uuid.New(), UserID: owner, Title: "top noir"}
	svc := &ListService{lists: &fakeListStore{list: list}}
	ctx := context.Background()

	title := "hijacked"
	if _, err := svc.Update(ctx, stranger, list.ID, model.UpdateListRequest{Title: &title}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("update by non-owner should be forbidden, got %v", err)
	}
	if err := svc.Delete(ctx, stranger, list.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("delete by non-owner should be forbidden, got %v", err)
	}
	if err := svc.AddMovie(ctx, stranger, list.ID, model.ListEntry{TmdbID: 27205}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("add-movie by non-owner should be forbidden, got %v", err)
	}
	if err := svc.Delete(ctx, stranger, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing list should be not-found, got %v", err)
	}
}
