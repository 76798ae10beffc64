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

// listStore is the list storage surface the service uses.
// *repository.ListRepo satisfies it.
type listStore interface {
	Create(ctx context.Context, l *model.List) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.List, error)
	ByUser(ctx context.Context, userID uuid.UUID, includePrivate bool) ([]model.List, error)
	Popular(ctx context.Context, limit int) ([]model.List, error)
	ByUsers(ctx context.Context, userIDs []uuid.UUID) ([]model.List, error)
	SavedBy(ctx context.Context, userID uuid.UUID) ([]model.List, error)
	SearchPublic(ctx context.Context, query string, limit int) ([]model.List, error)
	Update(ctx context.Context, l *model.List, movies *[]model.ListEntry) error
	Delete(ctx context.Context, id uuid.UUID) error
	AddMovie(ctx context.Context, listID uuid.UUID, entry model.ListEntry) (added bool, err error)
	ToggleLike(ctx context.Context, listID, userID uuid.UUID) (liked bool, count int, err error)
	ToggleSave(ctx context.Context, listID, userID uuid.UUID) (saved bool, count int, err error)
}

// ListService owns ranked and unranked movie lists. Private lists are
// visible to their owner only.
type ListService struct {
	lists   listStore
	follows *repository.FollowRepo
	fanout  *FanoutService
}

func NewListService(lists *repository.ListRepo, follows *repository.FollowRepo, fanout *FanoutService) *ListService {
	return &ListService{lists: lists, follows: follows, fanout: fanout}
}

func (s *ListService) Create(ctx context.Context, userID uuid.UUID, req model.CreateListRequest) (*model.List, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("%w: list needs a title", ErrInvalidInput)
	}

	list := &model.List{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		CoverImage:  req.CoverImage,
		IsPrivate:   req.IsPrivate,
		IsRanked:    req.IsRanked,
		Movies:      req.Movies,
	}
	if err := s.lists.Create(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// Get returns one list. Private lists 404 for everyone but the owner
// so their existence stays hidden.
func (s *ListService) Get(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (*model.List, error) {
	list, err := s.lists.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if list.IsPrivate && (viewerID == nil || *viewerID != list.UserID) {
		return nil, ErrNotFound
	}
	return list, nil
}

// ByUser returns a user's lists, including private ones only when the
// viewer is the owner.
func (s *ListService) ByUser(ctx context.Context, ownerID uuid.UUID, viewerID *uuid.UUID) ([]model.List, error) {
	includePrivate := viewerID != nil && *viewerID == ownerID
	return s.lists.ByUser(ctx, ownerID, includePrivate)
}

func (s *ListService) Popular(ctx context.Context, limit int) ([]model.List, error) {
	return s.lists.Popular(ctx, limit)
}

// FriendsLists returns public lists from the viewer's circle.
func (s *ListService) FriendsLists(ctx context.Context, viewerID uuid.UUID) ([]model.List, error) {
	ids, err := s.follows.FollowingIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	return s.lists.ByUsers(ctx, ids)
}

func (s *ListService) Saved(ctx context.Context, viewerID uuid.UUID) ([]model.List, error) {
	return s.lists.SavedBy(ctx, viewerID)
}

func (s *ListService) Search(ctx context.Context, query string, limit int) ([]model.List, error) {
	return s.lists.SearchPublic(ctx, query, limit)
}

// Update applies the caller's edits to their own list.
func (s *ListService) Update(ctx context.Context, actorID, listID uuid.UUID, req model.UpdateListRequest) (*model.List, error) {
	list, err := s.owned(ctx, actorID, listID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if *req.Title == "" {
			return nil, fmt.Errorf("%w: list needs a title", ErrInvalidInput)
		}
		list.Title = *req.Title
	}
	if req.Description != nil {
		list.Description = *req.Description
	}
	if req.CoverImage != nil {
		list.CoverImage = *req.CoverImage
	}
	if req.IsPrivate != nil {
		list.IsPrivate = *req.IsPrivate
	}
	if req.IsRanked != nil {
		list.IsRanked = *req.IsRanked
	}

	if err := s.lists.Update(ctx, list, req.Movies); err != nil {
		return nil, err
	}
	return s.Get(ctx, listID, &actorID)
}

func (s *ListService) Delete(ctx context.Context, actorID, listID uuid.UUID) error {
	if _, err := s.owned(ctx, actorID, listID); err != nil {
		return err
	}
	return s.lists.Delete(ctx, listID)
}

// AddMovie appends a movie to the caller's own list. Adding a movie
// that is already there is a conflict.
func (s *ListService) AddMovie(ctx context.Context, actorID, listID uuid.UUID, entry model.ListEntry) error {
	if _, err := s.owned(ctx, actorID, listID); err != nil {
		return err
	}
	added, err := s.lists.AddMovie(ctx, listID, entry)
	if err != nil {
		return err
	}
	if !added {
		return fmt.Errorf("%w: movie already in list", ErrConflict)
	}
	return nil
}

// ToggleLike flips the actor's like; the owner hears about the like
// half only.
func (s *ListService) ToggleLike(ctx context.Context, actor model.PublicUser, listID uuid.UUID) (*model.ToggleResponse, error) {
	list, err := s.Get(ctx, listID, &actor.ID)
	if err != nil {
		return nil, err
	}
	liked, count, err := s.lists.ToggleLike(ctx, listID, actor.ID)
	if err != nil {
		return nil, err
	}
	if liked {
		s.fanout.ListLiked(ctx, actor, list.UserID, list)
	}
	return &model.ToggleResponse{Active: liked, Count: count}, nil
}

// ToggleSave flips whether the list shows up under the actor's saved
// lists.
func (s *ListService) ToggleSave(ctx context.Context, actorID, listID uuid.UUID) (*model.ToggleResponse, error) {
	if _, err := s.Get(ctx, listID, &actorID); err != nil {
		return nil, err
	}
	saved, count, err := s.lists.ToggleSave(ctx, listID, actorID)
	if err != nil {
		return nil, err
	}
	return &model.ToggleResponse{Active: saved, Count: count}, nil
}

func (s *ListService) owned(ctx context.Context, actorID, listID uuid.UUID) (*model.List, error) {
	list, err := s.lists.FindByID(ctx, listID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if list.UserID != actorID {
		return nil, ErrForbidden
	}
	return list, nil
}
