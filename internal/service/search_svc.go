package service

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/PrintSaud/scene-backend/internal/model"
)

// SearchResults bundles one query's hits across the catalog, people,
// and public lists.
type SearchResults struct {
	Movies []model.MovieSummary `json:"movies"`
	Users  []model.PublicUser   `json:"users"`
	Lists  []model.List         `json:"lists"`
}

// SearchService runs the three result sections concurrently.
type SearchService struct {
	movies *MovieService
	users  *UserService
	lists  *ListService
}

func NewSearchService(movies *MovieService, users *UserService, lists *ListService) *SearchService {
	return &SearchService{movies: movies, users: users, lists: lists}
}

// All searches every section for the query.
func (s *SearchService) All(ctx context.Context, query string) (*SearchResults, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: empty query", ErrInvalidInput)
	}

	results := &SearchResults{}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		movies, err := s.movies.Search(ctx, query, 1)
		results.Movies = movies
		return err
	})
	g.Go(func() error {
		users, err := s.users.SearchUsers(ctx, query)
		results.Users = users
		return err
	})
	g.Go(func() error {
		lists, err := s.lists.Search(ctx, query, 20)
		results.Lists = lists
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
