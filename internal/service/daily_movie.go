package service

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/PrintSaud/scene-backend/internal/model"
	"github.com/PrintSaud/scene-backend/pkg/clock"
)

// TrendingChart is the slice of the catalog the daily pick draws from.
type TrendingChart interface {
	Trending(ctx context.Context, window string) ([]model.MovieSummary, error)
}

// DailyMovieService serves one shared "movie of the day", re-rolled
// from the trending chart at most once per 24 hours.
type DailyMovieService struct {
	movies TrendingChart
	clock  clock.Clock
	pick   func(n int) int

	mu       sync.Mutex
	current  *model.MovieSummary
	pickedAt time.Time
}

func NewDailyMovieService(movies TrendingChart, clk clock.Clock) *DailyMovieService {
	return &DailyMovieService{movies: movies, clock: clk, pick: rand.Intn}
}

// Today returns the current daily pick, rolling a new one when the
// slot is older than a day.
func (s *DailyMovieService) Today(ctx context.Context) (*model.MovieSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	if s.current != nil && now.Sub(s.pickedAt) < 24*time.Hour {
		return s.current, nil
	}

	chart, err := s.movies.Trending(ctx, "week")
	if err != nil {
		// A stale pick beats an error page.
		if s.current != nil {
			return s.current, nil
		}
		return nil, err
	}
	if len(chart) == 0 {
		return nil, ErrNotFound
	}

	choice := chart[s.pick(len(chart))]
	s.current = &choice
	s.pickedAt = now
	return s.current, nil
}
