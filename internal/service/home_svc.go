package service

import (
	"context"
	"math/rand"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/PrintSaud/scene-backend/internal/model"
)

// HomeView is the aggregated landing page payload.
type HomeView struct {
	Feed         []model.Log          `json:"feed"`
	Trending     []model.MovieSummary `json:"trending"`
	PopularLists []model.List         `json:"popularLists"`
	DailyMovie   *model.MovieSummary  `json:"dailyMovie,omitempty"`
	DailyPoll    *model.Poll          `json:"dailyPoll,omitempty"`
}

// HomeService fans the landing page's sections out in parallel.
type HomeService struct {
	logs   *LogService
	lists  *ListService
	movies *MovieService
	daily  *DailyMovieService
	polls  *PollService
}

func NewHomeService(logs *LogService, lists *ListService, movies *MovieService, daily *DailyMovieService, polls *PollService) *HomeService {
	return &HomeService{logs: logs, lists: lists, movies: movies, daily: daily, polls: polls}
}

// Build assembles the home page for a viewer. The sections load
// concurrently; one failing section fails the page.
func (s *HomeService) Build(ctx context.Context, viewerID uuid.UUID) (*HomeView, error) {
	view := &HomeView{}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		feed, err := s.logs.FriendsFeed(ctx, viewerID, 50)
		view.Feed = feed
		return err
	})
	g.Go(func() error {
		trending, err := s.movies.Trending(ctx, "week")
		view.Trending = trending
		return err
	})
	g.Go(func() error {
		lists, err := s.lists.Popular(ctx, 10)
		view.PopularLists = lists
		return err
	})
	g.Go(func() error {
		pick, err := s.daily.Today(ctx)
		if err != nil {
			// The page survives without a daily pick.
			return nil
		}
		view.DailyMovie = pick
		return nil
	})
	g.Go(func() error {
		polls, err := s.polls.List(ctx, 5)
		if err != nil {
			// Same leniency as the daily pick.
			return nil
		}
		view.DailyPoll = randomPoll(polls)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return view, nil
}

// randomPoll draws one poll from the recent set, or nil when there
// are none.
func randomPoll(polls []model.Poll) *model.Poll {
	if len(polls) == 0 {
		return nil
	}
	return &polls[rand.Intn(len(polls))]
}
