package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/PrintSaud/scene-backend/internal/model"
	"github.com/PrintSaud/scene-backend/pkg/clock"
)

type fakeChart struct {
	cards []model.MovieSummary
	err   error
	calls int
}

func (f *fakeChart) Trending(ctx context.Context, window string) ([]model.MovieSummary, error) {
	f.calls++
	return f.cards, f.err
}

func TestDailyMovie_StableWithinADay(t *testing.T) {
	chart := &fakeChart{cards: []model.MovieSummary{
		{TmdbID: 550, Title: "Fight Club"},
		{TmdbID: 27205, Title: "Inception"},
	}}
	clk := &clock.Fixed{T: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}

	svc := NewDailyMovieService(chart, clk)
	svc.pick = func(n int) int { return 0 }

	first, err := svc.Today(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.TmdbID != 550 {
		t.Fatalf("pick = %d, want 550", first.TmdbID)
	}

	// Later the same day: same pick, no new chart fetch.
	clk.Advance(10 * time.Hour)
	again, err := svc.Today(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again.TmdbID != first.TmdbID {
		t.Error("pick changed within the same day")
	}
	if chart.calls != 1 {
		t.Errorf("chart fetched %d times, want 1", chart.calls)
	}
}

func TestDailyMovie_RollsAfterADay(t *testing.T) {
	chart := &fakeChart{cards: []model.MovieSummary{
		{TmdbID: 550, Title: "Fight Club"},
		{TmdbID: 27205, Title: "Inception"},
	}}
	clk := &clock.Fixed{T: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}

	svc := NewDailyMovieService(chart, clk)
	svc.pick = func(n int) int { return 0 }

	if _, err := svc.Today(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	svc.pick = func(n int) int { return 1 }
	clk.Advance(25 * time.Hour)

	next, err := svc.Today(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next.TmdbID != 27205 {
		t.Errorf("pick = %d, want a fresh roll (27205)", next.TmdbID)
	}
	if chart.calls != 2 {
		t.Errorf("chart fetched %d times, want 2", chart.calls)
	}
}

func TestDailyMovie_StalePickBeatsChartError(t *testing.T) {
	chart := &fakeChart{cards: []model.MovieSummary{{TmdbID: 550, Title: "Fight Club"}}}
	clk := &clock.Fixed{T: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}

	svc := NewDailyMovieService(chart, clk)
	svc.pick = func(n int) int { return 0 }

	if _, err := svc.Today(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Next day the chart is down; yesterday's pick is served instead.
	chart.err = errors.New("upstream down")
	clk.Advance(30 * time.Hour)

	pick, err := svc.Today(context.Background())
	if err != nil {
		t.Fatalf("stale pick should mask the chart error, got %v", err)
	}
	if pick.TmdbID != 550 {
		t.Errorf("pick = %d, want the stale 550", pick.TmdbID)
	}
}

func TestDailyMovie_EmptyChart(t *testing.T) {
	chart := &fakeChart{}
	clk := &clock.Fixed{T: time.Now()}

	svc := NewDailyMovieService(chart, clk)
	if _, err := svc.Today(context.Background()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("empty chart should return ErrNotFound, got %v", err)
	}
}
