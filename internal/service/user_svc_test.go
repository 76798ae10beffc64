package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/PrintSaud/scene-backend/internal/model"
)

type fakeCards struct {
	cards map[int]model.MovieSummary
}

func (f *fakeCards) MovieCard(ctx context.Context, tmdbID int) (model.MovieSummary, error) {
	card, ok := f.cards[tmdbID]
	if !ok {
		return model.MovieSummary{}, errors.New("catalog miss")
	}
	return card, nil
}

func TestDecorate_SkipsFailedLookups(t *testing.T) {
	svc := &UserService{cards: &fakeCards{cards: map[int]model.MovieSummary{
		550:   {TmdbID: 550, Title: "Fight Club"},
		27205: {TmdbID: 27205, Title: "Inception"},
	}}}

	// 999 has no card; the shelf should render without it.
	got := svc.decorate(context.Background(), []int{550, 999, 27205})
	if len(got) != 2 {
		t.Fatalf("got %d cards, want 2", len(got))
	}
	if got[0].TmdbID != 550 || got[1].TmdbID != 27205 {
		t.Errorf("cards out of order: %+v", got)
	}
}

func TestDecorate_EmptyNeverNil(t *testing.T) {
	svc := &UserService{cards: &fakeCards{}}

	got := svc.decorate(context.Background(), nil)
	if got == nil {
		t.Fatal("decorate should return an empty slice, not nil")
	}
	if len(got) != 0 {
		t.Fatalf("got %d cards, want 0", len(got))
	}
}

func TestSetTopMovies_CapsAtFour(t *testing.T) {
	svc := &UserService{}

	err := svc.SetTopMovies(context.Background(), uuid.New(), []string{"1", "2", "3", "4", "5"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("five top movies should be rejected, got %v", err)
	}
}
