package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/PrintSaud/scene-backend/internal/model"
	"github.com/PrintSaud/scene-backend/internal/repository"
)

// MovieDetailsView is the movie page payload with poster precedence
// already applied: the viewer's own poster wins over the community
// override, which wins over the catalog default.
type MovieDetailsView struct {
	TmdbID      int          `json:"id"`
	Title       string       `json:"title"`
	Overview    string       `json:"overview"`
	ReleaseDate string       `json:"releaseDate"`
	Runtime     int          `json:"runtime"`
	Genres      []string     `json:"genres"`
	Tagline     string       `json:"tagline,omitempty"`
	Poster      string       `json:"poster"`
	Backdrop    string       `json:"backdrop,omitempty"`
	VoteAverage float64      `json:"voteAverage"`
	Cast        []CastCredit `json:"cast"`
	Crew        []CrewCredit `json:"crew"`
	Backdrops   []string     `json:"backdrops"`
}

// CastCredit is one billed actor on the movie page.
type CastCredit struct {
	Name      string `json:"name"`
	Character string `json:"character,omitempty"`
	Profile   string `json:"profile,omitempty"`
}

// CrewCredit is one crew member on the movie page.
type CrewCredit struct {
	Name string `json:"name"`
	Job  string `json:"job"`
}

// MovieService is the catalog gateway: TMDB behind a Redis cache and
// a local metadata table, with poster overrides layered on top.
type MovieService struct {
	tmdb   *TMDBClient
	cache  *CacheService
	movies *repository.MovieRepo
	prefs  *repository.PrefsRepo
}

func NewMovieService(tmdb *TMDBClient, cache *CacheService, movies *repository.MovieRepo, prefs *repository.PrefsRepo) *MovieService {
	return &MovieService{tmdb: tmdb, cache: cache, movies: movies, prefs: prefs}
}

// Details returns the movie page for a title. When viewerID is set,
// the viewer's personal poster takes precedence.
func (s *MovieService) Details(ctx context.Context, tmdbID int, viewerID *uuid.UUID) (*MovieDetailsView, error) {
	details, err := s.details(ctx, tmdbID)
	if err != nil {
		return nil, err
	}

	view := &MovieDetailsView{
		TmdbID:      details.ID,
		Title:       details.Title,
		Overview:    details.Overview,
		ReleaseDate: details.ReleaseDate,
		Runtime:     details.Runtime,
		Tagline:     details.Tagline,
		Poster:      PosterURL(details.PosterPath),
		Backdrop:    BackdropURL(details.BackdropPath),
		VoteAverage: details.VoteAverage,
	}
	for _, g := range details.Genres {
		view.Genres = append(view.Genres, g.Name)
	}
	for _, m := range details.Credits.Cast {
		view.Cast = append(view.Cast, CastCredit{
			Name:      m.Name,
			Character: m.Character,
			Profile:   ProfileURL(m.ProfilePath),
		})
	}
	for _, m := range details.Credits.Crew {
		view.Crew = append(view.Crew, CrewCredit{Name: m.Name, Job: m.Job})
	}
	for _, img := range details.Images.Backdrops {
		view.Backdrops = append(view.Backdrops, BackdropURL(&img.FilePath))
	}

	view.Poster = s.resolvePoster(ctx, tmdbID, viewerID, view.Poster)
	return view, nil
}

// details is the cache-aside TMDB fetch. A cache miss also refreshes
// the local movies table so cards survive catalog outages.
func (s *MovieService) details(ctx context.Context, tmdbID int) (*TMDBMovieDetails, error) {
	if data, err := s.cache.GetMovie(ctx, tmdbID); err == nil && data != nil {
		var cached TMDBMovieDetails
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	details, err := s.tmdb.GetMovieDetails(ctx, tmdbID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetMovie(ctx, tmdbID, details); err != nil {
		log.Printf("movies: cache set failed for %d: %v", tmdbID, err)
	}

	local := &model.Movie{
		TmdbID:      details.ID,
		Title:       details.Title,
		Overview:    details.Overview,
		PosterPath:  PosterURL(details.PosterPath),
		ReleaseDate: details.ReleaseDate,
		Runtime:     details.Runtime,
	}
	for _, g := range details.Genres {
		local.Genres = append(local.Genres, g.Name)
	}
	if err := s.movies.Upsert(ctx, local); err != nil {
		log.Printf("movies: local upsert failed for %d: %v", tmdbID, err)
	}

	return details, nil
}

func (s *MovieService) resolvePoster(ctx context.Context, tmdbID int, viewerID *uuid.UUID, fallback string) string {
	if viewerID != nil {
		if url, err := s.prefs.UserPoster(ctx, *viewerID, tmdbID); err == nil && url != "" {
			return url
		}
	}
	if url, err := s.movies.GlobalPoster(ctx, tmdbID); err == nil && url != "" {
		return url
	}
	return fallback
}

// MovieCard returns the small card for a movie, preferring the local
// table and falling back to a catalog fetch.
func (s *MovieService) MovieCard(ctx context.Context, tmdbID int) (model.MovieSummary, error) {
	if local, err := s.movies.Get(ctx, tmdbID); err == nil {
		return model.MovieSummary{
			TmdbID: local.TmdbID,
			Title:  local.Title,
			Poster: s.resolvePoster(ctx, tmdbID, nil, local.PosterPath),
		}, nil
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return model.MovieSummary{}, err
	}

	details, err := s.details(ctx, tmdbID)
	if err != nil {
		return model.MovieSummary{}, err
	}
	return model.MovieSummary{
		TmdbID: details.ID,
		Title:  details.Title,
		Poster: s.resolvePoster(ctx, tmdbID, nil, PosterURL(details.PosterPath)),
	}, nil
}

// Search returns catalog matches as cards.
func (s *MovieService) Search(ctx context.Context, query string, page int) ([]model.MovieSummary, error) {
	resp, err := s.tmdb.SearchMovies(ctx, query, page)
	if err != nil {
		return nil, err
	}
	return s.summarize(ctx, resp.Results), nil
}

// Trending returns the day or week chart, cached.
func (s *MovieService) Trending(ctx context.Context, window string) ([]model.MovieSummary, error) {
	if window != "day" {
		window = "week"
	}

	if data, err := s.cache.GetTrending(ctx, window); err == nil && data != nil {
		var cached []model.MovieSummary
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	resp, err := s.tmdb.GetTrendingMovies(ctx, window)
	if err != nil {
		return nil, err
	}
	cards := s.summarize(ctx, resp.Results)

	if err := s.cache.SetTrending(ctx, window, cards); err != nil {
		log.Printf("movies: trending cache set failed: %v", err)
	}
	return cards, nil
}

func (s *MovieService) summarize(ctx context.Context, results []TMDBMovie) []model.MovieSummary {
	cards := []model.MovieSummary{}
	for _, m := range results {
		poster := PosterURL(m.PosterPath)
		if url, err := s.movies.GlobalPoster(ctx, m.ID); err == nil && url != "" {
			poster = url
		}
		cards = append(cards, model.MovieSummary{TmdbID: m.ID, Title: m.Title, Poster: poster})
	}
	return cards
}

// SetGlobalPoster replaces the community poster for a movie and drops
// the stale cached page.
func (s *MovieService) SetGlobalPoster(ctx context.Context, actorID uuid.UUID, tmdbID int, posterURL string) (*model.CustomPoster, error) {
	override := &model.CustomPoster{
		TmdbID:    tmdbID,
		PosterURL: posterURL,
		UpdatedBy: actorID,
	}
	if err := s.movies.SetGlobalPoster(ctx, override); err != nil {
		return nil, err
	}
	if err := s.cache.InvalidateMovie(ctx, tmdbID); err != nil {
		log.Printf("movies: cache invalidate failed for %d: %v", tmdbID, err)
	}
	return override, nil
}

// GlobalPoster returns the community override, or "" when none.
func (s *MovieService) GlobalPoster(ctx context.Context, tmdbID int) (string, error) {
	return s.movies.GlobalPoster(ctx, tmdbID)
}

// ParseTmdbID converts a route parameter into a catalog ID.
func ParseTmdbID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, ErrInvalidInput
	}
	return id, nil
}
