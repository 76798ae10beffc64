package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestTMDBClient(srv *httptest.Server) *TMDBClient {
	return &TMDBClient{
		apiKey:  "test-key",
		baseURL: srv.URL,
		client:  srv.Client(),
	}
}

func TestSearchMovies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/movie" {
			t.Errorf("path = %s, want /search/movie", r.URL.Path)
		}
		if r.URL.Query().Get("api_key") != "test-key" {
			t.Error("api_key missing from query")
		}
		if r.URL.Query().Get("query") != "inception" {
			t.Errorf("query = %q", r.URL.Query().Get("query"))
		}
		w.Write([]byte(`{"page":1,"results":[{"id":27205,"title":"Inception","poster_path":"/poster.jpg"}],"total_pages":1,"total_results":1}`))
	}))
	defer srv.Close()

	resp, err := newTestTMDBClient(srv).SearchMovies(context.Background(), "inception", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Results) != 1 || resp.Results[0].ID != 27205 {
		t.Fatalf("unexpected results: %+v", resp.Results)
	}
}

// observedSeconds records upstream latency observations.
type observedSeconds struct {
	values []float64
}

func (o *observedSeconds) Observe(v float64) { o.values = append(o.values, v) }

func TestGetMovieDetails_IncludesCreditsAndImages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("append_to_response"); got != "credits,images" {
			t.Errorf("append_to_response = %q, want credits,images", got)
		}
		w.Write([]byte(`{
			"id": 27205, "title": "Inception",
			"credits": {
				"cast": [{"id": 6193, "name": "Leonardo DiCaprio", "character": "Cobb", "profile_path": "/leo.jpg", "order": 0}],
				"crew": [{"id": 525, "name": "Christopher Nolan", "job": "Director"}]
			},
			"images": {"backdrops": [{"file_path": "/spin.jpg", "width": 1920, "height": 1080}]}
		}`))
	}))
	defer srv.Close()

	client := newTestTMDBClient(srv)
	obs := &observedSeconds{}
	client.InstrumentWith(obs)

	details, err := client.GetMovieDetails(context.Background(), 27205)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(details.Credits.Cast) != 1 || details.Credits.Cast[0].Character != "Cobb" {
		t.Fatalf("cast not decoded: %+v", details.Credits.Cast)
	}
	if len(details.Credits.Crew) != 1 || details.Credits.Crew[0].Job != "Director" {
		t.Fatalf("crew not decoded: %+v", details.Credits.Crew)
	}
	if len(details.Images.Backdrops) != 1 || details.Images.Backdrops[0].FilePath != "/spin.jpg" {
		t.Fatalf("backdrops not decoded: %+v", details.Images.Backdrops)
	}
	if len(obs.values) != 1 {
		t.Fatalf("expected 1 latency observation, got %d", len(obs.values))
	}
}

func TestProfileURL(t *testing.T) {
	path := "/leo.jpg"
	if got := ProfileURL(&path); got != "https://image.tmdb.org/t/p/w185/leo.jpg" {
		t.Errorf("ProfileURL = %q", got)
	}
	if got := ProfileURL(nil); got != "" {
		t.Errorf("nil path should give empty URL, got %q", got)
	}
}

func TestGetMovieDetails_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestTMDBClient(srv).GetMovieDetails(context.Background(), 999999999)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestGetMovieDetails_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	if _, err := newTestTMDBClient(srv).GetMovieDetails(context.Background(), 550); err == nil {
		t.Fatal("expected error on upstream 502")
	}
}

func TestGetTrendingMovies_WindowFallback(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"page":1,"results":[]}`))
	}))
	defer srv.Close()

	client := newTestTMDBClient(srv)
	if _, err := client.GetTrendingMovies(context.Background(), "month"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/trending/movie/week" {
		t.Errorf("bad window should fall back to week, got %s", gotPath)
	}

	if _, err := client.GetTrendingMovies(context.Background(), "day"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/trending/movie/day" {
		t.Errorf("path = %s, want /trending/movie/day", gotPath)
	}
}

func TestPosterURL(t *testing.T) {
	path := "/abc.jpg"
	if got := PosterURL(&path); got != "https://image.tmdb.org/t/p/w500/abc.jpg" {
		t.Errorf("PosterURL = %q", got)
	}
	if got := PosterURL(nil); got != "" {
		t.Errorf("nil path should give empty URL, got %q", got)
	}
	empty := ""
	if got := PosterURL(&empty); got != "" {
		t.Errorf("empty path should give empty URL, got %q", got)
	}
}
