package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// UpstreamTimeout bounds every catalog call so a slow upstream cannot
// stall a request.
const UpstreamTimeout = 5 * time.Second

// TMDBClient talks to the TMDB REST API.
type TMDBClient struct {
	apiKey   string
	baseURL  string
	client   *http.Client
	upstream prometheus.Observer
}

// InstrumentWith records every round trip's latency on the given
// observer.
func (c *TMDBClient) InstrumentWith(upstream prometheus.Observer) {
	c.upstream = upstream
}

type TMDBSearchResponse struct {
	Page         int         `json:"page"`
	Results      []TMDBMovie `json:"results"`
	TotalPages   int         `json:"total_pages"`
	TotalResults int         `json:"total_results"`
}

type TMDBMovie struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Overview     string  `json:"overview"`
	ReleaseDate  string  `json:"release_date"`
	PosterPath   *string `json:"poster_path"`
	BackdropPath *string `json:"backdrop_path"`
	Popularity   float64 `json:"popularity"`
	VoteAverage  float64 `json:"vote_average"`
	VoteCount    int     `json:"vote_count"`
}

type TMDBMovieDetails struct {
	TMDBMovie
	Runtime int         `json:"runtime"`
	Genres  []TMDBGenre `json:"genres"`
	Tagline string      `json:"tagline"`
	Status  string      `json:"status"`
	Credits TMDBCredits `json:"credits"`
	Images  TMDBImages  `json:"images"`
}

type TMDBGenre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type TMDBCredits struct {
	Cast []TMDBCastMember `json:"cast"`
	Crew []TMDBCrewMember `json:"crew"`
}

type TMDBCastMember struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Character   string  `json:"character"`
	ProfilePath *string `json:"profile_path"`
	Order       int     `json:"order"`
}

type TMDBCrewMember struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Job         string  `json:"job"`
	ProfilePath *string `json:"profile_path"`
}

type TMDBImages struct {
	Backdrops []TMDBImage `json:"backdrops"`
	Posters   []TMDBImage `json:"posters"`
}

type TMDBImage struct {
	FilePath    string  `json:"file_path"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	VoteAverage float64 `json:"vote_average"`
}

type TMDBPerson struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	ProfilePath *string `json:"profile_path"`
	KnownFor    string  `json:"known_for_department"`
}

type TMDBPersonSearchResponse struct {
	Page    int          `json:"page"`
	Results []TMDBPerson `json:"results"`
}

func NewTMDBClient(apiKey string) *TMDBClient {
	return &TMDBClient{
		apiKey:  apiKey,
		baseURL: "https://api.themoviedb.org/3",
		client:  &http.Client{Timeout: UpstreamTimeout},
	}
}

func (c *TMDBClient) get(ctx context.Context, endpoint string, params map[string]string, out interface{}) error {
	u, err := url.Parse(c.baseURL + endpoint)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	query := u.Query()
	query.Set("api_key", c.apiKey)
	for key, value := range params {
		query.Set(key, value)
	}
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("accept", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if c.upstream != nil {
		c.upstream.Observe(time.Since(start).Seconds())
	}
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("upstream returned status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// SearchMovies searches the catalog by title.
func (c *TMDBClient) SearchMovies(ctx context.Context, query string, page int) (*TMDBSearchResponse, error) {
	if page <= 0 {
		page = 1
	}
	var resp TMDBSearchResponse
	err := c.get(ctx, "/search/movie", map[string]string{
		"query": query,
		"page":  strconv.Itoa(page),
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	return &resp, nil
}

// SearchPeople searches actors and crew by name.
func (c *TMDBClient) SearchPeople(ctx context.Context, query string) (*TMDBPersonSearchResponse, error) {
	var resp TMDBPersonSearchResponse
	err := c.get(ctx, "/search/person", map[string]string{"query": query}, &resp)
	if err != nil {
		return nil, fmt.Errorf("person search failed: %w", err)
	}
	return &resp, nil
}

// GetMovieDetails fetches one movie's full record, with cast, crew
// and alternate images in the same round trip.
func (c *TMDBClient) GetMovieDetails(ctx context.Context, tmdbID int) (*TMDBMovieDetails, error) {
	var movie TMDBMovieDetails
	err := c.get(ctx, fmt.Sprintf("/movie/%d", tmdbID), map[string]string{
		"append_to_response": "credits,images",
	}, &movie)
	if err != nil {
		if err == ErrNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("movie details request failed: %w", err)
	}
	return &movie, nil
}

// GetTrendingMovies returns the trending chart for "day" or "week".
func (c *TMDBClient) GetTrendingMovies(ctx context.Context, timeWindow string) (*TMDBSearchResponse, error) {
	if timeWindow != "day" && timeWindow != "week" {
		timeWindow = "week"
	}
	var resp TMDBSearchResponse
	err := c.get(ctx, "/trending/movie/"+timeWindow, nil, &resp)
	if err != nil {
		return nil, fmt.Errorf("trending request failed: %w", err)
	}
	return &resp, nil
}

// PosterURL builds the full image URL for a poster path.
func PosterURL(posterPath *string) string {
	if posterPath == nil || *posterPath == "" {
		return ""
	}
	return "https://image.tmdb.org/t/p/w500" + *posterPath
}

// ProfileURL builds the full image URL for a person's headshot path.
func ProfileURL(profilePath *string) string {
	if profilePath == nil || *profilePath == "" {
		return ""
	}
	return "https://image.tmdb.org/t/p/w185" + *profilePath
}

// BackdropURL builds the full image URL for a backdrop path.
func BackdropURL(backdropPath *string) string {
	if backdropPath == nil || *backdropPath == "" {
		return ""
	}
	return "https://image.tmdb.org/t/p/w1280" + *backdropPath
}
