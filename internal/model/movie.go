package model

import (
	"time"

	"github.com/google/uuid"
)

// Movie is a locally-cached row of catalog metadata, written the first
// time a title's details are fetched.
type Movie struct {
	TmdbID      int       `json:"tmdbId"`
	Title       string    `json:"title"`
	Overview    string    `json:"overview,omitempty"`
	PosterPath  string    `json:"posterPath,omitempty"`
	ReleaseDate string    `json:"releaseDate,omitempty"`
	Genres      []string  `json:"genres"`
	Runtime     int       `json:"runtime,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// MovieSummary is the trimmed card shape used by trending/search
// responses.
type MovieSummary struct {
	TmdbID int    `json:"id"`
	Title  string `json:"title"`
	Poster string `json:"poster,omitempty"`
}

// CustomPoster is the single global poster override for a movie.
type CustomPoster struct {
	TmdbID    int       `json:"movieId"`
	PosterURL string    `json:"posterUrl"`
	UpdatedBy uuid.UUID `json:"updatedBy"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// StatsResponse is the API response for platform statistics.
type StatsResponse struct {
	TotalUsers     int `json:"totalUsers"`
	TotalLogs      int `json:"totalLogs"`
	TotalLists     int `json:"totalLists"`
	TotalPolls     int `json:"totalPolls"`
	TotalFollows   int `json:"totalFollows"`
	ActiveUsers24h int `json:"activeUsers24h"`
}
