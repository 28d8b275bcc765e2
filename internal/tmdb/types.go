// Package tmdb provides a client for The Movie Database API v3.
//
// This package enables the dashboard to:
// - Fetch today's trending movies
// - Search movies by title
// - Serve bundled demo movies when no API key is configured
package tmdb

// Movie represents a TMDB movie result.
type Movie struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Overview     string  `json:"overview"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	ReleaseDate  string  `json:"release_date"`
	VoteAverage  float64 `json:"vote_average"`
}
