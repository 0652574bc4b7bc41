// MovieMatch - Swipe-based movie discovery proxy and client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package models

// Movie is a recommendation candidate as served by the recommender and TMDB.
// Identity is ID alone; every other field is optional metadata.
type Movie struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Overview    *string  `json:"overview,omitempty"`
	Tagline     *string  `json:"tagline,omitempty"`
	ReleaseDate *string  `json:"release_date,omitempty"` // YYYY-MM-DD
	VoteAverage *float64 `json:"vote_average,omitempty"`
	Runtime     *int     `json:"runtime,omitempty"`
	Budget      *int64   `json:"budget,omitempty"`
	Revenue     *int64   `json:"revenue,omitempty"`
	PosterPath  *string  `json:"poster_path,omitempty"` // relative, e.g. "/abc.jpg"
	Genres      []Genre  `json:"genres,omitempty"`
}

// Genre is a TMDB genre tag.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// SwipeMovie is an item of the swipe deck (GET /movies). It doubles as the
// fallback pool for recommendations.
type SwipeMovie struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	PosterURL string `json:"posterURL"`
}

// TMDBMovieSummary is an entry of a TMDB list endpoint such as /movie/popular.
type TMDBMovieSummary struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	PosterPath  string  `json:"poster_path"`
	Overview    string  `json:"overview"`
	ReleaseDate string  `json:"release_date"`
	VoteAverage float64 `json:"vote_average"`
}

// TMDBPage is the envelope of TMDB paginated list responses.
type TMDBPage struct {
	Page         int                `json:"page"`
	Results      []TMDBMovieSummary `json:"results"`
	TotalPages   int                `json:"total_pages"`
	TotalResults int                `json:"total_results"`
}
