// MovieMatch - Swipe-based movie discovery proxy and client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package models

import "strings"

// Default TMDB image location for posters.
const (
	DefaultImageBaseURL = "https://image.tmdb.org/t/p"
	DefaultPosterSize   = "w500"
)

// PosterURL joins an image base, a size segment and a relative poster path.
// An empty path yields "".
func PosterURL(imageBase, size, posterPath string) string {
	if posterPath == "" {
		return ""
	}
	if !strings.HasPrefix(posterPath, "/") {
		posterPath = "/" + posterPath
	}
	return strings.TrimRight(imageBase, "/") + "/" + size + posterPath
}

// PosterURL returns the absolute w500 poster URL, or "" when the movie has none.
func (m Movie) PosterURL() string {
	if m.PosterPath == nil {
		return ""
	}
	return PosterURL(DefaultImageBaseURL, DefaultPosterSize, *m.PosterPath)
}
