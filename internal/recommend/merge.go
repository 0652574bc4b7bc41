// MovieMatch - Swipe-based movie discovery proxy and client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package recommend

import (
	"net/url"
	"path"

	"github.com/tomtom215/moviematch/internal/models"
)

// Merge concatenates lists in the given order, keeping only the first
// occurrence of each movie ID.
func Merge(lists ...[]models.Movie) []models.Movie {
	total := 0
	for _, l := range lists {
		total += len(l)
	}

	seen := make(map[int]struct{}, total)
	merged := make([]models.Movie, 0, total)
	for _, l := range lists {
		for _, m := range l {
			if _, dup := seen[m.ID]; dup {
				continue
			}
			seen[m.ID] = struct{}{}
			merged = append(merged, m)
		}
	}
	return merged
}

// Backfill appends movies from pool whose IDs are not yet present until the
// result holds target movies or the pool is exhausted. A list that already
// meets the target is returned unchanged.
func Backfill(merged, pool []models.Movie, target int) []models.Movie {
	if len(merged) >= target {
		return merged
	}

	seen := make(map[int]struct{}, target)
	for _, m := range merged {
		seen[m.ID] = struct{}{}
	}

	out := make([]models.Movie, len(merged), target)
	copy(out, merged)
	for _, m := range pool {
		if len(out) >= target {
			break
		}
		if _, dup := seen[m.ID]; dup {
			continue
		}
		seen[m.ID] = struct{}{}
		out = append(out, m)
	}
	return out
}

// FromSwipeMovie projects a swipe deck item onto a Movie. Only ID, Title and
// PosterPath are set; the poster path is rebuilt from the last segment of the
// absolute poster URL and is nil when the URL has no usable segment.
func FromSwipeMovie(sm models.SwipeMovie) models.Movie {
	return models.Movie{
		ID:         sm.ID,
		Title:      sm.Title,
		PosterPath: posterPathFromURL(sm.PosterURL),
	}
}

func posterPathFromURL(raw string) *string {
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil
	}
	last := path.Base(u.Path)
	if last == "." || last == "/" {
		return nil
	}
	p := "/" + last
	return &p
}
