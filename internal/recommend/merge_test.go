// MovieMatch - Swipe-based movie discovery proxy and client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package recommend

import (
	"fmt"
	"testing"

	"github.com/tomtom215/moviematch/internal/models"
)

func movies(ids ...int) []models.Movie {
	out := make([]models.Movie, len(ids))
	for i, id := range ids {
		out[i] = models.Movie{ID: id, Title: fmt.Sprintf("Movie %d", id)}
	}
	return out
}

func swipeMovies(ids ...int) []models.SwipeMovie {
	out := make([]models.SwipeMovie, len(ids))
	for i, id := range ids {
		out[i] = models.SwipeMovie{
			ID:        id,
			Title:     fmt.Sprintf("Popular %d", id),
			PosterURL: fmt.Sprintf("https://image.tmdb.org/t/p/w500/p%d.jpg", id),
		}
	}
	return out
}

func ids(list []models.Movie) []int {
	out := make([]int, len(list))
	for i, m := range list {
		out[i] = m.ID
	}
	return out
}

func rangeIDs(from, to int) []int {
	out := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}

func equalIDs(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name  string
		lists [][]models.Movie
		want  []int
	}{
		{
			name:  "overlapping sources keep priority order",
			lists: [][]models.Movie{movies(1, 2), movies(2, 3), movies(3, 4)},
			want:  []int{1, 2, 3, 4},
		},
		{
			name:  "duplicates inside one source",
			lists: [][]models.Movie{movies(5, 5, 6), nil, movies(6, 7)},
			want:  []int{5, 6, 7},
		},
		{
			name:  "all empty",
			lists: [][]models.Movie{nil, {}, nil},
			want:  []int{},
		},
		{
			name:  "only lowest priority source",
			lists: [][]models.Movie{nil, nil, movies(9, 8)},
			want:  []int{9, 8},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Merge(tt.lists...))
			if !equalIDs(got, tt.want) {
				t.Errorf("Merge() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMerge_FirstOccurrenceWins(t *testing.T) {
	content := []models.Movie{{ID: 1, Title: "from content"}}
	hybrid := []models.Movie{{ID: 1, Title: "from hybrid"}}

	merged := Merge(content, nil, hybrid)
	if len(merged) != 1 {
		t.Fatalf("expected 1 movie, got %d", len(merged))
	}
	if merged[0].Title != "from content" {
		t.Errorf("expected content entry to win, got %q", merged[0].Title)
	}
}

func TestBackfill(t *testing.T) {
	tests := []struct {
		name   string
		merged []int
		pool   []int
		target int
		want   []int
	}{
		{
			name:   "fills in pool order skipping seen",
			merged: []int{1, 2, 3},
			pool:   []int{2, 10, 3, 11, 12, 13},
			target: 6,
			want:   []int{1, 2, 3, 10, 11, 12},
		},
		{
			name:   "pool exhausted before target",
			merged: []int{1},
			pool:   []int{1, 2},
			target: 50,
			want:   []int{1, 2},
		},
		{
			name:   "target already met",
			merged: []int{1, 2, 3},
			pool:   []int{4, 5},
			target: 3,
			want:   []int{1, 2, 3},
		},
		{
			name:   "duplicates inside pool",
			merged: nil,
			pool:   []int{7, 7, 8},
			target: 5,
			want:   []int{7, 8},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Backfill(movies(tt.merged...), movies(tt.pool...), tt.target))
			if !equalIDs(got, tt.want) {
				t.Errorf("Backfill() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBackfill_DoesNotMutateInput(t *testing.T) {
	merged := make([]models.Movie, 2, 10)
	copy(merged, movies(1, 2))

	_ = Backfill(merged, movies(3, 4), 4)

	if got := merged[:cap(merged)][2].ID; got != 0 {
		t.Errorf("Backfill wrote into the caller's backing array (found id %d)", got)
	}
}

func TestFromSwipeMovie(t *testing.T) {
	tests := []struct {
		name      string
		posterURL string
		want      string // "" means nil
	}{
		{"tmdb url", "https://image.tmdb.org/t/p/w500/kqjL17yufvn9OVLyXYpvtyrFfak.jpg", "/kqjL17yufvn9OVLyXYpvtyrFfak.jpg"},
		{"trailing slash", "https://image.tmdb.org/t/p/w500/abc.jpg/", "/abc.jpg"},
		{"query ignored", "https://cdn.example.com/img/abc.png?v=2", "/abc.png"},
		{"empty", "", ""},
		{"host only", "https://image.tmdb.org", ""},
		{"unparseable", "http://[::1", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := FromSwipeMovie(models.SwipeMovie{ID: 42, Title: "Answer", PosterURL: tt.posterURL})

			if m.ID != 42 || m.Title != "Answer" {
				t.Errorf("identity not preserved: %+v", m)
			}
			if m.Overview != nil || m.Tagline != nil || m.ReleaseDate != nil || m.VoteAverage != nil ||
				m.Runtime != nil || m.Budget != nil || m.Revenue != nil || m.Genres != nil {
				t.Errorf("expected optional metadata to be absent: %+v", m)
			}

			switch {
			case tt.want == "" && m.PosterPath != nil:
				t.Errorf("expected nil poster path, got %q", *m.PosterPath)
			case tt.want != "" && m.PosterPath == nil:
				t.Errorf("expected poster path %q, got nil", tt.want)
			case tt.want != "" && *m.PosterPath != tt.want:
				t.Errorf("poster path = %q, want %q", *m.PosterPath, tt.want)
			}
		})
	}
}

func TestFromSwipeMovie_RoundTripsPosterURL(t *testing.T) {
	sm := swipeMovies(7)[0]
	if got := FromSwipeMovie(sm).PosterURL(); got != sm.PosterURL {
		t.Errorf("PosterURL() = %q, want %q", got, sm.PosterURL)
	}
}

func TestSourcePath(t *testing.T) {
	for _, s := range PrimarySources {
		parsed, ok := ParseSource(s.Path())
		if !ok || parsed != s {
			t.Errorf("ParseSource(%q) = %q, %v", s.Path(), parsed, ok)
		}
	}
	if SourceCollaborative.Path() != "cf" {
		t.Errorf("collaborative path = %q, want cf", SourceCollaborative.Path())
	}
	if _, ok := ParseSource("fallback"); ok {
		t.Error("fallback must not parse as a primary source")
	}
}
