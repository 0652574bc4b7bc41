// MovieMatch - Swipe-based movie discovery proxy and client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package api

import (
	"net/http"

	"github.com/tomtom215/moviematch/internal/logging"
)

// MovieDetail proxies the TMDB movie document. Any failure answers 500 {}.
func (h *Handler) MovieDetail(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, emptyObject)
		return
	}

	raw, err := h.tmdb.MovieDetail(r.Context(), id)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Int("movie_id", id).Msg("Error fetching TMDB detail")
		writeJSON(w, http.StatusInternalServerError, emptyObject)
		return
	}
	writeJSON(w, http.StatusOK, raw)
}

// Movies returns the popular swipe deck. Any failure answers 500 [].
func (h *Handler) Movies(w http.ResponseWriter, r *http.Request) {
	deck, err := h.tmdb.Popular(r.Context())
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Error fetching popular movies")
		writeJSON(w, http.StatusInternalServerError, emptyArray)
		return
	}
	if len(deck) == 0 {
		writeJSON(w, http.StatusOK, emptyArray)
		return
	}
	respondJSON(w, http.StatusOK, deck)
}
