// MovieMatch - Swipe-based movie discovery proxy and client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/moviematch/internal/logging"
	"github.com/tomtom215/moviematch/internal/models"
	"github.com/tomtom215/moviematch/internal/recommend"
	"github.com/tomtom215/moviematch/internal/upstream"
)

// Recommendations returns the handler proxying one primary source. Upstream
// failures answer [] with the upstream status, or 502 when no status exists.
func (h *Handler) Recommendations(source recommend.Source) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := pathID(r, "userId")
		if err != nil {
			writeJSON(w, http.StatusBadRequest, emptyArray)
			return
		}

		logger := logging.Ctx(r.Context())
		logger.Debug().Str("source", string(source)).Int("user_id", userID).Msg("Proxying recommendations")

		raw, err := h.recs.Recommendations(r.Context(), source, userID)
		if err != nil {
			status := upstream.StatusCode(err)
			if status == 0 {
				status = http.StatusBadGateway
			}
			logger.Error().Err(err).Str("source", string(source)).Int("status", status).Msg("Error fetching recommendations")
			writeJSON(w, status, emptyArray)
			return
		}
		writeJSON(w, http.StatusOK, raw)
	}
}

// Feed runs the aggregator server-side and returns the first pages of the
// merged list. ?pages=N reveals N pages (default 1, at most MaxPages).
func (h *Handler) Feed(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "userId must be a positive integer", nil)
		return
	}
	pages, err := queryInt(r, "pages", 1)
	if err != nil || pages < 1 || pages > h.feed.MaxPages {
		respondError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "pages must be between 1 and the configured maximum", nil)
		return
	}

	opts := h.feed.Options
	agg, err := recommend.NewAggregator(upstream.NewFetcher(h.recs, h.tmdb), &opts, logging.Logger())
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Feed is misconfigured", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.feed.Timeout)
	defer cancel()

	state, err := agg.LoadAll(ctx, userID)
	if err != nil && !errors.Is(err, recommend.ErrSuperseded) {
		respondError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load recommendations", err)
		return
	}
	for i := 1; i < pages; i++ {
		if !agg.LoadMore() {
			break
		}
	}
	state = agg.Snapshot()

	items := state.Shown
	if items == nil {
		items = []models.Movie{}
	}
	respondJSON(w, http.StatusOK, models.FeedResponse{
		Items:   items,
		Total:   len(state.Full),
		HasMore: state.HasMore(),
	})
}
