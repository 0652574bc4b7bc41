// MovieMatch - Swipe-based movie discovery proxy and client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/tomtom215/moviematch/internal/logging"
	"github.com/tomtom215/moviematch/internal/metrics"
	"github.com/tomtom215/moviematch/internal/models"
	"github.com/tomtom215/moviematch/internal/validation"
)

// publishTimeout bounds the asynchronous swipe event publish.
const publishTimeout = 5 * time.Second

// RecordSwipe stores a swipe and publishes swipe.recorded.
func (h *Handler) RecordSwipe(w http.ResponseWriter, r *http.Request) {
	var req models.SwipeRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, models.SwipeResponse{Error: err.Error()})
		return
	}
	req.Direction = strings.ToLower(strings.TrimSpace(req.Direction))
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondJSON(w, http.StatusBadRequest, models.SwipeResponse{Error: verr.Error()})
		return
	}

	logger := logging.Ctx(r.Context())
	logger.Info().
		Int("user_id", req.UserID).
		Int("movie_id", req.MovieID).
		Str("direction", req.Direction).
		Msg("Swipe recorded")

	swipe := models.Swipe{
		UserID:    req.UserID,
		MovieID:   req.MovieID,
		Direction: req.Direction,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.store.RecordSwipe(r.Context(), swipe); err != nil {
		logger.Error().Err(err).Msg("Error inserting swipe")
		respondJSON(w, http.StatusInternalServerError, models.SwipeResponse{})
		return
	}
	metrics.SwipesRecorded.WithLabelValues(req.Direction).Inc()

	h.publishSwipe(r.Context(), models.SwipeRecordedEvent{
		UserID:     swipe.UserID,
		MovieID:    swipe.MovieID,
		Direction:  swipe.Direction,
		RecordedAt: swipe.CreatedAt,
	})

	respondJSON(w, http.StatusOK, models.SwipeResponse{Success: true})
}

// publishSwipe hands the event to the publisher without failing the request.
func (h *Handler) publishSwipe(ctx context.Context, ev models.SwipeRecordedEvent) {
	if h.publisher == nil {
		return
	}

	publish := func() {
		pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
		defer cancel()
		if err := h.publisher.PublishSwipe(pubCtx, ev); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Msg("Failed to publish swipe event")
		}
	}
	if h.publishAsync {
		go publish()
		return
	}
	publish()
}

// ImportOrGetUserID maps a Firebase UID to the integer user id.
func (h *Handler) ImportOrGetUserID(w http.ResponseWriter, r *http.Request) {
	var req models.ImportUserRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "firebaseUid is required"})
		return
	}
	req.FirebaseUID = strings.TrimSpace(req.FirebaseUID)
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: verr.Error()})
		return
	}

	id, err := h.store.ImportOrGetUserID(r.Context(), req.FirebaseUID, req.DisplayName)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Error in /users/importOrGetId")
		respondJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "db error"})
		return
	}
	respondJSON(w, http.StatusOK, models.ImportUserResponse{UserID: id})
}
