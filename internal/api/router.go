// MovieMatch - Swipe-based movie discovery proxy and client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/moviematch/internal/middleware"
	"github.com/tomtom215/moviematch/internal/recommend"
)

// NewRouter wires every route onto a chi router.
func NewRouter(h *Handler, mw *ChiMiddleware) http.Handler {
	if mw == nil {
		mw = NewChiMiddleware(nil)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(mw.CORS())

	r.Route("/api/v1/health", func(r chi.Router) {
		r.Get("/live", h.HealthLive)
		r.Get("/ready", h.HealthReady)
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(mw.RateLimit("movies"))
		r.Use(middleware.PrometheusMetrics)
		r.Use(middleware.AccessLog(middleware.DefaultSlowRequestThreshold))

		r.Get("/movie/{id}", h.MovieDetail)
		r.Get("/movies", h.Movies)
		r.Post("/swipes", h.RecordSwipe)
		r.Post("/users/importOrGetId", h.ImportOrGetUserID)
	})

	r.Route("/recommendations", func(r chi.Router) {
		r.Use(mw.RateLimit("recommendations"))
		r.Use(middleware.PrometheusMetrics)
		r.Use(middleware.AccessLog(middleware.DefaultSlowRequestThreshold))

		r.Get("/content/{userId}", h.Recommendations(recommend.SourceContent))
		r.Get("/cf/{userId}", h.Recommendations(recommend.SourceCollaborative))
		r.Get("/hybrid/{userId}", h.Recommendations(recommend.SourceHybrid))
		r.Get("/feed/{userId}", h.Feed)
	})

	return r
}
