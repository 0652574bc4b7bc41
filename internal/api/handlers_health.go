// MovieMatch - Swipe-based movie discovery proxy and client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/moviematch/internal/models"
)

// readinessTimeout bounds the store ping of the readiness probe.
const readinessTimeout = 2 * time.Second

// HealthLive answers 200 while the process is up.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondAPI(w, http.StatusOK, "success", map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady answers 200 when the store responds, 503 otherwise. Breaker
// states are reported but do not affect readiness.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	status := models.HealthStatus{
		Version: h.version,
		Uptime:  time.Since(h.startTime).Seconds(),
		Checks:  map[string]string{},
	}

	ready := true
	if h.store == nil {
		status.Checks["database"] = "not configured"
		ready = false
	} else {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		err := h.store.Ping(ctx)
		cancel()
		if err != nil {
			status.Checks["database"] = "unreachable"
			ready = false
		} else {
			status.Checks["database"] = "ok"
		}
	}

	if len(h.breakers) > 0 {
		status.Breakers = make(map[string]string, len(h.breakers))
		for _, b := range h.breakers {
			status.Breakers[b.BreakerName()] = b.BreakerState()
		}
	}

	code := http.StatusOK
	status.Status = "ready"
	if !ready {
		code = http.StatusServiceUnavailable
		status.Status = "not_ready"
	}
	respondAPI(w, code, status.Status, status)
}
