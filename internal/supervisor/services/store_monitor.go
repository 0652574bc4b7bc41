// MovieMatch - Swipe-based movie discovery proxy and client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package services

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/moviematch/internal/logging"
)

// DefaultStoreCheckInterval is used when NewStoreMonitor gets a non-positive
// interval.
const DefaultStoreCheckInterval = 30 * time.Second

// Pinger is satisfied by database.Store.
type Pinger interface {
	Ping(ctx context.Context) error
	Driver() string
}

// StoreMonitor pings the swipe store periodically and logs transitions
// between reachable and unreachable.
type StoreMonitor struct {
	store    Pinger
	interval time.Duration
	timeout  time.Duration
	healthy  atomic.Bool
	logger   zerolog.Logger
}

// NewStoreMonitor creates a monitor for store.
func NewStoreMonitor(store Pinger, interval time.Duration) *StoreMonitor {
	if interval <= 0 {
		interval = DefaultStoreCheckInterval
	}
	m := &StoreMonitor{
		store:    store,
		interval: interval,
		timeout:  min(interval, 5*time.Second),
		logger:   logging.WithComponent("store-monitor"),
	}
	m.healthy.Store(true)
	return m
}

// Healthy reports the result of the last check.
func (m *StoreMonitor) Healthy() bool {
	return m.healthy.Load()
}

// Serve checks the store every interval until ctx is canceled.
func (m *StoreMonitor) Serve(ctx context.Context) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			m.check(ctx)
		}
	}
}

func (m *StoreMonitor) check(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, m.timeout)
	err := m.store.Ping(pingCtx)
	cancel()

	wasHealthy := m.healthy.Swap(err == nil)
	switch {
	case err != nil && wasHealthy:
		m.logger.Error().Err(err).Str("driver", m.store.Driver()).Msg("Swipe store unreachable")
	case err == nil && !wasHealthy:
		m.logger.Info().Str("driver", m.store.Driver()).Msg("Swipe store reachable again")
	}
}

func (m *StoreMonitor) String() string {
	return "store-monitor"
}
