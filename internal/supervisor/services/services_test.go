// MovieMatch - Swipe-based movie discovery proxy and client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type mockCloser struct {
	closed atomic.Int32
	err    error
}

func (m *mockCloser) Close() error {
	m.closed.Add(1)
	return m.err
}

func TestPublisherService_ClosesOnCancel(t *testing.T) {
	pub := &mockCloser{}
	svc := NewPublisherService(pub)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	time.Sleep(10 * time.Millisecond)
	if pub.closed.Load() != 0 {
		t.Fatal("publisher closed before shutdown")
	}
	cancel()

	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() = %v", err)
	}
	if pub.closed.Load() != 1 {
		t.Errorf("Close called %d times, want 1", pub.closed.Load())
	}
	if svc.String() != "swipe-publisher" {
		t.Errorf("String() = %q", svc.String())
	}
}

func TestPublisherService_CloseError(t *testing.T) {
	pub := &mockCloser{err: errors.New("nats: connection closed")}
	svc := NewPublisherService(pub)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := svc.Serve(ctx); !errors.Is(err, pub.err) {
		t.Errorf("Serve() = %v, want wrapped close error", err)
	}
}

type mockPinger struct {
	mu    sync.Mutex
	err   error
	pings int
}

func (m *mockPinger) Ping(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pings++
	return m.err
}

func (m *mockPinger) Driver() string { return "mock" }

func (m *mockPinger) setErr(err error) {
	m.mu.Lock()
	m.err = err
	m.mu.Unlock()
}

func TestStoreMonitor_Check(t *testing.T) {
	store := &mockPinger{}
	mon := NewStoreMonitor(store, time.Minute)
	if !mon.Healthy() {
		t.Fatal("monitor must start healthy")
	}

	store.setErr(errors.New("connection refused"))
	mon.check(context.Background())
	if mon.Healthy() {
		t.Error("expected unhealthy after failed ping")
	}

	store.setErr(nil)
	mon.check(context.Background())
	if !mon.Healthy() {
		t.Error("expected healthy after recovery")
	}
}

func TestStoreMonitor_ServePings(t *testing.T) {
	store := &mockPinger{}
	mon := NewStoreMonitor(store, 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if err := mon.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve() = %v", err)
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	if store.pings < 2 {
		t.Errorf("pings = %d, want at least 2", store.pings)
	}
}

func TestNewStoreMonitor_DefaultInterval(t *testing.T) {
	mon := NewStoreMonitor(&mockPinger{}, 0)
	if mon.interval != DefaultStoreCheckInterval || mon.timeout != 5*time.Second {
		t.Errorf("interval=%v timeout=%v", mon.interval, mon.timeout)
	}
}
