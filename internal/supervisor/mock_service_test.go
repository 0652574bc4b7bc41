// MovieMatch - Swipe-based movie discovery proxy and client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package supervisor

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

// mockService runs until canceled, optionally failing a number of times first.
type mockService struct {
	name       string
	startCount atomic.Int32
	failCount  atomic.Int32
	mu         sync.Mutex
	maxFails   int32
	started    chan struct{}
}

func newMockService(name string) *mockService {
	return &mockService{name: name, started: make(chan struct{}, 16)}
}

func (m *mockService) Serve(ctx context.Context) error {
	m.startCount.Add(1)
	select {
	case m.started <- struct{}{}:
	default:
	}

	m.mu.Lock()
	maxFails := m.maxFails
	m.mu.Unlock()
	if maxFails > 0 && m.failCount.Add(1) <= maxFails {
		return errors.New("simulated failure")
	}

	<-ctx.Done()
	return ctx.Err()
}

func (m *mockService) setFailCount(n int32) {
	m.mu.Lock()
	m.maxFails = n
	m.mu.Unlock()
}

func (m *mockService) String() string { return m.name }
