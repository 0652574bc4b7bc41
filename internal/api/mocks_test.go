// MovieMatch - Swipe-based movie discovery proxy and client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/moviematch/internal/models"
	"github.com/tomtom215/moviematch/internal/recommend"
)

type mockTMDB struct {
	detail       json.RawMessage
	deck         []models.SwipeMovie
	err          error
	popularCalls int32
}

func (m *mockTMDB) MovieDetail(_ context.Context, _ int) (json.RawMessage, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.detail, nil
}

func (m *mockTMDB) Popular(_ context.Context) ([]models.SwipeMovie, error) {
	atomic.AddInt32(&m.popularCalls, 1)
	if m.err != nil {
		return nil, m.err
	}
	return m.deck, nil
}

type mockRecommender struct {
	raw    json.RawMessage
	lists  map[recommend.Source][]models.Movie
	err    error
	calls  int32
	mu     sync.Mutex
	lastID int
}

func (m *mockRecommender) Recommendations(_ context.Context, _ recommend.Source, userID int) (json.RawMessage, error) {
	atomic.AddInt32(&m.calls, 1)
	m.mu.Lock()
	m.lastID = userID
	m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.raw, nil
}

func (m *mockRecommender) Movies(_ context.Context, source recommend.Source, _ int) ([]models.Movie, error) {
	atomic.AddInt32(&m.calls, 1)
	if m.err != nil {
		return nil, m.err
	}
	return m.lists[source], nil
}

type mockStore struct {
	mu       sync.Mutex
	swipes   []models.Swipe
	users    map[string]int
	err      error
	pingErr  error
	imported []string
}

func newMockStore() *mockStore {
	return &mockStore{users: map[string]int{}}
}

func (m *mockStore) RecordSwipe(_ context.Context, s models.Swipe) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.swipes = append(m.swipes, s)
	return nil
}

func (m *mockStore) ImportOrGetUserID(_ context.Context, uid, _ string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	m.imported = append(m.imported, uid)
	if id, ok := m.users[uid]; ok {
		return id, nil
	}
	id := len(m.users) + 1
	m.users[uid] = id
	return id, nil
}

func (m *mockStore) Ping(context.Context) error { return m.pingErr }
func (m *mockStore) Driver() string             { return "mock" }
func (m *mockStore) Close() error               { return nil }

type mockPublisher struct {
	events chan models.SwipeRecordedEvent
	err    error
}

func newMockPublisher() *mockPublisher {
	return &mockPublisher{events: make(chan models.SwipeRecordedEvent, 10)}
}

func (m *mockPublisher) PublishSwipe(_ context.Context, ev models.SwipeRecordedEvent) error {
	m.events <- ev
	return m.err
}

type staticBreaker struct{ name, state string }

func (b staticBreaker) BreakerName() string  { return b.name }
func (b staticBreaker) BreakerState() string { return b.state }

var errUpstream = errors.New("upstream unavailable")

// testServer bundles a router with its mocks.
type testServer struct {
	tmdb      *mockTMDB
	recs      *mockRecommender
	store     *mockStore
	publisher *mockPublisher
	handler   *Handler
	router    http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ts := &testServer{
		tmdb:      &mockTMDB{},
		recs:      &mockRecommender{lists: map[recommend.Source][]models.Movie{}},
		store:     newMockStore(),
		publisher: newMockPublisher(),
	}
	ts.handler = NewHandler(&HandlerDeps{
		TMDB:        ts.tmdb,
		Recommender: ts.recs,
		Store:       ts.store,
		Publisher:   ts.publisher,
		Breakers:    []BreakerReporter{staticBreaker{"tmdb-api", "closed"}},
		Version:     "test",
	})
	ts.handler.publishAsync = false

	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitDisabled = true
	ts.router = NewRouter(ts.handler, NewChiMiddleware(cfg))
	return ts
}

func (ts *testServer) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func movieList(ids ...int) []models.Movie {
	out := make([]models.Movie, len(ids))
	for i, id := range ids {
		out[i] = models.Movie{ID: id, Title: fmt.Sprintf("Movie %d", id)}
	}
	return out
}

func deck(from, to int) []models.SwipeMovie {
	out := make([]models.SwipeMovie, 0, to-from+1)
	for id := from; id <= to; id++ {
		out = append(out, models.SwipeMovie{ID: id, Title: fmt.Sprintf("Popular %d", id), PosterURL: fmt.Sprintf("https://image.tmdb.org/t/p/w500/p%d.jpg", id)})
	}
	return out
}
