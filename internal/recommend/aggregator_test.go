// MovieMatch - Swipe-based movie discovery proxy and client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package recommend

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/moviematch/internal/models"
)

// mockFetcher serves canned lists and counts calls.
type mockFetcher struct {
	lists       map[Source][]models.Movie
	errs        map[Source]error
	fallback    []models.SwipeMovie
	fallbackErr error

	// hook runs before every primary fetch; a non-nil error fails the fetch.
	hook func(ctx context.Context, s Source, userID int) error

	recCalls      int32
	fallbackCalls int32
}

func (m *mockFetcher) FetchRecommendations(ctx context.Context, s Source, userID int) ([]models.Movie, error) {
	atomic.AddInt32(&m.recCalls, 1)
	if m.hook != nil {
		if err := m.hook(ctx, s, userID); err != nil {
			return nil, err
		}
	}
	if err := m.errs[s]; err != nil {
		return nil, err
	}
	return m.lists[s], nil
}

func (m *mockFetcher) FetchFallback(ctx context.Context) ([]models.SwipeMovie, error) {
	atomic.AddInt32(&m.fallbackCalls, 1)
	if m.fallbackErr != nil {
		return nil, m.fallbackErr
	}
	return m.fallback, nil
}

func newTestAggregator(t *testing.T, f Fetcher) *Aggregator {
	t.Helper()
	agg, err := NewAggregator(f, nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewAggregator() error = %v", err)
	}
	return agg
}

// checkInvariants asserts the structural guarantees of any observable state.
func checkInvariants(t *testing.T, s State) {
	t.Helper()
	if len(s.Shown) > len(s.Full) {
		t.Fatalf("Shown (%d) longer than Full (%d)", len(s.Shown), len(s.Full))
	}
	for i := range s.Shown {
		if s.Shown[i].ID != s.Full[i].ID {
			t.Fatalf("Shown is not a prefix of Full at index %d", i)
		}
	}
	seen := make(map[int]bool, len(s.Full))
	for _, m := range s.Full {
		if seen[m.ID] {
			t.Fatalf("duplicate id %d in Full", m.ID)
		}
		seen[m.ID] = true
	}
	if s.LoadingFull && s.LoadingMore {
		t.Fatal("LoadingFull and LoadingMore both set")
	}
}

func TestNewAggregator_Validation(t *testing.T) {
	if _, err := NewAggregator(nil, nil, zerolog.Nop()); err == nil {
		t.Error("expected error for nil fetcher")
	}

	bad := []Options{
		{TargetCount: 0, InitialPageSize: 11, PageIncrement: 6},
		{TargetCount: 50, InitialPageSize: 0, PageIncrement: 6},
		{TargetCount: 50, InitialPageSize: 11, PageIncrement: 0},
		{TargetCount: 50, InitialPageSize: 11, PageIncrement: 6, SourceTimeout: -time.Second},
	}
	for i := range bad {
		if _, err := NewAggregator(&mockFetcher{}, &bad[i], zerolog.Nop()); err == nil {
			t.Errorf("expected error for options %+v", bad[i])
		}
	}
}

func TestLoadAll_MissingIdentity(t *testing.T) {
	f := &mockFetcher{lists: map[Source][]models.Movie{SourceContent: movies(1, 2)}}
	agg := newTestAggregator(t, f)

	if _, err := agg.LoadAll(context.Background(), 7); err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	callsBefore := atomic.LoadInt32(&f.recCalls)

	for _, uid := range []int{0, -1} {
		state, err := agg.LoadAll(context.Background(), uid)
		if !errors.Is(err, ErrMissingIdentity) {
			t.Errorf("LoadAll(%d) error = %v, want ErrMissingIdentity", uid, err)
		}
		if !equalIDs(ids(state.Full), []int{1, 2}) {
			t.Errorf("state changed on missing identity: %v", ids(state.Full))
		}
	}

	if got := atomic.LoadInt32(&f.recCalls); got != callsBefore {
		t.Errorf("expected no fetches for missing identity, got %d extra", got-callsBefore)
	}
}

func TestLoadAll_MergesInPriorityOrder(t *testing.T) {
	f := &mockFetcher{lists: map[Source][]models.Movie{
		SourceContent:       movies(1, 2),
		SourceCollaborative: movies(2, 3),
		SourceHybrid:        movies(3, 4),
	}}
	agg := newTestAggregator(t, f)

	state, err := agg.LoadAll(context.Background(), 1)
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}

	checkInvariants(t, state)
	if !equalIDs(ids(state.Full), []int{1, 2, 3, 4}) {
		t.Errorf("Full = %v, want [1 2 3 4]", ids(state.Full))
	}
	if !equalIDs(ids(state.Shown), []int{1, 2, 3, 4}) {
		t.Errorf("Shown = %v, want all four", ids(state.Shown))
	}
	if state.LoadingFull || state.LoadingMore {
		t.Error("expected loading flags cleared")
	}
	if got := atomic.LoadInt32(&f.recCalls); got != 3 {
		t.Errorf("expected 3 primary fetches, got %d", got)
	}
	if got := atomic.LoadInt32(&f.fallbackCalls); got != 1 {
		t.Errorf("expected 1 fallback fetch for a short list, got %d", got)
	}
}

func TestLoadAll_FallbackNotCalledWhenTargetMet(t *testing.T) {
	f := &mockFetcher{
		lists: map[Source][]models.Movie{
			SourceContent:       movies(rangeIDs(1, 30)...),
			SourceCollaborative: movies(rangeIDs(20, 45)...),
			SourceHybrid:        movies(rangeIDs(40, 60)...),
		},
		fallback: swipeMovies(100, 101),
	}
	agg := newTestAggregator(t, f)

	state, err := agg.LoadAll(context.Background(), 1)
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}

	if got := atomic.LoadInt32(&f.fallbackCalls); got != 0 {
		t.Errorf("fallback called %d times, want 0", got)
	}
	if !equalIDs(ids(state.Full), rangeIDs(1, 60)) {
		t.Errorf("Full = %v, want 1..60", ids(state.Full))
	}
	if len(state.Shown) != 11 {
		t.Errorf("len(Shown) = %d, want 11", len(state.Shown))
	}
}

func TestLoadAll_FallbackFillsToTarget(t *testing.T) {
	pool := append(swipeMovies(3, 4), swipeMovies(rangeIDs(100, 199)...)...)
	f := &mockFetcher{
		lists: map[Source][]models.Movie{
			SourceContent: movies(1, 2, 3),
			SourceHybrid:  movies(4, 5),
		},
		errs:     map[Source]error{SourceCollaborative: errors.New("status 500")},
		fallback: pool,
	}
	agg := newTestAggregator(t, f)

	state, err := agg.LoadAll(context.Background(), 1)
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}

	checkInvariants(t, state)
	want := append([]int{1, 2, 3, 4, 5}, rangeIDs(100, 144)...)
	if !equalIDs(ids(state.Full), want) {
		t.Errorf("Full = %v, want %v", ids(state.Full), want)
	}

	backfilled := state.Full[5]
	if backfilled.Title != "Popular 100" {
		t.Errorf("backfilled title = %q", backfilled.Title)
	}
	if backfilled.PosterPath == nil || *backfilled.PosterPath != "/p100.jpg" {
		t.Errorf("backfilled poster path = %v", backfilled.PosterPath)
	}
}

func TestLoadAll_AllPrimariesFail(t *testing.T) {
	failing := map[Source]error{
		SourceContent:       errors.New("connection refused"),
		SourceCollaborative: errors.New("decode error"),
		SourceHybrid:        errors.New("status 503"),
	}

	t.Run("fallback fills", func(t *testing.T) {
		f := &mockFetcher{errs: failing, fallback: swipeMovies(rangeIDs(1, 80)...)}
		state, err := newTestAggregator(t, f).LoadAll(context.Background(), 1)
		if err != nil {
			t.Fatalf("LoadAll() error = %v", err)
		}
		if !equalIDs(ids(state.Full), rangeIDs(1, 50)) {
			t.Errorf("Full = %v, want first 50 of pool", ids(state.Full))
		}
		if len(state.Shown) != 11 {
			t.Errorf("len(Shown) = %d, want 11", len(state.Shown))
		}
	})

	t.Run("fallback fails too", func(t *testing.T) {
		f := &mockFetcher{errs: failing, fallbackErr: errors.New("tmdb down")}
		state, err := newTestAggregator(t, f).LoadAll(context.Background(), 1)
		if err != nil {
			t.Fatalf("LoadAll() error = %v", err)
		}
		if len(state.Full) != 0 || len(state.Shown) != 0 {
			t.Errorf("expected empty state, got %d/%d", len(state.Full), len(state.Shown))
		}
		if state.LoadingFull {
			t.Error("LoadingFull must be cleared")
		}
	})
}

func TestLoadMore_PagesToEnd(t *testing.T) {
	f := &mockFetcher{lists: map[Source][]models.Movie{SourceContent: movies(rangeIDs(1, 50)...)}}
	agg := newTestAggregator(t, f)

	state, err := agg.LoadAll(context.Background(), 1)
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if len(state.Shown) != 11 {
		t.Fatalf("initial len(Shown) = %d, want 11", len(state.Shown))
	}

	for _, want := range []int{17, 23, 29, 35, 41, 47, 50} {
		if !agg.LoadMore() {
			t.Fatalf("LoadMore() returned false before reaching %d", want)
		}
		s := agg.Snapshot()
		checkInvariants(t, s)
		if len(s.Shown) != want {
			t.Fatalf("len(Shown) = %d, want %d", len(s.Shown), want)
		}
	}

	if agg.LoadMore() {
		t.Error("LoadMore() on a fully shown list should be a no-op")
	}
	if s := agg.Snapshot(); len(s.Shown) != 50 || s.HasMore() {
		t.Errorf("expected 50 shown and no more, got %d", len(s.Shown))
	}
}

func TestLoadMore_BeforeAnyLoad(t *testing.T) {
	agg := newTestAggregator(t, &mockFetcher{})
	if agg.LoadMore() {
		t.Error("LoadMore() on an empty aggregator should be a no-op")
	}
}

func TestLoadMore_ReentrancyGuard(t *testing.T) {
	f := &mockFetcher{lists: map[Source][]models.Movie{SourceContent: movies(rangeIDs(1, 30)...)}}
	agg := newTestAggregator(t, f)
	if _, err := agg.LoadAll(context.Background(), 1); err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}

	var nestedCalls, nestedAccepted int32
	agg.OnChange(func(s State) {
		checkInvariants(t, s)
		if s.LoadingMore {
			atomic.AddInt32(&nestedCalls, 1)
			if agg.LoadMore() {
				atomic.AddInt32(&nestedAccepted, 1)
			}
		}
	})

	if !agg.LoadMore() {
		t.Fatal("outer LoadMore() should advance")
	}

	if nestedCalls != 1 {
		t.Errorf("expected observer to see LoadingMore once, got %d", nestedCalls)
	}
	if nestedAccepted != 0 {
		t.Errorf("nested LoadMore() was accepted %d times", nestedAccepted)
	}
	if s := agg.Snapshot(); len(s.Shown) != 17 || s.LoadingMore {
		t.Errorf("expected exactly one page added and flag cleared, got %d shown, loadingMore=%v", len(s.Shown), s.LoadingMore)
	}
}

func TestLoadMore_NoopWhileLoadingFull(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{}, 3)
	f := &mockFetcher{
		lists: map[Source][]models.Movie{SourceContent: movies(rangeIDs(1, 50)...)},
		hook: func(ctx context.Context, s Source, userID int) error {
			entered <- struct{}{}
			<-release
			return nil
		},
	}
	agg := newTestAggregator(t, f)

	done := make(chan error, 1)
	go func() {
		_, err := agg.LoadAll(context.Background(), 1)
		done <- err
	}()
	<-entered

	s := agg.Snapshot()
	if !s.LoadingFull || len(s.Full) != 0 || len(s.Shown) != 0 {
		t.Errorf("expected loading state with no partial list, got loading=%v full=%d", s.LoadingFull, len(s.Full))
	}
	if agg.LoadMore() {
		t.Error("LoadMore() while loading should be a no-op")
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if s := agg.Snapshot(); len(s.Shown) != 11 {
		t.Errorf("len(Shown) = %d, want 11", len(s.Shown))
	}
}

func TestLoadAll_PublishesAtomically(t *testing.T) {
	f := &mockFetcher{
		lists: map[Source][]models.Movie{
			SourceContent: movies(1, 2),
			SourceHybrid:  movies(3),
		},
		fallback: swipeMovies(rangeIDs(10, 100)...),
	}
	agg := newTestAggregator(t, f)

	var mu sync.Mutex
	var states []State
	agg.OnChange(func(s State) {
		mu.Lock()
		states = append(states, s)
		mu.Unlock()
	})

	if _, err := agg.LoadAll(context.Background(), 1); err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(states) != 2 {
		t.Fatalf("expected 2 transitions (start, publish), got %d", len(states))
	}
	if !states[0].LoadingFull || len(states[0].Full) != 0 {
		t.Errorf("first transition should be loading with an empty list: %+v", states[0])
	}
	last := states[1]
	if last.LoadingFull || len(last.Full) != 50 || len(last.Shown) != 11 {
		t.Errorf("final transition = loading %v, %d full, %d shown", last.LoadingFull, len(last.Full), len(last.Shown))
	}
}

func TestLoadAll_SupersededCycleIsDiscarded(t *testing.T) {
	firstEntered := make(chan struct{})
	var once sync.Once
	var cancelled int32

	f := &mockFetcher{
		hook: func(ctx context.Context, s Source, userID int) error {
			if userID != 1 || s != SourceContent {
				return nil
			}
			once.Do(func() { close(firstEntered) })
			<-ctx.Done()
			atomic.AddInt32(&cancelled, 1)
			return ctx.Err()
		},
		lists: map[Source][]models.Movie{
			SourceContent: movies(1, 2, 3),
			SourceHybrid:  movies(4),
		},
		fallback: swipeMovies(rangeIDs(10, 80)...),
	}
	agg := newTestAggregator(t, f)

	firstDone := make(chan error, 1)
	go func() {
		_, err := agg.LoadAll(context.Background(), 1)
		firstDone <- err
	}()
	<-firstEntered

	second, err := agg.LoadAll(context.Background(), 2)
	if err != nil {
		t.Fatalf("second LoadAll() error = %v", err)
	}

	select {
	case err := <-firstDone:
		if !errors.Is(err, ErrSuperseded) {
			t.Errorf("first LoadAll() error = %v, want ErrSuperseded", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("superseded cycle did not finish")
	}

	if atomic.LoadInt32(&cancelled) != 1 {
		t.Error("expected the superseded cycle's fetch to be cancelled")
	}

	final := agg.Snapshot()
	if !equalIDs(ids(final.Full), ids(second.Full)) {
		t.Errorf("stale cycle overwrote state: %v vs %v", ids(final.Full), ids(second.Full))
	}
	if final.Full[0].ID != 1 || len(final.Full) != 50 {
		t.Errorf("unexpected final list head=%d len=%d", final.Full[0].ID, len(final.Full))
	}
}

func TestLoadAll_SourceTimeout(t *testing.T) {
	f := &mockFetcher{
		hook: func(ctx context.Context, s Source, userID int) error {
			if s != SourceHybrid {
				return nil
			}
			<-ctx.Done()
			return ctx.Err()
		},
		lists: map[Source][]models.Movie{SourceContent: movies(1), SourceHybrid: movies(2)},
	}
	opts := DefaultOptions()
	opts.SourceTimeout = 20 * time.Millisecond
	agg, err := NewAggregator(f, opts, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewAggregator() error = %v", err)
	}

	state, err := agg.LoadAll(context.Background(), 1)
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if !equalIDs(ids(state.Full), []int{1}) {
		t.Errorf("Full = %v, want only the responsive source", ids(state.Full))
	}
}

func TestSnapshot_IsACopy(t *testing.T) {
	f := &mockFetcher{lists: map[Source][]models.Movie{SourceContent: movies(1, 2, 3)}}
	agg := newTestAggregator(t, f)
	state, err := agg.LoadAll(context.Background(), 1)
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}

	state.Full[0].Title = "mutated"
	if agg.Snapshot().Full[0].Title == "mutated" {
		t.Error("caller mutation leaked into aggregator state")
	}
}

func TestAggregator_RandomizedInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	randomList := func() []models.Movie {
		n := rng.Intn(40)
		out := make([]int, n)
		for i := range out {
			out[i] = rng.Intn(120)
		}
		return movies(out...)
	}

	for round := 0; round < 50; round++ {
		pool := make([]int, rng.Intn(80))
		for i := range pool {
			pool[i] = rng.Intn(200)
		}
		f := &mockFetcher{
			lists: map[Source][]models.Movie{
				SourceContent:       randomList(),
				SourceCollaborative: randomList(),
				SourceHybrid:        randomList(),
			},
			fallback: swipeMovies(pool...),
		}
		agg := newTestAggregator(t, f)
		agg.OnChange(func(s State) { checkInvariants(t, s) })

		state, err := agg.LoadAll(context.Background(), 1+round)
		if err != nil {
			t.Fatalf("round %d: LoadAll() error = %v", round, err)
		}
		checkInvariants(t, state)

		merged := Merge(f.lists[SourceContent], f.lists[SourceCollaborative], f.lists[SourceHybrid])
		if len(merged) >= 50 {
			if len(state.Full) != len(merged) {
				t.Fatalf("round %d: Full has %d, merged has %d", round, len(state.Full), len(merged))
			}
		} else if len(state.Full) > 50 {
			t.Fatalf("round %d: backfill overshot target: %d", round, len(state.Full))
		}

		prev := len(state.Shown)
		for agg.LoadMore() {
			s := agg.Snapshot()
			if len(s.Shown) <= prev || len(s.Shown)-prev > 6 {
				t.Fatalf("round %d: page step %d -> %d", round, prev, len(s.Shown))
			}
			prev = len(s.Shown)
		}
		if prev != len(state.Full) {
			t.Fatalf("round %d: paging stopped at %d of %d", round, prev, len(state.Full))
		}
	}
}
