// MovieMatch - Swipe-based movie discovery proxy and client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/tomtom215/moviematch/internal/client"
)

// fakeProxy serves the proxy routes with canned data and records swipes.
type fakeProxy struct {
	mu     sync.Mutex
	swipes []string
}

func (f *fakeProxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.URL.Path == "/users/importOrGetId":
		_, _ = io.WriteString(w, `{"userId":7}`)
	case r.URL.Path == "/movies":
		var b strings.Builder
		b.WriteString("[")
		for i := 100; i < 160; i++ {
			if i > 100 {
				b.WriteString(",")
			}
			fmt.Fprintf(&b, `{"id":%d,"title":"Popular %d","posterURL":"https://image.tmdb.org/t/p/w500/p%d.jpg"}`, i, i, i)
		}
		b.WriteString("]")
		_, _ = io.WriteString(w, b.String())
	case r.URL.Path == "/movie/603":
		_, _ = io.WriteString(w, `{"id":603,"title":"The Matrix","vote_average":8.2,"runtime":136}`)
	case r.URL.Path == "/swipes":
		body, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		f.swipes = append(f.swipes, string(body))
		f.mu.Unlock()
		_, _ = io.WriteString(w, `{"success":true}`)
	case r.URL.Path == "/recommendations/content/7":
		_, _ = io.WriteString(w, `[{"id":1,"title":"Content Pick","genres":[{"id":18,"name":"Drama"}],"vote_average":7.9}]`)
	case r.URL.Path == "/recommendations/cf/7", r.URL.Path == "/recommendations/hybrid/7":
		_, _ = io.WriteString(w, `[]`)
	case r.URL.Path == "/recommendations/feed/7":
		_, _ = io.WriteString(w, `{"items":[{"id":1,"title":"Feed Pick"}],"total":20,"has_more":true}`)
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `[]`)
	}
}

func run(t *testing.T, proxy http.Handler, stdin string, args ...string) (string, error) {
	t.Helper()
	srv := httptest.NewServer(proxy)
	t.Cleanup(srv.Close)
	t.Setenv("MOVIEMATCH_BASE_URL", srv.URL)
	t.Setenv("MOVIEMATCH_USER_ID", "0")

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append(args, "--no-color"))
	err := cmd.Execute()
	return out.String(), err
}

func TestLogin(t *testing.T) {
	out, err := run(t, &fakeProxy{}, "", "login", "--uid", "firebase-1", "--name", "Ada")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if !strings.Contains(out, "user 7") || !strings.Contains(out, "MOVIEMATCH_USER_ID=7") {
		t.Errorf("unexpected output:\n%s", out)
	}

	if _, err := run(t, &fakeProxy{}, "", "login"); err == nil {
		t.Error("expected error without --uid")
	}
}

func TestDeck(t *testing.T) {
	out, err := run(t, &fakeProxy{}, "", "deck")
	if err != nil {
		t.Fatalf("deck failed: %v", err)
	}
	if !strings.Contains(out, "Popular 100") || !strings.Contains(out, "Popular 159") {
		t.Errorf("deck output incomplete:\n%s", out)
	}
}

func TestMovie(t *testing.T) {
	out, err := run(t, &fakeProxy{}, "", "movie", "603")
	if err != nil {
		t.Fatalf("movie failed: %v", err)
	}
	if !strings.Contains(out, "The Matrix") || !strings.Contains(out, "136 min") {
		t.Errorf("unexpected output:\n%s", out)
	}

	if _, err := run(t, &fakeProxy{}, "", "movie", "abc"); err == nil {
		t.Error("expected error for non-numeric id")
	}
}

func TestSwipe(t *testing.T) {
	proxy := &fakeProxy{}
	if _, err := run(t, proxy, "", "swipe", "603", "LIKE", "--user", "7"); err != nil {
		t.Fatalf("swipe failed: %v", err)
	}
	if len(proxy.swipes) != 1 || !strings.Contains(proxy.swipes[0], `"direction":"like"`) {
		t.Errorf("unexpected swipes %v", proxy.swipes)
	}

	if _, err := run(t, proxy, "", "swipe", "603", "meh", "--user", "7"); err == nil {
		t.Error("expected error for invalid direction")
	}
	_, err := run(t, proxy, "", "swipe", "603", "like")
	if !errors.Is(err, client.ErrMissingUser) {
		t.Errorf("expected ErrMissingUser, got %v", err)
	}
}

func TestRecs_All(t *testing.T) {
	out, err := run(t, &fakeProxy{}, "", "recs", "--user", "7", "--all")
	if err != nil {
		t.Fatalf("recs failed: %v", err)
	}
	for _, want := range []string{"Loading recommendations…", "Smart Recommendations", "Recommended for You", "DRAMA", "Content Pick", "★ 7.9", "Popular 148"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	// 1 primary + 49 popular fills the target of 50; the 50th is Popular 148.
	if strings.Contains(out, "Popular 149") {
		t.Error("list must stop at the target count")
	}
	if strings.Contains(out, "Load More (") {
		t.Error("Load More must not be offered when everything is shown")
	}
}

func TestRecs_PromptsLoadMore(t *testing.T) {
	out, err := run(t, &fakeProxy{}, "y\nn\n", "recs", "--user", "7")
	if err != nil {
		t.Fatalf("recs failed: %v", err)
	}
	if !strings.Contains(out, "(11 of 50 shown)") || !strings.Contains(out, "(17 of 50 shown)") {
		t.Errorf("expected two pages before stopping:\n%s", out)
	}
	if strings.Contains(out, "(23 of 50 shown)") {
		t.Error("declining Load More must stop paging")
	}
}

func TestRecs_Feed(t *testing.T) {
	out, err := run(t, &fakeProxy{}, "", "recs", "--user", "7", "--feed")
	if err != nil {
		t.Fatalf("recs --feed failed: %v", err)
	}
	if !strings.Contains(out, "Feed Pick") || !strings.Contains(out, "(1 of 20 shown)") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestRecs_NoUser(t *testing.T) {
	if _, err := run(t, &fakeProxy{}, "", "recs"); !errors.Is(err, client.ErrMissingUser) {
		t.Errorf("expected ErrMissingUser, got %v", err)
	}
}
