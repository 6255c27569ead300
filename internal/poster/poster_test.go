// Cinemonth - Monthly Genre-Taste Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemonth

package poster

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
	"time"

	"github.com/tomtom215/cinemonth/internal/recommend"
)

func TestPlaceholder(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Foo Movie", "https://dummyimage.com/200x300/000/fff&text=Foo+Movie"},
		{"Heat", "https://dummyimage.com/200x300/000/fff&text=Heat"},
		{"Amélie & Co", "https://dummyimage.com/200x300/000/fff&text=Am%C3%A9lie+%26+Co"},
	}
	for _, tt := range tests {
		if got := Placeholder("", tt.title); got != tt.want {
			t.Errorf("Placeholder(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
	if got := Placeholder("http://img.test/?t=", "A B"); got != "http://img.test/?t=A+B" {
		t.Errorf("custom base: got %q", got)
	}
}

// tmdbServer serves canned /search/movie responses keyed by query.
func tmdbServer(t *testing.T, responses map[string]string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.URL.Path != "/search/movie" {
			http.NotFound(w, r)
			return
		}
		if r.URL.Query().Get("api_key") != "test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"status_message":"Invalid API key"}`)
			return
		}
		body, ok := responses[r.URL.Query().Get("query")]
		if !ok {
			body = `{"results":[]}`
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func newTestClient(srv *httptest.Server, key string) *TMDbClient {
	return NewTMDbClient(TMDbConfig{
		APIKey:       key,
		BaseURL:      srv.URL,
		ImageBaseURL: "https://image.tmdb.org/t/p/w200",
		Timeout:      2 * time.Second,
	})
}

func TestTMDbClient_ResolvePoster(t *testing.T) {
	srv, _ := tmdbServer(t, map[string]string{
		"Heat": `{"results":[
			{"title":"Heat","release_date":"1986-07-03","poster_path":"/old.jpg"},
			{"title":"Heat","release_date":"1995-12-15","poster_path":"/heat.jpg"}]}`,
		"Solaris": `{"results":[
			{"title":"Solaris","release_date":"2002-11-27","poster_path":""},
			{"title":"Solaris","release_date":"1972-03-20","poster_path":"/solaris72.jpg"}]}`,
		"Nothing": `{"results":[{"title":"Nothing","release_date":"2003-01-01","poster_path":null}]}`,
	})
	client := newTestClient(srv, "test-key")

	tests := []struct {
		name    string
		title   string
		year    int
		want    string
		wantErr error
	}{
		{"year match preferred", "Heat", 1995, "https://image.tmdb.org/t/p/w200/heat.jpg", nil},
		{"falls back to unfiltered", "Heat", 2020, "https://image.tmdb.org/t/p/w200/old.jpg", nil},
		{"skips results without poster", "Solaris", 2002, "https://image.tmdb.org/t/p/w200/solaris72.jpg", nil},
		{"no poster anywhere", "Nothing", 2003, "", ErrNoMatch},
		{"no results", "Unknown", 1999, "", ErrNoMatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := client.ResolvePoster(context.Background(), tt.title, tt.year)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTMDbClient_HTTPError(t *testing.T) {
	srv, _ := tmdbServer(t, nil)
	client := newTestClient(srv, "wrong-key")

	_, err := client.ResolvePoster(context.Background(), "Heat", 1995)
	if err == nil || errors.Is(err, ErrNoMatch) {
		t.Fatalf("err = %v, want status error", err)
	}
	if !strings.Contains(err.Error(), "401") {
		t.Errorf("error should mention status: %v", err)
	}
}

func TestTMDbClient_RateLimitHonorsContext(t *testing.T) {
	srv, _ := tmdbServer(t, nil)
	client := NewTMDbClient(TMDbConfig{
		APIKey: "test-key", BaseURL: srv.URL, ImageBaseURL: "x",
		RateLimit: 0.001, RateBurst: 1,
	})

	// first call uses the burst
	if _, err := client.ResolvePoster(context.Background(), "A", 2000); !errors.Is(err, ErrNoMatch) {
		t.Fatalf("first call err = %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := client.ResolvePoster(ctx, "B", 2000); err == nil {
		t.Error("second call should fail waiting for the limiter")
	}
}

// stubResolver returns canned answers and counts calls per title.
type stubResolver struct {
	mu    sync.Mutex
	calls map[string]int
	fn    func(title string) (string, error)
}

func newStub(fn func(title string) (string, error)) *stubResolver {
	return &stubResolver{calls: make(map[string]int), fn: fn}
}

func (s *stubResolver) ResolvePoster(ctx context.Context, title string, _ int) (string, error) {
	s.mu.Lock()
	s.calls[title]++
	s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return s.fn(title)
}

func (s *stubResolver) count(title string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[title]
}

func TestBreakerResolver_Trips(t *testing.T) {
	failing := newStub(func(string) (string, error) { return "", errors.New("connection refused") })
	b := NewBreakerResolver(failing, BreakerConfig{Name: "test-trip", MinRequests: 3, FailRatio: 0.5, Timeout: time.Hour})

	for i := 0; i < 3; i++ {
		if _, err := b.ResolvePoster(context.Background(), "X", 2000); err == nil {
			t.Fatal("expected failure")
		}
	}
	if b.State() != "open" {
		t.Fatalf("State() = %q, want open", b.State())
	}

	_, err := b.ResolvePoster(context.Background(), "X", 2000)
	if !errors.Is(err, ErrCircuitOpen) {
		t.Errorf("err = %v, want ErrCircuitOpen", err)
	}
	if failing.count("X") != 3 {
		t.Errorf("open breaker should not call through, calls = %d", failing.count("X"))
	}
}

func TestBreakerResolver_NoMatchIsSuccess(t *testing.T) {
	noMatch := newStub(func(string) (string, error) { return "", ErrNoMatch })
	b := NewBreakerResolver(noMatch, BreakerConfig{Name: "test-nomatch", MinRequests: 2, FailRatio: 0.5})

	for i := 0; i < 5; i++ {
		if _, err := b.ResolvePoster(context.Background(), "X", 2000); !errors.Is(err, ErrNoMatch) {
			t.Fatalf("err = %v, want ErrNoMatch", err)
		}
	}
	if b.State() != "closed" {
		t.Errorf("State() = %q, want closed", b.State())
	}
}

func items(titles ...string) []recommend.ScoredItem {
	out := make([]recommend.ScoredItem, len(titles))
	for i, title := range titles {
		out[i] = recommend.ScoredItem{Entry: recommend.CatalogEntry{Key: recommend.MovieKey{Title: title, Year: 1999}}}
	}
	return out
}

func TestEnricher_OrderAndFallback(t *testing.T) {
	stub := newStub(func(title string) (string, error) {
		switch title {
		case "Foo Movie":
			return "", ErrNoMatch
		case "Broken":
			return "", errors.New("boom")
		default:
			return "https://img.test/" + title + ".jpg", nil
		}
	})
	e := NewEnricher(stub, EnricherConfig{MaxConcurrency: 2})

	got := e.Enrich(context.Background(), items("A", "Foo Movie", "B", "Broken"))
	want := []string{
		"https://img.test/A.jpg",
		"https://dummyimage.com/200x300/000/fff&text=Foo+Movie",
		"https://img.test/B.jpg",
		"https://dummyimage.com/200x300/000/fff&text=Broken",
	}
	if len(got) != len(want) {
		t.Fatalf("got %d urls, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("urls[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	for _, title := range []string{"A", "Foo Movie", "B", "Broken"} {
		if n := stub.count(title); n != 1 {
			t.Errorf("%s resolved %d times, want 1", title, n)
		}
	}
}

func TestEnricher_CachesOnlyRealPosters(t *testing.T) {
	stub := newStub(func(title string) (string, error) {
		if title == "Foo Movie" {
			return "", ErrNoMatch
		}
		return "https://img.test/" + title + ".jpg", nil
	})
	e := NewEnricher(stub, EnricherConfig{})

	for i := 0; i < 3; i++ {
		e.Enrich(context.Background(), items("A", "Foo Movie"))
	}
	if n := stub.count("A"); n != 1 {
		t.Errorf("found poster resolved %d times, want 1 (cached)", n)
	}
	if n := stub.count("Foo Movie"); n != 3 {
		t.Errorf("placeholder title resolved %d times, want 3 (not cached)", n)
	}
	if e.Cache().Len() != 1 {
		t.Errorf("cache holds %d entries, want 1", e.Cache().Len())
	}
}

func TestEnricher_Timeout(t *testing.T) {
	blocking := &blockingResolver{}
	e := NewEnricher(blocking, EnricherConfig{Timeout: 20 * time.Millisecond})

	start := time.Now()
	got := e.Enrich(context.Background(), items("Slow One", "Slow Two"))
	if time.Since(start) > 2*time.Second {
		t.Fatal("Enrich did not honor its timeout")
	}
	for i, u := range got {
		if !strings.HasPrefix(u, DefaultPlaceholderBaseURL) {
			t.Errorf("urls[%d] = %q, want placeholder", i, u)
		}
	}
}

// blockingResolver waits for ctx to end.
type blockingResolver struct{}

func (blockingResolver) ResolvePoster(ctx context.Context, _ string, _ int) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func TestEnricher_NilResolver(t *testing.T) {
	e := NewEnricher(nil, EnricherConfig{})
	got := e.Enrich(context.Background(), items("Foo Movie"))
	if got[0] != "https://dummyimage.com/200x300/000/fff&text=Foo+Movie" {
		t.Errorf("got %q", got[0])
	}
	if len(e.Enrich(context.Background(), nil)) != 0 {
		t.Error("empty input should give empty output")
	}
}
