package websearch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/kvasnikov/cinebot/internal/provider"
)

const resultsPage = `<html><body>
<a class="fuLhoc ZWRArf" href="/url?q=https://watch1.example/venom&amp;sa=U">Веном смотреть онлайн</a>
<a class="other" href="/url?q=https://ignored.example&amp;sa=U">реклама</a>
<a class="fuLhoc ZWRArf" href="/url?q=https://watch2.example/venom&amp;sa=U">Веном 2018</a>
<a class="fuLhoc ZWRArf" href="/url?q=https://watch3.example/venom&amp;sa=U">Веном hd</a>
<a class="fuLhoc ZWRArf" href="/url?q=https://watch4.example/venom&amp;sa=U">Веном 1080p</a>
<a class="fuLhoc ZWRArf" href="/url?q=https://watch5.example/venom&amp;sa=U">Веном бесплатно</a>
</body></html>`

func newTestAdapter(t *testing.T, baseURL string) *Adapter {
	t.Helper()
	limiter := provider.NewRateLimiterMap()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewWithBaseURL(limiter, logger, baseURL)
}

func TestSearchExtractsLinks(t *testing.T) {
	var gotQuery, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotUA = r.Header.Get("User-Agent")
		fmt.Fprint(w, resultsPage)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	links, err := a.Search(context.Background(), "Смотреть онлайн бесплатно Веном 2018")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if gotQuery != "Смотреть онлайн бесплатно Веном 2018" {
		t.Errorf("query = %q", gotQuery)
	}
	if gotUA != userAgent {
		t.Errorf("User-Agent = %q, want %q", gotUA, userAgent)
	}

	// Extraction stops at four links and skips non-matching anchors.
	want := []string{
		"https://watch1.example/venom",
		"https://watch2.example/venom",
		"https://watch3.example/venom",
		"https://watch4.example/venom",
	}
	if len(links) != len(want) {
		t.Fatalf("got %d links (%v), want %d", len(links), links, len(want))
	}
	for i, w := range want {
		if links[i] != w {
			t.Errorf("links[%d] = %q, want %q", i, links[i], w)
		}
	}
}

func TestSearchNoMatchingAnchors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html><body><a href="/somewhere">nope</a></body></html>`)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	links, err := a.Search(context.Background(), "что-нибудь")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(links) != 0 {
		t.Errorf("got %v, want no links", links)
	}
}

func TestSearchCustomSelector(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html><body><a class="result" href="/url?q=https://watch.example&amp;x=1">link</a></body></html>`)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetSelector("a.result")

	links, err := a.Search(context.Background(), "веном")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(links) != 1 || links[0] != "https://watch.example" {
		t.Errorf("links = %v", links)
	}
}

func TestSearchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Search(context.Background(), "веном")

	var unavail *provider.ErrUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
}

func TestSearchConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // immediately, so the request fails

	a := newTestAdapter(t, srv.URL)
	_, err := a.Search(context.Background(), "веном")

	var unavail *provider.ErrUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
}

func TestCleanLink(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/url?q=https://a.example/page&sa=U&ved=x", "https://a.example/page"},
		{"/url?q=https://a.example", "https://a.example"},
		{"https://direct.example/page", "https://direct.example/page"},
	}
	for _, tt := range tests {
		if got := cleanLink(tt.in); got != tt.want {
			t.Errorf("cleanLink(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
