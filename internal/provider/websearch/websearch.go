// Package websearch extracts watch-page links from a public web search.
//
// This adapter depends on the unversioned structure of a third-party
// results page, which makes it inherently fragile. The anchor selector is
// an adapter field so the extraction rule can be swapped without touching
// anything downstream.
package websearch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/kvasnikov/cinebot/internal/provider"
)

const (
	defaultBaseURL = "https://www.google.com"
	// defaultSelector matches result anchors on the lightweight
	// (non-JavaScript) results page served to text browsers.
	defaultSelector = "a.fuLhoc.ZWRArf"
	// redirectPrefix wraps every result href on that page.
	redirectPrefix = "/url?q="
	maxLinks       = 4
	userAgent      = "Lynx/3.8.0 libwww-FM/2.15 SSL-MM/1.4 OpenSSL/1.3.0"
)

// Adapter issues a single search request and scrapes result links.
type Adapter struct {
	client   *http.Client
	limiter  *provider.RateLimiterMap
	logger   *slog.Logger
	baseURL  string
	selector string
}

// New creates a web search adapter with the default base URL.
func New(limiter *provider.RateLimiterMap, logger *slog.Logger) *Adapter {
	return NewWithBaseURL(limiter, logger, defaultBaseURL)
}

// NewWithBaseURL creates a web search adapter with a custom base URL (for testing).
func NewWithBaseURL(limiter *provider.RateLimiterMap, logger *slog.Logger, baseURL string) *Adapter {
	return &Adapter{
		client:   &http.Client{Timeout: provider.SearchTimeout},
		limiter:  limiter,
		logger:   logger.With(slog.String("provider", "websearch")),
		baseURL:  strings.TrimRight(baseURL, "/"),
		selector: defaultSelector,
	}
}

// Name returns the provider identifier.
func (a *Adapter) Name() provider.Name { return provider.NameWebSearch }

// SetSelector overrides the anchor selector used to pick result links.
func (a *Adapter) SetSelector(selector string) { a.selector = selector }

// Search runs one search request for the given query and returns up to
// four result links in page order. Any failure is returned as an error;
// the caller decides how to degrade.
func (a *Adapter) Search(ctx context.Context, query string) ([]string, error) {
	if err := a.limiter.Wait(ctx, provider.NameWebSearch); err != nil {
		return nil, &provider.ErrUnavailable{
			Provider: provider.NameWebSearch,
			Cause:    fmt.Errorf("rate limiter: %w", err),
		}
	}

	params := url.Values{
		"q":   {query},
		"hl":  {"ru"},
		"gl":  {"ru"},
		"num": {"10"},
	}
	reqURL := a.baseURL + "/search?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, &provider.ErrUnavailable{Provider: provider.NameWebSearch, Cause: err}
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, &provider.ErrUnavailable{
			Provider: provider.NameWebSearch,
			Cause:    fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, 2*1024*1024))
	if err != nil {
		return nil, &provider.ErrUnavailable{
			Provider: provider.NameWebSearch,
			Cause:    fmt.Errorf("parsing results page: %w", err),
		}
	}

	var links []string
	doc.Find(a.selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, ok := s.Attr("href")
		if !ok || href == "" {
			return true
		}
		if link := cleanLink(href); link != "" {
			links = append(links, link)
		}
		return len(links) < maxLinks
	})

	a.logger.Debug("link search completed",
		slog.String("query", query),
		slog.Int("links", len(links)))

	return links, nil
}

// cleanLink unwraps the results-page redirect: the target URL sits between
// the "/url?q=" prefix and the first "&" of the tracking parameters.
func cleanLink(href string) string {
	href = strings.TrimPrefix(href, redirectPrefix)
	link, _, _ := strings.Cut(href, "&")
	return link
}
