// Package kinopoisk implements the movie catalog adapter for the
// kinopoisk.dev API.
package kinopoisk

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/kvasnikov/cinebot/internal/provider"
)

const (
	defaultBaseURL = "https://api.kinopoisk.dev"
	// searchLimit caps a search at the first page of results; pagination
	// beyond that adds nothing to best-match selection.
	searchLimit = 100
)

// Adapter queries the Kinopoisk catalog. Authentication is via an API key
// sent in the X-API-KEY header.
type Adapter struct {
	client  *http.Client
	limiter *provider.RateLimiterMap
	logger  *slog.Logger
	baseURL string
	apiKey  string
}

// New creates a Kinopoisk adapter with the default base URL.
func New(apiKey string, limiter *provider.RateLimiterMap, logger *slog.Logger) *Adapter {
	return NewWithBaseURL(apiKey, limiter, logger, defaultBaseURL)
}

// NewWithBaseURL creates a Kinopoisk adapter with a custom base URL (for testing).
func NewWithBaseURL(apiKey string, limiter *provider.RateLimiterMap, logger *slog.Logger, baseURL string) *Adapter {
	return &Adapter{
		client:  &http.Client{Timeout: provider.CatalogTimeout},
		limiter: limiter,
		logger:  logger.With(slog.String("provider", "kinopoisk")),
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
	}
}

// Name returns the provider identifier.
func (a *Adapter) Name() provider.Name { return provider.NameKinopoisk }

// Search queries the catalog by free-text title and returns the first page
// of candidate records in catalog order.
func (a *Adapter) Search(ctx context.Context, query string) ([]provider.Movie, error) {
	if query == "" {
		return nil, nil
	}
	if a.apiKey == "" {
		return nil, &provider.ErrAuthRequired{Provider: provider.NameKinopoisk}
	}

	if err := a.limiter.Wait(ctx, provider.NameKinopoisk); err != nil {
		return nil, &provider.ErrUnavailable{
			Provider: provider.NameKinopoisk,
			Cause:    fmt.Errorf("rate limiter: %w", err),
		}
	}

	params := url.Values{
		"page":  {"1"},
		"limit": {fmt.Sprintf("%d", searchLimit)},
		"query": {query},
	}
	reqURL := a.baseURL + "/v1.4/movie/search?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-API-KEY", a.apiKey)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, &provider.ErrUnavailable{Provider: provider.NameKinopoisk, Cause: err}
	}
	defer resp.Body.Close() //nolint:errcheck

	switch resp.StatusCode {
	case http.StatusOK:
		// continue
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, &provider.ErrAuthRequired{Provider: provider.NameKinopoisk}
	case http.StatusTooManyRequests:
		return nil, &provider.ErrUnavailable{
			Provider: provider.NameKinopoisk,
			Cause:    fmt.Errorf("rate limited by server"),
		}
	default:
		return nil, &provider.ErrUnavailable{
			Provider: provider.NameKinopoisk,
			Cause:    fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4*1024*1024))
	if err != nil {
		return nil, &provider.ErrUnavailable{Provider: provider.NameKinopoisk, Cause: err}
	}

	var sr searchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, &provider.ErrUnavailable{
			Provider: provider.NameKinopoisk,
			Cause:    fmt.Errorf("parsing search response: %w", err),
		}
	}

	movies := make([]provider.Movie, 0, len(sr.Docs))
	for _, d := range sr.Docs {
		m := provider.Movie{
			Name:            d.Name,
			AlternativeName: d.AlternativeName,
			Year:            d.Year,
			Description:     d.Description,
		}
		if d.Rating != nil {
			m.RatingIMDB = d.Rating.IMDB
			m.RatingKP = d.Rating.KP
		}
		if d.Poster != nil {
			m.PosterURL = d.Poster.URL
		}
		movies = append(movies, m)
	}

	a.logger.Debug("movie search completed",
		slog.String("query", query),
		slog.Int("results", len(movies)))

	return movies, nil
}
