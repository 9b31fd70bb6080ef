// Package resolve runs the per-query pipeline: catalog search, best-match
// selection, watch-link lookup, and caption assembly.
package resolve

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/kvasnikov/cinebot/internal/match"
	"github.com/kvasnikov/cinebot/internal/provider"
)

// ErrNoMatch means the catalog returned no usable candidates, or the
// catalog fetch itself failed. The caller shows a neutral "nothing found"
// message; the distinction is logged, not surfaced.
var ErrNoMatch = errors.New("no matching title found")

// CatalogClient searches the movie catalog by free-text title.
type CatalogClient interface {
	Search(ctx context.Context, query string) ([]provider.Movie, error)
}

// LinkSearcher finds watch-page links for a search query.
type LinkSearcher interface {
	Search(ctx context.Context, query string) ([]string, error)
}

// Resolver turns a user query into a display Card. It is stateless and
// safe for concurrent use; each call operates on its own data.
type Resolver struct {
	catalog CatalogClient
	links   LinkSearcher
	logger  *slog.Logger
}

// New creates a resolver.
func New(catalog CatalogClient, links LinkSearcher, logger *slog.Logger) *Resolver {
	return &Resolver{
		catalog: catalog,
		links:   links,
		logger:  logger.With(slog.String("component", "resolver")),
	}
}

// Resolve fetches catalog candidates for the query, selects the closest
// match, and assembles the card. Catalog failures degrade to ErrNoMatch;
// link-lookup failures degrade to a sentinel line inside the caption.
// Single attempt on both outbound calls, no retries.
func (r *Resolver) Resolve(ctx context.Context, query string) (*Card, error) {
	movies, err := r.catalog.Search(ctx, query)
	if err != nil {
		r.logger.Warn("catalog search failed", "query", query, "error", err)
		return nil, ErrNoMatch
	}

	res, ok := match.SelectBest(query, movies)
	if !ok {
		return nil, ErrNoMatch
	}
	m := res.Movie

	links := r.watchLinks(ctx, res.Title, m.Year)

	return &Card{
		Title:      res.Title,
		Year:       m.Year,
		RatingIMDB: m.RatingIMDB,
		RatingKP:   m.RatingKP,
		PosterURL:  m.PosterURL,
		Caption:    buildCaption(res.Title, m.Year, m.RatingIMDB, m.RatingKP, m.Description, links),
	}, nil
}

// watchLinks looks up watch-page links for the resolved title. Every
// failure is absorbed here and converted to the sentinel message.
func (r *Resolver) watchLinks(ctx context.Context, title string, year int) string {
	query := "Смотреть онлайн бесплатно " + title
	if year != 0 {
		query += " " + strconv.Itoa(year)
	}

	found, err := r.links.Search(ctx, query)
	if err != nil {
		r.logger.Warn("link search failed", "title", title, "error", err)
		return noLinksMessage
	}
	return formatLinks(found)
}
