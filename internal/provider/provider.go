// Package provider defines the shared types and errors for the external
// data sources the bot consumes: the movie catalog and the watch-link
// web search.
package provider

import (
	"fmt"
	"time"
)

// Name uniquely identifies an upstream data source.
type Name string

// Known provider names.
const (
	NameKinopoisk Name = "kinopoisk"
	NameWebSearch Name = "websearch"
)

// DisplayName returns a human-readable name for the provider.
func (n Name) DisplayName() string {
	switch n {
	case NameKinopoisk:
		return "Кинопоиск"
	case NameWebSearch:
		return "Web Search"
	default:
		return string(n)
	}
}

// Movie is a single candidate record from a catalog search response.
// Every field is optional; absent strings are empty and absent numbers
// are zero.
type Movie struct {
	Name            string
	AlternativeName string
	Year            int
	Description     string
	RatingIMDB      float64
	RatingKP        float64
	PosterURL       string
}

// ErrUnavailable indicates a transient upstream failure (network error,
// timeout, server error, malformed body).
type ErrUnavailable struct {
	Provider Name
	Cause    error
}

func (e *ErrUnavailable) Error() string {
	return fmt.Sprintf("provider %s unavailable: %v", e.Provider, e.Cause)
}

func (e *ErrUnavailable) Unwrap() error { return e.Cause }

// ErrAuthRequired indicates the provider needs an API key but none is configured.
type ErrAuthRequired struct {
	Provider Name
}

func (e *ErrAuthRequired) Error() string {
	return fmt.Sprintf("provider %s: API key not configured", e.Provider)
}

// Timeouts applied by the adapters to their outbound calls.
const (
	CatalogTimeout = 10 * time.Second
	SearchTimeout  = 5 * time.Second
)
