// Package storage persists users, the query log, and per-user favorites.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// timeLayout is RFC 3339 with a fixed-width fractional second, so stored
// TEXT timestamps sort lexicographically in insertion order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Service provides bot data operations.
type Service struct {
	db *sql.DB
}

// NewService creates a storage service.
func NewService(db *sql.DB) *Service {
	return &Service{db: db}
}

// EnsureUser registers a user on first contact. Repeated calls are no-ops.
func (s *Service) EnsureUser(ctx context.Context, userID int64) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, created_at) VALUES (?, ?)
		ON CONFLICT(id) DO NOTHING
	`, userID, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("ensuring user: %w", err)
	}
	return nil
}

// LogQuery appends a resolved query to the user's history.
func (s *Service) LogQuery(ctx context.Context, userID int64, query, resultTitle string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO queries (id, user_id, query, result_title, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, uuid.New().String(), userID, query, resultTitle,
		time.Now().UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("logging query: %w", err)
	}
	return nil
}

// History returns the user's most recent queries, newest first.
func (s *Service) History(ctx context.Context, userID int64, limit int) ([]QueryRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, query, result_title, created_at FROM queries
		WHERE user_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var records []QueryRecord
	for rows.Next() {
		rec, err := scanQuery(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning query record: %w", err)
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

// LastQuery returns the user's most recent query record.
// Returns nil, nil when the history is empty.
func (s *Service) LastQuery(ctx context.Context, userID int64) (*QueryRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, query, result_title, created_at FROM queries
		WHERE user_id = ?
		ORDER BY created_at DESC
		LIMIT 1
	`, userID)
	rec, err := scanQuery(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting last query: %w", err)
	}
	return rec, nil
}

// Stats returns per-title resolution counts for a user, descending by count.
func (s *Service) Stats(ctx context.Context, userID int64, limit int) ([]TitleCount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT result_title, COUNT(*) FROM queries
		WHERE user_id = ?
		GROUP BY result_title
		ORDER BY COUNT(*) DESC
		LIMIT ?
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing stats: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var stats []TitleCount
	for rows.Next() {
		var tc TitleCount
		if err := rows.Scan(&tc.Title, &tc.Count); err != nil {
			return nil, fmt.Errorf("scanning stats row: %w", err)
		}
		stats = append(stats, tc)
	}
	return stats, rows.Err()
}

// AddFavorite adds a title to the user's favorites. Membership is checked
// under whitespace-stripped, case-folded equality, so " Веном " and
// "веном" are the same favorite. Returns false when already present.
func (s *Service) AddFavorite(ctx context.Context, userID int64, title string) (bool, error) {
	existing, err := s.favoriteByKey(ctx, userID, title)
	if err != nil {
		return false, err
	}
	if existing != "" {
		return false, nil
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO favorites (user_id, title, created_at) VALUES (?, ?, ?)
		ON CONFLICT(user_id, title) DO NOTHING
	`, userID, title, time.Now().UTC().Format(timeLayout))
	if err != nil {
		return false, fmt.Errorf("adding favorite: %w", err)
	}
	return true, nil
}

// RemoveFavorite removes a favorite under the same equality rule as
// AddFavorite, deleting the stored row that matches. Returns false when
// no favorite matched.
func (s *Service) RemoveFavorite(ctx context.Context, userID int64, title string) (bool, error) {
	stored, err := s.favoriteByKey(ctx, userID, title)
	if err != nil {
		return false, err
	}
	if stored == "" {
		return false, nil
	}

	_, err = s.db.ExecContext(ctx,
		`DELETE FROM favorites WHERE user_id = ? AND title = ?`, userID, stored)
	if err != nil {
		return false, fmt.Errorf("removing favorite: %w", err)
	}
	return true, nil
}

// Favorites returns the user's favorite titles, newest first.
func (s *Service) Favorites(ctx context.Context, userID int64) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT title FROM favorites WHERE user_id = ? ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("listing favorites: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var titles []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("scanning favorite: %w", err)
		}
		titles = append(titles, t)
	}
	return titles, rows.Err()
}

// favoriteByKey returns the stored title whose fold key matches the given
// title, or "" when none does.
func (s *Service) favoriteByKey(ctx context.Context, userID int64, title string) (string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT title FROM favorites WHERE user_id = ?`, userID)
	if err != nil {
		return "", fmt.Errorf("querying favorites: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	want := foldKey(title)
	for rows.Next() {
		var stored string
		if err := rows.Scan(&stored); err != nil {
			return "", fmt.Errorf("scanning favorite: %w", err)
		}
		if foldKey(stored) == want {
			return stored, nil
		}
	}
	return "", rows.Err()
}

// foldKey normalizes a title for favorites equality: all whitespace
// removed, lowercased. Intentionally not the fuzzy normalization used for
// catalog matching; favorites compare exactly.
func foldKey(title string) string {
	return strings.ToLower(strings.Join(strings.Fields(title), ""))
}

// scanner abstracts *sql.Row and *sql.Rows for scanQuery.
type scanner interface {
	Scan(dest ...any) error
}

func scanQuery(s scanner) (*QueryRecord, error) {
	var rec QueryRecord
	var createdAt string
	if err := s.Scan(&rec.ID, &rec.UserID, &rec.Query, &rec.ResultTitle, &createdAt); err != nil {
		return nil, err
	}
	if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		rec.CreatedAt = t
	}
	return &rec, nil
}
