package storage

import "time"

// QueryRecord is one entry in a user's query log.
type QueryRecord struct {
	ID          string
	UserID      int64
	Query       string
	ResultTitle string
	CreatedAt   time.Time
}

// TitleCount is a per-title resolution count for the stats view.
type TitleCount struct {
	Title string
	Count int
}
