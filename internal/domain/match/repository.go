package match

import (
	"context"
	"time"
)

// Summary describes one cache table for the admin staleness endpoint.
type Summary struct {
	Rows          int64
	LastUpdatedAt *time.Time
}

// Repository owns the fixtures cache table.
type Repository interface {
	UpsertMany(ctx context.Context, rows []Match) (UpsertOutcome, error)
	DeleteFinishedBefore(ctx context.Context, cutoff time.Time) (int64, error)
	ListByCompetition(ctx context.Context, code string) ([]Match, error)
	Summary(ctx context.Context) (Summary, error)
}

// HistoryRepository owns the finished-match history table. Rows share the
// Match shape but live in a separate table with its own retention window.
type HistoryRepository interface {
	UpsertMany(ctx context.Context, rows []Match) (UpsertOutcome, error)
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
	ListByTeam(ctx context.Context, teamID int64, limit int) ([]Match, error)
	Summary(ctx context.Context) (Summary, error)
}
