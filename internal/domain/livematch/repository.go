package livematch

import (
	"context"
	"time"
)

// UpsertFailure records one row that could not be written.
type UpsertFailure struct {
	ExternalID int64
	Err        error
}

type UpsertOutcome struct {
	Succeeded []int64
	Failed    []UpsertFailure
}

type Summary struct {
	Rows          int64
	LastUpdatedAt *time.Time
}

// Repository owns the live-match cache table.
type Repository interface {
	UpsertMany(ctx context.Context, rows []LiveMatch) (UpsertOutcome, error)
	// DeleteNotIn removes rows whose external id is outside keep; an empty
	// keep set clears the table.
	DeleteNotIn(ctx context.Context, keep []int64) (int64, error)
	PurgeStale(ctx context.Context, olderThan time.Time) (int64, error)
	Clear(ctx context.Context) (int64, error)
	List(ctx context.Context) ([]LiveMatch, error)
	Summary(ctx context.Context) (Summary, error)
}
