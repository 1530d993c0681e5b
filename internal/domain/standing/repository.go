package standing

import (
	"context"
	"time"
)

type Summary struct {
	Rows          int64
	LastUpdatedAt *time.Time
}

// Repository owns the standings cache table.
type Repository interface {
	ReplaceByCompetition(ctx context.Context, code string, rows []Standing) error
	ListByCompetition(ctx context.Context, code string) ([]Standing, error)
	Summary(ctx context.Context) (Summary, error)
}
