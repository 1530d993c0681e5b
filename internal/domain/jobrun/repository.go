package jobrun

import "context"

type Repository interface {
	// RecordRun upserts the latest run for the run's kind.
	RecordRun(ctx context.Context, run Run) error
	LatestRuns(ctx context.Context) ([]Run, error)
}
