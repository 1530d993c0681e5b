package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/matchpulse/football-sync/internal/domain/jobrun"
	qb "github.com/matchpulse/football-sync/internal/platform/querybuilder"
)

type JobRunRepository struct {
	db *sqlx.DB
}

func NewJobRunRepository(db *sqlx.DB) *JobRunRepository {
	return &JobRunRepository{db: db}
}

// RecordRun keeps exactly one row per job kind, overwritten on every
// run.
func (r *JobRunRepository) RecordRun(ctx context.Context, run jobrun.Run) error {
	insertModel, err := newJobRunInsertModel(run)
	if err != nil {
		return err
	}

	query, args, err := qb.InsertModel("job_runs", insertModel, jobRunUpsertSuffix)
	if err != nil {
		return fmt.Errorf("build record job run query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("record job run kind=%s: %w", run.Kind, err)
	}
	return nil
}

func (r *JobRunRepository) LatestRuns(ctx context.Context) ([]jobrun.Run, error) {
	query, args, err := qb.Select("*").From("job_runs").
		OrderBy("kind").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list job runs query: %w", err)
	}

	var rows []jobRunTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list job runs: %w", err)
	}

	out := make([]jobrun.Run, 0, len(rows))
	for _, row := range rows {
		run, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, nil
}
