package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/matchpulse/football-sync/internal/domain/livematch"
	qb "github.com/matchpulse/football-sync/internal/platform/querybuilder"
)

type LiveMatchRepository struct {
	db *sqlx.DB
}

func NewLiveMatchRepository(db *sqlx.DB) *LiveMatchRepository {
	return &LiveMatchRepository{db: db}
}

func (r *LiveMatchRepository) UpsertMany(ctx context.Context, rows []livematch.LiveMatch) (livematch.UpsertOutcome, error) {
	outcome := livematch.UpsertOutcome{}
	for _, row := range rows {
		query, args, err := qb.InsertModel("live_matches", newLiveMatchInsertModel(row), liveMatchUpsertSuffix)
		if err != nil {
			return outcome, fmt.Errorf("build upsert live match query: %w", err)
		}
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			outcome.Failed = append(outcome.Failed, livematch.UpsertFailure{
				ExternalID: row.ExternalID,
				Err:        fmt.Errorf("upsert live match: %w", err),
			})
			continue
		}
		outcome.Succeeded = append(outcome.Succeeded, row.ExternalID)
	}
	return outcome, nil
}

// DeleteNotIn removes rows no longer reported live. An empty keep set
// clears the whole table.
func (r *LiveMatchRepository) DeleteNotIn(ctx context.Context, keep []int64) (int64, error) {
	values := make([]any, 0, len(keep))
	for _, id := range keep {
		values = append(values, id)
	}

	query, args, err := qb.DeleteFrom("live_matches").
		Where(qb.NotIn("external_id", values)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build delete stale live matches query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete stale live matches: %w", err)
	}
	return result.RowsAffected()
}

func (r *LiveMatchRepository) PurgeStale(ctx context.Context, olderThan time.Time) (int64, error) {
	query, args, err := qb.DeleteFrom("live_matches").
		Where(qb.Expr("last_updated_at < ?", olderThan.UTC())).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build purge stale live matches query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("purge stale live matches: %w", err)
	}
	return result.RowsAffected()
}

func (r *LiveMatchRepository) Clear(ctx context.Context) (int64, error) {
	query, _, err := qb.DeleteFrom("live_matches").ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build clear live matches query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("clear live matches: %w", err)
	}
	return result.RowsAffected()
}

func (r *LiveMatchRepository) List(ctx context.Context) ([]livematch.LiveMatch, error) {
	query, args, err := qb.Select("*").From("live_matches").
		OrderBy("utc_date", "external_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list live matches query: %w", err)
	}

	var rows []liveMatchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list live matches: %w", err)
	}

	out := make([]livematch.LiveMatch, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *LiveMatchRepository) Summary(ctx context.Context) (livematch.Summary, error) {
	rows, last, err := tableSummary(ctx, r.db, "live_matches", "last_updated_at")
	if err != nil {
		return livematch.Summary{}, err
	}
	return livematch.Summary{Rows: rows, LastUpdatedAt: last}, nil
}
