package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/matchpulse/football-sync/internal/domain/match"
	qb "github.com/matchpulse/football-sync/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

// UpsertMany writes rows one at a time so a single bad row cannot sink
// the batch; failures come back per row in the outcome.
func (r *MatchRepository) UpsertMany(ctx context.Context, rows []match.Match) (match.UpsertOutcome, error) {
	return upsertMatchRows(ctx, r.db, "matches", rows)
}

func (r *MatchRepository) DeleteFinishedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query, args, err := qb.DeleteFrom("matches").
		Where(
			qb.In("status", []any{match.StatusFinished, "AWARDED"}),
			qb.Expr("utc_date < ?", cutoff.UTC()),
		).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build delete finished matches query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete finished matches: %w", err)
	}
	return result.RowsAffected()
}

func (r *MatchRepository) ListByCompetition(ctx context.Context, code string) ([]match.Match, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(qb.Eq("competition_code", code)).
		OrderBy("utc_date", "external_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list matches by competition query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list matches by competition: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *MatchRepository) Summary(ctx context.Context) (match.Summary, error) {
	rows, last, err := tableSummary(ctx, r.db, "matches", "updated_at")
	if err != nil {
		return match.Summary{}, err
	}
	return match.Summary{Rows: rows, LastUpdatedAt: last}, nil
}

func upsertMatchRows(ctx context.Context, db *sqlx.DB, table string, rows []match.Match) (match.UpsertOutcome, error) {
	outcome := match.UpsertOutcome{}
	for _, row := range rows {
		query, args, err := qb.InsertModel(table, newMatchInsertModel(row), matchUpsertSuffix)
		if err != nil {
			return outcome, fmt.Errorf("build upsert match query: %w", err)
		}
		if _, err := db.ExecContext(ctx, query, args...); err != nil {
			outcome.Failed = append(outcome.Failed, match.UpsertFailure{
				ExternalID: row.ExternalID,
				Err:        fmt.Errorf("upsert into %s: %w", table, err),
			})
			continue
		}
		outcome.Succeeded = append(outcome.Succeeded, row.ExternalID)
	}
	return outcome, nil
}
