package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/matchpulse/football-sync/internal/domain/match"
	qb "github.com/matchpulse/football-sync/internal/platform/querybuilder"
)

type MatchHistoryRepository struct {
	db *sqlx.DB
}

func NewMatchHistoryRepository(db *sqlx.DB) *MatchHistoryRepository {
	return &MatchHistoryRepository{db: db}
}

func (r *MatchHistoryRepository) UpsertMany(ctx context.Context, rows []match.Match) (match.UpsertOutcome, error) {
	return upsertMatchRows(ctx, r.db, "match_history", rows)
}

// DeleteBefore enforces the trailing retention window.
func (r *MatchHistoryRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query, args, err := qb.DeleteFrom("match_history").
		Where(qb.Expr("utc_date < ?", cutoff.UTC())).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build prune match history query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("prune match history: %w", err)
	}
	return result.RowsAffected()
}

// ListByTeam returns the team's most recent finished matches, newest
// first.
func (r *MatchHistoryRepository) ListByTeam(ctx context.Context, teamID int64, limit int) ([]match.Match, error) {
	builder := qb.Select("*").From("match_history").
		Where(qb.Expr("(home_team_id = ? OR away_team_id = ?)", teamID, teamID)).
		OrderBy("utc_date DESC", "external_id DESC")
	if limit > 0 {
		builder = builder.Limit(limit)
	}
	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list match history by team query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list match history by team: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *MatchHistoryRepository) Summary(ctx context.Context) (match.Summary, error) {
	rows, last, err := tableSummary(ctx, r.db, "match_history", "updated_at")
	if err != nil {
		return match.Summary{}, err
	}
	return match.Summary{Rows: rows, LastUpdatedAt: last}, nil
}
