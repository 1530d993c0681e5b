package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/matchpulse/football-sync/internal/domain/standing"
	qb "github.com/matchpulse/football-sync/internal/platform/querybuilder"
)

type StandingRepository struct {
	db *sqlx.DB
}

func NewStandingRepository(db *sqlx.DB) *StandingRepository {
	return &StandingRepository{db: db}
}

// ReplaceByCompetition swaps one competition's table inside a single
// transaction so readers never observe a half-written table.
func (r *StandingRepository) ReplaceByCompetition(ctx context.Context, code string, rows []standing.Standing) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace standings: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	clearQuery, clearArgs, err := qb.DeleteFrom("standings").
		Where(qb.Eq("competition_code", code)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build clear standings query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, clearQuery, clearArgs...); err != nil {
		return fmt.Errorf("clear standings for %s: %w", code, err)
	}

	for _, item := range rows {
		query, args, err := qb.InsertModel("standings", newStandingInsertModel(item), "")
		if err != nil {
			return fmt.Errorf("build insert standing query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert standing competition=%s team=%d: %w", code, item.TeamID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace standings tx: %w", err)
	}
	return nil
}

func (r *StandingRepository) ListByCompetition(ctx context.Context, code string) ([]standing.Standing, error) {
	query, args, err := qb.Select("*").From("standings").
		Where(qb.Eq("competition_code", code)).
		OrderBy("position", "points DESC", "goal_difference DESC", "team_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list standings query: %w", err)
	}

	var rows []standingTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list standings: %w", err)
	}

	out := make([]standing.Standing, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *StandingRepository) Summary(ctx context.Context) (standing.Summary, error) {
	rows, last, err := tableSummary(ctx, r.db, "standings", "updated_at")
	if err != nil {
		return standing.Summary{}, err
	}
	return standing.Summary{Rows: rows, LastUpdatedAt: last}, nil
}
