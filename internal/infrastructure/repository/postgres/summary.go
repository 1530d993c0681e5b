package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// tableSummary reports row count and last write time for one cache
// table, feeding the admin status endpoint.
func tableSummary(ctx context.Context, db *sqlx.DB, table, tsColumn string) (int64, *time.Time, error) {
	query := fmt.Sprintf("SELECT COUNT(*) AS rows, MAX(%s) AS last_updated_at FROM %s", tsColumn, table)

	var row struct {
		Rows          int64        `db:"rows"`
		LastUpdatedAt sql.NullTime `db:"last_updated_at"`
	}
	if err := db.GetContext(ctx, &row, query); err != nil {
		return 0, nil, fmt.Errorf("summarize %s: %w", table, err)
	}
	return row.Rows, nullTimeToTimePtr(row.LastUpdatedAt), nil
}
