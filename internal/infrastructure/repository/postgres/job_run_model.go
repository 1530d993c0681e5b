package postgres

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/matchpulse/football-sync/internal/domain/jobrun"
)

type jobRunTableModel struct {
	ID           int64          `db:"id"`
	RunID        string         `db:"run_id"`
	Kind         string         `db:"kind"`
	Success      bool           `db:"success"`
	Synced       int            `db:"synced"`
	TotalFetched int            `db:"total_fetched"`
	UpsertErrors int            `db:"upsert_errors"`
	CleanedUp    int            `db:"cleaned_up"`
	FetchErrors  []byte         `db:"fetch_errors"`
	DateFrom     sql.NullTime   `db:"date_from"`
	DateTo       sql.NullTime   `db:"date_to"`
	StartedAt    time.Time      `db:"started_at"`
	FinishedAt   time.Time      `db:"finished_at"`
	TraceID      sql.NullString `db:"trace_id"`
	SpanID       sql.NullString `db:"span_id"`
}

type jobRunInsertModel struct {
	RunID        string         `db:"run_id"`
	Kind         string         `db:"kind"`
	Success      bool           `db:"success"`
	Synced       int            `db:"synced"`
	TotalFetched int            `db:"total_fetched"`
	UpsertErrors int            `db:"upsert_errors"`
	CleanedUp    int            `db:"cleaned_up"`
	FetchErrors  []byte         `db:"fetch_errors"`
	DateFrom     *time.Time     `db:"date_from"`
	DateTo       *time.Time     `db:"date_to"`
	StartedAt    time.Time      `db:"started_at"`
	FinishedAt   time.Time      `db:"finished_at"`
	TraceID      sql.NullString `db:"trace_id"`
	SpanID       sql.NullString `db:"span_id"`
}

func newJobRunInsertModel(run jobrun.Run) (jobRunInsertModel, error) {
	fetchErrors := run.FetchErrors
	if fetchErrors == nil {
		fetchErrors = []string{}
	}
	payload, err := sonic.Marshal(fetchErrors)
	if err != nil {
		return jobRunInsertModel{}, fmt.Errorf("marshal fetch errors: %w", err)
	}

	return jobRunInsertModel{
		RunID:        run.RunID,
		Kind:         run.Kind,
		Success:      run.Success,
		Synced:       run.Synced,
		TotalFetched: run.TotalFetched,
		UpsertErrors: run.UpsertErrors,
		CleanedUp:    run.CleanedUp,
		FetchErrors:  payload,
		DateFrom:     run.DateFrom,
		DateTo:       run.DateTo,
		StartedAt:    run.StartedAt.UTC(),
		FinishedAt:   run.FinishedAt.UTC(),
		TraceID:      stringToNullString(run.TraceID),
		SpanID:       stringToNullString(run.SpanID),
	}, nil
}

func (m jobRunTableModel) toDomain() (jobrun.Run, error) {
	fetchErrors := []string{}
	if len(m.FetchErrors) > 0 {
		if err := sonic.Unmarshal(m.FetchErrors, &fetchErrors); err != nil {
			return jobrun.Run{}, fmt.Errorf("unmarshal fetch errors for run %s: %w", m.RunID, err)
		}
	}

	return jobrun.Run{
		RunID:        m.RunID,
		Kind:         m.Kind,
		Success:      m.Success,
		Synced:       m.Synced,
		TotalFetched: m.TotalFetched,
		UpsertErrors: m.UpsertErrors,
		CleanedUp:    m.CleanedUp,
		FetchErrors:  fetchErrors,
		DateFrom:     nullTimeToTimePtr(m.DateFrom),
		DateTo:       nullTimeToTimePtr(m.DateTo),
		StartedAt:    m.StartedAt,
		FinishedAt:   m.FinishedAt,
		TraceID:      m.TraceID.String,
		SpanID:       m.SpanID.String,
	}, nil
}

const jobRunUpsertSuffix = `ON CONFLICT (kind)
DO UPDATE SET
    run_id = EXCLUDED.run_id,
    success = EXCLUDED.success,
    synced = EXCLUDED.synced,
    total_fetched = EXCLUDED.total_fetched,
    upsert_errors = EXCLUDED.upsert_errors,
    cleaned_up = EXCLUDED.cleaned_up,
    fetch_errors = EXCLUDED.fetch_errors,
    date_from = EXCLUDED.date_from,
    date_to = EXCLUDED.date_to,
    started_at = EXCLUDED.started_at,
    finished_at = EXCLUDED.finished_at,
    trace_id = EXCLUDED.trace_id,
    span_id = EXCLUDED.span_id`
