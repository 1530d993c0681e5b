package usecase

import (
	"errors"
	"fmt"
	"time"
)

// DateRange is the resource window a run covered, in YYYY-MM-DD.
type DateRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// SyncReport is the structured result of one sync run. Partial failures
// are carried inside the report; a job only fails outright on a
// configuration error.
type SyncReport struct {
	Success      bool       `json:"success"`
	Synced       int        `json:"synced"`
	TotalFetched int        `json:"total_fetched"`
	UpsertErrors int        `json:"upsert_errors"`
	FetchErrors  []string   `json:"fetch_errors"`
	CleanedUp    int        `json:"cleaned_up,omitempty"`
	Timestamp    time.Time  `json:"timestamp"`
	DateRange    *DateRange `json:"date_range,omitempty"`
}

func newSyncReport() SyncReport {
	return SyncReport{FetchErrors: []string{}}
}

// formatFetchError renders one per-competition soft failure for the
// report's fetch_errors list.
func formatFetchError(competitionCode string, err error) string {
	return competitionCode + ": " + describeFetchError(err)
}

func describeFetchError(err error) string {
	var rateErr *RateLimitError
	if errors.As(err, &rateErr) {
		return "Rate limited"
	}
	var upstreamErr *UpstreamError
	if errors.As(err, &upstreamErr) {
		return fmt.Sprintf("Upstream error (status=%d)", upstreamErr.Status)
	}
	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return "Network error"
	}
	return err.Error()
}
