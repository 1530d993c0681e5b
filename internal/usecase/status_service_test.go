package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/matchpulse/football-sync/internal/domain/jobrun"
	"github.com/matchpulse/football-sync/internal/platform/logging"
)

type countingRunRepo struct {
	stubRunRepo
	latestCalls int
}

func (s *countingRunRepo) LatestRuns(ctx context.Context) ([]jobrun.Run, error) {
	s.latestCalls++
	return s.stubRunRepo.LatestRuns(ctx)
}

func TestStatusService_ReportsAllCacheTables(t *testing.T) {
	t.Parallel()

	runs := &countingRunRepo{}
	runs.recorded = append(runs.recorded, jobrun.Run{
		Kind:         jobrun.KindFixtures,
		Success:      true,
		Synced:       12,
		TotalFetched: 12,
		StartedAt:    time.Now().Add(-time.Minute),
		FinishedAt:   time.Now(),
	})

	svc := NewStatusService(
		&stubMatchRepo{},
		&stubHistoryRepo{},
		&stubLiveRepo{},
		&stubStandingRepo{},
		runs,
		0,
		logging.NewNop(),
	)

	report, err := svc.Status(context.Background())
	if err != nil {
		t.Fatalf("Status: %v", err)
	}

	wantTables := []string{"matches", "live_matches", "standings", "match_history"}
	if len(report.Tables) != len(wantTables) {
		t.Fatalf("expected %d tables, got %d", len(wantTables), len(report.Tables))
	}
	for i, want := range wantTables {
		if report.Tables[i].Table != want {
			t.Errorf("table[%d] = %q, want %q", i, report.Tables[i].Table, want)
		}
	}

	if len(report.LastRuns) != 1 {
		t.Fatalf("expected 1 run, got %d", len(report.LastRuns))
	}
	if report.LastRuns[0].Kind != jobrun.KindFixtures || !report.LastRuns[0].Success {
		t.Fatalf("unexpected run: %+v", report.LastRuns[0])
	}
	if report.LastRuns[0].FetchErrors == nil {
		t.Fatal("fetch_errors should serialize as an empty array, not null")
	}
}

func TestStatusService_CachesReportWithinTTL(t *testing.T) {
	t.Parallel()

	runs := &countingRunRepo{}
	svc := NewStatusService(
		&stubMatchRepo{},
		&stubHistoryRepo{},
		&stubLiveRepo{},
		&stubStandingRepo{},
		runs,
		time.Minute,
		logging.NewNop(),
	)

	for i := 0; i < 3; i++ {
		if _, err := svc.Status(context.Background()); err != nil {
			t.Fatalf("Status call %d: %v", i, err)
		}
	}

	if runs.latestCalls != 1 {
		t.Fatalf("expected a single backing load, got %d", runs.latestCalls)
	}
}

func TestStatusService_ZeroTTLDisablesCaching(t *testing.T) {
	t.Parallel()

	runs := &countingRunRepo{}
	svc := NewStatusService(
		&stubMatchRepo{},
		&stubHistoryRepo{},
		&stubLiveRepo{},
		&stubStandingRepo{},
		runs,
		0,
		logging.NewNop(),
	)

	for i := 0; i < 2; i++ {
		if _, err := svc.Status(context.Background()); err != nil {
			t.Fatalf("Status call %d: %v", i, err)
		}
	}

	if runs.latestCalls != 2 {
		t.Fatalf("expected a load per call, got %d", runs.latestCalls)
	}
}
