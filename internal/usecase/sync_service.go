package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/matchpulse/football-sync/internal/domain/jobrun"
	"github.com/matchpulse/football-sync/internal/domain/livematch"
	"github.com/matchpulse/football-sync/internal/domain/match"
	"github.com/matchpulse/football-sync/internal/domain/standing"
	"github.com/matchpulse/football-sync/internal/platform/id"
	"github.com/matchpulse/football-sync/internal/platform/logging"
	"github.com/matchpulse/football-sync/internal/platform/ratelimit"
	"go.opentelemetry.io/otel/trace"
)

// SyncConfig carries the shared sync policy. TrackedCompetitions is the
// single source of truth for every job; changing the tracked set is a
// deploy-time decision.
type SyncConfig struct {
	TrackedCompetitions []string
	FixturesWindowDays  int
	HistoryWindowDays   int
}

func (c SyncConfig) fixturesWindowDays() int {
	if c.FixturesWindowDays <= 0 {
		return 3
	}
	return c.FixturesWindowDays
}

func (c SyncConfig) historyWindowDays() int {
	if c.HistoryWindowDays <= 0 {
		return 90
	}
	return c.HistoryWindowDays
}

// SyncService runs the four cache synchronization jobs. Each run is the
// same shape: resolve the window, clean stale rows, fetch sequentially
// behind the rate-limit gate, persist best-effort, report.
type SyncService struct {
	provider  SourceProvider
	matches   match.Repository
	history   match.HistoryRepository
	live      livematch.Repository
	standings standing.Repository
	runs      jobrun.Repository
	gate      ratelimit.Gate
	idGen     id.Generator
	logger    *logging.Logger
	cfg       SyncConfig
	now       func() time.Time
}

func NewSyncService(
	provider SourceProvider,
	matches match.Repository,
	history match.HistoryRepository,
	live livematch.Repository,
	standings standing.Repository,
	runs jobrun.Repository,
	gate ratelimit.Gate,
	logger *logging.Logger,
	cfg SyncConfig,
) *SyncService {
	if gate == nil {
		gate = ratelimit.NopGate{}
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &SyncService{
		provider:  provider,
		matches:   matches,
		history:   history,
		live:      live,
		standings: standings,
		runs:      runs,
		gate:      gate,
		idGen:     id.NewRandomGenerator(),
		logger:    logger,
		cfg:       cfg,
		now:       time.Now,
	}
}

// SyncFixtures refreshes the upcoming-fixtures cache over the window
// [today, today+N). Finished matches dated before the window start are
// deleted first so a cleanup failure never blocks the fetch.
func (s *SyncService) SyncFixtures(ctx context.Context) (SyncReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.SyncFixtures")
	defer span.End()

	startedAt := s.now().UTC()
	from := truncateToDay(startedAt)
	to := from.AddDate(0, 0, s.cfg.fixturesWindowDays())

	report := newSyncReport()
	report.DateRange = &DateRange{From: formatDay(from), To: formatDay(to)}

	cleaned, err := s.matches.DeleteFinishedBefore(ctx, from)
	if err != nil {
		s.logger.WarnContext(ctx, "fixtures stale cleanup failed, continuing with fetch", "error", err)
	} else {
		report.CleanedUp = int(cleaned)
	}

	fetched := make([]ExternalMatch, 0, 64)
	for i, code := range s.cfg.TrackedCompetitions {
		if i > 0 {
			if err := s.gate.Wait(ctx); err != nil {
				return report, fmt.Errorf("wait for rate limit gate: %w", err)
			}
		}

		items, err := s.provider.ListMatches(ctx, code, MatchFilter{DateFrom: &from, DateTo: &to})
		if err != nil {
			if errors.Is(err, ErrConfiguration) {
				return report, err
			}
			report.FetchErrors = append(report.FetchErrors, formatFetchError(code, err))
			s.logger.WarnContext(ctx, "fixtures fetch failed for competition", "competition", code, "error", err)
			continue
		}
		fetched = append(fetched, items...)
	}
	report.TotalFetched = len(fetched)

	s.persistMatches(ctx, s.matches, fetched, startedAt, &report)

	report.Success = true
	report.Timestamp = s.now().UTC()
	s.recordRun(ctx, jobrun.KindFixtures, report, startedAt)
	return report, nil
}

// SyncLive refreshes the live cache from one aggregate multi-status
// call. A genuine empty result clears the whole table; a fetch failure
// leaves cached rows intact so a transient upstream error cannot wipe
// valid live state.
func (s *SyncService) SyncLive(ctx context.Context) (SyncReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.SyncLive")
	defer span.End()

	startedAt := s.now().UTC()
	report := newSyncReport()

	items, err := s.provider.ListLiveMatches(ctx, s.cfg.TrackedCompetitions)
	if err != nil {
		if errors.Is(err, ErrConfiguration) {
			return report, err
		}
		report.FetchErrors = append(report.FetchErrors, "live: "+describeFetchError(err))
		report.Success = true
		report.Timestamp = s.now().UTC()
		s.recordRun(ctx, jobrun.KindLive, report, startedAt)
		return report, nil
	}
	report.TotalFetched = len(items)

	rows := mapExternalMatchesToLive(items, startedAt)
	if len(rows) == 0 {
		cleared, err := s.live.Clear(ctx)
		if err != nil {
			s.logger.ErrorContext(ctx, "clear live cache failed", "error", err)
		} else {
			report.CleanedUp = int(cleared)
		}
		report.Success = true
		report.Timestamp = s.now().UTC()
		s.recordRun(ctx, jobrun.KindLive, report, startedAt)
		return report, nil
	}

	outcome, err := s.live.UpsertMany(ctx, rows)
	if err != nil {
		report.UpsertErrors = len(rows)
		s.logger.ErrorContext(ctx, "live upsert batch failed", "rows", len(rows), "error", err)
	} else {
		report.Synced = len(outcome.Succeeded)
		report.UpsertErrors = len(outcome.Failed)
		for _, failure := range outcome.Failed {
			s.logger.WarnContext(ctx, "live upsert failed for match", "match_id", failure.ExternalID, "error", failure.Err)
		}
	}

	// Rows still reported live keep their cache entry even when this
	// tick's upsert failed for them.
	keep := make([]int64, 0, len(rows))
	for _, row := range rows {
		keep = append(keep, row.ExternalID)
	}
	removed, err := s.live.DeleteNotIn(ctx, keep)
	if err != nil {
		s.logger.WarnContext(ctx, "live no-longer-live cleanup failed", "error", err)
	} else {
		report.CleanedUp += int(removed)
	}

	purged, err := s.live.PurgeStale(ctx, startedAt.Add(-livematch.StaleAfter))
	if err != nil {
		s.logger.WarnContext(ctx, "live stale purge failed", "error", err)
	} else {
		report.CleanedUp += int(purged)
	}

	report.Success = true
	report.Timestamp = s.now().UTC()
	s.recordRun(ctx, jobrun.KindLive, report, startedAt)
	return report, nil
}

// SyncStandings replaces each tracked competition's table wholesale. An
// empty upstream table is skipped rather than replacing cached rows with
// nothing.
func (s *SyncService) SyncStandings(ctx context.Context) (SyncReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.SyncStandings")
	defer span.End()

	startedAt := s.now().UTC()
	report := newSyncReport()

	for i, code := range s.cfg.TrackedCompetitions {
		if i > 0 {
			if err := s.gate.Wait(ctx); err != nil {
				return report, fmt.Errorf("wait for rate limit gate: %w", err)
			}
		}

		items, err := s.provider.GetStandings(ctx, code)
		if err != nil {
			if errors.Is(err, ErrConfiguration) {
				return report, err
			}
			report.FetchErrors = append(report.FetchErrors, formatFetchError(code, err))
			s.logger.WarnContext(ctx, "standings fetch failed for competition", "competition", code, "error", err)
			continue
		}
		report.TotalFetched += len(items)

		rows := mapExternalStandingsToDomain(code, items, startedAt)
		if len(rows) == 0 {
			continue
		}
		if err := s.standings.ReplaceByCompetition(ctx, code, rows); err != nil {
			report.UpsertErrors += len(rows)
			s.logger.ErrorContext(ctx, "standings replace failed", "competition", code, "rows", len(rows), "error", err)
			continue
		}
		report.Synced += len(rows)
	}

	report.Success = true
	report.Timestamp = s.now().UTC()
	s.recordRun(ctx, jobrun.KindStandings, report, startedAt)
	return report, nil
}

// SyncHistory refreshes the finished-match history cache over the
// trailing window [today-N, yesterday] and prunes rows older than the
// window start.
func (s *SyncService) SyncHistory(ctx context.Context) (SyncReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.SyncHistory")
	defer span.End()

	startedAt := s.now().UTC()
	today := truncateToDay(startedAt)
	from := today.AddDate(0, 0, -s.cfg.historyWindowDays())
	to := today.AddDate(0, 0, -1)

	report := newSyncReport()
	report.DateRange = &DateRange{From: formatDay(from), To: formatDay(to)}

	pruned, err := s.history.DeleteBefore(ctx, from)
	if err != nil {
		s.logger.WarnContext(ctx, "history retention prune failed, continuing with fetch", "error", err)
	} else {
		report.CleanedUp = int(pruned)
	}

	filter := MatchFilter{
		DateFrom: &from,
		DateTo:   &to,
		Statuses: []string{match.StatusFinished},
	}
	fetched := make([]ExternalMatch, 0, 128)
	for i, code := range s.cfg.TrackedCompetitions {
		if i > 0 {
			if err := s.gate.Wait(ctx); err != nil {
				return report, fmt.Errorf("wait for rate limit gate: %w", err)
			}
		}

		items, err := s.provider.ListMatches(ctx, code, filter)
		if err != nil {
			if errors.Is(err, ErrConfiguration) {
				return report, err
			}
			report.FetchErrors = append(report.FetchErrors, formatFetchError(code, err))
			s.logger.WarnContext(ctx, "history fetch failed for competition", "competition", code, "error", err)
			continue
		}
		fetched = append(fetched, items...)
	}
	report.TotalFetched = len(fetched)

	s.persistMatches(ctx, s.history, fetched, startedAt, &report)

	report.Success = true
	report.Timestamp = s.now().UTC()
	s.recordRun(ctx, jobrun.KindHistory, report, startedAt)
	return report, nil
}

type matchUpserter interface {
	UpsertMany(ctx context.Context, rows []match.Match) (match.UpsertOutcome, error)
}

func (s *SyncService) persistMatches(ctx context.Context, repo matchUpserter, fetched []ExternalMatch, now time.Time, report *SyncReport) {
	rows := mapExternalMatchesToDomain(fetched, now)
	if len(rows) == 0 {
		return
	}

	outcome, err := repo.UpsertMany(ctx, rows)
	if err != nil {
		report.UpsertErrors += len(rows)
		s.logger.ErrorContext(ctx, "match upsert batch failed", "rows", len(rows), "error", err)
		return
	}

	report.Synced += len(outcome.Succeeded)
	report.UpsertErrors += len(outcome.Failed)
	for _, failure := range outcome.Failed {
		s.logger.WarnContext(ctx, "match upsert failed", "match_id", failure.ExternalID, "error", failure.Err)
	}
}

func (s *SyncService) recordRun(ctx context.Context, kind string, report SyncReport, startedAt time.Time) {
	if s.runs == nil {
		return
	}

	runID, err := s.idGen.NewID()
	if err != nil {
		runID = fmt.Sprintf("%s-%d", kind, startedAt.UnixNano())
	}

	run := jobrun.Run{
		RunID:        runID,
		Kind:         kind,
		Success:      report.Success,
		Synced:       report.Synced,
		TotalFetched: report.TotalFetched,
		UpsertErrors: report.UpsertErrors,
		CleanedUp:    report.CleanedUp,
		FetchErrors:  append([]string(nil), report.FetchErrors...),
		StartedAt:    startedAt,
		FinishedAt:   s.now().UTC(),
	}
	if report.DateRange != nil {
		if from, err := time.Parse(dayLayout, report.DateRange.From); err == nil {
			run.DateFrom = &from
		}
		if to, err := time.Parse(dayLayout, report.DateRange.To); err == nil {
			run.DateTo = &to
		}
	}
	if spanCtx := trace.SpanContextFromContext(ctx); spanCtx.IsValid() {
		run.TraceID = spanCtx.TraceID().String()
		run.SpanID = spanCtx.SpanID().String()
	}

	if err := s.runs.RecordRun(ctx, run); err != nil {
		s.logger.WarnContext(ctx, "record sync run failed", "kind", kind, "error", err)
	}
}

const dayLayout = "2006-01-02"

func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func formatDay(t time.Time) string {
	return t.UTC().Format(dayLayout)
}
