package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/matchpulse/football-sync/internal/domain/jobrun"
	"github.com/matchpulse/football-sync/internal/domain/livematch"
	"github.com/matchpulse/football-sync/internal/domain/match"
	"github.com/matchpulse/football-sync/internal/domain/standing"
	"github.com/matchpulse/football-sync/internal/platform/cache"
	"github.com/matchpulse/football-sync/internal/platform/logging"
)

const statusCacheKey = "status:report"

type CacheTableStatus struct {
	Table         string     `json:"table"`
	Rows          int64      `json:"rows"`
	LastUpdatedAt *time.Time `json:"last_updated_at,omitempty"`
}

type JobRunStatus struct {
	Kind         string    `json:"kind"`
	Success      bool      `json:"success"`
	Synced       int       `json:"synced"`
	TotalFetched int       `json:"total_fetched"`
	UpsertErrors int       `json:"upsert_errors"`
	FetchErrors  []string  `json:"fetch_errors"`
	StartedAt    time.Time `json:"started_at"`
	FinishedAt   time.Time `json:"finished_at"`
}

type StatusReport struct {
	Tables    []CacheTableStatus `json:"tables"`
	LastRuns  []JobRunStatus     `json:"last_runs"`
	Timestamp time.Time          `json:"timestamp"`
}

// StatusService reports cache freshness for operators: row counts and
// last-write times per table plus the latest run per sync job.
type StatusService struct {
	matches   match.Repository
	history   match.HistoryRepository
	live      livematch.Repository
	standings standing.Repository
	runs      jobrun.Repository
	store     *cache.Store
	logger    *logging.Logger
	now       func() time.Time
}

func NewStatusService(
	matches match.Repository,
	history match.HistoryRepository,
	live livematch.Repository,
	standings standing.Repository,
	runs jobrun.Repository,
	cacheTTL time.Duration,
	logger *logging.Logger,
) *StatusService {
	if logger == nil {
		logger = logging.Default()
	}
	var store *cache.Store
	if cacheTTL > 0 {
		store = cache.NewStore(cacheTTL)
	}
	return &StatusService{
		matches:   matches,
		history:   history,
		live:      live,
		standings: standings,
		runs:      runs,
		store:     store,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *StatusService) Status(ctx context.Context) (StatusReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatusService.Status")
	defer span.End()

	if s.store == nil {
		return s.buildReport(ctx)
	}

	value, err := s.store.GetOrLoad(ctx, statusCacheKey, func(ctx context.Context) (any, error) {
		return s.buildReport(ctx)
	})
	if err != nil {
		return StatusReport{}, err
	}

	report, ok := value.(StatusReport)
	if !ok {
		return StatusReport{}, fmt.Errorf("%w: unexpected status cache entry", ErrDependencyUnavailable)
	}
	return report, nil
}

func (s *StatusService) buildReport(ctx context.Context) (StatusReport, error) {
	report := StatusReport{
		Tables:    make([]CacheTableStatus, 0, 4),
		LastRuns:  []JobRunStatus{},
		Timestamp: s.now().UTC(),
	}

	matchSummary, err := s.matches.Summary(ctx)
	if err != nil {
		return StatusReport{}, fmt.Errorf("summarize matches table: %w", err)
	}
	report.Tables = append(report.Tables, CacheTableStatus{
		Table:         "matches",
		Rows:          matchSummary.Rows,
		LastUpdatedAt: matchSummary.LastUpdatedAt,
	})

	liveSummary, err := s.live.Summary(ctx)
	if err != nil {
		return StatusReport{}, fmt.Errorf("summarize live_matches table: %w", err)
	}
	report.Tables = append(report.Tables, CacheTableStatus{
		Table:         "live_matches",
		Rows:          liveSummary.Rows,
		LastUpdatedAt: liveSummary.LastUpdatedAt,
	})

	standingSummary, err := s.standings.Summary(ctx)
	if err != nil {
		return StatusReport{}, fmt.Errorf("summarize standings table: %w", err)
	}
	report.Tables = append(report.Tables, CacheTableStatus{
		Table:         "standings",
		Rows:          standingSummary.Rows,
		LastUpdatedAt: standingSummary.LastUpdatedAt,
	})

	historySummary, err := s.history.Summary(ctx)
	if err != nil {
		return StatusReport{}, fmt.Errorf("summarize match_history table: %w", err)
	}
	report.Tables = append(report.Tables, CacheTableStatus{
		Table:         "match_history",
		Rows:          historySummary.Rows,
		LastUpdatedAt: historySummary.LastUpdatedAt,
	})

	if s.runs != nil {
		runs, err := s.runs.LatestRuns(ctx)
		if err != nil {
			s.logger.WarnContext(ctx, "load latest sync runs failed", "error", err)
		} else {
			for _, run := range runs {
				fetchErrors := run.FetchErrors
				if fetchErrors == nil {
					fetchErrors = []string{}
				}
				report.LastRuns = append(report.LastRuns, JobRunStatus{
					Kind:         run.Kind,
					Success:      run.Success,
					Synced:       run.Synced,
					TotalFetched: run.TotalFetched,
					UpsertErrors: run.UpsertErrors,
					FetchErrors:  fetchErrors,
					StartedAt:    run.StartedAt,
					FinishedAt:   run.FinishedAt,
				})
			}
		}
	}

	return report, nil
}
