package app

import (
	"context"
	"time"

	"github.com/matchpulse/football-sync/internal/config"
	"github.com/matchpulse/football-sync/internal/platform/logging"
	"github.com/sourcegraph/conc"
)

type jobTrigger interface {
	Trigger(ctx context.Context, path string, payload any) error
}

type scheduledJob struct {
	name     string
	path     string
	interval time.Duration
}

// Scheduler fires the sync jobs on fixed intervals by posting to the
// service's own internal job endpoints. It never runs a job directly,
// so concurrency limits and run bookkeeping stay behind the HTTP
// surface.
type Scheduler struct {
	publisher jobTrigger
	jobs      []scheduledJob
	logger    *logging.Logger
	wg        conc.WaitGroup
	cancel    context.CancelFunc
}

func NewScheduler(cfg config.Config, publisher jobTrigger, logger *logging.Logger) *Scheduler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Scheduler{
		publisher: publisher,
		logger:    logger,
		jobs: []scheduledJob{
			{name: "fixtures", path: "/v1/internal/jobs/sync-fixtures", interval: cfg.SchedulerFixturesInterval},
			{name: "live", path: "/v1/internal/jobs/sync-live", interval: cfg.SchedulerLiveInterval},
			{name: "standings", path: "/v1/internal/jobs/sync-standings", interval: cfg.SchedulerStandingsInterval},
			{name: "history", path: "/v1/internal/jobs/sync-history", interval: cfg.SchedulerHistoryInterval},
		},
	}
}

func (s *Scheduler) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	for _, job := range s.jobs {
		job := job
		s.wg.Go(func() {
			s.runJobLoop(ctx, job)
		})
	}

	s.logger.InfoContext(ctx, "scheduler started", "jobs", len(s.jobs))
}

// Stop cancels the job loops and blocks until they exit.
func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) runJobLoop(ctx context.Context, job scheduledJob) {
	if job.interval <= 0 {
		s.logger.Warn("scheduler job skipped", "job", job.name, "reason", "non-positive interval")
		return
	}

	ticker := time.NewTicker(job.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.publisher.Trigger(ctx, job.path, nil); err != nil {
				s.logger.ErrorContext(ctx, "scheduled job trigger failed", "job", job.name, "error", err)
			}
		}
	}
}
