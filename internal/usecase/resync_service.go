package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/matchpulse/football-sync/internal/domain/jobrun"
	"github.com/panjf2000/ants/v2"
)

type ResyncInput struct {
	// Kinds narrows the resync to specific jobs; empty means all four.
	Kinds      []string
	MaxWorkers int
}

type ResyncResult struct {
	TaskCount    int                `json:"task_count"`
	SuccessCount int                `json:"success_count"`
	FailedCount  int                `json:"failed_count"`
	WorkerCount  int                `json:"worker_count"`
	Tasks        []ResyncTaskResult `json:"tasks"`
	Timestamp    time.Time          `json:"timestamp"`
}

type ResyncTaskResult struct {
	Kind       string      `json:"kind"`
	Status     string      `json:"status"`
	DurationMs int64       `json:"duration_ms"`
	Report     *SyncReport `json:"report,omitempty"`
	Message    string      `json:"message,omitempty"`
}

const (
	resyncStatusSuccess = "success"
	resyncStatusFailed  = "failed"

	resyncMaxWorkers = 2
)

// Resync runs the requested sync jobs concurrently on a bounded pool.
// The jobs write to disjoint tables, so running them side by side is
// safe; each task still produces its own report and job-run record.
func (s *SyncService) Resync(ctx context.Context, input ResyncInput) (ResyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.Resync")
	defer span.End()

	kinds, err := normalizeResyncKinds(input.Kinds)
	if err != nil {
		return ResyncResult{}, err
	}

	workers := input.MaxWorkers
	if workers <= 0 || workers > resyncMaxWorkers {
		workers = resyncMaxWorkers
	}
	if workers > len(kinds) {
		workers = len(kinds)
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return ResyncResult{}, fmt.Errorf("create resync worker pool: %w", err)
	}
	defer pool.Release()

	var (
		wg           sync.WaitGroup
		mu           sync.Mutex
		successCount atomic.Int64
		failedCount  atomic.Int64
	)
	tasks := make([]ResyncTaskResult, 0, len(kinds))

	for _, kind := range kinds {
		kind := kind
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()

			taskStart := time.Now()
			report, runErr := s.runJob(ctx, kind)
			result := ResyncTaskResult{
				Kind:       kind,
				Status:     resyncStatusSuccess,
				DurationMs: time.Since(taskStart).Milliseconds(),
				Report:     &report,
			}
			if runErr != nil {
				result.Status = resyncStatusFailed
				result.Message = runErr.Error()
				result.Report = nil
				failedCount.Add(1)
			} else {
				successCount.Add(1)
			}

			mu.Lock()
			tasks = append(tasks, result)
			mu.Unlock()
		})
		if submitErr != nil {
			wg.Done()
			failedCount.Add(1)
			mu.Lock()
			tasks = append(tasks, ResyncTaskResult{
				Kind:    kind,
				Status:  resyncStatusFailed,
				Message: fmt.Sprintf("submit task: %v", submitErr),
			})
			mu.Unlock()
		}
	}
	wg.Wait()

	sort.Slice(tasks, func(i, j int) bool { return tasks[i].Kind < tasks[j].Kind })

	return ResyncResult{
		TaskCount:    len(kinds),
		SuccessCount: int(successCount.Load()),
		FailedCount:  int(failedCount.Load()),
		WorkerCount:  workers,
		Tasks:        tasks,
		Timestamp:    s.now().UTC(),
	}, nil
}

func (s *SyncService) runJob(ctx context.Context, kind string) (SyncReport, error) {
	switch kind {
	case jobrun.KindFixtures:
		return s.SyncFixtures(ctx)
	case jobrun.KindLive:
		return s.SyncLive(ctx)
	case jobrun.KindStandings:
		return s.SyncStandings(ctx)
	case jobrun.KindHistory:
		return s.SyncHistory(ctx)
	default:
		return SyncReport{}, fmt.Errorf("%w: unknown sync kind %q", ErrInvalidInput, kind)
	}
}

func normalizeResyncKinds(requested []string) ([]string, error) {
	if len(requested) == 0 {
		return jobrun.Kinds(), nil
	}

	seen := make(map[string]struct{}, len(requested))
	kinds := make([]string, 0, len(requested))
	for _, raw := range requested {
		kind := strings.ToLower(strings.TrimSpace(raw))
		if kind == "" {
			continue
		}
		if !jobrun.IsValidKind(kind) {
			return nil, fmt.Errorf("%w: unknown sync kind %q", ErrInvalidInput, raw)
		}
		if _, ok := seen[kind]; ok {
			continue
		}
		seen[kind] = struct{}{}
		kinds = append(kinds, kind)
	}
	if len(kinds) == 0 {
		return jobrun.Kinds(), nil
	}
	return kinds, nil
}
