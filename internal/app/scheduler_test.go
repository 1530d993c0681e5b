package app

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/matchpulse/football-sync/internal/config"
	"github.com/matchpulse/football-sync/internal/platform/logging"
)

type stubTrigger struct {
	mu    sync.Mutex
	paths []string
	done  chan struct{}
	once  sync.Once
}

func (s *stubTrigger) Trigger(_ context.Context, path string, _ any) error {
	s.mu.Lock()
	s.paths = append(s.paths, path)
	s.mu.Unlock()
	s.once.Do(func() { close(s.done) })
	return nil
}

func TestScheduler_TriggersJobEndpoint(t *testing.T) {
	trigger := &stubTrigger{done: make(chan struct{})}
	cfg := config.Config{
		SchedulerFixturesInterval:  time.Hour,
		SchedulerLiveInterval:      10 * time.Millisecond,
		SchedulerStandingsInterval: time.Hour,
		SchedulerHistoryInterval:   time.Hour,
	}

	scheduler := NewScheduler(cfg, trigger, logging.NewNop())
	scheduler.Start(context.Background())
	defer scheduler.Stop()

	select {
	case <-trigger.done:
	case <-time.After(2 * time.Second):
		t.Fatal("expected at least one trigger before timeout")
	}

	trigger.mu.Lock()
	defer trigger.mu.Unlock()
	if len(trigger.paths) == 0 || trigger.paths[0] != "/v1/internal/jobs/sync-live" {
		t.Fatalf("unexpected triggered paths: %v", trigger.paths)
	}
}

func TestScheduler_StopCancelsLoops(t *testing.T) {
	trigger := &stubTrigger{done: make(chan struct{})}
	cfg := config.Config{
		SchedulerFixturesInterval:  time.Hour,
		SchedulerLiveInterval:      time.Hour,
		SchedulerStandingsInterval: time.Hour,
		SchedulerHistoryInterval:   time.Hour,
	}

	scheduler := NewScheduler(cfg, trigger, logging.NewNop())
	scheduler.Start(context.Background())

	stopped := make(chan struct{})
	go func() {
		scheduler.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop in time")
	}
}
