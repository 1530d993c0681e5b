package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestIntervalGate_FirstCallPassesImmediately(t *testing.T) {
	t.Parallel()

	gate := NewIntervalGate(time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	started := time.Now()
	if err := gate.Wait(ctx); err != nil {
		t.Fatalf("first Wait: %v", err)
	}
	if elapsed := time.Since(started); elapsed > 50*time.Millisecond {
		t.Fatalf("first Wait blocked for %v", elapsed)
	}
}

func TestIntervalGate_SecondCallBlocksUntilCancel(t *testing.T) {
	t.Parallel()

	gate := NewIntervalGate(time.Minute)

	if err := gate.Wait(context.Background()); err != nil {
		t.Fatalf("first Wait: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := gate.Wait(ctx); err == nil {
		t.Fatal("expected second Wait to fail before the interval elapses")
	}
}

func TestIntervalGate_DefaultsInterval(t *testing.T) {
	t.Parallel()

	gate := NewIntervalGate(0)
	if gate.limiter == nil {
		t.Fatal("expected limiter to be configured")
	}
}

func TestNopGate(t *testing.T) {
	t.Parallel()

	if err := (NopGate{}).Wait(context.Background()); err != nil {
		t.Fatalf("NopGate.Wait: %v", err)
	}
}
