package jobqueue

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/matchpulse/football-sync/internal/platform/resilience"
)

func TestTriggerPublisher_PostsToInternalEndpoint(t *testing.T) {
	var gotPath, gotToken, gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotToken = r.Header.Get("X-Internal-Job-Token")
		gotContentType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	publisher := NewTriggerPublisher(TriggerPublisherConfig{
		TargetBaseURL:    server.URL,
		InternalJobToken: "secret",
		Timeout:          2 * time.Second,
	}, nil)

	if err := publisher.Trigger(context.Background(), "/v1/internal/jobs/sync-live", nil); err != nil {
		t.Fatalf("trigger job: %v", err)
	}
	if gotPath != "/v1/internal/jobs/sync-live" {
		t.Fatalf("unexpected path: %q", gotPath)
	}
	if gotToken != "secret" {
		t.Fatalf("unexpected token header: %q", gotToken)
	}
	if gotContentType != "application/json" {
		t.Fatalf("unexpected content type: %q", gotContentType)
	}
}

func TestTriggerPublisher_RequiresPath(t *testing.T) {
	publisher := NewTriggerPublisher(TriggerPublisherConfig{TargetBaseURL: "http://localhost:8080"}, nil)

	if err := publisher.Trigger(context.Background(), "  ", nil); err == nil {
		t.Fatal("expected error for empty job path")
	}
}

func TestTriggerPublisher_RejectsInvalidBaseURL(t *testing.T) {
	publisher := NewTriggerPublisher(TriggerPublisherConfig{TargetBaseURL: "ftp://example.com"}, nil)

	if err := publisher.Trigger(context.Background(), "/v1/internal/jobs/sync-live", nil); err == nil {
		t.Fatal("expected error for non-http base URL")
	}
}

func TestTriggerPublisher_NonRetryableStatusDoesNotTripBreaker(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	publisher := NewTriggerPublisher(TriggerPublisherConfig{
		TargetBaseURL: server.URL,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 1,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	}, nil)

	for i := 0; i < 3; i++ {
		if err := publisher.Trigger(context.Background(), "/v1/internal/jobs/sync-live", nil); err == nil {
			t.Fatal("expected error for 401 response")
		}
	}
	if err := publisher.breaker.Allow(); err != nil {
		t.Fatalf("breaker should stay closed on auth failures: %v", err)
	}
}

func TestTriggerPublisher_RetryableStatusTripsBreaker(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	publisher := NewTriggerPublisher(TriggerPublisherConfig{
		TargetBaseURL: server.URL,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	}, nil)

	for i := 0; i < 2; i++ {
		if err := publisher.Trigger(context.Background(), "/v1/internal/jobs/sync-live", nil); err == nil {
			t.Fatal("expected error for 500 response")
		}
	}
	if err := publisher.breaker.Allow(); err == nil {
		t.Fatal("breaker should open after repeated upstream failures")
	}
}
