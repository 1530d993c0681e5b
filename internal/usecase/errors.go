package usecase

import (
	"errors"
	"fmt"
)

// Sentinel errors mapped to HTTP statuses at the interface layer.
var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	// ErrConfiguration is the only fatal sync failure: a job aborts
	// immediately and the trigger surface answers 500. Everything else is
	// collected into the run report.
	ErrConfiguration = errors.New("configuration error")
)

// RateLimitError reports an upstream 429. Soft: the affected competition
// is skipped for the run and recorded in fetch_errors.
type RateLimitError struct {
	Status int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited (status=%d)", e.Status)
}

// UpstreamError reports any other non-2xx upstream response.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("upstream status=%d", e.Status)
	}
	return fmt.Sprintf("upstream status=%d body=%s", e.Status, e.Body)
}

// TransportError reports a network-level failure before any upstream
// status was received.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
