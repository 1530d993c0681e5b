package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/matchpulse/football-sync/internal/usecase"
)

// Sync job endpoints return the run report with 200 even when parts of
// the run failed; only configuration errors fail the request outright.

func (h *Handler) RunSyncFixturesJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSyncFixturesJob")
	defer span.End()

	h.runSyncJob(ctx, w, "fixtures", h.syncService.SyncFixtures)
}

func (h *Handler) RunSyncLiveJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSyncLiveJob")
	defer span.End()

	h.runSyncJob(ctx, w, "live", h.syncService.SyncLive)
}

func (h *Handler) RunSyncStandingsJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSyncStandingsJob")
	defer span.End()

	h.runSyncJob(ctx, w, "standings", h.syncService.SyncStandings)
}

func (h *Handler) RunSyncHistoryJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSyncHistoryJob")
	defer span.End()

	h.runSyncJob(ctx, w, "history", h.syncService.SyncHistory)
}

func (h *Handler) runSyncJob(ctx context.Context, w http.ResponseWriter, kind string, run func(context.Context) (usecase.SyncReport, error)) {
	if h.syncService == nil {
		writeError(ctx, w, fmt.Errorf("%w: sync service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	report, err := run(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "sync job failed", "kind", kind, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, report)
}

type resyncRequest struct {
	Kinds      []string `json:"kinds" validate:"omitempty,dive,oneof=fixtures live standings history"`
	MaxWorkers int      `json:"max_workers" validate:"omitempty,min=1,max=4"`
}

func (h *Handler) RunResyncJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunResyncJob")
	defer span.End()

	if h.syncService == nil {
		writeError(ctx, w, fmt.Errorf("%w: sync service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	req, err := decodeResyncRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.syncService.Resync(ctx, usecase.ResyncInput{
		Kinds:      req.Kinds,
		MaxWorkers: req.MaxWorkers,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "resync failed", "kinds", req.Kinds, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, result)
}

func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStatus")
	defer span.End()

	if h.statusService == nil {
		writeError(ctx, w, fmt.Errorf("%w: status service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	report, err := h.statusService.Status(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "status report failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, report)
}

// An empty body means resync everything.
func decodeResyncRequest(r *http.Request) (resyncRequest, error) {
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	var req resyncRequest
	if err := decoder.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return resyncRequest{}, nil
		}
		return resyncRequest{}, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return req, nil
}
