package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/matchpulse/football-sync/internal/usecase"
)

func (h *Handler) GetTeamForm(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamForm")
	defer span.End()

	if h.insightsService == nil {
		writeError(ctx, w, fmt.Errorf("%w: insights service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	code := strings.TrimSpace(r.PathValue("competitionCode"))
	teamID, err := parseIDParam(r.PathValue("teamID"), "team id")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	insight, err := h.insightsService.TeamForm(ctx, code, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "team form failed", "competition", code, "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, insight)
}

func (h *Handler) GetMatchOutlook(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatchOutlook")
	defer span.End()

	if h.insightsService == nil {
		writeError(ctx, w, fmt.Errorf("%w: insights service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	query := r.URL.Query()
	homeTeamID, err := parseIDParam(query.Get("home_team_id"), "home_team_id")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	awayTeamID, err := parseIDParam(query.Get("away_team_id"), "away_team_id")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	input := usecase.MatchOutlookInput{
		CompetitionCode: strings.TrimSpace(query.Get("competition")),
		HomeTeamID:      homeTeamID,
		AwayTeamID:      awayTeamID,
	}
	if raw := strings.TrimSpace(query.Get("match_id")); raw != "" {
		matchID, err := parseIDParam(raw, "match_id")
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		input.MatchID = matchID
	}
	if raw := strings.TrimSpace(query.Get("ai_confidence")); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil || value < 0 || value > 1 {
			writeError(ctx, w, fmt.Errorf("%w: ai_confidence must be a number in [0,1]", usecase.ErrInvalidInput))
			return
		}
		input.AIConfidence = &value
	}

	outlook, err := h.insightsService.MatchOutlook(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "match outlook failed", "home_team_id", homeTeamID, "away_team_id", awayTeamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, outlook)
}

func parseIDParam(raw, name string) (int64, error) {
	value, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", usecase.ErrInvalidInput, name)
	}
	return value, nil
}
