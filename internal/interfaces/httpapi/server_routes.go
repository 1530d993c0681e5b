package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerInsightRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/competitions/{competitionCode}/teams/{teamID}/form", handler.GetTeamForm)
	mux.HandleFunc("GET /v1/match-outlook", handler.GetMatchOutlook)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/sync-fixtures", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunSyncFixturesJob)))
	mux.Handle("POST /v1/internal/jobs/sync-live", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunSyncLiveJob)))
	mux.Handle("POST /v1/internal/jobs/sync-standings", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunSyncStandingsJob)))
	mux.Handle("POST /v1/internal/jobs/sync-history", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunSyncHistoryJob)))
	mux.Handle("POST /v1/internal/jobs/resync", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunResyncJob)))
	mux.Handle("GET /v1/internal/status", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.GetStatus)))
}
