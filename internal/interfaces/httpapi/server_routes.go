package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	mux.HandleFunc("GET /readyz", handler.Readyz)
}

func registerDashboardRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /{$}", handler.Dashboard)
	mux.HandleFunc("POST /dashboard/plays", handler.DashboardIngestPlays)
	mux.HandleFunc("POST /dashboard/teams", handler.DashboardIngestTeams)
}

func registerIngestionRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/ingestion/plays", handler.IngestPlays)
	mux.HandleFunc("POST /v1/ingestion/teams", handler.IngestTeams)
}

func registerReportRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("GET /v1/games", handler.ListGames)
	// gameID "all" aggregates every ingested game.
	mux.HandleFunc("GET /v1/games/{gameID}/summary", handler.GetGameSummary)
}
