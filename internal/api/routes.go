package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)
	r.Use(identityMiddleware)

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/users", s.handleUpsertUser)
		r.Get("/users/{externalID}", s.handleGetUser)
		r.Get("/users/{externalID}/history", s.handleHistory)
		r.Get("/users/{externalID}/history/export", s.handleHistoryExport)
		r.Get("/users/{externalID}/analytics", s.handleCharacterAnalytics)
		r.Get("/users/{externalID}/stats/summary", s.handleStatsSummary)
		r.Post("/users/{externalID}/import", s.handleImport)

		r.Post("/tests", s.handleRecordTest)

		r.Get("/leaderboard", s.handleLeaderboard)

		r.Post("/sessions/{sessionID}/keystrokes", s.handleSessionKeystrokes)
		r.Get("/sessions/{sessionID}/analytics", s.handleSessionAnalytics)
		r.Delete("/sessions/{sessionID}", s.handleEndSession)
	})

	return r
}
