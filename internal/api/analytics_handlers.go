package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmello/typetrack/internal/session"
)

func (s *Server) handleCharacterAnalytics(w http.ResponseWriter, r *http.Request) {
	entries, err := s.AnalyticsService.GetCharacterAnalytics(r.Context(), chi.URLParam(r, "externalID"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"characters": entries})
}

type keystrokesRequest struct {
	Keystrokes []session.Keystroke `json:"keystrokes"`
}

func (s *Server) handleSessionKeystrokes(w http.ResponseWriter, r *http.Request) {
	var req keystrokesRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	sessionID := chi.URLParam(r, "sessionID")
	if err := s.AnalyticsService.RecordKeystrokes(r.Context(), sessionID, req.Keystrokes); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusAccepted, map[string]any{"recorded": len(req.Keystrokes)})
}

func (s *Server) handleSessionAnalytics(w http.ResponseWriter, r *http.Request) {
	entries, err := s.AnalyticsService.GetSessionAnalytics(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"characters": entries})
}

func (s *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	if err := s.AnalyticsService.EndSession(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
