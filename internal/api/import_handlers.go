package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type importRequest struct {
	Records []map[string]any `json:"records"`
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	var req importRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	res, err := s.ImportService.ImportLegacyRecords(r.Context(), chi.URLParam(r, "externalID"), req.Records)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusAccepted, res)
}
