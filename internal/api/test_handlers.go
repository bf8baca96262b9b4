package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmello/typetrack/internal/errors"
	"github.com/dmello/typetrack/internal/export"
	"github.com/dmello/typetrack/internal/logger"
	"github.com/dmello/typetrack/internal/services"
)

func (s *Server) handleRecordTest(w http.ResponseWriter, r *http.Request) {
	identity := identityFromContext(r.Context())
	if identity == nil {
		handleError(w, r, errors.NewUnauthorizedError("missing identity headers"))
		return
	}

	var req services.RecordTestRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	rec, err := s.TestService.RecordTest(r.Context(), *identity, req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	page, err := s.TestService.GetHistory(r.Context(),
		chi.URLParam(r, "externalID"),
		queryInt(r, "page", 1),
		queryInt(r, "limit", 0),
		r.URL.Query().Get("mode"),
		queryIntPtr(r, "time_limit"),
	)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

func (s *Server) handleHistoryExport(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	user, records, err := s.TestService.ListAllForExport(r.Context(),
		chi.URLParam(r, "externalID"),
		r.URL.Query().Get("mode"),
		queryIntPtr(r, "time_limit"),
	)
	if err != nil {
		handleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename(user)+`"`)
	if err := export.HistoryXLSX(w, user, records); err != nil {
		// Headers are already out; all we can do is log.
		log.Error("failed to stream history export: %v", err)
	}
}

func (s *Server) handleStatsSummary(w http.ResponseWriter, r *http.Request) {
	sum, err := s.TestService.GetSummary(r.Context(), chi.URLParam(r, "externalID"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, sum)
}
