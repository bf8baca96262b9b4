package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmello/typetrack/internal/errors"
)

func (s *Server) handleUpsertUser(w http.ResponseWriter, r *http.Request) {
	identity := identityFromContext(r.Context())
	if identity == nil {
		handleError(w, r, errors.NewUnauthorizedError("missing identity headers"))
		return
	}

	user, err := s.UserService.UpsertUser(r.Context(), *identity)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.UserService.ResolveUser(r.Context(), chi.URLParam(r, "externalID"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}
