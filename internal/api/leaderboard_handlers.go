package api

import (
	"net/http"
)

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	entries, err := s.LeaderboardService.GetLeaderboard(r.Context(),
		q.Get("mode"),
		queryIntPtr(r, "time_limit"),
		q.Get("period"),
		queryInt(r, "limit", 0),
	)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"leaderboard": entries})
}
