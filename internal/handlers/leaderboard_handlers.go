package handlers

import (
	"net/http"
	"strconv"

	"github.com/community-events/app/internal/leaderboard"
)

// Leaderboard serves the ranked views: /leaderboard/{kind} with an
// optional limit query parameter.
func Leaderboard(agg *leaderboard.Aggregator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil {
				limit = n
			}
		}
		entries, err := agg.Top(r.PathValue("kind"), limit)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, entries)
	}
}

// UserRanking returns a user's 1-based rank in each ordering.
func UserRanking(agg *leaderboard.Aggregator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			respondError(w, err)
			return
		}
		ranking, err := agg.UserRanking(id)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, ranking)
	}
}
