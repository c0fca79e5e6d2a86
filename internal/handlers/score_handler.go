package handlers

import (
	"net/http"
	"strconv"

	"hangman/internal/service"
)

// ScoreHandler serves the score listing and leaderboard endpoints
type ScoreHandler struct {
	scores *service.ScoreService
}

// NewScoreHandler creates a new score handler
func NewScoreHandler(scores *service.ScoreService) *ScoreHandler {
	return &ScoreHandler{scores: scores}
}

// Leaderboard handles GET /scores/leaderboard
func (h *ScoreHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	// A missing or malformed number_of_results falls back to the default size
	limit, _ := strconv.Atoi(r.URL.Query().Get("number_of_results"))

	scores, err := h.scores.Leaderboard(r.Context(), limit)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, scores)
}

// All handles GET /scores
func (h *ScoreHandler) All(w http.ResponseWriter, r *http.Request) {
	scores, err := h.scores.All(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, scores)
}
