package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"hangman/internal/apperrors"
	"hangman/internal/models"
	"hangman/internal/service"
)

// UserHandler serves user registration, login, and user-scoped listings
type UserHandler struct {
	users  *service.UserService
	scores *service.ScoreService
	auth   *service.AuthService
}

// NewUserHandler creates a new user handler
func NewUserHandler(users *service.UserService, scores *service.ScoreService, auth *service.AuthService) *UserHandler {
	return &UserHandler{users: users, scores: scores, auth: auth}
}

// Create handles POST /user
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, fmt.Errorf("%w: invalid request body", apperrors.ErrInvalidParameter))
		return
	}

	passwordHash := ""
	if req.Password != "" {
		hash, err := h.auth.HashPassword(req.Password)
		if err != nil {
			respondError(w, err)
			return
		}
		passwordHash = hash
	}

	user, err := h.users.Create(r.Context(), req.Name, req.Email, passwordHash)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, user.Sanitize())
}

// Login handles POST /login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, fmt.Errorf("%w: invalid request body", apperrors.ErrInvalidParameter))
		return
	}

	token, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, map[string]string{"token": token})
}

// Get handles GET /user/{userKey}
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.Get(r.Context(), r.PathValue("userKey"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, user.Sanitize())
}

// Games handles GET /user/{userKey}/games
func (h *UserHandler) Games(w http.ResponseWriter, r *http.Request) {
	games, err := h.users.ActiveGames(r.Context(), r.PathValue("userKey"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, maskGames(games))
}

// Scores handles GET /user/{userKey}/scores
func (h *UserHandler) Scores(w http.ResponseWriter, r *http.Request) {
	scores, err := h.scores.ByUser(r.Context(), r.PathValue("userKey"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, scores)
}

// Rankings handles GET /users/rankings
func (h *UserHandler) Rankings(w http.ResponseWriter, r *http.Request) {
	ranked, err := h.users.Rankings(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	sanitized := make([]*models.User, len(ranked))
	for i, user := range ranked {
		sanitized[i] = user.Sanitize()
	}
	respondJSON(w, sanitized)
}
