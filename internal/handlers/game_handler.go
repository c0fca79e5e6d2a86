package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"hangman/internal/apperrors"
	"hangman/internal/models"
	"hangman/internal/service"
)

// GameHandler serves the game lifecycle endpoints
type GameHandler struct {
	games *service.GameService
	users *service.UserService
	auth  *service.AuthService
}

// NewGameHandler creates a new game handler
func NewGameHandler(games *service.GameService, users *service.UserService, auth *service.AuthService) *GameHandler {
	return &GameHandler{games: games, users: users, auth: auth}
}

// Create handles POST /game
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserKey string `json:"user_key"`
		Word    string `json:"word"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, fmt.Errorf("%w: invalid request body", apperrors.ErrInvalidParameter))
		return
	}
	if req.UserKey == "" {
		respondError(w, fmt.Errorf("%w: user_key is required", apperrors.ErrInvalidParameter))
		return
	}

	game, err := h.games.Create(r.Context(), req.UserKey, req.Word)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, maskGame(game))
}

// Get handles GET /game/{gameKey}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	game, err := h.games.Get(r.Context(), r.PathValue("gameKey"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, maskGame(game))
}

// Active handles GET /games/active
func (h *GameHandler) Active(w http.ResponseWriter, r *http.Request) {
	games, err := h.games.ActiveGames(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, maskGames(games))
}

// Guess handles PUT /game/{gameKey}
func (h *GameHandler) Guess(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	game, err := h.games.Get(ctx, r.PathValue("gameKey"))
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.authorize(r, game.User); err != nil {
		respondError(w, err)
		return
	}

	var req struct {
		Guess string `json:"guess"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, fmt.Errorf("%w: invalid request body", apperrors.ErrInvalidParameter))
		return
	}
	if req.Guess == "" {
		respondError(w, fmt.Errorf("%w: guess is required", apperrors.ErrInvalidParameter))
		return
	}

	owner, err := h.users.Get(ctx, game.User)
	if err != nil {
		respondError(w, err)
		return
	}

	game, err = h.games.Guess(ctx, game, owner, req.Guess)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, maskGame(game))
}

// Cancel handles DELETE /game/{gameKey}. Cancelling counts as a loss on the
// owner's ledger.
func (h *GameHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	game, err := h.games.Get(ctx, r.PathValue("gameKey"))
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.authorize(r, game.User); err != nil {
		respondError(w, err)
		return
	}

	game, err = h.games.Cancel(ctx, game)
	if err != nil {
		respondError(w, err)
		return
	}

	owner, err := h.users.Get(ctx, game.User)
	if err != nil {
		respondError(w, err)
		return
	}
	if _, err := h.users.RecordLoss(ctx, owner); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, maskGame(game))
}

// History handles GET /game/{gameKey}/history
func (h *GameHandler) History(w http.ResponseWriter, r *http.Request) {
	game, err := h.games.Get(r.Context(), r.PathValue("gameKey"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, map[string]any{
		"key":     game.Key,
		"history": game.History(),
	})
}

// authorize checks that the request carries a token for ownerKey. With auth
// not configured the API is open and every request passes.
func (h *GameHandler) authorize(r *http.Request, ownerKey string) error {
	if !h.auth.Enabled() {
		return nil
	}

	token := bearerToken(r)
	if token == "" {
		return fmt.Errorf("%w: bearer token required", apperrors.ErrUnauthorized)
	}
	subject, err := h.auth.Verify(token)
	if err != nil {
		return err
	}
	if subject != ownerKey {
		return fmt.Errorf("%w: token does not match game owner", apperrors.ErrUnauthorized)
	}
	return nil
}

// maskGame copies the game with its secret word masked for a response.
func maskGame(game *models.Game) *models.Game {
	masked := *game
	return masked.Mask()
}

func maskGames(games []*models.Game) []*models.Game {
	masked := make([]*models.Game, len(games))
	for i, game := range games {
		masked[i] = maskGame(game)
	}
	return masked
}
