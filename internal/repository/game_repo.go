package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"hangman/internal/apperrors"
	"hangman/internal/models"
	"hangman/internal/store"
)

// GameRepository handles persistence for games
type GameRepository struct {
	store store.Store
}

// NewGameRepository creates a new game repository
func NewGameRepository(s store.Store) *GameRepository {
	return &GameRepository{store: s}
}

// Get retrieves a game by key
func (r *GameRepository) Get(ctx context.Context, key string) (*models.Game, error) {
	raw, err := r.store.Get(ctx, store.Games, key)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: game %s", apperrors.ErrNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game %s: %w", key, err)
	}
	return decodeGame(key, raw)
}

// Save persists the game, pushing it under a generated key on first save.
// Returns the game with its key set.
func (r *GameRepository) Save(ctx context.Context, game *models.Game) (*models.Game, error) {
	if game.Key == "" {
		key, err := r.store.Push(ctx, store.Games, game)
		if err != nil {
			return nil, fmt.Errorf("failed to create game: %w", err)
		}
		game.Key = key
		return game, nil
	}

	// The key addresses the document; it is not stored inside it
	stored := *game
	stored.Key = ""
	if err := r.store.Put(ctx, store.Games, game.Key, &stored); err != nil {
		return nil, fmt.Errorf("failed to save game %s: %w", game.Key, err)
	}
	return game, nil
}

// All retrieves every game
func (r *GameRepository) All(ctx context.Context) ([]*models.Game, error) {
	docs, err := r.store.Query(ctx, store.Games, store.Query{})
	if err != nil {
		return nil, fmt.Errorf("failed to query games: %w", err)
	}
	return decodeGames(docs)
}

// ByUser retrieves the games owned by a user
func (r *GameRepository) ByUser(ctx context.Context, userKey string) ([]*models.Game, error) {
	docs, err := r.store.Query(ctx, store.Games, store.Query{OrderBy: "user", EqualTo: userKey})
	if err != nil {
		return nil, fmt.Errorf("failed to query games for user %s: %w", userKey, err)
	}
	return decodeGames(docs)
}

func decodeGame(key string, raw json.RawMessage) (*models.Game, error) {
	game := &models.Game{}
	if err := json.Unmarshal(raw, game); err != nil {
		return nil, fmt.Errorf("failed to decode game %s: %w", key, err)
	}
	game.Key = key
	if game.Guesses == nil {
		game.Guesses = []string{}
	}
	return game, nil
}

func decodeGames(docs map[string]json.RawMessage) ([]*models.Game, error) {
	games := make([]*models.Game, 0, len(docs))
	for key, raw := range docs {
		game, err := decodeGame(key, raw)
		if err != nil {
			return nil, err
		}
		games = append(games, game)
	}
	return games, nil
}
