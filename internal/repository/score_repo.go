package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"hangman/internal/models"
	"hangman/internal/store"
)

// ScoreRepository handles persistence for scores
type ScoreRepository struct {
	store store.Store
}

// NewScoreRepository creates a new score repository
func NewScoreRepository(s store.Store) *ScoreRepository {
	return &ScoreRepository{store: s}
}

// Save persists a new score under a generated key. Scores are immutable, so
// there is no update path.
func (r *ScoreRepository) Save(ctx context.Context, score *models.Score) (*models.Score, error) {
	key, err := r.store.Push(ctx, store.Scores, score)
	if err != nil {
		return nil, fmt.Errorf("failed to create score: %w", err)
	}
	score.Key = key
	return score, nil
}

// All retrieves every score
func (r *ScoreRepository) All(ctx context.Context) ([]*models.Score, error) {
	docs, err := r.store.Query(ctx, store.Scores, store.Query{})
	if err != nil {
		return nil, fmt.Errorf("failed to query scores: %w", err)
	}
	return decodeScores(docs)
}

// ByUser retrieves the scores recorded for a user
func (r *ScoreRepository) ByUser(ctx context.Context, userKey string) ([]*models.Score, error) {
	docs, err := r.store.Query(ctx, store.Scores, store.Query{OrderBy: "user", EqualTo: userKey})
	if err != nil {
		return nil, fmt.Errorf("failed to query scores for user %s: %w", userKey, err)
	}
	return decodeScores(docs)
}

// Highest retrieves the limit scores with the most incorrect guesses
func (r *ScoreRepository) Highest(ctx context.Context, limit int) ([]*models.Score, error) {
	docs, err := r.store.Query(ctx, store.Scores, store.Query{OrderBy: "incorrectGuesses", LimitToLast: limit})
	if err != nil {
		return nil, fmt.Errorf("failed to query highest scores: %w", err)
	}
	return decodeScores(docs)
}

func decodeScores(docs map[string]json.RawMessage) ([]*models.Score, error) {
	scores := make([]*models.Score, 0, len(docs))
	for key, raw := range docs {
		score := &models.Score{}
		if err := json.Unmarshal(raw, score); err != nil {
			return nil, fmt.Errorf("failed to decode score %s: %w", key, err)
		}
		score.Key = key
		scores = append(scores, score)
	}
	return scores, nil
}
