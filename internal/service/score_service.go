package service

import (
	"context"
	"sort"

	"hangman/internal/models"
	"hangman/internal/repository"
)

// defaultLeaderboardSize bounds the leaderboard when no limit is requested.
const defaultLeaderboardSize = 10

// ScoreService records terminal-game outcomes and serves the leaderboard.
type ScoreService struct {
	scores *repository.ScoreRepository
}

// NewScoreService creates a new score service
func NewScoreService(scores *repository.ScoreRepository) *ScoreService {
	return &ScoreService{scores: scores}
}

// RecordOutcome stores the score of a decided game. Scores are created once
// and never updated.
func (s *ScoreService) RecordOutcome(ctx context.Context, score *models.Score) (*models.Score, error) {
	return s.scores.Save(ctx, score)
}

// Leaderboard returns up to limit scores ordered by incorrect guess count,
// highest first. The direction is the documented contract of this endpoint:
// it ranks by guesses used, not by player quality.
func (s *ScoreService) Leaderboard(ctx context.Context, limit int) ([]*models.Score, error) {
	if limit <= 0 {
		limit = defaultLeaderboardSize
	}

	scores, err := s.scores.Highest(ctx, limit)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].IncorrectGuesses > scores[j].IncorrectGuesses
	})
	return scores, nil
}

// All retrieves every score, unordered
func (s *ScoreService) All(ctx context.Context) ([]*models.Score, error) {
	return s.scores.All(ctx)
}

// ByUser retrieves the scores recorded for a user, unordered
func (s *ScoreService) ByUser(ctx context.Context, userKey string) ([]*models.Score, error) {
	return s.scores.ByUser(ctx, userKey)
}
