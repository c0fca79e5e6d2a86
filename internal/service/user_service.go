package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"hangman/internal/apperrors"
	"hangman/internal/models"
	"hangman/internal/repository"
)

// UserService maintains the per-user win/total ledger and serves rankings.
type UserService struct {
	users *repository.UserRepository
	games *repository.GameRepository
	now   func() time.Time
}

// NewUserService creates a new user service
func NewUserService(users *repository.UserRepository, games *repository.GameRepository) *UserService {
	return &UserService{users: users, games: games, now: time.Now}
}

// Create registers a new user. Names are stored uppercase; passwordHash may
// be empty when the user signs up without credentials.
func (s *UserService) Create(ctx context.Context, name, email, passwordHash string) (*models.User, error) {
	if name == "" || email == "" {
		return nil, fmt.Errorf("%w: name and email are required", apperrors.ErrInvalidParameter)
	}

	user := &models.User{
		Name:         strings.ToUpper(name),
		Email:        email,
		PasswordHash: passwordHash,
		Created:      s.now().UTC(),
	}
	return s.users.Save(ctx, user)
}

// Get retrieves a user by key
func (s *UserService) Get(ctx context.Context, key string) (*models.User, error) {
	return s.users.Get(ctx, key)
}

// Rankings returns the users with at least one decided game, ordered by
// floored integer win percentage, highest first. Ties keep a stable order.
func (s *UserService) Rankings(ctx context.Context) ([]*models.User, error) {
	all, err := s.users.All(ctx)
	if err != nil {
		return nil, err
	}

	ranked := make([]*models.User, 0, len(all))
	for _, user := range all {
		if user.Total > 0 {
			ranked = append(ranked, user)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].WinPercentage() > ranked[j].WinPercentage()
	})
	return ranked, nil
}

// RecordLoss counts a loss against the user and persists the ledger update
func (s *UserService) RecordLoss(ctx context.Context, user *models.User) (*models.User, error) {
	return s.users.Save(ctx, user.RecordLoss())
}

// ActiveGames retrieves the user's active games
func (s *UserService) ActiveGames(ctx context.Context, userKey string) ([]*models.Game, error) {
	all, err := s.games.ByUser(ctx, userKey)
	if err != nil {
		return nil, err
	}
	active := make([]*models.Game, 0, len(all))
	for _, game := range all {
		if game.Active() {
			active = append(active, game)
		}
	}
	return active, nil
}
