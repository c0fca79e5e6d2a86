package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"hangman/internal/config"
	"hangman/internal/models"
	"hangman/internal/repository"
)

// Emailer dispatches a reminder message for one game to its owner.
type Emailer interface {
	SendReminder(ctx context.Context, to *models.User, game *models.Game) error
}

// ReminderService scans for idle games and nudges their owners by email.
type ReminderService struct {
	games     *repository.GameRepository
	users     *repository.UserRepository
	emailer   Emailer
	idleHours int
	now       func() time.Time
}

// NewReminderService creates a new reminder service
func NewReminderService(games *repository.GameRepository, users *repository.UserRepository, emailer Emailer, cfg *config.Config) *ReminderService {
	return &ReminderService{
		games:     games,
		users:     users,
		emailer:   emailer,
		idleHours: cfg.IdleTimeHours,
		now:       time.Now,
	}
}

// FindIdle filters games down to those that are active and have been idle
// for at least the configured number of whole hours.
func (s *ReminderService) FindIdle(games []*models.Game) []*models.Game {
	now := s.now().UTC()
	idle := make([]*models.Game, 0)
	for _, game := range games {
		if game.Active() && game.IdleTime(now) >= s.idleHours {
			idle = append(idle, game)
		}
	}
	return idle
}

// Notify sends one reminder per idle game. Owners are resolved once per sweep
// even when they hold several idle games, but each idle game still produces
// its own message. A failed dispatch is logged and does not stop the sweep;
// the full idle set is returned once every dispatch has settled. An empty
// idle set returns immediately without touching the Emailer.
func (s *ReminderService) Notify(ctx context.Context, idle []*models.Game) ([]*models.Game, error) {
	if len(idle) == 0 {
		return []*models.Game{}, nil
	}

	owners := make(map[string]*models.User)
	for _, game := range idle {
		if _, ok := owners[game.User]; ok {
			continue
		}
		owner, err := s.users.Get(ctx, game.User)
		if err != nil {
			return nil, err
		}
		owners[game.User] = owner
	}

	for _, game := range idle {
		// Send a masked copy so the secret word never leaves the service
		masked := *game
		masked.Mask()
		if err := s.emailer.SendReminder(ctx, owners[game.User], &masked); err != nil {
			log.Warn().Err(err).
				Str("game", game.Key).
				Str("user", game.User).
				Msg("reminder dispatch failed")
		}
	}
	return idle, nil
}

// Sweep runs one scan over all games and notifies idle ones.
func (s *ReminderService) Sweep(ctx context.Context) ([]*models.Game, error) {
	all, err := s.games.All(ctx)
	if err != nil {
		return nil, err
	}
	return s.Notify(ctx, s.FindIdle(all))
}

// Run sweeps periodically until the context is cancelled.
func (s *ReminderService) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			idle, err := s.Sweep(ctx)
			if err != nil {
				log.Error().Err(err).Msg("idle game sweep failed")
				continue
			}
			log.Info().Int("idleGames", len(idle)).Msg("idle game sweep completed")
		}
	}
}
