package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"hangman/internal/apperrors"
	"hangman/internal/config"
	"hangman/internal/models"
	"hangman/internal/repository"
	"hangman/internal/words"
)

// GameService owns the game lifecycle: creation, guess application,
// cancellation, and the writes each transition triggers.
type GameService struct {
	games      *repository.GameRepository
	users      *repository.UserRepository
	scores     *ScoreService
	guessLimit int
	wordBank   []string
	now        func() time.Time
}

// NewGameService creates a new game service
func NewGameService(games *repository.GameRepository, users *repository.UserRepository, scores *ScoreService, cfg *config.Config) *GameService {
	bank := cfg.WordBank
	if len(bank) == 0 {
		bank = words.Bank
	}
	return &GameService{
		games:      games,
		users:      users,
		scores:     scores,
		guessLimit: cfg.IncorrectGuessLimit,
		wordBank:   bank,
		now:        time.Now,
	}
}

// Get retrieves a game by key
func (s *GameService) Get(ctx context.Context, key string) (*models.Game, error) {
	return s.games.Get(ctx, key)
}

// Create starts a new game for the user. When word is empty, a random word is
// drawn from the configured bank.
func (s *GameService) Create(ctx context.Context, userKey, word string) (*models.Game, error) {
	user, err := s.users.Get(ctx, userKey)
	if err != nil {
		return nil, err
	}

	if word == "" {
		word = words.Random(s.wordBank)
	}

	game := &models.Game{
		Word:    strings.ToUpper(word),
		User:    user.Key,
		Start:   s.now().UTC(),
		Guesses: []string{},
	}
	return s.games.Save(ctx, game)
}

// GuessOutcome describes the writes a guess triggers. Game is the primary,
// authoritative write reported to the caller; User and Score are the
// secondary best-effort writes set only when the guess decided the game.
type GuessOutcome struct {
	Game  *models.Game
	User  *models.User
	Score *models.Score
}

// Guess applies a guess token to the game owned by owner. Guessing on a game
// that is no longer active is a no-op returning the game unchanged. All
// triggered writes are settled before returning; the returned game reflects
// the authoritative game save either way.
func (s *GameService) Guess(ctx context.Context, game *models.Game, owner *models.User, token string) (*models.Game, error) {
	if !game.Active() {
		return game, nil
	}

	outcome := s.evaluate(game, owner, token)
	return outcome.Game, s.settle(ctx, outcome)
}

// evaluate records the guess on the game and decides the transition:
// win when the masked state matches the word, loss when the incorrect guess
// limit is reached, continuation otherwise.
func (s *GameService) evaluate(game *models.Game, owner *models.User, token string) GuessOutcome {
	now := s.now().UTC()
	game.Guesses = append(game.Guesses, strings.ToUpper(token))
	game.LastMove = &now

	masked := models.ApplyGuesses(game.Word, game.Guesses)
	incorrect := len(game.IncorrectGuesses())

	outcome := GuessOutcome{Game: game}
	switch {
	case masked == strings.ToUpper(game.Word):
		game.Finish(now)
		outcome.User = owner.RecordWin()
		outcome.Score = &models.Score{Game: game.Key, User: owner.Key, IncorrectGuesses: incorrect}
	case incorrect >= s.guessLimit:
		game.Finish(now)
		outcome.User = owner.RecordLoss()
		outcome.Score = &models.Score{Game: game.Key, User: owner.Key, IncorrectGuesses: incorrect}
	}
	return outcome
}

// settle runs the outcome's writes concurrently and waits for all of them.
// There is no cross-entity transaction: a failed secondary write leaves the
// saved game authoritative and the error is surfaced to the caller.
func (s *GameService) settle(ctx context.Context, outcome GuessOutcome) error {
	var wg sync.WaitGroup
	errs := make([]error, 3)

	wg.Add(1)
	go func() {
		defer wg.Done()
		_, errs[0] = s.games.Save(ctx, outcome.Game)
	}()

	if outcome.User != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[1] = s.users.Save(ctx, outcome.User)
		}()
	}

	if outcome.Score != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[2] = s.scores.RecordOutcome(ctx, outcome.Score)
		}()
	}

	wg.Wait()
	return errors.Join(errs...)
}

// Cancel cancels an active game and saves it. Cancelling a finished or
// already cancelled game fails without mutation. Recording the loss against
// the owner is the caller's responsibility.
func (s *GameService) Cancel(ctx context.Context, game *models.Game) (*models.Game, error) {
	if !game.Cancel() {
		return nil, fmt.Errorf("%w: game %s is not active", apperrors.ErrInvalidParameter, game.Key)
	}
	return s.games.Save(ctx, game)
}

// ActiveGames retrieves every active game
func (s *GameService) ActiveGames(ctx context.Context) ([]*models.Game, error) {
	all, err := s.games.All(ctx)
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
