package service

import (
	"context"
	"errors"
	"testing"

	"hangman/internal/apperrors"
	"hangman/internal/config"
	"hangman/internal/models"
	"hangman/internal/repository"
	"hangman/internal/store"
)

type testEnv struct {
	games    *repository.GameRepository
	users    *repository.UserRepository
	scores   *repository.ScoreRepository
	gameSvc  *GameService
	scoreSvc *ScoreService
	userSvc  *UserService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	mem := store.NewMemory()
	games := repository.NewGameRepository(mem)
	users := repository.NewUserRepository(mem)
	scores := repository.NewScoreRepository(mem)

	cfg := &config.Config{IncorrectGuessLimit: 5, IdleTimeHours: 12}
	scoreSvc := NewScoreService(scores)

	return &testEnv{
		games:    games,
		users:    users,
		scores:   scores,
		gameSvc:  NewGameService(games, users, scoreSvc, cfg),
		scoreSvc: scoreSvc,
		userSvc:  NewUserService(users, games),
	}
}

func (e *testEnv) createUser(t *testing.T, name string) *models.User {
	t.Helper()
	user, err := e.userSvc.Create(context.Background(), name, name+"@example.com", "")
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func TestCreateGame(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	user := env.createUser(t, "alice")

	game, err := env.gameSvc.Create(ctx, user.Key, "dog")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if game.Key == "" {
		t.Error("expected the created game to have a key")
	}
	if game.Word != "DOG" {
		t.Errorf("word = %q, want uppercase %q", game.Word, "DOG")
	}
	if !game.Active() {
		t.Error("a fresh game should be active")
	}
	if len(game.Guesses) != 0 {
		t.Errorf("expected no guesses, got %v", game.Guesses)
	}
}

func TestCreateGamePicksWordFromBank(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	user := env.createUser(t, "alice")

	game, err := env.gameSvc.Create(ctx, user.Key, "")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if game.Word == "" {
		t.Error("expected a word drawn from the bank")
	}
}

func TestCreateGameUnknownUser(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.gameSvc.Create(context.Background(), "no-such-user", "")
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGuessWinningGame(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	user := env.createUser(t, "alice")

	game, err := env.gameSvc.Create(ctx, user.Key, "DOG")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	for _, letter := range []string{"D", "O", "G"} {
		if game, err = env.gameSvc.Guess(ctx, game, user, letter); err != nil {
			t.Fatalf("Guess(%s) failed: %v", letter, err)
		}
	}

	if game.Active() {
		t.Error("game should be terminal after the winning guess")
	}
	if game.End == nil {
		t.Error("end timestamp should be set")
	}
	if models.ApplyGuesses(game.Word, game.Guesses) != "DOG" {
		t.Error("masked state should equal the word")
	}

	saved, err := env.users.Get(ctx, user.Key)
	if err != nil {
		t.Fatalf("failed to reload user: %v", err)
	}
	if saved.Wins != 1 || saved.Total != 1 {
		t.Errorf("user ledger = %d/%d, want 1/1", saved.Wins, saved.Total)
	}

	scores, err := env.scores.All(ctx)
	if err != nil {
		t.Fatalf("failed to list scores: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("expected exactly one score, got %d", len(scores))
	}
	if scores[0].IncorrectGuesses != 0 {
		t.Errorf("score incorrectGuesses = %d, want 0", scores[0].IncorrectGuesses)
	}
	if scores[0].Game != game.Key || scores[0].User != user.Key {
		t.Errorf("score references = %s/%s, want %s/%s", scores[0].Game, scores[0].User, game.Key, user.Key)
	}
}

func TestGuessWholeWordWins(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	user := env.createUser(t, "alice")

	game, err := env.gameSvc.Create(ctx, user.Key, "DOG")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	game, err = env.gameSvc.Guess(ctx, game, user, "dog")
	if err != nil {
		t.Fatalf("Guess failed: %v", err)
	}
	if game.Active() {
		t.Error("a correct whole-word guess should win immediately")
	}
}

func TestGuessReachingLimitLosesGame(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	user := env.createUser(t, "bob")

	game, err := env.gameSvc.Create(ctx, user.Key, "DOG")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	wrong := []string{"X", "Y", "Z", "Q", "W"}
	for i, letter := range wrong {
		if game, err = env.gameSvc.Guess(ctx, game, user, letter); err != nil {
			t.Fatalf("Guess(%s) failed: %v", letter, err)
		}
		if i < len(wrong)-1 && !game.Active() {
			t.Fatalf("game ended early after %d incorrect guesses", i+1)
		}
	}

	if game.Active() {
		t.Error("game should be lost at the incorrect guess limit")
	}
	if game.End == nil {
		t.Error("end timestamp should be set")
	}

	saved, err := env.users.Get(ctx, user.Key)
	if err != nil {
		t.Fatalf("failed to reload user: %v", err)
	}
	if saved.Wins != 0 || saved.Total != 1 {
		t.Errorf("user ledger = %d/%d, want 0/1", saved.Wins, saved.Total)
	}

	scores, err := env.scores.All(ctx)
	if err != nil {
		t.Fatalf("failed to list scores: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("expected exactly one score, got %d", len(scores))
	}
	if scores[0].IncorrectGuesses != 5 {
		t.Errorf("score incorrectGuesses = %d, want 5", scores[0].IncorrectGuesses)
	}
}

func TestGuessOnFinishedGameIsNoOp(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	user := env.createUser(t, "alice")

	game, err := env.gameSvc.Create(ctx, user.Key, "DOG")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if game, err = env.gameSvc.Guess(ctx, game, user, "DOG"); err != nil {
		t.Fatalf("Guess failed: %v", err)
	}

	before := len(game.Guesses)
	game, err = env.gameSvc.Guess(ctx, game, user, "A")
	if err != nil {
		t.Fatalf("Guess on finished game failed: %v", err)
	}
	if len(game.Guesses) != before {
		t.Error("guessing on a finished game should not record the guess")
	}

	scores, err := env.scores.All(ctx)
	if err != nil {
		t.Fatalf("failed to list scores: %v", err)
	}
	if len(scores) != 1 {
		t.Errorf("expected no new score, got %d scores", len(scores))
	}

	stored, err := env.games.Get(ctx, game.Key)
	if err != nil {
		t.Fatalf("failed to reload game: %v", err)
	}
	if len(stored.Guesses) != before {
		t.Error("the stored game should be unchanged")
	}
}

func TestCancelGame(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	user := env.createUser(t, "alice")

	game, err := env.gameSvc.Create(ctx, user.Key, "DOG")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := env.gameSvc.Cancel(ctx, game); err != nil {
		t.Fatalf("first cancel failed: %v", err)
	}
	if game.Active() {
		t.Error("cancelled game should not be active")
	}

	if _, err := env.gameSvc.Cancel(ctx, game); !errors.Is(err, apperrors.ErrInvalidParameter) {
		t.Errorf("second cancel: expected ErrInvalidParameter, got %v", err)
	}

	stored, err := env.games.Get(ctx, game.Key)
	if err != nil {
		t.Fatalf("failed to reload game: %v", err)
	}
	if !stored.Cancelled {
		t.Error("cancellation should be persisted")
	}
}

func TestCancelledGameProducesNoScore(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	user := env.createUser(t, "alice")

	game, err := env.gameSvc.Create(ctx, user.Key, "DOG")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := env.gameSvc.Cancel(ctx, game); err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}

	scores, err := env.scores.All(ctx)
	if err != nil {
		t.Fatalf("failed to list scores: %v", err)
	}
	if len(scores) != 0 {
		t.Errorf("cancellation must not create a score, got %d", len(scores))
	}
}

func TestActiveGames(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	user := env.createUser(t, "alice")

	g1, err := env.gameSvc.Create(ctx, user.Key, "DOG")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	g2, err := env.gameSvc.Create(ctx, user.Key, "CAT")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := env.gameSvc.Cancel(ctx, g2); err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}

	active, err := env.gameSvc.ActiveGames(ctx)
	if err != nil {
		t.Fatalf("ActiveGames failed: %v", err)
	}
	if len(active) != 1 || active[0].Key != g1.Key {
		t.Errorf("expected only %s active, got %d games", g1.Key, len(active))
	}
}
