package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"hangman/internal/config"
	"hangman/internal/models"
)

type fakeEmailer struct {
	sent      []string
	userSends map[string]int
	failFor   string
}

func (f *fakeEmailer) SendReminder(ctx context.Context, to *models.User, game *models.Game) error {
	if f.userSends == nil {
		f.userSends = make(map[string]int)
	}
	if game.Key == f.failFor {
		return fmt.Errorf("mailbox unavailable")
	}
	f.sent = append(f.sent, game.Key)
	f.userSends[to.Key]++
	return nil
}

func newReminderEnv(t *testing.T, emailer Emailer, at time.Time) (*testEnv, *ReminderService) {
	t.Helper()
	env := newTestEnv(t)
	svc := NewReminderService(env.games, env.users, emailer, &config.Config{IdleTimeHours: 12})
	svc.now = func() time.Time { return at }
	return env, svc
}

func seedGame(t *testing.T, env *testEnv, userKey, word string, lastMove time.Time, cancelled bool) *models.Game {
	t.Helper()
	game := &models.Game{
		Word:      word,
		User:      userKey,
		Start:     lastMove.Add(-time.Hour),
		LastMove:  &lastMove,
		Cancelled: cancelled,
		Guesses:   []string{},
	}
	game, err := env.games.Save(context.Background(), game)
	if err != nil {
		t.Fatalf("failed to seed game: %v", err)
	}
	return game
}

func TestFindIdle(t *testing.T) {
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)
	emailer := &fakeEmailer{}
	env, svc := newReminderEnv(t, emailer, now)
	user := env.createUser(t, "alice")

	idleGame := seedGame(t, env, user.Key, "DOG", now.Add(-13*time.Hour), false)
	seedGame(t, env, user.Key, "CAT", now.Add(-11*time.Hour), false)
	seedGame(t, env, user.Key, "FISH", now.Add(-20*time.Hour), true)

	all, err := env.games.All(context.Background())
	if err != nil {
		t.Fatalf("failed to list games: %v", err)
	}

	idle := svc.FindIdle(all)
	if len(idle) != 1 || idle[0].Key != idleGame.Key {
		t.Errorf("expected only %s idle, got %d games", idleGame.Key, len(idle))
	}
}

func TestFindIdleFallsBackToStart(t *testing.T) {
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)
	emailer := &fakeEmailer{}
	env, svc := newReminderEnv(t, emailer, now)
	user := env.createUser(t, "alice")

	game := &models.Game{
		Word:    "DOG",
		User:    user.Key,
		Start:   now.Add(-14 * time.Hour),
		Guesses: []string{},
	}
	if _, err := env.games.Save(context.Background(), game); err != nil {
		t.Fatalf("failed to seed game: %v", err)
	}

	all, err := env.games.All(context.Background())
	if err != nil {
		t.Fatalf("failed to list games: %v", err)
	}
	if idle := svc.FindIdle(all); len(idle) != 1 {
		t.Errorf("a never-played game should go idle from its start time, got %d", len(idle))
	}
}

func TestSweepSendsOneReminderPerIdleGame(t *testing.T) {
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)
	emailer := &fakeEmailer{}
	env, svc := newReminderEnv(t, emailer, now)
	user := env.createUser(t, "alice")

	seedGame(t, env, user.Key, "DOG", now.Add(-13*time.Hour), false)
	seedGame(t, env, user.Key, "CAT", now.Add(-15*time.Hour), false)

	idle, err := svc.Sweep(context.Background())
	if err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}

	if len(idle) != 2 {
		t.Errorf("expected 2 idle games, got %d", len(idle))
	}
	if len(emailer.sent) != 2 {
		t.Errorf("expected 2 reminders, got %d", len(emailer.sent))
	}
	if emailer.userSends[user.Key] != 2 {
		t.Errorf("expected 2 reminders for the owner, got %d", emailer.userSends[user.Key])
	}
}

func TestSweepContinuesPastFailedDispatch(t *testing.T) {
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)
	env, svc := newReminderEnv(t, &fakeEmailer{}, now)
	user := env.createUser(t, "alice")

	g1 := seedGame(t, env, user.Key, "DOG", now.Add(-13*time.Hour), false)
	seedGame(t, env, user.Key, "CAT", now.Add(-15*time.Hour), false)

	emailer := &fakeEmailer{failFor: g1.Key}
	svc.emailer = emailer

	idle, err := svc.Sweep(context.Background())
	if err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}

	if len(idle) != 2 {
		t.Errorf("a failed dispatch should not shrink the idle set, got %d", len(idle))
	}
	if len(emailer.sent) != 1 {
		t.Errorf("expected the remaining reminder to be sent, got %d", len(emailer.sent))
	}
}

func TestSweepWithNoIdleGames(t *testing.T) {
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)
	emailer := &fakeEmailer{}
	env, svc := newReminderEnv(t, emailer, now)
	user := env.createUser(t, "alice")

	seedGame(t, env, user.Key, "DOG", now.Add(-time.Hour), false)

	idle, err := svc.Sweep(context.Background())
	if err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}
	if len(idle) != 0 {
		t.Errorf("expected no idle games, got %d", len(idle))
	}
	if len(emailer.sent) != 0 {
		t.Errorf("expected no reminders, got %d", len(emailer.sent))
	}
}
