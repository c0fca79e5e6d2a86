package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"hangman/internal/config"
	"hangman/internal/database"
	"hangman/internal/handlers"
	"hangman/internal/repository"
	"hangman/internal/service"
	"hangman/internal/store"
)

func main() {
	// Load .env if present; real environments set variables directly
	_ = godotenv.Load()
	setupLogging()

	cfg := config.Load()
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize storage (memory, sqlite, postgres, or mysql)
	st, err := newStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize storage")
	}
	defer st.Close()

	log.Info().Str("type", cfg.DatabaseType).Msg("storage initialized")

	// Initialize repositories
	gameRepo := repository.NewGameRepository(st)
	userRepo := repository.NewUserRepository(st)
	scoreRepo := repository.NewScoreRepository(st)

	// Initialize services
	scoreService := service.NewScoreService(scoreRepo)
	gameService := service.NewGameService(gameRepo, userRepo, scoreService, cfg)
	userService := service.NewUserService(userRepo, gameRepo)
	authService := service.NewAuthService(userRepo, cfg.TokenSecret, cfg.TokenDuration)

	emailService, err := service.NewEmailService(ctx, cfg.AWSRegion, cfg.EmailFrom, cfg.EmailFromName)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize email service")
	}
	reminderService := service.NewReminderService(gameRepo, userRepo, emailService, cfg)

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService, scoreService, authService)
	gameHandler := handlers.NewGameHandler(gameService, userService, authService)
	scoreHandler := handlers.NewScoreHandler(scoreService)
	reminderHandler := handlers.NewReminderHandler(reminderService)

	// Setup routes
	mux := http.NewServeMux()

	mux.HandleFunc("POST /user", userHandler.Create)
	mux.HandleFunc("POST /login", userHandler.Login)
	mux.HandleFunc("GET /user/{userKey}", userHandler.Get)
	mux.HandleFunc("GET /user/{userKey}/games", userHandler.Games)
	mux.HandleFunc("GET /user/{userKey}/scores", userHandler.Scores)
	mux.HandleFunc("GET /users/rankings", userHandler.Rankings)

	mux.HandleFunc("POST /game", gameHandler.Create)
	mux.HandleFunc("GET /game/{gameKey}", gameHandler.Get)
	mux.HandleFunc("GET /games/active", gameHandler.Active)
	mux.HandleFunc("PUT /game/{gameKey}", gameHandler.Guess)
	mux.HandleFunc("DELETE /game/{gameKey}", gameHandler.Cancel)
	mux.HandleFunc("GET /game/{gameKey}/history", gameHandler.History)

	mux.HandleFunc("GET /scores", scoreHandler.All)
	mux.HandleFunc("GET /scores/leaderboard", scoreHandler.Leaderboard)

	mux.HandleFunc("GET /email/reminders", reminderHandler.Send)

	// Start background idle game sweep
	go reminderService.Run(ctx, cfg.SweepInterval)

	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handlers.Logging(mux),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	<-ctx.Done()
	log.Info().Msg("server shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}

// newStore builds the configured Store backend
func newStore(cfg *config.Config) (store.Store, error) {
	if cfg.DatabaseType == "memory" {
		return store.NewMemory(), nil
	}

	db, err := database.Initialize(cfg)
	if err != nil {
		return nil, err
	}
	return store.NewSQL(db), nil
}

func setupLogging() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	level, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
}
