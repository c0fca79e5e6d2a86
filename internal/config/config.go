package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	ServerPort   string
	DatabaseType string
	DatabasePath string
	DatabaseURL  string

	IncorrectGuessLimit int
	IdleTimeHours       int
	SweepInterval       time.Duration
	WordBank            []string

	AWSRegion     string
	EmailFrom     string
	EmailFromName string

	TokenSecret   string
	TokenDuration time.Duration
}

// Load reads configuration from environment variables with sensible defaults
func Load() *Config {
	return &Config{
		ServerPort:   getEnv("PORT", "8080"),
		DatabaseType: getEnv("DATABASE_TYPE", "sqlite"),
		DatabasePath: getEnv("DATABASE_PATH", "./hangman.db"),
		DatabaseURL:  getEnv("DATABASE_URL", ""),

		IncorrectGuessLimit: getEnvPositiveInt("INCORRECT_GUESS_LIMIT", 5),
		IdleTimeHours:       getEnvPositiveInt("IDLE_TIME_IN_HOURS", 12),
		SweepInterval:       time.Duration(getEnvPositiveInt("SWEEP_INTERVAL_MINUTES", 60)) * time.Minute,
		WordBank:            getEnvList("WORD_BANK"),

		AWSRegion:     getEnv("AWS_REGION", "us-east-1"),
		EmailFrom:     getEnv("EMAIL_FROM", ""),
		EmailFromName: getEnv("EMAIL_FROM_NAME", "Hangman"),

		TokenSecret:   getEnv("TOKEN_SECRET", ""),
		TokenDuration: time.Duration(getEnvPositiveInt("TOKEN_DURATION_HOURS", 24)) * time.Hour,
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvPositiveInt reads a positive integer environment variable; anything
// missing, unparsable, or non-positive yields the default
func getEnvPositiveInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}

// getEnvList reads a comma-separated environment variable into a slice,
// trimming whitespace and dropping empty entries
func getEnvList(key string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	var values []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	return values
}
