package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"hangman/internal/apperrors"
	"hangman/internal/repository"
)

// AuthService issues and verifies bearer tokens for players. Token auth is
// optional: with no secret configured the API stays open, matching the
// original deployment.
type AuthService struct {
	users    *repository.UserRepository
	secret   []byte
	duration time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(users *repository.UserRepository, secret string, duration time.Duration) *AuthService {
	return &AuthService{users: users, secret: []byte(secret), duration: duration}
}

// Enabled reports whether token auth is configured
func (s *AuthService) Enabled() bool {
	return len(s.secret) > 0
}

// HashPassword hashes a signup password with bcrypt
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Login verifies the credentials and returns a signed bearer token for the
// user. Unknown emails, credential-less accounts, and wrong passwords all
// report the same unauthorized error.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	if !s.Enabled() {
		return "", fmt.Errorf("%w: token auth requires TOKEN_SECRET", apperrors.ErrNotConfigured)
	}

	user, err := s.users.ByEmail(ctx, email)
	if errors.Is(err, apperrors.ErrNotFound) {
		return "", apperrors.ErrUnauthorized
	}
	if err != nil {
		return "", err
	}
	if user.PasswordHash == "" {
		return "", apperrors.ErrUnauthorized
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", apperrors.ErrUnauthorized
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.Key,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.duration)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

// Verify parses a bearer token and returns the user key it was issued for
func (s *AuthService) Verify(tokenString string) (string, error) {
	if !s.Enabled() {
		return "", fmt.Errorf("%w: token auth requires TOKEN_SECRET", apperrors.ErrNotConfigured)
	}

	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", apperrors.ErrUnauthorized
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", apperrors.ErrUnauthorized
	}
	return claims.Subject, nil
}
