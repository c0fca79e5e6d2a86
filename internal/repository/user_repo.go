package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"hangman/internal/apperrors"
	"hangman/internal/models"
	"hangman/internal/store"
)

// UserRepository handles persistence for users
type UserRepository struct {
	store store.Store
}

// NewUserRepository creates a new user repository
func NewUserRepository(s store.Store) *UserRepository {
	return &UserRepository{store: s}
}

// Get retrieves a user by key
func (r *UserRepository) Get(ctx context.Context, key string) (*models.User, error) {
	raw, err := r.store.Get(ctx, store.Users, key)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: user %s", apperrors.ErrNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", key, err)
	}
	return decodeUser(key, raw)
}

// Save persists the user, pushing it under a generated key on first save.
// Returns the user with its key set.
func (r *UserRepository) Save(ctx context.Context, user *models.User) (*models.User, error) {
	if user.Key == "" {
		key, err := r.store.Push(ctx, store.Users, user)
		if err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		user.Key = key
		return user, nil
	}

	stored := *user
	stored.Key = ""
	if err := r.store.Put(ctx, store.Users, user.Key, &stored); err != nil {
		return nil, fmt.Errorf("failed to save user %s: %w", user.Key, err)
	}
	return user, nil
}

// All retrieves every user
func (r *UserRepository) All(ctx context.Context) ([]*models.User, error) {
	docs, err := r.store.Query(ctx, store.Users, store.Query{})
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	users := make([]*models.User, 0, len(docs))
	for key, raw := range docs {
		user, err := decodeUser(key, raw)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// ByEmail retrieves the user registered with the given email address
func (r *UserRepository) ByEmail(ctx context.Context, email string) (*models.User, error) {
	docs, err := r.store.Query(ctx, store.Users, store.Query{OrderBy: "email", EqualTo: email})
	if err != nil {
		return nil, fmt.Errorf("failed to query users by email: %w", err)
	}
	for key, raw := range docs {
		return decodeUser(key, raw)
	}
	return nil, fmt.Errorf("%w: no user with email %s", apperrors.ErrNotFound, email)
}

func decodeUser(key string, raw json.RawMessage) (*models.User, error) {
	user := &models.User{}
	if err := json.Unmarshal(raw, user); err != nil {
		return nil, fmt.Errorf("failed to decode user %s: %w", key, err)
	}
	user.Key = key
	return user, nil
}
