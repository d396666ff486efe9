package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"piscopy/internal/models"
	"piscopy/internal/store"

	"go.uber.org/zap"
)

var ErrNotFound = errors.New("record not found")

type UserRepository struct {
	store  *store.Client
	logger *zap.Logger
}

func NewUserRepository(store *store.Client, logger *zap.Logger) *UserRepository {
	return &UserRepository{
		store:  store,
		logger: logger,
	}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) (string, error) {
	body := *user
	body.ID = ""
	return r.store.Create(ctx, store.KindUsers, &body)
}

// GetByEmail scans the listed mapping for a matching address. The store
// has no query surface beyond listing a kind, and the staff list is small.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.find(ctx, func(u *models.User) bool {
		return strings.EqualFold(u.Email, email)
	})
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.find(ctx, func(u *models.User) bool {
		return u.ID == id
	})
}

func (r *UserRepository) find(ctx context.Context, match func(*models.User) bool) (*models.User, error) {
	records, err := r.store.List(ctx, store.KindUsers)
	if err != nil {
		return nil, err
	}

	for key, raw := range records {
		var user models.User
		if err := json.Unmarshal(raw, &user); err != nil {
			return nil, fmt.Errorf("malformed user record %s: %w", key, err)
		}
		user.ID = key
		if match(&user) {
			return &user, nil
		}
	}

	return nil, ErrNotFound
}
