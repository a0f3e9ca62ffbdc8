package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"chatrelay-backend/internal/models"
	"chatrelay-backend/internal/store"
)

// Custom errors for the user service.
var (
	ErrValidation = errors.New("input validation failed")
)

// UserService handles user registration and lookup.
type UserService struct {
	store  store.Store
	logger *zap.Logger
}

func NewUserService(s store.Store, logger *zap.Logger) *UserService {
	return &UserService{
		store:  s,
		logger: logger,
	}
}

// Register normalizes the email and returns the user registered under it,
// creating one on first sight. Registering the same email twice returns the
// existing record unchanged.
func (s *UserService) Register(ctx context.Context, email string) (*models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrValidation)
	}

	existing, err := s.store.GetUserByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		s.logger.Error("failed to check user existence", zap.String("email", email), zap.Error(err))
		return nil, fmt.Errorf("failed to check user existence: %w", err)
	}

	// Two registrations racing on the same email can both reach this
	// insert; the loser surfaces the store's UNIQUE constraint error.
	user, err := s.store.CreateUser(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user registered", zap.String("id", user.ID.String()), zap.String("email", email))
	return user, nil
}

// Get looks up a user by id. Returns store.ErrNotFound when absent.
func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	return s.store.GetUserByID(ctx, id)
}
