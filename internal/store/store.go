package store

import (
	"context"
	"errors"

	"chatrelay-backend/internal/models"
)

// ErrNotFound is returned when a specific record is not found.
var ErrNotFound = errors.New("record not found")

// Store defines the interface for database operations.
// This allows for mocking in tests and potential DB backend switching.
type Store interface {
	// User operations. Emails are expected to arrive already normalized
	// (trimmed, lower-cased) from the service layer.
	CreateUser(ctx context.Context, email string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// Message operations. SaveMessage is an unconditional insert: the
	// user id is not checked for existence and the role is not validated.
	SaveMessage(ctx context.Context, userID, sessionID, role, content string) error
	// DeleteMessagesByUser removes all messages for the given user.
	// Deleting for a user with no messages is a no-op, not an error.
	DeleteMessagesByUser(ctx context.Context, userID string) error

	// Lifecycle.
	Ping(ctx context.Context) error
	Close() error
}
