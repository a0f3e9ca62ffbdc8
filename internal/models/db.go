package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered user in the database.
type User struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Message represents a single chat message in the database.
// UserID is stored as plain text and is not backed by a foreign key;
// Role is free text, only "user" and "assistant" are ever written.
type Message struct {
	ID        int64     `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	SessionID string    `db:"session_id" json:"session_id"`
	Role      string    `db:"role" json:"role"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Message role values written by this service.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)
