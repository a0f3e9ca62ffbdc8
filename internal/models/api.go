package models

import (
	"time"

	"github.com/google/uuid"
)

// --- Request Structs ---

// RegisterRequest defines the expected body for the register endpoint.
type RegisterRequest struct {
	Email string `json:"email"`
}

// ChatRequest defines the expected body for the chat endpoint.
// SessionID is optional; the server generates one when it is absent.
type ChatRequest struct {
	UserID    string `json:"user_id"`
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
}

// ClearRequest defines the expected body for the clear endpoint.
type ClearRequest struct {
	UserID string `json:"user_id"`
}

// --- Response Structs ---

// UserResponse defines the user information returned by the API.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// ChatResponse defines the response body for a successful chat turn.
type ChatResponse struct {
	Reply     string `json:"reply"`
	SessionID string `json:"session_id"`
}

// ClearResponse defines the response body for the clear endpoint.
type ClearResponse struct {
	Status string `json:"status"`
}

// ErrorResponse defines the standard structure for API errors.
// RawResponse carries the upstream payload when the inference service
// returned something that was not JSON.
type ErrorResponse struct {
	Error       string `json:"error"`
	RawResponse string `json:"raw_response,omitempty"`
}
