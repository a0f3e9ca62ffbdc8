package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"chatrelay-backend/internal/models"
	"chatrelay-backend/internal/store"
)

// InferenceClient defines the interface expected from the inference proxy
// client. This promotes loose coupling and testability.
type InferenceClient interface {
	Chat(ctx context.Context, message, sessionID string) (string, error)
}

// ChatService handles one chat turn: persist the user message, relay it to
// the inference service, persist and return the reply.
type ChatService struct {
	store     store.Store
	inference InferenceClient
	logger    *zap.Logger
}

func NewChatService(s store.Store, inference InferenceClient, logger *zap.Logger) *ChatService {
	return &ChatService{
		store:     s,
		inference: inference,
		logger:    logger,
	}
}

// Chat runs one conversation turn for userID. An empty sessionID gets a
// freshly generated one, returned alongside the reply.
//
// Ordering contract: the user message is persisted before the outbound call
// is issued, and the assistant reply is persisted only after the upstream
// response parsed successfully. A crash or upstream failure in between
// leaves the user message stored with no paired reply; that window is
// intentional and not compensated.
func (s *ChatService) Chat(ctx context.Context, userID, message, sessionID string) (string, string, error) {
	if userID == "" {
		return "", "", fmt.Errorf("%w: user_id is required", ErrValidation)
	}
	if message == "" {
		return "", "", fmt.Errorf("%w: message is required", ErrValidation)
	}

	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	if err := s.store.SaveMessage(ctx, userID, sessionID, models.RoleUser, message); err != nil {
		return "", "", fmt.Errorf("failed to save user message: %w", err)
	}

	reply, err := s.inference.Chat(ctx, message, sessionID)
	if err != nil {
		// The user message stays persisted; only the reply is missing.
		return "", "", err
	}

	if err := s.store.SaveMessage(ctx, userID, sessionID, models.RoleAssistant, reply); err != nil {
		return "", "", fmt.Errorf("failed to save assistant message: %w", err)
	}

	s.logger.Info("chat turn completed",
		zap.String("user_id", userID),
		zap.String("session_id", sessionID),
	)
	return reply, sessionID, nil
}

// Clear deletes all messages for userID. Clearing a user with no messages
// succeeds.
func (s *ChatService) Clear(ctx context.Context, userID string) error {
	if userID == "" {
		return fmt.Errorf("%w: user_id is required", ErrValidation)
	}
	return s.store.DeleteMessagesByUser(ctx, userID)
}
