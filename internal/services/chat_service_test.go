package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"chatrelay-backend/internal/models"
	"chatrelay-backend/internal/store"
)

// This mirrors store.Store; unset funcs fall back to benign defaults.
type mockStore struct {
	createUserFunc     func(ctx context.Context, email string) (*models.User, error)
	getUserByEmailFunc func(ctx context.Context, email string) (*models.User, error)
	getUserByIDFunc    func(ctx context.Context, id string) (*models.User, error)
	saveMessageFunc    func(ctx context.Context, userID, sessionID, role, content string) error

	saved   []models.Message
	deleted []string
}

func (m *mockStore) CreateUser(ctx context.Context, email string) (*models.User, error) {
	if m.createUserFunc != nil {
		return m.createUserFunc(ctx, email)
	}
	return &models.User{ID: uuid.New(), Email: email}, nil
}

func (m *mockStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.getUserByEmailFunc != nil {
		return m.getUserByEmailFunc(ctx, email)
	}
	return nil, store.ErrNotFound
}

func (m *mockStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	if m.getUserByIDFunc != nil {
		return m.getUserByIDFunc(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockStore) SaveMessage(ctx context.Context, userID, sessionID, role, content string) error {
	if m.saveMessageFunc != nil {
		return m.saveMessageFunc(ctx, userID, sessionID, role, content)
	}
	m.saved = append(m.saved, models.Message{UserID: userID, SessionID: sessionID, Role: role, Content: content})
	return nil
}

func (m *mockStore) DeleteMessagesByUser(ctx context.Context, userID string) error {
	m.deleted = append(m.deleted, userID)
	return nil
}

func (m *mockStore) Ping(ctx context.Context) error { return nil }
func (m *mockStore) Close() error                   { return nil }

type mockInference struct {
	chatFunc func(ctx context.Context, message, sessionID string) (string, error)
}

func (m *mockInference) Chat(ctx context.Context, message, sessionID string) (string, error) {
	if m.chatFunc != nil {
		return m.chatFunc(ctx, message, sessionID)
	}
	return "mock reply", nil
}

func TestChatPersistsTwoMessagesInOrder(t *testing.T) {
	ms := &mockStore{}
	svc := NewChatService(ms, &mockInference{}, zap.NewNop())

	reply, sessionID, err := svc.Chat(context.Background(), "u1", "hi there", "sess-1")
	require.NoError(t, err)
	require.Equal(t, "mock reply", reply)
	require.Equal(t, "sess-1", sessionID)

	require.Len(t, ms.saved, 2)
	require.Equal(t, models.RoleUser, ms.saved[0].Role)
	require.Equal(t, "hi there", ms.saved[0].Content)
	require.Equal(t, models.RoleAssistant, ms.saved[1].Role)
	require.Equal(t, "mock reply", ms.saved[1].Content)

	// Both rows share the request's session id.
	require.Equal(t, "sess-1", ms.saved[0].SessionID)
	require.Equal(t, "sess-1", ms.saved[1].SessionID)
}

func TestChatGeneratesSessionIDWhenAbsent(t *testing.T) {
	ms := &mockStore{}
	svc := NewChatService(ms, &mockInference{}, zap.NewNop())

	_, sessionID, err := svc.Chat(context.Background(), "u1", "hi", "")
	require.NoError(t, err)
	require.NotEmpty(t, sessionID)
	_, parseErr := uuid.Parse(sessionID)
	require.NoError(t, parseErr)

	require.Len(t, ms.saved, 2)
	require.Equal(t, sessionID, ms.saved[0].SessionID)
	require.Equal(t, sessionID, ms.saved[1].SessionID)
}

func TestChatUpstreamSessionIDForwarded(t *testing.T) {
	var gotSession string
	inf := &mockInference{chatFunc: func(ctx context.Context, message, sessionID string) (string, error) {
		gotSession = sessionID
		return "ok", nil
	}}
	svc := NewChatService(&mockStore{}, inf, zap.NewNop())

	_, sessionID, err := svc.Chat(context.Background(), "u1", "hi", "client-chosen")
	require.NoError(t, err)
	require.Equal(t, "client-chosen", sessionID)
	require.Equal(t, "client-chosen", gotSession)
}

func TestChatUpstreamFailureKeepsUserMessage(t *testing.T) {
	upstreamErr := errors.New("upstream exploded")
	ms := &mockStore{}
	inf := &mockInference{chatFunc: func(ctx context.Context, message, sessionID string) (string, error) {
		return "", upstreamErr
	}}
	svc := NewChatService(ms, inf, zap.NewNop())

	_, _, err := svc.Chat(context.Background(), "u1", "hi", "sess")
	require.ErrorIs(t, err, upstreamErr)

	// The user message was persisted before the call; no reply row exists.
	require.Len(t, ms.saved, 1)
	require.Equal(t, models.RoleUser, ms.saved[0].Role)
}

func TestChatValidatesInput(t *testing.T) {
	svc := NewChatService(&mockStore{}, &mockInference{}, zap.NewNop())

	_, _, err := svc.Chat(context.Background(), "", "hi", "")
	require.ErrorIs(t, err, ErrValidation)

	_, _, err = svc.Chat(context.Background(), "u1", "", "")
	require.ErrorIs(t, err, ErrValidation)
}

func TestClearDeletesForUser(t *testing.T) {
	ms := &mockStore{}
	svc := NewChatService(ms, &mockInference{}, zap.NewNop())

	require.NoError(t, svc.Clear(context.Background(), "u1"))
	require.Equal(t, []string{"u1"}, ms.deleted)

	require.ErrorIs(t, svc.Clear(context.Background(), ""), ErrValidation)
}
