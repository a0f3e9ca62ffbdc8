package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"chatrelay-backend/internal/inference"
	"chatrelay-backend/internal/models"
	"chatrelay-backend/internal/services"
	"chatrelay-backend/pkg/httputil"
)

// ChatService defines the interface expected from the chat service.
type ChatService interface {
	Chat(ctx context.Context, userID, message, sessionID string) (reply string, usedSessionID string, err error)
	Clear(ctx context.Context, userID string) error
}

type ChatHandler struct {
	chatService ChatService
	logger      *zap.Logger
}

func NewChatHandler(chatSvc ChatService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		chatService: chatSvc,
		logger:      logger,
	}
}

// HandleChat handles the POST /api/chat request: persist the user message,
// relay it upstream, persist the reply, return reply plus session id.
func (h *ChatHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if req.UserID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "user_id required")
		return
	}
	if req.Message == "" {
		httputil.RespondError(w, http.StatusBadRequest, "message required")
		return
	}

	reply, sessionID, err := h.chatService.Chat(r.Context(), req.UserID, req.Message, req.SessionID)
	if err != nil {
		// Error Mapping: the non-JSON upstream case keeps its raw payload
		// for diagnostics; everything else is a generic 500.
		var upstreamErr *inference.UpstreamError
		switch {
		case errors.Is(err, services.ErrValidation):
			httputil.RespondError(w, http.StatusBadRequest, err.Error())
		case errors.As(err, &upstreamErr):
			h.logger.Error("inference service returned non-JSON",
				zap.String("user_id", req.UserID),
				zap.String("raw", upstreamErr.Raw),
			)
			httputil.RespondErrorRaw(w, http.StatusInternalServerError,
				"inference service returned non-JSON response", upstreamErr.Raw)
		default:
			h.logger.Error("chat handler failed", zap.String("user_id", req.UserID), zap.Error(err))
			httputil.RespondError(w, http.StatusInternalServerError, "server error")
		}
		return
	}

	httputil.RespondJSON(w, http.StatusOK, models.ChatResponse{
		Reply:     reply,
		SessionID: sessionID,
	})
}

// HandleClear handles the POST /api/clear request.
func (h *ChatHandler) HandleClear(w http.ResponseWriter, r *http.Request) {
	var req models.ClearRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if req.UserID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "user_id required")
		return
	}

	if err := h.chatService.Clear(r.Context(), req.UserID); err != nil {
		h.logger.Error("clear handler failed", zap.String("user_id", req.UserID), zap.Error(err))
		httputil.RespondError(w, http.StatusInternalServerError, "server error")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, models.ClearResponse{Status: "cleared"})
}
