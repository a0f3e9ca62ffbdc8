package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"chatrelay-backend/internal/models"
	"chatrelay-backend/internal/services"
	"chatrelay-backend/internal/store"
	"chatrelay-backend/pkg/httputil"
)

// UserService defines the interface expected from the user service.
// This promotes loose coupling and testability.
type UserService interface {
	Register(ctx context.Context, email string) (*models.User, error)
	Get(ctx context.Context, id string) (*models.User, error)
}

type UserHandler struct {
	userService UserService
	logger      *zap.Logger
}

func NewUserHandler(userSvc UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		userService: userSvc,
		logger:      logger,
	}
}

// HandleRegister handles the POST /api/register request. Registration is
// idempotent: a known email returns the existing user.
func (h *UserHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	user, err := h.userService.Register(r.Context(), req.Email)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			httputil.RespondError(w, http.StatusBadRequest, "email required")
		default:
			h.logger.Error("register handler failed", zap.String("email", req.Email), zap.Error(err))
			httputil.RespondError(w, http.StatusInternalServerError, "server error")
		}
		return
	}

	httputil.RespondJSON(w, http.StatusOK, models.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	})
}

// HandleGetUser handles the GET /api/user/{id} request.
func (h *UserHandler) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	user, err := h.userService.Get(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			httputil.RespondError(w, http.StatusNotFound, "not found")
		default:
			h.logger.Error("get user handler failed", zap.String("id", id), zap.Error(err))
			httputil.RespondError(w, http.StatusInternalServerError, "server error")
		}
		return
	}

	httputil.RespondJSON(w, http.StatusOK, models.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	})
}
