package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopmesh/shopmesh/internal/models"
	"github.com/shopmesh/shopmesh/internal/repository"
	"github.com/shopmesh/shopmesh/internal/service"
)

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	service *service.UserService
	log     *slog.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(service *service.UserService, log *slog.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log,
	}
}

// CreateUser handles POST /users
// - 201: user created
// - 400: missing/invalid fields
// - 409: duplicate email
// - 500: storage failure
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Warn("failed to decode user request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	user, err := h.service.CreateUser(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			h.log.Warn("invalid user request", "error", err)
			WriteError(w, http.StatusBadRequest, err.Error(), h.log)
		case errors.Is(err, repository.ErrDuplicateEmail):
			h.log.Warn("duplicate email", "email", req.Email)
			WriteError(w, http.StatusConflict, "Email already exists", h.log)
		default:
			h.log.Error("failed to create user", "error", err)
			WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		}
		return
	}

	WriteJSON(w, http.StatusCreated, user, h.log)
	h.log.Info("user created", "user_id", user.ID)
}

// GetUser handles GET /users/{userId}
// - 200: successful lookup
// - 404: user not found (including malformed ids, which cannot match)
// - 500: storage failure
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil {
		WriteError(w, http.StatusNotFound, "User not found", h.log)
		return
	}

	user, err := h.service.GetUser(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			WriteError(w, http.StatusNotFound, "User not found", h.log)
			return
		}

		h.log.Error("failed to get user", "user_id", id, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}

	WriteJSON(w, http.StatusOK, user, h.log)
}
