package handler

import (
	"net/http"

	"github.com/freeeve/war-simulator/internal/auth"
	"github.com/freeeve/war-simulator/internal/logger"
	"github.com/freeeve/war-simulator/internal/repository"
)

// UserHandler handles user profile endpoints.
type UserHandler struct {
	userRepo repository.UserRepository
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(userRepo repository.UserRepository) *UserHandler {
	return &UserHandler{userRepo: userRepo}
}

// GetMe handles GET /api/v1/users/me
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	h.writeUser(w, r, auth.UserIDFromContext(r.Context()))
}

// GetUser handles GET /api/v1/users/{id}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	h.writeUser(w, r, r.PathValue("id"))
}

func (h *UserHandler) writeUser(w http.ResponseWriter, r *http.Request, id string) {
	user, err := h.userRepo.FindByID(r.Context(), id)
	if err != nil {
		logger.ForRequest(r.Context()).Error().Err(err).Str("userId", id).Msg("Failed to load user")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, user)
}
