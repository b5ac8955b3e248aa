package user

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/redmonkez12/go-pets-api/internal/apperror"
	"github.com/redmonkez12/go-pets-api/internal/httputil"
	"github.com/redmonkez12/go-pets-api/internal/logging"
)

var errNoCurrentUser = apperror.New(apperror.KindUnauthorized, apperror.CodeMissingAuth, "missing authentication")

// Handler contains HTTP handlers for the /users endpoints.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ResetPasswordRequest represents the password reset request body
type ResetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
}

// NewUserResponse whitelists the fields of u that may leave the server.
func NewUserResponse(u *User) UserResponse {
	return UserResponse{
		UserID: u.ID,
		Email:  u.Email,
	}
}

// GetMe returns the current user
// @Summary      Current user
// @Description  Return the authenticated user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} UserResponse
// @Failure      401 {object} httputil.ErrorResponse "Unauthorized"
// @Router       /users/me [get]
func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	current, ok := FromContext(r.Context())
	if !ok {
		httputil.RespondError(w, r, errNoCurrentUser)
		return
	}

	httputil.RespondJSON(w, NewUserResponse(current), http.StatusOK)
}

// DeleteMe deletes the current user and their pets
// @Summary      Delete current user
// @Description  Delete the authenticated user's account together with all their pets
// @Tags         users
// @Security     BearerAuth
// @Success      204
// @Failure      401 {object} httputil.ErrorResponse "Unauthorized"
// @Router       /users/me [delete]
func (h *Handler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	current, ok := FromContext(r.Context())
	if !ok {
		httputil.RespondError(w, r, errNoCurrentUser)
		return
	}

	if err := h.service.Delete(r.Context(), current.ID); err != nil {
		httputil.RespondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ResetPassword sets a new password for the current user
// @Summary      Reset password
// @Description  Replace the authenticated user's password
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body ResetPasswordRequest true "New password"
// @Success      200 {object} UserResponse
// @Failure      400 {object} httputil.ErrorResponse "Validation error"
// @Failure      401 {object} httputil.ErrorResponse "Unauthorized"
// @Router       /users/reset-password [post]
func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	current, ok := FromContext(r.Context())
	if !ok {
		httputil.RespondError(w, r, errNoCurrentUser)
		return
	}

	var req ResetPasswordRequest
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		httputil.RespondError(w, r, err)
		return
	}

	updated, err := h.service.ResetPassword(r.Context(), current.ID, req.Password)
	if err != nil {
		httputil.RespondError(w, r, err)
		return
	}

	logging.GetLoggerFromContext(r.Context()).Info("password reset successfully", "user_id", updated.ID)
	httputil.RespondJSON(w, NewUserResponse(updated), http.StatusOK)
}
