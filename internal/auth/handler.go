package auth

import (
	"mime"
	"net/http"

	"github.com/redmonkez12/go-pets-api/internal/apperror"
	"github.com/redmonkez12/go-pets-api/internal/httputil"
	"github.com/redmonkez12/go-pets-api/internal/logging"
	"github.com/redmonkez12/go-pets-api/internal/user"
)

const (
	tokenTypeBearer = "Bearer"
	maxFormBytes    = 1 << 20
)

var errInvalidForm = apperror.New(apperror.KindBadRequest, apperror.CodeInvalidRequestBody, "invalid form body")

// Handler contains HTTP handlers for authentication endpoints
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RefreshTokenRequest represents the token refresh request body
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// TokenPairResponse is returned by a successful login
type TokenPairResponse struct {
	TokenType             string `json:"token_type"`
	AccessToken           string `json:"access_token"`
	ExpiresAt             int64  `json:"expires_at"`
	RefreshToken          string `json:"refresh_token"`
	RefreshTokenExpiresAt int64  `json:"refresh_token_expires_at"`
}

// AccessTokenResponse is returned by a successful refresh
type AccessTokenResponse struct {
	TokenType   string `json:"token_type"`
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"`
}

// Register handles user registration
// @Summary      Register a new user
// @Description  Create a new user account with email and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Registration credentials"
// @Success      201 {object} user.UserResponse
// @Failure      400 {object} httputil.ErrorResponse "Invalid request or validation error"
// @Failure      409 {object} httputil.ErrorResponse "Email already exists"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /auth/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		httputil.RespondError(w, r, err)
		return
	}

	newUser, err := h.service.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		httputil.RespondError(w, r, err)
		return
	}

	logging.GetLoggerFromContext(r.Context()).Info("user registered successfully", "user_id", newUser.ID)
	httputil.RespondJSON(w, user.NewUserResponse(newUser), http.StatusCreated)
}

// AccessToken handles login
// @Summary      User login
// @Description  Authenticate with email and password and receive access and refresh tokens. Accepts JSON or an OAuth2 password form (username, password).
// @Tags         auth
// @Accept       json
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        request body LoginRequest true "Login credentials"
// @Success      200 {object} TokenPairResponse
// @Failure      400 {object} httputil.ErrorResponse "Invalid request body"
// @Failure      401 {object} httputil.ErrorResponse "Invalid credentials"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /auth/access-token [post]
func (h *Handler) AccessToken(w http.ResponseWriter, r *http.Request) {
	req, err := decodeLogin(w, r)
	if err != nil {
		httputil.RespondError(w, r, err)
		return
	}

	pair, err := h.service.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		httputil.RespondError(w, r, err)
		return
	}

	httputil.RespondJSON(w, TokenPairResponse{
		TokenType:             tokenTypeBearer,
		AccessToken:           pair.AccessToken,
		ExpiresAt:             pair.AccessTokenExpiresAt.Unix(),
		RefreshToken:          pair.RefreshToken,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt.Unix(),
	}, http.StatusOK)
}

// RefreshToken handles access token refresh
// @Summary      Refresh access token
// @Description  Exchange a refresh token for a new access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body RefreshTokenRequest true "Refresh token"
// @Success      200 {object} AccessTokenResponse
// @Failure      400 {object} httputil.ErrorResponse "Invalid request body"
// @Failure      401 {object} httputil.ErrorResponse "Invalid or expired refresh token"
// @Router       /auth/refresh-token [post]
func (h *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req RefreshTokenRequest
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		httputil.RespondError(w, r, err)
		return
	}

	token, err := h.service.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		httputil.RespondError(w, r, err)
		return
	}

	httputil.RespondJSON(w, AccessTokenResponse{
		TokenType:   tokenTypeBearer,
		AccessToken: token.Token,
		ExpiresAt:   token.ExpiresAt.Unix(),
	}, http.StatusOK)
}

// decodeLogin reads credentials from a JSON body or an OAuth2 password form.
func decodeLogin(w http.ResponseWriter, r *http.Request) (*LoginRequest, error) {
	var req LoginRequest

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/x-www-form-urlencoded" {
		if err := httputil.DecodeJSON(w, r, &req); err != nil {
			return nil, err
		}
		return &req, nil
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		return nil, errInvalidForm
	}
	req.Email = r.PostForm.Get("username")
	req.Password = r.PostForm.Get("password")

	if err := httputil.Validate(&req); err != nil {
		return nil, err
	}
	return &req, nil
}
