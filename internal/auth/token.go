package auth

import (
	"time"

	"github.com/google/uuid"

	"github.com/redmonkez12/go-pets-api/internal/apperror"
)

var (
	ErrInvalidToken = apperror.New(apperror.KindUnauthorized, apperror.CodeInvalidToken, "invalid token")
	ErrExpiredToken = apperror.New(apperror.KindUnauthorized, apperror.CodeTokenExpired, "token has expired")
)

// TokenType distinguishes short-lived access tokens from refresh tokens.
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// TokenClaims are the claims carried by every issued token.
type TokenClaims struct {
	UserID    uuid.UUID
	Type      TokenType
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenService defines the interface for token creation and validation.
// Implementations include PasetoService (PASETO v4.local) and JWTService (HS256).
type TokenService interface {
	// CreateToken returns the token string and its expiry.
	CreateToken(userID uuid.UUID, tokenType TokenType, duration time.Duration) (string, time.Time, error)
	// VerifyToken fails with ErrExpiredToken or ErrInvalidToken, including
	// when the token is valid but not of the expected type.
	VerifyToken(tokenStr string, expected TokenType) (*TokenClaims, error)
}
