package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/redmonkez12/go-pets-api/internal/apperror"
	"github.com/redmonkez12/go-pets-api/internal/logging"
	"github.com/redmonkez12/go-pets-api/internal/user"
)

var ErrInvalidCredentials = apperror.New(apperror.KindUnauthorized, apperror.CodeInvalidCredentials, "invalid email or password")

// UserStore is the subset of user persistence authentication needs.
type UserStore interface {
	Create(ctx context.Context, email, hashedPassword string) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(encodedHash, password string) (bool, error)
}

// TokenPair is issued on successful authentication
type TokenPair struct {
	AccessToken           string
	AccessTokenExpiresAt  time.Time
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
}

// AccessToken is issued on refresh
type AccessToken struct {
	Token     string
	ExpiresAt time.Time
}

// Service handles authentication business logic
type Service struct {
	users                UserStore
	hasher               PasswordHasher
	tokens               TokenService
	logger               *logging.Logger
	accessTokenDuration  time.Duration
	refreshTokenDuration time.Duration
}

func NewService(
	users UserStore,
	hasher PasswordHasher,
	tokens TokenService,
	logger *logging.Logger,
	accessTokenDuration time.Duration,
	refreshTokenDuration time.Duration,
) *Service {
	return &Service{
		users:                users,
		hasher:               hasher,
		tokens:               tokens,
		logger:               logger,
		accessTokenDuration:  accessTokenDuration,
		refreshTokenDuration: refreshTokenDuration,
	}
}

// Register creates a new user account
func (s *Service) Register(ctx context.Context, email, password string) (*user.User, error) {
	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	newUser, err := s.users.Create(ctx, user.NormalizeEmail(email), passwordHash)
	if err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			return nil, user.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user registered", "user_id", newUser.ID)
	return newUser, nil
}

// Authenticate checks the credentials and issues an access and a refresh token
func (s *Service) Authenticate(ctx context.Context, email, password string) (*TokenPair, error) {
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	existingUser, err := s.users.GetByEmail(ctx, user.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	ok, err := s.hasher.Verify(existingUser.HashedPassword, password)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	accessToken, accessExpiresAt, err := s.tokens.CreateToken(existingUser.ID, TokenTypeAccess, s.accessTokenDuration)
	if err != nil {
		return nil, fmt.Errorf("failed to create access token: %w", err)
	}

	refreshToken, refreshExpiresAt, err := s.tokens.CreateToken(existingUser.ID, TokenTypeRefresh, s.refreshTokenDuration)
	if err != nil {
		return nil, fmt.Errorf("failed to create refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:           accessToken,
		AccessTokenExpiresAt:  accessExpiresAt,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: refreshExpiresAt,
	}, nil
}

// Refresh exchanges a valid refresh token for a new access token
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*AccessToken, error) {
	owner, err := s.userFromToken(ctx, refreshToken, TokenTypeRefresh)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := s.tokens.CreateToken(owner.ID, TokenTypeAccess, s.accessTokenDuration)
	if err != nil {
		return nil, fmt.Errorf("failed to create access token: %w", err)
	}

	return &AccessToken{Token: token, ExpiresAt: expiresAt}, nil
}

// ResolveCurrentUser maps an access token to the user it was issued for
func (s *Service) ResolveCurrentUser(ctx context.Context, accessToken string) (*user.User, error) {
	return s.userFromToken(ctx, accessToken, TokenTypeAccess)
}

func (s *Service) userFromToken(ctx context.Context, tokenStr string, tokenType TokenType) (*user.User, error) {
	if tokenStr == "" {
		return nil, ErrInvalidToken
	}

	claims, err := s.tokens.VerifyToken(tokenStr, tokenType)
	if err != nil {
		return nil, err
	}

	owner, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		// the account was deleted after the token was issued
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return owner, nil
}
