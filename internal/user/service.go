package user

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/redmonkez12/go-pets-api/internal/logging"
)

// Store is the persistence the user service needs. *Repository implements it.
type Store interface {
	Create(ctx context.Context, email, hashedPassword string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, hashedPassword string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
}

// Service implements self-service operations on the authenticated user's own account.
type Service struct {
	store  Store
	hasher PasswordHasher
	logger *logging.Logger
}

func NewService(store Store, hasher PasswordHasher, logger *logging.Logger) *Service {
	return &Service{
		store:  store,
		hasher: hasher,
		logger: logger,
	}
}

// Delete removes the user and, by cascade, all their pets.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("user deleted", "user_id", id)
	return nil
}

// ResetPassword replaces the password of user id.
func (s *Service) ResetPassword(ctx context.Context, id uuid.UUID, newPassword string) (*User, error) {
	hashed, err := s.hasher.Hash(newPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.store.UpdatePassword(ctx, id, hashed); err != nil {
		return nil, err
	}

	updated, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user password reset", "user_id", id)
	return updated, nil
}
