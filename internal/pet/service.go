package pet

import (
	"context"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/redmonkez12/go-pets-api/internal/httputil"
	"github.com/redmonkez12/go-pets-api/internal/logging"
)

// Store is the persistence the pet service needs. *Repository implements it.
type Store interface {
	Create(ctx context.Context, userID uuid.UUID, petName string) (*Pet, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Pet, error)
}

type Service struct {
	store  Store
	logger *logging.Logger
}

func NewService(store Store, logger *logging.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
	}
}

// Create adds a pet named petName to userID.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, petName string) (*Pet, error) {
	if n := utf8.RuneCountInString(petName); n < 1 || n > MaxNameLength {
		return nil, ErrInvalidPetName
	}
	if httputil.HasControlChars(petName) {
		return nil, ErrInvalidPetName
	}

	p, err := s.store.Create(ctx, userID, petName)
	if err != nil {
		return nil, err
	}

	s.logger.Info("pet created", "pet_id", p.ID, "user_id", userID)
	return p, nil
}

// ListByUser returns every pet of userID sorted by name ascending.
func (s *Service) ListByUser(ctx context.Context, userID uuid.UUID) ([]Pet, error) {
	pets, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if pets == nil {
		pets = []Pet{}
	}
	return pets, nil
}
