package pet

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/redmonkez12/go-pets-api/internal/apperror"
	"github.com/redmonkez12/go-pets-api/internal/database"
)

var (
	ErrInvalidPetName = apperror.New(apperror.KindBadRequest, apperror.CodeInvalidPetName, "pet name must be 1 to 50 characters with no control characters")
	ErrOwnerNotFound  = apperror.New(apperror.KindNotFound, apperror.CodeOwnerNotFound, "pet owner not found")
)

// Repository handles pet data persistence
type Repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a pet owned by userID
func (r *Repository) Create(ctx context.Context, userID uuid.UUID, petName string) (*Pet, error) {
	dbPet := &database.Pet{
		UserID:  userID,
		PetName: petName,
	}

	_, err := r.db.NewInsert().
		Model(dbPet).
		Returning("*").
		Exec(ctx)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return nil, ErrOwnerNotFound
		}
		return nil, fmt.Errorf("failed to create pet: %w", err)
	}

	return mapDBPetToModel(dbPet), nil
}

// ListByUser returns the pets of userID ordered by name
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Pet, error) {
	var dbPets []database.Pet
	err := r.db.NewSelect().
		Model(&dbPets).
		Where("user_id = ?", userID).
		Order("pet_name ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pets: %w", err)
	}

	pets := make([]Pet, 0, len(dbPets))
	for i := range dbPets {
		pets = append(pets, *mapDBPetToModel(&dbPets[i]))
	}
	return pets, nil
}

func mapDBPetToModel(dbp *database.Pet) *Pet {
	return &Pet{
		ID:      dbp.ID,
		UserID:  dbp.UserID,
		PetName: dbp.PetName,
	}
}
