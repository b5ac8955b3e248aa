package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/redmonkez12/go-pets-api/internal/apperror"
	"github.com/redmonkez12/go-pets-api/internal/database"
)

var (
	ErrNotFound       = apperror.New(apperror.KindNotFound, apperror.CodeUserNotFound, "user not found")
	ErrDuplicateEmail = apperror.New(apperror.KindConflict, apperror.CodeEmailAlreadyExists, "email already exists")
)

// Repository handles user data persistence
type Repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new user into the database
func (r *Repository) Create(ctx context.Context, email, hashedPassword string) (*User, error) {
	dbUser := &database.User{
		ID:             uuid.New(),
		Email:          email,
		HashedPassword: hashedPassword,
	}

	_, err := r.db.NewInsert().
		Model(dbUser).
		Returning("*").
		Exec(ctx)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return mapDBUserToModel(dbUser), nil
}

// GetByEmail retrieves a user by email
func (r *Repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	dbUser := new(database.User)
	err := r.db.NewSelect().
		Model(dbUser).
		Where("email = ?", email).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return mapDBUserToModel(dbUser), nil
}

// GetByID retrieves a user by ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	dbUser := new(database.User)
	err := r.db.NewSelect().
		Model(dbUser).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return mapDBUserToModel(dbUser), nil
}

// UpdatePassword updates a user's password hash
func (r *Repository) UpdatePassword(ctx context.Context, id uuid.UUID, hashedPassword string) error {
	result, err := r.db.NewUpdate().
		Model((*database.User)(nil)).
		Set("hashed_password = ?", hashedPassword).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return expectOneRow(result)
}

// Delete removes the user together with every pet they own.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return database.RunInTx(ctx, r.db, func(ctx context.Context, tx bun.Tx) error {
		// The FK cascades as well; deleting explicitly keeps both statements in this transaction.
		if _, err := tx.NewDelete().
			Model((*database.Pet)(nil)).
			Where("user_id = ?", id).
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to delete user pets: %w", err)
		}

		result, err := tx.NewDelete().
			Model((*database.User)(nil)).
			Where("id = ?", id).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}

		return expectOneRow(result)
	})
}

func expectOneRow(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// mapDBUserToModel converts database model to domain model
func mapDBUserToModel(dbu *database.User) *User {
	return &User{
		ID:             dbu.ID,
		Email:          dbu.Email,
		HashedPassword: dbu.HashedPassword,
	}
}
