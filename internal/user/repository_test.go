package user

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redmonkez12/go-pets-api/internal/database"
)

var userColumns = []string{"id", "email", "hashed_password"}

func newMockRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	return NewRepository(database.NewBunDB(sqlDB)), mock
}

func TestRepositoryCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		id := uuid.New()

		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "user_model"`)).
			WillReturnRows(sqlmock.NewRows(userColumns).AddRow(id.String(), "a@example.com", "hash"))

		u, err := repo.Create(ctx, "a@example.com", "hash")
		require.NoError(t, err)
		assert.Equal(t, id, u.ID)
		assert.Equal(t, "a@example.com", u.Email)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "user_model"`)).
			WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})

		_, err := repo.Create(ctx, "a@example.com", "hash")
		assert.ErrorIs(t, err, ErrDuplicateEmail)
	})

	t.Run("database error", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "user_model"`)).
			WillReturnError(errors.New("connection reset"))

		_, err := repo.Create(ctx, "a@example.com", "hash")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrDuplicateEmail)
	})
}

func TestRepositoryGetByEmail(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("found", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectQuery(regexp.QuoteMeta(`FROM "user_model" AS "u" WHERE (email = 'a@example.com')`)).
			WillReturnRows(sqlmock.NewRows(userColumns).AddRow(id.String(), "a@example.com", "hash"))

		u, err := repo.GetByEmail(ctx, "a@example.com")
		require.NoError(t, err)
		assert.Equal(t, id, u.ID)
		assert.Equal(t, "hash", u.HashedPassword)
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectQuery(regexp.QuoteMeta(`FROM "user_model"`)).
			WillReturnRows(sqlmock.NewRows(userColumns))

		_, err := repo.GetByEmail(ctx, "missing@example.com")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestRepositoryGetByID(t *testing.T) {
	repo, mock := newMockRepository(t)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM "user_model" AS "u" WHERE (id = '` + id.String() + `')`)).
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(id.String(), "a@example.com", "hash"))

	u, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", u.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryUpdatePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("updated", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "user_model"`)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.UpdatePassword(ctx, uuid.New(), "new-hash"))
	})

	t.Run("no such user", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "user_model"`)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.UpdatePassword(ctx, uuid.New(), "new-hash"), ErrNotFound)
	})
}

func TestRepositoryDeleteRemovesPetsInTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("commits", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "pets"`)).WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "user_model"`)).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, repo.Delete(ctx, uuid.New()))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when user is missing", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "pets"`)).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "user_model"`)).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		assert.ErrorIs(t, repo.Delete(ctx, uuid.New()), ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
