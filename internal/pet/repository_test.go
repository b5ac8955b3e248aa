package pet

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redmonkez12/go-pets-api/internal/database"
)

var petColumns = []string{"id", "user_id", "pet_name"}

func newMockRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	return NewRepository(database.NewBunDB(sqlDB)), mock
}

func TestRepositoryCreate(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	t.Run("returns generated id", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "pets"`)).
			WillReturnRows(sqlmock.NewRows(petColumns).AddRow(int64(7), owner.String(), "Tadeusz"))

		p, err := repo.Create(ctx, owner, "Tadeusz")
		require.NoError(t, err)
		assert.Equal(t, int64(7), p.ID)
		assert.Equal(t, owner, p.UserID)
		assert.Equal(t, "Tadeusz", p.PetName)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown owner", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "pets"`)).
			WillReturnError(&pgconn.PgError{Code: "23503"})

		_, err := repo.Create(ctx, owner, "Tadeusz")
		assert.ErrorIs(t, err, ErrOwnerNotFound)
	})
}

func TestRepositoryListByUserOrdersByName(t *testing.T) {
	repo, mock := newMockRepository(t)
	owner := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE (user_id = '`+owner.String()+`')`) + ` ORDER BY "?pet_name"? ASC`).
		WillReturnRows(sqlmock.NewRows(petColumns).
			AddRow(int64(2), owner.String(), "Pet_1").
			AddRow(int64(1), owner.String(), "Pet_2"))

	pets, err := repo.ListByUser(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, pets, 2)
	assert.Equal(t, "Pet_1", pets[0].PetName)
	assert.Equal(t, "Pet_2", pets[1].PetName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryListByUserEmpty(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM "pets"`)).
		WillReturnRows(sqlmock.NewRows(petColumns))

	pets, err := repo.ListByUser(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, pets)
	assert.Empty(t, pets)
}
