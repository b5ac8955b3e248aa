package user

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redmonkez12/go-pets-api/internal/logging"
)

type memoryStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*User
}

func newMemoryStore() *memoryStore {
	return &memoryStore{users: map[uuid.UUID]*User{}}
}

func (m *memoryStore) Create(_ context.Context, email, hashedPassword string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == email {
			return nil, ErrDuplicateEmail
		}
	}
	u := &User{ID: uuid.New(), Email: email, HashedPassword: hashedPassword}
	m.users[u.ID] = u
	return u, nil
}

func (m *memoryStore) GetByEmail(_ context.Context, email string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memoryStore) GetByID(_ context.Context, id uuid.UUID) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}

func (m *memoryStore) UpdatePassword(_ context.Context, id uuid.UUID, hashedPassword string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return ErrNotFound
	}
	u.HashedPassword = hashedPassword
	return nil
}

func (m *memoryStore) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[id]; !ok {
		return ErrNotFound
	}
	delete(m.users, id)
	return nil
}

type prefixHasher struct{}

func (prefixHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func newTestService(t *testing.T) (*Service, *memoryStore, *User) {
	t.Helper()

	store := newMemoryStore()
	u, err := store.Create(context.Background(), "owner@example.com", "hashed:old-password")
	require.NoError(t, err)

	logger := logging.NewLoggerWithWriter(&bytes.Buffer{}, false)
	return NewService(store, prefixHasher{}, logger), store, u
}

func TestServiceResetPassword(t *testing.T) {
	svc, store, u := newTestService(t)

	updated, err := svc.ResetPassword(context.Background(), u.ID, "new-password")
	require.NoError(t, err)
	assert.Equal(t, u.ID, updated.ID)

	stored, err := store.GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, "hashed:new-password", stored.HashedPassword)
}

func TestServiceDelete(t *testing.T) {
	svc, store, u := newTestService(t)

	require.NoError(t, svc.Delete(context.Background(), u.ID))

	_, err := store.GetByID(context.Background(), u.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Delete(context.Background(), u.ID), ErrNotFound)
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "user@example.com", NormalizeEmail("  User@Example.com "))
	assert.Equal(t, "user@example.com", NormalizeEmail("user@example.com"))
}
