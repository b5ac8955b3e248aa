package pet

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redmonkez12/go-pets-api/internal/user"
)

func withUser(r *http.Request, u *user.User) *http.Request {
	return r.WithContext(user.NewContext(r.Context(), u))
}

func TestHandlerCreate(t *testing.T) {
	svc, _ := newTestService()
	h := NewHandler(svc)
	owner := &user.User{ID: uuid.New(), Email: "owner@example.com"}

	t.Run("created", func(t *testing.T) {
		req := withUser(httptest.NewRequest(http.MethodPost, "/pets/create", strings.NewReader(`{"pet_name":"Tadeusz"}`)), owner)
		rec := httptest.NewRecorder()
		h.Create(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		var body PetResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Tadeusz", body.PetName)
		assert.Equal(t, owner.ID, body.UserID)
		assert.NotZero(t, body.ID)
	})

	t.Run("missing name", func(t *testing.T) {
		req := withUser(httptest.NewRequest(http.MethodPost, "/pets/create", strings.NewReader(`{}`)), owner)
		rec := httptest.NewRecorder()
		h.Create(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "pet_name")
	})

	t.Run("name too long", func(t *testing.T) {
		body := `{"pet_name":"` + strings.Repeat("x", 51) + `"}`
		req := withUser(httptest.NewRequest(http.MethodPost, "/pets/create", strings.NewReader(body)), owner)
		rec := httptest.NewRecorder()
		h.Create(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("control character", func(t *testing.T) {
		req := withUser(httptest.NewRequest(http.MethodPost, "/pets/create", strings.NewReader(`{"pet_name":"Rex\u0000"}`)), owner)
		rec := httptest.NewRecorder()
		h.Create(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "control characters")
	})

	t.Run("anonymous", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Create(rec, httptest.NewRequest(http.MethodPost, "/pets/create", strings.NewReader(`{"pet_name":"Tadeusz"}`)))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestHandlerListMineEmptyArray(t *testing.T) {
	svc, _ := newTestService()
	h := NewHandler(svc)

	req := withUser(httptest.NewRequest(http.MethodGet, "/pets/me", nil), &user.User{ID: uuid.New()})
	rec := httptest.NewRecorder()
	h.ListMine(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}
