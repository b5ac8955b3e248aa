package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redmonkez12/go-pets-api/internal/user"
)

func TestHandlerRegister(t *testing.T) {
	svc, _, _ := newTestService(t)
	h := NewHandler(svc)

	t.Run("created", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Register(rec, httptest.NewRequest(http.MethodPost, "/auth/register",
			strings.NewReader(`{"email":"alice@example.com","password":"s3cret-password"}`)))

		require.Equal(t, http.StatusCreated, rec.Code)
		var body user.UserResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "alice@example.com", body.Email)
		assert.NotContains(t, rec.Body.String(), "argon2id")
	})

	t.Run("duplicate", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Register(rec, httptest.NewRequest(http.MethodPost, "/auth/register",
			strings.NewReader(`{"email":"alice@example.com","password":"s3cret-password"}`)))

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("invalid email", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Register(rec, httptest.NewRequest(http.MethodPost, "/auth/register",
			strings.NewReader(`{"email":"not-an-email","password":"s3cret-password"}`)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), `"email"`)
	})
}

func TestHandlerAccessToken(t *testing.T) {
	svc, _, _ := newTestService(t)
	h := NewHandler(svc)
	_, err := svc.Register(context.Background(), "alice@example.com", "s3cret-password")
	require.NoError(t, err)

	t.Run("json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/auth/access-token",
			strings.NewReader(`{"email":"alice@example.com","password":"s3cret-password"}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		h.AccessToken(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var body TokenPairResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Bearer", body.TokenType)
		assert.NotEmpty(t, body.AccessToken)
		assert.NotEmpty(t, body.RefreshToken)
		assert.Greater(t, body.RefreshTokenExpiresAt, body.ExpiresAt)
	})

	t.Run("oauth2 form", func(t *testing.T) {
		form := url.Values{"username": {"alice@example.com"}, "password": {"s3cret-password"}}
		req := httptest.NewRequest(http.MethodPost, "/auth/access-token", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		h.AccessToken(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("wrong password", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/auth/access-token",
			strings.NewReader(`{"email":"alice@example.com","password":"nope-nope"}`))
		rec := httptest.NewRecorder()
		h.AccessToken(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "INVALID_CREDENTIALS")
	})
}

func TestHandlerRefreshToken(t *testing.T) {
	svc, _, _ := newTestService(t)
	h := NewHandler(svc)
	ctx := context.Background()
	_, err := svc.Register(ctx, "alice@example.com", "s3cret-password")
	require.NoError(t, err)
	pair, err := svc.Authenticate(ctx, "alice@example.com", "s3cret-password")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.RefreshToken(rec, httptest.NewRequest(http.MethodPost, "/auth/refresh-token",
		strings.NewReader(`{"refresh_token":"`+pair.RefreshToken+`"}`)))

	require.Equal(t, http.StatusOK, rec.Code)
	var body AccessTokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body.AccessToken)

	rec = httptest.NewRecorder()
	h.RefreshToken(rec, httptest.NewRequest(http.MethodPost, "/auth/refresh-token",
		strings.NewReader(`{"refresh_token":"`+pair.AccessToken+`"}`)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuth(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	registered, err := svc.Register(ctx, "alice@example.com", "s3cret-password")
	require.NoError(t, err)
	pair, err := svc.Authenticate(ctx, "alice@example.com", "s3cret-password")
	require.NoError(t, err)

	protected := NewMiddleware(svc).RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		current, ok := user.FromContext(r.Context())
		require.True(t, ok)
		assert.Equal(t, registered.ID, current.ID)
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantCode   string
	}{
		{name: "valid token", header: "Bearer " + pair.AccessToken, wantStatus: http.StatusNoContent},
		{name: "missing header", wantStatus: http.StatusUnauthorized, wantCode: "MISSING_AUTH"},
		{name: "wrong scheme", header: "Basic abc", wantStatus: http.StatusUnauthorized, wantCode: "INVALID_AUTH_HEADER"},
		{name: "refresh token", header: "Bearer " + pair.RefreshToken, wantStatus: http.StatusUnauthorized, wantCode: "INVALID_TOKEN"},
		{name: "garbage token", header: "Bearer garbage", wantStatus: http.StatusUnauthorized, wantCode: "INVALID_TOKEN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			protected.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				assert.Contains(t, rec.Body.String(), tt.wantCode)
				assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
			}
		})
	}
}
