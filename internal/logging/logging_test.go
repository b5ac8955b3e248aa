package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithFieldsJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, false)

	logger.WithFields(map[string]any{"user_id": "u-1", "email": "a@b.c"}).Info("hello")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "hello", record["msg"])
	assert.Equal(t, "u-1", record["user_id"])
	assert.Equal(t, "a@b.c", record["email"])
}

func TestPrettyHandlerWritesAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, true)

	logger.WithFields(map[string]any{"pet": "Tadeusz"}).Warn("created")

	out := buf.String()
	assert.Contains(t, out, "created")
	assert.Contains(t, out, "pet")
	assert.Contains(t, out, "Tadeusz")
	assert.Contains(t, out, "WARN")
}

func TestRequestLoggerStoresLoggerInContext(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, false)

	var fromCtx *Logger
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fromCtx = GetLoggerFromContext(r.Context())
		w.WriteHeader(http.StatusTeapot)
	})

	handler := middleware.RequestID(RequestLogger(logger)(next))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/pets/me", nil))

	require.NotNil(t, fromCtx)
	assert.NotSame(t, logger, fromCtx)
	assert.Contains(t, buf.String(), `"status":418`)
	assert.Contains(t, buf.String(), `"path":"/pets/me"`)
	assert.Contains(t, buf.String(), `"level":"WARN"`)
}

func TestGetLoggerFromContextFallback(t *testing.T) {
	assert.NotNil(t, GetLoggerFromContext(context.Background()))
}
