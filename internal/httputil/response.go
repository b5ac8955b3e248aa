package httputil

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/redmonkez12/go-pets-api/internal/apperror"
	"github.com/redmonkez12/go-pets-api/internal/logging"
)

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error  string            `json:"error"`
	Code   string            `json:"code,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
}

// RespondJSON sends a JSON response with the given status code.
// Logs encoding errors to avoid silent failures.
func RespondJSON(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("ERROR: failed to encode JSON response: %v", err)
	}
}

// RespondErrorWithCode sends a JSON error response with a machine-readable error code.
func RespondErrorWithCode(w http.ResponseWriter, message string, code string, statusCode int) {
	RespondJSON(w, ErrorResponse{Error: message, Code: code}, statusCode)
}

// RespondError reports err to the client. Errors carrying an apperror kind are
// serialized as-is; anything else is logged and hidden behind a generic 500.
func RespondError(w http.ResponseWriter, r *http.Request, err error) {
	logger := logging.GetLoggerFromContext(r.Context())

	appErr, ok := apperror.As(err)
	if !ok || appErr.Kind == apperror.KindInternal {
		logger.Error("request failed: internal error", "error", err.Error())
		RespondErrorWithCode(w, "internal server error", apperror.CodeInternalError, http.StatusInternalServerError)
		return
	}

	logger.Warn("request failed", "kind", appErr.Kind.String(), "code", appErr.Code, "error", err.Error())
	RespondJSON(w, ErrorResponse{
		Error:  appErr.Message,
		Code:   appErr.Code,
		Fields: appErr.Fields,
	}, appErr.Kind.HTTPStatus())
}
