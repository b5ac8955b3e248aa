package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/redmonkez12/go-pets-api/internal/apperror"
	"github.com/redmonkez12/go-pets-api/internal/httputil"
	"github.com/redmonkez12/go-pets-api/internal/logging"
	"github.com/redmonkez12/go-pets-api/internal/user"
)

var (
	errMissingAuth       = apperror.New(apperror.KindUnauthorized, apperror.CodeMissingAuth, "missing authentication")
	errInvalidAuthHeader = apperror.New(apperror.KindUnauthorized, apperror.CodeInvalidAuthHeader, "invalid authorization header format")
)

// CurrentUserResolver resolves a bearer access token to its user. *Service implements it.
type CurrentUserResolver interface {
	ResolveCurrentUser(ctx context.Context, accessToken string) (*user.User, error)
}

// Middleware handles authentication for protected routes
type Middleware struct {
	resolver CurrentUserResolver
}

func NewMiddleware(resolver CurrentUserResolver) *Middleware {
	return &Middleware{resolver: resolver}
}

// RequireAuth is a middleware that validates the access token and stores the
// current user in the request context
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := bearerToken(r)
		if err != nil {
			w.Header().Set("WWW-Authenticate", "Bearer")
			httputil.RespondError(w, r, err)
			return
		}

		current, err := m.resolver.ResolveCurrentUser(r.Context(), token)
		if err != nil {
			if apperror.KindOf(err) == apperror.KindUnauthorized {
				w.Header().Set("WWW-Authenticate", "Bearer")
			}
			httputil.RespondError(w, r, err)
			return
		}

		logger := logging.GetLoggerFromContext(r.Context()).WithFields(map[string]any{"user_id": current.ID})
		ctx := user.NewContext(r.Context(), current)
		ctx = logging.WithLogger(ctx, logger)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", errMissingAuth
	}

	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errInvalidAuthHeader
	}
	return parts[1], nil
}
