package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/redmonkez12/go-pets-api/internal/apperror"
	"github.com/redmonkez12/go-pets-api/internal/auth"
	"github.com/redmonkez12/go-pets-api/internal/config"
	"github.com/redmonkez12/go-pets-api/internal/httputil"
	"github.com/redmonkez12/go-pets-api/internal/logging"
	"github.com/redmonkez12/go-pets-api/internal/metrics"
	"github.com/redmonkez12/go-pets-api/internal/pet"
	"github.com/redmonkez12/go-pets-api/internal/user"
)

// Handlers groups the resource handlers mounted by NewRouter.
type Handlers struct {
	Auth           *auth.Handler
	AuthMiddleware *auth.Middleware
	Users          *user.Handler
	Pets           *pet.Handler
}

// NewRouter creates and configures the HTTP router
func NewRouter(cfg *config.Config, h Handlers, m *metrics.Metrics, logger *logging.Logger) *chi.Mux {
	r := chi.NewRouter()

	// CORS - must be first
	if len(cfg.Server.TrustedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.Server.TrustedOrigins,
			AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			ExposedHeaders:   []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           300, // 5 minutes
		}))
	}

	// Global middleware
	r.Use(SecurityHeaders(!cfg.Server.IsDevelopment()))
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.RequestLogger(logger))
	r.Use(m.InstrumentHandler)
	r.Use(middleware.Compress(5))

	r.NotFound(handleNotFound)
	r.MethodNotAllowed(handleMethodNotAllowed)

	// Public routes
	r.Get("/health", handleHealth)
	r.Handle("/metrics", m.Handler())

	// Swagger UI - only in development
	if cfg.Server.IsDevelopment() {
		logger.Info("swagger UI enabled at /swagger/*")
		r.Get("/swagger/*", httpSwagger.WrapHandler)
	}

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Auth.Register)
		r.Post("/access-token", h.Auth.AccessToken)
		r.Post("/refresh-token", h.Auth.RefreshToken)
	})

	// Protected routes (require authentication)
	r.Route("/users", func(r chi.Router) {
		r.Use(h.AuthMiddleware.RequireAuth)
		r.Get("/me", h.Users.GetMe)
		r.Delete("/me", h.Users.DeleteMe)
		r.Post("/reset-password", h.Users.ResetPassword)
	})

	r.Route("/pets", func(r chi.Router) {
		r.Use(h.AuthMiddleware.RequireAuth)
		r.Post("/create", h.Pets.Create)
		r.Get("/me", h.Pets.ListMine)
	})

	return r
}

// handleHealth is a simple health check endpoint
// @Summary      Health check
// @Description  Check if the API is running
// @Tags         health
// @Produce      json
// @Success      200 {object} map[string]string
// @Router       /health [get]
func handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, map[string]string{"status": "api is running"}, http.StatusOK)
}

func handleNotFound(w http.ResponseWriter, r *http.Request) {
	httputil.RespondErrorWithCode(w, "resource not found", apperror.CodeNotFound, http.StatusNotFound)
}

func handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	httputil.RespondErrorWithCode(w, "method not allowed", apperror.CodeMethodNotAllowed, http.StatusMethodNotAllowed)
}
