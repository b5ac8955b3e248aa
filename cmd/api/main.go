package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/redmonkez12/go-pets-api/docs" // Swagger docs
	"github.com/redmonkez12/go-pets-api/internal/auth"
	"github.com/redmonkez12/go-pets-api/internal/config"
	"github.com/redmonkez12/go-pets-api/internal/database"
	"github.com/redmonkez12/go-pets-api/internal/database/migrations"
	httpServer "github.com/redmonkez12/go-pets-api/internal/http"
	"github.com/redmonkez12/go-pets-api/internal/logging"
	"github.com/redmonkez12/go-pets-api/internal/metrics"
	"github.com/redmonkez12/go-pets-api/internal/password"
	"github.com/redmonkez12/go-pets-api/internal/pet"
	"github.com/redmonkez12/go-pets-api/internal/user"
)

// @title           Pets API
// @version         1.0
// @description     CRUD API template with users, pets and access/refresh token authentication.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.

func main() {
	if err := run(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	logger := logging.NewLogger(cfg.Server.IsDevelopment())
	logger.Info("starting application",
		"env", cfg.Server.Env,
		"port", cfg.Server.Port,
		"db_driver", cfg.Database.Driver,
		"token_format", cfg.Auth.TokenFormat,
	)

	ctx := context.Background()

	if cfg.Database.AutoMigrate {
		if err := migrate(cfg.Database, logger); err != nil {
			return err
		}
	}

	// Initialize database connection
	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	m := metrics.New()
	m.RegisterDB(db.DB, cfg.Database.DBName)

	tokenService, err := newTokenService(cfg.Auth)
	if err != nil {
		return fmt.Errorf("failed to initialize token service: %w", err)
	}

	hasher := password.NewHasher(password.DefaultParams)

	// Initialize repositories
	userRepo := user.NewRepository(db)
	petRepo := pet.NewRepository(db)

	// Initialize services
	authService := auth.NewService(
		userRepo,
		hasher,
		tokenService,
		logger,
		cfg.Auth.AccessTokenDuration,
		cfg.Auth.RefreshTokenDuration,
	)
	userService := user.NewService(userRepo, hasher, logger)
	petService := pet.NewService(petRepo, logger)

	// Initialize router
	router := httpServer.NewRouter(cfg, httpServer.Handlers{
		Auth:           auth.NewHandler(authService),
		AuthMiddleware: auth.NewMiddleware(authService),
		Users:          user.NewHandler(userService),
		Pets:           pet.NewHandler(petService),
	}, m, logger)

	// Initialize HTTP server
	server := httpServer.NewServer(
		":"+cfg.Server.Port,
		router,
		cfg.Server.ReadTimeout,
		cfg.Server.WriteTimeout,
		logger,
	)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	// Wait for interrupt signal or server error
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		logger.Info("received signal", "signal", sig.String())

		// Graceful shutdown with timeout
		ctx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// newTokenService selects the token implementation configured by TOKEN_FORMAT
func newTokenService(cfg config.AuthConfig) (auth.TokenService, error) {
	switch cfg.TokenFormat {
	case config.TokenFormatPaseto:
		svc, err := auth.NewPasetoService(cfg.PasetoKey)
		if err != nil {
			return nil, err
		}
		return svc, nil
	case config.TokenFormatJWT:
		svc, err := auth.NewJWTService(cfg.SecretKey)
		if err != nil {
			return nil, err
		}
		return svc, nil
	default:
		return nil, fmt.Errorf("unsupported token format %q", cfg.TokenFormat)
	}
}

// migrate applies pending migrations over a dedicated connection
func migrate(cfg config.DatabaseConfig, logger *logging.Logger) error {
	migrator, err := migrations.NewFromURL(cfg.URL())
	if err != nil {
		return fmt.Errorf("failed to initialize migrations: %w", err)
	}
	defer migrator.Close()
	migrator.SetLogger(logger)

	if err := migrator.Up(); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, _, err := migrator.Version()
	if err != nil {
		return err
	}
	logger.Info("database schema up to date", "version", version)
	return nil
}
