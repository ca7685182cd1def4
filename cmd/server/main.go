package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/JonathanThomaz/catalogo-produtos/internal/domain"
	"github.com/JonathanThomaz/catalogo-produtos/internal/repository"
	"github.com/JonathanThomaz/catalogo-produtos/internal/schema"
	"github.com/JonathanThomaz/catalogo-produtos/internal/service"
	httpTransport "github.com/JonathanThomaz/catalogo-produtos/internal/transport/http"
	"github.com/hashicorp/go-hclog"
	"github.com/nicholasjackson/env"
)

// Environment variables
var (
	bindAddress = env.String("BIND_ADDRESS", false,
		":3000", "Bind address for the server")
	logLevel = env.String("LOG_LEVEL", false,
		"info", "Log output level for the server [trace, debug, info, warn, error]")
	databaseDriver = env.String("DATABASE_DRIVER", false,
		repository.DriverPostgres, "Database driver [postgres, sqlite]")
	databaseURL = env.String("DATABASE_URL", false,
		"host=localhost user=postgres password=postgres dbname=catalogo port=5432 sslmode=disable",
		"Database connection string")
	corsOrigins = env.String("CORS_ORIGINS", false,
		"*", "Comma separated list of allowed CORS origins")
	seedData = env.String("SEED_DATA", false,
		"false", "Replace the catalog with the demo fixtures on startup")
)

// config is the parsed form of the environment variables.
type config struct {
	BindAddress    string
	DatabaseDriver string
	DatabaseURL    string
	CORSOrigins    []string
	Seed           bool
}

func main() {
	if err := env.Parse(); err != nil {
		hclog.Default().Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	// Initialize the logger
	logger := hclog.New(&hclog.LoggerOptions{
		Name:  "catalogo-produtos",
		Level: hclog.LevelFromString(*logLevel),
	})

	seed, err := strconv.ParseBool(*seedData)
	if err != nil {
		logger.Error("Invalid SEED_DATA", "value", *seedData, "error", err)
		os.Exit(1)
	}

	cfg := config{
		BindAddress:    *bindAddress,
		DatabaseDriver: *databaseDriver,
		DatabaseURL:    *databaseURL,
		CORSOrigins:    strings.Split(*corsOrigins, ","),
		Seed:           seed,
	}

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("Server stopped", "error", err)
		stop()
		os.Exit(1)
	}
}

// run serves the API until ctx is cancelled. The database handle is opened
// and closed here, so every return path releases it.
func run(ctx context.Context, cfg config, logger hclog.Logger) error {
	db, err := repository.Open(cfg.DatabaseDriver, cfg.DatabaseURL, logger.Named("repository"))
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() {
		if err := repository.Close(db); err != nil {
			logger.Error("Error closing database", "error", err)
		}
	}()

	if cfg.Seed {
		seedCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		n, err := repository.Seed(seedCtx, db)
		cancel()
		if err != nil {
			return fmt.Errorf("seed database: %w", err)
		}
		logger.Info("Seeded database", "products", n)
	}

	prodRepo := repository.NewProductRepository(db)

	ps := service.NewProductService(prodRepo, logger.Named("product-service"))

	schemas := schema.NewSchemas(domain.NewValidation())

	ph := httpTransport.NewProductHandler(ps, logger.Named("http-handler"))

	cors := httpTransport.DefaultCORSConfig()
	cors.AllowedOrigins = cfg.CORSOrigins

	router := httpTransport.NewRouter(ph, schemas, logger.Named("http"), cors)

	server := &http.Server{
		Addr:         cfg.BindAddress,
		Handler:      router,
		ErrorLog:     logger.StandardLogger(&hclog.StandardLoggerOptions{InferLevels: true}),
		IdleTimeout:  120 * time.Second,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "bind_address", cfg.BindAddress, "api", httpTransport.APIBasePath)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutting down server")
	case err := <-serverErr:
		return fmt.Errorf("serve: %w", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}
