package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"quilthub/internal/config"
	"quilthub/internal/database"
	"quilthub/internal/database/migration"
	handlers "quilthub/internal/http/handler"
	"quilthub/internal/http/middleware"
	"quilthub/internal/logging"
	"quilthub/internal/otel"
	"quilthub/internal/repository"
	"quilthub/internal/repository/postgres"
	"quilthub/internal/resolver"
	"quilthub/internal/service"
	"quilthub/internal/source"
	"quilthub/internal/storage"
)

const shutdownTimeout = 10 * time.Second

// @title TheQuiltHub Share API
// @version 1.0
// @description Profile lookups behind the TheQuiltHub share pages.
// @BasePath /
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "web: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logging.New(logging.Config{Component: "web", Level: cfg.LogLevel, Location: cfg.Location()})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			log.Warn("tracing_shutdown_failed", zap.Error(err))
		}
	}()

	// Lookup statistics are optional; without DB_HOST the service records nothing.
	var db *sql.DB
	var lookups repository.LookupRepository = repository.Noop{}
	if cfg.Database.Enabled() {
		db, err = database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer db.Close()

		if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}
		lookups = postgres.NewLookupPostgres(db)
	}

	src, err := newSource(ctx, cfg)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	profiles, err := service.NewProfileService(resolver.New(src), lookups, log, reg)
	if err != nil {
		return fmt.Errorf("init profile service: %w", err)
	}

	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler(log),
		DisableStartupMessage: true,
	})

	// Register global middleware
	app.Use(otelfiber.Middleware())
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	app.Use(promMiddleware.Handler())
	app.Use(middleware.Logger(log))

	handlers.RegisterRoutes(app, handlers.Dependencies{
		DB:       db,
		Profiles: profiles,
		Site:     cfg.Site,
		Gatherer: reg,
	})

	addr := ":" + cfg.Port
	errCh := make(chan error, 1)
	go func() {
		log.Info("server_listening", zap.String("addr", addr), zap.String("source_backend", cfg.Source.Backend))
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	log.Info("server_shutting_down")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func newSource(ctx context.Context, cfg *config.AppConfig) (source.Source, error) {
	switch cfg.Source.Backend {
	case config.BackendObject:
		store, err := storage.NewMinIO(ctx, cfg.MinIO)
		if err != nil {
			return nil, fmt.Errorf("init object storage: %w", err)
		}
		return source.NewObject(store, cfg.Source.ObjectKey, cfg.Source.MaxBytes), nil
	case config.BackendHTTP:
		src, err := source.NewHTTP(source.HTTPOptions{
			URL:      cfg.Source.URL,
			Timeout:  cfg.Source.Timeout,
			MaxBytes: cfg.Source.MaxBytes,
		})
		if err != nil {
			return nil, fmt.Errorf("init http source: %w", err)
		}
		return src, nil
	default:
		return nil, errors.New("unknown source backend " + cfg.Source.Backend)
	}
}
