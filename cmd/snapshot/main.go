// Command snapshot copies the published directory CSV into object storage.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"

	"quilthub/internal/config"
	"quilthub/internal/logging"
	"quilthub/internal/snapshot"
	"quilthub/internal/source"
	"quilthub/internal/storage"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "snapshot: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.Source.URL == "" {
		return errors.New("SOURCE_URL is required")
	}
	if !cfg.MinIO.Enabled() {
		return errors.New("MINIO_ENDPOINT is required")
	}

	log, err := logging.New(logging.Config{Component: "snapshot", Level: cfg.LogLevel, Location: cfg.Location()})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src, err := source.NewHTTP(source.HTTPOptions{
		URL:      cfg.Source.URL,
		Timeout:  cfg.Source.Timeout,
		MaxBytes: cfg.Source.MaxBytes,
	})
	if err != nil {
		return err
	}

	store, err := storage.NewMinIO(ctx, cfg.MinIO)
	if err != nil {
		return fmt.Errorf("init object storage: %w", err)
	}

	res, err := snapshot.Run(ctx, src, store, cfg.Source.ObjectKey, log)
	if err != nil {
		log.Error("snapshot_failed", zap.Error(err))
		return err
	}
	fmt.Printf("stored %d records at %s\n", res.Records, res.Object.Key)
	return nil
}
