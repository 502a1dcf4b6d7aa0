// Package cli implements the prancheta subcommands and the shared startup
// sequence they all run through (.env, logging, config, storage).
package cli

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"

	"prancheta/internal/config"
	"prancheta/internal/log"
	"prancheta/internal/services"
	"prancheta/internal/storage"
)

// bootstrap runs the startup sequence shared by every subcommand: optional
// .env file, logger, validated config.
func bootstrap() (*config.Config, *log.Logger, error) {
	// .env is optional; absence is not an error.
	_ = godotenv.Load()

	cfg := config.Load()
	logger := log.Setup(cfg.LogLevel, cfg.LogFormat)
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

// openTracker opens the state database and loads the tracker from it. The
// returned closer releases the database handle.
func openTracker(ctx context.Context, cfg *config.Config) (*services.Tracker, func() error, error) {
	store, err := storage.New(cfg.SQLiteDBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open state database %s: %w", cfg.SQLiteDBPath, err)
	}
	return services.NewTracker(ctx, store, cfg.PricePerPosition), store.Close, nil
}
