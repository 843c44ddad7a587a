package main

import (
	"context"
	"fmt"
	"log/slog"

	portsrepo "github.com/SscSPs/bank_account_app/internal/core/ports/repositories"
	"github.com/SscSPs/bank_account_app/internal/platform/config"
	"github.com/SscSPs/bank_account_app/internal/repositories/database/boltdb"
	"github.com/SscSPs/bank_account_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/bank_account_app/internal/repositories/memory"
	"github.com/SscSPs/bank_account_app/pkg/database"
)

// openRepositories builds the repository provider for the configured storage driver.
func openRepositories(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, error) {
	switch cfg.StorageDriver {
	case config.StorageMemory:
		logger.Warn("Using in-memory storage; state is lost on restart")
		return memory.NewRepositoryProvider(), nil

	case config.StorageBolt:
		logger.Info("Opening bolt storage", slog.String("path", cfg.BoltPath))
		return boltdb.NewRepositoryProvider(cfg.BoltPath)

	case config.StoragePostgres:
		logger.Info("Running database migrations...", slog.String("source", cfg.MigrationsURL))
		if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsURL); err != nil {
			return portsrepo.RepositoryProvider{}, err
		}
		dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return portsrepo.RepositoryProvider{}, err
		}
		return pgsql.NewRepositoryProvider(dbPool), nil
	}
	return portsrepo.RepositoryProvider{}, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
}
