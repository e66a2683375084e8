package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/reconciliation_engine/internal/adapters/database/memory"
	"github.com/SscSPs/reconciliation_engine/internal/adapters/database/pgsql"
	"github.com/SscSPs/reconciliation_engine/internal/adapters/database/sqlite"
	portsrepo "github.com/SscSPs/reconciliation_engine/internal/core/ports/repositories"
	"github.com/SscSPs/reconciliation_engine/internal/platform/config"
	"github.com/SscSPs/reconciliation_engine/pkg/database"
)

// Open builds the TransactionStore selected by cfg.StoreDriver, applying migrations first
// when cfg.RunMigrations is set. The returned func releases the underlying connections.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.TransactionStore, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreDriverPostgres:
		if cfg.RunMigrations {
			logger.Info("Running database migrations...")
			if err := database.MigratePostgres(cfg.DatabaseURL); err != nil {
				return nil, nil, fmt.Errorf("failed to apply postgres migrations: %w", err)
			}
		}
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, database.PoolOptions{
			MaxConns: cfg.DBMaxConns,
			Ping:     cfg.EnableDBCheck,
		}, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize database pool: %w", err)
		}
		logger.Info("Database connection pool established.")
		return pgsql.NewStore(pool), func() { database.ClosePgxPool(pool, logger) }, nil

	case config.StoreDriverSQLite:
		db, err := database.NewSQLiteDB(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		if cfg.RunMigrations {
			logger.Info("Running database migrations...", slog.String("path", cfg.SQLitePath))
			if err := database.MigrateSQLite(db); err != nil {
				db.Close()
				return nil, nil, fmt.Errorf("failed to apply sqlite migrations: %w", err)
			}
		}
		store := sqlite.NewStore(db)
		return store, func() {
			if err := store.Close(); err != nil {
				logger.Error("Error closing sqlite database", slog.String("error", err.Error()))
			}
		}, nil

	case config.StoreDriverMemory:
		logger.Warn("Using the in-memory store, data is lost on exit")
		return memory.NewStore(), func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}
