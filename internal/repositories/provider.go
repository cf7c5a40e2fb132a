package repositories

import (
	"context"
	"fmt"
	"log/slog"

	portsrepo "github.com/SscSPs/transactions_app/internal/core/ports/repositories"
	"github.com/SscSPs/transactions_app/internal/platform/config"
	"github.com/SscSPs/transactions_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/transactions_app/internal/repositories/database/sqlite"
	"github.com/SscSPs/transactions_app/internal/repositories/memory"
	"github.com/SscSPs/transactions_app/pkg/database"
)

// Open connects the backend named by cfg.DataBackend, migrates it when configured,
// and returns its repositories with a function that releases the connections.
func Open(ctx context.Context, cfg *config.Config) (portsrepo.RepositoryProvider, func(), error) {
	switch cfg.DataBackend {
	case config.BackendPostgres:
		// one connection per chunk job plus headroom for counting and HTTP reads
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, database.WithMinMaxConns(int32(cfg.Report.MaxWorkers)+2))
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if cfg.RunMigrations {
			if err := pgsql.RunMigrations(pool); err != nil {
				database.ClosePgxPool(pool)
				return portsrepo.RepositoryProvider{}, nil, err
			}
			slog.Info("Database migrations applied", slog.String("backend", cfg.DataBackend))
		}
		return pgsql.NewRepositoryProvider(pool), func() { database.ClosePgxPool(pool) }, nil

	case config.BackendSQLite:
		db, err := database.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		if cfg.RunMigrations {
			if err := sqlite.RunMigrations(database.SQLiteDSN(cfg.SQLitePath)); err != nil {
				db.Close()
				return portsrepo.RepositoryProvider{}, nil, err
			}
			slog.Info("Database migrations applied", slog.String("backend", cfg.DataBackend))
		}
		return sqlite.NewRepositoryProvider(db), func() { db.Close() }, nil

	case config.BackendMemory:
		return memory.NewRepositoryProvider(), func() {}, nil
	}
	return portsrepo.RepositoryProvider{}, nil, fmt.Errorf("unknown data backend %q", cfg.DataBackend)
}

// Migrate applies pending schema migrations without keeping a connection open.
func Migrate(ctx context.Context, cfg *config.Config) error {
	switch cfg.DataBackend {
	case config.BackendPostgres:
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer database.ClosePgxPool(pool)
		return pgsql.RunMigrations(pool)
	case config.BackendSQLite:
		db, err := database.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return err
		}
		db.Close()
		return sqlite.RunMigrations(database.SQLiteDSN(cfg.SQLitePath))
	case config.BackendMemory:
		return nil
	}
	return fmt.Errorf("unknown data backend %q", cfg.DataBackend)
}
