package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PoolOption adjusts the parsed pool configuration.
type PoolOption func(*pgxpool.Config)

// WithMinMaxConns raises the pool's connection limit to at least n.
// Each concurrent chunk job of a report holds one connection while it scans.
func WithMinMaxConns(n int32) PoolOption {
	return func(c *pgxpool.Config) {
		if c.MaxConns < n {
			c.MaxConns = n
		}
	}
}

// NewPgxPool creates a PostgreSQL connection pool and pings it.
func NewPgxPool(ctx context.Context, databaseURL string, options ...PoolOption) (*pgxpool.Pool, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("database URL cannot be empty")
	}

	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config from URL: %w", err)
	}
	for _, option := range options {
		option(config)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	slog.Info("Connected to PostgreSQL", slog.Int("max_conns", int(config.MaxConns)))
	return pool, nil
}

// ClosePgxPool closes the PostgreSQL connection pool.
func ClosePgxPool(pool *pgxpool.Pool) {
	if pool != nil {
		pool.Close()
		slog.Info("PostgreSQL connection pool closed")
	}
}
