package main

import (
	"fmt"
	"log/slog"

	"github.com/SscSPs/transactions_app/internal/repositories"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long: `Apply the embedded schema migrations to the configured backend.
The in-memory backend has no schema and is left untouched.`,
		RunE: runMigrate,
	}
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	slog.Info("Running database migrations...", slog.String("backend", cfg.DataBackend))

	if err := repositories.Migrate(cmd.Context(), cfg); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	slog.Info("Database migrations completed successfully")
	return nil
}
