package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/SscSPs/transactions_app/internal/platform/config"
	"github.com/SscSPs/transactions_app/internal/platform/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version = "dev"
	// cfg is loaded before any command that needs it runs.
	cfg     *config.Config
	rootCmd = &cobra.Command{
		Use:   "txn_backend",
		Short: "Transactions report backend",
		Long: `txn_backend stores transaction records and reports their total cost against
the total of price × quantity, aggregated in parallel chunks.`,
		PersistentPreRunE: initConfig,
		SilenceUsage:      true,
	}
)

func init() {
	// Global flags
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "json", "log format (console, json)")
	rootCmd.PersistentFlags().String("backend", "", "data backend (postgres, sqlite, memory)")

	// Bind flags to viper
	_ = viper.BindPFlag("LOG_LEVEL", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("LOG_FORMAT", rootCmd.PersistentFlags().Lookup("log-format"))
	_ = viper.BindPFlag("DATA_BACKEND", rootCmd.PersistentFlags().Lookup("backend"))

	// Add commands
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(versionCmd())
}

// @title Transactions Report API
// @version 1.0
// @description Stores transaction records and reports cost against price times quantity in fixed-point money.

// @host localhost:8080
// @BasePath /api/v1
func main() {
	// Set up signal handling
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initConfig(_ *cobra.Command, _ []string) error {
	loaded, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Setup(loaded.LogLevel, loaded.LogFormat, os.Stderr); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	cfg = loaded
	slog.Debug("Configuration loaded", slog.String("backend", cfg.DataBackend), slog.String("default_currency", cfg.DefaultCurrency.String()))
	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		// version needs no configuration
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "txn_backend %s\n", version)
		},
	}
}
