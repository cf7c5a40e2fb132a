package main

import (
	"fmt"
	"log/slog"

	"github.com/SscSPs/transactions_app/internal/cli"
	"github.com/SscSPs/transactions_app/internal/core/domain"
	portssvc "github.com/SscSPs/transactions_app/internal/core/ports/services"
	"github.com/SscSPs/transactions_app/internal/core/services"
	"github.com/SscSPs/transactions_app/internal/middleware"
	"github.com/SscSPs/transactions_app/internal/repositories"
	"github.com/spf13/cobra"
)

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the store with generated transactions",
		Long: `Generate random transaction records (price 1.00 to 5.00, quantity 1.00 to 100.00,
cost equal to price × quantity) and insert them in concurrent batches.`,
		RunE: runSeed,
	}

	// Flags
	cmd.Flags().Int64("count", 100000, "number of records to generate")
	cmd.Flags().Int("workers", services.DefaultSeedWorkers, "maximum concurrent insert jobs")
	cmd.Flags().Int("chunk-size", services.DefaultSeedChunkSize, "records per insert job")
	cmd.Flags().String("currency", "", "currency of the generated records (default: DEFAULT_CURRENCY)")

	return cmd
}

func runSeed(cmd *cobra.Command, _ []string) error {
	ctx := middleware.WithLogger(cmd.Context(), slog.Default().With(slog.String("command", "seed")))
	flags := cmd.Flags()

	count, _ := flags.GetInt64("count")
	workers, _ := flags.GetInt("workers")
	chunkSize, _ := flags.GetInt("chunk-size")
	currencyCode, _ := flags.GetString("currency")

	currency := cfg.DefaultCurrency
	if currencyCode != "" {
		parsed, err := domain.ParseCurrency(currencyCode)
		if err != nil {
			return err
		}
		currency = parsed
	}

	repos, closeRepos, err := repositories.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeRepos()

	container, err := services.NewServiceContainer(cfg, repos)
	if err != nil {
		return err
	}

	bar := cli.NewProgressBar(cmd.ErrOrStderr(), "Seeding transactions")
	result, err := container.Seeder.SeedTransactions(ctx, portssvc.SeedOptions{
		Count:     count,
		Workers:   workers,
		ChunkSize: chunkSize,
		Currency:  currency,
		Observer:  bar,
	})
	bar.Finish()
	if err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.RenderSeedSummary(result))
	return nil
}
