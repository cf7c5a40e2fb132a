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
	"github.com/SscSPs/transactions_app/internal/utils/i18n"
	"github.com/spf13/cobra"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Aggregate all transactions and print the totals",
		Long: `Sum cost and price × quantity over every stored transaction in parallel chunks
and print both totals, their difference and how the work was split.`,
		RunE: runReport,
	}

	// Flags
	cmd.Flags().Int64("count", 0, "aggregate only the first N records (default: all stored records)")
	cmd.Flags().Int("chunk-size", 0, "records per chunk job (default: REPORT_CHUNK_SIZE)")
	cmd.Flags().Int("workers", 0, "maximum concurrent chunk jobs (default: REPORT_MAX_WORKERS)")
	cmd.Flags().String("currency", "", "report currency (default: DEFAULT_CURRENCY)")
	cmd.Flags().String("locale", string(i18n.DefaultLocale), "currency label locale (en, ar)")

	return cmd
}

func runReport(cmd *cobra.Command, _ []string) error {
	ctx := middleware.WithLogger(cmd.Context(), slog.Default().With(slog.String("command", "report")))
	flags := cmd.Flags()

	chunkSize, _ := flags.GetInt("chunk-size")
	workers, _ := flags.GetInt("workers")
	currencyCode, _ := flags.GetString("currency")
	localeName, _ := flags.GetString("locale")

	locale, err := i18n.ParseLocale(localeName)
	if err != nil {
		return err
	}

	opts := portssvc.ReportOptions{ChunkSize: chunkSize, MaxWorkers: workers}
	if flags.Changed("count") {
		count, _ := flags.GetInt64("count")
		opts.Count = &count
	}
	if currencyCode != "" {
		currency, err := domain.ParseCurrency(currencyCode)
		if err != nil {
			return err
		}
		opts.Currency = currency
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

	bar := cli.NewProgressBar(cmd.ErrOrStderr(), "Aggregating chunks")
	opts.Observer = bar

	result, err := container.Reporting.GenerateReport(ctx, opts)
	bar.Finish()
	if err != nil {
		return fmt.Errorf("report failed: %w", err)
	}

	middleware.GetLoggerFromCtx(ctx).Debug("Report finished", slog.Int64("records", result.RecordsProcessed), slog.Duration("duration", result.Stats.Duration))
	fmt.Fprintln(cmd.OutOrStdout(), cli.TitleStyle.Render(cli.ChartIcon+" Transactions Report"))
	fmt.Fprintln(cmd.OutOrStdout(), cli.RenderReport(result, i18n.NewLabeler(locale)))
	return nil
}
