package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/transactions_app/internal/apperrors"
	"github.com/SscSPs/transactions_app/internal/core/domain"
	portsrepo "github.com/SscSPs/transactions_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/transactions_app/internal/core/ports/services"
	"github.com/SscSPs/transactions_app/internal/platform/metrics"
)

// reportService implements the ReportingService interface
type reportService struct {
	BaseService
	reader          portsrepo.TransactionReader
	cfg             AggregationConfig
	defaultCurrency domain.Currency
	publisher       portssvc.ReportPublisher
	metrics         *metrics.Metrics
}

// ReportServiceOption is a functional option for configuring the report service
type ReportServiceOption func(*reportService)

// WithReportPublisher announces every successful report through publisher.
func WithReportPublisher(publisher portssvc.ReportPublisher) ReportServiceOption {
	return func(s *reportService) {
		s.publisher = publisher
	}
}

// WithReportMetrics records report and chunk metrics.
func WithReportMetrics(m *metrics.Metrics) ReportServiceOption {
	return func(s *reportService) {
		s.metrics = m
	}
}

// WithDefaultReportCurrency sets the currency used when a request names none.
func WithDefaultReportCurrency(c domain.Currency) ReportServiceOption {
	return func(s *reportService) {
		s.defaultCurrency = c
	}
}

// NewReportService creates a new report service with the provided options
func NewReportService(reader portsrepo.TransactionReader, cfg AggregationConfig, options ...ReportServiceOption) (portssvc.ReportingService, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	svc := &reportService{
		BaseService:     newBaseService("report"),
		reader:          reader,
		cfg:             cfg,
		defaultCurrency: domain.EGP,
	}

	// Apply all options
	for _, option := range options {
		option(svc)
	}

	if err := svc.defaultCurrency.Validate(); err != nil {
		return nil, fmt.Errorf("default report currency: %w", err)
	}
	return svc, nil
}

// Ensure reportService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportService)(nil)

// GenerateReport counts the records (unless a count is given) and aggregates them.
func (s *reportService) GenerateReport(ctx context.Context, opts portssvc.ReportOptions) (*domain.AggregationResult, error) {
	currency := opts.Currency
	if currency == "" {
		currency = s.defaultCurrency
	}
	if err := currency.Validate(); err != nil {
		return nil, err
	}

	cfg := s.cfg
	if opts.ChunkSize != 0 {
		cfg.ChunkSize = opts.ChunkSize
	}
	if opts.MaxWorkers != 0 {
		cfg.MaxWorkers = opts.MaxWorkers
	}
	aggregator, err := NewChunkAggregator(s.reader, cfg,
		WithProgressObserver(opts.Observer),
		WithAggregationMetrics(s.metrics))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}

	totalCount, err := s.resolveCount(ctx, opts.Count)
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Generating transactions report",
		slog.Int64("total_count", totalCount),
		slog.Int("chunk_size", cfg.ChunkSize),
		slog.Int("max_workers", cfg.MaxWorkers),
		slog.String("currency", currency.String()))

	start := time.Now()
	result, err := aggregator.Aggregate(ctx, totalCount, currency)
	s.metrics.RecordReport(currency.String(), err, time.Since(start))
	if err != nil {
		s.LogError(ctx, err, "Failed to generate transactions report", slog.Int64("total_count", totalCount))
		return nil, err
	}

	s.LogInfo(ctx, "Transactions report generated successfully",
		slog.Int64("records_processed", result.RecordsProcessed),
		slog.String("total_cost", result.TotalCost.String()),
		slog.String("total_price_times_quantity", result.TotalPriceTimesQuantity.String()),
		slog.String("difference", result.Difference.String()),
		slog.Duration("duration", result.Stats.Duration))

	s.publish(ctx, result)
	return result, nil
}

func (s *reportService) resolveCount(ctx context.Context, override *int64) (int64, error) {
	if override != nil {
		if *override < 0 {
			return 0, fmt.Errorf("%w: count must not be negative", apperrors.ErrValidation)
		}
		return *override, nil
	}
	count, err := s.reader.CountTransactions(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to count transactions")
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}

// publish never fails the report; the result is already computed.
func (s *reportService) publish(ctx context.Context, result *domain.AggregationResult) {
	if s.publisher == nil {
		return
	}
	err := s.publisher.PublishReport(ctx, result)
	s.metrics.RecordPublish(err)
	if err != nil {
		s.LogWarn(ctx, "Failed to publish report completed event", slog.String("error", err.Error()))
	}
}
