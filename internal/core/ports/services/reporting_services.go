package services

import (
	"context"

	"github.com/SscSPs/transactions_app/internal/core/domain"
)

// ReportOptions parameterizes one report run. Zero values fall back to the configured defaults.
type ReportOptions struct {
	Currency domain.Currency
	// Count overrides the record count read from the store.
	Count      *int64
	ChunkSize  int
	MaxWorkers int
	Observer   ProgressObserver
}

// ReportingService defines operations for generating transaction reports
type ReportingService interface {
	// GenerateReport sums cost and price × quantity over every record, chunked and in parallel.
	GenerateReport(ctx context.Context, opts ReportOptions) (*domain.AggregationResult, error)
}

// ReportPublisher announces completed reports to other systems.
type ReportPublisher interface {
	PublishReport(ctx context.Context, result *domain.AggregationResult) error
}
