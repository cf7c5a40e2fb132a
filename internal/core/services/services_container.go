package services

import (
	"fmt"

	portsrepo "github.com/SscSPs/transactions_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/transactions_app/internal/core/ports/services"
	"github.com/SscSPs/transactions_app/internal/platform/config"
	"github.com/SscSPs/transactions_app/internal/platform/metrics"
)

type containerDeps struct {
	metrics   *metrics.Metrics
	publisher portssvc.ReportPublisher
}

// ContainerOption supplies optional infrastructure to the services.
type ContainerOption func(*containerDeps)

// WithMetrics wires metrics into every service that records any.
func WithMetrics(m *metrics.Metrics) ContainerOption {
	return func(d *containerDeps) {
		d.metrics = m
	}
}

// WithPublisher announces completed reports through publisher.
func WithPublisher(publisher portssvc.ReportPublisher) ContainerOption {
	return func(d *containerDeps) {
		d.publisher = publisher
	}
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, options ...ContainerOption) (*portssvc.ServiceContainer, error) {
	deps := &containerDeps{}
	for _, option := range options {
		option(deps)
	}

	reportOpts := []ReportServiceOption{
		WithDefaultReportCurrency(cfg.DefaultCurrency),
		WithReportMetrics(deps.metrics),
	}
	if deps.publisher != nil {
		reportOpts = append(reportOpts, WithReportPublisher(deps.publisher))
	}
	reporting, err := NewReportService(repos.TransactionRepo, AggregationConfig{
		ChunkSize:     cfg.Report.ChunkSize,
		MaxWorkers:    cfg.Report.MaxWorkers,
		InnerPageSize: cfg.Report.PageSize,
	}, reportOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create report service: %w", err)
	}

	return &portssvc.ServiceContainer{
		Transaction: NewTransactionService(repos.TransactionRepo, WithDefaultTransactionCurrency(cfg.DefaultCurrency)),
		Seeder:      NewSeederService(repos.TransactionRepo, WithSeederMetrics(deps.metrics)),
		Reporting:   reporting,
		Health:      NewHealthService(repos.TransactionRepo),
	}, nil
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.TransactionSvcFacade = (*transactionService)(nil)
	_ portssvc.ReportingService     = (*reportService)(nil)
	_ portssvc.HealthSvc            = (*healthService)(nil)
)
