package services

import (
	"context"
	"time"

	"github.com/SscSPs/transactions_app/internal/core/domain"
	"github.com/SscSPs/transactions_app/internal/dto"
)

// TransactionReaderSvc defines read operations for transaction records
type TransactionReaderSvc interface {
	// GetTransaction retrieves one record by id.
	GetTransaction(ctx context.Context, id int64) (*domain.Transaction, error)

	// ListTransactions returns a page of records in id order and the token of the next page, if any.
	ListTransactions(ctx context.Context, params dto.ListTransactionsParams) ([]domain.Transaction, *string, error)
}

// TransactionWriterSvc defines write operations for transaction records
type TransactionWriterSvc interface {
	// CreateTransaction parses and stores one record.
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error)
}

// TransactionSvcFacade combines all transaction-related service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}

// SeedOptions controls fake data generation.
type SeedOptions struct {
	Count     int64
	Workers   int
	ChunkSize int
	Currency  domain.Currency
	Observer  ProgressObserver
}

// SeedResult summarizes a seeding run.
type SeedResult struct {
	Inserted int64
	Duration time.Duration
}

// RecordsPerSecond is the insert throughput of the run.
func (r SeedResult) RecordsPerSecond() float64 {
	if r.Duration <= 0 {
		return 0
	}
	return float64(r.Inserted) / r.Duration.Seconds()
}

// SeederSvc fills the record store with generated transactions.
type SeederSvc interface {
	SeedTransactions(ctx context.Context, opts SeedOptions) (*SeedResult, error)
}

// HealthSvc reports readiness of the backing store.
type HealthSvc interface {
	CheckHealth(ctx context.Context) error
}
