package services

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/SscSPs/transactions_app/internal/apperrors"
	"github.com/SscSPs/transactions_app/internal/core/domain"
	portsrepo "github.com/SscSPs/transactions_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/transactions_app/internal/core/ports/services"
	"github.com/SscSPs/transactions_app/internal/platform/metrics"
	"github.com/SscSPs/transactions_app/internal/utils/concurrency"
	"github.com/shopspring/decimal"
)

const (
	DefaultSeedWorkers   = 10
	DefaultSeedChunkSize = 1000

	// generated prices lie in [1.00, 5.00], quantities in [1.00, 100.00]
	minSeedPriceHundredths    = 100
	maxSeedPriceHundredths    = 500
	minSeedQuantityHundredths = 100
	maxSeedQuantityHundredths = 10000
)

type seederService struct {
	BaseService
	writer  portsrepo.TransactionWriter
	metrics *metrics.Metrics
	now     func() time.Time
}

// SeederServiceOption is a functional option for configuring the seeder
type SeederServiceOption func(*seederService)

// WithSeederMetrics counts inserted records.
func WithSeederMetrics(m *metrics.Metrics) SeederServiceOption {
	return func(s *seederService) {
		s.metrics = m
	}
}

// NewSeederService creates a seeder writing through writer.
func NewSeederService(writer portsrepo.TransactionWriter, options ...SeederServiceOption) portssvc.SeederSvc {
	svc := &seederService{
		BaseService: newBaseService("seeder"),
		writer:      writer,
		now:         time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.SeederSvc = (*seederService)(nil)

// SeedTransactions inserts opts.Count generated records in chunks of opts.ChunkSize,
// at most opts.Workers chunks at a time. Chunks written before a failure stay written.
func (s *seederService) SeedTransactions(ctx context.Context, opts portssvc.SeedOptions) (*portssvc.SeedResult, error) {
	if opts.Count < 0 {
		return nil, fmt.Errorf("%w: count must not be negative", apperrors.ErrValidation)
	}
	if opts.Workers == 0 {
		opts.Workers = DefaultSeedWorkers
	}
	if opts.ChunkSize == 0 {
		opts.ChunkSize = DefaultSeedChunkSize
	}
	if opts.Workers < 0 || opts.ChunkSize < 0 {
		return nil, fmt.Errorf("%w: workers and chunk size must be positive", apperrors.ErrValidation)
	}
	if opts.Currency == "" {
		opts.Currency = domain.EGP
	}
	if err := opts.Currency.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}

	chunkSize := int64(opts.ChunkSize)
	chunks := int((opts.Count + chunkSize - 1) / chunkSize)

	s.LogInfo(ctx, "Seeding transactions",
		slog.Int64("count", opts.Count),
		slog.Int("chunks", chunks),
		slog.Int("workers", opts.Workers),
		slog.String("currency", opts.Currency.String()))

	start := time.Now()
	inserted, err := concurrency.FoldBatches(ctx, chunks, opts.Workers,
		func(ctx context.Context, chunk int) (int64, error) {
			offset := int64(chunk) * chunkSize
			size := min(chunkSize, opts.Count-offset)
			batch, err := s.generateBatch(size, opts.Currency)
			if err != nil {
				return 0, err
			}
			n, err := s.writer.SaveTransactionsBatch(ctx, batch)
			s.metrics.RecordSeeded(n)
			return n, err
		},
		int64(0),
		func(total int64, _ int, n int64) (int64, error) {
			return total + n, nil
		},
		func(p concurrency.BatchProgress) {
			if opts.Observer != nil {
				opts.Observer.BatchCompleted(p.Completed, p.Total)
			}
		})
	if err != nil {
		s.LogError(ctx, err, "Failed to seed transactions")
		return nil, fmt.Errorf("failed to seed transactions: %w", err)
	}

	result := &portssvc.SeedResult{Inserted: inserted, Duration: time.Since(start)}

	s.LogInfo(ctx, "Seeding finished",
		slog.Int64("inserted", result.Inserted),
		slog.Duration("duration", result.Duration),
		slog.Float64("records_per_second", result.RecordsPerSecond()))
	return result, nil
}

func (s *seederService) generateBatch(size int64, currency domain.Currency) ([]domain.Transaction, error) {
	now := s.now().UTC()
	batch := make([]domain.Transaction, 0, size)
	for range size {
		txn, err := generateTransaction(currency, now)
		if err != nil {
			return nil, err
		}
		batch = append(batch, txn)
	}
	return batch, nil
}

// generateTransaction draws a random price and quantity; cost is their rounded product,
// so seeded data reports a zero or near-zero difference.
func generateTransaction(currency domain.Currency, now time.Time) (domain.Transaction, error) {
	price, err := domain.MoneyFromDecimal(randomHundredths(minSeedPriceHundredths, maxSeedPriceHundredths), currency)
	if err != nil {
		return domain.Transaction{}, err
	}
	quantity := randomHundredths(minSeedQuantityHundredths, maxSeedQuantityHundredths)
	cost, err := price.Multiply(quantity)
	if err != nil {
		return domain.Transaction{}, err
	}
	return domain.Transaction{
		Cost:        cost,
		Price:       price,
		Quantity:    quantity,
		AuditFields: domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}, nil
}

func randomHundredths(lo, hi int64) decimal.Decimal {
	return decimal.New(lo+rand.Int64N(hi-lo+1), -2)
}
