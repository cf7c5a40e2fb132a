package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/transactions_app/internal/apperrors"
	"github.com/SscSPs/transactions_app/internal/core/domain"
	portsrepo "github.com/SscSPs/transactions_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/transactions_app/internal/core/ports/services"
	"github.com/SscSPs/transactions_app/internal/platform/metrics"
	"github.com/SscSPs/transactions_app/internal/utils/concurrency"
)

// ErrInvalidAggregationConfig indicates a non-positive chunk size, worker count or page size.
var ErrInvalidAggregationConfig = errors.New("invalid aggregation config")

const (
	DefaultChunkSize     = 10000
	DefaultMaxWorkers    = 10
	DefaultInnerPageSize = 10000
)

// AggregationConfig sizes the chunked aggregation.
type AggregationConfig struct {
	// ChunkSize is the number of records one chunk job folds.
	ChunkSize int
	// MaxWorkers caps the chunk jobs of one batch.
	MaxWorkers int
	// InnerPageSize is the keyset page size a chunk job reads with.
	InnerPageSize int
}

// DefaultAggregationConfig returns 10000-record chunks, 10 workers and 10000-row pages.
func DefaultAggregationConfig() AggregationConfig {
	return AggregationConfig{
		ChunkSize:     DefaultChunkSize,
		MaxWorkers:    DefaultMaxWorkers,
		InnerPageSize: DefaultInnerPageSize,
	}
}

// Validate rejects non-positive sizes.
func (c AggregationConfig) Validate() error {
	if c.ChunkSize <= 0 || c.MaxWorkers <= 0 || c.InnerPageSize <= 0 {
		return fmt.Errorf("%w: chunk size %d, max workers %d, page size %d",
			ErrInvalidAggregationConfig, c.ChunkSize, c.MaxWorkers, c.InnerPageSize)
	}
	return nil
}

// ChunkAggregator sums cost and price × quantity over the record source in
// fixed-size chunks, running at most MaxWorkers chunk jobs at a time.
type ChunkAggregator struct {
	BaseService
	reader   portsrepo.TransactionReader
	cfg      AggregationConfig
	observer portssvc.ProgressObserver
	metrics  *metrics.Metrics
}

// ChunkAggregatorOption is a functional option for configuring the aggregator
type ChunkAggregatorOption func(*ChunkAggregator)

// WithProgressObserver reports progress after every batch.
func WithProgressObserver(observer portssvc.ProgressObserver) ChunkAggregatorOption {
	return func(a *ChunkAggregator) {
		a.observer = observer
	}
}

// WithAggregationMetrics records chunk job metrics.
func WithAggregationMetrics(m *metrics.Metrics) ChunkAggregatorOption {
	return func(a *ChunkAggregator) {
		a.metrics = m
	}
}

// NewChunkAggregator validates cfg and builds an aggregator over reader.
func NewChunkAggregator(reader portsrepo.TransactionReader, cfg AggregationConfig, options ...ChunkAggregatorOption) (*ChunkAggregator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	a := &ChunkAggregator{
		BaseService: newBaseService("aggregator"),
		reader:      reader,
		cfg:         cfg,
	}
	for _, option := range options {
		option(a)
	}
	return a, nil
}

// Config returns the sizes the aggregator runs with.
func (a *ChunkAggregator) Config() AggregationConfig {
	return a.cfg
}

// Aggregate folds the first totalCount records (in id order) into report totals.
// Chunks run in batches of at most MaxWorkers jobs; a batch starts only after the
// previous one has joined, and its partials are merged as it joins. Any failing chunk
// fails the whole call.
func (a *ChunkAggregator) Aggregate(ctx context.Context, totalCount int64, currency domain.Currency) (*domain.AggregationResult, error) {
	if err := currency.Validate(); err != nil {
		return nil, err
	}
	if totalCount < 0 {
		return nil, fmt.Errorf("%w: negative record count %d", apperrors.ErrValidation, totalCount)
	}

	start := time.Now()
	chunkSize := int64(a.cfg.ChunkSize)
	totalChunks := int((totalCount + chunkSize - 1) / chunkSize)
	stats := domain.AggregationStats{
		TotalCount:  totalCount,
		ChunkSize:   a.cfg.ChunkSize,
		MaxWorkers:  a.cfg.MaxWorkers,
		TotalChunks: totalChunks,
		Batches:     concurrency.BatchCount(totalChunks, a.cfg.MaxWorkers),
	}

	a.LogInfo(ctx, "Starting chunked aggregation",
		slog.Int64("total_count", totalCount),
		slog.Int("total_chunks", totalChunks),
		slog.Int("batches", stats.Batches),
		slog.String("currency", currency.String()))

	totals, err := concurrency.FoldBatches(ctx, totalChunks, a.cfg.MaxWorkers,
		func(ctx context.Context, chunk int) (domain.ChunkTotals, error) {
			offset := int64(chunk) * chunkSize
			limit := min(chunkSize, totalCount-offset)
			return a.ProcessChunk(ctx, offset, limit, currency)
		},
		domain.ZeroChunkTotals(currency),
		func(acc domain.ChunkTotals, _ int, partial domain.ChunkTotals) (domain.ChunkTotals, error) {
			return acc.Merge(partial)
		},
		func(p concurrency.BatchProgress) {
			stats.ProcessedChunks = p.Completed
			a.LogDebug(ctx, "Aggregation batch completed",
				slog.Int("batch", p.Batch),
				slog.Int("batches", p.Batches),
				slog.Int("processed_chunks", p.Completed))
			if a.observer != nil {
				a.observer.BatchCompleted(p.Completed, p.Total)
			}
		})
	if err != nil {
		a.LogError(ctx, err, "Chunked aggregation failed", slog.Int64("total_count", totalCount))
		return nil, fmt.Errorf("aggregate %d records: %w", totalCount, err)
	}

	stats.Duration = time.Since(start)
	return domain.NewAggregationResult(totals, stats)
}

// ProcessChunk folds at most limit records starting at the record at offset.
// An offset past the end of the data yields zero totals.
func (a *ChunkAggregator) ProcessChunk(ctx context.Context, offset, limit int64, currency domain.Currency) (domain.ChunkTotals, error) {
	a.metrics.ChunkStarted()
	totals, err := a.processChunk(ctx, offset, limit, currency)
	a.metrics.ChunkFinished(totals.Records, err)
	if err != nil {
		return domain.ChunkTotals{}, fmt.Errorf("chunk at offset %d: %w", offset, err)
	}
	return totals, nil
}

func (a *ChunkAggregator) processChunk(ctx context.Context, offset, limit int64, currency domain.Currency) (domain.ChunkTotals, error) {
	totals := domain.ZeroChunkTotals(currency)
	if limit <= 0 {
		return totals, nil
	}

	startID, err := a.reader.FindTransactionIDAtOffset(ctx, offset)
	if errors.Is(err, apperrors.ErrNotFound) {
		return totals, nil
	}
	if err != nil {
		return totals, fmt.Errorf("resolve start id: %w", err)
	}

	pageSize := a.cfg.InnerPageSize
	if int64(pageSize) > limit {
		pageSize = int(limit)
	}

	for txn, err := range ScanTransactionsFrom(ctx, a.reader, startID, pageSize) {
		if err != nil {
			return totals, err
		}
		totals, err = foldTransaction(totals, txn)
		if err != nil {
			return totals, fmt.Errorf("transaction %d: %w", txn.ID, err)
		}
		if totals.Records >= limit {
			break
		}
	}
	return totals, nil
}

func foldTransaction(totals domain.ChunkTotals, txn domain.Transaction) (domain.ChunkTotals, error) {
	ptq, err := txn.PriceTimesQuantity()
	if err != nil {
		return totals, err
	}
	return totals.Merge(domain.ChunkTotals{Cost: txn.Cost, PriceTimesQuantity: ptq, Records: 1})
}
