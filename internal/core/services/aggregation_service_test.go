package services_test

import (
	"context"
	"sync"
	"testing"

	"github.com/SscSPs/transactions_app/internal/apperrors"
	"github.com/SscSPs/transactions_app/internal/core/domain"
	portssvc "github.com/SscSPs/transactions_app/internal/core/ports/services"
	"github.com/SscSPs/transactions_app/internal/core/services"
	"github.com/SscSPs/transactions_app/internal/platform/metrics"
	"github.com/SscSPs/transactions_app/internal/repositories/memory"
	"github.com/SscSPs/transactions_app/internal/repositories/repotest"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type progressRecorder struct {
	mu    sync.Mutex
	calls [][2]int
}

func (p *progressRecorder) BatchCompleted(processed, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, [2]int{processed, total})
}

func seededRepo(t *testing.T, n int) *memory.TransactionRepository {
	t.Helper()
	repo := memory.NewTransactionRepository()
	_, err := repo.SaveTransactionsBatch(context.Background(), repotest.Fixture(n, domain.EGP))
	require.NoError(t, err)
	return repo
}

func TestChunkAggregator_SumsAllChunks(t *testing.T) {
	repo := seededRepo(t, 25)
	progress := &progressRecorder{}
	reg := prometheus.NewRegistry()
	m := metrics.New("test", reg)

	agg, err := services.NewChunkAggregator(repo, services.AggregationConfig{ChunkSize: 10, MaxWorkers: 2, InnerPageSize: 4},
		services.WithProgressObserver(progress),
		services.WithAggregationMetrics(m))
	require.NoError(t, err)

	result, err := agg.Aggregate(context.Background(), 25, domain.EGP)
	require.NoError(t, err)

	assert.Equal(t, int64(2500), result.TotalCost.Amount())
	assert.Equal(t, int64(2500), result.TotalPriceTimesQuantity.Amount())
	assert.True(t, result.Difference.IsZero())
	assert.Equal(t, int64(25), result.RecordsProcessed)
	assert.Equal(t, 3, result.Stats.TotalChunks)
	assert.Equal(t, 2, result.Stats.Batches)
	assert.Equal(t, 3, result.Stats.ProcessedChunks)
	assert.Equal(t, [][2]int{{2, 3}, {3, 3}}, progress.calls)

	assert.Equal(t, float64(3), testutil.ToFloat64(m.ChunksProcessedTotal))
	assert.Equal(t, float64(25), testutil.ToFloat64(m.RecordsAggregated))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.ChunkJobsInFlight))
}

// seedRows stores n records in EGP whose cost, price and quantity come from row(id); ids run from 1.
func seedRows(t *testing.T, n int, row func(id int64) (cost, price int64, quantity decimal.Decimal)) *memory.TransactionRepository {
	t.Helper()
	txns := repotest.Fixture(n, domain.EGP)
	for i := range txns {
		cost, price, quantity := row(int64(i + 1))
		txns[i].Cost = domain.MustNewMoney(cost, domain.EGP)
		txns[i].Price = domain.MustNewMoney(price, domain.EGP)
		txns[i].Quantity = quantity
	}
	repo := memory.NewTransactionRepository()
	_, err := repo.SaveTransactionsBatch(context.Background(), txns)
	require.NoError(t, err)
	return repo
}

func sumIDs(from, to int64) int64 {
	return (from + to) * (to - from + 1) / 2
}

func TestChunkAggregator_ChunkBoundary(t *testing.T) {
	ctx := context.Background()
	repo := seedRows(t, 10005, func(id int64) (int64, int64, decimal.Decimal) {
		return id, id, decimal.NewFromInt(1)
	})

	for _, pageSize := range []int{services.DefaultInnerPageSize, 3000} {
		cfg := services.DefaultAggregationConfig()
		cfg.InnerPageSize = pageSize
		agg, err := services.NewChunkAggregator(repo, cfg)
		require.NoError(t, err)

		first, err := agg.ProcessChunk(ctx, 0, 10000, domain.EGP)
		require.NoError(t, err)
		assert.Equal(t, int64(10000), first.Records, "page size %d", pageSize)
		assert.Equal(t, sumIDs(1, 10000), first.Cost.Amount(), "page size %d", pageSize)
		assert.Equal(t, sumIDs(1, 10000), first.PriceTimesQuantity.Amount(), "page size %d", pageSize)

		tail, err := agg.ProcessChunk(ctx, 10000, 5, domain.EGP)
		require.NoError(t, err)
		assert.Equal(t, int64(5), tail.Records, "page size %d", pageSize)
		assert.Equal(t, sumIDs(10001, 10005), tail.Cost.Amount(), "page size %d", pageSize)
		assert.Equal(t, sumIDs(10001, 10005), tail.PriceTimesQuantity.Amount(), "page size %d", pageSize)

		result, err := agg.Aggregate(ctx, 10005, domain.EGP)
		require.NoError(t, err)
		assert.Equal(t, 2, result.Stats.TotalChunks)
		assert.Equal(t, 1, result.Stats.Batches)
		assert.Equal(t, int64(10005), result.RecordsProcessed)
		assert.Equal(t, sumIDs(1, 10005), result.TotalCost.Amount())
		assert.Equal(t, first.Cost.Amount()+tail.Cost.Amount(), result.TotalCost.Amount())
		assert.Equal(t, sumIDs(1, 10005), result.TotalPriceTimesQuantity.Amount())
	}
}

func TestChunkAggregator_CostPriceQuantityFixture(t *testing.T) {
	repo := seedRows(t, 25, func(int64) (int64, int64, decimal.Decimal) {
		return 100, 50, decimal.NewFromInt(2)
	})

	agg, err := services.NewChunkAggregator(repo, services.AggregationConfig{ChunkSize: 10, MaxWorkers: 2, InnerPageSize: 10})
	require.NoError(t, err)

	result, err := agg.Aggregate(context.Background(), 25, domain.EGP)
	require.NoError(t, err)

	assert.Equal(t, int64(2500), result.TotalCost.Amount())
	assert.Equal(t, int64(2500), result.TotalPriceTimesQuantity.Amount())
	assert.True(t, result.Difference.IsZero())
	assert.Equal(t, "25.00 EGP", result.TotalCost.String())
	assert.Equal(t, int64(25), result.RecordsProcessed)
	assert.Equal(t, 3, result.Stats.TotalChunks)
	assert.Equal(t, 2, result.Stats.Batches)
}

func TestChunkAggregator_ZeroCountRunsNoJobs(t *testing.T) {
	reader := new(MockTransactionRepository)

	agg, err := services.NewChunkAggregator(reader, services.DefaultAggregationConfig())
	require.NoError(t, err)

	result, err := agg.Aggregate(context.Background(), 0, domain.SAR)
	require.NoError(t, err)

	assert.True(t, result.TotalCost.IsZero())
	assert.True(t, result.Difference.IsZero())
	assert.Equal(t, domain.SAR, result.TotalCost.Currency())
	assert.Zero(t, result.Stats.TotalChunks)
	assert.Zero(t, result.Stats.Batches)
	reader.AssertNotCalled(t, "FindTransactionIDAtOffset", mock.Anything, mock.Anything)
}

func TestChunkAggregator_CountBelowStoredRecords(t *testing.T) {
	repo := seededRepo(t, 25)

	agg, err := services.NewChunkAggregator(repo, services.AggregationConfig{ChunkSize: 10, MaxWorkers: 3, InnerPageSize: 10})
	require.NoError(t, err)

	result, err := agg.Aggregate(context.Background(), 15, domain.EGP)
	require.NoError(t, err)

	assert.Equal(t, int64(15), result.RecordsProcessed)
	assert.Equal(t, int64(1500), result.TotalCost.Amount())
}

func TestChunkAggregator_OffsetPastEndYieldsZero(t *testing.T) {
	repo := seededRepo(t, 25)

	agg, err := services.NewChunkAggregator(repo, services.AggregationConfig{ChunkSize: 10, MaxWorkers: 2, InnerPageSize: 10})
	require.NoError(t, err)

	// records deleted after counting: the last chunk finds nothing
	result, err := agg.Aggregate(context.Background(), 40, domain.EGP)
	require.NoError(t, err)

	assert.Equal(t, 4, result.Stats.TotalChunks)
	assert.Equal(t, int64(25), result.RecordsProcessed)
	assert.Equal(t, int64(2500), result.TotalCost.Amount())

	totals, err := agg.ProcessChunk(context.Background(), 100, 10, domain.EGP)
	require.NoError(t, err)
	assert.Zero(t, totals.Records)
	assert.True(t, totals.Cost.IsZero())
}

func TestChunkAggregator_Difference(t *testing.T) {
	repo := memory.NewTransactionRepository()
	ctx := context.Background()
	_, err := repo.SaveTransactionsBatch(ctx, []domain.Transaction{
		{Cost: domain.MustNewMoney(1000, domain.EGP), Price: domain.MustNewMoney(333, domain.EGP), Quantity: decimal.RequireFromString("3")},
		{Cost: domain.MustNewMoney(250, domain.EGP), Price: domain.MustNewMoney(125, domain.EGP), Quantity: decimal.RequireFromString("2.5")},
	})
	require.NoError(t, err)

	agg, err := services.NewChunkAggregator(repo, services.AggregationConfig{ChunkSize: 1, MaxWorkers: 1, InnerPageSize: 1})
	require.NoError(t, err)

	result, err := agg.Aggregate(ctx, 2, domain.EGP)
	require.NoError(t, err)

	// 3.33 * 3 = 9.99 and 1.25 * 2.5 = 3.125 -> 3.13
	assert.Equal(t, int64(1250), result.TotalCost.Amount())
	assert.Equal(t, int64(1312), result.TotalPriceTimesQuantity.Amount())
	assert.Equal(t, int64(-62), result.Difference.Amount())
}

func TestChunkAggregator_MixedCurrencyFails(t *testing.T) {
	repo := seededRepo(t, 5)
	_, err := repo.SaveTransaction(context.Background(), domain.Transaction{
		Cost:     domain.MustNewMoney(100, domain.SAR),
		Price:    domain.MustNewMoney(100, domain.SAR),
		Quantity: decimal.NewFromInt(1),
	})
	require.NoError(t, err)

	agg, err := services.NewChunkAggregator(repo, services.AggregationConfig{ChunkSize: 2, MaxWorkers: 2, InnerPageSize: 2})
	require.NoError(t, err)

	_, err = agg.Aggregate(context.Background(), 6, domain.EGP)
	assert.ErrorIs(t, err, domain.ErrCurrencyMismatch)
}

func TestChunkAggregator_ReaderErrorFailsReport(t *testing.T) {
	reader := new(MockTransactionRepository)
	reader.On("FindTransactionIDAtOffset", mock.Anything, int64(0)).Return(int64(1), nil)
	reader.On("ListTransactionsFromID", mock.Anything, int64(1), 5).Return(nil, assert.AnError)

	agg, err := services.NewChunkAggregator(reader, services.AggregationConfig{ChunkSize: 5, MaxWorkers: 1, InnerPageSize: 100})
	require.NoError(t, err)

	_, err = agg.Aggregate(context.Background(), 5, domain.EGP)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestChunkAggregator_RejectsBadInput(t *testing.T) {
	_, err := services.NewChunkAggregator(memory.NewTransactionRepository(), services.AggregationConfig{ChunkSize: 0, MaxWorkers: 1, InnerPageSize: 1})
	assert.ErrorIs(t, err, services.ErrInvalidAggregationConfig)

	agg, err := services.NewChunkAggregator(memory.NewTransactionRepository(), services.DefaultAggregationConfig())
	require.NoError(t, err)

	_, err = agg.Aggregate(context.Background(), -1, domain.EGP)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = agg.Aggregate(context.Background(), 1, domain.Currency("USD"))
	assert.ErrorIs(t, err, domain.ErrUnsupportedCurrency)
}

var _ portssvc.ProgressObserver = (*progressRecorder)(nil)
