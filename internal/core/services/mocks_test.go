package services_test

import (
	"context"

	"github.com/SscSPs/transactions_app/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) CountTransactions(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionIDAtOffset(ctx context.Context, offset int64) (int64, error) {
	args := m.Called(ctx, offset)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsFromID(ctx context.Context, fromID int64, limit int) ([]domain.Transaction, error) {
	args := m.Called(ctx, fromID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error) {
	args := m.Called(ctx, txn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) SaveTransactionsBatch(ctx context.Context, txns []domain.Transaction) (int64, error) {
	args := m.Called(ctx, txns)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTransactionRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- Mock ReportPublisher ---
type MockReportPublisher struct {
	mock.Mock
}

func (m *MockReportPublisher) PublishReport(ctx context.Context, result *domain.AggregationResult) error {
	args := m.Called(ctx, result)
	return args.Error(0)
}
