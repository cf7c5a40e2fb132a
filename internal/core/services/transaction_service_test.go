package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/transactions_app/internal/apperrors"
	"github.com/SscSPs/transactions_app/internal/core/domain"
	portssvc "github.com/SscSPs/transactions_app/internal/core/ports/services"
	"github.com/SscSPs/transactions_app/internal/core/services"
	"github.com/SscSPs/transactions_app/internal/dto"
	"github.com/SscSPs/transactions_app/internal/repositories/memory"
	"github.com/SscSPs/transactions_app/internal/repositories/repotest"
	"github.com/SscSPs/transactions_app/internal/utils/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type TransactionServiceTestSuite struct {
	suite.Suite
	mockRepo *MockTransactionRepository
	service  portssvc.TransactionSvcFacade
	now      time.Time
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockTransactionRepository)
	suite.now = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	suite.service = services.NewTransactionService(suite.mockRepo,
		services.WithDefaultTransactionCurrency(domain.SAR),
		services.WithClock(func() time.Time { return suite.now }))
}

// --- Test Cases ---

func (suite *TransactionServiceTestSuite) TestCreateTransaction_Success() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{Cost: "1,000.50", Price: "10.005", Quantity: "100"}

	suite.mockRepo.On("SaveTransaction", ctx, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.Cost.Amount() == 100050 &&
			t.Price.Amount() == 1001 &&
			t.Cost.Currency() == domain.SAR &&
			t.Quantity.String() == "100" &&
			t.CreatedAt.Equal(suite.now)
	})).Return(&domain.Transaction{ID: 42}, nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, req)

	suite.Require().NoError(err)
	suite.Equal(int64(42), txn.ID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_ExplicitCurrency() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{Cost: "1,000", Price: "0.5", Quantity: "2", Currency: "kwd"}

	suite.mockRepo.On("SaveTransaction", ctx, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.Cost.Currency() == domain.KWD && t.Cost.Amount() == 1000 && t.Price.Amount() == 500
	})).Return(&domain.Transaction{ID: 1}, nil).Once()

	_, err := suite.service.CreateTransaction(ctx, req)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_ValidationErrors() {
	ctx := context.Background()
	tests := []struct {
		name string
		req  dto.CreateTransactionRequest
	}{
		{name: "bad cost", req: dto.CreateTransactionRequest{Cost: "abc", Price: "1", Quantity: "1"}},
		{name: "bad price", req: dto.CreateTransactionRequest{Cost: "1", Price: "1.2.3,4", Quantity: "1"}},
		{name: "zero quantity", req: dto.CreateTransactionRequest{Cost: "1", Price: "1", Quantity: "0"}},
		{name: "fractional cents quantity", req: dto.CreateTransactionRequest{Cost: "1", Price: "1", Quantity: "1.001"}},
		{name: "negative cost", req: dto.CreateTransactionRequest{Cost: "-1", Price: "1", Quantity: "1"}},
		{name: "unsupported currency", req: dto.CreateTransactionRequest{Cost: "1", Price: "1", Quantity: "1", Currency: "USD"}},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			txn, err := suite.service.CreateTransaction(ctx, tt.req)
			suite.Nil(txn)
			suite.ErrorIs(err, apperrors.ErrValidation)
		})
	}
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_SaveError() {
	ctx := context.Background()
	suite.mockRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Return(nil, assert.AnError).Once()

	txn, err := suite.service.CreateTransaction(ctx, dto.CreateTransactionRequest{Cost: "1", Price: "1", Quantity: "1"})

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, assert.AnError)
}

func (suite *TransactionServiceTestSuite) TestGetTransaction() {
	ctx := context.Background()
	expected := &domain.Transaction{ID: 3}
	suite.mockRepo.On("FindTransactionByID", ctx, int64(3)).Return(expected, nil).Once()
	suite.mockRepo.On("FindTransactionByID", ctx, int64(4)).Return(nil, apperrors.ErrNotFound).Once()

	txn, err := suite.service.GetTransaction(ctx, 3)
	suite.Require().NoError(err)
	suite.Equal(expected, txn)

	_, err = suite.service.GetTransaction(ctx, 4)
	suite.ErrorIs(err, apperrors.ErrNotFound)

	_, err = suite.service.GetTransaction(ctx, 0)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}

func TestListTransactions_Pages(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewTransactionRepository()
	_, err := repo.SaveTransactionsBatch(ctx, repotest.Fixture(25, domain.EGP))
	assert.NoError(t, err)
	svc := services.NewTransactionService(repo)

	var ids []int64
	token := ""
	pages := 0
	for {
		page, next, err := svc.ListTransactions(ctx, dto.ListTransactionsParams{Limit: 10, NextToken: token})
		assert.NoError(t, err)
		pages++
		for _, txn := range page {
			ids = append(ids, txn.ID)
		}
		if next == nil {
			break
		}
		token = *next
	}

	assert.Equal(t, 3, pages)
	assert.Len(t, ids, 25)
	for i := 1; i < len(ids); i++ {
		assert.Greater(t, ids[i], ids[i-1])
	}
}

func TestListTransactions_ExactPageHasNoNextToken(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewTransactionRepository()
	_, err := repo.SaveTransactionsBatch(ctx, repotest.Fixture(10, domain.EGP))
	assert.NoError(t, err)
	svc := services.NewTransactionService(repo)

	page, next, err := svc.ListTransactions(ctx, dto.ListTransactionsParams{Limit: 10})
	assert.NoError(t, err)
	assert.Len(t, page, 10)
	assert.Nil(t, next)
}

func TestListTransactions_InvalidToken(t *testing.T) {
	svc := services.NewTransactionService(memory.NewTransactionRepository())

	_, _, err := svc.ListTransactions(context.Background(), dto.ListTransactionsParams{Limit: 5, NextToken: "!!not-base64"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, _, err = svc.ListTransactions(context.Background(), dto.ListTransactionsParams{NextToken: pagination.EncodeIDToken(1)})
	assert.NoError(t, err)
}
