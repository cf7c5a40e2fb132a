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
	"github.com/SscSPs/transactions_app/internal/dto"
	"github.com/SscSPs/transactions_app/internal/utils/pagination"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// transactionService implements the TransactionSvcFacade interface
type transactionService struct {
	BaseService
	repo            portsrepo.TransactionRepositoryFacade
	defaultCurrency domain.Currency
	now             func() time.Time
}

// TransactionServiceOption is a functional option for configuring the transaction service
type TransactionServiceOption func(*transactionService)

// WithDefaultTransactionCurrency sets the currency used when a request names none.
func WithDefaultTransactionCurrency(c domain.Currency) TransactionServiceOption {
	return func(s *transactionService) {
		s.defaultCurrency = c
	}
}

// WithClock replaces time.Now for audit timestamps.
func WithClock(now func() time.Time) TransactionServiceOption {
	return func(s *transactionService) {
		s.now = now
	}
}

// NewTransactionService creates a new transaction service with the provided options
func NewTransactionService(repo portsrepo.TransactionRepositoryFacade, options ...TransactionServiceOption) portssvc.TransactionSvcFacade {
	svc := &transactionService{
		BaseService:     newBaseService("transactions"),
		repo:            repo,
		defaultCurrency: domain.EGP,
		now:             time.Now,
	}

	// Apply all options
	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure transactionService implements the TransactionSvcFacade interface
var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

func (s *transactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	currency := s.defaultCurrency
	if req.Currency != "" {
		c, err := domain.ParseCurrency(req.Currency)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
		}
		currency = c
	}

	cost, err := domain.ParseMoney(req.Cost.String(), currency)
	if err != nil {
		return nil, fmt.Errorf("%w: cost: %w", apperrors.ErrValidation, err)
	}
	price, err := domain.ParseMoney(req.Price.String(), currency)
	if err != nil {
		return nil, fmt.Errorf("%w: price: %w", apperrors.ErrValidation, err)
	}
	quantity, err := domain.ParseQuantity(req.Quantity.String())
	if err != nil {
		return nil, fmt.Errorf("%w: quantity: %w", apperrors.ErrValidation, err)
	}

	now := s.now().UTC()
	txn := domain.Transaction{
		Cost:     cost,
		Price:    price,
		Quantity: quantity,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	if err := txn.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}

	saved, err := s.repo.SaveTransaction(ctx, txn)
	if err != nil {
		s.LogError(ctx, err, "Failed to save transaction")
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	s.LogInfo(ctx, "Transaction created successfully",
		slog.Int64("transaction_id", saved.ID),
		slog.String("cost", saved.Cost.String()))
	return saved, nil
}

func (s *transactionService) GetTransaction(ctx context.Context, id int64) (*domain.Transaction, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: transaction id must be positive", apperrors.ErrValidation)
	}
	txn, err := s.repo.FindTransactionByID(ctx, id)
	if err != nil {
		// ErrNotFound passes through for the handler to map to 404
		return nil, err
	}
	return txn, nil
}

func (s *transactionService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) ([]domain.Transaction, *string, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	fromID := int64(1)
	if params.NextToken != "" {
		id, err := pagination.DecodeIDToken(params.NextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken: %w", apperrors.ErrValidation, err)
		}
		fromID = id
	}

	// one extra row tells whether another page exists
	page, err := s.repo.ListTransactionsFromID(ctx, fromID, limit+1)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions", slog.Int64("from_id", fromID))
		return nil, nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	var nextToken *string
	if len(page) > limit {
		token := pagination.EncodeIDToken(page[limit].ID)
		nextToken = &token
		page = page[:limit]
	}
	return page, nextToken, nil
}
