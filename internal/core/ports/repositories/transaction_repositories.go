package repositories

import (
	"context"

	"github.com/SscSPs/transactions_app/internal/core/domain"
)

// TransactionReader is the ordered record source the report aggregates over.
// Records are only ordered by id; no other guarantee is made.
type TransactionReader interface {
	// CountTransactions returns the number of stored records.
	CountTransactions(ctx context.Context) (int64, error)

	// FindTransactionIDAtOffset returns the id of the record at the given position in id order.
	// It returns apperrors.ErrNotFound when offset is past the last record.
	FindTransactionIDAtOffset(ctx context.Context, offset int64) (int64, error)

	// ListTransactionsFromID returns up to limit records with id >= fromID, ascending.
	ListTransactionsFromID(ctx context.Context, fromID int64, limit int) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for transaction records.
type TransactionWriter interface {
	// SaveTransaction inserts one record and returns it with its assigned id.
	SaveTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error)

	// SaveTransactionsBatch inserts records in one round trip and returns how many were written.
	SaveTransactionsBatch(ctx context.Context, txns []domain.Transaction) (int64, error)
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
	HealthChecker

	// FindTransactionByID retrieves one record; apperrors.ErrNotFound when missing.
	FindTransactionByID(ctx context.Context, id int64) (*domain.Transaction, error)
}
