package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/SscSPs/transactions_app/internal/apperrors"
	"github.com/SscSPs/transactions_app/internal/core/domain"
	portsrepo "github.com/SscSPs/transactions_app/internal/core/ports/repositories"
)

// TransactionRepository keeps records in id order in process memory.
// Ids are assigned sequentially from 1.
type TransactionRepository struct {
	mu     sync.RWMutex
	txns   []domain.Transaction
	nextID int64
}

// NewTransactionRepository returns an empty store.
func NewTransactionRepository() *TransactionRepository {
	return &TransactionRepository{nextID: 1}
}

var _ portsrepo.TransactionRepositoryFacade = (*TransactionRepository)(nil)

// NewRepositoryProvider exposes an empty in-memory store through the ports.
func NewRepositoryProvider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TransactionRepo: NewTransactionRepository(),
	}
}

func (r *TransactionRepository) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (r *TransactionRepository) CountTransactions(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.txns)), nil
}

func (r *TransactionRepository) FindTransactionIDAtOffset(ctx context.Context, offset int64) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if offset < 0 || offset >= int64(len(r.txns)) {
		return 0, apperrors.ErrNotFound
	}
	return r.txns[offset].ID, nil
}

func (r *TransactionRepository) ListTransactionsFromID(ctx context.Context, fromID int64, limit int) ([]domain.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	start := r.search(fromID)
	end := min(start+limit, len(r.txns))
	if start >= end {
		return []domain.Transaction{}, nil
	}
	out := make([]domain.Transaction, end-start)
	copy(out, r.txns[start:end])
	return out, nil
}

func (r *TransactionRepository) FindTransactionByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	i := r.search(id)
	if i == len(r.txns) || r.txns[i].ID != id {
		return nil, apperrors.ErrNotFound
	}
	txn := r.txns[i]
	return &txn, nil
}

func (r *TransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := checkQuantity(txn); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	txn.ID = r.nextID
	r.nextID++
	r.txns = append(r.txns, txn)
	return &txn, nil
}

func (r *TransactionRepository) SaveTransactionsBatch(ctx context.Context, txns []domain.Transaction) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	for i, txn := range txns {
		if err := checkQuantity(txn); err != nil {
			return 0, fmt.Errorf("batch row %d: %w", i, err)
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, txn := range txns {
		txn.ID = r.nextID
		r.nextID++
		r.txns = append(r.txns, txn)
	}
	return int64(len(txns)), nil
}

// search returns the index of the first record with ID >= id. Callers hold mu.
func (r *TransactionRepository) search(id int64) int {
	return sort.Search(len(r.txns), func(i int) bool { return r.txns[i].ID >= id })
}

// checkQuantity applies the bounds the postgres NUMERIC(12,2) column enforces.
func checkQuantity(txn domain.Transaction) error {
	if err := domain.ValidateQuantity(txn.Quantity); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}
	return nil
}
