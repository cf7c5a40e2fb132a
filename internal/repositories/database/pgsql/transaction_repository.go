package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/transactions_app/internal/apperrors"
	"github.com/SscSPs/transactions_app/internal/core/domain"
	portsrepo "github.com/SscSPs/transactions_app/internal/core/ports/repositories"
	"github.com/SscSPs/transactions_app/internal/models"
	"github.com/SscSPs/transactions_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const transactionColumns = `id, cost_minor, price_minor, quantity, currency_code, created_at, updated_at`

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for transaction records.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func (r *PgxTransactionRepository) CountTransactions(ctx context.Context) (int64, error) {
	var count int64
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM transactions;`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}

func (r *PgxTransactionRepository) FindTransactionIDAtOffset(ctx context.Context, offset int64) (int64, error) {
	query := `SELECT id FROM transactions ORDER BY id LIMIT 1 OFFSET $1;`
	var id int64
	err := r.Pool.QueryRow(ctx, query, offset).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrNotFound
		}
		return 0, fmt.Errorf("failed to find transaction id at offset %d: %w", offset, err)
	}
	return id, nil
}

func (r *PgxTransactionRepository) ListTransactionsFromID(ctx context.Context, fromID int64, limit int) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + `
		FROM transactions
		WHERE id >= $1
		ORDER BY id
		LIMIT $2;`
	rows, err := r.Pool.Query(ctx, query, fromID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions from id %d: %w", fromID, err)
	}
	modelTxns, err := pgx.CollectRows(rows, scanTransaction)
	if err != nil {
		return nil, fmt.Errorf("failed to scan transactions: %w", err)
	}
	return mapping.ToDomainTransactions(modelTxns)
}

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1;`
	rows, err := r.Pool.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction %d: %w", id, err)
	}
	modelTxn, err := pgx.CollectExactlyOneRow(rows, scanTransaction)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan transaction %d: %w", id, err)
	}
	txn, err := mapping.ToDomainTransaction(modelTxn)
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error) {
	m := mapping.ToModelTransaction(txn)
	query := `
		INSERT INTO transactions (cost_minor, price_minor, quantity, currency_code, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id;
	`
	err := r.Pool.QueryRow(ctx, query,
		m.CostMinor,
		m.PriceMinor,
		toNumeric(m.Quantity),
		m.CurrencyCode,
		m.CreatedAt,
		m.UpdatedAt,
	).Scan(&txn.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert transaction: %w", err)
	}
	return &txn, nil
}

// SaveTransactionsBatch streams the rows with COPY inside one database transaction.
func (r *PgxTransactionRepository) SaveTransactionsBatch(ctx context.Context, txns []domain.Transaction) (int64, error) {
	if len(txns) == 0 {
		return 0, nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = r.Rollback(ctx, tx)
	}()

	columns := []string{"cost_minor", "price_minor", "quantity", "currency_code", "created_at", "updated_at"}
	n, err := tx.CopyFrom(ctx, pgx.Identifier{"transactions"}, columns,
		pgx.CopyFromSlice(len(txns), func(i int) ([]any, error) {
			m := mapping.ToModelTransaction(txns[i])
			return []any{m.CostMinor, m.PriceMinor, toNumeric(m.Quantity), m.CurrencyCode, m.CreatedAt, m.UpdatedAt}, nil
		}))
	if err != nil {
		return 0, fmt.Errorf("failed to copy %d transactions: %w", len(txns), err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return n, nil
}

func scanTransaction(row pgx.CollectableRow) (models.Transaction, error) {
	var m models.Transaction
	var quantity pgtype.Numeric
	err := row.Scan(
		&m.ID,
		&m.CostMinor,
		&m.PriceMinor,
		&quantity,
		&m.CurrencyCode,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return models.Transaction{}, err
	}
	m.Quantity, err = fromNumeric(quantity)
	return m, err
}

func toNumeric(d decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{Int: d.Coefficient(), Exp: d.Exponent(), Valid: true}
}

func fromNumeric(n pgtype.Numeric) (decimal.Decimal, error) {
	if !n.Valid || n.NaN || n.InfinityModifier != pgtype.Finite || n.Int == nil {
		return decimal.Zero, fmt.Errorf("quantity is not a finite number")
	}
	return decimal.NewFromBigInt(n.Int, n.Exp), nil
}
