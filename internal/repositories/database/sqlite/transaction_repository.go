package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/transactions_app/internal/apperrors"
	"github.com/SscSPs/transactions_app/internal/core/domain"
	portsrepo "github.com/SscSPs/transactions_app/internal/core/ports/repositories"
	"github.com/SscSPs/transactions_app/internal/models"
	"github.com/SscSPs/transactions_app/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

const transactionColumns = `id, cost_minor, price_minor, quantity, currency_code, created_at, updated_at`

// SQLiteTransactionRepository stores transaction records in a single-file database.
type SQLiteTransactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository wraps an open database whose schema is migrated.
func NewTransactionRepository(db *sql.DB) *SQLiteTransactionRepository {
	return &SQLiteTransactionRepository{db: db}
}

var _ portsrepo.TransactionRepositoryFacade = (*SQLiteTransactionRepository)(nil)

// NewRepositoryProvider exposes the sqlite repositories through the ports.
func NewRepositoryProvider(db *sql.DB) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TransactionRepo: NewTransactionRepository(db),
	}
}

func (r *SQLiteTransactionRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *SQLiteTransactionRepository) CountTransactions(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return count, nil
}

func (r *SQLiteTransactionRepository) FindTransactionIDAtOffset(ctx context.Context, offset int64) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `SELECT id FROM transactions ORDER BY id LIMIT 1 OFFSET ?`, offset).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, apperrors.ErrNotFound
		}
		return 0, fmt.Errorf("find transaction id at offset %d: %w", offset, err)
	}
	return id, nil
}

func (r *SQLiteTransactionRepository) ListTransactionsFromID(ctx context.Context, fromID int64, limit int) ([]domain.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE id >= ? ORDER BY id LIMIT ?`, fromID, limit)
	if err != nil {
		return nil, fmt.Errorf("query transactions from id %d: %w", fromID, err)
	}
	defer rows.Close()

	var modelTxns []models.Transaction
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		modelTxns = append(modelTxns, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return mapping.ToDomainTransactions(modelTxns)
}

func (r *SQLiteTransactionRepository) FindTransactionByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = ?`, id)
	m, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	txn, err := mapping.ToDomainTransaction(m)
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

func (r *SQLiteTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error) {
	if err := checkQuantity(txn); err != nil {
		return nil, err
	}
	m := mapping.ToModelTransaction(txn)
	res, err := r.db.ExecContext(ctx, insertTransaction, insertArgs(m)...)
	if err != nil {
		return nil, fmt.Errorf("insert transaction: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("read inserted id: %w", err)
	}
	txn.ID = id
	return &txn, nil
}

// SaveTransactionsBatch inserts all rows with one prepared statement in one database transaction.
func (r *SQLiteTransactionRepository) SaveTransactionsBatch(ctx context.Context, txns []domain.Transaction) (int64, error) {
	if len(txns) == 0 {
		return 0, nil
	}
	for i, txn := range txns {
		if err := checkQuantity(txn); err != nil {
			return 0, fmt.Errorf("batch row %d: %w", i, err)
		}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin batch insert: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insertTransaction)
	if err != nil {
		return 0, fmt.Errorf("prepare batch insert: %w", err)
	}
	defer stmt.Close()

	for i, txn := range txns {
		if _, err := stmt.ExecContext(ctx, insertArgs(mapping.ToModelTransaction(txn))...); err != nil {
			return 0, fmt.Errorf("insert batch row %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit batch insert: %w", err)
	}
	return int64(len(txns)), nil
}

// checkQuantity applies the bounds the postgres NUMERIC(12,2) column enforces; the TEXT column has none.
func checkQuantity(txn domain.Transaction) error {
	if err := domain.ValidateQuantity(txn.Quantity); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}
	return nil
}

const insertTransaction = `INSERT INTO transactions (cost_minor, price_minor, quantity, currency_code, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?)`

func insertArgs(m models.Transaction) []any {
	return []any{
		m.CostMinor,
		m.PriceMinor,
		m.Quantity.StringFixed(domain.QuantityDecimalPlaces),
		m.CurrencyCode,
		m.CreatedAt.UTC().Format(time.RFC3339Nano),
		m.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (models.Transaction, error) {
	var (
		m                    models.Transaction
		quantity             string
		createdAt, updatedAt string
	)
	if err := row.Scan(&m.ID, &m.CostMinor, &m.PriceMinor, &quantity, &m.CurrencyCode, &createdAt, &updatedAt); err != nil {
		return models.Transaction{}, err
	}

	var err error
	if m.Quantity, err = decimal.NewFromString(quantity); err != nil {
		return models.Transaction{}, fmt.Errorf("transaction %d quantity: %w", m.ID, err)
	}
	if m.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return models.Transaction{}, fmt.Errorf("transaction %d created_at: %w", m.ID, err)
	}
	if m.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return models.Transaction{}, fmt.Errorf("transaction %d updated_at: %w", m.ID, err)
	}
	return m, nil
}
