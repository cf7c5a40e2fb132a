package services

import (
	"context"
	"fmt"
	"iter"

	"github.com/SscSPs/transactions_app/internal/core/domain"
	portsrepo "github.com/SscSPs/transactions_app/internal/core/ports/repositories"
)

// ScanTransactionsFrom lazily yields records with id >= startID in id order, reading
// pageSize rows per query with keyset predicates. The sequence ends at the first short
// page or when the consumer stops; it cannot be restarted. A read error is yielded once
// and ends the sequence.
func ScanTransactionsFrom(ctx context.Context, reader portsrepo.TransactionReader, startID int64, pageSize int) iter.Seq2[domain.Transaction, error] {
	return func(yield func(domain.Transaction, error) bool) {
		if pageSize <= 0 {
			yield(domain.Transaction{}, fmt.Errorf("%w: page size %d", ErrInvalidAggregationConfig, pageSize))
			return
		}

		next := startID
		for {
			if err := ctx.Err(); err != nil {
				yield(domain.Transaction{}, err)
				return
			}

			page, err := reader.ListTransactionsFromID(ctx, next, pageSize)
			if err != nil {
				yield(domain.Transaction{}, fmt.Errorf("list transactions from id %d: %w", next, err))
				return
			}
			for _, txn := range page {
				if !yield(txn, nil) {
					return
				}
			}
			if len(page) < pageSize {
				return
			}
			next = page[len(page)-1].ID + 1
		}
	}
}
