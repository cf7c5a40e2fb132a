// Package concurrency runs indexed tasks in bounded, strictly sequential batches.
package concurrency

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// ErrInvalidBatchSize is returned for a non-positive batch size or a negative task count.
var ErrInvalidBatchSize = errors.New("invalid batch size")

// Task computes the result of the task at index.
type Task[T any] func(ctx context.Context, index int) (T, error)

// BatchProgress is reported after each batch has fully joined.
type BatchProgress struct {
	Batch     int
	Batches   int
	Completed int
	Total     int
}

// BatchCount returns ceil(total / batchSize).
func BatchCount(total, batchSize int) int {
	if total <= 0 || batchSize <= 0 {
		return 0
	}
	return (total + batchSize - 1) / batchSize
}

// Fold merges the result of the task at index into acc.
type Fold[T, A any] func(acc A, index int, result T) (A, error)

// FoldBatches runs total tasks, at most batchSize at a time. A batch starts only after
// every task of the previous batch has returned. When a batch has joined, its results
// are folded into acc in index order, so memory stays bounded by batchSize whatever total is.
// The first failing task cancels the context of its siblings and FoldBatches returns that
// error and the zero accumulator.
func FoldBatches[T, A any](ctx context.Context, total, batchSize int, task Task[T], acc A, fold Fold[T, A], onBatch func(BatchProgress)) (A, error) {
	var zero A
	if total < 0 || batchSize <= 0 {
		return zero, fmt.Errorf("%w: total=%d batchSize=%d", ErrInvalidBatchSize, total, batchSize)
	}

	results := make([]T, min(batchSize, total))
	batches := BatchCount(total, batchSize)
	for b := 0; b < batches; b++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		start := b * batchSize
		end := min(start+batchSize, total)

		g, gctx := errgroup.WithContext(ctx)
		for i := start; i < end; i++ {
			g.Go(func() error {
				r, err := task(gctx, i)
				if err != nil {
					return fmt.Errorf("task %d: %w", i, err)
				}
				results[i-start] = r
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return zero, err
		}

		for i := start; i < end; i++ {
			var err error
			if acc, err = fold(acc, i, results[i-start]); err != nil {
				return zero, fmt.Errorf("fold task %d: %w", i, err)
			}
		}

		if onBatch != nil {
			onBatch(BatchProgress{Batch: b + 1, Batches: batches, Completed: end, Total: total})
		}
	}
	return acc, nil
}
