package domain

import (
	"fmt"
	"time"
)

// ChunkTotals are the partial sums one chunk job folds over its slice of records.
type ChunkTotals struct {
	Cost               Money
	PriceTimesQuantity Money
	Records            int64
}

// ZeroChunkTotals returns empty sums in currency.
func ZeroChunkTotals(currency Currency) ChunkTotals {
	return ChunkTotals{Cost: Zero(currency), PriceTimesQuantity: Zero(currency)}
}

// Merge adds other into a copy of t.
func (t ChunkTotals) Merge(other ChunkTotals) (ChunkTotals, error) {
	cost, err := t.Cost.Add(other.Cost)
	if err != nil {
		return ChunkTotals{}, fmt.Errorf("merge cost: %w", err)
	}
	ptq, err := t.PriceTimesQuantity.Add(other.PriceTimesQuantity)
	if err != nil {
		return ChunkTotals{}, fmt.Errorf("merge price times quantity: %w", err)
	}
	return ChunkTotals{Cost: cost, PriceTimesQuantity: ptq, Records: t.Records + other.Records}, nil
}

// AggregationStats describes how an aggregation run was partitioned.
type AggregationStats struct {
	TotalCount      int64         `json:"totalCount"`
	ChunkSize       int           `json:"chunkSize"`
	MaxWorkers      int           `json:"maxWorkers"`
	TotalChunks     int           `json:"totalChunks"`
	ProcessedChunks int           `json:"processedChunks"`
	Batches         int           `json:"batches"`
	Duration        time.Duration `json:"duration"`
}

// AggregationResult is the report over the whole record set.
// Difference is TotalCost minus TotalPriceTimesQuantity and may be negative.
type AggregationResult struct {
	TotalCost               Money            `json:"totalCost"`
	TotalPriceTimesQuantity Money            `json:"totalPriceTimesQuantity"`
	Difference              Money            `json:"difference"`
	RecordsProcessed        int64            `json:"recordsProcessed"`
	Stats                   AggregationStats `json:"stats"`
}

// NewAggregationResult derives the difference from merged totals.
func NewAggregationResult(totals ChunkTotals, stats AggregationStats) (*AggregationResult, error) {
	diff, err := totals.Cost.Subtract(totals.PriceTimesQuantity)
	if err != nil {
		return nil, fmt.Errorf("compute difference: %w", err)
	}
	return &AggregationResult{
		TotalCost:               totals.Cost,
		TotalPriceTimesQuantity: totals.PriceTimesQuantity,
		Difference:              diff,
		RecordsProcessed:        totals.Records,
		Stats:                   stats,
	}, nil
}
