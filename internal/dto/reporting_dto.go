package dto

import (
	"github.com/SscSPs/transactions_app/internal/core/domain"
	"github.com/SscSPs/transactions_app/internal/utils/i18n"
)

// ReportParams are the query parameters of the report endpoint.
type ReportParams struct {
	Currency string `form:"currency" binding:"omitempty,currency_code"`
	Count    *int64 `form:"count" binding:"omitempty,min=0"`
}

// ReportResponse represents the transactions report.
type ReportResponse struct {
	TotalCost              MoneyResource `json:"total_cost"`
	TotalPriceAndQuantity  MoneyResource `json:"total_price_and_quantity"`
	Difference             MoneyResource `json:"difference"`
	RecordsProcessed       int64         `json:"records_processed" example:"10005"`
	TotalChunks            int           `json:"total_chunks" example:"2"`
	Batches                int           `json:"batches" example:"1"`
	ProcessedChunks        int           `json:"processed_chunks" example:"2"`
	TotalCount             string        `json:"total_count" example:"10,005"`
	ChunkSize              int           `json:"chunk_size" example:"10000"`
	MaxConcurrentProcesses int           `json:"max_concurrent_processes" example:"10"`
	DurationMs             int64         `json:"duration_ms" example:"412"`
}

// ToReportResponse renders an aggregation result.
func ToReportResponse(r *domain.AggregationResult, labels domain.Labeler) ReportResponse {
	return ReportResponse{
		TotalCost:              NewMoneyResource(r.TotalCost, labels),
		TotalPriceAndQuantity:  NewMoneyResource(r.TotalPriceTimesQuantity, labels),
		Difference:             NewMoneyResource(r.Difference, labels),
		RecordsProcessed:       r.RecordsProcessed,
		TotalChunks:            r.Stats.TotalChunks,
		Batches:                r.Stats.Batches,
		ProcessedChunks:        r.Stats.ProcessedChunks,
		TotalCount:             i18n.FormatCount(r.Stats.TotalCount),
		ChunkSize:              r.Stats.ChunkSize,
		MaxConcurrentProcesses: r.Stats.MaxWorkers,
		DurationMs:             r.Stats.Duration.Milliseconds(),
	}
}
