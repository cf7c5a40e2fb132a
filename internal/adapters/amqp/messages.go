package amqp

import (
	"encoding/json"
	"time"

	"github.com/SscSPs/transactions_app/internal/core/domain"
)

// ReportCompletedEvent names the event carried by ReportCompletedMessage.
const ReportCompletedEvent = "report.completed"

// ReportCompletedMessage announces a finished report. Amounts are plain decimal strings
// in the report currency.
type ReportCompletedMessage struct {
	Event                   string    `json:"event"`
	Currency                string    `json:"currency"`
	TotalCost               string    `json:"total_cost"`
	TotalPriceTimesQuantity string    `json:"total_price_and_quantity"`
	Difference              string    `json:"difference"`
	RecordsProcessed        int64     `json:"records_processed"`
	TotalChunks             int       `json:"total_chunks"`
	DurationMs              int64     `json:"duration_ms"`
	Timestamp               time.Time `json:"timestamp"`
}

// NewReportCompletedMessage builds the message for result.
func NewReportCompletedMessage(result *domain.AggregationResult, now time.Time) *ReportCompletedMessage {
	return &ReportCompletedMessage{
		Event:                   ReportCompletedEvent,
		Currency:                result.TotalCost.Currency().String(),
		TotalCost:               result.TotalCost.Decimal(),
		TotalPriceTimesQuantity: result.TotalPriceTimesQuantity.Decimal(),
		Difference:              result.Difference.Decimal(),
		RecordsProcessed:        result.RecordsProcessed,
		TotalChunks:             result.Stats.TotalChunks,
		DurationMs:              result.Stats.Duration.Milliseconds(),
		Timestamp:               now,
	}
}

// ToJSON converts the message to JSON bytes
func (m *ReportCompletedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ReportCompletedMessageFromJSON decodes a message body.
func ReportCompletedMessageFromJSON(data []byte) (*ReportCompletedMessage, error) {
	var msg ReportCompletedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
