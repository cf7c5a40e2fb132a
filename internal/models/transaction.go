package models

import "github.com/shopspring/decimal"

// Transaction is the stored row of a transaction record.
// Cost and Price are integer minor units of CurrencyCode.
type Transaction struct {
	ID           int64           `json:"id"`
	CostMinor    int64           `json:"costMinor"`
	PriceMinor   int64           `json:"priceMinor"`
	Quantity     decimal.Decimal `json:"quantity"`
	CurrencyCode string          `json:"currencyCode"`
	AuditFields
}
