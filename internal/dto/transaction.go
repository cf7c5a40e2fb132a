package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/SscSPs/transactions_app/internal/core/domain"
)

// AmountInput is a decimal amount sent either as a JSON string ("1,000.50") or a JSON number (1000.5).
type AmountInput string

func (a *AmountInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = AmountInput(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("amount must be a string or a number: %w", err)
	}
	*a = AmountInput(n.String())
	return nil
}

func (a AmountInput) String() string {
	return string(a)
}

// CreateTransactionRequest defines the data needed to store a transaction record.
type CreateTransactionRequest struct {
	Cost     AmountInput `json:"cost" binding:"required,money"`
	Price    AmountInput `json:"price" binding:"required,money"`
	Quantity AmountInput `json:"quantity" binding:"required,quantity"`
	Currency string      `json:"currency,omitempty" binding:"omitempty,currency_code"`
}

// ListTransactionsParams defines parameters for keyset-paginated listing.
type ListTransactionsParams struct {
	Limit     int    `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken string `form:"nextToken"`
}

// TransactionResponse is the API shape of a stored record.
type TransactionResponse struct {
	ID                 int64         `json:"id"`
	Cost               MoneyResource `json:"cost"`
	Price              MoneyResource `json:"price"`
	Quantity           string        `json:"quantity"`
	PriceTimesQuantity MoneyResource `json:"priceTimesQuantity"`
	CreatedAt          time.Time     `json:"createdAt"`
	UpdatedAt          time.Time     `json:"updatedAt"`
}

// ListTransactionsResponse wraps a page of records.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToTransactionResponse converts a domain record for output.
func ToTransactionResponse(t domain.Transaction, labels domain.Labeler) (TransactionResponse, error) {
	ptq, err := t.PriceTimesQuantity()
	if err != nil {
		return TransactionResponse{}, err
	}
	return TransactionResponse{
		ID:                 t.ID,
		Cost:               NewMoneyResource(t.Cost, labels),
		Price:              NewMoneyResource(t.Price, labels),
		Quantity:           t.Quantity.StringFixed(domain.QuantityDecimalPlaces),
		PriceTimesQuantity: NewMoneyResource(ptq, labels),
		CreatedAt:          t.CreatedAt,
		UpdatedAt:          t.UpdatedAt,
	}, nil
}

// ToListTransactionsResponse converts a page of domain records for output.
func ToListTransactionsResponse(txns []domain.Transaction, nextToken *string, labels domain.Labeler) (ListTransactionsResponse, error) {
	out := ListTransactionsResponse{
		Transactions: make([]TransactionResponse, 0, len(txns)),
		NextToken:    nextToken,
	}
	for _, t := range txns {
		resp, err := ToTransactionResponse(t, labels)
		if err != nil {
			return ListTransactionsResponse{}, fmt.Errorf("transaction %d: %w", t.ID, err)
		}
		out.Transactions = append(out.Transactions, resp)
	}
	return out, nil
}
