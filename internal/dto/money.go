package dto

import "github.com/SscSPs/transactions_app/internal/core/domain"

// MoneyResource is the rendered form of a money amount.
type MoneyResource struct {
	Amount    int64  `json:"amount" example:"100050"`
	Currency  string `json:"currency" example:"EGP"`
	Formatted string `json:"formatted" example:"1,000.50 Egyptian Pound"`
	Decimal   string `json:"decimal" example:"1000.50"`
}

// NewMoneyResource renders m with the given currency labels.
func NewMoneyResource(m domain.Money, labels domain.Labeler) MoneyResource {
	return MoneyResource{
		Amount:    m.Amount(),
		Currency:  m.Currency().String(),
		Formatted: m.Format(labels),
		Decimal:   m.Decimal(),
	}
}
