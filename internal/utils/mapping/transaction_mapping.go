package mapping

import (
	"fmt"

	"github.com/SscSPs/transactions_app/internal/core/domain"
	"github.com/SscSPs/transactions_app/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		ID:           d.ID,
		CostMinor:    d.Cost.Amount(),
		PriceMinor:   d.Price.Amount(),
		Quantity:     d.Quantity,
		CurrencyCode: d.Currency().String(),
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction.
// It fails when the stored currency is not supported.
func ToDomainTransaction(m models.Transaction) (domain.Transaction, error) {
	currency, err := domain.ParseCurrency(m.CurrencyCode)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("transaction %d: %w", m.ID, err)
	}
	cost, err := domain.NewMoney(m.CostMinor, currency)
	if err != nil {
		return domain.Transaction{}, err
	}
	price, err := domain.NewMoney(m.PriceMinor, currency)
	if err != nil {
		return domain.Transaction{}, err
	}
	return domain.Transaction{
		ID:          m.ID,
		Cost:        cost,
		Price:       price,
		Quantity:    m.Quantity,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}, nil
}

// ToDomainTransactions converts model rows in order.
func ToDomainTransactions(ms []models.Transaction) ([]domain.Transaction, error) {
	out := make([]domain.Transaction, 0, len(ms))
	for _, m := range ms {
		d, err := ToDomainTransaction(m)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}
