package dto

import "github.com/SscSPs/transactions_app/internal/core/domain"

// CurrencyResponse describes one supported currency.
type CurrencyResponse struct {
	Code          string `json:"code" example:"KWD"`
	DecimalPlaces int    `json:"decimalPlaces" example:"3"`
	ScaleFactor   int64  `json:"scaleFactor" example:"1000"`
	Label         string `json:"label" example:"Kuwaiti Dinar"`
}

// ListCurrenciesResponse wraps the currency registry.
type ListCurrenciesResponse struct {
	Currencies []CurrencyResponse `json:"currencies"`
}

// ToListCurrenciesResponse renders the registry with localized labels.
func ToListCurrenciesResponse(currencies []domain.Currency, labels domain.Labeler) ListCurrenciesResponse {
	out := ListCurrenciesResponse{Currencies: make([]CurrencyResponse, 0, len(currencies))}
	for _, c := range currencies {
		out.Currencies = append(out.Currencies, CurrencyResponse{
			Code:          c.String(),
			DecimalPlaces: c.DecimalPlaces(),
			ScaleFactor:   c.ScaleFactor(),
			Label:         labels.Label(c),
		})
	}
	return out
}
