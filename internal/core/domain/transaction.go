package domain

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// QuantityDecimalPlaces is the fixed scale of a transaction quantity.
const QuantityDecimalPlaces = 2

// maxQuantityIntegerDigits matches the NUMERIC(12,2) quantity column.
const maxQuantityIntegerDigits = 12 - QuantityDecimalPlaces

var quantityLiteralPattern = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)$`)

// Transaction is one immutable purchase record: its cost and the unit price times quantity
// it should add up to. Records are ordered by ID only.
type Transaction struct {
	ID       int64           `json:"id"`
	Cost     Money           `json:"cost"`
	Price    Money           `json:"price"`
	Quantity decimal.Decimal `json:"quantity"`
	AuditFields
}

// Currency returns the currency the record is denominated in.
func (t Transaction) Currency() Currency {
	return t.Cost.Currency()
}

// PriceTimesQuantity returns price × quantity, rounded once to minor units.
func (t Transaction) PriceTimesQuantity() (Money, error) {
	return t.Price.Multiply(t.Quantity)
}

// Validate checks the invariants a stored record must hold.
func (t Transaction) Validate() error {
	if !t.Cost.Currency().Equals(t.Price.Currency()) {
		return fmt.Errorf("%w: cost is %s, price is %s", ErrCurrencyMismatch, t.Cost.Currency(), t.Price.Currency())
	}
	if err := t.Cost.Currency().Validate(); err != nil {
		return err
	}
	if t.Cost.IsNegative() || t.Price.IsNegative() {
		return fmt.Errorf("%w: cost and price must not be negative", ErrInvalidAmountFormat)
	}
	return ValidateQuantity(t.Quantity)
}

// ValidateQuantity accepts positive values below 10^10 with at most two decimal places,
// the range of the NUMERIC(12,2) quantity column.
func ValidateQuantity(q decimal.Decimal) error {
	if q.Exponent() < -maxAmountInputLength {
		return fmt.Errorf("%w: more than %d decimal places", ErrInvalidQuantity, QuantityDecimalPlaces)
	}
	// |q| < 10^magnitude
	if magnitude := int64(q.NumDigits()) + int64(q.Exponent()); magnitude > maxQuantityIntegerDigits {
		return fmt.Errorf("%w: must be below 1e%d", ErrInvalidQuantity, maxQuantityIntegerDigits)
	}
	if !q.IsPositive() {
		return fmt.Errorf("%w: %s must be positive", ErrInvalidQuantity, q.String())
	}
	if !q.Equal(q.Truncate(QuantityDecimalPlaces)) {
		return fmt.Errorf("%w: %s has more than %d decimal places", ErrInvalidQuantity, q.String(), QuantityDecimalPlaces)
	}
	return nil
}

// ParseQuantity parses a plain decimal quantity such as "12.50". Exponent notation is rejected.
func ParseQuantity(input string) (decimal.Decimal, error) {
	s := strings.TrimSpace(input)
	if len(s) > maxAmountInputLength || !quantityLiteralPattern.MatchString(s) {
		return decimal.Zero, fmt.Errorf("%w: not a plain decimal", ErrInvalidQuantity)
	}
	q, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidQuantity, s)
	}
	if err := ValidateQuantity(q); err != nil {
		return decimal.Zero, err
	}
	return q, nil
}
