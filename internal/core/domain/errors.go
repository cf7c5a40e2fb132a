package domain

import "errors"

// Money and currency errors. Callers branch on these with errors.Is; the
// returned errors usually wrap them with the offending input.
var (
	// ErrUnsupportedCurrency indicates a currency code outside the registry.
	ErrUnsupportedCurrency = errors.New("unsupported currency")

	// ErrInvalidAmountFormat indicates a money input that is not numeric after normalization.
	ErrInvalidAmountFormat = errors.New("invalid amount format")

	// ErrCurrencyMismatch indicates an add/subtract across two different currencies.
	ErrCurrencyMismatch = errors.New("currencies must be the same")

	// ErrDivisionByZero indicates a Money divided by a zero scalar.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrAmountOutOfRange indicates a result that does not fit in int64 minor units.
	ErrAmountOutOfRange = errors.New("amount out of range")

	// ErrInvalidQuantity indicates a quantity that is not a positive 2-place decimal.
	ErrInvalidQuantity = errors.New("invalid quantity")
)
