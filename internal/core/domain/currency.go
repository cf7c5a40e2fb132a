package domain

import (
	"fmt"
	"strings"
)

// Currency is a supported ISO 4217 currency code.
type Currency string

const (
	EGP Currency = "EGP"
	SAR Currency = "SAR"
	KWD Currency = "KWD"
)

// currencyInfo is the static minor-unit metadata of a currency.
type currencyInfo struct {
	decimalPlaces int
	scaleFactor   int64
}

var currencyRegistry = map[Currency]currencyInfo{
	EGP: {decimalPlaces: 2, scaleFactor: 100},
	SAR: {decimalPlaces: 2, scaleFactor: 100},
	KWD: {decimalPlaces: 3, scaleFactor: 1000},
}

// supportedCurrencies keeps declaration order for listings.
var supportedCurrencies = []Currency{EGP, SAR, KWD}

// ParseCurrency resolves a currency code (case-insensitive) against the registry.
func ParseCurrency(code string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(code)))
	if err := c.Validate(); err != nil {
		return "", err
	}
	return c, nil
}

// SupportedCurrencies returns every registered currency.
func SupportedCurrencies() []Currency {
	out := make([]Currency, len(supportedCurrencies))
	copy(out, supportedCurrencies)
	return out
}

// DecimalPlaces returns the minor-unit digits for a currency code.
func DecimalPlaces(code string) (int, error) {
	c, err := ParseCurrency(code)
	if err != nil {
		return 0, err
	}
	return c.DecimalPlaces(), nil
}

// ScaleFactor returns 10^decimalPlaces for a currency code.
func ScaleFactor(code string) (int64, error) {
	c, err := ParseCurrency(code)
	if err != nil {
		return 0, err
	}
	return c.ScaleFactor(), nil
}

// Validate reports ErrUnsupportedCurrency for codes outside the registry.
func (c Currency) Validate() error {
	if _, ok := currencyRegistry[c]; !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedCurrency, string(c))
	}
	return nil
}

// DecimalPlaces returns the number of minor-unit digits (0 for unknown codes).
func (c Currency) DecimalPlaces() int {
	return currencyRegistry[c].decimalPlaces
}

// ScaleFactor returns the minor units per major unit (0 for unknown codes).
func (c Currency) ScaleFactor() int64 {
	return currencyRegistry[c].scaleFactor
}

func (c Currency) Equals(other Currency) bool {
	return c == other
}

func (c Currency) String() string {
	return string(c)
}
