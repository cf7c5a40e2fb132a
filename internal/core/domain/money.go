package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// maxAmountInputLength bounds parse input so exponent tricks cannot blow up the decimal math.
const maxAmountInputLength = 64

var (
	// A comma followed by exactly 2 or 3 digits is read as a decimal comma ("1000,00").
	// "1,000" therefore parses as 1.000; keep this rule as is, changing it changes stored amounts.
	europeanDecimalPattern = regexp.MustCompile(`^(\d+),(\d{2,3})$`)
	numericLiteralPattern  = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

	maxMinorUnits = decimal.NewFromInt(math.MaxInt64)
	minMinorUnits = decimal.NewFromInt(math.MinInt64)
)

// Labeler resolves the localized display label of a currency.
type Labeler interface {
	Label(c Currency) string
}

// Money is an immutable amount of minor units (cents, fils) tagged with its currency.
// Every operation returns a new value; the zero value is 0 of no currency.
type Money struct {
	amount   int64
	currency Currency
}

// NewMoney builds a Money from minor units.
func NewMoney(amount int64, currency Currency) (Money, error) {
	if err := currency.Validate(); err != nil {
		return Money{}, err
	}
	return Money{amount: amount, currency: currency}, nil
}

// MustNewMoney is NewMoney for trusted inputs; it panics on an unsupported currency.
func MustNewMoney(amount int64, currency Currency) Money {
	m, err := NewMoney(amount, currency)
	if err != nil {
		panic(err)
	}
	return m
}

// Zero returns 0 minor units of currency.
func Zero(currency Currency) Money {
	return Money{currency: currency}
}

// ParseMoney parses a loosely formatted decimal string ("1,000.50", "1000,00", " 10. ")
// into minor units of currency, rounding half away from zero.
func ParseMoney(input string, currency Currency) (Money, error) {
	if err := currency.Validate(); err != nil {
		return Money{}, err
	}
	normalized, err := normalizeAmount(input)
	if err != nil {
		return Money{}, err
	}
	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidAmountFormat, input)
	}
	return MoneyFromDecimal(d, currency)
}

// MoneyFromDecimal converts a major-unit decimal into Money.
func MoneyFromDecimal(d decimal.Decimal, currency Currency) (Money, error) {
	if err := currency.Validate(); err != nil {
		return Money{}, err
	}
	amount, err := roundToMinorUnits(d.Mul(decimal.NewFromInt(currency.ScaleFactor())))
	if err != nil {
		return Money{}, fmt.Errorf("convert %s %s: %w", d.String(), currency, err)
	}
	return Money{amount: amount, currency: currency}, nil
}

// MoneyFromFloat converts a major-unit float (e.g. a generated price) into Money.
func MoneyFromFloat(f float64, currency Currency) (Money, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Money{}, fmt.Errorf("%w: %v", ErrInvalidAmountFormat, f)
	}
	return MoneyFromDecimal(decimal.NewFromFloat(f), currency)
}

func normalizeAmount(input string) (string, error) {
	s := strings.TrimSpace(input)
	if len(s) > maxAmountInputLength {
		return "", fmt.Errorf("%w: input too long", ErrInvalidAmountFormat)
	}
	s = strings.TrimSuffix(s, ".")

	switch {
	case strings.Contains(s, "."):
		// the last point is the decimal separator, commas before it group thousands
		idx := strings.LastIndex(s, ".")
		integerPart := strings.ReplaceAll(s[:idx], ",", "")
		fractionPart := s[idx+1:]
		if fractionPart == "" {
			s = integerPart
		} else {
			s = integerPart + "." + fractionPart
		}
	case strings.Contains(s, ","):
		if m := europeanDecimalPattern.FindStringSubmatch(s); m != nil {
			s = m[1] + "." + m[2]
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	}

	if !numericLiteralPattern.MatchString(s) {
		return "", fmt.Errorf("%w: %q", ErrInvalidAmountFormat, input)
	}
	return s, nil
}

// roundToMinorUnits rounds d half away from zero and checks it fits in int64.
func roundToMinorUnits(d decimal.Decimal) (int64, error) {
	if d.IsZero() {
		return 0, nil
	}
	// |d| < 10^magnitude
	magnitude := int64(d.NumDigits()) + int64(d.Exponent())
	if magnitude > 20 {
		return 0, ErrAmountOutOfRange
	}
	if magnitude < 0 {
		return 0, nil
	}
	return checkedIntPart(d.Round(0))
}

func checkedIntPart(d decimal.Decimal) (int64, error) {
	if d.GreaterThan(maxMinorUnits) || d.LessThan(minMinorUnits) {
		return 0, ErrAmountOutOfRange
	}
	return d.IntPart(), nil
}

// Amount returns the minor units.
func (m Money) Amount() int64 { return m.amount }

func (m Money) Currency() Currency { return m.currency }

func (m Money) IsNegative() bool { return m.amount < 0 }

func (m Money) IsZero() bool { return m.amount == 0 }

func (m Money) Equals(other Money) bool {
	return m.amount == other.amount && m.currency == other.currency
}

// Add returns m + other. Both must share a currency.
func (m Money) Add(other Money) (Money, error) {
	if !m.currency.Equals(other.currency) {
		return Money{}, fmt.Errorf("%w: cannot add %s to %s", ErrCurrencyMismatch, other.currency, m.currency)
	}
	sum := m.amount + other.amount
	if (other.amount > 0 && sum < m.amount) || (other.amount < 0 && sum > m.amount) {
		return Money{}, fmt.Errorf("add %d to %d: %w", other.amount, m.amount, ErrAmountOutOfRange)
	}
	return Money{amount: sum, currency: m.currency}, nil
}

// Subtract returns m - other. Both must share a currency.
func (m Money) Subtract(other Money) (Money, error) {
	if !m.currency.Equals(other.currency) {
		return Money{}, fmt.Errorf("%w: cannot subtract %s from %s", ErrCurrencyMismatch, other.currency, m.currency)
	}
	diff := m.amount - other.amount
	if (other.amount > 0 && diff > m.amount) || (other.amount < 0 && diff < m.amount) {
		return Money{}, fmt.Errorf("subtract %d from %d: %w", other.amount, m.amount, ErrAmountOutOfRange)
	}
	return Money{amount: diff, currency: m.currency}, nil
}

// Multiply scales the amount by a dimensionless factor, rounding once at the end.
func (m Money) Multiply(scalar decimal.Decimal) (Money, error) {
	amount, err := roundToMinorUnits(decimal.NewFromInt(m.amount).Mul(scalar))
	if err != nil {
		return Money{}, fmt.Errorf("multiply %d by %s: %w", m.amount, scalar.String(), err)
	}
	return Money{amount: amount, currency: m.currency}, nil
}

// Divide divides the amount by a non-zero factor, rounding once at the end.
func (m Money) Divide(scalar decimal.Decimal) (Money, error) {
	if scalar.IsZero() {
		return Money{}, ErrDivisionByZero
	}
	if m.amount == 0 {
		return Money{amount: 0, currency: m.currency}, nil
	}
	// 10^(amountDigits-1) <= |amount| and 10^(scalarMag-1) <= |scalar| < 10^scalarMag
	amountDigits := int64(decimal.NewFromInt(m.amount).NumDigits())
	scalarMag := int64(scalar.NumDigits()) + int64(scalar.Exponent())
	if amountDigits-1-scalarMag > 19 {
		return Money{}, fmt.Errorf("divide %d by a scalar below 1e%d: %w", m.amount, scalarMag, ErrAmountOutOfRange)
	}
	if amountDigits-scalarMag+1 < 0 {
		// |quotient| < 0.1
		return Money{amount: 0, currency: m.currency}, nil
	}
	amount, err := checkedIntPart(decimal.NewFromInt(m.amount).DivRound(scalar, 0))
	if err != nil {
		return Money{}, fmt.Errorf("divide %d by %s: %w", m.amount, scalar.String(), err)
	}
	return Money{amount: amount, currency: m.currency}, nil
}

// Decimal renders the major-unit value with exactly the currency's decimal places ("1234.50").
func (m Money) Decimal() string {
	places := int32(m.currency.DecimalPlaces())
	return decimal.New(m.amount, -places).StringFixed(places)
}

// Format renders grouped digits followed by the localized currency label ("1,234.50 Egyptian Pound").
func (m Money) Format(l Labeler) string {
	label := m.currency.String()
	if l != nil {
		label = l.Label(m.currency)
	}
	return groupThousands(m.Decimal()) + " " + label
}

func (m Money) String() string {
	return m.Decimal() + " " + m.currency.String()
}

type moneyJSON struct {
	Amount   int64    `json:"amount"`
	Currency Currency `json:"currency"`
	Decimal  string   `json:"decimal,omitempty"`
}

func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(moneyJSON{Amount: m.amount, Currency: m.currency, Decimal: m.Decimal()})
}

func (m *Money) UnmarshalJSON(data []byte) error {
	var raw moneyJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := NewMoney(raw.Amount, raw.Currency)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func groupThousands(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, fracPart, hasFrac := strings.Cut(s, ".")

	var b strings.Builder
	for i := 0; i < len(intPart); i++ {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteByte(intPart[i])
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(fracPart)
	}
	return sign + b.String()
}
