package i18n

import (
	"fmt"

	"github.com/SscSPs/transactions_app/internal/core/domain"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Locale selects the currency label table.
type Locale string

const (
	English Locale = "en"
	Arabic  Locale = "ar"
)

// DefaultLocale is used when negotiation finds nothing better.
const DefaultLocale = English

var (
	supportedLocales = []Locale{English, Arabic}
	matcher          = language.NewMatcher([]language.Tag{language.English, language.Arabic})
	countPrinter     = message.NewPrinter(language.English)
)

var currencyLabels = map[Locale]map[domain.Currency]string{
	English: {
		domain.EGP: "Egyptian Pound",
		domain.SAR: "Saudi Riyal",
		domain.KWD: "Kuwaiti Dinar",
	},
	Arabic: {
		domain.EGP: "ج.م",
		domain.SAR: "ر.س",
		domain.KWD: "د.ك",
	},
}

// Labeler renders currency labels for one locale. It satisfies domain.Labeler.
type Labeler struct {
	locale Locale
}

var _ domain.Labeler = Labeler{}

// NewLabeler returns a labeler for locale, falling back to DefaultLocale for unknown locales.
func NewLabeler(locale Locale) Labeler {
	if _, ok := currencyLabels[locale]; !ok {
		locale = DefaultLocale
	}
	return Labeler{locale: locale}
}

// ParseLocale resolves a BCP 47 tag such as "ar-EG" to a supported locale.
func ParseLocale(s string) (Locale, error) {
	tag, err := language.Parse(s)
	if err != nil {
		return "", fmt.Errorf("parse locale %q: %w", s, err)
	}
	_, index, confidence := matcher.Match(tag)
	if confidence == language.No {
		return "", fmt.Errorf("unsupported locale %q", s)
	}
	return supportedLocales[index], nil
}

// FromAcceptLanguage negotiates a labeler from an Accept-Language header.
func FromAcceptLanguage(header string) Labeler {
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return NewLabeler(DefaultLocale)
	}
	_, index, _ := matcher.Match(tags...)
	return NewLabeler(supportedLocales[index])
}

// Locale returns the locale the labeler renders in.
func (l Labeler) Locale() Locale {
	return l.locale
}

// Label returns the localized display label, or the code for currencies without one.
func (l Labeler) Label(c domain.Currency) string {
	if label, ok := currencyLabels[l.locale][c]; ok {
		return label
	}
	if label, ok := currencyLabels[DefaultLocale][c]; ok {
		return label
	}
	return c.String()
}

// FormatCount renders an integer with thousands separators ("1,000,000").
func FormatCount(n int64) string {
	return countPrinter.Sprintf("%d", n)
}
