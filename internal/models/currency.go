package models

import (
	"strings"

	"fjacquet/debtsolver/internal/solvererror"
)

// Currency is an ISO 4217 code from the closed set the solver supports.
type Currency string

// Supported currencies.
const (
	USD Currency = "USD"
	GBP Currency = "GBP"
	EUR Currency = "EUR"
	CHF Currency = "CHF"
	JPY Currency = "JPY"
)

// ParseCurrency validates a currency code. Lookup is case-insensitive and
// ignores surrounding whitespace.
func ParseCurrency(code string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(code)))
	if !c.Valid() {
		return "", &solvererror.UnknownCurrencyError{Code: code}
	}
	return c, nil
}

// Valid reports whether c is one of the supported currencies.
func (c Currency) Valid() bool {
	return c.Exponent() >= 0
}

// Exponent returns the number of decimal places of the currency's minor
// unit, or -1 for an unsupported code.
func (c Currency) Exponent() int32 {
	switch c {
	case USD, GBP, EUR, CHF:
		return 2
	case JPY:
		return 0
	default:
		return -1
	}
}

// String returns the currency code.
func (c Currency) String() string {
	return string(c)
}
