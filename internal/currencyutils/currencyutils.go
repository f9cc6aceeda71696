// Package currencyutils provides the amount parsing and formatting helpers
// shared by the money type, the journal readers and the CLI.
package currencyutils

import (
	"errors"
	"strings"

	"fjacquet/debtsolver/internal/solvererror"

	"github.com/shopspring/decimal"
)

const (
	// Separator groups thousands in the integer part and is ignored.
	Separator = ","
	// Delimiter separates the integer part from the fraction.
	Delimiter = "."
)

var (
	errEmpty              = errors.New("amount is empty")
	errMultipleDelimiters = errors.New("more than one decimal delimiter")
	errNotInteger         = errors.New("integer part must contain only digits and separators")
	errBadFraction        = errors.New("fraction must contain only digits")
)

// ParseAmount parses amounts such as "1,000,000", "29.99", "-3" or "+3".
// Thousands separators are ignored, and the result is rounded to places
// decimal digits. Currency symbols around the number are stripped first.
func ParseAmount(amountStr string, places int32) (decimal.Decimal, error) {
	standardized := StandardizeAmount(amountStr)
	if standardized == "" {
		return decimal.Zero, parseErr(amountStr, errEmpty)
	}

	parts := strings.Split(standardized, Delimiter)
	if len(parts) > 2 {
		return decimal.Zero, parseErr(amountStr, errMultipleDelimiters)
	}

	integer := strings.ReplaceAll(parts[0], Separator, "")
	sign := ""
	if strings.HasPrefix(integer, "-") || strings.HasPrefix(integer, "+") {
		if integer[0] == '-' {
			sign = "-"
		}
		integer = integer[1:]
	}
	if !isDigits(integer) {
		return decimal.Zero, parseErr(amountStr, errNotInteger)
	}

	normalized := sign + integer
	if len(parts) == 2 {
		if !isDigits(parts[1]) {
			return decimal.Zero, parseErr(amountStr, errBadFraction)
		}
		normalized += Delimiter + parts[1]
	}

	amount, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Zero, parseErr(amountStr, err)
	}
	return amount.Round(places), nil
}

// StandardizeAmount trims whitespace and any leading or trailing currency
// symbol or code, e.g. "$1,250.50" or "1,250.50 USD".
func StandardizeAmount(amountStr string) string {
	s := strings.TrimSpace(amountStr)
	for _, prefix := range []string{"$", "£", "€", "¥", "USD", "GBP", "EUR", "CHF", "JPY"} {
		if strings.HasPrefix(s, prefix) {
			s = strings.TrimSpace(strings.TrimPrefix(s, prefix))
			break
		}
	}
	for _, suffix := range []string{"USD", "GBP", "EUR", "CHF", "JPY"} {
		if strings.HasSuffix(s, suffix) {
			s = strings.TrimSpace(strings.TrimSuffix(s, suffix))
			break
		}
	}
	return s
}

// FormatAmount formats a decimal amount with the given number of places and
// the currency symbol or code.
// Returns strings like "CHF 1234.56" or "€1234.56"
func FormatAmount(amount decimal.Decimal, currency string, places int32) string {
	formattedAmount := amount.StringFixed(places)

	if currency != "" {
		switch strings.ToUpper(currency) {
		case "EUR":
			return "€" + formattedAmount
		case "USD":
			return "$" + formattedAmount
		case "GBP":
			return "£" + formattedAmount
		case "JPY":
			return "¥" + formattedAmount
		case "CHF":
			return "CHF " + formattedAmount
		default:
			return currency + " " + formattedAmount
		}
	}

	return formattedAmount
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func parseErr(value string, err error) error {
	return &solvererror.ParseError{Source: "amount", Field: "amount", Value: value, Err: err}
}
