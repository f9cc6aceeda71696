package models

import (
	"fmt"

	"fjacquet/debtsolver/internal/currencyutils"
	"fjacquet/debtsolver/internal/solvererror"

	"github.com/shopspring/decimal"
)

// Money represents an exact monetary value with currency
type Money struct {
	Amount   decimal.Decimal `json:"amount" yaml:"amount"`
	Currency Currency        `json:"currency" yaml:"currency"`
}

// NewMoney creates a new Money instance with the given amount and currency
func NewMoney(amount decimal.Decimal, currency Currency) Money {
	return Money{
		Amount:   amount,
		Currency: currency,
	}
}

// NewMoneyFromInt creates a Money of a whole number of major units
func NewMoneyFromInt(amount int64, currency Currency) Money {
	return Money{
		Amount:   decimal.NewFromInt(amount),
		Currency: currency,
	}
}

// NewMoneyFromString parses a human-entered amount such as "1,250.50" and
// rounds it to the currency's minor unit.
func NewMoneyFromString(amount, currency string) (Money, error) {
	cur, err := ParseCurrency(currency)
	if err != nil {
		return Money{}, err
	}
	dec, err := currencyutils.ParseAmount(amount, cur.Exponent())
	if err != nil {
		return Money{}, err
	}
	return Money{
		Amount:   dec,
		Currency: cur,
	}, nil
}

// ZeroMoney returns a Money instance with zero amount in the given currency
func ZeroMoney(currency Currency) Money {
	return Money{
		Amount:   decimal.Zero,
		Currency: currency,
	}
}

// IsZero returns true if the amount is zero
func (m Money) IsZero() bool {
	return m.Amount.IsZero()
}

// IsPositive returns true if the amount is strictly positive
func (m Money) IsPositive() bool {
	return m.Amount.IsPositive()
}

// IsNegative returns true if the amount is strictly negative
func (m Money) IsNegative() bool {
	return m.Amount.IsNegative()
}

// Abs returns the absolute value of the money amount
func (m Money) Abs() Money {
	return Money{
		Amount:   m.Amount.Abs(),
		Currency: m.Currency,
	}
}

// Neg returns the negated money amount
func (m Money) Neg() Money {
	return Money{
		Amount:   m.Amount.Neg(),
		Currency: m.Currency,
	}
}

// Add adds another Money value to this one
// Returns an error if currencies don't match
func (m Money) Add(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, &solvererror.CurrencyMismatchError{Op: "add", Left: m.Currency.String(), Right: other.Currency.String()}
	}
	return Money{
		Amount:   m.Amount.Add(other.Amount),
		Currency: m.Currency,
	}, nil
}

// Sub subtracts another Money value from this one
// Returns an error if currencies don't match
func (m Money) Sub(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, &solvererror.CurrencyMismatchError{Op: "subtract", Left: m.Currency.String(), Right: other.Currency.String()}
	}
	return Money{
		Amount:   m.Amount.Sub(other.Amount),
		Currency: m.Currency,
	}, nil
}

// Compare compares two Money values
// Returns -1 if m < other, 0 if m == other, 1 if m > other
// Returns an error if currencies don't match
func (m Money) Compare(other Money) (int, error) {
	if m.Currency != other.Currency {
		return 0, &solvererror.CurrencyMismatchError{Op: "compare", Left: m.Currency.String(), Right: other.Currency.String()}
	}
	return m.Amount.Cmp(other.Amount), nil
}

// Min returns the smaller of two amounts of the same currency
func (m Money) Min(other Money) (Money, error) {
	cmp, err := m.Compare(other)
	if err != nil {
		return Money{}, err
	}
	if cmp <= 0 {
		return m, nil
	}
	return other, nil
}

// Equal returns true if two Money values are equal (same amount and currency)
func (m Money) Equal(other Money) bool {
	return m.Amount.Equal(other.Amount) && m.Currency == other.Currency
}

// String returns the amount with the currency's minor-unit places, e.g. "20.00 USD"
func (m Money) String() string {
	places := m.Currency.Exponent()
	if places < 0 {
		places = 2
	}
	return fmt.Sprintf("%s %s", m.Amount.StringFixed(places), m.Currency)
}

// Format returns the amount in display form with a currency symbol, e.g. "$20.00"
func (m Money) Format() string {
	places := m.Currency.Exponent()
	if places < 0 {
		places = 2
	}
	return currencyutils.FormatAmount(m.Amount, m.Currency.String(), places)
}
