// Package solvererror defines the typed errors returned by the ledger and
// settlement packages. Every type can be matched with errors.As.
package solvererror

import (
	"fmt"
	"strings"
)

// InvalidAmountError is returned when a transaction is built with an amount
// outside the range its kind accepts.
type InvalidAmountError struct {
	Amount string
	Reason string
}

func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("transaction amount %s is invalid: %s", e.Amount, e.Reason)
}

// CurrencyMismatchError is returned when two amounts of different currencies
// meet in one operation.
type CurrencyMismatchError struct {
	Op    string
	Left  string
	Right string
}

func (e *CurrencyMismatchError) Error() string {
	return fmt.Sprintf("cannot %s different currencies: %s and %s", e.Op, e.Left, e.Right)
}

// UnknownCurrencyError is returned for currency codes outside the supported set.
type UnknownCurrencyError struct {
	Code string
}

func (e *UnknownCurrencyError) Error() string {
	return fmt.Sprintf("unknown currency code '%s'", e.Code)
}

// InvalidRatiosError signals a caller bug in an allocation request.
type InvalidRatiosError struct {
	Ratios []int
	Reason string
}

func (e *InvalidRatiosError) Error() string {
	parts := make([]string, len(e.Ratios))
	for i, r := range e.Ratios {
		parts[i] = fmt.Sprintf("%d", r)
	}
	return fmt.Sprintf("invalid allocation ratios [%s]: %s", strings.Join(parts, ","), e.Reason)
}

// UnbalancedLedgerError reports a ledger whose balances do not sum to zero.
// Party is set when a single leftover balance was found after settlement.
type UnbalancedLedgerError struct {
	Sum   string
	Party string
}

func (e *UnbalancedLedgerError) Error() string {
	if e.Party != "" {
		return fmt.Sprintf("ledger unbalanced: %s still holds %s after settlement", e.Party, e.Sum)
	}
	return fmt.Sprintf("ledger unbalanced: balances sum to %s instead of zero", e.Sum)
}

// ParseError represents an error while reading an amount or a journal record.
type ParseError struct {
	Source string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Source, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
