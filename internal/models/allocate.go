package models

import (
	"fjacquet/debtsolver/internal/solvererror"

	"github.com/shopspring/decimal"
)

// MinorUnits returns the amount expressed in the currency's smallest unit.
// The second value is false when the amount has more precision than the
// currency allows.
func (m Money) MinorUnits() (decimal.Decimal, bool) {
	units := m.Amount.Shift(m.Currency.Exponent())
	return units, units.Equal(units.Truncate(0))
}

// Allocate splits m into len(ratios) shares proportional to ratios.
//
// Each share first receives floor(units * ratio / total) minor units; the
// leftover units are then handed out one at a time starting from the first
// share, so the shares always sum to m exactly and the distribution is
// deterministic.
func (m Money) Allocate(ratios []int) ([]Money, error) {
	if !m.Currency.Valid() {
		return nil, &solvererror.UnknownCurrencyError{Code: string(m.Currency)}
	}
	if len(ratios) == 0 {
		return nil, &solvererror.InvalidRatiosError{Ratios: ratios, Reason: "at least one ratio is required"}
	}
	total := int64(0)
	for _, r := range ratios {
		if r <= 0 {
			return nil, &solvererror.InvalidRatiosError{Ratios: ratios, Reason: "every ratio must be positive"}
		}
		total += int64(r)
	}
	if m.IsNegative() {
		return nil, &solvererror.InvalidAmountError{Amount: m.String(), Reason: "cannot allocate a negative amount"}
	}
	units, whole := m.MinorUnits()
	if !whole {
		return nil, &solvererror.InvalidAmountError{Amount: m.Amount.String() + " " + m.Currency.String(), Reason: "amount is not a whole number of minor units"}
	}

	totalDec := decimal.NewFromInt(total)
	shares := make([]decimal.Decimal, len(ratios))
	remainder := units
	for i, r := range ratios {
		share, _ := units.Mul(decimal.NewFromInt(int64(r))).QuoRem(totalDec, 0)
		shares[i] = share
		remainder = remainder.Sub(share)
	}

	one := decimal.NewFromInt(1)
	for i := 0; remainder.IsPositive(); i = (i + 1) % len(shares) {
		shares[i] = shares[i].Add(one)
		remainder = remainder.Sub(one)
	}

	exp := m.Currency.Exponent()
	allocations := make([]Money, len(shares))
	for i, share := range shares {
		allocations[i] = NewMoney(share.Shift(-exp), m.Currency)
	}
	return allocations, nil
}

// AllocateEvenly splits m into n shares that differ by at most one minor unit.
func (m Money) AllocateEvenly(n int) ([]Money, error) {
	if n <= 0 {
		return nil, &solvererror.InvalidRatiosError{Reason: "at least one share is required"}
	}
	ratios := make([]int, n)
	for i := range ratios {
		ratios[i] = 1
	}
	return m.Allocate(ratios)
}
