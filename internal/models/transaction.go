package models

import (
	"fmt"
	"strings"

	"fjacquet/debtsolver/internal/solvererror"
)

// PartyID identifies a debtor or creditor. Two parties are the same only
// when their identifiers are equal.
type PartyID string

// Transaction records that Debtor owes Creditor the given Amount. The same
// type describes recorded debts and the payments produced by a settlement.
type Transaction struct {
	Debtor   PartyID `json:"debtor" yaml:"debtor"`
	Creditor PartyID `json:"creditor" yaml:"creditor"`
	Amount   Money   `json:"amount" yaml:"amount"`
}

// NewTransaction creates a Transaction; the amount must be strictly positive.
func NewTransaction(debtor, creditor PartyID, amount Money) (Transaction, error) {
	if !amount.IsPositive() {
		return Transaction{}, &solvererror.InvalidAmountError{
			Amount: amount.String(),
			Reason: "must be greater than zero",
		}
	}
	return Transaction{
		Debtor:   debtor,
		Creditor: creditor,
		Amount:   amount,
	}, nil
}

func (t Transaction) String() string {
	return fmt.Sprintf("%s owes %s %s", t.Debtor, t.Creditor, t.Amount)
}

// MultiPartyTransaction records one amount owed by one or more debtors to
// one or more creditors, split evenly on each side.
type MultiPartyTransaction struct {
	Debtors   []PartyID `json:"debtors" yaml:"debtors"`
	Creditors []PartyID `json:"creditors" yaml:"creditors"`
	Amount    Money     `json:"amount" yaml:"amount"`
}

// NewMultiPartyTransaction creates a MultiPartyTransaction. The amount may be
// zero but not negative, and both sides need at least one party.
func NewMultiPartyTransaction(debtors, creditors []PartyID, amount Money) (MultiPartyTransaction, error) {
	if amount.IsNegative() {
		return MultiPartyTransaction{}, &solvererror.InvalidAmountError{
			Amount: amount.String(),
			Reason: "must not be negative",
		}
	}
	if len(debtors) == 0 || len(creditors) == 0 {
		return MultiPartyTransaction{}, &solvererror.InvalidAmountError{
			Amount: amount.String(),
			Reason: "needs at least one debtor and one creditor",
		}
	}
	return MultiPartyTransaction{
		Debtors:   append([]PartyID(nil), debtors...),
		Creditors: append([]PartyID(nil), creditors...),
		Amount:    amount,
	}, nil
}

func (t MultiPartyTransaction) String() string {
	return fmt.Sprintf("%s owes %s to %s", joinParties(t.Debtors), t.Amount, joinParties(t.Creditors))
}

func joinParties(parties []PartyID) string {
	names := make([]string, len(parties))
	for i, p := range parties {
		names[i] = string(p)
	}
	return strings.Join(names, ",")
}
