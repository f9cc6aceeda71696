// Package journal reads recorded debts from CSV or YAML files and writes
// settlement payments back out as CSV.
package journal

import (
	"fmt"
	"strings"

	"fjacquet/debtsolver/internal/ledger"
	"fjacquet/debtsolver/internal/models"
)

// PartySeparator splits several debtors or creditors in one CSV cell.
const PartySeparator = "|"

// Entry is one recorded debt: the debtors jointly owe the creditors Amount.
type Entry struct {
	Debtors   []models.PartyID
	Creditors []models.PartyID
	Amount    models.Money
}

// IsSimple reports whether the entry has exactly one debtor and one creditor.
func (e Entry) IsSimple() bool {
	return len(e.Debtors) == 1 && len(e.Creditors) == 1
}

// Journal is an ordered list of entries in a single currency.
type Journal struct {
	Currency models.Currency
	Entries  []Entry
}

// Apply records every entry on l. Simple entries become a Transaction,
// the rest a MultiPartyTransaction.
func (j *Journal) Apply(l *ledger.Ledger) error {
	for i, entry := range j.Entries {
		if err := applyEntry(l, entry); err != nil {
			return fmt.Errorf("journal entry %d: %w", i+1, err)
		}
	}
	return nil
}

func applyEntry(l *ledger.Ledger, entry Entry) error {
	if entry.IsSimple() {
		tx, err := models.NewTransaction(entry.Debtors[0], entry.Creditors[0], entry.Amount)
		if err != nil {
			return err
		}
		return l.AddTransaction(tx)
	}
	tx, err := models.NewMultiPartyTransaction(entry.Debtors, entry.Creditors, entry.Amount)
	if err != nil {
		return err
	}
	return l.AddMultiPartyTransaction(tx)
}

// NewEntry builds an entry from raw party names and an amount string, using
// currency when code is empty.
func NewEntry(debtors, creditors []string, amount, code string, currency models.Currency) (Entry, error) {
	if strings.TrimSpace(code) == "" {
		code = currency.String()
	}
	money, err := models.NewMoneyFromString(amount, code)
	if err != nil {
		return Entry{}, err
	}
	return Entry{
		Debtors:   toParties(debtors),
		Creditors: toParties(creditors),
		Amount:    money,
	}, nil
}

// SplitParties splits a cell such as "Alice|Bob" into trimmed names.
func SplitParties(cell string) []string {
	var names []string
	for _, name := range strings.Split(cell, PartySeparator) {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names
}

func toParties(names []string) []models.PartyID {
	var parties []models.PartyID
	for _, name := range names {
		if name = strings.TrimSpace(name); name != "" {
			parties = append(parties, models.PartyID(name))
		}
	}
	return parties
}
