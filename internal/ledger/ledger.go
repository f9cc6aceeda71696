// Package ledger tracks net balances between parties and settles them with
// as few payments as the group search can find.
//
// A Ledger is not safe for concurrent use. Settle mutates its balances, so
// callers sharing a ledger must serialize access themselves.
package ledger

import (
	"fjacquet/debtsolver/internal/logging"
	"fjacquet/debtsolver/internal/models"
	"fjacquet/debtsolver/internal/solvererror"

	"github.com/shopspring/decimal"
)

// Entry is one party's net balance. Negative means the party owes money,
// positive means it is owed.
type Entry struct {
	Party   models.PartyID `json:"party" yaml:"party"`
	Balance models.Money   `json:"balance" yaml:"balance"`
}

// Ledger is a zero-sum record of who owes and who is owed. Parties are kept
// in the order they first appeared, which makes settlement deterministic.
type Ledger struct {
	currency        models.Currency
	order           []models.PartyID
	balances        map[models.PartyID]decimal.Decimal
	logger          logging.Logger
	maxCombinations int
}

// New creates an empty ledger for the given currency. The currency must be
// one of the supported codes.
func New(currency models.Currency, logger logging.Logger) (*Ledger, error) {
	if !currency.Valid() {
		return nil, &solvererror.UnknownCurrencyError{Code: string(currency)}
	}
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Ledger{
		currency: currency,
		balances: make(map[models.PartyID]decimal.Decimal),
		logger:   logger,
	}, nil
}

// Currency returns the currency every amount in the ledger must use.
func (l *Ledger) Currency() models.Currency {
	return l.currency
}

// SetMaxCombinations caps the number of candidate groups examined per
// Settle call. Zero means no cap.
func (l *Ledger) SetMaxCombinations(n int) {
	if n < 0 {
		n = 0
	}
	l.maxCombinations = n
}

// AddTransaction debits the debtor and credits the creditor.
func (l *Ledger) AddTransaction(tx models.Transaction) error {
	if err := l.checkCurrency(tx.Amount); err != nil {
		return err
	}
	l.credit(tx.Debtor, tx.Amount.Amount.Neg())
	l.credit(tx.Creditor, tx.Amount.Amount)
	return nil
}

// AddMultiPartyTransaction splits the amount evenly across the debtors and
// evenly across the creditors. The first debtor (and first creditor) takes
// the first leftover minor unit, so the total debited and credited both
// equal the amount exactly.
func (l *Ledger) AddMultiPartyTransaction(tx models.MultiPartyTransaction) error {
	if err := l.checkCurrency(tx.Amount); err != nil {
		return err
	}
	debts, err := tx.Amount.AllocateEvenly(len(tx.Debtors))
	if err != nil {
		return err
	}
	credits, err := tx.Amount.AllocateEvenly(len(tx.Creditors))
	if err != nil {
		return err
	}

	for i, debtor := range tx.Debtors {
		l.credit(debtor, debts[i].Amount.Neg())
	}
	for i, creditor := range tx.Creditors {
		l.credit(creditor, credits[i].Amount)
	}
	return nil
}

// Balance returns the party's net balance; unknown parties are at zero.
func (l *Ledger) Balance(party models.PartyID) models.Money {
	return models.NewMoney(l.balances[party], l.currency)
}

// Balances returns a snapshot of every known party's balance, in
// first-appearance order. Parties that reached zero are included.
func (l *Ledger) Balances() []Entry {
	entries := make([]Entry, 0, len(l.order))
	for _, party := range l.order {
		entries = append(entries, Entry{Party: party, Balance: l.Balance(party)})
	}
	return entries
}

// Sum returns the total of all balances, which is zero for any ledger built
// through the public API.
func (l *Ledger) Sum() models.Money {
	total := decimal.Zero
	for _, party := range l.order {
		total = total.Add(l.balances[party])
	}
	return models.NewMoney(total, l.currency)
}

// Len returns the number of parties the ledger has seen.
func (l *Ledger) Len() int {
	return len(l.order)
}

// IsSettled reports whether every balance is zero.
func (l *Ledger) IsSettled() bool {
	for _, party := range l.order {
		if !l.balances[party].IsZero() {
			return false
		}
	}
	return true
}

func (l *Ledger) checkCurrency(amount models.Money) error {
	if amount.Currency != l.currency {
		err := &solvererror.CurrencyMismatchError{
			Op:    "record",
			Left:  l.currency.String(),
			Right: amount.Currency.String(),
		}
		l.logger.WithError(err).Warn("Rejected transaction",
			logging.F(logging.FieldOperation, err.Op),
			logging.F(logging.FieldCurrency, amount.Currency.String()))
		return err
	}
	return nil
}

// credit adds delta to the party's balance, registering the party on first use.
func (l *Ledger) credit(party models.PartyID, delta decimal.Decimal) {
	current, ok := l.balances[party]
	if !ok {
		l.order = append(l.order, party)
		current = decimal.Zero
	}
	l.balances[party] = current.Add(delta)
}
