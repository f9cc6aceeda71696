// Package debtsolver is the public library surface of the settlement
// engine. Record debts on a Ledger, then call SettleAll (or Settle with a
// bounded group size) to get the payments that zero every balance.
//
//	l, _ := debtsolver.NewLedger(debtsolver.USD)
//	amount, _ := debtsolver.ParseMoney("10", "USD")
//	tx, _ := debtsolver.NewTransaction("Alice", "Bob", amount)
//	_ = l.AddTransaction(tx)
//	payments, err := l.SettleAll()
package debtsolver

import (
	"fjacquet/debtsolver/internal/ledger"
	"fjacquet/debtsolver/internal/logging"
	"fjacquet/debtsolver/internal/models"

	"github.com/shopspring/decimal"
)

type (
	// Money is an exact decimal amount in a single currency.
	Money = models.Money
	// Currency is a supported ISO 4217 code.
	Currency = models.Currency
	// PartyID identifies a participant.
	PartyID = models.PartyID
	// Transaction records that Debtor owes Creditor Amount. Settlement
	// payments use the same type.
	Transaction = models.Transaction
	// MultiPartyTransaction records that all Debtors jointly owe all
	// Creditors Amount, split evenly on each side.
	MultiPartyTransaction = models.MultiPartyTransaction
	// Ledger keeps one net balance per party.
	Ledger = ledger.Ledger
	// Entry is one party's balance as returned by Ledger.Balances.
	Entry = ledger.Entry
	// Logger receives the ledger's structured log output.
	Logger = logging.Logger
)

// Supported currencies.
const (
	USD = models.USD
	GBP = models.GBP
	EUR = models.EUR
	CHF = models.CHF
	JPY = models.JPY
)

// NewLedger returns an empty ledger for currency that only logs warnings and
// errors. It fails for currencies outside the supported set.
func NewLedger(currency Currency) (*Ledger, error) {
	return ledger.New(currency, logging.NewLogrusAdapter("warn", "text"))
}

// NewLedgerWithLogger returns an empty ledger logging to logger.
func NewLedgerWithLogger(currency Currency, logger Logger) (*Ledger, error) {
	return ledger.New(currency, logger)
}

// NewTransaction records that debtor owes creditor amount. The amount must
// be strictly positive.
func NewTransaction(debtor, creditor string, amount Money) (Transaction, error) {
	return models.NewTransaction(PartyID(debtor), PartyID(creditor), amount)
}

// NewMultiPartyTransaction records that debtors jointly owe creditors
// amount. Both sides must be non-empty and the amount non-negative.
func NewMultiPartyTransaction(debtors, creditors []string, amount Money) (MultiPartyTransaction, error) {
	return models.NewMultiPartyTransaction(toParties(debtors), toParties(creditors), amount)
}

// ParseMoney parses amounts such as "1,250.50" or "-3" and rounds them to
// the currency's minor unit.
func ParseMoney(amount, currency string) (Money, error) {
	return models.NewMoneyFromString(amount, currency)
}

// NewMoney wraps an exact decimal amount.
func NewMoney(amount decimal.Decimal, currency Currency) Money {
	return models.NewMoney(amount, currency)
}

// ParseCurrency validates a currency code, case-insensitively.
func ParseCurrency(code string) (Currency, error) {
	return models.ParseCurrency(code)
}

func toParties(names []string) []PartyID {
	parties := make([]PartyID, len(names))
	for i, name := range names {
		parties[i] = PartyID(name)
	}
	return parties
}
