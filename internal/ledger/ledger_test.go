package ledger

import (
	"errors"
	"math/rand"
	"testing"

	"fjacquet/debtsolver/internal/logging"
	"fjacquet/debtsolver/internal/models"
	"fjacquet/debtsolver/internal/solvererror"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func usd(value int64) models.Money {
	return models.NewMoneyFromInt(value, models.USD)
}

func tx(t *testing.T, debtor, creditor string, value int64) models.Transaction {
	t.Helper()
	transaction, err := models.NewTransaction(models.PartyID(debtor), models.PartyID(creditor), usd(value))
	require.NoError(t, err)
	return transaction
}

func entryStrings(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = string(e.Party) + " " + e.Balance.String()
	}
	return out
}

func newTestLedger() *Ledger {
	l, err := New(models.USD, logging.NewMockLogger())
	if err != nil {
		panic(err)
	}
	return l
}

func TestNew_RejectsUnknownCurrency(t *testing.T) {
	for _, code := range []models.Currency{"", "XYZ", "usd"} {
		l, err := New(code, logging.NewMockLogger())
		assert.Nil(t, l, string(code))

		var unknown *solvererror.UnknownCurrencyError
		assert.True(t, errors.As(err, &unknown), string(code))
	}
}

func TestAddTransaction(t *testing.T) {
	l := newTestLedger()
	require.NoError(t, l.AddTransaction(tx(t, "Alice", "Bob", 10)))
	require.NoError(t, l.AddTransaction(tx(t, "Bob", "Charlie", 4)))

	assert.Equal(t, []string{
		"Alice -10.00 USD",
		"Bob 6.00 USD",
		"Charlie 4.00 USD",
	}, entryStrings(l.Balances()))
	assert.True(t, l.Sum().IsZero())
	assert.Equal(t, 3, l.Len())
	assert.True(t, l.Balance("Nobody").IsZero())
}

func TestAddTransaction_CurrencyMismatch(t *testing.T) {
	mock := logging.NewMockLogger()
	l, err := New(models.USD, mock)
	require.NoError(t, err)
	gbp, err := models.NewTransaction("A", "B", models.NewMoneyFromInt(1, models.GBP))
	require.NoError(t, err)

	err = l.AddTransaction(gbp)
	var mismatch *solvererror.CurrencyMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, 0, l.Len())

	warnings := mock.GetEntriesByLevel("WARN")
	require.Len(t, warnings, 1)
	assert.Equal(t, "Rejected transaction", warnings[0].Message)
	op, ok := warnings[0].FieldValue(logging.FieldOperation)
	require.True(t, ok)
	assert.Equal(t, "record", op)
}

func TestAddMultiPartyTransaction_DebtorRounding(t *testing.T) {
	mptx, err := models.NewMultiPartyTransaction([]models.PartyID{"A", "B", "C"}, []models.PartyID{"D"}, usd(10))
	require.NoError(t, err)

	l := newTestLedger()
	require.NoError(t, l.AddMultiPartyTransaction(mptx))

	assert.True(t, l.Sum().IsZero())
	assert.Equal(t, "-3.34 USD", l.Balance("A").String())
	assert.Equal(t, "-3.33 USD", l.Balance("B").String())
	assert.Equal(t, "-3.33 USD", l.Balance("C").String())
	assert.Equal(t, "10.00 USD", l.Balance("D").String())
}

func TestAddMultiPartyTransaction_CreditorRounding(t *testing.T) {
	mptx, err := models.NewMultiPartyTransaction([]models.PartyID{"A"}, []models.PartyID{"B", "C", "D"}, usd(10))
	require.NoError(t, err)

	l := newTestLedger()
	require.NoError(t, l.AddMultiPartyTransaction(mptx))

	assert.True(t, l.Sum().IsZero())
	assert.Equal(t, "3.34 USD", l.Balance("B").String())
}

func TestAddMultiPartyTransaction_CurrencyMismatch(t *testing.T) {
	mptx, err := models.NewMultiPartyTransaction([]models.PartyID{"A"}, []models.PartyID{"B"}, models.NewMoneyFromInt(5, models.EUR))
	require.NoError(t, err)

	l := newTestLedger()
	var mismatch *solvererror.CurrencyMismatchError
	assert.True(t, errors.As(l.AddMultiPartyTransaction(mptx), &mismatch))
	assert.Equal(t, 0, l.Len())
}

func TestLedger_ConservationUnderRandomTransactions(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	parties := []models.PartyID{"A", "B", "C", "D", "E", "F", "G"}

	l := newTestLedger()
	for i := 0; i < 200; i++ {
		amount := models.NewMoney(decimal.New(rng.Int63n(10000)+1, -2), models.USD)
		if rng.Intn(2) == 0 {
			debtor := parties[rng.Intn(len(parties))]
			creditor := parties[rng.Intn(len(parties))]
			transaction, err := models.NewTransaction(debtor, creditor, amount)
			require.NoError(t, err)
			require.NoError(t, l.AddTransaction(transaction))
		} else {
			debtors := parties[:rng.Intn(len(parties)-1)+1]
			creditors := parties[rng.Intn(len(parties)-1):]
			mptx, err := models.NewMultiPartyTransaction(debtors, creditors, amount)
			require.NoError(t, err)
			require.NoError(t, l.AddMultiPartyTransaction(mptx))
		}
		require.True(t, l.Sum().IsZero(), "sum drifted after transaction %d", i)
	}
}
