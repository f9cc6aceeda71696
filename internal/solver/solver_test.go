package solver

import (
	"errors"
	"testing"

	"fjacquet/debtsolver/internal/journal"
	"fjacquet/debtsolver/internal/ledger"
	"fjacquet/debtsolver/internal/logging"
	"fjacquet/debtsolver/internal/models"
	"fjacquet/debtsolver/internal/solvererror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(t *testing.T, debtors, creditors []string, amount, code string) journal.Entry {
	t.Helper()
	e, err := journal.NewEntry(debtors, creditors, amount, code, models.USD)
	require.NoError(t, err)
	return e
}

func chainJournal(t *testing.T) *journal.Journal {
	return &journal.Journal{
		Currency: models.USD,
		Entries: []journal.Entry{
			entry(t, []string{"Alice"}, []string{"Bob"}, "10", ""),
			entry(t, []string{"Bob"}, []string{"Charlie"}, "10", ""),
		},
	}
}

func paymentStrings(payments []models.Transaction) []string {
	out := make([]string, len(payments))
	for i, p := range payments {
		out[i] = p.String()
	}
	return out
}

func balanceStrings(entries []ledger.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = string(e.Party) + " " + e.Balance.String()
	}
	return out
}

func TestSettle_Chain(t *testing.T) {
	logger := logging.NewMockLogger()
	s := New(logger, Options{})

	result, err := s.Settle(chainJournal(t))
	require.NoError(t, err)

	_, err = uuid.Parse(result.RunID)
	assert.NoError(t, err, "run ID should be a UUID")
	assert.Equal(t, models.USD, result.Currency)
	assert.Equal(t, []string{"Alice owes Charlie 10.00 USD"}, paymentStrings(result.Payments))
	assert.Equal(t, []string{
		"Alice -10.00 USD",
		"Bob 0.00 USD",
		"Charlie 10.00 USD",
	}, balanceStrings(result.Balances))

	var complete *logging.LogEntry
	for _, e := range logger.GetEntriesByLevel("INFO") {
		if e.Message == "Settlement run complete" {
			e := e
			complete = &e
		}
	}
	require.NotNil(t, complete)
	runID, ok := complete.FieldValue(logging.FieldRunID)
	require.True(t, ok)
	assert.Equal(t, result.RunID, runID)
	payments, _ := complete.FieldValue(logging.FieldPayments)
	assert.Equal(t, 1, payments)
}

func TestSettle_RunIDsAreUnique(t *testing.T) {
	s := New(logging.NewMockLogger(), Options{})

	first, err := s.Settle(chainJournal(t))
	require.NoError(t, err)
	second, err := s.Settle(chainJournal(t))
	require.NoError(t, err)

	assert.NotEqual(t, first.RunID, second.RunID)
}

func TestSettleWith_GroupSize(t *testing.T) {
	j := &journal.Journal{
		Currency: models.USD,
		Entries: []journal.Entry{
			entry(t, []string{"A"}, []string{"B"}, "2", ""),
			entry(t, []string{"C"}, []string{"F"}, "3", ""),
			entry(t, []string{"D"}, []string{"F"}, "5", ""),
			entry(t, []string{"E"}, []string{"F"}, "7", ""),
		},
	}
	s := New(logging.NewMockLogger(), Options{MaxGroupSize: 1})

	tests := []struct {
		name    string
		options Options
	}{
		{name: "greedy only", options: Options{MaxGroupSize: 1}},
		{name: "pairs", options: Options{MaxGroupSize: 2}},
		{name: "all groups", options: Options{}},
		{name: "tiny budget", options: Options{MaxCombinations: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := s.SettleWith(j, tt.options)
			require.NoError(t, err)
			assert.ElementsMatch(t, []string{
				"A owes B 2.00 USD",
				"C owes F 3.00 USD",
				"D owes F 5.00 USD",
				"E owes F 7.00 USD",
			}, paymentStrings(result.Payments))
		})
	}
}

func TestSettle_MultiPartyEntry(t *testing.T) {
	j := &journal.Journal{
		Currency: models.USD,
		Entries: []journal.Entry{
			entry(t, []string{"Alice", "Bob", "Charlie"}, []string{"Dana"}, "10", ""),
		},
	}
	s := New(logging.NewMockLogger(), Options{})

	result, err := s.Settle(j)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Alice owes Dana 3.34 USD",
		"Bob owes Dana 3.33 USD",
		"Charlie owes Dana 3.33 USD",
	}, paymentStrings(result.Payments))
}

func TestSettle_Errors(t *testing.T) {
	s := New(logging.NewMockLogger(), Options{})

	_, err := s.Settle(nil)
	assert.Error(t, err)

	_, err = s.SettleWith(chainJournal(t), Options{MaxGroupSize: -1})
	assert.Error(t, err)

	_, err = s.Settle(&journal.Journal{})
	assert.Error(t, err, "journal without a currency")

	mixed := &journal.Journal{
		Currency: models.USD,
		Entries:  []journal.Entry{entry(t, []string{"A"}, []string{"B"}, "5", "GBP")},
	}
	_, err = s.Settle(mixed)
	require.Error(t, err)
	var mismatch *solvererror.CurrencyMismatchError
	assert.True(t, errors.As(err, &mismatch))
	assert.Contains(t, err.Error(), "journal entry 1")
}

func TestBalances(t *testing.T) {
	s := New(nil, Options{})

	balances, err := s.Balances(chainJournal(t))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Alice -10.00 USD",
		"Bob 0.00 USD",
		"Charlie 10.00 USD",
	}, balanceStrings(balances))

	_, err = s.Balances(nil)
	assert.Error(t, err)
}

func TestOptions(t *testing.T) {
	s := New(nil, Options{MaxGroupSize: 3, MaxCombinations: 100})
	assert.Equal(t, Options{MaxGroupSize: 3, MaxCombinations: 100}, s.Options())
}
