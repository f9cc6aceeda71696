// Package solver runs one settlement over a journal: it builds a fresh
// ledger, records every entry and asks the ledger for the payments that
// clear it. Each run is tagged with its own run ID in the logs.
package solver

import (
	"fmt"
	"time"

	"fjacquet/debtsolver/internal/journal"
	"fjacquet/debtsolver/internal/ledger"
	"fjacquet/debtsolver/internal/logging"
	"fjacquet/debtsolver/internal/models"

	"github.com/google/uuid"
)

// Options bounds the settlement search. MaxGroupSize 0 searches every group
// size; MaxCombinations 0 means no budget.
type Options struct {
	MaxGroupSize    int
	MaxCombinations int
}

// Result is the outcome of one settlement run. Balances are the net
// positions before settlement, in order of first appearance.
type Result struct {
	RunID    string
	Currency models.Currency
	Payments []models.Transaction
	Balances []ledger.Entry
}

// Solver settles journals. It holds no per-run state and may be shared.
type Solver struct {
	logger  logging.Logger
	options Options
}

// New creates a Solver. A nil logger falls back to the default logger.
func New(logger logging.Logger, options Options) *Solver {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Solver{logger: logger, options: options}
}

// Options returns the defaults used by Settle.
func (s *Solver) Options() Options {
	return s.options
}

// Settle settles j with the solver's default options.
func (s *Solver) Settle(j *journal.Journal) (*Result, error) {
	return s.SettleWith(j, s.options)
}

// SettleWith settles j with explicit options.
func (s *Solver) SettleWith(j *journal.Journal, options Options) (*Result, error) {
	if j == nil {
		return nil, fmt.Errorf("journal cannot be nil")
	}
	if options.MaxGroupSize < 0 {
		return nil, fmt.Errorf("max group size must be 0 or greater, got: %d", options.MaxGroupSize)
	}

	runID := uuid.NewString()
	logger := s.logger.WithFields(
		logging.F(logging.FieldRunID, runID),
		logging.F(logging.FieldCurrency, j.Currency.String()))
	start := time.Now()

	l, err := s.record(j, logger)
	if err != nil {
		return nil, err
	}
	l.SetMaxCombinations(options.MaxCombinations)
	balances := l.Balances()

	var payments []models.Transaction
	if options.MaxGroupSize == 0 {
		payments, err = l.SettleAll()
	} else {
		payments, err = l.Settle(options.MaxGroupSize)
	}
	if err != nil {
		return nil, fmt.Errorf("settlement run %s: %w", runID, err)
	}

	logger.Info("Settlement run complete",
		logging.F(logging.FieldParties, len(balances)),
		logging.F(logging.FieldPayments, len(payments)),
		logging.F(logging.FieldDuration, time.Since(start).Milliseconds()))

	return &Result{
		RunID:    runID,
		Currency: j.Currency,
		Payments: payments,
		Balances: balances,
	}, nil
}

// Balances returns the net position of every party in j without settling.
func (s *Solver) Balances(j *journal.Journal) ([]ledger.Entry, error) {
	if j == nil {
		return nil, fmt.Errorf("journal cannot be nil")
	}
	l, err := s.record(j, s.logger)
	if err != nil {
		return nil, err
	}
	return l.Balances(), nil
}

func (s *Solver) record(j *journal.Journal, logger logging.Logger) (*ledger.Ledger, error) {
	l, err := ledger.New(j.Currency, logger)
	if err != nil {
		return nil, fmt.Errorf("journal currency: %w", err)
	}
	if err := j.Apply(l); err != nil {
		return nil, err
	}
	logger.Debug("Recorded journal",
		logging.F(logging.FieldCount, len(j.Entries)),
		logging.F(logging.FieldParties, l.Len()))
	return l, nil
}
