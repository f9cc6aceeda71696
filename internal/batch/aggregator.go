// Package batch combines several journal files into one journal so a group
// whose debts are spread over many files can be settled in a single run.
package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"fjacquet/debtsolver/internal/journal"
	"fjacquet/debtsolver/internal/logging"
	"fjacquet/debtsolver/internal/solvererror"
)

// ReadFunc loads one journal file.
type ReadFunc func(path string) (*journal.Journal, error)

// Aggregator merges journal files.
type Aggregator struct {
	logger logging.Logger
}

// NewAggregator creates an Aggregator. A nil logger falls back to the
// default logger.
func NewAggregator(logger logging.Logger) *Aggregator {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Aggregator{logger: logger}
}

// FindJournals lists the .csv, .yaml and .yml files directly inside dir,
// sorted by name. Subdirectories are not searched.
func (a *Aggregator) FindJournals(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("error reading journal directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, err := journal.DetectFormat(entry.Name()); err != nil {
			a.logger.Debug("Skipping non-journal file", logging.F(logging.FieldInputFile, entry.Name()))
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)

	if len(files) == 0 {
		return nil, fmt.Errorf("no journal files found in %s", dir)
	}
	return files, nil
}

// Aggregate reads every file and concatenates the entries in file order.
// All files must share one currency; any read failure aborts the whole
// aggregation, since settling a partial set of debts gives wrong payments.
func (a *Aggregator) Aggregate(files []string, read ReadFunc) (*journal.Journal, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no journal files to aggregate")
	}

	var combined *journal.Journal
	var currencySource string
	for _, file := range files {
		j, err := read(file)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(file), err)
		}

		if combined == nil {
			combined = &journal.Journal{Currency: j.Currency}
			currencySource = file
		} else if j.Currency != combined.Currency {
			return nil, fmt.Errorf("%s: %w", filepath.Base(file), &solvererror.CurrencyMismatchError{
				Op:    "aggregate",
				Left:  fmt.Sprintf("%s (%s)", combined.Currency, filepath.Base(currencySource)),
				Right: j.Currency.String(),
			})
		}

		a.logger.Debug("Loaded journal",
			logging.F(logging.FieldInputFile, filepath.Base(file)),
			logging.F(logging.FieldCount, len(j.Entries)))
		combined.Entries = append(combined.Entries, j.Entries...)
	}

	a.detectAndLogDuplicates(combined.Entries)

	a.logger.Info("Aggregated journal files",
		logging.F(logging.FieldCount, len(files)),
		logging.F(logging.FieldCurrency, combined.Currency.String()))
	return combined, nil
}

// detectAndLogDuplicates warns about identical entries, which usually
// means the same debt was recorded in two files. Duplicates are kept.
func (a *Aggregator) detectAndLogDuplicates(entries []journal.Entry) int {
	seen := make(map[string]bool, len(entries))
	duplicates := 0
	for _, e := range entries {
		key := entryKey(e)
		if seen[key] {
			duplicates++
			a.logger.Warn("Potential duplicate journal entry",
				logging.F(logging.FieldDebtor, joinNames(e.Debtors)),
				logging.F(logging.FieldCreditor, joinNames(e.Creditors)),
				logging.F(logging.FieldAmount, e.Amount.String()))
			continue
		}
		seen[key] = true
	}

	if duplicates > 0 {
		a.logger.Warn("Found potential duplicate journal entries", logging.F(logging.FieldCount, duplicates))
	}
	return duplicates
}

func entryKey(e journal.Entry) string {
	return joinNames(e.Debtors) + ">" + joinNames(e.Creditors) + ">" + e.Amount.String()
}

func joinNames[T ~string](parties []T) string {
	names := make([]string, len(parties))
	for i, p := range parties {
		names[i] = string(p)
	}
	return strings.Join(names, journal.PartySeparator)
}
