package journal

import (
	"fmt"
	"io"

	"fjacquet/debtsolver/internal/models"
	"fjacquet/debtsolver/internal/solvererror"

	"gopkg.in/yaml.v3"
)

type yamlJournal struct {
	Currency     string      `yaml:"currency"`
	Transactions []yamlEntry `yaml:"transactions"`
}

type yamlEntry struct {
	Debtor    string   `yaml:"debtor,omitempty"`
	Creditor  string   `yaml:"creditor,omitempty"`
	Debtors   []string `yaml:"debtors,omitempty"`
	Creditors []string `yaml:"creditors,omitempty"`
	Amount    string   `yaml:"amount"`
	Currency  string   `yaml:"currency,omitempty"`
}

// ReadYAML parses a journal document:
//
//	currency: USD
//	transactions:
//	  - debtor: Alice
//	    creditor: Bob
//	    amount: "20"
//	  - debtors: [Alice, Bob]
//	    creditors: [Charlie]
//	    amount: "10.00"
//
// The document currency overrides the given default.
func ReadYAML(in io.Reader, currency models.Currency) (*Journal, error) {
	var doc yamlJournal
	if err := yaml.NewDecoder(in).Decode(&doc); err != nil && err != io.EOF {
		return nil, &solvererror.ParseError{Source: "yaml", Field: "journal", Value: "", Err: err}
	}

	if doc.Currency != "" {
		parsed, err := models.ParseCurrency(doc.Currency)
		if err != nil {
			return nil, err
		}
		currency = parsed
	}

	j := &Journal{Currency: currency}
	for i, tx := range doc.Transactions {
		debtors := tx.Debtors
		if tx.Debtor != "" {
			debtors = append([]string{tx.Debtor}, debtors...)
		}
		creditors := tx.Creditors
		if tx.Creditor != "" {
			creditors = append([]string{tx.Creditor}, creditors...)
		}
		entry, err := NewEntry(debtors, creditors, tx.Amount, tx.Currency, currency)
		if err != nil {
			return nil, fmt.Errorf("yaml transaction %d: %w", i+1, err)
		}
		j.Entries = append(j.Entries, entry)
	}
	return j, nil
}
