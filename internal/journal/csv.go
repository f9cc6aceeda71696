package journal

import (
	"encoding/csv"
	"fmt"
	"io"

	"fjacquet/debtsolver/internal/models"
	"fjacquet/debtsolver/internal/solvererror"

	"github.com/gocarina/gocsv"
)

// csvRow maps one line of a CSV journal.
type csvRow struct {
	Debtors   string `csv:"debtors"`
	Creditors string `csv:"creditors"`
	Amount    string `csv:"amount"`
	Currency  string `csv:"currency,omitempty"`
}

// PaymentRow is one settlement payment as written to CSV.
type PaymentRow struct {
	Debtor   string `csv:"debtor" json:"debtor"`
	Creditor string `csv:"creditor" json:"creditor"`
	Amount   string `csv:"amount" json:"amount"`
	Currency string `csv:"currency" json:"currency"`
}

// NewPaymentRow formats a payment with the currency's minor-unit places.
func NewPaymentRow(p models.Transaction) PaymentRow {
	places := p.Amount.Currency.Exponent()
	if places < 0 {
		places = 2
	}
	return PaymentRow{
		Debtor:   string(p.Debtor),
		Creditor: string(p.Creditor),
		Amount:   p.Amount.Amount.StringFixed(places),
		Currency: p.Amount.Currency.String(),
	}
}

// ReadCSV parses a journal with the columns debtors, creditors, amount and an
// optional currency. Rows without a currency use the given default. Blank
// rows are skipped.
func ReadCSV(in io.Reader, delimiter rune, currency models.Currency) (*Journal, error) {
	reader := csv.NewReader(in)
	reader.Comma = delimiter
	reader.TrimLeadingSpace = true

	var rows []csvRow
	if err := gocsv.UnmarshalCSV(reader, &rows); err != nil {
		return nil, &solvererror.ParseError{Source: "csv", Field: "journal", Value: "", Err: err}
	}

	j := &Journal{Currency: currency}
	for i, row := range rows {
		if row.Debtors == "" && row.Creditors == "" && row.Amount == "" {
			continue
		}
		entry, err := NewEntry(SplitParties(row.Debtors), SplitParties(row.Creditors), row.Amount, row.Currency, currency)
		if err != nil {
			return nil, fmt.Errorf("csv row %d: %w", i+2, err)
		}
		j.Entries = append(j.Entries, entry)
	}
	return j, nil
}

// WritePaymentsCSV writes payments as debtor, creditor, amount, currency rows.
func WritePaymentsCSV(out io.Writer, payments []models.Transaction, delimiter rune) error {
	rows := make([]PaymentRow, len(payments))
	for i, p := range payments {
		rows[i] = NewPaymentRow(p)
	}

	writer := csv.NewWriter(out)
	writer.Comma = delimiter
	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(writer)); err != nil {
		return fmt.Errorf("error writing payments CSV: %w", err)
	}
	return nil
}
