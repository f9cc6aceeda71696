package journal

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/debtsolver/internal/logging"
	"fjacquet/debtsolver/internal/models"
)

// Format identifies a journal file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatYAML Format = "yaml"
)

// DetectFormat picks the format from the file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported journal file extension: %s", path)
	}
}

// ReadFile loads a journal from a .csv, .yaml or .yml file.
func ReadFile(path string, delimiter rune, currency models.Currency, logger logging.Logger) (*Journal, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	logger.Info("Reading journal file",
		logging.F(logging.FieldInputFile, path),
		logging.F(logging.FieldFormat, string(format)))

	file, err := os.Open(path) // #nosec G304 -- path comes from the CLI user
	if err != nil {
		return nil, fmt.Errorf("error opening journal file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close file")
		}
	}()

	var j *Journal
	switch format {
	case FormatCSV:
		j, err = ReadCSV(file, delimiter, currency)
	case FormatYAML:
		j, err = ReadYAML(file, currency)
	}
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}

	logger.Info("Successfully read journal", logging.F(logging.FieldCount, len(j.Entries)))
	return j, nil
}

// WritePaymentsFile writes payments as CSV, creating parent directories.
func WritePaymentsFile(path string, payments []models.Transaction, delimiter rune, logger logging.Logger) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("error creating directory: %w", err)
		}
	}

	file, err := os.Create(path) // #nosec G304 -- path comes from the CLI user
	if err != nil {
		return fmt.Errorf("error creating payments file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close file")
		}
	}()

	if err := WritePaymentsCSV(file, payments, delimiter); err != nil {
		return err
	}
	logger.Info("Wrote payments",
		logging.F(logging.FieldOutputFile, path),
		logging.F(logging.FieldCount, len(payments)))
	return nil
}
