// Package container provides dependency injection for the debtsolver
// application. It centralizes the creation and wiring of all application
// dependencies, making them explicit and testable.
package container

import (
	"fmt"

	"fjacquet/debtsolver/internal/batch"
	"fjacquet/debtsolver/internal/config"
	"fjacquet/debtsolver/internal/journal"
	"fjacquet/debtsolver/internal/logging"
	"fjacquet/debtsolver/internal/models"
	"fjacquet/debtsolver/internal/solver"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation - all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger     logging.Logger
	config     *config.Config
	solver     *solver.Solver
	aggregator *batch.Aggregator
}

// NewContainer creates and wires all application dependencies.
// This is the main entry point for dependency injection in the application.
func NewContainer(cfg *config.Config) (*Container, error) {
	return NewContainerWithLogger(cfg, nil)
}

// NewContainerWithLogger is NewContainer with an explicit logger, used by
// tests to capture output. A nil logger is built from cfg.
func NewContainerWithLogger(cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	// Create logger first as it's needed by other components
	if logger == nil {
		logger = config.NewLogger(cfg)
	}

	s := solver.New(logger, solver.Options{
		MaxGroupSize:    cfg.Settle.MaxGroupSize,
		MaxCombinations: cfg.Settle.MaxCombinations,
	})

	logger.Debug("Container initialized successfully",
		logging.F(logging.FieldCurrency, cfg.Ledger.Currency),
		logging.F(logging.FieldGroupSize, cfg.Settle.MaxGroupSize))

	return &Container{
		logger:     logger,
		config:     cfg,
		solver:     s,
		aggregator: batch.NewAggregator(logger),
	}, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetSolver returns the settlement service configured from settle.*.
func (c *Container) GetSolver() *solver.Solver {
	return c.solver
}

// DefaultCurrency is the currency used for journals that do not name one.
func (c *Container) DefaultCurrency() models.Currency {
	return c.config.Currency()
}

// ReadJournal loads a CSV or YAML journal with the configured delimiter and
// default currency.
func (c *Container) ReadJournal(path string) (*journal.Journal, error) {
	return journal.ReadFile(path, c.config.Delimiter(), c.config.Currency(), c.logger)
}

// ReadJournalDir merges every journal file in dir into one journal.
func (c *Container) ReadJournalDir(dir string) (*journal.Journal, error) {
	files, err := c.aggregator.FindJournals(dir)
	if err != nil {
		return nil, err
	}
	return c.aggregator.Aggregate(files, c.ReadJournal)
}

// WritePayments writes payments as CSV with the configured delimiter.
func (c *Container) WritePayments(path string, payments []models.Transaction) error {
	return journal.WritePaymentsFile(path, payments, c.config.Delimiter(), c.logger)
}

// Close performs cleanup of container resources.
func (c *Container) Close() error {
	// Currently no resources need explicit cleanup
	c.logger.Debug("Container closed")
	return nil
}
