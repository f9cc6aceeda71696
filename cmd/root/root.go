// Package root contains the root command for the application
package root

import (
	"fmt"

	"fjacquet/debtsolver/internal/config"
	"fjacquet/debtsolver/internal/container"
	"fjacquet/debtsolver/internal/journal"
	"fjacquet/debtsolver/internal/logging"
	"fjacquet/debtsolver/internal/models"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	ConfigFile string
	Input      string
	InputDir   string
	Output     string
	LogLevel   string
	Currency   string
}

var (
	// Log is the shared logger instance for commands
	Log = logging.GetLogger()

	// AppConfig is the configuration loaded before any subcommand runs
	AppConfig *config.Config

	// AppContainer holds the wired dependencies for subcommands
	AppContainer *container.Container

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "debtsolver",
		Short: "A CLI tool to settle a network of debts with as few payments as practical.",
		Long: `debtsolver records who owes whom, nets every party to a single balance
and computes the payments that settle the group. Journals are read from CSV
or YAML files, and the same engine is available over HTTP with "serve".`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to debtsolver!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: initialize,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if AppContainer != nil {
				if err := AppContainer.Close(); err != nil {
					Log.WithError(err).Warn("Failed to close container")
				}
			}
		},
		SilenceUsage: true,
	}

	// SharedFlags are accessible to all commands
	SharedFlags = CommonFlags{}
)

// Init initializes the root command and all flags
func Init() {
	flags := Cmd.PersistentFlags()
	flags.StringVar(&SharedFlags.ConfigFile, "config", "", "Config file (default: config.yaml in $HOME/.debtsolver, .debtsolver or .)")
	flags.StringVarP(&SharedFlags.Input, "input", "i", "", "Input journal file (.csv, .yaml or .yml)")
	flags.StringVarP(&SharedFlags.InputDir, "input-dir", "d", "", "Directory of journal files to settle as one group")
	flags.StringVarP(&SharedFlags.Output, "output", "o", "", "Output payments CSV file (default: stdout)")
	flags.StringVar(&SharedFlags.LogLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	flags.StringVarP(&SharedFlags.Currency, "currency", "c", "", "Default currency for journal rows without one")
}

// initialize loads the configuration, applies flag overrides and wires the
// container.
func initialize(cmd *cobra.Command, args []string) error {
	if loaded := config.LoadEnv(); loaded != "" {
		Log.Debug("Loaded environment file", logging.F(logging.FieldInputFile, loaded))
	}

	cfg, err := config.InitializeConfig(SharedFlags.ConfigFile)
	if err != nil {
		return err
	}
	if err := ApplyFlagOverrides(cfg, SharedFlags); err != nil {
		return err
	}

	c, err := container.NewContainer(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	AppConfig = cfg
	AppContainer = c
	Log = c.GetLogger()
	return nil
}

// ApplyFlagOverrides copies explicitly set flags over the loaded config.
func ApplyFlagOverrides(cfg *config.Config, flags CommonFlags) error {
	if flags.LogLevel != "" {
		cfg.Log.Level = flags.LogLevel
	}
	if flags.Currency != "" {
		currency, err := models.ParseCurrency(flags.Currency)
		if err != nil {
			return fmt.Errorf("--currency: %w", err)
		}
		cfg.Ledger.Currency = currency.String()
	}
	return nil
}

// GetContainer returns the application container, or nil before the root
// command has run.
func GetContainer() *container.Container {
	return AppContainer
}

// GetConfig returns the loaded configuration, or nil before the root
// command has run.
func GetConfig() *config.Config {
	return AppConfig
}

// RequireContainer returns the container or an error if initialization has
// not happened.
func RequireContainer() (*container.Container, error) {
	if AppContainer == nil {
		return nil, fmt.Errorf("application not initialized")
	}
	return AppContainer, nil
}

// LoadJournal reads the journal named by --input, or merges every journal
// in --input-dir. Exactly one of the two must be set.
func LoadJournal(c *container.Container, flags CommonFlags) (*journal.Journal, error) {
	switch {
	case flags.Input != "" && flags.InputDir != "":
		return nil, fmt.Errorf("use either --input or --input-dir, not both")
	case flags.Input != "":
		return c.ReadJournal(flags.Input)
	case flags.InputDir != "":
		return c.ReadJournalDir(flags.InputDir)
	default:
		return nil, fmt.Errorf("an input journal is required (--input or --input-dir)")
	}
}
