package config

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"fjacquet/debtsolver/internal/logging"
	"fjacquet/debtsolver/internal/models"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable override, e.g.
// DEBTSOLVER_SETTLE_MAX_GROUP_SIZE.
const EnvPrefix = "DEBTSOLVER"

// Config represents the complete application configuration
type Config struct {
	Log    LogConfig    `mapstructure:"log" yaml:"log"`
	Ledger LedgerConfig `mapstructure:"ledger" yaml:"ledger"`
	Settle SettleConfig `mapstructure:"settle" yaml:"settle"`
	CSV    CSVConfig    `mapstructure:"csv" yaml:"csv"`
	Server ServerConfig `mapstructure:"server" yaml:"server"`
}

// LogConfig selects the log level and output format.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// LedgerConfig holds ledger-wide defaults.
type LedgerConfig struct {
	Currency string `mapstructure:"currency" yaml:"currency"`
}

// SettleConfig bounds the zero-sum group search. MaxGroupSize 0 searches
// every group size; MaxCombinations 0 means no budget.
type SettleConfig struct {
	MaxGroupSize    int `mapstructure:"max_group_size" yaml:"max_group_size"`
	MaxCombinations int `mapstructure:"max_combinations" yaml:"max_combinations"`
}

// CSVConfig controls journal and payment CSV files.
type CSVConfig struct {
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
}

// ServerConfig configures the HTTP API. MaxGroupSize and MaxCombinations
// are ceilings on the group search of every API request; unlike the settle
// section they cannot be 0.
type ServerConfig struct {
	Addr               string `mapstructure:"addr" yaml:"addr"`
	ReadTimeoutSeconds int    `mapstructure:"read_timeout_seconds" yaml:"read_timeout_seconds"`
	MaxBodyBytes       int64  `mapstructure:"max_body_bytes" yaml:"max_body_bytes"`
	MaxGroupSize       int    `mapstructure:"max_group_size" yaml:"max_group_size"`
	MaxCombinations    int    `mapstructure:"max_combinations" yaml:"max_combinations"`
}

// InitializeConfig loads configuration with the precedence
// defaults < config file < environment. configFile may be empty, in which
// case config.yaml is looked up in $HOME/.debtsolver, .debtsolver and the
// working directory.
func InitializeConfig(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.debtsolver")
		v.AddConfigPath(".debtsolver")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Default returns the configuration produced by defaults alone.
func Default() *Config {
	return &Config{
		Log:    LogConfig{Level: "info", Format: "text"},
		Ledger: LedgerConfig{Currency: "USD"},
		Settle: SettleConfig{MaxGroupSize: 0, MaxCombinations: 0},
		CSV:    CSVConfig{Delimiter: ","},
		Server: ServerConfig{
			Addr:               ":8080",
			ReadTimeoutSeconds: 10,
			MaxBodyBytes:       1 << 20,
			MaxGroupSize:       8,
			MaxCombinations:    50000,
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("ledger.currency", d.Ledger.Currency)
	v.SetDefault("settle.max_group_size", d.Settle.MaxGroupSize)
	v.SetDefault("settle.max_combinations", d.Settle.MaxCombinations)
	v.SetDefault("csv.delimiter", d.CSV.Delimiter)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.read_timeout_seconds", d.Server.ReadTimeoutSeconds)
	v.SetDefault("server.max_body_bytes", d.Server.MaxBodyBytes)
	v.SetDefault("server.max_group_size", d.Server.MaxGroupSize)
	v.SetDefault("server.max_combinations", d.Server.MaxCombinations)
}

func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if _, err := models.ParseCurrency(config.Ledger.Currency); err != nil {
		return fmt.Errorf("ledger.currency: %w", err)
	}

	if config.Settle.MaxGroupSize < 0 {
		return fmt.Errorf("settle.max_group_size must be 0 or greater, got: %d", config.Settle.MaxGroupSize)
	}

	if config.Settle.MaxCombinations < 0 {
		return fmt.Errorf("settle.max_combinations must be 0 or greater, got: %d", config.Settle.MaxCombinations)
	}

	if utf8.RuneCountInString(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	if config.Server.Addr == "" {
		return fmt.Errorf("server.addr must not be empty")
	}

	if config.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("server.max_body_bytes must be positive, got: %d", config.Server.MaxBodyBytes)
	}

	if config.Server.MaxGroupSize < 2 {
		return fmt.Errorf("server.max_group_size must be 2 or greater, got: %d", config.Server.MaxGroupSize)
	}

	if config.Server.MaxCombinations <= 0 {
		return fmt.Errorf("server.max_combinations must be positive, got: %d", config.Server.MaxCombinations)
	}

	return nil
}

// Currency returns the configured default ledger currency.
func (c *Config) Currency() models.Currency {
	currency, err := models.ParseCurrency(c.Ledger.Currency)
	if err != nil {
		return models.USD
	}
	return currency
}

// Delimiter returns the CSV delimiter as a rune.
func (c *Config) Delimiter() rune {
	r, _ := utf8.DecodeRuneInString(c.CSV.Delimiter)
	if r == utf8.RuneError {
		return ','
	}
	return r
}

// NewLogger builds the application logger from the log settings.
func NewLogger(config *Config) logging.Logger {
	return logging.NewLogrusAdapter(config.Log.Level, config.Log.Format)
}
