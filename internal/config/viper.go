// Package config provides Viper-based hierarchical configuration management
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"fjacquet/cashflow-classifier/internal/tabular"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override (CASHFLOW_CSV_DELIMITER, ...).
const EnvPrefix = "CASHFLOW"

// Output formats.
const (
	OutputCSV    = "csv"
	OutputSQLite = "sqlite"
)

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	CSV struct {
		Delimiter        string `mapstructure:"delimiter" yaml:"delimiter"`
		DecimalSeparator string `mapstructure:"decimal_separator" yaml:"decimal_separator"`
		InputEncoding    string `mapstructure:"input_encoding" yaml:"input_encoding"`
		OutputEncoding   string `mapstructure:"output_encoding" yaml:"output_encoding"`
	} `mapstructure:"csv" yaml:"csv"`

	Files struct {
		Chart         string `mapstructure:"chart" yaml:"chart"`
		Ledger        string `mapstructure:"ledger" yaml:"ledger"`
		Output        string `mapstructure:"output" yaml:"output"`
		Report        string `mapstructure:"report" yaml:"report"`
		HeaderAliases string `mapstructure:"header_aliases" yaml:"header_aliases"`
	} `mapstructure:"files" yaml:"files"`

	Output struct {
		Format      string `mapstructure:"format" yaml:"format"`
		SQLiteTable string `mapstructure:"sqlite_table" yaml:"sqlite_table"`
	} `mapstructure:"output" yaml:"output"`

	Report struct {
		Format                string `mapstructure:"format" yaml:"format"`
		Suggestions           bool   `mapstructure:"suggestions" yaml:"suggestions"`
		MaxSuggestionDistance int    `mapstructure:"max_suggestion_distance" yaml:"max_suggestion_distance"`
		PreviewRows           int    `mapstructure:"preview_rows" yaml:"preview_rows"`
	} `mapstructure:"report" yaml:"report"`

	Classification struct {
		Workers int `mapstructure:"workers" yaml:"workers"`
	} `mapstructure:"classification" yaml:"classification"`
}

// DelimiterRune returns the field delimiter.
func (c *Config) DelimiterRune() rune {
	r, _ := utf8.DecodeRuneInString(c.CSV.Delimiter)
	return r
}

// DecimalSeparatorRune returns the decimal separator used for amounts.
func (c *Config) DecimalSeparatorRune() rune {
	r, _ := utf8.DecodeRuneInString(c.CSV.DecimalSeparator)
	return r
}

// LoadConfig loads configuration from defaults, a config file and the
// environment, in increasing order of precedence. An explicit configFile must
// exist; otherwise config.yaml is searched in the standard locations.
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.cashflow-classifier")
		v.AddConfigPath(".cashflow-classifier")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional unless explicitly given)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case configFile != "":
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		case !errors.As(err, &notFound):
			fmt.Fprintf(os.Stderr, "Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 5. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Default returns the configuration built from defaults only.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var config Config
	_ = v.Unmarshal(&config)
	return &config
}

// Validate checks c, e.g. after command-line overrides.
func (c *Config) Validate() error {
	return validateConfig(c)
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// CSV defaults
	v.SetDefault("csv.delimiter", ";")
	v.SetDefault("csv.decimal_separator", ",")
	v.SetDefault("csv.input_encoding", "latin-1")
	v.SetDefault("csv.output_encoding", "latin-1")

	// File defaults
	v.SetDefault("files.chart", "plano_de_contas_pcpl.csv")
	v.SetDefault("files.ledger", "fluxo_caixa_entrada.csv")
	v.SetDefault("files.output", "fluxo_caixa_classificado_final.csv")
	v.SetDefault("files.report", "")
	v.SetDefault("files.header_aliases", "header_aliases.yaml")

	// Output defaults
	v.SetDefault("output.format", OutputCSV)
	v.SetDefault("output.sqlite_table", "lancamentos_classificados")

	// Report defaults
	v.SetDefault("report.format", "json")
	v.SetDefault("report.suggestions", true)
	v.SetDefault("report.max_suggestion_distance", 3)
	v.SetDefault("report.preview_rows", 5)

	// Classification defaults
	v.SetDefault("classification.workers", 1)
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	// Validate log level
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	// Validate log format
	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	// Validate CSV delimiter and decimal separator
	if utf8.RuneCountInString(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}
	if config.CSV.DecimalSeparator != "," && config.CSV.DecimalSeparator != "." {
		return fmt.Errorf("csv.decimal_separator must be ',' or '.', got: %s", config.CSV.DecimalSeparator)
	}
	if config.CSV.DecimalSeparator == config.CSV.Delimiter {
		return fmt.Errorf("csv.decimal_separator must differ from the CSV delimiter")
	}

	// Validate encodings
	if _, err := tabular.LookupEncoding(config.CSV.InputEncoding); err != nil {
		return fmt.Errorf("csv.input_encoding: %w", err)
	}
	if _, err := tabular.LookupEncoding(config.CSV.OutputEncoding); err != nil {
		return fmt.Errorf("csv.output_encoding: %w", err)
	}

	// Validate file paths
	if config.Files.Chart == "" || config.Files.Ledger == "" || config.Files.Output == "" {
		return fmt.Errorf("files.chart, files.ledger and files.output must be set")
	}

	// Validate output
	if config.Output.Format != OutputCSV && config.Output.Format != OutputSQLite {
		return fmt.Errorf("invalid output format: %s (must be 'csv' or 'sqlite')", config.Output.Format)
	}

	// Validate report
	if config.Report.Format != "json" && config.Report.Format != "yaml" {
		return fmt.Errorf("invalid report format: %s (must be 'json' or 'yaml')", config.Report.Format)
	}
	if config.Report.MaxSuggestionDistance < 0 {
		return fmt.Errorf("report.max_suggestion_distance must be >= 0, got: %d", config.Report.MaxSuggestionDistance)
	}
	if config.Report.PreviewRows < 0 {
		return fmt.Errorf("report.preview_rows must be >= 0, got: %d", config.Report.PreviewRows)
	}

	// Validate classification
	if config.Classification.Workers < 0 || config.Classification.Workers > 256 {
		return fmt.Errorf("classification.workers must be between 0 and 256, got: %d", config.Classification.Workers)
	}

	return nil
}

// ConfigureLoggingFromConfig configures logging based on the Config struct
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	// Parse and set log level
	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Configure log format
	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
