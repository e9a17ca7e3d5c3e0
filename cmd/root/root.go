// Package root contains the root command for the application
package root

import (
	"fmt"
	"sync"

	"fjacquet/cashflow-classifier/internal/config"
	"fjacquet/cashflow-classifier/internal/container"
	"fjacquet/cashflow-classifier/internal/logging"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Config    string
	Chart     string
	Input     string
	Output    string
	Report    string
	LogLevel  string
	LogFormat string
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// AppConfig is the configuration loaded by PersistentPreRunE
	AppConfig *config.Config

	// AppContainer is the dependency container built by PersistentPreRunE
	AppContainer *container.Container

	// SharedFlags holds the values of the persistent flags
	SharedFlags = CommonFlags{}

	initOnce sync.Once

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "cashflow-classifier",
		Short: "Classify cash-flow ledger entries into debit and credit account codes.",
		Long: `cashflow-classifier matches the "subgrupo" label of every cash-flow ledger entry
against a chart of accounts and writes the account code to the Débito column for
outflows or to the Crédito column for inflows.`,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to cashflow-classifier!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: initApp,
	}
)

// Init initializes the root command and all flags. It is safe to call more than once.
func Init() {
	initOnce.Do(func() {
		flags := Cmd.PersistentFlags()
		flags.StringVar(&SharedFlags.Config, "config", "", "Config file (default: config.yaml in $HOME/.cashflow-classifier, .cashflow-classifier or .)")
		flags.StringVarP(&SharedFlags.Chart, "chart", "c", "", "Chart of accounts CSV file")
		flags.StringVarP(&SharedFlags.Input, "input", "i", "", "Cash-flow ledger CSV file")
		flags.StringVarP(&SharedFlags.Output, "output", "o", "", "Output file")
		flags.StringVarP(&SharedFlags.Report, "report", "r", "", "Report file (json or yaml, see report.format)")
		flags.StringVar(&SharedFlags.LogLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
		flags.StringVar(&SharedFlags.LogFormat, "log-format", "", "Log format (text or json)")
	})
}

// ApplyFlags overrides configuration values with the flags that were set.
func ApplyFlags(cfg *config.Config, flags CommonFlags) {
	if flags.Chart != "" {
		cfg.Files.Chart = flags.Chart
	}
	if flags.Input != "" {
		cfg.Files.Ledger = flags.Input
	}
	if flags.Output != "" {
		cfg.Files.Output = flags.Output
	}
	if flags.Report != "" {
		cfg.Files.Report = flags.Report
	}
	if flags.LogLevel != "" {
		cfg.Log.Level = flags.LogLevel
	}
	if flags.LogFormat != "" {
		cfg.Log.Format = flags.LogFormat
	}
}

func initApp(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(SharedFlags.Config)
	if err != nil {
		return err
	}
	ApplyFlags(cfg, SharedFlags)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	Log = config.ConfigureLoggingFromConfig(cfg)
	Log.SetOutput(cmd.ErrOrStderr())

	c, err := container.NewContainerWithLogger(cfg, logging.NewLogrusAdapterFromLogger(Log))
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	AppConfig = cfg
	AppContainer = c
	return nil
}

// GetContainer returns the application container, or an error if the
// command ran without PersistentPreRunE.
func GetContainer() (*container.Container, error) {
	if AppContainer == nil {
		return nil, fmt.Errorf("container not initialized")
	}
	return AppContainer, nil
}
