// Package container provides dependency injection for the cashflow-classifier application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"fmt"

	"fjacquet/cashflow-classifier/internal/config"
	"fjacquet/cashflow-classifier/internal/logging"
	"fjacquet/cashflow-classifier/internal/report"
	"fjacquet/cashflow-classifier/internal/runner"
	"fjacquet/cashflow-classifier/internal/store"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation - all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger logging.Logger
	config *config.Config
	store  *store.HeaderAliasStore
	runner *runner.Runner
}

// NewContainer creates and wires all application dependencies.
// The logger is built from the configuration and writes to stderr.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	return NewContainerWithLogger(cfg, logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format))
}

// NewContainerWithLogger wires the dependencies around an existing logger.
func NewContainerWithLogger(cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	aliasStore := store.NewHeaderAliasStore(cfg.Files.HeaderAliases, logger)
	generator := report.NewReportGenerator(logger)
	run := runner.NewRunner(logger, aliasStore, generator)

	logger.Debug("Container initialized successfully",
		logging.F("output_format", cfg.Output.Format),
		logging.F(logging.FieldWorkers, cfg.Classification.Workers))

	return &Container{
		logger: logger,
		config: cfg,
		store:  aliasStore,
		runner: run,
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

// GetStore returns the header alias store.
func (c *Container) GetStore() *store.HeaderAliasStore {
	return c.store
}

// GetRunner returns the classification runner.
func (c *Container) GetRunner() *runner.Runner {
	return c.runner
}

// RunOptions returns run options derived from the configuration.
func (c *Container) RunOptions() runner.Options {
	return runner.OptionsFromConfig(c.config)
}

// Close performs cleanup of container resources.
func (c *Container) Close() error {
	c.logger.Debug("Container closed")
	return nil
}
