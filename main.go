package main

import (
	"fmt"
	"os"
	"strings"

	"fjacquet/cashflow-classifier/cmd/aliases"
	"fjacquet/cashflow-classifier/cmd/chart"
	"fjacquet/cashflow-classifier/cmd/classify"
	"fjacquet/cashflow-classifier/cmd/root"
	"fjacquet/cashflow-classifier/cmd/validate"
	"fjacquet/cashflow-classifier/internal/config"

	"github.com/sirupsen/logrus"
)

func init() {
	// Environment first, so LOG_LEVEL is known before anything logs
	envFile, envErr := config.LoadEnv()

	root.Log.SetLevel(configureLogLevelDirectly())
	if envErr != nil {
		root.Log.Warnf("Error loading %s: %v", envFile, envErr)
	}

	root.Init()
	root.Cmd.AddCommand(classify.Cmd)
	root.Cmd.AddCommand(validate.Cmd)
	root.Cmd.AddCommand(chart.Cmd)
	root.Cmd.AddCommand(aliases.Cmd)
}

// configureLogLevelDirectly sets the global logrus level from LOG_LEVEL and
// returns it
func configureLogLevelDirectly() logrus.Level {
	logLevel, err := logrus.ParseLevel(strings.ToLower(config.GetEnv("LOG_LEVEL", "info")))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	return logLevel
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
