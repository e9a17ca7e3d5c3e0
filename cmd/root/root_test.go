package root_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/cashflow-classifier/cmd/root"
	"fjacquet/cashflow-classifier/internal/config"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "cashflow-classifier", root.Cmd.Use)
	assert.Contains(t, root.Cmd.Short, "debit and credit")
	assert.NotNil(t, root.Cmd.Run)
	assert.NotNil(t, root.Cmd.PersistentPreRunE)
}

func TestInit_FlagsAndIdempotence(t *testing.T) {
	assert.NotPanics(t, func() {
		root.Init()
		root.Init()
	})

	for name, short := range map[string]string{"chart": "c", "input": "i", "output": "o", "report": "r"} {
		flag := root.Cmd.PersistentFlags().Lookup(name)
		require.NotNil(t, flag, name)
		assert.Equal(t, short, flag.Shorthand)
	}
	assert.NotNil(t, root.Cmd.PersistentFlags().Lookup("config"))
	assert.NotNil(t, root.Cmd.PersistentFlags().Lookup("log-level"))
}

func TestApplyFlags(t *testing.T) {
	cfg := config.Default()
	root.ApplyFlags(cfg, root.CommonFlags{
		Chart:    "plano.csv",
		Input:    "fluxo.csv",
		Report:   "run.json",
		LogLevel: "debug",
	})

	assert.Equal(t, "plano.csv", cfg.Files.Chart)
	assert.Equal(t, "fluxo.csv", cfg.Files.Ledger)
	assert.Equal(t, "fluxo_caixa_classificado_final.csv", cfg.Files.Output)
	assert.Equal(t, "run.json", cfg.Files.Report)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestRootCommand_Run(t *testing.T) {
	assert.NotPanics(t, func() {
		root.Cmd.Run(&cobra.Command{}, []string{})
	})
}

func TestGetContainer_NotInitialized(t *testing.T) {
	original := root.AppContainer
	defer func() { root.AppContainer = original }()

	root.AppContainer = nil
	_, err := root.GetContainer()
	assert.EqualError(t, err, "container not initialized")
}

func TestRootCommand_PersistentPreRunE(t *testing.T) {
	originalConfig, originalContainer, originalFlags := root.AppConfig, root.AppContainer, root.SharedFlags
	defer func() {
		root.AppConfig, root.AppContainer, root.SharedFlags = originalConfig, originalContainer, originalFlags
	}()

	configFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("log:\n  level: warn\n"), 0600))
	root.SharedFlags = root.CommonFlags{Config: configFile, Chart: "meu_plano.csv"}

	cmd := &cobra.Command{}
	cmd.SetErr(&bytes.Buffer{})
	require.NoError(t, root.Cmd.PersistentPreRunE(cmd, nil))

	c, err := root.GetContainer()
	require.NoError(t, err)
	assert.Equal(t, "meu_plano.csv", c.GetConfig().Files.Chart)
	assert.Equal(t, "warn", root.AppConfig.Log.Level)
}

func TestRootCommand_PersistentPreRunE_InvalidOverride(t *testing.T) {
	originalFlags := root.SharedFlags
	defer func() { root.SharedFlags = originalFlags }()

	configFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("{}\n"), 0600))
	root.SharedFlags = root.CommonFlags{Config: configFile, LogFormat: "xml"}

	err := root.Cmd.PersistentPreRunE(&cobra.Command{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log format")
}
