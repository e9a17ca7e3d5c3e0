package classify

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/cashflow-classifier/cmd/root"
	"fjacquet/cashflow-classifier/internal/apperror"
	"fjacquet/cashflow-classifier/internal/config"
	"fjacquet/cashflow-classifier/internal/container"
	"fjacquet/cashflow-classifier/internal/logging"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContainer(t *testing.T) (*container.Container, *logging.MockLogger, string) {
	t.Helper()
	dir := t.TempDir()
	chart := filepath.Join(dir, "plano.csv")
	ledger := filepath.Join(dir, "fluxo.csv")
	require.NoError(t, os.WriteFile(chart, []byte("subgrupo;codigo\nVendas;504\nAluguel;740\n"), 0600))
	require.NoError(t, os.WriteFile(ledger, []byte(
		"Data;subgrupo;Valor\n2024-01-05;Vendas;1500,00\n2024-01-06;Aluguel;-740,00\n2024-01-07;Nada;10,00\n"), 0600))

	cfg := config.Default()
	cfg.Files.Chart = chart
	cfg.Files.Ledger = ledger
	cfg.Files.Output = filepath.Join(dir, "out.csv")
	cfg.Files.HeaderAliases = filepath.Join(dir, "missing_aliases.yaml")

	logger := logging.NewMockLogger()
	c, err := container.NewContainerWithLogger(cfg, logger)
	require.NoError(t, err)
	return c, logger, dir
}

func resetFlags() {
	outputFormat = ""
	workers = -1
	previewRows = -1
	strict = false
}

func TestCmd_Metadata(t *testing.T) {
	assert.Equal(t, "classify", Cmd.Use)
	assert.NotNil(t, Cmd.RunE)
	for _, name := range []string{"format", "workers", "preview", "strict"} {
		assert.NotNil(t, Cmd.Flags().Lookup(name), name)
	}
}

func TestExecute_WritesOutputAndPreview(t *testing.T) {
	resetFlags()
	c, logger, dir := newTestContainer(t)

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	require.NoError(t, Execute(context.Background(), cmd, c))

	data, err := os.ReadFile(filepath.Join(dir, "out.csv"))
	require.NoError(t, err)
	assert.Equal(t,
		"Débito;Crédito;Data;subgrupo;Valor\n"+
			";504;2024-01-05;Vendas;1500,00\n"+
			"740;;2024-01-06;Aluguel;-740,00\n"+
			";;2024-01-07;Nada;10,00\n",
		decodeLatin1(data))

	assert.Contains(t, out.String(), "First rows:")
	assert.Contains(t, out.String(), "Aluguel")
	assert.Contains(t, out.String(), "1 entries have a subgrupo missing")
	assert.True(t, logger.HasEntry("WARN", "No account code found for category"))
}

func TestExecute_FlagOverrides(t *testing.T) {
	resetFlags()
	defer resetFlags()
	c, _, dir := newTestContainer(t)

	outputFormat = config.OutputSQLite
	previewRows = 0
	workers = 2

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	require.NoError(t, Execute(context.Background(), cmd, c))
	assert.FileExists(t, filepath.Join(dir, "out.csv"))
	assert.NotContains(t, out.String(), "First rows:")
}

func TestExecute_StrictFailsOnUnmatched(t *testing.T) {
	resetFlags()
	defer resetFlags()
	c, _, dir := newTestContainer(t)
	strict = true

	err := Execute(context.Background(), &cobra.Command{}, c)
	assert.EqualError(t, err, "1 ledger entries left without an account code")
	assert.FileExists(t, filepath.Join(dir, "out.csv"))
}

func TestExecute_MissingInput(t *testing.T) {
	resetFlags()
	c, logger, _ := newTestContainer(t)
	c.GetConfig().Files.Ledger = filepath.Join(t.TempDir(), "nope.csv")

	err := Execute(context.Background(), &cobra.Command{}, c)
	require.Error(t, err)
	var missing *apperror.MissingInputError
	assert.ErrorAs(t, err, &missing)
	assert.True(t, logger.HasEntry("ERROR", "Input tables rejected, nothing was classified or written"))
}

func TestClassifyFunc_NoContainer(t *testing.T) {
	saved := root.AppContainer
	root.AppContainer = nil
	defer func() { root.AppContainer = saved }()

	err := classifyFunc(Cmd, nil)
	assert.EqualError(t, err, "container not initialized")
}

func decodeLatin1(b []byte) string {
	runes := make([]rune, len(b))
	for i, c := range b {
		runes[i] = rune(c)
	}
	return string(runes)
}
