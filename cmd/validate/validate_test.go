package validate

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/cashflow-classifier/internal/apperror"
	"fjacquet/cashflow-classifier/internal/config"
	"fjacquet/cashflow-classifier/internal/container"
	"fjacquet/cashflow-classifier/internal/logging"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T, chart, ledger string) *container.Container {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Files.Chart = filepath.Join(dir, "plano.csv")
	cfg.Files.Ledger = filepath.Join(dir, "fluxo.csv")
	cfg.Files.Output = filepath.Join(dir, "out.csv")
	cfg.Files.HeaderAliases = filepath.Join(dir, "aliases.yaml")
	require.NoError(t, os.WriteFile(cfg.Files.Chart, []byte(chart), 0600))
	require.NoError(t, os.WriteFile(cfg.Files.Ledger, []byte(ledger), 0600))

	c, err := container.NewContainerWithLogger(cfg, logging.NewMockLogger())
	require.NoError(t, err)
	return c
}

func TestExecute_Valid(t *testing.T) {
	c := setup(t, "subgrupo;codigo\nVendas;504\n", "subgrupos;Valor\nVendas;10\nVendas;-3\n")

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	require.NoError(t, Execute(cmd, c))
	assert.Contains(t, out.String(), "plano.csv: 1 rows")
	assert.Contains(t, out.String(), "fluxo.csv: 2 rows")
	assert.Contains(t, out.String(), "Input tables are valid.")
	assert.NoFileExists(t, c.GetConfig().Files.Output)
}

func TestExecute_MissingColumn(t *testing.T) {
	c := setup(t, "subgrupo;codigo\nVendas;504\n", "subgrupo;Valr\nVendas;10\n")

	err := Execute(&cobra.Command{}, c)
	require.Error(t, err)
	var schemaErr *apperror.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Contains(t, schemaErr.Missing, "Valor")
}

func TestCmd_Metadata(t *testing.T) {
	assert.Equal(t, "validate", Cmd.Use)
	assert.NotNil(t, Cmd.RunE)
}
