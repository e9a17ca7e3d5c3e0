package chart

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fjacquet/cashflow-classifier/internal/apperror"
	"fjacquet/cashflow-classifier/internal/config"
	"fjacquet/cashflow-classifier/internal/container"
	"fjacquet/cashflow-classifier/internal/logging"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T, chart string) *container.Container {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Files.Chart = filepath.Join(dir, "plano.csv")
	cfg.Files.HeaderAliases = filepath.Join(dir, "aliases.yaml")
	if chart != "" {
		require.NoError(t, os.WriteFile(cfg.Files.Chart, []byte(chart), 0600))
	}
	c, err := container.NewContainerWithLogger(cfg, logging.NewMockLogger())
	require.NoError(t, err)
	return c
}

func TestExecute_Summary(t *testing.T) {
	listEntries = false
	c := setup(t, "subgrupo;codigo\nVendas;504\nvendas ;999\n;100\nAluguel;740\n")

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	require.NoError(t, Execute(cmd, c))

	text := out.String()
	assert.Contains(t, text, "plano.csv: 2 labels indexed")
	assert.Contains(t, text, "1 duplicate labels discarded")
	assert.Contains(t, text, "1 rows skipped")

	var dupLine string
	for _, line := range strings.Split(text, "\n") {
		if strings.Contains(line, "999") {
			dupLine = line
		}
	}
	assert.Equal(t, []string{"3", "vendas", "999", "2", "504"}, strings.Fields(dupLine))
}

func TestExecute_List(t *testing.T) {
	listEntries = true
	defer func() { listEntries = false }()
	c := setup(t, "subgrupo;codigo\nVendas;504\nAluguel;740\n")

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	require.NoError(t, Execute(cmd, c))

	assert.Contains(t, out.String(), "SUBGRUPO")
	assert.Contains(t, out.String(), "Aluguel")
	assert.NotContains(t, out.String(), "discarded")
}

func TestExecute_MissingChart(t *testing.T) {
	c := setup(t, "")
	err := Execute(&cobra.Command{}, c)
	var missing *apperror.MissingInputError
	assert.ErrorAs(t, err, &missing)
}
