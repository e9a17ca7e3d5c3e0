package aliases

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fjacquet/cashflow-classifier/internal/config"
	"fjacquet/cashflow-classifier/internal/container"
	"fjacquet/cashflow-classifier/internal/logging"
	"fjacquet/cashflow-classifier/internal/store"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) *container.Container {
	t.Helper()
	cfg := config.Default()
	cfg.Files.HeaderAliases = filepath.Join(t.TempDir(), "header_aliases.yaml")
	c, err := container.NewContainerWithLogger(cfg, logging.NewMockLogger())
	require.NoError(t, err)
	return c
}

func TestExecute_PrintsDefaults(t *testing.T) {
	write = false
	c := setup(t)

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	require.NoError(t, Execute(cmd, c))

	var found bool
	for _, line := range strings.Split(out.String(), "\n") {
		if fields := strings.Fields(line); len(fields) == 2 && fields[0] == "subgrupos" {
			assert.Equal(t, "subgrupo", fields[1])
			found = true
		}
	}
	assert.True(t, found)
	assert.NoFileExists(t, c.GetConfig().Files.HeaderAliases)
}

func TestExecute_WriteSavesEffectiveAliases(t *testing.T) {
	write = true
	defer func() { write = false }()
	c := setup(t)
	path := c.GetConfig().Files.HeaderAliases
	require.NoError(t, os.WriteFile(path, []byte("Montante: Valor\n"), 0600))

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	require.NoError(t, Execute(cmd, c))
	assert.Contains(t, out.String(), "Aliases written to")

	reloaded, err := store.NewHeaderAliasStore(path, logging.NewMockLogger()).LoadHeaderAliases()
	require.NoError(t, err)
	assert.Equal(t, "Valor", reloaded.Canonical("Montante"))
	assert.Equal(t, "subgrupo", reloaded.Canonical("subgrupos"))
}

func TestCmd_Metadata(t *testing.T) {
	assert.Equal(t, "aliases", Cmd.Use)
	assert.NotNil(t, Cmd.Flags().Lookup("write"))
}
