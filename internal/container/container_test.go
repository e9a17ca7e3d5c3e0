package container

import (
	"testing"

	"fjacquet/cashflow-classifier/internal/config"
	"fjacquet/cashflow-classifier/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContainer(t *testing.T) {
	tests := []struct {
		name        string
		config      *config.Config
		expectError bool
		errorMsg    string
	}{
		{
			name:        "nil config",
			config:      nil,
			expectError: true,
			errorMsg:    "configuration cannot be nil",
		},
		{
			name:   "default config",
			config: config.Default(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewContainer(tt.config)
			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
				assert.Nil(t, c)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, c)
			assert.NotNil(t, c.GetLogger())
			assert.NotNil(t, c.GetRunner())
			assert.Same(t, tt.config, c.GetConfig())
			assert.NoError(t, c.Close())
		})
	}
}

func TestNewContainerWithLogger(t *testing.T) {
	cfg := config.Default()
	cfg.Files.HeaderAliases = "custom_aliases.yaml"
	cfg.Files.Chart = "plano.csv"
	logger := logging.NewMockLogger()

	c, err := NewContainerWithLogger(cfg, logger)
	require.NoError(t, err)

	assert.Same(t, logger, c.GetLogger())
	assert.Equal(t, "custom_aliases.yaml", c.GetStore().AliasesFile)
	assert.Equal(t, "plano.csv", c.RunOptions().ChartPath)
	assert.True(t, logger.HasEntry("DEBUG", "Container initialized successfully"))

	_, err = NewContainerWithLogger(cfg, nil)
	assert.EqualError(t, err, "logger cannot be nil")
}
