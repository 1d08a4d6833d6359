package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.Commentary.Enabled)
	assert.Equal(t, []int{100, 200, 300}, cfg.Commentary.LeadMargins)
}

func TestLoadParsesFile(t *testing.T) {
	path := writeConfig(t, `
save_path = "/tmp/scores.json"
log_level = "debug"

commentary {
  enabled      = false
  lead_margins = [50, 150]
}
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/scores.json", cfg.SavePath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.Commentary.Enabled)
	assert.Equal(t, []int{50, 150}, cfg.Commentary.LeadMargins)
}

func TestLoadFillsMissingFields(t *testing.T) {
	path := writeConfig(t, `log_level = "warn"`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, Default().SavePath, cfg.SavePath)
	assert.Equal(t, Default().Commentary, cfg.Commentary)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Run("syntax error", func(t *testing.T) {
		_, err := Load(writeConfig(t, `log_level = `))
		assert.Error(t, err)
	})

	t.Run("unknown log level", func(t *testing.T) {
		_, err := Load(writeConfig(t, `log_level = "loud"`))
		assert.ErrorContains(t, err, "invalid log level")
	})

	t.Run("non-positive lead margin", func(t *testing.T) {
		_, err := Load(writeConfig(t, `
commentary {
  lead_margins = [100, 0]
}
`))
		assert.ErrorContains(t, err, "lead margins must be positive")
	})
}
