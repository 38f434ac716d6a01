package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skirmish-engine/skirmish/internal/config"
)

// TestDefault verifies the built-in configuration is valid and carries
// the documented defaults.
func TestDefault(t *testing.T) {
	cfg := config.Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 13, cfg.Engine.EscapeDC)
	assert.Equal(t, 10, cfg.Engine.StabilizeDC)
	assert.Equal(t, 10, cfg.Engine.FactLimit)
	assert.Equal(t, 2, cfg.Engine.RobbedMaxTake)
	assert.Empty(t, cfg.Data.ItemsDir)
}

// TestValidate_AggregatesErrors verifies every violation is reported in
// one error.
func TestValidate_AggregatesErrors(t *testing.T) {
	cfg := config.Config{
		Logging: config.LoggingConfig{Level: "loud", Format: "xml"},
		Engine: config.EngineConfig{
			EscapeDC:      0,
			StabilizeDC:   31,
			FactLimit:     0,
			RobbedMaxTake: -1,
		},
	}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `logging.level must be one of [debug, info, warn, error], got "loud"`)
	assert.Contains(t, err.Error(), `logging.format must be one of [json, console], got "xml"`)
	assert.Contains(t, err.Error(), "engine.escape_dc must be 1-30, got 0")
	assert.Contains(t, err.Error(), "engine.stabilize_dc must be 1-30, got 31")
	assert.Contains(t, err.Error(), "engine.fact_limit must be >= 1, got 0")
	assert.Contains(t, err.Error(), "engine.robbed_max_take must be >= 0, got -1")
}

// TestLoad verifies a YAML file overrides defaults without disturbing
// unrelated keys.
func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := `
logging:
  level: debug
  format: console
engine:
  escape_dc: 15
data:
  items_dir: /srv/items
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, 15, cfg.Engine.EscapeDC)
	assert.Equal(t, 10, cfg.Engine.StabilizeDC, "unset keys keep their defaults")
	assert.Equal(t, "/srv/items", cfg.Data.ItemsDir)
}

// TestLoad_InvalidFile verifies a missing file and an invalid value both
// fail loading.
func TestLoad_InvalidFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: shout\n"), 0o644))
	_, err = config.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.level")
}
