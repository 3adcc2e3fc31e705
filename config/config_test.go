package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "Summer 2025", cfg.Batch)
	assert.Equal(t, 5, cfg.Scroll.MaxAttempts)
	assert.Equal(t, 3, cfg.Scroll.StabilityWindow)
	assert.Equal(t, 2, cfg.PoolSize)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
batch: "Winter 2026"
pool_size: 4
scroll:
  max_attempts: 8
  attempt_timeout_seconds: 60
  stability_window: 3
  scroll_delay_ms: 1500
  viewport_step: 900
  step_count: 6
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Winter 2026", cfg.Batch)
	assert.Equal(t, 4, cfg.PoolSize)
	assert.Equal(t, 8, cfg.Scroll.MaxAttempts)
	// Untouched keys keep their defaults.
	assert.Equal(t, "Summer 2025", Default().Batch)
	assert.NotEmpty(t, cfg.DirectoryURL)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestScrollerConfigConversion(t *testing.T) {
	cfg := Default()
	sc := cfg.ScrollerConfig()

	assert.Equal(t, 45*time.Second, sc.AttemptTimeout)
	assert.Equal(t, 2*time.Second, sc.ScrollDelay)
	assert.Equal(t, cfg.Scroll.MaxAttempts, sc.MaxAttempts)
	assert.Equal(t, cfg.Scroll.ViewportStep, sc.ViewportStep)
}
