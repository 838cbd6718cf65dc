package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err, "a missing config file is not an error")

	assert.Equal(t, Defaults(), cfg)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	configYAML := `
playback:
  ceiling_seconds: 9
journal:
  enabled: false
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(configYAML), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9, cfg.Playback.CeilingSeconds)
	assert.False(t, cfg.Journal.Enabled)
	// Sections absent from the file keep their defaults.
	assert.True(t, cfg.Watcher.Enabled)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{playback: ["), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestLoad_InvalidValuesRejected(t *testing.T) {
	configYAML := `
log:
  level: loudest
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(configYAML), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log.level")
}

func TestLoad_DefaultTemplateRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, Defaults().Playback.CeilingSeconds, cfg.Playback.CeilingSeconds)
}
