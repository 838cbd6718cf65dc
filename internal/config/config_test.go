package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	assert.Equal(t, 6, cfg.Playback.CeilingSeconds)
	assert.False(t, cfg.Playback.Silent)
	assert.True(t, cfg.Journal.Enabled)
	assert.True(t, cfg.Watcher.Enabled)
	assert.Equal(t, 100, cfg.Watcher.DebounceMS)
	assert.False(t, cfg.Telemetry.Enabled)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Theme.Preset)
}

// TestLoadConfig_FullFile tests that every section round-trips through viper.
func TestLoadConfig_FullFile(t *testing.T) {
	configYAML := `
audio_dir: /media/clips/Audio
stories_dir: /home/reader/stories
data_dir: /home/reader/.fairytale

playback:
  ceiling_seconds: 10
  silent: true

vocabulary:
  file: /home/reader/vocabulary.yaml
  extra:
    - name: Dragon
      class: sound_effect
      phrases:
        - dragon
        - roared

journal:
  enabled: false
  path: /tmp/journal.db

watcher:
  enabled: false
  debounce_ms: 250

telemetry:
  enabled: true
  endpoint: localhost:4317

log:
  file: /tmp/fairytale.log
  level: debug
`
	cfg := parseConfig(t, configYAML)

	assert.Equal(t, "/media/clips/Audio", cfg.AudioDir)
	assert.Equal(t, "/home/reader/stories", cfg.StoriesDir)
	assert.Equal(t, "/home/reader/.fairytale", cfg.DataDir)
	assert.Equal(t, 10, cfg.Playback.CeilingSeconds)
	assert.True(t, cfg.Playback.Silent)
	assert.Equal(t, "/home/reader/vocabulary.yaml", cfg.Vocabulary.File)
	require.Len(t, cfg.Vocabulary.Extra, 1)
	assert.Equal(t, "Dragon", cfg.Vocabulary.Extra[0].Name)
	assert.Equal(t, "sound_effect", cfg.Vocabulary.Extra[0].Class)
	assert.Equal(t, []string{"dragon", "roared"}, cfg.Vocabulary.Extra[0].Phrases)
	assert.False(t, cfg.Journal.Enabled)
	assert.Equal(t, "/tmp/journal.db", cfg.Journal.Path)
	assert.False(t, cfg.Watcher.Enabled)
	assert.Equal(t, 250, cfg.Watcher.DebounceMS)
	assert.True(t, cfg.Telemetry.Enabled)
	assert.Equal(t, "localhost:4317", cfg.Telemetry.Endpoint)
	assert.Equal(t, "/tmp/fairytale.log", cfg.Log.File)
	assert.Equal(t, "debug", cfg.Log.Level)

	require.NoError(t, cfg.Validate())
}

func TestValidatePlayback(t *testing.T) {
	assert.NoError(t, ValidatePlayback(PlaybackConfig{}))
	assert.NoError(t, ValidatePlayback(PlaybackConfig{CeilingSeconds: 6}))

	err := ValidatePlayback(PlaybackConfig{CeilingSeconds: -1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ceiling_seconds")
}

func TestValidateWatcher(t *testing.T) {
	assert.NoError(t, ValidateWatcher(WatcherConfig{}))
	assert.NoError(t, ValidateWatcher(WatcherConfig{DebounceMS: 250}))

	err := ValidateWatcher(WatcherConfig{DebounceMS: -5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "debounce_ms")
}

func TestValidateLog(t *testing.T) {
	for _, level := range []string{"", "debug", "info", "warn", "error"} {
		assert.NoError(t, ValidateLog(LogConfig{Level: level}), "level %q", level)
	}

	err := ValidateLog(LogConfig{Level: "verbose"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log.level")
}

func TestValidateTheme_Mode(t *testing.T) {
	for _, mode := range []string{"", "light", "dark"} {
		assert.NoError(t, ValidateTheme(ThemeConfig{Mode: mode}), "mode %q", mode)
	}

	err := ValidateTheme(ThemeConfig{Mode: "midnight"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "theme.mode")
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, Defaults().Validate())

	bad := Defaults()
	bad.Playback.CeilingSeconds = -1
	assert.Error(t, bad.Validate())

	bad = Defaults()
	bad.Vocabulary.Extra = []PhraseGroup{{Name: "Dragon"}}
	assert.Error(t, bad.Validate())
}

func TestEffectiveDataDir(t *testing.T) {
	cfg := Config{DataDir: "/custom/data"}
	assert.Equal(t, "/custom/data", cfg.EffectiveDataDir())

	cfg = Config{}
	assert.Contains(t, cfg.EffectiveDataDir(), ".fairytale")
}

func TestEffectivePaths_DeriveFromDataDir(t *testing.T) {
	cfg := Config{DataDir: "/custom/data"}

	assert.Equal(t, filepath.Join("/custom/data", "stories"), cfg.EffectiveStoriesDir())
	assert.Equal(t, filepath.Join("/custom/data", "journal.db"), cfg.EffectiveJournalPath())
	assert.Equal(t, filepath.Join("/custom/data", "fairytale.log"), cfg.EffectiveLogFile())
}

func TestEffectivePaths_ExplicitWins(t *testing.T) {
	cfg := Config{
		DataDir:    "/custom/data",
		StoriesDir: "/elsewhere/stories",
		Journal:    JournalConfig{Path: "/elsewhere/journal.db"},
		Log:        LogConfig{File: "/elsewhere/fairytale.log"},
	}

	assert.Equal(t, "/elsewhere/stories", cfg.EffectiveStoriesDir())
	assert.Equal(t, "/elsewhere/journal.db", cfg.EffectiveJournalPath())
	assert.Equal(t, "/elsewhere/fairytale.log", cfg.EffectiveLogFile())
}

func TestEffectiveAudioDir_Explicit(t *testing.T) {
	cfg := Config{AudioDir: "/media/clips"}
	assert.Equal(t, filepath.Join("/media/clips", "Audio"), cfg.EffectiveAudioDir())
}

func TestEffectiveAudioDir_LocalLibrary(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(tmpDir, "Audio"), 0750))
	t.Chdir(tmpDir)

	cfg := Config{}
	assert.Equal(t, "Audio", cfg.EffectiveAudioDir())
}

func TestEffectiveAudioDir_NoLibraryAnywhere(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	// Points at the local convention so error messages name a useful path.
	cfg := Config{}
	assert.Equal(t, "Audio", cfg.EffectiveAudioDir())
}

func TestPlaybackCeiling(t *testing.T) {
	cfg := Config{}
	assert.Equal(t, "6s", cfg.PlaybackCeiling().String())

	cfg.Playback.CeilingSeconds = 10
	assert.Equal(t, "10s", cfg.PlaybackCeiling().String())
}

func TestWatcherDebounce(t *testing.T) {
	cfg := Config{}
	assert.Equal(t, "100ms", cfg.WatcherDebounce().String())

	cfg.Watcher.DebounceMS = 250
	assert.Equal(t, "250ms", cfg.WatcherDebounce().String())
}

// TestDefaultConfigTemplate_ParsesToDefaults tests that the commented
// template stays in sync with Defaults().
func TestDefaultConfigTemplate_ParsesToDefaults(t *testing.T) {
	cfg := parseConfig(t, DefaultConfigTemplate())

	defaults := Defaults()
	assert.Equal(t, defaults.Playback.CeilingSeconds, cfg.Playback.CeilingSeconds)
	assert.Equal(t, defaults.Playback.Silent, cfg.Playback.Silent)
	assert.Equal(t, defaults.Journal.Enabled, cfg.Journal.Enabled)
	assert.Equal(t, defaults.Watcher.Enabled, cfg.Watcher.Enabled)
	assert.Equal(t, defaults.Watcher.DebounceMS, cfg.Watcher.DebounceMS)
	assert.Equal(t, defaults.Telemetry.Enabled, cfg.Telemetry.Enabled)
	assert.Equal(t, defaults.Log.Level, cfg.Log.Level)

	require.NoError(t, cfg.Validate())
}

func TestDefaultConfigTemplate_NamesPresets(t *testing.T) {
	template := DefaultConfigTemplate()

	assert.Contains(t, template, "default")
	assert.Contains(t, template, "storybook")
	assert.Contains(t, template, "high-contrast")
}

func TestWriteDefaultConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nested", "config.yaml")

	require.NoError(t, WriteDefaultConfig(configPath))

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfigTemplate(), string(data))
}

func TestDefaultConfigPath(t *testing.T) {
	path := DefaultConfigPath()

	assert.Contains(t, path, ".fairytale")
	assert.Equal(t, "config.yaml", filepath.Base(path))
}
