// Package config provides configuration types and defaults for fairytale.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/olincollege/fairytale-sound-effects/internal/paths"
)

// Config holds all configuration options for fairytale.
type Config struct {
	AudioDir   string           `mapstructure:"audio_dir"`   // audio library root (default: ./Audio, then ~/.fairytale/Audio)
	StoriesDir string           `mapstructure:"stories_dir"` // user story directory (default: <data_dir>/stories)
	DataDir    string           `mapstructure:"data_dir"`    // journal, log and other app data (default: ~/.fairytale)
	Playback   PlaybackConfig   `mapstructure:"playback"`
	Vocabulary VocabularyConfig `mapstructure:"vocabulary"`
	Journal    JournalConfig    `mapstructure:"journal"`
	Watcher    WatcherConfig    `mapstructure:"watcher"`
	Telemetry  TelemetryConfig  `mapstructure:"telemetry"`
	Log        LogConfig        `mapstructure:"log"`
	Theme      ThemeConfig      `mapstructure:"theme"`
}

// PlaybackConfig controls how matched cues are played.
type PlaybackConfig struct {
	CeilingSeconds int  `mapstructure:"ceiling_seconds"` // longest a clip may hold the story, in seconds
	Silent         bool `mapstructure:"silent"`          // resolve and log cues without playing audio
}

// VocabularyConfig adds keyword categories on top of the built-in seed.
type VocabularyConfig struct {
	File  string        `mapstructure:"file"`  // standalone YAML file of phrase groups
	Extra []PhraseGroup `mapstructure:"extra"` // groups defined inline in the config
}

// JournalConfig controls the reading journal.
type JournalConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"` // SQLite file (default: <data_dir>/journal.db)
}

// WatcherConfig controls live story reload while reading.
type WatcherConfig struct {
	Enabled    bool `mapstructure:"enabled"`
	DebounceMS int  `mapstructure:"debounce_ms"`
}

// TelemetryConfig controls OpenTelemetry tracing of the cue pipeline.
type TelemetryConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"` // OTLP gRPC collector, e.g. "localhost:4317"
	Stdout   bool   `mapstructure:"stdout"`   // print spans instead of exporting
}

// LogConfig controls the debug log.
type LogConfig struct {
	File  string `mapstructure:"file"`  // log file (default: <data_dir>/fairytale.log)
	Level string `mapstructure:"level"` // debug, info, warn or error
}

// ThemeConfig holds all theme customization options.
type ThemeConfig struct {
	// Preset loads a built-in theme as the base (optional).
	// Valid values: "default", "storybook", "high-contrast"
	Preset string `mapstructure:"preset"`

	// Mode forces light or dark mode. If empty, uses terminal detection.
	// Valid values: "light", "dark", ""
	Mode string `mapstructure:"mode"`

	// Colors allows overriding individual color tokens.
	// Keys use dot notation: "text.primary", "cue.highlight", etc.
	Colors map[string]string `mapstructure:"colors"`
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Playback: PlaybackConfig{
			CeilingSeconds: 6,
		},
		Journal: JournalConfig{
			Enabled: true,
		},
		Watcher: WatcherConfig{
			Enabled:    true,
			DebounceMS: 100,
		},
		Log: LogConfig{
			Level: "info",
		},
		Theme: ThemeConfig{
			// Default theme uses the "default" preset
			Preset: "",
		},
	}
}

// ValidatePlayback checks playback configuration for errors.
func ValidatePlayback(p PlaybackConfig) error {
	if p.CeilingSeconds < 0 {
		return fmt.Errorf("playback.ceiling_seconds must not be negative, got %d", p.CeilingSeconds)
	}
	return nil
}

// ValidateWatcher checks watcher configuration for errors.
func ValidateWatcher(w WatcherConfig) error {
	if w.DebounceMS < 0 {
		return fmt.Errorf("watcher.debounce_ms must not be negative, got %d", w.DebounceMS)
	}
	return nil
}

// ValidateLog checks log configuration for errors.
// Returns nil if the level is empty (will use defaults).
func ValidateLog(l LogConfig) error {
	switch l.Level {
	case "", "debug", "info", "warn", "error":
		return nil
	}
	return fmt.Errorf("log.level must be one of debug, info, warn, error, got %q", l.Level)
}

// ValidateTheme checks theme configuration for errors.
// Preset names and color tokens are checked when the theme is applied;
// only the mode is validated here.
func ValidateTheme(t ThemeConfig) error {
	switch t.Mode {
	case "", "light", "dark":
		return nil
	}
	return fmt.Errorf("theme.mode must be %q, %q, or empty, got %q", "light", "dark", t.Mode)
}

// Validate checks the whole configuration for errors.
func (c Config) Validate() error {
	if err := ValidatePlayback(c.Playback); err != nil {
		return err
	}
	if err := ValidateWatcher(c.Watcher); err != nil {
		return err
	}
	if err := ValidateLog(c.Log); err != nil {
		return err
	}
	if err := ValidateTheme(c.Theme); err != nil {
		return err
	}
	return ValidatePhraseGroups(c.Vocabulary.Extra)
}

// EffectiveAudioDir resolves the audio library root. An explicit
// audio_dir wins; otherwise the Audio folder under the current working
// directory is used, falling back to the per-user app dir when no local
// library exists.
func (c Config) EffectiveAudioDir() string {
	if c.AudioDir != "" {
		return paths.ResolveAudioDir(c.AudioDir)
	}
	local := paths.ResolveAudioDir(".")
	if info, err := os.Stat(local); err == nil && info.IsDir() {
		return local
	}
	fallback := paths.ResolveAudioDir(paths.DefaultAppDir())
	if info, err := os.Stat(fallback); err == nil && info.IsDir() {
		return fallback
	}
	return local
}

// EffectiveDataDir returns data_dir, or the per-user default.
func (c Config) EffectiveDataDir() string {
	if c.DataDir != "" {
		return c.DataDir
	}
	return paths.DefaultAppDir()
}

// EffectiveStoriesDir returns stories_dir, or <data_dir>/stories.
func (c Config) EffectiveStoriesDir() string {
	if c.StoriesDir != "" {
		return c.StoriesDir
	}
	return filepath.Join(c.EffectiveDataDir(), "stories")
}

// EffectiveJournalPath returns journal.path, or <data_dir>/journal.db.
func (c Config) EffectiveJournalPath() string {
	if c.Journal.Path != "" {
		return c.Journal.Path
	}
	return filepath.Join(c.EffectiveDataDir(), "journal.db")
}

// EffectiveLogFile returns log.file, or <data_dir>/fairytale.log.
func (c Config) EffectiveLogFile() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return filepath.Join(c.EffectiveDataDir(), "fairytale.log")
}

// PlaybackCeiling returns the playback ceiling as a duration, falling
// back to the default when the configured value is not positive.
func (c Config) PlaybackCeiling() time.Duration {
	secs := c.Playback.CeilingSeconds
	if secs <= 0 {
		secs = Defaults().Playback.CeilingSeconds
	}
	return time.Duration(secs) * time.Second
}

// WatcherDebounce returns the story watcher debounce as a duration,
// falling back to the default when the configured value is not positive.
func (c Config) WatcherDebounce() time.Duration {
	ms := c.Watcher.DebounceMS
	if ms <= 0 {
		ms = Defaults().Watcher.DebounceMS
	}
	return time.Duration(ms) * time.Millisecond
}

// DefaultConfigPath returns the conventional config file location
// (~/.fairytale/config.yaml).
func DefaultConfigPath() string {
	return filepath.Join(paths.DefaultAppDir(), "config.yaml")
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Fairytale Configuration

# Path to the Audio library (default: ./Audio, then ~/.fairytale/Audio)
# audio_dir: /path/to/Audio

# Directory for your own stories (default: ~/.fairytale/stories)
# stories_dir: /path/to/stories

# Directory for app data such as the journal and log (default: ~/.fairytale)
# data_dir: /path/to/data

# Playback settings
playback:
  ceiling_seconds: 6  # longest a clip may hold the story, in seconds
  silent: false       # resolve and log cues without playing audio

# Extra keyword vocabulary on top of the built-in seed
vocabulary:
  # Load categories from a standalone YAML file:
  # file: /path/to/vocabulary.yaml
  #
  # Or define them inline:
  # extra:
  #   - name: Dragon
  #     class: sound_effect
  #     phrases: [dragon, roared]
  #   - name: Lullaby
  #     class: music
  #     phrases: [sleepy, goodnight]

# Reading journal (per-session record of stories read and cues played)
journal:
  enabled: true
  # path: /path/to/journal.db

# Live story reload while reading
watcher:
  enabled: true
  debounce_ms: 100

# OpenTelemetry tracing of the cue pipeline
telemetry:
  enabled: false
  # endpoint: localhost:4317  # OTLP gRPC collector
  # stdout: true              # print spans to stdout instead of exporting

# Logging
log:
  level: info
  # file: /path/to/fairytale.log

# Theme configuration
# Use a preset theme or customize individual colors
theme:
  # Use a preset (run 'fairytale themes' to see available presets):
  # preset: storybook
  #
  # Available presets:
  #   default        - Default fairytale theme
  #   storybook      - Warm lamplight palette for bedtime reading
  #   high-contrast  - High contrast for accessibility
  #
  # Force light or dark rendering (default: detect from the terminal):
  # mode: dark
  #
  # Override specific colors (works with or without preset):
  # colors:
  #   text.primary: "#FFFFFF"
  #   status.error: "#FF0000"
  #   cue.highlight: "#F368E0"
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	// Create parent directory if needed
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	// Write the template
	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
