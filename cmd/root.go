// Package cmd wires the fairytale CLI. The root command launches the
// storytime TUI; subcommands handle setup and inspection from the shell.
package cmd

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"

	"github.com/olincollege/fairytale-sound-effects/internal/book"
	"github.com/olincollege/fairytale-sound-effects/internal/config"
	"github.com/olincollege/fairytale-sound-effects/internal/cue"
	"github.com/olincollege/fairytale-sound-effects/internal/infrastructure/sqlite"
	"github.com/olincollege/fairytale-sound-effects/internal/journal/domain"
	"github.com/olincollege/fairytale-sound-effects/internal/library"
	"github.com/olincollege/fairytale-sound-effects/internal/log"
	"github.com/olincollege/fairytale-sound-effects/internal/mode/storytime"
	"github.com/olincollege/fairytale-sound-effects/internal/sound"
	"github.com/olincollege/fairytale-sound-effects/internal/telemetry"
	"github.com/olincollege/fairytale-sound-effects/internal/ui/nolibrary"
	"github.com/olincollege/fairytale-sound-effects/internal/ui/styles"
	"github.com/olincollege/fairytale-sound-effects/storybooks"
)

// version is stamped at build time via -ldflags.
var version = "dev"

var (
	cfg     config.Config
	cfgFile string

	audioDirFlag string
	silentFlag   bool
	logLevelFlag string
)

var rootCmd = &cobra.Command{
	Use:   "fairytale",
	Short: "Sound effects and music cues for read-aloud storybook sessions",
	Long: `Fairytale plays sound effects and music while you read storybooks
aloud. Open a story, type each line as you speak it, and matching key
words answer with a random clip from your Audio library.

Run "fairytale init" first to create the config file and the audio
library folders.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	RunE:              runRoot,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.fairytale/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&audioDirFlag, "audio-dir", "", "audio library root (overrides audio_dir)")
	rootCmd.PersistentFlags().BoolVar(&silentFlag, "silent", false, "resolve cues without playing audio")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "log level: debug, info, warn or error")
}

// Execute runs the CLI. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig populates the package-level cfg before any command runs.
// Flags win over the config file.
func loadConfig(cmd *cobra.Command, args []string) error {
	path := cfgFile
	if path == "" {
		path = config.DefaultConfigPath()
	}

	loaded, err := config.Load(path)
	if err != nil {
		return err
	}
	cfg = loaded

	if audioDirFlag != "" {
		cfg.AudioDir = audioDirFlag
	}
	if silentFlag {
		cfg.Playback.Silent = true
	}
	if logLevelFlag != "" {
		cfg.Log.Level = logLevelFlag
		if err := config.ValidateLog(cfg.Log); err != nil {
			return err
		}
	}
	return nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	cleanup, err := log.Init(cfg.EffectiveLogFile())
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: debug log disabled: %v\n", err)
	} else {
		defer cleanup()
	}
	log.SetLevel(log.ParseLevel(cfg.Log.Level))
	log.Info(log.CatConfig, "fairytale starting", "version", version)

	if err := applyTheme(); err != nil {
		return err
	}

	tel := telemetry.New(cmd.Context(), telemetry.Config{
		Enabled:  cfg.Telemetry.Enabled,
		Endpoint: cfg.Telemetry.Endpoint,
		Stdout:   cfg.Telemetry.Stdout,
		Version:  version,
	})
	defer func() { _ = tel.Shutdown(context.Background()) }()

	zone.NewGlobal()

	audioDir := cfg.EffectiveAudioDir()
	if !libraryPresent(audioDir) {
		log.Warn(log.CatLibrary, "Audio library missing", "dir", audioDir)
		p := tea.NewProgram(nolibrary.New(audioDir), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("running empty-state view: %w", err)
		}
		return nil
	}

	vocab, err := buildVocabulary(cfg)
	if err != nil {
		return err
	}

	session := cue.NewSession(
		vocab,
		library.NewSelector(audioDir),
		sound.New(audioDir, cfg.PlaybackCeiling(), cfg.Playback.Silent),
	)

	builtin, err := fs.Sub(storybooks.StoriesFS(), "stories")
	if err != nil {
		return fmt.Errorf("loading bundled stories: %w", err)
	}
	catalog := book.NewCatalog(builtin, cfg.EffectiveStoriesDir())

	var journal domain.Repository
	if cfg.Journal.Enabled {
		db, err := sqlite.NewDB(cfg.EffectiveJournalPath())
		if err != nil {
			log.ErrorErr(log.CatDB, "Journal disabled", err, "path", cfg.EffectiveJournalPath())
		} else {
			defer func() { _ = db.Close() }()
			journal = db.JournalRepository()
		}
	}

	m := storytime.New(storytime.Deps{
		Session:      session,
		Catalog:      catalog,
		Scanner:      library.NewScanner(audioDir),
		Journal:      journal,
		WatchStories: cfg.Watcher.Enabled,
		Debounce:     cfg.WatcherDebounce(),
		AudioDir:     audioDir,
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running storytime: %w", err)
	}
	return nil
}

// libraryPresent reports whether the audio library root exists as a
// directory. When it does not, startup shows the empty-state view
// instead of the story menu.
func libraryPresent(dir string) bool {
	info, err := os.Stat(dir)
	return err == nil && info.IsDir()
}

// buildVocabulary seeds the built-in category table and layers config
// additions on top: the standalone vocabulary file first, then inline
// extras. Order matters, detection scans categories first to last.
func buildVocabulary(cfg config.Config) (*cue.Vocabulary, error) {
	vocab := cue.DefaultVocabulary()

	if cfg.Vocabulary.File != "" {
		seed, err := config.LoadVocabularyFile(cfg.Vocabulary.File)
		if err != nil {
			return nil, err
		}
		for _, s := range seed {
			vocab.Register(s.Name, s.Class, s.Phrases...)
		}
	}

	extra, err := config.SeedCategories(cfg.Vocabulary.Extra)
	if err != nil {
		return nil, err
	}
	for _, s := range extra {
		vocab.Register(s.Name, s.Class, s.Phrases...)
	}
	return vocab, nil
}

func applyTheme() error {
	return styles.ApplyTheme(styles.ThemeConfig{
		Preset: cfg.Theme.Preset,
		Mode:   cfg.Theme.Mode,
		Colors: cfg.Theme.Colors,
	})
}
