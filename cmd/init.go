package cmd

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/olincollege/fairytale-sound-effects/internal/config"
	"github.com/olincollege/fairytale-sound-effects/internal/library"
	"github.com/olincollege/fairytale-sound-effects/storybooks"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the config file, audio library folders and story folder",
	Long: `Writes a commented config file, scaffolds the Sound_Effects and Music
category folders for every registered key word, and copies the bundled
stories into your story folder. Existing files are left alone, so init
is safe to rerun after adding vocabulary.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath := cfgFile
	if configPath == "" {
		configPath = config.DefaultConfigPath()
	}

	if _, err := os.Stat(configPath); err == nil {
		fmt.Printf("Config already exists: %s\n", configPath)
	} else {
		if err := config.WriteDefaultConfig(configPath); err != nil {
			return fmt.Errorf("creating config file: %w", err)
		}
		fmt.Printf("Created %s\n", configPath)
	}

	vocab, err := buildVocabulary(cfg)
	if err != nil {
		return err
	}

	audioDir := cfg.EffectiveAudioDir()
	if err := library.Scaffold(audioDir, vocab); err != nil {
		return fmt.Errorf("scaffolding audio library: %w", err)
	}
	fmt.Printf("Audio library ready: %s (%d categories)\n", audioDir, vocab.Len())

	storiesDir := cfg.EffectiveStoriesDir()
	copied, err := copyBundledStories(storiesDir)
	if err != nil {
		return fmt.Errorf("copying bundled stories: %w", err)
	}
	if copied > 0 {
		fmt.Printf("Copied %d bundled stories to %s\n", copied, storiesDir)
	} else {
		fmt.Printf("Story folder ready: %s\n", storiesDir)
	}

	fmt.Println()
	fmt.Println("Drop .wav or .mp3 clips into the category folders, then run fairytale.")
	return nil
}

// copyBundledStories writes the embedded stories into dir, skipping any
// file the user already has, and reports how many were copied.
func copyBundledStories(dir string) (int, error) {
	stories, err := fs.Sub(storybooks.StoriesFS(), "stories")
	if err != nil {
		return 0, err
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return 0, err
	}

	entries, err := fs.ReadDir(stories, ".")
	if err != nil {
		return 0, err
	}

	copied := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		target := filepath.Join(dir, e.Name())
		if _, err := os.Stat(target); err == nil {
			continue
		}
		data, err := fs.ReadFile(stories, e.Name())
		if err != nil {
			return copied, err
		}
		if err := os.WriteFile(target, data, 0o600); err != nil {
			return copied, err
		}
		copied++
	}
	return copied, nil
}
