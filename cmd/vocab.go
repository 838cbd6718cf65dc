package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/olincollege/fairytale-sound-effects/internal/library"
)

var vocabCmd = &cobra.Command{
	Use:   "vocab",
	Short: "List the key word vocabulary",
	Long: `Displays every registered category in detection scan order, with its
class, clip count and trigger phrases. Includes categories added via
the vocabulary file and the config's inline extras.`,
	RunE: runVocab,
}

func init() {
	rootCmd.AddCommand(vocabCmd)
}

func runVocab(cmd *cobra.Command, args []string) error {
	vocab, err := buildVocabulary(cfg)
	if err != nil {
		return err
	}

	// Clip counts are best-effort: without a library every row reads 0.
	clips := make(map[string]int)
	if rows, err := library.NewScanner(cfg.EffectiveAudioDir()).Overview(vocab); err == nil {
		for _, r := range rows {
			clips[r.Category] = r.Clips
		}
	}

	names := vocab.Categories()
	maxLen := 0
	for _, name := range names {
		if len(name) > maxLen {
			maxLen = len(name)
		}
	}

	fmt.Printf("%-*s  %-12s  %5s  %s\n", maxLen, "CATEGORY", "CLASS", "CLIPS", "PHRASES")
	for _, name := range names {
		fmt.Printf("%-*s  %-12s  %5d  %s\n",
			maxLen, name, vocab.ClassOf(name), clips[name], strings.Join(vocab.Phrases(name), ", "))
	}

	fmt.Println()
	fmt.Println("Detection scans categories top to bottom; the first phrase found wins.")
	return nil
}
