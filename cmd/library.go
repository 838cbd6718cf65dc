package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/olincollege/fairytale-sound-effects/internal/library"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Show the audio library and diagnose missing clips",
	Long: `Walks the Sound_Effects and Music folders and reports the clip count
for every registered category, flagging folders that are missing or
hold no playable clips. Bookkeeping files such as .DS_Store never
count as clips.`,
	RunE: runLibrary,
}

func init() {
	rootCmd.AddCommand(libraryCmd)
}

func runLibrary(cmd *cobra.Command, args []string) error {
	vocab, err := buildVocabulary(cfg)
	if err != nil {
		return err
	}

	audioDir := cfg.EffectiveAudioDir()
	rows, err := library.NewScanner(audioDir).Overview(vocab)
	if err != nil {
		return fmt.Errorf("%w\n\nRun fairytale init to create the library folders", err)
	}

	maxLen := 0
	for _, r := range rows {
		if len(r.Category) > maxLen {
			maxLen = len(r.Category)
		}
	}

	fmt.Printf("Audio library: %s\n\n", audioDir)
	missing, empty := 0, 0
	for _, r := range rows {
		note := ""
		switch {
		case r.Missing:
			note = "folder missing"
			missing++
		case r.Clips == 0:
			note = "no clips"
			empty++
		}
		fmt.Printf("  %-*s  %-12s  %3d clips  %s\n", maxLen, r.Category, r.Class, r.Clips, note)
	}

	fmt.Println()
	fmt.Printf("%d clips across %d categories\n", library.TotalClips(rows), len(rows))
	if missing > 0 {
		fmt.Printf("%d categories have no folder; run fairytale init to scaffold them\n", missing)
	}
	if empty > 0 {
		fmt.Printf("%d folders hold no playable clips; cues for them stay silent\n", empty)
	}
	if missing == 0 && empty == 0 {
		fmt.Println("Every category has clips. Happy reading!")
	}
	return nil
}
