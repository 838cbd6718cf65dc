package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/olincollege/fairytale-sound-effects/internal/cue"
	"github.com/olincollege/fairytale-sound-effects/internal/library"
	"github.com/olincollege/fairytale-sound-effects/internal/log"
	"github.com/olincollege/fairytale-sound-effects/internal/sound"
)

var cueCmd = &cobra.Command{
	Use:   "cue <text>...",
	Short: "Run one line of story text through the cue engine",
	Long: `Feeds a line of text to the detector exactly as the reading screen
would: first registered key word wins, the category resolves to its
class folder, and a random clip plays for the bounded window. Pass
--silent to see what would play without any audio.

Example:
  fairytale cue "the wolf huffed and puffed"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCue,
}

func init() {
	rootCmd.AddCommand(cueCmd)
}

func runCue(cmd *cobra.Command, args []string) error {
	cleanup, err := log.Init(cfg.EffectiveLogFile())
	if err == nil {
		defer cleanup()
	}
	log.SetLevel(log.ParseLevel(cfg.Log.Level))

	vocab, err := buildVocabulary(cfg)
	if err != nil {
		return err
	}

	audioDir := cfg.EffectiveAudioDir()
	if !libraryPresent(audioDir) {
		return fmt.Errorf("audio library not found at %s (run fairytale init to create it)", audioDir)
	}

	session := cue.NewSession(
		vocab,
		library.NewSelector(audioDir),
		sound.New(audioDir, cfg.PlaybackCeiling(), cfg.Playback.Silent),
	)

	text := strings.Join(args, " ")
	played := session.HandleUtterance(cmd.Context(), text)

	loc, detected := session.LastLocation()
	if !detected {
		fmt.Println("no cue: none of the key words appear in that line")
		return nil
	}

	fmt.Printf("cue:    %s (%s)\n", loc.CategoryFolder, vocab.ClassOf(loc.CategoryFolder))
	fmt.Printf("folder: %s\n", loc)
	if clip, ok := session.LastClip(); ok {
		fmt.Printf("clip:   %s\n", clip)
	}

	switch {
	case played && cfg.Playback.Silent:
		fmt.Println("result: selected (silent mode, nothing played)")
	case played:
		fmt.Println("result: played")
	default:
		if _, ok := session.LastClip(); ok {
			fmt.Println("result: playback failed (see log)")
		} else {
			fmt.Println("result: no clip available (run fairytale library to check the folders)")
		}
	}
	return nil
}
