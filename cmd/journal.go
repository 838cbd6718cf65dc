package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/olincollege/fairytale-sound-effects/internal/infrastructure/sqlite"
)

var journalLimit int

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Show recent reading sessions",
	Long: `Lists recent reading sessions from the journal: which story was read,
when, for how long, and how many lines triggered a cue.`,
	RunE: runJournal,
}

func init() {
	journalCmd.Flags().IntVarP(&journalLimit, "limit", "n", 10, "number of sessions to show (0 for all)")
	rootCmd.AddCommand(journalCmd)
}

func runJournal(cmd *cobra.Command, args []string) error {
	path := cfg.EffectiveJournalPath()
	if _, err := os.Stat(path); err != nil {
		fmt.Println("No reading sessions recorded yet.")
		return nil
	}

	db, err := sqlite.NewDB(path)
	if err != nil {
		return fmt.Errorf("opening journal: %w", err)
	}
	defer func() { _ = db.Close() }()

	sessions, err := db.JournalRepository().ListRecent(journalLimit)
	if err != nil {
		return fmt.Errorf("reading journal: %w", err)
	}
	if len(sessions) == 0 {
		fmt.Println("No reading sessions recorded yet.")
		return nil
	}

	maxLen := 0
	for _, s := range sessions {
		if len(s.Book()) > maxLen {
			maxLen = len(s.Book())
		}
	}

	for _, s := range sessions {
		state := ""
		if s.Active() {
			state = "  (still open)"
		}
		fmt.Printf("%s  %-*s  %8s  %d cues, %d misses, %d faults%s\n",
			s.StartedAt().Format("2006-01-02 15:04"),
			maxLen, s.Book(),
			s.Duration().Round(time.Second),
			s.Cues(), s.Misses(), s.Faults(),
			state)
	}
	return nil
}
