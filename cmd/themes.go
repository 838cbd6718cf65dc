package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/olincollege/fairytale-sound-effects/internal/ui/styles"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List available theme presets",
	Long: `Displays the built-in color presets. Pick one with theme.preset in the
config file; individual tokens can be overridden under theme.colors.`,
	Run: runThemes,
}

func init() {
	rootCmd.AddCommand(themesCmd)
}

func runThemes(cmd *cobra.Command, args []string) {
	names := make([]string, 0, len(styles.Presets))
	for name := range styles.Presets {
		names = append(names, name)
	}
	sort.Strings(names)

	maxLen := 0
	for _, name := range names {
		if len(name) > maxLen {
			maxLen = len(name)
		}
	}

	for _, name := range names {
		fmt.Printf("%-*s  %s\n", maxLen, name, styles.Presets[name].Description)
	}

	fmt.Println()
	fmt.Println("Example config:")
	fmt.Println("  theme:")
	fmt.Println("    preset: storybook")
	fmt.Println("    colors:")
	fmt.Println("      cue.highlight: \"#F368E0\"")
}
