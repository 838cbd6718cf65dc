package library

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/olincollege/fairytale-sound-effects/internal/cue"
	"github.com/olincollege/fairytale-sound-effects/internal/log"
)

// Scaffold creates the library tree for every category in the
// vocabulary: both class roots plus one folder per category under its
// resolved class. Existing directories are left alone, so scaffolding
// an already-populated library is safe.
func Scaffold(root string, v *cue.Vocabulary) error {
	for _, class := range []cue.Class{cue.SoundEffect, cue.Music} {
		if err := os.MkdirAll(filepath.Join(root, class.Folder()), 0o755); err != nil {
			return fmt.Errorf("failed to create class folder %s: %w", class.Folder(), err)
		}
	}

	for _, name := range v.Categories() {
		loc := v.Resolve(name)
		dir := filepath.Join(root, loc.ClassFolder, loc.CategoryFolder)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create category folder %s: %w", loc, err)
		}
	}

	log.Info(log.CatLibrary, "Library scaffolded", "root", root, "categories", v.Len())
	return nil
}
