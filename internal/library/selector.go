// Package library reads the on-disk clip library: the two-level
// Sound_Effects/Music tree that read-aloud cues resolve into. The file
// system is the source of truth; nothing here caches listings on the
// selection path.
package library

import (
	"io/fs"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/olincollege/fairytale-sound-effects/internal/cue"
	"github.com/olincollege/fairytale-sound-effects/internal/log"
)

// Selector picks clips for resolved locations by listing the location's
// directory on every call. It satisfies the cue.ClipSelector port.
type Selector struct {
	fsys fs.FS
}

var _ cue.ClipSelector = (*Selector)(nil)

// NewSelector returns a selector over the library rooted at dir.
func NewSelector(dir string) *Selector {
	return &Selector{fsys: os.DirFS(dir)}
}

// NewSelectorFS returns a selector over an arbitrary file system,
// letting tests substitute an in-memory library.
func NewSelectorFS(fsys fs.FS) *Selector {
	return &Selector{fsys: fsys}
}

// PickRandom lists the directory for loc, filters bookkeeping
// artifacts, and returns one remaining entry uniformly at random.
// Returns StorageNotFoundError when the directory is missing or
// unreadable and EmptyLibraryError when nothing playable remains.
// Calls are independent: repeated cues for one category may repeat
// the same clip.
func (s *Selector) PickRandom(loc cue.Location) (string, error) {
	entries, err := fs.ReadDir(s.fsys, loc.Path())
	if err != nil {
		return "", &cue.StorageNotFoundError{Location: loc, Err: err}
	}

	candidates := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || IsBookkeepingArtifact(e.Name()) {
			continue
		}
		candidates = append(candidates, e.Name())
	}
	if len(candidates) == 0 {
		return "", &cue.EmptyLibraryError{Location: loc}
	}

	clip := candidates[rand.IntN(len(candidates))]
	log.Debug(log.CatLibrary, "Clip selected", "location", loc, "clip", clip, "candidates", len(candidates))
	return clip, nil
}

// IsBookkeepingArtifact reports whether a directory entry name is
// platform metadata rather than a playable clip: dotfiles (.DS_Store,
// AppleDouble ._* files) and the Windows folder artifacts.
func IsBookkeepingArtifact(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	switch name {
	case "Thumbs.db", "desktop.ini":
		return true
	}
	return false
}
