package library

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/olincollege/fairytale-sound-effects/internal/cue"
	"github.com/olincollege/fairytale-sound-effects/internal/log"
)

// CategoryOverview is one row of the library summary: how many playable
// clips a category has, and whether its folder exists at all.
type CategoryOverview struct {
	Category string
	Class    cue.Class
	Clips    int
	Missing  bool
}

const (
	overviewTTL      = 30 * time.Second
	overviewCacheKey = "overview"
)

// Scanner computes library overviews for the menu panel and the doctor
// command. Results are TTL-cached: the overview is display data, and
// rescanning the whole tree on every UI frame would be wasteful. The
// selection path never goes through the scanner.
type Scanner struct {
	root  string
	cache *gocache.Cache
}

// NewScanner returns a scanner for the library rooted at dir.
func NewScanner(dir string) *Scanner {
	return &Scanner{
		root:  dir,
		cache: gocache.New(overviewTTL, 2*overviewTTL),
	}
}

// Root returns the library root the scanner was built with.
func (s *Scanner) Root() string {
	return s.root
}

// Overview returns one row per registered category, in vocabulary scan
// order. Fails only when the library root itself is missing; individual
// category folders that are absent are reported via Missing.
func (s *Scanner) Overview(v *cue.Vocabulary) ([]CategoryOverview, error) {
	if cached, ok := s.cache.Get(overviewCacheKey); ok {
		if rows, ok := cached.([]CategoryOverview); ok {
			return rows, nil
		}
	}

	if _, err := os.Stat(s.root); err != nil {
		return nil, fmt.Errorf("audio library not found at %s: %w", s.root, err)
	}

	names := v.Categories()
	rows := make([]CategoryOverview, 0, len(names))
	for _, name := range names {
		loc := v.Resolve(name)
		row := CategoryOverview{Category: name, Class: v.ClassOf(name)}

		entries, err := os.ReadDir(filepath.Join(s.root, loc.ClassFolder, loc.CategoryFolder))
		if err != nil {
			row.Missing = true
			rows = append(rows, row)
			continue
		}
		for _, e := range entries {
			if e.IsDir() || IsBookkeepingArtifact(e.Name()) {
				continue
			}
			row.Clips++
		}
		rows = append(rows, row)
	}

	s.cache.Set(overviewCacheKey, rows, gocache.DefaultExpiration)
	log.Debug(log.CatLibrary, "Library scanned", "root", s.root, "categories", len(rows))
	return rows, nil
}

// Invalidate drops the cached overview so the next call rescans,
// typically after the watcher reports library changes or init
// scaffolds new folders.
func (s *Scanner) Invalidate() {
	s.cache.Delete(overviewCacheKey)
}

// TotalClips sums the clip counts of an overview.
func TotalClips(rows []CategoryOverview) int {
	total := 0
	for _, r := range rows {
		total += r.Clips
	}
	return total
}
