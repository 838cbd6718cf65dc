package book

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/olincollege/fairytale-sound-effects/internal/log"
)

// Catalog merges bundled stories with the user's stories directory.
// Bundled stories always come first, each group in file-name order.
type Catalog struct {
	builtin fs.FS  // flat filesystem of bundled story files, may be nil
	userDir string // optional directory of user stories, "" disables
}

// NewCatalog builds a catalog over a flat builtin filesystem (story files
// at its root) and an optional user stories directory.
func NewCatalog(builtin fs.FS, userDir string) *Catalog {
	return &Catalog{builtin: builtin, userDir: userDir}
}

// Books lists the catalog. A story file that cannot be read or parsed is
// logged and skipped; an unreadable user directory degrades to the
// bundled set. Listing never fails outright.
func (c *Catalog) Books() []Book {
	books := c.builtinBooks()
	return append(books, c.userBooks()...)
}

func (c *Catalog) builtinBooks() []Book {
	if c.builtin == nil {
		return nil
	}
	entries, err := fs.ReadDir(c.builtin, ".")
	if err != nil {
		log.Warn(log.CatBook, "listing bundled stories", "error", err.Error())
		return nil
	}

	var books []Book
	for _, entry := range entries {
		if !isStoryFile(entry) {
			continue
		}
		data, err := fs.ReadFile(c.builtin, entry.Name())
		if err != nil {
			log.Warn(log.CatBook, "reading bundled story", "file", entry.Name(), "error", err.Error())
			continue
		}
		b, err := buildBook(entry.Name(), entry.Name(), SourceBuiltin, data)
		if err != nil {
			log.Warn(log.CatBook, "parsing bundled story", "file", entry.Name(), "error", err.Error())
			continue
		}
		books = append(books, b)
	}
	return books
}

func (c *Catalog) userBooks() []Book {
	if c.userDir == "" {
		return nil
	}
	entries, err := os.ReadDir(c.userDir)
	if err != nil {
		log.Warn(log.CatBook, "listing stories directory", "dir", c.userDir, "error", err.Error())
		return nil
	}

	var books []Book
	for _, entry := range entries {
		if !isStoryFile(entry) {
			continue
		}
		path := filepath.Join(c.userDir, entry.Name())
		data, err := os.ReadFile(path) //nolint:gosec // G304: path is from the configured stories directory
		if err != nil {
			log.Warn(log.CatBook, "reading story", "file", path, "error", err.Error())
			continue
		}
		b, err := buildBook(entry.Name(), path, SourceUser, data)
		if err != nil {
			log.Warn(log.CatBook, "parsing story", "file", path, "error", err.Error())
			continue
		}
		books = append(books, b)
	}
	return books
}

// Load reads a cataloged book from its source and returns the full story.
// Unlike Books, failures surface to the caller: the reader asked for this
// specific story and needs to know why it is missing. The file is re-read
// on every call so edits picked up by the story watcher are reflected.
func (c *Catalog) Load(b Book) (Story, error) {
	var (
		data []byte
		err  error
	)
	switch b.Source {
	case SourceBuiltin:
		if c.builtin == nil {
			return Story{}, fmt.Errorf("loading %s: no bundled stories available", b.Path)
		}
		data, err = fs.ReadFile(c.builtin, b.Path)
	case SourceUser:
		data, err = os.ReadFile(b.Path) //nolint:gosec // G304: path is from the configured stories directory
	default:
		return Story{}, fmt.Errorf("loading %s: unknown source %q", b.Path, b.Source)
	}
	if err != nil {
		return Story{}, fmt.Errorf("reading story %s: %w", b.Path, err)
	}

	fm, body, err := parseStory(filepath.Base(b.Path), data)
	if err != nil {
		return Story{}, err
	}
	loaded := b
	loaded.Title = fm.Title
	loaded.Author = fm.Author
	loaded.Summary = fm.Summary
	return Story{Book: loaded, Body: body}, nil
}

func buildBook(name, path string, source Source, data []byte) (Book, error) {
	fm, _, err := parseStory(name, data)
	if err != nil {
		return Book{}, err
	}
	return Book{
		Title:   fm.Title,
		Author:  fm.Author,
		Summary: fm.Summary,
		Source:  source,
		Format:  formatFor(name),
		Path:    path,
	}, nil
}

func isStoryFile(entry fs.DirEntry) bool {
	if entry.IsDir() {
		return false
	}
	name := entry.Name()
	if strings.HasPrefix(name, ".") {
		return false
	}
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".md" || ext == ".txt"
}
