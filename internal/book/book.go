// Package book maintains the read-aloud catalog: bundled stories embedded
// in the binary plus whatever the user keeps in their stories directory.
package book

import (
	"path/filepath"
	"strings"
)

// Source identifies where a catalog entry came from.
type Source string

const (
	// SourceBuiltin marks a story embedded in the binary.
	SourceBuiltin Source = "builtin"
	// SourceUser marks a story loaded from the user's stories directory.
	SourceUser Source = "user"
)

// Format identifies how a story body should be rendered.
type Format string

const (
	// FormatMarkdown renders through the markdown viewer.
	FormatMarkdown Format = "markdown"
	// FormatText renders as wrapped plain text.
	FormatText Format = "text"
)

// Book is one entry in the catalog. Path is the file name inside the
// embedded filesystem for builtin books and an absolute path on disk for
// user books.
type Book struct {
	Title   string
	Author  string
	Summary string
	Source  Source
	Format  Format
	Path    string
}

// Story is a fully loaded book: catalog metadata plus the story text with
// any frontmatter stripped.
type Story struct {
	Book
	Body string
}

// formatFor maps a file extension to a render format.
func formatFor(name string) Format {
	if strings.EqualFold(filepath.Ext(name), ".txt") {
		return FormatText
	}
	return FormatMarkdown
}

// titleFromName derives a display title from a file name when the
// frontmatter does not carry one: strip the extension, then turn
// separators into spaces.
func titleFromName(name string) string {
	stem := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	stem = strings.ReplaceAll(stem, "-", " ")
	stem = strings.ReplaceAll(stem, "_", " ")
	return strings.TrimSpace(stem)
}
