package book

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// frontmatter is the YAML block an authored story may open with.
type frontmatter struct {
	Title   string `yaml:"title"`
	Author  string `yaml:"author"`
	Summary string `yaml:"summary"`
}

// splitFrontmatter separates a leading YAML frontmatter block from the
// story body. A block opens with a bare --- on the first line and closes
// with the next bare --- line. Files without a block return ok=false and
// the input unchanged as body.
func splitFrontmatter(data []byte) (meta, body []byte, ok bool) {
	normalized := bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
	openFence := []byte("---\n")
	if !bytes.HasPrefix(normalized, openFence) {
		return nil, data, false
	}
	rest := normalized[len(openFence):]

	if end := bytes.Index(rest, []byte("\n---\n")); end >= 0 {
		return rest[:end], rest[end+len("\n---\n"):], true
	}
	// Closing fence at end of file without a trailing newline.
	if bytes.HasSuffix(rest, []byte("\n---")) {
		return rest[:len(rest)-len("\n---")], nil, true
	}
	// Unterminated block: treat the whole file as body.
	return nil, data, false
}

// parseStory extracts metadata and body from raw story bytes. Missing or
// absent frontmatter falls back to a title derived from the file name.
func parseStory(name string, data []byte) (frontmatter, string, error) {
	meta, body, ok := splitFrontmatter(data)
	fm := frontmatter{}
	if ok {
		if err := yaml.Unmarshal(meta, &fm); err != nil {
			return frontmatter{}, "", fmt.Errorf("parsing frontmatter of %s: %w", name, err)
		}
	}
	if fm.Title == "" {
		fm.Title = titleFromName(name)
	}
	return fm, string(bytes.TrimLeft(body, "\n")), nil
}
