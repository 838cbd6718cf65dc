// Package storybooks embeds the read-aloud stories that ship with the app.
//
// Built-in stories are Markdown files with a YAML frontmatter block (title,
// author, summary). They are embedded at compile time so a fresh install has
// something to read before the user adds their own stories directory.
package storybooks

import (
	"embed"
	"io/fs"
)

// builtinStories embeds every bundled story from the stories directory:
//   - stories/<name>.md (frontmatter + story text)
//
//go:embed stories
var builtinStories embed.FS

// StoriesFS returns the embedded filesystem containing the bundled stories.
// The book catalog merges these with stories from the user's stories
// directory.
func StoriesFS() fs.FS {
	return builtinStories
}
