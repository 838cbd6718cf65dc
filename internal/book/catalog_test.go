package book

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olincollege/fairytale-sound-effects/storybooks"
)

const storyWithFrontmatter = `---
title: The Tin Soldier
author: H.C. Andersen
summary: A steadfast soldier on one leg.
---

There were once five and twenty tin soldiers.
`

func builtinFS(files map[string]string) fs.FS {
	m := fstest.MapFS{}
	for name, content := range files {
		m[name] = &fstest.MapFile{Data: []byte(content)}
	}
	return m
}

func writeStory(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestBooks_BuiltinsFirstThenUserSorted(t *testing.T) {
	builtin := builtinFS(map[string]string{
		"cinderella.md": storyWithFrontmatter,
		"general.md":    storyWithFrontmatter,
	})
	userDir := t.TempDir()
	writeStory(t, userDir, "zebra-tales.md", storyWithFrontmatter)
	writeStory(t, userDir, "bedtime.txt", "A quiet story.\n")

	books := NewCatalog(builtin, userDir).Books()
	require.Len(t, books, 4)

	assert.Equal(t, "cinderella.md", books[0].Path)
	assert.Equal(t, SourceBuiltin, books[0].Source)
	assert.Equal(t, "general.md", books[1].Path)

	// User stories follow, in file-name order regardless of titles.
	assert.Equal(t, filepath.Join(userDir, "bedtime.txt"), books[2].Path)
	assert.Equal(t, SourceUser, books[2].Source)
	assert.Equal(t, filepath.Join(userDir, "zebra-tales.md"), books[3].Path)
}

func TestBooks_FrontmatterPopulatesMetadata(t *testing.T) {
	builtin := builtinFS(map[string]string{"soldier.md": storyWithFrontmatter})

	books := NewCatalog(builtin, "").Books()
	require.Len(t, books, 1)

	assert.Equal(t, "The Tin Soldier", books[0].Title)
	assert.Equal(t, "H.C. Andersen", books[0].Author)
	assert.Equal(t, "A steadfast soldier on one leg.", books[0].Summary)
	assert.Equal(t, FormatMarkdown, books[0].Format)
}

func TestBooks_TitleFallsBackToFileName(t *testing.T) {
	builtin := builtinFS(map[string]string{
		"the_snow-queen.md": "No frontmatter here, just a story.\n",
	})

	books := NewCatalog(builtin, "").Books()
	require.Len(t, books, 1)
	assert.Equal(t, "the snow queen", books[0].Title)
}

func TestBooks_SkipsNonStoryEntries(t *testing.T) {
	userDir := t.TempDir()
	writeStory(t, userDir, "keeper.md", "ok\n")
	writeStory(t, userDir, ".hidden.md", "nope\n")
	writeStory(t, userDir, "notes.pdf", "nope\n")
	require.NoError(t, os.Mkdir(filepath.Join(userDir, "drafts.md"), 0o755))

	books := NewCatalog(nil, userDir).Books()
	require.Len(t, books, 1)
	assert.Equal(t, filepath.Join(userDir, "keeper.md"), books[0].Path)
}

func TestBooks_BadFrontmatterSkipsFileOnly(t *testing.T) {
	builtin := builtinFS(map[string]string{
		"broken.md": "---\ntitle: [unclosed\n---\nbody\n",
		"good.md":   storyWithFrontmatter,
	})

	books := NewCatalog(builtin, "").Books()
	require.Len(t, books, 1)
	assert.Equal(t, "good.md", books[0].Path)
}

func TestBooks_MissingUserDirDegradesToBuiltins(t *testing.T) {
	builtin := builtinFS(map[string]string{"cinderella.md": storyWithFrontmatter})

	books := NewCatalog(builtin, filepath.Join(t.TempDir(), "does-not-exist")).Books()
	require.Len(t, books, 1)
	assert.Equal(t, SourceBuiltin, books[0].Source)
}

func TestBooks_TextFilesGetTextFormat(t *testing.T) {
	userDir := t.TempDir()
	writeStory(t, userDir, "plain.txt", "Plain story.\n")
	writeStory(t, userDir, "fancy.md", "# Fancy story\n")

	books := NewCatalog(nil, userDir).Books()
	require.Len(t, books, 2)
	assert.Equal(t, FormatMarkdown, books[0].Format)
	assert.Equal(t, FormatText, books[1].Format)
}

func TestLoad_BuiltinStory(t *testing.T) {
	builtin := builtinFS(map[string]string{"soldier.md": storyWithFrontmatter})
	c := NewCatalog(builtin, "")

	books := c.Books()
	require.Len(t, books, 1)

	story, err := c.Load(books[0])
	require.NoError(t, err)
	assert.Equal(t, "The Tin Soldier", story.Book.Title)
	assert.Equal(t, "There were once five and twenty tin soldiers.\n", story.Body)
}

func TestLoad_UserStoryReflectsEdits(t *testing.T) {
	userDir := t.TempDir()
	path := writeStory(t, userDir, "draft.md", "First version.\n")
	c := NewCatalog(nil, userDir)

	books := c.Books()
	require.Len(t, books, 1)

	story, err := c.Load(books[0])
	require.NoError(t, err)
	assert.Equal(t, "First version.\n", story.Body)

	// Edits on disk show up on the next Load without relisting.
	require.NoError(t, os.WriteFile(path, []byte("Second version.\n"), 0o644))
	story, err = c.Load(books[0])
	require.NoError(t, err)
	assert.Equal(t, "Second version.\n", story.Body)
}

func TestLoad_MissingUserStoryFails(t *testing.T) {
	c := NewCatalog(nil, t.TempDir())

	_, err := c.Load(Book{Source: SourceUser, Path: filepath.Join(t.TempDir(), "gone.md")})
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoad_UnknownSourceFails(t *testing.T) {
	c := NewCatalog(nil, "")

	_, err := c.Load(Book{Source: Source("network"), Path: "x.md"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown source")
}

func TestSplitFrontmatter(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		wantMeta string
		wantBody string
		wantOK   bool
	}{
		{
			name:     "standard block",
			input:    "---\ntitle: A\n---\nbody\n",
			wantMeta: "title: A",
			wantBody: "body\n",
			wantOK:   true,
		},
		{
			name:     "no block",
			input:    "just a story\n",
			wantBody: "just a story\n",
			wantOK:   false,
		},
		{
			name:     "unterminated block",
			input:    "---\ntitle: A\nbody without closing fence\n",
			wantBody: "---\ntitle: A\nbody without closing fence\n",
			wantOK:   false,
		},
		{
			name:     "closing fence at EOF",
			input:    "---\ntitle: A\n---",
			wantMeta: "title: A",
			wantBody: "",
			wantOK:   true,
		},
		{
			name:     "crlf line endings",
			input:    "---\r\ntitle: A\r\n---\r\nbody\r\n",
			wantMeta: "title: A",
			wantBody: "body\n",
			wantOK:   true,
		},
		{
			name:     "dashes mid-document are not a fence",
			input:    "intro\n---\nnot frontmatter\n",
			wantBody: "intro\n---\nnot frontmatter\n",
			wantOK:   false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			meta, body, ok := splitFrontmatter([]byte(tc.input))
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.wantMeta, string(meta))
			assert.Equal(t, tc.wantBody, string(body))
		})
	}
}

func TestBundledStoriesAllParse(t *testing.T) {
	stories, err := fs.Sub(storybooks.StoriesFS(), "stories")
	require.NoError(t, err)

	c := NewCatalog(stories, "")
	books := c.Books()
	require.Len(t, books, 3, "all bundled stories should survive parsing")

	for _, b := range books {
		t.Run(b.Path, func(t *testing.T) {
			assert.NotEmpty(t, b.Title)
			assert.NotEmpty(t, b.Summary)

			story, err := c.Load(b)
			require.NoError(t, err)
			assert.NotEmpty(t, story.Body)
			assert.NotContains(t, story.Body, "title:",
				"frontmatter should be stripped from the body")
		})
	}
}
