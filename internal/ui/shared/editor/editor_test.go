package editor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func openMsg(t *testing.T, path string) ExecMsg {
	t.Helper()
	msg := OpenCmd(path)()
	execMsg, ok := msg.(ExecMsg)
	require.True(t, ok, "expected ExecMsg, got %T", msg)
	return execMsg
}

func TestOpenCmd_CarriesStoryPath(t *testing.T) {
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "cat")

	msg := openMsg(t, "/tmp/stories/cinderella.md")
	require.Equal(t, "/tmp/stories/cinderella.md", msg.path)
	require.Contains(t, msg.cmd.Args, "/tmp/stories/cinderella.md")
}

func TestResolveEditor_Precedence(t *testing.T) {
	tests := []struct {
		name   string
		visual string
		editor string
		want   string
	}{
		{"VISUAL wins", "myvisual", "myeditor", "myvisual"},
		{"EDITOR next", "", "myeditor", "myeditor"},
		{"vi fallback", "", "", "vi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("VISUAL", tt.visual)
			t.Setenv("EDITOR", tt.editor)
			require.Equal(t, tt.want, resolveEditor())
		})
	}
}

func TestOpenCmd_UsesResolvedEditor(t *testing.T) {
	t.Setenv("VISUAL", "myvisual")
	t.Setenv("EDITOR", "myeditor")

	msg := openMsg(t, "/tmp/story.md")
	require.Equal(t, "myvisual", msg.cmd.Path)
}

func TestFinishedMsg_Fields(t *testing.T) {
	msg := FinishedMsg{Path: "/tmp/stories/cinderella.md"}
	require.Equal(t, "/tmp/stories/cinderella.md", msg.Path)
	require.NoError(t, msg.Err)
}
