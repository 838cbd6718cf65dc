// Package editor opens story files in the reader's external editor.
package editor

import (
	"os"
	"os/exec"

	tea "github.com/charmbracelet/bubbletea"
)

// FinishedMsg is sent when the external editor closes. The caller
// reloads the story from Path; the watcher catches any further saves.
type FinishedMsg struct {
	Path string
	Err  error
}

// ExecMsg carries the prepared editor command. The parent component
// handles it by running ExecCmd via tea.ExecProcess.
type ExecMsg struct {
	cmd  *exec.Cmd
	path string
}

// OpenCmd prepares the editor for the story file at path. $VISUAL wins
// over $EDITOR; vi is the fallback.
func OpenCmd(path string) tea.Cmd {
	return func() tea.Msg {
		// #nosec G204 -- editor command is from trusted env vars (VISUAL/EDITOR) or hardcoded "vi"
		cmd := exec.Command(resolveEditor(), path)
		return ExecMsg{cmd: cmd, path: path}
	}
}

// ExecCmd returns the tea.ExecProcess command that runs the editor.
// Call this from the parent Update when receiving ExecMsg.
func (msg ExecMsg) ExecCmd() tea.Cmd {
	return tea.ExecProcess(msg.cmd, func(err error) tea.Msg {
		return FinishedMsg{Path: msg.path, Err: err}
	})
}

func resolveEditor() string {
	for _, v := range []string{"VISUAL", "EDITOR"} {
		if editor := os.Getenv(v); editor != "" {
			return editor
		}
	}
	return "vi"
}
