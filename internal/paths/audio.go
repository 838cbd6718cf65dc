// Package paths resolves the well-known directories the app reads and
// writes: the audio library root and the per-user app dir.
package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// AudioDirName is the conventional library folder name.
const AudioDirName = "Audio"

// redirectFile, when present inside an Audio dir, points at the real
// library location. Useful when the clip collection lives on removable
// media or a shared drive.
const redirectFile = "redirect"

// ResolveAudioDir resolves the audio library root for a base path.
// A base that already names an Audio dir is used as-is (normalized);
// anything else gets Audio appended. When the resolved dir contains a
// redirect file, its content (absolute, or relative to the Audio dir)
// is followed once.
func ResolveAudioDir(base string) string {
	dir := filepath.Clean(base)
	if dir == "." || dir == "" {
		dir = AudioDirName
	} else if filepath.Base(dir) != AudioDirName {
		dir = filepath.Join(dir, AudioDirName)
	}
	return followRedirect(dir)
}

func followRedirect(dir string) string {
	data, err := os.ReadFile(filepath.Join(dir, redirectFile)) //nolint:gosec // G304: path derives from config, controlled by application
	if err != nil {
		return dir
	}
	target := strings.TrimSpace(string(data))
	if target == "" {
		return dir
	}
	if filepath.IsAbs(target) {
		return filepath.Clean(target)
	}
	return filepath.Clean(filepath.Join(dir, target))
}

// DefaultAppDir returns the per-user application directory
// (~/.fairytale), falling back to a relative .fairytale when the home
// directory cannot be determined.
func DefaultAppDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".fairytale"
	}
	return filepath.Join(home, ".fairytale")
}
