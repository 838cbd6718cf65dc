// Package sound plays library clips through the host's command-line
// audio player. Playback is deliberately blocking: one clip occupies
// the caller for the full configured ceiling, the fixed turn-taking
// window of a read-aloud session.
package sound

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/olincollege/fairytale-sound-effects/internal/cue"
	"github.com/olincollege/fairytale-sound-effects/internal/log"
)

// DefaultCeiling is the playback window when the config does not say
// otherwise.
const DefaultCeiling = 6 * time.Second

// lookPath is swapped out by tests to simulate hosts without players.
var lookPath = exec.LookPath

type playerCommand struct {
	name string
	args func(path string) []string
}

func detectPlayerCommand() (playerCommand, error) {
	return detectPlayerCommandFor(runtime.GOOS)
}

// detectPlayerCommandFor picks the first available player for the
// platform: afplay on macOS, paplay then aplay on Linux, and the
// PowerShell SoundPlayer on Windows (WAV only, a .NET limitation).
func detectPlayerCommandFor(goos string) (playerCommand, error) {
	switch goos {
	case "darwin":
		if _, err := lookPath("afplay"); err == nil {
			return playerCommand{
				name: "afplay",
				args: func(p string) []string { return []string{p} },
			}, nil
		}
	case "windows":
		if _, err := lookPath("powershell"); err == nil {
			return playerCommand{
				name: "powershell",
				args: func(p string) []string {
					quoted := strings.ReplaceAll(p, "'", "''")
					script := fmt.Sprintf("(New-Object Media.SoundPlayer '%s').PlaySync()", quoted)
					return []string{"-NoProfile", "-Command", script}
				},
			}, nil
		}
	default:
		if _, err := lookPath("paplay"); err == nil {
			return playerCommand{
				name: "paplay",
				args: func(p string) []string { return []string{p} },
			}, nil
		}
		if _, err := lookPath("aplay"); err == nil {
			return playerCommand{
				name: "aplay",
				args: func(p string) []string { return []string{"-q", p} },
			}, nil
		}
	}
	return playerCommand{}, fmt.Errorf("no audio player command found for %s", goos)
}

// SystemPlayer plays clips by spawning the host's audio player. It
// satisfies the cue.Player port.
type SystemPlayer struct {
	root    string
	ceiling time.Duration
	cmd     playerCommand
}

var _ cue.Player = (*SystemPlayer)(nil)

// NewSystemPlayer probes for a player command and returns a player
// rooted at the library directory. Fails when the host has no usable
// audio command; callers usually reach for New, which degrades to
// silence instead.
func NewSystemPlayer(root string, ceiling time.Duration) (*SystemPlayer, error) {
	if ceiling <= 0 {
		ceiling = DefaultCeiling
	}
	cmd, err := detectPlayerCommand()
	if err != nil {
		return nil, err
	}
	log.Info(log.CatAudio, "Audio player detected", "command", cmd.name, "ceiling", ceiling)
	return &SystemPlayer{root: root, ceiling: ceiling, cmd: cmd}, nil
}

// Play starts the clip at loc and blocks for the full ceiling. A clip
// shorter than the window does not shorten the block; a clip longer is
// cut off when the window closes. Both count as success: the only
// failure is a clip that never started. Context cancellation is the
// shutdown path and kills the player immediately.
func (p *SystemPlayer) Play(ctx context.Context, loc cue.Location, clip string) error {
	path := filepath.Join(p.root, loc.ClassFolder, loc.CategoryFolder, clip)
	if _, err := os.Stat(path); err != nil {
		return &cue.PlaybackFaultError{Location: loc, Clip: clip, Err: err}
	}

	playCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	cmd := exec.CommandContext(playCtx, p.cmd.name, p.cmd.args(path)...) //nolint:gosec // G204: command name comes from the probed allowlist, not user input
	if err := cmd.Start(); err != nil {
		return &cue.PlaybackFaultError{Location: loc, Clip: clip, Err: err}
	}
	log.Debug(log.CatAudio, "Playback started", "command", p.cmd.name, "clip", path)

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	timer := time.NewTimer(p.ceiling)
	defer timer.Stop()

	pending := done
	for {
		select {
		case err := <-pending:
			// Clip finished before the window closed; keep holding
			// the window.
			pending = nil
			if err != nil {
				log.Debug(log.CatAudio, "Player exited early", "clip", clip, "error", err)
			}
		case <-timer.C:
			cancel()
			if pending != nil {
				<-done
			}
			log.Debug(log.CatAudio, "Playback window closed", "clip", clip)
			return nil
		case <-ctx.Done():
			cancel()
			if pending != nil {
				<-done
			}
			return ctx.Err()
		}
	}
}

// NoopPlayer discards playback requests. It stands in on hosts without
// an audio command and in silent mode; it does not hold the window,
// since there is nothing to take turns with.
type NoopPlayer struct{}

var _ cue.Player = NoopPlayer{}

// Play implements cue.Player by doing nothing.
func (NoopPlayer) Play(_ context.Context, loc cue.Location, clip string) error {
	log.Debug(log.CatAudio, "Silent mode, skipping playback", "location", loc, "clip", clip)
	return nil
}

// New returns the best player for this host: a SystemPlayer when an
// audio command exists, otherwise a NoopPlayer with a warning. Silent
// forces the noop.
func New(root string, ceiling time.Duration, silent bool) cue.Player {
	if silent {
		return NoopPlayer{}
	}
	p, err := NewSystemPlayer(root, ceiling)
	if err != nil {
		log.Warn(log.CatAudio, "No audio player available, cues will be silent", "error", err)
		return NoopPlayer{}
	}
	return p
}
