// Package log provides leveled, category-tagged logging to a file.
// The TUI owns stdout, so nothing here ever writes to the terminal;
// until Init is called all output is discarded.
package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Level controls which messages are written.
type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the bracketed-log name for the level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps a config string to a Level. Unknown values fall back
// to LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Category tags a log line with the subsystem it came from.
type Category string

const (
	CatConfig  Category = "config"
	CatCue     Category = "cue"
	CatAudio   Category = "audio"
	CatLibrary Category = "library"
	CatBook    Category = "book"
	CatUI      Category = "ui"
	CatDB      Category = "db"
	CatWatch   Category = "watch"
)

var (
	mu    sync.Mutex
	out   io.Writer = io.Discard
	level Level     = LevelInfo
	now             = time.Now
)

// Init opens (appending) the log file at path, creating parent
// directories as needed, and routes all subsequent log calls to it.
// The returned cleanup closes the file; callers defer it for the
// process lifetime.
func Init(path string) (func(), error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) //nolint:gosec // G304: path comes from config, controlled by application
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}

	mu.Lock()
	out = f
	mu.Unlock()

	cleanup := func() {
		mu.Lock()
		out = io.Discard
		mu.Unlock()
		_ = f.Close()
	}
	return cleanup, nil
}

// SetLevel sets the minimum level that will be written.
func SetLevel(l Level) {
	mu.Lock()
	level = l
	mu.Unlock()
}

// SetOutput redirects log output, primarily for tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	out = w
	mu.Unlock()
}

// Debug logs at debug level with optional key-value pairs.
func Debug(cat Category, msg string, kv ...any) {
	write(LevelDebug, cat, msg, kv...)
}

// Info logs at info level with optional key-value pairs.
func Info(cat Category, msg string, kv ...any) {
	write(LevelInfo, cat, msg, kv...)
}

// Warn logs at warn level with optional key-value pairs.
func Warn(cat Category, msg string, kv ...any) {
	write(LevelWarn, cat, msg, kv...)
}

// Error logs at error level with optional key-value pairs.
func Error(cat Category, msg string, kv ...any) {
	write(LevelError, cat, msg, kv...)
}

// ErrorErr logs an error value at error level, appending it as the
// final "error" pair.
func ErrorErr(cat Category, msg string, err error, kv ...any) {
	kv = append(kv, "error", err)
	write(LevelError, cat, msg, kv...)
}

func write(l Level, cat Category, msg string, kv ...any) {
	mu.Lock()
	defer mu.Unlock()
	if l < level {
		return
	}

	var b strings.Builder
	b.WriteString(now().Format("15:04:05.000"))
	b.WriteString(" [")
	b.WriteString(l.String())
	b.WriteString("] [")
	b.WriteString(string(cat))
	b.WriteString("] ")
	b.WriteString(msg)
	for i := 0; i+1 < len(kv); i += 2 {
		fmt.Fprintf(&b, " %v=%v", kv[i], kv[i+1])
	}
	b.WriteByte('\n')

	_, _ = io.WriteString(out, b.String())
}
