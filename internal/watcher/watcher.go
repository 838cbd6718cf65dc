// Package watcher watches the story file open in a reading session and
// publishes debounced change notifications, so the reader view can reload
// when the story is edited outside the app.
package watcher

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/olincollege/fairytale-sound-effects/internal/log"
	"github.com/olincollege/fairytale-sound-effects/internal/pubsub"
)

// StoryEventType describes what happened to the watched story.
type StoryEventType string

const (
	// StoryChanged means the story file was written and still exists.
	StoryChanged StoryEventType = "story_changed"
	// StoryRemoved means the story file is gone after the last event.
	StoryRemoved StoryEventType = "story_removed"
	// WatcherError carries a filesystem watch error.
	WatcherError StoryEventType = "watcher_error"
)

// StoryEvent is published on the broker for every settled change.
type StoryEvent struct {
	Type  StoryEventType
	Path  string
	Error error
}

// Config holds the watcher settings.
type Config struct {
	// Path is the story file to watch.
	Path string
	// DebounceDur is how long the file must stay quiet before a
	// notification fires. Editors often save through several rapid
	// writes or a temp-file rename; the debounce coalesces those.
	DebounceDur time.Duration
}

// DefaultConfig returns the standard watcher settings for a story path.
func DefaultConfig(path string) Config {
	return Config{
		Path:        path,
		DebounceDur: 100 * time.Millisecond,
	}
}

// Watcher monitors one story file via its parent directory. Watching the
// directory instead of the file itself survives the rename-over saves
// most editors do.
type Watcher struct {
	cfg    Config
	fsw    *fsnotify.Watcher
	broker *pubsub.Broker[StoryEvent]

	mu      sync.Mutex
	started bool
	stopped bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// New creates a watcher for the configured story. The broker exists from
// New on, so callers can subscribe before Start.
func New(cfg Config) (*Watcher, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("watcher: story path is required")
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	return &Watcher{
		cfg:    cfg,
		fsw:    fsw,
		broker: pubsub.NewBroker[StoryEvent](),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}, nil
}

// Broker exposes the event broker for subscriptions.
func (w *Watcher) Broker() *pubsub.Broker[StoryEvent] {
	return w.broker
}

// Start begins watching. Non-blocking; events flow on the broker until
// Stop.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started || w.stopped {
		return nil
	}

	dir := filepath.Dir(w.cfg.Path)
	if err := w.fsw.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	w.started = true

	log.Debug(log.CatWatch, "watching story", "path", w.cfg.Path, "debounce", w.cfg.DebounceDur.String())
	go w.loop()
	return nil
}

// Stop halts the watcher, closes the filesystem watch and shuts the
// broker down. Safe to call more than once and without a prior Start.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return nil
	}
	w.stopped = true
	started := w.started
	w.mu.Unlock()

	close(w.stopCh)
	if started {
		<-w.doneCh
	}
	err := w.fsw.Close()
	w.broker.Shutdown()
	return err
}

func (w *Watcher) loop() {
	defer close(w.doneCh)

	var (
		timer  *time.Timer
		timerC <-chan time.Time
	)
	bump := func() {
		if timer == nil {
			timer = time.NewTimer(w.cfg.DebounceDur)
			timerC = timer.C
			return
		}
		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(w.cfg.DebounceDur)
	}
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-w.stopCh:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(ev.Name) {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			bump()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			// Errors bypass the debounce; the subscriber should hear
			// about a broken watch right away.
			log.ErrorErr(log.CatWatch, "story watch error", err, "path", w.cfg.Path)
			w.broker.Publish(pubsub.UpdatedEvent, StoryEvent{
				Type:  WatcherError,
				Path:  w.cfg.Path,
				Error: err,
			})

		case <-timerC:
			timer = nil
			timerC = nil
			w.publishSettled()
		}
	}
}

// publishSettled looks at the file after the quiet period and reports
// what is actually there, not what the event stream claimed. A save via
// temp-file rename produces Remove+Create pairs; only the final state
// matters.
func (w *Watcher) publishSettled() {
	evType := StoryChanged
	if _, err := os.Stat(w.cfg.Path); err != nil {
		evType = StoryRemoved
	}
	log.Debug(log.CatWatch, "story settled", "type", string(evType), "path", w.cfg.Path)
	w.broker.Publish(pubsub.UpdatedEvent, StoryEvent{Type: evType, Path: w.cfg.Path})
}

func (w *Watcher) relevant(name string) bool {
	return filepath.Clean(name) == filepath.Clean(w.cfg.Path)
}
