// Package storytime implements the interactive read-aloud session: a
// story menu with a library overview, and a reading screen where spoken
// lines are typed in and the cue engine answers with sound.
package storytime

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/olincollege/fairytale-sound-effects/internal/book"
	"github.com/olincollege/fairytale-sound-effects/internal/cue"
	"github.com/olincollege/fairytale-sound-effects/internal/journal/domain"
	"github.com/olincollege/fairytale-sound-effects/internal/library"
	"github.com/olincollege/fairytale-sound-effects/internal/log"
	"github.com/olincollege/fairytale-sound-effects/internal/pubsub"
	"github.com/olincollege/fairytale-sound-effects/internal/ui/shared/bookpicker"
	"github.com/olincollege/fairytale-sound-effects/internal/ui/shared/editor"
	"github.com/olincollege/fairytale-sound-effects/internal/watcher"
)

// screen identifies which of the two screens is showing.
type screen int

const (
	screenMenu screen = iota
	screenReading
)

// noticeLevel picks the style for the transient status notice.
type noticeLevel int

const (
	noticeInfo noticeLevel = iota
	noticeSuccess
	noticeWarning
	noticeError
)

// Deps carries the engine and services the session model drives. All
// fields are required except Journal, which may be nil to disable the
// reading journal.
type Deps struct {
	Session *cue.Session      // detection and playback engine
	Catalog *book.Catalog     // builtin and user stories
	Scanner *library.Scanner  // audio library overview
	Journal domain.Repository // nil disables session records

	WatchStories bool          // reload user stories when their file changes
	Debounce     time.Duration // watcher debounce, zero for the default
	AudioDir     string        // shown on the menu for orientation
}

// Model is the top-level program model for a read-aloud session.
type Model struct {
	deps Deps

	// Layout
	width  int
	height int
	ready  bool

	keys     KeyMap
	help     help.Model
	showHelp bool

	// Menu screen
	screen      screen
	picker      bookpicker.Model
	query       string
	overview    []library.CategoryOverview
	overviewErr error

	// Reading screen
	story      book.Story
	viewport   viewport.Model
	input      textinput.Model
	composing  bool
	cueBusy    bool
	baseCounts cue.Counts // engine tally when the story was opened

	// Transient status notice
	notice      string
	noticeLevel noticeLevel
	noticeID    int

	// Live reload for the open user story
	watch       *watcher.Watcher
	watchCancel context.CancelFunc
	watchCh     <-chan pubsub.Event[watcher.StoryEvent]

	// Journal record for the open story
	record *domain.ReadingSession

	form     *addPhraseForm
	quitting bool
}

// New builds the session model. The menu opens with the catalog's
// current books and an async library scan.
func New(deps Deps) Model {
	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "read a line out loud..."
	input.CharLimit = 256

	return Model{
		deps:   deps,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		screen: screenMenu,
		picker: bookpicker.New().Activate(deps.Catalog.Books()),
		input:  input,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		loadOverviewCmd(m.deps.Scanner, m.deps.Session.Vocabulary()),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m = m.layout()
		if m.screen == screenReading {
			m.viewport.SetContent(m.renderStory())
		}
		return m, nil

	case overviewMsg:
		m.overview = msg.rows
		m.overviewErr = msg.err
		if msg.err != nil {
			log.ErrorErr(log.CatLibrary, "Library scan failed", msg.err)
		}
		return m, nil

	case storyLoadedMsg:
		return m.handleStoryLoaded(msg)

	case storyReloadedMsg:
		return m.handleStoryReloaded(msg)

	case cueResultMsg:
		return m.handleCueResult(msg)

	case storyEventMsg:
		return m.handleStoryEvent(msg)

	case watcherClosedMsg:
		m.watchCh = nil
		return m, nil

	case clearNoticeMsg:
		if msg.id == m.noticeID {
			m.notice = ""
		}
		return m, nil

	case phaseTickMsg:
		if m.cueBusy {
			return m, phaseTickCmd()
		}
		return m, nil

	case phraseAddedMsg:
		m.form = nil
		m.deps.Session.AddPhrases([]cue.PhraseEntry{msg.entry})
		m.deps.Scanner.Invalidate()
		var cmd tea.Cmd
		m, cmd = m.setNotice(noticeSuccess,
			fmt.Sprintf("added %q to %s for this session", msg.entry.Phrase, msg.entry.Category))
		return m, tea.Batch(cmd, loadOverviewCmd(m.deps.Scanner, m.deps.Session.Vocabulary()))

	case addPhraseCancelMsg:
		m.form = nil
		return m, nil

	case editor.ExecMsg:
		return m, msg.ExecCmd()

	case editor.FinishedMsg:
		if msg.Err != nil {
			log.ErrorErr(log.CatBook, "External editor failed", msg.Err)
			var cmd tea.Cmd
			m, cmd = m.setNotice(noticeError, "editor failed (see log)")
			return m, cmd
		}
		return m, reloadStoryCmd(m.deps.Catalog, m.story.Book, true)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		if m.form != nil {
			return m.updateForm(msg)
		}
		if m.screen == screenMenu {
			return m.handleMenuKey(msg)
		}
		return m.handleReadingKey(msg)

	default:
		// Cursor blinks and other component ticks go to whichever
		// input is live.
		if m.form != nil {
			return m.updateForm(msg)
		}
		if m.screen == screenReading && m.composing {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting || !m.ready {
		return ""
	}

	var view string
	if m.form != nil {
		view = m.form.View(m.width, m.height)
	} else if m.screen == screenMenu {
		view = m.menuView()
	} else {
		view = m.readingView()
	}
	return zone.Scan(view)
}

// layout sizes the viewport, input, and help for the current window.
func (m Model) layout() Model {
	if m.width == 0 || m.height == 0 {
		return m
	}

	// Rows under the story panel: input, status, help. Expanded help
	// takes two extra rows.
	chrome := 3
	if m.showHelp {
		chrome = 5
	}
	vpWidth := max(m.width-2, 1)
	vpHeight := max(m.height-chrome-2, 1)

	if !m.ready {
		m.viewport = viewport.New(vpWidth, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = vpWidth
		m.viewport.Height = vpHeight
	}

	m.input.Width = max(m.width-6, 10)
	m.help.Width = m.width
	return m
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	f, cmd := m.form.Update(msg)
	m.form = &f
	return m, cmd
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.form != nil {
		return m, nil
	}
	if m.screen == screenMenu {
		var chosen *book.Book
		m.picker, chosen = m.picker.HandleMouse(msg)
		if chosen != nil {
			return m, openStoryCmd(m.deps.Catalog, *chosen)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) handleStoryLoaded(msg storyLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		log.ErrorErr(log.CatBook, "Opening story failed", msg.err)
		var cmd tea.Cmd
		m, cmd = m.setNotice(noticeError, "could not open that story (see log)")
		return m, cmd
	}

	m.story = msg.story
	m.screen = screenReading
	m.composing = false
	m.cueBusy = false
	m.showHelp = false
	m.notice = ""
	m.input.Reset()
	m.input.Blur()
	m.baseCounts = m.deps.Session.Counts()

	m = m.layout()
	m.viewport.SetContent(m.renderStory())
	m.viewport.GotoTop()

	m = m.startJournal(msg.story)

	var cmds []tea.Cmd
	if m.deps.WatchStories && msg.story.Source == book.SourceUser {
		var cmd tea.Cmd
		m, cmd = m.startWatch(msg.story.Path)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	log.Info(log.CatUI, "Story opened", "title", msg.story.Title, "source", string(msg.story.Source))
	return m, tea.Batch(cmds...)
}

func (m Model) handleStoryReloaded(msg storyReloadedMsg) (tea.Model, tea.Cmd) {
	if m.screen != screenReading {
		return m, nil
	}
	if msg.err != nil {
		log.ErrorErr(log.CatBook, "Reloading story failed", msg.err)
		var cmd tea.Cmd
		m, cmd = m.setNotice(noticeError, "could not reload the story (see log)")
		return m, cmd
	}

	before := m.story.Body
	m.story = msg.story

	// Keep the reader's place across the reload.
	offset := m.viewport.YOffset
	m.viewport.SetContent(m.renderStory())
	m.viewport.SetYOffset(offset)

	summary := diffSummary(before, msg.story.Body)
	switch {
	case summary != "":
		var cmd tea.Cmd
		m, cmd = m.setNotice(noticeSuccess, fmt.Sprintf("story updated (%s)", summary))
		return m, cmd
	case msg.manual:
		var cmd tea.Cmd
		m, cmd = m.setNotice(noticeInfo, "story reloaded")
		return m, cmd
	}
	return m, nil
}

func (m Model) handleCueResult(msg cueResultMsg) (tea.Model, tea.Cmd) {
	m.cueBusy = false
	m = m.saveJournalCounts()

	switch {
	case msg.faulted:
		var cmd tea.Cmd
		m, cmd = m.setNotice(noticeError, fmt.Sprintf("no clip played for %q (see log)", msg.text))
		return m, cmd
	case msg.played:
		loc, _ := m.deps.Session.LastLocation()
		text := "♪ " + loc.String()
		if clip, ok := m.deps.Session.LastClip(); ok {
			text = fmt.Sprintf("♪ %s · %s", loc.String(), clip)
		}
		var cmd tea.Cmd
		m, cmd = m.setNotice(noticeSuccess, text)
		return m, cmd
	}
	// A miss is the normal case for most lines; the counter is enough.
	return m, nil
}

func (m Model) handleStoryEvent(msg storyEventMsg) (tea.Model, tea.Cmd) {
	switch msg.event.Type {
	case watcher.StoryChanged:
		return m, tea.Batch(
			reloadStoryCmd(m.deps.Catalog, m.story.Book, false),
			m.relisten(),
		)
	case watcher.StoryRemoved:
		var cmd tea.Cmd
		m, cmd = m.setNotice(noticeWarning, "the story file was removed")
		return m, tea.Batch(cmd, m.relisten())
	case watcher.WatcherError:
		log.ErrorErr(log.CatWatch, "Story watcher error", msg.event.Error)
		return m, m.relisten()
	}
	return m, m.relisten()
}

// setNotice replaces the transient notice and schedules its expiry.
func (m Model) setNotice(level noticeLevel, text string) (Model, tea.Cmd) {
	m.noticeID++
	m.notice = text
	m.noticeLevel = level
	return m, expireNoticeCmd(m.noticeID)
}

// startWatch begins watching the open story file. Failures are logged
// and the session continues without live reload.
func (m Model) startWatch(path string) (Model, tea.Cmd) {
	m = m.stopWatching()

	cfg := watcher.DefaultConfig(path)
	if m.deps.Debounce > 0 {
		cfg.DebounceDur = m.deps.Debounce
	}
	w, err := watcher.New(cfg)
	if err != nil {
		log.ErrorErr(log.CatWatch, "Creating story watcher failed", err)
		return m, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	ch := w.Broker().Subscribe(ctx)
	if err := w.Start(); err != nil {
		cancel()
		log.ErrorErr(log.CatWatch, "Starting story watcher failed", err)
		return m, nil
	}

	m.watch = w
	m.watchCancel = cancel
	m.watchCh = ch
	return m, listenStoryEvents(ch)
}

func (m Model) stopWatching() Model {
	if m.watch != nil {
		if err := m.watch.Stop(); err != nil {
			log.ErrorErr(log.CatWatch, "Stopping story watcher failed", err)
		}
		m.watch = nil
	}
	if m.watchCancel != nil {
		m.watchCancel()
		m.watchCancel = nil
	}
	m.watchCh = nil
	return m
}

func (m Model) relisten() tea.Cmd {
	if m.watchCh == nil {
		return nil
	}
	return listenStoryEvents(m.watchCh)
}

func (m Model) startJournal(st book.Story) Model {
	if m.deps.Journal == nil {
		return m
	}
	rec := domain.NewReadingSession(st.Title, st.Path)
	if err := m.deps.Journal.Save(rec); err != nil {
		log.ErrorErr(log.CatDB, "Saving reading session failed", err)
		return m
	}
	m.record = rec
	return m
}

func (m Model) saveJournalCounts() Model {
	if m.record == nil {
		return m
	}
	c := m.deps.Session.Counts()
	m.record.SetCounts(
		c.Cues-m.baseCounts.Cues,
		c.Misses-m.baseCounts.Misses,
		c.Faults-m.baseCounts.Faults,
	)
	if err := m.deps.Journal.Save(m.record); err != nil {
		log.ErrorErr(log.CatDB, "Saving reading session failed", err)
	}
	return m
}

func (m Model) finishJournal() Model {
	if m.record == nil {
		return m
	}
	if err := m.record.Finish(); err != nil {
		log.ErrorErr(log.CatDB, "Finishing reading session failed", err)
	} else if err := m.deps.Journal.Save(m.record); err != nil {
		log.ErrorErr(log.CatDB, "Saving reading session failed", err)
	}
	m.record = nil
	return m
}

// closeStory tears down the watcher and journal record for the open
// story. Safe to call when nothing is open.
func (m Model) closeStory() Model {
	m = m.stopWatching()
	m = m.finishJournal()
	return m
}
