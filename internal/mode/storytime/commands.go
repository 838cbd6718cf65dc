package storytime

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/olincollege/fairytale-sound-effects/internal/book"
	"github.com/olincollege/fairytale-sound-effects/internal/cue"
	"github.com/olincollege/fairytale-sound-effects/internal/library"
	"github.com/olincollege/fairytale-sound-effects/internal/pubsub"
	"github.com/olincollege/fairytale-sound-effects/internal/watcher"
)

// noticeTTL is how long a transient status notice stays visible.
const noticeTTL = 5 * time.Second

// cueResultMsg reports one finished HandleUtterance call.
type cueResultMsg struct {
	text    string
	played  bool
	missed  bool
	faulted bool
}

// storyLoadedMsg carries a freshly opened story into the reading screen.
type storyLoadedMsg struct {
	story book.Story
	err   error
}

// storyReloadedMsg carries a re-read of the already open story.
type storyReloadedMsg struct {
	story  book.Story
	manual bool
	err    error
}

// overviewMsg carries the library overview for the menu panel.
type overviewMsg struct {
	rows []library.CategoryOverview
	err  error
}

// storyEventMsg bridges one watcher notification into the update loop.
type storyEventMsg struct {
	event watcher.StoryEvent
}

// watcherClosedMsg means the event channel drained after Stop.
type watcherClosedMsg struct{}

// clearNoticeMsg expires the transient notice with the matching id.
type clearNoticeMsg struct {
	id int
}

// phaseTickMsg redraws the screen while the engine works through a cue.
type phaseTickMsg struct{}

// speakCmd runs the cue pipeline for one utterance. The call blocks for
// the playback window, which is why it lives in a command goroutine and
// the input stays disabled until the result message lands.
func speakCmd(session *cue.Session, text string) tea.Cmd {
	return func() tea.Msg {
		before := session.Counts()
		played := session.HandleUtterance(context.Background(), text)
		after := session.Counts()
		return cueResultMsg{
			text:    text,
			played:  played,
			missed:  after.Misses > before.Misses,
			faulted: after.Faults > before.Faults,
		}
	}
}

// openStoryCmd loads a book's full text off the update loop.
func openStoryCmd(catalog *book.Catalog, b book.Book) tea.Cmd {
	return func() tea.Msg {
		story, err := catalog.Load(b)
		return storyLoadedMsg{story: story, err: err}
	}
}

// reloadStoryCmd re-reads the open story, either on request or after a
// watcher notification.
func reloadStoryCmd(catalog *book.Catalog, b book.Book, manual bool) tea.Cmd {
	return func() tea.Msg {
		story, err := catalog.Load(b)
		return storyReloadedMsg{story: story, manual: manual, err: err}
	}
}

// loadOverviewCmd scans the clip library for the menu panel.
func loadOverviewCmd(scanner *library.Scanner, vocab *cue.Vocabulary) tea.Cmd {
	return func() tea.Msg {
		rows, err := scanner.Overview(vocab)
		return overviewMsg{rows: rows, err: err}
	}
}

// listenStoryEvents waits for the next watcher event. The command
// re-arms itself from the update loop after every received message.
func listenStoryEvents(ch <-chan pubsub.Event[watcher.StoryEvent]) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return watcherClosedMsg{}
		}
		return storyEventMsg{event: ev.Payload}
	}
}

// expireNoticeCmd schedules the notice with the given id to clear.
func expireNoticeCmd(id int) tea.Cmd {
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg {
		return clearNoticeMsg{id: id}
	})
}

// phaseTickCmd refreshes the phase badge while a cue is in flight. The
// update loop re-arms it until the result message lands.
func phaseTickCmd() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(time.Time) tea.Msg {
		return phaseTickMsg{}
	})
}

// diffSummary condenses an edit into the "+added −removed" rune counts
// shown after a live reload.
func diffSummary(before, after string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(before, after, false)

	var added, removed int
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			added += len([]rune(d.Text))
		case diffmatchpatch.DiffDelete:
			removed += len([]rune(d.Text))
		}
	}
	if added == 0 && removed == 0 {
		return ""
	}
	return fmt.Sprintf("+%d −%d", added, removed)
}
