// Package domain holds the reading journal entities: one record per
// read-aloud session, with the cue tallies the engine produced while the
// book was open.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// ReadingSession is one sitting with one book. It is created when the
// reader opens a story and finished when they put it down; the cue
// counters are updated as the engine handles utterances.
type ReadingSession struct {
	id        int64
	guid      string
	book      string
	storyPath string
	cues      int
	misses    int
	faults    int
	startedAt time.Time
	endedAt   *time.Time
	updatedAt time.Time
}

// NewReadingSession starts a session for a book. The GUID is assigned
// here; the numeric ID is assigned by the repository on first Save.
func NewReadingSession(book, storyPath string) *ReadingSession {
	now := time.Now()
	return &ReadingSession{
		guid:      uuid.NewString(),
		book:      book,
		storyPath: storyPath,
		startedAt: now,
		updatedAt: now,
	}
}

// ReconstituteReadingSession rebuilds a session from persisted state.
// Only repositories should call this.
func ReconstituteReadingSession(
	id int64,
	guid string,
	book string,
	storyPath string,
	cues, misses, faults int,
	startedAt time.Time,
	endedAt *time.Time,
	updatedAt time.Time,
) *ReadingSession {
	return &ReadingSession{
		id:        id,
		guid:      guid,
		book:      book,
		storyPath: storyPath,
		cues:      cues,
		misses:    misses,
		faults:    faults,
		startedAt: startedAt,
		endedAt:   endedAt,
		updatedAt: updatedAt,
	}
}

// ID returns the repository-assigned numeric ID, 0 before the first Save.
func (s *ReadingSession) ID() int64 { return s.id }

// SetID is called by the repository after inserting a new row.
func (s *ReadingSession) SetID(id int64) { s.id = id }

// GUID returns the stable identifier assigned at creation.
func (s *ReadingSession) GUID() string { return s.guid }

// Book returns the display title of the book that was read.
func (s *ReadingSession) Book() string { return s.book }

// StoryPath returns where the story was loaded from.
func (s *ReadingSession) StoryPath() string { return s.storyPath }

// Cues returns how many utterances triggered a played clip.
func (s *ReadingSession) Cues() int { return s.cues }

// Misses returns how many matched utterances found no playable clip.
func (s *ReadingSession) Misses() int { return s.misses }

// Faults returns how many playback attempts failed.
func (s *ReadingSession) Faults() int { return s.faults }

// StartedAt returns when the session began.
func (s *ReadingSession) StartedAt() time.Time { return s.startedAt }

// EndedAt returns when the session finished, nil while still active.
func (s *ReadingSession) EndedAt() *time.Time { return s.endedAt }

// UpdatedAt returns the last mutation time.
func (s *ReadingSession) UpdatedAt() time.Time { return s.updatedAt }

// Active reports whether the session is still open.
func (s *ReadingSession) Active() bool { return s.endedAt == nil }

// Duration returns how long the session has run, up to now for active
// sessions.
func (s *ReadingSession) Duration() time.Duration {
	if s.endedAt != nil {
		return s.endedAt.Sub(s.startedAt)
	}
	return time.Since(s.startedAt)
}

// SetCounts replaces the cue tallies for this sitting.
func (s *ReadingSession) SetCounts(cues, misses, faults int) {
	s.cues = cues
	s.misses = misses
	s.faults = faults
	s.updatedAt = time.Now()
}

// Finish closes the session. Finishing twice is an error so callers
// notice double bookkeeping.
func (s *ReadingSession) Finish() error {
	if s.endedAt != nil {
		return &SessionFinishedError{GUID: s.guid}
	}
	now := time.Now()
	s.endedAt = &now
	s.updatedAt = now
	return nil
}
