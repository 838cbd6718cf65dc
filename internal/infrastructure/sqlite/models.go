package sqlite

import (
	"time"

	"github.com/olincollege/fairytale-sound-effects/internal/journal/domain"
)

// ReadingSessionModel represents the database row for the reading_sessions
// table. Fields map directly to SQL columns with Unix timestamps for time
// values.
type ReadingSessionModel struct {
	ID        int64
	GUID      string
	Book      string
	StoryPath string
	Cues      int64
	Misses    int64
	Faults    int64
	StartedAt int64  // Unix timestamp
	EndedAt   *int64 // Unix timestamp, nullable
	UpdatedAt int64  // Unix timestamp
}

// toReadingSessionModel converts a domain ReadingSession entity to a
// database model.
func toReadingSessionModel(s *domain.ReadingSession) *ReadingSessionModel {
	m := &ReadingSessionModel{
		ID:        s.ID(),
		GUID:      s.GUID(),
		Book:      s.Book(),
		StoryPath: s.StoryPath(),
		Cues:      int64(s.Cues()),
		Misses:    int64(s.Misses()),
		Faults:    int64(s.Faults()),
		StartedAt: s.StartedAt().Unix(),
		UpdatedAt: s.UpdatedAt().Unix(),
	}
	if s.EndedAt() != nil {
		endedAt := s.EndedAt().Unix()
		m.EndedAt = &endedAt
	}
	return m
}

// toDomain converts a database model to a domain ReadingSession entity.
func (m *ReadingSessionModel) toDomain() *domain.ReadingSession {
	var endedAt *time.Time
	if m.EndedAt != nil {
		t := time.Unix(*m.EndedAt, 0)
		endedAt = &t
	}
	return domain.ReconstituteReadingSession(
		m.ID,
		m.GUID,
		m.Book,
		m.StoryPath,
		int(m.Cues),
		int(m.Misses),
		int(m.Faults),
		time.Unix(m.StartedAt, 0),
		endedAt,
		time.Unix(m.UpdatedAt, 0),
	)
}
