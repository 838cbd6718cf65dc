package domain

// Repository persists reading sessions.
type Repository interface {
	// Save inserts a new session (ID == 0, assigns the ID) or updates
	// an existing one.
	Save(session *ReadingSession) error
	// FindByGUID retrieves a session by GUID. Returns
	// SessionNotFoundError when no row matches.
	FindByGUID(guid string) (*ReadingSession, error)
	// ListRecent returns sessions newest-first, at most limit entries.
	// limit <= 0 means no limit.
	ListRecent(limit int) ([]*ReadingSession, error)
	// Close releases any resources held by the repository.
	Close() error
}
