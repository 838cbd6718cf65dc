package domain

import "fmt"

// SessionNotFoundError indicates that a reading session with the
// specified GUID could not be found in the repository.
type SessionNotFoundError struct {
	GUID string
}

// Error implements the error interface.
func (e *SessionNotFoundError) Error() string {
	return fmt.Sprintf("reading session not found: guid=%q", e.GUID)
}

// SessionFinishedError indicates that an attempt was made to finish a
// reading session that has already ended.
type SessionFinishedError struct {
	GUID string
}

// Error implements the error interface.
func (e *SessionFinishedError) Error() string {
	return fmt.Sprintf("reading session already finished: guid=%q", e.GUID)
}
