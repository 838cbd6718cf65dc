package cue

import "fmt"

// StorageNotFoundError indicates the directory for a resolved location
// is missing or unreadable.
type StorageNotFoundError struct {
	Location Location
	Err      error
}

// Error implements the error interface.
func (e *StorageNotFoundError) Error() string {
	return fmt.Sprintf("clip library not found at %q: %v", e.Location.String(), e.Err)
}

// Unwrap returns the underlying storage error.
func (e *StorageNotFoundError) Unwrap() error {
	return e.Err
}

// EmptyLibraryError indicates a location's directory exists but holds
// no playable clips after bookkeeping artifacts are filtered out.
type EmptyLibraryError struct {
	Location Location
}

// Error implements the error interface.
func (e *EmptyLibraryError) Error() string {
	return fmt.Sprintf("no playable clips at %q", e.Location.String())
}

// PlaybackFaultError indicates the audio subsystem rejected loading or
// playing a selected clip.
type PlaybackFaultError struct {
	Location Location
	Clip     string
	Err      error
}

// Error implements the error interface.
func (e *PlaybackFaultError) Error() string {
	return fmt.Sprintf("playback fault for %q at %q: %v", e.Clip, e.Location.String(), e.Err)
}

// Unwrap returns the underlying audio subsystem error.
func (e *PlaybackFaultError) Unwrap() error {
	return e.Err
}
