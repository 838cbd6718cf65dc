// Package cue implements the audio-cue engine at the heart of the
// read-aloud session: keyword detection over transcribed text, category
// to library-location resolution, and the session composition that
// turns an utterance into a played clip.
//
// This package follows the domain-layer conventions used across the
// repository:
//   - Pure Go with no infrastructure knowledge; clip storage and audio
//     playback are reached through the ClipSelector and Player ports
//   - Typed, recoverable errors (StorageNotFoundError, EmptyLibraryError,
//     PlaybackFaultError) that infrastructure packages return and the
//     Session converts to a boolean outcome
//   - Value objects (Class, Location, Phase) with total, never-failing
//     derivations
//
// # Core Types
//
// Vocabulary owns the registration-ordered mapping from category name to
// trigger phrases and the partition of categories into sound-effect and
// music classes. Detection scans categories in registration order and
// phrases in insertion order, returning the first match.
//
// Session composes a Vocabulary with a ClipSelector and a Player. Its
// HandleUtterance entry point is the only call external drivers need:
// it blocks for the playback window and reports success as a plain bool,
// never an error.
package cue
