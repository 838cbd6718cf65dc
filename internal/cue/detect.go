package cue

import "strings"

// Match describes one detection hit.
type Match struct {
	Category string
	Phrase   string
}

// Detect scans text for the first matching category. Categories are
// scanned in registration order and, within a category, phrases in
// insertion order; the first phrase occurring anywhere in text as a
// contiguous, case-sensitive substring wins. Matching is deliberately
// not word-bounded ("ran" matches inside "orange"), which keeps
// detection robust against transcription running words together.
//
// Returns the category name and true, or "" and false when nothing
// matches. Detection never mutates the vocabulary and is safe to call
// concurrently with other readers.
func (v *Vocabulary) Detect(text string) (string, bool) {
	m, ok := v.DetectMatch(text)
	return m.Category, ok
}

// DetectMatch is Detect with the matched phrase included, for logging
// and the status line.
func (v *Vocabulary) DetectMatch(text string) (Match, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	for _, c := range v.cats {
		for _, p := range c.phrases {
			if strings.Contains(text, p) {
				return Match{Category: c.name, Phrase: p}, true
			}
		}
	}
	return Match{}, false
}
