package cue

import (
	"fmt"
	"strings"
	"sync"
)

// Class partitions categories into the two top-level library folders.
type Class int

const (
	// SoundEffect categories live under the Sound_Effects folder.
	SoundEffect Class = iota
	// Music categories live under the Music folder. Music is the
	// fallback class: any category not explicitly registered as a
	// sound effect resolves here.
	Music
)

// Folder returns the top-level library folder for the class.
func (c Class) Folder() string {
	if c == SoundEffect {
		return "Sound_Effects"
	}
	return "Music"
}

// String returns the config-file spelling of the class.
func (c Class) String() string {
	if c == SoundEffect {
		return "sound_effect"
	}
	return "music"
}

// ParseClass maps a config string to a Class.
func ParseClass(s string) (Class, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sound_effect", "sound-effect", "soundeffect":
		return SoundEffect, nil
	case "music":
		return Music, nil
	default:
		return Music, fmt.Errorf("unknown class %q (want sound_effect or music)", s)
	}
}

// SeedCategory is one row of a construction-time vocabulary table.
type SeedCategory struct {
	Name    string
	Class   Class
	Phrases []string
}

// PhraseEntry is one mutation handed to AddPhrases. Class only applies
// when Category does not exist yet: nil keeps the Music fallback for
// brand-new categories, a non-nil value classifies them explicitly.
// The class of an existing category is never changed by AddPhrases.
type PhraseEntry struct {
	Category string
	Phrase   string
	Class    *Class
}

type category struct {
	name    string
	class   Class
	phrases []string
}

// Vocabulary owns the category table: an ordered set of categories, each
// with an ordered, non-empty phrase list and a class. Registration order
// is the detection scan order and is never reordered by later mutation.
//
// A Vocabulary is safe for concurrent use: detection takes a read lock,
// mutation a write lock, so readers never observe a partially appended
// phrase list.
type Vocabulary struct {
	mu    sync.RWMutex
	cats  []*category
	index map[string]*category
}

// NewVocabulary returns an empty vocabulary.
func NewVocabulary() *Vocabulary {
	return &Vocabulary{index: make(map[string]*category)}
}

// NewVocabularyFromSeed builds a vocabulary from a seed table,
// registering rows in order. Rows with no phrases are skipped.
func NewVocabularyFromSeed(seed []SeedCategory) *Vocabulary {
	v := NewVocabulary()
	for _, s := range seed {
		v.Register(s.Name, s.Class, s.Phrases...)
	}
	return v
}

// DefaultSeed returns the built-in category table: the phrases a
// storybook read-aloud most often needs, in their canonical scan order.
func DefaultSeed() []SeedCategory {
	return []SeedCategory{
		{Name: "Beginning", Class: Music, Phrases: []string{"once upon a time", "happily ever after"}},
		{Name: "Huff", Class: SoundEffect, Phrases: []string{"huffed", "huff", "hoff"}},
		{Name: "Fire", Class: SoundEffect, Phrases: []string{"fire"}},
		{Name: "Footsteps", Class: SoundEffect, Phrases: []string{"running", "ran", "walk", "walking"}},
		{Name: "Laughter", Class: SoundEffect, Phrases: []string{"laugh"}},
		{Name: "Sad", Class: Music, Phrases: []string{"sad"}},
		{Name: "Horse", Class: SoundEffect, Phrases: []string{"horse"}},
		{Name: "Clock", Class: SoundEffect, Phrases: []string{"dong"}},
		{Name: "Knock", Class: SoundEffect, Phrases: []string{"knock", "knocked"}},
	}
}

// DefaultVocabulary returns a vocabulary seeded with DefaultSeed.
func DefaultVocabulary() *Vocabulary {
	return NewVocabularyFromSeed(DefaultSeed())
}

// Register adds a category with its class and initial phrases, or
// appends phrases to an existing category (whose class and scan
// position are left untouched). A call with no phrases for a new
// category is a no-op: every registered category has at least one
// phrase.
func (v *Vocabulary) Register(name string, class Class, phrases ...string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if c, ok := v.index[name]; ok {
		c.phrases = append(c.phrases, phrases...)
		return
	}
	if len(phrases) == 0 {
		return
	}
	c := &category{name: name, class: class, phrases: append([]string(nil), phrases...)}
	v.cats = append(v.cats, c)
	v.index[name] = c
}

// AddPhrases applies mutations entry by entry, in input order. An entry
// for an existing category appends its phrase after the category's
// current phrases; an entry for an unknown category creates it at the
// end of the scan order, classified per PhraseEntry.Class (Music when
// nil). No entry can fail, so the whole batch always applies.
func (v *Vocabulary) AddPhrases(entries []PhraseEntry) {
	v.mu.Lock()
	defer v.mu.Unlock()

	for _, e := range entries {
		if c, ok := v.index[e.Category]; ok {
			c.phrases = append(c.phrases, e.Phrase)
			continue
		}
		class := Music
		if e.Class != nil {
			class = *e.Class
		}
		c := &category{name: e.Category, class: class, phrases: []string{e.Phrase}}
		v.cats = append(v.cats, c)
		v.index[e.Category] = c
	}
}

// Categories returns the category names in scan order.
func (v *Vocabulary) Categories() []string {
	v.mu.RLock()
	defer v.mu.RUnlock()

	names := make([]string, len(v.cats))
	for i, c := range v.cats {
		names[i] = c.name
	}
	return names
}

// Phrases returns a copy of the phrase list for a category, in match
// order. Unknown categories yield nil.
func (v *Vocabulary) Phrases(name string) []string {
	v.mu.RLock()
	defer v.mu.RUnlock()

	c, ok := v.index[name]
	if !ok {
		return nil
	}
	return append([]string(nil), c.phrases...)
}

// ClassOf returns the class of a category. Unknown categories report
// Music, mirroring the resolution fallback.
func (v *Vocabulary) ClassOf(name string) Class {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if c, ok := v.index[name]; ok {
		return c.class
	}
	return Music
}

// Len returns the number of registered categories.
func (v *Vocabulary) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.cats)
}
