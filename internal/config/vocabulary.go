package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/olincollege/fairytale-sound-effects/internal/cue"
)

// PhraseGroup defines one keyword category added on top of the seed
// vocabulary, either inline in the config file or in a standalone
// vocabulary file.
type PhraseGroup struct {
	Name    string   `mapstructure:"name" yaml:"name"`
	Class   string   `mapstructure:"class" yaml:"class"` // "music" (default) or "sound_effect"
	Phrases []string `mapstructure:"phrases" yaml:"phrases"`
}

// Seed converts the group to a vocabulary seed row. Blank phrases are
// dropped; a group needs a name and at least one phrase.
func (g PhraseGroup) Seed() (cue.SeedCategory, error) {
	name := strings.TrimSpace(g.Name)
	if name == "" {
		return cue.SeedCategory{}, fmt.Errorf("name is required")
	}

	class := cue.Music
	if g.Class != "" {
		var err error
		class, err = cue.ParseClass(g.Class)
		if err != nil {
			return cue.SeedCategory{}, err
		}
	}

	phrases := make([]string, 0, len(g.Phrases))
	for _, p := range g.Phrases {
		if strings.TrimSpace(p) == "" {
			continue
		}
		phrases = append(phrases, p)
	}
	if len(phrases) == 0 {
		return cue.SeedCategory{}, fmt.Errorf("at least one phrase is required")
	}

	return cue.SeedCategory{Name: name, Class: class, Phrases: phrases}, nil
}

// SeedCategories converts a list of phrase groups, rejecting the whole
// list on the first invalid group.
func SeedCategories(groups []PhraseGroup) ([]cue.SeedCategory, error) {
	if len(groups) == 0 {
		return nil, nil
	}

	seed := make([]cue.SeedCategory, 0, len(groups))
	for i, g := range groups {
		row, err := g.Seed()
		if err != nil {
			if name := strings.TrimSpace(g.Name); name != "" {
				return nil, fmt.Errorf("group %d (%s): %w", i+1, name, err)
			}
			return nil, fmt.Errorf("group %d: %w", i+1, err)
		}
		seed = append(seed, row)
	}
	return seed, nil
}

// ValidatePhraseGroups checks extra vocabulary configuration for errors.
// Returns nil if groups are empty (will use the built-in seed only).
func ValidatePhraseGroups(groups []PhraseGroup) error {
	_, err := SeedCategories(groups)
	return err
}

// LoadVocabularyFile reads phrase groups from a standalone YAML file.
// The file holds a list of groups:
//
//	- name: Dragon
//	  class: sound_effect
//	  phrases: [dragon, roared]
func LoadVocabularyFile(path string) ([]cue.SeedCategory, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from the user's own config
	if err != nil {
		return nil, fmt.Errorf("reading vocabulary file: %w", err)
	}

	var groups []PhraseGroup
	if err := yaml.Unmarshal(data, &groups); err != nil {
		return nil, fmt.Errorf("parsing vocabulary file %s: %w", path, err)
	}

	seed, err := SeedCategories(groups)
	if err != nil {
		return nil, fmt.Errorf("vocabulary file %s: %w", path, err)
	}
	return seed, nil
}
