package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olincollege/fairytale-sound-effects/internal/cue"
)

func TestPhraseGroup_Seed(t *testing.T) {
	t.Run("music is the default class", func(t *testing.T) {
		row, err := PhraseGroup{Name: "Lullaby", Phrases: []string{"sleepy"}}.Seed()
		require.NoError(t, err)
		assert.Equal(t, "Lullaby", row.Name)
		assert.Equal(t, cue.Music, row.Class)
		assert.Equal(t, []string{"sleepy"}, row.Phrases)
	})

	t.Run("explicit sound effect class", func(t *testing.T) {
		row, err := PhraseGroup{Name: "Dragon", Class: "sound_effect", Phrases: []string{"dragon", "roared"}}.Seed()
		require.NoError(t, err)
		assert.Equal(t, cue.SoundEffect, row.Class)
	})

	t.Run("blank phrases are dropped", func(t *testing.T) {
		row, err := PhraseGroup{Name: "Dragon", Phrases: []string{"dragon", "  ", ""}}.Seed()
		require.NoError(t, err)
		assert.Equal(t, []string{"dragon"}, row.Phrases)
	})

	t.Run("name is required", func(t *testing.T) {
		_, err := PhraseGroup{Phrases: []string{"dragon"}}.Seed()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name is required")
	})

	t.Run("at least one phrase is required", func(t *testing.T) {
		_, err := PhraseGroup{Name: "Dragon", Phrases: []string{" "}}.Seed()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "phrase")
	})

	t.Run("unknown class is rejected", func(t *testing.T) {
		_, err := PhraseGroup{Name: "Dragon", Class: "noise", Phrases: []string{"dragon"}}.Seed()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown class")
	})
}

func TestSeedCategories(t *testing.T) {
	groups := []PhraseGroup{
		{Name: "Dragon", Class: "sound_effect", Phrases: []string{"dragon"}},
		{Name: "Lullaby", Phrases: []string{"sleepy", "goodnight"}},
	}

	seed, err := SeedCategories(groups)
	require.NoError(t, err)
	require.Len(t, seed, 2)
	// Registration order matters for first-match detection, so the
	// list order must survive conversion.
	assert.Equal(t, "Dragon", seed[0].Name)
	assert.Equal(t, "Lullaby", seed[1].Name)
}

func TestSeedCategories_Empty(t *testing.T) {
	seed, err := SeedCategories(nil)
	require.NoError(t, err)
	assert.Nil(t, seed)
}

func TestSeedCategories_ErrorNamesGroup(t *testing.T) {
	groups := []PhraseGroup{
		{Name: "Dragon", Phrases: []string{"dragon"}},
		{Name: "Lullaby"},
	}

	_, err := SeedCategories(groups)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "group 2 (Lullaby)")
}

func TestValidatePhraseGroups(t *testing.T) {
	assert.NoError(t, ValidatePhraseGroups(nil))
	assert.NoError(t, ValidatePhraseGroups([]PhraseGroup{{Name: "Dragon", Phrases: []string{"dragon"}}}))
	assert.Error(t, ValidatePhraseGroups([]PhraseGroup{{Name: "Dragon"}}))
}

func TestLoadVocabularyFile(t *testing.T) {
	vocabYAML := `
- name: Dragon
  class: sound_effect
  phrases:
    - dragon
    - roared
- name: Lullaby
  phrases: [sleepy, goodnight]
`
	path := filepath.Join(t.TempDir(), "vocabulary.yaml")
	require.NoError(t, os.WriteFile(path, []byte(vocabYAML), 0644))

	seed, err := LoadVocabularyFile(path)
	require.NoError(t, err)
	require.Len(t, seed, 2)
	assert.Equal(t, "Dragon", seed[0].Name)
	assert.Equal(t, cue.SoundEffect, seed[0].Class)
	assert.Equal(t, []string{"dragon", "roared"}, seed[0].Phrases)
	assert.Equal(t, "Lullaby", seed[1].Name)
	assert.Equal(t, cue.Music, seed[1].Class)
}

func TestLoadVocabularyFile_Missing(t *testing.T) {
	_, err := LoadVocabularyFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading vocabulary file")
}

func TestLoadVocabularyFile_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocabulary.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{not yaml: ["), 0644))

	_, err := LoadVocabularyFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing vocabulary file")
}

func TestLoadVocabularyFile_InvalidGroup(t *testing.T) {
	vocabYAML := `
- name: Dragon
  class: noise
  phrases: [dragon]
`
	path := filepath.Join(t.TempDir(), "vocabulary.yaml")
	require.NoError(t, os.WriteFile(path, []byte(vocabYAML), 0644))

	_, err := LoadVocabularyFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown class")
}
