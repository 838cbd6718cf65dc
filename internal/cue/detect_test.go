package cue

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// === Basic matching ===

func TestDetect_NoMatchReturnsFalse(t *testing.T) {
	v := DefaultVocabulary()

	category, ok := v.Detect("nothing interesting happens")
	assert.False(t, ok)
	assert.Empty(t, category)
}

func TestDetect_SimpleMatch(t *testing.T) {
	v := DefaultVocabulary()

	category, ok := v.Detect("the fire roared")
	require.True(t, ok)
	assert.Equal(t, "Fire", category)
}

func TestDetect_MultiWordPhrase(t *testing.T) {
	v := DefaultVocabulary()

	category, ok := v.Detect("once upon a time there lived a princess")
	require.True(t, ok)
	assert.Equal(t, "Beginning", category)
}

func TestDetect_SubstringNotWordBounded(t *testing.T) {
	v := DefaultVocabulary()

	// "orange" contains "ran", a Footsteps phrase
	category, ok := v.Detect("she peeled an orange")
	require.True(t, ok)
	assert.Equal(t, "Footsteps", category)
}

func TestDetect_CaseSensitive(t *testing.T) {
	v := DefaultVocabulary()

	_, ok := v.Detect("FIRE")
	assert.False(t, ok, "matching is exact and case-sensitive")
}

func TestDetect_EmptyText(t *testing.T) {
	v := DefaultVocabulary()

	_, ok := v.Detect("")
	assert.False(t, ok)
}

// === Ordering ===

func TestDetect_TieBreakByCategoryRegistrationOrder(t *testing.T) {
	v := DefaultVocabulary()

	// "sad" (Sad, position 6) occurs before "huffed" (Huff, position 2)
	// in the text; the earlier-registered category still wins.
	category, ok := v.Detect("the sad wolf huffed at the door")
	require.True(t, ok)
	assert.Equal(t, "Huff", category, "tie-break goes to the earlier-registered category, not the earlier text position")
}

func TestDetect_PhraseOrderWithinCategory(t *testing.T) {
	v := NewVocabulary()
	v.Register("Huff", SoundEffect, "huffed", "huff")

	m, ok := v.DetectMatch("huff and puff")
	require.True(t, ok)
	assert.Equal(t, "huff", m.Phrase, "phrases are tried in insertion order; 'huffed' does not occur, 'huff' does")

	m, ok = v.DetectMatch("he huffed loudly")
	require.True(t, ok)
	assert.Equal(t, "huffed", m.Phrase, "'huffed' is listed first and occurs, so it wins even though 'huff' is a substring of it")
}

func TestDetect_AddedPhrasesCheckedAfterExisting(t *testing.T) {
	v := NewVocabulary()
	v.Register("Huff", SoundEffect, "huff")
	v.AddPhrases([]PhraseEntry{{Category: "Huff", Phrase: "puff"}})

	m, ok := v.DetectMatch("huff and puff")
	require.True(t, ok)
	assert.Equal(t, "huff", m.Phrase)
}

func TestDetect_AddPhrasesKeepsCategoryScanPosition(t *testing.T) {
	v := NewVocabulary()
	v.Register("First", SoundEffect, "alpha")
	v.Register("Second", SoundEffect, "beta")
	// Extending First must not move it behind Second.
	v.AddPhrases([]PhraseEntry{{Category: "First", Phrase: "gamma"}})

	category, ok := v.Detect("beta gamma")
	require.True(t, ok)
	assert.Equal(t, "First", category, "First is still scanned before Second after mutation")
}

func TestDetect_NewCategoryDetectable(t *testing.T) {
	v := DefaultVocabulary()
	v.AddPhrases([]PhraseEntry{{Category: "Dragon", Phrase: "scales"}})

	category, ok := v.Detect("its scales glittered")
	require.True(t, ok)
	assert.Equal(t, "Dragon", category)
}

// === Properties ===

// markerVocabulary builds n categories named C0..Cn-1 whose phrases
// ("m0q".."m<n-1>q") never occur inside one another or inside the
// digits-and-spaces filler alphabet, so subset membership in a text is
// fully controlled by construction.
func markerVocabulary(n int) *Vocabulary {
	v := NewVocabulary()
	for i := 0; i < n; i++ {
		v.Register(fmt.Sprintf("C%d", i), SoundEffect, fmt.Sprintf("m%dq", i))
	}
	return v
}

func TestDetect_Property_NoRegisteredPhraseMeansNoMatch(t *testing.T) {
	v := markerVocabulary(9)
	rapid.Check(t, func(t *rapid.T) {
		text := rapid.StringOfN(rapid.RuneFrom([]rune("0123456789 ")), 0, 64, -1).Draw(t, "text")
		_, ok := v.Detect(text)
		if ok {
			t.Fatalf("text %q contains no registered phrase but detect matched", text)
		}
	})
}

func TestDetect_Property_EarliestRegisteredCategoryWins(t *testing.T) {
	v := markerVocabulary(9)
	rapid.Check(t, func(t *rapid.T) {
		indices := rapid.SliceOfNDistinct(rapid.IntRange(0, 8), 1, 9, rapid.ID[int]).Draw(t, "indices")

		// Assemble the text with phrases in draw order, which is
		// unrelated to registration order.
		parts := make([]string, len(indices))
		lowest := indices[0]
		for i, idx := range indices {
			parts[i] = fmt.Sprintf("m%dq", idx)
			if idx < lowest {
				lowest = idx
			}
		}
		text := strings.Join(parts, " 7 ")

		category, ok := v.Detect(text)
		if !ok {
			t.Fatalf("text %q contains %d phrases but nothing matched", text, len(indices))
		}
		want := fmt.Sprintf("C%d", lowest)
		if category != want {
			t.Fatalf("text %q matched %s, want earliest-registered %s", text, category, want)
		}
	})
}

func TestDetect_Property_AddThenDetect(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		v := DefaultVocabulary()
		name := "Z" + rapid.StringOfN(rapid.RuneFrom([]rune("ABCDEFGH")), 1, 8, -1).Draw(t, "name")
		phrase := "zz" + rapid.StringOfN(rapid.RuneFrom([]rune("0123456789")), 1, 6, -1).Draw(t, "phrase")

		v.AddPhrases([]PhraseEntry{{Category: name, Phrase: phrase}})

		category, ok := v.Detect("999 " + phrase + " 999")
		if !ok || category != name {
			t.Fatalf("after adding %q -> %q, detect returned (%q, %v)", name, phrase, category, ok)
		}
	})
}
