package cue

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageNotFoundError_MessageAndUnwrap(t *testing.T) {
	underlying := fs.ErrNotExist
	err := &StorageNotFoundError{
		Location: Location{ClassFolder: "Sound_Effects", CategoryFolder: "Fire"},
		Err:      underlying,
	}

	assert.Contains(t, err.Error(), `"Sound_Effects/Fire"`)
	assert.ErrorIs(t, err, fs.ErrNotExist, "unwrap chain must reach the storage error")
}

func TestEmptyLibraryError_Message(t *testing.T) {
	err := &EmptyLibraryError{Location: Location{ClassFolder: "Music", CategoryFolder: "Sad"}}
	assert.Contains(t, err.Error(), `"Music/Sad"`)
	assert.Contains(t, err.Error(), "no playable clips")
}

func TestPlaybackFaultError_MessageAndUnwrap(t *testing.T) {
	underlying := fmt.Errorf("device unavailable")
	err := &PlaybackFaultError{
		Location: Location{ClassFolder: "Sound_Effects", CategoryFolder: "Clock"},
		Clip:     "dong.wav",
		Err:      underlying,
	}

	assert.Contains(t, err.Error(), `"dong.wav"`)
	assert.Contains(t, err.Error(), `"Sound_Effects/Clock"`)
	assert.Equal(t, underlying, errors.Unwrap(err))
}

func TestErrors_AsDistinguishesKinds(t *testing.T) {
	var err error = fmt.Errorf("wrapped: %w", &EmptyLibraryError{Location: Location{ClassFolder: "Music", CategoryFolder: "Sad"}})

	var empty *EmptyLibraryError
	require.True(t, errors.As(err, &empty))
	assert.Equal(t, "Sad", empty.Location.CategoryFolder)

	var notFound *StorageNotFoundError
	assert.False(t, errors.As(err, &notFound))
}
