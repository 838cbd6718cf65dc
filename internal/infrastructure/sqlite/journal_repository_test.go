package sqlite

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olincollege/fairytale-sound-effects/internal/journal/domain"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := NewDB(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err, "NewDB should create and migrate a fresh database")
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestNewDB_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "journal.db")

	db, err := NewDB(path)
	require.NoError(t, err)
	defer db.Close()

	_, err = os.Stat(filepath.Dir(path))
	require.NoError(t, err, "parent directory should have been created")
}

func TestNewDB_BacksUpExistingDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")

	// First open creates the file.
	db, err := NewDB(path)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// Second open should snapshot it before migrating.
	db, err = NewDB(path)
	require.NoError(t, err)
	defer db.Close()

	_, err = os.Stat(path + ".bak")
	require.NoError(t, err, "pre-migration backup should exist after reopening")
}

func TestSave_InsertAssignsID(t *testing.T) {
	repo := openTestDB(t).JournalRepository()

	s := domain.NewReadingSession("Cinderella", "stories/cinderella.md")
	require.NoError(t, repo.Save(s))

	assert.Positive(t, s.ID(), "Save should assign the row ID to a new session")
}

func TestSave_UpdatePersistsCountsAndEnd(t *testing.T) {
	repo := openTestDB(t).JournalRepository()

	s := domain.NewReadingSession("Cinderella", "stories/cinderella.md")
	require.NoError(t, repo.Save(s))

	s.SetCounts(5, 2, 1)
	require.NoError(t, s.Finish())
	require.NoError(t, repo.Save(s))

	got, err := repo.FindByGUID(s.GUID())
	require.NoError(t, err)
	assert.Equal(t, 5, got.Cues())
	assert.Equal(t, 2, got.Misses())
	assert.Equal(t, 1, got.Faults())
	require.NotNil(t, got.EndedAt(), "finished session should round-trip its end time")
	assert.False(t, got.Active())
}

func TestFindByGUID_RoundTrip(t *testing.T) {
	repo := openTestDB(t).JournalRepository()

	s := domain.NewReadingSession("The Three Little Pigs", "stories/three-little-pigs.md")
	require.NoError(t, repo.Save(s))

	got, err := repo.FindByGUID(s.GUID())
	require.NoError(t, err)

	assert.Equal(t, s.ID(), got.ID())
	assert.Equal(t, s.GUID(), got.GUID())
	assert.Equal(t, "The Three Little Pigs", got.Book())
	assert.Equal(t, "stories/three-little-pigs.md", got.StoryPath())
	assert.True(t, got.Active())
	// Timestamps survive at second precision.
	assert.Equal(t, s.StartedAt().Unix(), got.StartedAt().Unix())
}

func TestFindByGUID_NotFound(t *testing.T) {
	repo := openTestDB(t).JournalRepository()

	_, err := repo.FindByGUID("no-such-guid")
	require.Error(t, err)

	var notFound *domain.SessionNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "no-such-guid", notFound.GUID)
}

func TestListRecent_NewestFirst(t *testing.T) {
	repo := openTestDB(t).JournalRepository()

	// Reconstitute sessions with controlled start times so ordering is
	// deterministic.
	base := time.Unix(1706000000, 0)
	for i, bookTitle := range []string{"Oldest", "Middle", "Newest"} {
		started := base.Add(time.Duration(i) * time.Hour)
		s := domain.ReconstituteReadingSession(0, bookTitle+"-guid", bookTitle, bookTitle+".md", i, 0, 0, started, nil, started)
		require.NoError(t, repo.Save(s))
	}

	sessions, err := repo.ListRecent(0)
	require.NoError(t, err)
	require.Len(t, sessions, 3)

	assert.Equal(t, "Newest", sessions[0].Book())
	assert.Equal(t, "Middle", sessions[1].Book())
	assert.Equal(t, "Oldest", sessions[2].Book())
}

func TestListRecent_Limit(t *testing.T) {
	repo := openTestDB(t).JournalRepository()

	base := time.Unix(1706000000, 0)
	for i := 0; i < 5; i++ {
		started := base.Add(time.Duration(i) * time.Minute)
		s := domain.ReconstituteReadingSession(0, fmt.Sprintf("guid-%d", i), "Book", "x.md", 0, 0, 0, started, nil, started)
		require.NoError(t, repo.Save(s))
	}

	sessions, err := repo.ListRecent(2)
	require.NoError(t, err)
	assert.Len(t, sessions, 2)
}

func TestListRecent_EmptyJournal(t *testing.T) {
	repo := openTestDB(t).JournalRepository()

	sessions, err := repo.ListRecent(10)
	require.NoError(t, err)
	assert.Empty(t, sessions)
}
