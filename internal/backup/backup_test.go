package backup

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recallpad/internal/domain"
	"recallpad/internal/storage"
)

func openDB(t *testing.T, name string) *storage.DB {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), name))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestBackupAndRestoreRoundTrip(t *testing.T) {
	src := openDB(t, "src.db")
	dir := t.TempDir()

	_, err := src.InsertItem("welcome", "first item", "")
	require.NoError(t, err)
	require.NoError(t, src.RestoreNote(domain.Note{ID: 7, Text: "buy milk", Date: "2025-06-15T14:30:45Z", Stars: 3}))
	require.NoError(t, src.RestoreFlashcard(domain.Flashcard{
		ID: 9, Subject: "Biology", Topic: "Cells",
		Question: "Powerhouse?", Answer: "Mitochondria",
		Date: "2025-01-01T08:00:00Z", Stars: 2,
	}))

	require.NoError(t, Run(src, dir))

	// The backup document holds all three tables.
	data, err := os.ReadFile(filepath.Join(dir, FileName))
	require.NoError(t, err)
	var snap Snapshot
	require.NoError(t, json.Unmarshal(data, &snap))
	assert.Len(t, snap.Items, 1)
	assert.Len(t, snap.Notes, 1)
	assert.Len(t, snap.Flashcards, 1)

	// Restore into a fresh database preserves ids, dates, and ratings.
	dst := openDB(t, "dst.db")
	require.NoError(t, Restore(dst, dir))

	note, err := dst.FindNoteByID(7)
	require.NoError(t, err)
	require.NotNil(t, note)
	assert.Equal(t, "buy milk", note.Text)
	assert.Equal(t, "2025-06-15T14:30:45Z", note.Date)
	assert.Equal(t, 3, note.Stars)

	card, err := dst.FindFlashcardByID(9)
	require.NoError(t, err)
	require.NotNil(t, card)
	assert.Equal(t, "Mitochondria", card.Answer)
	assert.Equal(t, 2, card.Stars)

	items, err := dst.ListItems()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "welcome", items[0].Name)
}

func TestBackupCommitsHistory(t *testing.T) {
	db := openDB(t, "src.db")
	dir := t.TempDir()

	_, err := db.InsertNote("first")
	require.NoError(t, err)
	require.NoError(t, Run(db, dir))

	_, err = db.InsertNote("second")
	require.NoError(t, err)
	require.NoError(t, Run(db, dir))

	repo, err := git.PlainOpen(dir)
	require.NoError(t, err)

	iter, err := repo.Log(&git.LogOptions{})
	require.NoError(t, err)
	var commits int
	require.NoError(t, iter.ForEach(func(c *object.Commit) error {
		commits++
		return nil
	}))
	assert.Equal(t, 2, commits)
}

func TestRestore_MissingBackupFile(t *testing.T) {
	db := openDB(t, "dst.db")
	err := Restore(db, t.TempDir())
	require.Error(t, err)
}
