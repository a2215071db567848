package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recallpad/internal/domain"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "recallpad.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestInsertAndFindNote(t *testing.T) {
	db := newTestDB(t)

	id, err := db.InsertNote("buy milk")
	require.NoError(t, err)
	require.Greater(t, id, int64(0))

	note, err := db.FindNoteByID(id)
	require.NoError(t, err)
	require.NotNil(t, note)
	assert.Equal(t, "buy milk", note.Text)
	assert.Equal(t, 0, note.Stars)

	stored, err := time.Parse(DateLayout, note.Date)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC(), stored, time.Minute)
}

func TestFindNoteByID_Missing(t *testing.T) {
	db := newTestDB(t)

	note, err := db.FindNoteByID(42)
	require.NoError(t, err)
	assert.Nil(t, note)
}

func TestListNotes_DateFilters(t *testing.T) {
	db := newTestDB(t)

	dates := []string{
		"2025-05-01T09:00:00Z",
		"2025-06-15T12:30:00Z",
		"2025-06-15T18:00:00Z",
		"2025-07-20T08:00:00Z",
	}
	for i, d := range dates {
		require.NoError(t, db.RestoreNote(domain.Note{ID: int64(i + 1), Text: "n", Date: d}))
	}

	tests := []struct {
		name  string
		query NoteQuery
		want  int
	}{
		{"all", NoteQuery{FilterType: FilterAll}, 4},
		{"before excludes the day itself", NoteQuery{FilterType: FilterBefore, FilterDate: "2025-06-15"}, 1},
		{"after includes later the same day", NoteQuery{FilterType: FilterAfter, FilterDate: "2025-06-15"}, 3},
		{"on matches the calendar day", NoteQuery{FilterType: FilterOn, FilterDate: "2025-06-15"}, 2},
		{"filter type without date is all", NoteQuery{FilterType: FilterBefore}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notes, total, err := db.ListNotes(tt.query, 100, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.want, total)
			assert.Len(t, notes, tt.want)
			for _, n := range notes {
				switch tt.query.FilterType {
				case FilterBefore:
					if tt.query.FilterDate != "" {
						assert.Less(t, n.Date, tt.query.FilterDate)
					}
				case FilterAfter:
					if tt.query.FilterDate != "" {
						assert.Greater(t, n.Date, tt.query.FilterDate)
					}
				}
			}
		})
	}
}

func TestListNotes_SortOrder(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.RestoreNote(domain.Note{ID: 1, Text: "mid", Date: "2025-06-15T10:00:00Z", Stars: 2}))
	require.NoError(t, db.RestoreNote(domain.Note{ID: 2, Text: "old", Date: "2025-05-01T10:00:00Z", Stars: 5}))
	require.NoError(t, db.RestoreNote(domain.Note{ID: 3, Text: "new", Date: "2025-07-20T10:00:00Z", Stars: 1}))
	// Same calendar day as "mid" but fewer stars; stars break the tie ascending.
	require.NoError(t, db.RestoreNote(domain.Note{ID: 4, Text: "mid-low", Date: "2025-06-15T20:00:00Z", Stars: 1}))

	asc, _, err := db.ListNotes(NoteQuery{Sort: "asc"}, 100, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"old", "mid-low", "mid", "new"}, noteTexts(asc))

	desc, _, err := db.ListNotes(NoteQuery{Sort: "desc"}, 100, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"new", "mid-low", "mid", "old"}, noteTexts(desc),
		"stars stay ascending within a day even when the date sort is descending")
}

func TestListNotes_PagesConcatenateExactly(t *testing.T) {
	db := newTestDB(t)

	const total, size = 47, 20
	for i := 0; i < total; i++ {
		_, err := db.InsertNote("note")
		require.NoError(t, err)
	}

	seen := map[int64]bool{}
	var got int
	for page := 1; ; page++ {
		notes, count, err := db.ListNotes(NoteQuery{}, size, (page-1)*size)
		require.NoError(t, err)
		assert.Equal(t, total, count)
		if len(notes) == 0 {
			break
		}
		for _, n := range notes {
			assert.False(t, seen[n.ID], "row %d appeared twice", n.ID)
			seen[n.ID] = true
		}
		got += len(notes)
	}
	assert.Equal(t, total, got)
}

func TestRateNote(t *testing.T) {
	db := newTestDB(t)

	id, err := db.InsertNote("rate me")
	require.NoError(t, err)

	require.NoError(t, db.RateNote(id, 3))
	note, err := db.FindNoteByID(id)
	require.NoError(t, err)
	assert.Equal(t, 3, note.Stars)

	for _, invalid := range []int{0, -1, 6, 100} {
		require.NoError(t, db.RateNote(id, invalid))
		note, err = db.FindNoteByID(id)
		require.NoError(t, err)
		assert.Equal(t, 3, note.Stars, "stars=%d must be a no-op", invalid)
	}

	// Missing ids are silent no-ops.
	require.NoError(t, db.RateNote(9999, 4))
}

func TestRescheduleNote_PreservesTimeOfDay(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.RestoreNote(domain.Note{ID: 1, Text: "n", Date: "2025-06-15T14:30:45Z"}))

	require.NoError(t, db.RescheduleNote(1, 7))
	note, err := db.FindNoteByID(1)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-22T14:30:45Z", note.Date)

	require.NoError(t, db.RescheduleNote(1, -30))
	note, err = db.FindNoteByID(1)
	require.NoError(t, err)
	assert.Equal(t, "2025-05-23T14:30:45Z", note.Date)

	// Missing ids are silent no-ops.
	require.NoError(t, db.RescheduleNote(9999, 7))
}

func TestUpdateAndDeleteNote(t *testing.T) {
	db := newTestDB(t)

	id, err := db.InsertNote("draft")
	require.NoError(t, err)

	require.NoError(t, db.UpdateNoteText(id, "final"))
	note, err := db.FindNoteByID(id)
	require.NoError(t, err)
	assert.Equal(t, "final", note.Text)

	require.NoError(t, db.DeleteNote(id))
	note, err = db.FindNoteByID(id)
	require.NoError(t, err)
	assert.Nil(t, note)

	require.NoError(t, db.DeleteNote(id), "deleting a missing id is a no-op")
}

func noteTexts(notes []domain.Note) []string {
	texts := make([]string, len(notes))
	for i, n := range notes {
		texts[i] = n.Text
	}
	return texts
}
