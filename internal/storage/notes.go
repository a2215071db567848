package storage

import (
	"database/sql"
	"fmt"
	"time"

	"recallpad/internal/domain"
)

// InsertNote inserts a new note dated now and returns its id.
func (db *DB) InsertNote(text string) (int64, error) {
	res, err := db.conn.Exec(`
		INSERT INTO notes (text, date, stars)
		VALUES (?, ?, 0)
	`, text, Now())
	if err != nil {
		return 0, fmt.Errorf("failed to insert note: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for note: %w", err)
	}
	return id, nil
}

// FindNoteByID retrieves a note by id. A missing id returns (nil, nil).
func (db *DB) FindNoteByID(id int64) (*domain.Note, error) {
	var n domain.Note
	row := db.conn.QueryRow(`
		SELECT id, text, date, stars
		FROM notes WHERE id = ?
	`, id)

	err := row.Scan(&n.ID, &n.Text, &n.Date, &n.Stars)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Note not found
		}
		return nil, fmt.Errorf("failed to find note %d: %w", id, err)
	}
	return &n, nil
}

// ListNotes returns one page of notes matching the query plus the total
// count of matching rows.
func (db *DB) ListNotes(q NoteQuery, limit, offset int) ([]domain.Note, int, error) {
	where, args := q.Where()

	var total int
	err := db.conn.QueryRow(`SELECT COUNT(*) FROM notes`+where, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count notes: %w", err)
	}

	query := `SELECT id, text, date, stars FROM notes` + where + q.OrderBy() + ` LIMIT ? OFFSET ?`
	rows, err := db.conn.Query(query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	var notes []domain.Note
	for rows.Next() {
		var n domain.Note
		if err := rows.Scan(&n.ID, &n.Text, &n.Date, &n.Stars); err != nil {
			return nil, 0, fmt.Errorf("failed to scan note row: %w", err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read note rows: %w", err)
	}
	return notes, total, nil
}

// RestoreNote re-inserts a note from a backup, preserving its id, date, and
// rating.
func (db *DB) RestoreNote(n domain.Note) error {
	_, err := db.conn.Exec(`
		INSERT INTO notes (id, text, date, stars)
		VALUES (?, ?, ?, ?)
	`, n.ID, n.Text, n.Date, n.Stars)
	if err != nil {
		return fmt.Errorf("failed to restore note %d: %w", n.ID, err)
	}
	return nil
}

// UpdateNoteText replaces the text of a note. A missing id is a no-op.
func (db *DB) UpdateNoteText(id int64, text string) error {
	_, err := db.conn.Exec(`UPDATE notes SET text = ? WHERE id = ?`, text, id)
	if err != nil {
		return fmt.Errorf("failed to update note %d: %w", id, err)
	}
	return nil
}

// DeleteNote removes a note. A missing id is a no-op.
func (db *DB) DeleteNote(id int64) error {
	_, err := db.conn.Exec(`DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete note %d: %w", id, err)
	}
	return nil
}

// RateNote sets a note's star rating. Stars outside [1,5] leave the row
// unchanged; 0 is only reachable as the creation default.
func (db *DB) RateNote(id int64, stars int) error {
	if stars < 1 || stars > 5 {
		return nil
	}
	_, err := db.conn.Exec(`UPDATE notes SET stars = ? WHERE id = ?`, stars, id)
	if err != nil {
		return fmt.Errorf("failed to rate note %d: %w", id, err)
	}
	return nil
}

// RescheduleNote shifts a note's date by days whole days, preserving
// time-of-day. A missing id is a no-op.
func (db *DB) RescheduleNote(id int64, days int) error {
	note, err := db.FindNoteByID(id)
	if err != nil {
		return err
	}
	if note == nil {
		return nil
	}
	current, err := time.Parse(DateLayout, note.Date)
	if err != nil {
		return fmt.Errorf("failed to parse date for note %d: %w", id, err)
	}
	next := current.AddDate(0, 0, days).Format(DateLayout)
	if _, err := db.conn.Exec(`UPDATE notes SET date = ? WHERE id = ?`, next, id); err != nil {
		return fmt.Errorf("failed to reschedule note %d: %w", id, err)
	}
	return nil
}
