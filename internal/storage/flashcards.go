package storage

import (
	"database/sql"
	"fmt"
	"time"

	"recallpad/internal/domain"
)

// InsertFlashcard inserts a new flashcard dated now and returns its id.
func (db *DB) InsertFlashcard(subject, topic, question, answer string) (int64, error) {
	res, err := db.conn.Exec(`
		INSERT INTO flashcards (subject, topic, question, answer, date, stars)
		VALUES (?, ?, ?, ?, ?, 0)
	`, subject, topic, question, answer, Now())
	if err != nil {
		return 0, fmt.Errorf("failed to insert flashcard: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for flashcard: %w", err)
	}
	return id, nil
}

// FindFlashcardByID retrieves a flashcard by id. A missing id returns (nil, nil).
func (db *DB) FindFlashcardByID(id int64) (*domain.Flashcard, error) {
	var c domain.Flashcard
	row := db.conn.QueryRow(`
		SELECT id, subject, topic, question, answer, date, stars
		FROM flashcards WHERE id = ?
	`, id)

	err := row.Scan(&c.ID, &c.Subject, &c.Topic, &c.Question, &c.Answer, &c.Date, &c.Stars)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Flashcard not found
		}
		return nil, fmt.Errorf("failed to find flashcard %d: %w", id, err)
	}
	return &c, nil
}

// ListFlashcards returns one page of flashcards matching the query plus the
// total count of matching rows. Cards always sort by date then stars, both
// ascending.
func (db *DB) ListFlashcards(q CardQuery, limit, offset int) ([]domain.Flashcard, int, error) {
	where, args := q.Where()

	var total int
	err := db.conn.QueryRow(`SELECT COUNT(*) FROM flashcards`+where, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count flashcards: %w", err)
	}

	query := `SELECT id, subject, topic, question, answer, date, stars FROM flashcards` +
		where + ` ORDER BY date ASC, stars ASC LIMIT ? OFFSET ?`
	rows, err := db.conn.Query(query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list flashcards: %w", err)
	}
	defer rows.Close()

	cards, err := scanFlashcards(rows)
	if err != nil {
		return nil, 0, err
	}
	return cards, total, nil
}

// SearchFlashcards returns every flashcard whose question or answer contains
// the term as a case-insensitive substring, ordered by date then stars. An
// empty term returns no results.
func (db *DB) SearchFlashcards(term string) ([]domain.Flashcard, error) {
	if term == "" {
		return []domain.Flashcard{}, nil
	}
	like := "%" + term + "%"
	rows, err := db.conn.Query(`
		SELECT id, subject, topic, question, answer, date, stars
		FROM flashcards
		WHERE question LIKE ? OR answer LIKE ?
		ORDER BY date ASC, stars ASC
	`, like, like)
	if err != nil {
		return nil, fmt.Errorf("failed to search flashcards: %w", err)
	}
	defer rows.Close()

	cards, err := scanFlashcards(rows)
	if err != nil {
		return nil, err
	}
	if cards == nil {
		cards = []domain.Flashcard{}
	}
	return cards, nil
}

// RestoreFlashcard re-inserts a flashcard from a backup, preserving its id,
// date, and rating.
func (db *DB) RestoreFlashcard(c domain.Flashcard) error {
	_, err := db.conn.Exec(`
		INSERT INTO flashcards (id, subject, topic, question, answer, date, stars)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, c.ID, c.Subject, c.Topic, c.Question, c.Answer, c.Date, c.Stars)
	if err != nil {
		return fmt.Errorf("failed to restore flashcard %d: %w", c.ID, err)
	}
	return nil
}

// UpdateFlashcard replaces all four text fields together. A missing id is a
// no-op.
func (db *DB) UpdateFlashcard(id int64, subject, topic, question, answer string) error {
	_, err := db.conn.Exec(`
		UPDATE flashcards SET subject = ?, topic = ?, question = ?, answer = ?
		WHERE id = ?
	`, subject, topic, question, answer, id)
	if err != nil {
		return fmt.Errorf("failed to update flashcard %d: %w", id, err)
	}
	return nil
}

// DeleteFlashcard removes a flashcard. A missing id is a no-op.
func (db *DB) DeleteFlashcard(id int64) error {
	_, err := db.conn.Exec(`DELETE FROM flashcards WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete flashcard %d: %w", id, err)
	}
	return nil
}

// RateFlashcard sets a flashcard's star rating. Stars outside [1,5] leave
// the row unchanged.
func (db *DB) RateFlashcard(id int64, stars int) error {
	if stars < 1 || stars > 5 {
		return nil
	}
	_, err := db.conn.Exec(`UPDATE flashcards SET stars = ? WHERE id = ?`, stars, id)
	if err != nil {
		return fmt.Errorf("failed to rate flashcard %d: %w", id, err)
	}
	return nil
}

// RescheduleFlashcard shifts a flashcard's date by days whole days,
// preserving time-of-day. A missing id is a no-op.
func (db *DB) RescheduleFlashcard(id int64, days int) error {
	card, err := db.FindFlashcardByID(id)
	if err != nil {
		return err
	}
	if card == nil {
		return nil
	}
	current, err := time.Parse(DateLayout, card.Date)
	if err != nil {
		return fmt.Errorf("failed to parse date for flashcard %d: %w", id, err)
	}
	next := current.AddDate(0, 0, days).Format(DateLayout)
	if _, err := db.conn.Exec(`UPDATE flashcards SET date = ? WHERE id = ?`, next, id); err != nil {
		return fmt.Errorf("failed to reschedule flashcard %d: %w", id, err)
	}
	return nil
}

// Subjects returns the distinct subjects for the filter dropdown.
func (db *DB) Subjects() ([]string, error) {
	return db.distinct("subject")
}

// Topics returns the distinct topics for the filter dropdown.
func (db *DB) Topics() ([]string, error) {
	return db.distinct("topic")
}

func (db *DB) distinct(column string) ([]string, error) {
	// column is one of two fixed identifiers, never user input.
	rows, err := db.conn.Query(`SELECT DISTINCT ` + column + ` FROM flashcards ORDER BY ` + column)
	if err != nil {
		return nil, fmt.Errorf("failed to get distinct %s values: %w", column, err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", column, err)
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

func scanFlashcards(rows *sql.Rows) ([]domain.Flashcard, error) {
	var cards []domain.Flashcard
	for rows.Next() {
		var c domain.Flashcard
		if err := rows.Scan(&c.ID, &c.Subject, &c.Topic, &c.Question, &c.Answer, &c.Date, &c.Stars); err != nil {
			return nil, fmt.Errorf("failed to scan flashcard row: %w", err)
		}
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read flashcard rows: %w", err)
	}
	return cards, nil
}
