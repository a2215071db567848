package storage

import (
	"fmt"
	"log/slog"
)

// seedCards is the fixed example deck shown to first-time users.
var seedCards = []struct {
	Subject  string
	Topic    string
	Question string
	Answer   string
}{
	{"Mathematics", "Algebra", "What is the solution to 2x + 5 = 13?", "x = 4"},
	{"Science", "Physics", "What is Newtons second law of motion?", "F = ma (Force equals mass times acceleration)"},
	{"History", "World War II", "In what year did World War II end?", "1945"},
	{"Biology", "Cells", "What is the powerhouse of the cell?", "Mitochondria"},
	{"Chemistry", "Periodic Table", "What is the chemical symbol for Gold?", "Au"},
}

// SeedFlashcardsIfEmpty inserts the example deck when the flashcards table is
// empty. Callers must only invoke it from an unfiltered list view; a filtered
// view that happens to be empty must never reseed. Returns whether seeding
// happened.
func (db *DB) SeedFlashcardsIfEmpty() (bool, error) {
	var count int
	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM flashcards`).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to count flashcards before seeding: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	now := Now()
	for _, c := range seedCards {
		_, err := db.conn.Exec(`
			INSERT INTO flashcards (subject, topic, question, answer, date, stars)
			VALUES (?, ?, ?, ?, ?, 0)
		`, c.Subject, c.Topic, c.Question, c.Answer, now)
		if err != nil {
			return false, fmt.Errorf("failed to seed flashcard %q: %w", c.Question, err)
		}
	}
	slog.Info("seeded example flashcards", "count", len(seedCards))
	return true, nil
}
