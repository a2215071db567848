package domain

// Note is a free-text entry with a date and an importance rating.
// Date is kept in its stored string form (RFC3339) so display can fall back
// to the raw value when parsing fails.
type Note struct {
	ID    int64  `json:"id"`
	Text  string `json:"text"`
	Date  string `json:"date"`
	Stars int    `json:"stars"`
}

// Flashcard is a subject/topic/question/answer record shown as a study card.
// The answer is Markdown text.
type Flashcard struct {
	ID       int64  `json:"id"`
	Subject  string `json:"subject"`
	Topic    string `json:"topic"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Date     string `json:"date"`
	Stars    int    `json:"stars"`
}

// Item is a read-only row on the home page. Items are created by seeding or
// restore only, never through the UI.
type Item struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
}
