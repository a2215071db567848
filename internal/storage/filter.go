package storage

import "strings"

// Date filter types accepted by the list views.
const (
	FilterAll    = "all"
	FilterBefore = "before"
	FilterAfter  = "after"
	FilterOn     = "on"
)

// NoteQuery holds the filter and sort parameters for the notes list.
// Search is accepted from the request but intentionally not applied to the
// query; the original interface only searches flashcards.
type NoteQuery struct {
	FilterType string
	FilterDate string
	Sort       string // "asc" or "desc", default "asc"
	Search     string
}

// CardQuery holds the filter parameters for the flashcards list.
// Stars is nil when no star filter is active.
type CardQuery struct {
	Subject    string
	Topic      string
	Stars      *int
	FilterType string
	FilterDate string
	Search     string
}

// Filtered reports whether any filter or search term is active. Seeding must
// never run against a filtered view, even if its result set is empty.
func (q CardQuery) Filtered() bool {
	return q.Subject != "" || q.Topic != "" || q.Stars != nil ||
		q.Search != "" || (q.FilterDate != "" && q.FilterType != FilterAll && q.FilterType != "")
}

// dateCondition returns the bound condition for a date filter, or ok=false
// when the filter contributes nothing (type "all", missing date).
func dateCondition(filterType, filterDate string) (cond string, arg any, ok bool) {
	if filterDate == "" {
		return "", nil, false
	}
	switch filterType {
	case FilterBefore:
		return "date < ?", filterDate, true
	case FilterAfter:
		return "date > ?", filterDate, true
	case FilterOn:
		return "date LIKE ?", filterDate + "%", true
	}
	return "", nil, false
}

// Where builds the WHERE clause for a notes query. Every user-supplied value
// is a bound parameter; nothing is interpolated into the SQL text.
func (q NoteQuery) Where() (string, []any) {
	if cond, arg, ok := dateCondition(q.FilterType, q.FilterDate); ok {
		return " WHERE " + cond, []any{arg}
	}
	return "", nil
}

// OrderBy returns the ORDER BY clause for a notes query. Notes sort by
// calendar day in the requested direction, with stars always a secondary
// ascending key.
func (q NoteQuery) OrderBy() string {
	dir := "ASC"
	if q.Sort == "desc" {
		dir = "DESC"
	}
	return " ORDER BY DATE(date) " + dir + ", stars ASC"
}

// Where builds the WHERE clause for a flashcards query. Conditions combine
// with AND; absent filters contribute nothing.
func (q CardQuery) Where() (string, []any) {
	var conds []string
	var args []any

	if q.Subject != "" {
		conds = append(conds, "subject = ?")
		args = append(args, q.Subject)
	}
	if q.Topic != "" {
		conds = append(conds, "topic = ?")
		args = append(args, q.Topic)
	}
	if q.Stars != nil {
		conds = append(conds, "stars = ?")
		args = append(args, *q.Stars)
	}
	if cond, arg, ok := dateCondition(q.FilterType, q.FilterDate); ok {
		conds = append(conds, cond)
		args = append(args, arg)
	}
	if q.Search != "" {
		conds = append(conds, "(question LIKE ? OR answer LIKE ?)")
		like := "%" + q.Search + "%"
		args = append(args, like, like)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
