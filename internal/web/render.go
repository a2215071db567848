package web

import (
	"bytes"
	"html/template"
	"strings"
	"time"

	"github.com/yuin/goldmark"

	"recallpad/internal/storage"
)

var markdown = goldmark.New()

// starChoices and dayChoices drive the rating and reschedule action links.
var (
	starChoices = []int{1, 2, 3, 4, 5}
	dayChoices  = []int{1, 3, 7, 14, 30}
)

const displayLayout = "Monday, January 2, 2006 at 3:04 PM"

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"formatDate": formatDate,
		"starText":   starText,
		"starIcons":  starIcons,
		"markdown":   renderMarkdown,
	}
}

// formatDate renders a stored timestamp in a human-readable form. A value
// that fails to parse is shown as stored rather than failing the request.
func formatDate(stored string) string {
	t, err := time.Parse(storage.DateLayout, stored)
	if err != nil {
		return stored
	}
	return t.Format(displayLayout)
}

// starText renders the importance rating, e.g. "⭐⭐⭐" or "✩ (0 stars)".
func starText(stars int) string {
	if stars <= 0 {
		return "✩ (0 stars)"
	}
	return strings.Repeat("⭐", stars)
}

// starIcons renders the label for a rating link.
func starIcons(stars int) string {
	return strings.Repeat("⭐", stars)
}

// renderMarkdown converts a flashcard answer from Markdown to HTML. On
// conversion failure the source text is shown escaped.
func renderMarkdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(buf.String())
}
