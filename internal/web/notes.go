package web

import (
	"log/slog"
	"net/http"
	"net/url"

	"recallpad/internal/domain"
	"recallpad/internal/paging"
	"recallpad/internal/storage"
)

type homeData struct {
	Items       []domain.Item
	Notes       []domain.Note
	Page        int
	PrevPage    int
	NextPage    int
	TotalPages  int
	Total       int
	FilterType  string
	FilterDate  string
	Sort        string
	Search      string
	Params      string
	StarChoices []int
	DayChoices  []int
}

// handleHome serves the notes list and accepts new note submissions.
func (s *Server) handleHome() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}

		if r.Method == http.MethodPost {
			if text := r.PostFormValue("text"); text != "" {
				if _, err := s.db.InsertNote(text); err != nil {
					slog.Error("failed to insert note", "error", err)
				}
			}
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}

		page := pageParam(r)
		q := storage.NoteQuery{
			FilterType: r.URL.Query().Get("filter"),
			FilterDate: r.URL.Query().Get("date"),
			Sort:       r.URL.Query().Get("sort"),
			Search:     r.URL.Query().Get("q"),
		}
		if q.FilterType == "" {
			q.FilterType = storage.FilterAll
		}
		if q.Sort == "" {
			q.Sort = "asc"
		}

		items, err := s.db.ListItems()
		if err != nil {
			slog.Error("failed to list items", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		notes, total, err := s.db.ListNotes(q, s.notesPerPage, paging.Offset(page, s.notesPerPage))
		if err != nil {
			slog.Error("failed to list notes", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		data := homeData{
			Items:       items,
			Notes:       notes,
			Page:        page,
			PrevPage:    page - 1,
			NextPage:    page + 1,
			TotalPages:  paging.TotalPages(total, s.notesPerPage),
			Total:       total,
			FilterType:  q.FilterType,
			FilterDate:  q.FilterDate,
			Sort:        q.Sort,
			Search:      q.Search,
			Params:      noteParams(q),
			StarChoices: starChoices,
			DayChoices:  dayChoices,
		}
		if err := s.templates.ExecuteTemplate(w, "home", data); err != nil {
			slog.Error("failed to render home", "error", err)
		}
	}
}

// noteParams builds the query-string suffix that page links append so active
// filters survive pagination.
func noteParams(q storage.NoteQuery) string {
	v := url.Values{}
	if q.FilterType != "" && q.FilterType != storage.FilterAll {
		v.Set("filter", q.FilterType)
	}
	if q.FilterDate != "" {
		v.Set("date", q.FilterDate)
	}
	if q.Sort != "" && q.Sort != "asc" {
		v.Set("sort", q.Sort)
	}
	if q.Search != "" {
		v.Set("q", q.Search)
	}
	if enc := v.Encode(); enc != "" {
		return "&" + enc
	}
	return ""
}

// handleDeleteNote deletes a note and redirects to the list.
func (s *Server) handleDeleteNote() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if id, ok := pathID(r.URL.Path, "/delete/"); ok {
			if err := s.db.DeleteNote(id); err != nil {
				slog.Error("failed to delete note", "id", id, "error", err)
			}
		}
		http.Redirect(w, r, "/", http.StatusFound)
	}
}

// handleEditNote shows the edit form (GET) or applies a text update (POST).
func (s *Server) handleEditNote() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r.URL.Path, "/edit/")
		if !ok {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}

		if r.Method == http.MethodPost {
			if text := r.PostFormValue("text"); text != "" {
				if err := s.db.UpdateNoteText(id, text); err != nil {
					slog.Error("failed to update note", "id", id, "error", err)
				}
			}
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}

		note, err := s.db.FindNoteByID(id)
		if err != nil {
			slog.Error("failed to find note", "id", id, "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		if note == nil {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		if err := s.templates.ExecuteTemplate(w, "edit_note", note); err != nil {
			slog.Error("failed to render note edit form", "error", err)
		}
	}
}

// handleRescheduleNote shifts a note's date by a whole number of days.
func (s *Server) handleRescheduleNote() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if id, days, ok := pathIDAndNum(r.URL.Path, "/increment-date/"); ok {
			if err := s.db.RescheduleNote(id, days); err != nil {
				slog.Error("failed to reschedule note", "id", id, "days", days, "error", err)
			}
		}
		http.Redirect(w, r, "/", http.StatusFound)
	}
}

// handleRateNote sets a note's star rating when it falls in [1,5].
func (s *Server) handleRateNote() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if id, stars, ok := pathIDAndNum(r.URL.Path, "/rate-note/"); ok {
			if err := s.db.RateNote(id, stars); err != nil {
				slog.Error("failed to rate note", "id", id, "stars", stars, "error", err)
			}
		}
		http.Redirect(w, r, "/", http.StatusFound)
	}
}
