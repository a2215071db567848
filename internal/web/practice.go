package web

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"recallpad/internal/domain"
	"recallpad/internal/paging"
	"recallpad/internal/storage"
)

type practiceData struct {
	Cards       []domain.Flashcard
	Subjects    []string
	Topics      []string
	Page        int
	PrevPage    int
	NextPage    int
	TotalPages  int
	Total       int
	Subject     string
	Topic       string
	FilterType  string
	FilterDate  string
	Stars       string
	Search      string
	Params      string
	StarChoices []int
	DayChoices  []int
}

// handlePractice serves the study card view and accepts new flashcards.
func (s *Server) handlePractice() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			subject := r.PostFormValue("subject")
			topic := r.PostFormValue("topic")
			question := r.PostFormValue("question")
			answer := r.PostFormValue("answer")
			if subject != "" && topic != "" && question != "" && answer != "" {
				if _, err := s.db.InsertFlashcard(subject, topic, question, answer); err != nil {
					slog.Error("failed to insert flashcard", "error", err)
				}
			}
			http.Redirect(w, r, "/practice", http.StatusFound)
			return
		}

		page := pageParam(r)
		starsParam := r.URL.Query().Get("stars")
		q := storage.CardQuery{
			Subject:    r.URL.Query().Get("subject"),
			Topic:      r.URL.Query().Get("topic"),
			FilterType: r.URL.Query().Get("filter"),
			FilterDate: r.URL.Query().Get("date"),
			Search:     r.URL.Query().Get("q"),
		}
		if q.FilterType == "" {
			q.FilterType = storage.FilterAll
		}
		// A non-integer stars value drops the filter rather than erroring.
		if n, err := strconv.Atoi(starsParam); err == nil {
			q.Stars = &n
		} else {
			starsParam = ""
		}

		cards, total, err := s.db.ListFlashcards(q, s.cardsPerPage, paging.Offset(page, s.cardsPerPage))
		if err != nil {
			slog.Error("failed to list flashcards", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		// First visit to an unfiltered, empty deck gets example cards. A
		// filtered view that happens to be empty must never reseed.
		if total == 0 && !q.Filtered() {
			seeded, err := s.db.SeedFlashcardsIfEmpty()
			if err != nil {
				slog.Error("failed to seed flashcards", "error", err)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}
			if seeded {
				cards, total, err = s.db.ListFlashcards(q, s.cardsPerPage, paging.Offset(page, s.cardsPerPage))
				if err != nil {
					slog.Error("failed to list flashcards after seeding", "error", err)
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
					return
				}
			}
		}

		subjects, err := s.db.Subjects()
		if err != nil {
			slog.Error("failed to list subjects", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		topics, err := s.db.Topics()
		if err != nil {
			slog.Error("failed to list topics", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		data := practiceData{
			Cards:       cards,
			Subjects:    subjects,
			Topics:      topics,
			Page:        page,
			PrevPage:    page - 1,
			NextPage:    page + 1,
			TotalPages:  paging.TotalPages(total, s.cardsPerPage),
			Total:       total,
			Subject:     q.Subject,
			Topic:       q.Topic,
			FilterType:  q.FilterType,
			FilterDate:  q.FilterDate,
			Stars:       starsParam,
			Search:      q.Search,
			Params:      cardParams(q, starsParam),
			StarChoices: starChoices,
			DayChoices:  dayChoices,
		}
		if err := s.templates.ExecuteTemplate(w, "practice", data); err != nil {
			slog.Error("failed to render practice", "error", err)
		}
	}
}

// cardParams builds the query-string suffix that page links append so active
// filters survive pagination.
func cardParams(q storage.CardQuery, stars string) string {
	v := url.Values{}
	if q.Subject != "" {
		v.Set("subject", q.Subject)
	}
	if q.Topic != "" {
		v.Set("topic", q.Topic)
	}
	if q.FilterType != "" && q.FilterType != storage.FilterAll {
		v.Set("filter", q.FilterType)
	}
	if q.FilterDate != "" {
		v.Set("date", q.FilterDate)
	}
	if stars != "" {
		v.Set("stars", stars)
	}
	if q.Search != "" {
		v.Set("q", q.Search)
	}
	if enc := v.Encode(); enc != "" {
		return "&" + enc
	}
	return ""
}

// handleDeletePractice deletes a flashcard and redirects to the deck.
func (s *Server) handleDeletePractice() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if id, ok := pathID(r.URL.Path, "/delete-practice/"); ok {
			if err := s.db.DeleteFlashcard(id); err != nil {
				slog.Error("failed to delete flashcard", "id", id, "error", err)
			}
		}
		http.Redirect(w, r, "/practice", http.StatusFound)
	}
}

// handleEditPractice shows the edit form (GET) or applies an update (POST).
// All four text fields are edited together and must all be non-empty.
func (s *Server) handleEditPractice() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r.URL.Path, "/edit-practice/")
		if !ok {
			http.Redirect(w, r, "/practice", http.StatusFound)
			return
		}

		if r.Method == http.MethodPost {
			subject := r.PostFormValue("subject")
			topic := r.PostFormValue("topic")
			question := r.PostFormValue("question")
			answer := r.PostFormValue("answer")
			if subject != "" && topic != "" && question != "" && answer != "" {
				if err := s.db.UpdateFlashcard(id, subject, topic, question, answer); err != nil {
					slog.Error("failed to update flashcard", "id", id, "error", err)
				}
			}
			http.Redirect(w, r, "/practice", http.StatusFound)
			return
		}

		card, err := s.db.FindFlashcardByID(id)
		if err != nil {
			slog.Error("failed to find flashcard", "id", id, "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		if card == nil {
			http.Redirect(w, r, "/practice", http.StatusFound)
			return
		}
		if err := s.templates.ExecuteTemplate(w, "edit_practice", card); err != nil {
			slog.Error("failed to render flashcard edit form", "error", err)
		}
	}
}

// handleReschedulePractice shifts a flashcard's date by a whole number of days.
func (s *Server) handleReschedulePractice() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if id, days, ok := pathIDAndNum(r.URL.Path, "/increment-practice-date/"); ok {
			if err := s.db.RescheduleFlashcard(id, days); err != nil {
				slog.Error("failed to reschedule flashcard", "id", id, "days", days, "error", err)
			}
		}
		http.Redirect(w, r, "/practice", http.StatusFound)
	}
}

// handleRatePractice sets a flashcard's star rating when it falls in [1,5].
func (s *Server) handleRatePractice() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if id, stars, ok := pathIDAndNum(r.URL.Path, "/rate-practice/"); ok {
			if err := s.db.RateFlashcard(id, stars); err != nil {
				slog.Error("failed to rate flashcard", "id", id, "stars", stars, "error", err)
			}
		}
		http.Redirect(w, r, "/practice", http.StatusFound)
	}
}

// handleSearchPractice returns a JSON array of flashcards whose question or
// answer contains the search term. An empty term returns an empty array.
func (s *Server) handleSearchPractice() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cards, err := s.db.SearchFlashcards(r.URL.Query().Get("q"))
		if err != nil {
			slog.Error("failed to search flashcards", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(cards); err != nil {
			slog.Error("failed to encode search results", "error", err)
		}
	}
}
