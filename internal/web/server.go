package web

import (
	"embed"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"strconv"
	"strings"

	"recallpad/internal/storage"
)

//go:embed all:static
var staticFiles embed.FS

//go:embed all:templates
var templateFiles embed.FS

// Server holds the dependencies for the HTTP server.
type Server struct {
	db           *storage.DB
	router       *http.ServeMux
	templates    *template.Template
	notesPerPage int
	cardsPerPage int
}

// NewServer creates and configures a new server.
func NewServer(db *storage.DB, notesPerPage, cardsPerPage int) *Server {
	tpl, err := template.New("").Funcs(templateFuncs()).ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		log.Fatalf("Failed to parse templates: %v", err)
	}

	s := &Server{
		db:           db,
		router:       http.NewServeMux(),
		templates:    tpl,
		notesPerPage: notesPerPage,
		cardsPerPage: cardsPerPage,
	}
	s.routes()
	return s
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// routes sets up the routing for the server.
func (s *Server) routes() {
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		log.Fatalf("Failed to create sub-filesystem for static assets: %v", err)
	}
	s.router.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	// Notes
	s.router.HandleFunc("/", s.handleHome())
	s.router.HandleFunc("/delete/", s.handleDeleteNote())
	s.router.HandleFunc("/edit/", s.handleEditNote())
	s.router.HandleFunc("/increment-date/", s.handleRescheduleNote())
	s.router.HandleFunc("/rate-note/", s.handleRateNote())

	// Flashcards
	s.router.HandleFunc("/practice", s.handlePractice())
	s.router.HandleFunc("/delete-practice/", s.handleDeletePractice())
	s.router.HandleFunc("/edit-practice/", s.handleEditPractice())
	s.router.HandleFunc("/increment-practice-date/", s.handleReschedulePractice())
	s.router.HandleFunc("/rate-practice/", s.handleRatePractice())
	s.router.HandleFunc("/search-practice", s.handleSearchPractice())
}

// pathID parses the id segment after a route prefix.
func pathID(path, prefix string) (int64, bool) {
	rest := strings.TrimPrefix(path, prefix)
	id, err := strconv.ParseInt(strings.Trim(rest, "/"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// pathIDAndNum parses "{id}/{n}" after a route prefix, used for the
// reschedule and rate actions.
func pathIDAndNum(path, prefix string) (int64, int, bool) {
	rest := strings.Trim(strings.TrimPrefix(path, prefix), "/")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 {
		return 0, 0, false
	}
	id, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, 0, false
	}
	n, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}
	return id, n, true
}

// pageParam parses the 1-indexed page number, defaulting and clamping to 1.
func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
