package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"library-desk/internal/library"
)

// StaffHandler obsługuje panel administratora: katalog i zaległe wypożyczenia
type StaffHandler struct {
	desk *library.Desk
	log  logrus.FieldLogger
}

// NewStaffHandler tworzy handler panelu administratora
func NewStaffHandler(desk *library.Desk, log logrus.FieldLogger) *StaffHandler {
	return &StaffHandler{desk: desk, log: log}
}

type newBookBody struct {
	Name   string      `json:"name"`
	Author string      `json:"author"`
	Copies json.Number `json:"copies"`
}

func (b *newBookBody) fromForm(get func(string) string) {
	b.Name = get("name")
	b.Author = get("author")
	b.Copies = json.Number(get("copies"))
}

// CreateBook dodaje książkę (POST /staff/books)
func (h *StaffHandler) CreateBook(w http.ResponseWriter, r *http.Request) {
	var body newBookBody
	if err := decodeRequest(r, &body, body.fromForm); err != nil {
		badRequest(w, library.CmdAddBook, "liczba egzemplarzy musi być liczbą")
		return
	}

	res := h.desk.Execute(r.Context(), sessionFrom(r), library.Request{
		Command:    library.CmdAddBook,
		BookName:   body.Name,
		BookAuthor: body.Author,
		Copies:     body.Copies.String(),
	})
	writeResult(w, h.log, res, http.StatusCreated, "książka dodana")
}

// DeleteBook usuwa pierwszą książkę o podanej nazwie (DELETE /staff/books/{name})
func (h *StaffHandler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	// chi dopasowuje po RawPath tylko gdy ścieżka zawiera np. %2F, wtedy parametr nie jest zdekodowany
	if r.URL.RawPath != "" {
		if unescaped, err := url.PathUnescape(name); err == nil {
			name = unescaped
		}
	}

	res := h.desk.Execute(r.Context(), sessionFrom(r), library.Request{
		Command:  library.CmdRemoveBook,
		BookName: name,
	})
	writeResult(w, h.log, res, http.StatusOK, "książka usunięta")
}

// ShowOverdue zwraca przeterminowane wypożyczenia (GET /staff/overdue)
func (h *StaffHandler) ShowOverdue(w http.ResponseWriter, r *http.Request) {
	res := h.desk.Execute(r.Context(), sessionFrom(r), library.Request{Command: library.CmdListOverdue})
	writeResult(w, h.log, res, http.StatusOK, "")
}
