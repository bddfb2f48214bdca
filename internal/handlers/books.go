package handlers

import (
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"library-desk/internal/library"
	"library-desk/internal/models"
)

// BooksHandler obsługuje wyszukiwanie, wypożyczenia i zwroty
type BooksHandler struct {
	desk *library.Desk
	log  logrus.FieldLogger
}

// NewBooksHandler tworzy nowy handler dla książek
func NewBooksHandler(desk *library.Desk, log logrus.FieldLogger) *BooksHandler {
	return &BooksHandler{desk: desk, log: log}
}

type bookRefBody struct {
	Name   string `json:"name"`
	Author string `json:"author"`
}

func (b *bookRefBody) fromForm(get func(string) string) {
	b.Name = get("name")
	b.Author = get("author")
}

// SearchBooks wyszukuje książki po dokładnej nazwie (GET /books?name=...)
func (h *BooksHandler) SearchBooks(w http.ResponseWriter, r *http.Request) {
	res := h.desk.Execute(r.Context(), sessionFrom(r), library.Request{
		Command:  library.CmdSearch,
		BookName: r.URL.Query().Get("name"),
	})
	writeResult(w, h.log, res, http.StatusOK, "")
}

// BorrowBook wypożycza książkę (POST /loans)
func (h *BooksHandler) BorrowBook(w http.ResponseWriter, r *http.Request) {
	var body bookRefBody
	if err := decodeRequest(r, &body, body.fromForm); err != nil {
		badRequest(w, library.CmdBorrow, "nieprawidłowe dane")
		return
	}

	res := h.desk.Execute(r.Context(), sessionFrom(r), library.Request{
		Command:    library.CmdBorrow,
		BookName:   body.Name,
		BookAuthor: body.Author,
	})
	due := fmt.Sprintf("zwróć książkę w ciągu %d dni", models.WholeDays(h.desk.Loans.Period()))
	writeResult(w, h.log, res, http.StatusCreated, due)
}

// ReturnBook zwraca książkę (POST /loans/return)
func (h *BooksHandler) ReturnBook(w http.ResponseWriter, r *http.Request) {
	var body bookRefBody
	if err := decodeRequest(r, &body, body.fromForm); err != nil {
		badRequest(w, library.CmdReturn, "nieprawidłowe dane")
		return
	}

	res := h.desk.Execute(r.Context(), sessionFrom(r), library.Request{
		Command:    library.CmdReturn,
		BookName:   body.Name,
		BookAuthor: body.Author,
	})
	writeResult(w, h.log, res, http.StatusOK, "książka zwrócona")
}

// ListMyLoans zwraca wypożyczenia zalogowanego użytkownika (GET /loans)
func (h *BooksHandler) ListMyLoans(w http.ResponseWriter, r *http.Request) {
	res := h.desk.Execute(r.Context(), sessionFrom(r), library.Request{Command: library.CmdListMine})
	writeResult(w, h.log, res, http.StatusOK, "")
}
