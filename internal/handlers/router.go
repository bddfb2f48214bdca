package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"library-desk/internal/library"
	authmw "library-desk/internal/middleware"
	"library-desk/internal/models"
	"library-desk/internal/session"
)

// NewRouter buduje router chi z wszystkimi endpointami
func NewRouter(desk *library.Desk, sessions *session.Manager, log logrus.FieldLogger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	// sesja przed loggerem, żeby logować nazwę użytkownika
	r.Use(authmw.SessionMiddleware(sessions))
	r.Use(authmw.RequestLogger(log))
	r.Use(chimw.Recoverer)

	indexHandler := NewIndexHandler(desk)
	authHandler := NewAuthHandler(desk, sessions, log)
	booksHandler := NewBooksHandler(desk, log)
	staffHandler := NewStaffHandler(desk, log)

	r.Get("/health", indexHandler.Health)
	r.Post("/setup", authHandler.HandleSetup)

	// Wszystko poniżej dostępne dopiero po utworzeniu administratora
	r.Group(func(r chi.Router) {
		r.Use(authmw.RequireSetup(desk.Accounts.NeedsBootstrap, log))

		r.Get("/", indexHandler.ServeHTTP)
		r.Post("/register", authHandler.HandleRegister)
		r.Post("/login", authHandler.HandleLogin)
		r.Post("/logout", authHandler.HandleLogout)
		r.Get("/books", booksHandler.SearchBooks)

		// Panel czytelnika (wymaga logowania)
		r.Group(func(r chi.Router) {
			r.Use(authmw.RequireAuth)
			r.Get("/loans", booksHandler.ListMyLoans)
			r.Post("/loans", booksHandler.BorrowBook)
			r.Post("/loans/return", booksHandler.ReturnBook)
		})

		// Panel administratora
		r.Route("/staff", func(r chi.Router) {
			r.Use(authmw.RequireAuthRole(models.RoleAdministrator))
			r.Post("/books", staffHandler.CreateBook)
			r.Delete("/books/{name}", staffHandler.DeleteBook)
			r.Get("/overdue", staffHandler.ShowOverdue)
		})
	})

	return r
}
