package library

import (
	"context"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"library-desk/internal/models"
)

// CatalogService zarządza katalogiem książek
type CatalogService struct {
	store CatalogStore
	log   logrus.FieldLogger
}

// NewCatalogService tworzy usługę katalogu
func NewCatalogService(store CatalogStore, log logrus.FieldLogger) *CatalogService {
	return &CatalogService{store: store, log: log}
}

// AddBook dodaje nową książkę. Książki o tej samej nazwie nie są scalane.
func (s *CatalogService) AddBook(ctx context.Context, sess *models.Session, name, author, copies string) (*models.Book, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	author = strings.TrimSpace(author)
	copies = strings.TrimSpace(copies)
	if name == "" || author == "" || copies == "" {
		return nil, newError(KindInvalidInput, "wszystkie pola są wymagane")
	}

	n, err := strconv.Atoi(copies)
	if err != nil {
		return nil, newError(KindInvalidInput, "liczba egzemplarzy musi być liczbą")
	}

	book := &models.Book{Name: name, Author: author, AvailableCopies: n}
	if err := s.store.InsertBook(ctx, book); err != nil {
		return nil, storeError("zapis książki", err)
	}

	s.log.WithFields(logrus.Fields{
		"admin":  sess.Username,
		"book":   name,
		"author": author,
		"copies": n,
	}).Info("dodano książkę")
	return book, nil
}

// RemoveBook usuwa pierwszą książkę o podanej nazwie
func (s *CatalogService) RemoveBook(ctx context.Context, sess *models.Session, name string) error {
	if err := requireAdmin(sess); err != nil {
		return err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return newError(KindInvalidInput, "podaj nazwę książki")
	}

	deleted, err := s.store.DeleteFirstBookByName(ctx, name)
	if err != nil {
		return storeError("usuwanie książki", err)
	}
	if !deleted {
		return newError(KindBookNotFound, "książka nie została znaleziona")
	}

	s.log.WithFields(logrus.Fields{"admin": sess.Username, "book": name}).Info("usunięto książkę")
	return nil
}

// SearchBooks zwraca książki o dokładnie takiej nazwie (wielkość liter ma znaczenie)
func (s *CatalogService) SearchBooks(ctx context.Context, name string) ([]*models.Book, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, newError(KindInvalidInput, "podaj nazwę książki")
	}

	books, err := s.store.FindBooksByName(ctx, name)
	if err != nil {
		return nil, storeError("wyszukiwanie książek", err)
	}
	return books, nil
}

func requireSession(sess *models.Session) error {
	if sess == nil || sess.Username == "" {
		return newError(KindForbidden, "wymagane logowanie")
	}
	return nil
}

func requireAdmin(sess *models.Session) error {
	if err := requireSession(sess); err != nil {
		return err
	}
	if !sess.IsAdmin() {
		return newError(KindForbidden, "operacja dostępna tylko dla administratora")
	}
	return nil
}
