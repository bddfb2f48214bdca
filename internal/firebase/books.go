package firebase

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"library-desk/internal/models"
)

const (
	// BooksCollection to nazwa kolekcji książek w Firestore
	BooksCollection = "books"
)

// InsertBook tworzy nową książkę. Nie scala z istniejącymi książkami o tej samej nazwie.
func (c *Client) InsertBook(ctx context.Context, book *models.Book) error {
	if book == nil {
		return fmt.Errorf("książka nie może być nil")
	}

	docRef := c.Firestore.Collection(BooksCollection).NewDoc()
	if _, err := docRef.Set(ctx, book); err != nil {
		return fmt.Errorf("błąd zapisywania książki: %w", err)
	}

	book.ID = docRef.ID
	return nil
}

// DeleteFirstBookByName usuwa pierwszą znalezioną książkę o podanej nazwie
func (c *Client) DeleteFirstBookByName(ctx context.Context, name string) (bool, error) {
	iter := c.Firestore.Collection(BooksCollection).
		Where("name", "==", name).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("błąd wyszukiwania książki: %w", err)
	}

	if _, err := doc.Ref.Delete(ctx); err != nil {
		return false, fmt.Errorf("błąd usuwania książki: %w", err)
	}
	return true, nil
}

// FindBooksByName zwraca książki o dokładnie takiej nazwie
func (c *Client) FindBooksByName(ctx context.Context, name string) ([]*models.Book, error) {
	return c.queryBooks(ctx, c.Firestore.Collection(BooksCollection).Where("name", "==", name))
}

// FindBook zwraca pierwszą książkę pasującą do (name, author); nil gdy brak
func (c *Client) FindBook(ctx context.Context, name, author string) (*models.Book, error) {
	books, err := c.queryBooks(ctx, c.Firestore.Collection(BooksCollection).
		Where("name", "==", name).
		Where("author", "==", author).
		Limit(1))
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, nil
	}
	return books[0], nil
}

// AdjustCopies zmienia liczbę dostępnych egzemplarzy atomowym inkrementem
func (c *Client) AdjustCopies(ctx context.Context, bookID string, delta int) error {
	if bookID == "" {
		return fmt.Errorf("ID książki nie może być puste")
	}

	_, err := c.Firestore.Collection(BooksCollection).Doc(bookID).Update(ctx, []firestore.Update{
		{Path: "number", Value: firestore.Increment(delta)},
	})
	if err != nil {
		return fmt.Errorf("błąd aktualizacji stanu książki: %w", err)
	}
	return nil
}

// AdjustCopiesByTitle zmienia stan pierwszej książki pasującej do (name, author)
func (c *Client) AdjustCopiesByTitle(ctx context.Context, name, author string, delta int) (bool, error) {
	book, err := c.FindBook(ctx, name, author)
	if err != nil || book == nil {
		return false, err
	}
	if err := c.AdjustCopies(ctx, book.ID, delta); err != nil {
		return false, err
	}
	return true, nil
}

func (c *Client) queryBooks(ctx context.Context, query firestore.Query) ([]*models.Book, error) {
	var books []*models.Book

	iter := query.Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("błąd iteracji po książkach: %w", err)
		}

		var book models.Book
		if err := doc.DataTo(&book); err != nil {
			return nil, fmt.Errorf("błąd parsowania książki: %w", err)
		}

		// Ustaw ID z dokumentu Firestore
		book.ID = doc.Ref.ID

		books = append(books, &book)
	}

	return books, nil
}
