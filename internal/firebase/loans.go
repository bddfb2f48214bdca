package firebase

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"library-desk/internal/models"
)

const (
	// LoansCollection to nazwa kolekcji wypożyczeń w Firestore
	LoansCollection = "borrows"
)

// InsertLoan tworzy nowe wypożyczenie
func (c *Client) InsertLoan(ctx context.Context, loan *models.Loan) error {
	if loan == nil {
		return fmt.Errorf("wypożyczenie nie może być nil")
	}
	if loan.Username == "" {
		return fmt.Errorf("nazwa użytkownika jest wymagana")
	}

	docRef := c.Firestore.Collection(LoansCollection).NewDoc()
	if _, err := docRef.Set(ctx, loan); err != nil {
		return fmt.Errorf("błąd zapisywania wypożyczenia: %w", err)
	}

	loan.ID = docRef.ID
	return nil
}

// DeleteLoan usuwa jedno wypożyczenie pasujące do (username, name, author)
func (c *Client) DeleteLoan(ctx context.Context, username, bookName, bookAuthor string) (bool, error) {
	iter := c.Firestore.Collection(LoansCollection).
		Where("username", "==", username).
		Where("name", "==", bookName).
		Where("author", "==", bookAuthor).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("błąd wyszukiwania wypożyczenia: %w", err)
	}

	if _, err := doc.Ref.Delete(ctx); err != nil {
		return false, fmt.Errorf("błąd usuwania wypożyczenia: %w", err)
	}
	return true, nil
}

// ListLoansByUser pobiera wypożyczenia użytkownika
func (c *Client) ListLoansByUser(ctx context.Context, username string) ([]*models.Loan, error) {
	if username == "" {
		return nil, fmt.Errorf("nazwa użytkownika nie może być pusta")
	}
	return c.queryLoans(ctx, c.Firestore.Collection(LoansCollection).Where("username", "==", username))
}

// ListLoansBorrowedBefore pobiera wypożyczenia starsze niż cutoff
func (c *Client) ListLoansBorrowedBefore(ctx context.Context, cutoff time.Time) ([]*models.Loan, error) {
	return c.queryLoans(ctx, c.Firestore.Collection(LoansCollection).
		Where("date", "<", cutoff).
		OrderBy("date", firestore.Asc))
}

func (c *Client) queryLoans(ctx context.Context, query firestore.Query) ([]*models.Loan, error) {
	var loans []*models.Loan

	iter := query.Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("błąd iteracji po wypożyczeniach: %w", err)
		}

		var loan models.Loan
		if err := doc.DataTo(&loan); err != nil {
			return nil, fmt.Errorf("błąd parsowania wypożyczenia: %w", err)
		}
		loan.ID = doc.Ref.ID

		loans = append(loans, &loan)
	}

	return loans, nil
}
