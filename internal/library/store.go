package library

import (
	"context"
	"time"

	"library-desk/internal/models"
)

// CredentialStore przechowuje konta czytelników i administratorów w osobnych zbiorach.
// Metody Find* zwracają (nil, nil) gdy dokument nie istnieje.
type CredentialStore interface {
	FindMember(ctx context.Context, username string) (*models.Account, error)
	FindAdmin(ctx context.Context, username string) (*models.Account, error)
	InsertMember(ctx context.Context, account *models.Account) error
	// InsertAdmins zapisuje wszystkie konta jedną operacją; błąd oznacza że nie zapisano żadnego
	InsertAdmins(ctx context.Context, accounts []*models.Account) error
	HasAdmins(ctx context.Context) (bool, error)
}

// CatalogStore przechowuje książki
type CatalogStore interface {
	InsertBook(ctx context.Context, book *models.Book) error
	// DeleteFirstBookByName usuwa co najwyżej jeden dokument; zwraca false gdy nic nie pasowało
	DeleteFirstBookByName(ctx context.Context, name string) (bool, error)
	FindBooksByName(ctx context.Context, name string) ([]*models.Book, error)
	FindBook(ctx context.Context, name, author string) (*models.Book, error)
	AdjustCopies(ctx context.Context, bookID string, delta int) error
	// AdjustCopiesByTitle zmienia stan pierwszej książki pasującej do (name, author)
	AdjustCopiesByTitle(ctx context.Context, name, author string, delta int) (bool, error)
}

// LoanLedger przechowuje otwarte wypożyczenia
type LoanLedger interface {
	InsertLoan(ctx context.Context, loan *models.Loan) error
	// DeleteLoan usuwa jedno wypożyczenie pasujące do trójki; zwraca false gdy nic nie pasowało
	DeleteLoan(ctx context.Context, username, bookName, bookAuthor string) (bool, error)
	ListLoansByUser(ctx context.Context, username string) ([]*models.Loan, error)
	ListLoansBorrowedBefore(ctx context.Context, cutoff time.Time) ([]*models.Loan, error)
}

// Stores grupuje trzy magazyny używane przez usługi
type Stores struct {
	Credentials CredentialStore
	Catalog     CatalogStore
	Loans       LoanLedger
}
