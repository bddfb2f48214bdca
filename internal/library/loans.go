package library

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"library-desk/internal/models"
)

// LoanService obsługuje wypożyczenia i zwroty.
//
// Zmiana stanu książki i zapis wypożyczenia to dwa osobne zapisy bez transakcji.
// Awaria pomiędzy nimi zostawia niespójny stan; nic go nie naprawia.
// Dwa równoczesne wypożyczenia tej samej książki mogą zejść ze stanem poniżej zera.
type LoanService struct {
	catalog CatalogStore
	ledger  LoanLedger
	log     logrus.FieldLogger
	period  time.Duration
	now     func() time.Time
}

// LoanOption konfiguruje LoanService
type LoanOption func(*LoanService)

// WithClock podmienia zegar (testy)
func WithClock(now func() time.Time) LoanOption {
	return func(s *LoanService) { s.now = now }
}

// WithLoanPeriod zmienia okres wypożyczenia (domyślnie 14 dni)
func WithLoanPeriod(period time.Duration) LoanOption {
	return func(s *LoanService) {
		if period > 0 {
			s.period = period
		}
	}
}

// NewLoanService tworzy usługę wypożyczeń
func NewLoanService(catalog CatalogStore, ledger LoanLedger, log logrus.FieldLogger, opts ...LoanOption) *LoanService {
	s := &LoanService{
		catalog: catalog,
		ledger:  ledger,
		log:     log,
		period:  models.DefaultLoanPeriod,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Period zwraca okres wypożyczenia
func (s *LoanService) Period() time.Duration {
	return s.period
}

// Borrow wypożycza egzemplarz książki (name, author) dla użytkownika sesji
func (s *LoanService) Borrow(ctx context.Context, sess *models.Session, bookName, bookAuthor string) (*models.Loan, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}

	bookName = strings.TrimSpace(bookName)
	bookAuthor = strings.TrimSpace(bookAuthor)
	if bookName == "" || bookAuthor == "" {
		return nil, newError(KindInvalidInput, "nazwa i autor są wymagane")
	}

	book, err := s.catalog.FindBook(ctx, bookName, bookAuthor)
	if err != nil {
		return nil, storeError("wyszukiwanie książki", err)
	}
	if book == nil {
		return nil, newError(KindBookNotFound, "nie znaleziono książki o tej nazwie i autorze")
	}
	if !book.IsAvailable() {
		return nil, newError(KindOutOfStock, "brak dostępnych egzemplarzy")
	}

	if err := s.catalog.AdjustCopies(ctx, book.ID, -1); err != nil {
		return nil, storeError("aktualizacja stanu książki", err)
	}

	loan := &models.Loan{
		Username:   sess.Username,
		BookName:   bookName,
		BookAuthor: bookAuthor,
		BorrowedAt: s.now(),
	}
	if err := s.ledger.InsertLoan(ctx, loan); err != nil {
		// stan książki jest już zmniejszony
		s.log.WithError(err).WithField("book_id", book.ID).Warn("wypożyczenie nie zapisane po zmianie stanu")
		return nil, storeError("zapis wypożyczenia", err)
	}

	s.log.WithFields(logrus.Fields{
		"username": sess.Username,
		"book":     bookName,
		"author":   bookAuthor,
	}).Info("wypożyczono książkę")
	return loan, nil
}

// ListLoans zwraca otwarte wypożyczenia użytkownika sesji z czasem pozostałym do zwrotu
func (s *LoanService) ListLoans(ctx context.Context, sess *models.Session) ([]*models.LoanStatus, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}

	loans, err := s.ledger.ListLoansByUser(ctx, sess.Username)
	if err != nil {
		return nil, storeError("pobieranie wypożyczeń", err)
	}

	now := s.now()
	result := make([]*models.LoanStatus, 0, len(loans))
	for _, loan := range loans {
		remaining := loan.DueAt(s.period).Sub(now)
		days := models.WholeDays(remaining)
		result = append(result, &models.LoanStatus{
			Loan:      loan,
			Remaining: remaining,
			DaysLeft:  days,
			Expired:   days <= 0,
		})
	}
	return result, nil
}

// ReturnBook usuwa jedno pasujące wypożyczenie i zwiększa stan pierwszej pasującej książki.
// Brak wypożyczenia nie jest błędem, a stan jest zwiększany niezależnie od tego.
func (s *LoanService) ReturnBook(ctx context.Context, sess *models.Session, bookName, bookAuthor string) error {
	if err := requireSession(sess); err != nil {
		return err
	}

	bookName = strings.TrimSpace(bookName)
	bookAuthor = strings.TrimSpace(bookAuthor)
	if bookName == "" || bookAuthor == "" {
		return newError(KindInvalidInput, "nazwa i autor są wymagane")
	}

	deleted, err := s.ledger.DeleteLoan(ctx, sess.Username, bookName, bookAuthor)
	if err != nil {
		return storeError("usuwanie wypożyczenia", err)
	}

	if _, err := s.catalog.AdjustCopiesByTitle(ctx, bookName, bookAuthor, 1); err != nil {
		s.log.WithError(err).WithField("book", bookName).Warn("wypożyczenie usunięte, stan książki bez zmian")
		return storeError("aktualizacja stanu książki", err)
	}

	s.log.WithFields(logrus.Fields{
		"username":    sess.Username,
		"book":        bookName,
		"author":      bookAuthor,
		"loan_closed": deleted,
	}).Info("zwrócono książkę")
	return nil
}

// ListOverdue zwraca wszystkie wypożyczenia starsze niż okres wypożyczenia (tylko administrator)
func (s *LoanService) ListOverdue(ctx context.Context, sess *models.Session) ([]*models.OverdueLoan, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}

	now := s.now()
	loans, err := s.ledger.ListLoansBorrowedBefore(ctx, now.Add(-s.period))
	if err != nil {
		return nil, storeError("pobieranie zaległych wypożyczeń", err)
	}

	result := make([]*models.OverdueLoan, 0, len(loans))
	for _, loan := range loans {
		if !loan.IsOverdue(now, s.period) {
			continue
		}
		result = append(result, &models.OverdueLoan{
			Loan:        loan,
			OverdueDays: models.WholeDays(now.Sub(loan.DueAt(s.period))),
		})
	}
	return result, nil
}
