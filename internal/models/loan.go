package models

import "time"

// DefaultLoanPeriod to standardowy czas wypożyczenia
const DefaultLoanPeriod = 14 * 24 * time.Hour

// Loan reprezentuje otwarte wypożyczenie
type Loan struct {
	ID         string    `json:"id" firestore:"-"`
	Username   string    `json:"username" firestore:"username"`
	BookName   string    `json:"book_name" firestore:"name"`
	BookAuthor string    `json:"book_author" firestore:"author"`
	BorrowedAt time.Time `json:"borrowed_at" firestore:"date"`
}

// DueAt zwraca termin zwrotu dla podanego okresu wypożyczenia
func (l *Loan) DueAt(period time.Duration) time.Time {
	return l.BorrowedAt.Add(period)
}

// IsOverdue sprawdza czy od wypożyczenia minęło więcej niż period
func (l *Loan) IsOverdue(now time.Time, period time.Duration) bool {
	return now.Sub(l.BorrowedAt) > period
}

// LoanStatus to wypożyczenie czytelnika z wyliczonym czasem do zwrotu
type LoanStatus struct {
	*Loan     `json:"loan"`
	Remaining time.Duration `json:"remaining"`
	DaysLeft  int           `json:"days_left"`
	Expired   bool          `json:"expired"`
}

// OverdueLoan to przeterminowane wypożyczenie z liczbą dni opóźnienia
type OverdueLoan struct {
	*Loan       `json:"loan"`
	OverdueDays int `json:"overdue_days"`
}

// WholeDays zamienia czas trwania na pełne dni, zaokrąglając w dół (również dla wartości ujemnych)
func WholeDays(d time.Duration) int {
	const day = 24 * time.Hour
	days := d / day
	if d%day < 0 {
		days--
	}
	return int(days)
}
