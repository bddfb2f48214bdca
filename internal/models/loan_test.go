package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWholeDays(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want int
	}{
		{0, 0},
		{time.Second, 0},
		{23 * time.Hour, 0},
		{24 * time.Hour, 1},
		{14*24*time.Hour - time.Second, 13},
		{-time.Second, -1},
		{-24 * time.Hour, -1},
		{-24*time.Hour - time.Second, -2},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, WholeDays(tt.d), tt.d.String())
	}
}

func TestLoanIsOverdue(t *testing.T) {
	borrowed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	loan := &Loan{BorrowedAt: borrowed}

	assert.Equal(t, borrowed.Add(DefaultLoanPeriod), loan.DueAt(DefaultLoanPeriod))
	assert.False(t, loan.IsOverdue(borrowed.Add(13*24*time.Hour), DefaultLoanPeriod))
	assert.False(t, loan.IsOverdue(borrowed.Add(DefaultLoanPeriod), DefaultLoanPeriod))
	assert.True(t, loan.IsOverdue(borrowed.Add(DefaultLoanPeriod+time.Second), DefaultLoanPeriod))
}

func TestLoanViewsExposeLoanFields(t *testing.T) {
	borrowed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	loan := &Loan{Username: "bob", BookName: "Dune", BookAuthor: "Herbert", BorrowedAt: borrowed}

	status := &LoanStatus{Loan: loan, DaysLeft: 3}
	assert.Equal(t, "Dune", status.BookName)
	assert.Equal(t, "Herbert", status.BookAuthor)

	overdue := &OverdueLoan{Loan: loan, OverdueDays: 2}
	assert.Equal(t, "bob", overdue.Username)
	assert.True(t, overdue.BorrowedAt.Equal(borrowed))

	data, err := json.Marshal(overdue)
	require.NoError(t, err)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Contains(t, decoded, "loan")
	assert.Equal(t, "Dune", decoded["loan"].(map[string]interface{})["book_name"])
	assert.EqualValues(t, 2, decoded["overdue_days"])
}

func TestSessionIsAdmin(t *testing.T) {
	var nilSession *Session
	assert.False(t, nilSession.IsAdmin())
	assert.False(t, (&Session{Role: RoleMember}).IsAdmin())

	admin := &Session{Username: "alice", Role: RoleAdministrator}
	assert.True(t, admin.IsAdmin())
	assert.Equal(t, Identity{Username: "alice", Role: RoleAdministrator}, admin.Identity())
	assert.False(t, (&Book{AvailableCopies: 0}).IsAvailable())
	assert.True(t, (&Book{AvailableCopies: 1}).IsAvailable())
}
