package model

import (
	"time"
)

// Loan status values. The stored column is a filtering convenience kept
// roughly in sync by the overdue worker; EffectiveStatus is authoritative.
const (
	StatusBorrowed = "borrowed"
	StatusOverdue  = "overdue"
	StatusReturned = "returned"
)

// LoanPeriodDays is the standard borrowing period
const LoanPeriodDays = 14

// LoanRecord represents the database entity for the records table
type LoanRecord struct {
	RecordID     int64      `db:"record_id"`
	StudentID    int64      `db:"student_id"`
	BookID       int64      `db:"book_id"`
	DateBorrowed time.Time  `db:"date_borrowed"`
	DateDue      time.Time  `db:"date_due"`
	DateReturned *time.Time `db:"date_returned"`
	Status       string     `db:"status"`
	CreatedAt    time.Time  `db:"created_at"`
}

// EffectiveStatus derives the loan status at read time. A loan is
// returned once date_returned is set, overdue once the due date is a
// past calendar day, borrowed otherwise. The stored status column is
// never consulted.
func (r *LoanRecord) EffectiveStatus(now time.Time) string {
	if r.DateReturned != nil {
		return StatusReturned
	}
	today := truncateToDay(now)
	if truncateToDay(r.DateDue).Before(today) {
		return StatusOverdue
	}
	return StatusBorrowed
}

// IsActive reports whether the book is still out
func (r *LoanRecord) IsActive() bool {
	return r.DateReturned == nil
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// LoanDetail is a LoanRecord joined with book and student descriptors
// for list and detail responses
type LoanDetail struct {
	LoanRecord

	BookTitle    string  `db:"title"`
	BookAuthor   string  `db:"author"`
	BookISBN     *string `db:"isbn"`
	BookCategory *string `db:"category"`

	StudentFirstName string `db:"first_name"`
	StudentLastName  string `db:"last_name"`
	StudentEmail     string `db:"email"`
	StudentCourse    string `db:"course"`
}
