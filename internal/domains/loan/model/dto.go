package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// BorrowRequest is the payload for POST /records.
// StudentID is honored only when the caller is an admin borrowing on
// behalf of another student.
type BorrowRequest struct {
	BookID    int64  `json:"book_id"`
	StudentID *int64 `json:"student_id"`
}

func (r BorrowRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.BookID, validation.Required, validation.Min(int64(1))),
		validation.Field(&r.StudentID, validation.Min(int64(1))),
	)
}

// ReturnRequest is the payload for POST /records/return
type ReturnRequest struct {
	RecordID int64 `json:"record_id"`
}

func (r ReturnRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.RecordID, validation.Required, validation.Min(int64(1))),
	)
}

// ListLoansRequest holds query parameters for GET /records.
// StudentID is an admin-only filter; non-admin callers are pinned to
// their own records by the service.
type ListLoansRequest struct {
	Status    string
	StudentID int64
	Page      int
	Limit     int
}

func (r ListLoansRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Status, validation.In("", StatusBorrowed, StatusOverdue, StatusReturned)),
	)
}

// LoanResponse is the API representation of a loan with joined
// book and student descriptors. Status is derived at read time.
type LoanResponse struct {
	RecordID     int64     `json:"record_id"`
	StudentID    int64     `json:"student_id"`
	BookID       int64     `json:"book_id"`
	DateBorrowed string    `json:"date_borrowed"`
	DateDue      string    `json:"date_due"`
	DateReturned *string   `json:"date_returned"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`

	BookTitle    string  `json:"book_title"`
	BookAuthor   string  `json:"book_author"`
	BookISBN     *string `json:"book_isbn"`
	BookCategory *string `json:"book_category"`

	StudentFirstName string `json:"student_first_name"`
	StudentLastName  string `json:"student_last_name"`
	StudentEmail     string `json:"student_email"`
	StudentCourse    string `json:"student_course"`
}

// ReturnResponse confirms a completed return
type ReturnResponse struct {
	RecordID     int64  `json:"record_id"`
	DateReturned string `json:"date_returned"`
	BookTitle    string `json:"book_title"`
}

const dateLayout = "2006-01-02"

// ToLoanResponse maps a joined loan row to its API DTO, deriving the
// status against the supplied clock
func ToLoanResponse(d LoanDetail, now time.Time) LoanResponse {
	resp := LoanResponse{
		RecordID:     d.RecordID,
		StudentID:    d.StudentID,
		BookID:       d.BookID,
		DateBorrowed: d.DateBorrowed.Format(dateLayout),
		DateDue:      d.DateDue.Format(dateLayout),
		Status:       d.EffectiveStatus(now),
		CreatedAt:    d.CreatedAt,

		BookTitle:    d.BookTitle,
		BookAuthor:   d.BookAuthor,
		BookISBN:     d.BookISBN,
		BookCategory: d.BookCategory,

		StudentFirstName: d.StudentFirstName,
		StudentLastName:  d.StudentLastName,
		StudentEmail:     d.StudentEmail,
		StudentCourse:    d.StudentCourse,
	}

	if d.DateReturned != nil {
		returned := d.DateReturned.Format(dateLayout)
		resp.DateReturned = &returned
	}

	return resp
}
