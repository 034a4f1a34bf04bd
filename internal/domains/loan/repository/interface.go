package repository

import (
	"context"
	"time"

	"library-backend/internal/domains/loan/model"

	"github.com/jackc/pgx/v5"
)

// RepositoryInterface defines data access for loan records
type RepositoryInterface interface {
	// CreateLoanTx inserts the loan inside the caller's transaction so
	// it commits or rolls back together with the copy decrement.
	CreateLoanTx(ctx context.Context, tx pgx.Tx, record *model.LoanRecord) error

	GetLoan(ctx context.Context, id int64) (*model.LoanRecord, error)
	GetLoanDetail(ctx context.Context, id int64) (*model.LoanDetail, error)

	// CloseLoanTx stamps the return date inside the caller's transaction.
	// Returns ErrAlreadyReturned when the loan is already closed, so two
	// concurrent returns cannot both increment the copy count.
	CloseLoanTx(ctx context.Context, tx pgx.Tx, recordID int64, returnedAt time.Time) error

	// FindActiveLoan reports whether the student currently holds an open
	// loan for the book.
	FindActiveLoan(ctx context.Context, studentID, bookID int64) (bool, error)

	ListLoans(ctx context.Context, filter model.ListLoansRequest) ([]model.LoanDetail, int, error)

	// MarkOverdueLoans flips stored status to overdue for open loans past
	// their due date. Used by the background worker only.
	MarkOverdueLoans(ctx context.Context, asOf time.Time) (int64, error)
}
