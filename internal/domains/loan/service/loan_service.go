package service

import (
	"context"
	"fmt"
	"time"

	bookmodel "library-backend/internal/domains/book/model"
	bookrepo "library-backend/internal/domains/book/repository"
	"library-backend/internal/domains/loan/model"
	"library-backend/internal/domains/loan/repository"
	"library-backend/internal/shared/actor"
	"library-backend/pkg/cache"
	"library-backend/pkg/database"
	"library-backend/pkg/logger"

	"github.com/jackc/pgx/v5"
)

// LoanService implements ServiceInterface. Borrow and Return each run
// the copy-count mutation and the ledger write in one transaction; the
// conditional UPDATE inside is what makes concurrent borrows safe.
type LoanService struct {
	loanRepo  repository.RepositoryInterface
	bookRepo  bookrepo.RepositoryInterface
	txManager database.TxManager
	cache     cache.Cache

	// injectable clock for due dates and status derivation
	now func() time.Time
}

// NewService creates a loan service with its dependencies
func NewService(
	loanRepo repository.RepositoryInterface,
	bookRepo bookrepo.RepositoryInterface,
	txManager database.TxManager,
	cache cache.Cache,
) ServiceInterface {
	return &LoanService{
		loanRepo:  loanRepo,
		bookRepo:  bookRepo,
		txManager: txManager,
		cache:     cache,
		now:       time.Now,
	}
}

// Borrow creates a loan for one copy of a book. Admins may pass a
// student id to borrow on behalf of another student; for everyone else
// the override is ignored and the loan lands on the caller.
func (s *LoanService) Borrow(ctx context.Context, current actor.Actor, req model.BorrowRequest) (*model.LoanResponse, error) {
	studentID := current.ID
	if current.IsAdmin() && req.StudentID != nil {
		studentID = *req.StudentID
	}

	// Advisory pre-checks. Both conditions are re-verified inside the
	// transaction by the conditional UPDATE and the unique index; these
	// exist to fail fast with a precise error before opening a tx.
	book, err := s.bookRepo.GetByID(ctx, req.BookID)
	if err != nil {
		return nil, err
	}
	if !book.IsAvailable() {
		return nil, model.ErrBookUnavailable
	}

	hasActive, err := s.loanRepo.FindActiveLoan(ctx, studentID, req.BookID)
	if err != nil {
		return nil, err
	}
	if hasActive {
		return nil, model.ErrDuplicateActiveLoan
	}

	borrowedAt := s.now()
	record := &model.LoanRecord{
		StudentID:    studentID,
		BookID:       req.BookID,
		DateBorrowed: borrowedAt,
		DateDue:      borrowedAt.AddDate(0, 0, model.LoanPeriodDays),
		Status:       model.StatusBorrowed,
	}

	err = s.txManager.WithinTransaction(ctx, func(tx pgx.Tx) error {
		ok, err := s.bookRepo.DecrementAvailable(ctx, tx, req.BookID)
		if err != nil {
			return err
		}
		if !ok {
			// Lost the race for the last copy after the advisory check
			return model.ErrBookUnavailable
		}

		return s.loanRepo.CreateLoanTx(ctx, tx, record)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateBookCache(ctx, req.BookID)

	detail, err := s.loanRepo.GetLoanDetail(ctx, record.RecordID)
	if err != nil {
		return nil, fmt.Errorf("loan created but detail fetch failed: %w", err)
	}

	resp := model.ToLoanResponse(*detail, s.now())
	return &resp, nil
}

// Return closes a loan and gives the copy back. Students may only
// return their own loans; admins may return any.
func (s *LoanService) Return(ctx context.Context, current actor.Actor, recordID int64) (*model.ReturnResponse, error) {
	record, err := s.loanRepo.GetLoan(ctx, recordID)
	if err != nil {
		return nil, err
	}

	if !current.IsAdmin() && record.StudentID != current.ID {
		return nil, model.ErrNotRecordOwner
	}

	if !record.IsActive() {
		return nil, model.ErrAlreadyReturned
	}

	returnedAt := s.now()
	err = s.txManager.WithinTransaction(ctx, func(tx pgx.Tx) error {
		// CloseLoanTx re-checks date_returned IS NULL, so a racing
		// second return fails here before the increment runs.
		if err := s.loanRepo.CloseLoanTx(ctx, tx, recordID, returnedAt); err != nil {
			return err
		}

		return s.bookRepo.IncrementAvailable(ctx, tx, record.BookID)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateBookCache(ctx, record.BookID)

	detail, err := s.loanRepo.GetLoanDetail(ctx, recordID)
	if err != nil {
		return nil, fmt.Errorf("loan closed but detail fetch failed: %w", err)
	}

	return &model.ReturnResponse{
		RecordID:     recordID,
		DateReturned: returnedAt.Format("2006-01-02"),
		BookTitle:    detail.BookTitle,
	}, nil
}

// ListLoans returns loans visible to the caller, most recent borrow
// first. Non-admin callers always see their own records only.
func (s *LoanService) ListLoans(ctx context.Context, current actor.Actor, req model.ListLoansRequest) ([]model.LoanResponse, int, error) {
	if !current.IsAdmin() {
		req.StudentID = current.ID
	}

	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}

	details, total, err := s.loanRepo.ListLoans(ctx, req)
	if err != nil {
		return nil, 0, fmt.Errorf("list loans error: %w", err)
	}

	now := s.now()
	responses := make([]model.LoanResponse, len(details))
	for i, d := range details {
		responses[i] = model.ToLoanResponse(d, now)
	}

	return responses, total, nil
}

func (s *LoanService) invalidateBookCache(ctx context.Context, bookID int64) {
	if err := s.cache.Delete(ctx, bookmodel.BookDetailCacheKey(bookID)); err != nil {
		logger.Warn("Book cache invalidation failed", map[string]interface{}{
			"book_id": bookID,
			"error":   err.Error(),
		})
	}
}
