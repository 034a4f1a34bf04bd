package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"library-backend/internal/domains/loan/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const recordColumns = `
	record_id, student_id, book_id, date_borrowed, date_due,
	date_returned, status, created_at
`

const detailColumns = `
	r.record_id, r.student_id, r.book_id, r.date_borrowed, r.date_due,
	r.date_returned, r.status, r.created_at,
	b.title, b.author, b.isbn, b.category,
	s.first_name, s.last_name, s.email, s.course
`

const detailJoins = `
	FROM records r
	JOIN books b ON r.book_id = b.book_id
	JOIN students s ON r.student_id = s.student_id
`

// postgresRepository implements RepositoryInterface
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository
func NewRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{
		pool: pool,
	}
}

// CreateLoanTx implements RepositoryInterface.CreateLoanTx.
// The partial unique index on (student_id, book_id) for open records
// backs the duplicate-loan rule even when two borrows race past the
// advisory check.
func (r *postgresRepository) CreateLoanTx(ctx context.Context, tx pgx.Tx, record *model.LoanRecord) error {
	query := `
		INSERT INTO records (
			student_id, book_id, date_borrowed, date_due, status
		) VALUES (
			$1, $2, $3, $4, $5
		)
		RETURNING record_id, created_at
	`

	err := tx.QueryRow(ctx, query,
		record.StudentID,
		record.BookID,
		record.DateBorrowed,
		record.DateDue,
		record.Status,
	).Scan(&record.RecordID, &record.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return model.ErrDuplicateActiveLoan
			}
			if pgErr.Code == "23503" { // foreign_key_violation
				return fmt.Errorf("loan references missing row: %w", err)
			}
		}
		return fmt.Errorf("failed to insert loan record: %w", err)
	}

	return nil
}

// GetLoan implements RepositoryInterface.GetLoan
func (r *postgresRepository) GetLoan(ctx context.Context, id int64) (*model.LoanRecord, error) {
	query := "SELECT " + recordColumns + " FROM records WHERE record_id = $1"

	var rec model.LoanRecord
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&rec.RecordID,
		&rec.StudentID,
		&rec.BookID,
		&rec.DateBorrowed,
		&rec.DateDue,
		&rec.DateReturned,
		&rec.Status,
		&rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewRecordNotFoundError(id)
		}
		return nil, fmt.Errorf("failed to get loan record: %w", err)
	}

	return &rec, nil
}

// GetLoanDetail implements RepositoryInterface.GetLoanDetail
func (r *postgresRepository) GetLoanDetail(ctx context.Context, id int64) (*model.LoanDetail, error) {
	query := "SELECT " + detailColumns + detailJoins + " WHERE r.record_id = $1"

	detail, err := scanLoanDetail(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewRecordNotFoundError(id)
		}
		return nil, fmt.Errorf("failed to get loan detail: %w", err)
	}

	return detail, nil
}

func scanLoanDetail(row pgx.Row) (*model.LoanDetail, error) {
	var d model.LoanDetail
	err := row.Scan(
		&d.RecordID,
		&d.StudentID,
		&d.BookID,
		&d.DateBorrowed,
		&d.DateDue,
		&d.DateReturned,
		&d.Status,
		&d.CreatedAt,
		&d.BookTitle,
		&d.BookAuthor,
		&d.BookISBN,
		&d.BookCategory,
		&d.StudentFirstName,
		&d.StudentLastName,
		&d.StudentEmail,
		&d.StudentCourse,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// CloseLoanTx implements RepositoryInterface.CloseLoanTx.
// The date_returned IS NULL guard makes the close idempotent at the
// row level: the second of two racing returns affects zero rows.
func (r *postgresRepository) CloseLoanTx(ctx context.Context, tx pgx.Tx, recordID int64, returnedAt time.Time) error {
	query := `
		UPDATE records
		SET date_returned = $2, status = $3
		WHERE record_id = $1 AND date_returned IS NULL
	`

	result, err := tx.Exec(ctx, query, recordID, returnedAt, model.StatusReturned)
	if err != nil {
		return fmt.Errorf("failed to close loan record: %w", err)
	}

	if result.RowsAffected() == 0 {
		var exists bool
		checkQuery := "SELECT EXISTS(SELECT 1 FROM records WHERE record_id = $1)"
		if checkErr := tx.QueryRow(ctx, checkQuery, recordID).Scan(&exists); checkErr != nil {
			return fmt.Errorf("failed to check record existence: %w", checkErr)
		}
		if !exists {
			return model.NewRecordNotFoundError(recordID)
		}
		return model.ErrAlreadyReturned
	}

	return nil
}

// FindActiveLoan implements RepositoryInterface.FindActiveLoan
func (r *postgresRepository) FindActiveLoan(ctx context.Context, studentID, bookID int64) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM records
			WHERE student_id = $1 AND book_id = $2 AND date_returned IS NULL
		)
	`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, studentID, bookID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check active loan: %w", err)
	}

	return exists, nil
}

// ListLoans implements RepositoryInterface.ListLoans
func (r *postgresRepository) ListLoans(ctx context.Context, filter model.ListLoansRequest) ([]model.LoanDetail, int, error) {
	queryBuilder := "SELECT " + detailColumns + detailJoins + " WHERE 1=1"
	countQuery := "SELECT COUNT(*) " + detailJoins + " WHERE 1=1"

	args := []interface{}{}
	argCount := 1

	if filter.Status != "" {
		cond := fmt.Sprintf(" AND r.status = $%d", argCount)
		queryBuilder += cond
		countQuery += cond
		args = append(args, filter.Status)
		argCount++
	}

	if filter.StudentID > 0 {
		cond := fmt.Sprintf(" AND r.student_id = $%d", argCount)
		queryBuilder += cond
		countQuery += cond
		args = append(args, filter.StudentID)
		argCount++
	}

	var totalCount int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count loan records: %w", err)
	}

	queryBuilder += " ORDER BY r.date_borrowed DESC, r.record_id DESC"
	offset := (filter.Page - 1) * filter.Limit
	queryBuilder += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCount, argCount+1)
	args = append(args, filter.Limit, offset)

	rows, err := r.pool.Query(ctx, queryBuilder, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list loan records: %w", err)
	}
	defer rows.Close()

	details := make([]model.LoanDetail, 0, filter.Limit)
	for rows.Next() {
		var d model.LoanDetail
		err := rows.Scan(
			&d.RecordID,
			&d.StudentID,
			&d.BookID,
			&d.DateBorrowed,
			&d.DateDue,
			&d.DateReturned,
			&d.Status,
			&d.CreatedAt,
			&d.BookTitle,
			&d.BookAuthor,
			&d.BookISBN,
			&d.BookCategory,
			&d.StudentFirstName,
			&d.StudentLastName,
			&d.StudentEmail,
			&d.StudentCourse,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan loan row: %w", err)
		}
		details = append(details, d)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating loan rows: %w", err)
	}

	return details, totalCount, nil
}

// MarkOverdueLoans implements RepositoryInterface.MarkOverdueLoans
func (r *postgresRepository) MarkOverdueLoans(ctx context.Context, asOf time.Time) (int64, error) {
	query := `
		UPDATE records
		SET status = $1
		WHERE date_returned IS NULL
		  AND status = $2
		  AND date_due < $3
	`

	result, err := r.pool.Exec(ctx, query, model.StatusOverdue, model.StatusBorrowed, asOf)
	if err != nil {
		return 0, fmt.Errorf("failed to mark overdue loans: %w", err)
	}

	return result.RowsAffected(), nil
}
