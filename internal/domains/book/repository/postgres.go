package repository

import (
	"context"
	"errors"
	"fmt"

	"library-backend/internal/domains/book/model"
	"library-backend/pkg/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bookColumns = `
	book_id, title, author, year_published, isbn,
	available_copies, total_copies, category, created_at, updated_at
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

// Create implements RepositoryInterface.Create.
// New books start with all copies available.
func (r *postgresRepository) Create(ctx context.Context, book *model.Book) error {
	query := `
		INSERT INTO books (
			title, author, year_published, isbn,
			available_copies, total_copies, category
		) VALUES (
			$1, $2, $3, $4, $5, $5, $6
		)
		RETURNING book_id, available_copies, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		book.Title,
		book.Author,
		book.YearPublished,
		book.ISBN,
		book.TotalCopies,
		book.Category,
	).Scan(&book.BookID, &book.AvailableCopies, &book.CreatedAt, &book.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return model.ErrISBNAlreadyExists
		}
		return fmt.Errorf("failed to insert book: %w", err)
	}

	return nil
}

// GetByID implements RepositoryInterface.GetByID
func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.Book, error) {
	return scanBook(r.pool.QueryRow(ctx,
		"SELECT "+bookColumns+" FROM books WHERE book_id = $1", id), id)
}

func scanBook(row pgx.Row, id int64) (*model.Book, error) {
	var b model.Book
	err := row.Scan(
		&b.BookID,
		&b.Title,
		&b.Author,
		&b.YearPublished,
		&b.ISBN,
		&b.AvailableCopies,
		&b.TotalCopies,
		&b.Category,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewBookNotFoundError(id)
		}
		return nil, fmt.Errorf("failed to get book by id: %w", err)
	}
	return &b, nil
}

// List implements RepositoryInterface.List
func (r *postgresRepository) List(ctx context.Context, filter model.ListBooksRequest) ([]model.Book, int, error) {
	queryBuilder := "SELECT " + bookColumns + " FROM books WHERE 1=1"
	countQuery := "SELECT COUNT(*) FROM books WHERE 1=1"

	args := []interface{}{}
	argCount := 1

	if filter.Search != "" {
		cond := fmt.Sprintf(" AND (title ILIKE $%d OR author ILIKE $%d OR isbn ILIKE $%d)", argCount, argCount, argCount)
		queryBuilder += cond
		countQuery += cond
		args = append(args, "%"+filter.Search+"%")
		argCount++
	}

	if filter.Category != "" {
		cond := fmt.Sprintf(" AND category = $%d", argCount)
		queryBuilder += cond
		countQuery += cond
		args = append(args, filter.Category)
		argCount++
	}

	if filter.AvailableOnly {
		queryBuilder += " AND available_copies > 0"
		countQuery += " AND available_copies > 0"
	}

	var totalCount int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count books: %w", err)
	}

	queryBuilder += " ORDER BY title ASC, book_id ASC"
	offset := (filter.Page - 1) * filter.Limit
	queryBuilder += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCount, argCount+1)
	args = append(args, filter.Limit, offset)

	rows, err := r.pool.Query(ctx, queryBuilder, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	books := make([]model.Book, 0, filter.Limit)
	for rows.Next() {
		var b model.Book
		err := rows.Scan(
			&b.BookID,
			&b.Title,
			&b.Author,
			&b.YearPublished,
			&b.ISBN,
			&b.AvailableCopies,
			&b.TotalCopies,
			&b.Category,
			&b.CreatedAt,
			&b.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan book row: %w", err)
		}
		books = append(books, b)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating book rows: %w", err)
	}

	return books, totalCount, nil
}

// Update implements RepositoryInterface.Update with a dynamic field list.
// When total_copies changes, available_copies is recomputed in the same
// statement from the copies currently out on loan, clamped at zero.
func (r *postgresRepository) Update(ctx context.Context, id int64, req model.UpdateBookRequest) (*model.Book, error) {
	setClauses := []string{}
	args := []interface{}{}
	argCount := 1

	addSet := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argCount))
		args = append(args, value)
		argCount++
	}

	if req.Title != nil {
		addSet("title", *req.Title)
	}
	if req.Author != nil {
		addSet("author", *req.Author)
	}
	if req.YearPublished != nil {
		addSet("year_published", *req.YearPublished)
	}
	if req.ISBN != nil {
		addSet("isbn", *req.ISBN)
	}
	if req.Category != nil {
		addSet("category", *req.Category)
	}
	if req.TotalCopies != nil {
		// available = new_total - borrowed, never below zero.
		// total_copies and available_copies on the right-hand side refer
		// to the pre-update row, so this stays a single atomic statement.
		setClauses = append(setClauses, fmt.Sprintf(
			"available_copies = GREATEST(0, $%d - (total_copies - available_copies))", argCount))
		args = append(args, *req.TotalCopies)
		argCount++
		addSet("total_copies", *req.TotalCopies)
	}

	if len(setClauses) == 0 {
		return r.GetByID(ctx, id)
	}

	query := "UPDATE books SET "
	for i, clause := range setClauses {
		if i > 0 {
			query += ", "
		}
		query += clause
	}
	query += fmt.Sprintf(", updated_at = NOW() WHERE book_id = $%d RETURNING %s", argCount, bookColumns)
	args = append(args, id)

	book, err := scanBook(r.pool.QueryRow(ctx, query, args...), id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, model.ErrISBNAlreadyExists
		}
		return nil, err
	}

	return book, nil
}

// Delete implements RepositoryInterface.Delete
func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, "DELETE FROM books WHERE book_id = $1", id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			// The ledger keeps closed loans forever, so the FK also fires
			// for purely historical records. Report which case it is.
			hasActive, checkErr := r.HasActiveLoans(ctx, id)
			if checkErr != nil {
				return checkErr
			}
			if hasActive {
				return model.ErrBookHasActiveLoans
			}
			return model.ErrBookHasLoanHistory
		}
		return fmt.Errorf("failed to delete book: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.NewBookNotFoundError(id)
	}

	return nil
}

// CheckISBNExists implements RepositoryInterface.CheckISBNExists
func (r *postgresRepository) CheckISBNExists(ctx context.Context, isbn string, excludeID int64) (bool, error) {
	query := "SELECT EXISTS(SELECT 1 FROM books WHERE isbn = $1 AND book_id <> $2)"

	var exists bool
	if err := r.pool.QueryRow(ctx, query, isbn, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check isbn existence: %w", err)
	}

	return exists, nil
}

// HasActiveLoans implements RepositoryInterface.HasActiveLoans
func (r *postgresRepository) HasActiveLoans(ctx context.Context, bookID int64) (bool, error) {
	query := "SELECT EXISTS(SELECT 1 FROM records WHERE book_id = $1 AND date_returned IS NULL)"

	var exists bool
	if err := r.pool.QueryRow(ctx, query, bookID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check active loans: %w", err)
	}

	return exists, nil
}

// DecrementAvailable implements RepositoryInterface.DecrementAvailable.
// The available_copies > 0 guard makes concurrent borrows race on the
// row itself: exactly one caller wins the last copy, the rest see zero
// rows affected.
func (r *postgresRepository) DecrementAvailable(ctx context.Context, tx pgx.Tx, id int64) (bool, error) {
	query := `
		UPDATE books
		SET available_copies = available_copies - 1, updated_at = NOW()
		WHERE book_id = $1 AND available_copies > 0
	`

	result, err := tx.Exec(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("failed to decrement available copies: %w", err)
	}

	if result.RowsAffected() == 0 {
		// Either the book is gone or no copy was left. Distinguish so the
		// caller can report not-found separately.
		var exists bool
		checkQuery := "SELECT EXISTS(SELECT 1 FROM books WHERE book_id = $1)"
		if checkErr := tx.QueryRow(ctx, checkQuery, id).Scan(&exists); checkErr != nil {
			return false, fmt.Errorf("failed to check book existence: %w", checkErr)
		}
		if !exists {
			return false, model.NewBookNotFoundError(id)
		}
		return false, nil
	}

	return true, nil
}

// IncrementAvailable implements RepositoryInterface.IncrementAvailable.
// The available_copies < total_copies guard keeps returns after a
// total_copies reduction from pushing the count past the new total.
func (r *postgresRepository) IncrementAvailable(ctx context.Context, tx pgx.Tx, id int64) error {
	query := `
		UPDATE books
		SET available_copies = available_copies + 1, updated_at = NOW()
		WHERE book_id = $1 AND available_copies < total_copies
	`

	result, err := tx.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to increment available copies: %w", err)
	}

	if result.RowsAffected() == 0 {
		var exists bool
		checkQuery := "SELECT EXISTS(SELECT 1 FROM books WHERE book_id = $1)"
		if checkErr := tx.QueryRow(ctx, checkQuery, id).Scan(&exists); checkErr != nil {
			return fmt.Errorf("failed to check book existence: %w", checkErr)
		}
		if !exists {
			return model.NewBookNotFoundError(id)
		}

		// Already at total, nothing to give back. The return itself still
		// succeeds, the surplus copy is absorbed.
		logger.Warn("Available copies already at total, increment skipped", map[string]interface{}{
			"book_id": id,
		})
	}

	return nil
}
