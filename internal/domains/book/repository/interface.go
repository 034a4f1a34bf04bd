package repository

import (
	"context"

	"library-backend/internal/domains/book/model"

	"github.com/jackc/pgx/v5"
)

// RepositoryInterface defines data access for books
type RepositoryInterface interface {
	Create(ctx context.Context, book *model.Book) error
	GetByID(ctx context.Context, id int64) (*model.Book, error)
	List(ctx context.Context, filter model.ListBooksRequest) ([]model.Book, int, error)
	Update(ctx context.Context, id int64, req model.UpdateBookRequest) (*model.Book, error)
	Delete(ctx context.Context, id int64) error

	CheckISBNExists(ctx context.Context, isbn string, excludeID int64) (bool, error)
	HasActiveLoans(ctx context.Context, bookID int64) (bool, error)

	// DecrementAvailable conditionally takes one copy inside the caller's
	// transaction. Returns false when no copy was available, leaving the
	// row untouched.
	DecrementAvailable(ctx context.Context, tx pgx.Tx, id int64) (bool, error)

	// IncrementAvailable gives one copy back inside the caller's
	// transaction. Never raises available_copies above total_copies.
	IncrementAvailable(ctx context.Context, tx pgx.Tx, id int64) error
}
