package model

import (
	"errors"
	"fmt"
)

var (
	// ErrBookNotFound is returned when the requested book does not exist
	ErrBookNotFound = errors.New("book not found")

	// ErrISBNAlreadyExists is returned when creating or updating a book with a duplicate ISBN
	ErrISBNAlreadyExists = errors.New("isbn already exists")

	// ErrBookHasActiveLoans is returned when deleting a book with open borrow records
	ErrBookHasActiveLoans = errors.New("cannot delete book with active borrowing records")

	// ErrBookHasLoanHistory is returned when deleting a book whose loans
	// are all closed but still on the ledger
	ErrBookHasLoanHistory = errors.New("book has borrow history")
)

// NewBookNotFoundError creates a detailed not found error
func NewBookNotFoundError(id int64) error {
	return fmt.Errorf("%w: id=%d", ErrBookNotFound, id)
}
