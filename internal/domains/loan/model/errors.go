package model

import (
	"errors"
	"fmt"
)

var (
	// ErrRecordNotFound is returned when the requested loan record does not exist
	ErrRecordNotFound = errors.New("record not found")

	// ErrBookUnavailable is returned when no copy is available to borrow,
	// including when a concurrent borrow takes the last copy mid-flight
	ErrBookUnavailable = errors.New("book is not available for borrowing")

	// ErrDuplicateActiveLoan is returned when the student already has an
	// open loan for the same book
	ErrDuplicateActiveLoan = errors.New("student already has this book borrowed")

	// ErrAlreadyReturned is returned when closing a loan that is closed
	ErrAlreadyReturned = errors.New("book is already returned")

	// ErrNotRecordOwner is returned when a student acts on another
	// student's loan
	ErrNotRecordOwner = errors.New("you can only return your own books")
)

// NewRecordNotFoundError creates a detailed not found error
func NewRecordNotFoundError(id int64) error {
	return fmt.Errorf("%w: id=%d", ErrRecordNotFound, id)
}
