package model

import (
	"errors"
	"fmt"
)

var (
	// ErrStudentNotFound is returned when the requested student does not exist
	ErrStudentNotFound = errors.New("student not found")

	// ErrEmailAlreadyExists is returned when registering a duplicate email
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrInvalidCredentials is returned when email or password does not match
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// NewStudentNotFoundError creates a detailed not found error
func NewStudentNotFoundError(id int64) error {
	return fmt.Errorf("%w: id=%d", ErrStudentNotFound, id)
}
