package model

import (
	"time"
)

// Book represents the database entity for the books table
type Book struct {
	BookID          int64     `db:"book_id"`
	Title           string    `db:"title"`
	Author          string    `db:"author"`
	YearPublished   int       `db:"year_published"`
	ISBN            *string   `db:"isbn"`
	AvailableCopies int       `db:"available_copies"`
	TotalCopies     int       `db:"total_copies"`
	Category        *string   `db:"category"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

// BorrowedCopies is the number of copies currently out on loan
func (b *Book) BorrowedCopies() int {
	return b.TotalCopies - b.AvailableCopies
}

// IsAvailable reports whether at least one copy can be borrowed
func (b *Book) IsAvailable() bool {
	return b.AvailableCopies > 0
}
