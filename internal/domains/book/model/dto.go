package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CreateBookRequest is the payload for POST /books
type CreateBookRequest struct {
	Title         string  `json:"title"`
	Author        string  `json:"author"`
	YearPublished int     `json:"year_published"`
	ISBN          *string `json:"isbn"`
	TotalCopies   int     `json:"total_copies"`
	Category      *string `json:"category"`
}

func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Author, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.YearPublished, validation.Required, validation.Min(1000), validation.Max(9999)),
		validation.Field(&r.ISBN, validation.Length(0, 20)),
		validation.Field(&r.TotalCopies, validation.Required, validation.Min(1)),
		validation.Field(&r.Category, validation.Length(0, 100)),
	)
}

// UpdateBookRequest is the payload for PUT /books/:id.
// Nil fields are left unchanged.
type UpdateBookRequest struct {
	Title         *string `json:"title"`
	Author        *string `json:"author"`
	YearPublished *int    `json:"year_published"`
	ISBN          *string `json:"isbn"`
	TotalCopies   *int    `json:"total_copies"`
	Category      *string `json:"category"`
}

func (r UpdateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&r.Author, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&r.YearPublished, validation.Min(1000), validation.Max(9999)),
		validation.Field(&r.ISBN, validation.Length(0, 20)),
		validation.Field(&r.TotalCopies, validation.Min(0)),
		validation.Field(&r.Category, validation.Length(0, 100)),
	)
}

// IsEmpty reports whether the update carries no fields at all
func (r UpdateBookRequest) IsEmpty() bool {
	return r.Title == nil && r.Author == nil && r.YearPublished == nil &&
		r.ISBN == nil && r.TotalCopies == nil && r.Category == nil
}

// ListBooksRequest holds query parameters for GET /books
type ListBooksRequest struct {
	Search        string
	Category      string
	AvailableOnly bool
	Page          int
	Limit         int
}

// BookResponse is the API representation of a book
type BookResponse struct {
	BookID          int64     `json:"book_id"`
	Title           string    `json:"title"`
	Author          string    `json:"author"`
	YearPublished   int       `json:"year_published"`
	ISBN            *string   `json:"isbn"`
	AvailableCopies int       `json:"available_copies"`
	TotalCopies     int       `json:"total_copies"`
	Category        *string   `json:"category"`
	CreatedAt       time.Time `json:"created_at"`
}

// ToBookResponse maps a Book entity to its API DTO
func ToBookResponse(b Book) BookResponse {
	return BookResponse{
		BookID:          b.BookID,
		Title:           b.Title,
		Author:          b.Author,
		YearPublished:   b.YearPublished,
		ISBN:            b.ISBN,
		AvailableCopies: b.AvailableCopies,
		TotalCopies:     b.TotalCopies,
		Category:        b.Category,
		CreatedAt:       b.CreatedAt,
	}
}
