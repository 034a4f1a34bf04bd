package service

import (
	"context"

	"library-backend/internal/domains/book/model"
)

// ServiceInterface defines business operations for books
type ServiceInterface interface {
	ListBooks(ctx context.Context, req model.ListBooksRequest) ([]model.BookResponse, int, error)
	GetBook(ctx context.Context, id int64) (*model.BookResponse, error)
	CreateBook(ctx context.Context, req model.CreateBookRequest) (*model.BookResponse, error)
	UpdateBook(ctx context.Context, id int64, req model.UpdateBookRequest) (*model.BookResponse, error)
	DeleteBook(ctx context.Context, id int64) error
}
