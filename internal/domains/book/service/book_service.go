package service

import (
	"context"
	"fmt"
	"time"

	"library-backend/internal/domains/book/model"
	"library-backend/internal/domains/book/repository"
	"library-backend/pkg/cache"
	"library-backend/pkg/logger"
)

const bookDetailCacheTTL = 10 * time.Minute

// BookService implements ServiceInterface
type BookService struct {
	repo  repository.RepositoryInterface
	cache cache.Cache
}

// NewService creates a book service with its dependencies
func NewService(repo repository.RepositoryInterface, cache cache.Cache) ServiceInterface {
	return &BookService{
		repo:  repo,
		cache: cache,
	}
}

// ListBooks returns books matching the filter plus the total match count
func (s *BookService) ListBooks(ctx context.Context, req model.ListBooksRequest) ([]model.BookResponse, int, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}

	books, total, err := s.repo.List(ctx, req)
	if err != nil {
		return nil, 0, fmt.Errorf("list books error: %w", err)
	}

	responses := make([]model.BookResponse, len(books))
	for i, b := range books {
		responses[i] = model.ToBookResponse(b)
	}

	return responses, total, nil
}

// GetBook returns a single book, serving from cache when possible
func (s *BookService) GetBook(ctx context.Context, id int64) (*model.BookResponse, error) {
	cacheKey := model.BookDetailCacheKey(id)

	var cached model.BookResponse
	found, err := s.cache.Get(ctx, cacheKey, &cached)
	if found {
		return &cached, nil
	}
	if err != nil {
		logger.Warn("Book cache read failed", map[string]interface{}{
			"key":   cacheKey,
			"error": err.Error(),
		})
	}

	book, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := model.ToBookResponse(*book)
	if err := s.cache.Set(ctx, cacheKey, resp, bookDetailCacheTTL); err != nil {
		logger.Warn("Book cache write failed", map[string]interface{}{
			"key":   cacheKey,
			"error": err.Error(),
		})
	}

	return &resp, nil
}

// CreateBook validates ISBN uniqueness and stores the new book
func (s *BookService) CreateBook(ctx context.Context, req model.CreateBookRequest) (*model.BookResponse, error) {
	if req.ISBN != nil && *req.ISBN != "" {
		exists, err := s.repo.CheckISBNExists(ctx, *req.ISBN, 0)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, model.ErrISBNAlreadyExists
		}
	}

	book := &model.Book{
		Title:         req.Title,
		Author:        req.Author,
		YearPublished: req.YearPublished,
		ISBN:          req.ISBN,
		TotalCopies:   req.TotalCopies,
		Category:      req.Category,
	}

	if err := s.repo.Create(ctx, book); err != nil {
		return nil, err
	}

	resp := model.ToBookResponse(*book)
	return &resp, nil
}

// UpdateBook applies a partial update and refreshes the detail cache
func (s *BookService) UpdateBook(ctx context.Context, id int64, req model.UpdateBookRequest) (*model.BookResponse, error) {
	if req.ISBN != nil && *req.ISBN != "" {
		exists, err := s.repo.CheckISBNExists(ctx, *req.ISBN, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, model.ErrISBNAlreadyExists
		}
	}

	book, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Delete(ctx, model.BookDetailCacheKey(id)); err != nil {
		logger.Warn("Book cache invalidation failed", map[string]interface{}{
			"book_id": id,
			"error":   err.Error(),
		})
	}

	resp := model.ToBookResponse(*book)
	return &resp, nil
}

// DeleteBook removes a book unless copies are still out on loan
func (s *BookService) DeleteBook(ctx context.Context, id int64) error {
	hasActive, err := s.repo.HasActiveLoans(ctx, id)
	if err != nil {
		return err
	}
	if hasActive {
		return model.ErrBookHasActiveLoans
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.cache.Delete(ctx, model.BookDetailCacheKey(id)); err != nil {
		logger.Warn("Book cache invalidation failed", map[string]interface{}{
			"book_id": id,
			"error":   err.Error(),
		})
	}

	return nil
}
