package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"library-backend/internal/domains/book/model"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockBookRepo struct {
	createFn          func(ctx context.Context, book *model.Book) error
	getByIDFn         func(ctx context.Context, id int64) (*model.Book, error)
	updateFn          func(ctx context.Context, id int64, req model.UpdateBookRequest) (*model.Book, error)
	deleteFn          func(ctx context.Context, id int64) error
	checkISBNExistsFn func(ctx context.Context, isbn string, excludeID int64) (bool, error)
	hasActiveLoansFn  func(ctx context.Context, bookID int64) (bool, error)
}

func (m *mockBookRepo) Create(ctx context.Context, book *model.Book) error {
	if m.createFn == nil {
		book.BookID = 1
		return nil
	}
	return m.createFn(ctx, book)
}

func (m *mockBookRepo) GetByID(ctx context.Context, id int64) (*model.Book, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockBookRepo) List(ctx context.Context, filter model.ListBooksRequest) ([]model.Book, int, error) {
	return nil, 0, nil
}

func (m *mockBookRepo) Update(ctx context.Context, id int64, req model.UpdateBookRequest) (*model.Book, error) {
	return m.updateFn(ctx, id, req)
}

func (m *mockBookRepo) Delete(ctx context.Context, id int64) error {
	if m.deleteFn == nil {
		return nil
	}
	return m.deleteFn(ctx, id)
}

func (m *mockBookRepo) CheckISBNExists(ctx context.Context, isbn string, excludeID int64) (bool, error) {
	if m.checkISBNExistsFn == nil {
		return false, nil
	}
	return m.checkISBNExistsFn(ctx, isbn, excludeID)
}

func (m *mockBookRepo) HasActiveLoans(ctx context.Context, bookID int64) (bool, error) {
	if m.hasActiveLoansFn == nil {
		return false, nil
	}
	return m.hasActiveLoansFn(ctx, bookID)
}

func (m *mockBookRepo) DecrementAvailable(ctx context.Context, tx pgx.Tx, id int64) (bool, error) {
	return true, nil
}

func (m *mockBookRepo) IncrementAvailable(ctx context.Context, tx pgx.Tx, id int64) error {
	return nil
}

// memoryCache is a map-backed cache for exercising hit/miss paths
type memoryCache struct {
	mu      sync.Mutex
	entries map[string]model.BookResponse
	deleted []string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string]model.BookResponse)}
}

func (c *memoryCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	*dest.(*model.BookResponse) = entry
	return true, nil
}

func (c *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value.(model.BookResponse)
	return nil
}

func (c *memoryCache) Delete(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.entries, key)
	}
	c.deleted = append(c.deleted, keys...)
	return nil
}

func (c *memoryCache) Ping(ctx context.Context) error { return nil }

func strPtr(s string) *string { return &s }

func TestGetBook_CacheMissThenHit(t *testing.T) {
	repoCalls := 0
	repo := &mockBookRepo{
		getByIDFn: func(ctx context.Context, id int64) (*model.Book, error) {
			repoCalls++
			return &model.Book{BookID: id, Title: "Clean Architecture", AvailableCopies: 2, TotalCopies: 3}, nil
		},
	}

	svc := NewService(repo, newMemoryCache())

	first, err := svc.GetBook(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, "Clean Architecture", first.Title)

	second, err := svc.GetBook(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, repoCalls, "second read must come from cache")
}

func TestGetBook_NotFound(t *testing.T) {
	repo := &mockBookRepo{
		getByIDFn: func(ctx context.Context, id int64) (*model.Book, error) {
			return nil, model.NewBookNotFoundError(id)
		},
	}

	svc := NewService(repo, newMemoryCache())

	_, err := svc.GetBook(context.Background(), 99)
	assert.ErrorIs(t, err, model.ErrBookNotFound)
}

func TestCreateBook_DuplicateISBN(t *testing.T) {
	repo := &mockBookRepo{
		checkISBNExistsFn: func(ctx context.Context, isbn string, excludeID int64) (bool, error) {
			return true, nil
		},
	}

	svc := NewService(repo, newMemoryCache())

	_, err := svc.CreateBook(context.Background(), model.CreateBookRequest{
		Title:       "Duplicate",
		Author:      "Someone",
		ISBN:        strPtr("978-0134190440"),
		TotalCopies: 2,
	})
	assert.ErrorIs(t, err, model.ErrISBNAlreadyExists)
}

func TestCreateBook_NoISBNSkipsUniquenessCheck(t *testing.T) {
	repo := &mockBookRepo{
		checkISBNExistsFn: func(ctx context.Context, isbn string, excludeID int64) (bool, error) {
			t.Fatal("uniqueness check must not run without an ISBN")
			return false, nil
		},
	}

	svc := NewService(repo, newMemoryCache())

	resp, err := svc.CreateBook(context.Background(), model.CreateBookRequest{
		Title:       "No ISBN",
		Author:      "Someone",
		TotalCopies: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.BookID)
}

func TestUpdateBook_InvalidatesCache(t *testing.T) {
	repo := &mockBookRepo{
		getByIDFn: func(ctx context.Context, id int64) (*model.Book, error) {
			return &model.Book{BookID: id, Title: "Old Title"}, nil
		},
		updateFn: func(ctx context.Context, id int64, req model.UpdateBookRequest) (*model.Book, error) {
			return &model.Book{BookID: id, Title: *req.Title}, nil
		},
	}

	cache := newMemoryCache()
	svc := NewService(repo, cache)

	// Warm the cache, then update
	_, err := svc.GetBook(context.Background(), 10)
	require.NoError(t, err)

	updated, err := svc.UpdateBook(context.Background(), 10, model.UpdateBookRequest{Title: strPtr("New Title")})
	require.NoError(t, err)
	assert.Equal(t, "New Title", updated.Title)
	assert.Contains(t, cache.deleted, model.BookDetailCacheKey(10))

	_, stillCached := cache.entries[model.BookDetailCacheKey(10)]
	assert.False(t, stillCached)
}

func TestDeleteBook_BlockedByActiveLoans(t *testing.T) {
	repo := &mockBookRepo{
		hasActiveLoansFn: func(ctx context.Context, bookID int64) (bool, error) {
			return true, nil
		},
		deleteFn: func(ctx context.Context, id int64) error {
			t.Fatal("delete must not run while loans are open")
			return nil
		},
	}

	svc := NewService(repo, newMemoryCache())

	err := svc.DeleteBook(context.Background(), 10)
	assert.ErrorIs(t, err, model.ErrBookHasActiveLoans)
}

func TestDeleteBook_ReturnedHistoryBlocked(t *testing.T) {
	// All loans returned: the active-loan pre-check passes, but the
	// ledger still references the book and the delete must report the
	// history case, not pretend a loan is active.
	repo := &mockBookRepo{
		hasActiveLoansFn: func(ctx context.Context, bookID int64) (bool, error) {
			return false, nil
		},
		deleteFn: func(ctx context.Context, id int64) error {
			return model.ErrBookHasLoanHistory
		},
	}

	cache := newMemoryCache()
	svc := NewService(repo, cache)

	err := svc.DeleteBook(context.Background(), 10)
	assert.ErrorIs(t, err, model.ErrBookHasLoanHistory)
	assert.NotErrorIs(t, err, model.ErrBookHasActiveLoans)
	assert.Empty(t, cache.deleted)
}

func TestDeleteBook_Success(t *testing.T) {
	deleted := false
	repo := &mockBookRepo{
		deleteFn: func(ctx context.Context, id int64) error {
			deleted = true
			return nil
		},
	}

	cache := newMemoryCache()
	svc := NewService(repo, cache)

	err := svc.DeleteBook(context.Background(), 10)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Contains(t, cache.deleted, model.BookDetailCacheKey(10))
}
