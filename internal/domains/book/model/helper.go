package model

import "fmt"

// BookDetailCacheKey builds the cache key for a single book.
// Borrow and return flows delete this key after commit.
func BookDetailCacheKey(id int64) string {
	return fmt.Sprintf("books:detail:%d", id)
}
