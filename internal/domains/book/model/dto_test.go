package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func TestCreateBookRequestValidate(t *testing.T) {
	valid := CreateBookRequest{
		Title:         "The Pragmatic Programmer",
		Author:        "Hunt & Thomas",
		YearPublished: 1999,
		ISBN:          strPtr("978-0135957059"),
		TotalCopies:   3,
	}
	assert.NoError(t, valid.Validate())

	t.Run("missing title", func(t *testing.T) {
		r := valid
		r.Title = ""
		assert.Error(t, r.Validate())
	})

	t.Run("zero copies", func(t *testing.T) {
		r := valid
		r.TotalCopies = 0
		assert.Error(t, r.Validate())
	})

	t.Run("implausible year", func(t *testing.T) {
		r := valid
		r.YearPublished = 99
		assert.Error(t, r.Validate())
	})

	t.Run("isbn optional", func(t *testing.T) {
		r := valid
		r.ISBN = nil
		assert.NoError(t, r.Validate())
	})
}

func TestUpdateBookRequest(t *testing.T) {
	t.Run("empty update detected", func(t *testing.T) {
		assert.True(t, UpdateBookRequest{}.IsEmpty())
		assert.False(t, UpdateBookRequest{Title: strPtr("x")}.IsEmpty())
	})

	t.Run("nil fields pass validation", func(t *testing.T) {
		assert.NoError(t, UpdateBookRequest{}.Validate())
	})

	t.Run("blank title rejected", func(t *testing.T) {
		r := UpdateBookRequest{Title: strPtr("")}
		assert.Error(t, r.Validate())
	})

	t.Run("total copies may shrink to zero", func(t *testing.T) {
		r := UpdateBookRequest{TotalCopies: intPtr(0)}
		assert.NoError(t, r.Validate())
	})
}

func TestBookAvailability(t *testing.T) {
	b := Book{AvailableCopies: 2, TotalCopies: 5}
	assert.True(t, b.IsAvailable())
	assert.Equal(t, 3, b.BorrowedCopies())

	b.AvailableCopies = 0
	assert.False(t, b.IsAvailable())
}
