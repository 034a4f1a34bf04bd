package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestEffectiveStatus(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

	t.Run("returned wins over everything", func(t *testing.T) {
		returned := date(2024, 3, 10)
		rec := LoanRecord{
			DateDue:      date(2024, 3, 1), // long past due
			DateReturned: &returned,
		}
		assert.Equal(t, StatusReturned, rec.EffectiveStatus(now))
	})

	t.Run("overdue when due date is a past day", func(t *testing.T) {
		rec := LoanRecord{DateDue: date(2024, 3, 14)}
		assert.Equal(t, StatusOverdue, rec.EffectiveStatus(now))
	})

	t.Run("due today is still borrowed", func(t *testing.T) {
		rec := LoanRecord{DateDue: date(2024, 3, 15)}
		assert.Equal(t, StatusBorrowed, rec.EffectiveStatus(now))
	})

	t.Run("due in the future is borrowed", func(t *testing.T) {
		rec := LoanRecord{DateDue: date(2024, 3, 29)}
		assert.Equal(t, StatusBorrowed, rec.EffectiveStatus(now))
	})

	t.Run("stored status column is ignored", func(t *testing.T) {
		rec := LoanRecord{
			DateDue: date(2024, 3, 1),
			Status:  StatusBorrowed, // stale, worker has not run yet
		}
		assert.Equal(t, StatusOverdue, rec.EffectiveStatus(now))
	})
}

func TestIsActive(t *testing.T) {
	returned := date(2024, 3, 10)

	assert.True(t, (&LoanRecord{}).IsActive())
	assert.False(t, (&LoanRecord{DateReturned: &returned}).IsActive())
}
