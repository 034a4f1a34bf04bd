package job

import (
	"context"
	"testing"
	"time"

	"library-backend/internal/domains/loan/model"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockLoanRepo struct {
	markOverdueFn func(ctx context.Context, asOf time.Time) (int64, error)
}

func (m *mockLoanRepo) CreateLoanTx(ctx context.Context, tx pgx.Tx, record *model.LoanRecord) error {
	return nil
}

func (m *mockLoanRepo) GetLoan(ctx context.Context, id int64) (*model.LoanRecord, error) {
	return nil, nil
}

func (m *mockLoanRepo) GetLoanDetail(ctx context.Context, id int64) (*model.LoanDetail, error) {
	return nil, nil
}

func (m *mockLoanRepo) CloseLoanTx(ctx context.Context, tx pgx.Tx, recordID int64, returnedAt time.Time) error {
	return nil
}

func (m *mockLoanRepo) FindActiveLoan(ctx context.Context, studentID, bookID int64) (bool, error) {
	return false, nil
}

func (m *mockLoanRepo) ListLoans(ctx context.Context, filter model.ListLoansRequest) ([]model.LoanDetail, int, error) {
	return nil, 0, nil
}

func (m *mockLoanRepo) MarkOverdueLoans(ctx context.Context, asOf time.Time) (int64, error) {
	return m.markOverdueFn(ctx, asOf)
}

func TestSyncOverdueLoans_UsesUTCDayBoundary(t *testing.T) {
	var captured time.Time

	handler := NewSyncOverdueLoansHandler(&mockLoanRepo{
		markOverdueFn: func(ctx context.Context, asOf time.Time) (int64, error) {
			captured = asOf
			return 3, nil
		},
	})

	task := asynq.NewTask("loan:sync_overdue", nil)
	err := handler.ProcessTask(context.Background(), task)
	require.NoError(t, err)

	assert.Equal(t, time.UTC, captured.Location())
	assert.Equal(t, 0, captured.Hour())
	assert.Equal(t, 0, captured.Minute())
	assert.Equal(t, 0, captured.Second())
	assert.Equal(t, 0, captured.Nanosecond())

	// Midnight of the current UTC day, not some other epoch boundary
	now := time.Now().UTC()
	assert.WithinDuration(t, now, captured, 24*time.Hour)
	assert.False(t, captured.After(now))
}
