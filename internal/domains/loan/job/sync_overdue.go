package job

import (
	"context"
	"fmt"
	"time"

	"library-backend/internal/domains/loan/repository"
	"library-backend/pkg/logger"

	"github.com/hibiken/asynq"
)

// SyncOverdueLoansPayload is the (empty) task payload
type SyncOverdueLoansPayload struct{}

// SyncOverdueLoansHandler flips stored loan status to overdue for open
// loans past their due date. Read paths derive status themselves; this
// only keeps the indexed status column useful for filtering.
type SyncOverdueLoansHandler struct {
	loanRepo repository.RepositoryInterface
}

func NewSyncOverdueLoansHandler(loanRepo repository.RepositoryInterface) *SyncOverdueLoansHandler {
	return &SyncOverdueLoansHandler{
		loanRepo: loanRepo,
	}
}

func (h *SyncOverdueLoansHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	logger.Info("Starting SyncOverdueLoans job", nil)

	updated, err := h.loanRepo.MarkOverdueLoans(ctx, todayUTC())
	if err != nil {
		return fmt.Errorf("sync overdue loans: %w", err)
	}

	logger.Info("Completed SyncOverdueLoans job", map[string]interface{}{
		"updated_count": updated,
	})
	return nil
}

// todayUTC is midnight of the current UTC calendar day. The scheduler
// runs in UTC, so due-date comparisons use the same day boundary.
func todayUTC() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
