package main

import (
	"github.com/hibiken/asynq"

	loanjob "library-backend/internal/domains/loan/job"
	"library-backend/internal/shared"
	"library-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	syncOverdueLoans *loanjob.SyncOverdueLoansHandler
}

// initializeHandlers creates all job handlers with their dependencies
func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		syncOverdueLoans: loanjob.NewSyncOverdueLoansHandler(c.LoanRepo),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeSyncOverdueLoans, h.syncOverdueLoans.ProcessTask)
}
