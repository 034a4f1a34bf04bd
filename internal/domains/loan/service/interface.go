package service

import (
	"context"

	"library-backend/internal/domains/loan/model"
	"library-backend/internal/shared/actor"
)

// ServiceInterface defines the lending operations
type ServiceInterface interface {
	Borrow(ctx context.Context, current actor.Actor, req model.BorrowRequest) (*model.LoanResponse, error)
	Return(ctx context.Context, current actor.Actor, recordID int64) (*model.ReturnResponse, error)
	ListLoans(ctx context.Context, current actor.Actor, req model.ListLoansRequest) ([]model.LoanResponse, int, error)
}
