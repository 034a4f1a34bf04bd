package repository

import (
	"context"

	"library-backend/internal/domains/student/model"
)

// RepositoryInterface defines data access for students
type RepositoryInterface interface {
	Create(ctx context.Context, student *model.Student) error
	GetByID(ctx context.Context, id int64) (*model.Student, error)
	GetByEmail(ctx context.Context, email string) (*model.Student, error)
	List(ctx context.Context, filter model.ListStudentsRequest) ([]model.Student, int, error)
	CheckEmailExists(ctx context.Context, email string) (bool, error)
}
