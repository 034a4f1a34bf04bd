package service

import (
	"context"

	"library-backend/internal/domains/student/model"
)

// ServiceInterface defines business operations for students and auth
type ServiceInterface interface {
	ListStudents(ctx context.Context, req model.ListStudentsRequest) ([]model.StudentResponse, int, error)
	GetStudent(ctx context.Context, id int64) (*model.StudentResponse, error)
	CreateStudent(ctx context.Context, req model.CreateStudentRequest) (*model.StudentResponse, error)

	Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*model.LoginResponse, error)
}
