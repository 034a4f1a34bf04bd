package service

import (
	"context"
	"errors"
	"fmt"

	"library-backend/internal/domains/student/model"
	"library-backend/internal/domains/student/repository"
	"library-backend/internal/shared/actor"
	"library-backend/pkg/jwt"

	"golang.org/x/crypto/bcrypt"
)

// StudentService implements ServiceInterface
type StudentService struct {
	repo       repository.RepositoryInterface
	jwtManager *jwt.Manager
}

// NewService creates a student service with its dependencies
func NewService(repo repository.RepositoryInterface, jwtManager *jwt.Manager) ServiceInterface {
	return &StudentService{
		repo:       repo,
		jwtManager: jwtManager,
	}
}

// ListStudents returns students matching the filter plus the total match count
func (s *StudentService) ListStudents(ctx context.Context, req model.ListStudentsRequest) ([]model.StudentResponse, int, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}

	students, total, err := s.repo.List(ctx, req)
	if err != nil {
		return nil, 0, fmt.Errorf("list students error: %w", err)
	}

	responses := make([]model.StudentResponse, len(students))
	for i, st := range students {
		responses[i] = model.ToStudentResponse(st)
	}

	return responses, total, nil
}

// GetStudent returns a single student by id
func (s *StudentService) GetStudent(ctx context.Context, id int64) (*model.StudentResponse, error) {
	student, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := model.ToStudentResponse(*student)
	return &resp, nil
}

// CreateStudent registers a new student with a bcrypt password hash.
// Role defaults to student unless admin is requested explicitly.
func (s *StudentService) CreateStudent(ctx context.Context, req model.CreateStudentRequest) (*model.StudentResponse, error) {
	exists, err := s.repo.CheckEmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, model.ErrEmailAlreadyExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := actor.RoleStudent
	if req.Role == actor.RoleAdmin {
		role = actor.RoleAdmin
	}

	student := &model.Student{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Year:      req.Year,
		Course:    req.Course,
		Email:     req.Email,
		Password:  string(hashed),
		Role:      role,
	}

	if err := s.repo.Create(ctx, student); err != nil {
		return nil, err
	}

	resp := model.ToStudentResponse(*student)
	return &resp, nil
}

// Login verifies credentials and issues a token pair.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *StudentService) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	student, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, model.ErrStudentNotFound) {
			return nil, model.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(student.Password), []byte(req.Password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	return s.issueTokens(*student)
}

// Refresh exchanges a valid refresh token for a fresh token pair
func (s *StudentService) Refresh(ctx context.Context, refreshToken string) (*model.LoginResponse, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, model.ErrInvalidCredentials
	}

	// Re-read the student so a role change takes effect on refresh
	student, err := s.repo.GetByID(ctx, claims.StudentID)
	if err != nil {
		if errors.Is(err, model.ErrStudentNotFound) {
			return nil, model.ErrInvalidCredentials
		}
		return nil, err
	}

	return s.issueTokens(*student)
}

func (s *StudentService) issueTokens(student model.Student) (*model.LoginResponse, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(student.StudentID, student.Email, student.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(student.StudentID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &model.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Student:      model.ToStudentResponse(student),
	}, nil
}
