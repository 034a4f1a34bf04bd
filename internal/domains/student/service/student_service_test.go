package service

import (
	"context"
	"testing"
	"time"

	"library-backend/internal/domains/student/model"
	"library-backend/internal/shared/actor"
	"library-backend/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type mockStudentRepo struct {
	createFn           func(ctx context.Context, student *model.Student) error
	getByIDFn          func(ctx context.Context, id int64) (*model.Student, error)
	getByEmailFn       func(ctx context.Context, email string) (*model.Student, error)
	checkEmailExistsFn func(ctx context.Context, email string) (bool, error)
}

func (m *mockStudentRepo) Create(ctx context.Context, student *model.Student) error {
	if m.createFn == nil {
		student.StudentID = 1
		return nil
	}
	return m.createFn(ctx, student)
}

func (m *mockStudentRepo) GetByID(ctx context.Context, id int64) (*model.Student, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockStudentRepo) GetByEmail(ctx context.Context, email string) (*model.Student, error) {
	return m.getByEmailFn(ctx, email)
}

func (m *mockStudentRepo) List(ctx context.Context, filter model.ListStudentsRequest) ([]model.Student, int, error) {
	return nil, 0, nil
}

func (m *mockStudentRepo) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	if m.checkEmailExistsFn == nil {
		return false, nil
	}
	return m.checkEmailExistsFn(ctx, email)
}

func testJWTManager() *jwt.Manager {
	return jwt.NewManager("test-secret", 15*time.Minute, 24*time.Hour)
}

func hashPassword(t *testing.T, plain string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hashed)
}

func TestCreateStudent_HashesPasswordAndDefaultsRole(t *testing.T) {
	var saved *model.Student

	repo := &mockStudentRepo{
		createFn: func(ctx context.Context, student *model.Student) error {
			student.StudentID = 5
			saved = student
			return nil
		},
	}

	svc := NewService(repo, testJWTManager())

	resp, err := svc.CreateStudent(context.Background(), model.CreateStudentRequest{
		FirstName: "Ana",
		LastName:  "Reyes",
		Year:      "3rd",
		Course:    "BSCS",
		Email:     "ana@example.com",
		Password:  "secret123",
	})
	require.NoError(t, err)

	require.NotNil(t, saved)
	assert.Equal(t, actor.RoleStudent, saved.Role)
	assert.NotEqual(t, "secret123", saved.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.Password), []byte("secret123")))

	assert.Equal(t, int64(5), resp.StudentID)
	assert.Equal(t, "ana@example.com", resp.Email)
}

func TestCreateStudent_EmailTaken(t *testing.T) {
	repo := &mockStudentRepo{
		checkEmailExistsFn: func(ctx context.Context, email string) (bool, error) {
			return true, nil
		},
	}

	svc := NewService(repo, testJWTManager())

	_, err := svc.CreateStudent(context.Background(), model.CreateStudentRequest{
		Email:    "taken@example.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, model.ErrEmailAlreadyExists)
}

func TestCreateStudent_AdminRoleHonored(t *testing.T) {
	var saved *model.Student

	repo := &mockStudentRepo{
		createFn: func(ctx context.Context, student *model.Student) error {
			saved = student
			return nil
		},
	}

	svc := NewService(repo, testJWTManager())

	_, err := svc.CreateStudent(context.Background(), model.CreateStudentRequest{
		Email:    "librarian@example.com",
		Password: "secret123",
		Role:     actor.RoleAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, actor.RoleAdmin, saved.Role)
}

func TestLogin_Success(t *testing.T) {
	repo := &mockStudentRepo{
		getByEmailFn: func(ctx context.Context, email string) (*model.Student, error) {
			return &model.Student{
				StudentID: 7,
				Email:     email,
				Password:  hashPassword(t, "secret123"),
				Role:      actor.RoleStudent,
			}, nil
		},
	}

	svc := NewService(repo, testJWTManager())

	resp, err := svc.Login(context.Background(), model.LoginRequest{
		Email:    "ana@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, int64(7), resp.Student.StudentID)

	// Issued tokens must round-trip through the same manager
	claims, err := testJWTManager().ValidateAccessToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.StudentID)
	assert.Equal(t, actor.RoleStudent, claims.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := &mockStudentRepo{
		getByEmailFn: func(ctx context.Context, email string) (*model.Student, error) {
			return &model.Student{
				StudentID: 7,
				Email:     email,
				Password:  hashPassword(t, "secret123"),
			}, nil
		},
	}

	svc := NewService(repo, testJWTManager())

	_, err := svc.Login(context.Background(), model.LoginRequest{
		Email:    "ana@example.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestLogin_UnknownEmailIndistinguishable(t *testing.T) {
	repo := &mockStudentRepo{
		getByEmailFn: func(ctx context.Context, email string) (*model.Student, error) {
			return nil, model.ErrStudentNotFound
		},
	}

	svc := NewService(repo, testJWTManager())

	_, err := svc.Login(context.Background(), model.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestRefresh_ReloadsStudent(t *testing.T) {
	manager := testJWTManager()
	refreshToken, err := manager.GenerateRefreshToken(7)
	require.NoError(t, err)

	repo := &mockStudentRepo{
		getByIDFn: func(ctx context.Context, id int64) (*model.Student, error) {
			// Role changed since the refresh token was issued
			return &model.Student{StudentID: id, Email: "ana@example.com", Role: actor.RoleAdmin}, nil
		},
	}

	svc := NewService(repo, manager)

	resp, err := svc.Refresh(context.Background(), refreshToken)
	require.NoError(t, err)

	claims, err := manager.ValidateAccessToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, actor.RoleAdmin, claims.Role)
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	manager := testJWTManager()
	accessToken, err := manager.GenerateAccessToken(7, "ana@example.com", actor.RoleStudent)
	require.NoError(t, err)

	svc := NewService(&mockStudentRepo{}, manager)

	_, err = svc.Refresh(context.Background(), accessToken)
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}
