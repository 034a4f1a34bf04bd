package repository

import (
	"context"
	"errors"
	"fmt"

	"library-backend/internal/domains/student/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const studentColumns = `
	student_id, first_name, last_name, year, course,
	email, password_hash, role, created_at
`

// postgresRepository implements RepositoryInterface
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository
func NewRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{
		pool: pool,
	}
}

// Create implements RepositoryInterface.Create
func (r *postgresRepository) Create(ctx context.Context, student *model.Student) error {
	query := `
		INSERT INTO students (
			first_name, last_name, year, course, email, password_hash, role
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)
		RETURNING student_id, created_at
	`

	err := r.pool.QueryRow(ctx, query,
		student.FirstName,
		student.LastName,
		student.Year,
		student.Course,
		student.Email,
		student.Password,
		student.Role,
	).Scan(&student.StudentID, &student.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return model.ErrEmailAlreadyExists
		}
		return fmt.Errorf("failed to insert student: %w", err)
	}

	return nil
}

// GetByID implements RepositoryInterface.GetByID
func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.Student, error) {
	row := r.pool.QueryRow(ctx,
		"SELECT "+studentColumns+" FROM students WHERE student_id = $1", id)

	student, err := scanStudent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewStudentNotFoundError(id)
		}
		return nil, fmt.Errorf("failed to get student by id: %w", err)
	}

	return student, nil
}

// GetByEmail implements RepositoryInterface.GetByEmail
func (r *postgresRepository) GetByEmail(ctx context.Context, email string) (*model.Student, error) {
	row := r.pool.QueryRow(ctx,
		"SELECT "+studentColumns+" FROM students WHERE email = $1", email)

	student, err := scanStudent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to get student by email: %w", err)
	}

	return student, nil
}

func scanStudent(row pgx.Row) (*model.Student, error) {
	var s model.Student
	err := row.Scan(
		&s.StudentID,
		&s.FirstName,
		&s.LastName,
		&s.Year,
		&s.Course,
		&s.Email,
		&s.Password,
		&s.Role,
		&s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// List implements RepositoryInterface.List
func (r *postgresRepository) List(ctx context.Context, filter model.ListStudentsRequest) ([]model.Student, int, error) {
	queryBuilder := "SELECT " + studentColumns + " FROM students WHERE 1=1"
	countQuery := "SELECT COUNT(*) FROM students WHERE 1=1"

	args := []interface{}{}
	argCount := 1

	if filter.Search != "" {
		cond := fmt.Sprintf(" AND (first_name ILIKE $%d OR last_name ILIKE $%d OR email ILIKE $%d)", argCount, argCount, argCount)
		queryBuilder += cond
		countQuery += cond
		args = append(args, "%"+filter.Search+"%")
		argCount++
	}

	if filter.Course != "" {
		cond := fmt.Sprintf(" AND course = $%d", argCount)
		queryBuilder += cond
		countQuery += cond
		args = append(args, filter.Course)
		argCount++
	}

	if filter.Year != "" {
		cond := fmt.Sprintf(" AND year = $%d", argCount)
		queryBuilder += cond
		countQuery += cond
		args = append(args, filter.Year)
		argCount++
	}

	var totalCount int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count students: %w", err)
	}

	queryBuilder += " ORDER BY first_name ASC, last_name ASC, student_id ASC"
	offset := (filter.Page - 1) * filter.Limit
	queryBuilder += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCount, argCount+1)
	args = append(args, filter.Limit, offset)

	rows, err := r.pool.Query(ctx, queryBuilder, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list students: %w", err)
	}
	defer rows.Close()

	students := make([]model.Student, 0, filter.Limit)
	for rows.Next() {
		var s model.Student
		err := rows.Scan(
			&s.StudentID,
			&s.FirstName,
			&s.LastName,
			&s.Year,
			&s.Course,
			&s.Email,
			&s.Password,
			&s.Role,
			&s.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan student row: %w", err)
		}
		students = append(students, s)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating student rows: %w", err)
	}

	return students, totalCount, nil
}

// CheckEmailExists implements RepositoryInterface.CheckEmailExists
func (r *postgresRepository) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	query := "SELECT EXISTS(SELECT 1 FROM students WHERE email = $1)"

	var exists bool
	if err := r.pool.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}

	return exists, nil
}
