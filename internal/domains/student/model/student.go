package model

import (
	"time"
)

// Student represents the database entity for the students table.
// Password holds the bcrypt hash and never leaves the service layer.
type Student struct {
	StudentID int64     `db:"student_id"`
	FirstName string    `db:"first_name"`
	LastName  string    `db:"last_name"`
	Year      string    `db:"year"`
	Course    string    `db:"course"`
	Email     string    `db:"email"`
	Password  string    `db:"password_hash"`
	Role      string    `db:"role"`
	CreatedAt time.Time `db:"created_at"`
}
