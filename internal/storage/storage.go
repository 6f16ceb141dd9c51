// Package storage defines the Storage interface, the contract that any
// database backend must satisfy to work with this application.
//
// Services depend only on these interfaces, so a backend can be swapped
// by implementing them and changing one line in main.go, and tests can
// pass a fake instead of a real database.
//
// Backends report facts about records through the sentinel errors below
// (optionally wrapped). Services translate them into domain errors.
package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/aanand-mishra/student-registry/internal/types"
)

var (
	// ErrNotFound means no record matched the lookup.
	ErrNotFound = errors.New("record not found")

	// ErrConflict means a write hit a uniqueness constraint. It is the last
	// line of defence when two requests pass the uniqueness checks at once.
	ErrConflict = errors.New("record conflicts with an existing one")
)

// StudentStorage persists student records.
//
// RA and CPF are stored and matched normalized; email matching is
// case-insensitive.
type StudentStorage interface {
	// CreateStudent inserts a new record. Returns ErrConflict when RA, CPF
	// or email is already taken.
	CreateStudent(ctx context.Context, student types.Student) error

	// GetStudentByID returns ErrNotFound if no student has that id.
	GetStudentByID(ctx context.Context, id uuid.UUID) (types.Student, error)

	// GetStudents returns every student, oldest first.
	// Returns an empty slice (not nil) if there are no students.
	GetStudents(ctx context.Context) ([]types.Student, error)

	// UpdateStudent rewrites name, email and updated_at of student.ID.
	UpdateStudent(ctx context.Context, student types.Student) error

	// DeleteStudentByID removes a student record permanently.
	DeleteStudentByID(ctx context.Context, id uuid.UUID) error

	ExistsByRA(ctx context.Context, ra string) (bool, error)
	ExistsByCPF(ctx context.Context, cpf string) (bool, error)

	// ExistsByEmail ignores the record excludeID; pass uuid.Nil to check all.
	ExistsByEmail(ctx context.Context, email string, excludeID uuid.UUID) (bool, error)
}

// UserStorage persists API accounts.
type UserStorage interface {
	CreateUser(ctx context.Context, user types.User) error
	GetUserByEmail(ctx context.Context, email string) (types.User, error)
	ExistsUserByEmail(ctx context.Context, email string) (bool, error)
}

// Storage is the full database contract.
type Storage interface {
	StudentStorage
	UserStorage
	Close() error
}
