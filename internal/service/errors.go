package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aanand-mishra/student-registry/internal/storage"
	"github.com/aanand-mishra/student-registry/internal/validation"
)

var (
	// ErrStudentNotFound is returned when no student has the requested id.
	// It wraps storage.ErrNotFound.
	ErrStudentNotFound = fmt.Errorf("student not found: %w", storage.ErrNotFound)

	// ErrStudentConflict is returned when a write lost a race against another
	// request holding the same RA, CPF or email.
	ErrStudentConflict = fmt.Errorf("student already registered: %w", storage.ErrConflict)

	ErrEmailInUse         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// ValidationError carries the issues that stopped a create or update.
type ValidationError struct {
	Report validation.Report
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Report.Messages(), "; ")
}
