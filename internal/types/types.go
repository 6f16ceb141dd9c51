// Package types holds all shared data structures (models) used across
// the application. Handlers, services, validation and storage all import
// types without importing each other.
package types

import (
	"time"

	"github.com/google/uuid"
)

// Student is a student record as stored.
//
// RA and CPF are kept normalized (digits only); Email is trimmed and
// lower-cased. All three are unique across records.
type Student struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	RA        string     `json:"ra"`
	CPF       string     `json:"cpf"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// CreateStudentRequest carries the raw fields of a new student.
//
// The validate:"..." tags drive the local-format stage of the validation
// pipeline. notblank, mailbox, ra and cpf are custom tags registered by
// validation.NewValidator.
type CreateStudentRequest struct {
	Name  string `json:"name"  validate:"notblank,max=100"`
	Email string `json:"email" validate:"required,max=100,mailbox"`
	RA    string `json:"ra"    validate:"required,max=20,ra"`
	CPF   string `json:"cpf"   validate:"required,max=14,cpf"`
}

// UpdateStudentRequest carries the mutable fields of a student. RA and CPF
// cannot change after creation.
type UpdateStudentRequest struct {
	Name  string `json:"name"  validate:"notblank,max=100"`
	Email string `json:"email" validate:"required,max=100,mailbox"`
}

// User is an account allowed to call the student API.
type User struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty"`
}

// RegisterRequest is the body of POST /api/auth/register.
// bcrypt rejects passwords longer than 72 bytes; bcryptlen checks that
// byte limit, since max counts characters.
type RegisterRequest struct {
	Name     string `json:"name"     validate:"notblank,max=100"`
	Email    string `json:"email"    validate:"required,max=100,mailbox"`
	Password string `json:"password" validate:"required,min=6,max=72,bcryptlen"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned by both auth endpoints.
type AuthResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Token string    `json:"token"`
}
