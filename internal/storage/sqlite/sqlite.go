// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// Importing github.com/mattn/go-sqlite3 registers the "sqlite3" driver with
// database/sql through the driver's init(). The package is imported by name
// because sqlite3.Error is needed to recognise constraint violations.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"

	"github.com/aanand-mishra/student-registry/internal/config"
	"github.com/aanand-mishra/student-registry/internal/storage"
	"github.com/aanand-mishra/student-registry/internal/types"
)

// SQLite is the concrete implementation of storage.Storage.
// It holds a *sql.DB which is a connection pool managed by database/sql.
// A single *sql.DB is safe for concurrent use by multiple goroutines.
type SQLite struct {
	Db *sql.DB
}

var _ storage.Storage = (*SQLite)(nil)

// schema is idempotent and runs on every startup.
//
// The UNIQUE constraints are what actually serialize racing creations: two
// requests may both pass the uniqueness lookups, but only one INSERT wins.
const schema = `
CREATE TABLE IF NOT EXISTS students (
	id         TEXT     PRIMARY KEY,
	name       TEXT     NOT NULL,
	email      TEXT     NOT NULL UNIQUE COLLATE NOCASE,
	ra         TEXT     NOT NULL UNIQUE,
	cpf        TEXT     NOT NULL UNIQUE,
	created_at DATETIME NOT NULL,
	updated_at DATETIME
);

CREATE TABLE IF NOT EXISTS users (
	id            TEXT     PRIMARY KEY,
	name          TEXT     NOT NULL,
	email         TEXT     NOT NULL UNIQUE COLLATE NOCASE,
	password_hash TEXT     NOT NULL,
	created_at    DATETIME NOT NULL,
	updated_at    DATETIME
);
`

// New opens the SQLite database at cfg.StoragePath, creates the tables if
// they do not already exist, and returns a ready-to-use *SQLite.
func New(cfg *config.Config) (*SQLite, error) {
	// sql.Open does NOT open a real connection yet. It only validates
	// the driver name and data source name (DSN).
	db, err := sql.Open("sqlite3", cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// SQLite allows one writer at a time; a single connection turns
	// "database is locked" errors into queueing inside database/sql.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: create tables: %w", err)
	}

	return &SQLite{Db: db}, nil
}

func (s *SQLite) Close() error {
	return s.Db.Close()
}

// isUniqueViolation reports whether err is SQLite rejecting a duplicate
// value in a UNIQUE column.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

// ─────────────────────────────────────────────────────────────────────────────
// Students
// ─────────────────────────────────────────────────────────────────────────────

func (s *SQLite) CreateStudent(ctx context.Context, student types.Student) error {
	stmt, err := s.Db.PrepareContext(ctx,
		"INSERT INTO students (id, name, email, ra, cpf, created_at) VALUES (?, ?, ?, ?, ?, ?)",
	)
	if err != nil {
		return fmt.Errorf("CreateStudent: prepare: %w", err)
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx,
		student.ID.String(),
		student.Name,
		student.Email,
		student.RA,
		student.CPF,
		student.CreatedAt.UTC(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("CreateStudent: %w", storage.ErrConflict)
		}
		return fmt.Errorf("CreateStudent: exec: %w", err)
	}

	return nil
}

const studentColumns = "id, name, email, ra, cpf, created_at, updated_at"

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanStudent(row rowScanner) (types.Student, error) {
	var (
		student   types.Student
		updatedAt sql.NullTime
	)

	// The order of variables in Scan must match studentColumns.
	if err := row.Scan(
		&student.ID,
		&student.Name,
		&student.Email,
		&student.RA,
		&student.CPF,
		&student.CreatedAt,
		&updatedAt,
	); err != nil {
		return types.Student{}, err
	}

	if updatedAt.Valid {
		t := updatedAt.Time
		student.UpdatedAt = &t
	}
	return student, nil
}

func (s *SQLite) GetStudentByID(ctx context.Context, id uuid.UUID) (types.Student, error) {
	stmt, err := s.Db.PrepareContext(ctx,
		"SELECT "+studentColumns+" FROM students WHERE id = ? LIMIT 1",
	)
	if err != nil {
		return types.Student{}, fmt.Errorf("GetStudentByID: prepare: %w", err)
	}
	defer stmt.Close()

	student, err := scanStudent(stmt.QueryRowContext(ctx, id.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Student{}, fmt.Errorf("no student found with id %s: %w", id, storage.ErrNotFound)
		}
		return types.Student{}, fmt.Errorf("GetStudentByID: scan: %w", err)
	}

	return student, nil
}

func (s *SQLite) GetStudents(ctx context.Context) ([]types.Student, error) {
	stmt, err := s.Db.PrepareContext(ctx,
		"SELECT "+studentColumns+" FROM students ORDER BY created_at, id",
	)
	if err != nil {
		return nil, fmt.Errorf("GetStudents: prepare: %w", err)
	}
	defer stmt.Close()

	rows, err := stmt.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("GetStudents: query: %w", err)
	}
	defer rows.Close() // must close rows to free the DB connection

	// Returning [] instead of null in JSON is better API behaviour.
	students := make([]types.Student, 0)

	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("GetStudents: scan row: %w", err)
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetStudents: rows iteration: %w", err)
	}

	return students, nil
}

func (s *SQLite) UpdateStudent(ctx context.Context, student types.Student) error {
	stmt, err := s.Db.PrepareContext(ctx,
		"UPDATE students SET name = ?, email = ?, updated_at = ? WHERE id = ?",
	)
	if err != nil {
		return fmt.Errorf("UpdateStudent: prepare: %w", err)
	}
	defer stmt.Close()

	updatedAt := time.Now().UTC()
	if student.UpdatedAt != nil {
		updatedAt = student.UpdatedAt.UTC()
	}

	result, err := stmt.ExecContext(ctx, student.Name, student.Email, updatedAt, student.ID.String())
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("UpdateStudent: %w", storage.ErrConflict)
		}
		return fmt.Errorf("UpdateStudent: exec: %w", err)
	}

	return expectOneRow(result, "UpdateStudent", student.ID)
}

func (s *SQLite) DeleteStudentByID(ctx context.Context, id uuid.UUID) error {
	stmt, err := s.Db.PrepareContext(ctx, "DELETE FROM students WHERE id = ?")
	if err != nil {
		return fmt.Errorf("DeleteStudentByID: prepare: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx, id.String())
	if err != nil {
		return fmt.Errorf("DeleteStudentByID: exec: %w", err)
	}

	return expectOneRow(result, "DeleteStudentByID", id)
}

func expectOneRow(result sql.Result, op string, id uuid.UUID) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: no student found with id %s: %w", op, id, storage.ErrNotFound)
	}
	return nil
}

func (s *SQLite) exists(ctx context.Context, op, query string, args ...any) (bool, error) {
	var found bool
	if err := s.Db.QueryRowContext(ctx, query, args...).Scan(&found); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return found, nil
}

func (s *SQLite) ExistsByRA(ctx context.Context, ra string) (bool, error) {
	return s.exists(ctx, "ExistsByRA",
		"SELECT EXISTS(SELECT 1 FROM students WHERE ra = ?)", ra)
}

func (s *SQLite) ExistsByCPF(ctx context.Context, cpf string) (bool, error) {
	return s.exists(ctx, "ExistsByCPF",
		"SELECT EXISTS(SELECT 1 FROM students WHERE cpf = ?)", cpf)
}

func (s *SQLite) ExistsByEmail(ctx context.Context, email string, excludeID uuid.UUID) (bool, error) {
	// email is declared COLLATE NOCASE, so = compares case-insensitively.
	return s.exists(ctx, "ExistsByEmail",
		"SELECT EXISTS(SELECT 1 FROM students WHERE email = ? AND id <> ?)", email, excludeID.String())
}

// ─────────────────────────────────────────────────────────────────────────────
// Users
// ─────────────────────────────────────────────────────────────────────────────

func (s *SQLite) CreateUser(ctx context.Context, user types.User) error {
	_, err := s.Db.ExecContext(ctx,
		"INSERT INTO users (id, name, email, password_hash, created_at) VALUES (?, ?, ?, ?, ?)",
		user.ID.String(), user.Name, user.Email, user.PasswordHash, user.CreatedAt.UTC(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("CreateUser: %w", storage.ErrConflict)
		}
		return fmt.Errorf("CreateUser: exec: %w", err)
	}
	return nil
}

func (s *SQLite) GetUserByEmail(ctx context.Context, email string) (types.User, error) {
	var (
		user      types.User
		updatedAt sql.NullTime
	)

	err := s.Db.QueryRowContext(ctx,
		"SELECT id, name, email, password_hash, created_at, updated_at FROM users WHERE email = ? LIMIT 1",
		email,
	).Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.User{}, fmt.Errorf("GetUserByEmail: %w", storage.ErrNotFound)
		}
		return types.User{}, fmt.Errorf("GetUserByEmail: scan: %w", err)
	}

	if updatedAt.Valid {
		t := updatedAt.Time
		user.UpdatedAt = &t
	}
	return user, nil
}

func (s *SQLite) ExistsUserByEmail(ctx context.Context, email string) (bool, error) {
	return s.exists(ctx, "ExistsUserByEmail",
		"SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)", email)
}
