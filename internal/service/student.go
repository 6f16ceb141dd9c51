// Package service holds the caller-facing operations on students and API
// accounts. Handlers call these; storage and validation stay behind them.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aanand-mishra/student-registry/internal/identifier"
	"github.com/aanand-mishra/student-registry/internal/metrics"
	"github.com/aanand-mishra/student-registry/internal/storage"
	"github.com/aanand-mishra/student-registry/internal/types"
	"github.com/aanand-mishra/student-registry/internal/validation"
)

const (
	opCreate = "create"
	opUpdate = "update"
)

// StudentService persists a student only after the validation pipeline
// returns an empty report.
type StudentService struct {
	store    storage.StudentStorage
	pipeline *validation.Pipeline
	metrics  *metrics.Metrics
	log      *slog.Logger
	now      func() time.Time
}

func NewStudentService(store storage.StudentStorage, pipeline *validation.Pipeline, m *metrics.Metrics, log *slog.Logger) *StudentService {
	return &StudentService{
		store:    store,
		pipeline: pipeline,
		metrics:  m,
		log:      log,
		now:      time.Now,
	}
}

// Create validates req and stores the new student. A non-empty report comes
// back as *ValidationError and nothing is written.
func (s *StudentService) Create(ctx context.Context, req types.CreateStudentRequest) (types.Student, error) {
	report, err := s.pipeline.ValidateCreate(ctx, req)
	if err != nil {
		return types.Student{}, fmt.Errorf("Create: %w", err)
	}
	if !report.OK() {
		s.metrics.IncrementRejected(opCreate)
		return types.Student{}, &ValidationError{Report: report}
	}

	student := types.Student{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(req.Name),
		Email:     identifier.NormalizeEmail(req.Email),
		RA:        identifier.NormalizeDigits(req.RA),
		CPF:       identifier.NormalizeDigits(req.CPF),
		CreatedAt: s.now().UTC(),
	}

	if err := s.store.CreateStudent(ctx, student); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			s.metrics.IncrementRejected(opCreate)
			return types.Student{}, ErrStudentConflict
		}
		return types.Student{}, fmt.Errorf("Create: %w", err)
	}

	s.metrics.IncrementStudentsCreated()
	s.log.InfoContext(ctx, "student created", slog.String("id", student.ID.String()))

	return student, nil
}

// Update changes name and email of student id.
func (s *StudentService) Update(ctx context.Context, id uuid.UUID, req types.UpdateStudentRequest) (types.Student, error) {
	student, err := s.Get(ctx, id)
	if err != nil {
		return types.Student{}, err
	}

	report, err := s.pipeline.ValidateUpdate(ctx, id, req)
	if err != nil {
		return types.Student{}, fmt.Errorf("Update: %w", err)
	}
	if !report.OK() {
		s.metrics.IncrementRejected(opUpdate)
		return types.Student{}, &ValidationError{Report: report}
	}

	updatedAt := s.now().UTC()
	student.Name = strings.TrimSpace(req.Name)
	student.Email = identifier.NormalizeEmail(req.Email)
	student.UpdatedAt = &updatedAt

	if err := s.store.UpdateStudent(ctx, student); err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			return types.Student{}, ErrStudentNotFound
		case errors.Is(err, storage.ErrConflict):
			s.metrics.IncrementRejected(opUpdate)
			return types.Student{}, ErrStudentConflict
		}
		return types.Student{}, fmt.Errorf("Update: %w", err)
	}

	s.log.InfoContext(ctx, "student updated", slog.String("id", id.String()))
	return student, nil
}

func (s *StudentService) Get(ctx context.Context, id uuid.UUID) (types.Student, error) {
	student, err := s.store.GetStudentByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return types.Student{}, ErrStudentNotFound
		}
		return types.Student{}, fmt.Errorf("Get: %w", err)
	}
	return student, nil
}

func (s *StudentService) List(ctx context.Context) ([]types.Student, error) {
	students, err := s.store.GetStudents(ctx)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	return students, nil
}

func (s *StudentService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.DeleteStudentByID(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrStudentNotFound
		}
		return fmt.Errorf("Delete: %w", err)
	}

	s.log.InfoContext(ctx, "student deleted", slog.String("id", id.String()))
	return nil
}
