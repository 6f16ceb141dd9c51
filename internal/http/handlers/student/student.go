// Package student contains all HTTP handlers related to the Student resource.
//
// HANDLER PATTERN USED HERE: THE CLOSURE / FACTORY PATTERN
// ────────────────────────────────────────────────────────────
// The router expects handler functions with the signature:
//
//	func(http.ResponseWriter, *http.Request)
//
// That signature has no room for extra parameters like a service. To
// inject dependencies each handler is built by a factory that accepts the
// dependencies once at startup and returns the function the router calls
// on every request:
//
//	r.Post("/", student.New(svc, log))
package student

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/aanand-mishra/student-registry/internal/identifier"
	"github.com/aanand-mishra/student-registry/internal/service"
	"github.com/aanand-mishra/student-registry/internal/types"
	"github.com/aanand-mishra/student-registry/internal/utils/request"
	"github.com/aanand-mishra/student-registry/internal/utils/response"
)

// Service is the part of service.StudentService the handlers use.
type Service interface {
	Create(ctx context.Context, req types.CreateStudentRequest) (types.Student, error)
	Update(ctx context.Context, id uuid.UUID, req types.UpdateStudentRequest) (types.Student, error)
	Get(ctx context.Context, id uuid.UUID) (types.Student, error)
	List(ctx context.Context) ([]types.Student, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

var errInvalidID = errors.New("invalid id: must be a UUID")

// studentResponse is a student as the API shows it: the CPF is formatted
// as 000.000.000-00.
type studentResponse struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	RA        string     `json:"ra"`
	CPF       string     `json:"cpf"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

func toResponse(s types.Student) studentResponse {
	return studentResponse{
		ID:        s.ID,
		Name:      s.Name,
		Email:     s.Email,
		RA:        s.RA,
		CPF:       identifier.FormatCPF(s.CPF),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /api/students
//
// Request body (JSON):
//
//	{ "name": "João Silva", "email": "joao@example.com",
//	  "ra": "123456", "cpf": "529.982.247-25" }
//
// Responses:
//
//	201 Created      : the stored student
//	400 Bad Request  : empty/malformed body, or a non-empty validation report
//	409 Conflict     : a concurrent request registered the same RA/CPF/email
//	500 Internal     : database error
//
// ─────────────────────────────────────────────────────────────────────────────
func New(svc Service, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.InfoContext(r.Context(), "creating a student")

		var req types.CreateStudentRequest
		if err := request.DecodeJSON(w, r, &req); err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		student, err := svc.Create(r.Context(), req)
		if err != nil {
			writeError(w, r, log, err)
			return
		}

		response.WriteJSON(w, http.StatusCreated, toResponse(student))
	}
}

// GetByID handles GET /api/students/{id}
func GetByID(svc Service, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r)
		if !ok {
			return
		}

		student, err := svc.Get(r.Context(), id)
		if err != nil {
			writeError(w, r, log, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, toResponse(student))
	}
}

// GetList handles GET /api/students
// Returns an empty array [] (not null) when there are no students.
func GetList(svc Service, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		students, err := svc.List(r.Context())
		if err != nil {
			writeError(w, r, log, err)
			return
		}

		out := make([]studentResponse, 0, len(students))
		for _, s := range students {
			out = append(out, toResponse(s))
		}
		response.WriteJSON(w, http.StatusOK, out)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Update handles PUT /api/students/{id}
// Only name and email can change; RA and CPF are fixed at creation.
//
// Request body (JSON):
//
//	{ "name": "João Pedro", "email": "jp@example.com" }
//
// ─────────────────────────────────────────────────────────────────────────────
func Update(svc Service, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r)
		if !ok {
			return
		}
		log.InfoContext(r.Context(), "updating a student", slog.String("id", id.String()))

		var req types.UpdateStudentRequest
		if err := request.DecodeJSON(w, r, &req); err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		student, err := svc.Update(r.Context(), id, req)
		if err != nil {
			writeError(w, r, log, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, toResponse(student))
	}
}

// Delete handles DELETE /api/students/{id} and answers 204 No Content.
func Delete(svc Service, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r)
		if !ok {
			return
		}
		log.InfoContext(r.Context(), "deleting a student", slog.String("id", id.String()))

		if err := svc.Delete(r.Context(), id); err != nil {
			writeError(w, r, log, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(errInvalidID))
		return uuid.Nil, false
	}
	return id, true
}

// writeError maps service errors to status codes. Anything unexpected is
// logged and answered with a generic 500 so internals never leak.
func writeError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	var vErr *service.ValidationError

	switch {
	case errors.As(err, &vErr):
		response.WriteJSON(w, http.StatusBadRequest, response.ValidationFailed(vErr.Report.Messages()))
	case errors.Is(err, service.ErrStudentNotFound):
		response.WriteJSON(w, http.StatusNotFound, response.GeneralError(service.ErrStudentNotFound))
	case errors.Is(err, service.ErrStudentConflict):
		response.WriteJSON(w, http.StatusConflict, response.GeneralError(service.ErrStudentConflict))
	default:
		log.ErrorContext(r.Context(), "student request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()))
		response.WriteJSON(w, http.StatusInternalServerError,
			response.GeneralError(errors.New("an unexpected error occurred")))
	}
}
