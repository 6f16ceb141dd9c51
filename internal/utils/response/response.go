// Package response provides helpers for writing consistent JSON HTTP responses.
//
// Every error body shares the same envelope so API consumers always know
// what a failure looks like. Success bodies are whatever the handler sends.
package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ─────────────────────────────────────────────────────────────────────────────
// Response is the standard envelope returned for error cases:
//
//	{ "status": "error", "error": "student not found" }
//
// Validation failures of a student add the full list of issues:
//
//	{ "status": "error", "error": "validation failed",
//	  "errors": ["RA '123456' already exists."] }
//
// ─────────────────────────────────────────────────────────────────────────────
type Response struct {
	Status string   `json:"status"`           // "ok" or "error"
	Error  string   `json:"error"`            // human-readable error detail
	Errors []string `json:"errors,omitempty"` // one message per validation issue
}

const (
	StatusOK    = "ok"
	StatusError = "error"
)

// msgValidationFailed is the summary line of every aggregated report.
const msgValidationFailed = "validation failed"

// WriteJSON writes data as JSON with the given status code.
//
// IMPORTANT ORDER: Header() → WriteHeader() → body writes.
// Once WriteHeader is called (or the first Write), headers are locked.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// GeneralError wraps any Go error into our standard Response shape.
func GeneralError(err error) Response {
	return Response{
		Status: StatusError,
		Error:  err.Error(),
	}
}

// ValidationFailed carries the messages of a validation report, in order.
func ValidationFailed(messages []string) Response {
	if messages == nil {
		messages = []string{}
	}
	return Response{
		Status: StatusError,
		Error:  msgValidationFailed,
		Errors: messages,
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// ValidationError converts validator.FieldError values from a plain struct
// check (the auth requests) into a Response. Each field error becomes one
// English sentence in Errors; Error joins them with ", ".
//
// Example output:
//
//	{ "status": "error",
//	  "error": "field Email must be a valid email address, field Password must be at least 6 characters",
//	  "errors": [...] }
//
// ─────────────────────────────────────────────────────────────────────────────
func ValidationError(errs validator.ValidationErrors) Response {
	errMessages := make([]string, 0, len(errs))

	for _, e := range errs {
		switch e.ActualTag() {
		case "required", "notblank":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s is required", e.Field()))
		case "email", "mailbox":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s must be a valid email address", e.Field()))
		case "min":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s must be at least %s characters", e.Field(), e.Param()))
		case "max":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s must be at most %s characters", e.Field(), e.Param()))
		case "bcryptlen":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s must be at most 72 bytes", e.Field()))
		// Catch-all for any other validation tag (len, ra, cpf, etc.)
		default:
			errMessages = append(errMessages,
				fmt.Sprintf("field %s is invalid", e.Field()))
		}
	}

	return Response{
		Status: StatusError,
		Error:  strings.Join(errMessages, ", "),
		Errors: errMessages,
	}
}
