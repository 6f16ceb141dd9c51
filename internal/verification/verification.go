// Package verification asks an outside registry whether a CPF exists.
//
// The registry is untrusted and unreliable. Implementations report three
// outcomes and callers must keep them apart:
//
//	true,  nil  → the registry knows the CPF
//	false, nil  → the registry answered and explicitly denied the CPF
//	_,     err  → no usable answer (timeout, outage, garbage response)
//
// Only the second outcome is a verdict. The validation pipeline treats the
// third one as "no opinion" and lets the request through (fail-open).
package verification

//go:generate mockgen -source=verification.go -destination=mocks/mocks.go -package=mocks Verifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Verifier checks a normalized CPF against an external registry.
type Verifier interface {
	Verify(ctx context.Context, cpf string) (bool, error)
}

// Config selects and tunes the verifier. It mirrors the
// external_verification section of the application config.
type Config struct {
	Enabled bool
	BaseURL string
	Timeout time.Duration
}

// DefaultTimeout bounds a verification call when the config leaves it unset.
const DefaultTimeout = 5 * time.Second

// New returns the HTTP verifier when cfg.Enabled is set and the no-op
// verifier otherwise, so call sites never nil-check the dependency.
func New(cfg Config, log *slog.Logger) Verifier {
	if !cfg.Enabled || cfg.BaseURL == "" {
		log.Info("external cpf verification disabled")
		return Noop{}
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	log.Info("external cpf verification enabled",
		slog.String("base_url", cfg.BaseURL),
		slog.Duration("timeout", timeout))

	return NewHTTPVerifier(cfg.BaseURL, &http.Client{Timeout: timeout})
}

// Noop accepts every CPF. It stands in when no registry is configured.
type Noop struct{}

func (Noop) Verify(context.Context, string) (bool, error) { return true, nil }

// Category normalizes why a verification call produced no verdict.
type Category string

const (
	CategoryTimeout     Category = "timeout"
	CategoryUnavailable Category = "unavailable"
	CategoryBadResponse Category = "bad_response"
)

// Error wraps a failed verification call.
type Error struct {
	Category   Category
	StatusCode int // zero when no response arrived
	Underlying error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("cpf verification [%s]", e.Category)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(": status %d", e.StatusCode)
	}
	if e.Underlying != nil {
		msg += ": " + e.Underlying.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Underlying }

// CategoryOf extracts the category of a verification failure. Errors that did
// not come from this package are reported as unavailable.
func CategoryOf(err error) Category {
	var ve *Error
	if errors.As(err, &ve) {
		return ve.Category
	}
	return CategoryUnavailable
}
