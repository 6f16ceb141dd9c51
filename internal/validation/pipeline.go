// Package validation runs the checks that gate student creation and updates.
//
// A run goes through three stages and collects every issue it finds:
//
//  1. local format: name, email, RA and CPF shape (CPF checksum included)
//  2. external verification (create only): ask the CPF registry, fail-open
//  3. uniqueness: RA, CPF and email collisions against the record store
//
// A CPF that fails stage 1 is never sent to stage 2 or looked up in stage 3.
// The caller persists only when the report comes back empty.
package validation

//go:generate mockgen -source=pipeline.go -destination=mocks/mocks.go -package=mocks UniquenessChecker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/aanand-mishra/student-registry/internal/auth"
	"github.com/aanand-mishra/student-registry/internal/identifier"
	"github.com/aanand-mishra/student-registry/internal/metrics"
	"github.com/aanand-mishra/student-registry/internal/types"
	"github.com/aanand-mishra/student-registry/internal/verification"
)

// UniquenessChecker looks up existing records. RA and CPF arrive normalized
// (digits only), email trimmed and lower-cased. excludeID skips one record
// during updates; uuid.Nil excludes nothing.
type UniquenessChecker interface {
	ExistsByRA(ctx context.Context, ra string) (bool, error)
	ExistsByCPF(ctx context.Context, cpf string) (bool, error)
	ExistsByEmail(ctx context.Context, email string, excludeID uuid.UUID) (bool, error)
}

// NewValidator returns a validator with the custom tags used by the request
// types: notblank, mailbox, ra, cpf and bcryptlen.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	custom := map[string]func(string) bool{
		"notblank":  func(s string) bool { return strings.TrimSpace(s) != "" },
		"mailbox":   identifier.ValidateEmailShape,
		"ra":        identifier.ValidateRAShape,
		"cpf":       identifier.ValidateCPFChecksum,
		"bcryptlen": func(s string) bool { return len(s) <= auth.MaxPasswordBytes },
	}
	for tag, check := range custom {
		check := check
		if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return check(fl.Field().String())
		}); err != nil {
			panic(fmt.Sprintf("validation: register %q: %v", tag, err))
		}
	}

	return v
}

// Pipeline is safe for concurrent use; a run keeps no state between calls.
type Pipeline struct {
	validate *validator.Validate
	verifier verification.Verifier
	store    UniquenessChecker
	metrics  *metrics.Metrics
	log      *slog.Logger
}

func New(store UniquenessChecker, verifier verification.Verifier, m *metrics.Metrics, log *slog.Logger) *Pipeline {
	return &Pipeline{
		validate: NewValidator(),
		verifier: verifier,
		store:    store,
		metrics:  m,
		log:      log,
	}
}

// ValidateCreate checks a new student. The returned error is set only when
// the record store could not be queried; validation failures live in the
// report.
func (p *Pipeline) ValidateCreate(ctx context.Context, req types.CreateStudentRequest) (Report, error) {
	report, failed, err := p.checkFormat(ctx, req)
	if err != nil {
		return nil, err
	}

	cpf := identifier.NormalizeDigits(req.CPF)

	if !failed["CPF"] {
		if issue, ok := p.verifyExternally(ctx, cpf); !ok {
			report = append(report, issue)
		}
	}

	if !failed["RA"] {
		taken, err := p.store.ExistsByRA(ctx, identifier.NormalizeDigits(req.RA))
		if err != nil {
			return nil, fmt.Errorf("ValidateCreate: ra lookup: %w", err)
		}
		if taken {
			report = append(report, newIssue(KindRAAlreadyExists, "ra", req.RA))
		}
	}

	if !failed["CPF"] {
		taken, err := p.store.ExistsByCPF(ctx, cpf)
		if err != nil {
			return nil, fmt.Errorf("ValidateCreate: cpf lookup: %w", err)
		}
		if taken {
			report = append(report, newIssue(KindCPFAlreadyExists, "cpf", req.CPF))
		}
	}

	if !failed["Email"] {
		taken, err := p.store.ExistsByEmail(ctx, identifier.NormalizeEmail(req.Email), uuid.Nil)
		if err != nil {
			return nil, fmt.Errorf("ValidateCreate: email lookup: %w", err)
		}
		if taken {
			report = append(report, newIssue(KindEmailAlreadyExists, "email", req.Email))
		}
	}

	p.record(report)
	return report, nil
}

// ValidateUpdate checks the mutable fields of student id. Email uniqueness
// ignores the student being updated.
func (p *Pipeline) ValidateUpdate(ctx context.Context, id uuid.UUID, req types.UpdateStudentRequest) (Report, error) {
	report, failed, err := p.checkFormat(ctx, req)
	if err != nil {
		return nil, err
	}

	if !failed["Email"] {
		taken, err := p.store.ExistsByEmail(ctx, identifier.NormalizeEmail(req.Email), id)
		if err != nil {
			return nil, fmt.Errorf("ValidateUpdate: email lookup: %w", err)
		}
		if taken {
			report = append(report, newIssue(KindEmailAlreadyExists, "email", req.Email))
		}
	}

	p.record(report)
	return report, nil
}

// checkFormat runs the struct tags of req. It returns one issue per failing
// field, in declaration order, and the set of failing Go field names.
func (p *Pipeline) checkFormat(ctx context.Context, req any) (Report, map[string]bool, error) {
	failed := make(map[string]bool)

	err := p.validate.StructCtx(ctx, req)
	if err == nil {
		return nil, failed, nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return nil, nil, fmt.Errorf("checkFormat: %w", err)
	}

	var report Report
	for _, fe := range fieldErrs {
		field := fe.StructField()
		if failed[field] {
			continue
		}
		failed[field] = true
		report = append(report, newIssue(formatKind(field, fe.Tag()), strings.ToLower(field)))
	}
	return report, failed, nil
}

func formatKind(field, tag string) Kind {
	switch field {
	case "Email":
		return KindEmailRequired
	case "RA":
		return KindRARequired
	case "CPF":
		if tag == "cpf" {
			return KindCPFInvalid
		}
		return KindCPFRequired
	default:
		return KindNameRequired
	}
}

// verifyExternally asks the registry about cpf. Only an explicit denial
// yields an issue; any failure is logged once and the run carries on.
func (p *Pipeline) verifyExternally(ctx context.Context, cpf string) (Issue, bool) {
	verified, err := p.verifier.Verify(ctx, cpf)
	if err != nil {
		p.metrics.ObserveVerification(metrics.OutcomeUnavailable)
		p.log.WarnContext(ctx, "external cpf verification unavailable, continuing without it",
			slog.String("category", string(verification.CategoryOf(err))),
			slog.String("error", err.Error()))
		return Issue{}, true
	}

	if !verified {
		p.metrics.ObserveVerification(metrics.OutcomeRejected)
		return newIssue(KindCPFNotVerified, "cpf"), false
	}

	p.metrics.ObserveVerification(metrics.OutcomeVerified)
	return Issue{}, true
}

func (p *Pipeline) record(report Report) {
	for _, issue := range report {
		p.metrics.ObserveIssue(string(issue.Kind.Category()))
	}
}
