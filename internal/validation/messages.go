package validation

import "fmt"

// Kind identifies one validation failure.
type Kind int

const (
	KindNameRequired Kind = iota
	KindEmailRequired
	KindRARequired
	KindCPFRequired
	KindCPFInvalid
	KindCPFNotVerified
	KindRAAlreadyExists
	KindCPFAlreadyExists
	KindEmailAlreadyExists
)

// Category groups kinds by the stage that reports them.
type Category string

const (
	CategoryFormat    Category = "format"
	CategoryExternal  Category = "external"
	CategoryCollision Category = "collision"
)

type kindInfo struct {
	name     string
	category Category
	template string
}

var kinds = [...]kindInfo{
	KindNameRequired:       {"name_required", CategoryFormat, "Name is required and must be at most 100 characters."},
	KindEmailRequired:      {"email_required", CategoryFormat, "Email is required, must be at most 100 characters and valid."},
	KindRARequired:         {"ra_required", CategoryFormat, "RA is required, must be at most 20 characters and valid."},
	KindCPFRequired:        {"cpf_required", CategoryFormat, "CPF is required, must be at most 14 characters."},
	KindCPFInvalid:         {"cpf_invalid", CategoryFormat, "CPF is invalid. Check that the number is correct."},
	KindCPFNotVerified:     {"cpf_not_verified", CategoryExternal, "CPF was not found in the external registry."},
	KindRAAlreadyExists:    {"ra_already_exists", CategoryCollision, "RA '%s' already exists."},
	KindCPFAlreadyExists:   {"cpf_already_exists", CategoryCollision, "CPF '%s' already exists."},
	KindEmailAlreadyExists: {"email_already_exists", CategoryCollision, "Email '%s' already exists."},
}

func (k Kind) info() kindInfo {
	if k < 0 || int(k) >= len(kinds) {
		return kindInfo{name: "unknown", category: CategoryFormat, template: "Invalid value."}
	}
	return kinds[k]
}

func (k Kind) String() string { return k.info().name }

func (k Kind) Category() Category { return k.info().category }

// Message renders the kind's template. Collision kinds take the offending
// value as their single argument.
func (k Kind) Message(args ...any) string {
	t := k.info().template
	if len(args) == 0 {
		return t
	}
	return fmt.Sprintf(t, args...)
}

// Issue is one entry of a validation report.
type Issue struct {
	Kind    Kind   `json:"-"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

func newIssue(kind Kind, field string, args ...any) Issue {
	return Issue{Kind: kind, Field: field, Message: kind.Message(args...)}
}

// Report lists the issues found by one pipeline run, in stage order.
type Report []Issue

// OK reports whether the request may proceed.
func (r Report) OK() bool { return len(r) == 0 }

// Messages returns the human-readable messages in order.
func (r Report) Messages() []string {
	out := make([]string, 0, len(r))
	for _, issue := range r {
		out = append(out, issue.Message)
	}
	return out
}

// Has reports whether the report contains kind.
func (r Report) Has(kind Kind) bool {
	for _, issue := range r {
		if issue.Kind == kind {
			return true
		}
	}
	return false
}
