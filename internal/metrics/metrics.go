package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Verification outcome labels.
const (
	OutcomeVerified    = "verified"
	OutcomeRejected    = "rejected"
	OutcomeUnavailable = "unavailable"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	StudentsCreated  prometheus.Counter
	StudentsRejected *prometheus.CounterVec
	CPFVerifications *prometheus.CounterVec
	ValidationIssues *prometheus.CounterVec
}

// New creates the metrics and registers them on reg. Tests pass a fresh
// prometheus.NewRegistry(); main passes the registry served on /metrics.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		StudentsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "student_registry_students_created_total",
			Help: "Total number of students persisted",
		}),
		StudentsRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "student_registry_students_rejected_total",
			Help: "Create/update requests rejected by validation, by operation",
		}, []string{"operation"}),
		CPFVerifications: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "student_registry_cpf_verifications_total",
			Help: "External CPF verification calls by outcome",
		}, []string{"outcome"}),
		ValidationIssues: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "student_registry_validation_issues_total",
			Help: "Validation issues reported, by category",
		}, []string{"category"}),
	}
}

// IncrementStudentsCreated increments the students created counter by 1
func (m *Metrics) IncrementStudentsCreated() {
	m.StudentsCreated.Inc()
}

func (m *Metrics) IncrementRejected(operation string) {
	m.StudentsRejected.WithLabelValues(operation).Inc()
}

func (m *Metrics) ObserveVerification(outcome string) {
	m.CPFVerifications.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveIssue(category string) {
	m.ValidationIssues.WithLabelValues(category).Inc()
}
