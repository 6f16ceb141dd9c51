package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.IncrementStudentsCreated()
	m.IncrementRejected("create")
	m.IncrementRejected("create")
	m.ObserveVerification(OutcomeUnavailable)
	m.ObserveIssue("collision")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.StudentsCreated))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.StudentsRejected.WithLabelValues("create")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CPFVerifications.WithLabelValues(OutcomeUnavailable)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ValidationIssues.WithLabelValues("collision")))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, families, 4)
}

func TestNew_PanicsOnDoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}
