package metric

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetricsRegistry(t *testing.T) {
	registry, err := NewMetricsRegistry()
	require.NoError(t, err)
	require.NotNil(t, registry.PrometheusRegistry())
	require.NotNil(t, registry.CoreMetrics())
}

func TestMetrics_Recorders(t *testing.T) {
	registry, err := NewMetricsRegistry()
	require.NoError(t, err)
	m := registry.CoreMetrics()

	m.RecordRegistration("search-box", "created")
	m.RecordRegistration("search-box", "reused")
	m.RecordUnregistration("search-box")
	m.RecordNotification("search-box")
	m.SetSubscriptions("search-box", 2)
	m.RecordQueryTrigger("search-box", "default")
	m.RecordGateOutcome("search-box", GateAccepted)
	m.RecordGateOutcome("search-box", GateSuperseded)
	m.RecordSelection("search-box")
	m.RecordAnalyticsError("search-box")

	assert.Equal(t, float64(1),
		testutil.ToFloat64(m.RegistrationsTotal.WithLabelValues("search-box", "created")))
	assert.Equal(t, float64(1),
		testutil.ToFloat64(m.RegistrationsTotal.WithLabelValues("search-box", "reused")))
	assert.Equal(t, float64(2),
		testutil.ToFloat64(m.SubscriptionsActive.WithLabelValues("search-box")))
	assert.Equal(t, float64(1),
		testutil.ToFloat64(m.GateOutcomesTotal.WithLabelValues("search-box", GateSuperseded)))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics

	require.NotPanics(t, func() {
		m.RecordRegistration("x", "created")
		m.RecordUnregistration("x")
		m.RecordNotification("x")
		m.SetSubscriptions("x", 1)
		m.RecordQueryTrigger("x", "default")
		m.RecordGateOutcome("x", GateRejected)
		m.RecordSelection("x")
		m.RecordAnalyticsError("x")
	})
}
