// Package metric provides Prometheus instrumentation for the binding layer:
// component registrations, notification delivery, query triggers, gate
// outcomes and suggestion selections. Metrics live in their own registry so
// embedding applications choose where (or whether) to expose them.
package metric

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Gate outcome label values
const (
	GateAccepted   = "accepted"
	GateRejected   = "rejected"
	GateSuperseded = "superseded"
)

// Metrics contains all binding-layer metrics (not store- or view-specific)
type Metrics struct {
	RegistrationsTotal   *prometheus.CounterVec
	UnregistrationsTotal *prometheus.CounterVec

	NotificationsTotal   *prometheus.CounterVec
	SubscriptionsActive  *prometheus.GaugeVec
	QueryTriggersTotal   *prometheus.CounterVec
	GateOutcomesTotal    *prometheus.CounterVec
	SelectionsTotal      *prometheus.CounterVec
	AnalyticsErrorsTotal *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance with all binding-layer metrics
func NewMetrics() *Metrics {
	return &Metrics{
		RegistrationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "searchbind",
				Subsystem: "registry",
				Name:      "registrations_total",
				Help:      "Total component registrations, including idempotent re-registrations",
			},
			[]string{"component", "outcome"},
		),

		UnregistrationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "searchbind",
				Subsystem: "registry",
				Name:      "unregistrations_total",
				Help:      "Total component unregistrations",
			},
			[]string{"component"},
		),

		NotificationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "searchbind",
				Subsystem: "subscription",
				Name:      "notifications_total",
				Help:      "Total notification batches delivered per component",
			},
			[]string{"component"},
		),

		SubscriptionsActive: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "searchbind",
				Subsystem: "subscription",
				Name:      "active",
				Help:      "Currently attached subscriptions per component",
			},
			[]string{"component"},
		),

		QueryTriggersTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "searchbind",
				Subsystem: "query",
				Name:      "triggers_total",
				Help:      "Total query executions per component and kind (default/custom)",
			},
			[]string{"component", "kind"},
		),

		GateOutcomesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "searchbind",
				Subsystem: "binding",
				Name:      "gate_outcomes_total",
				Help:      "Before-value-change gate outcomes (accepted/rejected/superseded)",
			},
			[]string{"component", "outcome"},
		),

		SelectionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "searchbind",
				Subsystem: "suggestion",
				Name:      "selections_total",
				Help:      "Total suggestion selections per component",
			},
			[]string{"component"},
		),

		AnalyticsErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "searchbind",
				Subsystem: "suggestion",
				Name:      "analytics_errors_total",
				Help:      "Click-analytics failures swallowed at the boundary",
			},
			[]string{"component"},
		),
	}
}

// Collectors returns every metric for bulk registration.
func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.RegistrationsTotal,
		m.UnregistrationsTotal,
		m.NotificationsTotal,
		m.SubscriptionsActive,
		m.QueryTriggersTotal,
		m.GateOutcomesTotal,
		m.SelectionsTotal,
		m.AnalyticsErrorsTotal,
	}
}

// Convenience recorders. All are nil-safe so call sites in the hot path do
// not need to check whether metrics were wired in.

// RecordRegistration counts one Register call with its outcome
// ("created" or "reused").
func (m *Metrics) RecordRegistration(component, outcome string) {
	if m == nil {
		return
	}
	m.RegistrationsTotal.WithLabelValues(component, outcome).Inc()
}

// RecordUnregistration counts one Unregister call.
func (m *Metrics) RecordUnregistration(component string) {
	if m == nil {
		return
	}
	m.UnregistrationsTotal.WithLabelValues(component).Inc()
}

// RecordNotification counts one delivered notification batch.
func (m *Metrics) RecordNotification(component string) {
	if m == nil {
		return
	}
	m.NotificationsTotal.WithLabelValues(component).Inc()
}

// SetSubscriptions tracks the live subscription count for a component.
func (m *Metrics) SetSubscriptions(component string, n int) {
	if m == nil {
		return
	}
	m.SubscriptionsActive.WithLabelValues(component).Set(float64(n))
}

// RecordQueryTrigger counts one query execution of the given kind.
func (m *Metrics) RecordQueryTrigger(component, kind string) {
	if m == nil {
		return
	}
	m.QueryTriggersTotal.WithLabelValues(component, kind).Inc()
}

// RecordGateOutcome counts one before-value-change gate settlement.
func (m *Metrics) RecordGateOutcome(component, outcome string) {
	if m == nil {
		return
	}
	m.GateOutcomesTotal.WithLabelValues(component, outcome).Inc()
}

// RecordSelection counts one suggestion selection.
func (m *Metrics) RecordSelection(component string) {
	if m == nil {
		return
	}
	m.SelectionsTotal.WithLabelValues(component).Inc()
}

// RecordAnalyticsError counts one swallowed click-analytics failure.
func (m *Metrics) RecordAnalyticsError(component string) {
	if m == nil {
		return
	}
	m.AnalyticsErrorsTotal.WithLabelValues(component).Inc()
}
