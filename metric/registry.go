package metric

import (
	stderrors "errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/c360/searchbind/errors"
)

// MetricsRegistry owns the binding layer's Prometheus registry and the core
// metric set registered into it.
type MetricsRegistry struct {
	prometheusRegistry *prometheus.Registry
	Metrics            *Metrics
}

// NewMetricsRegistry creates a metrics registry with the core binding
// metrics already registered.
func NewMetricsRegistry() (*MetricsRegistry, error) {
	registry := &MetricsRegistry{
		prometheusRegistry: prometheus.NewRegistry(),
		Metrics:            NewMetrics(),
	}

	for _, collector := range registry.Metrics.Collectors() {
		if err := registry.prometheusRegistry.Register(collector); err != nil {
			var alreadyRegErr prometheus.AlreadyRegisteredError
			if stderrors.As(err, &alreadyRegErr) {
				return nil, errors.WrapInvalid(err, "MetricsRegistry", "NewMetricsRegistry",
					"duplicate collector registration")
			}
			return nil, errors.Wrap(err, "MetricsRegistry", "NewMetricsRegistry",
				"prometheus registration")
		}
	}

	return registry, nil
}

// PrometheusRegistry returns the underlying Prometheus registry, for
// embedding applications that expose /metrics.
func (r *MetricsRegistry) PrometheusRegistry() *prometheus.Registry {
	return r.prometheusRegistry
}

// CoreMetrics returns the core binding-layer metrics.
func (r *MetricsRegistry) CoreMetrics() *Metrics {
	return r.Metrics
}
