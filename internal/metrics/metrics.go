package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Operation status labels.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Registry holds the collectors of one store instance.
type Registry struct {
	OperationsTotal  *prometheus.CounterVec
	TransactionDepth prometheus.Gauge
	CommittedKeys    prometheus.Gauge

	registry prometheus.Registerer
	gatherer prometheus.Gatherer
}

// NewRegistry creates the collectors and registers them with reg.
// A nil reg gets a fresh private prometheus.Registry.
func NewRegistry(reg prometheus.Registerer) *Registry {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	r := &Registry{registry: reg}
	if g, ok := reg.(prometheus.Gatherer); ok {
		r.gatherer = g
	}

	r.OperationsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "simpledb_operations_total",
			Help: "Total number of store operations",
		},
		[]string{"operation", "status"},
	)

	r.TransactionDepth = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "simpledb_transaction_depth",
			Help: "Number of open nested transactions",
		},
	)

	r.CommittedKeys = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "simpledb_committed_keys",
			Help: "Number of keys in committed state",
		},
	)

	return r
}

// RecordOperation counts one store operation.
func (r *Registry) RecordOperation(operation, status string) {
	r.OperationsTotal.WithLabelValues(operation, status).Inc()
}

// SetDepth records the current transaction depth.
func (r *Registry) SetDepth(depth int) {
	r.TransactionDepth.Set(float64(depth))
}

// SetCommittedKeys records the size of committed state.
func (r *Registry) SetCommittedKeys(n int) {
	r.CommittedKeys.Set(float64(n))
}

// Handler exposes the registry in the Prometheus text format.
// If the registerer passed to NewRegistry cannot be gathered, the handler
// answers every request with 500 instead of serving another registry.
func (r *Registry) Handler() http.Handler {
	if r.gatherer == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "metrics registerer is not a prometheus.Gatherer", http.StatusInternalServerError)
		})
	}
	return promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})
}
