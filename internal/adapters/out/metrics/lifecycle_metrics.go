// Package metrics exposes order lifecycle counters to Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ordering/internal/core/domain/model/actor"
	"ordering/internal/core/domain/model/order"
)

const namespace = "ordering"

// PrometheusLifecycleMetrics implements ports.LifecycleMetrics on its own registry.
type PrometheusLifecycleMetrics struct {
	registry *prometheus.Registry

	placed          *prometheus.CounterVec
	transitions     *prometheus.CounterVec
	rejected        *prometheus.CounterVec
	unauthorized    *prometheus.CounterVec
	staleConflicts  *prometheus.CounterVec
	payments        *prometheus.CounterVec
	pendingPayments prometheus.Gauge
}

func NewPrometheusLifecycleMetrics() *PrometheusLifecycleMetrics {
	m := &PrometheusLifecycleMetrics{
		registry: prometheus.NewRegistry(),
		placed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_placed_total",
			Help:      "Orders committed from a cart.",
		}, []string{"mode"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transitions_total",
			Help:      "Applied lifecycle transitions.",
		}, []string{"mode", "from", "to"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transitions_rejected_total",
			Help:      "Transition requests rejected by the state machine.",
		}, []string{"reason"}),
		unauthorized: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unauthorized_attempts_total",
			Help:      "Requests refused because the actor lacks the right.",
		}, []string{"role"}),
		staleConflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stale_conflicts_total",
			Help:      "Writes refused because the order version moved on.",
		}, []string{"operation"}),
		payments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payment_entries_total",
			Help:      "Ledger entries recorded, by kind.",
		}, []string{"kind"}),
		pendingPayments: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pending_payments",
			Help:      "Finished orders still waiting for payment at the last reconciliation run.",
		}),
	}

	m.registry.MustRegister(
		m.placed,
		m.transitions,
		m.rejected,
		m.unauthorized,
		m.staleConflicts,
		m.payments,
		m.pendingPayments,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *PrometheusLifecycleMetrics) OrderPlaced(mode order.Mode) {
	m.placed.WithLabelValues(mode.String()).Inc()
}

func (m *PrometheusLifecycleMetrics) TransitionApplied(mode order.Mode, from order.State, to order.State) {
	m.transitions.WithLabelValues(mode.String(), from.String(), to.String()).Inc()
}

func (m *PrometheusLifecycleMetrics) TransitionRejected(reason string) {
	m.rejected.WithLabelValues(reason).Inc()
}

func (m *PrometheusLifecycleMetrics) UnauthorizedAttempt(role actor.Role) {
	m.unauthorized.WithLabelValues(role.String()).Inc()
}

func (m *PrometheusLifecycleMetrics) StaleConflict(operation string) {
	m.staleConflicts.WithLabelValues(operation).Inc()
}

func (m *PrometheusLifecycleMetrics) PaymentRecorded(kind string) {
	m.payments.WithLabelValues(kind).Inc()
}

// PendingPayments records the size of the latest reconciliation report.
func (m *PrometheusLifecycleMetrics) PendingPayments(n int) {
	m.pendingPayments.Set(float64(n))
}

// Handler serves the registry in the Prometheus exposition format.
func (m *PrometheusLifecycleMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry is exposed for tests and for registering extra collectors.
func (m *PrometheusLifecycleMetrics) Registry() *prometheus.Registry {
	return m.registry
}
