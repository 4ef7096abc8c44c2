// Package metrics defines the Prometheus collectors exported by the server.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "groupsplit"

// Metrics holds the collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	rpcRequests  *prometheus.CounterVec
	rpcDuration  *prometheus.HistogramVec
	computations *prometheus.CounterVec
	transfers    prometheus.Histogram
	settlements  prometheus.Counter
}

// New registers all collectors on a fresh registry, along with the Go runtime
// and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		rpcRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "RPC calls by procedure and result code.",
		}, []string{"procedure", "code"}),
		rpcDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "RPC latency by procedure.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
		computations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "balance_computations_total",
			Help:      "Balance computations by outcome (ok, invalid_expense, invalid_balances).",
		}, []string{"result"}),
		transfers: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "settlement_transfers",
			Help:      "Number of transfers in each simplified settlement.",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 13, 21},
		}),
		settlements: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "settlements_recorded_total",
			Help:      "Settlement payments recorded as expenses.",
		}),
	}
}

// ObserveRPC records one RPC call.
func (m *Metrics) ObserveRPC(procedure, code string, d time.Duration) {
	if m == nil {
		return
	}
	m.rpcRequests.WithLabelValues(procedure, code).Inc()
	m.rpcDuration.WithLabelValues(procedure).Observe(d.Seconds())
}

// ObserveComputation records the outcome of one balance computation.
func (m *Metrics) ObserveComputation(result string) {
	if m == nil {
		return
	}
	m.computations.WithLabelValues(result).Inc()
}

// ObserveTransfers records the size of a simplified settlement.
func (m *Metrics) ObserveTransfers(n int) {
	if m == nil {
		return
	}
	m.transfers.Observe(float64(n))
}

// IncSettlements counts a recorded settlement.
func (m *Metrics) IncSettlements() {
	if m == nil {
		return
	}
	m.settlements.Inc()
}

// Registry exposes the underlying registry for tests and custom handlers.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
