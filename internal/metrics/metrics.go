// Package metrics exposes Prometheus instrumentation for store operations.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Operation labels.
const (
	OpUpsert = "upsert"
	OpDelete = "delete"
	OpWatch  = "watch"
)

// Result labels.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Store holds the counters and histograms recorded around store calls.
type Store struct {
	operations *prometheus.CounterVec
	latency    *prometheus.HistogramVec
	snapshots  prometheus.Counter
	people     prometheus.Gauge
}

// NewStore registers the store metrics with reg.
// Pass prometheus.NewRegistry() in tests to avoid duplicate registration.
func NewStore(reg prometheus.Registerer) *Store {
	f := promauto.With(reg)
	return &Store{
		operations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "agenda",
			Subsystem: "store",
			Name:      "operations_total",
			Help:      "Total number of store operations broken down by operation and result.",
		}, []string{"operation", "result"}),

		latency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "agenda",
			Subsystem: "store",
			Name:      "latency_seconds",
			Help:      "Latency distribution for store operations.",
			Buckets: []float64{
				0.0005, 0.001, 0.002, 0.005,
				0.01, 0.02, 0.05,
				0.1, 0.2, 0.5, 1,
			},
		}, []string{"operation"}),

		snapshots: f.NewCounter(prometheus.CounterOpts{
			Namespace: "agenda",
			Subsystem: "viewmodel",
			Name:      "snapshots_total",
			Help:      "Total number of live query snapshots received by the view-model.",
		}),

		people: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "agenda",
			Subsystem: "viewmodel",
			Name:      "people",
			Help:      "Number of people in the latest snapshot.",
		}),
	}
}

// Observe records one finished operation.
func (m *Store) Observe(op string, start time.Time, err error) {
	if m == nil {
		return
	}
	result := ResultOK
	if err != nil {
		result = ResultError
	}
	m.operations.WithLabelValues(op, result).Inc()
	m.latency.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

// Snapshot records a live query emission with n people.
func (m *Store) Snapshot(n int) {
	if m == nil {
		return
	}
	m.snapshots.Inc()
	m.people.Set(float64(n))
}
