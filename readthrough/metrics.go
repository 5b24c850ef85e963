package readthrough

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts cache and store outcomes per collection and operation.
// A single Metrics value is shared by every engine in the process.
type Metrics struct {
	hits            *prometheus.CounterVec
	misses          *prometheus.CounterVec
	storeErrors     *prometheus.CounterVec
	cacheWriteFails *prometheus.CounterVec
}

// NewMetrics registers the engine counters with reg and returns them.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	labels := []string{"collection", "op"}

	return &Metrics{
		hits: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "catalog_cache_hits_total",
			Help: "Cache hits served without a document store round trip.",
		}, labels),
		misses: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "catalog_cache_misses_total",
			Help: "Cache misses that fell through to the document store.",
		}, labels),
		storeErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "catalog_store_errors_total",
			Help: "Document store failures, excluding not-found results.",
		}, labels),
		cacheWriteFails: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "catalog_cache_write_failures_total",
			Help: "Best-effort cache writes that failed after a store fetch.",
		}, labels),
	}
}

func (m *Metrics) hit(collection, op string) {
	if m != nil {
		m.hits.WithLabelValues(collection, op).Inc()
	}
}

func (m *Metrics) miss(collection, op string) {
	if m != nil {
		m.misses.WithLabelValues(collection, op).Inc()
	}
}

func (m *Metrics) storeError(collection, op string) {
	if m != nil {
		m.storeErrors.WithLabelValues(collection, op).Inc()
	}
}

func (m *Metrics) cacheWriteFailure(collection, op string) {
	if m != nil {
		m.cacheWriteFails.WithLabelValues(collection, op).Inc()
	}
}
