package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the aggregation
// pipeline. Degraded provider fetches are counted rather than surfaced as
// errors, so these counters are the only durable record of upstream outages.
type Metrics struct {
	FetchDegradations *prometheus.CounterVec // labels: provider, reason
	CacheLookups      *prometheus.CounterVec // labels: result={hit,miss}
	RefreshTotal      prometheus.Counter
	RefreshDuration   prometheus.Histogram
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.FetchDegradations,
		m.CacheLookups,
		m.RefreshTotal,
		m.RefreshDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		FetchDegradations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cosmocast",
			Name:      "fetch_degradations_total",
			Help:      "Provider fetches absorbed into empty results, by provider and reason.",
		}, []string{"provider", "reason"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cosmocast",
			Name:      "cache_lookups_total",
			Help:      "Aggregate cache lookups by result.",
		}, []string{"result"}),
		RefreshTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cosmocast",
			Name:      "refresh_total",
			Help:      "Total full aggregation refresh cycles.",
		}),
		RefreshDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "cosmocast",
			Name:      "refresh_duration_seconds",
			Help:      "Duration of a complete fetch-normalize-assemble cycle.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
		}),
	}
}
