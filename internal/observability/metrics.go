package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "glidepath"

// Metrics holds the Prometheus counters and histograms for crossing searches.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	Searches       *prometheus.CounterVec   // labels: target, direction
	SearchErrors   *prometheus.CounterVec   // labels: target
	ProviderCalls  *prometheus.CounterVec   // labels: target
	Events         *prometheus.CounterVec   // labels: direction, valid={true,false}
	Samples        prometheus.Histogram     // coarse samples per search
	SearchDuration *prometheus.HistogramVec // labels: target
}

// NewMetrics creates the search metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := newMetrics()
	reg.MustRegister(
		m.Searches,
		m.SearchErrors,
		m.ProviderCalls,
		m.Events,
		m.Samples,
		m.SearchDuration,
	)
	return m
}

// NewMetricsForTesting creates Metrics that are not registered anywhere, so
// that tests can create as many as they like.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		Searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "Horizon crossing searches by target and direction.",
		}, []string{"target", "direction"}),
		SearchErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_errors_total",
			Help:      "Searches rejected for malformed input.",
		}, []string{"target"}),
		ProviderCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_calls_total",
			Help:      "Batch position provider evaluations.",
		}, []string{"target"}),
		Events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Crossings returned by direction and validity.",
		}, []string{"direction", "valid"}),
		Samples: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_samples",
			Help:      "Coarse samples per search.",
			Buckets:   []float64{2, 5, 10, 50, 100, 500, 1000, 5000},
		}),
		SearchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "Wall time of one crossing search.",
			Buckets:   []float64{0.0001, 0.001, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"target"}),
	}
}

// Search is the summary of one finished search.
type Search struct {
	Target        string
	Direction     string
	Samples       int
	ProviderCalls int
	Valid         int
	Invalid       int
	Duration      time.Duration
}

// ObserveSearch records a finished search.
func (m *Metrics) ObserveSearch(s Search) {
	if m == nil {
		return
	}
	m.Searches.WithLabelValues(s.Target, s.Direction).Inc()
	m.ProviderCalls.WithLabelValues(s.Target).Add(float64(s.ProviderCalls))
	m.Events.WithLabelValues(s.Direction, strconv.FormatBool(true)).Add(float64(s.Valid))
	m.Events.WithLabelValues(s.Direction, strconv.FormatBool(false)).Add(float64(s.Invalid))
	m.Samples.Observe(float64(s.Samples))
	m.SearchDuration.WithLabelValues(s.Target).Observe(s.Duration.Seconds())
}

// ObserveError records a search rejected before sampling.
func (m *Metrics) ObserveError(target string) {
	if m == nil {
		return
	}
	m.SearchErrors.WithLabelValues(target).Inc()
}
