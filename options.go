package glidepath

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/thurmanmarka/glidepath/internal/ephem"
	"github.com/thurmanmarka/glidepath/internal/observability"
	"github.com/thurmanmarka/glidepath/internal/solver"
)

// Precision selects the nutation model used for apparent places.
type Precision = ephem.Precision

const (
	// PrecisionFull uses the full IAU 1980 nutation series.
	PrecisionFull = ephem.PrecisionFull
	// PrecisionFast uses the abbreviated series (good to about 0.5″).
	PrecisionFast = ephem.PrecisionFast
)

// DefaultStep is the default coarse sampling step in days.
const DefaultStep = solver.DefaultStep

// Option tunes a search.
type Option func(*settings)

type settings struct {
	cfg     solver.Config
	metrics *observability.Metrics
}

func newSettings(opts []Option) settings {
	s := settings{cfg: solver.DefaultConfig()}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// WithStep sets the coarse sampling step in days. It must be below one day.
func WithStep(days float64) Option {
	return func(s *settings) { s.cfg.Step = days }
}

// WithPrecision selects the nutation model.
func WithPrecision(p Precision) Option {
	return func(s *settings) { s.cfg.Precision = p }
}

// WithPasses sets the number of corrective passes after interpolation.
func WithPasses(n int) Option {
	return func(s *settings) { s.cfg.Passes = n }
}

// WithTolerance stops refinement early once every hour-angle correction is
// below tol radians.
func WithTolerance(tol float64) Option {
	return func(s *settings) { s.cfg.Tolerance = tol }
}

// Metrics holds Prometheus collectors for crossing searches.
type Metrics = observability.Metrics

// NewMetrics creates search metrics registered with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return observability.NewMetrics(reg)
}

// WithMetrics records every search in m.
func WithMetrics(m *Metrics) Option {
	return func(s *settings) { s.metrics = m }
}
