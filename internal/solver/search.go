package solver

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/thurmanmarka/glidepath/internal/ephem"
	"github.com/thurmanmarka/glidepath/internal/log"
)

const (
	// DefaultPasses is the number of corrective passes after interpolation.
	// Declination drifts slowly next to the hour angle, so two passes bring
	// the Sun well below a second.
	DefaultPasses = 2

	// MaxPasses bounds the refinement.
	MaxPasses = 10
)

// ErrInvalidPasses is returned when the number of refinement passes is out of
// range.
var ErrInvalidPasses = errors.New("invalid number of refinement passes")

// ErrInvalidRate is returned for a non-positive or non-finite hour-angle rate.
var ErrInvalidRate = errors.New("invalid hour-angle rate")

// Config tunes a crossing search.
type Config struct {
	Step      float64         // coarse sampling cadence, days
	Passes    int             // corrective passes after interpolation
	Rate      float64         // nominal hour-angle rate, radians per day
	Tolerance float64         // stop refining early below this |correction| (radians); 0 disables
	Precision ephem.Precision // handed to the provider on every call
}

// DefaultConfig returns the standard tuning: 0.8 day samples, two passes, a
// rate of one turn per day, full-precision nutation.
func DefaultConfig() Config {
	return Config{
		Step:      DefaultStep,
		Passes:    DefaultPasses,
		Rate:      Tau,
		Precision: ephem.PrecisionFull,
	}
}

// Validate checks the parts of the configuration that do not depend on the
// search interval.
func (c Config) Validate() error {
	if c.Passes < 1 || c.Passes > MaxPasses {
		return fmt.Errorf("%w: %d (want 1..%d)", ErrInvalidPasses, c.Passes, MaxPasses)
	}
	if math.IsNaN(c.Rate) || math.IsInf(c.Rate, 0) || c.Rate <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidRate, c.Rate)
	}
	if math.IsNaN(c.Step) || c.Step <= 0 || c.Step >= MaxStep {
		return fmt.Errorf("%w: %v days (want 0 < step < %v)", ErrInvalidStep, c.Step, MaxStep)
	}
	return nil
}

// Stats describes the work done by one search.
type Stats struct {
	Samples       int // coarse samples
	Brackets      int // brackets found
	ProviderCalls int // calls to Provider.Observe
	Dropped       int // refined crossings that fell outside [start, end)
}

// Result is the outcome of Search.
type Result struct {
	Crossings []Crossing
	Stats     Stats
}

// countingProvider counts Observe calls for Stats.
type countingProvider struct {
	Provider
	calls int
}

func (c *countingProvider) Observe(tt []float64, prec ephem.Precision) ([]float64, []float64) {
	c.calls++
	return c.Provider.Observe(tt, prec)
}

// FindCrossings returns the crossings of altitude alt (radians) in direction
// dir within [start, end) (TT Julian dates), in ascending time order. lat is
// the observer latitude in radians.
//
// Degenerate geometry never fails the search: the crossings come back with a
// Geometry other than GeometryCrossing, or with non-finite times.
func FindCrossings(p Provider, lat, alt, start, end float64, dir Direction, cfg Config) ([]Crossing, error) {
	res, err := Search(p, lat, alt, start, end, dir, cfg)
	if err != nil {
		return nil, err
	}
	return res.Crossings, nil
}

// Search is FindCrossings with statistics.
func Search(p Provider, lat, alt, start, end float64, dir Direction, cfg Config) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}

	samples, err := Sample(start, end, cfg.Step)
	if err != nil {
		return Result{}, err
	}
	// One sample at or past end closes the bracket around a crossing in the
	// last partial step. clip removes whatever lands outside afterwards.
	samples = append(samples, start+float64(len(samples))*cfg.Step)

	cp := &countingProvider{Provider: p}

	// Step 1: coarse scan over the whole span in one batch.
	ha, dec := cp.Observe(samples, cfg.Precision)
	brackets := DetectBrackets(ha, dec, lat, alt, dir)

	// Step 2: first guesses, then the fixed number of corrective passes.
	estimates := Interpolate(samples, brackets)
	crossings := Refine(cp, estimates, lat, alt, dir, cfg)

	kept, dropped := clip(crossings, start, end)
	sortCrossings(kept)

	stats := Stats{
		Samples:       len(samples),
		Brackets:      brackets.Len(),
		ProviderCalls: cp.calls,
		Dropped:       dropped,
	}

	log.Debugw("horizon crossing search",
		"direction", dir.String(),
		"samples", stats.Samples,
		"brackets", stats.Brackets,
		"provider_calls", stats.ProviderCalls,
		"dropped", stats.Dropped,
		"precision", cfg.Precision.String(),
	)

	return Result{Crossings: kept, Stats: stats}, nil
}

// clip drops finite crossings that refinement pushed outside [start, end).
// Non-finite ones are kept so the caller sees the degenerate result.
func clip(cs []Crossing, start, end float64) ([]Crossing, int) {
	kept := cs[:0]
	dropped := 0
	for _, c := range cs {
		if isFinite(c.TT) && (c.TT < start || c.TT >= end) {
			dropped++
			continue
		}
		kept = append(kept, c)
	}
	return kept, dropped
}

// sortCrossings orders by time with non-finite times last.
func sortCrossings(cs []Crossing) {
	sort.SliceStable(cs, func(i, j int) bool {
		a, b := cs[i].TT, cs[j].TT
		fa, fb := isFinite(a), isFinite(b)
		if !fa || !fb {
			return fa && !fb
		}
		return a < b
	})
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// Merge combines crossings of both directions into one time-ordered slice.
func Merge(a, b []Crossing) []Crossing {
	out := make([]Crossing, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	sortCrossings(out)
	return out
}
