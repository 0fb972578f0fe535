// Package glidepath finds the times at which the Sun, the Moon, or a fixed
// star crosses a given altitude, for any observer and any time span.
//
// The search samples the target's hour angle coarsely, predicts where each
// crossing falls from the spherical triangle, and polishes every estimate
// with two cheap corrective passes. Searching a whole year costs three batch
// ephemeris evaluations instead of one root-finder per day.
//
// The daily helpers (SlideIntoSunset, RiseSetFor, TwilightFor, ...) answer
// the usual almanac questions for a single local calendar date on top of the
// same search.
package glidepath

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/thurmanmarka/glidepath/internal/ephem"
	"github.com/thurmanmarka/glidepath/internal/log"
	"github.com/thurmanmarka/glidepath/internal/observability"
	"github.com/thurmanmarka/glidepath/internal/solver"
	"github.com/thurmanmarka/glidepath/internal/timeutil"
)

// Coordinates represent an observer's location.
type Coordinates struct {
	Lat       float64 // degrees, north positive
	Lon       float64 // degrees, east positive (west negative, e.g. -105 for 105°W)
	Elevation float64 // meters above sea level
}

func (c Coordinates) site() ephem.Site {
	return ephem.NewSite(c.Lat, c.Lon, c.Elevation)
}

func (c Coordinates) validate() error {
	if math.IsNaN(c.Lat) || math.Abs(c.Lat) > 90 || math.IsNaN(c.Lon) || math.Abs(c.Lon) > 180 {
		return fmt.Errorf("%w: lat %v lon %v", ErrInvalidCoordinates, c.Lat, c.Lon)
	}
	return nil
}

// Direction tells rising from setting crossings.
type Direction = solver.Direction

const (
	Rising  = solver.Rising
	Setting = solver.Setting
)

// Geometry describes how the target's daily circle meets the horizon.
type Geometry = solver.Geometry

const (
	GeometryCrossing    = solver.GeometryCrossing
	GeometryNeverRises  = solver.GeometryNeverRises
	GeometryCircumpolar = solver.GeometryCircumpolar
	GeometryUndefined   = solver.GeometryUndefined
)

// Event is one horizon crossing.
type Event struct {
	Time      time.Time // UTC; zero when TT is not finite
	TT        float64   // Terrestrial Time Julian date
	Direction Direction
	Geometry  Geometry

	// Valid is false when the target never reaches the horizon on that day
	// (or the geometry is undefined, as at a pole). Time then marks the
	// instant the target came closest, or is zero.
	Valid bool

	// Residual is the size of the last hour-angle correction, in radians.
	// One second of time is about 7.3e-5 rad; much larger values mean the
	// refinement had not settled and Time is only approximate.
	Residual float64
}

var (
	ErrInvalidInterval = solver.ErrInvalidInterval
	ErrInvalidStep     = solver.ErrInvalidStep
	ErrTooFewSamples   = solver.ErrTooFewSamples
	ErrInvalidPasses   = solver.ErrInvalidPasses

	// ErrInvalidCoordinates is returned for a latitude outside [-90, 90] or
	// a longitude outside [-180, 180].
	ErrInvalidCoordinates = errors.New("invalid observer coordinates")

	// ErrUnknownTarget is returned for a target that has no ephemeris.
	ErrUnknownTarget = errors.New("unknown target")
)

// FindHorizonCrossings returns every time in [start, end) at which target
// rises through horizonDeg degrees of altitude as seen from loc, in ascending
// order.
//
// Invalid crossings are returned too, flagged with Valid == false.
func FindHorizonCrossings(loc Coordinates, target Target, horizonDeg float64, start, end time.Time, opts ...Option) ([]Event, error) {
	return find(loc, target, horizonDeg, start, end, []Direction{Rising}, opts)
}

// FindSettings is FindHorizonCrossings for setting crossings.
func FindSettings(loc Coordinates, target Target, horizonDeg float64, start, end time.Time, opts ...Option) ([]Event, error) {
	return find(loc, target, horizonDeg, start, end, []Direction{Setting}, opts)
}

// FindRisesAndSets returns rising and setting crossings merged in time order.
func FindRisesAndSets(loc Coordinates, target Target, horizonDeg float64, start, end time.Time, opts ...Option) ([]Event, error) {
	return find(loc, target, horizonDeg, start, end, []Direction{Rising, Setting}, opts)
}

func find(loc Coordinates, target Target, horizonDeg float64, start, end time.Time, dirs []Direction, opts []Option) ([]Event, error) {
	s := newSettings(opts)

	var eph ephem.Target
	if target != nil {
		eph = target.ephemeris()
	}
	if eph == nil {
		s.metrics.ObserveError("unknown")
		return nil, fmt.Errorf("%w: %v", ErrUnknownTarget, target)
	}
	if err := loc.validate(); err != nil {
		s.metrics.ObserveError(eph.Name())
		return nil, err
	}
	if !end.After(start) {
		s.metrics.ObserveError(eph.Name())
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidInterval, start.Format(time.RFC3339), end.Format(time.RFC3339))
	}

	obs := ephem.NewObservation(loc.site(), eph)
	tt0 := timeutil.TTFromTime(start)
	tt1 := timeutil.TTFromTime(end)
	alt := timeutil.Deg2Rad(horizonDeg)

	var all []solver.Crossing
	for _, dir := range dirs {
		began := time.Now()
		res, err := solver.Search(obs, obs.Latitude(), alt, tt0, tt1, dir, s.cfg)
		if err != nil {
			s.metrics.ObserveError(eph.Name())
			return nil, err
		}

		valid := 0
		for _, c := range res.Crossings {
			if c.Valid() {
				valid++
			}
		}
		s.metrics.ObserveSearch(observability.Search{
			Target:        eph.Name(),
			Direction:     dir.String(),
			Samples:       res.Stats.Samples,
			ProviderCalls: res.Stats.ProviderCalls,
			Valid:         valid,
			Invalid:       len(res.Crossings) - valid,
			Duration:      time.Since(began),
		})
		log.Debugw("found horizon crossings",
			"target", eph.Name(),
			"direction", dir.String(),
			"horizon_deg", horizonDeg,
			"valid", valid,
			"total", len(res.Crossings),
		)

		all = solver.Merge(all, res.Crossings)
	}

	events := make([]Event, len(all))
	for i, c := range all {
		events[i] = Event{
			Time:      timeutil.TimeFromTT(c.TT),
			TT:        c.TT,
			Direction: c.Direction,
			Geometry:  c.Geometry,
			Valid:     c.Valid(),
			Residual:  c.Residual,
		}
	}
	return events, nil
}
