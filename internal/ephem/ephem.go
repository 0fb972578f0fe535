// Package ephem computes apparent hour angle and declination of a target as
// seen from a site on the Earth. It is the position provider consumed by the
// solver.
//
// Positions come from the analytic series in github.com/soniakeys/meeus: the
// Sun from the Meeus chapter 25 theory, the Moon from the chapter 47 series,
// and fixed stars from their catalogue place. Nutation can be evaluated either
// from the full IAU 1980 series or from its truncated form; the choice is a
// per-call argument, never state held on a shared object.
package ephem

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/soniakeys/meeus/v3/nutation"
	"github.com/soniakeys/unit"
)

// Precision selects how nutation is evaluated. The chosen model supplies
// both Δψ and Δε for every target.
type Precision int

const (
	// PrecisionFull uses the complete IAU 1980 nutation series.
	PrecisionFull Precision = iota
	// PrecisionFast uses the truncated four-term nutation model. It is several
	// times cheaper and changes rise/set times by well under a second.
	PrecisionFast
)

// ErrUnknownPrecision is returned by ParsePrecision for unrecognized names.
var ErrUnknownPrecision = errors.New("unknown precision")

func (p Precision) String() string {
	switch p {
	case PrecisionFull:
		return "full"
	case PrecisionFast:
		return "fast"
	default:
		return fmt.Sprintf("Precision(%d)", int(p))
	}
}

// ParsePrecision parses "full" or "fast" (case-insensitive).
func ParsePrecision(s string) (Precision, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "full", "":
		return PrecisionFull, nil
	case "fast":
		return PrecisionFast, nil
	default:
		return PrecisionFull, fmt.Errorf("%w: %q", ErrUnknownPrecision, s)
	}
}

// Site is an observer location on the Earth's surface.
type Site struct {
	Lat       unit.Angle // geodetic latitude, north positive
	Lon       unit.Angle // longitude, east positive
	Elevation float64    // meters above sea level
}

// NewSite builds a Site from degrees and meters.
func NewSite(latDeg, lonDeg, elevationM float64) Site {
	return Site{
		Lat:       unit.AngleFromDeg(latDeg),
		Lon:       unit.AngleFromDeg(lonDeg),
		Elevation: elevationM,
	}
}

// Equatorial holds apparent geocentric equatorial coordinates.
type Equatorial struct {
	RA       unit.RA
	Dec      unit.Angle
	Distance float64 // km from the geocenter; 0 when effectively infinite
}

// Nutation bundles the nutation quantities a target needs at one instant.
type Nutation struct {
	Longitude unit.Angle // Δψ
	Obliquity unit.Angle // true obliquity of the ecliptic, ε0 + Δε
}

// NutationAt evaluates nutation at TT Julian date jde with the given precision.
func NutationAt(jde float64, prec Precision) Nutation {
	var dpsi, deps unit.Angle
	if prec == PrecisionFast {
		dpsi, deps = nutation.ApproxNutation(jde)
	} else {
		dpsi, deps = nutation.Nutation(jde)
	}
	return Nutation{
		Longitude: dpsi,
		Obliquity: nutation.MeanObliquity(jde) + deps,
	}
}

// EquationOfEquinoxes is the difference between apparent and mean sidereal
// time, as an angle.
func (n Nutation) EquationOfEquinoxes() unit.Angle {
	return n.Longitude.Mul(n.Obliquity.Cos())
}

// Target is anything whose apparent geocentric place can be computed.
type Target interface {
	Name() string
	// Apparent returns the apparent geocentric place at TT Julian date jde.
	Apparent(jde float64, nut Nutation) Equatorial
}

// wrapPi reduces an angle in radians to [-π, π].
func wrapPi(a float64) float64 {
	return math.Remainder(a, 2*math.Pi)
}
