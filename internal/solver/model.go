// Package solver finds the times at which a target crosses an altitude.
//
// The fast path (FindCrossings) exploits the roughly one-turn-per-day motion
// of the target's hour angle: for each coarse sample it predicts, from the
// spherical triangle, the hour angle at which the target would meet the
// altitude if its declination stayed put, brackets the samples where the
// phase to that hour angle wraps through 2π, interpolates linearly, and then
// applies a fixed number of cheap corrective passes.
//
// FindDiscrete is the slow reference: it samples the altitude directly and
// bisects every sign change.
package solver

import (
	"fmt"
	"math"
)

// Tau is one full turn in radians; also the nominal hour-angle rate per day.
const Tau = 2 * math.Pi

// Direction selects rising or setting crossings.
type Direction int

const (
	// Rising means the altitude is increasing through the threshold.
	Rising Direction = iota
	// Setting means the altitude is decreasing through the threshold.
	Setting
)

func (d Direction) String() string {
	switch d {
	case Rising:
		return "rise"
	case Setting:
		return "set"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// sign maps the crossing hour-angle magnitude H to the signed hour angle of
// the crossing: −H when rising, +H when setting.
func (d Direction) sign() float64 {
	if d == Setting {
		return 1
	}
	return -1
}

// Geometry describes how a target's diurnal circle meets an altitude.
type Geometry int

const (
	// GeometryCrossing is a genuine crossing: the altitude is reached twice a
	// day at a well defined hour angle.
	GeometryCrossing Geometry = iota
	// GeometryNeverRises means the whole diurnal circle lies below the
	// altitude; the model saturated to H = 0.
	GeometryNeverRises
	// GeometryCircumpolar means the whole diurnal circle lies above the
	// altitude; the model saturated to H = π.
	GeometryCircumpolar
	// GeometryUndefined means the model produced NaN (0/0 at a pole).
	GeometryUndefined
)

func (g Geometry) String() string {
	switch g {
	case GeometryCrossing:
		return "crossing"
	case GeometryNeverRises:
		return "never-rises"
	case GeometryCircumpolar:
		return "circumpolar"
	case GeometryUndefined:
		return "undefined"
	default:
		return fmt.Sprintf("Geometry(%d)", int(g))
	}
}

// CrossingRatio returns cos H for the hour angle H at which a body of
// declination dec reaches altitude alt, seen from latitude lat (radians):
//
//	cos H = (sin alt − sin lat · sin dec) / (cos lat · cos dec)
//
// The ratio is not clipped. A zero denominator yields ±Inf or NaN.
func CrossingRatio(lat, dec, alt float64) float64 {
	numerator := math.Sin(alt) - math.Sin(lat)*math.Sin(dec)
	denominator := math.Cos(lat) * math.Cos(dec)
	return numerator / denominator
}

// Classify reports the geometry behind a crossing ratio.
func Classify(ratio float64) Geometry {
	switch {
	case math.IsNaN(ratio):
		return GeometryUndefined
	case ratio >= 1:
		return GeometryNeverRises
	case ratio <= -1:
		return GeometryCircumpolar
	default:
		return GeometryCrossing
	}
}

// HourAngleFromRatio returns arccos of the ratio clipped to [−1, 1]. NaN passes
// through.
func HourAngleFromRatio(ratio float64) float64 {
	if ratio > 1 {
		ratio = 1
	} else if ratio < -1 {
		ratio = -1
	}
	return math.Acos(ratio)
}

// HourAngleAtAltitude returns the positive hour angle, in radians, at which a
// body of declination dec sets through altitude alt for an observer at
// latitude lat. The rising hour angle is its negation.
//
// Outside the crossing regime the result saturates to 0 (never reaches the
// altitude) or π (never drops below it). Use Classify on CrossingRatio to
// tell those apart from a genuine tangency.
func HourAngleAtAltitude(lat, dec, alt float64) float64 {
	return HourAngleFromRatio(CrossingRatio(lat, dec, alt))
}

// HourAngleAtAltitudeBatch evaluates HourAngleAtAltitude for every declination
// in dec. It also returns the unclipped ratios so that callers can classify
// each value.
func HourAngleAtAltitudeBatch(lat float64, dec []float64, alt float64) (h, ratio []float64) {
	h = make([]float64, len(dec))
	ratio = make([]float64, len(dec))

	sinLat, cosLat := math.Sincos(lat)
	sinAlt := math.Sin(alt)
	for i, d := range dec {
		sinDec, cosDec := math.Sincos(d)
		ratio[i] = (sinAlt - sinLat*sinDec) / (cosLat * cosDec)
		h[i] = HourAngleFromRatio(ratio[i])
	}
	return h, ratio
}
