// Package timeutil converts between civil instants and the continuous
// Terrestrial Time scale the solver does its arithmetic in.
//
// An instant on the TT scale is a float64 Julian date. Batches of instants are
// plain []float64 so that the solver can work on whole arrays at once.
package timeutil

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/deltat"
	"github.com/soniakeys/meeus/v3/julian"
)

// SecondsPerDay is the length of a TT day in SI seconds.
const SecondsPerDay = 86400.0

// J2000 is the Julian date of the J2000.0 epoch (2000-01-01 12:00 TT).
const J2000 = 2451545.0

// -----------------------------
// Delta T
// -----------------------------

// DeltaT returns TT − UT in seconds at the given (UT) Julian date.
//
// Table 10.A is used where it has data; outside it the polynomial valid after
// 2000 takes over.
func DeltaT(jd float64) float64 {
	year := 2000 + (jd-J2000)/365.25
	if year >= 1620 && year < 1998 {
		return deltat.Interp10A(jd).Sec()
	}
	return deltat.PolyAfter2000(year).Sec()
}

// -----------------------------
// Scalar conversions
// -----------------------------

// TTFromTime returns the TT Julian date of the civil instant t.
func TTFromTime(t time.Time) float64 {
	jd := julian.TimeToJD(t.UTC())
	return jd + DeltaT(jd)/SecondsPerDay
}

// UTFromTT returns the UT Julian date matching a TT Julian date.
//
// ΔT changes by well under a second per year, so evaluating it at the TT date
// instead of the (unknown) UT date is exact to far below a microsecond.
func UTFromTT(tt float64) float64 {
	return tt - DeltaT(tt)/SecondsPerDay
}

// TimeFromTT returns the UTC civil instant of a TT Julian date. Non-finite
// input yields the zero time.
func TimeFromTT(tt float64) time.Time {
	if math.IsNaN(tt) || math.IsInf(tt, 0) {
		return time.Time{}
	}
	return julian.JDToTime(UTFromTT(tt)).UTC()
}

// -----------------------------
// Batch conversions
// -----------------------------

// TTFromTimes converts a batch of civil instants.
func TTFromTimes(ts []time.Time) []float64 {
	out := make([]float64, len(ts))
	for i, t := range ts {
		out[i] = TTFromTime(t)
	}
	return out
}

// UTFromTTs converts a batch of TT Julian dates to UT Julian dates.
func UTFromTTs(tt []float64) []float64 {
	out := make([]float64, len(tt))
	for i, v := range tt {
		out[i] = UTFromTT(v)
	}
	return out
}

// TimesFromTT converts a batch of TT Julian dates to UTC instants.
func TimesFromTT(tt []float64) []time.Time {
	out := make([]time.Time, len(tt))
	for i, v := range tt {
		out[i] = TimeFromTT(v)
	}
	return out
}

// -----------------------------
// Basic degree/radian helpers.
// -----------------------------

func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180.0
}

func Rad2Deg(r float64) float64 {
	return r * 180.0 / math.Pi
}

func Normalize360(d float64) float64 {
	d = math.Mod(d, 360.0)
	if d < 0 {
		d += 360.0
	}
	return d
}

// LocalMidnight returns 00:00 of t's calendar date in t's location.
func LocalMidnight(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
