package solver

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Brackets are the sample pairs (i, i+1) between which the phase to the
// predicted crossing wraps through 2π.
type Brackets struct {
	// Index holds the lower sample index i of every bracket, ascending.
	Index []int
	// Diff is the wrapped phase difference at every sample, in [0, 2π).
	Diff []float64
}

// Len returns the number of brackets.
func (b Brackets) Len() int { return len(b.Index) }

// Wrap reduces an angle in radians to [0, 2π).
func Wrap(x float64) float64 {
	r := math.Mod(x, Tau)
	if r < 0 {
		r += Tau
	}
	if r >= Tau {
		// -tiny + 2π can round up to 2π
		r = 0
	}
	return r
}

// WrapSigned reduces an angle in radians to [−π, π).
func WrapSigned(x float64) float64 {
	return Wrap(x+math.Pi) - math.Pi
}

// DesiredHourAngles returns the signed hour angle of the next crossing for
// each declination, assuming the declination holds still: −H for rising, +H
// for setting. The unclipped ratios are returned for classification.
func DesiredHourAngles(lat float64, dec []float64, alt float64, dir Direction) (desired, ratio []float64) {
	desired, ratio = HourAngleAtAltitudeBatch(lat, dec, alt)
	floats.Scale(dir.sign(), desired)
	return desired, ratio
}

// PhaseDifference returns, for every sample, how far the target's hour angle
// has to advance to reach the predicted crossing hour angle, wrapped into
// [0, 2π).
func PhaseDifference(ha, dec []float64, lat, alt float64, dir Direction) []float64 {
	desired, _ := DesiredHourAngles(lat, dec, alt, dir)
	diff := floats.SubTo(make([]float64, len(ha)), ha, desired)
	for i, d := range diff {
		diff[i] = Wrap(d)
	}
	return diff
}

// DetectBrackets locates the sample pairs that bracket a crossing.
//
// Between consecutive samples the wrapped phase difference normally grows as
// the hour angle advances. A decrease means the unwrapped phase passed a
// multiple of 2π, i.e. a crossing happened in between. Runs of samples leading
// up to the same crossing therefore produce one bracket only. If the step is
// too coarse to rule out two wraps between samples, the second is missed.
func DetectBrackets(ha, dec []float64, lat, alt float64, dir Direction) Brackets {
	diff := PhaseDifference(ha, dec, lat, alt, dir)
	if len(diff) < 2 {
		return Brackets{Diff: diff}
	}

	n := len(diff)
	delta := floats.SubTo(make([]float64, n-1), diff[1:], diff[:n-1])

	// NaN differences never compare below zero, so samples the model cannot
	// evaluate never open a bracket.
	idx, _ := floats.Find(nil, func(v float64) bool { return v < 0 }, delta, -1)

	return Brackets{Index: idx, Diff: diff}
}
