package solver

import (
	"math"
)

// AltitudeFunc returns the topocentric altitude, in radians, at every TT
// Julian date in tt.
type AltitudeFunc func(tt []float64) []float64

// DefaultDiscreteStep is the sampling cadence of FindDiscrete, in days. One
// hour is short enough that a rise and the following set never share a step
// outside the polar regions.
const DefaultDiscreteStep = 1.0 / 24

// DefaultDiscreteTolerance stops bisection once the bracket is narrower than
// this many days (about 0.01 s).
const DefaultDiscreteTolerance = 1e-7

// FindDiscrete returns every time in [start, end) at which f crosses target
// in direction dir. It samples f every step days, then bisects each
// sign change until the bracket is narrower than tol days.
//
// It is the slow reference for FindCrossings and makes no assumption about
// how the altitude varies.
func FindDiscrete(f AltitudeFunc, start, end, target float64, dir Direction, step, tol float64) []float64 {
	if !(end > start) || !(step > 0) {
		return nil
	}
	if !(tol > 0) {
		tol = DefaultDiscreteTolerance
	}

	// Step 1: sample across [start, end) looking for sign changes
	// in (altitude − target).
	n := int(math.Ceil((end-start)/step)) + 1
	grid := make([]float64, n)
	for i := range grid {
		grid[i] = math.Min(start+float64(i)*step, end)
	}
	alt := f(grid)

	var lo, hi, altLo []float64
	for i := 1; i < n; i++ {
		a1, a2 := alt[i-1]-target, alt[i]-target
		if hasCrossing(a1, a2, dir) {
			lo = append(lo, grid[i-1])
			hi = append(hi, grid[i])
			altLo = append(altLo, a1)
		}
	}
	if len(lo) == 0 {
		return nil
	}

	// Step 2: bisect all brackets together, one batch evaluation per halving.
	bisect(f, lo, hi, altLo, target, dir, tol)

	out := make([]float64, 0, len(lo))
	for k := range lo {
		mid := lo[k] + (hi[k]-lo[k])/2
		if mid >= start && mid < end {
			out = append(out, mid)
		}
	}
	return out
}

func hasCrossing(a1, a2 float64, dir Direction) bool {
	switch dir {
	case Rising:
		return a1 < 0 && a2 >= 0
	case Setting:
		return a1 > 0 && a2 <= 0
	default:
		return a1*a2 <= 0
	}
}

func bisect(f AltitudeFunc, lo, hi, altLo []float64, target float64, dir Direction, tol float64) {
	mid := make([]float64, len(lo))
	for {
		width := 0.0
		for k := range lo {
			width = math.Max(width, hi[k]-lo[k])
			mid[k] = lo[k] + (hi[k]-lo[k])/2
		}
		if width <= tol {
			return
		}

		altMid := f(mid)
		for k := range lo {
			am := altMid[k] - target
			if hasCrossing(altLo[k], am, dir) {
				hi[k] = mid[k]
			} else {
				lo[k], altLo[k] = mid[k], am
			}
		}
	}
}
