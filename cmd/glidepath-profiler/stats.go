package main

import (
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// summary describes a set of signed errors in minutes (ours - reference).
type summary struct {
	Count   int
	Min     float64
	Max     float64
	Mean    float64
	StdDev  float64
	MeanAbs float64
}

// summarize ignores NaN entries, which stand for days where either side had
// no event.
func summarize(values []float64) summary {
	xs := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			xs = append(xs, v)
		}
	}
	if len(xs) == 0 {
		nan := math.NaN()
		return summary{Min: nan, Max: nan, Mean: nan, StdDev: nan, MeanAbs: nan}
	}

	abs := make([]float64, len(xs))
	for i, v := range xs {
		abs[i] = math.Abs(v)
	}

	s := summary{
		Count:   len(xs),
		Min:     floats.Min(xs),
		Max:     floats.Max(xs),
		MeanAbs: stat.Mean(abs, nil),
	}
	if len(xs) == 1 {
		s.Mean = xs[0]
		return s
	}
	s.Mean, s.StdDev = stat.MeanStdDev(xs, nil)
	return s
}

// diffMinutesSigned returns a - b in minutes, or NaN when either is missing.
func diffMinutesSigned(a, b time.Time) float64 {
	if a.IsZero() || b.IsZero() {
		return math.NaN()
	}
	return a.Sub(b).Minutes()
}
