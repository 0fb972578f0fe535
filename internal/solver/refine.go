package solver

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/thurmanmarka/glidepath/internal/ephem"
)

// Provider supplies apparent hour angle and declination, in radians, of one
// target seen from one site, at every TT Julian date in tt. The precision is
// passed on every call.
type Provider interface {
	Observe(tt []float64, prec ephem.Precision) (ha, dec []float64)
}

// Crossing is one refined altitude crossing.
type Crossing struct {
	TT        float64   // TT Julian date
	Direction Direction // rising or setting
	Geometry  Geometry  // classification from the final refinement pass
	Residual  float64   // |hour-angle correction| of the final pass, radians
}

// Valid reports whether the crossing is a genuine one with a finite time.
func (c Crossing) Valid() bool {
	return c.Geometry == GeometryCrossing && !math.IsNaN(c.TT) && !math.IsInf(c.TT, 0)
}

// Converged reports whether the crossing is valid and its final correction
// was at most tol radians. A large residual means the declination moved too
// fast for the fixed number of passes and the time is only approximate.
func (c Crossing) Converged(tol float64) bool {
	return c.Valid() && c.Residual <= tol
}

// Refine improves first-estimate crossing times with cfg.Passes corrective
// passes. Each pass observes the target at the current estimates, recomputes
// the crossing hour angle for the declination found there, and shifts every
// estimate by the remaining hour-angle gap divided by the hour-angle rate.
//
// There is no convergence loop: the number of passes is fixed. When
// cfg.Tolerance is positive, passes stop early once every correction is
// smaller than it. The returned slice has one Crossing per estimate, in the
// same order.
func Refine(p Provider, estimates []float64, lat, alt float64, dir Direction, cfg Config) []Crossing {
	n := len(estimates)
	if n == 0 {
		return nil
	}

	t := append([]float64(nil), estimates...)
	adj := make([]float64, n)
	var ratio []float64

	for pass := 0; pass < cfg.Passes; pass++ {
		ha, dec := p.Observe(t, cfg.Precision)

		var desired []float64
		desired, ratio = DesiredHourAngles(lat, dec, alt, dir)

		floats.SubTo(adj, desired, ha)
		for i, a := range adj {
			adj[i] = WrapSigned(a)
		}

		// t += adj / rate
		floats.AddScaled(t, 1/cfg.Rate, adj)

		if cfg.Tolerance > 0 && maxAbs(adj) < cfg.Tolerance {
			break
		}
	}

	out := make([]Crossing, n)
	for i := range out {
		out[i] = Crossing{
			TT:        t[i],
			Direction: dir,
			Geometry:  Classify(ratio[i]),
			Residual:  math.Abs(adj[i]),
		}
	}
	return out
}

func maxAbs(s []float64) float64 {
	m := 0.0
	for _, v := range s {
		if a := math.Abs(v); a > m || math.IsNaN(a) {
			m = a
		}
	}
	return m
}
