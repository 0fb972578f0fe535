package solver

import (
	"math"

	"github.com/thurmanmarka/glidepath/internal/ephem"
)

// uniformTarget is a target whose hour angle turns exactly once per day,
// reaching the meridian at t0, with a fixed declination.
type uniformTarget struct {
	t0    float64
	dec   float64
	calls int
	precs []ephem.Precision
}

func (u *uniformTarget) Observe(tt []float64, prec ephem.Precision) ([]float64, []float64) {
	u.calls++
	u.precs = append(u.precs, prec)

	ha := make([]float64, len(tt))
	dec := make([]float64, len(tt))
	for i, t := range tt {
		ha[i] = WrapSigned(Tau * (t - u.t0))
		dec[i] = u.dec
	}
	return ha, dec
}

// altitude is the matching AltitudeFunc for an observer at lat.
func (u *uniformTarget) altitude(lat float64) AltitudeFunc {
	return func(tt []float64) []float64 {
		ha, dec := u.Observe(tt, ephem.PrecisionFull)
		out := make([]float64, len(tt))
		for i := range tt {
			out[i] = math.Asin(math.Sin(lat)*math.Sin(dec[i]) + math.Cos(lat)*math.Cos(dec[i])*math.Cos(ha[i]))
		}
		return out
	}
}
