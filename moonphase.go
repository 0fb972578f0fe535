package glidepath

import (
	"math"
	"time"

	"github.com/thurmanmarka/glidepath/internal/ephem"
	"github.com/thurmanmarka/glidepath/internal/timeutil"
)

// MoonPhase describes the illuminated fraction and qualitative phase
// of the Moon at a given instant.
type MoonPhase struct {
	Time       time.Time // the instant this phase is evaluated at
	Fraction   float64   // illuminated fraction [0..1], 0=new, 1=full
	Elongation float64   // Sun-Moon angular separation in degrees [0..180]
	Waxing     bool      // true if waxing (illumination increasing), false if waning
	Name       string    // e.g. "New Moon", "Waxing Crescent", "First Quarter", ...
}

// MoonPhaseAt computes the Moon's illuminated fraction and qualitative phase
// at the given time. Phase is a global property (independent of observer
// location), so geocentric places are used and the original time is
// returned.
func MoonPhaseAt(t time.Time) (MoonPhase, error) {
	jde := timeutil.TTFromTime(t)
	nut := ephem.NutationAt(jde, ephem.PrecisionFast)

	s := ephem.Sun{}.Apparent(jde, nut)
	m := ephem.Moon{}.Apparent(jde, nut)

	sinDecS, cosDecS := s.Dec.Sincos()
	sinDecM, cosDecM := m.Dec.Sincos()

	// Angular separation ψ between Sun and Moon:
	// cos ψ = sin δs sin δm + cos δs cos δm cos(αs - αm)
	cosPsi := sinDecS*sinDecM + cosDecS*cosDecM*math.Cos(s.RA.Rad()-m.RA.Rad())
	cosPsi = math.Max(-1, math.Min(1, cosPsi))

	// Illuminated fraction, ignoring the small Sun-Moon parallax:
	// k = (1 - cos ψ) / 2
	fraction := 0.5 * (1 - cosPsi)

	// Waxing while the Moon is east of the Sun.
	waxing := timeutil.Normalize360(m.RA.Deg()-s.RA.Deg()) < 180.0

	return MoonPhase{
		Time:       t,
		Fraction:   fraction,
		Elongation: timeutil.Rad2Deg(math.Acos(cosPsi)),
		Waxing:     waxing,
		Name:       moonPhaseName(fraction, waxing),
	}, nil
}

func moonPhaseName(f float64, waxing bool) string {
	const (
		eps        = 0.01 // near 0 or 1
		quarterTol = 0.05 // fraction window around 0.5
	)

	switch {
	case f < eps:
		return "New Moon"
	case f > 1-eps:
		return "Full Moon"
	case math.Abs(f-0.5) < quarterTol:
		if waxing {
			return "First Quarter"
		}
		return "Last Quarter"
	case f < 0.5:
		if waxing {
			return "Waxing Crescent"
		}
		return "Waning Crescent"
	default:
		if waxing {
			return "Waxing Gibbous"
		}
		return "Waning Gibbous"
	}
}
