package ephem

import (
	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/coord"
	"github.com/soniakeys/meeus/v3/solar"
	"github.com/soniakeys/unit"
)

// kmPerAU is the astronomical unit in kilometers.
const kmPerAU = 149597870.7

// aberrationConstant is the annual aberration at 1 AU, in arcseconds.
const aberrationConstant = 20.4898

// Sun is the Sun as seen from the Earth.
type Sun struct{}

func (Sun) Name() string { return "sun" }

// Apparent returns the Sun's apparent geocentric RA/Dec.
//
//	λ = ☉ + Δψ − 20.4898″/R
//
// with ☉ the true geometric longitude (Meeus 25.2) and Δψ from the requested
// nutation model, so both precisions affect the Sun the same way they affect
// every other target.
func (Sun) Apparent(jde float64, nut Nutation) Equatorial {
	T := base.J2000Century(jde)

	s, _ := solar.True(T)
	R := solar.Radius(T)
	λ := s + nut.Longitude + unit.AngleFromSec(-aberrationConstant/R)

	sε, cε := nut.Obliquity.Sincos()
	α, δ := coord.EclToEq(λ, 0, sε, cε)

	return Equatorial{
		RA:       α,
		Dec:      δ,
		Distance: R * kmPerAU,
	}
}
