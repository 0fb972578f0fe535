package ephem

import (
	"github.com/soniakeys/meeus/v3/coord"
	"github.com/soniakeys/meeus/v3/moonposition"
)

// Moon is the Moon as seen from the Earth.
type Moon struct{}

func (Moon) Name() string { return "moon" }

// Apparent returns the Moon's apparent geocentric RA/Dec and distance.
//
// Roughly based on the Meeus chapter 47 series:
//
//	λ, β, Δ = geometric ecliptic longitude, latitude and distance
//	λ + Δψ  = apparent longitude (no aberration: light time is ~1.3 s)
func (Moon) Apparent(jde float64, nut Nutation) Equatorial {
	λ, β, Δ := moonposition.Position(jde)

	sε, cε := nut.Obliquity.Sincos()
	α, δ := coord.EclToEq(λ+nut.Longitude, β, sε, cε)

	return Equatorial{
		RA:       α,
		Dec:      δ,
		Distance: Δ,
	}
}
