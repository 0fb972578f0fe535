package ephem

import (
	"math"

	"github.com/soniakeys/meeus/v3/globe"
	"github.com/soniakeys/meeus/v3/sidereal"

	"github.com/thurmanmarka/glidepath/internal/timeutil"
)

// Observation pairs a site with a target. It is the batch position provider
// used by the solver.
type Observation struct {
	site   Site
	target Target

	// parallax constants ρ sin φ′ and ρ cos φ′ of the site
	rhoSinPhi float64
	rhoCosPhi float64
}

// NewObservation returns the provider for target as seen from site.
func NewObservation(site Site, target Target) *Observation {
	s, c := globe.Earth76.ParallaxConstants(site.Lat, site.Elevation)
	return &Observation{
		site:      site,
		target:    target,
		rhoSinPhi: s,
		rhoCosPhi: c,
	}
}

// Site returns the observing site.
func (o *Observation) Site() Site { return o.site }

// Target returns the observed target.
func (o *Observation) Target() Target { return o.target }

// Latitude returns the site latitude in radians.
func (o *Observation) Latitude() float64 { return o.site.Lat.Rad() }

// Observe returns the apparent topocentric hour angle and declination of the
// target, in radians, at each TT Julian date in tt. Hour angles are reduced to
// [-π, π] and measured westward from the meridian.
func (o *Observation) Observe(tt []float64, prec Precision) (ha, dec []float64) {
	ha = make([]float64, len(tt))
	dec = make([]float64, len(tt))
	for i, jde := range tt {
		ha[i], dec[i] = o.hourAngleDec(jde, prec)
	}
	return ha, dec
}

// Altitude returns the target's topocentric geometric altitude in radians at
// each TT Julian date in tt.
func (o *Observation) Altitude(tt []float64, prec Precision) []float64 {
	ha, dec := o.Observe(tt, prec)
	sφ, cφ := o.site.Lat.Sincos()
	alt := make([]float64, len(tt))
	for i := range tt {
		sinAlt := sφ*math.Sin(dec[i]) + cφ*math.Cos(dec[i])*math.Cos(ha[i])
		alt[i] = math.Asin(sinAlt)
	}
	return alt
}

func (o *Observation) hourAngleDec(jde float64, prec Precision) (float64, float64) {
	nut := NutationAt(jde, prec)
	eq := o.target.Apparent(jde, nut)

	// Apparent local sidereal time: GMST from UT plus the equation of the
	// equinoxes, shifted by east longitude.
	gmst := sidereal.Mean(timeutil.UTFromTT(jde)).Rad()
	lst := gmst + nut.EquationOfEquinoxes().Rad() + o.site.Lon.Rad()

	H := wrapPi(lst - eq.RA.Rad())
	δ := eq.Dec.Rad()

	if eq.Distance > 0 {
		H, δ = o.topocentric(H, δ, eq.Distance)
	}
	return H, δ
}

// topocentric applies diurnal parallax (Meeus eq. 40.2, 40.3) to a geocentric
// hour angle and declination.
func (o *Observation) topocentric(H, δ, distanceKm float64) (float64, float64) {
	sinπ := globe.Earth76.Er / distanceKm
	if sinπ >= 1 {
		// ridiculously close / invalid, leave the place geocentric
		return H, δ
	}

	sinH, cosH := math.Sincos(H)
	sinδ, cosδ := math.Sincos(δ)

	// Δα (correction to RA)
	deltaAlpha := math.Atan2(
		-o.rhoCosPhi*sinπ*sinH,
		cosδ-o.rhoCosPhi*sinπ*cosH,
	)

	decTopo := math.Atan2(
		(sinδ-o.rhoSinPhi*sinπ)*math.Cos(deltaAlpha),
		cosδ-o.rhoCosPhi*sinπ*cosH,
	)

	// H′ = H − Δα
	return wrapPi(H - deltaAlpha), decTopo
}
