package ephem

import (
	"fmt"

	"github.com/soniakeys/unit"
)

// Star is a fixed point on the celestial sphere, given by its catalogue RA/Dec.
// Precession, proper motion and aberration are ignored, so the place is good
// to a few arcminutes over decades around the catalogue epoch.
type Star struct {
	Label string
	RA    unit.RA
	Dec   unit.Angle
}

// NewStar builds a Star from degrees.
func NewStar(label string, raDeg, decDeg float64) Star {
	return Star{
		Label: label,
		RA:    unit.RAFromDeg(raDeg),
		Dec:   unit.AngleFromDeg(decDeg),
	}
}

func (s Star) Name() string {
	if s.Label != "" {
		return s.Label
	}
	return fmt.Sprintf("star(%.4f,%.4f)", s.RA.Deg(), s.Dec.Deg())
}

// Apparent returns the catalogue place; Distance is 0 (no parallax).
func (s Star) Apparent(float64, Nutation) Equatorial {
	return Equatorial{RA: s.RA, Dec: s.Dec}
}
