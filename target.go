package glidepath

import (
	"fmt"

	"github.com/thurmanmarka/glidepath/internal/ephem"
)

// Standard horizons in degrees: the altitude of the body's center at the
// moment its upper limb touches a sea-level horizon under mean refraction.
const (
	// HorizonSun allows 34′ of refraction and 16′ of semi-diameter.
	HorizonSun = -0.8333
	// HorizonStar allows refraction only.
	HorizonStar = -0.5667
	// HorizonMoon is for the topocentric Moon (parallax already applied to
	// its place), with its mean semi-diameter of 15.5′.
	HorizonMoon = -0.8333
)

// Target is something whose horizon crossings can be searched for: a Body or
// a Star.
type Target interface {
	Name() string
	ephemeris() ephem.Target
}

// Body represents a celestial body.
type Body int

const (
	Sun Body = iota
	Moon
)

func (b Body) String() string {
	switch b {
	case Sun:
		return "sun"
	case Moon:
		return "moon"
	default:
		return fmt.Sprintf("Body(%d)", int(b))
	}
}

// Name implements Target.
func (b Body) Name() string { return b.String() }

// Horizon returns the standard horizon of the body, in degrees.
func (b Body) Horizon() float64 {
	if b == Moon {
		return HorizonMoon
	}
	return HorizonSun
}

func (b Body) ephemeris() ephem.Target {
	switch b {
	case Sun:
		return ephem.Sun{}
	case Moon:
		return ephem.Moon{}
	default:
		return nil
	}
}

// Star is a fixed star given by catalogue coordinates in degrees. Precession
// and proper motion are not applied.
type Star struct {
	Label string
	RA    float64 // right ascension, degrees
	Dec   float64 // declination, degrees
}

// Name implements Target.
func (s Star) Name() string { return s.ephemeris().Name() }

func (s Star) ephemeris() ephem.Target {
	return ephem.NewStar(s.Label, s.RA, s.Dec)
}

// ParseBody parses "sun" or "moon".
func ParseBody(s string) (Body, error) {
	switch s {
	case "sun":
		return Sun, nil
	case "moon":
		return Moon, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownTarget, s)
	}
}
