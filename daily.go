package glidepath

import (
	"errors"
	"fmt"
	"time"

	"github.com/thurmanmarka/glidepath/internal/timeutil"
)

// TwilightKind identifies the type of twilight based on the Sun's altitude
// below the horizon.
type TwilightKind int

const (
	// TwilightCivil corresponds to the Sun's center at -6 degrees altitude.
	TwilightCivil TwilightKind = iota

	// TwilightNautical corresponds to the Sun's center at -12 degrees altitude.
	TwilightNautical

	// TwilightAstronomical corresponds to the Sun's center at -18 degrees altitude.
	TwilightAstronomical
)

// Altitude returns the solar altitude, in degrees, that defines the twilight.
func (k TwilightKind) Altitude() (float64, error) {
	switch k {
	case TwilightCivil:
		return -6.0, nil
	case TwilightNautical:
		return -12.0, nil
	case TwilightAstronomical:
		return -18.0, nil
	default:
		return 0, fmt.Errorf("unknown TwilightKind: %d", k)
	}
}

func (k TwilightKind) String() string {
	switch k {
	case TwilightCivil:
		return "civil"
	case TwilightNautical:
		return "nautical"
	case TwilightAstronomical:
		return "astronomical"
	default:
		return fmt.Sprintf("TwilightKind(%d)", int(k))
	}
}

// ParseTwilightKind parses "civil", "nautical" or "astronomical".
func ParseTwilightKind(s string) (TwilightKind, error) {
	for _, k := range []TwilightKind{TwilightCivil, TwilightNautical, TwilightAstronomical} {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown twilight kind %q", s)
}

// RiseSet holds rise and set times of a body on a given date. A zero Rise or
// Set means the body does not rise (or set) on that date.
type RiseSet struct {
	Rise time.Time
	Set  time.Time
}

// PhaseWindow represents a continuous time interval where the Sun's altitude
// stays within a particular range (e.g. golden hour or blue hour).
type PhaseWindow struct {
	Start time.Time
	End   time.Time
}

// DaylightPhases holds the morning and evening windows for a given phase
// (e.g. golden hour or blue hour).
type DaylightPhases struct {
	// Morning is the interval after dawn / sunrise.
	Morning PhaseWindow
	// Evening is the interval before dusk / sunset.
	Evening PhaseWindow

	// HasMorning / HasEvening indicate whether the corresponding window
	// exists on this date at this location (high latitudes can be weird).
	HasMorning bool
	HasEvening bool
}

var (
	// ErrNoRiseNoSet is returned when a body does not rise or set on that date at that location.
	ErrNoRiseNoSet = errors.New("body does not rise or set on this date")

	// ErrNotImplemented is returned when that body isn't supported (yet).
	ErrNotImplemented = errors.New("not implemented for this body yet")
)

// RiseSetFor returns rise and set times for the given body and location on a
// date. The date's time zone defines the calendar day and is used for the
// returned times.
func RiseSetFor(body Body, loc Coordinates, date time.Time) (RiseSet, error) {
	if body.ephemeris() == nil {
		return RiseSet{}, fmt.Errorf("%w: %v", ErrNotImplemented, body)
	}
	return crossingsOnDate(loc, body, body.Horizon(), date)
}

// SlideIntoSunset is your glorious convenience helper:
// it returns sunrise and sunset for the Sun at the given location and date.
func SlideIntoSunset(loc Coordinates, date time.Time) (RiseSet, error) {
	return RiseSetFor(Sun, loc, date)
}

// DaylightHours calculates the duration of daylight (time between sunrise and
// sunset) for the Sun at the given location and date. Returns the duration in
// hours as a float64.
//
// If the sun does not rise or set on the given date (e.g., polar regions), it
// returns 0 and ErrNoRiseNoSet.
func DaylightHours(loc Coordinates, date time.Time) (float64, error) {
	rs, err := SlideIntoSunset(loc, date)
	if err != nil {
		return 0, err
	}
	if rs.Rise.IsZero() || rs.Set.IsZero() {
		return 0, ErrNoRiseNoSet
	}

	duration := rs.Set.Sub(rs.Rise)
	return duration.Hours(), nil
}

// TwilightFor computes twilight times (dawn and dusk) of the given kind for
// a location and local calendar date. The returned RiseSet uses Rise as the
// "dawn" time (upward crossing of the twilight altitude) and Set as the
// "dusk" time (downward crossing).
//
// For example, TwilightCivil returns civil dawn (Rise) and civil dusk (Set)
// where the Sun's altitude crosses -6 degrees.
func TwilightFor(loc Coordinates, date time.Time, kind TwilightKind) (RiseSet, error) {
	targetAlt, err := kind.Altitude()
	if err != nil {
		return RiseSet{}, err
	}
	return crossingsOnDate(loc, Sun, targetAlt, date)
}

// GoldenHourFor computes the golden hour intervals for the given local
// calendar date and location. Golden hour is (approximately) defined as
// the period when the Sun's center altitude is between -4° and +6°.
//
// If neither morning nor evening golden hour exists (e.g. extreme
// high-latitude edge cases), ErrNoRiseNoSet is returned.
func GoldenHourFor(loc Coordinates, date time.Time) (DaylightPhases, error) {
	return solarPhases(loc, date, -4.0, 6.0)
}

// BlueHourFor computes the blue hour intervals for the given local calendar
// date and location. Blue hour here is defined as the period when the Sun's
// center altitude is between -6° and -4°.
//
// If neither morning nor evening blue hour exists, ErrNoRiseNoSet is returned.
func BlueHourFor(loc Coordinates, date time.Time) (DaylightPhases, error) {
	return solarPhases(loc, date, -6.0, -4.0)
}

// solarPhases returns the morning window (Sun climbing from lowAlt to
// highAlt) and the evening window (descending from highAlt to lowAlt).
func solarPhases(loc Coordinates, date time.Time, lowAlt, highAlt float64) (DaylightPhases, error) {
	low, err := crossingsOnDate(loc, Sun, lowAlt, date)
	if err != nil && !errors.Is(err, ErrNoRiseNoSet) {
		return DaylightPhases{}, err
	}
	high, err := crossingsOnDate(loc, Sun, highAlt, date)
	if err != nil && !errors.Is(err, ErrNoRiseNoSet) {
		return DaylightPhases{}, err
	}

	var phases DaylightPhases

	if !low.Rise.IsZero() && !high.Rise.IsZero() && high.Rise.After(low.Rise) {
		phases.Morning = PhaseWindow{Start: low.Rise, End: high.Rise}
		phases.HasMorning = true
	}
	if !high.Set.IsZero() && !low.Set.IsZero() && low.Set.After(high.Set) {
		phases.Evening = PhaseWindow{Start: high.Set, End: low.Set}
		phases.HasEvening = true
	}

	if !phases.HasMorning && !phases.HasEvening {
		return DaylightPhases{}, ErrNoRiseNoSet
	}
	return phases, nil
}

// crossingsOnDate returns the first valid rising and setting through altDeg
// on date's local calendar day. The search window is padded by a day on each
// side so that the coarse sampler has room to bracket crossings near
// midnight.
func crossingsOnDate(loc Coordinates, target Target, altDeg float64, date time.Time) (RiseSet, error) {
	dayStart := timeutil.LocalMidnight(date)
	dayEnd := dayStart.AddDate(0, 0, 1)

	events, err := FindRisesAndSets(loc, target, altDeg,
		dayStart.Add(-24*time.Hour), dayEnd.Add(24*time.Hour))
	if err != nil {
		return RiseSet{}, err
	}

	var rs RiseSet
	for _, ev := range events {
		if !ev.Valid || ev.Time.Before(dayStart) || !ev.Time.Before(dayEnd) {
			continue
		}
		t := ev.Time.In(date.Location())
		switch ev.Direction {
		case Rising:
			if rs.Rise.IsZero() {
				rs.Rise = t
			}
		case Setting:
			if rs.Set.IsZero() {
				rs.Set = t
			}
		}
	}

	if rs.Rise.IsZero() && rs.Set.IsZero() {
		return RiseSet{}, ErrNoRiseNoSet
	}
	return rs, nil
}
