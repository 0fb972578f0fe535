package ephem

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/coord"
	"github.com/soniakeys/meeus/v3/solar"
	"github.com/soniakeys/unit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thurmanmarka/glidepath/internal/timeutil"
)

func ttAt(year int, month time.Month, day, hour, min int) float64 {
	return timeutil.TTFromTime(time.Date(year, month, day, hour, min, 0, 0, time.UTC))
}

func TestSunApparentSeasons(t *testing.T) {
	tests := []struct {
		name       string
		jde        float64
		wantRADeg  float64
		wantDecDeg float64
		tolDeg     float64
	}{
		{"Spring Equinox 2024", ttAt(2024, time.March, 20, 3, 6), 0, 0, 0.05},
		{"Summer Solstice 2024", ttAt(2024, time.June, 20, 20, 51), 90, 23.44, 0.05},
		{"Autumn Equinox 2024", ttAt(2024, time.September, 22, 12, 44), 180, 0, 0.05},
		{"Winter Solstice 2024", ttAt(2024, time.December, 21, 9, 20), 270, -23.44, 0.05},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eq := Sun{}.Apparent(tt.jde, NutationAt(tt.jde, PrecisionFull))

			raDiff := math.Remainder(eq.RA.Deg()-tt.wantRADeg, 360)
			assert.InDelta(t, 0, raDiff, tt.tolDeg, "RA %.4f", eq.RA.Deg())
			assert.InDelta(t, tt.wantDecDeg, eq.Dec.Deg(), tt.tolDeg)
			assert.InDelta(t, 1.0, eq.Distance/kmPerAU, 0.02)
		})
	}
}

func TestSunLongitudeFollowsNutation(t *testing.T) {
	jde := ttAt(2024, time.June, 1, 0, 0)
	nut := NutationAt(jde, PrecisionFull)

	shifted := nut
	shifted.Longitude += unit.AngleFromSec(10)

	a := Sun{}.Apparent(jde, nut)
	b := Sun{}.Apparent(jde, shifted)
	assert.Greater(t, b.RA.Rad()-a.RA.Rad(), unit.AngleFromSec(5).Rad())

	// Meeus' low-accuracy apparent longitude keeps only the leading nutation
	// term, which is good to a couple of arcseconds.
	sε, cε := nut.Obliquity.Sincos()
	ra, dec := coord.EclToEq(solar.ApparentLongitude(base.J2000Century(jde)), 0, sε, cε)
	assert.InDelta(t, ra.Rad(), a.RA.Rad(), unit.AngleFromSec(3).Rad())
	assert.InDelta(t, dec.Rad(), a.Dec.Rad(), unit.AngleFromSec(3).Rad())
}

func TestMoonApparentDistance(t *testing.T) {
	start := ttAt(2025, time.January, 1, 0, 0)
	for d := 0.0; d < 60; d += 0.5 {
		jde := start + d
		eq := Moon{}.Apparent(jde, NutationAt(jde, PrecisionFast))
		assert.Greater(t, eq.Distance, 356000.0)
		assert.Less(t, eq.Distance, 407000.0)
		assert.LessOrEqual(t, math.Abs(eq.Dec.Deg()), 29.0)
	}
}

func TestNutationPrecisionsAgree(t *testing.T) {
	jde := ttAt(2020, time.April, 10, 0, 0)
	full := NutationAt(jde, PrecisionFull)
	fast := NutationAt(jde, PrecisionFast)

	// The truncated series is good to about half an arcsecond.
	assert.InDelta(t, full.Longitude.Sec(), fast.Longitude.Sec(), 1.0)
	assert.InDelta(t, full.Obliquity.Sec(), fast.Obliquity.Sec(), 1.0)
	assert.InDelta(t, 23.436, full.Obliquity.Deg(), 0.01)
}

func TestObserveSunTransitAtGreenwich(t *testing.T) {
	// Around the June solstice the equation of time is about -1.7 minutes, so
	// the Sun crosses the Greenwich meridian at roughly 12:01:40 UTC.
	obs := NewObservation(NewSite(51.4769, 0, 0), Sun{})
	jde := timeutil.TTFromTime(time.Date(2020, time.June, 21, 12, 1, 40, 0, time.UTC))

	ha, dec := obs.Observe([]float64{jde}, PrecisionFull)
	require.Len(t, ha, 1)
	require.Len(t, dec, 1)

	// 0.25° of hour angle is one minute of time.
	assert.InDelta(t, 0, timeutil.Rad2Deg(ha[0]), 0.25)
	assert.InDelta(t, 23.44, timeutil.Rad2Deg(dec[0]), 0.05)
}

func TestObserveHourAngleAdvancesOncePerDay(t *testing.T) {
	obs := NewObservation(NewSite(40.8939, -83.8917, 0), Sun{})
	jde := ttAt(2020, time.March, 1, 0, 0)

	ha, _ := obs.Observe([]float64{jde, jde + 0.25}, PrecisionFast)
	step := math.Remainder(ha[1]-ha[0], 2*math.Pi)
	assert.InDelta(t, math.Pi/2, step, 0.01)
}

func TestPrecisionsGiveNearlyEqualHourAngles(t *testing.T) {
	obs := NewObservation(NewSite(33.4484, -112.074, 331), Moon{})
	start := ttAt(2025, time.November, 30, 0, 0)
	tt := []float64{start, start + 0.3, start + 0.6, start + 0.9}

	haFull, decFull := obs.Observe(tt, PrecisionFull)
	haFast, decFast := obs.Observe(tt, PrecisionFast)
	for i := range tt {
		assert.InDelta(t, haFull[i], haFast[i], 1e-5)
		assert.InDelta(t, decFull[i], decFast[i], 1e-5)
	}
}

func TestMoonParallaxLowersAltitude(t *testing.T) {
	site := NewSite(33.4484, -112.074, 0)
	obs := NewObservation(site, Moon{})
	jde := ttAt(2025, time.November, 30, 21, 0)

	topo := obs.Altitude([]float64{jde}, PrecisionFull)[0]

	nut := NutationAt(jde, PrecisionFull)
	eq := Moon{}.Apparent(jde, nut)
	geo := NewObservation(site, Star{RA: eq.RA, Dec: eq.Dec}).Altitude([]float64{jde}, PrecisionFull)[0]

	// Horizontal parallax of the Moon is close to one degree.
	diff := timeutil.Rad2Deg(geo - topo)
	assert.Greater(t, diff, 0.0)
	assert.Less(t, diff, 1.1)
}

func TestPoleStarAltitudeEqualsLatitude(t *testing.T) {
	pole := NewStar("pole", 0, 90)
	for _, lat := range []float64{-30, 0, 40.8939, 89} {
		obs := NewObservation(NewSite(lat, 10, 0), pole)
		alt := obs.Altitude([]float64{2459000.5, 2459000.8}, PrecisionFast)
		for _, a := range alt {
			assert.InDelta(t, lat, timeutil.Rad2Deg(a), 1e-9)
		}
	}
}

func TestStarName(t *testing.T) {
	assert.Equal(t, "Sirius", NewStar("Sirius", 101.287, -16.716).Name())
	assert.Equal(t, "star(10.0000,20.0000)", NewStar("", 10, 20).Name())
	assert.Equal(t, "sun", Sun{}.Name())
	assert.Equal(t, "moon", Moon{}.Name())
}

func TestParsePrecision(t *testing.T) {
	p, err := ParsePrecision("FAST")
	require.NoError(t, err)
	assert.Equal(t, PrecisionFast, p)

	p, err = ParsePrecision("")
	require.NoError(t, err)
	assert.Equal(t, PrecisionFull, p)

	_, err = ParsePrecision("iau2000b")
	assert.True(t, errors.Is(err, ErrUnknownPrecision))

	assert.Equal(t, "fast", PrecisionFast.String())
	assert.Equal(t, "Precision(7)", Precision(7).String())
}
