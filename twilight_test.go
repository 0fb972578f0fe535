package glidepath

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTwilightFor_Phoenix_2025_11_28(t *testing.T) {
	loc, err := time.LoadLocation("America/Phoenix")
	require.NoError(t, err)

	coords := Coordinates{Lat: 33.4484, Lon: -112.0740}
	date := time.Date(2025, time.November, 28, 0, 0, 0, 0, loc)

	// Reference values from an online twilight calculator for
	// Phoenix, AZ on 2025-11-28 (local time, America/Phoenix).
	cases := []struct {
		kind       TwilightKind
		expectDawn string
		expectDusk string
	}{
		{TwilightCivil, "06:45", "17:47"},
		{TwilightNautical, "06:14", "18:18"},
		{TwilightAstronomical, "05:44", "18:48"},
	}

	for _, tc := range cases {
		t.Run(tc.kind.String(), func(t *testing.T) {
			rs, err := TwilightFor(coords, date, tc.kind)
			require.NoError(t, err)

			refDawn := atClock(t, date, tc.expectDawn)
			refDusk := atClock(t, date, tc.expectDusk)

			assert.LessOrEqual(t, diffMinutes(rs.Rise, refDawn), 1.5, "dawn %v", rs.Rise)
			assert.LessOrEqual(t, diffMinutes(rs.Set, refDusk), 1.5, "dusk %v", rs.Set)
		})
	}
}

func TestTwilightFor_OrderOfKinds(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Oslo")
	require.NoError(t, err)
	oslo := Coordinates{Lat: 59.9139, Lon: 10.7522}
	date := time.Date(2025, time.March, 20, 0, 0, 0, 0, loc)

	sun, err := SlideIntoSunset(oslo, date)
	require.NoError(t, err)

	prevDawn, prevDusk := sun.Rise, sun.Set
	for _, kind := range []TwilightKind{TwilightCivil, TwilightNautical, TwilightAstronomical} {
		rs, err := TwilightFor(oslo, date, kind)
		require.NoError(t, err, kind.String())
		assert.True(t, rs.Rise.Before(prevDawn), "%s dawn", kind)
		assert.True(t, rs.Set.After(prevDusk), "%s dusk", kind)
		prevDawn, prevDusk = rs.Rise, rs.Set
	}
}

func TestTwilightFor_WhiteNights(t *testing.T) {
	// Oslo around midsummer never gets darker than nautical twilight.
	loc, err := time.LoadLocation("Europe/Oslo")
	require.NoError(t, err)
	oslo := Coordinates{Lat: 59.9139, Lon: 10.7522}

	_, err = TwilightFor(oslo, time.Date(2025, time.June, 21, 0, 0, 0, 0, loc), TwilightAstronomical)
	assert.True(t, errors.Is(err, ErrNoRiseNoSet), "err = %v", err)
}

func TestTwilightFor_UnknownKind(t *testing.T) {
	_, err := TwilightFor(Coordinates{}, time.Now(), TwilightKind(9))
	require.Error(t, err)
}

func TestParseTwilightKind(t *testing.T) {
	k, err := ParseTwilightKind("nautical")
	require.NoError(t, err)
	assert.Equal(t, TwilightNautical, k)

	_, err = ParseTwilightKind("golden")
	assert.Error(t, err)
}

func TestGoldenAndBlueHour(t *testing.T) {
	loc, err := time.LoadLocation("America/Phoenix")
	require.NoError(t, err)
	phoenix := Coordinates{Lat: 33.4484, Lon: -112.0740}
	date := time.Date(2025, time.November, 28, 0, 0, 0, 0, loc)

	golden, err := GoldenHourFor(phoenix, date)
	require.NoError(t, err)
	blue, err := BlueHourFor(phoenix, date)
	require.NoError(t, err)

	require.True(t, golden.HasMorning)
	require.True(t, golden.HasEvening)
	require.True(t, blue.HasMorning)
	require.True(t, blue.HasEvening)

	// blue hour (-6° to -4°) leads straight into golden hour (-4° to +6°)
	assert.Equal(t, blue.Morning.End, golden.Morning.Start)
	assert.Equal(t, golden.Evening.End, blue.Evening.Start)

	for _, w := range []PhaseWindow{golden.Morning, golden.Evening} {
		d := w.End.Sub(w.Start)
		assert.Greater(t, d, 45*time.Minute)
		assert.Less(t, d, 90*time.Minute)
	}
	for _, w := range []PhaseWindow{blue.Morning, blue.Evening} {
		d := w.End.Sub(w.Start)
		assert.Greater(t, d, 5*time.Minute)
		assert.Less(t, d, 20*time.Minute)
	}

	civil, err := TwilightFor(phoenix, date, TwilightCivil)
	require.NoError(t, err)
	assert.Equal(t, civil.Rise, blue.Morning.Start)
	assert.Equal(t, civil.Set, blue.Evening.End)
}
