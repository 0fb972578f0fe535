package glidepath_test

import (
	"fmt"
	"time"

	"github.com/thurmanmarka/glidepath"
)

// ExampleSlideIntoSunset demonstrates computing sunrise and sunset for a location.
func ExampleSlideIntoSunset() {
	loc := glidepath.Coordinates{
		Lat: 40.7128,  // New York City latitude
		Lon: -74.0060, // New York City longitude
	}

	// Use a local date; the time zone is taken from the date's Location.
	locNY, _ := time.LoadLocation("America/New_York")
	date := time.Date(2025, time.November, 30, 0, 0, 0, 0, locNY)

	rs, err := glidepath.SlideIntoSunset(loc, date)
	if err != nil {
		panic(err)
	}

	fmt.Println("Sunrise:", rs.Rise.Format(time.RFC3339))
	fmt.Println("Sunset:", rs.Set.Format(time.RFC3339))
}

// ExampleRiseSetFor demonstrates the per-body daily API.
func ExampleRiseSetFor() {
	loc := glidepath.Coordinates{
		Lat: 33.4484,   // Phoenix, AZ
		Lon: -112.0740, // Phoenix longitude
	}

	locPHX, _ := time.LoadLocation("America/Phoenix")
	date := time.Date(2025, time.November, 30, 0, 0, 0, 0, locPHX)

	rs, err := glidepath.RiseSetFor(glidepath.Moon, loc, date)
	if err != nil {
		panic(err)
	}

	fmt.Println("Moonrise:", rs.Rise.Format(time.RFC3339))
	fmt.Println("Moonset:", rs.Set.Format(time.RFC3339))
}

// ExampleFindHorizonCrossings finds every sunrise of a year in one search.
func ExampleFindHorizonCrossings() {
	bluffton := glidepath.Coordinates{Lat: 40.8939, Lon: -83.8917}
	start := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

	events, err := glidepath.FindHorizonCrossings(bluffton, glidepath.Sun, glidepath.HorizonSun,
		start, start.AddDate(1, 0, 0))
	if err != nil {
		panic(err)
	}

	fmt.Println("sunrises in 2020:", len(events))
	// Output: sunrises in 2020: 366
}

// ExampleFindRisesAndSets searches a fixed star with the fast nutation model.
func ExampleFindRisesAndSets() {
	sirius := glidepath.Star{Label: "sirius", RA: 101.2875, Dec: -16.7161}
	loc := glidepath.Coordinates{Lat: 51.4779, Lon: -0.0015} // Greenwich
	start := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)

	events, err := glidepath.FindRisesAndSets(loc, sirius, glidepath.HorizonStar,
		start, start.AddDate(0, 0, 3), glidepath.WithPrecision(glidepath.PrecisionFast))
	if err != nil {
		panic(err)
	}

	for _, ev := range events {
		fmt.Println(ev.Direction, ev.Time.Format("2006-01-02 15:04"))
	}
}
