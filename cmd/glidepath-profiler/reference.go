package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/nathan-osman/go-sunrise"

	"github.com/thurmanmarka/glidepath"
	"github.com/thurmanmarka/glidepath/internal/log"
)

// refDay is one row of reference data. Zero times mean no event.
type refDay struct {
	Date time.Time
	Rise time.Time
	Set  time.Time
}

// readReferenceCSV parses rows of
//
//	date,rise,set
//	2025-01-01,07:32,17:12
//
// where date is YYYY-MM-DD and rise/set are local HH:MM[:SS] clock times in
// loc. An optional header row is skipped. Malformed rows are logged and
// counted, not fatal.
func readReferenceCSV(r io.Reader, loc *time.Location) ([]refDay, int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, 0, fmt.Errorf("reading reference CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, 0, fmt.Errorf("reference CSV is empty")
	}

	startIdx := 0
	if len(records[0]) >= 1 && strings.EqualFold(strings.TrimSpace(records[0][0]), "date") {
		startIdx = 1
	}

	var (
		days    []refDay
		skipped int
	)
	for i := startIdx; i < len(records); i++ {
		row := records[i]
		if len(row) < 3 {
			log.Warnw("skipping row", "row", i+1, "reason", "expected date,rise,set", "columns", len(row))
			skipped++
			continue
		}

		date, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(row[0]), loc)
		if err != nil {
			log.Warnw("skipping row", "row", i+1, "reason", "invalid date", "error", err)
			skipped++
			continue
		}
		rise, err := parseLocalTime(date, strings.TrimSpace(row[1]), loc)
		if err != nil {
			log.Warnw("skipping row", "row", i+1, "reason", "invalid rise", "error", err)
			skipped++
			continue
		}
		set, err := parseLocalTime(date, strings.TrimSpace(row[2]), loc)
		if err != nil {
			log.Warnw("skipping row", "row", i+1, "reason", "invalid set", "error", err)
			skipped++
			continue
		}
		days = append(days, refDay{Date: date, Rise: rise, Set: set})
	}
	return days, skipped, nil
}

// parseLocalTime combines an HH:MM or HH:MM:SS clock time with date. An empty
// string or "-" means no event and yields the zero time.
func parseLocalTime(date time.Time, hhmm string, loc *time.Location) (time.Time, error) {
	if hhmm == "" || hhmm == "-" {
		return time.Time{}, nil
	}
	layout := "15:04"
	if strings.Count(hhmm, ":") == 2 {
		layout = "15:04:05"
	}

	parsed, err := time.ParseInLocation(layout, hhmm, loc)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		parsed.Hour(), parsed.Minute(), parsed.Second(), 0, loc), nil
}

// sunriseReference builds days of reference sunrise/sunset from the
// go-sunrise almanac algorithm, starting at start's calendar date in loc.
func sunriseReference(c glidepath.Coordinates, start time.Time, days int, loc *time.Location) []refDay {
	first := start.In(loc)
	out := make([]refDay, 0, days)
	for i := 0; i < days; i++ {
		d := time.Date(first.Year(), first.Month(), first.Day()+i, 0, 0, 0, 0, loc)
		rise, set := sunrise.SunriseSunset(c.Lat, c.Lon, d.Year(), d.Month(), d.Day())
		day := refDay{Date: d}
		if !rise.IsZero() {
			day.Rise = rise.In(loc)
		}
		if !set.IsZero() {
			day.Set = set.In(loc)
		}
		out = append(out, day)
	}
	return out
}
