package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/thurmanmarka/glidepath"
)

type eventRecord struct {
	Time     time.Time `json:"time"`
	Kind     string    `json:"kind"`
	Valid    bool      `json:"valid"`
	Geometry string    `json:"geometry"`
}

type eventsReport struct {
	Target     string        `json:"target"`
	Latitude   float64       `json:"latitude"`
	Longitude  float64       `json:"longitude"`
	Elevation  float64       `json:"elevation"`
	HorizonDeg float64       `json:"horizon_deg"`
	Start      time.Time     `json:"start"`
	End        time.Time     `json:"end"`
	Timezone   string        `json:"timezone"`
	Events     []eventRecord `json:"events"`
}

func newEventsReport(target string, c glidepath.Coordinates, horizon float64, start, end time.Time, events []glidepath.Event, loc *time.Location) eventsReport {
	r := eventsReport{
		Target:     target,
		Latitude:   c.Lat,
		Longitude:  c.Lon,
		Elevation:  c.Elevation,
		HorizonDeg: horizon,
		Start:      start.In(loc),
		End:        end.In(loc),
		Timezone:   loc.String(),
		Events:     make([]eventRecord, len(events)),
	}
	for i, ev := range events {
		t := ev.Time
		if !t.IsZero() {
			t = t.In(loc)
		}
		r.Events[i] = eventRecord{
			Time:     t,
			Kind:     ev.Direction.String(),
			Valid:    ev.Valid,
			Geometry: ev.Geometry.String(),
		}
	}
	return r
}

func renderEventsText(w io.Writer, r eventsReport) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s crossings of %.4f° for lat=%.6f lon=%.6f\n", r.Target, r.HorizonDeg, r.Latitude, r.Longitude)
	fmt.Fprintf(&b, "Span: %s to %s (%s)\n\n", r.Start.Format(time.RFC3339), r.End.Format(time.RFC3339), r.Timezone)

	counts := map[string]int{}
	invalid := 0
	for _, ev := range r.Events {
		fmt.Fprintf(&b, "%-4s  %s", ev.Kind, ev.Time.Format(time.RFC3339))
		if ev.Valid {
			counts[ev.Kind]++
		} else {
			invalid++
			fmt.Fprintf(&b, "  no crossing (%s)", ev.Geometry)
		}
		b.WriteString("\n")
	}
	if len(r.Events) == 0 {
		b.WriteString("no crossings\n")
	}

	fmt.Fprintf(&b, "\n%d rise, %d set, %d invalid\n", counts["rise"], counts["set"], invalid)

	_, err := io.WriteString(w, b.String())
	return err
}

type riseSetReport struct {
	Body      string     `json:"body"`
	Latitude  float64    `json:"latitude"`
	Longitude float64    `json:"longitude"`
	Date      string     `json:"date"` // YYYY-MM-DD
	Timezone  string     `json:"timezone"`
	Rise      *time.Time `json:"rise,omitempty"`
	Set       *time.Time `json:"set,omitempty"`
}

func newRiseSetReport(body string, c glidepath.Coordinates, date time.Time, event string, rs glidepath.RiseSet) riseSetReport {
	r := riseSetReport{
		Body:      body,
		Latitude:  c.Lat,
		Longitude: c.Lon,
		Date:      date.Format("2006-01-02"),
		Timezone:  date.Location().String(),
	}
	if event != "set" {
		r.Rise = timePtr(rs.Rise)
	}
	if event != "rise" {
		r.Set = timePtr(rs.Set)
	}
	return r
}

func renderRiseSetText(w io.Writer, r riseSetReport) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s rise/set for lat=%.6f lon=%.6f\n", capitalize(r.Body), r.Latitude, r.Longitude)
	fmt.Fprintf(&b, "Date: %s (%s)\n\n", r.Date, r.Timezone)
	fmt.Fprintf(&b, "Rise: %s\n", formatOptional(r.Rise))
	fmt.Fprintf(&b, "Set:  %s\n", formatOptional(r.Set))
	_, err := io.WriteString(w, b.String())
	return err
}

type twilightReport struct {
	Kind      string     `json:"kind"`
	Latitude  float64    `json:"latitude"`
	Longitude float64    `json:"longitude"`
	Date      string     `json:"date"`
	Timezone  string     `json:"timezone"`
	Dawn      *time.Time `json:"dawn,omitempty"`
	Dusk      *time.Time `json:"dusk,omitempty"`
}

func newTwilightReport(kind string, c glidepath.Coordinates, date time.Time, rs glidepath.RiseSet) twilightReport {
	return twilightReport{
		Kind:      kind,
		Latitude:  c.Lat,
		Longitude: c.Lon,
		Date:      date.Format("2006-01-02"),
		Timezone:  date.Location().String(),
		Dawn:      timePtr(rs.Rise),
		Dusk:      timePtr(rs.Set),
	}
}

func renderTwilightText(w io.Writer, r twilightReport) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s twilight for lat=%.6f lon=%.6f\n", capitalize(r.Kind), r.Latitude, r.Longitude)
	fmt.Fprintf(&b, "Date: %s (%s)\n\n", r.Date, r.Timezone)
	fmt.Fprintf(&b, "Dawn: %s\n", formatOptional(r.Dawn))
	fmt.Fprintf(&b, "Dusk: %s\n", formatOptional(r.Dusk))
	_, err := io.WriteString(w, b.String())
	return err
}

type window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type phasesReport struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Date      string  `json:"date"`
	Timezone  string  `json:"timezone"`
	Morning   *window `json:"morning,omitempty"`
	Evening   *window `json:"evening,omitempty"`
}

func newPhasesReport(name string, c glidepath.Coordinates, date time.Time, p glidepath.DaylightPhases) phasesReport {
	r := phasesReport{
		Name:      name,
		Latitude:  c.Lat,
		Longitude: c.Lon,
		Date:      date.Format("2006-01-02"),
		Timezone:  date.Location().String(),
	}
	if p.HasMorning {
		r.Morning = &window{Start: p.Morning.Start, End: p.Morning.End}
	}
	if p.HasEvening {
		r.Evening = &window{Start: p.Evening.Start, End: p.Evening.End}
	}
	return r
}

func renderPhasesText(w io.Writer, r phasesReport) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s for lat=%.6f lon=%.6f\n", capitalize(r.Name), r.Latitude, r.Longitude)
	fmt.Fprintf(&b, "Date: %s (%s)\n\n", r.Date, r.Timezone)
	for _, part := range []struct {
		label string
		w     *window
	}{{"Morning", r.Morning}, {"Evening", r.Evening}} {
		if part.w == nil {
			fmt.Fprintf(&b, "%s: none\n", part.label)
			continue
		}
		fmt.Fprintf(&b, "%s: %s to %s (%s)\n", part.label,
			part.w.Start.Format(time.RFC3339), part.w.End.Format(time.RFC3339),
			part.w.End.Sub(part.w.Start).Round(time.Second))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

type phaseReport struct {
	Time       time.Time `json:"time"`
	Timezone   string    `json:"timezone"`
	Name       string    `json:"name"`
	Fraction   float64   `json:"fraction"`
	Elongation float64   `json:"elongation_deg"`
	Waxing     bool      `json:"waxing"`
}

func newPhaseReport(p glidepath.MoonPhase, loc *time.Location) phaseReport {
	return phaseReport{
		Time:       p.Time.In(loc),
		Timezone:   loc.String(),
		Name:       p.Name,
		Fraction:   p.Fraction,
		Elongation: p.Elongation,
		Waxing:     p.Waxing,
	}
}

func renderPhaseText(w io.Writer, r phaseReport) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Moon phase at %s (%s)\n", r.Time.Format(time.RFC3339), r.Timezone)
	fmt.Fprintf(&b, "  Name       : %s\n", r.Name)
	fmt.Fprintf(&b, "  Fraction   : %.3f (%.1f%% illuminated)\n", r.Fraction, r.Fraction*100)
	fmt.Fprintf(&b, "  Elongation : %.2f°\n", r.Elongation)
	if r.Waxing {
		b.WriteString("  Trend      : Waxing (illumination increasing)\n")
	} else {
		b.WriteString("  Trend      : Waning (illumination decreasing)\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func formatOptional(t *time.Time) string {
	if t == nil {
		return "none"
	}
	return t.Format(time.RFC3339)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
