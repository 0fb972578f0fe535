package main

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/thurmanmarka/glidepath"
	"github.com/thurmanmarka/glidepath/internal/ephem"
	"github.com/thurmanmarka/glidepath/internal/log"
	"github.com/thurmanmarka/glidepath/internal/solver"
	"github.com/thurmanmarka/glidepath/internal/timeutil"
)

// mode selects what is compared against the reference.
type mode struct {
	body     glidepath.Body
	twilight glidepath.TwilightKind
	// useTwilight compares dawn/dusk instead of rise/set (Sun only).
	useTwilight bool
}

func (m mode) String() string {
	if m.useTwilight {
		return fmt.Sprintf("SUN (%s TWILIGHT)", strings.ToUpper(m.twilight.String()))
	}
	return strings.ToUpper(m.body.String())
}

func (m mode) compute(c glidepath.Coordinates, date time.Time) (glidepath.RiseSet, error) {
	if m.useTwilight {
		return glidepath.TwilightFor(c, date, m.twilight)
	}
	return glidepath.RiseSetFor(m.body, c, date)
}

// dayRow is the per-day comparison written to --outcsv.
type dayRow struct {
	Date       time.Time
	Rise, Set  time.Time
	RiseSigned float64
	SetSigned  float64
	Phase      *glidepath.MoonPhase
}

type comparison struct {
	Mode    string
	Rows    []dayRow
	Skipped int
	Rise    summary
	Set     summary
}

// compare computes every reference day and summarizes the signed errors.
func compare(c glidepath.Coordinates, m mode, refs []refDay, loc *time.Location, verbose io.Writer) comparison {
	out := comparison{Mode: m.String()}
	var riseErrs, setErrs []float64

	for _, ref := range refs {
		rs, err := m.compute(c, ref.Date)
		if err != nil {
			log.Warnw("skipping day", "date", ref.Date.Format("2006-01-02"), "error", err)
			out.Skipped++
			continue
		}

		row := dayRow{
			Date:       ref.Date,
			Rise:       rs.Rise,
			Set:        rs.Set,
			RiseSigned: diffMinutesSigned(rs.Rise, ref.Rise),
			SetSigned:  diffMinutesSigned(rs.Set, ref.Set),
		}
		if m.body == glidepath.Moon && !m.useTwilight {
			noon := time.Date(ref.Date.Year(), ref.Date.Month(), ref.Date.Day(), 12, 0, 0, 0, loc)
			if mp, err := glidepath.MoonPhaseAt(noon); err == nil {
				row.Phase = &mp
			}
		}
		out.Rows = append(out.Rows, row)
		riseErrs = append(riseErrs, row.RiseSigned)
		setErrs = append(setErrs, row.SetSigned)

		if verbose != nil {
			fmt.Fprintf(verbose, "%s %s: rise err=%.2f min (got=%s ref=%s), set err=%.2f min (got=%s ref=%s)\n",
				ref.Date.Format("2006-01-02"), out.Mode,
				row.RiseSigned, clock(rs.Rise, loc), clock(ref.Rise, loc),
				row.SetSigned, clock(rs.Set, loc), clock(ref.Set, loc))
		}
	}

	out.Rise = summarize(riseErrs)
	out.Set = summarize(setErrs)
	return out
}

// benchResult times the hour-angle search against the bisection baseline
// over the same span.
type benchResult struct {
	Fast           time.Duration
	Discrete       time.Duration
	FastEvents     int
	DiscreteEvents int
	// MaxDiffSeconds is the largest disagreement between matched events.
	MaxDiffSeconds float64
}

func (b benchResult) Speedup() float64 {
	if b.Fast <= 0 {
		return math.NaN()
	}
	return float64(b.Discrete) / float64(b.Fast)
}

// bench runs both searches for body between start and end. Search metrics
// are recorded through opts.
func bench(clk clockwork.Clock, c glidepath.Coordinates, body glidepath.Body, start, end time.Time, opts ...glidepath.Option) (benchResult, error) {
	var res benchResult

	began := clk.Now()
	events, err := glidepath.FindRisesAndSets(c, body, body.Horizon(), start, end, opts...)
	if err != nil {
		return res, err
	}
	res.Fast = clk.Since(began)

	var target ephem.Target
	switch body {
	case glidepath.Sun:
		target = ephem.Sun{}
	case glidepath.Moon:
		target = ephem.Moon{}
	default:
		return res, fmt.Errorf("%w: %v", glidepath.ErrUnknownTarget, body)
	}
	obs := ephem.NewObservation(ephem.NewSite(c.Lat, c.Lon, c.Elevation), target)
	altitude := func(tt []float64) []float64 { return obs.Altitude(tt, ephem.PrecisionFull) }

	tt0 := timeutil.TTFromTime(start)
	tt1 := timeutil.TTFromTime(end)
	alt := timeutil.Deg2Rad(body.Horizon())

	began = clk.Now()
	rises := solver.FindDiscrete(altitude, tt0, tt1, alt, solver.Rising, solver.DefaultDiscreteStep, solver.DefaultDiscreteTolerance)
	sets := solver.FindDiscrete(altitude, tt0, tt1, alt, solver.Setting, solver.DefaultDiscreteStep, solver.DefaultDiscreteTolerance)
	res.Discrete = clk.Since(began)
	res.DiscreteEvents = len(rises) + len(sets)

	for _, ev := range events {
		if !ev.Valid {
			continue
		}
		res.FastEvents++
		ref := rises
		if ev.Direction == glidepath.Setting {
			ref = sets
		}
		if d, ok := nearest(ref, ev.TT); ok {
			res.MaxDiffSeconds = math.Max(res.MaxDiffSeconds, d*timeutil.SecondsPerDay)
		}
	}
	return res, nil
}

// nearest returns the distance from x to the closest element of the sorted
// slice xs.
func nearest(xs []float64, x float64) (float64, bool) {
	if len(xs) == 0 {
		return 0, false
	}
	i := sort.SearchFloat64s(xs, x)
	best := math.Inf(1)
	if i < len(xs) {
		best = xs[i] - x
	}
	if i > 0 {
		best = math.Min(best, x-xs[i-1])
	}
	return best, true
}

func clock(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return "--:--"
	}
	return t.In(loc).Format("15:04")
}

func printSummary(w io.Writer, label string, s summary) {
	fmt.Fprintf(w, "\n%s signed error (minutes, our - ref):\n", label)
	fmt.Fprintf(w, "  count:    %d\n", s.Count)
	fmt.Fprintf(w, "  min:      %.3f\n", s.Min)
	fmt.Fprintf(w, "  max:      %.3f\n", s.Max)
	fmt.Fprintf(w, "  mean:     %.3f\n", s.Mean)
	fmt.Fprintf(w, "  stddev:   %.3f\n", s.StdDev)
	fmt.Fprintf(w, "  mean abs: %.3f\n", s.MeanAbs)
}
