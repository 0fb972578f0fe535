package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/thurmanmarka/glidepath"
	"github.com/thurmanmarka/glidepath/internal/ephem"
	"github.com/thurmanmarka/glidepath/internal/log"
)

type eventsOptions struct {
	observer  observerFlags
	body      string
	ra, dec   float64
	label     string
	horizon   float64
	start     string
	end       string
	step      float64
	precision string
	passes    int
	kind      string
	tz        string
}

func newEventsCommand(a *app) *cobra.Command {
	opts := &eventsOptions{}

	cmd := &cobra.Command{
		Use:   "events",
		Short: "List every horizon crossing of a target in a time span",
		Example: `  glidepath events --lat 40.8939 --lon -83.8917 --start 2020-01-01 --end 2021-01-01
  glidepath events --body star --ra 101.2875 --dec -16.7161 --label sirius --kind set --start 2024-02-01 --end 2024-02-08`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runEvents(cmd, opts)
		},
	}

	opts.observer.register(cmd)
	f := cmd.Flags()
	f.StringVar(&opts.body, "body", "sun", "target: sun, moon or star")
	f.Float64Var(&opts.ra, "ra", 0, "star right ascension in degrees (--body star)")
	f.Float64Var(&opts.dec, "dec", 0, "star declination in degrees (--body star)")
	f.StringVar(&opts.label, "label", "", "star name for output (--body star)")
	f.Float64Var(&opts.horizon, "horizon", glidepath.HorizonSun, "altitude of the crossing in degrees (default: standard horizon of the target)")
	f.StringVar(&opts.start, "start", "", "start of the span (RFC 3339 or YYYY-MM-DD[THH:MM]); default today")
	f.StringVar(&opts.end, "end", "", "end of the span, exclusive; default start + 7 days")
	f.Float64Var(&opts.step, "step", 0, "coarse sampling step in days (default from config)")
	f.StringVar(&opts.precision, "precision", "", "nutation model: full or fast (default from config)")
	f.IntVar(&opts.passes, "passes", 0, "refinement passes (default from config)")
	f.StringVar(&opts.kind, "kind", "both", "crossings to list: rise, set or both")
	f.StringVar(&opts.tz, "tz", "", "IANA time zone for parsing and display (default from config)")

	return cmd
}

func (a *app) runEvents(cmd *cobra.Command, opts *eventsOptions) error {
	loc, err := a.location(cmd, opts.tz)
	if err != nil {
		return err
	}

	target, horizon, err := opts.target(cmd)
	if err != nil {
		return err
	}

	start, end, err := a.span(opts.start, opts.end, loc)
	if err != nil {
		return err
	}

	searchOpts, err := a.searchOptions(cmd, opts)
	if err != nil {
		return err
	}

	find := glidepath.FindRisesAndSets
	switch strings.ToLower(opts.kind) {
	case "rise":
		find = glidepath.FindHorizonCrossings
	case "set":
		find = glidepath.FindSettings
	case "both":
	default:
		return WrapExitError(ExitUsage, "invalid --kind", fmt.Errorf("%q: use rise, set or both", opts.kind))
	}

	coords := opts.observer.coordinates(cmd, a.cfg)
	log.Debugw("searching",
		"target", target.Name(),
		"lat", coords.Lat,
		"lon", coords.Lon,
		"start", start,
		"end", end,
	)

	events, err := find(coords, target, horizon, start, end, searchOpts...)
	if err != nil {
		return classify("searching crossings", err)
	}

	report := newEventsReport(target.Name(), coords, horizon, start, end, events, loc)
	return a.emit("events", report, func(w io.Writer) error {
		return renderEventsText(w, report)
	})
}

func (o *eventsOptions) target(cmd *cobra.Command) (glidepath.Target, float64, error) {
	var (
		target  glidepath.Target
		horizon float64
	)
	switch strings.ToLower(o.body) {
	case "star":
		if !cmd.Flags().Changed("ra") || !cmd.Flags().Changed("dec") {
			return nil, 0, WrapExitError(ExitUsage, "--body star", fmt.Errorf("--ra and --dec are required"))
		}
		target = glidepath.Star{Label: o.label, RA: o.ra, Dec: o.dec}
		horizon = glidepath.HorizonStar
	default:
		body, err := glidepath.ParseBody(strings.ToLower(o.body))
		if err != nil {
			return nil, 0, WrapExitError(ExitUsage, "invalid --body", err)
		}
		target = body
		horizon = body.Horizon()
	}
	if cmd.Flags().Changed("horizon") {
		horizon = o.horizon
	}
	return target, horizon, nil
}

// span parses --start and --end. Start defaults to today, end to a week
// after start.
func (a *app) span(startS, endS string, loc *time.Location) (time.Time, time.Time, error) {
	var start time.Time
	if startS == "" {
		now := a.clock.Now().In(loc)
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	} else {
		t, err := parseTime(startS, loc)
		if err != nil {
			return time.Time{}, time.Time{}, WrapExitError(ExitUsage, fmt.Sprintf("invalid --start %q", startS), err)
		}
		start = t
	}

	end := start.AddDate(0, 0, 7)
	if endS != "" {
		t, err := parseTime(endS, loc)
		if err != nil {
			return time.Time{}, time.Time{}, WrapExitError(ExitUsage, fmt.Sprintf("invalid --end %q", endS), err)
		}
		end = t
	}
	return start, end, nil
}

// searchOptions merges the config search section with explicit flags.
func (a *app) searchOptions(cmd *cobra.Command, opts *eventsOptions) ([]glidepath.Option, error) {
	sc, err := a.cfg.SolverConfig()
	if err != nil {
		return nil, WrapExitError(ExitUsage, "invalid search config", err)
	}
	if cmd.Flags().Changed("step") {
		sc.Step = opts.step
	}
	if cmd.Flags().Changed("passes") {
		sc.Passes = opts.passes
	}
	if cmd.Flags().Changed("precision") {
		p, err := ephem.ParsePrecision(opts.precision)
		if err != nil {
			return nil, WrapExitError(ExitUsage, "invalid --precision", err)
		}
		sc.Precision = p
	}

	return []glidepath.Option{
		glidepath.WithStep(sc.Step),
		glidepath.WithPasses(sc.Passes),
		glidepath.WithPrecision(sc.Precision),
		glidepath.WithTolerance(sc.Tolerance),
	}, nil
}
