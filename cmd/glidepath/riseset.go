package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thurmanmarka/glidepath"
)

type riseSetOptions struct {
	observer observerFlags
	date     string
	tz       string
	body     string
	event    string
}

func newRiseSetCommand(a *app) *cobra.Command {
	opts := &riseSetOptions{}

	cmd := &cobra.Command{
		Use:   "riseset",
		Short: "Rise and set of the Sun or Moon on one local date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := a.location(cmd, opts.tz)
			if err != nil {
				return err
			}
			date, err := a.date(opts.date, loc)
			if err != nil {
				return err
			}
			body, err := glidepath.ParseBody(strings.ToLower(opts.body))
			if err != nil {
				return WrapExitError(ExitUsage, "invalid --body", err)
			}
			event := strings.ToLower(opts.event)
			switch event {
			case "rise", "set", "both":
			default:
				return WrapExitError(ExitUsage, "invalid --event", fmt.Errorf("%q: use rise, set or both", opts.event))
			}

			coords := opts.observer.coordinates(cmd, a.cfg)
			rs, err := glidepath.RiseSetFor(body, coords, date)
			if err != nil {
				return classify(fmt.Sprintf("computing %s rise/set", body), err)
			}

			report := newRiseSetReport(body.String(), coords, date, event, rs)
			return a.emit("riseset", report, func(w io.Writer) error {
				return renderRiseSetText(w, report)
			})
		},
	}

	opts.observer.register(cmd)
	cmd.Flags().StringVar(&opts.date, "date", "", "date in YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&opts.tz, "tz", "", "IANA time zone of the date (default from config)")
	cmd.Flags().StringVar(&opts.body, "body", "sun", "celestial body: sun or moon")
	cmd.Flags().StringVar(&opts.event, "event", "both", "event: rise, set, or both")
	return cmd
}

type twilightOptions struct {
	observer observerFlags
	date     string
	tz       string
	kind     string
}

func newTwilightCommand(a *app) *cobra.Command {
	opts := &twilightOptions{}

	cmd := &cobra.Command{
		Use:   "twilight",
		Short: "Dawn and dusk, golden hour or blue hour on one local date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := a.location(cmd, opts.tz)
			if err != nil {
				return err
			}
			date, err := a.date(opts.date, loc)
			if err != nil {
				return err
			}
			coords := opts.observer.coordinates(cmd, a.cfg)

			kind := strings.ToLower(opts.kind)
			switch kind {
			case "golden", "blue":
				var phases glidepath.DaylightPhases
				if kind == "golden" {
					phases, err = glidepath.GoldenHourFor(coords, date)
				} else {
					phases, err = glidepath.BlueHourFor(coords, date)
				}
				if err != nil {
					return classify(kind+" hour", err)
				}
				report := newPhasesReport(kind+" hour", coords, date, phases)
				return a.emit("twilight", report, func(w io.Writer) error {
					return renderPhasesText(w, report)
				})
			}

			tk, err := glidepath.ParseTwilightKind(kind)
			if err != nil {
				return WrapExitError(ExitUsage, "invalid --kind", err)
			}
			rs, err := glidepath.TwilightFor(coords, date, tk)
			if err != nil {
				return classify(tk.String()+" twilight", err)
			}
			report := newTwilightReport(tk.String(), coords, date, rs)
			return a.emit("twilight", report, func(w io.Writer) error {
				return renderTwilightText(w, report)
			})
		},
	}

	opts.observer.register(cmd)
	cmd.Flags().StringVar(&opts.date, "date", "", "date in YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&opts.tz, "tz", "", "IANA time zone of the date (default from config)")
	cmd.Flags().StringVar(&opts.kind, "kind", "civil", "civil, nautical, astronomical, golden or blue")
	return cmd
}

type phaseOptions struct {
	tz   string
	time string
}

func newPhaseCommand(a *app) *cobra.Command {
	opts := &phaseOptions{}

	cmd := &cobra.Command{
		Use:   "phase",
		Short: "Moon phase and illumination",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := a.location(cmd, opts.tz)
			if err != nil {
				return err
			}

			at := a.clock.Now().In(loc)
			if opts.time != "" {
				at, err = parseTime(opts.time, loc)
				if err != nil {
					return WrapExitError(ExitUsage, fmt.Sprintf("could not parse --time %q", opts.time), err)
				}
			}

			phase, err := glidepath.MoonPhaseAt(at)
			if err != nil {
				return classify("moon phase", err)
			}
			report := newPhaseReport(phase, loc)
			return a.emit("phase", report, func(w io.Writer) error {
				return renderPhaseText(w, report)
			})
		},
	}

	cmd.Flags().StringVar(&opts.tz, "tz", "", "IANA time zone name (e.g. America/Phoenix)")
	cmd.Flags().StringVar(&opts.time, "time", "", "time in RFC3339 or 'YYYY-MM-DDTHH:MM' (default now)")
	return cmd
}
