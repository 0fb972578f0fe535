package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/thurmanmarka/glidepath"
	"github.com/thurmanmarka/glidepath/internal/config"
	"github.com/thurmanmarka/glidepath/internal/log"
)

// app carries the dependencies and global flags shared by all commands.
type app struct {
	clock    clockwork.Clock
	newRunID func() string
	stdout   io.Writer
	stderr   io.Writer

	configPath string
	debug      bool
	format     string

	cfg *config.Config
}

func newRootCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "glidepath",
		Short:         "glidepath - horizon crossings for the Sun, Moon and stars",
		Long:          "Finds rise, set and twilight times by sampling the hour angle and refining each crossing analytically.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return WrapExitError(ExitUsage, "loading config", err)
			}
			if cmd.Flags().Changed("format") {
				cfg.Output.Format = a.format
				if err := cfg.Validate(); err != nil {
					return WrapExitError(ExitUsage, "invalid --format", err)
				}
			}
			a.cfg = cfg

			if err := log.Init(a.debug || cfg.Debug()); err != nil {
				return WrapExitError(ExitFailure, "initializing logger", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			log.Sync()
		},
	}

	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return WrapExitError(ExitUsage, c.CommandPath(), err)
	})

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "path to a YAML config file")
	cmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&a.format, "format", config.FormatText,
		fmt.Sprintf("output format (%s)", strings.Join(config.ValidFormats, "|")))

	cmd.AddCommand(newEventsCommand(a))
	cmd.AddCommand(newRiseSetCommand(a))
	cmd.AddCommand(newTwilightCommand(a))
	cmd.AddCommand(newPhaseCommand(a))

	return cmd
}

// observerFlags are the site flags shared by several commands. Unset flags
// fall back to the config file.
type observerFlags struct {
	lat, lon, elev float64
}

func (o *observerFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&o.lat, "lat", 0, "latitude in degrees (north positive)")
	cmd.Flags().Float64Var(&o.lon, "lon", 0, "longitude in degrees (east positive, west negative)")
	cmd.Flags().Float64Var(&o.elev, "elev", 0, "elevation in meters")
}

func (o *observerFlags) coordinates(cmd *cobra.Command, cfg *config.Config) glidepath.Coordinates {
	c := glidepath.Coordinates{
		Lat:       cfg.Observer.Latitude,
		Lon:       cfg.Observer.Longitude,
		Elevation: cfg.Observer.Elevation,
	}
	if cmd.Flags().Changed("lat") {
		c.Lat = o.lat
	}
	if cmd.Flags().Changed("lon") {
		c.Lon = o.lon
	}
	if cmd.Flags().Changed("elev") {
		c.Elevation = o.elev
	}
	if c.Lat == 0 && c.Lon == 0 {
		log.Warnw("lat=0 lon=0 (Gulf of Guinea); use --lat and --lon or the config file to set a real location")
	}
	return c
}

// location resolves --tz, falling back to the configured time zone.
func (a *app) location(cmd *cobra.Command, tz string) (*time.Location, error) {
	if !cmd.Flags().Changed("tz") {
		tz = a.cfg.Output.TimeZone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, WrapExitError(ExitUsage, fmt.Sprintf("invalid --tz %q", tz), err)
	}
	return loc, nil
}

// date parses --date in loc, defaulting to today on the app clock.
func (a *app) date(s string, loc *time.Location) (time.Time, error) {
	if s == "" {
		now := a.clock.Now().In(loc)
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc), nil
	}
	d, err := time.ParseInLocation("2006-01-02", s, loc)
	if err != nil {
		return time.Time{}, WrapExitError(ExitUsage, fmt.Sprintf("invalid --date %q", s), err)
	}
	return d, nil
}

// parseTime accepts RFC 3339 or a few shorter local layouts.
func parseTime(s string, loc *time.Location) (time.Time, error) {
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04",
		"2006-01-02 15:04",
		"2006-01-02",
	}
	var parseErr error
	for _, layout := range layouts {
		t, err := time.ParseInLocation(layout, s, loc)
		if err == nil {
			return t, nil
		}
		parseErr = err
	}
	return time.Time{}, parseErr
}

// classify maps library errors to exit codes.
func classify(message string, err error) error {
	switch {
	case errors.Is(err, glidepath.ErrNoRiseNoSet):
		return WrapExitError(ExitFailure, message, err)
	case errors.Is(err, glidepath.ErrInvalidInterval),
		errors.Is(err, glidepath.ErrInvalidStep),
		errors.Is(err, glidepath.ErrTooFewSamples),
		errors.Is(err, glidepath.ErrInvalidPasses),
		errors.Is(err, glidepath.ErrInvalidCoordinates),
		errors.Is(err, glidepath.ErrUnknownTarget),
		errors.Is(err, glidepath.ErrNotImplemented):
		return WrapExitError(ExitUsage, message, err)
	default:
		return WrapExitError(ExitFailure, message, err)
	}
}
