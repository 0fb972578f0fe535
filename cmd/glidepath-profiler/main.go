// Command glidepath-profiler compares glidepath rise/set times against a
// reference table and times the search against a bisection baseline.
package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/thurmanmarka/glidepath"
	"github.com/thurmanmarka/glidepath/internal/log"
)

type options struct {
	lat, lon float64
	tz       string
	body     string
	twilight string
	refCSV   string
	start    string
	days     int
	verbose  bool
	outCSV   string
	bench    bool
	promFile string
	debug    bool
}

func main() {
	if err := newCommand(clockwork.NewRealClock(), os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "glidepath-profiler:", err)
		os.Exit(1)
	}
}

func newCommand(clk clockwork.Clock, stdout io.Writer) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "glidepath-profiler",
		Short: "Compare rise/set times against reference data",
		Long: `Compares daily rise/set (or twilight) times against a reference CSV
(date,rise,set with local HH:MM times) or, for the Sun, against the
go-sunrise almanac algorithm. With --bench the hour-angle search is timed
against a plain bisection search over the same span.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := log.Init(opts.debug); err != nil {
				return err
			}
			defer log.Sync()
			return run(clk, stdout, opts)
		},
	}

	f := cmd.Flags()
	f.Float64Var(&opts.lat, "lat", 0, "latitude in degrees (north positive)")
	f.Float64Var(&opts.lon, "lon", 0, "longitude in degrees (east positive, west negative)")
	f.StringVar(&opts.tz, "tz", "UTC", "IANA time zone of the reference times")
	f.StringVar(&opts.body, "body", "sun", "celestial body: sun or moon")
	f.StringVar(&opts.twilight, "twilight", "", "twilight kind: civil, nautical, astronomical (Sun only)")
	f.StringVar(&opts.refCSV, "refcsv", "", "reference CSV (date,rise,set); default go-sunrise for the Sun")
	f.StringVar(&opts.start, "start", "", "first date for the go-sunrise reference (YYYY-MM-DD)")
	f.IntVar(&opts.days, "days", 365, "number of days for the go-sunrise reference and --bench")
	f.BoolVar(&opts.verbose, "verbose", false, "print per-day errors")
	f.StringVar(&opts.outCSV, "outcsv", "", "write per-day errors to this CSV")
	f.BoolVar(&opts.bench, "bench", false, "time the search against bisection")
	f.StringVar(&opts.promFile, "promfile", "", "write search metrics in Prometheus text format to this file")
	f.BoolVar(&opts.debug, "debug", false, "enable debug logging")

	return cmd
}

func run(clk clockwork.Clock, stdout io.Writer, opts *options) error {
	loc, err := time.LoadLocation(opts.tz)
	if err != nil {
		return fmt.Errorf("loading time zone %q: %w", opts.tz, err)
	}

	m, err := parseMode(opts.body, opts.twilight)
	if err != nil {
		return err
	}

	if opts.lat == 0 && opts.lon == 0 {
		log.Warnw("lat=0 lon=0 (Gulf of Guinea); did you mean to set --lat/--lon?")
	}
	coords := glidepath.Coordinates{Lat: opts.lat, Lon: opts.lon}

	var (
		refs    []refDay
		skipped int
	)
	if opts.refCSV != "" {
		f, err := os.Open(opts.refCSV)
		if err != nil {
			return fmt.Errorf("opening reference CSV: %w", err)
		}
		refs, skipped, err = readReferenceCSV(f, loc)
		f.Close()
		if err != nil {
			return err
		}
	} else {
		if m.body != glidepath.Sun || m.useTwilight {
			return fmt.Errorf("--refcsv is required for %s", m)
		}
		start, err := startDate(clk, opts.start, loc)
		if err != nil {
			return err
		}
		refs = sunriseReference(coords, start, opts.days, loc)
	}

	var verbose io.Writer
	if opts.verbose {
		verbose = stdout
	}
	cmp := compare(coords, m, refs, loc, verbose)
	cmp.Skipped += skipped

	if opts.outCSV != "" {
		if err := writeRowsCSV(opts.outCSV, m, cmp.Rows); err != nil {
			return err
		}
	}

	fmt.Fprintln(stdout, "=== glidepath profiler summary ===")
	fmt.Fprintf(stdout, "Mode:    %s\n", cmp.Mode)
	fmt.Fprintf(stdout, "Lat/Lon: %.4f / %.4f\n", opts.lat, opts.lon)
	fmt.Fprintf(stdout, "TZ:      %s\n", loc.String())
	fmt.Fprintf(stdout, "Rows:    %d (processed), %d skipped\n", len(cmp.Rows), cmp.Skipped)

	if cmp.Rise.Count == 0 && cmp.Set.Count == 0 {
		fmt.Fprintln(stdout, "No valid rows to compute stats.")
	} else {
		printSummary(stdout, "Rise", cmp.Rise)
		printSummary(stdout, "Set", cmp.Set)
	}

	if !opts.bench && opts.promFile == "" {
		return nil
	}

	reg := prometheus.NewRegistry()
	metrics := glidepath.NewMetrics(reg)

	var start time.Time
	if len(refs) > 0 {
		start = refs[0].Date
	} else if start, err = startDate(clk, opts.start, loc); err != nil {
		return err
	}
	b, err := bench(clk, coords, m.body, start, start.AddDate(0, 0, opts.days), glidepath.WithMetrics(metrics))
	if err != nil {
		return fmt.Errorf("bench: %w", err)
	}

	if opts.bench {
		fmt.Fprintln(stdout, "\nSearch timing:")
		fmt.Fprintf(stdout, "  hour-angle: %s (%d events)\n", b.Fast, b.FastEvents)
		fmt.Fprintf(stdout, "  bisection:  %s (%d events)\n", b.Discrete, b.DiscreteEvents)
		fmt.Fprintf(stdout, "  speedup:    %.1fx\n", b.Speedup())
		fmt.Fprintf(stdout, "  max diff:   %.3f s\n", b.MaxDiffSeconds)
	}

	if opts.promFile != "" {
		if err := prometheus.WriteToTextfile(opts.promFile, reg); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
	}
	return nil
}

func parseMode(body, twilight string) (mode, error) {
	b, err := glidepath.ParseBody(strings.ToLower(body))
	if err != nil {
		return mode{}, err
	}
	m := mode{body: b}
	if twilight == "" {
		return m, nil
	}
	if b != glidepath.Sun {
		return mode{}, fmt.Errorf("twilight mode only supported for --body sun")
	}
	m.twilight, err = glidepath.ParseTwilightKind(strings.ToLower(twilight))
	if err != nil {
		return mode{}, err
	}
	m.useTwilight = true
	return m, nil
}

func startDate(clk clockwork.Clock, s string, loc *time.Location) (time.Time, error) {
	if s == "" {
		now := clk.Now().In(loc)
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc), nil
	}
	d, err := time.ParseInLocation("2006-01-02", s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --start %q: %w", s, err)
	}
	return d, nil
}

func writeRowsCSV(path string, m mode, rows []dayRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{
		"date", "body", "mode", "rise_signed", "set_signed",
		"phase_fraction", "phase_name", "phase_elongation", "phase_waxing",
	}); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			r.Date.Format("2006-01-02"),
			strings.ToUpper(m.body.String()),
			m.String(),
			fmt.Sprintf("%.6f", r.RiseSigned),
			fmt.Sprintf("%.6f", r.SetSigned),
			"", "", "", "",
		}
		if p := r.Phase; p != nil {
			rec[5] = fmt.Sprintf("%.6f", p.Fraction)
			rec[6] = p.Name
			rec[7] = fmt.Sprintf("%.3f", p.Elongation)
			rec[8] = "waning"
			if p.Waxing {
				rec[8] = "waxing"
			}
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
