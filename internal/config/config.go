// Package config loads glidepath settings from an optional YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/thurmanmarka/glidepath/internal/ephem"
	"github.com/thurmanmarka/glidepath/internal/solver"
)

// Environment variables that override file values.
const (
	EnvStepDays  = "GLIDEPATH_STEP_DAYS"
	EnvPasses    = "GLIDEPATH_PASSES"
	EnvPrecision = "GLIDEPATH_PRECISION"
	EnvFormat    = "GLIDEPATH_FORMAT"
	EnvTimeZone  = "GLIDEPATH_TZ"
	EnvLogLevel  = "GLIDEPATH_LOG_LEVEL"
)

// Output formats.
const (
	FormatText    = "text"
	FormatJSON    = "json"
	FormatMsgpack = "msgpack"
)

// ValidFormats lists the accepted output formats.
var ValidFormats = []string{FormatText, FormatJSON, FormatMsgpack}

var (
	ErrInvalidLatitude  = errors.New("latitude must be within [-90, 90] degrees")
	ErrInvalidLongitude = errors.New("longitude must be within [-180, 180] degrees")
	ErrInvalidFormat    = errors.New("invalid output format")
	ErrInvalidLogLevel  = errors.New("invalid log level")
)

// Config holds all settings.
type Config struct {
	Observer Observer `yaml:"observer"`
	Search   Search   `yaml:"search"`
	Output   Output   `yaml:"output"`
	LogLevel string   `yaml:"log_level"`
}

// Observer is the default site.
type Observer struct {
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
	Elevation float64 `yaml:"elevation"`
}

// Search tunes the crossing search.
type Search struct {
	StepDays     float64 `yaml:"step_days"`
	Passes       int     `yaml:"passes"`
	Precision    string  `yaml:"precision"`
	ToleranceRad float64 `yaml:"tolerance_rad"`
}

// Output controls rendering.
type Output struct {
	Format   string `yaml:"format"`
	TimeZone string `yaml:"timezone"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Search: Search{
			StepDays:  solver.DefaultStep,
			Passes:    solver.DefaultPasses,
			Precision: ephem.PrecisionFull.String(),
		},
		Output: Output{
			Format:   FormatText,
			TimeZone: "Local",
		},
		LogLevel: "info",
	}
}

// Load reads the YAML file at path (skipped when path is empty), applies
// environment overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if s := os.Getenv(EnvStepDays); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvStepDays, err)
		}
		c.Search.StepDays = v
	}
	if s := os.Getenv(EnvPasses); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvPasses, err)
		}
		c.Search.Passes = v
	}
	if s := os.Getenv(EnvPrecision); s != "" {
		c.Search.Precision = s
	}
	if s := os.Getenv(EnvFormat); s != "" {
		c.Output.Format = s
	}
	if s := os.Getenv(EnvTimeZone); s != "" {
		c.Output.TimeZone = s
	}
	if s := os.Getenv(EnvLogLevel); s != "" {
		c.LogLevel = s
	}
	return nil
}

// Validate checks every field.
func (c *Config) Validate() error {
	if math.IsNaN(c.Observer.Latitude) || math.Abs(c.Observer.Latitude) > 90 {
		return fmt.Errorf("%w: %v", ErrInvalidLatitude, c.Observer.Latitude)
	}
	if math.IsNaN(c.Observer.Longitude) || math.Abs(c.Observer.Longitude) > 180 {
		return fmt.Errorf("%w: %v", ErrInvalidLongitude, c.Observer.Longitude)
	}

	if _, err := c.SolverConfig(); err != nil {
		return err
	}

	if !isValidFormat(c.Output.Format) {
		return fmt.Errorf("%w %q: must be one of %v", ErrInvalidFormat, c.Output.Format, ValidFormats)
	}
	if _, err := c.Location(); err != nil {
		return err
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}
	return nil
}

// Debug reports whether debug logging was requested.
func (c *Config) Debug() bool {
	return strings.EqualFold(c.LogLevel, "debug")
}

// SolverConfig converts the search section into a validated solver.Config.
func (c *Config) SolverConfig() (solver.Config, error) {
	prec, err := ephem.ParsePrecision(c.Search.Precision)
	if err != nil {
		return solver.Config{}, err
	}
	sc := solver.DefaultConfig()
	sc.Step = c.Search.StepDays
	sc.Passes = c.Search.Passes
	sc.Precision = prec
	sc.Tolerance = c.Search.ToleranceRad
	if err := sc.Validate(); err != nil {
		return solver.Config{}, err
	}
	return sc, nil
}

// Location resolves the output time zone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Output.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid time zone %q: %w", c.Output.TimeZone, err)
	}
	return loc, nil
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
