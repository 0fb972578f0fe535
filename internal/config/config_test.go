package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thurmanmarka/glidepath/internal/ephem"
	"github.com/thurmanmarka/glidepath/internal/solver"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "glidepath.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, solver.DefaultStep, cfg.Search.StepDays)
	assert.Equal(t, solver.DefaultPasses, cfg.Search.Passes)
	assert.Equal(t, "full", cfg.Search.Precision)
	assert.Equal(t, FormatText, cfg.Output.Format)
	assert.Equal(t, "Local", cfg.Output.TimeZone)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.Debug())
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
observer:
  latitude: 33.4484
  longitude: -112.074
  elevation: 331
search:
  step_days: 0.5
  passes: 3
  precision: fast
  tolerance_rad: 1.0e-9
output:
  format: json
  timezone: America/Phoenix
log_level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 33.4484, cfg.Observer.Latitude)
	assert.Equal(t, -112.074, cfg.Observer.Longitude)
	assert.Equal(t, 331.0, cfg.Observer.Elevation)
	assert.Equal(t, FormatJSON, cfg.Output.Format)
	assert.True(t, cfg.Debug())

	sc, err := cfg.SolverConfig()
	require.NoError(t, err)
	assert.Equal(t, 0.5, sc.Step)
	assert.Equal(t, 3, sc.Passes)
	assert.Equal(t, ephem.PrecisionFast, sc.Precision)
	assert.Equal(t, 1e-9, sc.Tolerance)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "America/Phoenix", loc.String())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "search:\n  passes: 3\noutput:\n  format: json\n")
	t.Setenv(EnvStepDays, "0.25")
	t.Setenv(EnvPasses, "4")
	t.Setenv(EnvPrecision, "fast")
	t.Setenv(EnvFormat, "msgpack")
	t.Setenv(EnvTimeZone, "UTC")
	t.Setenv(EnvLogLevel, "warn")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 0.25, cfg.Search.StepDays)
	assert.Equal(t, 4, cfg.Search.Passes)
	assert.Equal(t, "fast", cfg.Search.Precision)
	assert.Equal(t, FormatMsgpack, cfg.Output.Format)
	assert.Equal(t, "UTC", cfg.Output.TimeZone)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		body string
		want error
	}{
		{name: "step of one day", env: map[string]string{EnvStepDays: "1"}, want: solver.ErrInvalidStep},
		{name: "zero passes", env: map[string]string{EnvPasses: "0"}, want: solver.ErrInvalidPasses},
		{name: "unknown precision", env: map[string]string{EnvPrecision: "extreme"}, want: ephem.ErrUnknownPrecision},
		{name: "unknown format", env: map[string]string{EnvFormat: "xml"}, want: ErrInvalidFormat},
		{name: "unknown log level", env: map[string]string{EnvLogLevel: "loud"}, want: ErrInvalidLogLevel},
		{name: "latitude", body: "observer:\n  latitude: 91\n", want: ErrInvalidLatitude},
		{name: "longitude", body: "observer:\n  longitude: -181\n", want: ErrInvalidLongitude},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := ""
			if tt.body != "" {
				path = writeConfig(t, tt.body)
			}
			_, err := Load(path)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoad_BadInput(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeConfig(t, "search: [not, a, map]\n"))
	require.Error(t, err)

	t.Setenv(EnvPasses, "two")
	_, err = Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvPasses)

	t.Setenv(EnvPasses, "")
	t.Setenv(EnvTimeZone, "Mars/Olympus_Mons")
	_, err = Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "time zone")
}
