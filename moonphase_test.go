package glidepath

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoonPhaseAt(t *testing.T) {
	cases := []struct {
		name   string
		at     time.Time
		phase  string
		waxing bool
	}{
		// 2025 lunations, UTC
		{"first quarter", time.Date(2025, time.May, 4, 13, 52, 0, 0, time.UTC), "First Quarter", true},
		{"full moon", time.Date(2025, time.May, 12, 16, 56, 0, 0, time.UTC), "Full Moon", false},
		{"last quarter", time.Date(2025, time.May, 20, 11, 59, 0, 0, time.UTC), "Last Quarter", false},
		{"new moon", time.Date(2025, time.May, 27, 3, 2, 0, 0, time.UTC), "New Moon", false},
		{"waxing crescent", time.Date(2025, time.May, 30, 0, 0, 0, 0, time.UTC), "Waxing Crescent", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := MoonPhaseAt(tc.at)
			require.NoError(t, err)
			assert.Equal(t, tc.phase, p.Name, "fraction %.3f", p.Fraction)
			assert.Equal(t, tc.at, p.Time)
			assert.GreaterOrEqual(t, p.Fraction, 0.0)
			assert.LessOrEqual(t, p.Fraction, 1.0)
			if tc.phase != "Full Moon" && tc.phase != "New Moon" {
				assert.Equal(t, tc.waxing, p.Waxing)
			}
		})
	}
}

func TestMoonPhaseName(t *testing.T) {
	assert.Equal(t, "Waning Gibbous", moonPhaseName(0.8, false))
	assert.Equal(t, "Waxing Gibbous", moonPhaseName(0.8, true))
	assert.Equal(t, "Waning Crescent", moonPhaseName(0.2, false))
}
