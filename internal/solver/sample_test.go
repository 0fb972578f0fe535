package solver

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSample(t *testing.T) {
	s, err := Sample(0, 2, 0.8)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 0.8, 1.6}, s, 1e-12)

	// end is exclusive
	s, err = Sample(10, 11.6, 0.8)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{10, 10.8}, s, 1e-12)
}

func TestSampleNoDrift(t *testing.T) {
	start := 2458849.5
	s, err := Sample(start, start+3660, 0.8)
	require.NoError(t, err)
	require.Len(t, s, 4575)
	assert.Equal(t, start+4574*0.8, s[len(s)-1])
}

func TestSampleErrors(t *testing.T) {
	tests := []struct {
		name             string
		start, end, step float64
		want             error
	}{
		{"empty interval", 5, 5, 0.5, ErrInvalidInterval},
		{"reversed interval", 5, 4, 0.5, ErrInvalidInterval},
		{"nan start", math.NaN(), 4, 0.5, ErrInvalidInterval},
		{"infinite end", 0, math.Inf(1), 0.5, ErrInvalidInterval},
		{"zero step", 0, 4, 0, ErrInvalidStep},
		{"negative step", 0, 4, -0.5, ErrInvalidStep},
		{"one day step", 0, 4, 1, ErrInvalidStep},
		{"nan step", 0, 4, math.NaN(), ErrInvalidStep},
		{"single sample", 0, 0.5, 0.8, ErrTooFewSamples},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Sample(tt.start, tt.end, tt.step)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
