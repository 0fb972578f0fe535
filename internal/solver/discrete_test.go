package solver

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindDiscreteUniform(t *testing.T) {
	target := &uniformTarget{}
	f := target.altitude(0)

	rises := FindDiscrete(f, 0, 3, 0, Rising, 0.07, 1e-10)
	require.Len(t, rises, 3)
	for k, r := range rises {
		assert.InDelta(t, 0.75+float64(k), r, 1e-8)
	}

	sets := FindDiscrete(f, 0, 3, 0, Setting, 0.07, 1e-10)
	require.Len(t, sets, 3)
	for k, s := range sets {
		assert.InDelta(t, 0.25+float64(k), s, 1e-8)
	}
}

func TestFindDiscreteAgreesWithSearch(t *testing.T) {
	target := &uniformTarget{t0: 0.37, dec: 0.2}
	lat, alt := 0.6, -0.0145

	fast, err := FindCrossings(target, lat, alt, 0, 20, Setting, DefaultConfig())
	require.NoError(t, err)
	slow := FindDiscrete(target.altitude(lat), 0, 20, alt, Setting, DefaultDiscreteStep, DefaultDiscreteTolerance)

	require.Len(t, fast, len(slow))
	for i, c := range fast {
		assert.InDelta(t, slow[i], c.TT, 2*DefaultDiscreteTolerance)
	}
}

func TestFindDiscreteNoCrossing(t *testing.T) {
	flat := func(tt []float64) []float64 {
		out := make([]float64, len(tt))
		for i := range out {
			out[i] = 0.3
		}
		return out
	}
	assert.Empty(t, FindDiscrete(flat, 0, 5, 0, Rising, DefaultDiscreteStep, 0))
}

func TestFindDiscreteBadInput(t *testing.T) {
	f := (&uniformTarget{}).altitude(0)
	assert.Nil(t, FindDiscrete(f, 5, 5, 0, Rising, 0.1, 1e-6))
	assert.Nil(t, FindDiscrete(f, 0, 5, 0, Rising, 0, 1e-6))
	assert.Nil(t, FindDiscrete(f, 0, 5, 0, Rising, math.NaN(), 1e-6))
}
