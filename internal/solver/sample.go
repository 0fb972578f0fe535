package solver

import (
	"errors"
	"fmt"
	"math"
)

const (
	// DefaultStep is the coarse sampling cadence in days. It has to stay
	// below the shortest spacing between two crossings of the same kind,
	// which is a little under one day for the Sun and a little over one day
	// for the Moon.
	DefaultStep = 0.8

	// MaxStep is the largest accepted cadence. At one day or more a diurnal
	// body can cross twice between samples and both crossings are lost.
	MaxStep = 1.0
)

var (
	// ErrInvalidInterval is returned when end is not after start.
	ErrInvalidInterval = errors.New("search interval end must be after start")

	// ErrInvalidStep is returned for a non-positive, non-finite, or too large
	// sampling step.
	ErrInvalidStep = errors.New("invalid sampling step")

	// ErrTooFewSamples is returned when the interval holds fewer than two
	// samples, so no bracket can ever be formed.
	ErrTooFewSamples = errors.New("search interval shorter than one sampling step")
)

// Sample returns the coarse sample times start, start+step, ... strictly
// before end. Times are computed as start+i·step rather than by repeated
// addition so the grid does not drift over long spans.
func Sample(start, end, step float64) ([]float64, error) {
	if math.IsNaN(start) || math.IsInf(start, 0) || !(end > start) || math.IsInf(end, 0) {
		return nil, fmt.Errorf("%w: [%v, %v)", ErrInvalidInterval, start, end)
	}
	if math.IsNaN(step) || math.IsInf(step, 0) || step <= 0 || step >= MaxStep {
		return nil, fmt.Errorf("%w: %v days (want 0 < step < %v)", ErrInvalidStep, step, MaxStep)
	}

	n := int(math.Ceil((end - start) / step))
	for n > 0 && start+float64(n-1)*step >= end {
		n--
	}
	if n < 2 {
		return nil, fmt.Errorf("%w: %v days at step %v", ErrTooFewSamples, end-start, step)
	}

	t := make([]float64, n)
	for i := range t {
		t[i] = start + float64(i)*step
	}
	return t, nil
}
