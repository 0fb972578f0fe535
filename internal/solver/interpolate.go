package solver

import "gonum.org/v1/gonum/floats"

// Interpolate returns a first estimate of the crossing time inside every
// bracket, assuming the phase grows linearly between the two samples.
//
// With a = 2π − diff[i] the phase still to go from sample i and b = diff[i+1]
// the phase already gone at sample i+1, the estimate is
//
//	t = (b·t[i] + a·t[i+1]) / (a + b)
func Interpolate(tt []float64, b Brackets) []float64 {
	n := b.Len()
	if n == 0 {
		return nil
	}

	t0 := make([]float64, n)
	t1 := make([]float64, n)
	wa := make([]float64, n)
	wb := make([]float64, n)
	for k, i := range b.Index {
		t0[k], t1[k] = tt[i], tt[i+1]
		wa[k] = b.Diff[i]
		wb[k] = b.Diff[i+1]
	}

	// a = 2π − diff[i]
	floats.Scale(-1, wa)
	floats.AddConst(Tau, wa)

	num := floats.MulTo(make([]float64, n), wb, t0)
	floats.Add(num, floats.MulTo(make([]float64, n), wa, t1))
	den := floats.AddTo(make([]float64, n), wa, wb)

	return floats.DivTo(make([]float64, n), num, den)
}
