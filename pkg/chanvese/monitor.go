package chanvese

import "math"

// rmsNorm converts the summed squared change of a sweep into a root mean
// square over numPixels.
func rmsNorm(sumSq float64, numPixels int) float64 {
	if numPixels == 0 {
		return 0
	}
	return math.Sqrt(sumSq / float64(numPixels))
}

// monitor decides when the iteration stops.
type monitor struct {
	tol     float64
	maxIter int
}

// done reports whether iteration iter (1-based) with change rms satisfies
// the stop condition. The first iteration never stops the solve.
func (m monitor) done(iter int, rms float64) bool {
	return iter >= 2 && rms <= m.tol
}
