package chanvese

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// divideEps regularizes the curvature coefficients where Phi is flat.
const divideEps = 1e-16

// neighborOffsets returns the offsets to the previous and next sample along
// an axis of length n. At the edges the offset is clamped to 0, which gives
// a zero-gradient (Neumann) boundary.
func neighborOffsets(k, n int) (prev, next int) {
	prev, next = -1, 1
	if k == 0 {
		prev = 0
	}
	if k == n-1 {
		next = 0
	}
	return prev, next
}

// regions holds the averages that enter the fit terms of one sweep.
type regions struct {
	c1, c2 float64
}

// sweep performs one semi-implicit update of phi over the whole grid and
// returns the sum of squared per-pixel changes.
//
// phi is updated in place in a fixed order (j outer, i inner), so a pixel
// sees the new values of the neighbours already visited in this sweep and
// the old values of the rest. This Gauss-Seidel coupling is part of the
// scheme; a double-buffered sweep gives a different trajectory.
func sweep(phi *mat.Dense, img mat.Matrix, p *Params, avg regions) float64 {
	width, height := phi.Dims()

	var sumSq float64
	for j := 0; j < height; j++ {
		ju, jd := neighborOffsets(j, height)

		for i := 0; i < width; i++ {
			il, ir := neighborOffsets(i, width)

			cur := phi.At(i, j)
			right := phi.At(i+ir, j)
			left := phi.At(i+il, j)
			down := phi.At(i, j+jd)
			up := phi.At(i, j+ju)

			delta := p.Dt / (math.Pi * (1 + cur*cur))

			phiX := right - cur
			phiY := (down - up) / 2
			iDivR := 1 / math.Sqrt(divideEps+phiX*phiX+phiY*phiY)
			phiX = cur - left
			iDivL := 1 / math.Sqrt(divideEps+phiX*phiX+phiY*phiY)
			phiX = (right - left) / 2
			phiY = down - cur
			iDivD := 1 / math.Sqrt(divideEps+phiX*phiX+phiY*phiY)
			phiY = cur - up
			iDivU := 1 / math.Sqrt(divideEps+phiX*phiX+phiY*phiY)

			f := img.At(i, j)
			dist1 := f - avg.c1
			dist2 := f - avg.c2
			dist1 *= dist1
			dist2 *= dist2

			// Curvature is implicit in the centre pixel, data terms explicit.
			next := (cur + delta*(p.Mu*(right*iDivR+left*iDivL+down*iDivD+up*iDivU)-
				p.Nu-p.Lambda1*dist1+p.Lambda2*dist2)) /
				(1 + delta*p.Mu*(iDivR+iDivL+iDivD+iDivU))
			phi.Set(i, j, next)

			diff := next - cur
			sumSq += diff * diff
		}
	}
	return sumSq
}
