package chanvese

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// EnergyTerms is the discrete Chan-Vese energy split into its weighted
// components.
type EnergyTerms struct {
	Length float64 // Mu * number of 4-adjacent pairs on opposite sides
	Area   float64 // Nu * number of inside pixels
	Fit1   float64 // Lambda1 * sum_inside (f - c1)^2
	Fit2   float64 // Lambda2 * sum_outside (f - c2)^2
}

// Total returns the sum of all terms.
func (e EnergyTerms) Total() float64 {
	return e.Length + e.Area + e.Fit1 + e.Fit2
}

// Energy evaluates the Chan-Vese functional for the partition encoded by
// phi, using the region averages c1 and c2.
func Energy(phi, img mat.Matrix, c1, c2 float64, p *Params) EnergyTerms {
	width, height := img.Dims()

	var edges, area int
	fit1 := make([]float64, 0, width*height)
	fit2 := make([]float64, 0, width*height)
	for i := 0; i < width; i++ {
		for j := 0; j < height; j++ {
			inside := phi.At(i, j) >= 0
			if i+1 < width && inside != (phi.At(i+1, j) >= 0) {
				edges++
			}
			if j+1 < height && inside != (phi.At(i, j+1) >= 0) {
				edges++
			}

			f := img.At(i, j)
			if inside {
				area++
				fit1 = append(fit1, (f-c1)*(f-c1))
			} else {
				fit2 = append(fit2, (f-c2)*(f-c2))
			}
		}
	}

	return EnergyTerms{
		Length: p.Mu * float64(edges),
		Area:   p.Nu * float64(area),
		Fit1:   p.Lambda1 * floats.Sum(fit1),
		Fit2:   p.Lambda2 * floats.Sum(fit2),
	}
}
