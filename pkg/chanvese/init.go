package chanvese

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ErrInvalidRect is returned by InitPhiRect when the rectangle does not
// have exactly four coordinates.
var ErrInvalidRect = errors.New("chanvese: rect is not appropriate")

// InitPhi builds the default initial level set
//
//	Phi(i,j) = sin(i*pi/5) * sin(j*pi/5)
//
// a checkerboard of smooth lobes covering the whole domain, so both regions
// are non-empty for typical image sizes.
func InitPhi(width, height int) *mat.Dense {
	phi := mat.NewDense(width, height, nil)
	for i := 0; i < width; i++ {
		si := math.Sin(float64(i) * math.Pi / 5)
		for j := 0; j < height; j++ {
			phi.Set(i, j, si*math.Sin(float64(j)*math.Pi/5))
		}
	}
	return phi
}

// InitPhiRect builds a level set that is +1 on the inclusive rectangle
// rect = [x0, y0, x1, y1] and -1 elsewhere. The corners may be given in
// either order.
//
// If rect does not hold exactly four values, InitPhiRect returns an all-zero
// field together with an error wrapping ErrInvalidRect. The zero field is a
// usable (degenerate) grid; callers must detect it through the error.
func InitPhiRect(width, height int, rect []int) (*mat.Dense, error) {
	phi := mat.NewDense(width, height, nil)
	if len(rect) != 4 {
		return phi, fmt.Errorf("%w: want 4 values, got %d", ErrInvalidRect, len(rect))
	}

	x0, y0, x1, y1 := rect[0], rect[1], rect[2], rect[3]
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}

	for i := 0; i < width; i++ {
		for j := 0; j < height; j++ {
			if i >= x0 && i <= x1 && j >= y0 && j <= y1 {
				phi.Set(i, j, 1)
			} else {
				phi.Set(i, j, -1)
			}
		}
	}
	return phi, nil
}
