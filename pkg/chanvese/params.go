// Package chanvese implements Chan-Vese "active contours without edges"
// two-phase segmentation of a single-channel image.
//
// The contour is represented implicitly by a level set function Phi with the
// same dimensions as the image. Phi(i,j) >= 0 means pixel (i,j) is inside the
// curve, Phi(i,j) < 0 means it is outside. The solver minimizes
//
//	Mu*Length(C) + Nu*Area(inside(C))
//	  + Lambda1 * sum_inside (f - c1)^2 + Lambda2 * sum_outside (f - c2)^2
//
// with a semi-implicit finite difference scheme. Grids are gonum dense
// matrices with width rows and height columns, so Phi(i,j) is phi.At(i, j)
// for i in [0, width) and j in [0, height).
package chanvese

import (
	"errors"
	"fmt"
)

// ErrInvalidParams is returned by Params.Validate for out-of-domain values.
var ErrInvalidParams = errors.New("chanvese: invalid parameters")

// Params holds the per-run solver parameters.
type Params struct {
	// Mu is the length penalty. Must be >= 0.
	Mu float64

	// Nu is the area penalty. Positive values penalize area inside the
	// curve, negative values reward it.
	Nu float64

	// Lambda1 is the fit penalty inside the curve. Must be >= 0.
	Lambda1 float64

	// Lambda2 is the fit penalty outside the curve. Must be >= 0.
	Lambda2 float64

	// Dt is the pseudo-time step. Must be > 0.
	Dt float64

	// Tol is the RMS convergence threshold. Tol = 0 forces MaxIter
	// iterations.
	Tol float64

	// MaxIter caps the number of iterations. Must be >= 1.
	MaxIter int
}

// DefaultParams returns the parameters commonly used for images scaled to
// [0, 1].
func DefaultParams() Params {
	return Params{
		Mu:      0.25,
		Nu:      0,
		Lambda1: 1,
		Lambda2: 1,
		Dt:      0.5,
		Tol:     1e-3,
		MaxIter: 500,
	}
}

// Validate reports the first parameter that lies outside its domain.
// The solver itself does not call Validate.
func (p Params) Validate() error {
	switch {
	case p.Mu < 0:
		return fmt.Errorf("%w: mu must be >= 0, got %g", ErrInvalidParams, p.Mu)
	case p.Lambda1 < 0:
		return fmt.Errorf("%w: lambda1 must be >= 0, got %g", ErrInvalidParams, p.Lambda1)
	case p.Lambda2 < 0:
		return fmt.Errorf("%w: lambda2 must be >= 0, got %g", ErrInvalidParams, p.Lambda2)
	case !(p.Dt > 0):
		return fmt.Errorf("%w: dt must be > 0, got %g", ErrInvalidParams, p.Dt)
	case p.Tol < 0:
		return fmt.Errorf("%w: tol must be >= 0, got %g", ErrInvalidParams, p.Tol)
	case p.MaxIter < 1:
		return fmt.Errorf("%w: maxIter must be >= 1, got %d", ErrInvalidParams, p.MaxIter)
	}
	return nil
}
