// Package evaluate measures the quality of a two-phase segmentation.
//
// Segmentations are masks: matrices holding 1 for inside pixels and 0 for
// outside pixels, laid out like the level sets of the chanvese package.
package evaluate

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// ErrShape is returned when two grids have different dimensions.
var ErrShape = errors.New("evaluate: dimension mismatch")

// Metrics compares a predicted mask against a reference mask.
type Metrics struct {
	// Accuracy is the fraction of pixels assigned to the correct region.
	Accuracy float64

	// Dice is 2|P∩T| / (|P|+|T|) over the inside regions.
	Dice float64

	// Jaccard is |P∩T| / |P∪T| over the inside regions.
	Jaccard float64

	// Misclassified is the number of pixels in exactly one of the masks.
	Misclassified int
}

// Mask returns 1 where phi >= 0 and 0 elsewhere.
func Mask(phi mat.Matrix) *mat.Dense {
	r, c := phi.Dims()
	m := mat.NewDense(r, c, nil)
	m.Apply(func(i, j int, v float64) float64 {
		if v >= 0 {
			return 1
		}
		return 0
	}, phi)
	return m
}

func sameShape(a, b mat.Matrix) error {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ar != br || ac != bc {
		return fmt.Errorf("%w: %dx%d vs %dx%d", ErrShape, ar, ac, br, bc)
	}
	return nil
}

// Compare scores the mask pred against truth. Both inputs must be 0/1
// masks of equal size. When neither mask has inside pixels, Dice and Jaccard
// are 1.
func Compare(pred, truth mat.Matrix) (Metrics, error) {
	if err := sameShape(pred, truth); err != nil {
		return Metrics{}, err
	}
	r, c := pred.Dims()

	var inter mat.Dense
	inter.MulElem(pred, truth)
	tp := mat.Sum(&inter)
	sumP := mat.Sum(pred)
	sumT := mat.Sum(truth)

	wrong := sumP + sumT - 2*tp
	m := Metrics{
		Accuracy:      1 - wrong/float64(r*c),
		Misclassified: int(math.Round(wrong)),
		Dice:          1,
		Jaccard:       1,
	}
	if sumP+sumT > 0 {
		m.Dice = 2 * tp / (sumP + sumT)
		m.Jaccard = tp / (sumP + sumT - tp)
	}
	return m, nil
}

// Approximation returns the piecewise-constant image that takes the value
// c1 inside phi and c2 outside.
func Approximation(phi mat.Matrix, c1, c2 float64) *mat.Dense {
	r, c := phi.Dims()
	u := mat.NewDense(r, c, nil)
	u.Apply(func(i, j int, v float64) float64 {
		if v >= 0 {
			return c1
		}
		return c2
	}, phi)
	return u
}

// FitRMSE is the root mean square error between img and its
// piecewise-constant approximation.
func FitRMSE(img, phi mat.Matrix, c1, c2 float64) (float64, error) {
	if err := sameShape(img, phi); err != nil {
		return 0, err
	}
	r, c := img.Dims()

	var diff mat.Dense
	diff.Sub(img, Approximation(phi, c1, c2))
	return mat.Norm(&diff, 2) / math.Sqrt(float64(r*c)), nil
}

// Separability is the ratio of between-region variance to total variance
// of img for the partition given by phi (Otsu's eta). It lies in [0, 1];
// a constant image or a one-sided partition scores 0.
func Separability(img, phi mat.Matrix) (float64, error) {
	if err := sameShape(img, phi); err != nil {
		return 0, err
	}

	values := mat.DenseCopyOf(img).RawMatrix().Data
	inside := mat.DenseCopyOf(Mask(phi)).RawMatrix().Data
	outside := make([]float64, len(inside))
	for k, w := range inside {
		outside[k] = 1 - w
	}

	n := float64(len(values))
	w1 := stat.Mean(inside, nil)
	w2 := 1 - w1
	if w1 == 0 || w2 == 0 {
		return 0, nil
	}

	_, variance := stat.MeanVariance(values, nil)
	total := variance * (n - 1) / n
	if total == 0 {
		return 0, nil
	}

	mu1 := stat.Mean(values, inside)
	mu2 := stat.Mean(values, outside)
	between := w1 * w2 * (mu1 - mu2) * (mu1 - mu2)
	return between / total, nil
}
