package chanvese

import "gonum.org/v1/gonum/mat"

// RegionAverages returns the mean of img over the inside region (phi >= 0)
// as c1 and over the outside region (phi < 0) as c2. A region with no pixels
// has an average of exactly 0.
func RegionAverages(phi, img mat.Matrix) (c1, c2 float64) {
	width, height := img.Dims()

	var sum1, sum2 float64
	var count1, count2 int
	for i := 0; i < width; i++ {
		for j := 0; j < height; j++ {
			if phi.At(i, j) >= 0 {
				count1++
				sum1 += img.At(i, j)
			} else {
				count2++
				sum2 += img.At(i, j)
			}
		}
	}

	if count1 > 0 {
		c1 = sum1 / float64(count1)
	}
	if count2 > 0 {
		c2 = sum2 / float64(count2)
	}
	return c1, c2
}
