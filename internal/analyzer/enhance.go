package analyzer

import (
	"github.com/fsco101/Bignay-Backend/internal/imaging"
)

// sharpenKernel is a scaled unsharp-mask kernel: center 9.5, edges -1,
// everything divided by 1.5.
var sharpenKernel = [9]float64{
	-1 / 1.5, -1 / 1.5, -1 / 1.5,
	-1 / 1.5, 9.5 / 1.5, -1 / 1.5,
	-1 / 1.5, -1 / 1.5, -1 / 1.5,
}

type detectionEnhancer struct{}

// NewEnhancer creates the enhancement pipeline applied before classification.
func NewEnhancer() Enhancer {
	return &detectionEnhancer{}
}

// Enhance improves classifier input for blurry, distant or poorly lit
// captures: edge-preserving denoise, adaptive local contrast equalization on
// the Lab lightness channel, then a mild sharpen. The input grid is left
// untouched.
func (de *detectionEnhancer) Enhance(g *imaging.Grid) *imaging.Grid {
	enhanced := imaging.BilateralFilter(g, 9, 75, 75)

	l, a, b := enhanced.Lab()
	l = imaging.CLAHE(l, enhanced.W, enhanced.H, 2.0, 8, 8)
	enhanced = imaging.GridFromLab(enhanced.W, enhanced.H, l, a, b)

	// Convolve3x3 saturates to the 8-bit range, covering the overshoot the
	// sharpening kernel can produce.
	return imaging.Convolve3x3(enhanced, sharpenKernel)
}
