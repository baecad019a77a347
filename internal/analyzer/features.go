package analyzer

import (
	"math"

	"github.com/fsco101/Bignay-Backend/internal/imaging"
	"github.com/fsco101/Bignay-Backend/pkg/models"
)

// minMaskCoverage is the coverage below which masked statistics are not
// trusted and whole-image statistics are used instead.
const minMaskCoverage = 0.01

type featureExtractor struct{}

// NewFeatureExtractor creates the color/size feature extractor.
func NewFeatureExtractor() FeatureExtractor {
	return &featureExtractor{}
}

// Extract computes mean HSV and Lab color over the masked subject (or the
// whole frame when coverage is negligible), the equivalent circular diameter
// of the mask, and a content hash of the working pixel grid.
func (fe *featureExtractor) Extract(g *imaging.Grid, mask *imaging.Mask, coverage float64) models.ImageFeatures {
	h, s, v := g.HSV()
	l, a, b := g.Lab()

	useMask := coverage > minMaskCoverage
	hsvMean := planeMeans(mask, useMask, h, s, v)
	labMean := planeMeans(mask, useMask, l, a, b)

	var diameter *float64
	if useMask {
		area := float64(mask.Count())
		d := math.Sqrt(4 * area / math.Pi)
		diameter = &d
	}

	// Hash of a canonical re-encoding of the current grid, for in-process
	// dedup/logging. The original upload bytes are hashed separately by the
	// caller.
	encoded, err := g.EncodeJPEG()
	if err != nil {
		encoded = g.Pix
	}

	return models.ImageFeatures{
		ContentHash:    imaging.SHA256Hex(encoded),
		ColorHSVMean:   hsvMean,
		ColorLabMean:   labMean,
		SizePxDiameter: diameter,
		MaskCoverage:   coverage,
	}
}

// planeMeans averages three planes over the mask, or over every pixel when
// the mask is not trusted.
func planeMeans(mask *imaging.Mask, useMask bool, p0, p1, p2 []uint8) [3]float64 {
	var sums [3]float64
	count := 0
	for i := range p0 {
		if useMask && !mask.Pix[i] {
			continue
		}
		sums[0] += float64(p0[i])
		sums[1] += float64(p1[i])
		sums[2] += float64(p2[i])
		count++
	}
	if count == 0 {
		return [3]float64{}
	}
	return [3]float64{sums[0] / float64(count), sums[1] / float64(count), sums[2] / float64(count)}
}
