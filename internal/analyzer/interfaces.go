package analyzer

import (
	"github.com/fsco101/Bignay-Backend/internal/imaging"
	"github.com/fsco101/Bignay-Backend/pkg/models"
)

// Segmenter isolates the dominant subject from the background.
type Segmenter interface {
	Segment(g *imaging.Grid) (*imaging.Mask, float64)
}

// FeatureExtractor computes color and size features over the masked subject.
type FeatureExtractor interface {
	Extract(g *imaging.Grid, mask *imaging.Mask, coverage float64) models.ImageFeatures
}

// QualityAssessor scores capture quality and produces actionable feedback.
type QualityAssessor interface {
	Assess(g *imaging.Grid, maskCoverage float64) models.ImageQuality
}

// Enhancer produces a cleaned-up copy of the image for classifier input.
type Enhancer interface {
	Enhance(g *imaging.Grid) *imaging.Grid
}
