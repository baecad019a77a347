package analyzer

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/fsco101/Bignay-Backend/internal/imaging"
	"github.com/fsco101/Bignay-Backend/pkg/models"
)

type qualityAssessor struct{}

// NewQualityAssessor creates the capture-quality assessor.
func NewQualityAssessor() QualityAssessor {
	return &qualityAssessor{}
}

// Assess scores blur, brightness, contrast and subject size on the raw
// image, collects human-readable issues with paired recommendations, and
// derives the overall quality tier. Scores are rounded to three decimals.
func (qa *qualityAssessor) Assess(g *imaging.Grid, maskCoverage float64) models.ImageQuality {
	gray := g.Gray()
	grayF := make([]float64, len(gray))
	for i, v := range gray {
		grayF[i] = float64(v)
	}

	// Blur: Laplacian variance, normalized against a typical sharp-image
	// range of ~500 and clamped.
	blurScore := math.Min(1.0, laplacianVariance(gray, g.W, g.H)/500.0)

	// Brightness: full score in the 0.3-0.7 band, linear falloff outside.
	brightness := stat.Mean(grayF, nil) / 255.0
	var brightnessScore float64
	switch {
	case brightness >= 0.3 && brightness <= 0.7:
		brightnessScore = 1.0
	case brightness < 0.3:
		brightnessScore = brightness / 0.3
	default:
		brightnessScore = (1.0 - brightness) / 0.3
	}
	brightnessScore = clamp01(brightnessScore)

	// Contrast: grayscale standard deviation over half the 8-bit range.
	contrastScore := math.Min(1.0, stat.PopStdDev(grayF, nil)/128.0)

	// Subject size: full score for 5-50% coverage, linear below, floored
	// falloff above.
	var sizeScore float64
	switch {
	case maskCoverage >= 0.05 && maskCoverage <= 0.50:
		sizeScore = 1.0
	case maskCoverage < 0.05:
		sizeScore = maskCoverage / 0.05
	default:
		sizeScore = math.Max(0.3, 1.0-(maskCoverage-0.50)/0.50)
	}
	sizeScore = clamp01(sizeScore)

	var issues, recommendations []string
	if blurScore < 0.3 {
		issues = append(issues, "Image appears blurry")
		recommendations = append(recommendations, "Hold the camera steady or tap to focus")
	} else if blurScore < 0.5 {
		issues = append(issues, "Image is slightly out of focus")
		recommendations = append(recommendations, "Try focusing on the fruit/leaf")
	}
	if brightness < 0.25 {
		issues = append(issues, "Image is too dark")
		recommendations = append(recommendations, "Move to better lighting or use flash")
	} else if brightness > 0.75 {
		issues = append(issues, "Image is overexposed")
		recommendations = append(recommendations, "Reduce direct light or move to shade")
	}
	if contrastScore < 0.3 {
		issues = append(issues, "Low contrast detected")
		recommendations = append(recommendations, "Ensure the fruit/leaf stands out from background")
	}
	if maskCoverage < 0.03 {
		issues = append(issues, "Subject appears too far or small")
		recommendations = append(recommendations, "Move closer to the Bignay fruit or leaf")
	} else if maskCoverage > 0.60 {
		issues = append(issues, "Subject is too close")
		recommendations = append(recommendations, "Move back slightly to capture the whole fruit/leaf")
	}

	avgScore := (blurScore + brightnessScore + contrastScore + sizeScore) / 4.0
	var overall string
	switch {
	case avgScore >= 0.6 && len(issues) <= 1:
		overall = models.QualityGood
	case avgScore >= 0.35 || len(issues) <= 2:
		overall = models.QualityAcceptable
	default:
		overall = models.QualityPoor
	}

	return models.ImageQuality{
		BlurScore:        round3(blurScore),
		BrightnessScore:  round3(brightnessScore),
		ContrastScore:    round3(contrastScore),
		SubjectSizeScore: round3(sizeScore),
		OverallQuality:   overall,
		Issues:           issues,
		Recommendations:  recommendations,
	}
}

// laplacianVariance measures sharpness as the population variance of the
// 4-neighbor Laplacian response, with mirrored borders.
func laplacianVariance(gray []uint8, w, h int) float64 {
	if w == 0 || h == 0 {
		return 0
	}
	at := func(x, y int) float64 {
		if x < 0 || x >= w {
			x = reflectIndex(x, w)
		}
		if y < 0 || y >= h {
			y = reflectIndex(y, h)
		}
		return float64(gray[y*w+x])
	}

	data := make([]float64, 0, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			lap := -4*at(x, y) + at(x, y-1) + at(x, y+1) + at(x-1, y) + at(x+1, y)
			data = append(data, lap)
		}
	}
	return stat.PopVariance(data, nil)
}

// reflectIndex mirrors an out-of-range index without repeating the border.
func reflectIndex(i, n int) int {
	if n == 1 {
		return 0
	}
	for i < 0 || i >= n {
		if i < 0 {
			i = -i
		}
		if i >= n {
			i = 2*(n-1) - i
		}
	}
	return i
}

func clamp01(v float64) float64 {
	return math.Max(0.0, math.Min(1.0, v))
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
