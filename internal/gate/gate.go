// Package gate decides whether a scanned image plausibly shows a Bignay
// fruit or leaf, combining classifier confidence with color and capture
// quality signals.
package gate

import (
	"fmt"
	"strings"

	"github.com/fsco101/Bignay-Backend/pkg/models"
)

// Thresholds are the gate's confidence cut points. They balance accepting
// blurry/distant Bignay against rejecting non-Bignay items; treat them as a
// calibration set, not derived values.
type Thresholds struct {
	// AbsoluteMin is the floor below which nothing is accepted.
	AbsoluteMin float64
	// Min is the boundary below which color and quality must compensate.
	Min float64
	// Accept is the confident-detection threshold.
	Accept float64
}

// DefaultThresholds returns the calibrated production thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{AbsoluteMin: 0.25, Min: 0.30, Accept: 0.45}
}

// SubjectGate evaluates the accept/reject decision table.
type SubjectGate struct {
	thresholds Thresholds
}

// NewSubjectGate creates a gate with the default thresholds.
func NewSubjectGate() *SubjectGate {
	return &SubjectGate{thresholds: DefaultThresholds()}
}

// NewSubjectGateWithThresholds creates a gate with custom thresholds.
func NewSubjectGateWithThresholds(t Thresholds) *SubjectGate {
	return &SubjectGate{thresholds: t}
}

// colorProfile classifies the mean hue/saturation against the expected
// Bignay palette: dark purple/red when ripe, green when unripe or for leaves.
type colorProfile struct {
	isTypical      bool
	isClearlyWrong bool
}

// profileColor buckets hue (0-179 scale) and saturation.
func profileColor(h, s float64) colorProfile {
	isRedPurple := h <= 20 || h >= 130
	isGreen := h >= 35 && h <= 90

	isOrangeYellow := h > 20 && h < 35 && s > 50
	isBlueCyan := h > 90 && h < 130 && s > 40

	return colorProfile{
		isTypical:      isRedPurple || isGreen,
		isClearlyWrong: isOrangeYellow || isBlueCyan,
	}
}

// Evaluate runs the decision sequence; the first matching rule wins. A nil
// quality is treated as unknown and contributes empty issue lists.
func (sg *SubjectGate) Evaluate(confidence float64, features models.ImageFeatures, quality *models.ImageQuality) models.GateVerdict {
	var issues, recommendations []string
	overall := "unknown"
	if quality != nil {
		issues = quality.Issues
		recommendations = quality.Recommendations
		overall = quality.OverallQuality
	}
	if issues == nil {
		issues = []string{}
	}
	if recommendations == nil {
		recommendations = []string{}
	}

	h := features.ColorHSVMean[0]
	s := features.ColorHSVMean[1]
	profile := profileColor(h, s)

	// Rule 1: below the absolute floor nothing passes.
	if confidence < sg.thresholds.AbsoluteMin {
		reason := "The image does not appear to be a Bignay fruit or leaf."
		if len(issues) > 0 {
			reason += fmt.Sprintf(" Issues: %s.", strings.Join(topN(issues, 2), ", "))
		} else {
			reason += " Model confidence is very low."
		}
		return models.GateVerdict{
			IsBignay:               false,
			ConfidenceLevel:        models.LevelVeryLow,
			Reason:                 &reason,
			QualityIssues:          issues,
			QualityRecommendations: recommendations,
		}
	}

	// Rule 2: strong color mismatch plus unconvincing confidence.
	if profile.isClearlyWrong && confidence < 0.60 {
		reason := "The image color does not match Bignay. Bignay fruits are typically dark purple/red (ripe) or green (unripe)."
		return models.GateVerdict{
			IsBignay:               false,
			ConfidenceLevel:        models.LevelColorMismatch,
			Reason:                 &reason,
			QualityIssues:          issues,
			QualityRecommendations: []string{"Make sure you're scanning a Bignay fruit or leaf"},
		}
	}

	// Rule 3: below the minimum threshold color and quality decide.
	if confidence < sg.thresholds.Min {
		if !profile.isTypical {
			reason := "The image does not appear to be a Bignay. Color and confidence do not match expected values."
			return models.GateVerdict{
				IsBignay:               false,
				ConfidenceLevel:        models.LevelLow,
				Reason:                 &reason,
				QualityIssues:          issues,
				QualityRecommendations: recommendations,
			}
		}
		// Typical color under poor capture conditions: the low confidence
		// is plausibly the image's fault, so accept with a warning.
		if overall == models.QualityPoor || overall == models.QualityAcceptable {
			reason := "Detection confidence is very low, but color profile matches Bignay."
			return models.GateVerdict{
				IsBignay:               true,
				ConfidenceLevel:        models.LevelVeryLow,
				Reason:                 &reason,
				QualityIssues:          issues,
				QualityRecommendations: recommendations,
				Warning:                "Results may be inaccurate. Try capturing a clearer image.",
			}
		}
		reason := "The image might not be a Bignay fruit or leaf. Please verify."
		return models.GateVerdict{
			IsBignay:               false,
			ConfidenceLevel:        models.LevelLow,
			Reason:                 &reason,
			QualityIssues:          issues,
			QualityRecommendations: recommendations,
		}
	}

	// Rule 4: between Min and Accept, accept with a warning.
	if confidence < sg.thresholds.Accept {
		warning := "Results may be less accurate due to low confidence."
		if len(issues) > 0 {
			warning = fmt.Sprintf("Results may be affected by: %s.", strings.Join(topN(issues, 2), ", "))
		}
		return models.GateVerdict{
			IsBignay:               true,
			ConfidenceLevel:        models.LevelLow,
			Reason:                 nil,
			QualityIssues:          issues,
			QualityRecommendations: recommendations,
			Warning:                warning,
		}
	}

	// Rule 5: confident detection. Saturated atypical color still warrants
	// a caveat when confidence is not overwhelming.
	if !profile.isTypical && s > 60 && confidence < 0.65 {
		return models.GateVerdict{
			IsBignay:               true,
			ConfidenceLevel:        models.LevelMedium,
			Reason:                 nil,
			QualityIssues:          issues,
			QualityRecommendations: []string{"Color appears unusual - verify if needed"},
			Warning:                "Color profile is atypical for Bignay",
		}
	}

	level := models.LevelLow
	switch {
	case confidence >= 0.70:
		level = models.LevelHigh
	case confidence >= 0.55:
		level = models.LevelMedium
	}
	recs := []string{}
	if confidence < 0.60 {
		recs = recommendations
	}
	return models.GateVerdict{
		IsBignay:               true,
		ConfidenceLevel:        level,
		Reason:                 nil,
		QualityIssues:          issues,
		QualityRecommendations: recs,
	}
}

func topN(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
