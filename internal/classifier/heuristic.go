package classifier

import (
	"github.com/fsco101/Bignay-Backend/pkg/models"
)

// HeuristicFruitClassifier is a color-based stand-in used when no trained
// fruit model is configured. It is not a real model; it keeps the API usable
// for demos and should be replaced by a model server as soon as one exists.
type HeuristicFruitClassifier struct{}

// Classes returns the fruit label set.
func (HeuristicFruitClassifier) Classes() []string { return append([]string(nil), FruitClasses...) }

// PredictFromFeatures guesses a fruit class from the mean HSV color:
// reddish/purple and saturated reads as ripe, dark as overripe, desaturated
// as unripe.
func (HeuristicFruitClassifier) PredictFromFeatures(features models.ImageFeatures) models.Prediction {
	h := features.ColorHSVMean[0]
	s := features.ColorHSVMean[1]
	v := features.ColorHSVMean[2]

	if v < 60 {
		return models.Prediction{Class: "overripe", Confidence: 0.55}
	}

	// Hue for red wraps around; on the 0-179 scale both ends are red.
	isReddish := h <= 10 || h >= 160
	if isReddish && s > 60 {
		return models.Prediction{Class: "ripe", Confidence: 0.60}
	}

	if s < 35 {
		return models.Prediction{Class: "unripe", Confidence: 0.40}
	}
	return models.Prediction{Class: "unripe", Confidence: 0.55}
}

// HeuristicLeafClassifier is the leaf counterpart of the fruit heuristic.
type HeuristicLeafClassifier struct{}

// Classes returns the leaf label set.
func (HeuristicLeafClassifier) Classes() []string { return append([]string(nil), LeafClasses...) }

// PredictFromFeatures flags very dark, desaturated foliage as possibly moldy.
func (HeuristicLeafClassifier) PredictFromFeatures(features models.ImageFeatures) models.Prediction {
	s := features.ColorHSVMean[1]
	v := features.ColorHSVMean[2]

	if v < 70 && s < 80 {
		return models.Prediction{Class: "mold", Confidence: 0.55}
	}
	return models.Prediction{Class: "healthy", Confidence: 0.60}
}
