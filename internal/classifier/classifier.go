// Package classifier wraps the neural model behind a narrow interface:
// given a normalized image tensor it returns a class label and a confidence
// in [0, 1]. How the model is trained or stored is not this package's
// concern. Heuristic fallbacks cover deployments without a model server.
package classifier

import (
	"context"

	"github.com/fsco101/Bignay-Backend/internal/imaging"
	"github.com/fsco101/Bignay-Backend/pkg/models"
)

// ModelInputSize is the square side length the classifier expects.
const ModelInputSize = 224

// FruitClasses are the fruit model's output labels, in output-index order.
var FruitClasses = []string{"good", "mold", "overripe", "ripe", "unripe"}

// LeafClasses are the leaf model's output labels, in output-index order.
var LeafClasses = []string{"healthy", "mold"}

// Classifier is the opaque neural classifier capability.
type Classifier interface {
	// Available reports whether a real model backs this classifier.
	Available() bool

	// Classes returns the label set in output-index order.
	Classes() []string

	// Predict returns the winning class and its probability for one tensor.
	Predict(ctx context.Context, t *imaging.Tensor) (models.Prediction, error)
}
