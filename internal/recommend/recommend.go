// Package recommend maps the classified ripeness/mold/quality state of a
// scanned fruit to a usage recommendation. Policy is safety-first: mold or a
// rejected quality grade always means discard.
package recommend

import (
	"github.com/fsco101/Bignay-Backend/pkg/models"
)

// Recommend picks the primary use and alternatives for the scanned fruit.
// Unknown state yields an "unknown" recommendation rather than an error.
func Recommend(ripenessStage *string, moldPresent bool, quality *string) models.Recommendation {
	if moldPresent {
		return models.Recommendation{
			Primary:      "discard",
			Alternatives: []string{},
			Reason:       "Mold detected; not recommended for consumption or processing.",
		}
	}

	if quality != nil && *quality == "reject" {
		return models.Recommendation{
			Primary:      "discard",
			Alternatives: []string{},
			Reason:       "Quality assessment indicates rejection.",
		}
	}

	if ripenessStage != nil {
		switch *ripenessStage {
		case "unripe":
			return models.Recommendation{
				Primary:      "vinegar",
				Alternatives: []string{"wine"},
				Reason:       "Unripe fruit is typically better for acidic/fermented processing than eating fresh.",
			}
		case "ripe":
			return models.Recommendation{
				Primary:      "eat",
				Alternatives: []string{"wine", "jam"},
				Reason:       "Ripe fruit is generally suitable to eat fresh; also good for wine/jam.",
			}
		case "overripe":
			return models.Recommendation{
				Primary:      "jam",
				Alternatives: []string{"wine", "vinegar"},
				Reason:       "Overripe fruit is usually best processed soon (jam/wine/vinegar).",
			}
		}
	}

	return models.Recommendation{
		Primary:      "unknown",
		Alternatives: []string{},
		Reason:       "Not enough information to recommend a use.",
	}
}
