// internal/workers/pricing/calculate-deal-quality/models.go
package calculatedealquality

import (
	"creator-pricing-workers/internal/models"
	"creator-pricing-workers/internal/scoring/dealquality"
)

type Input struct {
	CreatorProfile        models.CreatorProfile `json:"creatorProfile"`
	Brief                 models.ParsedBrief    `json:"brief"`
	BrandTrustScore       *int                  `json:"brandTrustScore,omitempty"`
	PreviousCollaboration bool                  `json:"previousCollaboration,omitempty"`
}

// Output carries both views of the one assessment. fitScore is kept for
// process models written against the older response.
type Output struct {
	DealQuality dealquality.Result         `json:"dealQuality"`
	FitScore    dealquality.FitScoreResult `json:"fitScore"`
}
