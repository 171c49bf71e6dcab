// internal/workers/pricing/calculate-price/models.go
package calculateprice

import (
	"creator-pricing-workers/internal/models"
	"creator-pricing-workers/internal/scoring/dealquality"
	"creator-pricing-workers/internal/scoring/pricing"
)

type Input struct {
	CreatorProfile        models.CreatorProfile `json:"creatorProfile"`
	Brief                 models.ParsedBrief    `json:"brief"`
	BrandTrustScore       *int                  `json:"brandTrustScore,omitempty"`
	PreviousCollaboration bool                  `json:"previousCollaboration,omitempty"`

	// OverrideTotal is the creator's own figure; the computed total is kept alongside it.
	OverrideTotal *int `json:"overrideTotal,omitempty"`
}

type Output struct {
	Quote          pricing.Result     `json:"quote"`
	DealQuality    dealquality.Result `json:"dealQuality"`
	FormattedTotal string             `json:"formattedTotal"`
	ValidUntil     string             `json:"validUntil"`
}
