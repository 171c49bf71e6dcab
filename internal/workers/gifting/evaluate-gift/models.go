// internal/workers/gifting/evaluate-gift/models.go
package evaluategift

import (
	"creator-pricing-workers/internal/models"
	"creator-pricing-workers/internal/scoring/gifting"
)

type Input struct {
	Offer          gifting.Input         `json:"offer"`
	CreatorProfile models.CreatorProfile `json:"creatorProfile"`
	CreatorName    string                `json:"creatorName,omitempty"`
}

type Output struct {
	Evaluation gifting.Evaluation `json:"evaluation"`
	Response   string             `json:"response"`
}
