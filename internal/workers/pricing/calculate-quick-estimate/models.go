// internal/workers/pricing/calculate-quick-estimate/models.go
package calculatequickestimate

import "creator-pricing-workers/internal/scoring/estimate"

type Input struct {
	FollowerCount int    `json:"followerCount"`
	Platform      string `json:"platform"`
	ContentFormat string `json:"contentFormat"`
	Niche         string `json:"niche,omitempty"`
}

type Output struct {
	Estimate     estimate.Result `json:"estimate"`
	DisplayRange string          `json:"displayRange"`
}
