// Package estimate produces a rate range from follower count, platform and format
// alone, before a full creator profile or brief exists.
package estimate

import (
	"fmt"
	"math"
	"strings"

	"creator-pricing-workers/internal/models"
	"creator-pricing-workers/internal/scoring/tier"
)

const (
	DefaultNiche = "lifestyle"

	MinFollowers = 1_000
	MaxFollowers = 10_000_000

	rangeLow        = 0.8
	rangeHigh       = 1.2
	topPerformerLow = 1.3
	topPerformerTop = 1.6
	fullProfileLift = 1.35
)

type Input struct {
	FollowerCount int    `json:"followerCount"`
	Platform      string `json:"platform"`
	ContentFormat string `json:"contentFormat"`
	Niche         string `json:"niche,omitempty"`
}

type RateRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type MissingFactor struct {
	Icon        string `json:"icon"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Impact      string `json:"impact"`
}

type Result struct {
	Tier                     string          `json:"tier"`
	TierName                 string          `json:"tierName"`
	FollowerCount            int             `json:"followerCount"`
	Platform                 string          `json:"platform"`
	ContentFormat            string          `json:"contentFormat"`
	Niche                    string          `json:"niche"`
	BaseRate                 int             `json:"baseRate"`
	MinRate                  int             `json:"minRate"`
	MaxRate                  int             `json:"maxRate"`
	Percentile               int             `json:"percentile"`
	TopPerformerRange        RateRange       `json:"topPerformerRange"`
	PotentialWithFullProfile int             `json:"potentialWithFullProfile"`
	MissingFactors           []MissingFactor `json:"missingFactors"`
}

var missingFactors = []MissingFactor{
	{
		Icon:        "chart",
		Name:        "Engagement rate",
		Description: "Brands pay more for audiences that actually interact with your content.",
		Impact:      "±30%",
	},
	{
		Icon:        "target",
		Name:        "Audience fit",
		Description: "How closely your audience matches the brand's target customer.",
		Impact:      "up to +25%",
	},
	{
		Icon:        "shield",
		Name:        "Usage rights",
		Description: "Paid ads, whitelisting and long licenses are priced on top of the post itself.",
		Impact:      "+30% to +100%",
	},
	{
		Icon:        "camera",
		Name:        "Production complexity",
		Description: "Extra locations, editing and rush timelines add to the cost of creating.",
		Impact:      "+10% to +40%",
	},
}

// Validate checks the ranges and enums callers must honor before Calculate.
func Validate(in Input) error {
	if in.FollowerCount < MinFollowers || in.FollowerCount > MaxFollowers {
		return fmt.Errorf("Invalid followerCount: must be between %d and %d", MinFollowers, MaxFollowers)
	}
	if !models.IsValidPlatform(in.Platform) {
		return fmt.Errorf("Invalid platform: must be one of %s", strings.Join(models.Platforms, ", "))
	}
	if _, err := tier.FormatPremium(in.ContentFormat); err != nil {
		return fmt.Errorf("Invalid contentFormat: must be one of %s", strings.Join(models.ContentFormats, ", "))
	}
	return nil
}

// Calculate assumes validated input. Unknown platforms and formats fall back to a
// neutral multiplier so the function stays total.
func Calculate(in Input) Result {
	followers := in.FollowerCount
	if followers < 1 {
		followers = 1
	}
	t, _ := tier.Classify(followers)

	platformMult, err := tier.PlatformMultiplier(in.Platform)
	if err != nil {
		platformMult = 1
	}
	premium, _ := tier.FormatPremium(in.ContentFormat)

	base := round(float64(t.BaseRate) * platformMult * (1 + premium))

	niche := strings.TrimSpace(in.Niche)
	if niche == "" {
		niche = DefaultNiche
	}

	maxRate := round(float64(base) * rangeHigh)
	factors := make([]MissingFactor, len(missingFactors))
	copy(factors, missingFactors)

	return Result{
		Tier:          t.ID,
		TierName:      t.Name,
		FollowerCount: in.FollowerCount,
		Platform:      in.Platform,
		ContentFormat: in.ContentFormat,
		Niche:         niche,
		BaseRate:      base,
		MinRate:       round(float64(base) * rangeLow),
		MaxRate:       maxRate,
		Percentile:    percentile(t, followers),
		TopPerformerRange: RateRange{
			Min: round(float64(base) * topPerformerLow),
			Max: round(float64(base) * topPerformerTop),
		},
		PotentialWithFullProfile: round(float64(maxRate) * fullProfileLift),
		MissingFactors:           factors,
	}
}

// percentile places followers within the tier band, kept inside 1..99 so the
// top and bottom of a band never read as absolute.
func percentile(t tier.Tier, followers int) int {
	p := round(100 * t.Position(followers))
	if p < 1 {
		return 1
	}
	if p > 99 {
		return 99
	}
	return p
}

func round(v float64) int {
	return int(math.Round(v))
}
