// Package tier maps follower counts to audience tiers and per-platform base rates.
package tier

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"creator-pricing-workers/internal/models"
)

var (
	ErrInvalidFollowers = errors.New("tier: follower count must be positive")
	ErrUnknownPlatform  = errors.New("tier: unknown platform")
	ErrUnknownTier      = errors.New("tier: unknown tier")
)

const (
	Nano      = "nano"
	Micro     = "micro"
	Mid       = "mid"
	Rising    = "rising"
	Macro     = "macro"
	Mega      = "mega"
	Celebrity = "celebrity"
)

// CelebrityCeiling closes the open-ended top band for percentile math.
const CelebrityCeiling = 10_000_000

// Tier is one follower band. MinFollowers is inclusive, MaxFollowers exclusive.
type Tier struct {
	ID             string  `json:"tier"`
	Name           string  `json:"tierName"`
	MinFollowers   int     `json:"minFollowers"`
	MaxFollowers   int     `json:"maxFollowers"`
	BaseRate       int     `json:"baseRate"`
	EngagementNorm float64 `json:"engagementNorm"`
}

// sorted by MinFollowers; bands are contiguous
var bands = []Tier{
	{ID: Nano, Name: "Nano", MinFollowers: 1, MaxFollowers: 10_000, BaseRate: 150, EngagementNorm: 5.0},
	{ID: Micro, Name: "Micro", MinFollowers: 10_000, MaxFollowers: 50_000, BaseRate: 400, EngagementNorm: 3.5},
	{ID: Mid, Name: "Mid-Tier", MinFollowers: 50_000, MaxFollowers: 100_000, BaseRate: 800, EngagementNorm: 2.5},
	{ID: Rising, Name: "Rising", MinFollowers: 100_000, MaxFollowers: 250_000, BaseRate: 1_500, EngagementNorm: 2.0},
	{ID: Macro, Name: "Macro", MinFollowers: 250_000, MaxFollowers: 500_000, BaseRate: 3_000, EngagementNorm: 1.6},
	{ID: Mega, Name: "Mega", MinFollowers: 500_000, MaxFollowers: 1_000_000, BaseRate: 6_000, EngagementNorm: 1.2},
	{ID: Celebrity, Name: "Celebrity", MinFollowers: 1_000_000, MaxFollowers: CelebrityCeiling, BaseRate: 12_000, EngagementNorm: 1.0},
}

var platformMultipliers = map[string]float64{
	models.PlatformInstagram: 1.0,
	models.PlatformTikTok:    0.9,
	models.PlatformYouTube:   1.4,
	models.PlatformTwitter:   0.7,
	models.PlatformThreads:   0.7,
	models.PlatformPinterest: 0.8,
	models.PlatformLinkedIn:  1.3,
	models.PlatformTwitch:    1.1,
}

// Bands returns a copy of the tier table in ascending order.
func Bands() []Tier {
	out := make([]Tier, len(bands))
	copy(out, bands)
	return out
}

// Classify returns the tier whose band contains followers. Counts above the
// celebrity ceiling still classify as celebrity.
func Classify(followers int) (Tier, error) {
	if followers <= 0 {
		return Tier{}, fmt.Errorf("%w: got %d", ErrInvalidFollowers, followers)
	}
	// first band whose lower bound exceeds followers, minus one
	i := sort.Search(len(bands), func(i int) bool { return bands[i].MinFollowers > followers })
	return bands[i-1], nil
}

// Lookup finds a tier by its id.
func Lookup(id string) (Tier, error) {
	for _, t := range bands {
		if t.ID == id {
			return t, nil
		}
	}
	return Tier{}, fmt.Errorf("%w: %q", ErrUnknownTier, id)
}

// PlatformMultiplier returns the price multiplier applied to tier base rates.
func PlatformMultiplier(platform string) (float64, error) {
	m, ok := platformMultipliers[platform]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownPlatform, platform)
	}
	return m, nil
}

// BaseRate is the tier's base rate scaled by the platform multiplier, rounded to whole units.
func BaseRate(t Tier, platform string) (int, error) {
	m, err := PlatformMultiplier(platform)
	if err != nil {
		return 0, err
	}
	return int(math.Round(float64(t.BaseRate) * m)), nil
}

// Position returns where followers sit inside the tier band, in [0, 1].
func (t Tier) Position(followers int) float64 {
	span := t.MaxFollowers - t.MinFollowers
	if span <= 0 {
		return 0
	}
	p := float64(followers-t.MinFollowers) / float64(span)
	return math.Max(0, math.Min(1, p))
}
