package models

import "strings"

const (
	PlatformInstagram = "instagram"
	PlatformTikTok    = "tiktok"
	PlatformYouTube   = "youtube"
	PlatformTwitter   = "twitter"
	PlatformThreads   = "threads"
	PlatformPinterest = "pinterest"
	PlatformLinkedIn  = "linkedin"
	PlatformTwitch    = "twitch"
)

// Platforms lists every platform the engine prices, in display order.
var Platforms = []string{
	PlatformInstagram,
	PlatformTikTok,
	PlatformYouTube,
	PlatformTwitter,
	PlatformThreads,
	PlatformPinterest,
	PlatformLinkedIn,
	PlatformTwitch,
}

// IsValidPlatform reports whether p is a recognized platform.
func IsValidPlatform(p string) bool {
	for _, known := range Platforms {
		if p == known {
			return true
		}
	}
	return false
}

type PlatformMetrics struct {
	Platform       string  `json:"platform"`
	Followers      int     `json:"followers"`
	EngagementRate float64 `json:"engagementRate"` // percent, e.g. 3.5
	AvgLikes       int     `json:"avgLikes"`
	AvgComments    int     `json:"avgComments"`
	AvgViews       int     `json:"avgViews"`
}

type AudienceDemographics struct {
	AgeBrackets  map[string]float64 `json:"ageBrackets,omitempty"` // "18-24" -> share of audience
	TopCountries []string           `json:"topCountries,omitempty"`
	GenderSplit  map[string]float64 `json:"genderSplit,omitempty"`
}

// CreatorProfile is owned by the profile service; the engine only reads it.
type CreatorProfile struct {
	ID          string               `json:"id"`
	DisplayName string               `json:"displayName"`
	Handle      string               `json:"handle"`
	Platforms   []PlatformMetrics    `json:"platforms"`
	Niches      []string             `json:"niches"`
	Audience    AudienceDemographics `json:"audience"`
	Tier        string               `json:"tier,omitempty"`
	Currency    string               `json:"currency"`
}

// MetricsFor returns the metrics recorded for platform.
func (p CreatorProfile) MetricsFor(platform string) (PlatformMetrics, bool) {
	for _, m := range p.Platforms {
		if strings.EqualFold(m.Platform, platform) {
			return m, true
		}
	}
	return PlatformMetrics{}, false
}

// PrimaryPlatform returns the platform with the largest following.
func (p CreatorProfile) PrimaryPlatform() (PlatformMetrics, bool) {
	var best PlatformMetrics
	found := false
	for _, m := range p.Platforms {
		if !found || m.Followers > best.Followers {
			best = m
			found = true
		}
	}
	return best, found
}

// HasNiche reports whether the creator lists niche (case-insensitive).
func (p CreatorProfile) HasNiche(niche string) bool {
	for _, n := range p.Niches {
		if strings.EqualFold(strings.TrimSpace(n), strings.TrimSpace(niche)) {
			return true
		}
	}
	return false
}

// DominantAgeBracket returns the age bracket holding the largest audience share.
func (a AudienceDemographics) DominantAgeBracket() (string, bool) {
	bracket := ""
	share := -1.0
	for b, s := range a.AgeBrackets {
		// ties resolve alphabetically so the result is stable across map iteration
		if s > share || (s == share && b < bracket) {
			bracket, share = b, s
		}
	}
	return bracket, bracket != ""
}
