package dealquality

import (
	"testing"

	"creator-pricing-workers/internal/models"

	"github.com/stretchr/testify/assert"
)

func createTestProfile() models.CreatorProfile {
	return models.CreatorProfile{
		ID:     "creator-1",
		Niches: []string{"fitness"},
		Platforms: []models.PlatformMetrics{
			{Platform: "instagram", Followers: 25_000, EngagementRate: 4.2},
		},
		Audience: models.AudienceDemographics{
			AgeBrackets:  map[string]float64{"18-24": 0.40, "25-34": 0.45, "35-44": 0.15},
			TopCountries: []string{"US", "CA"},
		},
		Currency: "USD",
	}
}

func intPtr(v int) *int { return &v }

func TestCalculate_StrongFit(t *testing.T) {
	brief := models.ParsedBrief{
		Niche:          "fitness",
		Content:        models.ContentTerms{Platform: "instagram", Format: "reel", Quantity: 2},
		TargetAudience: models.TargetAudience{AgeMin: 25, AgeMax: 34, Country: "us"},
	}

	got := Calculate(createTestProfile(), brief, nil)

	assert.Equal(t, 90, got.DealQuality.Score)
	assert.Equal(t, LevelExcellent, got.DealQuality.Level)
	assert.Equal(t, 100, got.DealQuality.Breakdown.NicheAlignment.Score)
	assert.Equal(t, 100, got.DealQuality.Breakdown.AudienceMatch.Score)
	assert.Equal(t, 50, got.DealQuality.Breakdown.BrandLegitimacy.Score)
	assert.Equal(t, 100, got.DealQuality.Breakdown.ScopeReasonableness.Score)
	assert.Equal(t, FitHigh, got.FitScore.Level)
}

func TestCalculate_PoorFit(t *testing.T) {
	brief := models.ParsedBrief{
		Niche:    "beauty",
		Content:  models.ContentTerms{Platform: "instagram", Quantity: 12},
		Timeline: models.TimelineTerms{TurnaroundDays: 2},
	}

	got := Calculate(createTestProfile(), brief, &Input{BrandTrustScore: intPtr(20)})

	// 30*0.35 + 60*0.25 + 20*0.20 + 10*0.20 = 31.5
	assert.Equal(t, 32, got.DealQuality.Score)
	assert.Equal(t, LevelPoor, got.DealQuality.Level)
	assert.Equal(t, FitLow, got.FitScore.Level)
	assert.Equal(t, 10, got.DealQuality.Breakdown.ScopeReasonableness.Score)
	assert.NotEmpty(t, got.DealQuality.Concerns)
}

func TestCalculate_ViewsNeverDiverge(t *testing.T) {
	briefs := []models.ParsedBrief{
		{Niche: "wellness", Content: models.ContentTerms{Quantity: 5}},
		{Niche: "", Content: models.ContentTerms{Quantity: 8}, Exclusivity: models.ExclusivityTerms{Required: true, DurationDays: 180}},
		{Niche: "gaming", Content: models.ContentTerms{Quantity: 1}, TargetAudience: models.TargetAudience{AgeMin: 45}},
	}
	inputs := []*Input{nil, {BrandTrustScore: intPtr(95), PreviousCollaboration: true}, {PreviousCollaboration: true}}

	for _, b := range briefs {
		for _, in := range inputs {
			got := Calculate(createTestProfile(), b, in)
			assert.Equal(t, got.DealQuality.Score, got.FitScore.Score)
			assert.Equal(t, got.DealQuality.Breakdown.NicheAlignment.Score, got.FitScore.Factors.NicheMatch)
			assert.Equal(t, got.DealQuality.Breakdown.AudienceMatch.Score, got.FitScore.Factors.AudienceMatch)
			assert.Equal(t, got.DealQuality.Breakdown.BrandLegitimacy.Score, got.FitScore.Factors.BrandFit)
			assert.Equal(t, got.DealQuality.Breakdown.ScopeReasonableness.Score, got.FitScore.Factors.ScopeFit)
		}
	}
}

func TestNicheAlignment(t *testing.T) {
	profile := createTestProfile()
	tests := []struct {
		niche    string
		expected int
	}{
		{"fitness", 100},
		{"FITNESS ", 100},
		{"wellness", 70},
		{"", 60},
		{"crypto", 30},
	}
	for _, tt := range tests {
		t.Run(tt.niche, func(t *testing.T) {
			assert.Equal(t, tt.expected, nicheAlignment(profile, tt.niche).Score)
		})
	}
}

func TestAudienceMatch(t *testing.T) {
	audience := createTestProfile().Audience
	tests := []struct {
		name     string
		target   models.TargetAudience
		expected int
	}{
		{"no targeting", models.TargetAudience{}, 60},
		{"age and country", models.TargetAudience{AgeMin: 21, AgeMax: 30, Country: "US"}, 100},
		{"age only", models.TargetAudience{AgeMin: 30, AgeMax: 40}, 75},
		{"country only", models.TargetAudience{Country: "US"}, 75},
		{"neither matches", models.TargetAudience{AgeMin: 50, Country: "DE"}, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, audienceMatch(audience, tt.target).Score)
		})
	}
}

func TestBrandLegitimacy(t *testing.T) {
	assert.Equal(t, 50, brandLegitimacy(&Input{}).Score)
	assert.Equal(t, 60, brandLegitimacy(&Input{PreviousCollaboration: true}).Score)
	assert.Equal(t, 80, brandLegitimacy(&Input{BrandTrustScore: intPtr(80)}).Score)
	assert.Equal(t, 100, brandLegitimacy(&Input{BrandTrustScore: intPtr(95), PreviousCollaboration: true}).Score)
}

func TestScopeReasonableness(t *testing.T) {
	tests := []struct {
		name     string
		brief    models.ParsedBrief
		expected int
	}{
		{"three pieces", models.ParsedBrief{Content: models.ContentTerms{Quantity: 3}}, 100},
		{"four pieces", models.ParsedBrief{Content: models.ContentTerms{Quantity: 4}}, 75},
		{"deliverable count wins", models.ParsedBrief{Content: models.ContentTerms{Quantity: 1, DeliverableCount: 7}}, 50},
		{"eleven pieces", models.ParsedBrief{Content: models.ContentTerms{Quantity: 11}}, 25},
		{"rush", models.ParsedBrief{Content: models.ContentTerms{Quantity: 1}, Timeline: models.TimelineTerms{TurnaroundDays: 2}}, 85},
		{"three day turnaround is not rush", models.ParsedBrief{Content: models.ContentTerms{Quantity: 1}, Timeline: models.TimelineTerms{TurnaroundDays: 3}}, 100},
		{"long exclusivity", models.ParsedBrief{Content: models.ContentTerms{Quantity: 1}, Exclusivity: models.ExclusivityTerms{Required: true, DurationDays: 91}}, 90},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, scopeReasonableness(tt.brief).Score)
		})
	}
}

func TestLevels(t *testing.T) {
	tests := []struct {
		score   int
		quality string
		fit     string
	}{
		{100, LevelExcellent, FitHigh},
		{80, LevelExcellent, FitHigh},
		{79, LevelGood, FitHigh},
		{70, LevelGood, FitHigh},
		{69, LevelGood, FitMedium},
		{60, LevelGood, FitMedium},
		{59, LevelFair, FitMedium},
		{40, LevelFair, FitMedium},
		{39, LevelPoor, FitLow},
		{0, LevelPoor, FitLow},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.quality, Level(tt.score), "score %d", tt.score)
		assert.Equal(t, tt.fit, FitLevel(tt.score), "score %d", tt.score)
	}
}

func TestValidateInput(t *testing.T) {
	assert.NoError(t, ValidateInput(nil))
	assert.NoError(t, ValidateInput(&Input{}))
	assert.NoError(t, ValidateInput(&Input{BrandTrustScore: intPtr(0)}))
	assert.NoError(t, ValidateInput(&Input{BrandTrustScore: intPtr(100)}))
	assert.ErrorIs(t, ValidateInput(&Input{BrandTrustScore: intPtr(-1)}), ErrInvalidInput)
	assert.ErrorIs(t, ValidateInput(&Input{BrandTrustScore: intPtr(101)}), ErrInvalidInput)
}
