package calculateprice

import (
	"context"
	"testing"
	"time"

	"creator-pricing-workers/internal/common/errors"
	"creator-pricing-workers/internal/common/logger"
	"creator-pricing-workers/internal/models"
	"creator-pricing-workers/internal/scoring/dealquality"
	"creator-pricing-workers/internal/scoring/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helpers
// ==========================

func createTestInput() *Input {
	return &Input{
		CreatorProfile: models.CreatorProfile{
			ID: "creator-1",
			Platforms: []models.PlatformMetrics{
				{Platform: "instagram", Followers: 25_000, EngagementRate: 4.5},
				{Platform: "tiktok", Followers: 8_000, EngagementRate: 9.0},
			},
			Niches:   []string{"fitness"},
			Currency: "USD",
		},
		Brief: models.ParsedBrief{
			BrandName: "Acme Athletics",
			Niche:     "fitness",
			Content:   models.ContentTerms{Platform: "instagram", Format: "reel", Quantity: 3},
			UsageRights: models.UsageRightsTerms{
				Scope:        models.UsagePaidSocial,
				DurationDays: 60,
			},
			Timeline:   models.TimelineTerms{TurnaroundDays: 10},
			Complexity: models.ComplexitySignals{Locations: 2, EditingLevel: models.EditingStandard},
		},
	}
}

func newTestHandler(t *testing.T) *Handler {
	h := NewHandler(DefaultConfig(), nil, nil, logger.NewTestLogger(t))
	h.clock = func() time.Time { return time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC) }
	return h
}

func intPtr(v int) *int { return &v }

// ==========================
// Execute
// ==========================

func TestExecute_QuoteUsesComputedDealQuality(t *testing.T) {
	input := createTestInput()
	out, err := newTestHandler(t).Execute(context.Background(), input)
	require.NoError(t, err)

	want := dealquality.Calculate(input.CreatorProfile, input.Brief, &dealquality.Input{}).DealQuality
	assert.Equal(t, want, out.DealQuality)

	direct, err := pricing.Calculate(input.CreatorProfile, input.Brief, want)
	require.NoError(t, err)
	assert.Equal(t, direct, out.Quote)

	assert.Equal(t, out.Quote.PricePerDeliverable*out.Quote.Quantity, out.Quote.TotalPrice)
	assert.Equal(t, pricing.FormatAmount("USD", out.Quote.TotalPrice), out.FormattedTotal)
	assert.Equal(t, "2026-03-15", out.ValidUntil)
}

func TestExecute_Override(t *testing.T) {
	input := createTestInput()
	input.OverrideTotal = intPtr(3_500)

	out, err := newTestHandler(t).Execute(context.Background(), input)
	require.NoError(t, err)

	require.NotNil(t, out.Quote.OriginalTotal)
	assert.Equal(t, 3_500, out.Quote.TotalPrice)
	assert.Equal(t, out.Quote.PricePerDeliverable*out.Quote.Quantity, *out.Quote.OriginalTotal)
	assert.Equal(t, "$3,500", out.FormattedTotal)
	assert.Len(t, out.Quote.Layers, 6)
}

func TestExecute_InvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Input)
		message string
	}{
		{"negative override", func(in *Input) { in.OverrideTotal = intPtr(-1) }, "Invalid overrideTotal"},
		{"no platforms", func(in *Input) { in.CreatorProfile.Platforms = nil }, "no platform metrics"},
		{"trust score", func(in *Input) { in.BrandTrustScore = intPtr(140) }, "brandTrustScore"},
	}

	h := newTestHandler(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := createTestInput()
			tt.mutate(input)

			_, err := h.Execute(context.Background(), input)
			stdErr, ok := errors.As(err)
			require.True(t, ok)
			assert.Equal(t, errors.ErrCodeValidationFailed, stdErr.Code)
			assert.Contains(t, stdErr.Message, tt.message)
			assert.NotContains(t, stdErr.Message, "pricing:")
		})
	}
}
