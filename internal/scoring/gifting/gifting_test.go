package gifting

import (
	"math"
	"strings"
	"testing"

	"creator-pricing-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestProfile() models.CreatorProfile {
	return models.CreatorProfile{
		DisplayName: "Sam Rivera",
		Platforms: []models.PlatformMetrics{
			{Platform: "instagram", Followers: 25_000, EngagementRate: 4.1},
			{Platform: "tiktok", Followers: 3_000},
		},
		Currency: "USD",
	}
}

func createTestInput() Input {
	return Input{
		ProductDescription:     "Insulated water bottle",
		ProductName:            "HydroMax 32oz",
		BrandName:              "HydroMax",
		EstimatedProductValue:  300,
		EstimatedHoursToCreate: 4,
		ContentRequired:        ContentDedicatedPost,
		BrandQuality:           BrandMajor,
	}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name          string
		modify        func(in *Input)
		worth         int
		addOn         int
		effort        int
		discounted    int
		expectVerdict string
	}{
		{
			name:          "fair trade is accepted",
			modify:        func(in *Input) { in.EstimatedHoursToCreate = 3 },
			worth:         100,
			addOn:         0,
			effort:        300,
			discounted:    300,
			expectVerdict: Accept,
		},
		{
			name:          "short of effort negotiates",
			modify:        func(in *Input) {},
			worth:         75,
			addOn:         100,
			effort:        400,
			discounted:    300,
			expectVerdict: Negotiate,
		},
		{
			name: "indie discount falls below the negotiate floor",
			modify: func(in *Input) {
				in.EstimatedProductValue = 200
				in.BrandQuality = BrandEstablished
			},
			worth:         42,
			addOn:         230,
			effort:        400,
			discounted:    170,
			expectVerdict: Decline,
		},
		{
			name: "suspicious brand is always declined",
			modify: func(in *Input) {
				in.EstimatedProductValue = 5000
				in.BrandQuality = BrandSuspicious
			},
			worth:         100,
			addOn:         0,
			effort:        400,
			discounted:    1000,
			expectVerdict: Decline,
		},
		{
			name: "organic mention is light work",
			modify: func(in *Input) {
				in.EstimatedProductValue = 60
				in.EstimatedHoursToCreate = 2
				in.ContentRequired = ContentOrganicMention
				in.BrandQuality = BrandNewUnknown
			},
			worth:         36,
			addOn:         64,
			effort:        100,
			discounted:    36,
			expectVerdict: Decline,
		},
		{
			name: "video content costs more",
			modify: func(in *Input) {
				in.EstimatedHoursToCreate = 2
				in.ContentRequired = ContentVideo
			},
			worth:         100,
			addOn:         0,
			effort:        300,
			discounted:    300,
			expectVerdict: Accept,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := createTestInput()
			tt.modify(&in)

			ev, err := Evaluate(in, createTestProfile())
			require.NoError(t, err)

			assert.Equal(t, 100, ev.HourlyValue)
			assert.Equal(t, tt.effort, ev.EffortCost)
			assert.Equal(t, tt.discounted, ev.DiscountedProductValue)
			assert.Equal(t, tt.worth, ev.WorthScore)
			assert.Equal(t, tt.addOn, ev.MinimumAcceptableAddOn)
			assert.Equal(t, tt.expectVerdict, ev.Recommendation)
			assert.NotEmpty(t, ev.Reasons)
		})
	}
}

func TestEvaluate_AddOnNeverNegative(t *testing.T) {
	for _, quality := range []string{BrandMajor, BrandEstablished, BrandNewUnknown, BrandSuspicious} {
		for _, content := range []string{ContentOrganicMention, ContentDedicatedPost, ContentMultiplePosts, ContentVideo} {
			for _, value := range []float64{0, 25, 150, 400, 900, 10_000, MaxProductValue} {
				for _, hours := range []float64{0.25, 4, MaxHoursToCreate} {
					in := createTestInput()
					in.BrandQuality = quality
					in.ContentRequired = content
					in.EstimatedProductValue = value
					in.EstimatedHoursToCreate = hours

					ev, err := Evaluate(in, createTestProfile())
					require.NoError(t, err)

					assert.GreaterOrEqual(t, ev.MinimumAcceptableAddOn, 0)
					assert.GreaterOrEqual(t, ev.EffortCost, 0)
					assert.GreaterOrEqual(t, ev.DiscountedProductValue, 0)
					assert.GreaterOrEqual(t, ev.WorthScore, 0)
					if ev.DiscountedProductValue >= ev.EffortCost {
						assert.Equal(t, 0, ev.MinimumAcceptableAddOn)
						assert.Equal(t, 100, ev.WorthScore)
					} else {
						assert.Less(t, ev.WorthScore, 100)
						assert.Equal(t, ev.EffortCost-ev.DiscountedProductValue, ev.MinimumAcceptableAddOn)
					}
					assert.LessOrEqual(t, ev.WorthScore, 100)
				}
			}
		}
	}
}

func TestEvaluate_LargeOffers(t *testing.T) {
	t.Run("maximum product value from a major brand", func(t *testing.T) {
		in := createTestInput()
		in.EstimatedProductValue = MaxProductValue

		ev, err := Evaluate(in, createTestProfile())
		require.NoError(t, err)
		assert.Equal(t, MaxProductValue, ev.DiscountedProductValue)
		assert.Equal(t, 100, ev.WorthScore)
		assert.Equal(t, 0, ev.MinimumAcceptableAddOn)
		assert.Equal(t, Accept, ev.Recommendation)
	})

	t.Run("maximum hours for a free product", func(t *testing.T) {
		in := createTestInput()
		in.EstimatedProductValue = 0
		in.EstimatedHoursToCreate = MaxHoursToCreate

		ev, err := Evaluate(in, createTestProfile())
		require.NoError(t, err)
		assert.Equal(t, 1_000_000, ev.EffortCost)
		assert.Equal(t, 0, ev.WorthScore)
		assert.Equal(t, 1_000_000, ev.MinimumAcceptableAddOn)
		assert.Equal(t, Decline, ev.Recommendation)
	})

	for name, modify := range map[string]func(in *Input){
		"product value past the maximum": func(in *Input) { in.EstimatedProductValue = 1e19 },
		"hours past the maximum":         func(in *Input) { in.EstimatedProductValue = 0; in.EstimatedHoursToCreate = 1e20 },
	} {
		t.Run(name, func(t *testing.T) {
			in := createTestInput()
			modify(&in)

			_, err := Evaluate(in, createTestProfile())
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Contains(t, err.Error(), "Invalid")
		})
	}
}

func TestEvaluate_RequiresPlatform(t *testing.T) {
	_, err := Evaluate(createTestInput(), models.CreatorProfile{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required")
}

func TestValidateInput(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(in *Input)
		message string
	}{
		{"empty description", func(in *Input) { in.ProductDescription = "  " }, "productDescription is required"},
		{"negative value", func(in *Input) { in.EstimatedProductValue = -1 }, "Invalid estimatedProductValue"},
		{"nan value", func(in *Input) { in.EstimatedProductValue = math.NaN() }, "Invalid estimatedProductValue"},
		{"infinite value", func(in *Input) { in.EstimatedProductValue = math.Inf(1) }, "Invalid estimatedProductValue"},
		{"value above maximum", func(in *Input) { in.EstimatedProductValue = MaxProductValue + 1 }, "Invalid estimatedProductValue"},
		{"zero hours", func(in *Input) { in.EstimatedHoursToCreate = 0 }, "Invalid estimatedHoursToCreate"},
		{"hours above maximum", func(in *Input) { in.EstimatedHoursToCreate = MaxHoursToCreate + 1 }, "Invalid estimatedHoursToCreate"},
		{"unknown content", func(in *Input) { in.ContentRequired = "billboard" }, "Invalid contentRequired"},
		{"unknown brand quality", func(in *Input) { in.BrandQuality = "famous" }, "Invalid brandQuality"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := createTestInput()
			tt.modify(&in)
			err := ValidateInput(in)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.message)
		})
	}

	assert.NoError(t, ValidateInput(createTestInput()))

	zeroValue := createTestInput()
	zeroValue.EstimatedProductValue = 0
	assert.NoError(t, ValidateInput(zeroValue))

	atMaximum := createTestInput()
	atMaximum.EstimatedProductValue = MaxProductValue
	atMaximum.EstimatedHoursToCreate = MaxHoursToCreate
	assert.NoError(t, ValidateInput(atMaximum))
}

func TestGenerateResponse_UsesSameAddOn(t *testing.T) {
	ev, err := Evaluate(createTestInput(), createTestProfile())
	require.NoError(t, err)
	require.Equal(t, Negotiate, ev.Recommendation)

	msg := GenerateResponse(ev, ResponseContext{BrandName: "HydroMax", ProductName: "HydroMax 32oz", CreatorName: "Sam"})

	assert.True(t, strings.HasPrefix(msg, "Hi HydroMax team,"))
	assert.Contains(t, msg, "HydroMax 32oz")
	assert.Contains(t, msg, "$100")
	assert.True(t, strings.HasSuffix(msg, "Sam"))
}

func TestGenerateResponse_Variants(t *testing.T) {
	accept := GenerateResponse(Evaluation{Recommendation: Accept, Currency: "GBP"}, ResponseContext{})
	assert.Contains(t, accept, "Hi there,")
	assert.Contains(t, accept, "the product")
	assert.Contains(t, accept, "[Your Name]")

	decline := GenerateResponse(Evaluation{Recommendation: Decline, MinimumAcceptableAddOn: 1250, Currency: "GBP"}, ResponseContext{})
	assert.Contains(t, decline, "£1,250")

	flat := GenerateResponse(Evaluation{Recommendation: Decline, Currency: "USD"}, ResponseContext{})
	assert.NotContains(t, flat, "$")

	blank := GenerateResponse(Evaluation{Recommendation: Accept, Currency: "USD"}, ResponseContext{CreatorName: "   "})
	assert.True(t, strings.HasSuffix(blank, "Best,\n[Your Name]"))
}

func TestGenerateResponse_SignsWithNameVerbatim(t *testing.T) {
	msg := GenerateResponse(Evaluation{Recommendation: Accept, Currency: "USD"}, ResponseContext{CreatorName: "  Sam R.  "})
	assert.True(t, strings.HasSuffix(msg, "Best,\n  Sam R.  "))
}
