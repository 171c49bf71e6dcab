package calculatequickestimate

import (
	"context"
	"testing"

	"creator-pricing-workers/internal/common/errors"
	"creator-pricing-workers/internal/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helpers
// ==========================

func newTestHandler(t *testing.T) *Handler {
	return NewHandler(DefaultConfig(), nil, nil, logger.NewTestLogger(t))
}

// ==========================
// Execute
// ==========================

func TestExecute_MicroInstagramStatic(t *testing.T) {
	h := newTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{
		FollowerCount: 25_000,
		Platform:      "instagram",
		ContentFormat: "static",
	})

	require.NoError(t, err)
	assert.Equal(t, "micro", out.Estimate.Tier)
	assert.Equal(t, 320, out.Estimate.MinRate)
	assert.Equal(t, 480, out.Estimate.MaxRate)
	assert.Equal(t, "$320 - $480", out.DisplayRange)
	assert.Len(t, out.Estimate.MissingFactors, 4)
}

func TestExecute_LargeRangeIsGrouped(t *testing.T) {
	out, err := newTestHandler(t).Execute(context.Background(), &Input{
		FollowerCount: 2_000_000,
		Platform:      "youtube",
		ContentFormat: "video",
	})

	require.NoError(t, err)
	assert.Contains(t, out.DisplayRange, ",")
	assert.LessOrEqual(t, out.Estimate.MinRate, out.Estimate.MaxRate)
}

func TestExecute_InvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		input   Input
		message string
	}{
		{"too few followers", Input{FollowerCount: 999, Platform: "instagram", ContentFormat: "static"}, "Invalid followerCount"},
		{"too many followers", Input{FollowerCount: 10_000_001, Platform: "instagram", ContentFormat: "static"}, "Invalid followerCount"},
		{"unknown platform", Input{FollowerCount: 5_000, Platform: "myspace", ContentFormat: "static"}, "Invalid platform"},
		{"unknown format", Input{FollowerCount: 5_000, Platform: "tiktok", ContentFormat: "hologram"}, "Invalid contentFormat"},
	}

	h := newTestHandler(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.Execute(context.Background(), &tt.input)
			require.Error(t, err)

			stdErr, ok := errors.As(err)
			require.True(t, ok)
			assert.Equal(t, errors.ErrCodeValidationFailed, stdErr.Code)
			assert.Contains(t, stdErr.Message, tt.message)
			assert.False(t, stdErr.Retryable)
		})
	}
}
