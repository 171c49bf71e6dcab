package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertToBPMNError(t *testing.T) {
	tests := []struct {
		name      string
		err       *StandardError
		code      string
		retryable bool
		retries   int
	}{
		{"validation", NewValidationError(stderrors.New("followers must not be negative")), "INVALID_INPUT", false, 0},
		{"parse", NewParseError(stderrors.New("unexpected EOF")), "INVALID_INPUT", false, 0},
		{"computation", NewComputationError("pricing", stderrors.New("boom")), "SCORING_FAILED", false, 0},
		{"signal", NewExternalSignalError("social", stderrors.New("502")), "BRAND_SIGNALS_UNAVAILABLE", true, 3},
		{"cancelled", NewVettingCancelledError(stderrors.New("deadline")), "BRAND_VETTING_TIMEOUT", true, 2},
		{"notification", NewNotificationSendFailedError("email", stderrors.New("throttled")), "NOTIFICATION_FAILED", true, 3},
		{"rate limited", NewRateLimitedError("1.2.3.4", 30*time.Second), "RATE_LIMITED", true, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bpmn := ConvertToBPMNError(tt.err)
			assert.Equal(t, tt.code, bpmn.Code)
			assert.Equal(t, tt.retryable, bpmn.Retryable)
			assert.Equal(t, tt.retries, bpmn.Retries)
			assert.Equal(t, string(tt.err.Code), bpmn.ErrorVariables["originalErrorCode"])
		})
	}
}

func TestConvertToBPMNError_NonRetryableOverridesTable(t *testing.T) {
	stdErr := NewExternalSignalError("website", stderrors.New("dns"))
	stdErr.Retryable = false

	assert.Equal(t, 0, ConvertToBPMNError(stdErr).Retries)
}

func TestValidationErrorKeepsMessage(t *testing.T) {
	cause := stderrors.New("Invalid platform")
	stdErr := NewValidationError(cause)

	assert.Equal(t, "Invalid platform", stdErr.Message)
	assert.ErrorIs(t, stdErr, cause)
}

func TestNormalize(t *testing.T) {
	wrapped := fmt.Errorf("execute: %w", NewCacheUnavailableError(stderrors.New("conn refused")))
	got := Normalize(wrapped)
	assert.Equal(t, ErrCodeCacheUnavailable, got.Code)

	plain := Normalize(stderrors.New("nil map"))
	assert.Equal(t, ErrCodeInternal, plain.Code)
	assert.Equal(t, "nil map", plain.Details)
	assert.False(t, plain.Retryable)
}

func TestToErrorVariables(t *testing.T) {
	bpmn := ConvertToBPMNError(NewRateLimitedError("ip", 5*time.Second))
	vars := bpmn.ToErrorVariables()

	require.Contains(t, vars, "errorCode")
	assert.Equal(t, "RATE_LIMITED", vars["errorCode"])
	assert.Equal(t, true, vars["retryable"])
	assert.Equal(t, "RATE_LIMITED", vars["originalErrorCode"])
}

func TestGetErrorCategory(t *testing.T) {
	tests := map[ErrorCode]string{
		ErrCodeParseError:                "VALIDATION",
		ErrCodeValidationFailed:          "VALIDATION",
		ErrCodeComputationFailed:         "COMPUTATION",
		ErrCodeExternalSignalUnavailable: "EXTERNAL_SIGNAL",
		ErrCodeVettingCancelled:          "EXTERNAL_SIGNAL",
		ErrCodeCacheUnavailable:          "EXTERNAL_SIGNAL",
		ErrCodeNotificationSendFailed:    "NOTIFICATION",
		ErrCodeRateLimited:               "RATE_LIMIT",
		ErrCodeInternal:                  "OTHER",
	}
	for code, category := range tests {
		assert.Equal(t, category, GetErrorCategory(code), string(code))
	}
}

func TestIsRetryableErrorCode(t *testing.T) {
	assert.True(t, IsRetryableErrorCode(ErrCodeNotificationSendFailed))
	assert.False(t, IsRetryableErrorCode(ErrCodeValidationFailed))
	assert.False(t, IsRetryableErrorCode(ErrCodeInternal))
}

func TestNewInvalidInputError_StripsSentinel(t *testing.T) {
	sentinel := stderrors.New("gifting: invalid input")
	err := fmt.Errorf("%w: Invalid brandQuality: must be one of major_brand", sentinel)

	stdErr := NewInvalidInputError(err, sentinel)
	assert.Equal(t, "Invalid brandQuality: must be one of major_brand", stdErr.Message)
	assert.Equal(t, ErrCodeValidationFailed, stdErr.Code)
	assert.ErrorIs(t, stdErr, sentinel)
}
