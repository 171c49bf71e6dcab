package camunda

import (
	"testing"

	"creator-pricing-workers/internal/common/errors"
	"creator-pricing-workers/internal/common/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brandInput struct {
	BrandName string `json:"brandName"`
	Platform  string `json:"platform"`
}

func newTestValidator(t *testing.T) *validation.Validator {
	t.Helper()
	v, err := validation.NewValidator(map[string]map[string]interface{}{
		"vet-brand": {
			"type":     "object",
			"required": []interface{}{"brandName"},
			"properties": map[string]interface{}{
				"brandName": map[string]interface{}{"type": "string"},
				"platform":  map[string]interface{}{"type": "string"},
			},
		},
	})
	require.NoError(t, err)
	return v
}

func TestDecodeVariables(t *testing.T) {
	v := newTestValidator(t)

	tests := []struct {
		name      string
		variables string
		code      errors.ErrorCode
	}{
		{"malformed", `{"brandName": `, errors.ErrCodeParseError},
		{"schema violation", `{"brandName": 12}`, errors.ErrCodeValidationFailed},
		{"missing required", `{"platform": "tiktok"}`, errors.ErrCodeValidationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var in brandInput
			err := DecodeVariables("vet-brand", v, tt.variables, &in)
			require.Error(t, err)
			stdErr, ok := errors.As(err)
			require.True(t, ok)
			assert.Equal(t, tt.code, stdErr.Code)
		})
	}
}

func TestDecodeVariables_Valid(t *testing.T) {
	var in brandInput
	err := DecodeVariables("vet-brand", newTestValidator(t), `{"brandName": "Acme", "platform": "tiktok", "processVar": 1}`, &in)
	require.NoError(t, err)
	assert.Equal(t, brandInput{BrandName: "Acme", Platform: "tiktok"}, in)
}

func TestDecodeVariables_NoValidator(t *testing.T) {
	var in brandInput
	require.NoError(t, DecodeVariables("vet-brand", nil, `{"brandName": "Acme"}`, &in))
	assert.Equal(t, "Acme", in.BrandName)

	err := DecodeVariables("vet-brand", nil, `{"brandName": 12}`, &in)
	stdErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeParseError, stdErr.Code)
}
