package validation

import (
	"testing"

	"creator-pricing-workers/pkg/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegistryValidator(t *testing.T) *Validator {
	t.Helper()
	reg, err := registry.Default()
	require.NoError(t, err)
	v, err := NewValidator(reg.InputSchemas())
	require.NoError(t, err)
	return v
}

func TestValidateJSON_QuickEstimate(t *testing.T) {
	v := newRegistryValidator(t)

	tests := []struct {
		name      string
		document  string
		valid     bool
		badFields []string
	}{
		{"valid", `{"followerCount": 25000, "platform": "instagram", "contentFormat": "reel"}`, true, nil},
		{"whole float is an integer", `{"followerCount": 25000.0, "platform": "instagram", "contentFormat": "reel"}`, true, nil},
		{"missing platform", `{"followerCount": 25000, "contentFormat": "reel"}`, false, []string{"(root)"}},
		{"string count", `{"followerCount": "25k", "platform": "instagram", "contentFormat": "reel"}`, false, []string{"followerCount"}},
		{"fractional count", `{"followerCount": 2.5, "platform": "instagram", "contentFormat": "reel"}`, false, []string{"followerCount"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := v.ValidateJSON("calculate-quick-estimate", tt.document)
			assert.Equal(t, tt.valid, res.Valid, res.Error())
			for _, f := range tt.badFields {
				assert.True(t, res.HasErrors(f), "expected error on %s: %v", f, res.Errors)
			}
		})
	}
}

func TestValidateDocument_NestedFields(t *testing.T) {
	v := newRegistryValidator(t)

	doc := map[string]interface{}{
		"creatorProfile": map[string]interface{}{
			"platforms": []interface{}{map[string]interface{}{"platform": "tiktok", "followers": "many"}},
		},
		"brief": map[string]interface{}{},
	}
	res := v.ValidateDocument("calculate-deal-quality", doc)
	require.False(t, res.Valid)
	assert.True(t, res.HasErrors("creatorProfile"))
	assert.NotEmpty(t, res.GetErrorMessages())
	assert.Contains(t, res.Error(), "followers")
}

func TestValidator_UnknownTaskPasses(t *testing.T) {
	v := newRegistryValidator(t)
	assert.True(t, v.ValidateJSON("unknown-task", `{"anything": true}`).Valid)
	assert.False(t, v.HasSchema("unknown-task"))
	assert.True(t, v.HasSchema("vet-brand"))

	var nilValidator *Validator
	assert.True(t, nilValidator.ValidateJSON("vet-brand", `{}`).Valid)
}

func TestValidateJSON_Malformed(t *testing.T) {
	v := newRegistryValidator(t)
	res := v.ValidateJSON("vet-brand", `{"brandName": `)
	assert.False(t, res.Valid)
	assert.Equal(t, "INVALID_DOCUMENT", res.Errors[0].Code)
}

func TestNewValidator_RejectsBrokenSchema(t *testing.T) {
	_, err := NewValidator(map[string]map[string]interface{}{
		"broken": {"type": 42},
	})
	assert.Error(t, err)
}

func TestValidateEmailAndPhone(t *testing.T) {
	assert.True(t, ValidateEmail("partnerships@acme.co"))
	assert.False(t, ValidateEmail("acme.co"))
	assert.True(t, ValidatePhone("+14155550100"))
	assert.False(t, ValidatePhone("415-555-0100"))
}
