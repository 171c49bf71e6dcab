package brandvet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectOfferIndicators(t *testing.T) {
	tests := []struct {
		name  string
		input Input
		want  []string
	}{
		{
			name:  "clean offer",
			input: Input{OfferText: "We'd love to send you our new serum and pay $400 for one reel.", ContactEmail: "partners@glowlabs.com"},
			want:  nil,
		},
		{
			name:  "registration fee",
			input: Input{OfferText: "To join the ambassador program there is a one-time registration fee of $49."},
			want:  []string{IndicatorAsksForPayment},
		},
		{
			name:  "shipping and urgency",
			input: Input{OfferText: "Free watch! You just cover the shipping cost. Reply within 24 hours."},
			want:  []string{IndicatorShippingFee, IndicatorUrgencyPressure},
		},
		{
			name:  "credential request",
			input: Input{OfferText: "Please send us your login details so our team can post for you."},
			want:  []string{IndicatorRequestsCredentials},
		},
		{
			name:  "too good to be true",
			input: Input{OfferText: "Earn $5,000 for a single story, guaranteed income every month."},
			want:  []string{IndicatorTooGoodToBeTrue},
		},
		{
			name:  "free email domain",
			input: Input{ContactEmail: "GlowLabsOfficial@Gmail.com"},
			want:  []string{IndicatorFreeEmailDomain},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectOfferIndicators(tt.input))
		})
	}
}

func TestEmailDomain(t *testing.T) {
	assert.Equal(t, "glowlabs.com", EmailDomain("Hi@GlowLabs.com"))
	assert.Equal(t, "", EmailDomain("not-an-email"))
	assert.Equal(t, "", EmailDomain("trailing@"))
}
