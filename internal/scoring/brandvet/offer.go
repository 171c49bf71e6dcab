package brandvet

import (
	"regexp"
	"strings"
)

var freeEmailDomains = map[string]bool{
	"gmail.com":      true,
	"googlemail.com": true,
	"yahoo.com":      true,
	"hotmail.com":    true,
	"outlook.com":    true,
	"live.com":       true,
	"aol.com":        true,
	"icloud.com":     true,
	"proton.me":      true,
	"protonmail.com": true,
	"gmx.com":        true,
	"mail.com":       true,
}

var offerPatterns = []struct {
	indicator string
	re        *regexp.Regexp
}{
	{IndicatorAsksForPayment, regexp.MustCompile(`(?i)\b(registration|enrol?lment|joining|onboarding|membership)\s+fee\b|\bpay\s+(a|an|the)?\s*(small\s+)?(fee|deposit)\b|\bpurchase\b.{0,40}\bto\s+(join|participate|qualify)\b`)},
	{IndicatorRequestsCredentials, regexp.MustCompile(`(?i)\b(password|login\s+details|verification\s+code|2fa\s+code|one[- ]time\s+code|bank\s+(details|login))\b`)},
	{IndicatorShippingFee, regexp.MustCompile(`(?i)\b(pay|cover)\s+(for\s+)?(the\s+)?shipping\b|\bshipping\s+(fee|cost|charge)s?\b`)},
	{IndicatorTooGoodToBeTrue, regexp.MustCompile(`(?i)\bguaranteed\s+(income|earnings|payout)\b|\bearn\s+\$\s?\d{1,3}(,\d{3})+\b|\$\s?\d{1,3}(,\d{3})+\s+(per|a|for\s+one)\s+post\b`)},
	{IndicatorUrgencyPressure, regexp.MustCompile(`(?i)\b(act\s+now|urgent(ly)?|within\s+24\s+hours|respond\s+immediately|limited\s+spots|today\s+only)\b`)},
}

// DetectOfferIndicators flags scam patterns visible in the offer itself: the
// message text and the contact address. It never looks anything up.
func DetectOfferIndicators(in Input) []string {
	var found []string
	text := strings.TrimSpace(in.OfferText)
	if text != "" {
		for _, p := range offerPatterns {
			if p.re.MatchString(text) {
				found = append(found, p.indicator)
			}
		}
	}
	if domain := EmailDomain(in.ContactEmail); freeEmailDomains[domain] {
		found = append(found, IndicatorFreeEmailDomain)
	}
	return found
}

// EmailDomain returns the lower-cased domain of addr, or "" when addr has none.
func EmailDomain(addr string) string {
	at := strings.LastIndex(addr, "@")
	if at < 0 || at == len(addr)-1 {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(addr[at+1:]))
}
