package brandvet

// Raw signals gathered by the lookup collaborators. A nil pointer inside
// Signals means the lookup failed or was not configured.

type SocialSignals struct {
	Found            bool `json:"found"`
	Followers        int  `json:"followers"`
	Verified         bool `json:"verified"`
	AccountAgeMonths int  `json:"accountAgeMonths"`
	PostCount        int  `json:"postCount"`
}

type WebsiteSignals struct {
	Exists             bool `json:"exists"`
	HTTPS              bool `json:"https"`
	DomainAgeMonths    int  `json:"domainAgeMonths"`
	HasContactPage     bool `json:"hasContactPage"`
	EmailDomainMatches bool `json:"emailDomainMatches"`
}

type HistorySignals struct {
	Collaborations  int `json:"collaborations"`
	PositiveReviews int `json:"positiveReviews"`
	NegativeReviews int `json:"negativeReviews"`
}

type ScamSignals struct {
	Indicators []string `json:"indicators"`
}

type Signals struct {
	Social  *SocialSignals  `json:"social,omitempty"`
	Website *WebsiteSignals `json:"website,omitempty"`
	History *HistorySignals `json:"history,omitempty"`
	Scam    *ScamSignals    `json:"scam,omitempty"`
}

const (
	IndicatorReportedScam        = "reported_scam"
	IndicatorAsksForPayment      = "asks_for_payment"
	IndicatorRequestsCredentials = "requests_credentials"
	IndicatorShippingFee         = "shipping_fee_required"
	IndicatorTooGoodToBeTrue     = "too_good_to_be_true"
	IndicatorFreeEmailDomain     = "free_email_domain"
	IndicatorUrgencyPressure     = "urgency_pressure"
)

type indicatorRule struct {
	weight   int
	severity string
	message  string
}

var indicatorRules = map[string]indicatorRule{
	IndicatorReportedScam:        {25, SeverityHigh, "Brand has been reported as a scam by other creators"},
	IndicatorAsksForPayment:      {15, SeverityHigh, "Offer asks the creator to pay to participate"},
	IndicatorRequestsCredentials: {15, SeverityHigh, "Offer asks for account passwords or login codes"},
	IndicatorShippingFee:         {10, SeverityMedium, "Creator is asked to cover shipping for a \"free\" product"},
	IndicatorTooGoodToBeTrue:     {8, SeverityMedium, "Compensation looks far above market for the audience size"},
	IndicatorFreeEmailDomain:     {5, SeverityLow, "Brand contact uses a free email provider"},
	IndicatorUrgencyPressure:     {5, SeverityLow, "Offer pressures for an immediate decision"},
}

var otherIndicator = indicatorRule{5, SeverityLow, "Unusual pattern reported for this brand"}

func ruleFor(indicator string) indicatorRule {
	if r, ok := indicatorRules[indicator]; ok {
		return r
	}
	return otherIndicator
}
