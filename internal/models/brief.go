package models

const (
	FormatStatic   = "static"
	FormatStory    = "story"
	FormatCarousel = "carousel"
	FormatReel     = "reel"
	FormatVideo    = "video"
	FormatLive     = "live"
)

var ContentFormats = []string{FormatStatic, FormatStory, FormatCarousel, FormatReel, FormatVideo, FormatLive}

const (
	UsageOrganic      = "organic"
	UsagePaidSocial   = "paid_social"
	UsageWhitelisting = "whitelisting"
	UsagePaidAds      = "paid_ads"
	UsageBroadcast    = "broadcast"
)

var UsageScopes = []string{UsageOrganic, UsagePaidSocial, UsageWhitelisting, UsagePaidAds, UsageBroadcast}

const (
	EditingBasic    = "basic"
	EditingStandard = "standard"
	EditingAdvanced = "advanced"
)

// ParsedBrief is the structured form of a brand brief. It is immutable input to pricing.
type ParsedBrief struct {
	BrandName      string            `json:"brandName"`
	CampaignName   string            `json:"campaignName,omitempty"`
	Niche          string            `json:"niche,omitempty"`
	Content        ContentTerms      `json:"content"`
	UsageRights    UsageRightsTerms  `json:"usageRights"`
	Exclusivity    ExclusivityTerms  `json:"exclusivity"`
	Timeline       TimelineTerms     `json:"timeline"`
	Complexity     ComplexitySignals `json:"complexity"`
	TargetAudience TargetAudience    `json:"targetAudience"`
}

type ContentTerms struct {
	Platform         string `json:"platform"`
	Format           string `json:"format"`
	Quantity         int    `json:"quantity"`
	DeliverableCount int    `json:"deliverableCount,omitempty"`
}

type UsageRightsTerms struct {
	Scope        string `json:"scope"`
	DurationDays int    `json:"durationDays,omitempty"`
	Perpetual    bool   `json:"perpetual,omitempty"`
}

type ExclusivityTerms struct {
	Required     bool   `json:"required"`
	DurationDays int    `json:"durationDays,omitempty"`
	Category     string `json:"category,omitempty"`
}

type TimelineTerms struct {
	TurnaroundDays int    `json:"turnaroundDays,omitempty"`
	PostingDate    string `json:"postingDate,omitempty"`
}

type ComplexitySignals struct {
	Locations             int    `json:"locations,omitempty"`
	ProfessionalEquipment bool   `json:"professionalEquipment,omitempty"`
	EditingLevel          string `json:"editingLevel,omitempty"`
	ScriptRequired        bool   `json:"scriptRequired,omitempty"`
	AdditionalTalent      bool   `json:"additionalTalent,omitempty"`
}

type TargetAudience struct {
	AgeMin  int    `json:"ageMin,omitempty"`
	AgeMax  int    `json:"ageMax,omitempty"`
	Country string `json:"country,omitempty"`
}

// PricedQuantity returns the number of priced content pieces, at least one.
func (c ContentTerms) PricedQuantity() int {
	if c.Quantity < 1 {
		return 1
	}
	return c.Quantity
}

// Deliverables returns the total deliverable count used for scope checks.
func (c ContentTerms) Deliverables() int {
	if c.DeliverableCount > 0 {
		return c.DeliverableCount
	}
	return c.PricedQuantity()
}
