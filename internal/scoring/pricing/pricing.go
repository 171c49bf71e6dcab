// Package pricing composes a deliverable price from an ordered chain of layers.
package pricing

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"creator-pricing-workers/internal/models"
	"creator-pricing-workers/internal/scoring/dealquality"
	"creator-pricing-workers/internal/scoring/tier"
)

const ValidDays = 14

const (
	LayerBase        = "Base Rate"
	LayerEngagement  = "Engagement"
	LayerFormat      = "Format Premium"
	LayerFit         = "Fit Score"
	LayerUsageRights = "Usage Rights"
	LayerComplexity  = "Complexity Premium"
)

var (
	ErrInvalidInput     = errors.New("pricing: invalid input")
	ErrNegativeOverride = errors.New("pricing: override must not be negative")
)

type Layer struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Adjustment  float64 `json:"adjustment"`
}

type Result struct {
	Tier                string  `json:"tier"`
	Platform            string  `json:"platform"`
	BaseRate            int     `json:"baseRate"`
	Layers              []Layer `json:"layers"`
	PricePerDeliverable int     `json:"pricePerDeliverable"`
	Quantity            int     `json:"quantity"`
	TotalPrice          int     `json:"totalPrice"`
	Currency            string  `json:"currency"`
	CurrencySymbol      string  `json:"currencySymbol"`
	ValidDays           int     `json:"validDays"`
	OriginalTotal       *int    `json:"originalTotal,omitempty"`
}

// step is one breakpoint of a lower-bound lookup table.
type step struct {
	from  float64
	value float64
}

var engagementSteps = []step{
	{0, 0.70},
	{0.5, 0.85},
	{0.8, 1.00},
	{1.2, 1.15},
	{1.5, 1.30},
	{2.0, 1.50},
}

var fitSteps = []step{
	{0, -0.15},
	{35, -0.10},
	{50, 0},
	{65, 0.05},
	{80, 0.15},
}

var usageScopeSteps = map[string]float64{
	models.UsageOrganic:      0,
	models.UsagePaidSocial:   0.30,
	models.UsageWhitelisting: 0.40,
	models.UsagePaidAds:      0.50,
	models.UsageBroadcast:    0.75,
}

// upper-bound tables: first entry whose limit covers the duration wins
var usageDurationSteps = []step{{30, 0}, {90, 0.10}, {180, 0.20}, {365, 0.35}}
var exclusivitySteps = []step{{30, 0.10}, {90, 0.25}}

const (
	perpetualPremium       = 0.60
	longExclusivityPremium = 0.40
	complexityCap          = 0.50
)

var editingPremiums = map[string]float64{
	models.EditingBasic:    0,
	models.EditingStandard: 0.05,
	models.EditingAdvanced: 0.15,
}

// Calculate prices a brief for a creator. The deal quality score feeds the fit layer.
func Calculate(profile models.CreatorProfile, brief models.ParsedBrief, quality dealquality.Result) (Result, error) {
	metrics, ok := profile.MetricsFor(brief.Content.Platform)
	if !ok {
		metrics, ok = profile.PrimaryPlatform()
	}
	if !ok {
		return Result{}, fmt.Errorf("%w: creator profile has no platform metrics", ErrInvalidInput)
	}
	platform := strings.ToLower(brief.Content.Platform)
	if platform == "" {
		platform = strings.ToLower(metrics.Platform)
	}

	t, err := tier.Classify(metrics.Followers)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	base, err := tier.BaseRate(t, platform)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	format := brief.Content.Format
	if format == "" {
		format = models.FormatStatic
	}
	formatAdj, err := tier.FormatPremium(format)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	engagementMult, engagementDesc := engagement(metrics.EngagementRate, t)
	fitAdj := FitAdjustment(quality.Score)
	rightsAdj, rightsDesc := usageRights(brief.UsageRights, brief.Exclusivity)
	complexityAdj, complexityDesc := complexity(brief.Complexity, brief.Timeline)

	layers := []Layer{
		{
			Name:        LayerBase,
			Description: fmt.Sprintf("%s tier on %s (%s followers)", t.Name, platform, groupDigits(metrics.Followers)),
			Adjustment:  0,
		},
		{Name: LayerEngagement, Description: engagementDesc, Adjustment: roundAdj(engagementMult - 1)},
		{Name: LayerFormat, Description: fmt.Sprintf("%s content", format), Adjustment: formatAdj},
		{Name: LayerFit, Description: fmt.Sprintf("Deal quality %d (%s)", quality.Score, quality.Level), Adjustment: fitAdj},
		{Name: LayerUsageRights, Description: rightsDesc, Adjustment: rightsAdj},
		{Name: LayerComplexity, Description: complexityDesc, Adjustment: complexityAdj},
	}

	price := float64(base) * engagementMult
	for _, l := range layers[2:] {
		price *= 1 + l.Adjustment
	}
	ppd := int(math.Round(price))
	qty := brief.Content.PricedQuantity()

	currency := strings.ToUpper(strings.TrimSpace(profile.Currency))
	if currency == "" {
		currency = "USD"
	}

	return Result{
		Tier:                t.ID,
		Platform:            platform,
		BaseRate:            base,
		Layers:              layers,
		PricePerDeliverable: ppd,
		Quantity:            qty,
		TotalPrice:          ppd * qty,
		Currency:            currency,
		CurrencySymbol:      CurrencySymbol(currency),
		ValidDays:           ValidDays,
	}, nil
}

// ApplyOverride replaces the total with a creator-chosen figure. The computed
// total is kept in OriginalTotal and the layer breakdown is left untouched.
func ApplyOverride(r Result, total int) (Result, error) {
	if total < 0 {
		return Result{}, ErrNegativeOverride
	}
	out := r
	out.Layers = append([]Layer(nil), r.Layers...)
	original := r.PricePerDeliverable * r.Quantity
	out.OriginalTotal = &original
	out.TotalPrice = total
	return out, nil
}

// EngagementMultiplier scales the base rate by engagement relative to the tier norm.
// A zero rate means unknown and leaves the price unchanged.
func EngagementMultiplier(rate float64, t tier.Tier) float64 {
	if rate <= 0 || t.EngagementNorm <= 0 {
		return 1
	}
	return lookupStep(engagementSteps, rate/t.EngagementNorm)
}

// FitAdjustment maps a 0-100 deal quality score to its price adjustment.
func FitAdjustment(score int) float64 {
	return lookupStep(fitSteps, float64(score))
}

func engagement(rate float64, t tier.Tier) (float64, string) {
	m := EngagementMultiplier(rate, t)
	if rate <= 0 {
		return m, "Engagement rate not provided"
	}
	return m, fmt.Sprintf("%.1f%% engagement vs %.1f%% %s norm", rate, t.EngagementNorm, t.Name)
}

func usageRights(rights models.UsageRightsTerms, excl models.ExclusivityTerms) (float64, string) {
	scope := rights.Scope
	if scope == "" {
		scope = models.UsageOrganic
	}
	adj := usageScopeSteps[scope]
	parts := []string{strings.ReplaceAll(scope, "_", " ")}

	if scope != models.UsageOrganic {
		switch {
		case rights.Perpetual:
			adj += perpetualPremium
			parts = append(parts, "perpetual")
		case rights.DurationDays > 0:
			adj += lookupLimit(usageDurationSteps, float64(rights.DurationDays), perpetualPremium)
			parts = append(parts, fmt.Sprintf("%d days", rights.DurationDays))
		}
	}
	if excl.Required {
		adj += lookupLimit(exclusivitySteps, float64(excl.DurationDays), longExclusivityPremium)
		parts = append(parts, fmt.Sprintf("%d-day exclusivity", excl.DurationDays))
	}
	return roundAdj(adj), strings.Join(parts, ", ")
}

func complexity(c models.ComplexitySignals, tl models.TimelineTerms) (float64, string) {
	adj := 0.0
	var parts []string
	if c.Locations > 1 {
		adj += math.Min(0.15, 0.05*float64(c.Locations-1))
		parts = append(parts, fmt.Sprintf("%d locations", c.Locations))
	}
	if c.ProfessionalEquipment {
		adj += 0.10
		parts = append(parts, "professional equipment")
	}
	if p := editingPremiums[c.EditingLevel]; p > 0 {
		adj += p
		parts = append(parts, c.EditingLevel+" editing")
	}
	if c.ScriptRequired {
		adj += 0.05
		parts = append(parts, "script")
	}
	if c.AdditionalTalent {
		adj += 0.10
		parts = append(parts, "additional talent")
	}
	switch d := tl.TurnaroundDays; {
	case d > 0 && d <= 3:
		adj += 0.15
		parts = append(parts, "rush turnaround")
	case d > 0 && d <= 7:
		adj += 0.05
		parts = append(parts, "short turnaround")
	}
	if len(parts) == 0 {
		return 0, "Standard production"
	}
	return roundAdj(math.Min(adj, complexityCap)), strings.Join(parts, ", ")
}

// lookupStep returns the value of the last step whose lower bound is <= v.
func lookupStep(steps []step, v float64) float64 {
	i := sort.Search(len(steps), func(i int) bool { return steps[i].from > v })
	if i == 0 {
		return steps[0].value
	}
	return steps[i-1].value
}

// lookupLimit returns the value of the first step whose upper limit covers v, or beyond.
func lookupLimit(steps []step, v, beyond float64) float64 {
	i := sort.Search(len(steps), func(i int) bool { return steps[i].from >= v })
	if i == len(steps) {
		return beyond
	}
	return steps[i].value
}

// roundAdj trims float noise from summed adjustments.
func roundAdj(v float64) float64 {
	return math.Round(v*10000) / 10000
}
