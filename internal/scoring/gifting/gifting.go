// Package gifting decides whether a product-for-content offer pays fairly for the work.
package gifting

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"creator-pricing-workers/internal/models"
	"creator-pricing-workers/internal/scoring/pricing"
	"creator-pricing-workers/internal/scoring/tier"
)

const (
	ContentOrganicMention = "organic_mention"
	ContentDedicatedPost  = "dedicated_post"
	ContentMultiplePosts  = "multiple_posts"
	ContentVideo          = "video_content"

	BrandMajor       = "major_brand"
	BrandEstablished = "established_indie"
	BrandNewUnknown  = "new_unknown"
	BrandSuspicious  = "suspicious"

	Accept    = "accept"
	Negotiate = "negotiate"
	Decline   = "decline"

	// hours a dedicated post takes; the tier base rate pays for this much work
	standardPostHours = 4.0
	negotiateFloor    = 50

	// upper bounds keep effort and product value inside int range
	MaxProductValue  = 1_000_000_000
	MaxHoursToCreate = 10_000
)

var ErrInvalidInput = errors.New("gifting: invalid input")

var effortMultipliers = map[string]float64{
	ContentOrganicMention: 0.5,
	ContentDedicatedPost:  1.0,
	ContentMultiplePosts:  1.75,
	ContentVideo:          1.5,
}

var credibilityFactors = map[string]float64{
	BrandMajor:       1.0,
	BrandEstablished: 0.85,
	BrandNewUnknown:  0.6,
	BrandSuspicious:  0.2,
}

type Input struct {
	ProductDescription     string  `json:"productDescription"`
	ProductName            string  `json:"productName,omitempty"`
	BrandName              string  `json:"brandName,omitempty"`
	EstimatedProductValue  float64 `json:"estimatedProductValue"`
	EstimatedHoursToCreate float64 `json:"estimatedHoursToCreate"`
	ContentRequired        string  `json:"contentRequired"`
	BrandQuality           string  `json:"brandQuality"`
}

type Evaluation struct {
	WorthScore             int      `json:"worthScore"`
	Recommendation         string   `json:"recommendation"`
	MinimumAcceptableAddOn int      `json:"minimumAcceptableAddOn"`
	EffortCost             int      `json:"effortCost"`
	DiscountedProductValue int      `json:"discountedProductValue"`
	HourlyValue            int      `json:"hourlyValue"`
	Currency               string   `json:"currency"`
	CurrencySymbol         string   `json:"currencySymbol"`
	Reasons                []string `json:"reasons"`
}

// ResponseContext names the parties in a generated reply.
type ResponseContext struct {
	BrandName   string `json:"brandName,omitempty"`
	ProductName string `json:"productName,omitempty"`
	CreatorName string `json:"creatorName,omitempty"`
}

// ValidateInput reports the first invalid field with a message fit for the creator.
func ValidateInput(in Input) error {
	if strings.TrimSpace(in.ProductDescription) == "" {
		return fmt.Errorf("%w: productDescription is required", ErrInvalidInput)
	}
	if !(in.EstimatedProductValue >= 0) || in.EstimatedProductValue > MaxProductValue {
		return fmt.Errorf("%w: Invalid estimatedProductValue: must be a number between 0 and %d", ErrInvalidInput, MaxProductValue)
	}
	if !(in.EstimatedHoursToCreate > 0) || in.EstimatedHoursToCreate > MaxHoursToCreate {
		return fmt.Errorf("%w: Invalid estimatedHoursToCreate: must be greater than 0 and at most %d", ErrInvalidInput, MaxHoursToCreate)
	}
	if _, ok := effortMultipliers[in.ContentRequired]; !ok {
		return fmt.Errorf("%w: Invalid contentRequired: must be one of %s", ErrInvalidInput, strings.Join(keys(effortMultipliers), ", "))
	}
	if _, ok := credibilityFactors[in.BrandQuality]; !ok {
		return fmt.Errorf("%w: Invalid brandQuality: must be one of %s", ErrInvalidInput, strings.Join(keys(credibilityFactors), ", "))
	}
	return nil
}

// Evaluate scores a gift offer against the effort it asks of the creator.
func Evaluate(in Input, profile models.CreatorProfile) (Evaluation, error) {
	if err := ValidateInput(in); err != nil {
		return Evaluation{}, err
	}
	primary, ok := profile.PrimaryPlatform()
	if !ok || primary.Followers <= 0 {
		return Evaluation{}, fmt.Errorf("%w: creator profile with at least one platform is required", ErrInvalidInput)
	}
	t, err := tier.Classify(primary.Followers)
	if err != nil {
		return Evaluation{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	hourly := float64(t.BaseRate) / standardPostHours
	effort := math.Round(hourly * in.EstimatedHoursToCreate * effortMultipliers[in.ContentRequired])
	discounted := math.Round(in.EstimatedProductValue * credibilityFactors[in.BrandQuality])

	worth := 100.0
	if effort > 0 {
		worth = math.Min(100, math.Floor(100*discounted/effort))
	}
	addOn := math.Max(0, effort-discounted)

	currency := strings.ToUpper(strings.TrimSpace(profile.Currency))
	if currency == "" {
		currency = "USD"
	}

	ev := Evaluation{
		WorthScore:             int(worth),
		Recommendation:         verdict(int(worth), in.BrandQuality),
		MinimumAcceptableAddOn: int(addOn),
		EffortCost:             int(effort),
		DiscountedProductValue: int(discounted),
		HourlyValue:            int(math.Round(hourly)),
		Currency:               currency,
		CurrencySymbol:         pricing.CurrencySymbol(currency),
	}
	ev.Reasons = reasons(ev, in, t)
	return ev, nil
}

func verdict(worth int, brandQuality string) string {
	switch {
	case brandQuality == BrandSuspicious:
		return Decline
	case worth >= 100:
		return Accept
	case worth >= negotiateFloor:
		return Negotiate
	default:
		return Decline
	}
}

func reasons(ev Evaluation, in Input, t tier.Tier) []string {
	money := func(v int) string { return pricing.FormatAmount(ev.Currency, v) }
	out := []string{
		fmt.Sprintf("Your time is worth about %s/hour at the %s tier", money(ev.HourlyValue), t.Name),
		fmt.Sprintf("%s of %s content costs you %s in effort",
			formatHours(in.EstimatedHoursToCreate), strings.ReplaceAll(in.ContentRequired, "_", " "), money(ev.EffortCost)),
	}
	if ev.DiscountedProductValue != int(math.Round(in.EstimatedProductValue)) {
		out = append(out, fmt.Sprintf("The product is worth about %s to you after discounting for brand credibility", money(ev.DiscountedProductValue)))
	}
	if in.BrandQuality == BrandSuspicious {
		out = append(out, "This brand shows signs of being untrustworthy")
	}
	if ev.MinimumAcceptableAddOn > 0 {
		out = append(out, fmt.Sprintf("A cash add-on of at least %s would make this fair", money(ev.MinimumAcceptableAddOn)))
	}
	return out
}

// GenerateResponse drafts the reply to the brand. The add-on quoted is the same
// figure the evaluation reports.
func GenerateResponse(ev Evaluation, rc ResponseContext) string {
	brand := strings.TrimSpace(rc.BrandName)
	greeting := "Hi there,"
	if brand != "" {
		greeting = fmt.Sprintf("Hi %s team,", brand)
	}
	product := strings.TrimSpace(rc.ProductName)
	if product == "" {
		product = "the product"
	}
	signature := rc.CreatorName
	if strings.TrimSpace(signature) == "" {
		signature = "[Your Name]"
	}
	addOn := pricing.FormatAmount(ev.Currency, ev.MinimumAcceptableAddOn)

	var body string
	switch ev.Recommendation {
	case Accept:
		body = fmt.Sprintf("Thank you for thinking of me! I'd love to feature %s. "+
			"Please send over the content guidelines and timeline and I'll get started.", product)
	case Negotiate:
		body = fmt.Sprintf("Thank you for reaching out about %s, I'm excited about it. "+
			"Given the time involved in creating the content, I'd need a fee of %s alongside the product to take this on. "+
			"Happy to discuss the details if that works for you.", product, addOn)
	default:
		if ev.MinimumAcceptableAddOn > 0 {
			body = fmt.Sprintf("Thank you for thinking of me for %s. "+
				"A gifted collaboration isn't a fit for me right now. "+
				"For paid partnerships my rate for this scope starts at %s on top of the product.", product, addOn)
		} else {
			body = fmt.Sprintf("Thank you for thinking of me for %s. "+
				"Unfortunately this collaboration isn't a fit for me right now.", product)
		}
	}

	return fmt.Sprintf("%s\n\n%s\n\nBest,\n%s", greeting, body, signature)
}

func formatHours(h float64) string {
	if h == math.Trunc(h) {
		if h == 1 {
			return "1 hour"
		}
		return fmt.Sprintf("%.0f hours", h)
	}
	return fmt.Sprintf("%.1f hours", h)
}

func keys(m map[string]float64) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
