// Package brandvet turns externally gathered brand signals into a trust score.
package brandvet

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"creator-pricing-workers/internal/models"

	"github.com/google/uuid"
)

const (
	CategoryMax = 25

	// neutralScamScore is used when the scam lookup is unavailable.
	neutralScamScore = 12

	cacheKeyPrefix = "brandvet:"
)

const (
	LevelVerified    = "verified"
	LevelLikelyLegit = "likely_legit"
	LevelCaution     = "caution"
	LevelHighRisk    = "high_risk"
)

const (
	SeverityHigh   = "high"
	SeverityMedium = "medium"
	SeverityLow    = "low"
)

const (
	CategorySocial  = "social_presence"
	CategoryWebsite = "website_verification"
	CategoryHistory = "collaboration_history"
	CategoryScam    = "scam_indicators"
)

const (
	FindingPositive   = "positive"
	FindingNegative   = "negative"
	FindingNeutral    = "neutral"
	FindingUnverified = "unverified"
)

var ErrInvalidInput = errors.New("invalid brand vetting input")

// identityNamespace scopes brand fingerprints so they never collide with other
// name-based UUIDs.
var identityNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("urn:creator-pricing:brand-identity"))

type Input struct {
	BrandName    string `json:"brandName"`
	Platform     string `json:"platform"`
	Handle       string `json:"handle,omitempty"`
	Website      string `json:"website,omitempty"`
	ContactEmail string `json:"contactEmail,omitempty"`
	OfferText    string `json:"offerText,omitempty"`
}

type CategoryScore struct {
	Score    int  `json:"score"`
	MaxScore int  `json:"maxScore"`
	Verified bool `json:"verified"`
}

type Breakdown struct {
	SocialPresence       CategoryScore `json:"socialPresence"`
	WebsiteVerification  CategoryScore `json:"websiteVerification"`
	CollaborationHistory CategoryScore `json:"collaborationHistory"`
	ScamIndicators       CategoryScore `json:"scamIndicators"`
}

type Finding struct {
	Category string `json:"category"`
	Type     string `json:"type"`
	Message  string `json:"message"`
}

type RedFlag struct {
	Indicator string `json:"indicator"`
	Severity  string `json:"severity"`
	Message   string `json:"message"`
}

type Result struct {
	BrandName       string    `json:"brandName"`
	Platform        string    `json:"platform"`
	TrustScore      int       `json:"trustScore"`
	TrustLevel      string    `json:"trustLevel"`
	Breakdown       Breakdown `json:"breakdown"`
	Findings        []Finding `json:"findings"`
	RedFlags        []RedFlag `json:"redFlags"`
	Recommendations []string  `json:"recommendations"`
	CheckedAt       time.Time `json:"checkedAt"`
	Cached          bool      `json:"cached"`
}

// ValidateInput returns a user-facing error naming the first bad field.
func ValidateInput(in Input) error {
	if strings.TrimSpace(in.BrandName) == "" {
		return fmt.Errorf("%w: brandName is required", ErrInvalidInput)
	}
	if !models.IsValidPlatform(in.Platform) {
		return fmt.Errorf("%w: Invalid platform %q, must be one of %s",
			ErrInvalidInput, in.Platform, strings.Join(models.Platforms, ", "))
	}
	return nil
}

func IsValidInput(in Input) bool {
	return ValidateInput(in) == nil
}

// CacheKey fingerprints the normalized brand identity. Inputs that differ only
// in case, surrounding space, URL scheme or a leading "@" share a key.
func CacheKey(in Input) string {
	identity := strings.Join([]string{
		strings.ToLower(strings.TrimSpace(in.BrandName)),
		strings.ToLower(strings.TrimSpace(in.Platform)),
		WebsiteHost(in.Website),
		strings.ToLower(strings.TrimPrefix(strings.TrimSpace(in.Handle), "@")),
	}, "|")
	return cacheKeyPrefix + uuid.NewSHA1(identityNamespace, []byte(identity)).String()
}

// WebsiteHost reduces a user-entered site to its bare lower-case host.
func WebsiteHost(site string) string {
	site = strings.TrimSpace(site)
	if site == "" {
		return ""
	}
	if !strings.Contains(site, "://") {
		site = "https://" + site
	}
	u, err := url.Parse(site)
	if err != nil {
		return strings.ToLower(site)
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}

type band struct {
	min   int
	level string
}

var trustBands = []band{
	{80, LevelVerified},
	{60, LevelLikelyLegit},
	{40, LevelCaution},
	{0, LevelHighRisk},
}

func TrustLevel(score int) string {
	for _, b := range trustBands {
		if score >= b.min {
			return b.level
		}
	}
	return LevelHighRisk
}

// Score classifies signals. It is pure: the caller stamps identity, CheckedAt
// and Cached.
func Score(s Signals) Result {
	var res Result
	social := scoreSocial(s.Social, &res)
	site := scoreWebsite(s.Website, &res)
	hist := scoreHistory(s.History, &res)
	scam := scoreScam(s.Scam, &res)

	res.Breakdown = Breakdown{
		SocialPresence:       social,
		WebsiteVerification:  site,
		CollaborationHistory: hist,
		ScamIndicators:       scam,
	}
	res.TrustScore = social.Score + site.Score + hist.Score + scam.Score
	res.TrustLevel = TrustLevel(res.TrustScore)
	res.Recommendations = recommendations(res, s)
	if res.Findings == nil {
		res.Findings = []Finding{}
	}
	if res.RedFlags == nil {
		res.RedFlags = []RedFlag{}
	}
	return res
}

func (r *Result) find(category, kind, format string, args ...interface{}) {
	r.Findings = append(r.Findings, Finding{Category: category, Type: kind, Message: fmt.Sprintf(format, args...)})
}

func scoreSocial(s *SocialSignals, r *Result) CategoryScore {
	if s == nil {
		r.find(CategorySocial, FindingUnverified, "Social profile could not be checked")
		return CategoryScore{MaxScore: CategoryMax}
	}
	if !s.Found {
		r.find(CategorySocial, FindingNegative, "No social account found for this brand")
		return CategoryScore{MaxScore: CategoryMax, Verified: true}
	}

	score := step(s.Followers, []threshold{{100_000, 10}, {10_000, 7}, {1_000, 4}}, 1)
	if s.Verified {
		score += 5
		r.find(CategorySocial, FindingPositive, "Account is platform-verified")
	}
	score += step(s.AccountAgeMonths, []threshold{{24, 5}, {6, 3}}, 0)
	score += step(s.PostCount, []threshold{{50, 5}, {10, 3}}, 1)

	switch {
	case s.Followers >= 10_000:
		r.find(CategorySocial, FindingPositive, "Established audience of %d followers", s.Followers)
	case s.Followers < 1_000:
		r.find(CategorySocial, FindingNegative, "Very small following (%d)", s.Followers)
	}
	if s.AccountAgeMonths < 6 {
		r.find(CategorySocial, FindingNegative, "Account is less than 6 months old")
	}
	return CategoryScore{Score: clamp(score), MaxScore: CategoryMax, Verified: true}
}

func scoreWebsite(w *WebsiteSignals, r *Result) CategoryScore {
	if w == nil {
		r.find(CategoryWebsite, FindingUnverified, "Website could not be checked")
		return CategoryScore{MaxScore: CategoryMax}
	}
	if !w.Exists {
		r.find(CategoryWebsite, FindingNegative, "No working website found")
		return CategoryScore{MaxScore: CategoryMax, Verified: true}
	}

	score := 8
	if w.HTTPS {
		score += 5
	} else {
		r.find(CategoryWebsite, FindingNegative, "Website does not use HTTPS")
	}
	score += step(w.DomainAgeMonths, []threshold{{24, 7}, {6, 4}}, 1)
	if w.DomainAgeMonths < 6 {
		r.find(CategoryWebsite, FindingNegative, "Domain was registered less than 6 months ago")
	}
	if w.HasContactPage {
		score += 3
	}
	if w.EmailDomainMatches {
		score += 2
		r.find(CategoryWebsite, FindingPositive, "Contact email matches the website domain")
	}
	return CategoryScore{Score: clamp(score), MaxScore: CategoryMax, Verified: true}
}

func scoreHistory(h *HistorySignals, r *Result) CategoryScore {
	if h == nil {
		r.find(CategoryHistory, FindingUnverified, "Collaboration history could not be checked")
		return CategoryScore{MaxScore: CategoryMax}
	}

	score := step(h.Collaborations, []threshold{{10, 15}, {3, 10}, {1, 5}}, 0)
	if h.Collaborations == 0 {
		r.find(CategoryHistory, FindingNeutral, "No previous creator collaborations on record")
	} else {
		r.find(CategoryHistory, FindingPositive, "%d previous creator collaborations on record", h.Collaborations)
	}

	switch {
	case h.PositiveReviews > 0 && h.NegativeReviews == 0:
		score += 10
	case h.PositiveReviews > h.NegativeReviews:
		score += 5
	case h.NegativeReviews > h.PositiveReviews:
		score -= 5
		r.find(CategoryHistory, FindingNegative, "More negative than positive creator reviews")
	}
	return CategoryScore{Score: clamp(score), MaxScore: CategoryMax, Verified: true}
}

func scoreScam(s *ScamSignals, r *Result) CategoryScore {
	if s == nil {
		r.find(CategoryScam, FindingUnverified, "Scam reports could not be checked")
		return CategoryScore{Score: neutralScamScore, MaxScore: CategoryMax}
	}

	penalty := 0
	seen := make(map[string]bool, len(s.Indicators))
	for _, ind := range s.Indicators {
		ind = strings.TrimSpace(ind)
		if ind == "" || seen[ind] {
			continue
		}
		seen[ind] = true
		rule := ruleFor(ind)
		penalty += rule.weight
		r.RedFlags = append(r.RedFlags, RedFlag{Indicator: ind, Severity: rule.severity, Message: rule.message})
	}
	if len(seen) == 0 {
		r.find(CategoryScam, FindingPositive, "No scam indicators found")
	}
	return CategoryScore{Score: clamp(CategoryMax - penalty), MaxScore: CategoryMax, Verified: true}
}

func recommendations(res Result, s Signals) []string {
	var recs []string
	switch res.TrustLevel {
	case LevelVerified:
		recs = append(recs, "Brand looks legitimate. Proceed with your normal contract review.")
	case LevelLikelyLegit:
		recs = append(recs, "Brand appears legitimate. Confirm the contact person through the brand's official channels before signing.")
	case LevelCaution:
		recs = append(recs, "Ask for a written contract and a deposit before starting any work.")
	default:
		recs = append(recs, "Do not proceed until the brand's identity is independently confirmed.")
	}

	for _, f := range res.RedFlags {
		switch f.Indicator {
		case IndicatorAsksForPayment, IndicatorShippingFee:
			recs = append(recs, "Never pay a brand to collaborate. Legitimate partners cover product and shipping costs.")
		case IndicatorRequestsCredentials:
			recs = append(recs, "Never share passwords or login codes. Grant access through the platform's partner tools instead.")
		}
	}
	if s.Social == nil || s.Website == nil || s.History == nil || s.Scam == nil {
		recs = append(recs, "Some checks could not be completed. Verify the brand manually or re-run vetting later.")
	}
	return dedupe(recs)
}

type threshold struct {
	min    int
	points int
}

// step returns the points of the first threshold v reaches, else fallback.
// Thresholds are ordered from highest to lowest.
func step(v int, ts []threshold, fallback int) int {
	for _, t := range ts {
		if v >= t.min {
			return t.points
		}
	}
	return fallback
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > CategoryMax {
		return CategoryMax
	}
	return v
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := in[:0]
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
