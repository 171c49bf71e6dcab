// Package dealquality scores how well a brand brief fits a creator.
//
// One assessment is computed per call and exposed twice: DealQuality is the
// current shape, FitScore is the legacy shape kept for clients that have not
// migrated. Both are views over the same numbers.
package dealquality

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"creator-pricing-workers/internal/models"
)

var ErrInvalidInput = errors.New("dealquality: invalid input")

const (
	weightNiche    = 0.35
	weightAudience = 0.25
	weightBrand    = 0.20
	weightScope    = 0.20

	LevelExcellent = "excellent"
	LevelGood      = "good"
	LevelFair      = "fair"
	LevelPoor      = "poor"

	FitHigh   = "high"
	FitMedium = "medium"
	FitLow    = "low"
)

// Input carries optional signals the brief alone cannot provide.
type Input struct {
	BrandTrustScore       *int `json:"brandTrustScore,omitempty"`
	PreviousCollaboration bool `json:"previousCollaboration,omitempty"`
}

type Factor struct {
	Score  int     `json:"score"`
	Weight float64 `json:"weight"`
	Note   string  `json:"note"`
}

type Breakdown struct {
	NicheAlignment      Factor `json:"nicheAlignment"`
	AudienceMatch       Factor `json:"audienceMatch"`
	BrandLegitimacy     Factor `json:"brandLegitimacy"`
	ScopeReasonableness Factor `json:"scopeReasonableness"`
}

type Result struct {
	Score      int       `json:"score"`
	Level      string    `json:"level"`
	Breakdown  Breakdown `json:"breakdown"`
	Highlights []string  `json:"highlights"`
	Concerns   []string  `json:"concerns"`
}

// FitScoreResult is the deprecated response shape.
type FitScoreResult struct {
	Score   int        `json:"score"`
	Level   string     `json:"level"`
	Factors FitFactors `json:"factors"`
}

type FitFactors struct {
	NicheMatch    int `json:"nicheMatch"`
	AudienceMatch int `json:"audienceMatch"`
	BrandFit      int `json:"brandFit"`
	ScopeFit      int `json:"scopeFit"`
}

type Assessment struct {
	niche    Factor
	audience Factor
	brand    Factor
	scope    Factor
	score    int
}

// Compat bundles both shapes for callers of the combined endpoint.
type Compat struct {
	DealQuality Result         `json:"dealQuality"`
	FitScore    FitScoreResult `json:"fitScore"`
}

type band struct {
	min   int
	label string
}

var qualityBands = []band{{80, LevelExcellent}, {60, LevelGood}, {40, LevelFair}, {0, LevelPoor}}
var fitBands = []band{{70, FitHigh}, {40, FitMedium}, {0, FitLow}}

// related niches score partial credit when the exact niche is absent
var nicheGroups = [][]string{
	{"beauty", "fashion", "skincare", "lifestyle"},
	{"fitness", "health", "wellness", "nutrition", "food"},
	{"tech", "gaming", "education", "finance"},
	{"travel", "food", "photography", "lifestyle"},
	{"parenting", "family", "home", "lifestyle"},
}

// ValidateInput accepts a nil input or a trust score on the 0-100 scale.
func ValidateInput(in *Input) error {
	if in != nil && in.BrandTrustScore != nil && (*in.BrandTrustScore < 0 || *in.BrandTrustScore > 100) {
		return fmt.Errorf("%w: Invalid brandTrustScore: must be between 0 and 100", ErrInvalidInput)
	}
	return nil
}

// Assess runs the single computation both views are derived from.
func Assess(profile models.CreatorProfile, brief models.ParsedBrief, in *Input) Assessment {
	if in == nil {
		in = &Input{}
	}
	a := Assessment{
		niche:    nicheAlignment(profile, brief.Niche),
		audience: audienceMatch(profile.Audience, brief.TargetAudience),
		brand:    brandLegitimacy(in),
		scope:    scopeReasonableness(brief),
	}
	a.score = int(math.Round(
		float64(a.niche.Score)*a.niche.Weight +
			float64(a.audience.Score)*a.audience.Weight +
			float64(a.brand.Score)*a.brand.Weight +
			float64(a.scope.Score)*a.scope.Weight))
	return a
}

// Calculate returns both response shapes from one assessment.
func Calculate(profile models.CreatorProfile, brief models.ParsedBrief, in *Input) Compat {
	a := Assess(profile, brief, in)
	return Compat{DealQuality: a.DealQuality(), FitScore: a.FitScore()}
}

func (a Assessment) Score() int { return a.score }

func (a Assessment) DealQuality() Result {
	r := Result{
		Score: a.score,
		Level: Level(a.score),
		Breakdown: Breakdown{
			NicheAlignment:      a.niche,
			AudienceMatch:       a.audience,
			BrandLegitimacy:     a.brand,
			ScopeReasonableness: a.scope,
		},
		Highlights: []string{},
		Concerns:   []string{},
	}
	for _, f := range []Factor{a.niche, a.audience, a.brand, a.scope} {
		switch {
		case f.Score >= 70:
			r.Highlights = append(r.Highlights, f.Note)
		case f.Score < 50:
			r.Concerns = append(r.Concerns, f.Note)
		}
	}
	return r
}

func (a Assessment) FitScore() FitScoreResult {
	return FitScoreResult{
		Score: a.score,
		Level: FitLevel(a.score),
		Factors: FitFactors{
			NicheMatch:    a.niche.Score,
			AudienceMatch: a.audience.Score,
			BrandFit:      a.brand.Score,
			ScopeFit:      a.scope.Score,
		},
	}
}

func Level(score int) string    { return lookupBand(qualityBands, score) }
func FitLevel(score int) string { return lookupBand(fitBands, score) }

func lookupBand(bands []band, score int) string {
	for _, b := range bands {
		if score >= b.min {
			return b.label
		}
	}
	return bands[len(bands)-1].label
}

func nicheAlignment(profile models.CreatorProfile, niche string) Factor {
	f := Factor{Weight: weightNiche}
	niche = strings.ToLower(strings.TrimSpace(niche))
	switch {
	case niche == "":
		f.Score, f.Note = 60, "Brief does not name a niche"
	case profile.HasNiche(niche):
		f.Score, f.Note = 100, "Brand niche matches your content"
	case relatedNiche(profile.Niches, niche):
		f.Score, f.Note = 70, "Brand niche is adjacent to your content"
	default:
		f.Score, f.Note = 30, "Brand niche is outside your usual content"
	}
	return f
}

func relatedNiche(creatorNiches []string, niche string) bool {
	for _, group := range nicheGroups {
		if !contains(group, niche) {
			continue
		}
		for _, n := range creatorNiches {
			if contains(group, strings.ToLower(strings.TrimSpace(n))) {
				return true
			}
		}
	}
	return false
}

func audienceMatch(audience models.AudienceDemographics, target models.TargetAudience) Factor {
	f := Factor{Weight: weightAudience}
	hasAge := target.AgeMin > 0 || target.AgeMax > 0
	hasCountry := strings.TrimSpace(target.Country) != ""
	if !hasAge && !hasCountry {
		f.Score, f.Note = 60, "Brief has no audience targeting"
		return f
	}

	f.Score = 50
	var matched []string
	if hasAge {
		if bracket, ok := audience.DominantAgeBracket(); ok && ageOverlaps(bracket, target) {
			f.Score += 25
			matched = append(matched, "age")
		}
	}
	if hasCountry && len(audience.TopCountries) > 0 &&
		strings.EqualFold(strings.TrimSpace(audience.TopCountries[0]), strings.TrimSpace(target.Country)) {
		f.Score += 25
		matched = append(matched, "country")
	}

	if len(matched) == 0 {
		f.Note = "Your audience differs from the brand's target"
	} else {
		f.Note = "Audience matches the brand's target " + strings.Join(matched, " and ")
	}
	return f
}

// ageOverlaps compares a bracket such as "18-24" or "55+" with the target range.
func ageOverlaps(bracket string, target models.TargetAudience) bool {
	lo, hi, ok := parseBracket(bracket)
	if !ok {
		return false
	}
	tMin, tMax := target.AgeMin, target.AgeMax
	if tMax == 0 {
		tMax = 120
	}
	return lo <= tMax && tMin <= hi
}

func parseBracket(bracket string) (int, int, bool) {
	bracket = strings.TrimSpace(bracket)
	if strings.HasSuffix(bracket, "+") {
		lo, err := strconv.Atoi(strings.TrimSuffix(bracket, "+"))
		return lo, 120, err == nil
	}
	parts := strings.SplitN(bracket, "-", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	lo, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	hi, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	return lo, hi, err1 == nil && err2 == nil
}

func brandLegitimacy(in *Input) Factor {
	f := Factor{Weight: weightBrand, Score: 50, Note: "Brand has not been vetted"}
	if in.BrandTrustScore != nil {
		f.Score = *in.BrandTrustScore
		f.Note = "Brand trust score " + strconv.Itoa(*in.BrandTrustScore)
	}
	if in.PreviousCollaboration {
		f.Score += 10
		f.Note += ", worked together before"
	}
	f.Score = clamp(f.Score, 0, 100)
	return f
}

func scopeReasonableness(brief models.ParsedBrief) Factor {
	f := Factor{Weight: weightScope}
	n := brief.Content.Deliverables()
	switch {
	case n <= 3:
		f.Score = 100
	case n <= 6:
		f.Score = 75
	case n <= 10:
		f.Score = 50
	default:
		f.Score = 25
	}
	f.Note = strconv.Itoa(n) + " deliverables requested"

	if d := brief.Timeline.TurnaroundDays; d > 0 && d < 3 {
		f.Score -= 15
		f.Note += " on a rush timeline"
	}
	if brief.Exclusivity.Required && brief.Exclusivity.DurationDays > 90 {
		f.Score -= 10
		f.Note += " with long exclusivity"
	}
	f.Score = clamp(f.Score, 0, 100)
	return f
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
