// Package contracts scores creator agreements for missing protections and abusive terms.
package contracts

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	minContractLength = 100
	categoryMax       = 25
	excerptLimit      = 160
	killFeeDealValue  = 1_000
	depositDealValue  = 5_000

	LevelExcellent = "excellent"
	LevelGood      = "good"
	LevelFair      = "fair"
	LevelPoor      = "poor"

	StatusComplete = "complete"
	StatusPartial  = "partial"
	StatusMissing  = "missing"
)

var ErrContractTooShort = fmt.Errorf("contract text must be at least %d characters long", minContractLength)

var ErrInvalidInput = errors.New("contracts: invalid input")

type Input struct {
	ContractText string       `json:"contractText"`
	DealContext  *DealContext `json:"dealContext,omitempty"`
}

type DealContext struct {
	BrandName string  `json:"brandName,omitempty"`
	DealValue float64 `json:"dealValue,omitempty"`
	Platform  string  `json:"platform,omitempty"`
}

type CategoryResult struct {
	Score    int      `json:"score"`
	Status   string   `json:"status"`
	Findings []string `json:"findings"`
}

type CategoryScores struct {
	Payment       CategoryResult `json:"payment"`
	ContentRights CategoryResult `json:"contentRights"`
	Exclusivity   CategoryResult `json:"exclusivity"`
	Legal         CategoryResult `json:"legal"`
}

type FoundClause struct {
	Type       string `json:"type"`
	Category   string `json:"category"`
	Name       string `json:"name"`
	Excerpt    string `json:"excerpt"`
	Assessment string `json:"assessment"`
}

type MissingClause struct {
	Type       string `json:"type"`
	Category   string `json:"category"`
	Name       string `json:"name"`
	Importance string `json:"importance"`
	Suggestion string `json:"suggestion"`
}

type RedFlag struct {
	ID         string `json:"id"`
	Category   string `json:"category"`
	Severity   string `json:"severity"`
	Title      string `json:"title"`
	Excerpt    string `json:"excerpt"`
	Suggestion string `json:"suggestion"`
}

type Result struct {
	HealthScore           int             `json:"healthScore"`
	HealthLevel           string          `json:"healthLevel"`
	Categories            CategoryScores  `json:"categories"`
	FoundClauses          []FoundClause   `json:"foundClauses"`
	MissingClauses        []MissingClause `json:"missingClauses"`
	RedFlags              []RedFlag       `json:"redFlags"`
	Recommendations       []string        `json:"recommendations"`
	ChangeRequestTemplate string          `json:"changeRequestTemplate"`
	DealContext           *DealContext    `json:"dealContext,omitempty"`
}

// MinContractLength is the shortest trimmed text Scan accepts.
func MinContractLength() int { return minContractLength }

// IsValidContractText reports whether text is long enough to scan, ignoring surrounding whitespace.
func IsValidContractText(text string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(text)) >= minContractLength
}

// HealthLevel classifies a 0-100 health score. Each band includes its lower edge.
func HealthLevel(score int) string {
	switch {
	case score >= 80:
		return LevelExcellent
	case score >= 60:
		return LevelGood
	case score >= 40:
		return LevelFair
	default:
		return LevelPoor
	}
}

// Scan extracts clauses and red flags from contract text and scores each category.
func Scan(in Input) (Result, error) {
	if !IsValidContractText(in.ContractText) {
		return Result{}, fmt.Errorf("%w: %w", ErrInvalidInput, ErrContractTooShort)
	}
	text := in.ContractText

	res := Result{
		FoundClauses:   []FoundClause{},
		MissingClauses: []MissingClause{},
		RedFlags:       []RedFlag{},
	}
	if in.DealContext != nil {
		dc := *in.DealContext
		res.DealContext = &dc
	}

	flaggedClauses := map[string]bool{}
	penalties := map[string]int{}
	highFlags := map[string]int{}
	for _, rule := range flagRules {
		loc := rule.pattern.FindStringIndex(text)
		if loc == nil {
			continue
		}
		res.RedFlags = append(res.RedFlags, RedFlag{
			ID:         rule.id,
			Category:   rule.category,
			Severity:   rule.severity,
			Title:      rule.title,
			Excerpt:    excerpt(text, loc),
			Suggestion: rule.suggestion,
		})
		flaggedClauses[rule.clause] = true
		penalties[rule.category] += penaltyBySeverity[rule.severity]
		if rule.severity == SeverityHigh {
			highFlags[rule.category]++
		}
	}

	points := map[string]int{}
	found := map[string]int{}
	total := map[string]int{}
	findings := map[string][]string{}
	for _, rule := range clauseRules {
		total[rule.category]++
		loc := rule.pattern.FindStringIndex(text)
		if loc == nil {
			res.MissingClauses = append(res.MissingClauses, MissingClause{
				Type:       rule.id,
				Category:   rule.category,
				Name:       rule.name,
				Importance: rule.importance,
				Suggestion: rule.suggestion,
			})
			findings[rule.category] = append(findings[rule.category], "Missing: "+rule.name)
			continue
		}

		assessment := AssessmentNeutral
		switch {
		case flaggedClauses[rule.id]:
			assessment = AssessmentRedFlag
		case rule.favorable != nil && rule.favorable.MatchString(text):
			assessment = AssessmentGood
		}
		res.FoundClauses = append(res.FoundClauses, FoundClause{
			Type:       rule.id,
			Category:   rule.category,
			Name:       rule.name,
			Excerpt:    excerpt(text, loc),
			Assessment: assessment,
		})
		points[rule.category] += rule.points
		found[rule.category]++
		findings[rule.category] = append(findings[rule.category], rule.name+" found ("+strings.ReplaceAll(assessment, "_", " ")+")")
	}
	for _, f := range res.RedFlags {
		findings[f.Category] = append(findings[f.Category], "Red flag: "+f.Title)
	}

	category := func(name string) CategoryResult {
		c := CategoryResult{
			Score:    clamp(points[name]-penalties[name], 0, categoryMax),
			Findings: findings[name],
		}
		switch {
		case found[name] == total[name] && highFlags[name] == 0:
			c.Status = StatusComplete
		case found[name] > 0:
			c.Status = StatusPartial
		default:
			c.Status = StatusMissing
		}
		if c.Findings == nil {
			c.Findings = []string{}
		}
		return c
	}
	res.Categories = CategoryScores{
		Payment:       category(CategoryPayment),
		ContentRights: category(CategoryContentRights),
		Exclusivity:   category(CategoryExclusivity),
		Legal:         category(CategoryLegal),
	}
	res.HealthScore = res.Categories.Payment.Score + res.Categories.ContentRights.Score +
		res.Categories.Exclusivity.Score + res.Categories.Legal.Score
	res.HealthLevel = HealthLevel(res.HealthScore)
	res.Recommendations = recommendations(res)
	res.ChangeRequestTemplate = GenerateChangeRequest(res, "")

	return res, nil
}

func recommendations(res Result) []string {
	var out []string
	for _, f := range res.RedFlags {
		if f.Severity != SeverityLow {
			out = append(out, f.Suggestion)
		}
	}
	for _, m := range res.MissingClauses {
		if m.Importance == ImportanceCritical {
			out = append(out, m.Suggestion)
		}
	}

	if dc := res.DealContext; dc != nil {
		if dc.DealValue >= killFeeDealValue && res.missing("kill_fee") {
			out = append(out, fmt.Sprintf("For a deal worth %s, ask for a kill fee of 25-50%% if the brand cancels.", formatMoney(dc.DealValue)))
		}
		if dc.DealValue >= depositDealValue {
			out = append(out, "For a deal this size, request 50% of the fee upfront before production starts.")
		}
		if dc.Platform != "" && res.missing("ftc_disclosure") {
			out = append(out, fmt.Sprintf("Agree how the partnership will be disclosed on %s (#ad or the paid partnership label).", dc.Platform))
		}
	}

	if len(out) == 0 {
		out = append(out, "This contract covers the essentials. Keep a signed copy for your records.")
	}
	return out
}

func (r Result) missing(clauseType string) bool {
	for _, m := range r.MissingClauses {
		if m.Type == clauseType {
			return true
		}
	}
	return false
}

// excerpt returns the sentence around a match, trimmed for display.
func excerpt(text string, loc []int) string {
	start := strings.LastIndexAny(text[:loc[0]], ".\n")
	start++
	end := loc[1] + strings.IndexAny(text[loc[1]:], ".\n")
	if end < loc[1] {
		end = len(text)
	}
	s := strings.Join(strings.Fields(text[start:end]), " ")
	if utf8.RuneCountInString(s) > excerptLimit {
		r := []rune(s)
		s = string(r[:excerptLimit-3]) + "..."
	}
	return s
}

var printer = message.NewPrinter(language.English)

func formatMoney(v float64) string {
	return printer.Sprintf("$%d", int(math.Round(v)))
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
