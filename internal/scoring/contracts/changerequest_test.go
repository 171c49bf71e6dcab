package contracts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateChangeRequest_IssueFree(t *testing.T) {
	msg := GenerateChangeRequest(Result{}, "")

	assert.Contains(t, msg, "looks good")
	assert.NotContains(t, msg, "[HIGH PRIORITY]")
	assert.NotContains(t, msg, "[CRITICAL]")
	assert.True(t, strings.HasSuffix(msg, "[Your Name]"))
}

func TestGenerateChangeRequest_Ordering(t *testing.T) {
	res := Result{
		RedFlags: []RedFlag{
			{ID: "unlimited_revisions", Severity: SeverityMedium, Title: "Unlimited revisions", Suggestion: "Cap revisions."},
			{ID: "auto_renewal", Severity: SeverityLow, Title: "Automatic renewal", Suggestion: "Remove it."},
			{ID: "perpetual_usage", Severity: SeverityHigh, Title: "Perpetual usage rights", Suggestion: "Limit usage."},
		},
		MissingClauses: []MissingClause{
			{Type: "deliverables", Name: "Deliverables", Importance: ImportanceImportant, Suggestion: "List deliverables."},
			{Type: "governing_law", Name: "Governing law", Importance: ImportanceOptional, Suggestion: "Name the law."},
			{Type: "payment_terms", Name: "Payment terms", Importance: ImportanceCritical, Suggestion: "Add net 30."},
		},
	}

	msg := GenerateChangeRequest(res, "Sam Rivera")

	high := strings.Index(msg, "[HIGH PRIORITY]")
	critical := strings.Index(msg, "[CRITICAL]")
	important := strings.Index(msg, "[IMPORTANT]")

	assert.GreaterOrEqual(t, high, 0)
	assert.Greater(t, critical, high)
	assert.Greater(t, important, critical)
	assert.Equal(t, 2, strings.Count(msg, "[IMPORTANT]"))
	assert.Less(t, strings.LastIndex(msg, "[HIGH PRIORITY]"), critical)
	assert.Less(t, strings.LastIndex(msg, "[CRITICAL]"), important)

	assert.NotContains(t, msg, "Automatic renewal")
	assert.NotContains(t, msg, "governing law")
	assert.NotContains(t, msg, "looks good")
	assert.True(t, strings.HasSuffix(msg, "Sam Rivera"))
}

func TestGenerateChangeRequest_IssueFreeHasNoNotes(t *testing.T) {
	msg := GenerateChangeRequest(Result{}, "Sam")

	assert.Contains(t, msg, "everything looks good")
	assert.NotContains(t, msg, "minor points")
}

func TestGenerateChangeRequest_OnlyMinorIssues(t *testing.T) {
	res := Result{
		RedFlags: []RedFlag{
			{ID: "auto_renewal", Severity: SeverityLow, Title: "Automatic renewal", Suggestion: "Remove it."},
		},
		MissingClauses: []MissingClause{{Type: "governing_law", Name: "Governing law", Importance: ImportanceOptional}},
	}

	msg := GenerateChangeRequest(res, "Sam")

	assert.Contains(t, msg, "looks good")
	assert.NotContains(t, msg, "everything looks good")
	assert.Contains(t, msg, "minor points")
	assert.Contains(t, msg, "- Automatic renewal\n")
	assert.Contains(t, msg, "- No governing law clause\n")
	assert.NotContains(t, msg, "[HIGH PRIORITY]")
	assert.NotContains(t, msg, "[IMPORTANT]")
	assert.Contains(t, msg, "happy to move forward and sign")
	assert.True(t, strings.HasSuffix(msg, "Sam"))
}

func TestGenerateChangeRequest_SignsWithNameVerbatim(t *testing.T) {
	assert.True(t, strings.HasSuffix(GenerateChangeRequest(Result{}, " Sam Rivera "), "Best,\n Sam Rivera "))
	assert.True(t, strings.HasSuffix(GenerateChangeRequest(Result{}, "  \t"), "Best,\n[Your Name]"))
}

func TestGenerateChangeRequest_KillFeeForLargeDeals(t *testing.T) {
	res := Result{
		DealContext: &DealContext{BrandName: "Acme", DealValue: 1500},
		MissingClauses: []MissingClause{
			{Type: "kill_fee", Name: "Kill fee / late fee", Importance: ImportanceOptional},
			{Type: "payment_terms", Name: "Payment terms", Importance: ImportanceCritical, Suggestion: "Add net 30."},
		},
	}

	msg := GenerateChangeRequest(res, "")
	assert.True(t, strings.HasPrefix(msg, "Hi Acme team,"))
	assert.Contains(t, msg, "kill fee of 25-50%")
	assert.Contains(t, msg, "$1,500")

	res.DealContext.DealValue = 999
	assert.NotContains(t, GenerateChangeRequest(res, ""), "kill fee of 25-50%")
}
