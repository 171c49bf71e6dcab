package contracts

import "regexp"

const (
	CategoryPayment       = "payment"
	CategoryContentRights = "contentRights"
	CategoryExclusivity   = "exclusivity"
	CategoryLegal         = "legal"

	SeverityHigh   = "high"
	SeverityMedium = "medium"
	SeverityLow    = "low"

	ImportanceCritical  = "critical"
	ImportanceImportant = "important"
	ImportanceOptional  = "optional"

	AssessmentGood    = "good"
	AssessmentNeutral = "neutral"
	AssessmentRedFlag = "red_flag"
)

// Categories in report order.
var Categories = []string{CategoryPayment, CategoryContentRights, CategoryExclusivity, CategoryLegal}

type clauseRule struct {
	id         string
	category   string
	name       string
	points     int
	importance string
	pattern    *regexp.Regexp
	favorable  *regexp.Regexp
	suggestion string
}

type flagRule struct {
	id         string
	category   string
	clause     string
	severity   string
	title      string
	pattern    *regexp.Regexp
	suggestion string
}

// clause points per category add up to 25
var clauseRules = []clauseRule{
	{
		id: "payment_amount", category: CategoryPayment, name: "Payment amount", points: 10, importance: ImportanceCritical,
		pattern:    regexp.MustCompile(`(?i)(\$\s?\d[\d,]*|\b\d[\d,]*(\.\d+)?\s?(usd|dollars|eur|euros|gbp|pounds)\b|\b(fee|compensation|payment)\s+of\b)`),
		suggestion: "State the exact fee, the currency and what it covers.",
	},
	{
		id: "payment_terms", category: CategoryPayment, name: "Payment terms", points: 8, importance: ImportanceCritical,
		pattern:    regexp.MustCompile(`(?i)(\bnet[\s-]?\d+\b|within\s+\d+\s+(business\s+)?days|upon\s+(receipt|completion|delivery|signing)|payment\s+(terms|schedule)|\binvoice)`),
		favorable:  regexp.MustCompile(`(?i)(\bnet[\s-]?(7|10|14|15|30)\b|within\s+(7|10|14|15|30)\s+(business\s+)?days|upon\s+(receipt|signing)|\bupfront\b|\bdeposit\b)`),
		suggestion: "Add payment terms of net 30 or shorter, with an upfront deposit where possible.",
	},
	{
		id: "kill_fee", category: CategoryPayment, name: "Kill fee / late fee", points: 7, importance: ImportanceOptional,
		pattern:    regexp.MustCompile(`(?i)(kill\s+fee|late\s+(payment\s+)?fee|cancellation\s+fee|interest\s+on\s+(late|overdue))`),
		favorable:  regexp.MustCompile(`(?i)(kill\s+fee|cancellation\s+fee)`),
		suggestion: "Add a kill fee so work already done is paid if the brand cancels.",
	},
	{
		id: "usage_rights", category: CategoryContentRights, name: "Usage rights", points: 10, importance: ImportanceCritical,
		pattern:    regexp.MustCompile(`(?i)(usage\s+rights|right\s+to\s+(use|repost|republish)|\blicen[cs]e|\bmay\s+(use|repost|repurpose))`),
		favorable:  regexp.MustCompile(`(?i)(organic\s+(use|usage|channels)|brand'?s\s+own\s+(social\s+)?channels|non-exclusive\s+licen[cs]e)`),
		suggestion: "Define where the brand may use the content (organic, paid ads, whitelisting).",
	},
	{
		id: "usage_duration", category: CategoryContentRights, name: "Usage duration", points: 8, importance: ImportanceImportant,
		pattern:    regexp.MustCompile(`(?i)(for\s+(a\s+period\s+of\s+)?\d+\s+(days|months|years)|\bperpetu|\bin\s+perpetuity|\bterm\s+of\s+\d+|\d+[\s-](day|month|year)\s+(license|term|period|usage))`),
		favorable:  regexp.MustCompile(`(?i)(\b(30|60|90)[\s-]days?|\b(1|2|3|6|one|two|three|six)[\s-]months?)`),
		suggestion: "Limit usage to a fixed period such as 30 or 90 days.",
	},
	{
		id: "content_ownership", category: CategoryContentRights, name: "Content ownership", points: 7, importance: ImportanceImportant,
		pattern:    regexp.MustCompile(`(?i)(\bown(s|ership)?\b|intellectual\s+property|\bcopyright|work\s+(made\s+)?for\s+hire)`),
		favorable:  regexp.MustCompile(`(?i)((creator|influencer|talent)\s+(shall\s+)?(retains?|owns?)|retains?\s+(all\s+)?(ownership|copyright))`),
		suggestion: "Confirm you keep ownership of your content and grant the brand a license.",
	},
	{
		id: "exclusivity_terms", category: CategoryExclusivity, name: "Exclusivity terms", points: 10, importance: ImportanceOptional,
		pattern:    regexp.MustCompile(`(?i)(exclusiv|non-compete|competing\s+brands?|competitors?)`),
		favorable:  regexp.MustCompile(`(?i)(no\s+exclusivity|non-exclusive|exclusivity\s+[^.]*\b(7|14|30)\s+days)`),
		suggestion: "Spell out whether exclusivity applies, to which competitors and for how long.",
	},
	{
		id: "revision_limit", category: CategoryExclusivity, name: "Revision limit", points: 8, importance: ImportanceImportant,
		pattern:    regexp.MustCompile(`(?i)(revisions?|rounds?\s+of\s+(edits|changes|feedback))`),
		favorable:  regexp.MustCompile(`(?i)((one|two|1|2)\s+(\(\d\)\s+)?(rounds?\s+of\s+)?revisions?|up\s+to\s+(one|two|three|1|2|3)\s+(\(\d\)\s+)?(rounds?|revisions?))`),
		suggestion: "Cap revisions at one or two rounds, with extra rounds billed separately.",
	},
	{
		id: "deliverables", category: CategoryExclusivity, name: "Deliverables", points: 7, importance: ImportanceImportant,
		pattern:    regexp.MustCompile(`(?i)(deliverables?|\b\d+\s+(instagram\s+|tiktok\s+|youtube\s+)?(posts?|reels?|stories|videos?)|content\s+(schedule|requirements))`),
		suggestion: "List each deliverable with platform, format and posting date.",
	},
	{
		id: "termination", category: CategoryLegal, name: "Termination", points: 8, importance: ImportanceImportant,
		pattern:    regexp.MustCompile(`(?i)(terminat|cancel)`),
		favorable:  regexp.MustCompile(`(?i)(either\s+party|mutual(ly)?\s+(agree|terminat)|written\s+notice)`),
		suggestion: "Add a termination clause that pays for work completed before cancellation.",
	},
	{
		id: "ftc_disclosure", category: CategoryLegal, name: "FTC disclosure", points: 7, importance: ImportanceImportant,
		pattern:    regexp.MustCompile(`(?i)(\bftc\b|disclos|#ad\b|#sponsored|paid\s+partnership)`),
		favorable:  regexp.MustCompile(`(?i)(\bftc\b|#ad\b|paid\s+partnership)`),
		suggestion: "Include FTC disclosure requirements so both sides stay compliant.",
	},
	{
		id: "governing_law", category: CategoryLegal, name: "Governing law", points: 5, importance: ImportanceOptional,
		pattern:    regexp.MustCompile(`(?i)(governing\s+law|governed\s+by|jurisdiction)`),
		suggestion: "Name the governing law and jurisdiction for disputes.",
	},
	{
		id: "indemnification", category: CategoryLegal, name: "Indemnification", points: 5, importance: ImportanceOptional,
		pattern:    regexp.MustCompile(`(?i)(indemnif|hold\s+harmless)`),
		favorable:  regexp.MustCompile(`(?i)(mutual(ly)?\s+indemnif|each\s+party\s+(shall\s+|will\s+)?indemnif)`),
		suggestion: "Make indemnification mutual.",
	},
}

var flagRules = []flagRule{
	{
		id: "perpetual_usage", category: CategoryContentRights, clause: "usage_duration", severity: SeverityHigh,
		title:      "Perpetual usage rights",
		pattern:    regexp.MustCompile(`(?i)(\bperpetu|in\s+perpetuity|\bforever\b|\birrevocabl)`),
		suggestion: "Limit usage to a fixed term (e.g. 90 days) and charge for extensions.",
	},
	{
		id: "unlimited_usage", category: CategoryContentRights, clause: "usage_rights", severity: SeverityHigh,
		title:      "Unlimited usage across all media",
		pattern:    regexp.MustCompile(`(?i)(unlimited\s+(usage|use|rights)|\ball\s+media\b|any\s+and\s+all\s+(media|purposes|channels|formats)|throughout\s+the\s+universe)`),
		suggestion: "Restrict usage to named channels and price paid usage separately.",
	},
	{
		id: "ownership_transfer", category: CategoryContentRights, clause: "content_ownership", severity: SeverityHigh,
		title:      "Transfer of content ownership",
		pattern:    regexp.MustCompile(`(?i)(work\s+(made\s+)?for\s+hire|(assign|transfer)s?\s+(to\s+\w+\s+)?(all\s+)?(right|title|ownership|copyright)|brand\s+(shall\s+|will\s+)?own\s+all|sole\s+(and\s+exclusive\s+)?owner)`),
		suggestion: "Keep ownership and grant a limited license instead of assigning your rights.",
	},
	{
		id: "termination_without_payment", category: CategoryLegal, clause: "termination", severity: SeverityHigh,
		title:      "Termination without payment",
		pattern:    regexp.MustCompile(`(?i)(terminat\w*[^.]*without\s+(any\s+)?(payment|compensation|liability)|no\s+(payment|compensation|fee)\s+(shall\s+be\s+|will\s+be\s+)?(due|owed|payable)[^.]*terminat)`),
		suggestion: "Require payment for completed work, plus a kill fee, if the brand terminates.",
	},
	{
		id: "unlimited_revisions", category: CategoryExclusivity, clause: "revision_limit", severity: SeverityMedium,
		title:      "Unlimited revisions",
		pattern:    regexp.MustCompile(`(?i)(unlimited\s+(revisions|rounds|edits)|revisions?\s+(until|as\s+(many|needed|requested))|as\s+many\s+revisions)`),
		suggestion: "Cap revisions at two rounds; bill additional rounds.",
	},
	{
		id: "long_payment_terms", category: CategoryPayment, clause: "payment_terms", severity: SeverityMedium,
		title:      "Long payment terms",
		pattern:    regexp.MustCompile(`(?i)(\bnet[\s-]?(6\d|[7-9]\d|\d{3})\b|within\s+(6\d|[7-9]\d|\d{3})\s+(business\s+)?days)`),
		suggestion: "Ask for net 30 payment terms or a deposit upfront.",
	},
	{
		id: "contingent_payment", category: CategoryPayment, clause: "payment_amount", severity: SeverityMedium,
		title:      "Payment contingent on performance or approval",
		pattern:    regexp.MustCompile(`(?i)(payment\s+[^.]*(contingent|conditional)\s+(up)?on|paid\s+only\s+if|only\s+be\s+paid\s+if|performance[-\s]based\s+(payment|compensation)|subject\s+to\s+(performance|sales|engagement)\s+(targets|metrics|goals))`),
		suggestion: "Make the base fee unconditional once the agreed content is delivered.",
	},
	{
		id: "long_exclusivity", category: CategoryExclusivity, clause: "exclusivity_terms", severity: SeverityMedium,
		title:      "Long exclusivity period",
		pattern:    regexp.MustCompile(`(?i)exclusiv[^.]*\b((6|7|8|9|1[0-9]|2[0-4])\s+(\(\d+\)\s+)?months|(six|seven|eight|nine|ten|eleven|twelve)\s+(\(\d+\)\s+)?months|(one|two|1|2)\s+(\(\d\)\s+)?years?)`),
		suggestion: "Shorten exclusivity to 30 days or charge an exclusivity fee.",
	},
	{
		id: "creator_indemnity", category: CategoryLegal, clause: "indemnification", severity: SeverityMedium,
		title:      "One-sided indemnification",
		pattern:    regexp.MustCompile(`(?i)(creator|influencer|talent)\s+(shall|will|agrees\s+to)\s+(defend,?\s+)?(indemnif|hold\s+harmless)`),
		suggestion: "Make indemnification mutual and limited to each party's own conduct.",
	},
	{
		id: "auto_renewal", category: CategoryLegal, clause: "termination", severity: SeverityLow,
		title:      "Automatic renewal",
		pattern:    regexp.MustCompile(`(?i)(auto(matic(ally)?)?[\s-]?renew)`),
		suggestion: "Require written agreement from both sides before any renewal.",
	},
	{
		id: "sole_discretion", category: CategoryExclusivity, clause: "deliverables", severity: SeverityLow,
		title:      "Approval at brand's sole discretion",
		pattern:    regexp.MustCompile(`(?i)sole\s+(and\s+absolute\s+)?discretion`),
		suggestion: "Define objective approval criteria and a response deadline.",
	},
}

var penaltyBySeverity = map[string]int{
	SeverityHigh:   10,
	SeverityMedium: 5,
	SeverityLow:    2,
}

// rank orders change-request lines; lower goes first, zero is left out
var flagRank = map[string]int{
	SeverityHigh:   1,
	SeverityMedium: 3,
	SeverityLow:    0,
}

var missingRank = map[string]int{
	ImportanceCritical:  2,
	ImportanceImportant: 3,
	ImportanceOptional:  0,
}

var rankLabels = map[int]string{
	1: "[HIGH PRIORITY]",
	2: "[CRITICAL]",
	3: "[IMPORTANT]",
}
