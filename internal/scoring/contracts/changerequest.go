package contracts

import (
	"fmt"
	"sort"
	"strings"
)

const placeholderName = "[Your Name]"

type requestItem struct {
	rank int
	line string
}

// GenerateChangeRequest drafts the negotiation message for a scan result. High
// severity flags come first, then critical missing clauses, then medium flags
// and important missing clauses. Low and optional items never become change
// requests; when they are all a contract has, the message approves it and lists
// them as minor notes.
func GenerateChangeRequest(res Result, creatorName string) string {
	name := creatorName
	if strings.TrimSpace(name) == "" {
		name = placeholderName
	}

	greeting := "Hi there,"
	campaign := ""
	if dc := res.DealContext; dc != nil {
		if b := strings.TrimSpace(dc.BrandName); b != "" {
			greeting = fmt.Sprintf("Hi %s team,", b)
		}
		if p := strings.TrimSpace(dc.Platform); p != "" {
			campaign = fmt.Sprintf(" for the %s campaign", p)
		}
	}

	items := changeRequestItems(res)
	if len(items) == 0 && (len(res.RedFlags) > 0 || len(res.MissingClauses) > 0) {
		var b strings.Builder
		fmt.Fprintf(&b, "%s\n\nThanks for sending over the agreement%s. I've reviewed it and it looks good on my end. "+
			"There are a couple of minor points we could tidy up if it's easy, but none of them hold up signing:\n\n", greeting, campaign)
		for _, note := range minorNotes(res) {
			fmt.Fprintf(&b, "- %s\n", note)
		}
		writeKillFeeNote(&b, res)
		fmt.Fprintf(&b, "\nI'm happy to move forward and sign.\n\nBest,\n%s", name)
		return b.String()
	}
	if len(items) == 0 {
		return fmt.Sprintf("%s\n\nThanks for sending over the agreement%s. I've reviewed it and everything looks good on my end. "+
			"I'm happy to move forward and sign.\n\nBest,\n%s", greeting, campaign, name)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\nThanks for sending over the agreement%s. Before signing, I'd like to request a few changes:\n\n", greeting, campaign)
	for i, it := range items {
		fmt.Fprintf(&b, "%d. %s\n", i+1, it.line)
	}
	writeKillFeeNote(&b, res)
	fmt.Fprintf(&b, "\nHappy to talk through any of these. Looking forward to working together.\n\nBest,\n%s", name)
	return b.String()
}

func writeKillFeeNote(b *strings.Builder, res Result) {
	if dc := res.DealContext; dc != nil && dc.DealValue >= killFeeDealValue && res.missing("kill_fee") {
		fmt.Fprintf(b, "\nGiven the deal value of %s, I'd also like to include a kill fee of 25-50%% in case the campaign is cancelled.\n",
			formatMoney(dc.DealValue))
	}
}

func changeRequestItems(res Result) []requestItem {
	var items []requestItem
	for _, f := range res.RedFlags {
		rank := flagRank[f.Severity]
		if rank == 0 {
			continue
		}
		items = append(items, requestItem{
			rank: rank,
			line: fmt.Sprintf("%s %s: %s", rankLabels[rank], f.Title, f.Suggestion),
		})
	}
	for _, m := range res.MissingClauses {
		rank := missingRank[m.Importance]
		if rank == 0 {
			continue
		}
		items = append(items, requestItem{
			rank: rank,
			line: fmt.Sprintf("%s Missing %s: %s", rankLabels[rank], strings.ToLower(m.Name), m.Suggestion),
		})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].rank < items[j].rank })
	return items
}

// minorNotes names the low severity flags and optional missing clauses.
func minorNotes(res Result) []string {
	var notes []string
	for _, f := range res.RedFlags {
		notes = append(notes, f.Title)
	}
	for _, m := range res.MissingClauses {
		notes = append(notes, "No "+strings.ToLower(m.Name)+" clause")
	}
	return notes
}
