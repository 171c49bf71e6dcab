// Package signals gathers the raw brand signals the vetter scores: social
// profile data, a website probe, collaboration history and scam reports.
package signals

import (
	"strings"
	"time"
)

// monthsBetween counts whole calendar months from start to now.
func monthsBetween(start, now time.Time) int {
	if start.IsZero() || !start.Before(now) {
		return 0
	}
	months := (now.Year()-start.Year())*12 + int(now.Month()) - int(start.Month())
	if now.Day() < start.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}

// handleFor falls back to the squashed brand name when no handle was given.
func handleFor(handle, brandName string) string {
	h := strings.TrimPrefix(strings.TrimSpace(handle), "@")
	if h != "" {
		return strings.ToLower(h)
	}
	return strings.ToLower(strings.Join(strings.Fields(brandName), ""))
}
