// Package locator evaluates how reliably a recorded action's element
// locator will keep matching after minor UI changes.
package locator

import (
	"strings"

	"github.com/recorderlab-dev/recorder-insight/pkg/scenario"
)

// Score thresholds.
const (
	// CriticalScore and below means the locator will almost certainly
	// break on replay.
	CriticalScore = 10
	// HighRiskScore marks the boundary below which findings escalate to
	// high severity.
	HighRiskScore = 40
	// SuggestScore marks the boundary below which a stability suggestion
	// is produced.
	SuggestScore = 60

	// StableScore is the derived score for actions with a stable locator
	// and no cached reliability score.
	StableScore = 70
	// UnstableScore is the derived score for actions without one.
	UnstableScore = 35
)

// HasStable reports whether the action has at least one usable locator
// source. Sources are checked in priority order: locator bundle primary,
// bundle fallbacks, recorded element attributes, a typed non-coordinate
// locator, and finally a raw XPath-looking locator string.
// Malformed or absent fields never panic; they read as unstable.
func HasStable(a scenario.Action) bool {
	if b := a.LocatorBundle; b != nil {
		if strings.TrimSpace(b.Primary.Value) != "" {
			return true
		}
		for _, fb := range b.Fallbacks {
			if strings.TrimSpace(fb.Value) != "" {
				return true
			}
		}
	}

	if strings.TrimSpace(a.ElementID) != "" ||
		strings.TrimSpace(a.ElementContentDesc) != "" ||
		strings.TrimSpace(a.ElementText) != "" {
		return true
	}

	loc := strings.TrimSpace(a.Locator)
	if loc != "" &&
		a.LocatorStrategy != scenario.StrategyNone &&
		a.LocatorStrategy != scenario.StrategyCoordinates {
		return true
	}

	return strings.HasPrefix(loc, "//")
}

// Score returns the action's 0-100 locator reliability. A cached
// reliabilityScore wins; otherwise the score derives from stability.
func Score(a scenario.Action) int {
	if a.ReliabilityScore != nil {
		return clamp(*a.ReliabilityScore)
	}
	if HasStable(a) {
		return StableScore
	}
	return UnstableScore
}

// IsCritical reports whether a score is in the critical band.
func IsCritical(score int) bool {
	return score <= CriticalScore
}

// IsWeakXPath reports whether the expression is a known-flaky XPath:
// predicated only on @class with no resource-id, content-desc, or text
// discriminator. Sibling nodes share classes, so these match the wrong
// element after small layout changes.
func IsWeakXPath(expr string) bool {
	s := strings.TrimSpace(expr)
	if s == "" || !strings.Contains(s, "@class") {
		return false
	}
	for _, discriminator := range []string{"@resource-id", "@content-desc", "@text", "text()"} {
		if strings.Contains(s, discriminator) {
			return false
		}
	}
	return true
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
