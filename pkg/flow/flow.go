// Package flow infers what business flow a recorded scenario exercises
// (login, checkout, search, ...) from the text of its steps.
//
// The inference is a scored keyword heuristic, not a classifier: each
// pattern counts how many of its keywords appear in the scenario text,
// and the highest count wins if it clears a minimum. The pattern table
// is data, so deployments can extend it through configuration without
// touching the scoring.
package flow

import (
	"strings"

	"github.com/recorderlab-dev/recorder-insight/pkg/scenario"
)

// MinHits is the minimum number of independent keyword matches a
// pattern needs before its label is trusted.
const MinHits = 2

// Pattern is one named flow and the keywords that indicate it.
type Pattern struct {
	Label    string   `json:"label" yaml:"label"`
	Keywords []string `json:"keywords" yaml:"keywords"`
}

// DefaultPatterns returns the built-in pattern table.
func DefaultPatterns() []Pattern {
	return []Pattern{
		{
			Label:    "Login",
			Keywords: []string{"login", "log in", "sign in", "signin", "username", "password", "email"},
		},
		{
			Label:    "Checkout",
			Keywords: []string{"checkout", "cart", "payment", "pay", "purchase", "buy", "order"},
		},
		{
			Label:    "Search",
			Keywords: []string{"search", "query", "filter", "find", "results"},
		},
		{
			Label:    "Registration",
			Keywords: []string{"register", "sign up", "signup", "create account", "confirm password"},
		},
		{
			Label:    "Settings",
			Keywords: []string{"settings", "preferences", "profile", "notification", "toggle", "account"},
		},
	}
}

// Infer scores the scenario text against the patterns and returns the
// winning label with its hit count. Ties keep the first highest pattern.
// Returns ("", 0) when no pattern reaches MinHits.
func Infer(actions []scenario.Action, patterns []Pattern) (string, int) {
	if len(patterns) == 0 {
		patterns = DefaultPatterns()
	}

	text := normalizedText(actions)
	if text == "" {
		return "", 0
	}

	bestLabel := ""
	bestHits := 0
	for _, p := range patterns {
		hits := 0
		for _, kw := range p.Keywords {
			if kw != "" && strings.Contains(text, strings.ToLower(kw)) {
				hits++
			}
		}
		if hits > bestHits {
			bestLabel = p.Label
			bestHits = hits
		}
	}

	if bestHits < MinHits {
		return "", 0
	}
	return bestLabel, bestHits
}

// normalizedText concatenates every action's description and value into
// one lowercased, whitespace-collapsed string.
func normalizedText(actions []scenario.Action) string {
	var b strings.Builder
	for _, a := range actions {
		if d := strings.TrimSpace(a.Description); d != "" {
			b.WriteString(d)
			b.WriteByte(' ')
		}
		if v := strings.TrimSpace(a.Value); v != "" {
			b.WriteString(v)
			b.WriteByte(' ')
		}
	}
	return strings.ToLower(strings.Join(strings.Fields(b.String()), " "))
}
