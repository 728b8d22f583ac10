package agent

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/recorderlab-dev/recorder-insight/pkg/core"
)

// maxSuggestDistance caps how far off a name can be before a
// suggestion stops being helpful.
const maxSuggestDistance = 5

// ClosestName returns the candidate closest to the given name by edit
// distance, for "did you mean" hints when an AVD or serial is not
// found. Returns "" when no candidate is close enough.
func ClosestName(name string, candidates []string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || len(candidates) == 0 {
		return ""
	}

	best := ""
	bestDist := maxSuggestDistance + 1
	for _, c := range candidates {
		trimmed := strings.TrimSpace(c)
		if trimmed == "" {
			continue
		}
		d := levenshtein.ComputeDistance(name, strings.ToLower(trimmed))
		if d < bestDist {
			bestDist = d
			best = trimmed
		}
	}
	if bestDist > maxSuggestDistance {
		return ""
	}
	return best
}

// AVDNames extracts the names from an AVD listing, preserving order.
func AVDNames(avds []core.AVDInfo) []string {
	names := make([]string, 0, len(avds))
	for _, a := range avds {
		names = append(names, a.Name)
	}
	return names
}
