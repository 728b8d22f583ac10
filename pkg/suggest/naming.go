package suggest

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/recorderlab-dev/recorder-insight/pkg/locator"
	"github.com/recorderlab-dev/recorder-insight/pkg/scenario"
)

// actionVerbs are the display verbs used when synthesizing step names.
var actionVerbs = map[scenario.ActionType]string{
	scenario.ActionTap:          "Tap",
	scenario.ActionDoubleTap:    "Double-tap",
	scenario.ActionLongPress:    "Long-press",
	scenario.ActionInput:        "Type into",
	scenario.ActionScroll:       "Scroll",
	scenario.ActionSwipe:        "Swipe",
	scenario.ActionWait:         "Wait",
	scenario.ActionAssert:       "Verify",
	scenario.ActionOpenApp:      "Open app",
	scenario.ActionStopApp:      "Stop app",
	scenario.ActionClearCache:   "Clear cache",
	scenario.ActionHideKeyboard: "Hide keyboard",
	scenario.ActionPressKey:     "Press key",
	scenario.ActionUninstallApp: "Uninstall app",
}

var (
	stepNumberRe = regexp.MustCompile(`^step\s+\d+$`)
	coordDescRe  = regexp.MustCompile(`^[a-z-]+\s+at\s+\(\s*\d+\s*,\s*\d+\s*\)$`)
)

// isGenericDescription reports whether the description says nothing a
// synthesized name would not: empty, "<type> action", "step N", a bare
// action verb, or a templated coordinate phrase.
func isGenericDescription(a scenario.Action) bool {
	d := strings.ToLower(strings.TrimSpace(a.Description))
	if d == "" {
		return true
	}
	if d == strings.ToLower(string(a.Type))+" action" {
		return true
	}
	if stepNumberRe.MatchString(d) {
		return true
	}
	if verb, ok := actionVerbs[a.Type]; ok {
		v := strings.ToLower(verb)
		switch d {
		case strings.ToLower(string(a.Type)), v, v + " element", v + " screen":
			return true
		}
	}
	return coordDescRe.MatchString(d)
}

// friendlyName synthesizes a readable step name from whatever the
// recording captured: target label first, then coordinates, then the
// typed payload.
func friendlyName(a scenario.Action) string {
	verb, ok := actionVerbs[a.Type]
	if !ok {
		verb = string(a.Type)
	}

	if target := locator.TargetLabel(a); target != "" {
		return fmt.Sprintf("%s %q", verb, target)
	}

	switch a.Type {
	case scenario.ActionWait:
		if ms, ok := a.WaitMillis(); ok {
			return fmt.Sprintf("Wait %d ms", ms)
		}
	case scenario.ActionInput:
		if v := strings.TrimSpace(a.Value); v != "" {
			return fmt.Sprintf("Type %q", truncate(v, 30))
		}
	case scenario.ActionOpenApp, scenario.ActionStopApp, scenario.ActionClearCache, scenario.ActionUninstallApp:
		if v := strings.TrimSpace(a.Value); v != "" {
			return fmt.Sprintf("%s %s", verb, v)
		}
	case scenario.ActionPressKey:
		if v := strings.TrimSpace(a.Value); v != "" {
			return fmt.Sprintf("Press %s key", v)
		}
	}

	if a.Coordinates != nil {
		return fmt.Sprintf("%s at (%d, %d)", verb, a.Coordinates.X, a.Coordinates.Y)
	}
	return verb
}

// actionHint synthesizes a target-based hint, or "" when the action has
// no resolvable target.
func actionHint(a scenario.Action) string {
	target := locator.TargetLabel(a)
	if target == "" {
		return ""
	}
	verb, ok := actionVerbs[a.Type]
	if !ok {
		verb = string(a.Type)
	}
	return fmt.Sprintf("%s %q", verb, target)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
